package main

import (
	"bytes"
	"context"
	"path/filepath"
	"testing"

	jsoniter "github.com/json-iterator/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/library-circulation-go/library/shared/shell"
)

const testToday = "2026-03-02"

type invocation struct {
	code   int
	stdout string
	stderr string
}

func givenStateFile(t *testing.T) string {
	t.Helper()
	t.Setenv("CIRCULATION_FINE_RATE", "")

	return filepath.Join(t.TempDir(), "state.json")
}

func runLibrarian(t *testing.T, stateFile string, today string, args ...string) invocation {
	t.Helper()

	var stdout, stderr bytes.Buffer
	all := append([]string{"-state", stateFile, "-today", today}, args...)
	code := run(context.Background(), all, &stdout, &stderr)

	return invocation{code: code, stdout: stdout.String(), stderr: stderr.String()}
}

func givenSeededState(t *testing.T) string {
	t.Helper()

	stateFile := givenStateFile(t)
	seeded := runLibrarian(t, stateFile, testToday, "seed")
	require.Equal(t, exitOK, seeded.code, seeded.stderr)

	return stateFile
}

func Test_Librarian_Seed_IsRepeatable(t *testing.T) {
	// setup
	stateFile := givenStateFile(t)

	// act
	first := runLibrarian(t, stateFile, testToday, "seed")
	second := runLibrarian(t, stateFile, testToday, "seed")

	// assert
	assert.Equal(t, exitOK, first.code, first.stderr)
	assert.Contains(t, first.stdout, "seeded 2 categories, 2 patrons, 1 items")
	assert.Equal(t, exitOK, second.code, second.stderr)
	assert.Contains(t, second.stdout, "seeded 0 categories, 0 patrons, 0 items")
}

func Test_Librarian_BorrowAndReturn(t *testing.T) {
	// setup
	stateFile := givenSeededState(t)
	itemID := seedItem.ID.String()

	// act
	borrowed := runLibrarian(t, stateFile, testToday, "borrow", "-as", "student1", "-item", itemID)
	taken := runLibrarian(t, stateFile, testToday, "borrow", "-as", "librarian1", "-item", itemID)
	returned := runLibrarian(t, stateFile, "2026-03-20", "-fine-rate", "0.50", "return", "-item", itemID)
	again := runLibrarian(t, stateFile, "2026-03-20", "return", "-item", itemID)

	// assert
	assert.Equal(t, exitOK, borrowed.code, borrowed.stderr)
	assert.Contains(t, borrowed.stdout, "due 2026-03-16")
	assert.Contains(t, borrowed.stdout,
		"Notification for student1: You have successfully borrowed 'The Hobbit'. Due date: 2026-03-16")

	assert.Equal(t, exitRejected, taken.code)
	assert.Contains(t, taken.stderr, "item is currently on loan")

	assert.Equal(t, exitOK, returned.code, returned.stderr)
	assert.Contains(t, returned.stdout, "4 days overdue, fine 2.00")
	assert.Contains(t, returned.stdout, "A fine of $2.00 has been applied for the overdue return.")

	assert.Equal(t, exitRejected, again.code)
}

func Test_Librarian_Reports(t *testing.T) {
	// setup
	stateFile := givenSeededState(t)
	itemID := seedItem.ID.String()
	borrowed := runLibrarian(t, stateFile, testToday, "borrow", "-as", "student1", "-item", itemID)
	require.Equal(t, exitOK, borrowed.code, borrowed.stderr)

	// act
	onLoan := runLibrarian(t, stateFile, "2026-03-18", "borrowed", "-as", "student1")
	overdue := runLibrarian(t, stateFile, "2026-03-18", "overdue")
	ranking := runLibrarian(t, stateFile, "2026-03-18", "most-borrowed")
	byAuthor := runLibrarian(t, stateFile, "2026-03-18", "search", "-author", "tolkien")

	// assert
	assert.Equal(t, exitOK, onLoan.code, onLoan.stderr)
	assert.Contains(t, onLoan.stdout, "The Hobbit\tdue 2026-03-16\toverdue")
	assert.Equal(t, exitOK, overdue.code, overdue.stderr)
	assert.Contains(t, overdue.stdout, "student1\tThe Hobbit\tdue 2026-03-16\t2 days\tfine 1.00")
	assert.Equal(t, exitOK, ranking.code, ranking.stderr)
	assert.Contains(t, ranking.stdout, "1\tThe Hobbit\tJ.R.R. Tolkien")
	assert.Equal(t, exitOK, byAuthor.code, byAuthor.stderr)
	assert.Contains(t, byAuthor.stdout, "on loan")
	assert.Contains(t, byAuthor.stdout, "1 item(s) found")
}

func Test_Librarian_JSONOutput(t *testing.T) {
	// setup
	stateFile := givenSeededState(t)

	// act
	searched := runLibrarian(t, stateFile, testToday, "-json", "search", "-available")

	// assert
	require.Equal(t, exitOK, searched.code, searched.stderr)

	var decoded struct {
		Count int
		Items []struct {
			ID    string `json:"id"`
			Title string `json:"title"`
		}
	}
	require.NoError(t, jsoniter.ConfigCompatibleWithStandardLibrary.UnmarshalFromString(searched.stdout, &decoded))
	assert.Equal(t, 1, decoded.Count)
	require.Len(t, decoded.Items, 1)
	assert.Equal(t, seedItem.ID.String(), decoded.Items[0].ID)
	assert.Equal(t, "The Hobbit", decoded.Items[0].Title)
}

func Test_Librarian_Catalog_And_Patron_Administration(t *testing.T) {
	// setup
	stateFile := givenSeededState(t)

	// act
	added := runLibrarian(t, stateFile, testToday,
		"add-item", "-id", "0198c1d8-5a4e-7000-8000-000000000001", "-title", "Dune", "-author", "Frank Herbert", "-category", "1")
	removedItem := runLibrarian(t, stateFile, testToday, "remove-item", "-id", "0198c1d8-5a4e-7000-8000-000000000001")
	registered := runLibrarian(t, stateFile, testToday,
		"register", "-id", "0198c1d8-5a4e-7000-8000-000000000002", "-name", "Ada", "-category", "staff", "-staff-id", "EMP002")
	loggedIn := runLibrarian(t, stateFile, testToday, "login", "-name", "Ada")
	removedPatron := runLibrarian(t, stateFile, testToday, "remove-patron", "-id", "0198c1d8-5a4e-7000-8000-000000000002")
	unknown := runLibrarian(t, stateFile, testToday, "login", "-name", "Ada")
	categories := runLibrarian(t, stateFile, testToday, "categories")

	// assert
	assert.Equal(t, exitOK, added.code, added.stderr)
	assert.Contains(t, added.stdout, `"Dune" by Frank Herbert`)
	assert.Equal(t, exitOK, removedItem.code, removedItem.stderr)
	assert.Equal(t, exitOK, registered.code, registered.stderr)
	assert.Contains(t, registered.stdout, `"Ada" (staff)`)
	assert.Equal(t, exitOK, loggedIn.code, loggedIn.stderr)
	assert.Contains(t, loggedIn.stdout, "logged in as Ada")
	assert.Equal(t, exitOK, removedPatron.code, removedPatron.stderr)
	assert.Equal(t, exitRejected, unknown.code)
	assert.Equal(t, exitOK, categories.code, categories.stderr)
	assert.Contains(t, categories.stdout, "2\tComputer Science")
}

func Test_Librarian_RemoveItem_WithOpenLoan_IsRejected(t *testing.T) {
	// setup
	stateFile := givenSeededState(t)
	itemID := seedItem.ID.String()
	borrowed := runLibrarian(t, stateFile, testToday, "borrow", "-as", "student1", "-item", itemID)
	require.Equal(t, exitOK, borrowed.code, borrowed.stderr)

	// act
	removed := runLibrarian(t, stateFile, testToday, "remove-item", "-id", itemID)

	// assert
	assert.Equal(t, exitRejected, removed.code)
	assert.Contains(t, removed.stderr, "librarian: rejected")
}

func Test_Librarian_UsageErrors(t *testing.T) {
	testCases := []struct {
		description string
		args        []string
	}{
		{description: "no command", args: []string{}},
		{description: "unknown command", args: []string{"lend"}},
		{description: "unknown adapter", args: []string{"-adapter", "mongo", "search", "-available"}},
		{description: "empty state file", args: []string{"-state", "", "search", "-available"}},
		{description: "missing item id", args: []string{"return"}},
		{description: "malformed item id", args: []string{"return", "-item", "42"}},
		{description: "two search criteria", args: []string{"search", "-title", "a", "-author", "b"}},
		{description: "blank login name", args: []string{"login", "-name", "  "}},
		{description: "malformed business date", args: []string{"-today", "02.03.2026", "search", "-available"}},
		{description: "negative fine rate", args: []string{"-fine-rate", "-1", "search", "-available"}},
		{description: "unknown patron category", args: []string{"register", "-name", "Bob", "-category", "alumni"}},
	}

	for _, tc := range testCases {
		t.Run(tc.description, func(t *testing.T) {
			// setup
			stateFile := givenStateFile(t)
			var stdout, stderr bytes.Buffer
			args := append([]string{"-state", stateFile}, tc.args...)

			// act
			code := run(context.Background(), args, &stdout, &stderr)

			// assert
			assert.Equal(t, exitUsage, code, stderr.String())
		})
	}
}

func Test_Librarian_Metrics_AreWrittenOnExit(t *testing.T) {
	// setup
	stateFile := givenSeededState(t)

	// act
	searched := runLibrarian(t, stateFile, testToday, "-metrics", "search", "-available")

	// assert
	assert.Equal(t, exitOK, searched.code, searched.stderr)
	assert.Contains(t, searched.stderr, shell.QueryHandlerDurationMetric)
	assert.Contains(t, searched.stderr, `"kind": "histogram"`)
}

func Test_Librarian_Borrow_AsUnknownPatron_IsRejected(t *testing.T) {
	// arrange
	stateFile := givenStateFile(t)

	// act
	code := runLibrarian(t, stateFile, testToday, "borrow", "-as", "nobody", "-item", seedItem.ID.String()).code

	// assert
	assert.Equal(t, exitRejected, code)
}
