package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/AntonStoeckl/library-circulation-go/circulation"
	"github.com/AntonStoeckl/library-circulation-go/library/features/command/additem"
	"github.com/AntonStoeckl/library-circulation-go/library/features/command/borrowitem"
	"github.com/AntonStoeckl/library-circulation-go/library/features/command/registerpatron"
	"github.com/AntonStoeckl/library-circulation-go/library/features/command/removeitem"
	"github.com/AntonStoeckl/library-circulation-go/library/features/command/removepatron"
	"github.com/AntonStoeckl/library-circulation-go/library/features/command/returnitem"
	"github.com/AntonStoeckl/library-circulation-go/library/features/query/borroweditems"
	"github.com/AntonStoeckl/library-circulation-go/library/features/query/login"
	"github.com/AntonStoeckl/library-circulation-go/library/features/query/mostborrowed"
	"github.com/AntonStoeckl/library-circulation-go/library/features/query/overduepatrons"
	"github.com/AntonStoeckl/library-circulation-go/library/features/query/searchcatalog"
)

type subcommand struct {
	summary string
	run     func(ctx context.Context, a *app, args []string) error
}

var subcommands = map[string]subcommand{
	"init-schema":   {summary: "create the PostgreSQL tables", run: runInitSchema},
	"seed":          {summary: "load the sample categories, patrons and item", run: runSeed},
	"categories":    {summary: "list the item categories", run: runCategories},
	"add-item":      {summary: "add an item to the catalog", run: runAddItem},
	"remove-item":   {summary: "remove an item from the catalog", run: runRemoveItem},
	"register":      {summary: "register a patron", run: runRegister},
	"remove-patron": {summary: "remove a patron", run: runRemovePatron},
	"login":         {summary: "log in by patron name and show the session", run: runLogin},
	"borrow":        {summary: "borrow an item as the named patron", run: runBorrow},
	"return":        {summary: "return an item", run: runReturn},
	"search":        {summary: "search the catalog by title, author or availability", run: runSearch},
	"borrowed":      {summary: "list the open loans of the named patron", run: runBorrowed},
	"most-borrowed": {summary: "rank items by number of loans", run: runMostBorrowed},
	"overdue":       {summary: "list overdue loans with the fines accrued so far", run: runOverdue},
}

func subcommandNames() []string {
	names := make([]string, 0, len(subcommands))
	for name := range subcommands {
		names = append(names, name)
	}

	slices.Sort(names)

	return names
}

func (a *app) flagSet(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(a.stderr)

	return fs
}

func parseFlags(fs *flag.FlagSet, args []string) error {
	if err := fs.Parse(args); err != nil {
		return errors.Join(errUsage, err)
	}

	if fs.NArg() > 0 {
		return errors.Join(errUsage, fmt.Errorf("%s: unexpected arguments %q", fs.Name(), fs.Args()))
	}

	return nil
}

func parseID(flagName string, value string) (uuid.UUID, error) {
	if strings.TrimSpace(value) == "" {
		return uuid.Nil, errors.Join(errUsage, fmt.Errorf("-%s is required", flagName))
	}

	id, err := uuid.Parse(value)
	if err != nil {
		return uuid.Nil, errors.Join(errUsage, fmt.Errorf("-%s: %w", flagName, err))
	}

	return id, nil
}

// idOrNew parses value, or generates a new id if value is empty.
func idOrNew(flagName string, value string) (uuid.UUID, error) {
	if strings.TrimSpace(value) == "" {
		return uuid.NewV7()
	}

	return parseID(flagName, value)
}

func rejection(outcome circulation.Outcome, reason string) error {
	if outcome.IsSuccess() {
		return nil
	}

	return errors.Join(errRejected, outcome.Err(), errors.New(reason))
}

func runInitSchema(ctx context.Context, a *app, args []string) error {
	if err := parseFlags(a.flagSet("init-schema"), args); err != nil {
		return err
	}

	if a.ensureSchema == nil {
		writeLine(a.out.out, "the %s adapter needs no schema", a.opts.adapter)
		return nil
	}

	if err := a.ensureSchema(ctx); err != nil {
		return err
	}

	writeLine(a.out.out, "schema is up to date")

	return nil
}

func runCategories(ctx context.Context, a *app, args []string) error {
	if err := parseFlags(a.flagSet("categories"), args); err != nil {
		return err
	}

	categories, err := a.store.FindCategories(ctx)
	if err != nil {
		return err
	}

	return a.out.print(categories, func(w io.Writer) {
		for _, c := range categories {
			writeLine(w, "%d\t%s\t%s", c.ID, c.Name, c.Description)
		}
	})
}

func runAddItem(ctx context.Context, a *app, args []string) error {
	fs := a.flagSet("add-item")
	id := fs.String("id", "", "item id, a new one is generated if empty")
	title := fs.String("title", "", "title")
	author := fs.String("author", "", "author")
	category := fs.Int("category", 0, "category id")

	if err := parseFlags(fs, args); err != nil {
		return err
	}

	itemID, err := idOrNew("id", *id)
	if err != nil {
		return err
	}

	handler, err := wrapCommand[additem.Command, additem.Result](a, additem.NewCommandHandler(a.store))
	if err != nil {
		return err
	}

	result, err := handler.Handle(ctx, additem.BuildCommand(itemID, *title, *author, *category, a.today))
	if err != nil {
		return err
	}

	if printErr := a.out.print(result, func(w io.Writer) {
		if result.Outcome.IsSuccess() {
			writeLine(w, "%s\titem %s %q by %s", result.Outcome, result.Item.ID, result.Item.Title, result.Item.Author)
		}
	}); printErr != nil {
		return printErr
	}

	return rejection(result.Outcome, result.Reason)
}

func runRemoveItem(ctx context.Context, a *app, args []string) error {
	fs := a.flagSet("remove-item")
	id := fs.String("id", "", "item id")

	if err := parseFlags(fs, args); err != nil {
		return err
	}

	itemID, err := parseID("id", *id)
	if err != nil {
		return err
	}

	handler, err := wrapCommand[removeitem.Command, removeitem.Result](a, removeitem.NewCommandHandler(a.store))
	if err != nil {
		return err
	}

	result, err := handler.Handle(ctx, removeitem.BuildCommand(itemID, a.today))
	if err != nil {
		return err
	}

	if printErr := a.out.print(result, func(w io.Writer) {
		if result.Outcome.IsSuccess() {
			writeLine(w, "%s\tremoved item %s %q", result.Outcome, result.Item.ID, result.Item.Title)
		}
	}); printErr != nil {
		return printErr
	}

	return rejection(result.Outcome, result.Reason)
}

func runRegister(ctx context.Context, a *app, args []string) error {
	fs := a.flagSet("register")
	id := fs.String("id", "", "patron id, a new one is generated if empty")
	name := fs.String("name", "", "patron name")
	categoryName := fs.String("category", circulation.CategoryNameStandard, "standard or staff")
	staffID := fs.String("staff-id", "", "staff id, required for staff")
	department := fs.String("department", "", "department of a standard patron")
	year := fs.Int("year", 0, "year of study of a standard patron")

	if err := parseFlags(fs, args); err != nil {
		return err
	}

	patronID, err := idOrNew("id", *id)
	if err != nil {
		return err
	}

	category, err := circulation.PatronCategoryFrom(*categoryName, *staffID, *department, *year)
	if err != nil {
		return errors.Join(errUsage, err)
	}

	handler, err := wrapCommand[registerpatron.Command, registerpatron.Result](a, registerpatron.NewCommandHandler(a.store))
	if err != nil {
		return err
	}

	result, err := handler.Handle(ctx, registerpatron.BuildCommand(patronID, *name, category, a.today))
	if err != nil {
		return err
	}

	if printErr := a.out.print(result, func(w io.Writer) {
		if result.Outcome.IsSuccess() {
			writeLine(w, "%s\tpatron %s %q (%s)",
				result.Outcome, result.Patron.ID, result.Patron.Name, result.Patron.Category.CategoryName())
		}
	}); printErr != nil {
		return printErr
	}

	return rejection(result.Outcome, result.Reason)
}

func runRemovePatron(ctx context.Context, a *app, args []string) error {
	fs := a.flagSet("remove-patron")
	id := fs.String("id", "", "patron id")

	if err := parseFlags(fs, args); err != nil {
		return err
	}

	patronID, err := parseID("id", *id)
	if err != nil {
		return err
	}

	handler, err := wrapCommand[removepatron.Command, removepatron.Result](a, removepatron.NewCommandHandler(a.store))
	if err != nil {
		return err
	}

	result, err := handler.Handle(ctx, removepatron.BuildCommand(patronID, a.today))
	if err != nil {
		return err
	}

	if printErr := a.out.print(result, func(w io.Writer) {
		if result.Outcome.IsSuccess() {
			writeLine(w, "%s\tremoved patron %s %q", result.Outcome, result.Patron.ID, result.Patron.Name)
		}
	}); printErr != nil {
		return printErr
	}

	return rejection(result.Outcome, result.Reason)
}

// logIn resolves a patron name to a session.
func (a *app) logIn(ctx context.Context, name string) (circulation.Session, error) {
	handler, err := wrapQuery[login.Query, circulation.Session](a,
		login.NewQueryHandler(a.store, login.WithContextualLogger(a.contextualLogger)))
	if err != nil {
		return circulation.Session{}, err
	}

	session, err := handler.Handle(ctx, login.BuildQuery(name, time.Now()))
	if errors.Is(err, circulation.ErrInvalidInput) {
		return circulation.Session{}, errors.Join(errUsage, err)
	}

	return session, err
}

func runLogin(ctx context.Context, a *app, args []string) error {
	fs := a.flagSet("login")
	name := fs.String("name", "", "patron name")

	if err := parseFlags(fs, args); err != nil {
		return err
	}

	session, err := a.logIn(ctx, *name)
	if err != nil {
		return err
	}

	return a.out.print(session, func(w io.Writer) {
		writeLine(w, "logged in as %s (%s)", session.PatronName, session.PatronID)
	})
}

func runBorrow(ctx context.Context, a *app, args []string) error {
	fs := a.flagSet("borrow")
	as := fs.String("as", "", "name of the borrowing patron")
	item := fs.String("item", "", "item id")

	if err := parseFlags(fs, args); err != nil {
		return err
	}

	itemID, err := parseID("item", *item)
	if err != nil {
		return err
	}

	session, err := a.logIn(ctx, *as)
	if err != nil {
		return err
	}

	handler, err := wrapCommand[borrowitem.Command, borrowitem.Result](a,
		borrowitem.NewCommandHandler(a.store, a.notifier,
			borrowitem.WithRetryOptions(a.retryOptions(borrowitem.Command{}.CommandType())...)))
	if err != nil {
		return err
	}

	result, err := handler.Handle(ctx, borrowitem.BuildCommand(session, itemID, a.today))
	if err != nil {
		return err
	}

	if printErr := a.out.print(result, func(w io.Writer) {
		if result.Outcome.IsSuccess() {
			writeLine(w, "%s\tloan %s for %q due %s",
				result.Outcome, result.Loan.ID, result.Item.Title, circulation.FormatDate(result.Loan.DueDate))
		}
	}); printErr != nil {
		return printErr
	}

	return rejection(result.Outcome, result.Reason)
}

func runReturn(ctx context.Context, a *app, args []string) error {
	fs := a.flagSet("return")
	item := fs.String("item", "", "item id")

	if err := parseFlags(fs, args); err != nil {
		return err
	}

	itemID, err := parseID("item", *item)
	if err != nil {
		return err
	}

	handler, err := wrapCommand[returnitem.Command, returnitem.Result](a,
		returnitem.NewCommandHandler(a.store, a.notifier,
			returnitem.WithFineCalculator(a.fines),
			returnitem.WithRetryOptions(a.retryOptions(returnitem.Command{}.CommandType())...)))
	if err != nil {
		return err
	}

	result, err := handler.Handle(ctx, returnitem.BuildCommand(itemID, a.today))
	if err != nil {
		return err
	}

	if printErr := a.out.print(result, func(w io.Writer) {
		if result.Outcome.IsSuccess() {
			writeLine(w, "%s\treturned %q, %d days overdue, fine %s",
				result.Outcome, result.Item.Title, result.OverdueDays, result.Fine.StringFixed(2))
		}
	}); printErr != nil {
		return printErr
	}

	return rejection(result.Outcome, result.Reason)
}

func runSearch(ctx context.Context, a *app, args []string) error {
	fs := a.flagSet("search")
	title := fs.String("title", "", "title fragment")
	author := fs.String("author", "", "author fragment")
	available := fs.Bool("available", false, "list all available items")

	if err := parseFlags(fs, args); err != nil {
		return err
	}

	var query searchcatalog.Query

	switch {
	case *title != "" && *author == "" && !*available:
		query = searchcatalog.BuildTitleQuery(*title)
	case *author != "" && *title == "" && !*available:
		query = searchcatalog.BuildAuthorQuery(*author)
	case *available && *title == "" && *author == "":
		query = searchcatalog.BuildAvailableQuery()
	default:
		return errors.Join(errUsage, errors.New("search needs exactly one of -title, -author or -available"))
	}

	handler, err := wrapQuery[searchcatalog.Query, searchcatalog.SearchResult](a, searchcatalog.NewQueryHandler(a.store))
	if err != nil {
		return err
	}

	result, err := handler.Handle(ctx, query)
	if err != nil {
		return err
	}

	return a.out.print(result, func(w io.Writer) {
		for _, item := range result.Items {
			writeLine(w, "%s\t%s\t%s\t%s", item.ID, item.Title, item.Author, availability(item))
		}
		writeLine(w, "%d item(s) found", result.Count)
	})
}

func availability(item circulation.Item) string {
	if item.Available {
		return "available"
	}

	return "on loan"
}

func runBorrowed(ctx context.Context, a *app, args []string) error {
	fs := a.flagSet("borrowed")
	as := fs.String("as", "", "patron name")

	if err := parseFlags(fs, args); err != nil {
		return err
	}

	session, err := a.logIn(ctx, *as)
	if err != nil {
		return err
	}

	handler, err := wrapQuery[borroweditems.Query, borroweditems.BorrowedItems](a, borroweditems.NewQueryHandler(a.store))
	if err != nil {
		return err
	}

	result, err := handler.Handle(ctx, borroweditems.BuildQuery(session, a.today))
	if err != nil {
		return err
	}

	return a.out.print(result, func(w io.Writer) {
		for _, borrowed := range result.Items {
			overdue := ""
			if borrowed.Overdue {
				overdue = "\toverdue"
			}
			writeLine(w, "%s\t%s\tdue %s%s",
				borrowed.Item.ID, borrowed.Item.Title, circulation.FormatDate(borrowed.DueDate), overdue)
		}
		writeLine(w, "%d item(s) borrowed", result.Count)
	})
}

func runMostBorrowed(ctx context.Context, a *app, args []string) error {
	fs := a.flagSet("most-borrowed")
	limit := fs.Int("limit", 10, "maximum number of entries, 0 for all")

	if err := parseFlags(fs, args); err != nil {
		return err
	}

	if *limit < 0 {
		return errors.Join(errUsage, errors.New("-limit must not be negative"))
	}

	handler, err := wrapQuery[mostborrowed.Query, mostborrowed.MostBorrowed](a, mostborrowed.NewQueryHandler(a.store))
	if err != nil {
		return err
	}

	result, err := handler.Handle(ctx, mostborrowed.BuildQuery(*limit))
	if err != nil {
		return err
	}

	return a.out.print(result, func(w io.Writer) {
		for _, entry := range result.Entries {
			writeLine(w, "%d\t%s\t%s", entry.BorrowCount, entry.Title, entry.Author)
		}
	})
}

func runOverdue(ctx context.Context, a *app, args []string) error {
	if err := parseFlags(a.flagSet("overdue"), args); err != nil {
		return err
	}

	handler, err := wrapQuery[overduepatrons.Query, overduepatrons.OverduePatrons](a,
		overduepatrons.NewQueryHandler(a.store, overduepatrons.WithFineCalculator(a.fines)))
	if err != nil {
		return err
	}

	result, err := handler.Handle(ctx, overduepatrons.BuildQuery(a.today))
	if err != nil {
		return err
	}

	return a.out.print(result, func(w io.Writer) {
		for _, entry := range result.Entries {
			writeLine(w, "%s\t%s\tdue %s\t%d days\tfine %s",
				entry.PatronName, entry.ItemTitle, circulation.FormatDate(entry.DueDate),
				entry.DaysOverdue, entry.FineSoFar.StringFixed(2))
		}
		writeLine(w, "%d overdue loan(s)", result.Count)
	})
}
