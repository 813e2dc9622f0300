package main

import (
	"context"
	"io"

	"github.com/google/uuid"

	"github.com/AntonStoeckl/library-circulation-go/circulation"
	"github.com/AntonStoeckl/library-circulation-go/library/features/command/additem"
	"github.com/AntonStoeckl/library-circulation-go/library/features/command/registerpatron"
)

var seedNamespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("https://github.com/AntonStoeckl/library-circulation-go/seed"))

var seedCategories = []circulation.Category{
	{ID: 1, Name: "Fiction", Description: "Novels and stories"},
	{ID: 2, Name: "Computer Science", Description: "Programming and computing"},
}

var seedPatrons = []circulation.Patron{
	circulation.BuildPatron(seedID("patron/student1"), "student1",
		circulation.Standard{Department: "Computer Science", YearOfStudy: 3}),
	circulation.BuildPatron(seedID("patron/librarian1"), "librarian1", circulation.Staff{StaffID: "EMP001"}),
}

var seedItem = circulation.BuildItem(seedID("item/the-hobbit"), "The Hobbit", "J.R.R. Tolkien", 1)

func seedID(name string) uuid.UUID {
	return uuid.NewSHA1(seedNamespace, []byte(name))
}

type seedReport struct {
	Categories []circulation.Category `json:"categories"`
	Patrons    []circulation.Patron   `json:"patrons"`
	Items      []circulation.Item     `json:"items"`
}

// runSeed loads the sample data. Patrons are skipped when their name is taken, the item
// only goes in when the catalog is empty, so seeding twice changes nothing.
func runSeed(ctx context.Context, a *app, args []string) error {
	if err := parseFlags(a.flagSet("seed"), args); err != nil {
		return err
	}

	var report seedReport

	added, err := seedMissingCategories(ctx, a.store)
	if err != nil {
		return err
	}
	report.Categories = added

	registerHandler, err := wrapCommand[registerpatron.Command, registerpatron.Result](a, registerpatron.NewCommandHandler(a.store))
	if err != nil {
		return err
	}

	for _, patron := range seedPatrons {
		existing, err := a.store.FindPatronsByName(ctx, patron.Name)
		if err != nil {
			return err
		}

		if len(existing) > 0 {
			continue
		}

		result, err := registerHandler.Handle(ctx, registerpatron.BuildCommand(patron.ID, patron.Name, patron.Category, a.today))
		if err != nil {
			return err
		}

		if err := rejection(result.Outcome, result.Reason); err != nil {
			return err
		}

		report.Patrons = append(report.Patrons, result.Patron)
	}

	items, err := a.store.FindAllItems(ctx)
	if err != nil {
		return err
	}

	if len(items) == 0 {
		addHandler, err := wrapCommand[additem.Command, additem.Result](a, additem.NewCommandHandler(a.store))
		if err != nil {
			return err
		}

		result, err := addHandler.Handle(ctx,
			additem.BuildCommand(seedItem.ID, seedItem.Title, seedItem.Author, seedItem.CategoryID, a.today))
		if err != nil {
			return err
		}

		if err := rejection(result.Outcome, result.Reason); err != nil {
			return err
		}

		report.Items = append(report.Items, result.Item)
	}

	return a.out.print(report, func(w io.Writer) {
		writeLine(w, "seeded %d categories, %d patrons, %d items",
			len(report.Categories), len(report.Patrons), len(report.Items))
	})
}

func seedMissingCategories(ctx context.Context, store circulation.Transactor) ([]circulation.Category, error) {
	var added []circulation.Category

	err := store.InTransaction(ctx, func(tx circulation.Tx) error {
		added = nil

		existing, err := tx.FindCategories(ctx)
		if err != nil {
			return err
		}

		known := make(map[int]bool, len(existing))
		for _, category := range existing {
			known[category.ID] = true
		}

		for _, category := range seedCategories {
			if known[category.ID] {
				continue
			}

			if err := tx.AddCategory(ctx, category); err != nil {
				return err
			}

			added = append(added, category)
		}

		return nil
	})

	return added, err
}
