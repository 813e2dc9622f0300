package postgresengine

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/doug-martin/goqu/v9"
	"github.com/doug-martin/goqu/v9/exp"
	"github.com/google/uuid"

	"github.com/AntonStoeckl/library-circulation-go/circulation"
	"github.com/AntonStoeckl/library-circulation-go/circulation/postgresengine/internal/adapters"
)

const (
	actionSelectItems      = "select_items"
	actionLockItem         = "lock_item"
	actionInsertItem       = "insert_item"
	actionUpdateItem       = "update_item"
	actionDeleteItem       = "delete_item"
	actionSelectCategories = "select_categories"
	actionInsertCategory   = "insert_category"
	castIDText             = "id::text"
)

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// containsPattern turns a search fragment into an ILIKE pattern matching it literally.
func containsPattern(fragment string) string {
	return "%" + likeEscaper.Replace(fragment) + "%"
}

func selectItems() *goqu.SelectDataset {
	return dialect.
		From(tableItems).
		Select(goqu.L(castIDText), colTitle, colAuthor, colAvailable, colCategoryID).
		Order(goqu.C(colSeq).Asc())
}

func scanItem(rows adapters.DBRows) (circulation.Item, error) {
	var item circulation.Item
	var id string

	if err := rows.Scan(&id, &item.Title, &item.Author, &item.Available, &item.CategoryID); err != nil {
		return circulation.Item{}, err
	}

	parsed, err := uuid.Parse(id)
	if err != nil {
		return circulation.Item{}, err
	}

	item.ID = parsed

	return item, nil
}

// FindItemByID returns the item with the given id.
func (s *Store) FindItemByID(ctx context.Context, id uuid.UUID) (circulation.Item, bool, error) {
	return s.reader().FindItemByID(ctx, id)
}

// FindAllItems returns all items in insertion order.
func (s *Store) FindAllItems(ctx context.Context) ([]circulation.Item, error) {
	return s.reader().FindAllItems(ctx)
}

// FindItemsByTitle returns items whose title contains fragment, ignoring case.
func (s *Store) FindItemsByTitle(ctx context.Context, fragment string) ([]circulation.Item, error) {
	return s.reader().FindItemsByTitle(ctx, fragment)
}

// FindItemsByAuthor returns items whose author contains fragment, ignoring case.
func (s *Store) FindItemsByAuthor(ctx context.Context, fragment string) ([]circulation.Item, error) {
	return s.reader().FindItemsByAuthor(ctx, fragment)
}

// FindAvailableItems returns items which are not on loan.
func (s *Store) FindAvailableItems(ctx context.Context) ([]circulation.Item, error) {
	return s.reader().FindAvailableItems(ctx)
}

// FindCategories returns all categories ordered by id.
func (s *Store) FindCategories(ctx context.Context) ([]circulation.Category, error) {
	return s.reader().FindCategories(ctx)
}

func (tx *pgTx) FindItemByID(ctx context.Context, id uuid.UUID) (circulation.Item, bool, error) {
	return first(collect(ctx, tx, actionSelectItems, selectItems().Where(goqu.C(colID).Eq(id.String())), scanItem))
}

// LockItem reads the item and holds a row lock on it until the transaction ends.
func (tx *pgTx) LockItem(ctx context.Context, id uuid.UUID) (circulation.Item, bool, error) {
	stmt := selectItems().Where(goqu.C(colID).Eq(id.String())).ForUpdate(exp.Wait)

	return first(collect(ctx, tx, actionLockItem, stmt, scanItem))
}

func (tx *pgTx) FindAllItems(ctx context.Context) ([]circulation.Item, error) {
	return collect(ctx, tx, actionSelectItems, selectItems(), scanItem)
}

func (tx *pgTx) FindItemsByTitle(ctx context.Context, fragment string) ([]circulation.Item, error) {
	stmt := selectItems().Where(goqu.C(colTitle).ILike(containsPattern(fragment)))

	return collect(ctx, tx, actionSelectItems, stmt, scanItem)
}

func (tx *pgTx) FindItemsByAuthor(ctx context.Context, fragment string) ([]circulation.Item, error) {
	stmt := selectItems().Where(goqu.C(colAuthor).ILike(containsPattern(fragment)))

	return collect(ctx, tx, actionSelectItems, stmt, scanItem)
}

func (tx *pgTx) FindAvailableItems(ctx context.Context) ([]circulation.Item, error) {
	return collect(ctx, tx, actionSelectItems, selectItems().Where(goqu.C(colAvailable).IsTrue()), scanItem)
}

func (tx *pgTx) FindCategories(ctx context.Context) ([]circulation.Category, error) {
	stmt := dialect.
		From(tableCategories).
		Select(colID, colName, colDescription).
		Order(goqu.C(colID).Asc())

	return collect(ctx, tx, actionSelectCategories, stmt, func(rows adapters.DBRows) (circulation.Category, error) {
		var category circulation.Category
		err := rows.Scan(&category.ID, &category.Name, &category.Description)

		return category, err
	})
}

func (tx *pgTx) AddItem(ctx context.Context, item circulation.Item) error {
	stmt := dialect.Insert(tableItems).Rows(goqu.Record{
		colID:         item.ID.String(),
		colTitle:      item.Title,
		colAuthor:     item.Author,
		colAvailable:  item.Available,
		colCategoryID: item.CategoryID,
	})

	if _, err := tx.exec(ctx, actionInsertItem, stmt); err != nil {
		if _, unique := uniqueViolation(err); unique {
			return errors.Join(circulation.ErrDuplicateID, fmt.Errorf("item %s", item.ID))
		}

		return err
	}

	return nil
}

func (tx *pgTx) UpdateItem(ctx context.Context, item circulation.Item) error {
	stmt := dialect.Update(tableItems).
		Set(goqu.Record{
			colTitle:      item.Title,
			colAuthor:     item.Author,
			colAvailable:  item.Available,
			colCategoryID: item.CategoryID,
		}).
		Where(goqu.C(colID).Eq(item.ID.String()))

	rowsAffected, err := tx.exec(ctx, actionUpdateItem, stmt)
	if err != nil {
		return err
	}

	if rowsAffected == 0 {
		return errors.Join(circulation.ErrNotFound, fmt.Errorf("item %s", item.ID))
	}

	return nil
}

func (tx *pgTx) DeleteItem(ctx context.Context, id uuid.UUID) error {
	_, open, err := tx.FindOpenLoanByItem(ctx, id)
	if err != nil {
		return err
	}

	if open {
		return errors.Join(circulation.ErrHasOpenLoan, fmt.Errorf("item %s", id))
	}

	rowsAffected, err := tx.exec(ctx, actionDeleteItem, dialect.Delete(tableItems).Where(goqu.C(colID).Eq(id.String())))
	if err != nil {
		return err
	}

	if rowsAffected == 0 {
		return errors.Join(circulation.ErrNotFound, fmt.Errorf("item %s", id))
	}

	return nil
}

func (tx *pgTx) AddCategory(ctx context.Context, category circulation.Category) error {
	stmt := dialect.Insert(tableCategories).Rows(goqu.Record{
		colID:          category.ID,
		colName:        category.Name,
		colDescription: category.Description,
	})

	if _, err := tx.exec(ctx, actionInsertCategory, stmt); err != nil {
		if _, unique := uniqueViolation(err); unique {
			return errors.Join(circulation.ErrDuplicateID, fmt.Errorf("category %d", category.ID))
		}

		return err
	}

	return nil
}
