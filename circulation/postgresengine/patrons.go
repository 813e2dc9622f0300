package postgresengine

import (
	"context"
	"errors"
	"fmt"

	"github.com/doug-martin/goqu/v9"
	"github.com/doug-martin/goqu/v9/exp"
	"github.com/google/uuid"

	"github.com/AntonStoeckl/library-circulation-go/circulation"
	"github.com/AntonStoeckl/library-circulation-go/circulation/postgresengine/internal/adapters"
)

const (
	actionSelectPatrons = "select_patrons"
	actionLockPatron    = "lock_patron"
	actionInsertPatron  = "insert_patron"
	actionUpdatePatron  = "update_patron"
	actionDeletePatron  = "delete_patron"
)

func selectPatrons() *goqu.SelectDataset {
	return dialect.
		From(tablePatrons).
		Select(goqu.L(castIDText), colName, colCategory, colStaffID, colDepartment, colYear).
		Order(goqu.C(colSeq).Asc())
}

func scanPatron(rows adapters.DBRows) (circulation.Patron, error) {
	var id, name, categoryName, staffID, department string
	var year int

	if err := rows.Scan(&id, &name, &categoryName, &staffID, &department, &year); err != nil {
		return circulation.Patron{}, err
	}

	parsed, err := uuid.Parse(id)
	if err != nil {
		return circulation.Patron{}, err
	}

	category, err := circulation.PatronCategoryFrom(categoryName, staffID, department, year)
	if err != nil {
		return circulation.Patron{}, err
	}

	return circulation.Patron{ID: parsed, Name: name, Category: category}, nil
}

func patronRecord(patron circulation.Patron) goqu.Record {
	categoryName, staffID, department, year := patron.Flatten()

	return goqu.Record{
		colName:       patron.Name,
		colCategory:   categoryName,
		colStaffID:    staffID,
		colDepartment: department,
		colYear:       year,
	}
}

// FindPatronByID returns the patron with the given id.
func (s *Store) FindPatronByID(ctx context.Context, id uuid.UUID) (circulation.Patron, bool, error) {
	return s.reader().FindPatronByID(ctx, id)
}

// FindPatronsByName returns all patrons with exactly this name in registration order.
func (s *Store) FindPatronsByName(ctx context.Context, name string) ([]circulation.Patron, error) {
	return s.reader().FindPatronsByName(ctx, name)
}

// FindAllPatrons returns all patrons in registration order.
func (s *Store) FindAllPatrons(ctx context.Context) ([]circulation.Patron, error) {
	return s.reader().FindAllPatrons(ctx)
}

func (tx *pgTx) FindPatronByID(ctx context.Context, id uuid.UUID) (circulation.Patron, bool, error) {
	return first(collect(ctx, tx, actionSelectPatrons, selectPatrons().Where(goqu.C(colID).Eq(id.String())), scanPatron))
}

// LockPatron reads the patron and holds a row lock on it until the transaction ends.
// Concurrent checkouts of the same patron are serialized by this lock, which keeps the
// borrowing limit intact.
func (tx *pgTx) LockPatron(ctx context.Context, id uuid.UUID) (circulation.Patron, bool, error) {
	stmt := selectPatrons().Where(goqu.C(colID).Eq(id.String())).ForUpdate(exp.Wait)

	return first(collect(ctx, tx, actionLockPatron, stmt, scanPatron))
}

func (tx *pgTx) FindPatronsByName(ctx context.Context, name string) ([]circulation.Patron, error) {
	return collect(ctx, tx, actionSelectPatrons, selectPatrons().Where(goqu.C(colName).Eq(name)), scanPatron)
}

func (tx *pgTx) FindAllPatrons(ctx context.Context) ([]circulation.Patron, error) {
	return collect(ctx, tx, actionSelectPatrons, selectPatrons(), scanPatron)
}

func (tx *pgTx) AddPatron(ctx context.Context, patron circulation.Patron) error {
	record := patronRecord(patron)
	record[colID] = patron.ID.String()

	if _, err := tx.exec(ctx, actionInsertPatron, dialect.Insert(tablePatrons).Rows(record)); err != nil {
		if _, unique := uniqueViolation(err); unique {
			return errors.Join(circulation.ErrDuplicateID, fmt.Errorf("patron %s", patron.ID))
		}

		return err
	}

	return nil
}

func (tx *pgTx) UpdatePatron(ctx context.Context, patron circulation.Patron) error {
	stmt := dialect.Update(tablePatrons).
		Set(patronRecord(patron)).
		Where(goqu.C(colID).Eq(patron.ID.String()))

	rowsAffected, err := tx.exec(ctx, actionUpdatePatron, stmt)
	if err != nil {
		return err
	}

	if rowsAffected == 0 {
		return errors.Join(circulation.ErrNotFound, fmt.Errorf("patron %s", patron.ID))
	}

	return nil
}

func (tx *pgTx) DeletePatron(ctx context.Context, id uuid.UUID) error {
	loans, err := tx.FindLoansByPatron(ctx, id)
	if err != nil {
		return err
	}

	for _, loan := range loans {
		if loan.IsOpen() {
			return errors.Join(circulation.ErrHasOpenLoan, fmt.Errorf("patron %s", id))
		}
	}

	rowsAffected, err := tx.exec(ctx, actionDeletePatron, dialect.Delete(tablePatrons).Where(goqu.C(colID).Eq(id.String())))
	if err != nil {
		return err
	}

	if rowsAffected == 0 {
		return errors.Join(circulation.ErrNotFound, fmt.Errorf("patron %s", id))
	}

	return nil
}
