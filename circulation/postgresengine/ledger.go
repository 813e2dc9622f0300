package postgresengine

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/doug-martin/goqu/v9"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/AntonStoeckl/library-circulation-go/circulation"
	"github.com/AntonStoeckl/library-circulation-go/circulation/postgresengine/internal/adapters"
)

const (
	actionSelectLoans = "select_loans"
	actionInsertLoan  = "insert_loan"
	actionCloseLoan   = "close_loan"
	castDate          = "?::date"
	castNumeric       = "?::numeric"
)

func selectLoans() *goqu.SelectDataset {
	return dialect.
		From(tableLoans).
		Select(
			goqu.L(castIDText),
			goqu.L("patron_id::text"),
			goqu.L("item_id::text"),
			goqu.L("to_char(borrow_date, 'YYYY-MM-DD')"),
			goqu.L("to_char(due_date, 'YYYY-MM-DD')"),
			goqu.L("COALESCE(to_char(return_date, 'YYYY-MM-DD'), '')"),
			goqu.L("fine::text"),
		).
		Order(goqu.C(colSeq).Asc())
}

func scanLoan(rows adapters.DBRows) (circulation.Loan, error) {
	var id, patronID, itemID, borrowDate, dueDate, returnDate, fine string

	if err := rows.Scan(&id, &patronID, &itemID, &borrowDate, &dueDate, &returnDate, &fine); err != nil {
		return circulation.Loan{}, err
	}

	var loan circulation.Loan
	var err error

	if loan.ID, err = uuid.Parse(id); err != nil {
		return circulation.Loan{}, err
	}

	if loan.PatronID, err = uuid.Parse(patronID); err != nil {
		return circulation.Loan{}, err
	}

	if loan.ItemID, err = uuid.Parse(itemID); err != nil {
		return circulation.Loan{}, err
	}

	if loan.BorrowDate, err = circulation.ParseDate(borrowDate); err != nil {
		return circulation.Loan{}, err
	}

	if loan.DueDate, err = circulation.ParseDate(dueDate); err != nil {
		return circulation.Loan{}, err
	}

	if returnDate != "" {
		parsed, parseErr := circulation.ParseDate(returnDate)
		if parseErr != nil {
			return circulation.Loan{}, parseErr
		}

		loan.ReturnDate = &parsed
	}

	if loan.Fine, err = decimal.NewFromString(fine); err != nil {
		return circulation.Loan{}, err
	}

	return loan, nil
}

// FindOpenLoanByItem returns the open loan of the item, if any.
func (s *Store) FindOpenLoanByItem(ctx context.Context, itemID uuid.UUID) (circulation.Loan, bool, error) {
	return s.reader().FindOpenLoanByItem(ctx, itemID)
}

// FindLoansByPatron returns open and closed loans of the patron in insertion order.
func (s *Store) FindLoansByPatron(ctx context.Context, patronID uuid.UUID) ([]circulation.Loan, error) {
	return s.reader().FindLoansByPatron(ctx, patronID)
}

// FindAllLoans returns all loans in insertion order.
func (s *Store) FindAllLoans(ctx context.Context) ([]circulation.Loan, error) {
	return s.reader().FindAllLoans(ctx)
}

func (tx *pgTx) FindOpenLoanByItem(ctx context.Context, itemID uuid.UUID) (circulation.Loan, bool, error) {
	stmt := selectLoans().Where(
		goqu.C(colItemID).Eq(itemID.String()),
		goqu.C(colReturnDate).IsNull(),
	)

	return first(collect(ctx, tx, actionSelectLoans, stmt, scanLoan))
}

func (tx *pgTx) FindLoansByPatron(ctx context.Context, patronID uuid.UUID) ([]circulation.Loan, error) {
	return collect(ctx, tx, actionSelectLoans, selectLoans().Where(goqu.C(colPatronID).Eq(patronID.String())), scanLoan)
}

func (tx *pgTx) FindAllLoans(ctx context.Context) ([]circulation.Loan, error) {
	return collect(ctx, tx, actionSelectLoans, selectLoans(), scanLoan)
}

// RecordLoan inserts an open loan. The partial unique index on open loans rejects
// a second open loan for the same item with ErrInvariantViolation.
func (tx *pgTx) RecordLoan(ctx context.Context, loan circulation.Loan) error {
	stmt := dialect.Insert(tableLoans).Rows(goqu.Record{
		colID:         loan.ID.String(),
		colPatronID:   loan.PatronID.String(),
		colItemID:     loan.ItemID.String(),
		colBorrowDate: goqu.L(castDate, circulation.FormatDate(loan.BorrowDate)),
		colDueDate:    goqu.L(castDate, circulation.FormatDate(loan.DueDate)),
		colFine:       goqu.L(castNumeric, loan.Fine.String()),
	})

	if _, err := tx.exec(ctx, actionInsertLoan, stmt); err != nil {
		constraint, unique := uniqueViolation(err)

		switch {
		case unique && constraint == constraintOpenLoanPerItem:
			return errors.Join(circulation.ErrInvariantViolation, fmt.Errorf("item %s already has an open loan", loan.ItemID))
		case unique:
			return errors.Join(circulation.ErrDuplicateID, fmt.Errorf("loan %s", loan.ID))
		default:
			return err
		}
	}

	return nil
}

// CloseLoan sets return date and fine of an open loan in one statement.
func (tx *pgTx) CloseLoan(ctx context.Context, loanID uuid.UUID, returnDate time.Time, fine decimal.Decimal) error {
	stmt := dialect.Update(tableLoans).
		Set(goqu.Record{
			colReturnDate: goqu.L(castDate, circulation.FormatDate(returnDate)),
			colFine:       goqu.L(castNumeric, fine.String()),
		}).
		Where(
			goqu.C(colID).Eq(loanID.String()),
			goqu.C(colReturnDate).IsNull(),
		)

	rowsAffected, err := tx.exec(ctx, actionCloseLoan, stmt)
	if err != nil {
		return err
	}

	if rowsAffected > 0 {
		return nil
	}

	_, exists, err := first(collect(ctx, tx, actionSelectLoans, selectLoans().Where(goqu.C(colID).Eq(loanID.String())), scanLoan))
	if err != nil {
		return err
	}

	if !exists {
		return errors.Join(circulation.ErrNotFound, fmt.Errorf("loan %s", loanID))
	}

	return circulation.ErrAlreadyClosed
}
