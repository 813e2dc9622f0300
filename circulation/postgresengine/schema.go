package postgresengine

import (
	"context"
	"errors"
	"time"

	"github.com/AntonStoeckl/library-circulation-go/circulation"
)

const (
	tableCategories = "categories"
	tableItems      = "items"
	tablePatrons    = "patrons"
	tableLoans      = "loans"

	colSeq         = "seq"
	colID          = "id"
	colName        = "name"
	colDescription = "description"
	colTitle       = "title"
	colAuthor      = "author"
	colAvailable   = "available"
	colCategoryID  = "category_id"
	colCategory    = "category"
	colStaffID     = "staff_id"
	colDepartment  = "department"
	colYear        = "year_of_study"
	colPatronID    = "patron_id"
	colItemID      = "item_id"
	colBorrowDate  = "borrow_date"
	colDueDate     = "due_date"
	colReturnDate  = "return_date"
	colFine        = "fine"

	// constraintOpenLoanPerItem enforces that an item has at most one open loan.
	constraintOpenLoanPerItem = "loans_open_item_idx"
)

var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS categories (
		id          INTEGER PRIMARY KEY,
		name        TEXT NOT NULL,
		description TEXT NOT NULL DEFAULT ''
	)`,
	`CREATE TABLE IF NOT EXISTS items (
		seq         BIGSERIAL PRIMARY KEY,
		id          UUID NOT NULL UNIQUE,
		title       TEXT NOT NULL,
		author      TEXT NOT NULL,
		available   BOOLEAN NOT NULL DEFAULT TRUE,
		category_id INTEGER NOT NULL DEFAULT 0
	)`,
	`CREATE TABLE IF NOT EXISTS patrons (
		seq           BIGSERIAL PRIMARY KEY,
		id            UUID NOT NULL UNIQUE,
		name          TEXT NOT NULL,
		category      TEXT NOT NULL,
		staff_id      TEXT NOT NULL DEFAULT '',
		department    TEXT NOT NULL DEFAULT '',
		year_of_study INTEGER NOT NULL DEFAULT 0
	)`,
	`CREATE INDEX IF NOT EXISTS patrons_name_idx ON patrons (name)`,
	`CREATE TABLE IF NOT EXISTS loans (
		seq         BIGSERIAL PRIMARY KEY,
		id          UUID NOT NULL UNIQUE,
		patron_id   UUID NOT NULL,
		item_id     UUID NOT NULL,
		borrow_date DATE NOT NULL,
		due_date    DATE NOT NULL,
		return_date DATE NULL,
		fine        NUMERIC(10, 2) NOT NULL DEFAULT 0
	)`,
	`CREATE UNIQUE INDEX IF NOT EXISTS ` + constraintOpenLoanPerItem + ` ON loans (item_id) WHERE return_date IS NULL`,
	`CREATE INDEX IF NOT EXISTS loans_patron_idx ON loans (patron_id)`,
}

// EnsureSchema creates the tables and indexes if they do not exist yet.
func (s *Store) EnsureSchema(ctx context.Context) error {
	start := time.Now()

	for _, statement := range schemaStatements {
		if _, err := s.db.Exec(ctx, statement); err != nil {
			s.logError(ctx, logMsgDBExecFailed, err, logAttrQuery, statement)
			return errors.Join(circulation.ErrExecFailed, err)
		}
	}

	s.logOperation(ctx, logMsgSchemaEnsured,
		logAttrStatementCount, len(schemaStatements),
		logAttrDurationMS, durationToMilliseconds(time.Since(start)))

	return nil
}
