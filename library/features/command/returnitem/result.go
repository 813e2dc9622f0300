package returnitem

import (
	"github.com/shopspring/decimal"

	"github.com/AntonStoeckl/library-circulation-go/circulation"
)

// Result is the business result of a return. Loan is the closed loan, set on success only.
type Result struct {
	Outcome     circulation.Outcome
	Reason      string
	Loan        circulation.Loan
	Item        circulation.Item
	Fine        decimal.Decimal
	OverdueDays int
}

// BusinessOutcome implements shell.CommandResult.
func (r Result) BusinessOutcome() circulation.Outcome {
	return r.Outcome
}
