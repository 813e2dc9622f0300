package borrowitem

import (
	"github.com/AntonStoeckl/library-circulation-go/circulation"
)

// Result is the business result of a borrow. Loan and Item are set on success only.
type Result struct {
	Outcome circulation.Outcome
	Reason  string
	Loan    circulation.Loan
	Item    circulation.Item
}

// BusinessOutcome implements shell.CommandResult.
func (r Result) BusinessOutcome() circulation.Outcome {
	return r.Outcome
}
