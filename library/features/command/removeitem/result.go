package removeitem

import (
	"github.com/AntonStoeckl/library-circulation-go/circulation"
)

// Result is the business result of removing an item.
type Result struct {
	Outcome circulation.Outcome
	Reason  string
	Item    circulation.Item
}

// BusinessOutcome implements shell.CommandResult.
func (r Result) BusinessOutcome() circulation.Outcome {
	return r.Outcome
}
