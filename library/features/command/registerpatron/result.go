package registerpatron

import (
	"github.com/AntonStoeckl/library-circulation-go/circulation"
)

// Result is the business result of a registration.
type Result struct {
	Outcome circulation.Outcome
	Reason  string
	Patron  circulation.Patron
}

// BusinessOutcome implements shell.CommandResult.
func (r Result) BusinessOutcome() circulation.Outcome {
	return r.Outcome
}
