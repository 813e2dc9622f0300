package core

import (
	"time"

	"github.com/AntonStoeckl/library-circulation-go/circulation"
)

// DomainEvent describes something that happened (or failed to happen) in the library.
type DomainEvent interface {
	EventName() string
	IsErrorEvent() bool
}

// DomainEvents is a list of DomainEvent.
type DomainEvents []DomainEvent

// SomethingHasHappened is embedded by every event and carries the calendar day it refers to.
type SomethingHasHappened struct {
	OccurredOn time.Time
}

// OccurredOnDay normalizes t to the calendar day an event is recorded for.
func OccurredOnDay(t time.Time) SomethingHasHappened {
	return SomethingHasHappened{OccurredOn: circulation.ToDate(t)}
}

// SomethingHasFailed is embedded by every failure event.
type SomethingHasFailed struct {
	SomethingHasHappened
	Outcome circulation.Outcome
	Reason  string
}

// IsErrorEvent returns true for all failure events.
func (SomethingHasFailed) IsErrorEvent() bool { return true }

// Err returns the sentinel error matching the failure outcome.
func (f SomethingHasFailed) Err() error { return f.Outcome.Err() }

func failed(outcome circulation.Outcome, reason string, today time.Time) SomethingHasFailed {
	return SomethingHasFailed{
		SomethingHasHappened: OccurredOnDay(today),
		Outcome:              outcome,
		Reason:               reason,
	}
}
