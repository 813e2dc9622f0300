package core

import (
	"time"

	"github.com/AntonStoeckl/library-circulation-go/circulation"
)

const (
	PatronRegisteredEventName        = "PatronRegistered"
	RegisteringPatronFailedEventName = "RegisteringPatronFailed"
	PatronRemovedEventName           = "PatronRemoved"
	RemovingPatronFailedEventName    = "RemovingPatronFailed"
)

// PatronRegistered is the result of registering a new patron.
type PatronRegistered struct {
	SomethingHasHappened
	Patron circulation.Patron
}

// BuildPatronRegistered creates a PatronRegistered event.
func BuildPatronRegistered(patron circulation.Patron, today time.Time) PatronRegistered {
	return PatronRegistered{SomethingHasHappened: OccurredOnDay(today), Patron: patron}
}

func (PatronRegistered) EventName() string  { return PatronRegisteredEventName }
func (PatronRegistered) IsErrorEvent() bool { return false }

// RegisteringPatronFailed is the result of a rejected registration.
type RegisteringPatronFailed struct {
	SomethingHasFailed
}

// BuildRegisteringPatronFailed creates a RegisteringPatronFailed event.
func BuildRegisteringPatronFailed(outcome circulation.Outcome, reason string, today time.Time) RegisteringPatronFailed {
	return RegisteringPatronFailed{SomethingHasFailed: failed(outcome, reason, today)}
}

func (RegisteringPatronFailed) EventName() string { return RegisteringPatronFailedEventName }

// PatronRemoved is the result of deleting a patron without open loans.
type PatronRemoved struct {
	SomethingHasHappened
	Patron circulation.Patron
}

// BuildPatronRemoved creates a PatronRemoved event.
func BuildPatronRemoved(patron circulation.Patron, today time.Time) PatronRemoved {
	return PatronRemoved{SomethingHasHappened: OccurredOnDay(today), Patron: patron}
}

func (PatronRemoved) EventName() string  { return PatronRemovedEventName }
func (PatronRemoved) IsErrorEvent() bool { return false }

// RemovingPatronFailed is the result of a rejected patron removal.
type RemovingPatronFailed struct {
	SomethingHasFailed
}

// BuildRemovingPatronFailed creates a RemovingPatronFailed event.
func BuildRemovingPatronFailed(outcome circulation.Outcome, reason string, today time.Time) RemovingPatronFailed {
	return RemovingPatronFailed{SomethingHasFailed: failed(outcome, reason, today)}
}

func (RemovingPatronFailed) EventName() string { return RemovingPatronFailedEventName }
