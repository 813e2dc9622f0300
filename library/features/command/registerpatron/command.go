package registerpatron

import (
	"time"

	"github.com/google/uuid"

	"github.com/AntonStoeckl/library-circulation-go/circulation"
)

const (
	commandType = "RegisterPatron"
)

// Command represents the intent to register a patron.
type Command struct {
	PatronID uuid.UUID
	Name     string
	Category circulation.PatronCategory
	Today    time.Time
}

// CommandType returns the type identifier for this command, used for observability and routing.
func (c Command) CommandType() string {
	return commandType
}

// BuildCommand creates a new Command.
func BuildCommand(patronID uuid.UUID, name string, category circulation.PatronCategory, today time.Time) Command {
	return Command{
		PatronID: patronID,
		Name:     name,
		Category: category,
		Today:    circulation.ToDate(today),
	}
}

// Patron returns the patron described by the command.
func (c Command) Patron() circulation.Patron {
	return circulation.BuildPatron(c.PatronID, c.Name, c.Category)
}
