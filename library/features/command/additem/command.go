package additem

import (
	"time"

	"github.com/google/uuid"

	"github.com/AntonStoeckl/library-circulation-go/circulation"
)

const (
	commandType = "AddItem"
)

// Command represents the intent to add a new item to the catalog.
type Command struct {
	ItemID     uuid.UUID
	Title      string
	Author     string
	CategoryID int
	Today      time.Time
}

// CommandType returns the type identifier for this command, used for observability and routing.
func (c Command) CommandType() string {
	return commandType
}

// BuildCommand creates a new Command.
func BuildCommand(itemID uuid.UUID, title string, author string, categoryID int, today time.Time) Command {
	return Command{
		ItemID:     itemID,
		Title:      title,
		Author:     author,
		CategoryID: categoryID,
		Today:      circulation.ToDate(today),
	}
}

// Item returns the new, available catalog item described by the command.
func (c Command) Item() circulation.Item {
	return circulation.BuildItem(c.ItemID, c.Title, c.Author, c.CategoryID)
}
