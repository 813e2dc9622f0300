package circulation

import (
	"errors"
	"strings"

	"github.com/google/uuid"
)

// Item is a lendable catalog entry.
// Available is true iff no open Loan references the item. Only the circulation
// handlers change it, always in the same transaction as the ledger change.
type Item struct {
	ID         uuid.UUID `json:"id"`
	Title      string    `json:"title"`
	Author     string    `json:"author"`
	Available  bool      `json:"available"`
	CategoryID int       `json:"category_id"`
}

// Category groups items, e.g. "Fiction" or "Computer Science".
type Category struct {
	ID          int    `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

// BuildItem creates a new Item which is available for lending.
func BuildItem(id uuid.UUID, title string, author string, categoryID int) Item {
	return Item{
		ID:         id,
		Title:      strings.TrimSpace(title),
		Author:     strings.TrimSpace(author),
		Available:  true,
		CategoryID: categoryID,
	}
}

// Validate checks the metadata of the item.
func (i Item) Validate() error {
	if strings.TrimSpace(i.Title) == "" {
		return errors.Join(ErrInvalidInput, ErrEmptyTitle)
	}

	if strings.TrimSpace(i.Author) == "" {
		return errors.Join(ErrInvalidInput, ErrEmptyAuthor)
	}

	return nil
}

// SameMetadata reports whether both items describe the same catalog entry, ignoring availability.
func (i Item) SameMetadata(other Item) bool {
	return i.ID == other.ID &&
		i.Title == other.Title &&
		i.Author == other.Author &&
		i.CategoryID == other.CategoryID
}
