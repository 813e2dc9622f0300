package circulation

import (
	"errors"
	"strings"

	"github.com/google/uuid"
	jsoniter "github.com/json-iterator/go"
)

// StandardBorrowLimit is the maximum number of open loans of a Standard patron.
const StandardBorrowLimit = 5

const (
	CategoryNameStandard = "standard"
	CategoryNameStaff    = "staff"
)

// PatronCategory is the closed set of patron kinds: Standard or Staff.
type PatronCategory interface {
	CategoryName() string
	isPatronCategory()
}

// Standard patrons (students in the reference library) may hold StandardBorrowLimit open loans.
type Standard struct {
	Department  string
	YearOfStudy int
}

// Staff patrons (librarians) have no borrowing limit.
type Staff struct {
	StaffID string
}

// CategoryName returns CategoryNameStandard.
func (Standard) CategoryName() string { return CategoryNameStandard }

func (Standard) isPatronCategory() {}

// CategoryName returns CategoryNameStaff.
func (Staff) CategoryName() string { return CategoryNameStaff }

func (Staff) isPatronCategory() {}

// BorrowLimit returns the maximum number of open loans for the category.
// limited is false for categories without a limit.
func BorrowLimit(category PatronCategory) (limit int, limited bool) {
	switch category.(type) {
	case Staff:
		return 0, false
	default:
		return StandardBorrowLimit, true
	}
}

// PatronCategoryFrom rebuilds a PatronCategory from its flattened storage representation.
func PatronCategoryFrom(name string, staffID string, department string, yearOfStudy int) (PatronCategory, error) {
	switch name {
	case CategoryNameStandard:
		return Standard{Department: department, YearOfStudy: yearOfStudy}, nil
	case CategoryNameStaff:
		return Staff{StaffID: staffID}, nil
	default:
		return nil, errors.Join(ErrUnknownCategory, errors.New(name))
	}
}

// Patron is a registered borrower.
// Open loans are never stored on the patron, they are derived from the ledger.
type Patron struct {
	ID       uuid.UUID
	Name     string
	Category PatronCategory
}

// BuildPatron creates a new Patron.
func BuildPatron(id uuid.UUID, name string, category PatronCategory) Patron {
	return Patron{
		ID:       id,
		Name:     strings.TrimSpace(name),
		Category: category,
	}
}

// Validate checks name and category of the patron.
func (p Patron) Validate() error {
	if strings.TrimSpace(p.Name) == "" {
		return errors.Join(ErrInvalidInput, ErrEmptyPatronName)
	}

	switch c := p.Category.(type) {
	case Standard:
		return nil
	case Staff:
		if strings.TrimSpace(c.StaffID) == "" {
			return errors.Join(ErrInvalidInput, ErrEmptyStaffID)
		}
		return nil
	default:
		return errors.Join(ErrInvalidInput, ErrUnknownCategory)
	}
}

// Equal reports whether both patrons carry the same data.
func (p Patron) Equal(other Patron) bool {
	return p.ID == other.ID && p.Name == other.Name && p.Category == other.Category
}

// Flatten returns the storage representation of the category.
func (p Patron) Flatten() (categoryName string, staffID string, department string, yearOfStudy int) {
	switch c := p.Category.(type) {
	case Standard:
		return CategoryNameStandard, "", c.Department, c.YearOfStudy
	case Staff:
		return CategoryNameStaff, c.StaffID, "", 0
	default:
		return "", "", "", 0
	}
}

type patronJSON struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Category    string    `json:"category"`
	StaffID     string    `json:"staff_id,omitempty"`
	Department  string    `json:"department,omitempty"`
	YearOfStudy int       `json:"year_of_study,omitempty"`
}

// MarshalJSON flattens the category into a "category" discriminator plus its fields.
func (p Patron) MarshalJSON() ([]byte, error) {
	name, staffID, department, year := p.Flatten()

	return jsoniter.ConfigCompatibleWithStandardLibrary.Marshal(patronJSON{
		ID:          p.ID,
		Name:        p.Name,
		Category:    name,
		StaffID:     staffID,
		Department:  department,
		YearOfStudy: year,
	})
}

// UnmarshalJSON restores a Patron written by MarshalJSON.
func (p *Patron) UnmarshalJSON(data []byte) error {
	var dto patronJSON
	if err := jsoniter.ConfigCompatibleWithStandardLibrary.Unmarshal(data, &dto); err != nil {
		return err
	}

	category, err := PatronCategoryFrom(dto.Category, dto.StaffID, dto.Department, dto.YearOfStudy)
	if err != nil {
		return err
	}

	*p = Patron{ID: dto.ID, Name: dto.Name, Category: category}

	return nil
}
