package memengine

import (
	"errors"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/AntonStoeckl/library-circulation-go/circulation"
)

// state holds items, patrons and loans. Lists preserve insertion order.
type state struct {
	categories  []circulation.Category
	items       map[uuid.UUID]circulation.Item
	itemOrder   []uuid.UUID
	patrons     map[uuid.UUID]circulation.Patron
	patronOrder []uuid.UUID
	loans       []circulation.Loan
	loanIndex   map[uuid.UUID]int
	openByItem  map[uuid.UUID]int
}

func newState() *state {
	return &state{
		categories:  make([]circulation.Category, 0),
		items:       make(map[uuid.UUID]circulation.Item),
		itemOrder:   make([]uuid.UUID, 0),
		patrons:     make(map[uuid.UUID]circulation.Patron),
		patronOrder: make([]uuid.UUID, 0),
		loans:       make([]circulation.Loan, 0),
		loanIndex:   make(map[uuid.UUID]int),
		openByItem:  make(map[uuid.UUID]int),
	}
}

// clone copies the state. Loans share ReturnDate pointers, which is fine because
// closing a loan assigns a new pointer instead of writing through the old one.
func (s *state) clone() *state {
	c := &state{
		categories:  slices.Clone(s.categories),
		items:       make(map[uuid.UUID]circulation.Item, len(s.items)),
		itemOrder:   slices.Clone(s.itemOrder),
		patrons:     make(map[uuid.UUID]circulation.Patron, len(s.patrons)),
		patronOrder: slices.Clone(s.patronOrder),
		loans:       slices.Clone(s.loans),
		loanIndex:   make(map[uuid.UUID]int, len(s.loanIndex)),
		openByItem:  make(map[uuid.UUID]int, len(s.openByItem)),
	}

	for k, v := range s.items {
		c.items[k] = v
	}

	for k, v := range s.patrons {
		c.patrons[k] = v
	}

	for k, v := range s.loanIndex {
		c.loanIndex[k] = v
	}

	for k, v := range s.openByItem {
		c.openByItem[k] = v
	}

	return c
}

/*** catalog ***/

func (s *state) findItemByID(id uuid.UUID) (circulation.Item, bool) {
	item, found := s.items[id]
	return item, found
}

func (s *state) itemsWhere(match func(circulation.Item) bool) []circulation.Item {
	result := make([]circulation.Item, 0)
	for _, id := range s.itemOrder {
		if item := s.items[id]; match(item) {
			result = append(result, item)
		}
	}

	return result
}

func (s *state) addItem(item circulation.Item) error {
	if _, exists := s.items[item.ID]; exists {
		return errors.Join(circulation.ErrDuplicateID, errors.New("item "+item.ID.String()))
	}

	s.items[item.ID] = item
	s.itemOrder = append(s.itemOrder, item.ID)

	return nil
}

func (s *state) updateItem(item circulation.Item) error {
	if _, exists := s.items[item.ID]; !exists {
		return errors.Join(circulation.ErrNotFound, errors.New("item "+item.ID.String()))
	}

	s.items[item.ID] = item

	return nil
}

func (s *state) deleteItem(id uuid.UUID) error {
	if _, exists := s.items[id]; !exists {
		return errors.Join(circulation.ErrNotFound, errors.New("item "+id.String()))
	}

	if _, open := s.openByItem[id]; open {
		return circulation.ErrHasOpenLoan
	}

	delete(s.items, id)
	s.itemOrder = slices.DeleteFunc(s.itemOrder, func(other uuid.UUID) bool { return other == id })

	return nil
}

func (s *state) addCategory(category circulation.Category) error {
	for _, existing := range s.categories {
		if existing.ID == category.ID {
			return circulation.ErrDuplicateID
		}
	}

	s.categories = append(s.categories, category)

	return nil
}

/*** patrons ***/

func (s *state) findPatronByID(id uuid.UUID) (circulation.Patron, bool) {
	patron, found := s.patrons[id]
	return patron, found
}

func (s *state) patronsWhere(match func(circulation.Patron) bool) []circulation.Patron {
	result := make([]circulation.Patron, 0)
	for _, id := range s.patronOrder {
		if patron := s.patrons[id]; match(patron) {
			result = append(result, patron)
		}
	}

	return result
}

func (s *state) addPatron(patron circulation.Patron) error {
	if _, exists := s.patrons[patron.ID]; exists {
		return errors.Join(circulation.ErrDuplicateID, errors.New("patron "+patron.ID.String()))
	}

	s.patrons[patron.ID] = patron
	s.patronOrder = append(s.patronOrder, patron.ID)

	return nil
}

func (s *state) updatePatron(patron circulation.Patron) error {
	if _, exists := s.patrons[patron.ID]; !exists {
		return errors.Join(circulation.ErrNotFound, errors.New("patron "+patron.ID.String()))
	}

	s.patrons[patron.ID] = patron

	return nil
}

func (s *state) deletePatron(id uuid.UUID) error {
	if _, exists := s.patrons[id]; !exists {
		return errors.Join(circulation.ErrNotFound, errors.New("patron "+id.String()))
	}

	for _, idx := range s.openByItem {
		if s.loans[idx].PatronID == id {
			return circulation.ErrHasOpenLoan
		}
	}

	delete(s.patrons, id)
	s.patronOrder = slices.DeleteFunc(s.patronOrder, func(other uuid.UUID) bool { return other == id })

	return nil
}

/*** ledger ***/

func (s *state) findOpenLoanByItem(itemID uuid.UUID) (circulation.Loan, bool) {
	idx, open := s.openByItem[itemID]
	if !open {
		return circulation.Loan{}, false
	}

	return s.loans[idx], true
}

func (s *state) loansWhere(match func(circulation.Loan) bool) []circulation.Loan {
	result := make([]circulation.Loan, 0)
	for _, loan := range s.loans {
		if match(loan) {
			result = append(result, loan)
		}
	}

	return result
}

func (s *state) recordLoan(loan circulation.Loan) error {
	if _, open := s.openByItem[loan.ItemID]; open {
		return errors.Join(circulation.ErrInvariantViolation, errors.New("item "+loan.ItemID.String()+" already has an open loan"))
	}

	if _, exists := s.loanIndex[loan.ID]; exists {
		return errors.Join(circulation.ErrDuplicateID, errors.New("loan "+loan.ID.String()))
	}

	loan.ReturnDate = nil
	s.loans = append(s.loans, loan)
	s.loanIndex[loan.ID] = len(s.loans) - 1
	s.openByItem[loan.ItemID] = len(s.loans) - 1

	return nil
}

func (s *state) closeLoan(loanID uuid.UUID, returnDate time.Time, fine decimal.Decimal) error {
	idx, exists := s.loanIndex[loanID]
	if !exists {
		return errors.Join(circulation.ErrNotFound, errors.New("loan "+loanID.String()))
	}

	loan := s.loans[idx]
	if !loan.IsOpen() {
		return circulation.ErrAlreadyClosed
	}

	s.loans[idx] = loan.Closed(returnDate, fine)
	delete(s.openByItem, loan.ItemID)

	return nil
}

func containsFold(s string, fragment string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(fragment))
}
