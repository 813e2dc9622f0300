package core

import (
	"time"

	"github.com/AntonStoeckl/library-circulation-go/circulation"
)

const (
	ItemAddedToCatalogEventName     = "ItemAddedToCatalog"
	AddingItemFailedEventName       = "AddingItemFailed"
	ItemRemovedFromCatalogEventName = "ItemRemovedFromCatalog"
	RemovingItemFailedEventName     = "RemovingItemFailed"
)

// ItemAddedToCatalog is the result of adding a new, available item.
type ItemAddedToCatalog struct {
	SomethingHasHappened
	Item circulation.Item
}

// BuildItemAddedToCatalog creates an ItemAddedToCatalog event.
func BuildItemAddedToCatalog(item circulation.Item, today time.Time) ItemAddedToCatalog {
	return ItemAddedToCatalog{SomethingHasHappened: OccurredOnDay(today), Item: item}
}

func (ItemAddedToCatalog) EventName() string  { return ItemAddedToCatalogEventName }
func (ItemAddedToCatalog) IsErrorEvent() bool { return false }

// AddingItemFailed is the result of a rejected add.
type AddingItemFailed struct {
	SomethingHasFailed
}

// BuildAddingItemFailed creates an AddingItemFailed event.
func BuildAddingItemFailed(outcome circulation.Outcome, reason string, today time.Time) AddingItemFailed {
	return AddingItemFailed{SomethingHasFailed: failed(outcome, reason, today)}
}

func (AddingItemFailed) EventName() string { return AddingItemFailedEventName }

// ItemRemovedFromCatalog is the result of deleting an item which was not on loan.
type ItemRemovedFromCatalog struct {
	SomethingHasHappened
	Item circulation.Item
}

// BuildItemRemovedFromCatalog creates an ItemRemovedFromCatalog event.
func BuildItemRemovedFromCatalog(item circulation.Item, today time.Time) ItemRemovedFromCatalog {
	return ItemRemovedFromCatalog{SomethingHasHappened: OccurredOnDay(today), Item: item}
}

func (ItemRemovedFromCatalog) EventName() string  { return ItemRemovedFromCatalogEventName }
func (ItemRemovedFromCatalog) IsErrorEvent() bool { return false }

// RemovingItemFailed is the result of a rejected removal.
type RemovingItemFailed struct {
	SomethingHasFailed
}

// BuildRemovingItemFailed creates a RemovingItemFailed event.
func BuildRemovingItemFailed(outcome circulation.Outcome, reason string, today time.Time) RemovingItemFailed {
	return RemovingItemFailed{SomethingHasFailed: failed(outcome, reason, today)}
}

func (RemovingItemFailed) EventName() string { return RemovingItemFailedEventName }
