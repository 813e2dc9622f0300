package helper

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/AntonStoeckl/library-circulation-go/circulation"
)

// SpyNotification is one captured notification.
type SpyNotification struct {
	PatronID   uuid.UUID
	PatronName string
	Message    string
}

// NotifierSpy is a circulation.Notifier that captures notifications for testing.
type NotifierSpy struct {
	notifications []SpyNotification
	mu            sync.Mutex
}

// NewNotifierSpy creates a new NotifierSpy.
func NewNotifierSpy() *NotifierSpy {
	return &NotifierSpy{notifications: make([]SpyNotification, 0)}
}

// Notify implements the circulation.Notifier interface.
func (s *NotifierSpy) Notify(_ context.Context, patron circulation.Patron, message string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.notifications = append(s.notifications, SpyNotification{
		PatronID:   patron.ID,
		PatronName: patron.Name,
		Message:    message,
	})
}

// Notifications returns a copy of all captured notifications.
func (s *NotifierSpy) Notifications() []SpyNotification {
	s.mu.Lock()
	defer s.mu.Unlock()

	notifications := make([]SpyNotification, len(s.notifications))
	copy(notifications, s.notifications)

	return notifications
}

// Count returns the number of captured notifications.
func (s *NotifierSpy) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return len(s.notifications)
}
