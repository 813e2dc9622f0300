package circulation

import (
	"time"

	"github.com/google/uuid"
)

// Session identifies the patron on whose behalf commands are issued.
// It is created by a login and passed explicitly, there is no global "current user".
type Session struct {
	PatronID   uuid.UUID `json:"patron_id"`
	PatronName string    `json:"patron_name"`
	StartedAt  time.Time `json:"started_at"`
}

// StartSession creates a Session for the patron.
func StartSession(patron Patron, startedAt time.Time) Session {
	return Session{
		PatronID:   patron.ID,
		PatronName: patron.Name,
		StartedAt:  startedAt.UTC(),
	}
}
