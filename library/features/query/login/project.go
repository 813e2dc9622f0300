package login

import (
	"errors"
	"fmt"

	"github.com/AntonStoeckl/library-circulation-go/circulation"
)

// ErrUnknownPatronName is returned, joined with circulation.ErrNotFound, when no patron has the name.
var ErrUnknownPatronName = errors.New("no patron with this name")

// ProjectSession picks the patron to log in from the name matches in registration order.
// It is a pure function. ambiguous reports that the first of several matches was picked.
func ProjectSession(query Query, matches []circulation.Patron, strict bool) (session circulation.Session, ambiguous bool, err error) {
	switch {
	case len(matches) == 0:
		return circulation.Session{}, false, errors.Join(circulation.ErrNotFound, ErrUnknownPatronName, fmt.Errorf("name %q", query.Name))

	case len(matches) > 1 && strict:
		return circulation.Session{}, true, errors.Join(
			circulation.ErrAmbiguousPatronName,
			fmt.Errorf("name %q matches %d patrons", query.Name, len(matches)),
		)

	default:
		return circulation.StartSession(matches[0], query.At), len(matches) > 1, nil
	}
}
