package login

import (
	"context"
	"errors"

	"github.com/AntonStoeckl/library-circulation-go/circulation"
)

const (
	logMsgAmbiguousName = "ambiguous patron name, logging in the first registered match"
	logAttrPatronName   = "patron_name"
	logAttrPatronID     = "patron_id"
	logAttrMatches      = "matches"
)

// ErrEmptyName is returned, joined with circulation.ErrInvalidInput, for a blank name.
var ErrEmptyName = errors.New("name must not be empty")

// QueryHandler looks up patrons by name.
type QueryHandler struct {
	patrons          circulation.PatronReader
	strict           bool
	logger           circulation.Logger
	contextualLogger circulation.ContextualLogger
}

// Option configures a QueryHandler.
type Option func(*QueryHandler)

// WithStrictNameMatching makes an ambiguous name fail with circulation.ErrAmbiguousPatronName.
func WithStrictNameMatching() Option {
	return func(h *QueryHandler) {
		h.strict = true
	}
}

// WithLogger sets the logger for the ambiguous name warning.
func WithLogger(logger circulation.Logger) Option {
	return func(h *QueryHandler) {
		h.logger = logger
	}
}

// WithContextualLogger sets a context-aware logger, it takes precedence over WithLogger.
func WithContextualLogger(logger circulation.ContextualLogger) Option {
	return func(h *QueryHandler) {
		h.contextualLogger = logger
	}
}

// NewQueryHandler creates a QueryHandler.
func NewQueryHandler(patrons circulation.PatronReader, opts ...Option) QueryHandler {
	handler := QueryHandler{patrons: patrons}
	for _, opt := range opts {
		opt(&handler)
	}

	return handler
}

// Handle returns a Session for the patron with the query's name.
// A just registered patron must be able to log in, so the lookup reads with strong consistency.
func (h QueryHandler) Handle(ctx context.Context, query Query) (circulation.Session, error) {
	if query.Name == "" {
		return circulation.Session{}, errors.Join(circulation.ErrInvalidInput, ErrEmptyName)
	}

	matches, err := h.patrons.FindPatronsByName(circulation.WithStrongConsistency(ctx), query.Name)
	if err != nil {
		return circulation.Session{}, err
	}

	session, ambiguous, err := ProjectSession(query, matches, h.strict)
	if err != nil {
		return circulation.Session{}, err
	}

	if ambiguous {
		h.logWarn(ctx, logMsgAmbiguousName,
			logAttrPatronName, query.Name,
			logAttrMatches, len(matches),
			logAttrPatronID, session.PatronID.String(),
		)
	}

	return session, nil
}

func (h QueryHandler) logWarn(ctx context.Context, msg string, args ...any) {
	if h.contextualLogger != nil {
		h.contextualLogger.WarnContext(ctx, msg, args...)
	} else if h.logger != nil {
		h.logger.Warn(msg, args...)
	}
}
