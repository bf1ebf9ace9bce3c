package sessions

import (
	"errors"
	"time"
)

var (
	ErrSessionNotFound  = errors.New("session not found")
	ErrDuplicateSession = errors.New("session already exists")
	ErrSessionActive    = errors.New("session already active")
	ErrEmptyToken       = errors.New("session token cannot be empty")
)

// State is the lifecycle stage of a [Session].
type State int

const (
	Pending State = iota // created at /login, no tokens yet
	Active               // code exchanged, tokens present
)

func (s State) String() string {
	switch s {
	case Pending:
		return "pending"
	case Active:
		return "active"
	default:
		return "unknown"
	}
}

// Session is the record stored under a state token.
type Session struct {
	Token        string
	AccessToken  string
	RefreshToken string
	ExpiresAt    time.Time
	CreatedAt    time.Time
}

// State reports whether the session has completed the token exchange.
func (s *Session) State() State {
	if s.AccessToken == "" {
		return Pending
	}
	return Active
}

// Expired reports whether an Active session's access token has expired at now.
func (s *Session) Expired(now time.Time) bool {
	return !s.ExpiresAt.IsZero() && !now.Before(s.ExpiresAt)
}

// Fields are merged into a session by [Store.Update] and [Store.Activate]. Zero values are ignored.
type Fields struct {
	AccessToken  string
	RefreshToken string
	ExpiresAt    time.Time
}

func (f Fields) apply(s *Session) {
	if f.AccessToken != "" {
		s.AccessToken = f.AccessToken
	}
	if f.RefreshToken != "" {
		s.RefreshToken = f.RefreshToken
	}
	if !f.ExpiresAt.IsZero() {
		s.ExpiresAt = f.ExpiresAt
	}
}

// Store maps state tokens to sessions.
type Store interface {
	Create(token string, createdAt time.Time) error // Create inserts a Pending session, failing on duplicates
	Get(token string) (*Session, error)             // Get returns a copy of the session
	Update(token string, fields Fields) error       // Update merges fields into an existing session
	Activate(token string, fields Fields) error     // Activate merges fields only while the session is Pending
	Has(token string) bool                          // Has reports whether token is present
	Delete(token string) error                      // Delete removes the session
}
