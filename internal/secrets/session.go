package secrets

import (
	"errors"
	"fmt"
)

// sessionKey is the store key holding the logged-in identifier.
const sessionKey = "session_identifier"

// ErrNoSession is returned when nobody is logged in.
var ErrNoSession = errors.New("not logged in")

// Session remembers which identifier last logged in successfully.
type Session struct {
	store Store
}

// NewSession wraps a Store.
func NewSession(store Store) *Session {
	return &Session{store: store}
}

// Begin records identifier as the current session, replacing any previous one.
func (s *Session) Begin(identifier string) error {
	if err := s.store.Set(sessionKey, identifier); err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}
	return nil
}

// Current returns the logged-in identifier or ErrNoSession.
func (s *Session) Current() (string, error) {
	id, err := s.store.Get(sessionKey)
	if errors.Is(err, ErrNotFound) || (err == nil && id == "") {
		return "", ErrNoSession
	}
	if err != nil {
		return "", fmt.Errorf("failed to read session: %w", err)
	}
	return id, nil
}

// End forgets the session. Ending when nobody is logged in returns ErrNoSession.
func (s *Session) End() error {
	// Some keyring backends delete missing keys silently.
	if _, err := s.Current(); err != nil {
		return err
	}
	err := s.store.Delete(sessionKey)
	if errors.Is(err, ErrNotFound) {
		return ErrNoSession
	}
	if err != nil {
		return fmt.Errorf("failed to clear session: %w", err)
	}
	return nil
}
