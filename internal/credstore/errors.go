package credstore

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidIdentifier is matched by every identifier ShapeError.
	ErrInvalidIdentifier = errors.New("invalid identifier")
	// ErrInvalidSecret is matched by every secret ShapeError.
	ErrInvalidSecret = errors.New("invalid secret")
	// ErrDuplicateIdentifier is returned when registering an identifier that already has a record.
	ErrDuplicateIdentifier = errors.New("identifier already registered")
	// ErrSecretMismatch is returned when the confirmation differs from the secret.
	ErrSecretMismatch = errors.New("secrets do not match")
	// ErrStoreUnwritable is returned when the backing file cannot be opened or written for append.
	ErrStoreUnwritable = errors.New("credential store is not writable")
	// ErrNotFound is returned when authenticating an identifier with no record.
	ErrNotFound = errors.New("identifier not found")
	// ErrBadCredential is returned when the secret does not match the stored token.
	ErrBadCredential = errors.New("incorrect secret")
)

// ShapeError reports the first format rule an identifier or secret violates.
type ShapeError struct {
	Field string // "identifier" or "secret"
	Rule  string
}

func (e *ShapeError) Error() string {
	return fmt.Sprintf("%s %s", e.Field, e.Rule)
}

// Is lets callers match a ShapeError against ErrInvalidIdentifier or ErrInvalidSecret.
func (e *ShapeError) Is(target error) bool {
	switch target {
	case ErrInvalidIdentifier:
		return e.Field == fieldIdentifier
	case ErrInvalidSecret:
		return e.Field == fieldSecret
	}
	return false
}
