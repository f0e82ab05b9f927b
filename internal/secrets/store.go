// Package secrets persists small per-user values, such as the logged-in
// identifier, in the OS keyring or an encrypted file.
package secrets

import "errors"

// Store is the interface for secret storage
type Store interface {
	Get(key string) (string, error)
	Set(key, value string) error
	Delete(key string) error
	List() ([]string, error)
}

// ErrNotFound is returned when a key is not found in the store
var ErrNotFound = errors.New("key not found")

// ServiceName is the service identifier for keyring storage
const ServiceName = "coda"
