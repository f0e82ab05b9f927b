package secrets

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/99designs/keyring"
	"github.com/adrg/xdg"
)

// KeyringStore implements the Store interface using the OS keyring.
type KeyringStore struct {
	ring keyring.Keyring
}

// NewKeyringStore opens the platform keyring.
// Returns an error if the keyring is unavailable on this platform.
func NewKeyringStore() (*KeyringStore, error) {
	cfg := keyring.Config{
		ServiceName:              ServiceName,
		KeychainTrustApplication: true, // macOS: don't prompt every access
		FileDir:                  filepath.Join(xdg.DataHome, ServiceName, "keyring"),
		FilePasswordFunc:         keyring.TerminalPrompt,
	}

	ring, err := keyring.Open(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to open keyring: %w", err)
	}

	return NewKeyringStoreFrom(ring), nil
}

// NewKeyringStoreFrom wraps an already opened keyring.
func NewKeyringStoreFrom(ring keyring.Keyring) *KeyringStore {
	return &KeyringStore{ring: ring}
}

// Get retrieves a value by key from the keyring.
func (s *KeyringStore) Get(key string) (string, error) {
	item, err := s.ring.Get(key)
	if err != nil {
		if errors.Is(err, keyring.ErrKeyNotFound) {
			return "", ErrNotFound
		}
		return "", fmt.Errorf("keyring get failed: %w", err)
	}
	return string(item.Data), nil
}

// Set stores a value in the keyring.
func (s *KeyringStore) Set(key, value string) error {
	item := keyring.Item{
		Key:   key,
		Data:  []byte(value),
		Label: ServiceName + " " + key,
	}
	if err := s.ring.Set(item); err != nil {
		return fmt.Errorf("keyring set failed: %w", err)
	}
	return nil
}

// Delete removes a value from the keyring.
func (s *KeyringStore) Delete(key string) error {
	if err := s.ring.Remove(key); err != nil {
		if errors.Is(err, keyring.ErrKeyNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("keyring delete failed: %w", err)
	}
	return nil
}

// List returns all keys stored in the keyring.
func (s *KeyringStore) List() ([]string, error) {
	keys, err := s.ring.Keys()
	if err != nil {
		return nil, fmt.Errorf("keyring list failed: %w", err)
	}
	return keys, nil
}
