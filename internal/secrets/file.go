package secrets

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
)

// FileStore implements the Store interface using an AES-256-GCM encrypted JSON file.
// This is the fallback where the OS keyring is unavailable (WSL, headless, Docker).
type FileStore struct {
	path string
	key  []byte
}

// NewFileStore creates a file-backed store named session.enc inside dir.
// If password is empty a machine-specific key is used instead.
func NewFileStore(dir, password string) (*FileStore, error) {
	if password == "" {
		password = machineID()
		warnOnce("WARNING: Using machine-specific encryption key. For better security, set CODA_STORE_PASSWORD.")
	}
	// TODO: derive the key with scrypt instead of a single sha256 round
	hash := sha256.Sum256([]byte(password))

	if err := os.MkdirAll(dir, 0700); err != nil {
		return nil, fmt.Errorf("failed to create session directory: %w", err)
	}

	return &FileStore{
		path: filepath.Join(dir, "session.enc"),
		key:  hash[:],
	}, nil
}

func machineID() string {
	hostname, _ := os.Hostname()
	username := os.Getenv("USER")
	if username == "" {
		username = os.Getenv("USERNAME") // Windows fallback
	}
	return fmt.Sprintf("%s@%s", username, hostname)
}

func (s *FileStore) aead() (cipher.AEAD, error) {
	block, err := aes.NewCipher(s.key)
	if err != nil {
		return nil, fmt.Errorf("failed to create cipher: %w", err)
	}
	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("failed to create GCM: %w", err)
	}
	return gcm, nil
}

// seal encrypts plaintext with a random nonce prepended to the ciphertext.
func (s *FileStore) seal(plaintext []byte) ([]byte, error) {
	gcm, err := s.aead()
	if err != nil {
		return nil, err
	}

	nonce := make([]byte, gcm.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return nil, fmt.Errorf("failed to generate nonce: %w", err)
	}

	return gcm.Seal(nonce, nonce, plaintext, nil), nil
}

func (s *FileStore) open(ciphertext []byte) ([]byte, error) {
	gcm, err := s.aead()
	if err != nil {
		return nil, err
	}

	nonceSize := gcm.NonceSize()
	if len(ciphertext) < nonceSize {
		return nil, fmt.Errorf("ciphertext too short")
	}

	nonce, ciphertext := ciphertext[:nonceSize], ciphertext[nonceSize:]
	plaintext, err := gcm.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return nil, fmt.Errorf("decryption failed: %w", err)
	}
	return plaintext, nil
}

// read returns an empty map if the file doesn't exist.
func (s *FileStore) read() (map[string]string, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return make(map[string]string), nil
		}
		return nil, fmt.Errorf("failed to read session file: %w", err)
	}
	if len(data) == 0 {
		return make(map[string]string), nil
	}

	plaintext, err := s.open(data)
	if err != nil {
		return nil, fmt.Errorf("failed to decrypt session file: %w", err)
	}

	values := make(map[string]string)
	if err := json.Unmarshal(plaintext, &values); err != nil {
		return nil, fmt.Errorf("failed to parse session file: %w", err)
	}
	return values, nil
}

func (s *FileStore) write(values map[string]string) error {
	plaintext, err := json.Marshal(values)
	if err != nil {
		return fmt.Errorf("failed to serialize session file: %w", err)
	}

	ciphertext, err := s.seal(plaintext)
	if err != nil {
		return err
	}

	if err := os.WriteFile(s.path, ciphertext, 0600); err != nil {
		return fmt.Errorf("failed to write session file: %w", err)
	}
	return nil
}

// Get retrieves a value by key.
func (s *FileStore) Get(key string) (string, error) {
	values, err := s.read()
	if err != nil {
		return "", err
	}
	value, ok := values[key]
	if !ok {
		return "", ErrNotFound
	}
	return value, nil
}

// Set stores a value.
func (s *FileStore) Set(key, value string) error {
	values, err := s.read()
	if err != nil {
		return err
	}
	values[key] = value
	return s.write(values)
}

// Delete removes a value.
func (s *FileStore) Delete(key string) error {
	values, err := s.read()
	if err != nil {
		return err
	}
	if _, ok := values[key]; !ok {
		return ErrNotFound
	}
	delete(values, key)
	return s.write(values)
}

// List returns all keys in sorted order.
func (s *FileStore) List() ([]string, error) {
	values, err := s.read()
	if err != nil {
		return nil, err
	}
	keys := make([]string, 0, len(values))
	for k := range values {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys, nil
}
