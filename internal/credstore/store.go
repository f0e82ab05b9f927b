package credstore

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"syscall"

	"go.uber.org/zap"
)

// Delimiter separates the identifier from the secret token on each line.
// It is outside the identifier charset, so the first occurrence always ends the identifier.
const Delimiter = "|"

// Record is one registered identifier and its secret token.
type Record struct {
	Identifier  string
	SecretToken string
}

// FileStore keeps records as newline-terminated "identifier|token" lines in a flat file.
// The file is opened and closed within every call; nothing is held between calls.
// Lines are only ever appended.
type FileStore struct {
	path     string
	lockPath string
	logger   *zap.Logger
}

// NewFileStore returns a store backed by the file at path. The file does not need to exist.
func NewFileStore(path string, logger *zap.Logger) *FileStore {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &FileStore{
		path:     path,
		lockPath: path + ".lock",
		logger:   logger.Named("credstore"),
	}
}

// Path returns the backing file path.
func (s *FileStore) Path() string {
	return s.path
}

// Exists reports whether any line carries exactly this identifier.
// A missing store is the same as an empty one.
func (s *FileStore) Exists(ctx context.Context, identifier string) (bool, error) {
	found := false
	err := s.scan(ctx, func(rec Record) bool {
		if rec.Identifier == identifier {
			found = true
			return false
		}
		return true
	})
	return found, err
}

// LoadAll reads every record into a map keyed by identifier.
// If an identifier were ever duplicated the last line would win.
func (s *FileStore) LoadAll(ctx context.Context) (map[string]string, error) {
	records := make(map[string]string)
	err := s.scan(ctx, func(rec Record) bool {
		records[rec.Identifier] = rec.SecretToken
		return true
	})
	if err != nil {
		return nil, err
	}
	return records, nil
}

// Append writes one record line, creating the file and its directory if needed.
// It does not check uniqueness: callers must have confirmed Exists is false.
// Any failure to open or write wraps ErrStoreUnwritable.
func (s *FileStore) Append(ctx context.Context, identifier, token string) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0700); err != nil {
		return fmt.Errorf("%w: create directory: %v", ErrStoreUnwritable, err)
	}

	lock, err := acquireLock(ctx, s.lockPath, false)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrStoreUnwritable, err)
	}
	defer lock.Unlock()

	f, err := os.OpenFile(s.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0600)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrStoreUnwritable, err)
	}

	line := identifier + Delimiter + token + "\n"
	if _, err := f.WriteString(line); err != nil {
		f.Close()
		return fmt.Errorf("%w: write record: %v", ErrStoreUnwritable, err)
	}
	if err := f.Sync(); err != nil {
		f.Close()
		return fmt.Errorf("%w: sync: %v", ErrStoreUnwritable, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("%w: close: %v", ErrStoreUnwritable, err)
	}

	s.logger.Debug("record appended", zap.String("identifier", identifier), zap.String("path", s.path))
	return nil
}

// scan calls fn for each well-formed record in file order until fn returns false.
func (s *FileStore) scan(ctx context.Context, fn func(Record) bool) error {
	// A path below a regular file can never hold records yet.
	if _, err := os.Stat(s.path); errors.Is(err, os.ErrNotExist) || errors.Is(err, syscall.ENOTDIR) {
		return nil
	}

	lock, err := acquireLock(ctx, s.lockPath, true)
	switch {
	case err == nil:
		defer lock.Unlock()
	case errors.Is(err, os.ErrPermission):
		s.logger.Debug("reading without lock", zap.String("path", s.path), zap.Error(err))
	default:
		return err
	}

	f, err := os.Open(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("open credential store: %w", err)
	}
	defer f.Close()

	return scanRecords(f, fn)
}

// scanRecords parses record lines from r. Empty lines and lines without the
// delimiter are skipped. Lines have no length limit.
func scanRecords(r io.Reader, fn func(Record) bool) error {
	br := bufio.NewReader(r)
	for {
		line, err := br.ReadString('\n')
		if err != nil && !errors.Is(err, io.EOF) {
			return fmt.Errorf("read credential store: %w", err)
		}
		line = strings.TrimSuffix(strings.TrimSuffix(line, "\n"), "\r")
		if line != "" {
			if id, token, ok := strings.Cut(line, Delimiter); ok {
				if !fn(Record{Identifier: id, SecretToken: token}) {
					return nil
				}
			}
		}
		if err != nil {
			return nil
		}
	}
}
