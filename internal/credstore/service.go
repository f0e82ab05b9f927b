package credstore

import (
	"context"
	"fmt"
	"sort"
	"unicode/utf8"

	"go.uber.org/zap"
)

// Repository is the persistence surface the Service needs. FileStore implements it.
type Repository interface {
	// Exists reports whether identifier already has a record.
	Exists(ctx context.Context, identifier string) (bool, error)
	// LoadAll returns every record keyed by identifier.
	LoadAll(ctx context.Context) (map[string]string, error)
	// Append adds one record without checking uniqueness.
	Append(ctx context.Context, identifier, token string) error
}

// Service runs the registration and authentication protocols over a Repository.
type Service struct {
	repo   Repository
	logger *zap.Logger
}

// NewService constructs a Service. A nil logger discards logs.
func NewService(repo Repository, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{repo: repo, logger: logger.Named("auth")}
}

// CheckAvailable validates the identifier shape and confirms no record uses it yet.
func (s *Service) CheckAvailable(ctx context.Context, identifier string) error {
	if err := ValidateIdentifier(identifier); err != nil {
		return err
	}
	return s.available(ctx, identifier)
}

// available reports ErrDuplicateIdentifier when identifier already has a record.
func (s *Service) available(ctx context.Context, identifier string) error {
	exists, err := s.repo.Exists(ctx, identifier)
	if err != nil {
		return err
	}
	if exists {
		return fmt.Errorf("%w: %q", ErrDuplicateIdentifier, identifier)
	}
	return nil
}

// Register stores a new identifier with the token of secret.
// Nothing is written unless every check passes.
func (s *Service) Register(ctx context.Context, identifier, secret, confirm string) error {
	if err := ValidateIdentifier(identifier); err != nil {
		return err
	}
	if err := ValidateSecret(secret); err != nil {
		return err
	}
	if err := s.available(ctx, identifier); err != nil {
		s.logger.Info("registration rejected", zap.String("identifier", identifier), zap.Error(err))
		return err
	}
	if secret != confirm {
		return ErrSecretMismatch
	}

	if err := s.repo.Append(ctx, identifier, Transform(secret)); err != nil {
		s.logger.Warn("registration failed", zap.String("identifier", identifier), zap.Error(err))
		return err
	}

	s.logger.Info("identifier registered", zap.String("identifier", identifier))
	return nil
}

// Authenticate checks secret against the stored token for identifier.
// It returns ErrNotFound or ErrBadCredential on failure.
func (s *Service) Authenticate(ctx context.Context, identifier, secret string) error {
	if identifier == "" {
		return &ShapeError{Field: fieldIdentifier, Rule: "cannot be empty"}
	}
	if secret == "" {
		return &ShapeError{Field: fieldSecret, Rule: "cannot be empty"}
	}
	if !utf8.ValidString(secret) {
		return errSecretEncoding
	}

	records, err := s.repo.LoadAll(ctx)
	if err != nil {
		return err
	}
	if len(records) == 0 {
		return fmt.Errorf("%w: no users registered", ErrNotFound)
	}

	stored, ok := records[identifier]
	if !ok {
		s.logger.Info("login for unknown identifier", zap.String("identifier", identifier))
		return fmt.Errorf("%w: %q", ErrNotFound, identifier)
	}
	if Transform(secret) != stored {
		s.logger.Info("login with wrong secret", zap.String("identifier", identifier))
		return ErrBadCredential
	}

	s.logger.Debug("login succeeded", zap.String("identifier", identifier))
	return nil
}

// Identifiers returns every registered identifier in sorted order.
func (s *Service) Identifiers(ctx context.Context) ([]string, error) {
	records, err := s.repo.LoadAll(ctx)
	if err != nil {
		return nil, err
	}
	ids := make([]string, 0, len(records))
	for id := range records {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids, nil
}

// Count returns the number of distinct registered identifiers.
func (s *Service) Count(ctx context.Context) (int, error) {
	records, err := s.repo.LoadAll(ctx)
	if err != nil {
		return 0, err
	}
	return len(records), nil
}
