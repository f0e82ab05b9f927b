package credstore

import (
	"unicode"
	"unicode/utf8"
)

var errSecretEncoding = &ShapeError{Field: fieldSecret, Rule: "must be valid UTF-8 text"}

const (
	fieldIdentifier = "identifier"
	fieldSecret     = "secret"

	MinIdentifierLen = 3
	MaxIdentifierLen = 20
	MinSecretLen     = 6
	MaxSecretLen     = 50
)

// ValidateIdentifier checks the identifier format and returns the first rule it breaks.
// Identifiers are 3-20 ASCII characters, start with a letter and contain only
// letters, digits and underscores, so they can never contain the record delimiter.
func ValidateIdentifier(id string) error {
	if id == "" {
		return &ShapeError{Field: fieldIdentifier, Rule: "cannot be empty"}
	}
	if len(id) < MinIdentifierLen || len(id) > MaxIdentifierLen {
		return &ShapeError{Field: fieldIdentifier, Rule: "must be between 3 and 20 characters"}
	}
	for i := 0; i < len(id); i++ {
		c := id[i]
		if !isASCIILetter(c) && !isASCIIDigit(c) && c != '_' {
			return &ShapeError{Field: fieldIdentifier, Rule: "can only contain letters, numbers, and underscores"}
		}
	}
	if !isASCIILetter(id[0]) {
		return &ShapeError{Field: fieldIdentifier, Rule: "must start with a letter"}
	}
	return nil
}

// ValidateSecret checks length and character-class requirements of a plaintext secret.
func ValidateSecret(secret string) error {
	if secret == "" {
		return &ShapeError{Field: fieldSecret, Rule: "cannot be empty"}
	}
	// Invalid bytes all decode to U+FFFD and would share one token.
	if !utf8.ValidString(secret) {
		return errSecretEncoding
	}
	n := utf8.RuneCountInString(secret)
	if n < MinSecretLen || n > MaxSecretLen {
		return &ShapeError{Field: fieldSecret, Rule: "must be between 6 and 50 characters"}
	}

	var upper, lower, digit, special bool
	for _, r := range secret {
		switch {
		case unicode.IsUpper(r):
			upper = true
		case unicode.IsLower(r):
			lower = true
		case unicode.IsDigit(r):
			digit = true
		case !unicode.IsLetter(r):
			special = true
		}
	}

	switch {
	case !upper:
		return &ShapeError{Field: fieldSecret, Rule: "must contain at least one uppercase letter"}
	case !lower:
		return &ShapeError{Field: fieldSecret, Rule: "must contain at least one lowercase letter"}
	case !digit:
		return &ShapeError{Field: fieldSecret, Rule: "must contain at least one digit"}
	case !special:
		return &ShapeError{Field: fieldSecret, Rule: "must contain at least one special character"}
	}
	return nil
}

func isASCIILetter(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isASCIIDigit(c byte) bool {
	return c >= '0' && c <= '9'
}
