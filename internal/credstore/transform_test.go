package credstore

import (
	"math/rand/v2"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTransform(t *testing.T) {
	tests := []struct {
		name     string
		secret   string
		expected string
	}{
		{name: "empty", secret: "", expected: ""},
		{name: "single char", secret: "A", expected: "72#"},
		{name: "mixed", secret: "Passw0rd!", expected: "87#104#122#122#126#55#121#107#40#"},
		{name: "space and pipe", secret: " |", expected: "39#131#"},
		{name: "multibyte code point", secret: "é", expected: "240#"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Transform(tt.secret))
		})
	}
}

func TestTransformDeterministic(t *testing.T) {
	for _, s := range []string{"Passw0rd!", "WrongPass1!", "a_B-3xyz"} {
		assert.Equal(t, Transform(s), Transform(s))
	}
}

func TestTransformNeverEmitsDelimiter(t *testing.T) {
	token := Transform("a|b|c" + string(rune(0x1F600)))
	assert.NotContains(t, token, Delimiter)
	assert.True(t, strings.HasSuffix(token, "#"))
}

func TestTransformDistinctInputsDistinctTokens(t *testing.T) {
	const charset = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789!@#$%^&*()-_=+[]{};:,.<>?/|~"
	rng := rand.New(rand.NewPCG(42, 7))

	randomSecret := func() string {
		n := MinSecretLen + rng.IntN(MaxSecretLen-MinSecretLen+1)
		var b strings.Builder
		for i := 0; i < n; i++ {
			b.WriteByte(charset[rng.IntN(len(charset))])
		}
		return b.String()
	}

	seen := make(map[string]string)
	for i := 0; i < 5000; i++ {
		s := randomSecret()
		token := Transform(s)
		if prev, ok := seen[token]; ok && prev != s {
			t.Fatalf("token collision: %q and %q both encode to %q", prev, s, token)
		}
		seen[token] = s
	}

	// Code points 1,23 and 12,3 would both render "123" without the separator.
	assert.NotEqual(t, Transform(string([]rune{1, 23})), Transform(string([]rune{12, 3})))
}
