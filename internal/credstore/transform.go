package credstore

import (
	"strconv"
	"strings"
)

const (
	// tokenOffset is added to every code point before rendering.
	tokenOffset = 7
	// tokenSeparator terminates every encoded code point.
	tokenSeparator = '#'
)

// Transform obfuscates a secret so it is not stored verbatim.
// Each code point becomes its value plus 7 in decimal followed by '#'.
// This is NOT a hash: anyone who knows the scheme can reverse it.
// Tokens are only ever compared as opaque text and must never be decoded.
func Transform(secret string) string {
	var b strings.Builder
	b.Grow(len(secret) * 4)
	for _, r := range secret {
		b.WriteString(strconv.Itoa(int(r) + tokenOffset))
		b.WriteByte(tokenSeparator)
	}
	return b.String()
}
