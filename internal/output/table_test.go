package output

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTruncateString(t *testing.T) {
	tests := []struct {
		name     string
		s        string
		maxLen   int
		expected string
	}{
		{name: "shorter than max", s: "hello", maxLen: 10, expected: "hello"},
		{name: "equal to max", s: "hello", maxLen: 5, expected: "hello"},
		{name: "longer than max", s: "hello world", maxLen: 8, expected: "hello..."},
		{name: "maxLen less than 3", s: "hello", maxLen: 2, expected: "he"},
		{name: "maxLen exactly 3", s: "hello", maxLen: 3, expected: "..."},
		{name: "empty string", s: "", maxLen: 5, expected: ""},
		{name: "maxLen zero", s: "hello", maxLen: 0, expected: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, TruncateString(tt.s, tt.maxLen))
		})
	}
}

func TestPadString(t *testing.T) {
	tests := []struct {
		name     string
		s        string
		width    int
		expected string
	}{
		{name: "shorter than width", s: "hi", width: 5, expected: "hi   "},
		{name: "equal to width", s: "hello", width: 5, expected: "hello"},
		{name: "longer than width", s: "hello!", width: 5, expected: "hello!"},
		{name: "empty string", s: "", width: 3, expected: "   "},
		{name: "width zero", s: "hi", width: 0, expected: "hi"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, PadString(tt.s, tt.width))
		})
	}
}

func TestRenderTable(t *testing.T) {
	var buf bytes.Buffer
	columns := []Column{
		{Name: "Identifier", Key: "ID"},
		{Name: "Note", Key: "Note", Width: 8},
	}
	rows := []map[string]string{
		{"ID": "alice1", "Note": "short"},
		{"ID": "bob_2", "Note": "a very long note"},
	}

	RenderTable(&buf, columns, rows)

	out := buf.String()
	assert.Contains(t, out, "Identifier")
	assert.Contains(t, out, "alice1")
	assert.Contains(t, out, "a ver...")
	assert.NotContains(t, out, "a very long note")
}

func TestRenderTableEmpty(t *testing.T) {
	var buf bytes.Buffer
	RenderTable(&buf, []Column{{Name: "Identifier", Key: "ID"}}, nil)
	assert.Empty(t, buf.String())
}
