package bank

import "strconv"

// Sequence hands out prefixed, monotonically increasing identifiers.
// Each Bank owns its own sequences.
type Sequence struct {
	prefix string
	next   int
}

// NewSequence starts a sequence whose first identifier is prefix+start.
func NewSequence(prefix string, start int) *Sequence {
	return &Sequence{prefix: prefix, next: start}
}

// Next returns the next identifier.
func (s *Sequence) Next() string {
	id := s.prefix + strconv.Itoa(s.next)
	s.next++
	return id
}
