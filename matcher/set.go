package matcher

import (
	"errors"
	"fmt"
	"math/bits"

	"github.com/coregx/byteseek/internal/byteutil"
	"github.com/coregx/byteseek/reader"
)

// SetMatcher matches any byte in an explicit set of values, or any byte
// outside the set when inverted. Membership is a 256-bit bitmap, so
// matching is constant time regardless of set size.
type SetMatcher struct {
	invertible
	bitmap [4]uint64
	count  int
}

// NewSetMatcher returns a matcher for the given set of byte values,
// matching the complement when inverted is set. Duplicate values are
// allowed; an empty set is an error.
func NewSetMatcher(values []byte, inverted bool) (*SetMatcher, error) {
	if len(values) == 0 {
		return nil, errors.New("set matcher requires at least one byte value")
	}
	m := &SetMatcher{invertible: invertible{inverted}}
	for _, value := range values {
		m.bitmap[value>>6] |= 1 << (value & 63)
	}
	for _, word := range m.bitmap {
		m.count += bits.OnesCount64(word)
	}
	return m, nil
}

// Matches reports whether value is in the set, or outside it when
// inverted.
func (m *SetMatcher) Matches(value byte) bool {
	inSet := m.bitmap[value>>6]&(1<<(value&63)) != 0
	return inSet != m.inverted
}

// MatchesBytes reports whether the byte at pos matches, with bounds
// checking.
func (m *SetMatcher) MatchesBytes(bytes []byte, pos int) bool {
	return pos >= 0 && pos < len(bytes) && m.Matches(bytes[pos])
}

// MatchesNoBoundsCheck reports whether the byte at pos matches; pos must
// already be known to be in range.
func (m *SetMatcher) MatchesNoBoundsCheck(bytes []byte, pos int) bool {
	return m.Matches(bytes[pos])
}

// MatchesReader reports whether the byte at the given absolute reader
// position matches.
func (m *SetMatcher) MatchesReader(windowReader reader.WindowReader, pos int64) (bool, error) {
	return matchReaderByte(m, windowReader, pos)
}

// MatchingBytes enumerates the set, or its complement when inverted.
func (m *SetMatcher) MatchingBytes() []byte {
	return enumerateMatching(m)
}

// NumberOfMatchingBytes returns the size of the set, or of its
// complement when inverted.
func (m *SetMatcher) NumberOfMatchingBytes() int {
	if m.inverted {
		return 256 - m.count
	}
	return m.count
}

// ToRegularExpression returns the canonical "[values]" form, with ^
// following the opening bracket when inverted.
func (m *SetMatcher) ToRegularExpression(prettyPrint bool) string {
	prefix := ""
	if m.inverted {
		prefix = "^"
	}
	values := make([]byte, 0, m.count)
	for value := 0; value < 256; value++ {
		if m.bitmap[value>>6]&(1<<(value&63)) != 0 {
			values = append(values, byte(value))
		}
	}
	return fmt.Sprintf("[%s%s]", prefix, byteutil.BytesToString(prettyPrint, values))
}

// String returns a description of the matcher for diagnostics.
func (m *SetMatcher) String() string {
	return fmt.Sprintf("SetMatcher(%s)", m.ToRegularExpression(false))
}
