package matcher

import (
	"fmt"

	"github.com/coregx/byteseek/internal/byteutil"
	"github.com/coregx/byteseek/reader"
)

// ByteRangeMatcher matches any byte in an inclusive range of values, or
// any byte outside the range when inverted. If constructed with the
// bounds reversed, they are swapped so the same range is matched.
type ByteRangeMatcher struct {
	invertible
	min byte
	max byte
}

// ByteRange returns a matcher for the inclusive range [min, max].
// Reversed bounds are swapped.
func ByteRange(min, max byte) *ByteRangeMatcher {
	return NewByteRangeMatcher(min, max, false)
}

// NewByteRangeMatcher returns a matcher for the inclusive range
// [min, max], matching outside the range when inverted is set. Reversed
// bounds are swapped.
func NewByteRangeMatcher(min, max byte, inverted bool) *ByteRangeMatcher {
	if min > max {
		min, max = max, min
	}
	return &ByteRangeMatcher{invertible: invertible{inverted}, min: min, max: max}
}

// Matches reports whether value falls inside the range, or outside it
// when inverted.
func (m *ByteRangeMatcher) Matches(value byte) bool {
	insideRange := value >= m.min && value <= m.max
	return insideRange != m.inverted
}

// MatchesBytes reports whether the byte at pos matches, with bounds
// checking.
func (m *ByteRangeMatcher) MatchesBytes(bytes []byte, pos int) bool {
	return pos >= 0 && pos < len(bytes) && m.Matches(bytes[pos])
}

// MatchesNoBoundsCheck reports whether the byte at pos matches; pos must
// already be known to be in range.
func (m *ByteRangeMatcher) MatchesNoBoundsCheck(bytes []byte, pos int) bool {
	return m.Matches(bytes[pos])
}

// MatchesReader reports whether the byte at the given absolute reader
// position matches.
func (m *ByteRangeMatcher) MatchesReader(windowReader reader.WindowReader, pos int64) (bool, error) {
	return matchReaderByte(m, windowReader, pos)
}

// MatchingBytes enumerates the range, or its complement when inverted.
func (m *ByteRangeMatcher) MatchingBytes() []byte {
	matching := make([]byte, 0, m.NumberOfMatchingBytes())
	if m.inverted {
		for value := 0; value < int(m.min); value++ {
			matching = append(matching, byte(value))
		}
		for value := int(m.max) + 1; value < 256; value++ {
			matching = append(matching, byte(value))
		}
	} else {
		for value := int(m.min); value <= int(m.max); value++ {
			matching = append(matching, byte(value))
		}
	}
	return matching
}

// NumberOfMatchingBytes returns the size of the range, or of its
// complement when inverted.
func (m *ByteRangeMatcher) NumberOfMatchingBytes() int {
	if m.inverted {
		return 255 - int(m.max) + int(m.min)
	}
	return int(m.max) - int(m.min) + 1
}

// ToRegularExpression returns the canonical "min-max" form, prefixed
// with ^ when inverted.
func (m *ByteRangeMatcher) ToRegularExpression(prettyPrint bool) string {
	prefix := ""
	if m.inverted {
		prefix = "^"
	}
	return fmt.Sprintf("%s%s-%s", prefix,
		byteutil.ByteToString(prettyPrint, m.min),
		byteutil.ByteToString(prettyPrint, m.max))
}

// String returns a description of the matcher for diagnostics.
func (m *ByteRangeMatcher) String() string {
	return fmt.Sprintf("ByteRangeMatcher(%s)", m.ToRegularExpression(false))
}
