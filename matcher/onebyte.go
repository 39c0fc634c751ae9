package matcher

import (
	"fmt"

	"github.com/coregx/byteseek/internal/byteutil"
	"github.com/coregx/byteseek/reader"
)

// oneByteMatchers interns the 256 possible single-byte matchers, so that
// OneByte always returns a shared instance.
var oneByteMatchers = func() [256]*OneByteMatcher {
	var matchers [256]*OneByteMatcher
	for value := 0; value < 256; value++ {
		matchers[value] = &OneByteMatcher{value: byte(value)}
	}
	return matchers
}()

// OneByteMatcher matches exactly one byte value.
type OneByteMatcher struct {
	value byte
}

// OneByte returns the shared matcher for the given byte value. The 256
// possible matchers are interned singletons.
func OneByte(value byte) *OneByteMatcher {
	return oneByteMatchers[value]
}

// Matches reports whether value is the matched byte.
func (m *OneByteMatcher) Matches(value byte) bool {
	return value == m.value
}

// MatchesBytes reports whether the byte at pos matches, with bounds
// checking.
func (m *OneByteMatcher) MatchesBytes(bytes []byte, pos int) bool {
	return pos >= 0 && pos < len(bytes) && bytes[pos] == m.value
}

// MatchesNoBoundsCheck reports whether the byte at pos matches; pos must
// already be known to be in range.
func (m *OneByteMatcher) MatchesNoBoundsCheck(bytes []byte, pos int) bool {
	return bytes[pos] == m.value
}

// MatchesReader reports whether the byte at the given absolute reader
// position matches.
func (m *OneByteMatcher) MatchesReader(windowReader reader.WindowReader, pos int64) (bool, error) {
	return matchReaderByte(m, windowReader, pos)
}

// MatchingBytes returns the single matched byte value.
func (m *OneByteMatcher) MatchingBytes() []byte {
	return []byte{m.value}
}

// NumberOfMatchingBytes returns 1.
func (m *OneByteMatcher) NumberOfMatchingBytes() int {
	return 1
}

// Value returns the byte this matcher matches.
func (m *OneByteMatcher) Value() byte {
	return m.value
}

// ToRegularExpression returns the canonical form of the matched byte.
func (m *OneByteMatcher) ToRegularExpression(prettyPrint bool) string {
	return byteutil.ByteToString(prettyPrint, m.value)
}

// String returns a description of the matcher for diagnostics.
func (m *OneByteMatcher) String() string {
	return fmt.Sprintf("OneByteMatcher(%s)", m.ToRegularExpression(true))
}
