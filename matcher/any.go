package matcher

import (
	"github.com/coregx/byteseek/reader"
)

// anyMatcher matches every byte value. The single instance is shared
// through Any.
type anyMatcher struct{}

// Any returns the universal matcher, which matches all 256 byte values.
func Any() ByteMatcher {
	return theAnyMatcher
}

var theAnyMatcher = anyMatcher{}

// Matches always reports true.
func (anyMatcher) Matches(value byte) bool {
	return true
}

// MatchesBytes reports whether pos is within bounds; every byte matches.
func (anyMatcher) MatchesBytes(bytes []byte, pos int) bool {
	return pos >= 0 && pos < len(bytes)
}

// MatchesNoBoundsCheck always reports true; pos must already be known to
// be in range.
func (anyMatcher) MatchesNoBoundsCheck(bytes []byte, pos int) bool {
	return true
}

// MatchesReader reports whether a byte exists at the given position.
func (m anyMatcher) MatchesReader(windowReader reader.WindowReader, pos int64) (bool, error) {
	return matchReaderByte(m, windowReader, pos)
}

// MatchingBytes enumerates all 256 byte values.
func (m anyMatcher) MatchingBytes() []byte {
	return enumerateMatching(m)
}

// NumberOfMatchingBytes returns 256.
func (anyMatcher) NumberOfMatchingBytes() int {
	return 256
}

// ToRegularExpression returns the universal form ".".
func (anyMatcher) ToRegularExpression(prettyPrint bool) string {
	return "."
}

// String returns a description of the matcher for diagnostics.
func (anyMatcher) String() string {
	return "AnyMatcher(.)"
}
