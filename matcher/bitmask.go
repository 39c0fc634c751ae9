package matcher

import (
	"fmt"

	"github.com/coregx/byteseek/internal/byteutil"
	"github.com/coregx/byteseek/reader"
)

// AllBitmaskMatcher matches any byte in which every 1-bit of the mask is
// set, or the complement when inverted. A mask of zero matches every
// byte, since there are no required bits.
type AllBitmaskMatcher struct {
	invertible
	mask byte
}

// NewAllBitmaskMatcher returns a matcher requiring all 1-bits of mask to
// be set in a matching byte, inverted if requested.
func NewAllBitmaskMatcher(mask byte, inverted bool) *AllBitmaskMatcher {
	return &AllBitmaskMatcher{invertible: invertible{inverted}, mask: mask}
}

// Matches reports whether all mask bits are set in value, or not all
// when inverted.
func (m *AllBitmaskMatcher) Matches(value byte) bool {
	allSet := value&m.mask == m.mask
	return allSet != m.inverted
}

// MatchesBytes reports whether the byte at pos matches, with bounds
// checking.
func (m *AllBitmaskMatcher) MatchesBytes(bytes []byte, pos int) bool {
	return pos >= 0 && pos < len(bytes) && m.Matches(bytes[pos])
}

// MatchesNoBoundsCheck reports whether the byte at pos matches; pos must
// already be known to be in range.
func (m *AllBitmaskMatcher) MatchesNoBoundsCheck(bytes []byte, pos int) bool {
	return m.Matches(bytes[pos])
}

// MatchesReader reports whether the byte at the given absolute reader
// position matches.
func (m *AllBitmaskMatcher) MatchesReader(windowReader reader.WindowReader, pos int64) (bool, error) {
	return matchReaderByte(m, windowReader, pos)
}

// MatchingBytes enumerates the bytes with all mask bits set, or the
// complement when inverted.
func (m *AllBitmaskMatcher) MatchingBytes() []byte {
	return enumerateMatching(m)
}

// NumberOfMatchingBytes returns the number of bytes with all mask bits
// set: one for each combination of the unconstrained bits.
func (m *AllBitmaskMatcher) NumberOfMatchingBytes() int {
	matching := 1 << byteutil.CountUnsetBits(m.mask)
	if m.inverted {
		return 256 - matching
	}
	return matching
}

// ToRegularExpression returns the canonical "&mask" form, prefixed with
// ^ when inverted.
func (m *AllBitmaskMatcher) ToRegularExpression(prettyPrint bool) string {
	if m.inverted {
		return fmt.Sprintf("^&%02x", m.mask)
	}
	return fmt.Sprintf("&%02x", m.mask)
}

// String returns a description of the matcher for diagnostics.
func (m *AllBitmaskMatcher) String() string {
	return fmt.Sprintf("AllBitmaskMatcher(%s)", m.ToRegularExpression(false))
}

// AnyBitmaskMatcher matches any byte in which at least one 1-bit of the
// mask is set, or the complement when inverted. A mask of zero matches
// no byte, since no bit can satisfy it.
type AnyBitmaskMatcher struct {
	invertible
	mask byte
}

// NewAnyBitmaskMatcher returns a matcher requiring at least one 1-bit of
// mask to be set in a matching byte, inverted if requested.
func NewAnyBitmaskMatcher(mask byte, inverted bool) *AnyBitmaskMatcher {
	return &AnyBitmaskMatcher{invertible: invertible{inverted}, mask: mask}
}

// Matches reports whether any mask bit is set in value, or none when
// inverted.
func (m *AnyBitmaskMatcher) Matches(value byte) bool {
	anySet := value&m.mask != 0
	return anySet != m.inverted
}

// MatchesBytes reports whether the byte at pos matches, with bounds
// checking.
func (m *AnyBitmaskMatcher) MatchesBytes(bytes []byte, pos int) bool {
	return pos >= 0 && pos < len(bytes) && m.Matches(bytes[pos])
}

// MatchesNoBoundsCheck reports whether the byte at pos matches; pos must
// already be known to be in range.
func (m *AnyBitmaskMatcher) MatchesNoBoundsCheck(bytes []byte, pos int) bool {
	return m.Matches(bytes[pos])
}

// MatchesReader reports whether the byte at the given absolute reader
// position matches.
func (m *AnyBitmaskMatcher) MatchesReader(windowReader reader.WindowReader, pos int64) (bool, error) {
	return matchReaderByte(m, windowReader, pos)
}

// MatchingBytes enumerates the bytes with any mask bit set, or the
// complement when inverted.
func (m *AnyBitmaskMatcher) MatchingBytes() []byte {
	return enumerateMatching(m)
}

// NumberOfMatchingBytes returns the number of bytes sharing at least one
// bit with the mask: all bytes except those confined to the mask's
// 0-bits.
func (m *AnyBitmaskMatcher) NumberOfMatchingBytes() int {
	matching := 256 - (1 << byteutil.CountUnsetBits(m.mask))
	if m.inverted {
		return 256 - matching
	}
	return matching
}

// ToRegularExpression returns the canonical "~mask" form, prefixed with
// ^ when inverted.
func (m *AnyBitmaskMatcher) ToRegularExpression(prettyPrint bool) string {
	if m.inverted {
		return fmt.Sprintf("^~%02x", m.mask)
	}
	return fmt.Sprintf("~%02x", m.mask)
}

// String returns a description of the matcher for diagnostics.
func (m *AnyBitmaskMatcher) String() string {
	return fmt.Sprintf("AnyBitmaskMatcher(%s)", m.ToRegularExpression(false))
}
