package matcher

import (
	"fmt"
	"strings"

	"github.com/coregx/byteseek/internal/byteutil"
	"github.com/coregx/byteseek/reader"
)

// WildBitAllMatcher matches a byte value with "don't care" bits: every
// 0-bit of the wild mask is ignored, and every 1-bit of the wild mask
// must equal the corresponding bit of the value. A wild mask of zero
// matches every byte.
type WildBitAllMatcher struct {
	value byte
	mask  byte
}

// NewWildBitAllMatcher returns a matcher for the given value under the
// given wild mask. Bits of the value outside the mask are ignored.
func NewWildBitAllMatcher(value, wildMask byte) *WildBitAllMatcher {
	return &WildBitAllMatcher{value: value & wildMask, mask: wildMask}
}

// Matches reports whether all cared-about bits of value equal the
// matcher's value.
func (m *WildBitAllMatcher) Matches(value byte) bool {
	return value&m.mask == m.value
}

// MatchesBytes reports whether the byte at pos matches, with bounds
// checking.
func (m *WildBitAllMatcher) MatchesBytes(bytes []byte, pos int) bool {
	return pos >= 0 && pos < len(bytes) && m.Matches(bytes[pos])
}

// MatchesNoBoundsCheck reports whether the byte at pos matches; pos must
// already be known to be in range.
func (m *WildBitAllMatcher) MatchesNoBoundsCheck(bytes []byte, pos int) bool {
	return m.Matches(bytes[pos])
}

// MatchesReader reports whether the byte at the given absolute reader
// position matches.
func (m *WildBitAllMatcher) MatchesReader(windowReader reader.WindowReader, pos int64) (bool, error) {
	return matchReaderByte(m, windowReader, pos)
}

// MatchingBytes enumerates the matching bytes: one for each combination
// of the don't-care bits.
func (m *WildBitAllMatcher) MatchingBytes() []byte {
	return enumerateMatching(m)
}

// NumberOfMatchingBytes returns 2 to the power of the number of
// don't-care bits.
func (m *WildBitAllMatcher) NumberOfMatchingBytes() int {
	return 1 << byteutil.CountUnsetBits(m.mask)
}

// ToRegularExpression returns the canonical binary form: 0i followed by
// one character per bit, 0 or 1 for cared-about bits and _ for
// don't-care bits.
func (m *WildBitAllMatcher) ToRegularExpression(prettyPrint bool) string {
	return wildBitBinaryForm(m.value, m.mask)
}

// String returns a description of the matcher for diagnostics.
func (m *WildBitAllMatcher) String() string {
	return fmt.Sprintf("WildBitAllMatcher(%s)", m.ToRegularExpression(false))
}

// WildBitAnyMatcher matches a byte in which at least one cared-about bit
// equals the corresponding bit of the value, where the 0-bits of the
// wild mask are don't-care bits. The only byte pattern which fails to
// match is the one differing from the value in every cared-about bit, so
// a wild mask of zero matches every byte. The matcher is invertible.
type WildBitAnyMatcher struct {
	invertible
	// noMatchValue is the single cared-about bit pattern that does not
	// match: the bitwise inverse of the value under the mask.
	noMatchValue byte
	mask         byte
}

// NewWildBitAnyMatcher returns a matcher requiring at least one
// cared-about bit of a matching byte to equal the value, inverted if
// requested.
func NewWildBitAnyMatcher(value, wildMask byte, inverted bool) *WildBitAnyMatcher {
	return &WildBitAnyMatcher{
		invertible:   invertible{inverted},
		noMatchValue: ^value & wildMask,
		mask:         wildMask,
	}
}

// Matches reports whether any cared-about bit of value matches, or none
// when inverted. A wild mask of zero cares about no bits and matches
// everything.
func (m *WildBitAnyMatcher) Matches(value byte) bool {
	if m.mask == 0 {
		return !m.inverted
	}
	return (value&m.mask != m.noMatchValue) != m.inverted
}

// MatchesBytes reports whether the byte at pos matches, with bounds
// checking.
func (m *WildBitAnyMatcher) MatchesBytes(bytes []byte, pos int) bool {
	return pos >= 0 && pos < len(bytes) && m.Matches(bytes[pos])
}

// MatchesNoBoundsCheck reports whether the byte at pos matches; pos must
// already be known to be in range.
func (m *WildBitAnyMatcher) MatchesNoBoundsCheck(bytes []byte, pos int) bool {
	return m.Matches(bytes[pos])
}

// MatchesReader reports whether the byte at the given absolute reader
// position matches.
func (m *WildBitAnyMatcher) MatchesReader(windowReader reader.WindowReader, pos int64) (bool, error) {
	return matchReaderByte(m, windowReader, pos)
}

// MatchingBytes enumerates the matching bytes.
func (m *WildBitAnyMatcher) MatchingBytes() []byte {
	return enumerateMatching(m)
}

// NumberOfMatchingBytes returns the size of the matching set. With a
// non-zero mask, the bytes that fail to match are exactly those whose
// cared-about bits equal the no-match pattern: one for each combination
// of the don't-care bits, giving 256 minus 2 to the power of the number
// of don't-care bits. A mask of zero matches all 256 values. Inversion
// takes the complement.
func (m *WildBitAnyMatcher) NumberOfMatchingBytes() int {
	matching := 256
	if m.mask != 0 {
		matching = 256 - (1 << byteutil.CountUnsetBits(m.mask))
	}
	if m.inverted {
		return 256 - matching
	}
	return matching
}

// ToRegularExpression returns the canonical ~-prefixed binary form,
// prefixed with ^ when inverted.
func (m *WildBitAnyMatcher) ToRegularExpression(prettyPrint bool) string {
	form := "~" + wildBitBinaryForm(^m.noMatchValue&m.mask, m.mask)
	if m.inverted {
		return "^" + form
	}
	return form
}

// String returns a description of the matcher for diagnostics.
func (m *WildBitAnyMatcher) String() string {
	return fmt.Sprintf("WildBitAnyMatcher(%s)", m.ToRegularExpression(false))
}

// wildBitBinaryForm renders a value under a wild mask as 0i followed by
// eight bit characters, most significant first: 0 or 1 where the mask
// cares, _ where it does not.
func wildBitBinaryForm(value, mask byte) string {
	var form strings.Builder
	form.WriteString("0i")
	for bitPos := 7; bitPos >= 0; bitPos-- {
		bit := byte(1) << bitPos
		switch {
		case mask&bit == 0:
			form.WriteByte('_')
		case value&bit != 0:
			form.WriteByte('1')
		default:
			form.WriteByte('0')
		}
	}
	return form.String()
}
