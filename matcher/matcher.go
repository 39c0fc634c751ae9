// Package matcher provides the byte-matcher algebra: immutable predicates
// over a single byte value. Every matcher represents a set S of byte
// values in {0..255}; Matches(b) is true exactly when b is in S, and the
// set can be enumerated and counted. Matchers can test bytes in arrays,
// against a WindowReader at an absolute position, and produce a canonical
// textual form for diagnostics.
//
// The matcher variants form a closed set: one byte, a range, an explicit
// set, all-bits and any-bits bitmasks, wild-bit values with "don't care"
// bits, and the universal matcher. Inversion is a construction-time flag
// producing the complement of the non-inverted set.
//
// Matchers are immutable and safe to share between goroutines.
package matcher

import (
	"github.com/coregx/byteseek/reader"
)

// ByteMatcher is an immutable predicate over a single byte value.
type ByteMatcher interface {
	// Matches reports whether the matcher matches the given byte.
	Matches(value byte) bool

	// MatchesBytes reports whether the matcher matches the byte at pos
	// in bytes, returning false when pos is out of bounds.
	MatchesBytes(bytes []byte, pos int) bool

	// MatchesNoBoundsCheck reports whether the matcher matches the byte
	// at pos in bytes, without the defensive bounds test. It may only
	// be called from loops that have already established pos is in
	// range.
	MatchesNoBoundsCheck(bytes []byte, pos int) bool

	// MatchesReader reports whether the matcher matches the byte at the
	// given absolute position in the reader. Positions past the end of
	// the source do not match.
	MatchesReader(windowReader reader.WindowReader, pos int64) (bool, error)

	// MatchingBytes enumerates the set of byte values this matcher
	// matches.
	MatchingBytes() []byte

	// NumberOfMatchingBytes returns the size of the matching set.
	NumberOfMatchingBytes() int

	// ToRegularExpression returns the canonical textual form of this
	// matcher. The form is stable within a release and intended for
	// diagnostics, not persistence.
	ToRegularExpression(prettyPrint bool) string
}

// matchReaderByte tests a matcher against the byte at an absolute reader
// position. Positions past the end of the source do not match.
func matchReaderByte(m ByteMatcher, windowReader reader.WindowReader, pos int64) (bool, error) {
	window, err := windowReader.Window(pos)
	if err != nil || window == nil {
		return false, err
	}
	offset := windowReader.WindowOffset(pos)
	if offset >= window.Length() {
		return false, nil
	}
	value, err := window.Byte(offset)
	if err != nil {
		return false, err
	}
	return m.Matches(value), nil
}

// enumerateMatching builds the matching set of a matcher by testing all
// 256 byte values. Matchers whose sets have no cheaper closed form use
// this for MatchingBytes.
func enumerateMatching(m ByteMatcher) []byte {
	matching := make([]byte, 0, m.NumberOfMatchingBytes())
	for value := 0; value < 256; value++ {
		if m.Matches(byte(value)) {
			matching = append(matching, byte(value))
		}
	}
	return matching
}

// invertible carries the inversion flag shared by the invertible matcher
// variants.
type invertible struct {
	inverted bool
}

// Inverted reports whether this matcher matches the complement of its
// non-inverted set.
func (i invertible) Inverted() bool {
	return i.inverted
}
