// Package sequence provides matchers for ordered sequences of byte
// matchers. A SequenceMatcher of length n matches n consecutive bytes,
// each position tested by its own ByteMatcher. Subsequence and reverse
// are cheap views over shared backing storage; repetition and
// construction from parts produce fresh owned storage.
//
// ByteSequenceMatcher is the specialized, fastest case where every
// position matches exactly one byte; MatcherSequence handles arbitrary
// per-position matchers. Both match against byte arrays and against a
// WindowReader, crossing window boundaries transparently.
//
// Sequence matchers are immutable, hash their content at construction,
// and compare by content.
package sequence

import (
	"github.com/coregx/byteseek/matcher"
	"github.com/coregx/byteseek/reader"
)

// SequenceMatcher matches an ordered sequence of byte positions, each
// tested by a ByteMatcher.
type SequenceMatcher interface {
	// Length returns the number of positions in the sequence.
	Length() int

	// MatcherForPosition returns the byte matcher for the given
	// position, which must satisfy 0 <= pos < Length().
	MatcherForPosition(pos int) matcher.ByteMatcher

	// NumBytesAtPosition returns the number of byte values matching at
	// the given position.
	NumBytesAtPosition(pos int) int

	// MatchesBytes reports whether the sequence matches at pos in
	// bytes, returning false when the sequence would not fit.
	MatchesBytes(bytes []byte, pos int) bool

	// MatchesNoBoundsCheck reports whether the sequence matches at pos
	// in bytes without the defensive fit test; callers must have
	// established pos >= 0 and pos+Length() <= len(bytes).
	MatchesNoBoundsCheck(bytes []byte, pos int) bool

	// MatchesReader reports whether the sequence matches at the given
	// absolute position in the reader, crossing window boundaries as
	// needed. Reaching end-of-source mid-sequence is no match.
	MatchesReader(windowReader reader.WindowReader, pos int64) (bool, error)

	// Subsequence returns a view of positions [begin, end). Views share
	// backing storage with the original. Requesting the whole sequence
	// may return the same instance. Panics if the indices are out of
	// range, like a slice expression.
	Subsequence(begin, end int) SequenceMatcher

	// Reverse returns a view iterating the sequence in the opposite
	// direction, sharing backing storage.
	Reverse() SequenceMatcher

	// Repeat returns a matcher matching this sequence count times in
	// succession. The result owns fresh storage. Panics if count < 1.
	Repeat(count int) SequenceMatcher

	// ToRegularExpression returns the canonical textual form of the
	// sequence.
	ToRegularExpression(prettyPrint bool) string

	// Hash returns the content hash computed at construction.
	Hash() uint32

	// Equal reports whether the other matcher has the same concrete
	// type and content.
	Equal(other SequenceMatcher) bool
}

// matchReaderByMatcher matches a sequence against a reader one window at
// a time, testing each position's matcher against the window's array.
// Used by sequences of general byte matchers; byte sequences use a
// specialized comparison.
func matchReaderByMatcher(s SequenceMatcher, windowReader reader.WindowReader, pos int64) (bool, error) {
	if pos < 0 {
		return false, nil
	}
	length := s.Length()
	matched := 0
	for matched < length {
		window, err := windowReader.Window(pos + int64(matched))
		if err != nil {
			return false, err
		}
		if window == nil {
			return false, nil
		}
		array, err := window.Array()
		if err != nil {
			return false, err
		}
		offset := int(pos + int64(matched) - window.Position())
		available := window.Length() - offset
		if available <= 0 {
			return false, nil
		}
		run := length - matched
		if run > available {
			run = available
		}
		for i := 0; i < run; i++ {
			if !s.MatcherForPosition(matched + i).Matches(array[offset+i]) {
				return false, nil
			}
		}
		matched += run
	}
	return true, nil
}

// checkSubsequence panics when [begin, end) is not a valid non-empty
// range within a sequence of the given length.
func checkSubsequence(begin, end, length int) {
	if begin < 0 || end > length || begin >= end {
		panic("sequence: subsequence range out of bounds")
	}
}

// hashString is a 32-bit FNV-1a over s, used to fold canonical matcher
// forms into sequence hashes.
func hashString(s string) uint32 {
	const offsetBasis = 2166136261
	const prime = 16777619
	hash := uint32(offsetBasis)
	for i := 0; i < len(s); i++ {
		hash ^= uint32(s[i])
		hash *= prime
	}
	return hash
}
