package sequence

import (
	"errors"
	"fmt"
	"strings"

	"github.com/coregx/byteseek/matcher"
	"github.com/coregx/byteseek/reader"
)

// MatcherSequence matches an ordered sequence of arbitrary byte
// matchers: ranges, sets, bitmasks and wild-bit matchers can each take a
// position. It stores a shared matcher array with start and end indices
// and a direction flag, so subsequences and reversed views cost nothing
// but a descriptor.
type MatcherSequence struct {
	hash     uint32
	matchers []matcher.ByteMatcher
	start    int
	end      int
	reversed bool
}

// NewMatcherSequence constructs a sequence over the given matchers. The
// slice is copied; an empty sequence or a nil element is an error.
func NewMatcherSequence(matchers []matcher.ByteMatcher) (*MatcherSequence, error) {
	if len(matchers) == 0 {
		return nil, errors.New("matcher sequence requires at least one matcher")
	}
	owned := make([]matcher.ByteMatcher, len(matchers))
	for pos, m := range matchers {
		if m == nil {
			return nil, fmt.Errorf("matcher sequence has a nil matcher at position %d", pos)
		}
		owned[pos] = m
	}
	return newMatcherSequenceView(owned, 0, len(owned), false), nil
}

// newMatcherSequenceView constructs a view over [start, end) of the
// shared matcher array, iterated backwards when reversed is set.
func newMatcherSequenceView(matchers []matcher.ByteMatcher, start, end int, reversed bool) *MatcherSequence {
	view := &MatcherSequence{matchers: matchers, start: start, end: end, reversed: reversed}
	hash := uint32(0)
	for pos, length := 0, view.Length(); pos < length; pos++ {
		hash = hash*31 + hashString(view.MatcherForPosition(pos).ToRegularExpression(false))
	}
	view.hash = hash
	return view
}

// Length returns the number of positions in the sequence.
func (m *MatcherSequence) Length() int {
	return m.end - m.start
}

// MatcherForPosition returns the matcher for the given position,
// respecting the view's direction.
func (m *MatcherSequence) MatcherForPosition(pos int) matcher.ByteMatcher {
	if m.reversed {
		return m.matchers[m.end-1-pos]
	}
	return m.matchers[m.start+pos]
}

// NumBytesAtPosition returns the number of byte values matching at the
// given position.
func (m *MatcherSequence) NumBytesAtPosition(pos int) int {
	return m.MatcherForPosition(pos).NumberOfMatchingBytes()
}

// MatchesBytes reports whether every position matches at pos in bytes,
// with a fit test.
func (m *MatcherSequence) MatchesBytes(bytes []byte, pos int) bool {
	if pos < 0 || pos+m.Length() > len(bytes) {
		return false
	}
	return m.MatchesNoBoundsCheck(bytes, pos)
}

// MatchesNoBoundsCheck reports whether every position matches at pos in
// bytes; the caller must have established the sequence fits.
func (m *MatcherSequence) MatchesNoBoundsCheck(bytes []byte, pos int) bool {
	for i, length := 0, m.Length(); i < length; i++ {
		if !m.MatcherForPosition(i).MatchesNoBoundsCheck(bytes, pos+i) {
			return false
		}
	}
	return true
}

// MatchesReader reports whether every position matches at the given
// absolute reader position, crossing window boundaries as needed.
func (m *MatcherSequence) MatchesReader(windowReader reader.WindowReader, pos int64) (bool, error) {
	return matchReaderByMatcher(m, windowReader, pos)
}

// Subsequence returns a view of positions [begin, end) sharing the
// backing array. Requesting the whole sequence returns this instance.
func (m *MatcherSequence) Subsequence(begin, end int) SequenceMatcher {
	checkSubsequence(begin, end, m.Length())
	if begin == 0 && end == m.Length() {
		return m
	}
	if m.reversed {
		// Reversed position i maps to array index m.end-1-i, so the
		// view of reversed positions [begin, end) occupies the array
		// region [m.end-end, m.end-begin), still reversed.
		return newMatcherSequenceView(m.matchers, m.end-end, m.end-begin, true)
	}
	return newMatcherSequenceView(m.matchers, m.start+begin, m.start+end, false)
}

// Reverse returns a view iterating in the opposite direction, sharing
// the backing array.
func (m *MatcherSequence) Reverse() SequenceMatcher {
	return newMatcherSequenceView(m.matchers, m.start, m.end, !m.reversed)
}

// Repeat returns a matcher for count repetitions of this sequence,
// owning a fresh matcher array.
func (m *MatcherSequence) Repeat(count int) SequenceMatcher {
	if count < 1 {
		panic("sequence: repeat count must be positive")
	}
	length := m.Length()
	owned := make([]matcher.ByteMatcher, 0, count*length)
	for i := 0; i < count; i++ {
		for pos := 0; pos < length; pos++ {
			owned = append(owned, m.MatcherForPosition(pos))
		}
	}
	return newMatcherSequenceView(owned, 0, len(owned), false)
}

// ToRegularExpression returns the canonical forms of the position
// matchers in order, space separated when pretty printed.
func (m *MatcherSequence) ToRegularExpression(prettyPrint bool) string {
	var form strings.Builder
	for pos, length := 0, m.Length(); pos < length; pos++ {
		if prettyPrint && pos > 0 {
			form.WriteByte(' ')
		}
		form.WriteString(m.MatcherForPosition(pos).ToRegularExpression(prettyPrint))
	}
	return form.String()
}

// Hash returns the content hash computed at construction.
func (m *MatcherSequence) Hash() uint32 {
	return m.hash
}

// Equal reports whether other is a MatcherSequence whose positions have
// the same canonical forms.
func (m *MatcherSequence) Equal(other SequenceMatcher) bool {
	otherSequence, ok := other.(*MatcherSequence)
	if !ok {
		return false
	}
	if m.hash != otherSequence.hash || m.Length() != otherSequence.Length() {
		return false
	}
	for pos, length := 0, m.Length(); pos < length; pos++ {
		thisForm := m.MatcherForPosition(pos).ToRegularExpression(false)
		otherForm := otherSequence.MatcherForPosition(pos).ToRegularExpression(false)
		if thisForm != otherForm {
			return false
		}
	}
	return true
}

// String returns a description of the matcher for diagnostics.
func (m *MatcherSequence) String() string {
	return fmt.Sprintf("MatcherSequence(%s)", m.ToRegularExpression(true))
}
