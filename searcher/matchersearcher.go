package searcher

import (
	"fmt"

	"github.com/coregx/byteseek/reader"
	"github.com/coregx/byteseek/sequence"
	"github.com/coregx/byteseek/simd"
)

// SequenceMatcherSearcher tests the sequence at each position in turn.
// It needs no preparation and no index tables, making it the reference
// algorithm the others are tested against, and a reasonable choice for
// one-off searches where building tables would cost more than the scan.
//
// When the first position of the sequence matches at most three byte
// values, the forward scan skips between candidate positions with the
// SWAR byte-search primitives instead of testing every position. The
// backward scan skips this way only when the first position matches a
// single byte value.
type SequenceMatcherSearcher struct {
	windowSearcher
	firstBytes []byte
}

// NewSequenceMatcherSearcher constructs a searcher testing the sequence
// position by position.
func NewSequenceMatcherSearcher(seq sequence.SequenceMatcher) *SequenceMatcherSearcher {
	s := &SequenceMatcherSearcher{}
	s.sequence = seq
	first := seq.MatcherForPosition(0)
	if first.NumberOfMatchingBytes() <= 3 {
		s.firstBytes = first.MatchingBytes()
	}
	s.searchArrayForwards = s.doSearchForwards
	s.searchArrayBackwards = s.doSearchBackwards
	return s
}

// SearchForwards returns the first position in [from, to] where the
// sequence matches in bytes, or -1.
func (s *SequenceMatcherSearcher) SearchForwards(bytes []byte, from, to int) int {
	return s.doSearchForwards(bytes, from, to)
}

// SearchBackwards returns the highest position in [to, from] where the
// sequence matches in bytes, or -1.
func (s *SequenceMatcherSearcher) SearchBackwards(bytes []byte, from, to int) int {
	return s.doSearchBackwards(bytes, from, to)
}

// SearchReaderForwards returns the first position in [from, to] where
// the sequence matches in the reader, or -1.
func (s *SequenceMatcherSearcher) SearchReaderForwards(windowReader reader.WindowReader, from, to int64) (int64, error) {
	return s.searchReaderForwards(windowReader, from, to)
}

// SearchReaderBackwards returns the highest position in [to, from]
// where the sequence matches in the reader, or -1.
func (s *SequenceMatcherSearcher) SearchReaderBackwards(windowReader reader.WindowReader, from, to int64) (int64, error) {
	return s.searchReaderBackwards(windowReader, from, to)
}

// PrepareForwards is a no-op: this searcher has no index tables.
func (s *SequenceMatcherSearcher) PrepareForwards() {}

// PrepareBackwards is a no-op: this searcher has no index tables.
func (s *SequenceMatcherSearcher) PrepareBackwards() {}

func (s *SequenceMatcherSearcher) doSearchForwards(bytes []byte, from, to int) int {
	from, to, any := clampForwards(len(bytes), s.sequence.Length(), from, to)
	if !any {
		return -1
	}
	for pos := from; pos <= to; pos++ {
		if s.firstBytes != nil {
			skip := s.nextCandidate(bytes[pos : to+1])
			if skip < 0 {
				return -1
			}
			pos += skip
		}
		if s.sequence.MatchesNoBoundsCheck(bytes, pos) {
			return pos
		}
	}
	return -1
}

// nextCandidate returns the offset of the next byte the first position
// can match within region, or -1.
func (s *SequenceMatcherSearcher) nextCandidate(region []byte) int {
	switch len(s.firstBytes) {
	case 1:
		return simd.Memchr(region, s.firstBytes[0])
	case 2:
		return simd.Memchr2(region, s.firstBytes[0], s.firstBytes[1])
	default:
		return simd.Memchr3(region, s.firstBytes[0], s.firstBytes[1], s.firstBytes[2])
	}
}

func (s *SequenceMatcherSearcher) doSearchBackwards(bytes []byte, from, to int) int {
	from, to, any := clampBackwards(len(bytes), s.sequence.Length(), from, to)
	if !any {
		return -1
	}
	if len(s.firstBytes) == 1 {
		// Jump backwards between occurrences of the single first byte.
		for pos := from; pos >= to; {
			candidate := simd.Memrchr(bytes[to:pos+1], s.firstBytes[0])
			if candidate < 0 {
				return -1
			}
			pos = to + candidate
			if s.sequence.MatchesNoBoundsCheck(bytes, pos) {
				return pos
			}
			pos--
		}
		return -1
	}
	for pos := from; pos >= to; pos-- {
		if s.sequence.MatchesNoBoundsCheck(bytes, pos) {
			return pos
		}
	}
	return -1
}

// String returns a description of the searcher for diagnostics.
func (s *SequenceMatcherSearcher) String() string {
	return fmt.Sprintf("SequenceMatcherSearcher(%s)", s.sequence.ToRegularExpression(false))
}
