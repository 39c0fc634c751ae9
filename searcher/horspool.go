package searcher

import (
	"fmt"

	"github.com/coregx/byteseek/internal/lazy"
	"github.com/coregx/byteseek/reader"
	"github.com/coregx/byteseek/sequence"
)

// horspoolInfo is the immutable shift table for one direction. A
// positive shift moves the search window without testing; a negative
// shift marks a byte the aligned end (or start, searching backwards) of
// the sequence can match, telling the scan to verify a match before
// shifting by the magnitude.
type horspoolInfo struct {
	shifts [256]int
}

// SignedHorspoolSearcher searches with the Horspool algorithm using
// shifts derived from the matcher sets at each sequence position. The
// sign of a shift folds the "does the final position match here" test
// into the table itself, saving a comparison per alignment. It performs
// well on mid-length sequences whose position sets are small; large
// sets shrink the shifts toward one, at which point Shift-Or wins.
type SignedHorspoolSearcher struct {
	windowSearcher
	forward  *lazy.Lazy[*horspoolInfo]
	backward *lazy.Lazy[*horspoolInfo]
}

// NewSignedHorspoolSearcher constructs a signed Horspool searcher for
// the sequence.
func NewSignedHorspoolSearcher(seq sequence.SequenceMatcher) *SignedHorspoolSearcher {
	s := &SignedHorspoolSearcher{}
	s.sequence = seq
	s.forward = lazy.New(func() *horspoolInfo { return buildHorspoolForwards(seq) })
	s.backward = lazy.New(func() *horspoolInfo { return buildHorspoolBackwards(seq) })
	s.searchArrayForwards = s.doSearchForwards
	s.searchArrayBackwards = s.doSearchBackwards
	return s
}

// buildHorspoolForwards builds shifts for the byte aligned with the end
// of the sequence: the distance from the rightmost non-final position
// matching that byte to the final position, or the full length when no
// position matches it. Bytes the final position matches carry the shift
// negated, marking a verification point.
func buildHorspoolForwards(seq sequence.SequenceMatcher) *horspoolInfo {
	length := seq.Length()
	info := &horspoolInfo{}
	for i := range info.shifts {
		info.shifts[i] = length
	}
	for pos := 0; pos < length-1; pos++ {
		shift := length - 1 - pos
		for _, value := range seq.MatcherForPosition(pos).MatchingBytes() {
			info.shifts[value] = shift
		}
	}
	for _, value := range seq.MatcherForPosition(length - 1).MatchingBytes() {
		info.shifts[value] = -info.shifts[value]
	}
	return info
}

// buildHorspoolBackwards mirrors the forward table for scans that move
// the window toward lower positions: shifts are keyed by the byte
// aligned with the start of the sequence.
func buildHorspoolBackwards(seq sequence.SequenceMatcher) *horspoolInfo {
	length := seq.Length()
	info := &horspoolInfo{}
	for i := range info.shifts {
		info.shifts[i] = length
	}
	for pos := length - 1; pos > 0; pos-- {
		for _, value := range seq.MatcherForPosition(pos).MatchingBytes() {
			info.shifts[value] = pos
		}
	}
	for _, value := range seq.MatcherForPosition(0).MatchingBytes() {
		info.shifts[value] = -info.shifts[value]
	}
	return info
}

// SearchForwards returns the first position in [from, to] where the
// sequence matches in bytes, or -1.
func (s *SignedHorspoolSearcher) SearchForwards(bytes []byte, from, to int) int {
	return s.doSearchForwards(bytes, from, to)
}

// SearchBackwards returns the highest position in [to, from] where the
// sequence matches in bytes, or -1.
func (s *SignedHorspoolSearcher) SearchBackwards(bytes []byte, from, to int) int {
	return s.doSearchBackwards(bytes, from, to)
}

// SearchReaderForwards returns the first position in [from, to] where
// the sequence matches in the reader, or -1.
func (s *SignedHorspoolSearcher) SearchReaderForwards(windowReader reader.WindowReader, from, to int64) (int64, error) {
	return s.searchReaderForwards(windowReader, from, to)
}

// SearchReaderBackwards returns the highest position in [to, from]
// where the sequence matches in the reader, or -1.
func (s *SignedHorspoolSearcher) SearchReaderBackwards(windowReader reader.WindowReader, from, to int64) (int64, error) {
	return s.searchReaderBackwards(windowReader, from, to)
}

// PrepareForwards eagerly builds the forward shift table.
func (s *SignedHorspoolSearcher) PrepareForwards() {
	s.forward.Get()
}

// PrepareBackwards eagerly builds the backward shift table.
func (s *SignedHorspoolSearcher) PrepareBackwards() {
	s.backward.Get()
}

func (s *SignedHorspoolSearcher) doSearchForwards(bytes []byte, from, to int) int {
	length := s.sequence.Length()
	from, to, any := clampForwards(len(bytes), length, from, to)
	if !any {
		return -1
	}
	info := s.forward.Get()
	// pos tracks the text byte aligned with the end of the sequence.
	pos := from + length - 1
	endLimit := to + length - 1
	for pos <= endLimit {
		shift := info.shifts[bytes[pos]]
		if shift > 0 {
			pos += shift
			continue
		}
		start := pos - length + 1
		if s.sequence.MatchesNoBoundsCheck(bytes, start) {
			return start
		}
		pos -= shift
	}
	return -1
}

func (s *SignedHorspoolSearcher) doSearchBackwards(bytes []byte, from, to int) int {
	length := s.sequence.Length()
	from, to, any := clampBackwards(len(bytes), length, from, to)
	if !any {
		return -1
	}
	info := s.backward.Get()
	// pos tracks the candidate start, which is also the text byte
	// aligned with the start of the sequence.
	for pos := from; pos >= to; {
		shift := info.shifts[bytes[pos]]
		if shift > 0 {
			pos -= shift
			continue
		}
		if s.sequence.MatchesNoBoundsCheck(bytes, pos) {
			return pos
		}
		pos += shift
	}
	return -1
}

// String returns a description of the searcher for diagnostics.
func (s *SignedHorspoolSearcher) String() string {
	return fmt.Sprintf("SignedHorspoolSearcher(%s)", s.sequence.ToRegularExpression(false))
}
