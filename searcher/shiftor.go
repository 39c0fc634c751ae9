package searcher

import (
	"fmt"

	"github.com/coregx/byteseek/internal/lazy"
	"github.com/coregx/byteseek/reader"
	"github.com/coregx/byteseek/sequence"
)

// shiftOrWordBits is the number of sequence positions the bit-parallel
// state can encode. Longer sequences match on their first 64 positions
// and verify the remainder.
const shiftOrWordBits = 64

// shiftOrInfo is the immutable search table for one direction: a
// mismatch mask per byte value. Bit i of masks[b] is clear exactly when
// the sequence position encoded at bit i matches b.
type shiftOrInfo struct {
	masks    [256]uint64
	limit    int
	matchBit uint64
}

// ShiftOrSearcher searches with the Shift-Or algorithm: the search state
// is a bit-vector of partial matches advanced by one table lookup, a
// shift and an or per text byte. It handles any sequence — position sets
// cost nothing at search time — and is the fastest algorithm for short
// patterns, which is why the q-gram searchers fall back to it.
//
// Sequences longer than 64 positions are matched bit-parallel on their
// leading 64 positions and verified in full at each candidate.
type ShiftOrSearcher struct {
	windowSearcher
	forward  *lazy.Lazy[*shiftOrInfo]
	backward *lazy.Lazy[*shiftOrInfo]
}

// NewShiftOrSearcher constructs a Shift-Or searcher for the sequence.
func NewShiftOrSearcher(seq sequence.SequenceMatcher) *ShiftOrSearcher {
	s := &ShiftOrSearcher{}
	s.sequence = seq
	s.forward = lazy.New(func() *shiftOrInfo { return buildShiftOrInfo(seq, false) })
	s.backward = lazy.New(func() *shiftOrInfo { return buildShiftOrInfo(seq, true) })
	s.searchArrayForwards = s.doSearchForwards
	s.searchArrayBackwards = s.doSearchBackwards
	return s
}

// buildShiftOrInfo builds the mismatch masks for the sequence. Both
// tables encode the leading positions of the sequence, up to the word
// size; the backward table encodes them in reverse bit order, so that
// scanning text descending clears the match bit exactly where the
// leading positions match in their forward orientation.
func buildShiftOrInfo(seq sequence.SequenceMatcher, reverse bool) *shiftOrInfo {
	length := seq.Length()
	limit := length
	if limit > shiftOrWordBits {
		limit = shiftOrWordBits
	}
	info := &shiftOrInfo{limit: limit, matchBit: 1 << (limit - 1)}
	for i := range info.masks {
		info.masks[i] = ^uint64(0)
	}
	for bit := 0; bit < limit; bit++ {
		pos := bit
		if reverse {
			pos = limit - 1 - bit
		}
		for _, value := range seq.MatcherForPosition(pos).MatchingBytes() {
			info.masks[value] &^= 1 << bit
		}
	}
	return info
}

// SearchForwards returns the first position in [from, to] where the
// sequence matches in bytes, or -1.
func (s *ShiftOrSearcher) SearchForwards(bytes []byte, from, to int) int {
	return s.doSearchForwards(bytes, from, to)
}

// SearchBackwards returns the highest position in [to, from] where the
// sequence matches in bytes, or -1.
func (s *ShiftOrSearcher) SearchBackwards(bytes []byte, from, to int) int {
	return s.doSearchBackwards(bytes, from, to)
}

// SearchReaderForwards returns the first position in [from, to] where
// the sequence matches in the reader, or -1.
func (s *ShiftOrSearcher) SearchReaderForwards(windowReader reader.WindowReader, from, to int64) (int64, error) {
	return s.searchReaderForwards(windowReader, from, to)
}

// SearchReaderBackwards returns the highest position in [to, from]
// where the sequence matches in the reader, or -1.
func (s *ShiftOrSearcher) SearchReaderBackwards(windowReader reader.WindowReader, from, to int64) (int64, error) {
	return s.searchReaderBackwards(windowReader, from, to)
}

// PrepareForwards eagerly builds the forward masks.
func (s *ShiftOrSearcher) PrepareForwards() {
	s.forward.Get()
}

// PrepareBackwards eagerly builds the backward masks.
func (s *ShiftOrSearcher) PrepareBackwards() {
	s.backward.Get()
}

func (s *ShiftOrSearcher) doSearchForwards(bytes []byte, from, to int) int {
	length := s.sequence.Length()
	from, to, any := clampForwards(len(bytes), length, from, to)
	if !any {
		return -1
	}
	info := s.forward.Get()
	state := ^uint64(0)
	// A candidate starting at `to` has its prefix end at to+limit-1,
	// which stays in bounds because to <= len(bytes)-length.
	endMax := to + info.limit - 1
	for end := from; end <= endMax; end++ {
		state = (state << 1) | info.masks[bytes[end]]
		if state&info.matchBit == 0 {
			start := end - info.limit + 1
			if length == info.limit || s.sequence.MatchesNoBoundsCheck(bytes, start) {
				return start
			}
		}
	}
	return -1
}

func (s *ShiftOrSearcher) doSearchBackwards(bytes []byte, from, to int) int {
	length := s.sequence.Length()
	from, to, any := clampBackwards(len(bytes), length, from, to)
	if !any {
		return -1
	}
	info := s.backward.Get()
	state := ^uint64(0)
	// Scanning descending with the reversed masks, the full-match bit
	// clears at position p exactly when the leading `limit` positions
	// of the sequence match at p.
	top := from + info.limit - 1
	for pos := top; pos >= to; pos-- {
		state = (state << 1) | info.masks[bytes[pos]]
		if state&info.matchBit == 0 {
			if length == info.limit || s.sequence.MatchesNoBoundsCheck(bytes, pos) {
				return pos
			}
		}
	}
	return -1
}

// String returns a description of the searcher for diagnostics.
func (s *ShiftOrSearcher) String() string {
	return fmt.Sprintf("ShiftOrSearcher(%s)", s.sequence.ToRegularExpression(false))
}
