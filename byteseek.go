// Package byteseek provides high-performance binary pattern matching
// over arbitrarily large byte sources.
//
// The library has two halves:
//
//   - A windowed byte-reader abstraction (the reader, cache and windows
//     packages) that lets matchers and searchers process sources far
//     larger than memory with a uniform interface: sources are divided
//     into fixed-size windows backed by pluggable, composable caches
//     with temp-file spill and softly-reclaimable arrays.
//
//   - A matcher and searcher core (the matcher, sequence and searcher
//     packages): an algebra of single-byte matchers, sequence matchers
//     with cheap subsequence and reverse views, and fast sequence
//     searchers (Shift-Or, signed Horspool, hashed q-gram shifts) that
//     work identically over in-memory arrays and windowed readers.
//
// This package is the facade: it picks a search algorithm for a pattern
// the way a caller would by hand, from the pattern's length and the
// complexity of its position sets.
//
// Basic usage:
//
//	s, err := byteseek.NewSearcher([]byte("ABCDEF"))
//	if err != nil {
//	    log.Fatal(err)
//	}
//	pos := s.SearchForwards(data, 0, len(data)-1)
//	if pos >= 0 {
//	    fmt.Printf("found at %d\n", pos)
//	}
//
// Searching a file larger than memory:
//
//	r, err := reader.NewFileReader("huge.bin")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer r.Close()
//	pos, err := s.SearchReaderForwards(r, 0, math.MaxInt64)
package byteseek

import (
	"github.com/coregx/byteseek/searcher"
	"github.com/coregx/byteseek/sequence"
)

// Algorithm-selection thresholds. Shift-Or wins outright below the word
// size; Horspool overtakes it on mid-length simple patterns; hashed
// q-gram shifts win once patterns are long enough for large shifts.
const (
	shiftOrThreshold  = 8
	horspoolThreshold = 32
)

// NewSearcher constructs a searcher for an exact byte pattern, choosing
// the algorithm from the pattern length: Shift-Or for short patterns,
// signed Horspool for mid-length ones, hashed q-gram shifts for long
// ones. The pattern must not be empty.
func NewSearcher(pattern []byte) (searcher.SequenceSearcher, error) {
	seq, err := sequence.NewByteSequenceMatcher(pattern)
	if err != nil {
		return nil, err
	}
	return NewSearcherFor(seq), nil
}

// NewSearcherFor constructs a searcher for a sequence matcher, choosing
// the algorithm from the sequence length and the size of its position
// sets. Sequences with very large position sets search with Shift-Or,
// which is insensitive to set size; simple sequences graduate from
// Shift-Or through signed Horspool to hashed q-gram shifts as they get
// longer.
func NewSearcherFor(seq sequence.SequenceMatcher) searcher.SequenceSearcher {
	length := seq.Length()
	if length < shiftOrThreshold || hasLargePositionSets(seq) {
		return searcher.NewShiftOrSearcher(seq)
	}
	if length < horspoolThreshold {
		return searcher.NewSignedHorspoolSearcher(seq)
	}
	return searcher.NewSignedHashSearcher(seq)
}

// hasLargePositionSets reports whether any position of the sequence
// matches more than half the byte values, which collapses shift-based
// algorithms to single-step scans.
func hasLargePositionSets(seq sequence.SequenceMatcher) bool {
	for pos, length := 0, seq.Length(); pos < length; pos++ {
		if seq.NumBytesAtPosition(pos) > 128 {
			return true
		}
	}
	return false
}

// FindForwards returns the first position where pattern occurs in
// source, or -1. It is a convenience over NewSearcher for one-off
// searches.
func FindForwards(pattern, source []byte) (int, error) {
	s, err := NewSearcher(pattern)
	if err != nil {
		return -1, err
	}
	return s.SearchForwards(source, 0, len(source)-1), nil
}

// FindBackwards returns the last position where pattern occurs in
// source, or -1. It is a convenience over NewSearcher for one-off
// searches.
func FindBackwards(pattern, source []byte) (int, error) {
	s, err := NewSearcher(pattern)
	if err != nil {
		return -1, err
	}
	return s.SearchBackwards(source, len(source)-1, 0), nil
}
