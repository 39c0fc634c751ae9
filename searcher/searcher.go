// Package searcher provides forward and backward search of a sequence
// matcher in byte arrays and in WindowReaders. The algorithms are
// Shift-Or (bit-parallel), signed Horspool, and signed q-gram hashing,
// plus a plain per-position scan and a multi-sequence searcher.
//
// Searchers that consume q-grams cannot serve every pattern: a pattern
// shorter than the q-gram length, or one whose position sets would
// degenerate the hash table, transparently falls back to the Shift-Or
// searcher, which handles any pattern and is the fastest algorithm for
// short ones. Fallback selection is frozen the first time a direction is
// prepared.
//
// Search index tables are built lazily per direction on first use, or
// eagerly through PrepareForwards and PrepareBackwards. A searcher whose
// tables are built is immutable and safe to share between goroutines.
//
// Reader-based searches run window by window: each window's array is
// searched with the array algorithm, clipped so no candidate runs off
// the window, and the positions where a match would straddle the next
// window boundary are verified through the sequence matcher's
// reader-based matching, which crosses boundaries transparently.
package searcher

import (
	"github.com/coregx/byteseek/reader"
	"github.com/coregx/byteseek/sequence"
)

// SequenceSearcher searches for a sequence in byte arrays and in
// WindowReaders, forwards and backwards.
//
// Positions define inclusive search bounds on the start of a match. A
// forward search scans [from, to] ascending and returns the first match
// position, or -1. A backward search scans from `from` descending to
// `to` (from >= to) and returns the first match position found, which is
// the highest match position in [to, from], or -1.
type SequenceSearcher interface {
	// SearchForwards returns the first position in [from, to] where
	// the sequence matches in bytes, or -1.
	SearchForwards(bytes []byte, from, to int) int

	// SearchBackwards returns the highest position in [to, from] where
	// the sequence matches in bytes, or -1.
	SearchBackwards(bytes []byte, from, to int) int

	// SearchReaderForwards returns the first position in [from, to]
	// where the sequence matches in the reader, or -1.
	SearchReaderForwards(windowReader reader.WindowReader, from, to int64) (int64, error)

	// SearchReaderBackwards returns the highest position in [to, from]
	// where the sequence matches in the reader, or -1.
	SearchReaderBackwards(windowReader reader.WindowReader, from, to int64) (int64, error)

	// PrepareForwards eagerly builds the forward search tables;
	// otherwise they are built on the first forward search.
	PrepareForwards()

	// PrepareBackwards eagerly builds the backward search tables;
	// otherwise they are built on the first backward search.
	PrepareBackwards()
}

// windowSearcher drives reader-based searches for the single-sequence
// searchers as a window-by-window loop over the array search functions,
// which concrete searchers wire to their algorithm implementations after
// construction.
type windowSearcher struct {
	sequence             sequence.SequenceMatcher
	searchArrayForwards  func(bytes []byte, from, to int) int
	searchArrayBackwards func(bytes []byte, from, to int) int
}

// Sequence returns the sequence this searcher searches for.
func (s *windowSearcher) Sequence() sequence.SequenceMatcher {
	return s.sequence
}

// searchReaderForwards scans windows ascending from `from`. Within each
// window, positions where the whole sequence fits are searched with the
// array algorithm; the tail positions, where a match would straddle into
// the next window, are verified with reader-based matching.
func (s *windowSearcher) searchReaderForwards(windowReader reader.WindowReader, from, to int64) (int64, error) {
	if from < 0 {
		from = 0
	}
	if from > to {
		return -1, nil
	}
	length := s.sequence.Length()
	pos := from
	for pos <= to {
		window, err := windowReader.Window(pos)
		if err != nil {
			return -1, err
		}
		if window == nil {
			return -1, nil
		}
		windowPos := window.Position()
		offset := int(pos - windowPos)
		if offset >= window.Length() {
			return -1, nil
		}
		array, err := window.Array()
		if err != nil {
			return -1, err
		}
		searchTo := window.Length() - 1
		if limit := to - windowPos; limit < int64(searchTo) {
			searchTo = int(limit)
		}
		lastFitting := window.Length() - length
		if lastFitting >= offset {
			end := searchTo
			if end > lastFitting {
				end = lastFitting
			}
			if found := s.searchArrayForwards(array[:window.Length()], offset, end); found >= 0 {
				return windowPos + int64(found), nil
			}
		}
		// Positions where the sequence cannot fit inside this window
		// are verified across the boundary.
		boundaryStart := lastFitting + 1
		if boundaryStart < offset {
			boundaryStart = offset
		}
		for straddle := boundaryStart; straddle <= searchTo; straddle++ {
			matched, err := s.sequence.MatchesReader(windowReader, windowPos+int64(straddle))
			if err != nil {
				return -1, err
			}
			if matched {
				return windowPos + int64(straddle), nil
			}
		}
		pos = windowPos + int64(window.Length())
	}
	return -1, nil
}

// searchReaderBackwards scans windows descending from `from`. Within
// each window, the boundary-straddling positions are verified first
// (they are the highest), then the fitting positions are searched with
// the array algorithm.
func (s *windowSearcher) searchReaderBackwards(windowReader reader.WindowReader, from, to int64) (int64, error) {
	if to < 0 {
		to = 0
	}
	if from < to {
		return -1, nil
	}
	length := s.sequence.Length()
	pos := from
	for pos >= to {
		window, err := windowReader.Window(pos)
		if err != nil {
			return -1, err
		}
		if window == nil {
			// The start position lies beyond the end of the source:
			// clamp to the final byte and retry.
			sourceLength, err := windowReader.Length()
			if err != nil {
				return -1, err
			}
			if pos >= sourceLength && sourceLength > 0 {
				pos = sourceLength - 1
				continue
			}
			return -1, nil
		}
		windowPos := window.Position()
		offset := int(pos - windowPos)
		if offset >= window.Length() {
			offset = window.Length() - 1
		}
		array, err := window.Array()
		if err != nil {
			return -1, err
		}
		lowLimit := 0
		if limit := to - windowPos; limit > 0 {
			lowLimit = int(limit)
		}
		lastFitting := window.Length() - length
		boundaryEnd := lastFitting + 1
		if boundaryEnd < lowLimit {
			boundaryEnd = lowLimit
		}
		for straddle := offset; straddle >= boundaryEnd; straddle-- {
			matched, err := s.sequence.MatchesReader(windowReader, windowPos+int64(straddle))
			if err != nil {
				return -1, err
			}
			if matched {
				return windowPos + int64(straddle), nil
			}
		}
		high := offset
		if high > lastFitting {
			high = lastFitting
		}
		if high >= lowLimit {
			if found := s.searchArrayBackwards(array[:window.Length()], high, lowLimit); found >= 0 {
				return windowPos + int64(found), nil
			}
		}
		pos = windowPos - 1
	}
	return -1, nil
}

// clampForwards normalizes forward array search bounds so matches fit:
// from is clamped to zero and to is clamped to the last fitting
// position. It reports whether any position remains to search.
func clampForwards(bytesLen, sequenceLen int, from, to int) (int, int, bool) {
	if from < 0 {
		from = 0
	}
	lastFitting := bytesLen - sequenceLen
	if to > lastFitting {
		to = lastFitting
	}
	return from, to, from <= to
}

// clampBackwards normalizes backward array search bounds: from is
// clamped to the last fitting position and to is clamped to zero. It
// reports whether any position remains to search.
func clampBackwards(bytesLen, sequenceLen int, from, to int) (int, int, bool) {
	lastFitting := bytesLen - sequenceLen
	if from > lastFitting {
		from = lastFitting
	}
	if to < 0 {
		to = 0
	}
	return from, to, from >= to
}
