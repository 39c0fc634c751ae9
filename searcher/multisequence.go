package searcher

import (
	"errors"
	"fmt"
	"io"

	"github.com/coregx/ahocorasick"

	"github.com/coregx/byteseek/reader"
)

// multiSequenceChunkSize is the amount of fresh data scanned per buffer
// fill when searching a reader. Each fill overlaps the previous one by
// the longest pattern length minus one, so matches straddling a fill
// boundary are still seen whole.
const multiSequenceChunkSize = 4096

// MultiSequenceSearcher finds the earliest occurrence of any of several
// byte sequences, using an Aho-Corasick automaton built once at
// construction. Unlike the single-sequence searchers there are no
// per-direction tables to prepare: the automaton serves both directions.
//
// Reader-based searches scan the reader through a sliding buffer with
// overlap, since the automaton needs contiguous bytes.
type MultiSequenceSearcher struct {
	patterns  [][]byte
	maxLength int
	automaton *ahocorasick.Automaton
}

// NewMultiSequenceSearcher constructs a searcher for the given byte
// sequences. At least one sequence is required and none may be empty.
// The pattern slices are copied.
func NewMultiSequenceSearcher(patterns [][]byte) (*MultiSequenceSearcher, error) {
	if len(patterns) == 0 {
		return nil, errors.New("multi sequence searcher requires at least one pattern")
	}
	s := &MultiSequenceSearcher{patterns: make([][]byte, len(patterns))}
	builder := ahocorasick.NewBuilder()
	for i, pattern := range patterns {
		if len(pattern) == 0 {
			return nil, fmt.Errorf("multi sequence searcher pattern %d is empty", i)
		}
		owned := make([]byte, len(pattern))
		copy(owned, pattern)
		s.patterns[i] = owned
		if len(owned) > s.maxLength {
			s.maxLength = len(owned)
		}
		builder.AddPattern(owned)
	}
	automaton, err := builder.Build()
	if err != nil {
		return nil, err
	}
	s.automaton = automaton
	return s, nil
}

// SearchForwards returns the first position in [from, to] where any of
// the patterns matches in bytes, or -1.
func (s *MultiSequenceSearcher) SearchForwards(bytes []byte, from, to int) int {
	if from < 0 {
		from = 0
	}
	if from > to || from >= len(bytes) {
		return -1
	}
	match := s.automaton.Find(bytes, from)
	if match == nil || match.Start > to {
		return -1
	}
	return match.Start
}

// SearchBackwards returns the highest position in [to, from] where any
// of the patterns matches in bytes, or -1.
func (s *MultiSequenceSearcher) SearchBackwards(bytes []byte, from, to int) int {
	if to < 0 {
		to = 0
	}
	if from < to || to >= len(bytes) {
		return -1
	}
	best := -1
	at := to
	for {
		match := s.automaton.Find(bytes, at)
		if match == nil || match.Start > from {
			return best
		}
		best = match.Start
		at = match.Start + 1
	}
}

// SearchReaderForwards returns the first position in [from, to] where
// any of the patterns matches in the reader, or -1.
func (s *MultiSequenceSearcher) SearchReaderForwards(windowReader reader.WindowReader, from, to int64) (int64, error) {
	if from < 0 {
		from = 0
	}
	if from > to {
		return -1, nil
	}
	buffer := make([]byte, multiSequenceChunkSize+s.maxLength-1)
	pos := from
	for {
		read, err := windowReader.ReadAt(buffer, pos)
		if err != nil && err != io.EOF {
			return -1, err
		}
		if read == 0 {
			return -1, nil
		}
		if match := s.automaton.Find(buffer[:read], 0); match != nil {
			start := pos + int64(match.Start)
			if start > to {
				return -1, nil
			}
			return start, nil
		}
		if read < len(buffer) {
			return -1, nil
		}
		// Advance by the fresh region only, keeping maxLength-1 bytes
		// of overlap so straddling matches are seen whole.
		pos += int64(read - (s.maxLength - 1))
		if pos > to {
			return -1, nil
		}
	}
}

// SearchReaderBackwards returns the highest position in [to, from]
// where any of the patterns matches in the reader, or -1.
func (s *MultiSequenceSearcher) SearchReaderBackwards(windowReader reader.WindowReader, from, to int64) (int64, error) {
	if to < 0 {
		to = 0
	}
	if from < to {
		return -1, nil
	}
	buffer := make([]byte, multiSequenceChunkSize+s.maxLength-1)
	best := int64(-1)
	pos := to
	for pos <= from {
		read, err := windowReader.ReadAt(buffer, pos)
		if err != nil && err != io.EOF {
			return -1, err
		}
		if read == 0 {
			return best, nil
		}
		at := 0
		for {
			match := s.automaton.Find(buffer[:read], at)
			if match == nil {
				break
			}
			start := pos + int64(match.Start)
			if start > from {
				break
			}
			if start >= to && start > best {
				best = start
			}
			at = match.Start + 1
		}
		if read < len(buffer) {
			return best, nil
		}
		pos += int64(read - (s.maxLength - 1))
	}
	return best, nil
}

// PrepareForwards is a no-op: the automaton is built at construction.
func (s *MultiSequenceSearcher) PrepareForwards() {}

// PrepareBackwards is a no-op: the automaton is built at construction.
func (s *MultiSequenceSearcher) PrepareBackwards() {}

// Patterns returns the number of patterns this searcher finds.
func (s *MultiSequenceSearcher) Patterns() int {
	return len(s.patterns)
}

// MaxPatternLength returns the length of the longest pattern.
func (s *MultiSequenceSearcher) MaxPatternLength() int {
	return s.maxLength
}

// String returns a description of the searcher for diagnostics.
func (s *MultiSequenceSearcher) String() string {
	return fmt.Sprintf("MultiSequenceSearcher(patterns: %d max length: %d)", len(s.patterns), s.maxLength)
}
