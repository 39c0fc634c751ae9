package searcher

import (
	"fmt"

	"github.com/coregx/byteseek/internal/lazy"
	"github.com/coregx/byteseek/reader"
	"github.com/coregx/byteseek/sequence"
)

const (
	// maxQgramsPerPosition caps the number of q-grams enumerated at one
	// sequence position when building the hash table. A position window
	// whose matcher sets multiply out beyond this is pathological for
	// hashing, so the searcher falls back instead of building a table
	// of worthless shifts.
	maxQgramsPerPosition = 4096

	// minHashTableSize and maxHashTableSize bound the power-of-two
	// shift table. Beyond the maximum, extra q-grams simply share
	// buckets, which shrinks shifts but stays correct.
	minHashTableSize = 256
	maxHashTableSize = 1 << 16

	// hashMultiplier folds q-gram bytes into a bucket index.
	hashMultiplier = 101
)

// hashInfo is the immutable search table for one direction, or the
// decision to fall back for sequences the algorithm cannot serve.
type hashInfo struct {
	shifts   []int
	mask     uint32
	fallback bool
}

// SignedHashSearcher searches with hashed q-gram shifts: the bytes of a
// q-gram ending a window are hashed into a table of safe shift
// distances, with the sign marking q-grams the end of the sequence can
// match, as in the signed Horspool searcher. Longer q-grams see more
// context per lookup, so shifts stay near the maximum for long
// sequences, where single-byte shift tables saturate.
//
// Sequences shorter than the q-gram length, and sequences whose matcher
// sets would explode the q-gram enumeration, fall back transparently to
// the Shift-Or searcher. The fallback decision is made when a
// direction's table is first prepared and is frozen from then on.
type SignedHashSearcher struct {
	windowSearcher
	qgramLength int
	forward     *lazy.Lazy[*hashInfo]
	backward    *lazy.Lazy[*hashInfo]
	fallback    *lazy.Lazy[*ShiftOrSearcher]
}

// NewSignedHashSearcher constructs a hashed q-gram searcher with the
// q-gram length chosen from the sequence length: 3 for long sequences,
// otherwise 2.
func NewSignedHashSearcher(seq sequence.SequenceMatcher) *SignedHashSearcher {
	qgramLength := 2
	if seq.Length() >= 32 {
		qgramLength = 3
	}
	return NewSignedHashSearcherQ(seq, qgramLength)
}

// NewSignedHashSearcherQ constructs a hashed q-gram searcher with an
// explicit q-gram length of 2 or 3. Sequences shorter than the q-gram
// length are served by the fallback searcher.
func NewSignedHashSearcherQ(seq sequence.SequenceMatcher, qgramLength int) *SignedHashSearcher {
	if qgramLength < 2 || qgramLength > 3 {
		panic("searcher: q-gram length must be 2 or 3")
	}
	s := &SignedHashSearcher{qgramLength: qgramLength}
	s.sequence = seq
	s.forward = lazy.New(func() *hashInfo { return buildHashInfo(seq, qgramLength, false) })
	s.backward = lazy.New(func() *hashInfo { return buildHashInfo(seq, qgramLength, true) })
	s.fallback = lazy.New(func() *ShiftOrSearcher { return NewShiftOrSearcher(seq) })
	s.searchArrayForwards = s.doSearchForwards
	s.searchArrayBackwards = s.doSearchBackwards
	return s
}

// buildHashInfo builds the shift table for one direction, or records
// the fallback decision for sequences the algorithm cannot serve.
//
// Forwards, shifts are keyed by the q-gram ending the search window:
// the distance from the rightmost inner q-gram position matching it to
// the final q-gram position, defaulting to length-q+1 for q-grams
// matching nowhere. Q-grams the final position can match carry their
// shift negated, marking a verification point. Backwards mirrors this
// around the start of the sequence.
func buildHashInfo(seq sequence.SequenceMatcher, qgramLength int, reverse bool) *hashInfo {
	length := seq.Length()
	if length < qgramLength {
		return &hashInfo{fallback: true}
	}
	lastQgramPos := length - qgramLength
	totalQgrams := 0
	for pos := 0; pos <= lastQgramPos; pos++ {
		product := 1
		for i := 0; i < qgramLength; i++ {
			product *= seq.NumBytesAtPosition(pos + i)
			if product > maxQgramsPerPosition {
				return &hashInfo{fallback: true}
			}
		}
		totalQgrams += product
	}
	tableSize := minHashTableSize
	for tableSize < 2*totalQgrams && tableSize < maxHashTableSize {
		tableSize <<= 1
	}
	info := &hashInfo{shifts: make([]int, tableSize), mask: uint32(tableSize - 1)}
	maxShift := lastQgramPos + 1
	for i := range info.shifts {
		info.shifts[i] = maxShift
	}
	if reverse {
		for pos := lastQgramPos; pos > 0; pos-- {
			forEachQgramHash(seq, pos, qgramLength, info.mask, func(bucket uint32) {
				if pos < info.shifts[bucket] {
					info.shifts[bucket] = pos
				}
			})
		}
		forEachQgramHash(seq, 0, qgramLength, info.mask, func(bucket uint32) {
			if info.shifts[bucket] > 0 {
				info.shifts[bucket] = -info.shifts[bucket]
			}
		})
	} else {
		for pos := 0; pos < lastQgramPos; pos++ {
			shift := lastQgramPos - pos
			forEachQgramHash(seq, pos, qgramLength, info.mask, func(bucket uint32) {
				if shift < info.shifts[bucket] {
					info.shifts[bucket] = shift
				}
			})
		}
		forEachQgramHash(seq, lastQgramPos, qgramLength, info.mask, func(bucket uint32) {
			if info.shifts[bucket] > 0 {
				info.shifts[bucket] = -info.shifts[bucket]
			}
		})
	}
	return info
}

// forEachQgramHash enumerates every q-gram the sequence positions
// [pos, pos+qgramLength) can match, calling fn with each bucket index.
func forEachQgramHash(seq sequence.SequenceMatcher, pos, qgramLength int, mask uint32, fn func(bucket uint32)) {
	firstBytes := seq.MatcherForPosition(pos).MatchingBytes()
	secondBytes := seq.MatcherForPosition(pos + 1).MatchingBytes()
	if qgramLength == 2 {
		for _, first := range firstBytes {
			firstHash := uint32(first) * hashMultiplier
			for _, second := range secondBytes {
				fn((firstHash + uint32(second)) & mask)
			}
		}
		return
	}
	thirdBytes := seq.MatcherForPosition(pos + 2).MatchingBytes()
	for _, first := range firstBytes {
		firstHash := uint32(first) * hashMultiplier
		for _, second := range secondBytes {
			secondHash := (firstHash + uint32(second)) * hashMultiplier
			for _, third := range thirdBytes {
				fn((secondHash + uint32(third)) & mask)
			}
		}
	}
}

// hashQgram folds the q-gram starting at bytes[start] into a bucket
// index.
func hashQgram(bytes []byte, start, qgramLength int, mask uint32) uint32 {
	hash := uint32(bytes[start])
	for i := 1; i < qgramLength; i++ {
		hash = hash*hashMultiplier + uint32(bytes[start+i])
	}
	return hash & mask
}

// fallbackForwards reports whether forward searches use the fallback
// searcher, freezing the decision on first call.
func (s *SignedHashSearcher) fallbackForwards() bool {
	return s.forward.Get().fallback
}

// fallbackBackwards reports whether backward searches use the fallback
// searcher, freezing the decision on first call.
func (s *SignedHashSearcher) fallbackBackwards() bool {
	return s.backward.Get().fallback
}

// SearchForwards returns the first position in [from, to] where the
// sequence matches in bytes, or -1.
func (s *SignedHashSearcher) SearchForwards(bytes []byte, from, to int) int {
	if s.fallbackForwards() {
		return s.fallback.Get().SearchForwards(bytes, from, to)
	}
	return s.doSearchForwards(bytes, from, to)
}

// SearchBackwards returns the highest position in [to, from] where the
// sequence matches in bytes, or -1.
func (s *SignedHashSearcher) SearchBackwards(bytes []byte, from, to int) int {
	if s.fallbackBackwards() {
		return s.fallback.Get().SearchBackwards(bytes, from, to)
	}
	return s.doSearchBackwards(bytes, from, to)
}

// SearchReaderForwards returns the first position in [from, to] where
// the sequence matches in the reader, or -1.
func (s *SignedHashSearcher) SearchReaderForwards(windowReader reader.WindowReader, from, to int64) (int64, error) {
	if s.fallbackForwards() {
		return s.fallback.Get().SearchReaderForwards(windowReader, from, to)
	}
	return s.searchReaderForwards(windowReader, from, to)
}

// SearchReaderBackwards returns the highest position in [to, from]
// where the sequence matches in the reader, or -1.
func (s *SignedHashSearcher) SearchReaderBackwards(windowReader reader.WindowReader, from, to int64) (int64, error) {
	if s.fallbackBackwards() {
		return s.fallback.Get().SearchReaderBackwards(windowReader, from, to)
	}
	return s.searchReaderBackwards(windowReader, from, to)
}

// PrepareForwards eagerly builds the forward table, or prepares the
// fallback searcher if this sequence falls back.
func (s *SignedHashSearcher) PrepareForwards() {
	if s.fallbackForwards() {
		s.fallback.Get().PrepareForwards()
	}
}

// PrepareBackwards eagerly builds the backward table, or prepares the
// fallback searcher if this sequence falls back.
func (s *SignedHashSearcher) PrepareBackwards() {
	if s.fallbackBackwards() {
		s.fallback.Get().PrepareBackwards()
	}
}

func (s *SignedHashSearcher) doSearchForwards(bytes []byte, from, to int) int {
	length := s.sequence.Length()
	from, to, any := clampForwards(len(bytes), length, from, to)
	if !any {
		return -1
	}
	info := s.forward.Get()
	qgramLength := s.qgramLength
	// pos tracks the text byte aligned with the end of the sequence;
	// the q-gram hashed is the one ending at pos.
	pos := from + length - 1
	endLimit := to + length - 1
	for pos <= endLimit {
		bucket := hashQgram(bytes, pos-qgramLength+1, qgramLength, info.mask)
		shift := info.shifts[bucket]
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

func (s *SignedHashSearcher) doSearchBackwards(bytes []byte, from, to int) int {
	length := s.sequence.Length()
	from, to, any := clampBackwards(len(bytes), length, from, to)
	if !any {
		return -1
	}
	info := s.backward.Get()
	qgramLength := s.qgramLength
	// pos tracks the candidate start; the q-gram hashed is the one
	// starting at pos.
	for pos := from; pos >= to; {
		bucket := hashQgram(bytes, pos, qgramLength, info.mask)
		shift := info.shifts[bucket]
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
func (s *SignedHashSearcher) String() string {
	return fmt.Sprintf("SignedHashSearcher(q: %d sequence: %s)", s.qgramLength, s.sequence.ToRegularExpression(false))
}
