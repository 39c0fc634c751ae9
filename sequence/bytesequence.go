package sequence

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/coregx/byteseek/internal/byteutil"
	"github.com/coregx/byteseek/matcher"
	"github.com/coregx/byteseek/reader"
)

// ByteSequenceMatcher matches an exact sequence of bytes: the
// specialized case of a sequence matcher where every position matches
// one byte value. It stores a shared byte array with start and end
// indices, so subsequences and reversed views cost nothing but a
// descriptor.
type ByteSequenceMatcher struct {
	hash  uint32
	array []byte
	start int
	end   int
}

// NewByteSequenceMatcher constructs a matcher for the given bytes. The
// bytes are copied; an empty sequence is an error.
func NewByteSequenceMatcher(values []byte) (*ByteSequenceMatcher, error) {
	if len(values) == 0 {
		return nil, errors.New("byte sequence matcher requires at least one byte")
	}
	owned := make([]byte, len(values))
	copy(owned, values)
	return newByteSequenceView(owned, 0, len(owned)), nil
}

// FromString constructs a matcher for the bytes of the given string.
func FromString(s string) (*ByteSequenceMatcher, error) {
	return NewByteSequenceMatcher([]byte(s))
}

// RepeatByte constructs a matcher for count repetitions of a single
// byte value. Count must be positive.
func RepeatByte(value byte, count int) (*ByteSequenceMatcher, error) {
	if count < 1 {
		return nil, errors.New("repeat count must be positive")
	}
	owned := make([]byte, count)
	for i := range owned {
		owned[i] = value
	}
	return newByteSequenceView(owned, 0, count), nil
}

// Concat constructs a matcher matching each of the given matchers in
// succession. The result owns a fresh array.
func Concat(matchers []*ByteSequenceMatcher) (*ByteSequenceMatcher, error) {
	if len(matchers) == 0 {
		return nil, errors.New("concatenation requires at least one matcher")
	}
	total := 0
	for _, m := range matchers {
		total += m.Length()
	}
	owned := make([]byte, 0, total)
	for _, m := range matchers {
		owned = append(owned, m.array[m.start:m.end]...)
	}
	return newByteSequenceView(owned, 0, total), nil
}

// FromSequence constructs a ByteSequenceMatcher from a general sequence
// matcher. Every position of the sequence must match exactly one byte;
// otherwise construction fails naming the first offending position.
func FromSequence(s SequenceMatcher) (*ByteSequenceMatcher, error) {
	if existing, ok := s.(*ByteSequenceMatcher); ok {
		return existing, nil
	}
	owned := make([]byte, s.Length())
	for pos := range owned {
		positionMatcher := s.MatcherForPosition(pos)
		if positionMatcher.NumberOfMatchingBytes() != 1 {
			return nil, fmt.Errorf("cannot build byte sequence matcher: position %d matches more than one byte", pos)
		}
		owned[pos] = positionMatcher.MatchingBytes()[0]
	}
	return newByteSequenceView(owned, 0, len(owned)), nil
}

// newByteSequenceView constructs a matcher viewing [start, end) of the
// shared array, hashing the viewed content.
func newByteSequenceView(array []byte, start, end int) *ByteSequenceMatcher {
	hash := uint32(0)
	for _, value := range array[start:end] {
		hash = hash*31 + uint32(value)
	}
	return &ByteSequenceMatcher{hash: hash, array: array, start: start, end: end}
}

// Length returns the number of bytes matched.
func (m *ByteSequenceMatcher) Length() int {
	return m.end - m.start
}

// MatcherForPosition returns the interned single-byte matcher for the
// given position.
func (m *ByteSequenceMatcher) MatcherForPosition(pos int) matcher.ByteMatcher {
	return matcher.OneByte(m.array[m.start+pos])
}

// NumBytesAtPosition returns 1: every position matches one byte.
func (m *ByteSequenceMatcher) NumBytesAtPosition(pos int) int {
	return 1
}

// ByteAt returns the byte matched at the given position.
func (m *ByteSequenceMatcher) ByteAt(pos int) byte {
	return m.array[m.start+pos]
}

// MatchesBytes reports whether the byte sequence appears at pos, with a
// fit test.
func (m *ByteSequenceMatcher) MatchesBytes(values []byte, pos int) bool {
	length := m.Length()
	if pos < 0 || pos+length > len(values) {
		return false
	}
	return bytes.Equal(values[pos:pos+length], m.array[m.start:m.end])
}

// MatchesNoBoundsCheck reports whether the byte sequence appears at pos;
// the caller must have established the sequence fits.
func (m *ByteSequenceMatcher) MatchesNoBoundsCheck(values []byte, pos int) bool {
	pattern := m.array[m.start:m.end]
	for i, value := range pattern {
		if values[pos+i] != value {
			return false
		}
	}
	return true
}

// MatchesReader reports whether the byte sequence appears at the given
// absolute reader position, comparing window arrays directly.
func (m *ByteSequenceMatcher) MatchesReader(windowReader reader.WindowReader, pos int64) (bool, error) {
	if pos < 0 {
		return false, nil
	}
	pattern := m.array[m.start:m.end]
	matched := 0
	for matched < len(pattern) {
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
		run := len(pattern) - matched
		if run > available {
			run = available
		}
		if !bytes.Equal(array[offset:offset+run], pattern[matched:matched+run]) {
			return false, nil
		}
		matched += run
	}
	return true, nil
}

// Subsequence returns a view of positions [begin, end) sharing the
// backing array. Requesting the whole sequence returns this instance.
func (m *ByteSequenceMatcher) Subsequence(begin, end int) SequenceMatcher {
	checkSubsequence(begin, end, m.Length())
	if begin == 0 && end == m.Length() {
		return m
	}
	return newByteSequenceView(m.array, m.start+begin, m.start+end)
}

// Reverse returns a reversed view sharing the backing array.
func (m *ByteSequenceMatcher) Reverse() SequenceMatcher {
	return newReverseByteSequenceView(m.array, m.start, m.end)
}

// Repeat returns a matcher for count repetitions of this sequence,
// owning a fresh array.
func (m *ByteSequenceMatcher) Repeat(count int) SequenceMatcher {
	if count < 1 {
		panic("sequence: repeat count must be positive")
	}
	pattern := m.array[m.start:m.end]
	owned := make([]byte, 0, count*len(pattern))
	for i := 0; i < count; i++ {
		owned = append(owned, pattern...)
	}
	return newByteSequenceView(owned, 0, len(owned))
}

// ToRegularExpression returns the canonical form of the byte sequence.
func (m *ByteSequenceMatcher) ToRegularExpression(prettyPrint bool) string {
	return byteutil.BytesToString(prettyPrint, m.array[m.start:m.end])
}

// Hash returns the content hash computed at construction.
func (m *ByteSequenceMatcher) Hash() uint32 {
	return m.hash
}

// Equal reports whether other is a ByteSequenceMatcher with the same
// byte content.
func (m *ByteSequenceMatcher) Equal(other SequenceMatcher) bool {
	otherBytes, ok := other.(*ByteSequenceMatcher)
	if !ok {
		return false
	}
	return m.hash == otherBytes.hash &&
		bytes.Equal(m.array[m.start:m.end], otherBytes.array[otherBytes.start:otherBytes.end])
}

// String returns a description of the matcher for diagnostics.
func (m *ByteSequenceMatcher) String() string {
	return fmt.Sprintf("ByteSequenceMatcher(%s)", m.ToRegularExpression(true))
}

// ReverseByteSequenceMatcher is the reversed view over a byte sequence's
// shared array: position 0 matches the last byte of the underlying
// region. Reversing it again returns a forward view over the same array.
type ReverseByteSequenceMatcher struct {
	hash  uint32
	array []byte
	start int
	end   int
}

// newReverseByteSequenceView constructs a reversed view over [start,
// end) of the shared array.
func newReverseByteSequenceView(array []byte, start, end int) *ReverseByteSequenceMatcher {
	hash := uint32(0)
	for pos := end - 1; pos >= start; pos-- {
		hash = hash*31 + uint32(array[pos])
	}
	return &ReverseByteSequenceMatcher{hash: hash, array: array, start: start, end: end}
}

// Length returns the number of bytes matched.
func (m *ReverseByteSequenceMatcher) Length() int {
	return m.end - m.start
}

// ByteAt returns the byte matched at the given position of the reversed
// view.
func (m *ReverseByteSequenceMatcher) ByteAt(pos int) byte {
	return m.array[m.end-1-pos]
}

// MatcherForPosition returns the interned single-byte matcher for the
// given position of the reversed view.
func (m *ReverseByteSequenceMatcher) MatcherForPosition(pos int) matcher.ByteMatcher {
	return matcher.OneByte(m.array[m.end-1-pos])
}

// NumBytesAtPosition returns 1: every position matches one byte.
func (m *ReverseByteSequenceMatcher) NumBytesAtPosition(pos int) int {
	return 1
}

// MatchesBytes reports whether the reversed sequence appears at pos,
// with a fit test.
func (m *ReverseByteSequenceMatcher) MatchesBytes(values []byte, pos int) bool {
	length := m.Length()
	if pos < 0 || pos+length > len(values) {
		return false
	}
	return m.MatchesNoBoundsCheck(values, pos)
}

// MatchesNoBoundsCheck reports whether the reversed sequence appears at
// pos; the caller must have established the sequence fits.
func (m *ReverseByteSequenceMatcher) MatchesNoBoundsCheck(values []byte, pos int) bool {
	for i, length := 0, m.Length(); i < length; i++ {
		if values[pos+i] != m.array[m.end-1-i] {
			return false
		}
	}
	return true
}

// MatchesReader reports whether the reversed sequence appears at the
// given absolute reader position.
func (m *ReverseByteSequenceMatcher) MatchesReader(windowReader reader.WindowReader, pos int64) (bool, error) {
	return matchReaderByMatcher(m, windowReader, pos)
}

// Subsequence returns a view of positions [begin, end) of the reversed
// view, still reversed, sharing the backing array.
func (m *ReverseByteSequenceMatcher) Subsequence(begin, end int) SequenceMatcher {
	checkSubsequence(begin, end, m.Length())
	if begin == 0 && end == m.Length() {
		return m
	}
	// Reversed position i maps to array index end-1-i, so the view of
	// reversed positions [begin, end) occupies array [m.end-end, m.end-begin).
	return newReverseByteSequenceView(m.array, m.end-end, m.end-begin)
}

// Reverse returns a forward view over the same backing array.
func (m *ReverseByteSequenceMatcher) Reverse() SequenceMatcher {
	return newByteSequenceView(m.array, m.start, m.end)
}

// Repeat returns a matcher for count repetitions of the reversed
// sequence, owning a fresh array.
func (m *ReverseByteSequenceMatcher) Repeat(count int) SequenceMatcher {
	if count < 1 {
		panic("sequence: repeat count must be positive")
	}
	length := m.Length()
	owned := make([]byte, 0, count*length)
	for i := 0; i < count; i++ {
		for pos := 0; pos < length; pos++ {
			owned = append(owned, m.ByteAt(pos))
		}
	}
	return newByteSequenceView(owned, 0, len(owned))
}

// ToRegularExpression returns the canonical form of the reversed
// sequence.
func (m *ReverseByteSequenceMatcher) ToRegularExpression(prettyPrint bool) string {
	reversed := make([]byte, m.Length())
	for pos := range reversed {
		reversed[pos] = m.ByteAt(pos)
	}
	return byteutil.BytesToString(prettyPrint, reversed)
}

// Hash returns the content hash computed at construction.
func (m *ReverseByteSequenceMatcher) Hash() uint32 {
	return m.hash
}

// Equal reports whether other is a ReverseByteSequenceMatcher matching
// the same byte content.
func (m *ReverseByteSequenceMatcher) Equal(other SequenceMatcher) bool {
	otherReverse, ok := other.(*ReverseByteSequenceMatcher)
	if !ok {
		return false
	}
	if m.hash != otherReverse.hash || m.Length() != otherReverse.Length() {
		return false
	}
	for pos, length := 0, m.Length(); pos < length; pos++ {
		if m.ByteAt(pos) != otherReverse.ByteAt(pos) {
			return false
		}
	}
	return true
}

// String returns a description of the matcher for diagnostics.
func (m *ReverseByteSequenceMatcher) String() string {
	return fmt.Sprintf("ReverseByteSequenceMatcher(%s)", m.ToRegularExpression(true))
}
