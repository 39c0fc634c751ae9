package sequence

import (
	"strings"
	"testing"

	"github.com/coregx/byteseek/cache"
	"github.com/coregx/byteseek/matcher"
	"github.com/coregx/byteseek/reader"
)

func byteSeq(t *testing.T, s string) *ByteSequenceMatcher {
	t.Helper()
	m, err := FromString(s)
	if err != nil {
		t.Fatalf("constructing sequence %q: %v", s, err)
	}
	return m
}

func matcherSeq(t *testing.T, matchers ...matcher.ByteMatcher) *MatcherSequence {
	t.Helper()
	m, err := NewMatcherSequence(matchers)
	if err != nil {
		t.Fatalf("constructing matcher sequence: %v", err)
	}
	return m
}

func TestByteSequenceMatcher_Matches(t *testing.T) {
	m := byteSeq(t, "ABCDEF")
	data := []byte("xxABCDEFyy")

	if !m.MatchesBytes(data, 2) {
		t.Error("sequence should match at 2")
	}
	if m.MatchesBytes(data, 1) || m.MatchesBytes(data, 3) {
		t.Error("sequence should not match at 1 or 3")
	}
	if m.MatchesBytes(data, 5) {
		t.Error("sequence should not match where it cannot fit")
	}
	if m.MatchesBytes(data, -1) {
		t.Error("sequence should not match at a negative position")
	}
	if !m.MatchesNoBoundsCheck(data, 2) {
		t.Error("no-bounds-check match should agree at 2")
	}
}

// TestSequenceMatchEqualsPositionwiseMatch verifies the defining
// property: a sequence matches exactly when each position's matcher
// matches the corresponding byte.
func TestSequenceMatchEqualsPositionwiseMatch(t *testing.T) {
	digits := matcher.ByteRange('0', '9')
	sequences := []SequenceMatcher{
		byteSeq(t, "abc"),
		byteSeq(t, "abc").Reverse(),
		matcherSeq(t, matcher.OneByte('a'), digits, matcher.Any()),
	}
	data := []byte("a5z abc cba a9!")

	for _, s := range sequences {
		for pos := 0; pos+s.Length() <= len(data); pos++ {
			expected := true
			for i := 0; i < s.Length(); i++ {
				if !s.MatcherForPosition(i).Matches(data[pos+i]) {
					expected = false
					break
				}
			}
			if got := s.MatchesBytes(data, pos); got != expected {
				t.Errorf("%v at %d: match is %v, want %v", s, pos, got, expected)
			}
		}
	}
}

func TestReverse_ReversesIteration(t *testing.T) {
	m := byteSeq(t, "ABC")
	r := m.Reverse()

	if r.Length() != 3 {
		t.Fatalf("reversed length should be 3, got %d", r.Length())
	}
	expected := []byte{'C', 'B', 'A'}
	for i, value := range expected {
		one, ok := r.MatcherForPosition(i).(*matcher.OneByteMatcher)
		if !ok {
			t.Fatalf("position %d should be a one byte matcher", i)
		}
		if one.Value() != value {
			t.Errorf("reversed position %d should be %q, got %q", i, value, one.Value())
		}
	}
	if !r.MatchesBytes([]byte("CBA"), 0) {
		t.Error("reversed sequence should match the reversed bytes")
	}
}

func TestReverseOfReverseIsOriginal(t *testing.T) {
	sequences := []SequenceMatcher{
		byteSeq(t, "hello"),
		matcherSeq(t, matcher.ByteRange('a', 'z'), matcher.OneByte('!')),
	}
	for _, s := range sequences {
		roundTrip := s.Reverse().Reverse()
		if !s.Equal(roundTrip) {
			t.Errorf("%v: reverse of reverse should equal the original", s)
		}
		if s.Hash() != roundTrip.Hash() {
			t.Errorf("%v: hashes should agree after double reverse", s)
		}
	}
}

func TestSubsequence_Laws(t *testing.T) {
	s := byteSeq(t, "ABCDEFGH")

	// The whole sequence is the same instance.
	if s.Subsequence(0, s.Length()) != SequenceMatcher(s) {
		t.Error("whole-sequence subsequence should return the same instance")
	}

	// Nested subsequences compose additively.
	outer := s.Subsequence(2, 7) // CDEFG
	inner := outer.Subsequence(1, 4)
	direct := s.Subsequence(3, 6) // DEF
	if !inner.Equal(direct) {
		t.Errorf("nested subsequence should equal the direct one: %v vs %v", inner, direct)
	}
	if inner.ToRegularExpression(false) != direct.ToRegularExpression(false) {
		t.Error("canonical forms of equal subsequences should agree")
	}

	// Subsequences of reversed views compose the same way.
	reversed := s.Reverse() // HGFEDCBA
	sub := reversed.Subsequence(1, 4)
	if sub.ToRegularExpression(true) != "'G' 'F' 'E'" {
		t.Errorf("reversed subsequence form wrong: %q", sub.ToRegularExpression(true))
	}
}

func TestSubsequence_PanicsOutOfRange(t *testing.T) {
	s := byteSeq(t, "ABC")
	for _, bounds := range [][2]int{{-1, 2}, {0, 4}, {2, 2}, {3, 2}} {
		func() {
			defer func() {
				if recover() == nil {
					t.Errorf("subsequence(%d, %d) should panic", bounds[0], bounds[1])
				}
			}()
			s.Subsequence(bounds[0], bounds[1])
		}()
	}
}

func TestRepeat(t *testing.T) {
	m := byteSeq(t, "AB")
	repeated := m.Repeat(3)
	if repeated.Length() != 6 {
		t.Fatalf("repeated length should be 6, got %d", repeated.Length())
	}
	if !repeated.MatchesBytes([]byte("ABABAB"), 0) {
		t.Error("repeated sequence should match the repetition")
	}
	if repeated.MatchesBytes([]byte("ABABAX"), 0) {
		t.Error("repeated sequence should not match a corrupted repetition")
	}
}

func TestFromSequence(t *testing.T) {
	// A matcher sequence of single-byte positions converts.
	single := matcherSeq(t, matcher.OneByte('A'), matcher.OneByte('B'))
	converted, err := FromSequence(single)
	if err != nil {
		t.Fatalf("conversion should succeed: %v", err)
	}
	if !converted.MatchesBytes([]byte("AB"), 0) {
		t.Error("converted sequence should match the bytes")
	}

	// A position matching more than one byte cannot convert.
	multi := matcherSeq(t, matcher.OneByte('A'), matcher.ByteRange('0', '9'))
	if _, err := FromSequence(multi); err == nil {
		t.Fatal("conversion of a multi-byte position should fail")
	} else if !strings.Contains(err.Error(), "position 1") {
		t.Errorf("error should name position 1, got %q", err)
	}
}

func TestEqualityAndHash(t *testing.T) {
	a := byteSeq(t, "same")
	b := byteSeq(t, "same")
	c := byteSeq(t, "different")

	if !a.Equal(b) {
		t.Error("equal content should compare equal")
	}
	if a.Hash() != b.Hash() {
		t.Error("equal content should hash equally")
	}
	if a.Equal(c) {
		t.Error("different content should not compare equal")
	}

	// Cross-type comparison is not equality, as in separate variants.
	asMatchers := matcherSeq(t, matcher.OneByte('s'), matcher.OneByte('a'),
		matcher.OneByte('m'), matcher.OneByte('e'))
	if a.Equal(asMatchers) {
		t.Error("different concrete types should not compare equal")
	}
}

func TestMatchesReader_CrossesWindowBoundaries(t *testing.T) {
	data := []byte("0123456789ABCDEFGHIJ0123456789")
	m := byteSeq(t, "89ABCD")

	for _, windowSize := range []int{4, 7, 16, 32} {
		r, err := reader.NewByteArrayReaderWith(data, windowSize, cache.NewAllCache())
		if err != nil {
			t.Fatalf("constructing reader failed: %v", err)
		}
		matched, err := m.MatchesReader(r, 8)
		if err != nil {
			t.Fatalf("windowSize %d: reader match failed: %v", windowSize, err)
		}
		if !matched {
			t.Errorf("windowSize %d: sequence should match at 8 across boundaries", windowSize)
		}
		matched, err = m.MatchesReader(r, 9)
		if err != nil {
			t.Fatalf("windowSize %d: reader match failed: %v", windowSize, err)
		}
		if matched {
			t.Errorf("windowSize %d: sequence should not match at 9", windowSize)
		}
	}
}

func TestMatchesReader_EndOfSourceMidSequenceIsNoMatch(t *testing.T) {
	data := []byte("ABCD")
	m := byteSeq(t, "CDEF")
	r := reader.NewByteArrayReader(data)

	matched, err := m.MatchesReader(r, 2)
	if err != nil {
		t.Fatalf("reader match failed: %v", err)
	}
	if matched {
		t.Error("a sequence running past the end of the source should not match")
	}
}

func TestMatcherSequence_Views(t *testing.T) {
	digits := matcher.ByteRange('0', '9')
	letters := matcher.ByteRange('a', 'z')
	s := matcherSeq(t, matcher.OneByte('x'), digits, letters, matcher.OneByte('y'))

	sub := s.Subsequence(1, 3)
	if sub.Length() != 2 {
		t.Fatalf("subsequence length should be 2, got %d", sub.Length())
	}
	if !sub.MatchesBytes([]byte("5k"), 0) {
		t.Error("subsequence should match a digit then a letter")
	}

	rev := sub.Reverse()
	if !rev.MatchesBytes([]byte("k5"), 0) {
		t.Error("reversed subsequence should match a letter then a digit")
	}
	if rev.MatchesBytes([]byte("5k"), 0) {
		t.Error("reversed subsequence should not match the forward order")
	}
}
