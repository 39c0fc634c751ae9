package simd

import (
	"bytes"
	"math/rand"
	"testing"
)

func TestMemchr_AgainstStdlib(t *testing.T) {
	random := rand.New(rand.NewSource(5))
	for trial := 0; trial < 200; trial++ {
		size := random.Intn(200)
		haystack := make([]byte, size)
		for i := range haystack {
			haystack[i] = byte(random.Intn(8))
		}
		needle := byte(random.Intn(8))
		if got, want := Memchr(haystack, needle), bytes.IndexByte(haystack, needle); got != want {
			t.Fatalf("Memchr(%v, %d) = %d, want %d", haystack, needle, got, want)
		}
	}
}

func TestMemchr_Boundaries(t *testing.T) {
	if Memchr(nil, 'x') != -1 {
		t.Error("empty haystack should report -1")
	}
	haystack := make([]byte, 40)
	for _, pos := range []int{0, 7, 8, 15, 16, 31, 32, 39} {
		haystack[pos] = 'x'
		if got := Memchr(haystack, 'x'); got != pos {
			t.Errorf("needle at %d found at %d", pos, got)
		}
		haystack[pos] = 0
	}
}

func TestMemchr2And3_AgainstScan(t *testing.T) {
	random := rand.New(rand.NewSource(9))
	for trial := 0; trial < 200; trial++ {
		size := random.Intn(150)
		haystack := make([]byte, size)
		for i := range haystack {
			haystack[i] = byte(random.Intn(6))
		}
		n1, n2, n3 := byte(random.Intn(6)), byte(random.Intn(6)), byte(random.Intn(6))

		want2 := -1
		for i, b := range haystack {
			if b == n1 || b == n2 {
				want2 = i
				break
			}
		}
		if got := Memchr2(haystack, n1, n2); got != want2 {
			t.Fatalf("Memchr2(%v, %d, %d) = %d, want %d", haystack, n1, n2, got, want2)
		}

		want3 := -1
		for i, b := range haystack {
			if b == n1 || b == n2 || b == n3 {
				want3 = i
				break
			}
		}
		if got := Memchr3(haystack, n1, n2, n3); got != want3 {
			t.Fatalf("Memchr3(%v, %d, %d, %d) = %d, want %d", haystack, n1, n2, n3, got, want3)
		}
	}
}

func TestMemrchr_AgainstStdlib(t *testing.T) {
	random := rand.New(rand.NewSource(17))
	for trial := 0; trial < 200; trial++ {
		size := random.Intn(200)
		haystack := make([]byte, size)
		for i := range haystack {
			haystack[i] = byte(random.Intn(8))
		}
		needle := byte(random.Intn(8))
		if got, want := Memrchr(haystack, needle), bytes.LastIndexByte(haystack, needle); got != want {
			t.Fatalf("Memrchr(%v, %d) = %d, want %d", haystack, needle, got, want)
		}
	}
}

func TestMemrchr_SpuriousBorrowFlags(t *testing.T) {
	// A zero XOR byte below a non-matching byte must not shadow it:
	// the subtractive formula would flag the byte above a match, which
	// is exactly the case the exact detection form exists for.
	haystack := []byte{7, 7, 7, 7, 7, 7, 0, 1, 7, 7, 7, 7, 7, 7, 7, 7}
	if got := Memrchr(haystack, 0); got != 6 {
		t.Errorf("last zero is at 6, got %d", got)
	}
	if got := Memrchr(haystack, 1); got != 7 {
		t.Errorf("last one is at 7, got %d", got)
	}
}
