package reader

import (
	"bytes"
	"io"
	"math/rand"
	"os"
	"path/filepath"
	"testing"

	"github.com/coregx/byteseek/cache"
)

// testData builds deterministic pseudo-random content.
func testData(size int) []byte {
	random := rand.New(rand.NewSource(42))
	data := make([]byte, size)
	random.Read(data)
	return data
}

// writeTempFile writes data to a file in the test's temp dir.
func writeTempFile(t *testing.T, data []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "source.bin")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("writing test file: %v", err)
	}
	return path
}

func TestByteArrayReader_SingleWindow(t *testing.T) {
	data := []byte("hello byte array reader")
	r := NewByteArrayReader(data)
	defer r.Close()

	length, err := r.Length()
	if err != nil {
		t.Fatalf("length failed: %v", err)
	}
	if length != int64(len(data)) {
		t.Errorf("length should be %d, got %d", len(data), length)
	}

	w, err := r.Window(5)
	if err != nil {
		t.Fatalf("window failed: %v", err)
	}
	if w == nil {
		t.Fatal("window should exist")
	}
	if w.Position() != 0 || w.Length() != len(data) {
		t.Errorf("single window should cover the whole slice: pos %d len %d", w.Position(), w.Length())
	}

	for pos := range data {
		value, err := r.Byte(int64(pos))
		if err != nil {
			t.Fatalf("byte at %d failed: %v", pos, err)
		}
		if value != data[pos] {
			t.Errorf("byte at %d should be %q, got %q", pos, data[pos], value)
		}
	}
	if _, err := r.Byte(int64(len(data))); err == nil {
		t.Error("byte past the end should fail")
	}
	if _, err := r.Byte(-1); err == nil {
		t.Error("byte at a negative position should fail")
	}
}

func TestReaders_RoundTripAcrossCachesAndWindowSizes(t *testing.T) {
	data := testData(3000)
	windowSizes := []int{32, 127, 512, 1024, 4096}
	caches := map[string]func() cache.WindowCache{
		"none": func() cache.WindowCache { return cache.NewNoCache() },
		"all":  func() cache.WindowCache { return cache.NewAllCache() },
		"lru":  func() cache.WindowCache { return cache.NewLeastRecentlyUsedCache(3) },
		"lfu":  func() cache.WindowCache { return cache.NewLeastFrequentlyUsedCache(3) },
	}
	positions := []int64{0, 1, 31, 32, 33, 126, 127, 128, 511, 1000, 2047, 2999}

	for _, windowSize := range windowSizes {
		for name, newCache := range caches {
			r, err := NewByteArrayReaderWith(data, windowSize, newCache())
			if err != nil {
				t.Fatalf("constructing reader failed: %v", err)
			}
			// Visit positions twice: cached and uncached reads must agree.
			for round := 0; round < 2; round++ {
				for _, pos := range positions {
					value, err := r.Byte(pos)
					if err != nil {
						t.Fatalf("windowSize %d cache %s round %d: byte at %d failed: %v",
							windowSize, name, round, pos, err)
					}
					if value != data[pos] {
						t.Fatalf("windowSize %d cache %s round %d: byte at %d should be %#x, got %#x",
							windowSize, name, round, pos, data[pos], value)
					}
				}
			}
		}
	}
}

func TestReader_ReadAtCrossesWindows(t *testing.T) {
	data := testData(1000)
	r, err := NewByteArrayReaderWith(data, 64, cache.NewLeastRecentlyUsedCache(2))
	if err != nil {
		t.Fatalf("constructing reader failed: %v", err)
	}

	dst := make([]byte, 300)
	read, err := r.ReadAt(dst, 50)
	if err != nil {
		t.Fatalf("read failed: %v", err)
	}
	if read != 300 {
		t.Fatalf("read should copy 300 bytes, got %d", read)
	}
	if !bytes.Equal(dst, data[50:350]) {
		t.Error("read bytes differ from source")
	}

	// A read reaching the end copies what remains and reports EOF.
	read, err = r.ReadAt(dst, 900)
	if err != io.EOF {
		t.Fatalf("short read should report io.EOF, got %v", err)
	}
	if read != 100 {
		t.Errorf("read at 900 should copy 100 bytes, got %d", read)
	}
	if !bytes.Equal(dst[:100], data[900:]) {
		t.Error("tail read bytes differ from source")
	}

	// A read entirely past the end copies nothing.
	read, err = r.ReadAt(dst, 2000)
	if err != io.EOF || read != 0 {
		t.Errorf("read past the end should be 0, io.EOF; got %d, %v", read, err)
	}
}

func TestFileReader_ReadsFile(t *testing.T) {
	data := testData(10000)
	path := writeTempFile(t, data)

	r, err := NewFileReaderWith(path, 1024, cache.NewLeastRecentlyUsedCache(4))
	if err != nil {
		t.Fatalf("opening reader failed: %v", err)
	}
	defer r.Close()

	length, err := r.Length()
	if err != nil || length != int64(len(data)) {
		t.Fatalf("length should be %d, got %d (%v)", len(data), length, err)
	}

	for _, pos := range []int64{0, 1023, 1024, 5000, 9999} {
		value, err := r.Byte(pos)
		if err != nil {
			t.Fatalf("byte at %d failed: %v", pos, err)
		}
		if value != data[pos] {
			t.Errorf("byte at %d should be %#x, got %#x", pos, data[pos], value)
		}
	}
	if _, err := r.Byte(10000); err == nil {
		t.Error("byte past the end should fail")
	}

	dst := make([]byte, 3000)
	if read, err := r.ReadAt(dst, 4000); err != nil || read != 3000 {
		t.Fatalf("read failed: %d, %v", read, err)
	}
	if !bytes.Equal(dst, data[4000:7000]) {
		t.Error("read bytes differ from file content")
	}
}

func TestFileReader_CloseIsIdempotent(t *testing.T) {
	path := writeTempFile(t, testData(100))
	r, err := NewFileReader(path)
	if err != nil {
		t.Fatalf("opening reader failed: %v", err)
	}
	if err := r.Close(); err != nil {
		t.Fatalf("close failed: %v", err)
	}
	if err := r.Close(); err != nil {
		t.Errorf("second close should be a no-op: %v", err)
	}
	if _, err := r.Window(0); err == nil {
		t.Error("window on a closed reader should fail")
	}
	if _, err := r.Length(); err == nil {
		t.Error("length on a closed reader should fail")
	}
}

func TestStreamReader_ForwardAndRandomAccess(t *testing.T) {
	data := testData(5000)
	r, err := NewStreamReaderWith(bytes.NewReader(data), 512, cache.NewAllCache())
	if err != nil {
		t.Fatalf("constructing reader failed: %v", err)
	}

	// Jumping ahead produces and caches the intermediate windows.
	value, err := r.Byte(3000)
	if err != nil {
		t.Fatalf("byte at 3000 failed: %v", err)
	}
	if value != data[3000] {
		t.Errorf("byte at 3000 should be %#x, got %#x", data[3000], value)
	}

	// Earlier positions are served from the cache.
	value, err = r.Byte(100)
	if err != nil {
		t.Fatalf("byte at 100 failed: %v", err)
	}
	if value != data[100] {
		t.Errorf("byte at 100 should be %#x, got %#x", data[100], value)
	}
}

func TestStreamReader_LengthDrainsStream(t *testing.T) {
	data := testData(3333)
	r, err := NewStreamReaderWith(bytes.NewReader(data), 512, cache.NewAllCache())
	if err != nil {
		t.Fatalf("constructing reader failed: %v", err)
	}

	length, err := r.Length()
	if err != nil {
		t.Fatalf("length failed: %v", err)
	}
	if length != int64(len(data)) {
		t.Errorf("length should be %d, got %d", len(data), length)
	}

	// All content is cached after the drain, including the short tail.
	value, err := r.Byte(3332)
	if err != nil || value != data[3332] {
		t.Errorf("final byte should be %#x, got %#x (%v)", data[3332], value, err)
	}
	if w, _ := r.Window(3333); w != nil {
		t.Error("window past the end should be nil")
	}
}

func TestStreamReader_EvictedHistoryIsAHardFault(t *testing.T) {
	data := testData(4096)
	// A tiny LRU cannot retain early windows once the stream advances.
	r, err := NewStreamReaderWith(bytes.NewReader(data), 256, cache.NewLeastRecentlyUsedCache(1))
	if err != nil {
		t.Fatalf("constructing reader failed: %v", err)
	}
	if _, err := r.Byte(4000); err != nil {
		t.Fatalf("forward read failed: %v", err)
	}
	if _, err := r.Byte(0); err == nil {
		t.Error("reading evicted history of a stream should fail")
	}
}
