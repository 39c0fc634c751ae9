package reader

import (
	"errors"

	"github.com/coregx/byteseek/cache"
	"github.com/coregx/byteseek/windows"
)

// ByteArrayReader is a WindowReader over an in-memory byte slice.
// Windows are views onto the original slice: no bytes are copied. The
// slice must not be mutated after construction.
type ByteArrayReader struct {
	baseReader
	data []byte
}

// NewByteArrayReader constructs a reader over data presented as a single
// window covering the whole slice. No cache is needed: windows are
// created directly over the slice.
func NewByteArrayReader(data []byte) *ByteArrayReader {
	windowSize := len(data)
	if windowSize < 1 {
		windowSize = 1
	}
	reader, _ := NewByteArrayReaderWith(data, windowSize, cache.NewNoCache())
	return reader
}

// NewByteArrayReaderWith constructs a reader over data divided into
// windows of the given size. Smaller window sizes are mainly useful for
// exercising window-boundary behavior against in-memory data. The window
// size must be positive.
func NewByteArrayReaderWith(data []byte, windowSize int, windowCache cache.WindowCache) (*ByteArrayReader, error) {
	if windowSize < 1 {
		return nil, errors.New("window size must be positive")
	}
	reader := &ByteArrayReader{
		baseReader: baseReader{windowSize: windowSize, cache: windowCache},
		data:       data,
	}
	reader.create = reader.createWindow
	reader.sourceLength = func() (int64, error) { return int64(len(reader.data)), nil }
	return reader, nil
}

// createWindow returns a window viewing the slice region starting at the
// aligned windowStart position.
func (r *ByteArrayReader) createWindow(windowStart int64) (windows.Window, error) {
	if windowStart >= int64(len(r.data)) {
		return nil, nil
	}
	end := windowStart + int64(r.windowSize)
	if end > int64(len(r.data)) {
		end = int64(len(r.data))
	}
	view := r.data[windowStart:end]
	return windows.NewHardWindow(view, windowStart, len(view)), nil
}

// String returns a description of the reader for diagnostics.
func (r *ByteArrayReader) String() string {
	return "ByteArrayReader()"
}
