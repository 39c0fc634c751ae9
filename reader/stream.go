package reader

import (
	"errors"
	"fmt"
	"io"

	"github.com/coregx/byteseek/cache"
	"github.com/coregx/byteseek/windows"
)

// StreamReader is a WindowReader over a forward-only stream. Windows are
// produced in order as the stream is read; random access to positions
// already passed is served from the cache only, since the origin cannot
// seek backwards. A request ahead of the stream position advances the
// stream, producing and caching every intermediate window.
//
// Because earlier windows can never be re-read from the origin, a
// StreamReader needs a cache that retains everything it may be asked for
// again. The convenience constructor uses an AllCache; sources too large
// for memory should pair a small memory cache with a temp-file spill:
//
//	spill, err := cache.NewTempFileStreamCache(4096, "")
//	if err != nil { ... }
//	twoLevel := cache.NewTwoLevelCache(cache.NewMostRecentlyUsedCache(16), spill)
//	r := reader.NewStreamReaderWith(src, 4096, twoLevel)
type StreamReader struct {
	baseReader
	source    io.Reader
	streamPos int64
	eof       bool
}

// NewStreamReader constructs a stream reader with the default window
// size and a cache retaining every window read.
func NewStreamReader(source io.Reader) *StreamReader {
	reader, _ := NewStreamReaderWith(source, DefaultWindowSize, cache.NewAllCache())
	return reader
}

// NewStreamReaderWith constructs a stream reader with the given window
// size and cache. The window size must be positive.
func NewStreamReaderWith(source io.Reader, windowSize int, windowCache cache.WindowCache) (*StreamReader, error) {
	if windowSize < 1 {
		return nil, errors.New("window size must be positive")
	}
	reader := &StreamReader{
		baseReader: baseReader{windowSize: windowSize, cache: windowCache},
		source:     source,
	}
	reader.create = reader.createWindow
	reader.sourceLength = reader.drainLength
	reader.closeSource = reader.closeOrigin
	return reader, nil
}

// createWindow produces the window starting at windowStart by advancing
// the stream, caching any intermediate windows passed over on the way.
// A request behind the stream position can only be a cache miss for data
// the origin no longer has, which is a hard fault.
func (r *StreamReader) createWindow(windowStart int64) (windows.Window, error) {
	if windowStart < r.streamPos {
		return nil, fmt.Errorf("%w: window at %d already passed by stream at %d and not cached",
			windows.ErrWindowMissing, windowStart, r.streamPos)
	}
	for !r.eof {
		window, err := r.readNextWindow()
		if err != nil {
			return nil, err
		}
		if window == nil {
			break
		}
		if window.Position() == windowStart {
			// The base reader adds the returned window to the cache.
			return window, nil
		}
		if err := r.cache.AddWindow(window); err != nil {
			return nil, err
		}
	}
	return nil, nil
}

// readNextWindow reads one window of bytes from the stream, or nil at
// end-of-stream.
func (r *StreamReader) readNextWindow() (windows.Window, error) {
	array := make([]byte, r.windowSize)
	read, err := io.ReadFull(r.source, array)
	if err == io.EOF || err == io.ErrUnexpectedEOF {
		r.eof = true
	} else if err != nil {
		return nil, err
	}
	if read < r.windowSize {
		r.eof = true
	}
	if read == 0 {
		return nil, nil
	}
	window := windows.NewHardWindow(array, r.streamPos, read)
	r.streamPos += int64(read)
	return window, nil
}

// drainLength reads the remaining stream into the cache and returns the
// total length. Blocking until the stream is exhausted is the defined
// behavior for Length on a stream reader.
func (r *StreamReader) drainLength() (int64, error) {
	for !r.eof {
		window, err := r.readNextWindow()
		if err != nil {
			return 0, err
		}
		if window == nil {
			break
		}
		if err := r.cache.AddWindow(window); err != nil {
			return 0, err
		}
	}
	return r.streamPos, nil
}

// closeOrigin closes the underlying stream if it is closeable.
func (r *StreamReader) closeOrigin() error {
	if closer, ok := r.source.(io.Closer); ok {
		return closer.Close()
	}
	return nil
}

// String returns a description of the reader for diagnostics.
func (r *StreamReader) String() string {
	return fmt.Sprintf("StreamReader(position: %d eof: %v)", r.streamPos, r.eof)
}
