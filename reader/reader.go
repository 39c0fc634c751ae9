// Package reader provides random access over arbitrarily large byte
// sources through a lazy sequence of fixed-size windows. A WindowReader
// divides its source into windows of a constant size, consults its cache
// for each one first, and produces missing windows from the origin (a
// file, a byte array, or a forward-only stream), offering them back to
// the cache.
//
// All access is by absolute, non-negative byte position. End-of-source is
// signalled by a nil window, an error from Byte, or io.EOF from ReadAt,
// consistently per operation.
//
// Readers are single-writer: one reader instance must not receive
// concurrent calls from multiple goroutines unless the embedder
// synchronizes externally. Matchers and searchers may be shared freely;
// readers and their caches may not.
package reader

import (
	"errors"
	"fmt"
	"io"

	"github.com/coregx/byteseek/cache"
	"github.com/coregx/byteseek/windows"
)

// DefaultWindowSize is the window size used by the convenience
// constructors. 4096 matches the common filesystem block size.
const DefaultWindowSize = 4096

// DefaultCapacity is the number of windows held by the default cache of
// the convenience constructors.
const DefaultCapacity = 32

// ErrReaderClosed is returned by operations on a closed reader.
var ErrReaderClosed = errors.New("reader is closed")

// WindowReader is a random-access byte source exposed as a lazy sequence
// of fixed-size windows.
type WindowReader interface {
	// Window returns the window containing the given absolute position,
	// or nil if the position is negative or past the end of the source.
	// The returned window's position is the greatest multiple of the
	// window size not exceeding the requested position.
	Window(position int64) (windows.Window, error)

	// Byte returns the byte at the given absolute position, or an error
	// if there is no byte at that position.
	Byte(position int64) (byte, error)

	// ReadAt copies bytes starting at absolute position off into p,
	// crossing window boundaries as needed. It follows the io.ReaderAt
	// contract: it returns io.EOF when fewer than len(p) bytes remain.
	ReadAt(p []byte, off int64) (int, error)

	// Length returns the total length of the source. For stream-backed
	// readers this drains the remaining stream into the cache first.
	Length() (int64, error)

	// WindowOffset returns the offset of the given absolute position
	// within its window.
	WindowOffset(position int64) int

	// WindowSize returns the fixed window size of this reader.
	WindowSize() int

	// Close releases the origin. Closing is idempotent. Closing a
	// reader does not clear its cache: caches have their own lifecycle
	// and may be shared between readers.
	Close() error
}

// baseReader implements the window lookup protocol shared by every
// reader: consult the cache, produce on miss, offer the produced window
// back to the cache. Concrete readers wire the create, length and close
// functions after construction.
type baseReader struct {
	windowSize   int
	cache        cache.WindowCache
	closed       bool
	create       func(windowStart int64) (windows.Window, error)
	sourceLength func() (int64, error)
	closeSource  func() error
}

// Window returns the window containing position, consulting the cache
// first and producing the window from the origin on a miss.
func (r *baseReader) Window(position int64) (windows.Window, error) {
	if r.closed {
		return nil, ErrReaderClosed
	}
	if position < 0 {
		return nil, nil
	}
	windowStart := position - position%int64(r.windowSize)
	window, err := r.cache.Window(windowStart)
	if err != nil {
		return nil, err
	}
	if window == nil {
		window, err = r.create(windowStart)
		if err != nil || window == nil {
			return nil, err
		}
		if err := r.cache.AddWindow(window); err != nil {
			return nil, err
		}
	}
	if position >= window.NextPosition() {
		return nil, nil
	}
	return window, nil
}

// Byte returns the byte at the given absolute position.
func (r *baseReader) Byte(position int64) (byte, error) {
	window, err := r.Window(position)
	if err != nil {
		return 0, err
	}
	if window == nil {
		return 0, fmt.Errorf("no byte at position %d", position)
	}
	offset := int(position - window.Position())
	if offset >= window.Length() {
		return 0, fmt.Errorf("no byte at position %d", position)
	}
	return window.Byte(offset)
}

// ReadAt copies bytes from absolute position off into p, crossing window
// boundaries as needed.
func (r *baseReader) ReadAt(p []byte, off int64) (int, error) {
	if off < 0 {
		return 0, fmt.Errorf("negative read position %d", off)
	}
	copied := 0
	for copied < len(p) {
		window, err := r.Window(off + int64(copied))
		if err != nil {
			return copied, err
		}
		if window == nil {
			return copied, io.EOF
		}
		offset := int(off + int64(copied) - window.Position())
		if offset >= window.Length() {
			return copied, io.EOF
		}
		array, err := window.Array()
		if err != nil {
			return copied, err
		}
		copied += copy(p[copied:], array[offset:window.Length()])
	}
	return copied, nil
}

// Length returns the total length of the source.
func (r *baseReader) Length() (int64, error) {
	if r.closed {
		return 0, ErrReaderClosed
	}
	return r.sourceLength()
}

// WindowOffset returns the offset of the given position within its
// window.
func (r *baseReader) WindowOffset(position int64) int {
	return int(position % int64(r.windowSize))
}

// WindowSize returns the fixed window size of this reader.
func (r *baseReader) WindowSize() int {
	return r.windowSize
}

// Cache returns the cache attached to this reader.
func (r *baseReader) Cache() cache.WindowCache {
	return r.cache
}

// Close releases the origin. Closing is idempotent and does not clear
// the attached cache.
func (r *baseReader) Close() error {
	if r.closed {
		return nil
	}
	r.closed = true
	if r.closeSource != nil {
		return r.closeSource()
	}
	return nil
}
