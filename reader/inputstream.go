package reader

import (
	"errors"
	"io"
)

// ErrStreamClosed is returned by operations on a closed InputStream.
var ErrStreamClosed = errors.New("input stream is closed")

// ErrMarkNotSupported is returned by Reset when mark support is disabled
// or no mark has been set.
var ErrMarkNotSupported = errors.New("mark not supported or not set")

// InputStream adapts a WindowReader to a forward stream view,
// implementing io.Reader, io.ByteReader and io.Closer, with optional
// mark/reset. Because the reader already retains windows through its
// cache, Mark ignores the usual read-ahead limit: a mark stays valid for
// as long as the cache can serve the marked region.
//
// The stream can optionally close its reader when it is itself closed,
// for the common case where the stream is the only consumer.
type InputStream struct {
	reader        WindowReader
	nextReadPos   int64
	markPos       int64
	marked        bool
	markSupported bool
	closeReader   bool
	closed        bool
}

// NewInputStream constructs a stream view over the given reader with
// mark support enabled. If closeReaderOnClose is set, closing the stream
// also closes the reader.
func NewInputStream(windowReader WindowReader, closeReaderOnClose bool) *InputStream {
	return NewInputStreamWith(windowReader, closeReaderOnClose, true)
}

// NewInputStreamWith constructs a stream view with explicit control over
// mark support.
func NewInputStreamWith(windowReader WindowReader, closeReaderOnClose, markSupported bool) *InputStream {
	return &InputStream{
		reader:        windowReader,
		closeReader:   closeReaderOnClose,
		markSupported: markSupported,
	}
}

// Read copies bytes from the current position into p, advancing the
// position. At end-of-source it returns io.EOF.
func (s *InputStream) Read(p []byte) (int, error) {
	if s.closed {
		return 0, ErrStreamClosed
	}
	read, err := s.reader.ReadAt(p, s.nextReadPos)
	s.nextReadPos += int64(read)
	return read, err
}

// ReadByte returns the next byte, advancing the position. At
// end-of-source it returns io.EOF.
func (s *InputStream) ReadByte() (byte, error) {
	if s.closed {
		return 0, ErrStreamClosed
	}
	window, err := s.reader.Window(s.nextReadPos)
	if err != nil {
		return 0, err
	}
	if window == nil {
		return 0, io.EOF
	}
	offset := int(s.nextReadPos - window.Position())
	if offset >= window.Length() {
		return 0, io.EOF
	}
	value, err := window.Byte(offset)
	if err != nil {
		return 0, err
	}
	s.nextReadPos++
	return value, nil
}

// Skip advances the position by up to n bytes, returning how many bytes
// were actually skipped. Negative or zero n skips nothing; skipping past
// the end of the source is clamped to the bytes remaining.
func (s *InputStream) Skip(n int64) (int64, error) {
	if s.closed {
		return 0, ErrStreamClosed
	}
	if n <= 0 {
		return 0, nil
	}
	length, err := s.reader.Length()
	if err != nil {
		return 0, err
	}
	remaining := length - s.nextReadPos
	if remaining < 0 {
		remaining = 0
	}
	if n > remaining {
		n = remaining
	}
	s.nextReadPos += n
	return n, nil
}

// Available returns the number of bytes remaining before end-of-source.
func (s *InputStream) Available() (int64, error) {
	if s.closed {
		return 0, ErrStreamClosed
	}
	length, err := s.reader.Length()
	if err != nil {
		return 0, err
	}
	remaining := length - s.nextReadPos
	if remaining < 0 {
		remaining = 0
	}
	return remaining, nil
}

// Mark records the current position for a later Reset. The readLimit is
// ignored: the reader's cache retains windows, so a mark does not expire
// after a fixed read-ahead. Mark does nothing when mark support is
// disabled.
func (s *InputStream) Mark(readLimit int) {
	if s.markSupported {
		s.markPos = s.nextReadPos
		s.marked = true
	}
}

// Reset returns the position to the last mark. It fails with
// ErrMarkNotSupported when mark support is disabled or no mark has been
// set.
func (s *InputStream) Reset() error {
	if s.closed {
		return ErrStreamClosed
	}
	if !s.markSupported || !s.marked {
		return ErrMarkNotSupported
	}
	s.nextReadPos = s.markPos
	return nil
}

// MarkSupported reports whether Mark and Reset are available.
func (s *InputStream) MarkSupported() bool {
	return s.markSupported
}

// NextReadPos returns the absolute position the next read will start at.
func (s *InputStream) NextReadPos() int64 {
	return s.nextReadPos
}

// Close marks the stream closed, closing the underlying reader as well
// if the stream was constructed to do so. Closing is idempotent.
func (s *InputStream) Close() error {
	if s.closed {
		return nil
	}
	s.closed = true
	if s.closeReader {
		return s.reader.Close()
	}
	return nil
}
