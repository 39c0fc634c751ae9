package reader

import (
	"errors"
	"fmt"
	"io"
)

// ErrNotWritable is returned by write and truncate operations on the
// read-only channel view.
var ErrNotWritable = errors.New("channel is not writable")

// ErrChannelClosed is returned by operations on a closed channel view.
var ErrChannelClosed = errors.New("channel is closed")

// Channel adapts a WindowReader to a seekable read-only channel,
// implementing io.Reader, io.Seeker and io.Closer. It maintains its own
// position over the reader, so several channels can view one reader —
// though not concurrently: like the reader itself, a channel is not safe
// for concurrent use.
//
// Write and Truncate always fail with ErrNotWritable. Closing the
// channel marks it closed without closing the underlying reader.
type Channel struct {
	reader   WindowReader
	position int64
	closed   bool
}

// NewChannel constructs a channel view over the given reader, positioned
// at the start.
func NewChannel(windowReader WindowReader) *Channel {
	return &Channel{reader: windowReader}
}

// Read copies bytes from the current position into p and advances the
// position by the number of bytes read. At end-of-source it returns
// io.EOF.
func (c *Channel) Read(p []byte) (int, error) {
	if c.closed {
		return 0, ErrChannelClosed
	}
	read, err := c.reader.ReadAt(p, c.position)
	c.position += int64(read)
	return read, err
}

// Seek sets the position for the next Read. Positions past the end of
// the source are legal; reads there return io.EOF. A negative resulting
// position is an error.
func (c *Channel) Seek(offset int64, whence int) (int64, error) {
	if c.closed {
		return 0, ErrChannelClosed
	}
	var base int64
	switch whence {
	case io.SeekStart:
		base = 0
	case io.SeekCurrent:
		base = c.position
	case io.SeekEnd:
		length, err := c.reader.Length()
		if err != nil {
			return 0, err
		}
		base = length
	default:
		return 0, fmt.Errorf("invalid seek whence: %d", whence)
	}
	newPosition := base + offset
	if newPosition < 0 {
		return 0, fmt.Errorf("negative seek position: %d", newPosition)
	}
	c.position = newPosition
	return newPosition, nil
}

// Position returns the current position of the channel.
func (c *Channel) Position() int64 {
	return c.position
}

// Size returns the total length of the underlying source.
func (c *Channel) Size() (int64, error) {
	if c.closed {
		return 0, ErrChannelClosed
	}
	return c.reader.Length()
}

// Write always fails: the channel is read-only.
func (c *Channel) Write(p []byte) (int, error) {
	return 0, ErrNotWritable
}

// Truncate always fails: the channel is read-only.
func (c *Channel) Truncate(size int64) error {
	return ErrNotWritable
}

// IsOpen reports whether the channel is still open.
func (c *Channel) IsOpen() bool {
	return !c.closed
}

// Close marks the channel closed. It does not close the underlying
// reader: more than one channel may view the same reader. Closing is
// idempotent.
func (c *Channel) Close() error {
	c.closed = true
	return nil
}
