// Package windows provides the fixed-size byte chunks a WindowReader hands
// out. A Window is a contiguous run of bytes tagged with its absolute
// starting position in the source and a valid length. Window boundaries are
// always multiples of the reader's window size; only the final window of a
// source may be shorter than the window size.
//
// Two variants exist:
//
//   - HardWindow owns its byte array for as long as it is cached.
//   - SoftWindow owns its array weakly: the bytes can be released under
//     memory pressure and are re-materialized on the next access through a
//     SoftWindowRecovery provider.
//
// Both variants are transparent to callers, which only see the Window
// interface.
package windows

import (
	"errors"
	"fmt"
)

// ErrWindowMissing indicates that the bytes of a soft window could not be
// recovered, for example because the backing temp file was deleted.
var ErrWindowMissing = errors.New("window bytes cannot be recovered")

// Window is a fixed-size chunk of bytes from an absolute position in a
// byte source.
//
// The byte array backing a window is always allocated at the reader's
// window size; Length reports how many of those bytes are valid, which is
// only less than the window size for the final window of a source.
type Window interface {
	// Array returns the byte array backing this window. Only the first
	// Length() bytes are valid. For soft windows this may trigger
	// recovery, which can fail with an I/O error.
	Array() ([]byte, error)

	// Byte returns the byte at the given offset within the window.
	// The byte at offset o is the byte at absolute position
	// Position() + o in the source. The offset must satisfy
	// 0 <= offset < Length().
	Byte(offset int) (byte, error)

	// Length returns the number of valid bytes in this window.
	// Always greater than zero.
	Length() int

	// Position returns the absolute position of the first byte of this
	// window in the byte source.
	Position() int64

	// NextPosition returns the absolute position one past the last valid
	// byte of this window.
	NextPosition() int64
}

// SoftWindowRecovery re-materializes the bytes of a soft window whose
// array was released under memory pressure. The returned bytes must be
// identical to the bytes the window originally held; a recovery source
// that cannot guarantee this must return an error instead.
type SoftWindowRecovery interface {
	// ReloadWindowBytes returns a byte array holding the original
	// contents of the given window.
	ReloadWindowBytes(window Window) ([]byte, error)
}

// HardWindow is a Window which owns its byte array for its lifetime.
type HardWindow struct {
	array    []byte
	position int64
	length   int
}

// NewHardWindow constructs a HardWindow over the given array.
// The array is retained, not copied; callers must not mutate it after
// construction. The length is the number of valid bytes and must be
// positive and no greater than len(array).
func NewHardWindow(array []byte, position int64, length int) *HardWindow {
	return &HardWindow{array: array, position: position, length: length}
}

// Array returns the backing array. The error is always nil for hard
// windows; it exists to satisfy the Window interface.
func (w *HardWindow) Array() ([]byte, error) {
	return w.array, nil
}

// Byte returns the byte at the given offset in the window.
func (w *HardWindow) Byte(offset int) (byte, error) {
	if offset < 0 || offset >= w.length {
		return 0, fmt.Errorf("no byte at offset %d in window of length %d", offset, w.length)
	}
	return w.array[offset], nil
}

// Length returns the number of valid bytes in the window.
func (w *HardWindow) Length() int {
	return w.length
}

// Position returns the absolute position of the window in its source.
func (w *HardWindow) Position() int64 {
	return w.position
}

// NextPosition returns the position one past the last valid byte.
func (w *HardWindow) NextPosition() int64 {
	return w.position + int64(w.length)
}

// String returns a description of the window for diagnostics.
func (w *HardWindow) String() string {
	return fmt.Sprintf("HardWindow(position: %d length: %d)", w.position, w.length)
}

// SoftWindow is a Window whose byte array may be released under memory
// pressure and restored on demand through a SoftWindowRecovery.
//
// Soft windows are produced by caches which can re-read the bytes from
// somewhere cheap, such as the temp-file stream cache. Callers treat them
// exactly like hard windows; the only observable difference is that Array
// and Byte can fail if recovery fails.
//
// A SoftWindow is single-writer like the reader that produced it; callers
// must not share one instance across goroutines without external
// synchronization.
type SoftWindow struct {
	array    []byte
	position int64
	length   int
	recovery SoftWindowRecovery
}

// NewSoftWindow constructs a SoftWindow over the given array, with a
// recovery provider that can re-materialize the bytes if they are
// released.
func NewSoftWindow(array []byte, position int64, length int, recovery SoftWindowRecovery) *SoftWindow {
	return &SoftWindow{array: array, position: position, length: length, recovery: recovery}
}

// Array returns the backing array, recovering it first if the bytes have
// been released.
func (w *SoftWindow) Array() ([]byte, error) {
	if w.array == nil {
		reloaded, err := w.recovery.ReloadWindowBytes(w)
		if err != nil {
			return nil, err
		}
		w.array = reloaded
	}
	return w.array, nil
}

// Byte returns the byte at the given offset in the window, recovering the
// bytes first if they have been released.
func (w *SoftWindow) Byte(offset int) (byte, error) {
	if offset < 0 || offset >= w.length {
		return 0, fmt.Errorf("no byte at offset %d in window of length %d", offset, w.length)
	}
	array, err := w.Array()
	if err != nil {
		return 0, err
	}
	return array[offset], nil
}

// ReleaseBytes drops the window's byte array, returning how many bytes
// were released. The next access through Array or Byte re-materializes
// the bytes through the recovery provider. Callers release bytes under
// memory pressure; the window remains fully usable afterwards.
func (w *SoftWindow) ReleaseBytes() int {
	if w.array == nil {
		return 0
	}
	released := len(w.array)
	w.array = nil
	return released
}

// BytesHeld reports whether the window currently holds its byte array.
func (w *SoftWindow) BytesHeld() bool {
	return w.array != nil
}

// Length returns the number of valid bytes in the window.
func (w *SoftWindow) Length() int {
	return w.length
}

// Position returns the absolute position of the window in its source.
func (w *SoftWindow) Position() int64 {
	return w.position
}

// NextPosition returns the position one past the last valid byte.
func (w *SoftWindow) NextPosition() int64 {
	return w.position + int64(w.length)
}

// String returns a description of the window for diagnostics.
func (w *SoftWindow) String() string {
	return fmt.Sprintf("SoftWindow(position: %d length: %d held: %v)", w.position, w.length, w.array != nil)
}
