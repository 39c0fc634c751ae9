package cache

import (
	"fmt"
	"io"
	"os"

	"github.com/coregx/byteseek/windows"
)

// TempFileStreamCache spills windows to a temporary file for later
// retrieval. It assumes windows arrive sequentially, as they do when a
// stream-backed reader produces them in order: the first window added
// fixes the start offset, and every further window must follow directly
// on from the previous one. With a fixed window size and sequential
// appends, no position map is needed — the file offset of a window at
// absolute position p is simply p minus the start offset.
//
// The temp file is created lazily on the first add and deleted when the
// cache is cleared. If the delete fails, Clear returns a
// TempFileNotDeletedError which preserves any error from closing the
// file first.
//
// Windows returned from this cache are soft: their byte arrays can be
// released under memory pressure and are re-read from the temp file on
// the next access. The cache itself is the recovery provider.
type TempFileStreamCache struct {
	freeNotifier
	windowSize  int
	tempDir     string
	file        *os.File
	startOffset int64
	length      int64
}

// NewTempFileStreamCache constructs a temp-file stream cache for windows
// of the given size. Temp files are created in tempDir, or in the system
// default temp directory when tempDir is empty. The window size must be
// positive.
func NewTempFileStreamCache(windowSize int, tempDir string) (*TempFileStreamCache, error) {
	if windowSize < 1 {
		return nil, fmt.Errorf("window size must be positive: %d", windowSize)
	}
	if tempDir != "" {
		info, err := os.Stat(tempDir)
		if err != nil {
			return nil, fmt.Errorf("temp dir %s: %w", tempDir, err)
		}
		if !info.IsDir() {
			return nil, fmt.Errorf("temp dir is not a directory: %s", tempDir)
		}
	}
	return &TempFileStreamCache{windowSize: windowSize, tempDir: tempDir}, nil
}

// Window returns a soft window read from the temp file, or nil if the
// position is outside the range written so far or not aligned to the
// window size.
func (c *TempFileStreamCache) Window(position int64) (windows.Window, error) {
	filePos := position - c.startOffset
	if c.file == nil || filePos < 0 || filePos >= c.length || position%int64(c.windowSize) != 0 {
		return nil, nil
	}
	array := make([]byte, c.windowSize)
	read, err := c.readAt(filePos, array)
	if err != nil {
		return nil, err
	}
	return windows.NewSoftWindow(array, position, read, c), nil
}

// AddWindow appends the window's bytes to the temp file. The window must
// follow directly on from the windows already added; an add at any other
// position fails with ErrNonSequentialWindow. The first window added
// fixes the cache's start offset and creates the temp file.
func (c *TempFileStreamCache) AddWindow(window windows.Window) error {
	windowPos := window.Position()
	if c.file == nil {
		file, err := os.CreateTemp(c.tempDir, "byteseek-*.tmp")
		if err != nil {
			return err
		}
		c.file = file
		c.startOffset = windowPos
		c.length = 0
	}
	filePos := windowPos - c.startOffset
	if filePos != c.length {
		return fmt.Errorf("%w: next valid position is %d, but window position was %d",
			ErrNonSequentialWindow, c.startOffset+c.length, windowPos)
	}
	array, err := window.Array()
	if err != nil {
		return err
	}
	windowLength := window.Length()
	if _, err := c.file.WriteAt(array[:windowLength], filePos); err != nil {
		return err
	}
	c.length += int64(windowLength)
	return nil
}

// Read copies bytes straight out of the temp file for the window at
// windowPos, without materializing a window.
func (c *TempFileStreamCache) Read(windowPos int64, offset int, p []byte) (int, error) {
	filePos := windowPos + int64(offset) - c.startOffset
	if c.file == nil || filePos < 0 || filePos >= c.length {
		return 0, nil
	}
	available := c.length - filePos
	if int64(len(p)) > available {
		p = p[:available]
	}
	return c.readAt(filePos, p)
}

// Clear resets the cache and deletes the temp file if one was created.
// A failed delete is reported as a TempFileNotDeletedError preserving
// any close error; a close error alone is returned as-is once the file
// has been successfully removed.
func (c *TempFileStreamCache) Clear() error {
	c.startOffset = 0
	c.length = 0
	if c.file == nil {
		return nil
	}
	path := c.file.Name()
	closeErr := c.file.Close()
	c.file = nil
	if removeErr := os.Remove(path); removeErr != nil {
		return &TempFileNotDeletedError{Path: path, CloseErr: closeErr}
	}
	return closeErr
}

// ReloadWindowBytes implements windows.SoftWindowRecovery: it re-reads
// the bytes of a previously returned soft window from the temp file.
// Recovery fails with windows.ErrWindowMissing if the cache has been
// cleared since the window was produced.
func (c *TempFileStreamCache) ReloadWindowBytes(window windows.Window) ([]byte, error) {
	if c.file == nil {
		return nil, fmt.Errorf("%w: cache temp file does not exist", windows.ErrWindowMissing)
	}
	array := make([]byte, c.windowSize)
	if _, err := c.readAt(window.Position()-c.startOffset, array); err != nil {
		return nil, err
	}
	return array, nil
}

// TempFilePath returns the path of the temp file backing this cache, or
// the empty string if no window has been added yet or the cache has been
// cleared.
func (c *TempFileStreamCache) TempFilePath() string {
	if c.file == nil {
		return ""
	}
	return c.file.Name()
}

// readAt fills p from the file at filePos, tolerating a short read at
// the end of the written region.
func (c *TempFileStreamCache) readAt(filePos int64, p []byte) (int, error) {
	available := c.length - filePos
	toRead := p
	if int64(len(toRead)) > available {
		toRead = toRead[:available]
	}
	read, err := c.file.ReadAt(toRead, filePos)
	if err != nil && err != io.EOF {
		return read, err
	}
	return read, nil
}

// String returns a description of the cache for diagnostics.
func (c *TempFileStreamCache) String() string {
	return fmt.Sprintf("TempFileStreamCache(temp file: %s start offset: %d length: %d)",
		c.TempFilePath(), c.startOffset, c.length)
}
