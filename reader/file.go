package reader

import (
	"errors"
	"io"
	"os"

	"github.com/coregx/byteseek/cache"
	"github.com/coregx/byteseek/windows"
)

// FileReader is a WindowReader over a file, producing hard windows by
// positioned reads. The file length is fixed at construction.
type FileReader struct {
	baseReader
	file *os.File
	size int64
}

// NewFileReader opens the file at path with the default window size and
// a least-recently-used cache of DefaultCapacity windows.
func NewFileReader(path string) (*FileReader, error) {
	return NewFileReaderWith(path, DefaultWindowSize, cache.NewLeastRecentlyUsedCache(DefaultCapacity))
}

// NewFileReaderWith opens the file at path with the given window size
// and cache. The window size must be positive.
func NewFileReaderWith(path string, windowSize int, windowCache cache.WindowCache) (*FileReader, error) {
	if windowSize < 1 {
		return nil, errors.New("window size must be positive")
	}
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	info, err := file.Stat()
	if err != nil {
		file.Close()
		return nil, err
	}
	reader := &FileReader{
		baseReader: baseReader{windowSize: windowSize, cache: windowCache},
		file:       file,
		size:       info.Size(),
	}
	reader.create = reader.createWindow
	reader.sourceLength = func() (int64, error) { return reader.size, nil }
	reader.closeSource = file.Close
	return reader, nil
}

// createWindow reads up to one window of bytes starting at the aligned
// windowStart position. A short read is expected for the final window.
func (r *FileReader) createWindow(windowStart int64) (windows.Window, error) {
	if windowStart >= r.size {
		return nil, nil
	}
	array := make([]byte, r.windowSize)
	read, err := r.file.ReadAt(array, windowStart)
	if err != nil && err != io.EOF {
		return nil, err
	}
	if read == 0 {
		return nil, nil
	}
	return windows.NewHardWindow(array, windowStart, read), nil
}

// String returns a description of the reader for diagnostics.
func (r *FileReader) String() string {
	return "FileReader(" + r.file.Name() + ")"
}
