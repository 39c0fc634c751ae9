package cache

import (
	"fmt"

	"github.com/coregx/byteseek/windows"
)

// AllCache is a WindowCache which holds every window ever added to it
// until it is cleared. Use it when the whole source comfortably fits in
// memory, or as the safety net behind a stream reader whose earlier
// windows can never be re-read from the origin.
type AllCache struct {
	freeNotifier
	cache map[int64]windows.Window
}

// NewAllCache constructs a cache which retains every window added.
func NewAllCache() *AllCache {
	return &AllCache{cache: make(map[int64]windows.Window)}
}

// Window returns the window at the given position, or nil if it was
// never added.
func (c *AllCache) Window(position int64) (windows.Window, error) {
	return c.cache[position], nil
}

// AddWindow retains the window.
func (c *AllCache) AddWindow(window windows.Window) error {
	c.cache[window.Position()] = window
	return nil
}

// Read copies bytes from the cached window at windowPos into p.
func (c *AllCache) Read(windowPos int64, offset int, p []byte) (int, error) {
	return readFromCachedWindow(c, windowPos, offset, p)
}

// Clear removes every cached window, notifying observers of each one
// before it is removed.
func (c *AllCache) Clear() error {
	var firstErr error
	for position, window := range c.cache {
		if err := c.notifyFree(window, c); err != nil && firstErr == nil {
			firstErr = err
		}
		delete(c.cache, position)
	}
	return firstErr
}

// String returns a description of the cache for diagnostics.
func (c *AllCache) String() string {
	return fmt.Sprintf("AllCache(windows: %d)", len(c.cache))
}
