package cache

import "github.com/coregx/byteseek/windows"

// NoCache is a WindowCache which caches nothing. Every lookup misses and
// every add is ignored. Use it for strictly sequential single-pass work
// over sources that are cheap to re-read, where caching would only cost
// memory.
type NoCache struct {
	freeNotifier
}

// NewNoCache constructs a cache which never caches anything.
func NewNoCache() *NoCache {
	return &NoCache{}
}

// Window always returns nil: nothing is ever cached.
func (c *NoCache) Window(position int64) (windows.Window, error) {
	return nil, nil
}

// AddWindow ignores the window.
func (c *NoCache) AddWindow(window windows.Window) error {
	return nil
}

// Read always returns zero bytes: nothing is ever cached.
func (c *NoCache) Read(windowPos int64, offset int, p []byte) (int, error) {
	return 0, nil
}

// Clear does nothing: there is nothing to clear.
func (c *NoCache) Clear() error {
	return nil
}

// String returns a description of the cache for diagnostics.
func (c *NoCache) String() string {
	return "NoCache()"
}
