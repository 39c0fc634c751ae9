package cache

import (
	"fmt"

	"github.com/coregx/byteseek/windows"
)

// WriteAroundCache composes a memory cache over a persistent cache,
// routing additions straight to the persistent cache. The memory cache is
// only populated on demand: a lookup that misses memory but hits the
// persistent cache pulls the window into memory. This keeps a sequential
// fill from churning the memory tier while still caching the windows that
// are actually revisited.
//
// Observers of this cache fire when a window leaves the persistent cache,
// which is when it has fully left the composite; windows leaving the
// memory tier are still held persistently.
type WriteAroundCache struct {
	freeNotifier
	memory     WindowCache
	persistent WindowCache
}

// NewWriteAroundCache constructs a write-around cache over the given
// memory and persistent tiers, wiring itself as an observer of the
// persistent tier after construction.
func NewWriteAroundCache(memory, persistent WindowCache) *WriteAroundCache {
	writeAround := &WriteAroundCache{memory: memory, persistent: persistent}
	persistent.Subscribe(writeAround)
	return writeAround
}

// Window returns the window at the given position from the memory or
// persistent cache, or nil if neither holds it. A persistent hit adds the
// window to the memory cache.
func (c *WriteAroundCache) Window(position int64) (windows.Window, error) {
	window, err := c.memory.Window(position)
	if err != nil || window != nil {
		return window, err
	}
	window, err = c.persistent.Window(position)
	if err != nil || window == nil {
		return nil, err
	}
	if err := c.memory.AddWindow(window); err != nil {
		return nil, err
	}
	return window, nil
}

// AddWindow adds the window to the persistent cache only. The memory
// cache is populated by lookups, not by additions.
func (c *WriteAroundCache) AddWindow(window windows.Window) error {
	return c.persistent.AddWindow(window)
}

// Read copies bytes for the window at windowPos into p, trying the memory
// cache then the persistent one.
func (c *WriteAroundCache) Read(windowPos int64, offset int, p []byte) (int, error) {
	read, err := c.memory.Read(windowPos, offset, p)
	if err != nil || read > 0 {
		return read, err
	}
	return c.persistent.Read(windowPos, offset, p)
}

// Clear clears both tiers. The persistent cache is cleared even if
// clearing memory fails; the memory error is surfaced.
func (c *WriteAroundCache) Clear() error {
	memoryErr := c.memory.Clear()
	persistentErr := c.persistent.Clear()
	if memoryErr != nil {
		return memoryErr
	}
	return persistentErr
}

// WindowFree receives eviction notifications from the persistent tier. A
// window leaving the persistent cache has fully left this cache, so this
// cache's own observers are notified.
func (c *WriteAroundCache) WindowFree(window windows.Window, fromCache WindowCache) error {
	if fromCache == c.persistent {
		return c.notifyFree(window, c)
	}
	return nil
}

// Memory returns the memory cache tier.
func (c *WriteAroundCache) Memory() WindowCache {
	return c.memory
}

// Persistent returns the persistent cache tier.
func (c *WriteAroundCache) Persistent() WindowCache {
	return c.persistent
}

// String returns a description of the cache for diagnostics.
func (c *WriteAroundCache) String() string {
	return fmt.Sprintf("WriteAroundCache(memory: %v persistent: %v)", c.memory, c.persistent)
}
