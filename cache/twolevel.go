package cache

import (
	"fmt"

	"github.com/coregx/byteseek/windows"
)

// TwoLevelCache composes two caches into tiers. Windows are added to the
// primary cache; when the primary evicts a window, the two-level cache
// (subscribed as an observer of both tiers) moves it into the secondary
// cache before the primary removes it. Lookups try the primary then the
// secondary; a secondary hit promotes the window back into the primary.
//
// Observers of the two-level cache fire only when a window leaves the
// secondary cache, which is when it has fully left the composite.
//
// A typical pairing is a small in-memory cache over a temp-file spill
// cache for stream-backed readers:
//
//	spill, err := cache.NewTempFileStreamCache(4096, "")
//	if err != nil { ... }
//	twoLevel := cache.NewTwoLevelCache(cache.NewMostRecentlyUsedCache(16), spill)
type TwoLevelCache struct {
	freeNotifier
	primary   WindowCache
	secondary WindowCache
}

// NewTwoLevelCache constructs a two-level cache over the given tiers and
// wires it as an observer of both. The wiring happens here rather than in
// a literal constructor so that no half-built cache is ever registered as
// an observer.
func NewTwoLevelCache(primary, secondary WindowCache) *TwoLevelCache {
	twoLevel := &TwoLevelCache{primary: primary, secondary: secondary}
	primary.Subscribe(twoLevel)
	secondary.Subscribe(twoLevel)
	return twoLevel
}

// Window returns the window at the given position from the primary or
// secondary cache, or nil if neither holds it. A secondary hit promotes
// the window back into the primary cache.
func (c *TwoLevelCache) Window(position int64) (windows.Window, error) {
	window, err := c.primary.Window(position)
	if err != nil || window != nil {
		return window, err
	}
	window, err = c.secondary.Window(position)
	if err != nil || window == nil {
		return nil, err
	}
	if err := c.AddWindow(window); err != nil {
		return nil, err
	}
	return window, nil
}

// AddWindow adds the window to the primary cache.
func (c *TwoLevelCache) AddWindow(window windows.Window) error {
	return c.primary.AddWindow(window)
}

// Read copies bytes for the window at windowPos into p, trying the
// primary cache then the secondary.
func (c *TwoLevelCache) Read(windowPos int64, offset int, p []byte) (int, error) {
	read, err := c.primary.Read(windowPos, offset, p)
	if err != nil || read > 0 {
		return read, err
	}
	return c.secondary.Read(windowPos, offset, p)
}

// Clear clears both tiers. The secondary is cleared even if clearing the
// primary fails; the primary's error is surfaced.
func (c *TwoLevelCache) Clear() error {
	primaryErr := c.primary.Clear()
	secondaryErr := c.secondary.Clear()
	if primaryErr != nil {
		return primaryErr
	}
	return secondaryErr
}

// WindowFree receives eviction notifications from the tiers. A window
// leaving the primary is added to the secondary; a window leaving the
// secondary has fully left this cache, so this cache's own observers are
// notified.
func (c *TwoLevelCache) WindowFree(window windows.Window, fromCache WindowCache) error {
	if fromCache == c.primary {
		return c.secondary.AddWindow(window)
	}
	if fromCache == c.secondary {
		return c.notifyFree(window, c)
	}
	return nil
}

// Primary returns the primary cache tier.
func (c *TwoLevelCache) Primary() WindowCache {
	return c.primary
}

// Secondary returns the secondary cache tier.
func (c *TwoLevelCache) Secondary() WindowCache {
	return c.secondary
}

// String returns a description of the cache for diagnostics.
func (c *TwoLevelCache) String() string {
	return fmt.Sprintf("TwoLevelCache(primary: %v secondary: %v)", c.primary, c.secondary)
}
