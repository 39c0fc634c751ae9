package cache

import (
	"fmt"

	"github.com/coregx/byteseek/windows"
)

// LeastFrequentlyUsedCache is a bounded WindowCache which evicts the
// window with the fewest hits when a new window is added over capacity.
// Ties evict the entry least recently added. It suits workloads that
// revisit a small hot set of windows repeatedly while scanning through
// the rest of the source once.
type LeastFrequentlyUsedCache struct {
	freeNotifier
	capacity int
	entries  map[int64]*lfuEntry
	ticks    uint64
}

type lfuEntry struct {
	window windows.Window
	uses   int
	added  uint64
}

// NewLeastFrequentlyUsedCache constructs an LFU cache holding at most
// capacity windows. A capacity below one is treated as one.
func NewLeastFrequentlyUsedCache(capacity int) *LeastFrequentlyUsedCache {
	if capacity < 1 {
		capacity = 1
	}
	return &LeastFrequentlyUsedCache{
		capacity: capacity,
		entries:  make(map[int64]*lfuEntry, capacity),
	}
}

// Window returns the cached window at the given position, or nil,
// incrementing its use count on a hit.
func (c *LeastFrequentlyUsedCache) Window(position int64) (windows.Window, error) {
	entry, ok := c.entries[position]
	if !ok {
		return nil, nil
	}
	entry.uses++
	return entry.window, nil
}

// AddWindow caches the window, evicting the least frequently used window
// if the cache is full. Observers are notified of the evicted window
// before it is removed.
func (c *LeastFrequentlyUsedCache) AddWindow(window windows.Window) error {
	position := window.Position()
	if entry, ok := c.entries[position]; ok {
		entry.window = window
		return nil
	}
	c.ticks++
	c.entries[position] = &lfuEntry{window: window, added: c.ticks}
	if len(c.entries) <= c.capacity {
		return nil
	}
	victimPos, victim := c.selectVictim(position)
	err := c.notifyFree(victim.window, c)
	delete(c.entries, victimPos)
	return err
}

// selectVictim finds the least frequently used entry other than the one
// just added, breaking ties by age. The scan is linear over the entries,
// which is fine at the small capacities these caches run at.
func (c *LeastFrequentlyUsedCache) selectVictim(justAdded int64) (int64, *lfuEntry) {
	var victimPos int64
	var victim *lfuEntry
	for position, entry := range c.entries {
		if position == justAdded {
			continue
		}
		if victim == nil || entry.uses < victim.uses ||
			(entry.uses == victim.uses && entry.added < victim.added) {
			victimPos, victim = position, entry
		}
	}
	return victimPos, victim
}

// Read copies bytes from the cached window at windowPos into p.
func (c *LeastFrequentlyUsedCache) Read(windowPos int64, offset int, p []byte) (int, error) {
	return readFromCachedWindow(c, windowPos, offset, p)
}

// Clear removes every cached window, notifying observers of each one.
func (c *LeastFrequentlyUsedCache) Clear() error {
	var firstErr error
	for position, entry := range c.entries {
		if err := c.notifyFree(entry.window, c); err != nil && firstErr == nil {
			firstErr = err
		}
		delete(c.entries, position)
	}
	return firstErr
}

// String returns a description of the cache for diagnostics.
func (c *LeastFrequentlyUsedCache) String() string {
	return fmt.Sprintf("LeastFrequentlyUsedCache(capacity: %d windows: %d)", c.capacity, len(c.entries))
}
