package cache

import (
	"container/list"
	"fmt"

	"github.com/coregx/byteseek/windows"
)

// recencyCache is the shared core of the LRU and MRU caches: a bounded
// map of windows with a doubly-linked recency list. The front of the list
// is always the most recently used window; the two strategies differ only
// in which end they evict from.
type recencyCache struct {
	freeNotifier
	capacity int
	entries  map[int64]*list.Element
	order    *list.List // of windows.Window, front = most recently used
}

func newRecencyCache(capacity int) recencyCache {
	if capacity < 1 {
		capacity = 1
	}
	return recencyCache{
		capacity: capacity,
		entries:  make(map[int64]*list.Element, capacity),
		order:    list.New(),
	}
}

func (c *recencyCache) window(position int64) windows.Window {
	element, ok := c.entries[position]
	if !ok {
		return nil
	}
	c.order.MoveToFront(element)
	return element.Value.(windows.Window)
}

// add inserts the window, evicting the element chosen by evictFrom when
// the cache is over capacity. Observers are notified before the evicted
// window is removed from storage.
func (c *recencyCache) add(owner WindowCache, window windows.Window, evictFrom func() *list.Element) error {
	position := window.Position()
	if element, ok := c.entries[position]; ok {
		element.Value = window
		c.order.MoveToFront(element)
		return nil
	}
	c.entries[position] = c.order.PushFront(window)
	if c.order.Len() <= c.capacity {
		return nil
	}
	element := evictFrom()
	evicted := element.Value.(windows.Window)
	err := c.notifyFree(evicted, owner)
	c.order.Remove(element)
	delete(c.entries, evicted.Position())
	return err
}

func (c *recencyCache) clear(owner WindowCache) error {
	var firstErr error
	for element := c.order.Front(); element != nil; element = element.Next() {
		window := element.Value.(windows.Window)
		if err := c.notifyFree(window, owner); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	c.entries = make(map[int64]*list.Element, c.capacity)
	c.order.Init()
	return firstErr
}

// LeastRecentlyUsedCache is a bounded WindowCache which evicts the window
// unused for longest when a new window is added over capacity. This is
// the default cache for random-access readers, where recently visited
// regions are likely to be visited again.
type LeastRecentlyUsedCache struct {
	recencyCache
}

// NewLeastRecentlyUsedCache constructs an LRU cache holding at most
// capacity windows. A capacity below one is treated as one.
func NewLeastRecentlyUsedCache(capacity int) *LeastRecentlyUsedCache {
	return &LeastRecentlyUsedCache{newRecencyCache(capacity)}
}

// Window returns the cached window at the given position, or nil,
// refreshing its recency on a hit.
func (c *LeastRecentlyUsedCache) Window(position int64) (windows.Window, error) {
	return c.window(position), nil
}

// AddWindow caches the window, evicting the least recently used window
// if the cache is full. Observers are notified of the evicted window
// before it is removed.
func (c *LeastRecentlyUsedCache) AddWindow(window windows.Window) error {
	return c.add(c, window, c.order.Back)
}

// Read copies bytes from the cached window at windowPos into p.
func (c *LeastRecentlyUsedCache) Read(windowPos int64, offset int, p []byte) (int, error) {
	return readFromCachedWindow(c, windowPos, offset, p)
}

// Clear removes every cached window, notifying observers of each one.
func (c *LeastRecentlyUsedCache) Clear() error {
	return c.clear(c)
}

// String returns a description of the cache for diagnostics.
func (c *LeastRecentlyUsedCache) String() string {
	return fmt.Sprintf("LeastRecentlyUsedCache(capacity: %d windows: %d)", c.capacity, c.order.Len())
}

// MostRecentlyUsedCache is a bounded WindowCache which evicts the window
// used most recently before the one being added. This suits strictly
// sequential scans, where the window just left behind is the one least
// likely to be needed again.
type MostRecentlyUsedCache struct {
	recencyCache
}

// NewMostRecentlyUsedCache constructs an MRU cache holding at most
// capacity windows. A capacity below one is treated as one.
func NewMostRecentlyUsedCache(capacity int) *MostRecentlyUsedCache {
	return &MostRecentlyUsedCache{newRecencyCache(capacity)}
}

// Window returns the cached window at the given position, or nil,
// refreshing its recency on a hit.
func (c *MostRecentlyUsedCache) Window(position int64) (windows.Window, error) {
	return c.window(position), nil
}

// AddWindow caches the window, evicting the most recently used of the
// previously cached windows if the cache is full.
func (c *MostRecentlyUsedCache) AddWindow(window windows.Window) error {
	// The newly added window sits at the front; the eviction victim is
	// the most recent of the windows that were already cached.
	return c.add(c, window, func() *list.Element { return c.order.Front().Next() })
}

// Read copies bytes from the cached window at windowPos into p.
func (c *MostRecentlyUsedCache) Read(windowPos int64, offset int, p []byte) (int, error) {
	return readFromCachedWindow(c, windowPos, offset, p)
}

// Clear removes every cached window, notifying observers of each one.
func (c *MostRecentlyUsedCache) Clear() error {
	return c.clear(c)
}

// String returns a description of the cache for diagnostics.
func (c *MostRecentlyUsedCache) String() string {
	return fmt.Sprintf("MostRecentlyUsedCache(capacity: %d windows: %d)", c.capacity, c.order.Len())
}
