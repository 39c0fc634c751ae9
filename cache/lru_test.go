package cache

import (
	"testing"

	"github.com/coregx/byteseek/windows"
)

// observerFunc adapts a function to the WindowObserver interface.
type observerFunc func(window windows.Window, fromCache WindowCache) error

func (f observerFunc) WindowFree(window windows.Window, fromCache WindowCache) error {
	return f(window, fromCache)
}

func TestLeastRecentlyUsedCache_EvictsOldest(t *testing.T) {
	c := NewLeastRecentlyUsedCache(2)
	observer := &recordingObserver{}
	c.Subscribe(observer)

	c.AddWindow(hardWindow(0, 32, 0))
	c.AddWindow(hardWindow(32, 32, 1))

	// Touch window 0 so window 32 becomes the eviction victim.
	if w, _ := c.Window(0); w == nil {
		t.Fatal("window 0 should be cached")
	}
	c.AddWindow(hardWindow(64, 32, 2))

	if len(observer.freed) != 1 || observer.freed[0] != 32 {
		t.Fatalf("window 32 should have been evicted, freed: %v", observer.freed)
	}
	if w, _ := c.Window(32); w != nil {
		t.Error("evicted window should be gone")
	}
	if w, _ := c.Window(0); w == nil {
		t.Error("recently used window should remain")
	}
	if w, _ := c.Window(64); w == nil {
		t.Error("newly added window should be cached")
	}
}

func TestLeastRecentlyUsedCache_ReAddSamePosition(t *testing.T) {
	c := NewLeastRecentlyUsedCache(2)
	observer := &recordingObserver{}
	c.Subscribe(observer)

	c.AddWindow(hardWindow(0, 32, 0))
	c.AddWindow(hardWindow(0, 32, 1))
	if len(observer.freed) != 0 {
		t.Errorf("replacing a position should not evict, freed: %v", observer.freed)
	}
}

func TestMostRecentlyUsedCache_EvictsNewest(t *testing.T) {
	c := NewMostRecentlyUsedCache(2)
	observer := &recordingObserver{}
	c.Subscribe(observer)

	c.AddWindow(hardWindow(0, 32, 0))
	c.AddWindow(hardWindow(32, 32, 1))
	c.AddWindow(hardWindow(64, 32, 2))

	// The most recently used of the previously cached windows is 32.
	if len(observer.freed) != 1 || observer.freed[0] != 32 {
		t.Fatalf("window 32 should have been evicted, freed: %v", observer.freed)
	}
	if w, _ := c.Window(0); w == nil {
		t.Error("oldest window should remain under MRU eviction")
	}
	if w, _ := c.Window(64); w == nil {
		t.Error("newly added window should be cached")
	}
}

func TestLeastFrequentlyUsedCache_EvictsColdest(t *testing.T) {
	c := NewLeastFrequentlyUsedCache(2)
	observer := &recordingObserver{}
	c.Subscribe(observer)

	c.AddWindow(hardWindow(0, 32, 0))
	c.AddWindow(hardWindow(32, 32, 1))

	// Window 0 gets three hits, window 32 none.
	for i := 0; i < 3; i++ {
		if w, _ := c.Window(0); w == nil {
			t.Fatal("window 0 should be cached")
		}
	}
	c.AddWindow(hardWindow(64, 32, 2))

	if len(observer.freed) != 1 || observer.freed[0] != 32 {
		t.Fatalf("unused window 32 should have been evicted, freed: %v", observer.freed)
	}
	if w, _ := c.Window(0); w == nil {
		t.Error("frequently used window should remain")
	}
}

func TestBoundedCaches_ObserverBeforeRemoval(t *testing.T) {
	// The observer must still be able to read the window from the
	// notification while the cache processes the eviction.
	c := NewLeastRecentlyUsedCache(1)
	seen := 0
	c.Subscribe(observerFunc(func(w windows.Window, from WindowCache) error {
		seen++
		if w.Length() != 32 {
			t.Errorf("evicted window should still be readable, length %d", w.Length())
		}
		return nil
	}))
	c.AddWindow(hardWindow(0, 32, 0))
	c.AddWindow(hardWindow(32, 32, 1))
	if seen != 1 {
		t.Errorf("observer should have fired once, got %d", seen)
	}
}
