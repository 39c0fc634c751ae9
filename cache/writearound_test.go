package cache

import (
	"testing"
)

func TestWriteAroundCache_AddBypassesMemory(t *testing.T) {
	memory := NewLeastRecentlyUsedCache(4)
	persistent := NewAllCache()
	c := NewWriteAroundCache(memory, persistent)

	c.AddWindow(hardWindow(0, 32, 0))
	if w, _ := memory.Window(0); w != nil {
		t.Error("addition should bypass the memory cache")
	}
	if w, _ := persistent.Window(0); w == nil {
		t.Error("addition should go to the persistent cache")
	}
	if w, _ := c.Window(0); w == nil {
		t.Error("composite lookup should find the window")
	}
}

func TestWriteAroundCache_PersistentHitPopulatesMemory(t *testing.T) {
	memory := NewLeastRecentlyUsedCache(4)
	persistent := NewAllCache()
	c := NewWriteAroundCache(memory, persistent)

	c.AddWindow(hardWindow(0, 32, 7))
	if w, _ := memory.Window(0); w != nil {
		t.Fatal("memory should be empty before the first lookup")
	}

	w, err := c.Window(0)
	if err != nil {
		t.Fatalf("lookup failed: %v", err)
	}
	if w == nil {
		t.Fatal("lookup should hit the persistent cache")
	}
	if pulled, _ := memory.Window(0); pulled == nil {
		t.Error("persistent hit should pull the window into memory")
	}
}

func TestWriteAroundCache_ClearClearsBoth(t *testing.T) {
	memory := NewLeastRecentlyUsedCache(4)
	persistent := NewAllCache()
	c := NewWriteAroundCache(memory, persistent)

	c.AddWindow(hardWindow(0, 32, 0))
	c.AddWindow(hardWindow(32, 32, 1))
	c.Window(0) // pull one window into memory
	if err := c.Clear(); err != nil {
		t.Fatalf("clear failed: %v", err)
	}
	if w, _ := c.Window(0); w != nil {
		t.Error("cleared cache should not hold window 0")
	}
	if w, _ := c.Window(32); w != nil {
		t.Error("cleared cache should not hold window 32")
	}
}

func TestWriteAroundCache_ObserversFireOnPersistentExit(t *testing.T) {
	memory := NewLeastRecentlyUsedCache(4)
	persistent := NewLeastRecentlyUsedCache(1)
	c := NewWriteAroundCache(memory, persistent)
	observer := &recordingObserver{}
	c.Subscribe(observer)

	c.AddWindow(hardWindow(0, 32, 0))
	c.AddWindow(hardWindow(32, 32, 1))
	if len(observer.freed) != 1 || observer.freed[0] != 0 {
		t.Fatalf("observer should fire for window 0 leaving the persistent tier, freed: %v", observer.freed)
	}
}
