package cache

import (
	"testing"

	"github.com/coregx/byteseek/windows"
)

func hardWindow(position int64, size int, fill byte) windows.Window {
	array := make([]byte, size)
	for i := range array {
		array[i] = fill
	}
	return windows.NewHardWindow(array, position, size)
}

// recordingObserver collects free notifications.
type recordingObserver struct {
	freed []int64
	from  []WindowCache
}

func (o *recordingObserver) WindowFree(window windows.Window, fromCache WindowCache) error {
	o.freed = append(o.freed, window.Position())
	o.from = append(o.from, fromCache)
	return nil
}

func TestNoCache(t *testing.T) {
	c := NewNoCache()
	if err := c.AddWindow(hardWindow(0, 32, 1)); err != nil {
		t.Fatalf("add should not fail: %v", err)
	}
	w, err := c.Window(0)
	if err != nil {
		t.Fatalf("lookup should not fail: %v", err)
	}
	if w != nil {
		t.Error("no cache should never return a window")
	}
	read, err := c.Read(0, 0, make([]byte, 8))
	if err != nil || read != 0 {
		t.Errorf("read should return 0, nil; got %d, %v", read, err)
	}
	if err := c.Clear(); err != nil {
		t.Errorf("clear should not fail: %v", err)
	}
}

func TestAllCache_RetainsEverything(t *testing.T) {
	c := NewAllCache()
	for pos := int64(0); pos < 10*32; pos += 32 {
		if err := c.AddWindow(hardWindow(pos, 32, byte(pos/32))); err != nil {
			t.Fatalf("add at %d failed: %v", pos, err)
		}
	}
	for pos := int64(0); pos < 10*32; pos += 32 {
		w, err := c.Window(pos)
		if err != nil {
			t.Fatalf("lookup at %d failed: %v", pos, err)
		}
		if w == nil {
			t.Fatalf("window at %d should be cached", pos)
		}
		if w.Position() != pos {
			t.Errorf("window position should be %d, got %d", pos, w.Position())
		}
	}
}

func TestAllCache_ClearNotifiesObservers(t *testing.T) {
	c := NewAllCache()
	observer := &recordingObserver{}
	c.Subscribe(observer)
	c.AddWindow(hardWindow(0, 32, 0))
	c.AddWindow(hardWindow(32, 32, 1))
	if err := c.Clear(); err != nil {
		t.Fatalf("clear failed: %v", err)
	}
	if len(observer.freed) != 2 {
		t.Fatalf("observer should see 2 freed windows, got %d", len(observer.freed))
	}
	w, _ := c.Window(0)
	if w != nil {
		t.Error("cleared cache should be empty")
	}
}

func TestCacheRead_CopiesFromWindow(t *testing.T) {
	c := NewAllCache()
	c.AddWindow(hardWindow(64, 32, 0xAB))

	dst := make([]byte, 16)
	read, err := c.Read(64, 8, dst)
	if err != nil {
		t.Fatalf("read failed: %v", err)
	}
	if read != 16 {
		t.Errorf("read should copy 16 bytes, got %d", read)
	}
	for i, value := range dst {
		if value != 0xAB {
			t.Fatalf("byte %d should be 0xAB, got %#x", i, value)
		}
	}

	// Reads the cache cannot satisfy return zero.
	read, err = c.Read(128, 0, dst)
	if err != nil || read != 0 {
		t.Errorf("miss should return 0, nil; got %d, %v", read, err)
	}
}

func TestSubscribeUnsubscribe(t *testing.T) {
	c := NewLeastRecentlyUsedCache(1)
	observer := &recordingObserver{}
	c.Subscribe(observer)
	if !c.Unsubscribe(observer) {
		t.Error("unsubscribe of a registered observer should report true")
	}
	if c.Unsubscribe(observer) {
		t.Error("unsubscribe of an unregistered observer should report false")
	}

	c.AddWindow(hardWindow(0, 32, 0))
	c.AddWindow(hardWindow(32, 32, 1))
	if len(observer.freed) != 0 {
		t.Error("unsubscribed observer should see no notifications")
	}
}
