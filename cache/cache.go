// Package cache provides pluggable, composable stores for the windows a
// WindowReader produces. A WindowCache maps absolute window positions to
// Window objects; strategies range from caching nothing at all to bounded
// LRU/LFU maps, tiered composites, and a temp-file spill cache for
// stream-backed readers.
//
// Caches publish free notifications: when a window is about to leave a
// cache, every subscribed observer is told before the window is removed
// from internal storage. Composite caches such as TwoLevelCache rely on
// this ordering to move evicted windows into their next tier atomically
// with respect to external readers.
//
// Caches are single-writer, like the readers that feed them: a cache
// instance must not receive concurrent calls from multiple goroutines
// unless the embedder synchronizes externally.
package cache

import (
	"errors"
	"fmt"

	"github.com/coregx/byteseek/windows"
)

// ErrNonSequentialWindow is returned by the temp-file stream cache when a
// window is added whose position does not follow directly on from the
// windows already added.
var ErrNonSequentialWindow = errors.New("window not sequentially added to stream cache")

// WindowCache stores windows keyed by their absolute position.
type WindowCache interface {
	// Window returns the window at the given position, or nil if the
	// cache does not hold it. Positions are always multiples of the
	// window size of the reader feeding the cache.
	Window(position int64) (windows.Window, error)

	// AddWindow offers a window to the cache. A cache is free to ignore
	// the offer (NoCache does); bounded caches may evict another window
	// to make room, notifying observers first.
	AddWindow(window windows.Window) error

	// Read copies bytes held by the cache for the window at windowPos,
	// starting at the given offset within that window, into p. It
	// returns the number of bytes copied: zero means the cache cannot
	// satisfy the read and the caller must ask the reader instead.
	// Caches which store bytes directly (the temp-file cache) satisfy
	// reads without materializing a window.
	Read(windowPos int64, offset int, p []byte) (int, error)

	// Clear empties the cache and releases any resources it holds, such
	// as temp files. Composite caches clear every tier even if an
	// earlier tier fails, surfacing the first error observed.
	Clear() error

	// Subscribe registers an observer for free notifications.
	Subscribe(observer WindowObserver)

	// Unsubscribe removes a previously registered observer, reporting
	// whether it was registered.
	Unsubscribe(observer WindowObserver) bool
}

// WindowObserver receives notification that a window is about to leave a
// cache. The notification fires before the window is removed from the
// cache's internal storage. Observers must not retain the window beyond
// the call unless they re-cache it themselves.
type WindowObserver interface {
	WindowFree(window windows.Window, fromCache WindowCache) error
}

// freeNotifier implements observer subscription and notification for the
// caches in this package. Concrete caches embed it and call notifyFree
// before removing a window from storage.
type freeNotifier struct {
	observers []WindowObserver
}

// Subscribe registers an observer for free notifications.
func (n *freeNotifier) Subscribe(observer WindowObserver) {
	n.observers = append(n.observers, observer)
}

// Unsubscribe removes a previously registered observer, reporting whether
// it was registered.
func (n *freeNotifier) Unsubscribe(observer WindowObserver) bool {
	for i, o := range n.observers {
		if o == observer {
			n.observers = append(n.observers[:i], n.observers[i+1:]...)
			return true
		}
	}
	return false
}

// notifyFree tells every observer that the window is leaving fromCache.
// All observers are notified even if one fails; the first error observed
// is returned after the remaining observers have run, so that eviction
// cleanup always completes.
func (n *freeNotifier) notifyFree(window windows.Window, fromCache WindowCache) error {
	var firstErr error
	for _, o := range n.observers {
		if err := o.WindowFree(window, fromCache); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

// readFromCachedWindow implements the Read convenience on top of Window
// for caches which store whole windows rather than raw bytes.
func readFromCachedWindow(c WindowCache, windowPos int64, offset int, p []byte) (int, error) {
	window, err := c.Window(windowPos)
	if err != nil || window == nil {
		return 0, err
	}
	if offset < 0 || offset >= window.Length() {
		return 0, nil
	}
	array, err := window.Array()
	if err != nil {
		return 0, err
	}
	return copy(p, array[offset:window.Length()]), nil
}

// TempFileNotDeletedError reports that the temp file backing a stream
// cache could not be deleted on Clear. It preserves any error that
// occurred while closing the file before the delete was attempted.
type TempFileNotDeletedError struct {
	Path     string
	CloseErr error
}

// Error implements the error interface.
func (e *TempFileNotDeletedError) Error() string {
	if e.CloseErr != nil {
		return fmt.Sprintf("temp file %s not deleted (close error: %v)", e.Path, e.CloseErr)
	}
	return fmt.Sprintf("temp file %s not deleted", e.Path)
}

// Unwrap returns the close error, if any.
func (e *TempFileNotDeletedError) Unwrap() error {
	return e.CloseErr
}
