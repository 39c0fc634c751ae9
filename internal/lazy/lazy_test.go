package lazy

import (
	"sync"
	"sync/atomic"
	"testing"
)

func TestLazy_CreatesOnce(t *testing.T) {
	calls := 0
	holder := New(func() int {
		calls++
		return 42
	})

	if holder.Created() {
		t.Error("value should not be created before first Get")
	}
	if got := holder.Get(); got != 42 {
		t.Errorf("value should be 42, got %d", got)
	}
	if got := holder.Get(); got != 42 {
		t.Errorf("second get should return the same value, got %d", got)
	}
	if calls != 1 {
		t.Errorf("factory should run once, ran %d times", calls)
	}
	if !holder.Created() {
		t.Error("value should report created after Get")
	}
}

func TestLazy_ConcurrentGetCreatesOnce(t *testing.T) {
	var calls atomic.Int32
	holder := New(func() *[]int {
		calls.Add(1)
		value := []int{1, 2, 3}
		return &value
	})

	const goroutines = 16
	results := make([]*[]int, goroutines)
	var group sync.WaitGroup
	for i := 0; i < goroutines; i++ {
		group.Add(1)
		go func(slot int) {
			defer group.Done()
			results[slot] = holder.Get()
		}(i)
	}
	group.Wait()

	if calls.Load() != 1 {
		t.Errorf("factory should run once under contention, ran %d times", calls.Load())
	}
	for i := 1; i < goroutines; i++ {
		if results[i] != results[0] {
			t.Fatal("every caller should observe the same value")
		}
	}
}
