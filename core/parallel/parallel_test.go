package parallel

import (
	"sync/atomic"
	"testing"
)

func TestParallelizeCoversRangeExactlyOnce(t *testing.T) {
	const items = 1000
	var counts [items]int32

	Parallelize(items, func(start, end int) {
		for i := start; i < end; i++ {
			atomic.AddInt32(&counts[i], 1)
		}
	})

	for i, c := range counts {
		if c != 1 {
			t.Fatalf("index %d visited %d times, want 1", i, c)
		}
	}
}

func TestParallelizeZeroItems(t *testing.T) {
	called := false
	Parallelize(0, func(start, end int) { called = true })
	if called {
		t.Error("fn should not be called for zero items")
	}
}

func TestParallelizeWithWorkers(t *testing.T) {
	tests := []struct {
		name    string
		items   int
		workers int
	}{
		{name: "more workers than items", items: 3, workers: 16},
		{name: "single worker", items: 100, workers: 1},
		{name: "invalid worker count", items: 50, workers: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var total int64
			ParallelizeWithWorkers(tt.items, tt.workers, func(start, end int) {
				atomic.AddInt64(&total, int64(end-start))
			})
			if total != int64(tt.items) {
				t.Errorf("covered %d items, want %d", total, tt.items)
			}
		})
	}
}

func TestParallelizeWithThresholdSequential(t *testing.T) {
	calls := 0
	ParallelizeWithThreshold(10, 100, func(start, end int) {
		calls++
		if start != 0 || end != 10 {
			t.Errorf("sequential path should get the full range, got [%d, %d)", start, end)
		}
	})
	if calls != 1 {
		t.Errorf("sequential path should call fn once, got %d", calls)
	}
}
