package refresh

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"salescope/internal/report"
)

func TestSnapshotCache_Basics(t *testing.T) {
	cache := NewSnapshotCache()

	// Initially empty
	if cache.Size() != 0 {
		t.Errorf("expected empty cache, got size %d", cache.Size())
	}

	// Set and get
	state := &ReportState{
		Snapshot:  &report.Snapshot{View: report.ViewCustomers, RowCount: 4},
		UpdatedAt: time.Now(),
		TTL:       30 * time.Second,
	}

	cache.Set("customer-report", state)

	if cache.Size() != 1 {
		t.Errorf("expected size 1, got %d", cache.Size())
	}

	retrieved, ok := cache.Get("customer-report")
	if !ok {
		t.Fatal("expected to retrieve state")
	}

	if retrieved.Snapshot.View != report.ViewCustomers {
		t.Errorf("expected view customers, got %s", retrieved.Snapshot.View)
	}

	// Delete
	cache.Delete("customer-report")
	if cache.Size() != 0 {
		t.Errorf("expected size 0 after delete, got %d", cache.Size())
	}

	_, ok = cache.Get("customer-report")
	if ok {
		t.Error("expected not to find deleted state")
	}
}

func TestSnapshotCache_GetAll(t *testing.T) {
	cache := NewSnapshotCache()

	for i := 0; i < 3; i++ {
		cache.Set(fmt.Sprintf("report-%d", i), &ReportState{
			Snapshot:  &report.Snapshot{View: report.ViewProducts},
			UpdatedAt: time.Now(),
		})
	}

	all := cache.GetAll()
	if len(all) != 3 {
		t.Errorf("expected 3 states, got %d", len(all))
	}
}

func TestSnapshotCache_Clear(t *testing.T) {
	cache := NewSnapshotCache()

	cache.Set("report-a", &ReportState{})
	cache.Set("report-b", &ReportState{})

	cache.Clear()

	if cache.Size() != 0 {
		t.Errorf("expected size 0 after clear, got %d", cache.Size())
	}
}

func TestReportState_IsStale(t *testing.T) {
	now := time.Now()
	state := &ReportState{
		UpdatedAt: now.Add(-1 * time.Minute),
		TTL:       30 * time.Second,
	}

	if !state.IsStale(now) {
		t.Error("expected state to be stale")
	}

	state.UpdatedAt = now.Add(-10 * time.Second)
	if state.IsStale(now) {
		t.Error("expected state to not be stale")
	}
}

func TestSnapshotCache_Concurrency(t *testing.T) {
	cache := NewSnapshotCache()
	var wg sync.WaitGroup

	// Concurrent writes
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			cache.Set(fmt.Sprintf("report-%d", id%10), &ReportState{
				Snapshot:  &report.Snapshot{},
				UpdatedAt: time.Now(),
			})
		}(i)
	}

	// Concurrent reads
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			cache.Get(fmt.Sprintf("report-%d", id%10))
			cache.Size()
		}(i)
	}

	wg.Wait()

	if cache.Size() != 10 {
		t.Errorf("expected 10 cached states, got %d", cache.Size())
	}
}
