package refresh

import (
	"sync"
	"time"

	"salescope/internal/report"
)

// ReportState is the cached build state for one report definition.
type ReportState struct {
	Snapshot  *report.Snapshot
	UpdatedAt time.Time
	TTL       time.Duration
}

// IsStale returns true if the cached state is older than its TTL.
func (s *ReportState) IsStale(now time.Time) bool {
	return now.Sub(s.UpdatedAt) > s.TTL
}

// SnapshotCache is a thread-safe cache of built report snapshots, keyed by
// report definition ID.
type SnapshotCache struct {
	mu     sync.RWMutex
	states map[string]*ReportState
}

// NewSnapshotCache creates an empty cache.
func NewSnapshotCache() *SnapshotCache {
	return &SnapshotCache{
		states: make(map[string]*ReportState),
	}
}

// Get retrieves cached state for a report.
func (c *SnapshotCache) Get(reportID string) (*ReportState, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	state, exists := c.states[reportID]
	return state, exists
}

// Set stores build state for a report.
func (c *SnapshotCache) Set(reportID string, state *ReportState) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.states[reportID] = state
}

// GetAll returns a snapshot copy of all cached states.
func (c *SnapshotCache) GetAll() map[string]*ReportState {
	c.mu.RLock()
	defer c.mu.RUnlock()

	snapshot := make(map[string]*ReportState, len(c.states))
	for k, v := range c.states {
		snapshot[k] = v
	}

	return snapshot
}

// Delete removes a cached state.
func (c *SnapshotCache) Delete(reportID string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	delete(c.states, reportID)
}

// Clear removes all cached states.
func (c *SnapshotCache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.states = make(map[string]*ReportState)
}

// Size returns the number of cached states.
func (c *SnapshotCache) Size() int {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return len(c.states)
}
