package refresh

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"golang.org/x/sync/semaphore"

	"salescope/internal/report"
	"salescope/internal/reportdef"
	"salescope/internal/storage"
)

// maxConcurrentBuilds bounds how many report views rebuild at once; every
// build scans the full dataset.
const maxConcurrentBuilds = 4

// Refresher recomputes each defined report view on its interval and keeps
// the latest snapshot in a cache. Source data is only ever read.
type Refresher struct {
	builder      *report.Builder
	cache        *SnapshotCache
	defDirectory string
	schemaPath   string
	defs         []reportdef.ReportWithFile
	history      storage.HistoryStore
	sem          *semaphore.Weighted
	cancel       context.CancelFunc
	wg           sync.WaitGroup
	mu           sync.RWMutex
	running      bool
}

// NewRefresher creates a refresher over the given builder and definition
// directory.
func NewRefresher(builder *report.Builder, defDirectory, schemaPath string) *Refresher {
	return &Refresher{
		builder:      builder,
		cache:        NewSnapshotCache(),
		defDirectory: defDirectory,
		schemaPath:   schemaPath,
		sem:          semaphore.NewWeighted(maxConcurrentBuilds),
	}
}

// SetHistoryStore sets the run history backend (optional).
func (r *Refresher) SetHistoryStore(history storage.HistoryStore) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.history = history
}

// LoadDefinitions loads and validates report definitions from the
// configured directory.
func (r *Refresher) LoadDefinitions() error {
	defs, errors := reportdef.LoadFromDirectory(r.defDirectory)
	if len(errors) > 0 {
		return fmt.Errorf("failed to load report definitions: %d errors", len(errors))
	}

	if len(defs) == 0 {
		return fmt.Errorf("no report definitions found in %s", r.defDirectory)
	}

	validator, err := reportdef.NewValidator(r.schemaPath)
	if err != nil {
		return fmt.Errorf("failed to create validator: %w", err)
	}

	validationErrors := validator.ValidateDirectory(r.defDirectory)
	if len(validationErrors) > 0 {
		return fmt.Errorf("report definition validation failed: %d errors", len(validationErrors))
	}

	r.mu.Lock()
	r.defs = defs
	history := r.history
	r.mu.Unlock()

	if history != nil {
		for _, def := range defs {
			if err := history.StoreDefinition(def.Report); err != nil {
				log.Printf("Warning: failed to store report definition %s: %v", def.Report.Metadata.ID, err)
			}
		}
	}

	log.Printf("Loaded %d report definitions", len(defs))
	return nil
}

// Start begins the periodic refresh loops, one per report definition.
func (r *Refresher) Start() error {
	r.mu.Lock()
	if r.running {
		r.mu.Unlock()
		return fmt.Errorf("refresher already running")
	}

	if len(r.defs) == 0 {
		r.mu.Unlock()
		return fmt.Errorf("no report definitions loaded, call LoadDefinitions() first")
	}

	ctx, cancel := context.WithCancel(context.Background())
	r.cancel = cancel
	r.running = true
	defs := r.defs
	r.mu.Unlock()

	for _, def := range defs {
		r.wg.Add(1)
		go r.refreshLoop(ctx, def.Report)
	}

	log.Printf("Started refresher for %d reports", len(defs))
	return nil
}

// Stop stops the refresher and waits for in-flight builds to finish.
func (r *Refresher) Stop() {
	r.mu.Lock()
	if !r.running {
		r.mu.Unlock()
		return
	}

	r.cancel()
	r.running = false
	r.mu.Unlock()

	log.Println("Stopping refresher...")
	r.wg.Wait()
	log.Println("Refresher stopped")
}

// refreshLoop runs periodic rebuilds of a single report.
func (r *Refresher) refreshLoop(ctx context.Context, def *reportdef.Report) {
	defer r.wg.Done()

	interval, err := reportdef.ParseInterval(def.Spec.RefreshInterval)
	if err != nil {
		log.Printf("Error: invalid refresh interval for report %s: %v", def.Metadata.ID, err)
		return
	}

	// Build once up front so the API has data before the first tick.
	r.refreshOnce(ctx, def, interval)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			r.refreshOnce(ctx, def, interval)
		}
	}
}

// refreshOnce performs a single rebuild of a report view.
func (r *Refresher) refreshOnce(ctx context.Context, def *reportdef.Report, interval time.Duration) {
	if err := r.sem.Acquire(ctx, 1); err != nil {
		return
	}
	defer r.sem.Release(1)

	now := time.Now()
	referenceDate, err := def.ReferenceDate(now)
	if err != nil {
		log.Printf("Error resolving reference date for report %s: %v", def.Metadata.ID, err)
		return
	}

	snap, err := r.builder.Build(report.View(def.Spec.View), referenceDate)
	if err != nil {
		log.Printf("Error building report %s: %v", def.Metadata.ID, err)
		return
	}

	r.cache.Set(def.Metadata.ID, &ReportState{
		Snapshot:  snap,
		UpdatedAt: now,
		TTL:       interval,
	})

	r.mu.RLock()
	history := r.history
	r.mu.RUnlock()

	if history != nil {
		if err := history.StoreRun(def.Metadata.ID, snap); err != nil {
			log.Printf("Warning: failed to store run for report %s: %v", def.Metadata.ID, err)
		}
		if err := history.UpdateLatestRun(def.Metadata.ID, snap); err != nil {
			log.Printf("Warning: failed to update latest run for report %s: %v", def.Metadata.ID, err)
		}
	}

	log.Printf("Built report %s: view=%s, rows=%d, totalSales=%.2f",
		def.Metadata.ID, snap.View, snap.RowCount, snap.TotalSales)
}

// GetCache returns the snapshot cache.
func (r *Refresher) GetCache() *SnapshotCache {
	return r.cache
}

// GetHistoryStore returns the run history backend.
func (r *Refresher) GetHistoryStore() storage.HistoryStore {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.history
}

// GetDefinitions returns the loaded report definitions.
func (r *Refresher) GetDefinitions() []reportdef.ReportWithFile {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]reportdef.ReportWithFile, len(r.defs))
	copy(result, r.defs)
	return result
}

// SetDefinitionsForTest sets definitions directly (for testing only).
func (r *Refresher) SetDefinitionsForTest(defs []reportdef.ReportWithFile) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.defs = defs
}

// RefreshNow forces an immediate rebuild of a specific report.
func (r *Refresher) RefreshNow(reportID string) error {
	r.mu.RLock()
	var target *reportdef.Report
	for _, def := range r.defs {
		if def.Report.Metadata.ID == reportID {
			target = def.Report
			break
		}
	}
	r.mu.RUnlock()

	if target == nil {
		return fmt.Errorf("report not found: %s", reportID)
	}

	interval, err := reportdef.ParseInterval(target.Spec.RefreshInterval)
	if err != nil {
		return fmt.Errorf("invalid refresh interval: %w", err)
	}

	r.refreshOnce(context.Background(), target, interval)
	return nil
}
