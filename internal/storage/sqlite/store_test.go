package sqlite

import (
	"os"
	"testing"
	"time"

	"salescope/internal/report"
	"salescope/internal/reportdef"
	"salescope/internal/storage"
)

func setupTestDB(t *testing.T) (*Store, func()) {
	t.Helper()

	tmpfile, err := os.CreateTemp("", "test-*.db")
	if err != nil {
		t.Fatalf("failed to create temp file: %v", err)
	}
	tmpfile.Close()

	store, err := NewStore(tmpfile.Name())
	if err != nil {
		os.Remove(tmpfile.Name())
		t.Fatalf("failed to create store: %v", err)
	}

	cleanup := func() {
		store.Close()
		os.Remove(tmpfile.Name())
	}

	return store, cleanup
}

func testDefinition(id string) *reportdef.Report {
	return &reportdef.Report{
		APIVersion: "salescope/v1",
		Kind:       "Report",
		Metadata: reportdef.Metadata{
			ID:    id,
			Title: "Customer KPI report",
		},
		Spec: reportdef.Spec{
			View:            "customers",
			RefreshInterval: "15m",
			ReferenceDate:   "2014-12-31",
		},
	}
}

func testSnapshot(view report.View, builtAt time.Time) *report.Snapshot {
	return &report.Snapshot{
		View:          view,
		ReferenceDate: time.Date(2014, time.December, 31, 0, 0, 0, 0, time.UTC),
		BuiltAt:       builtAt,
		RowCount:      4,
		TotalSales:    6220,
	}
}

func TestStore_StoreDefinition(t *testing.T) {
	store, cleanup := setupTestDB(t)
	defer cleanup()

	if err := store.StoreDefinition(testDefinition("customer-report")); err != nil {
		t.Fatalf("failed to store definition: %v", err)
	}

	// Storing again updates in place rather than failing.
	def := testDefinition("customer-report")
	def.Spec.RefreshInterval = "1h"
	if err := store.StoreDefinition(def); err != nil {
		t.Fatalf("failed to update definition: %v", err)
	}
}

func TestStore_StoreRunAndQuery(t *testing.T) {
	store, cleanup := setupTestDB(t)
	defer cleanup()

	if err := store.StoreDefinition(testDefinition("customer-report")); err != nil {
		t.Fatalf("failed to store definition: %v", err)
	}

	base := time.Date(2026, time.August, 1, 10, 0, 0, 0, time.UTC)
	for i := 0; i < 3; i++ {
		snap := testSnapshot(report.ViewCustomers, base.Add(time.Duration(i)*time.Hour))
		if err := store.StoreRun("customer-report", snap); err != nil {
			t.Fatalf("failed to store run %d: %v", i, err)
		}
	}

	records, err := store.QueryRuns(storage.RunFilter{ReportID: "customer-report"})
	if err != nil {
		t.Fatalf("failed to query runs: %v", err)
	}
	if len(records) != 3 {
		t.Fatalf("expected 3 runs, got %d", len(records))
	}

	// Ordered newest first.
	for i := 1; i < len(records); i++ {
		if records[i].BuiltAt.After(records[i-1].BuiltAt) {
			t.Errorf("expected runs ordered by built_at descending")
		}
	}

	if records[0].View != "customers" {
		t.Errorf("expected view customers, got %s", records[0].View)
	}
	if records[0].RowCount != 4 {
		t.Errorf("expected row count 4, got %d", records[0].RowCount)
	}
	if records[0].TotalSales != 6220 {
		t.Errorf("expected total sales 6220, got %.2f", records[0].TotalSales)
	}
}

func TestStore_QueryRunsFilters(t *testing.T) {
	store, cleanup := setupTestDB(t)
	defer cleanup()

	if err := store.StoreDefinition(testDefinition("customer-report")); err != nil {
		t.Fatalf("failed to store definition: %v", err)
	}
	productDef := testDefinition("product-report")
	productDef.Spec.View = "products"
	if err := store.StoreDefinition(productDef); err != nil {
		t.Fatalf("failed to store definition: %v", err)
	}

	base := time.Date(2026, time.August, 1, 10, 0, 0, 0, time.UTC)
	if err := store.StoreRun("customer-report", testSnapshot(report.ViewCustomers, base)); err != nil {
		t.Fatalf("failed to store run: %v", err)
	}
	if err := store.StoreRun("product-report", testSnapshot(report.ViewProducts, base.Add(time.Hour))); err != nil {
		t.Fatalf("failed to store run: %v", err)
	}

	// Filter by view
	records, err := store.QueryRuns(storage.RunFilter{View: "products"})
	if err != nil {
		t.Fatalf("failed to query runs: %v", err)
	}
	if len(records) != 1 || records[0].ReportID != "product-report" {
		t.Errorf("expected one products run, got %+v", records)
	}

	// Filter by time window
	start := base.Add(30 * time.Minute)
	records, err = store.QueryRuns(storage.RunFilter{StartTime: &start})
	if err != nil {
		t.Fatalf("failed to query runs: %v", err)
	}
	if len(records) != 1 || records[0].ReportID != "product-report" {
		t.Errorf("expected one run after %v, got %+v", start, records)
	}

	// Limit
	records, err = store.QueryRuns(storage.RunFilter{Limit: 1})
	if err != nil {
		t.Fatalf("failed to query runs: %v", err)
	}
	if len(records) != 1 {
		t.Errorf("expected 1 run with limit, got %d", len(records))
	}
}

func TestStore_LatestRun(t *testing.T) {
	store, cleanup := setupTestDB(t)
	defer cleanup()

	// No rows yet: nil without error.
	run, err := store.GetLatestRun("customer-report")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if run != nil {
		t.Fatalf("expected nil latest run, got %+v", run)
	}

	if err := store.StoreDefinition(testDefinition("customer-report")); err != nil {
		t.Fatalf("failed to store definition: %v", err)
	}

	first := time.Date(2026, time.August, 1, 10, 0, 0, 0, time.UTC)
	if err := store.UpdateLatestRun("customer-report", testSnapshot(report.ViewCustomers, first)); err != nil {
		t.Fatalf("failed to update latest run: %v", err)
	}

	second := first.Add(time.Hour)
	if err := store.UpdateLatestRun("customer-report", testSnapshot(report.ViewCustomers, second)); err != nil {
		t.Fatalf("failed to update latest run: %v", err)
	}

	run, err = store.GetLatestRun("customer-report")
	if err != nil {
		t.Fatalf("failed to get latest run: %v", err)
	}
	if run == nil {
		t.Fatal("expected a latest run")
	}
	if !run.BuiltAt.Equal(second) {
		t.Errorf("expected built at %v, got %v", second, run.BuiltAt)
	}
	if run.RowCount != 4 {
		t.Errorf("expected row count 4, got %d", run.RowCount)
	}
}
