package source

import "salescope/internal/warehouse"

// Provider supplies a read-only snapshot of the warehouse tables.
// Implementations must never mutate previously returned datasets; report
// builds re-fetch on every run so a provider may return fresh data each
// call.
type Provider interface {
	Dataset() (*warehouse.Dataset, error)
}
