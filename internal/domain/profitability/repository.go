package profitability

import (
	"context"

	"github.com/google/uuid"
)

// VisitRepository fetches visit read models for a report run.
type VisitRepository interface {
	// ListForPeriod returns visits whose date falls inside the filter's
	// inclusive window, joined with customer, branch and operator data.
	// The optional operator filter narrows the result.
	ListForPeriod(ctx context.Context, filter ReportFilter) ([]Visit, error)
}

// PricingRepository fetches the pricing records relevant to a report run.
type PricingRepository interface {
	// ListAll returns every pricing record. Pricing is small and
	// per-entity; the resolver indexes it in memory.
	ListAll(ctx context.Context) ([]PricingRecord, error)
}

// MaterialSaleRepository fetches material sales for a report run.
type MaterialSaleRepository interface {
	// ListForPeriod returns sales whose visit falls inside the filter's
	// inclusive window.
	ListForPeriod(ctx context.Context, filter ReportFilter) ([]MaterialSale, error)
}

// SnapshotRepository persists assembled reports on explicit user request.
// The engine itself is stateless; snapshots are an export concern.
type SnapshotRepository interface {
	Save(ctx context.Context, snapshot *Snapshot) error
	FindByID(ctx context.Context, id uuid.UUID) (*Snapshot, error)
	List(ctx context.Context, limit int) ([]Snapshot, error)
}
