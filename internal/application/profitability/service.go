package profitability

import (
	"context"
	"fmt"
	"sync"

	"github.com/fieldops/backend/internal/domain/profitability"
	"github.com/fieldops/backend/internal/domain/shared"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// defaultMaxPeriodDays caps a report window at a year plus the leap day.
const defaultMaxPeriodDays = 366

// AnalysisService is the application-level entry point for profitability
// report runs. It fetches the three record sources, drives the domain
// engine and optionally persists a snapshot of the result.
type AnalysisService struct {
	visits        profitability.VisitRepository
	pricing       profitability.PricingRepository
	sales         profitability.MaterialSaleRepository
	snapshots     profitability.SnapshotRepository
	logger        *zap.Logger
	maxPeriodDays int
}

// Option configures an AnalysisService.
type Option func(*AnalysisService)

// WithMaxPeriodDays bounds the report window length in inclusive days.
// Non-positive values keep the default.
func WithMaxPeriodDays(days int) Option {
	return func(s *AnalysisService) {
		if days > 0 {
			s.maxPeriodDays = days
		}
	}
}

// NewAnalysisService creates a new AnalysisService.
func NewAnalysisService(
	visits profitability.VisitRepository,
	pricing profitability.PricingRepository,
	sales profitability.MaterialSaleRepository,
	snapshots profitability.SnapshotRepository,
	logger *zap.Logger,
	opts ...Option,
) *AnalysisService {
	s := &AnalysisService{
		visits:        visits,
		pricing:       pricing,
		sales:         sales,
		snapshots:     snapshots,
		logger:        logger,
		maxPeriodDays: defaultMaxPeriodDays,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// AnalyzeRequest carries one report run's inputs.
type AnalyzeRequest struct {
	Filter profitability.ReportFilter
	Params profitability.CostParameters
}

// Analyze runs the profitability engine for the requested period. The three
// source reads are independent and issued concurrently; all must succeed
// before aggregation starts. Any fetch failure aborts the whole run with no
// partial report.
func (s *AnalysisService) Analyze(ctx context.Context, req AnalyzeRequest) (*profitability.Report, error) {
	if err := req.Filter.Validate(); err != nil {
		return nil, err
	}
	if days := req.Filter.PeriodDays(); days > s.maxPeriodDays {
		s.logger.Warn("report period rejected",
			zap.Int("period_days", days),
			zap.Int("max_period_days", s.maxPeriodDays),
		)
		return nil, shared.ErrPeriodTooLong
	}
	if err := req.Params.Validate(); err != nil {
		return nil, err
	}

	visits, pricing, sales, err := s.fetchSources(ctx, req.Filter)
	if err != nil {
		return nil, err
	}

	report := profitability.Aggregate(profitability.AggregationInput{
		Filter:             req.Filter,
		Visits:             visits,
		Pricing:            profitability.NewPricingIndex(pricing),
		Sales:              sales,
		Params:             req.Params,
		DistanceByOperator: profitability.OperatorRouteDistances(profitability.FilterVisits(req.Filter, visits)),
	})

	s.logger.Info("profitability report assembled",
		zap.Time("period_start", req.Filter.StartDate),
		zap.Time("period_end", req.Filter.EndDate),
		zap.Int("visits", report.Summary.VisitCount),
		zap.Int("operators", len(report.Operators)),
	)

	return report, nil
}

// AnalyzeAndSnapshot runs the engine and persists the assembled report.
func (s *AnalysisService) AnalyzeAndSnapshot(ctx context.Context, req AnalyzeRequest) (*profitability.Snapshot, error) {
	report, err := s.Analyze(ctx, req)
	if err != nil {
		return nil, err
	}

	snapshot := profitability.NewSnapshot(report)
	if err := s.snapshots.Save(ctx, snapshot); err != nil {
		return nil, fmt.Errorf("failed to save report snapshot: %w", err)
	}

	s.logger.Info("profitability snapshot saved", zap.String("snapshot_id", snapshot.ID.String()))
	return snapshot, nil
}

// GetSnapshot returns one persisted snapshot.
func (s *AnalysisService) GetSnapshot(ctx context.Context, id uuid.UUID) (*profitability.Snapshot, error) {
	return s.snapshots.FindByID(ctx, id)
}

// ListSnapshots returns the most recent snapshots, newest first.
func (s *AnalysisService) ListSnapshots(ctx context.Context, limit int) ([]profitability.Snapshot, error) {
	if limit <= 0 {
		limit = 20
	}
	return s.snapshots.List(ctx, limit)
}

// fetchSources issues the three reads concurrently and joins on all of them
// before returning. The first error wins.
func (s *AnalysisService) fetchSources(ctx context.Context, filter profitability.ReportFilter) (
	[]profitability.Visit,
	[]profitability.PricingRecord,
	[]profitability.MaterialSale,
	error,
) {
	var (
		wg      sync.WaitGroup
		visits  []profitability.Visit
		pricing []profitability.PricingRecord
		sales   []profitability.MaterialSale

		mu       sync.Mutex
		firstErr error
	)

	record := func(err error) {
		if err == nil {
			return
		}
		mu.Lock()
		if firstErr == nil {
			firstErr = err
		}
		mu.Unlock()
	}

	wg.Add(3)
	go func() {
		defer wg.Done()
		var err error
		visits, err = s.visits.ListForPeriod(ctx, filter)
		record(err)
	}()
	go func() {
		defer wg.Done()
		var err error
		pricing, err = s.pricing.ListAll(ctx)
		record(err)
	}()
	go func() {
		defer wg.Done()
		var err error
		sales, err = s.sales.ListForPeriod(ctx, filter)
		record(err)
	}()
	wg.Wait()

	if firstErr != nil {
		s.logger.Error("profitability source fetch failed", zap.Error(firstErr))
		return nil, nil, nil, fmt.Errorf("failed to fetch report sources: %w", firstErr)
	}

	return visits, pricing, sales, nil
}
