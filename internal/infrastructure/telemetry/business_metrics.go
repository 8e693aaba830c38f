// Package telemetry provides OpenTelemetry integration for metrics collection.
package telemetry

import (
	"context"
	"sync"
	"time"

	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel/metric"
	"go.uber.org/zap"
)

// BusinessMetrics provides business metrics for the anticipation workflow.
// It tracks request creation, decision activity, and the backlog of pending
// requests.
type BusinessMetrics struct {
	meter  metric.Meter
	logger *zap.Logger

	// Counter metrics (monotonically increasing)
	requestsCreatedTotal *Counter
	grossAmountTotal     *Counter
	decisionsTotal       *Counter
	simulationsTotal     *Counter
	requestsPurgedTotal  *Counter

	// Gauge metrics (point-in-time values)
	requestsByStatus *Gauge

	// Periodic collector
	stopChan    chan struct{}
	stopOnce    sync.Once
	collectOnce sync.Once

	// Data provider for periodic collection
	statusProvider AnticipationMetricsProvider
}

// AnticipationMetricsProvider provides anticipation request data for periodic
// metrics collection. This interface allows the telemetry layer to query
// workflow state without depending on the anticipation domain directly.
type AnticipationMetricsProvider interface {
	// CountRequestsByStatus returns the number of requests per status name
	// (pending, approved, rejected).
	CountRequestsByStatus(ctx context.Context) (map[string]int64, error)
}

// BusinessMetricsConfig holds configuration for business metrics.
type BusinessMetricsConfig struct {
	Meter           metric.Meter
	Logger          *zap.Logger
	CollectInterval time.Duration // Default: 5 minutes
	StatusProvider  AnticipationMetricsProvider
}

// NewBusinessMetrics creates a new BusinessMetrics instance.
func NewBusinessMetrics(cfg BusinessMetricsConfig) (*BusinessMetrics, error) {
	if cfg.Meter == nil {
		return nil, ErrMeterNil
	}

	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	bm := &BusinessMetrics{
		meter:          cfg.Meter,
		logger:         logger,
		stopChan:       make(chan struct{}),
		statusProvider: cfg.StatusProvider,
	}

	// Initialize counter metrics
	var err error

	bm.requestsCreatedTotal, err = NewCounter(
		cfg.Meter,
		"anticipay_requests_created_total",
		"Total number of anticipation requests created",
		"{requests}",
	)
	if err != nil {
		return nil, err
	}

	bm.grossAmountTotal, err = NewCounter(
		cfg.Meter,
		"anticipay_gross_amount_total",
		"Total gross amount requested, in centavos",
		"{centavos}",
	)
	if err != nil {
		return nil, err
	}

	bm.decisionsTotal, err = NewCounter(
		cfg.Meter,
		"anticipay_decisions_total",
		"Total number of approve/reject decisions",
		"{decisions}",
	)
	if err != nil {
		return nil, err
	}

	bm.simulationsTotal, err = NewCounter(
		cfg.Meter,
		"anticipay_simulations_total",
		"Total number of anticipation simulations served",
		"{simulations}",
	)
	if err != nil {
		return nil, err
	}

	bm.requestsPurgedTotal, err = NewCounter(
		cfg.Meter,
		"anticipay_requests_purged_total",
		"Total number of anticipation requests removed by administrative purge",
		"{requests}",
	)
	if err != nil {
		return nil, err
	}

	// Status gauge metric
	bm.requestsByStatus, err = NewGauge(
		cfg.Meter,
		"anticipay_requests_by_status",
		"Current number of anticipation requests per status",
		"{requests}",
	)
	if err != nil {
		return nil, err
	}

	return bm, nil
}

// =============================================================================
// Request Metrics
// =============================================================================

// Decision represents the outcome of a decide call for metrics labeling.
type Decision string

const (
	DecisionApprove Decision = "approve"
	DecisionReject  Decision = "reject"
)

// RecordRequestCreated records an anticipation request creation event.
// This should be called from the application layer after the request persists.
func (bm *BusinessMetrics) RecordRequestCreated(ctx context.Context) {
	bm.requestsCreatedTotal.Inc(ctx)
}

// RecordGrossAmount records the gross amount requested.
// Amount should be in the smallest currency unit (centavos).
func (bm *BusinessMetrics) RecordGrossAmount(ctx context.Context, amountCentavos int64) {
	bm.grossAmountTotal.Add(ctx, amountCentavos)
}

// RecordRequestWithAmount is a convenience method that records both the
// request count and the gross amount.
func (bm *BusinessMetrics) RecordRequestWithAmount(ctx context.Context, grossAmount decimal.Decimal) {
	bm.RecordRequestCreated(ctx)

	// Convert to centavos (multiply by 100)
	amountCentavos := grossAmount.Mul(decimal.NewFromInt(100)).IntPart()
	bm.RecordGrossAmount(ctx, amountCentavos)
}

// RecordDecision records an approve or reject decision.
func (bm *BusinessMetrics) RecordDecision(ctx context.Context, decision Decision) {
	bm.decisionsTotal.Inc(ctx,
		AttrDecision.String(string(decision)),
	)
}

// RecordSimulation records a simulation request. Simulations never touch the
// store, so this counter is the only trace they leave.
func (bm *BusinessMetrics) RecordSimulation(ctx context.Context) {
	bm.simulationsTotal.Inc(ctx)
}

// RecordPurgedRows records the number of rows removed by an administrative
// purge.
func (bm *BusinessMetrics) RecordPurgedRows(ctx context.Context, count int64) {
	bm.requestsPurgedTotal.Add(ctx, count)
}

// =============================================================================
// Status Gauge Metrics
// =============================================================================

// RecordStatusCount records the current number of requests in a status.
// This is a gauge metric that should be updated periodically.
func (bm *BusinessMetrics) RecordStatusCount(ctx context.Context, status string, count int64) {
	bm.requestsByStatus.Record(ctx, count,
		AttrRequestStatus.String(status),
	)
}

// =============================================================================
// Periodic Collection
// =============================================================================

// StartPeriodicCollection starts periodic collection of gauge metrics.
// It collects request status counts every interval (default: 5 minutes).
// This is non-blocking - use Stop() to stop collection.
func (bm *BusinessMetrics) StartPeriodicCollection(ctx context.Context, interval time.Duration) {
	bm.collectOnce.Do(func() {
		if interval <= 0 {
			interval = 5 * time.Minute
		}

		go bm.runPeriodicCollection(ctx, interval)
	})
}

// runPeriodicCollection runs the periodic collection loop.
func (bm *BusinessMetrics) runPeriodicCollection(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	// Collect immediately on start
	bm.collectStatusMetrics(ctx)

	for {
		select {
		case <-bm.stopChan:
			bm.logger.Info("Stopping periodic business metrics collection")
			return
		case <-ctx.Done():
			bm.logger.Info("Context cancelled, stopping periodic business metrics collection")
			return
		case <-ticker.C:
			bm.collectStatusMetrics(ctx)
		}
	}
}

// collectStatusMetrics collects the per-status request count gauges.
func (bm *BusinessMetrics) collectStatusMetrics(ctx context.Context) {
	if bm.statusProvider == nil {
		bm.logger.Debug("No status provider configured, skipping status metrics collection")
		return
	}

	counts, err := bm.statusProvider.CountRequestsByStatus(ctx)
	if err != nil {
		bm.logger.Warn("Failed to count requests by status", zap.Error(err))
		return
	}

	for status, count := range counts {
		bm.RecordStatusCount(ctx, status, count)
	}
}

// Stop stops the periodic collection.
func (bm *BusinessMetrics) Stop() {
	bm.stopOnce.Do(func() {
		close(bm.stopChan)
	})
}

// =============================================================================
// Error Types
// =============================================================================

// ErrMeterNil is returned when meter is nil.
var ErrMeterNil = &MetricsError{Op: "NewBusinessMetrics", Err: "meter cannot be nil"}

// MetricsError represents a metrics-related error.
type MetricsError struct {
	Op  string
	Err string
}

func (e *MetricsError) Error() string {
	return e.Op + ": " + e.Err
}
