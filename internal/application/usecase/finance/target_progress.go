package finance

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"github.com/backoffice/backend/internal/domain/entity"
	"github.com/backoffice/backend/internal/domain/valueobject"
)

// TargetProgress is the standing of one metric against its quarterly target.
type TargetProgress struct {
	Metric   entity.TargetMetric
	Current  decimal.Decimal
	Target   decimal.Decimal
	Progress float64
}

// TargetProgressResult lists progress for every target metric.
type TargetProgressResult struct {
	QuarterID string
	Targets   []TargetProgress
	Status    valueobject.ResultStatus
	Anomalies []Anomaly
	Err       error
}

// TargetTracker reports progress towards each stored quarterly target.
type TargetTracker struct {
	aggregator        *Aggregator
	quarters          QuarterResolver
	highValueRetainer decimal.Decimal
}

// NewTargetTracker creates a new TargetTracker. Active clients whose retainer is at
// least highValueRetainer count towards the high_value_clients target.
func NewTargetTracker(aggregator *Aggregator, quarters QuarterResolver, highValueRetainer decimal.Decimal) *TargetTracker {
	return &TargetTracker{
		aggregator:        aggregator,
		quarters:          quarters,
		highValueRetainer: highValueRetainer,
	}
}

// Compute returns one TargetProgress per metric in entity.TargetMetrics order.
func (t *TargetTracker) Compute(ctx context.Context, period valueobject.QuarterPeriod) TargetProgressResult {
	var (
		quarter *entity.Quarter
		set     *recordSet
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		q, err := t.quarters.Resolve(gctx, period)
		if err != nil {
			return fmt.Errorf("failed to resolve quarter: %w", err)
		}
		quarter = q
		return nil
	})
	g.Go(func() error {
		s, err := t.aggregator.fetch(gctx, period)
		if err != nil {
			return err
		}
		set = s
		return nil
	})

	if err := g.Wait(); err != nil {
		slog.WarnContext(ctx, "Target progress unavailable",
			"quarter_id", period.QuarterID,
			"error", err,
		)
		return TargetProgressResult{
			QuarterID: period.QuarterID,
			Targets:   []TargetProgress{},
			Status:    valueobject.ResultFailed,
			Err:       err,
		}
	}

	stats, log := summarize(ctx, period, set)

	current := map[entity.TargetMetric]decimal.Decimal{
		entity.TargetMetricRevenue:           stats.QuarterlyRevenue,
		entity.TargetMetricRetainerRevenue:   retainerTotal(log, set.clients),
		entity.TargetMetricClientAcquisition: decimal.NewFromInt(int64(acquiredClients(period, set.clients))),
		entity.TargetMetricHighValueClients:  decimal.NewFromInt(int64(t.highValueClients(set.clients))),
	}

	targets := make([]TargetProgress, 0, len(entity.TargetMetrics))
	for _, metric := range entity.TargetMetrics {
		target := quarter.Target(metric)
		targets = append(targets, TargetProgress{
			Metric:   metric,
			Current:  current[metric],
			Target:   target,
			Progress: Progress(current[metric], target),
		})
	}

	anomalies := log.list()
	return TargetProgressResult{
		QuarterID: period.QuarterID,
		Targets:   targets,
		Status:    statusFor(anomalies),
		Anomalies: anomalies,
	}
}

// acquiredClients counts clients whose start date falls inside the period.
func acquiredClients(period valueobject.QuarterPeriod, clients []*entity.Client) int {
	n := 0
	for _, c := range clients {
		if c.StartDate != nil && period.Contains(*c.StartDate) {
			n++
		}
	}
	return n
}

// highValueClients counts active clients with a retainer at or above the threshold.
// Unparseable retainers never qualify; they are already reported by retainerTotal.
func (t *TargetTracker) highValueClients(clients []*entity.Client) int {
	n := 0
	for _, c := range clients {
		if !c.IsActive() {
			continue
		}
		retainer, err := c.Retainer.NonNegative()
		if err != nil {
			continue
		}
		if retainer.GreaterThanOrEqual(t.highValueRetainer) {
			n++
		}
	}
	return n
}
