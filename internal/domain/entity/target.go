// Package entity defines the core business entities for the domain layer.
package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// TargetMetric names a per-quarter goal.
type TargetMetric string

const (
	TargetMetricRevenue           TargetMetric = "revenue"
	TargetMetricRetainerRevenue   TargetMetric = "retainer_revenue"
	TargetMetricClientAcquisition TargetMetric = "client_acquisition"
	TargetMetricHighValueClients  TargetMetric = "high_value_clients"
)

// TargetMetrics lists every supported metric in display order.
var TargetMetrics = []TargetMetric{
	TargetMetricRevenue,
	TargetMetricRetainerRevenue,
	TargetMetricClientAcquisition,
	TargetMetricHighValueClients,
}

// IsValid reports whether the metric is one of TargetMetrics.
func (m TargetMetric) IsValid() bool {
	for _, known := range TargetMetrics {
		if m == known {
			return true
		}
	}
	return false
}

// Target is a numeric goal for one metric of one quarter.
type Target struct {
	ID        uuid.UUID
	QuarterID string
	Metric    TargetMetric
	Value     decimal.Decimal
	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewTarget creates a new Target entity.
func NewTarget(quarterID string, metric TargetMetric, value decimal.Decimal) *Target {
	now := time.Now().UTC()

	return &Target{
		ID:        uuid.New(),
		QuarterID: quarterID,
		Metric:    metric,
		Value:     value,
		CreatedAt: now,
		UpdatedAt: now,
	}
}
