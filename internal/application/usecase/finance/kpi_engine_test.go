package finance

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/backoffice/backend/internal/application/adapter"
	"github.com/backoffice/backend/internal/domain/entity"
	"github.com/backoffice/backend/internal/domain/valueobject"
)

func quarterWithTargets(period valueobject.QuarterPeriod, targets map[entity.TargetMetric]string) *entity.Quarter {
	q := entity.NewQuarter(period)
	for metric, value := range targets {
		q.Targets[metric] = decimal.RequireFromString(value)
	}
	return q
}

func TestKPIEngineCompute(t *testing.T) {
	period := valueobject.NewQuarterPeriod(1, 2025)
	quarters := &fakeQuarters{quarter: quarterWithTargets(period, map[entity.TargetMetric]string{
		entity.TargetMetricRevenue:         "200000",
		entity.TargetMetricRetainerRevenue: "12000",
	})}
	engine := NewKPIEngine(NewAggregator(q1Records(), 0), quarters)

	result := engine.Compute(context.Background(), period)
	require.Equal(t, valueobject.ResultOK, result.Status)
	require.NoError(t, result.Err)
	require.Len(t, result.KPIs, 5)

	ids := make([]string, 0, len(result.KPIs))
	for _, k := range result.KPIs {
		ids = append(ids, k.ID)
	}
	assert.Equal(t, []string{KPIMonthlyRetainer, KPIRevenue, KPIProfit, KPICashOnHand, KPIActiveClients}, ids)

	retainer := result.KPIs[0]
	assertDecimal(t, "6000", retainer.CurrentValue)
	assertDecimal(t, "12000", retainer.TargetValue)
	assert.Equal(t, 50.0, retainer.Progress)

	revenue := result.KPIs[1]
	assertDecimal(t, "100000", revenue.CurrentValue)
	assertDecimal(t, "200000", revenue.TargetValue)
	assert.Equal(t, 50.0, revenue.Progress)
	assert.Equal(t, entity.KPITypeCurrency, revenue.Type)

	profit := result.KPIs[2]
	assertDecimal(t, "50000", profit.CurrentValue)
	assertDecimal(t, "20000", profit.TargetValue)
	assert.Equal(t, 100.0, profit.Progress)

	cash := result.KPIs[3]
	assertDecimal(t, "50000", cash.CurrentValue)
	assertDecimal(t, "30000", cash.TargetValue)
	assert.Equal(t, 100.0, cash.Progress)

	clients := result.KPIs[4]
	assertDecimal(t, "2", clients.CurrentValue)
	assertDecimal(t, "7", clients.TargetValue)
	assert.Equal(t, 28.6, clients.Progress)
	assert.Equal(t, entity.KPITypeCount, clients.Type)
}

func TestKPIEngineCompute_UnsetTargetsGiveZeroProgress(t *testing.T) {
	engine := NewKPIEngine(NewAggregator(q1Records(), 0), &fakeQuarters{})

	result := engine.Compute(context.Background(), valueobject.NewQuarterPeriod(1, 2025))
	require.Len(t, result.KPIs, 5)
	assert.Equal(t, 0.0, result.KPIs[0].Progress)
	assert.Equal(t, 0.0, result.KPIs[1].Progress)
}

func TestKPIEngineCompute_Fallback(t *testing.T) {
	tests := []struct {
		name     string
		records  *fakeRecords
		quarters *fakeQuarters
	}{
		{
			name:     "record fetch fails",
			records:  &fakeRecords{failOn: adapter.CollectionClients},
			quarters: &fakeQuarters{},
		},
		{
			name:     "quarter lookup fails",
			records:  q1Records(),
			quarters: &fakeQuarters{err: errors.New("connection refused")},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			engine := NewKPIEngine(NewAggregator(tt.records, 0), tt.quarters)

			result := engine.Compute(context.Background(), valueobject.NewQuarterPeriod(1, 2025))
			assert.Equal(t, valueobject.ResultFailed, result.Status)
			assert.Error(t, result.Err)
			require.Len(t, result.KPIs, 1)
			assert.Equal(t, KPIRevenue, result.KPIs[0].ID)
			assert.True(t, result.KPIs[0].CurrentValue.IsZero())
		})
	}
}

func TestKPIEngineCompute_NonNumericRetainerDegrades(t *testing.T) {
	records := q1Records()
	records.clients = append(records.clients, client("active", "lots", nil))
	engine := NewKPIEngine(NewAggregator(records, 0), &fakeQuarters{})

	result := engine.Compute(context.Background(), valueobject.NewQuarterPeriod(1, 2025))
	assert.Equal(t, valueobject.ResultDegraded, result.Status)
	require.Len(t, result.Anomalies, 1)
	assert.Equal(t, adapter.CollectionClients, result.Anomalies[0].Collection)
	assertDecimal(t, "6000", result.KPIs[0].CurrentValue)
}

func TestProgress_Bounds(t *testing.T) {
	tests := []struct {
		current, target string
		expected        float64
	}{
		{"50", "100", 50},
		{"150", "100", 100},
		{"-20", "100", 0},
		{"10", "0", 0},
		{"10", "-5", 0},
		{"1", "3", 33.3},
	}

	for _, tt := range tests {
		t.Run(tt.current+"/"+tt.target, func(t *testing.T) {
			got := Progress(decimal.RequireFromString(tt.current), decimal.RequireFromString(tt.target))
			assert.Equal(t, tt.expected, got)
			assert.GreaterOrEqual(t, got, 0.0)
			assert.LessOrEqual(t, got, 100.0)
		})
	}
}

func TestEstimatedPriorPeriod(t *testing.T) {
	assertDecimal(t, "900", EstimatedPriorPeriod(decimal.NewFromInt(1000)))
	assert.Equal(t, entity.ChangeTypeIncrease, changeType(decimal.NewFromInt(1000)))
	assert.Equal(t, entity.ChangeTypeIncrease, changeType(decimal.Zero))
	assert.Equal(t, entity.ChangeTypeDecrease, changeType(decimal.NewFromInt(-100)))
}

func TestTargetTrackerCompute(t *testing.T) {
	period := valueobject.NewQuarterPeriod(1, 2025)
	records := q1Records()
	lastYear := date(2024, time.June, 1)
	records.clients = append(records.clients, client("Active", "8000", &lastYear))

	quarters := &fakeQuarters{quarter: quarterWithTargets(period, map[entity.TargetMetric]string{
		entity.TargetMetricRevenue:           "100000",
		entity.TargetMetricRetainerRevenue:   "28000",
		entity.TargetMetricClientAcquisition: "4",
		entity.TargetMetricHighValueClients:  "2",
	})}
	tracker := NewTargetTracker(NewAggregator(records, 0), quarters, decimal.NewFromInt(3000))

	result := tracker.Compute(context.Background(), period)
	require.Equal(t, valueobject.ResultOK, result.Status)
	require.Len(t, result.Targets, len(entity.TargetMetrics))

	byMetric := map[entity.TargetMetric]TargetProgress{}
	for _, tp := range result.Targets {
		byMetric[tp.Metric] = tp
	}

	assert.Equal(t, 100.0, byMetric[entity.TargetMetricRevenue].Progress)

	assertDecimal(t, "14000", byMetric[entity.TargetMetricRetainerRevenue].Current)
	assert.Equal(t, 50.0, byMetric[entity.TargetMetricRetainerRevenue].Progress)

	assertDecimal(t, "1", byMetric[entity.TargetMetricClientAcquisition].Current)
	assert.Equal(t, 25.0, byMetric[entity.TargetMetricClientAcquisition].Progress)

	assertDecimal(t, "2", byMetric[entity.TargetMetricHighValueClients].Current)
	assert.Equal(t, 100.0, byMetric[entity.TargetMetricHighValueClients].Progress)
}

func TestTargetTrackerCompute_FetchFailure(t *testing.T) {
	tracker := NewTargetTracker(
		NewAggregator(&fakeRecords{failOn: adapter.CollectionInvoices}, 0),
		&fakeQuarters{},
		decimal.NewFromInt(3000),
	)

	result := tracker.Compute(context.Background(), valueobject.NewQuarterPeriod(1, 2025))
	assert.Equal(t, valueobject.ResultFailed, result.Status)
	assert.Empty(t, result.Targets)
}
