package dashboard

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/backoffice/backend/internal/application/usecase/finance"
	"github.com/backoffice/backend/internal/domain/entity"
	domainerror "github.com/backoffice/backend/internal/domain/error"
	"github.com/backoffice/backend/internal/domain/valueobject"
)

type stubStats struct {
	result finance.StatsResult
	period valueobject.QuarterPeriod
}

func (s *stubStats) Stats(_ context.Context, period valueobject.QuarterPeriod) finance.StatsResult {
	s.period = period
	return s.result
}

type stubKPIs struct {
	result finance.KPIResult
}

func (s *stubKPIs) Compute(_ context.Context, _ valueobject.QuarterPeriod) finance.KPIResult {
	return s.result
}

type stubQuarters struct {
	err error
}

func (s stubQuarters) Resolve(_ context.Context, period valueobject.QuarterPeriod) (*entity.Quarter, error) {
	if s.err != nil {
		return nil, s.err
	}
	return entity.NewQuarter(period), nil
}

func TestGetDashboardStatsUseCase_Execute(t *testing.T) {
	ref := time.Date(2025, time.February, 14, 0, 0, 0, 0, time.UTC)

	t.Run("uses the quarter of the reference date", func(t *testing.T) {
		stats := &stubStats{result: finance.StatsResult{
			Stats: finance.QuarterStats{
				QuarterlyRevenue:  decimal.NewFromInt(100000),
				CashOnHand:        decimal.NewFromInt(50000),
				ProfitMargin:      decimal.NewFromInt(50),
				ActiveClients:     2,
				InvoicesPaidCount: 3,
			},
			Status: valueobject.ResultOK,
		}}
		uc := NewGetDashboardStatsUseCase(stats, stubQuarters{})

		out, err := uc.Execute(context.Background(), GetDashboardStatsInput{ReferenceDate: ref})
		require.NoError(t, err)
		assert.Equal(t, "Q1-2025", stats.period.QuarterID)
		assert.Equal(t, "Q1-2025", out.Period.QuarterID)
		assert.Equal(t, entity.QuarterStatusActive, out.QuarterStatus)
		assert.True(t, out.CashOnHand.Equal(decimal.NewFromInt(50000)))
		assert.Equal(t, 3, out.InvoicesPaid)
		assert.Equal(t, valueobject.ResultOK, out.Status)
	})

	t.Run("a failed read is a status, not an error", func(t *testing.T) {
		stats := &stubStats{result: finance.StatsResult{Status: valueobject.ResultFailed, Err: errors.New("down")}}
		uc := NewGetDashboardStatsUseCase(stats, stubQuarters{err: errors.New("down")})

		out, err := uc.Execute(context.Background(), GetDashboardStatsInput{ReferenceDate: ref})
		require.NoError(t, err)
		assert.Equal(t, valueobject.ResultFailed, out.Status)
		assert.Empty(t, out.QuarterStatus)
	})

	t.Run("reference date is required", func(t *testing.T) {
		uc := NewGetDashboardStatsUseCase(&stubStats{}, stubQuarters{})

		_, err := uc.Execute(context.Background(), GetDashboardStatsInput{})
		var dErr *domainerror.DashboardError
		require.True(t, errors.As(err, &dErr))
		assert.Equal(t, domainerror.ErrCodeMissingReferenceDate, dErr.Code)
	})
}

func TestGetDashboardKPIsUseCase_Execute(t *testing.T) {
	kpis := &stubKPIs{result: finance.KPIResult{
		KPIs:   []entity.KPI{{ID: finance.KPIRevenue}},
		Status: valueobject.ResultFailed,
	}}

	out, err := NewGetDashboardKPIsUseCase(kpis).Execute(context.Background(), GetDashboardKPIsInput{
		ReferenceDate: time.Date(2025, time.November, 1, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)
	assert.Equal(t, "Q4-2025", out.Period.QuarterID)
	assert.Equal(t, valueobject.ResultFailed, out.Status)
	require.Len(t, out.KPIs, 1)
}
