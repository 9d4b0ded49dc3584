package dashboard

import (
	"context"
	"log/slog"
	"time"

	"github.com/shopspring/decimal"

	"github.com/backoffice/backend/internal/application/usecase/finance"
	"github.com/backoffice/backend/internal/domain/entity"
	"github.com/backoffice/backend/internal/domain/valueobject"
)

// GetDashboardStatsInput represents the input for the dashboard stats.
type GetDashboardStatsInput struct {
	ReferenceDate time.Time
}

// GetDashboardStatsOutput represents the dashboard headline figures of one quarter.
type GetDashboardStatsOutput struct {
	Period           valueobject.QuarterPeriod
	QuarterStatus    entity.QuarterStatus // empty when the quarter could not be loaded
	QuarterlyRevenue decimal.Decimal
	ProfitMargin     decimal.Decimal
	CashOnHand       decimal.Decimal
	ActiveClients    int
	InvoicesPaid     int
	TotalExpenses    decimal.Decimal
	TotalSalaries    decimal.Decimal
	Status           valueobject.ResultStatus
	Anomalies        []finance.Anomaly
}

// GetDashboardStatsUseCase handles the quarter stats shown on the dashboard.
type GetDashboardStatsUseCase struct {
	stats    StatsProvider
	quarters finance.QuarterResolver
}

// NewGetDashboardStatsUseCase creates a new GetDashboardStatsUseCase instance.
func NewGetDashboardStatsUseCase(stats StatsProvider, quarters finance.QuarterResolver) *GetDashboardStatsUseCase {
	return &GetDashboardStatsUseCase{
		stats:    stats,
		quarters: quarters,
	}
}

// Execute returns the stats of the quarter containing the reference date.
// A failed read is reported through Status, never as an error.
func (uc *GetDashboardStatsUseCase) Execute(ctx context.Context, input GetDashboardStatsInput) (*GetDashboardStatsOutput, error) {
	period, err := periodFor(input.ReferenceDate)
	if err != nil {
		return nil, err
	}

	var quarterStatus entity.QuarterStatus
	q, err := uc.quarters.Resolve(ctx, period)
	if err != nil {
		slog.WarnContext(ctx, "Failed to load quarter for dashboard",
			"quarter_id", period.QuarterID,
			"error", err,
		)
	} else {
		quarterStatus = q.Status()
	}

	result := uc.stats.Stats(ctx, period)

	return &GetDashboardStatsOutput{
		Period:           period,
		QuarterStatus:    quarterStatus,
		QuarterlyRevenue: result.Stats.QuarterlyRevenue,
		ProfitMargin:     result.Stats.ProfitMargin,
		CashOnHand:       result.Stats.CashOnHand,
		ActiveClients:    result.Stats.ActiveClients,
		InvoicesPaid:     result.Stats.InvoicesPaidCount,
		TotalExpenses:    result.Stats.TotalExpenses,
		TotalSalaries:    result.Stats.TotalSalaries,
		Status:           result.Status,
		Anomalies:        result.Anomalies,
	}, nil
}
