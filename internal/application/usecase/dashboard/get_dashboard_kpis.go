package dashboard

import (
	"context"
	"time"

	"github.com/backoffice/backend/internal/domain/entity"
	"github.com/backoffice/backend/internal/domain/valueobject"
)

// GetDashboardKPIsInput represents the input for the dashboard KPIs.
type GetDashboardKPIsInput struct {
	ReferenceDate time.Time
}

// GetDashboardKPIsOutput represents the KPI cards of one quarter.
type GetDashboardKPIsOutput struct {
	Period valueobject.QuarterPeriod
	KPIs   []entity.KPI
	Status valueobject.ResultStatus
}

// GetDashboardKPIsUseCase handles the KPI cards shown on the dashboard.
type GetDashboardKPIsUseCase struct {
	kpis KPIProvider
}

// NewGetDashboardKPIsUseCase creates a new GetDashboardKPIsUseCase instance.
func NewGetDashboardKPIsUseCase(kpis KPIProvider) *GetDashboardKPIsUseCase {
	return &GetDashboardKPIsUseCase{
		kpis: kpis,
	}
}

// Execute returns the KPIs of the quarter containing the reference date.
func (uc *GetDashboardKPIsUseCase) Execute(ctx context.Context, input GetDashboardKPIsInput) (*GetDashboardKPIsOutput, error) {
	period, err := periodFor(input.ReferenceDate)
	if err != nil {
		return nil, err
	}

	result := uc.kpis.Compute(ctx, period)

	return &GetDashboardKPIsOutput{
		Period: period,
		KPIs:   result.KPIs,
		Status: result.Status,
	}, nil
}
