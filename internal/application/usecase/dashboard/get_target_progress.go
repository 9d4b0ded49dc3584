package dashboard

import (
	"context"
	"time"

	"github.com/backoffice/backend/internal/application/usecase/finance"
	"github.com/backoffice/backend/internal/domain/valueobject"
)

// GetTargetProgressInput represents the input for the target progress report.
type GetTargetProgressInput struct {
	ReferenceDate time.Time
}

// GetTargetProgressOutput lists progress towards each target of one quarter.
type GetTargetProgressOutput struct {
	Period  valueobject.QuarterPeriod
	Targets []finance.TargetProgress
	Status  valueobject.ResultStatus
}

// GetTargetProgressUseCase handles the target progress report.
type GetTargetProgressUseCase struct {
	targets TargetProgressProvider
}

// NewGetTargetProgressUseCase creates a new GetTargetProgressUseCase instance.
func NewGetTargetProgressUseCase(targets TargetProgressProvider) *GetTargetProgressUseCase {
	return &GetTargetProgressUseCase{
		targets: targets,
	}
}

// Execute returns target progress for the quarter containing the reference date.
func (uc *GetTargetProgressUseCase) Execute(ctx context.Context, input GetTargetProgressInput) (*GetTargetProgressOutput, error) {
	period, err := periodFor(input.ReferenceDate)
	if err != nil {
		return nil, err
	}

	result := uc.targets.Compute(ctx, period)

	return &GetTargetProgressOutput{
		Period:  period,
		Targets: result.Targets,
		Status:  result.Status,
	}, nil
}
