package quarter

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/backoffice/backend/internal/application/adapter"
	"github.com/backoffice/backend/internal/domain/entity"
	domainerror "github.com/backoffice/backend/internal/domain/error"
)

// SetTargetInput represents the input for setting a quarterly target.
type SetTargetInput struct {
	QuarterID string
	Metric    entity.TargetMetric
	Value     decimal.Decimal
}

// SetTargetOutput represents the output of setting a quarterly target.
type SetTargetOutput struct {
	Target *entity.Target
}

// SetTargetUseCase creates or replaces the target for one metric of a quarter.
type SetTargetUseCase struct {
	quarterRepo adapter.QuarterRepository
}

// NewSetTargetUseCase creates a new SetTargetUseCase instance.
func NewSetTargetUseCase(quarterRepo adapter.QuarterRepository) *SetTargetUseCase {
	return &SetTargetUseCase{
		quarterRepo: quarterRepo,
	}
}

// Execute upserts the target. Targets of closed quarters are frozen.
func (uc *SetTargetUseCase) Execute(ctx context.Context, input SetTargetInput) (*SetTargetOutput, error) {
	period, err := parseQuarterID(input.QuarterID)
	if err != nil {
		return nil, err
	}
	if !input.Metric.IsValid() {
		return nil, domainerror.NewQuarterError(
			domainerror.ErrCodeInvalidTargetMetric,
			fmt.Sprintf("unknown target metric %q", input.Metric),
			domainerror.ErrInvalidTargetMetric,
		)
	}
	if input.Value.IsNegative() {
		return nil, domainerror.NewQuarterError(
			domainerror.ErrCodeInvalidTargetValue,
			"target value must be zero or greater",
			domainerror.ErrInvalidTargetValue,
		)
	}

	q, err := uc.quarterRepo.CreateIfAbsent(ctx, entity.NewQuarter(period))
	if err != nil {
		return nil, fmt.Errorf("failed to get or create quarter: %w", err)
	}
	if !q.IsActive() {
		return nil, domainerror.NewQuarterError(
			domainerror.ErrCodeQuarterNotActive,
			fmt.Sprintf("quarter %s is %s, its targets can no longer be changed", q.QuarterID, q.Status()),
			domainerror.ErrQuarterNotActive,
		)
	}

	target := entity.NewTarget(q.QuarterID, input.Metric, input.Value)
	if err := uc.quarterRepo.UpsertTarget(ctx, target); err != nil {
		return nil, fmt.Errorf("failed to save target: %w", err)
	}

	return &SetTargetOutput{Target: target}, nil
}
