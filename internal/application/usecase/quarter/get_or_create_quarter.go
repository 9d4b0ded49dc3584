// Package quarter contains fiscal quarter lifecycle use cases.
package quarter

import (
	"context"
	"fmt"
	"time"

	"github.com/backoffice/backend/internal/application/adapter"
	"github.com/backoffice/backend/internal/domain/entity"
	domainerror "github.com/backoffice/backend/internal/domain/error"
	"github.com/backoffice/backend/internal/domain/valueobject"
)

// GetOrCreateQuarterInput identifies a quarter by ID or by a date inside it.
// QuarterID takes precedence when both are set.
type GetOrCreateQuarterInput struct {
	QuarterID string
	Date      *time.Time
}

// GetOrCreateQuarterOutput represents the output of GetOrCreateQuarterUseCase.
type GetOrCreateQuarterOutput struct {
	Quarter *entity.Quarter
}

// GetOrCreateQuarterUseCase returns the stored quarter, creating an active one on first use.
type GetOrCreateQuarterUseCase struct {
	quarterRepo adapter.QuarterRepository
}

// NewGetOrCreateQuarterUseCase creates a new GetOrCreateQuarterUseCase instance.
func NewGetOrCreateQuarterUseCase(quarterRepo adapter.QuarterRepository) *GetOrCreateQuarterUseCase {
	return &GetOrCreateQuarterUseCase{
		quarterRepo: quarterRepo,
	}
}

// Execute resolves the input to a period and returns its quarter.
func (uc *GetOrCreateQuarterUseCase) Execute(ctx context.Context, input GetOrCreateQuarterInput) (*GetOrCreateQuarterOutput, error) {
	period, err := resolveInput(input)
	if err != nil {
		return nil, err
	}

	q, err := uc.Resolve(ctx, period)
	if err != nil {
		return nil, err
	}

	return &GetOrCreateQuarterOutput{Quarter: q}, nil
}

// Resolve returns the quarter for a period. Concurrent first calls for the
// same period all observe the single stored row.
func (uc *GetOrCreateQuarterUseCase) Resolve(ctx context.Context, period valueobject.QuarterPeriod) (*entity.Quarter, error) {
	q, err := uc.quarterRepo.CreateIfAbsent(ctx, entity.NewQuarter(period))
	if err != nil {
		return nil, fmt.Errorf("failed to get or create quarter %s: %w", period.QuarterID, err)
	}
	return q, nil
}

func resolveInput(input GetOrCreateQuarterInput) (valueobject.QuarterPeriod, error) {
	if input.QuarterID != "" {
		return parseQuarterID(input.QuarterID)
	}
	if input.Date == nil {
		return valueobject.QuarterPeriod{}, domainerror.NewQuarterError(
			domainerror.ErrCodeMissingQuarterFields,
			"quarter id or date is required",
			domainerror.ErrInvalidQuarterID,
		)
	}
	return valueobject.ResolveQuarter(*input.Date), nil
}

func parseQuarterID(id string) (valueobject.QuarterPeriod, error) {
	period, err := valueobject.ParseQuarterID(id)
	if err != nil {
		return valueobject.QuarterPeriod{}, domainerror.NewQuarterError(
			domainerror.ErrCodeInvalidQuarterID,
			fmt.Sprintf("invalid quarter id %q, expected format Q<1-4>-<year>", id),
			domainerror.ErrInvalidQuarterID,
		)
	}
	return period, nil
}
