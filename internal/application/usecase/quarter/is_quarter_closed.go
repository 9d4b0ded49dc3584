package quarter

import (
	"context"
	"errors"
	"fmt"

	"github.com/backoffice/backend/internal/application/adapter"
	domainerror "github.com/backoffice/backend/internal/domain/error"
	"github.com/backoffice/backend/internal/domain/valueobject"
)

// IsQuarterClosedInput identifies a quarter by number and year.
type IsQuarterClosedInput struct {
	Number int
	Year   int
}

// IsQuarterClosedOutput represents the output of IsQuarterClosedUseCase.
type IsQuarterClosedOutput struct {
	QuarterID string
	Closed    bool
}

// IsQuarterClosedUseCase reports whether a quarter no longer accepts writes.
// It never creates the quarter.
type IsQuarterClosedUseCase struct {
	quarterRepo adapter.QuarterRepository
}

// NewIsQuarterClosedUseCase creates a new IsQuarterClosedUseCase instance.
func NewIsQuarterClosedUseCase(quarterRepo adapter.QuarterRepository) *IsQuarterClosedUseCase {
	return &IsQuarterClosedUseCase{
		quarterRepo: quarterRepo,
	}
}

// Execute returns true for closed or archived quarters and false for active or absent ones.
func (uc *IsQuarterClosedUseCase) Execute(ctx context.Context, input IsQuarterClosedInput) (*IsQuarterClosedOutput, error) {
	if input.Number < 1 || input.Number > 4 || input.Year < 1 {
		return nil, domainerror.NewQuarterError(
			domainerror.ErrCodeInvalidQuarterID,
			"quarter must be between 1 and 4 and year must be positive",
			domainerror.ErrInvalidQuarterID,
		)
	}

	quarterID := valueobject.FormatQuarterID(input.Number, input.Year)
	closed, err := uc.isClosed(ctx, quarterID)
	if err != nil {
		return nil, err
	}

	return &IsQuarterClosedOutput{
		QuarterID: quarterID,
		Closed:    closed,
	}, nil
}

func (uc *IsQuarterClosedUseCase) isClosed(ctx context.Context, quarterID string) (bool, error) {
	q, err := uc.quarterRepo.FindByQuarterID(ctx, quarterID)
	if err != nil {
		if errors.Is(err, domainerror.ErrQuarterNotFound) {
			return false, nil
		}
		return false, fmt.Errorf("failed to find quarter: %w", err)
	}
	return q.IsLocked(), nil
}
