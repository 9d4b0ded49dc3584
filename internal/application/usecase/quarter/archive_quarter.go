package quarter

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/backoffice/backend/internal/application/adapter"
	"github.com/backoffice/backend/internal/domain/entity"
	domainerror "github.com/backoffice/backend/internal/domain/error"
)

// ArchiveQuarterInput represents the input for archiving a quarter.
type ArchiveQuarterInput struct {
	QuarterID string
}

// ArchiveQuarterOutput represents the output of archiving a quarter.
type ArchiveQuarterOutput struct {
	Quarter *entity.Quarter
}

// ArchiveQuarterUseCase moves a closed quarter to archived.
type ArchiveQuarterUseCase struct {
	quarterRepo adapter.QuarterRepository
	clock       adapter.Clock
}

// NewArchiveQuarterUseCase creates a new ArchiveQuarterUseCase instance.
func NewArchiveQuarterUseCase(quarterRepo adapter.QuarterRepository, clock adapter.Clock) *ArchiveQuarterUseCase {
	return &ArchiveQuarterUseCase{
		quarterRepo: quarterRepo,
		clock:       clock,
	}
}

// Execute archives the quarter.
func (uc *ArchiveQuarterUseCase) Execute(ctx context.Context, input ArchiveQuarterInput) (*ArchiveQuarterOutput, error) {
	if _, err := parseQuarterID(input.QuarterID); err != nil {
		return nil, err
	}

	q, err := uc.quarterRepo.FindByQuarterID(ctx, input.QuarterID)
	if err != nil {
		if errors.Is(err, domainerror.ErrQuarterNotFound) {
			return nil, domainerror.NewQuarterError(
				domainerror.ErrCodeQuarterNotFound,
				fmt.Sprintf("quarter %s not found", input.QuarterID),
				domainerror.ErrQuarterNotFound,
			)
		}
		return nil, fmt.Errorf("failed to find quarter: %w", err)
	}
	if q.Status() != entity.QuarterStatusClosed {
		return nil, notClosedError(q.QuarterID, q.Status())
	}

	archivedAt := uc.clock.Now().UTC()
	archived, err := uc.quarterRepo.ArchiveIfClosed(ctx, q.QuarterID, archivedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to archive quarter: %w", err)
	}
	if !archived {
		return nil, notClosedError(q.QuarterID, entity.QuarterStatusArchived)
	}

	if err := q.Archive(archivedAt); err != nil {
		return nil, fmt.Errorf("failed to apply archive to quarter: %w", err)
	}

	slog.InfoContext(ctx, "Quarter archived", "quarter_id", q.QuarterID)

	return &ArchiveQuarterOutput{Quarter: q}, nil
}

func notClosedError(quarterID string, status entity.QuarterStatus) error {
	return domainerror.NewQuarterError(
		domainerror.ErrCodeQuarterNotClosed,
		fmt.Sprintf("quarter %s is %s, only closed quarters can be archived", quarterID, status),
		domainerror.ErrQuarterNotClosed,
	)
}
