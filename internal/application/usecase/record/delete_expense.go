package record

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/backoffice/backend/internal/application/adapter"
)

// DeleteExpenseInput represents the input for expense deletion.
type DeleteExpenseInput struct {
	ExpenseID uuid.UUID
}

// DeleteExpenseOutput represents the output of expense deletion.
type DeleteExpenseOutput struct {
	Success bool
}

// DeleteExpenseUseCase handles expense deletion.
type DeleteExpenseUseCase struct {
	records adapter.RecordWriter
	guard   PeriodGuard
}

// NewDeleteExpenseUseCase creates a new DeleteExpenseUseCase instance.
func NewDeleteExpenseUseCase(records adapter.RecordWriter, guard PeriodGuard) *DeleteExpenseUseCase {
	return &DeleteExpenseUseCase{
		records: records,
		guard:   guard,
	}
}

// Execute deletes the expense unless it belongs to a closed quarter.
func (uc *DeleteExpenseUseCase) Execute(ctx context.Context, input DeleteExpenseInput) (*DeleteExpenseOutput, error) {
	expense, err := findExpense(ctx, uc.records, input.ExpenseID)
	if err != nil {
		return nil, err
	}

	if err := uc.guard.EnsureOpen(ctx, expense.Date); err != nil {
		return nil, err
	}

	if err := uc.records.DeleteExpense(ctx, expense.ID); err != nil {
		return nil, fmt.Errorf("failed to delete expense: %w", err)
	}

	return &DeleteExpenseOutput{Success: true}, nil
}
