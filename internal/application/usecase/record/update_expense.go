package record

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/backoffice/backend/internal/application/adapter"
	"github.com/backoffice/backend/internal/domain/entity"
	domainerror "github.com/backoffice/backend/internal/domain/error"
	"github.com/backoffice/backend/internal/domain/valueobject"
)

// UpdateExpenseInput represents the input for expense update. Nil fields are left unchanged.
type UpdateExpenseInput struct {
	ExpenseID   uuid.UUID
	Description *string
	Amount      *decimal.Decimal
	Date        *time.Time
	Category    *string
	Status      *string
}

// UpdateExpenseOutput represents the output of expense update.
type UpdateExpenseOutput struct {
	Expense *entity.Expense
}

// UpdateExpenseUseCase handles expense updates.
type UpdateExpenseUseCase struct {
	records adapter.RecordWriter
	guard   PeriodGuard
}

// NewUpdateExpenseUseCase creates a new UpdateExpenseUseCase instance.
func NewUpdateExpenseUseCase(records adapter.RecordWriter, guard PeriodGuard) *UpdateExpenseUseCase {
	return &UpdateExpenseUseCase{
		records: records,
		guard:   guard,
	}
}

// Execute updates the expense. Both the current and the new date must be in open quarters.
func (uc *UpdateExpenseUseCase) Execute(ctx context.Context, input UpdateExpenseInput) (*UpdateExpenseOutput, error) {
	expense, err := findExpense(ctx, uc.records, input.ExpenseID)
	if err != nil {
		return nil, err
	}

	dates := []time.Time{expense.Date}
	if input.Date != nil {
		if err := validateDate(*input.Date); err != nil {
			return nil, err
		}
		dates = append(dates, *input.Date)
	}
	if err := uc.guard.EnsureOpen(ctx, dates...); err != nil {
		return nil, err
	}

	if input.Amount != nil {
		if err := validateAmount(*input.Amount); err != nil {
			return nil, err
		}
		expense.Amount = valueobject.NewRawAmount(*input.Amount)
	}
	if input.Description != nil {
		expense.Description = *input.Description
	}
	if input.Date != nil {
		expense.Date = *input.Date
	}
	if input.Category != nil {
		expense.Category = *input.Category
	}
	if input.Status != nil {
		expense.Status = *input.Status
	}
	expense.UpdatedAt = time.Now().UTC()

	if err := uc.records.UpdateExpense(ctx, expense); err != nil {
		return nil, fmt.Errorf("failed to update expense: %w", err)
	}

	return &UpdateExpenseOutput{Expense: expense}, nil
}

func findExpense(ctx context.Context, records adapter.RecordWriter, id uuid.UUID) (*entity.Expense, error) {
	expense, err := records.FindExpenseByID(ctx, id)
	if err != nil {
		if errors.Is(err, domainerror.ErrExpenseNotFound) {
			return nil, domainerror.NewRecordError(
				domainerror.ErrCodeExpenseNotFound,
				"expense not found",
				domainerror.ErrExpenseNotFound,
			)
		}
		return nil, fmt.Errorf("failed to find expense: %w", err)
	}
	return expense, nil
}
