package record

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/backoffice/backend/internal/application/adapter"
	"github.com/backoffice/backend/internal/domain/entity"
	domainerror "github.com/backoffice/backend/internal/domain/error"
	"github.com/backoffice/backend/internal/domain/valueobject"
)

// CreateExpenseInput represents the input for expense creation.
type CreateExpenseInput struct {
	Description string
	Amount      decimal.Decimal
	Date        time.Time
	Category    string
	Status      string
}

// CreateExpenseOutput represents the output of expense creation.
type CreateExpenseOutput struct {
	Expense *entity.Expense
}

// CreateExpenseUseCase handles expense creation.
type CreateExpenseUseCase struct {
	records adapter.RecordWriter
	guard   PeriodGuard
}

// NewCreateExpenseUseCase creates a new CreateExpenseUseCase instance.
func NewCreateExpenseUseCase(records adapter.RecordWriter, guard PeriodGuard) *CreateExpenseUseCase {
	return &CreateExpenseUseCase{
		records: records,
		guard:   guard,
	}
}

// Execute creates the expense unless its date falls in a closed quarter.
func (uc *CreateExpenseUseCase) Execute(ctx context.Context, input CreateExpenseInput) (*CreateExpenseOutput, error) {
	if strings.TrimSpace(input.Description) == "" {
		return nil, domainerror.NewRecordError(
			domainerror.ErrCodeMissingRecordFields,
			"description is required",
			nil,
		)
	}
	if err := validateAmount(input.Amount); err != nil {
		return nil, err
	}
	if err := validateDate(input.Date); err != nil {
		return nil, err
	}

	if err := uc.guard.EnsureOpen(ctx, input.Date); err != nil {
		return nil, err
	}

	expense := entity.NewExpense(
		input.Description,
		valueobject.NewRawAmount(input.Amount),
		input.Date,
		input.Category,
		input.Status,
	)

	if err := uc.records.CreateExpense(ctx, expense); err != nil {
		return nil, fmt.Errorf("failed to create expense: %w", err)
	}

	return &CreateExpenseOutput{Expense: expense}, nil
}
