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

// UpdateInvoiceInput represents the input for invoice update. Nil fields are left unchanged.
type UpdateInvoiceInput struct {
	InvoiceID     uuid.UUID
	Amount        *decimal.Decimal
	IssueDate     *time.Time
	Status        *string
	PaidDate      *time.Time
	ClearPaidDate bool
}

// UpdateInvoiceOutput represents the output of invoice update.
type UpdateInvoiceOutput struct {
	Invoice *entity.Invoice
}

// UpdateInvoiceUseCase handles invoice updates.
type UpdateInvoiceUseCase struct {
	records adapter.RecordWriter
	guard   PeriodGuard
}

// NewUpdateInvoiceUseCase creates a new UpdateInvoiceUseCase instance.
func NewUpdateInvoiceUseCase(records adapter.RecordWriter, guard PeriodGuard) *UpdateInvoiceUseCase {
	return &UpdateInvoiceUseCase{
		records: records,
		guard:   guard,
	}
}

// Execute updates the invoice. Both the current and the new issue date must be in open quarters.
func (uc *UpdateInvoiceUseCase) Execute(ctx context.Context, input UpdateInvoiceInput) (*UpdateInvoiceOutput, error) {
	invoice, err := findInvoice(ctx, uc.records, input.InvoiceID)
	if err != nil {
		return nil, err
	}

	dates := []time.Time{invoice.IssueDate}
	if input.IssueDate != nil {
		if err := validateDate(*input.IssueDate); err != nil {
			return nil, err
		}
		dates = append(dates, *input.IssueDate)
	}
	if err := uc.guard.EnsureOpen(ctx, dates...); err != nil {
		return nil, err
	}

	if input.Amount != nil {
		if err := validateAmount(*input.Amount); err != nil {
			return nil, err
		}
		invoice.Amount = valueobject.NewRawAmount(*input.Amount)
	}
	if input.IssueDate != nil {
		invoice.IssueDate = *input.IssueDate
	}
	if input.Status != nil {
		invoice.Status = *input.Status
	}
	if input.ClearPaidDate {
		invoice.PaidDate = nil
	} else if input.PaidDate != nil {
		invoice.PaidDate = input.PaidDate
	}
	invoice.UpdatedAt = time.Now().UTC()

	if err := uc.records.UpdateInvoice(ctx, invoice); err != nil {
		return nil, fmt.Errorf("failed to update invoice: %w", err)
	}

	return &UpdateInvoiceOutput{Invoice: invoice}, nil
}

func findInvoice(ctx context.Context, records adapter.RecordWriter, id uuid.UUID) (*entity.Invoice, error) {
	invoice, err := records.FindInvoiceByID(ctx, id)
	if err != nil {
		if errors.Is(err, domainerror.ErrInvoiceNotFound) {
			return nil, domainerror.NewRecordError(
				domainerror.ErrCodeInvoiceNotFound,
				"invoice not found",
				domainerror.ErrInvoiceNotFound,
			)
		}
		return nil, fmt.Errorf("failed to find invoice: %w", err)
	}
	return invoice, nil
}
