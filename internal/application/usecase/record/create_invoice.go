package record

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/backoffice/backend/internal/application/adapter"
	"github.com/backoffice/backend/internal/domain/entity"
	domainerror "github.com/backoffice/backend/internal/domain/error"
	"github.com/backoffice/backend/internal/domain/valueobject"
)

// CreateInvoiceInput represents the input for invoice creation.
type CreateInvoiceInput struct {
	InvoiceNumber string
	ClientID      *uuid.UUID
	Amount        decimal.Decimal
	Currency      string
	IssueDate     time.Time
	Status        string
	PaidDate      *time.Time
}

// CreateInvoiceOutput represents the output of invoice creation.
type CreateInvoiceOutput struct {
	Invoice *entity.Invoice
}

// CreateInvoiceUseCase handles invoice creation.
type CreateInvoiceUseCase struct {
	records  adapter.RecordWriter
	guard    PeriodGuard
	currency string
}

// NewCreateInvoiceUseCase creates a new CreateInvoiceUseCase instance.
// defaultCurrency is used when the input leaves the currency empty.
func NewCreateInvoiceUseCase(records adapter.RecordWriter, guard PeriodGuard, defaultCurrency string) *CreateInvoiceUseCase {
	return &CreateInvoiceUseCase{
		records:  records,
		guard:    guard,
		currency: defaultCurrency,
	}
}

// Execute creates the invoice unless its issue date falls in a closed quarter.
func (uc *CreateInvoiceUseCase) Execute(ctx context.Context, input CreateInvoiceInput) (*CreateInvoiceOutput, error) {
	if strings.TrimSpace(input.InvoiceNumber) == "" {
		return nil, domainerror.NewRecordError(
			domainerror.ErrCodeMissingRecordFields,
			"invoice number is required",
			nil,
		)
	}
	if err := validateAmount(input.Amount); err != nil {
		return nil, err
	}
	if err := validateDate(input.IssueDate); err != nil {
		return nil, err
	}

	if err := uc.guard.EnsureOpen(ctx, input.IssueDate); err != nil {
		return nil, err
	}

	currency := input.Currency
	if currency == "" {
		currency = uc.currency
	}

	invoice := entity.NewInvoice(
		input.InvoiceNumber,
		input.ClientID,
		valueobject.NewRawAmount(input.Amount),
		currency,
		input.IssueDate,
		input.Status,
		input.PaidDate,
	)

	if err := uc.records.CreateInvoice(ctx, invoice); err != nil {
		return nil, fmt.Errorf("failed to create invoice: %w", err)
	}

	return &CreateInvoiceOutput{Invoice: invoice}, nil
}
