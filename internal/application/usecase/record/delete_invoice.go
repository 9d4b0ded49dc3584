package record

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/backoffice/backend/internal/application/adapter"
)

// DeleteInvoiceInput represents the input for invoice deletion.
type DeleteInvoiceInput struct {
	InvoiceID uuid.UUID
}

// DeleteInvoiceOutput represents the output of invoice deletion.
type DeleteInvoiceOutput struct {
	Success bool
}

// DeleteInvoiceUseCase handles invoice deletion.
type DeleteInvoiceUseCase struct {
	records adapter.RecordWriter
	guard   PeriodGuard
}

// NewDeleteInvoiceUseCase creates a new DeleteInvoiceUseCase instance.
func NewDeleteInvoiceUseCase(records adapter.RecordWriter, guard PeriodGuard) *DeleteInvoiceUseCase {
	return &DeleteInvoiceUseCase{
		records: records,
		guard:   guard,
	}
}

// Execute deletes the invoice unless it belongs to a closed quarter.
func (uc *DeleteInvoiceUseCase) Execute(ctx context.Context, input DeleteInvoiceInput) (*DeleteInvoiceOutput, error) {
	invoice, err := findInvoice(ctx, uc.records, input.InvoiceID)
	if err != nil {
		return nil, err
	}

	if err := uc.guard.EnsureOpen(ctx, invoice.IssueDate); err != nil {
		return nil, err
	}

	if err := uc.records.DeleteInvoice(ctx, invoice.ID); err != nil {
		return nil, fmt.Errorf("failed to delete invoice: %w", err)
	}

	return &DeleteInvoiceOutput{Success: true}, nil
}
