// Package entity defines the core business entities for the domain layer.
package entity

import (
	"time"

	"github.com/google/uuid"

	"github.com/backoffice/backend/internal/domain/valueobject"
)

// Invoice is a bill issued to a client.
type Invoice struct {
	ID            uuid.UUID
	InvoiceNumber string
	ClientID      *uuid.UUID
	Amount        valueobject.RawAmount
	Currency      string
	IssueDate     time.Time
	Status        string // free-form, e.g. "Draft", "Sent", "paid"
	PaidDate      *time.Time
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// NewInvoice creates a new Invoice entity.
func NewInvoice(
	invoiceNumber string,
	clientID *uuid.UUID,
	amount valueobject.RawAmount,
	currency string,
	issueDate time.Time,
	status string,
	paidDate *time.Time,
) *Invoice {
	now := time.Now().UTC()

	return &Invoice{
		ID:            uuid.New(),
		InvoiceNumber: invoiceNumber,
		ClientID:      clientID,
		Amount:        amount,
		Currency:      currency,
		IssueDate:     issueDate,
		Status:        status,
		PaidDate:      paidDate,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
}

// PaymentStatus implements Payable.
func (i *Invoice) PaymentStatus() string { return i.Status }

// PaymentDate implements Payable.
func (i *Invoice) PaymentDate() *time.Time { return i.PaidDate }
