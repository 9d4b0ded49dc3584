package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/backoffice/backend/internal/domain/entity"
)

// CreateInvoiceRequest represents the request body for creating an invoice.
type CreateInvoiceRequest struct {
	InvoiceNumber string           `json:"invoice_number" binding:"required,max=50"`
	ClientID      *string          `json:"client_id" binding:"omitempty,uuid"`
	Amount        *decimal.Decimal `json:"amount" binding:"required"`
	Currency      string           `json:"currency" binding:"omitempty,len=3"`
	IssueDate     string           `json:"issue_date" binding:"required"`
	Status        string           `json:"status" binding:"max=30"`
	PaidDate      *string          `json:"paid_date"`
}

// UpdateInvoiceRequest represents the request body for updating an invoice.
// A paid_date of "" clears the paid date.
type UpdateInvoiceRequest struct {
	Amount    *decimal.Decimal `json:"amount"`
	IssueDate *string          `json:"issue_date"`
	Status    *string          `json:"status" binding:"omitempty,max=30"`
	PaidDate  *string          `json:"paid_date"`
}

// CreateExpenseRequest represents the request body for creating an expense.
type CreateExpenseRequest struct {
	Description string           `json:"description" binding:"required,max=255"`
	Amount      *decimal.Decimal `json:"amount" binding:"required"`
	Date        string           `json:"date" binding:"required"`
	Category    string           `json:"category" binding:"max=50"`
	Status      string           `json:"status" binding:"max=30"`
}

// UpdateExpenseRequest represents the request body for updating an expense.
type UpdateExpenseRequest struct {
	Description *string          `json:"description" binding:"omitempty,max=255"`
	Amount      *decimal.Decimal `json:"amount"`
	Date        *string          `json:"date"`
	Category    *string          `json:"category" binding:"omitempty,max=50"`
	Status      *string          `json:"status" binding:"omitempty,max=30"`
}

// InvoiceResponse represents an invoice in API responses. Amount is the stored
// value as text.
type InvoiceResponse struct {
	ID            string    `json:"id"`
	InvoiceNumber string    `json:"invoice_number"`
	ClientID      *string   `json:"client_id,omitempty"`
	Amount        string    `json:"amount"`
	Currency      string    `json:"currency"`
	IssueDate     string    `json:"issue_date"`
	Status        string    `json:"status"`
	PaidDate      *string   `json:"paid_date,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// ExpenseResponse represents an expense in API responses.
type ExpenseResponse struct {
	ID          string    `json:"id"`
	Description string    `json:"description"`
	Amount      string    `json:"amount"`
	Date        string    `json:"date"`
	Category    string    `json:"category"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// ToInvoiceResponse converts a domain Invoice entity to an InvoiceResponse DTO.
func ToInvoiceResponse(i *entity.Invoice) InvoiceResponse {
	resp := InvoiceResponse{
		ID:            i.ID.String(),
		InvoiceNumber: i.InvoiceNumber,
		Amount:        string(i.Amount),
		Currency:      i.Currency,
		IssueDate:     i.IssueDate.Format(DateLayout),
		Status:        i.Status,
		CreatedAt:     i.CreatedAt,
		UpdatedAt:     i.UpdatedAt,
	}
	if i.ClientID != nil {
		id := i.ClientID.String()
		resp.ClientID = &id
	}
	if i.PaidDate != nil {
		paid := i.PaidDate.Format(DateLayout)
		resp.PaidDate = &paid
	}
	return resp
}

// ToExpenseResponse converts a domain Expense entity to an ExpenseResponse DTO.
func ToExpenseResponse(e *entity.Expense) ExpenseResponse {
	return ExpenseResponse{
		ID:          e.ID.String(),
		Description: e.Description,
		Amount:      string(e.Amount),
		Date:        e.Date.Format(DateLayout),
		Category:    e.Category,
		Status:      e.Status,
		CreatedAt:   e.CreatedAt,
		UpdatedAt:   e.UpdatedAt,
	}
}
