// Package entity defines the core business entities for the domain layer.
package entity

import (
	"time"

	"github.com/google/uuid"

	"github.com/backoffice/backend/internal/domain/valueobject"
)

// Expense is money spent by the business. Its status does not affect totals.
type Expense struct {
	ID          uuid.UUID
	Description string
	Amount      valueobject.RawAmount
	Date        time.Time
	Category    string
	Status      string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// NewExpense creates a new Expense entity.
func NewExpense(description string, amount valueobject.RawAmount, date time.Time, category, status string) *Expense {
	now := time.Now().UTC()

	return &Expense{
		ID:          uuid.New(),
		Description: description,
		Amount:      amount,
		Date:        date,
		Category:    category,
		Status:      status,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}
