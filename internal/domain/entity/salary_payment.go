// Package entity defines the core business entities for the domain layer.
package entity

import (
	"time"

	"github.com/google/uuid"

	"github.com/backoffice/backend/internal/domain/valueobject"
)

// SalaryPayment is one month's pay for one employee.
type SalaryPayment struct {
	ID         uuid.UUID
	EmployeeID uuid.UUID
	Amount     valueobject.RawAmount
	NetAmount  valueobject.RawAmount // empty when only the gross amount is known
	Month      string                // YYYY-MM
	Status     string
	PaidDate   *time.Time
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// PaymentStatus implements Payable.
func (s *SalaryPayment) PaymentStatus() string { return s.Status }

// PaymentDate implements Payable.
func (s *SalaryPayment) PaymentDate() *time.Time { return s.PaidDate }

// PayableAmount returns the net amount, or the gross amount when net is absent.
func (s *SalaryPayment) PayableAmount() valueobject.RawAmount {
	if s.NetAmount.IsEmpty() {
		return s.Amount
	}
	return s.NetAmount
}
