// Package entity defines the core business entities for the domain layer.
package entity

import (
	"strings"
	"time"
)

// PaymentStatusPaid is the status value that marks a record as paid.
const PaymentStatusPaid = "paid"

// Payable is a record that can be settled: invoices and salary payments.
type Payable interface {
	PaymentStatus() string
	PaymentDate() *time.Time
}

// IsPaid reports whether a payable record counts as paid.
//
// Status and paid date are maintained independently and can disagree, so either
// one is enough: the status equals "paid" ignoring case, or a paid date is set.
func IsPaid(p Payable) bool {
	if strings.EqualFold(strings.TrimSpace(p.PaymentStatus()), PaymentStatusPaid) {
		return true
	}
	paidDate := p.PaymentDate()
	return paidDate != nil && !paidDate.IsZero()
}
