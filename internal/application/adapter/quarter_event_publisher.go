// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// QuarterClosedEvent is emitted after a quarter has been closed.
type QuarterClosedEvent struct {
	QuarterID        string          `json:"quarter_id"`
	ClosedAt         time.Time       `json:"closed_at"`
	ClosedBy         string          `json:"closed_by"`
	TotalRevenue     decimal.Decimal `json:"total_revenue"`
	TotalExpenses    decimal.Decimal `json:"total_expenses"`
	TotalSalaries    decimal.Decimal `json:"total_salaries"`
	CashOnHand       decimal.Decimal `json:"cash_on_hand"`
	WithdrawalAmount decimal.Decimal `json:"withdrawal_amount"`
	ExcludedRecords  int             `json:"excluded_records"`
}

// QuarterEventPublisher delivers quarter lifecycle events to interested parties.
type QuarterEventPublisher interface {
	// PublishQuarterClosed announces a closed quarter.
	PublishQuarterClosed(ctx context.Context, event QuarterClosedEvent) error
}
