// Package record contains invoice and expense write use cases.
package record

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	domainerror "github.com/backoffice/backend/internal/domain/error"
)

// PeriodGuard rejects writes dated inside a closed quarter.
type PeriodGuard interface {
	EnsureOpen(ctx context.Context, dates ...time.Time) error
}

func validateAmount(amount decimal.Decimal) error {
	if amount.IsNegative() {
		return domainerror.NewRecordError(
			domainerror.ErrCodeInvalidAmount,
			"amount must be zero or greater",
			domainerror.ErrInvalidAmount,
		)
	}
	return nil
}

func validateDate(date time.Time) error {
	if date.IsZero() {
		return domainerror.NewRecordError(
			domainerror.ErrCodeMissingRecordDate,
			"date is required",
			domainerror.ErrMissingRecordDate,
		)
	}
	return nil
}
