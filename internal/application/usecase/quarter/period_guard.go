package quarter

import (
	"context"
	"fmt"
	"time"

	"github.com/backoffice/backend/internal/application/adapter"
	domainerror "github.com/backoffice/backend/internal/domain/error"
	"github.com/backoffice/backend/internal/domain/valueobject"
)

// PeriodGuard rejects record writes dated inside a closed or archived quarter.
// The check and the write are not one transaction, so a write racing a close may still land.
type PeriodGuard struct {
	status *IsQuarterClosedUseCase
}

// NewPeriodGuard creates a new PeriodGuard.
func NewPeriodGuard(quarterRepo adapter.QuarterRepository) *PeriodGuard {
	return &PeriodGuard{
		status: NewIsQuarterClosedUseCase(quarterRepo),
	}
}

// EnsureOpen returns a QTR-020003 error when any of the dates falls in a closed quarter.
func (g *PeriodGuard) EnsureOpen(ctx context.Context, dates ...time.Time) error {
	seen := make(map[string]bool, len(dates))
	for _, d := range dates {
		period := valueobject.ResolveQuarter(d)
		if seen[period.QuarterID] {
			continue
		}
		seen[period.QuarterID] = true

		closed, err := g.status.isClosed(ctx, period.QuarterID)
		if err != nil {
			return err
		}
		if closed {
			return domainerror.NewQuarterError(
				domainerror.ErrCodePeriodClosed,
				fmt.Sprintf("%s is closed, records dated %s can no longer be changed",
					period.QuarterID, d.Format(time.DateOnly)),
				domainerror.ErrPeriodClosed,
			)
		}
	}
	return nil
}
