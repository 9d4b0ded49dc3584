// Package dashboard contains dashboard-related use cases.
package dashboard

import (
	"context"
	"time"

	"github.com/backoffice/backend/internal/application/usecase/finance"
	domainerror "github.com/backoffice/backend/internal/domain/error"
	"github.com/backoffice/backend/internal/domain/valueobject"
)

// StatsProvider computes quarter stats without failing.
type StatsProvider interface {
	Stats(ctx context.Context, period valueobject.QuarterPeriod) finance.StatsResult
}

// KPIProvider computes quarter KPIs without failing.
type KPIProvider interface {
	Compute(ctx context.Context, period valueobject.QuarterPeriod) finance.KPIResult
}

// TargetProgressProvider computes progress towards quarter targets without failing.
type TargetProgressProvider interface {
	Compute(ctx context.Context, period valueobject.QuarterPeriod) finance.TargetProgressResult
}

// periodFor resolves the quarter containing the reference date.
// The reference date is always explicit; callers decide what "today" means.
func periodFor(referenceDate time.Time) (valueobject.QuarterPeriod, error) {
	if referenceDate.IsZero() {
		return valueobject.QuarterPeriod{}, domainerror.NewDashboardError(
			domainerror.ErrCodeMissingReferenceDate,
			"reference date is required",
			domainerror.ErrMissingReferenceDate,
		)
	}
	return valueobject.ResolveQuarter(referenceDate), nil
}
