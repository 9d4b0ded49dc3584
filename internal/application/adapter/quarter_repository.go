// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"
	"time"

	"github.com/backoffice/backend/internal/domain/entity"
)

// QuarterRepository defines persistence for quarters and their targets.
//
// The state-changing methods are conditional single statements: they only
// apply when the stored status still matches the expected one, and report
// whether they did.
type QuarterRepository interface {
	// FindByQuarterID retrieves a quarter with its targets. Returns domainerror.ErrQuarterNotFound when absent.
	FindByQuarterID(ctx context.Context, quarterID string) (*entity.Quarter, error)

	// CreateIfAbsent inserts the quarter unless one with the same QuarterID exists,
	// then returns the stored quarter. Safe under concurrent calls.
	CreateIfAbsent(ctx context.Context, quarter *entity.Quarter) (*entity.Quarter, error)

	// CloseIfActive stores the snapshot and sets status closed only if the quarter is active.
	CloseIfActive(ctx context.Context, quarterID string, snapshot entity.ClosingSnapshot) (bool, error)

	// ArchiveIfClosed sets status archived only if the quarter is closed.
	ArchiveIfClosed(ctx context.Context, quarterID string, archivedAt time.Time) (bool, error)

	// UpsertTarget creates or updates the target for (quarter, metric).
	UpsertTarget(ctx context.Context, target *entity.Target) error

	// ListTargets returns every target stored for a quarter.
	ListTargets(ctx context.Context, quarterID string) ([]*entity.Target, error)
}
