// Package entity defines the core business entities for the domain layer.
package entity

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/backoffice/backend/internal/domain/valueobject"
)

// QuarterStatus is the persisted form of a quarter's state.
type QuarterStatus string

const (
	QuarterStatusActive   QuarterStatus = "active"
	QuarterStatusClosed   QuarterStatus = "closed"
	QuarterStatusArchived QuarterStatus = "archived"
)

var (
	// ErrIllegalQuarterTransition is returned when a state change is not allowed from the current state.
	ErrIllegalQuarterTransition = errors.New("illegal quarter state transition")
)

// QuarterState is one of ActiveState, ClosedState or ArchivedState.
// The unexported marker method keeps the set closed.
type QuarterState interface {
	Status() QuarterStatus
	quarterState()
}

// ActiveState is the state of a quarter still open for writes.
type ActiveState struct{}

// ClosedState holds the snapshot frozen when the quarter was closed.
type ClosedState struct {
	Snapshot ClosingSnapshot
}

// ArchivedState is a closed quarter moved out of day-to-day reporting.
type ArchivedState struct {
	Snapshot   ClosingSnapshot
	ArchivedAt time.Time
}

func (ActiveState) Status() QuarterStatus   { return QuarterStatusActive }
func (ClosedState) Status() QuarterStatus   { return QuarterStatusClosed }
func (ArchivedState) Status() QuarterStatus { return QuarterStatusArchived }

func (ActiveState) quarterState()   {}
func (ClosedState) quarterState()   {}
func (ArchivedState) quarterState() {}

// ClosingSnapshot is the financial position recorded when a quarter is closed.
type ClosingSnapshot struct {
	ClosedAt          time.Time
	ClosedBy          string
	TotalRevenue      decimal.Decimal
	TotalExpenses     decimal.Decimal
	TotalSalaries     decimal.Decimal
	CashOnHand        decimal.Decimal
	WithdrawalAmount  decimal.Decimal
	ExcludedRecordIDs []string
}

// Quarter is one fiscal period and the targets set for it.
type Quarter struct {
	ID        uuid.UUID
	QuarterID string
	Number    int
	Year      int
	StartDate time.Time
	EndDate   time.Time
	Targets   map[TargetMetric]decimal.Decimal
	State     QuarterState
	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewQuarter creates an active quarter with zero targets for the given period.
func NewQuarter(period valueobject.QuarterPeriod) *Quarter {
	now := time.Now().UTC()

	return &Quarter{
		ID:        uuid.New(),
		QuarterID: period.QuarterID,
		Number:    period.Number,
		Year:      period.Year,
		StartDate: period.StartDate,
		EndDate:   period.EndDate,
		Targets:   make(map[TargetMetric]decimal.Decimal),
		State:     ActiveState{},
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// Status returns the quarter's current status.
func (q *Quarter) Status() QuarterStatus {
	if q.State == nil {
		return QuarterStatusActive
	}
	return q.State.Status()
}

// IsActive reports whether the quarter still accepts writes.
func (q *Quarter) IsActive() bool {
	return q.Status() == QuarterStatusActive
}

// IsLocked reports whether writes into the quarter's period must be refused.
func (q *Quarter) IsLocked() bool {
	return !q.IsActive()
}

// Period returns the quarter's date range.
func (q *Quarter) Period() valueobject.QuarterPeriod {
	return valueobject.NewQuarterPeriod(q.Number, q.Year)
}

// Snapshot returns the closing snapshot, if the quarter has been closed.
func (q *Quarter) Snapshot() (ClosingSnapshot, bool) {
	switch s := q.State.(type) {
	case ClosedState:
		return s.Snapshot, true
	case ArchivedState:
		return s.Snapshot, true
	default:
		return ClosingSnapshot{}, false
	}
}

// Target returns the stored target for a metric, zero when unset.
func (q *Quarter) Target(metric TargetMetric) decimal.Decimal {
	if v, ok := q.Targets[metric]; ok {
		return v
	}
	return decimal.Zero
}

// Close moves an active quarter to closed with the given snapshot.
func (q *Quarter) Close(snapshot ClosingSnapshot) error {
	if !q.IsActive() {
		return ErrIllegalQuarterTransition
	}
	q.State = ClosedState{Snapshot: snapshot}
	q.UpdatedAt = snapshot.ClosedAt
	return nil
}

// Archive moves a closed quarter to archived.
func (q *Quarter) Archive(at time.Time) error {
	closed, ok := q.State.(ClosedState)
	if !ok {
		return ErrIllegalQuarterTransition
	}
	q.State = ArchivedState{Snapshot: closed.Snapshot, ArchivedAt: at}
	q.UpdatedAt = at
	return nil
}
