package quarter

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/shopspring/decimal"

	"github.com/backoffice/backend/internal/application/adapter"
	"github.com/backoffice/backend/internal/application/usecase/finance"
	"github.com/backoffice/backend/internal/domain/entity"
	domainerror "github.com/backoffice/backend/internal/domain/error"
	"github.com/backoffice/backend/internal/domain/valueobject"
)

// StatsComputer computes quarter stats and fails on any read error.
type StatsComputer interface {
	Compute(ctx context.Context, period valueobject.QuarterPeriod) (*finance.QuarterStats, []finance.Anomaly, error)
}

// CloseQuarterInput represents the input for closing a quarter.
type CloseQuarterInput struct {
	QuarterID        string
	WithdrawalAmount decimal.Decimal
	ClosedBy         string
}

// CloseQuarterOutput represents the output of closing a quarter.
type CloseQuarterOutput struct {
	Success   bool
	Quarter   *entity.Quarter
	Anomalies []finance.Anomaly
}

// CloseQuarterUseCase closes an active quarter with an owner withdrawal.
type CloseQuarterUseCase struct {
	quarterRepo adapter.QuarterRepository
	stats       StatsComputer
	publisher   adapter.QuarterEventPublisher
	clock       adapter.Clock
}

// NewCloseQuarterUseCase creates a new CloseQuarterUseCase instance.
// publisher may be nil when no one listens for closed quarters.
func NewCloseQuarterUseCase(
	quarterRepo adapter.QuarterRepository,
	stats StatsComputer,
	publisher adapter.QuarterEventPublisher,
	clock adapter.Clock,
) *CloseQuarterUseCase {
	return &CloseQuarterUseCase{
		quarterRepo: quarterRepo,
		stats:       stats,
		publisher:   publisher,
		clock:       clock,
	}
}

// Execute closes the quarter. Every rejection leaves the quarter unchanged.
func (uc *CloseQuarterUseCase) Execute(ctx context.Context, input CloseQuarterInput) (*CloseQuarterOutput, error) {
	// Validate input
	period, err := parseQuarterID(input.QuarterID)
	if err != nil {
		return nil, err
	}
	if input.WithdrawalAmount.IsNegative() {
		return nil, domainerror.NewQuarterError(
			domainerror.ErrCodeNegativeWithdrawal,
			"withdrawal amount must be zero or greater",
			domainerror.ErrNegativeWithdrawal,
		)
	}

	// Load quarter, creating it if this is the first time it is touched
	q, err := uc.quarterRepo.CreateIfAbsent(ctx, entity.NewQuarter(period))
	if err != nil {
		return nil, fmt.Errorf("failed to get or create quarter: %w", err)
	}
	if !q.IsActive() {
		return nil, notActiveError(q.QuarterID, q.Status())
	}

	// Take a fresh snapshot, never a cached one
	stats, anomalies, err := uc.stats.Compute(ctx, period)
	if err != nil {
		return nil, fmt.Errorf("failed to compute closing snapshot: %w", err)
	}

	if input.WithdrawalAmount.GreaterThan(stats.CashOnHand) {
		return nil, domainerror.NewQuarterError(
			domainerror.ErrCodeWithdrawalExceedsCash,
			fmt.Sprintf("withdrawal amount %s exceeds cash on hand %s",
				input.WithdrawalAmount.StringFixed(2), stats.CashOnHand.StringFixed(2)),
			domainerror.ErrWithdrawalExceedsCash,
		)
	}

	snapshot := entity.ClosingSnapshot{
		ClosedAt:          uc.clock.Now().UTC(),
		ClosedBy:          input.ClosedBy,
		TotalRevenue:      stats.QuarterlyRevenue,
		TotalExpenses:     stats.TotalExpenses,
		TotalSalaries:     stats.TotalSalaries,
		CashOnHand:        stats.CashOnHand,
		WithdrawalAmount:  input.WithdrawalAmount,
		ExcludedRecordIDs: finance.AnomalyIDs(anomalies),
	}

	// Conditional update: only one concurrent close can win
	closed, err := uc.quarterRepo.CloseIfActive(ctx, q.QuarterID, snapshot)
	if err != nil {
		return nil, fmt.Errorf("failed to close quarter: %w", err)
	}
	if !closed {
		return nil, notActiveError(q.QuarterID, entity.QuarterStatusClosed)
	}

	if err := q.Close(snapshot); err != nil {
		return nil, fmt.Errorf("failed to apply close to quarter: %w", err)
	}

	slog.InfoContext(ctx, "Quarter closed",
		"quarter_id", q.QuarterID,
		"closed_by", input.ClosedBy,
		"cash_on_hand", snapshot.CashOnHand.String(),
		"withdrawal_amount", snapshot.WithdrawalAmount.String(),
		"excluded_records", len(snapshot.ExcludedRecordIDs),
	)

	uc.publish(ctx, q.QuarterID, snapshot)

	return &CloseQuarterOutput{
		Success:   true,
		Quarter:   q,
		Anomalies: anomalies,
	}, nil
}

// publish announces the close. The quarter is already closed, so failures are only logged.
func (uc *CloseQuarterUseCase) publish(ctx context.Context, quarterID string, snapshot entity.ClosingSnapshot) {
	if uc.publisher == nil {
		return
	}

	event := adapter.QuarterClosedEvent{
		QuarterID:        quarterID,
		ClosedAt:         snapshot.ClosedAt,
		ClosedBy:         snapshot.ClosedBy,
		TotalRevenue:     snapshot.TotalRevenue,
		TotalExpenses:    snapshot.TotalExpenses,
		TotalSalaries:    snapshot.TotalSalaries,
		CashOnHand:       snapshot.CashOnHand,
		WithdrawalAmount: snapshot.WithdrawalAmount,
		ExcludedRecords:  len(snapshot.ExcludedRecordIDs),
	}

	if err := uc.publisher.PublishQuarterClosed(ctx, event); err != nil {
		slog.WarnContext(ctx, "Failed to publish quarter closed event",
			"quarter_id", quarterID,
			"error", err,
		)
	}
}

func notActiveError(quarterID string, status entity.QuarterStatus) error {
	return domainerror.NewQuarterError(
		domainerror.ErrCodeQuarterNotActive,
		fmt.Sprintf("quarter %s is %s and can no longer be closed", quarterID, status),
		domainerror.ErrQuarterNotActive,
	)
}
