package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/backoffice/backend/internal/domain/entity"
)

// CloseQuarterRequest represents the request body for closing a quarter.
type CloseQuarterRequest struct {
	WithdrawalAmount *decimal.Decimal `json:"withdrawal_amount" binding:"required"`
}

// SetTargetRequest represents the request body for setting a quarter target.
type SetTargetRequest struct {
	Value *decimal.Decimal `json:"value" binding:"required"`
}

// SnapshotResponse represents the financial position frozen at closing.
type SnapshotResponse struct {
	ClosedAt          time.Time       `json:"closed_at"`
	ClosedBy          string          `json:"closed_by"`
	TotalRevenue      decimal.Decimal `json:"total_revenue"`
	TotalExpenses     decimal.Decimal `json:"total_expenses"`
	TotalSalaries     decimal.Decimal `json:"total_salaries"`
	CashOnHand        decimal.Decimal `json:"cash_on_hand"`
	WithdrawalAmount  decimal.Decimal `json:"withdrawal_amount"`
	ExcludedRecordIDs []string        `json:"excluded_record_ids"`
}

// QuarterResponse represents a quarter in API responses.
type QuarterResponse struct {
	ID         string                     `json:"id"`
	QuarterID  string                     `json:"quarter_id"`
	Number     int                        `json:"number"`
	Year       int                        `json:"year"`
	StartDate  string                     `json:"start_date"`
	EndDate    string                     `json:"end_date"`
	Status     string                     `json:"status"`
	Targets    map[string]decimal.Decimal `json:"targets"`
	Snapshot   *SnapshotResponse          `json:"snapshot,omitempty"`
	ArchivedAt *time.Time                 `json:"archived_at,omitempty"`
}

// CloseQuarterResponse represents the response for closing a quarter.
type CloseQuarterResponse struct {
	Success   bool              `json:"success"`
	Quarter   QuarterResponse   `json:"quarter"`
	Anomalies []AnomalyResponse `json:"anomalies"`
}

// QuarterStatusResponse represents the response for the quarter status check.
type QuarterStatusResponse struct {
	QuarterID string `json:"quarter_id"`
	Closed    bool   `json:"closed"`
}

// TargetResponse represents a stored quarter target.
type TargetResponse struct {
	QuarterID string          `json:"quarter_id"`
	Metric    string          `json:"metric"`
	Value     decimal.Decimal `json:"value"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// ToQuarterResponse converts a domain Quarter entity to a QuarterResponse DTO.
// Every known metric is listed in Targets, with zero when unset.
func ToQuarterResponse(q *entity.Quarter) QuarterResponse {
	targets := make(map[string]decimal.Decimal, len(entity.TargetMetrics))
	for _, metric := range entity.TargetMetrics {
		targets[string(metric)] = q.Target(metric)
	}

	resp := QuarterResponse{
		ID:        q.ID.String(),
		QuarterID: q.QuarterID,
		Number:    q.Number,
		Year:      q.Year,
		StartDate: q.StartDate.Format(DateLayout),
		EndDate:   q.EndDate.Format(DateLayout),
		Status:    string(q.Status()),
		Targets:   targets,
	}

	if s, ok := q.Snapshot(); ok {
		excluded := s.ExcludedRecordIDs
		if excluded == nil {
			excluded = []string{}
		}
		resp.Snapshot = &SnapshotResponse{
			ClosedAt:          s.ClosedAt,
			ClosedBy:          s.ClosedBy,
			TotalRevenue:      s.TotalRevenue,
			TotalExpenses:     s.TotalExpenses,
			TotalSalaries:     s.TotalSalaries,
			CashOnHand:        s.CashOnHand,
			WithdrawalAmount:  s.WithdrawalAmount,
			ExcludedRecordIDs: excluded,
		}
	}
	if a, ok := q.State.(entity.ArchivedState); ok {
		archivedAt := a.ArchivedAt
		resp.ArchivedAt = &archivedAt
	}

	return resp
}

// ToTargetResponse converts a domain Target entity to a TargetResponse DTO.
func ToTargetResponse(t *entity.Target) TargetResponse {
	return TargetResponse{
		QuarterID: t.QuarterID,
		Metric:    string(t.Metric),
		Value:     t.Value,
		UpdatedAt: t.UpdatedAt,
	}
}
