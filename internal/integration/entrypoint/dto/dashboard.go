// Package dto defines data transfer objects for API requests and responses.
package dto

import (
	"github.com/shopspring/decimal"

	"github.com/backoffice/backend/internal/application/usecase/dashboard"
	"github.com/backoffice/backend/internal/application/usecase/finance"
	"github.com/backoffice/backend/internal/domain/valueobject"
)

// DateLayout is the layout of every date in requests and responses.
const DateLayout = "2006-01-02"

// Monetary values are serialized as decimal strings.

// PeriodResponse represents a quarter's date range.
type PeriodResponse struct {
	QuarterID string `json:"quarter_id"`
	Number    int    `json:"number"`
	Year      int    `json:"year"`
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
}

// AnomalyResponse represents a record excluded from the totals.
type AnomalyResponse struct {
	Collection string `json:"collection"`
	RecordID   string `json:"record_id"`
	RawValue   string `json:"raw_value"`
	Reason     string `json:"reason"`
}

// DashboardStatsResponse represents the response for GET /dashboard/stats.
type DashboardStatsResponse struct {
	Period           PeriodResponse    `json:"period"`
	QuarterStatus    string            `json:"quarter_status,omitempty"`
	QuarterlyRevenue decimal.Decimal   `json:"quarterly_revenue"`
	ProfitMargin     decimal.Decimal   `json:"profit_margin"`
	CashOnHand       decimal.Decimal   `json:"cash_on_hand"`
	ActiveClients    int               `json:"active_clients"`
	InvoicesPaid     int               `json:"invoices_paid"`
	TotalExpenses    decimal.Decimal   `json:"total_expenses"`
	TotalSalaries    decimal.Decimal   `json:"total_salaries"`
	Status           string            `json:"status"`
	Anomalies        []AnomalyResponse `json:"anomalies"`
}

// KPIResponse represents a single KPI.
type KPIResponse struct {
	ID           string          `json:"id"`
	Name         string          `json:"name"`
	Type         string          `json:"type"`
	CurrentValue decimal.Decimal `json:"current_value"`
	TargetValue  decimal.Decimal `json:"target_value"`
	Progress     float64         `json:"progress"`
	ChangeType   string          `json:"change_type,omitempty"`
	Description  string          `json:"description"`
}

// DashboardKPIsResponse represents the response for GET /dashboard/kpis.
type DashboardKPIsResponse struct {
	Period PeriodResponse `json:"period"`
	KPIs   []KPIResponse  `json:"kpis"`
	Status string         `json:"status"`
}

// TargetProgressResponse represents progress toward one quarter target.
type TargetProgressResponse struct {
	Metric   string          `json:"metric"`
	Current  decimal.Decimal `json:"current"`
	Target   decimal.Decimal `json:"target"`
	Progress float64         `json:"progress"`
}

// DashboardTargetsResponse represents the response for GET /dashboard/targets.
type DashboardTargetsResponse struct {
	Period  PeriodResponse           `json:"period"`
	Targets []TargetProgressResponse `json:"targets"`
	Status  string                   `json:"status"`
}

// ToPeriodResponse converts a QuarterPeriod to a PeriodResponse DTO.
func ToPeriodResponse(p valueobject.QuarterPeriod) PeriodResponse {
	return PeriodResponse{
		QuarterID: p.QuarterID,
		Number:    p.Number,
		Year:      p.Year,
		StartDate: p.StartDate.Format(DateLayout),
		EndDate:   p.EndDate.Format(DateLayout),
	}
}

// ToAnomalyResponses converts anomalies to DTOs. The result is never nil.
func ToAnomalyResponses(anomalies []finance.Anomaly) []AnomalyResponse {
	out := make([]AnomalyResponse, len(anomalies))
	for i, a := range anomalies {
		out[i] = AnomalyResponse{
			Collection: a.Collection,
			RecordID:   a.RecordID,
			RawValue:   a.RawValue,
			Reason:     string(a.Reason),
		}
	}
	return out
}

// ToDashboardStatsResponse converts a GetDashboardStatsOutput to its DTO.
func ToDashboardStatsResponse(output *dashboard.GetDashboardStatsOutput) DashboardStatsResponse {
	return DashboardStatsResponse{
		Period:           ToPeriodResponse(output.Period),
		QuarterStatus:    string(output.QuarterStatus),
		QuarterlyRevenue: output.QuarterlyRevenue,
		ProfitMargin:     output.ProfitMargin,
		CashOnHand:       output.CashOnHand,
		ActiveClients:    output.ActiveClients,
		InvoicesPaid:     output.InvoicesPaid,
		TotalExpenses:    output.TotalExpenses,
		TotalSalaries:    output.TotalSalaries,
		Status:           string(output.Status),
		Anomalies:        ToAnomalyResponses(output.Anomalies),
	}
}

// ToDashboardKPIsResponse converts a GetDashboardKPIsOutput to its DTO.
func ToDashboardKPIsResponse(output *dashboard.GetDashboardKPIsOutput) DashboardKPIsResponse {
	kpis := make([]KPIResponse, len(output.KPIs))
	for i, k := range output.KPIs {
		kpis[i] = KPIResponse{
			ID:           k.ID,
			Name:         k.Name,
			Type:         string(k.Type),
			CurrentValue: k.CurrentValue,
			TargetValue:  k.TargetValue,
			Progress:     k.Progress,
			ChangeType:   string(k.ChangeType),
			Description:  k.Description,
		}
	}

	return DashboardKPIsResponse{
		Period: ToPeriodResponse(output.Period),
		KPIs:   kpis,
		Status: string(output.Status),
	}
}

// ToDashboardTargetsResponse converts a GetTargetProgressOutput to its DTO.
func ToDashboardTargetsResponse(output *dashboard.GetTargetProgressOutput) DashboardTargetsResponse {
	targets := make([]TargetProgressResponse, len(output.Targets))
	for i, t := range output.Targets {
		targets[i] = TargetProgressResponse{
			Metric:   string(t.Metric),
			Current:  t.Current,
			Target:   t.Target,
			Progress: t.Progress,
		}
	}

	return DashboardTargetsResponse{
		Period:  ToPeriodResponse(output.Period),
		Targets: targets,
		Status:  string(output.Status),
	}
}
