// Package finance computes quarter-scoped financial figures from raw records.
package finance

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"github.com/backoffice/backend/internal/application/adapter"
	"github.com/backoffice/backend/internal/domain/entity"
	"github.com/backoffice/backend/internal/domain/valueobject"
)

var hundred = decimal.NewFromInt(100)

// QuarterStats are the aggregate figures of one quarter.
type QuarterStats struct {
	QuarterID         string
	QuarterlyRevenue  decimal.Decimal
	TotalExpenses     decimal.Decimal
	TotalSalaries     decimal.Decimal
	CashOnHand        decimal.Decimal
	Profit            decimal.Decimal
	ProfitMargin      decimal.Decimal // percent, one decimal place
	ActiveClients     int
	InvoicesPaidCount int
}

// zeroStats is the default returned when the figures are unknown.
func zeroStats(quarterID string) QuarterStats {
	return QuarterStats{
		QuarterID:        quarterID,
		QuarterlyRevenue: decimal.Zero,
		TotalExpenses:    decimal.Zero,
		TotalSalaries:    decimal.Zero,
		CashOnHand:       decimal.Zero,
		Profit:           decimal.Zero,
		ProfitMargin:     decimal.Zero,
	}
}

// StatsResult is QuarterStats plus how far they can be trusted.
// When Status is ResultFailed, Stats holds zeros that mean "unknown".
type StatsResult struct {
	Stats     QuarterStats
	Status    valueobject.ResultStatus
	Anomalies []Anomaly
	Err       error
}

// recordSet holds the four collections read for one quarter.
type recordSet struct {
	invoices []*entity.Invoice
	expenses []*entity.Expense
	salaries []*entity.SalaryPayment
	clients  []*entity.Client
}

// Aggregator computes QuarterStats from the record store.
// It keeps no state between calls; every figure is recomputed.
type Aggregator struct {
	records adapter.RecordReader
	limit   int
}

// NewAggregator creates a new Aggregator. limit caps each collection read; zero means adapter.DefaultRecordLimit.
func NewAggregator(records adapter.RecordReader, limit int) *Aggregator {
	if limit <= 0 {
		limit = adapter.DefaultRecordLimit
	}
	return &Aggregator{
		records: records,
		limit:   limit,
	}
}

// Compute reads the quarter's records and returns its stats.
// Any read failure is returned as an error; anomalous records are excluded and reported.
func (a *Aggregator) Compute(ctx context.Context, period valueobject.QuarterPeriod) (*QuarterStats, []Anomaly, error) {
	set, err := a.fetch(ctx, period)
	if err != nil {
		return nil, nil, err
	}

	stats, anomalies := summarize(ctx, period, set)
	return &stats, anomalies.list(), nil
}

// Stats is Compute for display purposes: it never returns an error, and reports
// a read failure through the result's status instead.
func (a *Aggregator) Stats(ctx context.Context, period valueobject.QuarterPeriod) StatsResult {
	stats, anomalies, err := a.Compute(ctx, period)
	if err != nil {
		slog.WarnContext(ctx, "Quarter stats unavailable, returning defaults",
			"quarter_id", period.QuarterID,
			"error", err,
		)
		return StatsResult{
			Stats:  zeroStats(period.QuarterID),
			Status: valueobject.ResultFailed,
			Err:    err,
		}
	}

	return StatsResult{
		Stats:     *stats,
		Status:    statusFor(anomalies),
		Anomalies: anomalies,
	}
}

// fetch reads the four collections concurrently. They are independent read
// sets and are not required to observe a single consistent snapshot.
func (a *Aggregator) fetch(ctx context.Context, period valueobject.QuarterPeriod) (*recordSet, error) {
	from := period.StartDate
	to := period.EndOfRange()
	set := &recordSet{}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		invoices, err := a.records.ListInvoices(gctx, adapter.RecordFilter{From: &from, To: &to, Limit: a.limit})
		if err != nil {
			return fmt.Errorf("failed to list %s: %w", adapter.CollectionInvoices, err)
		}
		a.warnIfTruncated(gctx, adapter.CollectionInvoices, period, len(invoices))
		set.invoices = invoices
		return nil
	})

	g.Go(func() error {
		expenses, err := a.records.ListExpenses(gctx, adapter.RecordFilter{From: &from, To: &to, Limit: a.limit})
		if err != nil {
			return fmt.Errorf("failed to list %s: %w", adapter.CollectionExpenses, err)
		}
		a.warnIfTruncated(gctx, adapter.CollectionExpenses, period, len(expenses))
		set.expenses = expenses
		return nil
	})

	g.Go(func() error {
		salaries, err := a.records.ListSalaryPayments(gctx, adapter.RecordFilter{Months: period.Months(), Limit: a.limit})
		if err != nil {
			return fmt.Errorf("failed to list %s: %w", adapter.CollectionSalaryPayments, err)
		}
		a.warnIfTruncated(gctx, adapter.CollectionSalaryPayments, period, len(salaries))
		set.salaries = salaries
		return nil
	})

	g.Go(func() error {
		clients, err := a.records.ListClients(gctx, adapter.RecordFilter{Limit: a.limit})
		if err != nil {
			return fmt.Errorf("failed to list %s: %w", adapter.CollectionClients, err)
		}
		a.warnIfTruncated(gctx, adapter.CollectionClients, period, len(clients))
		set.clients = clients
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return set, nil
}

func (a *Aggregator) warnIfTruncated(ctx context.Context, collection string, period valueobject.QuarterPeriod, n int) {
	if n >= a.limit {
		slog.WarnContext(ctx, "Record list hit the fetch limit, totals may be incomplete",
			"collection", collection,
			"quarter_id", period.QuarterID,
			"limit", a.limit,
		)
	}
}

// summarize applies the quarter's predicates to a record set.
func summarize(ctx context.Context, period valueobject.QuarterPeriod, set *recordSet) (QuarterStats, *anomalyLog) {
	log := newAnomalyLog(ctx)
	stats := zeroStats(period.QuarterID)

	for _, inv := range set.invoices {
		if !period.Contains(inv.IssueDate) || !entity.IsPaid(inv) {
			continue
		}
		amount, ok := log.amount(adapter.CollectionInvoices, inv.ID.String(), inv.Amount)
		if !ok {
			continue
		}
		stats.QuarterlyRevenue = stats.QuarterlyRevenue.Add(amount)
		stats.InvoicesPaidCount++
	}

	for _, exp := range set.expenses {
		if !period.Contains(exp.Date) {
			continue
		}
		if amount, ok := log.amount(adapter.CollectionExpenses, exp.ID.String(), exp.Amount); ok {
			stats.TotalExpenses = stats.TotalExpenses.Add(amount)
		}
	}

	for _, sal := range set.salaries {
		if !period.ContainsMonth(sal.Month) || !entity.IsPaid(sal) {
			continue
		}
		if amount, ok := log.amount(adapter.CollectionSalaryPayments, sal.ID.String(), sal.PayableAmount()); ok {
			stats.TotalSalaries = stats.TotalSalaries.Add(amount)
		}
	}

	for _, c := range set.clients {
		if c.IsActive() {
			stats.ActiveClients++
		}
	}

	stats.CashOnHand = CashOnHand(stats.QuarterlyRevenue, stats.TotalExpenses, stats.TotalSalaries)
	stats.Profit = stats.CashOnHand
	stats.ProfitMargin = ProfitMargin(stats.Profit, stats.QuarterlyRevenue)

	return stats, log
}

// CashOnHand is revenue minus expenses minus salaries. It may be negative.
func CashOnHand(revenue, expenses, salaries decimal.Decimal) decimal.Decimal {
	return revenue.Sub(expenses).Sub(salaries)
}

// ProfitMargin is profit as a percentage of revenue rounded to one decimal, or zero without revenue.
func ProfitMargin(profit, revenue decimal.Decimal) decimal.Decimal {
	if !revenue.IsPositive() {
		return decimal.Zero
	}
	return profit.Div(revenue).Mul(hundred).Round(1)
}

func statusFor(anomalies []Anomaly) valueobject.ResultStatus {
	if len(anomalies) > 0 {
		return valueobject.ResultDegraded
	}
	return valueobject.ResultOK
}
