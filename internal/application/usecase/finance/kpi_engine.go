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

// KPI identifiers, in display order.
const (
	KPIMonthlyRetainer = "monthly_retainer"
	KPIRevenue         = "revenue"
	KPIProfit          = "profit"
	KPICashOnHand      = "cash_on_hand"
	KPIActiveClients   = "active_clients"
)

var (
	profitTargetRatio       = decimal.RequireFromString("0.2")
	cashTargetRatio         = decimal.RequireFromString("0.3")
	activeClientsTargetLift = decimal.NewFromInt(5)
	priorPeriodFactor       = decimal.RequireFromString("0.9")
)

// QuarterResolver returns the stored quarter for a period, creating it when absent.
type QuarterResolver interface {
	Resolve(ctx context.Context, period valueobject.QuarterPeriod) (*entity.Quarter, error)
}

// KPIResult is the KPI list plus how far it can be trusted.
// When Status is ResultFailed, KPIs holds a single zero revenue entry.
type KPIResult struct {
	QuarterID string
	KPIs      []entity.KPI
	Status    valueobject.ResultStatus
	Anomalies []Anomaly
	Err       error
}

// KPIEngine turns quarter stats and stored targets into KPIs.
type KPIEngine struct {
	aggregator *Aggregator
	quarters   QuarterResolver
}

// NewKPIEngine creates a new KPIEngine.
func NewKPIEngine(aggregator *Aggregator, quarters QuarterResolver) *KPIEngine {
	return &KPIEngine{
		aggregator: aggregator,
		quarters:   quarters,
	}
}

// Compute returns the five dashboard KPIs for the period.
func (e *KPIEngine) Compute(ctx context.Context, period valueobject.QuarterPeriod) KPIResult {
	var (
		quarter *entity.Quarter
		set     *recordSet
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		q, err := e.quarters.Resolve(gctx, period)
		if err != nil {
			return fmt.Errorf("failed to resolve quarter: %w", err)
		}
		quarter = q
		return nil
	})
	g.Go(func() error {
		s, err := e.aggregator.fetch(gctx, period)
		if err != nil {
			return err
		}
		set = s
		return nil
	})

	if err := g.Wait(); err != nil {
		slog.WarnContext(ctx, "KPIs unavailable, returning fallback",
			"quarter_id", period.QuarterID,
			"error", err,
		)
		return KPIResult{
			QuarterID: period.QuarterID,
			KPIs:      []entity.KPI{fallbackKPI()},
			Status:    valueobject.ResultFailed,
			Err:       err,
		}
	}

	stats, log := summarize(ctx, period, set)
	retainer := retainerTotal(log, set.clients)
	activeClients := decimal.NewFromInt(int64(stats.ActiveClients))

	kpis := []entity.KPI{
		newKPI(KPIMonthlyRetainer, "Monthly Retainer Revenue", entity.KPITypeCurrency,
			retainer, quarter.Target(entity.TargetMetricRetainerRevenue),
			"Recurring monthly revenue from all client retainers"),
		newKPI(KPIRevenue, "Quarterly Revenue", entity.KPITypeCurrency,
			stats.QuarterlyRevenue, quarter.Target(entity.TargetMetricRevenue),
			"Paid invoices issued this quarter"),
		newKPI(KPIProfit, "Quarterly Profit/Loss", entity.KPITypeCurrency,
			stats.Profit, stats.QuarterlyRevenue.Mul(profitTargetRatio),
			"Revenue minus expenses and salaries"),
		newKPI(KPICashOnHand, "Cash on Hand", entity.KPITypeCurrency,
			stats.CashOnHand, stats.QuarterlyRevenue.Mul(cashTargetRatio),
			"Cash available for withdrawal at quarter close"),
		newKPI(KPIActiveClients, "Active Clients", entity.KPITypeCount,
			activeClients, activeClients.Add(activeClientsTargetLift),
			"Clients currently marked active"),
	}

	anomalies := log.list()
	return KPIResult{
		QuarterID: period.QuarterID,
		KPIs:      kpis,
		Status:    statusFor(anomalies),
		Anomalies: anomalies,
	}
}

// retainerTotal sums the retainer of every client, regardless of status or quarter.
func retainerTotal(log *anomalyLog, clients []*entity.Client) decimal.Decimal {
	total := decimal.Zero
	for _, c := range clients {
		if c.Retainer.IsEmpty() {
			continue
		}
		if amount, ok := log.amount(adapter.CollectionClients, c.ID.String(), c.Retainer); ok {
			total = total.Add(amount)
		}
	}
	return total
}

func newKPI(id, name string, kind entity.KPIType, current, target decimal.Decimal, description string) entity.KPI {
	return entity.KPI{
		ID:           id,
		Name:         name,
		Type:         kind,
		CurrentValue: current,
		TargetValue:  target,
		Progress:     Progress(current, target),
		ChangeType:   changeType(current),
		Description:  description,
	}
}

func fallbackKPI() entity.KPI {
	return entity.KPI{
		ID:           KPIRevenue,
		Name:         "Quarterly Revenue",
		Type:         entity.KPITypeCurrency,
		CurrentValue: decimal.Zero,
		TargetValue:  decimal.Zero,
		Progress:     0,
		ChangeType:   entity.ChangeTypeIncrease,
		Description:  "Financial data is currently unavailable",
	}
}

// Progress is current as a percentage of target, clamped to [0, 100].
// A target that is zero or negative yields zero.
func Progress(current, target decimal.Decimal) float64 {
	if !target.IsPositive() {
		return 0
	}
	p := current.Div(target).Mul(hundred)
	if p.IsNegative() {
		return 0
	}
	if p.GreaterThan(hundred) {
		return 100
	}
	return p.Round(1).InexactFloat64()
}

// EstimatedPriorPeriod is a placeholder baseline for the change indicator:
// it returns 90% of the current value. No prior-quarter figures are consulted.
func EstimatedPriorPeriod(current decimal.Decimal) decimal.Decimal {
	return current.Mul(priorPeriodFactor)
}

func changeType(current decimal.Decimal) entity.ChangeType {
	if current.GreaterThanOrEqual(EstimatedPriorPeriod(current)) {
		return entity.ChangeTypeIncrease
	}
	return entity.ChangeTypeDecrease
}
