package quarter

import (
	"context"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/backoffice/backend/internal/application/adapter"
	"github.com/backoffice/backend/internal/application/usecase/finance"
	"github.com/backoffice/backend/internal/domain/entity"
	domainerror "github.com/backoffice/backend/internal/domain/error"
	"github.com/backoffice/backend/internal/domain/valueobject"
)

// memQuarterRepo mirrors the conditional semantics of the SQL repository.
type memQuarterRepo struct {
	mu       sync.Mutex
	quarters map[string]*entity.Quarter
	targets  map[string]map[entity.TargetMetric]*entity.Target
	creates  int
}

func newMemQuarterRepo() *memQuarterRepo {
	return &memQuarterRepo{
		quarters: make(map[string]*entity.Quarter),
		targets:  make(map[string]map[entity.TargetMetric]*entity.Target),
	}
}

func (r *memQuarterRepo) copyOf(q *entity.Quarter) *entity.Quarter {
	c := *q
	c.Targets = make(map[entity.TargetMetric]decimal.Decimal)
	for metric, t := range r.targets[q.QuarterID] {
		c.Targets[metric] = t.Value
	}
	return &c
}

func (r *memQuarterRepo) FindByQuarterID(_ context.Context, quarterID string) (*entity.Quarter, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	q, ok := r.quarters[quarterID]
	if !ok {
		return nil, domainerror.ErrQuarterNotFound
	}
	return r.copyOf(q), nil
}

func (r *memQuarterRepo) CreateIfAbsent(_ context.Context, quarter *entity.Quarter) (*entity.Quarter, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.quarters[quarter.QuarterID]; !ok {
		r.quarters[quarter.QuarterID] = quarter
		r.creates++
	}
	return r.copyOf(r.quarters[quarter.QuarterID]), nil
}

func (r *memQuarterRepo) CloseIfActive(_ context.Context, quarterID string, snapshot entity.ClosingSnapshot) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	q, ok := r.quarters[quarterID]
	if !ok || !q.IsActive() {
		return false, nil
	}
	stored := *q
	stored.State = entity.ClosedState{Snapshot: snapshot}
	r.quarters[quarterID] = &stored
	return true, nil
}

func (r *memQuarterRepo) ArchiveIfClosed(_ context.Context, quarterID string, at time.Time) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	q, ok := r.quarters[quarterID]
	if !ok {
		return false, nil
	}
	closed, ok := q.State.(entity.ClosedState)
	if !ok {
		return false, nil
	}
	stored := *q
	stored.State = entity.ArchivedState{Snapshot: closed.Snapshot, ArchivedAt: at}
	r.quarters[quarterID] = &stored
	return true, nil
}

func (r *memQuarterRepo) UpsertTarget(_ context.Context, target *entity.Target) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.targets[target.QuarterID] == nil {
		r.targets[target.QuarterID] = make(map[entity.TargetMetric]*entity.Target)
	}
	r.targets[target.QuarterID][target.Metric] = target
	return nil
}

func (r *memQuarterRepo) ListTargets(_ context.Context, quarterID string) ([]*entity.Target, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []*entity.Target
	for _, t := range r.targets[quarterID] {
		out = append(out, t)
	}
	return out, nil
}

func (r *memQuarterRepo) status(quarterID string) entity.QuarterStatus {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.quarters[quarterID].Status()
}

type fakeStats struct {
	stats     *finance.QuarterStats
	anomalies []finance.Anomaly
	err       error
}

func (f *fakeStats) Compute(_ context.Context, period valueobject.QuarterPeriod) (*finance.QuarterStats, []finance.Anomaly, error) {
	if f.err != nil {
		return nil, nil, f.err
	}
	s := *f.stats
	s.QuarterID = period.QuarterID
	return &s, f.anomalies, nil
}

// statsWithCash returns stats whose cash on hand equals revenue minus 50000 of costs.
func statsWithCash(revenue int64) *fakeStats {
	rev := decimal.NewFromInt(revenue)
	exp := decimal.NewFromInt(20000)
	sal := decimal.NewFromInt(30000)
	cash := finance.CashOnHand(rev, exp, sal)
	return &fakeStats{stats: &finance.QuarterStats{
		QuarterlyRevenue: rev,
		TotalExpenses:    exp,
		TotalSalaries:    sal,
		CashOnHand:       cash,
		Profit:           cash,
		ProfitMargin:     finance.ProfitMargin(cash, rev),
	}}
}

type fixedClock struct {
	now time.Time
}

func (c fixedClock) Now() time.Time { return c.now }

type recordingPublisher struct {
	mu     sync.Mutex
	events []adapter.QuarterClosedEvent
	err    error
}

func (p *recordingPublisher) PublishQuarterClosed(_ context.Context, event adapter.QuarterClosedEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, event)
	return p.err
}

var closeTime = time.Date(2025, time.April, 2, 9, 0, 0, 0, time.UTC)

func seedClosed(repo *memQuarterRepo, quarterID string) {
	period, _ := valueobject.ParseQuarterID(quarterID)
	q := entity.NewQuarter(period)
	_ = q.Close(entity.ClosingSnapshot{ClosedAt: closeTime})
	repo.quarters[quarterID] = q
}
