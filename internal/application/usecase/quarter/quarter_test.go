package quarter

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/backoffice/backend/internal/domain/entity"
	domainerror "github.com/backoffice/backend/internal/domain/error"
)

func TestGetOrCreateQuarterUseCase_Execute(t *testing.T) {
	t.Run("is idempotent", func(t *testing.T) {
		repo := newMemQuarterRepo()
		uc := NewGetOrCreateQuarterUseCase(repo)

		first, err := uc.Execute(context.Background(), GetOrCreateQuarterInput{QuarterID: "Q1-2025"})
		require.NoError(t, err)
		second, err := uc.Execute(context.Background(), GetOrCreateQuarterInput{QuarterID: "Q1-2025"})
		require.NoError(t, err)

		assert.Equal(t, first.Quarter.ID, second.Quarter.ID)
		assert.Equal(t, entity.QuarterStatusActive, first.Quarter.Status())
		assert.True(t, first.Quarter.Target(entity.TargetMetricRevenue).IsZero())
		assert.Equal(t, 1, repo.creates)
	})

	t.Run("concurrent first calls observe one quarter", func(t *testing.T) {
		repo := newMemQuarterRepo()
		uc := NewGetOrCreateQuarterUseCase(repo)

		var wg sync.WaitGroup
		ids := make(chan string, 10)
		for i := 0; i < 10; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				out, err := uc.Execute(context.Background(), GetOrCreateQuarterInput{QuarterID: "Q3-2025"})
				if err == nil {
					ids <- out.Quarter.ID.String()
				}
			}()
		}
		wg.Wait()
		close(ids)

		seen := map[string]bool{}
		for id := range ids {
			seen[id] = true
		}
		assert.Len(t, seen, 1)
		assert.Equal(t, 1, repo.creates)
	})

	t.Run("resolves by date", func(t *testing.T) {
		date := time.Date(2025, time.August, 14, 0, 0, 0, 0, time.UTC)

		out, err := NewGetOrCreateQuarterUseCase(newMemQuarterRepo()).
			Execute(context.Background(), GetOrCreateQuarterInput{Date: &date})
		require.NoError(t, err)
		assert.Equal(t, "Q3-2025", out.Quarter.QuarterID)
		assert.Equal(t, 3, out.Quarter.Number)
	})

	t.Run("invalid input", func(t *testing.T) {
		uc := NewGetOrCreateQuarterUseCase(newMemQuarterRepo())

		_, err := uc.Execute(context.Background(), GetOrCreateQuarterInput{QuarterID: "2025-Q1"})
		requireQuarterCode(t, err, domainerror.ErrCodeInvalidQuarterID)

		_, err = uc.Execute(context.Background(), GetOrCreateQuarterInput{})
		requireQuarterCode(t, err, domainerror.ErrCodeMissingQuarterFields)
	})
}

func TestIsQuarterClosedUseCase_Execute(t *testing.T) {
	repo := newMemQuarterRepo()
	seedClosed(repo, "Q4-2024")
	_, err := NewGetOrCreateQuarterUseCase(repo).Execute(context.Background(), GetOrCreateQuarterInput{QuarterID: "Q1-2025"})
	require.NoError(t, err)
	seedClosed(repo, "Q3-2024")
	_, err = repo.ArchiveIfClosed(context.Background(), "Q3-2024", closeTime)
	require.NoError(t, err)

	uc := NewIsQuarterClosedUseCase(repo)

	tests := []struct {
		name     string
		number   int
		year     int
		expected bool
	}{
		{"closed", 4, 2024, true},
		{"archived", 3, 2024, true},
		{"active", 1, 2025, false},
		{"absent", 2, 2030, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := uc.Execute(context.Background(), IsQuarterClosedInput{Number: tt.number, Year: tt.year})
			require.NoError(t, err)
			assert.Equal(t, tt.expected, out.Closed)
		})
	}

	_, err = repo.FindByQuarterID(context.Background(), "Q2-2030")
	assert.ErrorIs(t, err, domainerror.ErrQuarterNotFound, "status check must not create the quarter")

	_, err = uc.Execute(context.Background(), IsQuarterClosedInput{Number: 0, Year: 2025})
	requireQuarterCode(t, err, domainerror.ErrCodeInvalidQuarterID)
}

func TestPeriodGuard_EnsureOpen(t *testing.T) {
	repo := newMemQuarterRepo()
	seedClosed(repo, "Q1-2025")
	guard := NewPeriodGuard(repo)

	inClosed := time.Date(2025, time.February, 3, 0, 0, 0, 0, time.UTC)
	inOpen := time.Date(2025, time.May, 3, 0, 0, 0, 0, time.UTC)

	assert.NoError(t, guard.EnsureOpen(context.Background(), inOpen))

	err := guard.EnsureOpen(context.Background(), inClosed)
	requireQuarterCode(t, err, domainerror.ErrCodePeriodClosed)
	assert.True(t, errors.Is(err, domainerror.ErrPeriodClosed))

	err = guard.EnsureOpen(context.Background(), inOpen, inClosed)
	requireQuarterCode(t, err, domainerror.ErrCodePeriodClosed)
}

func TestSetTargetUseCase_Execute(t *testing.T) {
	t.Run("upserts per metric", func(t *testing.T) {
		repo := newMemQuarterRepo()
		uc := NewSetTargetUseCase(repo)

		_, err := uc.Execute(context.Background(), SetTargetInput{
			QuarterID: "Q1-2025", Metric: entity.TargetMetricRevenue, Value: decimal.NewFromInt(100000),
		})
		require.NoError(t, err)
		_, err = uc.Execute(context.Background(), SetTargetInput{
			QuarterID: "Q1-2025", Metric: entity.TargetMetricRevenue, Value: decimal.NewFromInt(150000),
		})
		require.NoError(t, err)

		targets, err := repo.ListTargets(context.Background(), "Q1-2025")
		require.NoError(t, err)
		require.Len(t, targets, 1)
		assert.True(t, targets[0].Value.Equal(decimal.NewFromInt(150000)))

		q, err := repo.FindByQuarterID(context.Background(), "Q1-2025")
		require.NoError(t, err)
		assert.True(t, q.Target(entity.TargetMetricRevenue).Equal(decimal.NewFromInt(150000)))
	})

	t.Run("validation", func(t *testing.T) {
		uc := NewSetTargetUseCase(newMemQuarterRepo())

		_, err := uc.Execute(context.Background(), SetTargetInput{
			QuarterID: "Q1-2025", Metric: "churn", Value: decimal.NewFromInt(1),
		})
		requireQuarterCode(t, err, domainerror.ErrCodeInvalidTargetMetric)

		_, err = uc.Execute(context.Background(), SetTargetInput{
			QuarterID: "Q1-2025", Metric: entity.TargetMetricRevenue, Value: decimal.NewFromInt(-1),
		})
		requireQuarterCode(t, err, domainerror.ErrCodeInvalidTargetValue)
	})

	t.Run("closed quarter targets are frozen", func(t *testing.T) {
		repo := newMemQuarterRepo()
		seedClosed(repo, "Q4-2024")

		_, err := NewSetTargetUseCase(repo).Execute(context.Background(), SetTargetInput{
			QuarterID: "Q4-2024", Metric: entity.TargetMetricRevenue, Value: decimal.NewFromInt(1),
		})
		requireQuarterCode(t, err, domainerror.ErrCodeQuarterNotActive)
	})
}
