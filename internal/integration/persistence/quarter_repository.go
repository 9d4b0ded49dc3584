package persistence

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/backoffice/backend/internal/application/adapter"
	"github.com/backoffice/backend/internal/domain/entity"
	domainerror "github.com/backoffice/backend/internal/domain/error"
	"github.com/backoffice/backend/internal/integration/persistence/model"
)

// quarterRepository implements the adapter.QuarterRepository interface.
type quarterRepository struct {
	db *gorm.DB
}

// NewQuarterRepository creates a new quarter repository instance.
func NewQuarterRepository(db *gorm.DB) adapter.QuarterRepository {
	return &quarterRepository{
		db: db,
	}
}

// FindByQuarterID retrieves a quarter with its targets.
func (r *quarterRepository) FindByQuarterID(ctx context.Context, quarterID string) (*entity.Quarter, error) {
	var quarterModel model.QuarterModel
	result := r.db.WithContext(ctx).
		Preload("Targets").
		Where("quarter_id = ?", quarterID).
		First(&quarterModel)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, domainerror.ErrQuarterNotFound
		}
		return nil, result.Error
	}
	return quarterModel.ToEntity(), nil
}

// CreateIfAbsent inserts the quarter unless its QuarterID is taken, then reads the stored row.
func (r *quarterRepository) CreateIfAbsent(ctx context.Context, quarter *entity.Quarter) (*entity.Quarter, error) {
	result := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "quarter_id"}},
			DoNothing: true,
		}).
		Create(model.QuarterFromEntity(quarter))
	if result.Error != nil {
		return nil, result.Error
	}
	return r.FindByQuarterID(ctx, quarter.QuarterID)
}

// CloseIfActive writes the closing snapshot in a single statement guarded by status = 'active'.
func (r *quarterRepository) CloseIfActive(ctx context.Context, quarterID string, snapshot entity.ClosingSnapshot) (bool, error) {
	result := r.db.WithContext(ctx).
		Model(&model.QuarterModel{}).
		Where("quarter_id = ? AND status = ?", quarterID, string(entity.QuarterStatusActive)).
		Updates(map[string]interface{}{
			"status":              string(entity.QuarterStatusClosed),
			"closed_at":           snapshot.ClosedAt,
			"closed_by":           snapshot.ClosedBy,
			"total_revenue":       snapshot.TotalRevenue,
			"total_expenses":      snapshot.TotalExpenses,
			"total_salaries":      snapshot.TotalSalaries,
			"cash_on_hand":        snapshot.CashOnHand,
			"withdrawal_amount":   snapshot.WithdrawalAmount,
			"excluded_record_ids": model.RecordIDs(snapshot.ExcludedRecordIDs),
			"updated_at":          snapshot.ClosedAt,
		})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected == 1, nil
}

// ArchiveIfClosed sets status archived in a single statement guarded by status = 'closed'.
func (r *quarterRepository) ArchiveIfClosed(ctx context.Context, quarterID string, archivedAt time.Time) (bool, error) {
	result := r.db.WithContext(ctx).
		Model(&model.QuarterModel{}).
		Where("quarter_id = ? AND status = ?", quarterID, string(entity.QuarterStatusClosed)).
		Updates(map[string]interface{}{
			"status":      string(entity.QuarterStatusArchived),
			"archived_at": archivedAt,
			"updated_at":  archivedAt,
		})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected == 1, nil
}

// UpsertTarget creates the target or replaces the value stored for (quarter, metric).
func (r *quarterRepository) UpsertTarget(ctx context.Context, target *entity.Target) error {
	result := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "quarter_id"}, {Name: "metric"}},
			DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
		}).
		Create(model.TargetFromEntity(target))
	return result.Error
}

// ListTargets returns every target stored for a quarter.
func (r *quarterRepository) ListTargets(ctx context.Context, quarterID string) ([]*entity.Target, error) {
	var targetModels []model.TargetModel
	result := r.db.WithContext(ctx).
		Where("quarter_id = ?", quarterID).
		Order("metric ASC").
		Find(&targetModels)
	if result.Error != nil {
		return nil, result.Error
	}

	targets := make([]*entity.Target, len(targetModels))
	for i, tm := range targetModels {
		targets[i] = tm.ToEntity()
	}
	return targets, nil
}
