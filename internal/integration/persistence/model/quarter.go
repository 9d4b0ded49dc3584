package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/backoffice/backend/internal/domain/entity"
)

// QuarterModel represents the quarters table in the database.
// Snapshot columns stay NULL until the quarter is closed.
type QuarterModel struct {
	ID                uuid.UUID           `gorm:"type:uuid;primaryKey"`
	QuarterID         string              `gorm:"type:varchar(10);uniqueIndex;not null"`
	Number            int                 `gorm:"not null"`
	Year              int                 `gorm:"not null;index"`
	StartDate         time.Time           `gorm:"type:date;not null"`
	EndDate           time.Time           `gorm:"type:date;not null"`
	Status            string              `gorm:"type:varchar(20);not null;default:'active';index"`
	ClosedAt          *time.Time
	ClosedBy          *string             `gorm:"type:varchar(255)"`
	TotalRevenue      decimal.NullDecimal `gorm:"type:decimal(15,2)"`
	TotalExpenses     decimal.NullDecimal `gorm:"type:decimal(15,2)"`
	TotalSalaries     decimal.NullDecimal `gorm:"type:decimal(15,2)"`
	CashOnHand        decimal.NullDecimal `gorm:"type:decimal(15,2)"`
	WithdrawalAmount  decimal.NullDecimal `gorm:"type:decimal(15,2)"`
	ExcludedRecordIDs RecordIDs
	ArchivedAt        *time.Time
	Targets           []TargetModel `gorm:"foreignKey:QuarterID;references:QuarterID"`
	CreatedAt         time.Time     `gorm:"not null"`
	UpdatedAt         time.Time     `gorm:"not null"`
}

// TableName returns the table name for the QuarterModel.
func (QuarterModel) TableName() string {
	return "quarters"
}

// ToEntity converts a QuarterModel to a domain Quarter entity.
func (m *QuarterModel) ToEntity() *entity.Quarter {
	targets := make(map[entity.TargetMetric]decimal.Decimal, len(m.Targets))
	for _, t := range m.Targets {
		targets[entity.TargetMetric(t.Metric)] = t.Value
	}

	return &entity.Quarter{
		ID:        m.ID,
		QuarterID: m.QuarterID,
		Number:    m.Number,
		Year:      m.Year,
		StartDate: m.StartDate.UTC(),
		EndDate:   m.EndDate.UTC(),
		Targets:   targets,
		State:     m.state(),
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

func (m *QuarterModel) state() entity.QuarterState {
	switch entity.QuarterStatus(m.Status) {
	case entity.QuarterStatusClosed:
		return entity.ClosedState{Snapshot: m.snapshot()}
	case entity.QuarterStatusArchived:
		var archivedAt time.Time
		if m.ArchivedAt != nil {
			archivedAt = *m.ArchivedAt
		}
		return entity.ArchivedState{Snapshot: m.snapshot(), ArchivedAt: archivedAt}
	default:
		return entity.ActiveState{}
	}
}

func (m *QuarterModel) snapshot() entity.ClosingSnapshot {
	s := entity.ClosingSnapshot{
		TotalRevenue:      m.TotalRevenue.Decimal,
		TotalExpenses:     m.TotalExpenses.Decimal,
		TotalSalaries:     m.TotalSalaries.Decimal,
		CashOnHand:        m.CashOnHand.Decimal,
		WithdrawalAmount:  m.WithdrawalAmount.Decimal,
		ExcludedRecordIDs: []string(m.ExcludedRecordIDs),
	}
	if m.ClosedAt != nil {
		s.ClosedAt = *m.ClosedAt
	}
	if m.ClosedBy != nil {
		s.ClosedBy = *m.ClosedBy
	}
	return s
}

// QuarterFromEntity creates a QuarterModel from a domain Quarter entity.
// Targets are stored through their own table and are not copied.
func QuarterFromEntity(q *entity.Quarter) *QuarterModel {
	m := &QuarterModel{
		ID:        q.ID,
		QuarterID: q.QuarterID,
		Number:    q.Number,
		Year:      q.Year,
		StartDate: q.StartDate,
		EndDate:   q.EndDate,
		Status:    string(q.Status()),
		CreatedAt: q.CreatedAt,
		UpdatedAt: q.UpdatedAt,
	}

	if s, ok := q.Snapshot(); ok {
		closedAt := s.ClosedAt
		closedBy := s.ClosedBy
		m.ClosedAt = &closedAt
		m.ClosedBy = &closedBy
		m.TotalRevenue = decimal.NewNullDecimal(s.TotalRevenue)
		m.TotalExpenses = decimal.NewNullDecimal(s.TotalExpenses)
		m.TotalSalaries = decimal.NewNullDecimal(s.TotalSalaries)
		m.CashOnHand = decimal.NewNullDecimal(s.CashOnHand)
		m.WithdrawalAmount = decimal.NewNullDecimal(s.WithdrawalAmount)
		m.ExcludedRecordIDs = RecordIDs(s.ExcludedRecordIDs)
	}
	if a, ok := q.State.(entity.ArchivedState); ok {
		archivedAt := a.ArchivedAt
		m.ArchivedAt = &archivedAt
	}

	return m
}

// TargetModel represents the quarter_targets table in the database.
type TargetModel struct {
	ID        uuid.UUID       `gorm:"type:uuid;primaryKey"`
	QuarterID string          `gorm:"type:varchar(10);not null;uniqueIndex:idx_quarter_targets_quarter_metric"`
	Metric    string          `gorm:"type:varchar(30);not null;uniqueIndex:idx_quarter_targets_quarter_metric"`
	Value     decimal.Decimal `gorm:"type:decimal(15,2);not null"`
	CreatedAt time.Time       `gorm:"not null"`
	UpdatedAt time.Time       `gorm:"not null"`
}

// TableName returns the table name for the TargetModel.
func (TargetModel) TableName() string {
	return "quarter_targets"
}

// ToEntity converts a TargetModel to a domain Target entity.
func (m *TargetModel) ToEntity() *entity.Target {
	return &entity.Target{
		ID:        m.ID,
		QuarterID: m.QuarterID,
		Metric:    entity.TargetMetric(m.Metric),
		Value:     m.Value,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

// TargetFromEntity creates a TargetModel from a domain Target entity.
func TargetFromEntity(t *entity.Target) *TargetModel {
	return &TargetModel{
		ID:        t.ID,
		QuarterID: t.QuarterID,
		Metric:    string(t.Metric),
		Value:     t.Value,
		CreatedAt: t.CreatedAt,
		UpdatedAt: t.UpdatedAt,
	}
}
