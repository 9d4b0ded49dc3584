// Package entity defines the core business entities for the domain layer.
package entity

import "github.com/shopspring/decimal"

// KPIType describes how a KPI value should be displayed.
type KPIType string

const (
	KPITypeCurrency KPIType = "currency"
	KPITypeCount    KPIType = "count"
)

// ChangeType is the direction of a KPI against its comparison baseline.
type ChangeType string

const (
	ChangeTypeIncrease ChangeType = "increase"
	ChangeTypeDecrease ChangeType = "decrease"
)

// KPI is a named metric with a target and a progress percentage in [0, 100].
type KPI struct {
	ID           string
	Name         string
	Type         KPIType
	CurrentValue decimal.Decimal
	TargetValue  decimal.Decimal
	Progress     float64
	ChangeType   ChangeType
	Description  string
}
