package model

import (
	"time"

	"github.com/google/uuid"

	"github.com/backoffice/backend/internal/domain/entity"
	"github.com/backoffice/backend/internal/domain/valueobject"
)

// Monetary columns are free text: rows imported from older systems may hold
// values that are not numbers, and the aggregator reports those instead of
// failing the whole read.

// InvoiceModel represents the invoices table in the database.
type InvoiceModel struct {
	ID            uuid.UUID  `gorm:"type:uuid;primaryKey"`
	InvoiceNumber string     `gorm:"type:varchar(50);not null;index"`
	ClientID      *uuid.UUID `gorm:"type:uuid;index"`
	Amount        string     `gorm:"type:varchar(64);not null"`
	Currency      string     `gorm:"type:varchar(3);not null"`
	IssueDate     time.Time  `gorm:"type:date;not null;index"`
	Status        string     `gorm:"type:varchar(30)"`
	PaidDate      *time.Time `gorm:"type:date"`
	CreatedAt     time.Time  `gorm:"not null"`
	UpdatedAt     time.Time  `gorm:"not null"`
}

// TableName returns the table name for the InvoiceModel.
func (InvoiceModel) TableName() string {
	return "invoices"
}

// ToEntity converts an InvoiceModel to a domain Invoice entity.
func (m *InvoiceModel) ToEntity() *entity.Invoice {
	return &entity.Invoice{
		ID:            m.ID,
		InvoiceNumber: m.InvoiceNumber,
		ClientID:      m.ClientID,
		Amount:        valueobject.RawAmount(m.Amount),
		Currency:      m.Currency,
		IssueDate:     m.IssueDate.UTC(),
		Status:        m.Status,
		PaidDate:      m.PaidDate,
		CreatedAt:     m.CreatedAt,
		UpdatedAt:     m.UpdatedAt,
	}
}

// InvoiceFromEntity creates an InvoiceModel from a domain Invoice entity.
func InvoiceFromEntity(i *entity.Invoice) *InvoiceModel {
	return &InvoiceModel{
		ID:            i.ID,
		InvoiceNumber: i.InvoiceNumber,
		ClientID:      i.ClientID,
		Amount:        string(i.Amount),
		Currency:      i.Currency,
		IssueDate:     i.IssueDate,
		Status:        i.Status,
		PaidDate:      i.PaidDate,
		CreatedAt:     i.CreatedAt,
		UpdatedAt:     i.UpdatedAt,
	}
}

// ExpenseModel represents the expenses table in the database.
type ExpenseModel struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	Description string    `gorm:"type:varchar(255);not null"`
	Amount      string    `gorm:"type:varchar(64);not null"`
	Date        time.Time `gorm:"type:date;not null;index"`
	Category    string    `gorm:"type:varchar(50)"`
	Status      string    `gorm:"type:varchar(30)"`
	CreatedAt   time.Time `gorm:"not null"`
	UpdatedAt   time.Time `gorm:"not null"`
}

// TableName returns the table name for the ExpenseModel.
func (ExpenseModel) TableName() string {
	return "expenses"
}

// ToEntity converts an ExpenseModel to a domain Expense entity.
func (m *ExpenseModel) ToEntity() *entity.Expense {
	return &entity.Expense{
		ID:          m.ID,
		Description: m.Description,
		Amount:      valueobject.RawAmount(m.Amount),
		Date:        m.Date.UTC(),
		Category:    m.Category,
		Status:      m.Status,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}

// ExpenseFromEntity creates an ExpenseModel from a domain Expense entity.
func ExpenseFromEntity(e *entity.Expense) *ExpenseModel {
	return &ExpenseModel{
		ID:          e.ID,
		Description: e.Description,
		Amount:      string(e.Amount),
		Date:        e.Date,
		Category:    e.Category,
		Status:      e.Status,
		CreatedAt:   e.CreatedAt,
		UpdatedAt:   e.UpdatedAt,
	}
}

// SalaryPaymentModel represents the salary_payments table in the database.
type SalaryPaymentModel struct {
	ID         uuid.UUID  `gorm:"type:uuid;primaryKey"`
	EmployeeID uuid.UUID  `gorm:"type:uuid;not null;index"`
	Amount     string     `gorm:"type:varchar(64);not null"`
	NetAmount  string     `gorm:"type:varchar(64)"`
	Month      string     `gorm:"type:varchar(7);not null;index"`
	Status     string     `gorm:"type:varchar(30)"`
	PaidDate   *time.Time `gorm:"type:date"`
	CreatedAt  time.Time  `gorm:"not null"`
	UpdatedAt  time.Time  `gorm:"not null"`
}

// TableName returns the table name for the SalaryPaymentModel.
func (SalaryPaymentModel) TableName() string {
	return "salary_payments"
}

// ToEntity converts a SalaryPaymentModel to a domain SalaryPayment entity.
func (m *SalaryPaymentModel) ToEntity() *entity.SalaryPayment {
	return &entity.SalaryPayment{
		ID:         m.ID,
		EmployeeID: m.EmployeeID,
		Amount:     valueobject.RawAmount(m.Amount),
		NetAmount:  valueobject.RawAmount(m.NetAmount),
		Month:      m.Month,
		Status:     m.Status,
		PaidDate:   m.PaidDate,
		CreatedAt:  m.CreatedAt,
		UpdatedAt:  m.UpdatedAt,
	}
}

// SalaryPaymentFromEntity creates a SalaryPaymentModel from a domain SalaryPayment entity.
func SalaryPaymentFromEntity(s *entity.SalaryPayment) *SalaryPaymentModel {
	return &SalaryPaymentModel{
		ID:         s.ID,
		EmployeeID: s.EmployeeID,
		Amount:     string(s.Amount),
		NetAmount:  string(s.NetAmount),
		Month:      s.Month,
		Status:     s.Status,
		PaidDate:   s.PaidDate,
		CreatedAt:  s.CreatedAt,
		UpdatedAt:  s.UpdatedAt,
	}
}

// ClientModel represents the clients table in the database.
type ClientModel struct {
	ID               uuid.UUID  `gorm:"type:uuid;primaryKey"`
	Name             string     `gorm:"type:varchar(150);not null"`
	Status           string     `gorm:"type:varchar(30);index"`
	Retainer         string     `gorm:"type:varchar(64)"`
	NumberOfProjects int        `gorm:"not null;default:0"`
	StartDate        *time.Time `gorm:"type:date"`
	CreatedAt        time.Time  `gorm:"not null"`
	UpdatedAt        time.Time  `gorm:"not null"`
}

// TableName returns the table name for the ClientModel.
func (ClientModel) TableName() string {
	return "clients"
}

// ToEntity converts a ClientModel to a domain Client entity.
func (m *ClientModel) ToEntity() *entity.Client {
	return &entity.Client{
		ID:               m.ID,
		Name:             m.Name,
		Status:           m.Status,
		Retainer:         valueobject.RawAmount(m.Retainer),
		NumberOfProjects: m.NumberOfProjects,
		StartDate:        m.StartDate,
		CreatedAt:        m.CreatedAt,
		UpdatedAt:        m.UpdatedAt,
	}
}

// ClientFromEntity creates a ClientModel from a domain Client entity.
func ClientFromEntity(c *entity.Client) *ClientModel {
	return &ClientModel{
		ID:               c.ID,
		Name:             c.Name,
		Status:           c.Status,
		Retainer:         string(c.Retainer),
		NumberOfProjects: c.NumberOfProjects,
		StartDate:        c.StartDate,
		CreatedAt:        c.CreatedAt,
		UpdatedAt:        c.UpdatedAt,
	}
}
