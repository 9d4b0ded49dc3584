// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/backoffice/backend/internal/domain/entity"
)

// Collection names understood by the record store.
const (
	CollectionInvoices       = "invoices"
	CollectionExpenses       = "expenses"
	CollectionSalaryPayments = "salary_payments"
	CollectionClients        = "clients"
	CollectionQuarters       = "quarters"
	CollectionTargets        = "targets"
)

// DefaultRecordLimit is the number of rows requested per list call when none is given.
const DefaultRecordLimit = 1000

// RecordFilter holds the predicates the store can evaluate itself.
// Anything it cannot express (case-insensitive status matching, the paid rule)
// is filtered in memory by the caller.
type RecordFilter struct {
	From   *time.Time // inclusive, compared against the collection's date field
	To     *time.Time // inclusive
	Months []string   // salary payments only, YYYY-MM
	Status string     // exact match
	Limit  int
}

// RecordReader is the read side of the record store.
type RecordReader interface {
	// ListInvoices returns invoices whose issue date matches the filter.
	ListInvoices(ctx context.Context, filter RecordFilter) ([]*entity.Invoice, error)

	// ListExpenses returns expenses whose date matches the filter.
	ListExpenses(ctx context.Context, filter RecordFilter) ([]*entity.Expense, error)

	// ListSalaryPayments returns salary payments whose month matches the filter.
	ListSalaryPayments(ctx context.Context, filter RecordFilter) ([]*entity.SalaryPayment, error)

	// ListClients returns clients matching the filter.
	ListClients(ctx context.Context, filter RecordFilter) ([]*entity.Client, error)
}

// RecordWriter is the write side of the record store for period-locked collections.
type RecordWriter interface {
	// FindInvoiceByID retrieves an invoice by its ID.
	FindInvoiceByID(ctx context.Context, id uuid.UUID) (*entity.Invoice, error)

	// CreateInvoice creates a new invoice.
	CreateInvoice(ctx context.Context, invoice *entity.Invoice) error

	// UpdateInvoice updates an existing invoice.
	UpdateInvoice(ctx context.Context, invoice *entity.Invoice) error

	// DeleteInvoice removes an invoice.
	DeleteInvoice(ctx context.Context, id uuid.UUID) error

	// FindExpenseByID retrieves an expense by its ID.
	FindExpenseByID(ctx context.Context, id uuid.UUID) (*entity.Expense, error)

	// CreateExpense creates a new expense.
	CreateExpense(ctx context.Context, expense *entity.Expense) error

	// UpdateExpense updates an existing expense.
	UpdateExpense(ctx context.Context, expense *entity.Expense) error

	// DeleteExpense removes an expense.
	DeleteExpense(ctx context.Context, id uuid.UUID) error
}
