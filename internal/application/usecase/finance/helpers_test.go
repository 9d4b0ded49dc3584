package finance

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/backoffice/backend/internal/application/adapter"
	"github.com/backoffice/backend/internal/domain/entity"
	"github.com/backoffice/backend/internal/domain/valueobject"
)

var errStoreDown = errors.New("record store unavailable")

// fakeRecords serves fixed collections and ignores filters, so the
// in-memory predicates of the aggregator are what gets exercised.
type fakeRecords struct {
	invoices []*entity.Invoice
	expenses []*entity.Expense
	salaries []*entity.SalaryPayment
	clients  []*entity.Client

	failOn string
}

func (f *fakeRecords) ListInvoices(_ context.Context, _ adapter.RecordFilter) ([]*entity.Invoice, error) {
	if f.failOn == adapter.CollectionInvoices {
		return nil, errStoreDown
	}
	return f.invoices, nil
}

func (f *fakeRecords) ListExpenses(_ context.Context, _ adapter.RecordFilter) ([]*entity.Expense, error) {
	if f.failOn == adapter.CollectionExpenses {
		return nil, errStoreDown
	}
	return f.expenses, nil
}

func (f *fakeRecords) ListSalaryPayments(_ context.Context, _ adapter.RecordFilter) ([]*entity.SalaryPayment, error) {
	if f.failOn == adapter.CollectionSalaryPayments {
		return nil, errStoreDown
	}
	return f.salaries, nil
}

func (f *fakeRecords) ListClients(_ context.Context, _ adapter.RecordFilter) ([]*entity.Client, error) {
	if f.failOn == adapter.CollectionClients {
		return nil, errStoreDown
	}
	return f.clients, nil
}

type fakeQuarters struct {
	quarter *entity.Quarter
	err     error
}

func (f *fakeQuarters) Resolve(_ context.Context, period valueobject.QuarterPeriod) (*entity.Quarter, error) {
	if f.err != nil {
		return nil, f.err
	}
	if f.quarter == nil {
		return entity.NewQuarter(period), nil
	}
	return f.quarter, nil
}

func date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

func invoice(amount string, issued time.Time, status string) *entity.Invoice {
	return entity.NewInvoice("INV", nil, valueobject.RawAmount(amount), "USD", issued, status, nil)
}

func expense(amount string, on time.Time) *entity.Expense {
	return entity.NewExpense("office", valueobject.RawAmount(amount), on, "operations", "")
}

func salary(amount, net, month, status string) *entity.SalaryPayment {
	return &entity.SalaryPayment{
		ID:         uuid.New(),
		EmployeeID: uuid.New(),
		Amount:     valueobject.RawAmount(amount),
		NetAmount:  valueobject.RawAmount(net),
		Month:      month,
		Status:     status,
	}
}

func client(status, retainer string, started *time.Time) *entity.Client {
	return &entity.Client{
		ID:        uuid.New(),
		Name:      "client",
		Status:    status,
		Retainer:  valueobject.RawAmount(retainer),
		StartDate: started,
	}
}

// q1Records is the reference quarter: 100000 paid revenue, 20000 expenses
// and 30000 paid salaries in Q1 2025.
func q1Records() *fakeRecords {
	jan := date(2025, time.January, 15)
	return &fakeRecords{
		invoices: []*entity.Invoice{
			invoice("60000", jan, "Paid"),
			invoice("40000", date(2025, time.March, 31), "paid"),
			invoice("5000", date(2025, time.February, 1), "Draft"),
			invoice("9000", date(2025, time.April, 1), "Paid"),
		},
		expenses: []*entity.Expense{
			expense("15000", date(2025, time.January, 1)),
			expense("5000", date(2025, time.March, 20)),
			expense("7000", date(2024, time.December, 31)),
		},
		salaries: []*entity.SalaryPayment{
			salary("12000", "10000", "2025-01", "paid"),
			salary("10000", "", "2025-02", "Paid"),
			salary("10000", "10000", "2025-03", "PAID"),
			salary("10000", "10000", "2025-03", "pending"),
			salary("10000", "10000", "2025-04", "paid"),
		},
		clients: []*entity.Client{
			client("Active", "3000", &jan),
			client("active", "2000", nil),
			client("Inactive", "1000", nil),
		},
	}
}
