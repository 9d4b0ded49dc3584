package persistence

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/backoffice/backend/internal/application/adapter"
	"github.com/backoffice/backend/internal/application/usecase/finance"
	"github.com/backoffice/backend/internal/domain/entity"
	domainerror "github.com/backoffice/backend/internal/domain/error"
	"github.com/backoffice/backend/internal/domain/valueobject"
	"github.com/backoffice/backend/internal/integration/persistence/model"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	sqlDB, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	db, err := gorm.Open(sqlite.Dialector{Conn: sqlDB}, &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(model.All()...))
	return db
}

func day(year int, month time.Month, d int) time.Time {
	return time.Date(year, month, d, 0, 0, 0, 0, time.UTC)
}

func TestQuarterRepository_Lifecycle(t *testing.T) {
	ctx := context.Background()
	repo := NewQuarterRepository(newTestDB(t))
	period := valueobject.NewQuarterPeriod(1, 2025)

	first, err := repo.CreateIfAbsent(ctx, entity.NewQuarter(period))
	require.NoError(t, err)
	second, err := repo.CreateIfAbsent(ctx, entity.NewQuarter(period))
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, entity.QuarterStatusActive, second.Status())
	assert.True(t, second.StartDate.Equal(period.StartDate))

	archived, err := repo.ArchiveIfClosed(ctx, "Q1-2025", time.Now())
	require.NoError(t, err)
	assert.False(t, archived, "an active quarter cannot be archived")

	snapshot := entity.ClosingSnapshot{
		ClosedAt:          time.Date(2025, time.April, 2, 10, 0, 0, 0, time.UTC),
		ClosedBy:          "owner@example.com",
		TotalRevenue:      decimal.NewFromInt(100000),
		TotalExpenses:     decimal.NewFromInt(20000),
		TotalSalaries:     decimal.NewFromInt(30000),
		CashOnHand:        decimal.NewFromInt(50000),
		WithdrawalAmount:  decimal.RequireFromString("12500.50"),
		ExcludedRecordIDs: []string{"invoices/a", "expenses/b"},
	}

	closed, err := repo.CloseIfActive(ctx, "Q1-2025", snapshot)
	require.NoError(t, err)
	assert.True(t, closed)

	closed, err = repo.CloseIfActive(ctx, "Q1-2025", snapshot)
	require.NoError(t, err)
	assert.False(t, closed, "a closed quarter must not be closed again")

	stored, err := repo.FindByQuarterID(ctx, "Q1-2025")
	require.NoError(t, err)
	assert.Equal(t, entity.QuarterStatusClosed, stored.Status())
	got, ok := stored.Snapshot()
	require.True(t, ok)
	assert.True(t, got.CashOnHand.Equal(decimal.NewFromInt(50000)))
	assert.True(t, got.WithdrawalAmount.Equal(decimal.RequireFromString("12500.50")))
	assert.Equal(t, "owner@example.com", got.ClosedBy)
	assert.Equal(t, []string{"invoices/a", "expenses/b"}, got.ExcludedRecordIDs)

	archived, err = repo.ArchiveIfClosed(ctx, "Q1-2025", time.Now())
	require.NoError(t, err)
	assert.True(t, archived)

	stored, err = repo.FindByQuarterID(ctx, "Q1-2025")
	require.NoError(t, err)
	assert.Equal(t, entity.QuarterStatusArchived, stored.Status())

	_, err = repo.FindByQuarterID(ctx, "Q2-2025")
	assert.ErrorIs(t, err, domainerror.ErrQuarterNotFound)
}

func TestQuarterRepository_UpsertTarget(t *testing.T) {
	ctx := context.Background()
	repo := NewQuarterRepository(newTestDB(t))
	_, err := repo.CreateIfAbsent(ctx, entity.NewQuarter(valueobject.NewQuarterPeriod(2, 2025)))
	require.NoError(t, err)

	require.NoError(t, repo.UpsertTarget(ctx, entity.NewTarget("Q2-2025", entity.TargetMetricRevenue, decimal.NewFromInt(1000))))
	require.NoError(t, repo.UpsertTarget(ctx, entity.NewTarget("Q2-2025", entity.TargetMetricRevenue, decimal.NewFromInt(2000))))
	require.NoError(t, repo.UpsertTarget(ctx, entity.NewTarget("Q2-2025", entity.TargetMetricHighValueClients, decimal.NewFromInt(3))))

	targets, err := repo.ListTargets(ctx, "Q2-2025")
	require.NoError(t, err)
	assert.Len(t, targets, 2)

	q, err := repo.FindByQuarterID(ctx, "Q2-2025")
	require.NoError(t, err)
	assert.True(t, q.Target(entity.TargetMetricRevenue).Equal(decimal.NewFromInt(2000)))
	assert.True(t, q.Target(entity.TargetMetricHighValueClients).Equal(decimal.NewFromInt(3)))
	assert.True(t, q.Target(entity.TargetMetricRetainerRevenue).IsZero())
}

func seedRecords(t *testing.T, db *gorm.DB) {
	t.Helper()
	paidOn := day(2025, time.March, 5)
	jan := day(2025, time.January, 20)

	rows := []interface{}{
		model.InvoiceFromEntity(entity.NewInvoice("INV-1", nil, "60000", "USD", day(2025, time.January, 15), "Paid", nil)),
		model.InvoiceFromEntity(entity.NewInvoice("INV-2", nil, "40000", "USD", day(2025, time.March, 31), "sent", &paidOn)),
		model.InvoiceFromEntity(entity.NewInvoice("INV-3", nil, "5000", "USD", day(2025, time.February, 1), "Draft", nil)),
		model.InvoiceFromEntity(entity.NewInvoice("INV-4", nil, "7000", "USD", day(2025, time.April, 1), "Paid", nil)),
		model.InvoiceFromEntity(entity.NewInvoice("INV-5", nil, "tbd", "USD", day(2025, time.February, 2), "Paid", nil)),
		model.ExpenseFromEntity(entity.NewExpense("Rent", "15000", day(2025, time.January, 1), "rent", "")),
		model.ExpenseFromEntity(entity.NewExpense("Software", "5000", day(2025, time.March, 31), "tools", "")),
		model.ExpenseFromEntity(entity.NewExpense("Old", "9000", day(2024, time.December, 31), "tools", "")),
		model.SalaryPaymentFromEntity(&entity.SalaryPayment{ID: uuid.New(), EmployeeID: uuid.New(), Amount: "11000", NetAmount: "10000", Month: "2025-01", Status: "paid"}),
		model.SalaryPaymentFromEntity(&entity.SalaryPayment{ID: uuid.New(), EmployeeID: uuid.New(), Amount: "10000", Month: "2025-02", Status: "Paid"}),
		model.SalaryPaymentFromEntity(&entity.SalaryPayment{ID: uuid.New(), EmployeeID: uuid.New(), Amount: "10000", NetAmount: "10000", Month: "2025-03", Status: "paid"}),
		model.SalaryPaymentFromEntity(&entity.SalaryPayment{ID: uuid.New(), EmployeeID: uuid.New(), Amount: "10000", Month: "2025-04", Status: "paid"}),
		model.ClientFromEntity(&entity.Client{ID: uuid.New(), Name: "Acme", Status: "Active", Retainer: "3000", StartDate: &jan}),
		model.ClientFromEntity(&entity.Client{ID: uuid.New(), Name: "Globex", Status: "inactive", Retainer: "1000"}),
	}
	for _, row := range rows {
		require.NoError(t, db.Create(row).Error)
	}
}

func TestRecordRepository_ListFilters(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	seedRecords(t, db)
	reader := NewRecordReader(db)
	period := valueobject.NewQuarterPeriod(1, 2025)
	from, to := period.StartDate, period.EndOfRange()

	invoices, err := reader.ListInvoices(ctx, adapter.RecordFilter{From: &from, To: &to})
	require.NoError(t, err)
	assert.Len(t, invoices, 4)

	expenses, err := reader.ListExpenses(ctx, adapter.RecordFilter{From: &from, To: &to})
	require.NoError(t, err)
	assert.Len(t, expenses, 2)

	salaries, err := reader.ListSalaryPayments(ctx, adapter.RecordFilter{Months: period.Months()})
	require.NoError(t, err)
	assert.Len(t, salaries, 3)

	limited, err := reader.ListInvoices(ctx, adapter.RecordFilter{Limit: 2})
	require.NoError(t, err)
	assert.Len(t, limited, 2)

	clients, err := reader.ListClients(ctx, adapter.RecordFilter{Status: "Active"})
	require.NoError(t, err)
	assert.Len(t, clients, 1)
}

func TestRecordRepository_AggregatesReferenceQuarter(t *testing.T) {
	db := newTestDB(t)
	seedRecords(t, db)

	stats, anomalies, err := finance.NewAggregator(NewRecordReader(db), 0).
		Compute(context.Background(), valueobject.NewQuarterPeriod(1, 2025))
	require.NoError(t, err)

	assert.True(t, stats.QuarterlyRevenue.Equal(decimal.NewFromInt(100000)))
	assert.True(t, stats.TotalExpenses.Equal(decimal.NewFromInt(20000)))
	assert.True(t, stats.TotalSalaries.Equal(decimal.NewFromInt(30000)))
	assert.True(t, stats.CashOnHand.Equal(decimal.NewFromInt(50000)))
	assert.True(t, stats.ProfitMargin.Equal(decimal.NewFromInt(50)))
	assert.Equal(t, 1, stats.ActiveClients)
	require.Len(t, anomalies, 1)
	assert.Equal(t, finance.AnomalyNotNumeric, anomalies[0].Reason)
}

func TestRecordRepository_QuarterEdgesAreInclusive(t *testing.T) {
	db := newTestDB(t)
	rows := []interface{}{
		model.InvoiceFromEntity(entity.NewInvoice("INV-A", nil, "1", "USD", day(2025, time.January, 1), "Paid", nil)),
		model.InvoiceFromEntity(entity.NewInvoice("INV-B", nil, "10", "USD", day(2025, time.March, 31), "Paid", nil)),
		model.InvoiceFromEntity(entity.NewInvoice("INV-C", nil, "100", "USD", day(2025, time.April, 1), "Paid", nil)),
		model.InvoiceFromEntity(entity.NewInvoice("INV-D", nil, "1000", "USD", day(2024, time.December, 31), "Paid", nil)),
		model.ExpenseFromEntity(entity.NewExpense("Jan 1", "2", day(2025, time.January, 1), "tools", "")),
		model.ExpenseFromEntity(entity.NewExpense("Mar 31", "20", day(2025, time.March, 31), "tools", "")),
		model.ExpenseFromEntity(entity.NewExpense("Apr 1", "200", day(2025, time.April, 1), "tools", "")),
		model.ExpenseFromEntity(entity.NewExpense("Dec 31", "2000", day(2024, time.December, 31), "tools", "")),
	}
	for _, row := range rows {
		require.NoError(t, db.Create(row).Error)
	}

	aggregator := finance.NewAggregator(NewRecordReader(db), 0)

	tests := []struct {
		name         string
		period       valueobject.QuarterPeriod
		wantRevenue  int64
		wantExpenses int64
		wantPaid     int
	}{
		{"first and last day of Q1", valueobject.NewQuarterPeriod(1, 2025), 11, 22, 2},
		{"first day of Q2", valueobject.NewQuarterPeriod(2, 2025), 100, 200, 1},
		{"last day of previous year", valueobject.NewQuarterPeriod(4, 2024), 1000, 2000, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stats, anomalies, err := aggregator.Compute(context.Background(), tt.period)
			require.NoError(t, err)
			assert.Empty(t, anomalies)
			assert.True(t, stats.QuarterlyRevenue.Equal(decimal.NewFromInt(tt.wantRevenue)), stats.QuarterlyRevenue.String())
			assert.True(t, stats.TotalExpenses.Equal(decimal.NewFromInt(tt.wantExpenses)), stats.TotalExpenses.String())
			assert.Equal(t, tt.wantPaid, stats.InvoicesPaidCount)
		})
	}
}

func TestRecordRepository_Writes(t *testing.T) {
	ctx := context.Background()
	writer := NewRecordWriter(newTestDB(t))

	invoice := entity.NewInvoice("INV-9", nil, "250", "USD", day(2025, time.May, 1), "Draft", nil)
	require.NoError(t, writer.CreateInvoice(ctx, invoice))

	invoice.Status = "Paid"
	require.NoError(t, writer.UpdateInvoice(ctx, invoice))

	stored, err := writer.FindInvoiceByID(ctx, invoice.ID)
	require.NoError(t, err)
	assert.Equal(t, "Paid", stored.Status)
	assert.Equal(t, valueobject.RawAmount("250"), stored.Amount)

	require.NoError(t, writer.DeleteInvoice(ctx, invoice.ID))
	_, err = writer.FindInvoiceByID(ctx, invoice.ID)
	assert.ErrorIs(t, err, domainerror.ErrInvoiceNotFound)
	assert.ErrorIs(t, writer.DeleteInvoice(ctx, invoice.ID), domainerror.ErrInvoiceNotFound)

	expense := entity.NewExpense("Hosting", "80", day(2025, time.May, 2), "tools", "")
	require.NoError(t, writer.CreateExpense(ctx, expense))
	require.NoError(t, writer.DeleteExpense(ctx, expense.ID))
	_, err = writer.FindExpenseByID(ctx, expense.ID)
	assert.ErrorIs(t, err, domainerror.ErrExpenseNotFound)
}

func TestUserRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewUserRepository(newTestDB(t))

	first := entity.NewUser("owner@example.com", "Owner", "hash")
	require.NoError(t, repo.Register(ctx, first))
	assert.True(t, first.IsOwner(), "first user becomes owner")

	second := entity.NewUser("staff@example.com", "Staff", "hash")
	require.NoError(t, repo.Register(ctx, second))
	assert.Equal(t, entity.UserRoleStaff, second.Role)

	dup := entity.NewUser("owner@example.com", "Again", "hash")
	assert.ErrorIs(t, repo.Register(ctx, dup), domainerror.ErrEmailAlreadyExists)

	found, err := repo.FindByEmail(ctx, "owner@example.com")
	require.NoError(t, err)
	assert.True(t, found.IsOwner())
	assert.Equal(t, first.ID, found.ID)

	_, err = repo.FindByEmail(ctx, "nobody@example.com")
	assert.ErrorIs(t, err, domainerror.ErrUserNotFound)
}
