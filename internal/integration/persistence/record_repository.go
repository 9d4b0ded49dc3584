// Package persistence implements repository interfaces for database operations.
package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/backoffice/backend/internal/application/adapter"
	"github.com/backoffice/backend/internal/domain/entity"
	domainerror "github.com/backoffice/backend/internal/domain/error"
	"github.com/backoffice/backend/internal/integration/persistence/model"
)

// recordRepository implements adapter.RecordReader and adapter.RecordWriter.
type recordRepository struct {
	db *gorm.DB
}

// NewRecordReader creates a new record reader instance.
func NewRecordReader(db *gorm.DB) adapter.RecordReader {
	return &recordRepository{
		db: db,
	}
}

// NewRecordWriter creates a new record writer instance.
func NewRecordWriter(db *gorm.DB) adapter.RecordWriter {
	return &recordRepository{
		db: db,
	}
}

// applyFilter adds the store-side predicates of filter. dateColumn is the
// column compared against From and To.
func applyFilter(query *gorm.DB, filter adapter.RecordFilter, dateColumn string) *gorm.DB {
	if filter.From != nil && dateColumn != "" {
		query = query.Where(dateColumn+" >= ?", *filter.From)
	}
	if filter.To != nil && dateColumn != "" {
		query = query.Where(dateColumn+" <= ?", *filter.To)
	}
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}

	limit := filter.Limit
	if limit <= 0 {
		limit = adapter.DefaultRecordLimit
	}
	return query.Limit(limit)
}

// ListInvoices returns invoices whose issue date matches the filter.
func (r *recordRepository) ListInvoices(ctx context.Context, filter adapter.RecordFilter) ([]*entity.Invoice, error) {
	var models []model.InvoiceModel
	query := applyFilter(r.db.WithContext(ctx).Model(&model.InvoiceModel{}), filter, "issue_date")
	if result := query.Order("issue_date ASC").Find(&models); result.Error != nil {
		return nil, result.Error
	}

	invoices := make([]*entity.Invoice, len(models))
	for i, m := range models {
		invoices[i] = m.ToEntity()
	}
	return invoices, nil
}

// ListExpenses returns expenses whose date matches the filter.
func (r *recordRepository) ListExpenses(ctx context.Context, filter adapter.RecordFilter) ([]*entity.Expense, error) {
	var models []model.ExpenseModel
	query := applyFilter(r.db.WithContext(ctx).Model(&model.ExpenseModel{}), filter, "date")
	if result := query.Order("date ASC").Find(&models); result.Error != nil {
		return nil, result.Error
	}

	expenses := make([]*entity.Expense, len(models))
	for i, m := range models {
		expenses[i] = m.ToEntity()
	}
	return expenses, nil
}

// ListSalaryPayments returns salary payments whose month matches the filter.
func (r *recordRepository) ListSalaryPayments(ctx context.Context, filter adapter.RecordFilter) ([]*entity.SalaryPayment, error) {
	var models []model.SalaryPaymentModel
	query := applyFilter(r.db.WithContext(ctx).Model(&model.SalaryPaymentModel{}), filter, "")
	if len(filter.Months) > 0 {
		query = query.Where("month IN ?", filter.Months)
	}
	if result := query.Order("month ASC").Find(&models); result.Error != nil {
		return nil, result.Error
	}

	payments := make([]*entity.SalaryPayment, len(models))
	for i, m := range models {
		payments[i] = m.ToEntity()
	}
	return payments, nil
}

// ListClients returns clients matching the filter.
func (r *recordRepository) ListClients(ctx context.Context, filter adapter.RecordFilter) ([]*entity.Client, error) {
	var models []model.ClientModel
	query := applyFilter(r.db.WithContext(ctx).Model(&model.ClientModel{}), filter, "start_date")
	if result := query.Order("name ASC").Find(&models); result.Error != nil {
		return nil, result.Error
	}

	clients := make([]*entity.Client, len(models))
	for i, m := range models {
		clients[i] = m.ToEntity()
	}
	return clients, nil
}

// FindInvoiceByID retrieves an invoice by its ID.
func (r *recordRepository) FindInvoiceByID(ctx context.Context, id uuid.UUID) (*entity.Invoice, error) {
	var invoiceModel model.InvoiceModel
	result := r.db.WithContext(ctx).Where("id = ?", id).First(&invoiceModel)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, domainerror.ErrInvoiceNotFound
		}
		return nil, result.Error
	}
	return invoiceModel.ToEntity(), nil
}

// CreateInvoice creates a new invoice in the database.
func (r *recordRepository) CreateInvoice(ctx context.Context, invoice *entity.Invoice) error {
	return r.db.WithContext(ctx).Create(model.InvoiceFromEntity(invoice)).Error
}

// UpdateInvoice updates an existing invoice in the database.
func (r *recordRepository) UpdateInvoice(ctx context.Context, invoice *entity.Invoice) error {
	return r.db.WithContext(ctx).Save(model.InvoiceFromEntity(invoice)).Error
}

// DeleteInvoice removes an invoice from the database.
func (r *recordRepository) DeleteInvoice(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&model.InvoiceModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerror.ErrInvoiceNotFound
	}
	return nil
}

// FindExpenseByID retrieves an expense by its ID.
func (r *recordRepository) FindExpenseByID(ctx context.Context, id uuid.UUID) (*entity.Expense, error) {
	var expenseModel model.ExpenseModel
	result := r.db.WithContext(ctx).Where("id = ?", id).First(&expenseModel)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, domainerror.ErrExpenseNotFound
		}
		return nil, result.Error
	}
	return expenseModel.ToEntity(), nil
}

// CreateExpense creates a new expense in the database.
func (r *recordRepository) CreateExpense(ctx context.Context, expense *entity.Expense) error {
	return r.db.WithContext(ctx).Create(model.ExpenseFromEntity(expense)).Error
}

// UpdateExpense updates an existing expense in the database.
func (r *recordRepository) UpdateExpense(ctx context.Context, expense *entity.Expense) error {
	return r.db.WithContext(ctx).Save(model.ExpenseFromEntity(expense)).Error
}

// DeleteExpense removes an expense from the database.
func (r *recordRepository) DeleteExpense(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&model.ExpenseModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerror.ErrExpenseNotFound
	}
	return nil
}
