package controller

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/backoffice/backend/internal/application/usecase/dashboard"
	"github.com/backoffice/backend/internal/application/usecase/finance"
	"github.com/backoffice/backend/internal/application/usecase/quarter"
	"github.com/backoffice/backend/internal/application/usecase/record"
	"github.com/backoffice/backend/internal/domain/entity"
	"github.com/backoffice/backend/internal/integration/entrypoint/middleware"
	"github.com/backoffice/backend/internal/integration/persistence"
	"github.com/backoffice/backend/internal/integration/persistence/model"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type fixedClock struct{ now time.Time }

func (c fixedClock) Now() time.Time { return c.now }

func day(year int, month time.Month, d int) time.Time {
	return time.Date(year, month, d, 0, 0, 0, 0, time.UTC)
}

// newTestRouter wires the controllers over an in-memory database seeded with
// the Q1-2025 books: 100000 revenue, 20000 expenses, 30000 salaries.
func newTestRouter(t *testing.T) *gin.Engine {
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

	paidOn := day(2025, time.March, 5)
	rows := []interface{}{
		model.InvoiceFromEntity(entity.NewInvoice("INV-1", nil, "60000", "USD", day(2025, time.January, 15), "Paid", nil)),
		model.InvoiceFromEntity(entity.NewInvoice("INV-2", nil, "40000", "USD", day(2025, time.March, 10), "sent", &paidOn)),
		model.InvoiceFromEntity(entity.NewInvoice("INV-3", nil, "5000", "USD", day(2025, time.February, 1), "Draft", nil)),
		model.ExpenseFromEntity(entity.NewExpense("Rent", "20000", day(2025, time.January, 1), "rent", "")),
		model.SalaryPaymentFromEntity(&entity.SalaryPayment{ID: uuid.New(), EmployeeID: uuid.New(), Amount: "30000", Month: "2025-02", Status: "paid"}),
		model.ClientFromEntity(&entity.Client{ID: uuid.New(), Name: "Acme", Status: "Active", Retainer: "3000"}),
	}
	for _, row := range rows {
		require.NoError(t, db.Create(row).Error)
	}

	clock := fixedClock{now: time.Date(2025, time.February, 10, 9, 0, 0, 0, time.UTC)}
	quarters := persistence.NewQuarterRepository(db)
	reader := persistence.NewRecordReader(db)
	writer := persistence.NewRecordWriter(db)

	aggregator := finance.NewAggregator(reader, 0)
	getOrCreate := quarter.NewGetOrCreateQuarterUseCase(quarters)
	guard := quarter.NewPeriodGuard(quarters)

	dashboards := NewDashboardController(
		dashboard.NewGetDashboardStatsUseCase(aggregator, getOrCreate),
		dashboard.NewGetDashboardKPIsUseCase(finance.NewKPIEngine(aggregator, getOrCreate)),
		dashboard.NewGetTargetProgressUseCase(finance.NewTargetTracker(aggregator, getOrCreate, decimal.NewFromInt(5000))),
		clock,
	)
	quartersCtrl := NewQuarterController(
		getOrCreate,
		quarter.NewIsQuarterClosedUseCase(quarters),
		quarter.NewSetTargetUseCase(quarters),
		quarter.NewCloseQuarterUseCase(quarters, aggregator, nil, clock),
		quarter.NewArchiveQuarterUseCase(quarters, clock),
	)
	records := NewRecordController(RecordUseCases{
		CreateInvoice: record.NewCreateInvoiceUseCase(writer, guard, "USD"),
		UpdateInvoice: record.NewUpdateInvoiceUseCase(writer, guard),
		DeleteInvoice: record.NewDeleteInvoiceUseCase(writer, guard),
		CreateExpense: record.NewCreateExpenseUseCase(writer, guard),
		UpdateExpense: record.NewUpdateExpenseUseCase(writer, guard),
		DeleteExpense: record.NewDeleteExpenseUseCase(writer, guard),
	})
	health := NewHealthController(func(ctx context.Context) error { return sqlDB.PingContext(ctx) }, nil, clock)

	router := gin.New()
	router.Use(func(c *gin.Context) {
		c.Set(string(middleware.UserEmailKey), "owner@example.com")
		c.Next()
	})
	router.GET("/health", health.Check)
	router.GET("/dashboard/stats", dashboards.GetStats)
	router.GET("/dashboard/kpis", dashboards.GetKPIs)
	router.GET("/dashboard/targets", dashboards.GetTargets)
	router.GET("/quarters/status", quartersCtrl.Status)
	router.GET("/quarters/:id", quartersCtrl.Get)
	router.PUT("/quarters/:id/targets/:metric", quartersCtrl.SetTarget)
	router.POST("/quarters/:id/close", quartersCtrl.Close)
	router.POST("/quarters/:id/archive", quartersCtrl.Archive)
	router.POST("/invoices", records.CreateInvoice)
	router.PATCH("/invoices/:id", records.UpdateInvoice)
	router.DELETE("/invoices/:id", records.DeleteInvoice)
	router.POST("/expenses", records.CreateExpense)
	router.DELETE("/expenses/:id", records.DeleteExpense)
	return router
}

func do(t *testing.T, router *gin.Engine, method, path, body string) (*httptest.ResponseRecorder, map[string]interface{}) {
	t.Helper()
	var reader *bytes.Reader
	if body == "" {
		reader = bytes.NewReader(nil)
	} else {
		reader = bytes.NewReader([]byte(body))
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	var decoded map[string]interface{}
	if w.Body.Len() > 0 {
		_ = json.Unmarshal(w.Body.Bytes(), &decoded)
	}
	return w, decoded
}

func TestHealthController_Check(t *testing.T) {
	router := newTestRouter(t)

	w, body := do(t, router, http.MethodGet, "/health", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "connected", body["database"])
	assert.Equal(t, "disabled", body["redis"])
}

func TestDashboardController_GetStats(t *testing.T) {
	router := newTestRouter(t)

	t.Run("defaults to the current quarter", func(t *testing.T) {
		w, body := do(t, router, http.MethodGet, "/dashboard/stats", "")
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		assert.Equal(t, "100000", body["quarterly_revenue"])
		assert.Equal(t, "50000", body["cash_on_hand"])
		assert.Equal(t, "active", body["quarter_status"])
		period := body["period"].(map[string]interface{})
		assert.Equal(t, "Q1-2025", period["quarter_id"])
	})

	t.Run("explicit date selects another quarter", func(t *testing.T) {
		w, body := do(t, router, http.MethodGet, "/dashboard/stats?date=2025-05-01", "")
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "0", body["quarterly_revenue"])
	})

	t.Run("malformed date", func(t *testing.T) {
		w, body := do(t, router, http.MethodGet, "/dashboard/stats?date=01/02/2025", "")
		require.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "DSH-010006", body["code"])
	})
}

func TestDashboardController_KPIsAndTargets(t *testing.T) {
	router := newTestRouter(t)

	w, body := do(t, router, http.MethodGet, "/dashboard/kpis?date=2025-02-10", "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.NotEmpty(t, body["kpis"])

	w, _ = do(t, router, http.MethodGet, "/dashboard/targets?date=2025-02-10", "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
}

func TestQuarterController_CloseFlow(t *testing.T) {
	router := newTestRouter(t)

	w, body := do(t, router, http.MethodPost, "/quarters/Q1-2025/close", `{"withdrawal_amount": "60000"}`)
	require.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Equal(t, "QTR-010003", body["code"])

	w, body = do(t, router, http.MethodPost, "/quarters/Q1-2025/close", `{"withdrawal_amount": "-1"}`)
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "QTR-010002", body["code"])

	w, body = do(t, router, http.MethodPost, "/quarters/Q1-2025/close", `{}`)
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "QTR-010006", body["code"])

	w, body = do(t, router, http.MethodPost, "/quarters/Q1-2025/close", `{"withdrawal_amount": "50000"}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, true, body["success"])
	q := body["quarter"].(map[string]interface{})
	assert.Equal(t, "closed", q["status"])
	snapshot := q["snapshot"].(map[string]interface{})
	assert.Equal(t, "owner@example.com", snapshot["closed_by"])
	assert.Equal(t, "50000", snapshot["cash_on_hand"])

	w, body = do(t, router, http.MethodPost, "/quarters/Q1-2025/close", `{"withdrawal_amount": "0"}`)
	require.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "QTR-020001", body["code"])

	w, body = do(t, router, http.MethodGet, "/quarters/status?quarter=1&year=2025", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, true, body["closed"])

	w, body = do(t, router, http.MethodPost, "/quarters/Q1-2025/archive", "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, "archived", body["status"])

	w, body = do(t, router, http.MethodPost, "/quarters/Q2-2025/archive", "")
	require.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "QTR-030001", body["code"])

	_, _ = do(t, router, http.MethodGet, "/quarters/Q2-2025", "")
	w, body = do(t, router, http.MethodPost, "/quarters/Q2-2025/archive", "")
	require.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "QTR-020002", body["code"])
}

func TestQuarterController_GetAndStatus(t *testing.T) {
	router := newTestRouter(t)

	w, body := do(t, router, http.MethodGet, "/quarters/Q3-2025", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "active", body["status"])
	assert.Equal(t, "2025-07-01", body["start_date"])

	w, body = do(t, router, http.MethodGet, "/quarters/Q5-2025", "")
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "QTR-010001", body["code"])

	w, body = do(t, router, http.MethodGet, "/quarters/status?quarter=4&year=2024", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, false, body["closed"])

	w, body = do(t, router, http.MethodGet, "/quarters/status?year=2024", "")
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "QTR-010006", body["code"])
}

func TestQuarterController_SetTarget(t *testing.T) {
	router := newTestRouter(t)

	w, body := do(t, router, http.MethodPut, "/quarters/Q1-2025/targets/revenue", `{"value": "120000"}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, "120000", body["value"])

	w, body = do(t, router, http.MethodPut, "/quarters/Q1-2025/targets/bogus", `{"value": "1"}`)
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "QTR-010004", body["code"])

	w, body = do(t, router, http.MethodPut, "/quarters/Q1-2025/targets/revenue", `{"value": "-5"}`)
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "QTR-010005", body["code"])

	w, body = do(t, router, http.MethodGet, "/quarters/Q1-2025", "")
	require.Equal(t, http.StatusOK, w.Code)
	targets := body["targets"].(map[string]interface{})
	assert.Equal(t, "120000", targets["revenue"])
}

func TestRecordController_PeriodLock(t *testing.T) {
	router := newTestRouter(t)

	w, body := do(t, router, http.MethodPost, "/invoices",
		`{"invoice_number": "INV-10", "amount": "1500", "issue_date": "2025-02-20", "status": "Draft"}`)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	invoiceID := body["id"].(string)
	assert.Equal(t, "USD", body["currency"])

	w, body = do(t, router, http.MethodPatch, "/invoices/"+invoiceID, `{"status": "Paid", "paid_date": "2025-02-25"}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, "2025-02-25", body["paid_date"])

	w, _ = do(t, router, http.MethodPost, "/quarters/Q1-2025/close", `{"withdrawal_amount": "0"}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w, body = do(t, router, http.MethodPatch, "/invoices/"+invoiceID, `{"status": "Void"}`)
	require.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "QTR-020003", body["code"])

	w, body = do(t, router, http.MethodDelete, "/invoices/"+invoiceID, "")
	require.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "QTR-020003", body["code"])

	w, body = do(t, router, http.MethodPost, "/expenses",
		`{"description": "Late bill", "amount": "100", "date": "2025-03-31"}`)
	require.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "QTR-020003", body["code"])

	w, body = do(t, router, http.MethodPost, "/expenses",
		`{"description": "Hosting", "amount": "100", "date": "2025-04-01"}`)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w, _ = do(t, router, http.MethodDelete, "/expenses/"+body["id"].(string), "")
	assert.Equal(t, http.StatusNoContent, w.Code)
}

func TestRecordController_Validation(t *testing.T) {
	router := newTestRouter(t)

	tests := []struct {
		name   string
		method string
		path   string
		body   string
		status int
		code   string
	}{
		{"malformed date", http.MethodPost, "/invoices", `{"invoice_number": "X", "amount": "1", "issue_date": "20/02/2025"}`, http.StatusBadRequest, "REC-010004"},
		{"negative amount", http.MethodPost, "/expenses", `{"description": "X", "amount": "-1", "date": "2025-05-01"}`, http.StatusBadRequest, "REC-010001"},
		{"missing fields", http.MethodPost, "/expenses", `{"amount": "1"}`, http.StatusBadRequest, "REC-010003"},
		{"unknown invoice", http.MethodPatch, "/invoices/" + uuid.NewString(), `{"status": "Paid"}`, http.StatusNotFound, "REC-020001"},
		{"malformed id", http.MethodDelete, "/expenses/not-a-uuid", "", http.StatusNotFound, "REC-020002"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, body := do(t, router, tt.method, tt.path, tt.body)
			require.Equal(t, tt.status, w.Code, w.Body.String())
			assert.Equal(t, tt.code, body["code"])
		})
	}
}
