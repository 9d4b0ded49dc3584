package controller

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/backoffice/backend/internal/application/usecase/record"
	domainerror "github.com/backoffice/backend/internal/domain/error"
	"github.com/backoffice/backend/internal/integration/entrypoint/dto"
)

// RecordController handles invoice and expense HTTP requests.
type RecordController struct {
	createInvoiceUseCase *record.CreateInvoiceUseCase
	updateInvoiceUseCase *record.UpdateInvoiceUseCase
	deleteInvoiceUseCase *record.DeleteInvoiceUseCase
	createExpenseUseCase *record.CreateExpenseUseCase
	updateExpenseUseCase *record.UpdateExpenseUseCase
	deleteExpenseUseCase *record.DeleteExpenseUseCase
}

// RecordUseCases groups the use cases served by RecordController.
type RecordUseCases struct {
	CreateInvoice *record.CreateInvoiceUseCase
	UpdateInvoice *record.UpdateInvoiceUseCase
	DeleteInvoice *record.DeleteInvoiceUseCase
	CreateExpense *record.CreateExpenseUseCase
	UpdateExpense *record.UpdateExpenseUseCase
	DeleteExpense *record.DeleteExpenseUseCase
}

// NewRecordController creates a new RecordController instance.
func NewRecordController(useCases RecordUseCases) *RecordController {
	return &RecordController{
		createInvoiceUseCase: useCases.CreateInvoice,
		updateInvoiceUseCase: useCases.UpdateInvoice,
		deleteInvoiceUseCase: useCases.DeleteInvoice,
		createExpenseUseCase: useCases.CreateExpense,
		updateExpenseUseCase: useCases.UpdateExpense,
		deleteExpenseUseCase: useCases.DeleteExpense,
	}
}

// CreateInvoice handles POST /invoices requests.
func (c *RecordController) CreateInvoice(ctx *gin.Context) {
	var req dto.CreateInvoiceRequest
	if !bindRecordRequest(ctx, &req) {
		return
	}

	issueDate, err := parseRecordDate(req.IssueDate)
	if err != nil {
		c.handleRecordError(ctx, err)
		return
	}
	input := record.CreateInvoiceInput{
		InvoiceNumber: req.InvoiceNumber,
		Amount:        *req.Amount,
		Currency:      req.Currency,
		IssueDate:     issueDate,
		Status:        req.Status,
	}
	if req.ClientID != nil {
		clientID := uuid.MustParse(*req.ClientID)
		input.ClientID = &clientID
	}
	if req.PaidDate != nil && *req.PaidDate != "" {
		paid, err := parseRecordDate(*req.PaidDate)
		if err != nil {
			c.handleRecordError(ctx, err)
			return
		}
		input.PaidDate = &paid
	}

	output, err := c.createInvoiceUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		c.handleRecordError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.ToInvoiceResponse(output.Invoice))
}

// UpdateInvoice handles PATCH /invoices/:id requests.
func (c *RecordController) UpdateInvoice(ctx *gin.Context) {
	id, ok := recordID(ctx, domainerror.ErrCodeInvoiceNotFound)
	if !ok {
		return
	}

	var req dto.UpdateInvoiceRequest
	if !bindRecordRequest(ctx, &req) {
		return
	}

	input := record.UpdateInvoiceInput{
		InvoiceID: id,
		Amount:    req.Amount,
		Status:    req.Status,
	}
	if req.IssueDate != nil {
		issueDate, err := parseRecordDate(*req.IssueDate)
		if err != nil {
			c.handleRecordError(ctx, err)
			return
		}
		input.IssueDate = &issueDate
	}
	if req.PaidDate != nil {
		if *req.PaidDate == "" {
			input.ClearPaidDate = true
		} else {
			paid, err := parseRecordDate(*req.PaidDate)
			if err != nil {
				c.handleRecordError(ctx, err)
				return
			}
			input.PaidDate = &paid
		}
	}

	output, err := c.updateInvoiceUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		c.handleRecordError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToInvoiceResponse(output.Invoice))
}

// DeleteInvoice handles DELETE /invoices/:id requests.
func (c *RecordController) DeleteInvoice(ctx *gin.Context) {
	id, ok := recordID(ctx, domainerror.ErrCodeInvoiceNotFound)
	if !ok {
		return
	}

	if _, err := c.deleteInvoiceUseCase.Execute(ctx.Request.Context(), record.DeleteInvoiceInput{InvoiceID: id}); err != nil {
		c.handleRecordError(ctx, err)
		return
	}

	ctx.Status(http.StatusNoContent)
}

// CreateExpense handles POST /expenses requests.
func (c *RecordController) CreateExpense(ctx *gin.Context) {
	var req dto.CreateExpenseRequest
	if !bindRecordRequest(ctx, &req) {
		return
	}

	date, err := parseRecordDate(req.Date)
	if err != nil {
		c.handleRecordError(ctx, err)
		return
	}

	output, err := c.createExpenseUseCase.Execute(ctx.Request.Context(), record.CreateExpenseInput{
		Description: req.Description,
		Amount:      *req.Amount,
		Date:        date,
		Category:    req.Category,
		Status:      req.Status,
	})
	if err != nil {
		c.handleRecordError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.ToExpenseResponse(output.Expense))
}

// UpdateExpense handles PATCH /expenses/:id requests.
func (c *RecordController) UpdateExpense(ctx *gin.Context) {
	id, ok := recordID(ctx, domainerror.ErrCodeExpenseNotFound)
	if !ok {
		return
	}

	var req dto.UpdateExpenseRequest
	if !bindRecordRequest(ctx, &req) {
		return
	}

	input := record.UpdateExpenseInput{
		ExpenseID:   id,
		Description: req.Description,
		Amount:      req.Amount,
		Category:    req.Category,
		Status:      req.Status,
	}
	if req.Date != nil {
		date, err := parseRecordDate(*req.Date)
		if err != nil {
			c.handleRecordError(ctx, err)
			return
		}
		input.Date = &date
	}

	output, err := c.updateExpenseUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		c.handleRecordError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToExpenseResponse(output.Expense))
}

// DeleteExpense handles DELETE /expenses/:id requests.
func (c *RecordController) DeleteExpense(ctx *gin.Context) {
	id, ok := recordID(ctx, domainerror.ErrCodeExpenseNotFound)
	if !ok {
		return
	}

	if _, err := c.deleteExpenseUseCase.Execute(ctx.Request.Context(), record.DeleteExpenseInput{ExpenseID: id}); err != nil {
		c.handleRecordError(ctx, err)
		return
	}

	ctx.Status(http.StatusNoContent)
}

func bindRecordRequest(ctx *gin.Context, req interface{}) bool {
	if err := ctx.ShouldBindJSON(req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error:   "Invalid request body",
			Code:    string(domainerror.ErrCodeMissingRecordFields),
			Details: err.Error(),
		})
		return false
	}
	return true
}

// recordID parses the :id path parameter. A malformed ID cannot match any
// record, so it is answered as not found.
func recordID(ctx *gin.Context, notFound domainerror.RecordErrorCode) (uuid.UUID, bool) {
	id, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusNotFound, dto.ErrorResponse{
			Error: "record not found",
			Code:  string(notFound),
		})
		return uuid.Nil, false
	}
	return id, true
}

func parseRecordDate(value string) (time.Time, error) {
	date, err := time.Parse(dto.DateLayout, value)
	if err != nil {
		return time.Time{}, domainerror.NewRecordError(
			domainerror.ErrCodeInvalidRecordDate,
			"invalid date format, expected YYYY-MM-DD",
			err,
		)
	}
	return date, nil
}

// handleRecordError handles record errors and returns appropriate HTTP responses.
// Writes into a closed quarter surface as quarter errors.
func (c *RecordController) handleRecordError(ctx *gin.Context, err error) {
	if handleQuarterError(ctx, err) {
		return
	}

	var recErr *domainerror.RecordError
	if errors.As(err, &recErr) {
		ctx.JSON(c.getStatusCodeForRecordError(recErr.Code), dto.ErrorResponse{
			Error: recErr.Message,
			Code:  string(recErr.Code),
		})
		return
	}

	internalError(ctx, err)
}

// getStatusCodeForRecordError maps record error codes to HTTP status codes.
func (c *RecordController) getStatusCodeForRecordError(code domainerror.RecordErrorCode) int {
	switch code {
	case domainerror.ErrCodeInvoiceNotFound, domainerror.ErrCodeExpenseNotFound:
		return http.StatusNotFound
	case domainerror.ErrCodeInvalidAmount,
		domainerror.ErrCodeMissingRecordDate,
		domainerror.ErrCodeMissingRecordFields,
		domainerror.ErrCodeInvalidRecordDate:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
