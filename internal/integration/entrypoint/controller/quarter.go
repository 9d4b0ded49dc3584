package controller

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/backoffice/backend/internal/application/usecase/quarter"
	"github.com/backoffice/backend/internal/domain/entity"
	domainerror "github.com/backoffice/backend/internal/domain/error"
	"github.com/backoffice/backend/internal/integration/entrypoint/dto"
	"github.com/backoffice/backend/internal/integration/entrypoint/middleware"
)

// QuarterController handles quarter lifecycle HTTP requests.
type QuarterController struct {
	getUseCase     *quarter.GetOrCreateQuarterUseCase
	statusUseCase  *quarter.IsQuarterClosedUseCase
	targetUseCase  *quarter.SetTargetUseCase
	closeUseCase   *quarter.CloseQuarterUseCase
	archiveUseCase *quarter.ArchiveQuarterUseCase
}

// NewQuarterController creates a new QuarterController instance.
func NewQuarterController(
	getUseCase *quarter.GetOrCreateQuarterUseCase,
	statusUseCase *quarter.IsQuarterClosedUseCase,
	targetUseCase *quarter.SetTargetUseCase,
	closeUseCase *quarter.CloseQuarterUseCase,
	archiveUseCase *quarter.ArchiveQuarterUseCase,
) *QuarterController {
	return &QuarterController{
		getUseCase:     getUseCase,
		statusUseCase:  statusUseCase,
		targetUseCase:  targetUseCase,
		closeUseCase:   closeUseCase,
		archiveUseCase: archiveUseCase,
	}
}

// Get handles GET /quarters/:id requests.
func (c *QuarterController) Get(ctx *gin.Context) {
	output, err := c.getUseCase.Execute(ctx.Request.Context(), quarter.GetOrCreateQuarterInput{
		QuarterID: ctx.Param("id"),
	})
	if err != nil {
		c.handleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToQuarterResponse(output.Quarter))
}

// Status handles GET /quarters/status requests.
// Query parameters:
//   - quarter: quarter number (1-4)
//   - year: calendar year
func (c *QuarterController) Status(ctx *gin.Context) {
	number, numErr := strconv.Atoi(ctx.Query("quarter"))
	year, yearErr := strconv.Atoi(ctx.Query("year"))
	if numErr != nil || yearErr != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "quarter and year query parameters are required",
			Code:  string(domainerror.ErrCodeMissingQuarterFields),
		})
		return
	}

	output, err := c.statusUseCase.Execute(ctx.Request.Context(), quarter.IsQuarterClosedInput{
		Number: number,
		Year:   year,
	})
	if err != nil {
		c.handleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.QuarterStatusResponse{
		QuarterID: output.QuarterID,
		Closed:    output.Closed,
	})
}

// SetTarget handles PUT /quarters/:id/targets/:metric requests.
func (c *QuarterController) SetTarget(ctx *gin.Context) {
	var req dto.SetTargetRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error:   "Invalid request body",
			Code:    string(domainerror.ErrCodeInvalidTargetValue),
			Details: err.Error(),
		})
		return
	}

	output, err := c.targetUseCase.Execute(ctx.Request.Context(), quarter.SetTargetInput{
		QuarterID: ctx.Param("id"),
		Metric:    entity.TargetMetric(ctx.Param("metric")),
		Value:     *req.Value,
	})
	if err != nil {
		c.handleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToTargetResponse(output.Target))
}

// Close handles POST /quarters/:id/close requests.
func (c *QuarterController) Close(ctx *gin.Context) {
	var req dto.CloseQuarterRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error:   "withdrawal_amount is required",
			Code:    string(domainerror.ErrCodeMissingQuarterFields),
			Details: err.Error(),
		})
		return
	}

	closedBy, _ := middleware.GetUserEmailFromContext(ctx)
	output, err := c.closeUseCase.Execute(ctx.Request.Context(), quarter.CloseQuarterInput{
		QuarterID:        ctx.Param("id"),
		WithdrawalAmount: *req.WithdrawalAmount,
		ClosedBy:         closedBy,
	})
	if err != nil {
		c.handleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.CloseQuarterResponse{
		Success:   output.Success,
		Quarter:   dto.ToQuarterResponse(output.Quarter),
		Anomalies: dto.ToAnomalyResponses(output.Anomalies),
	})
}

// Archive handles POST /quarters/:id/archive requests.
func (c *QuarterController) Archive(ctx *gin.Context) {
	output, err := c.archiveUseCase.Execute(ctx.Request.Context(), quarter.ArchiveQuarterInput{
		QuarterID: ctx.Param("id"),
	})
	if err != nil {
		c.handleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToQuarterResponse(output.Quarter))
}

func (c *QuarterController) handleError(ctx *gin.Context, err error) {
	if handleQuarterError(ctx, err) {
		return
	}
	internalError(ctx, err)
}
