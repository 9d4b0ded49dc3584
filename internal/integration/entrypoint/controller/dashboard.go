package controller

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/backoffice/backend/internal/application/adapter"
	"github.com/backoffice/backend/internal/application/usecase/dashboard"
	domainerror "github.com/backoffice/backend/internal/domain/error"
	"github.com/backoffice/backend/internal/integration/entrypoint/dto"
)

// DashboardController handles dashboard-related HTTP requests.
type DashboardController struct {
	statsUseCase   *dashboard.GetDashboardStatsUseCase
	kpisUseCase    *dashboard.GetDashboardKPIsUseCase
	targetsUseCase *dashboard.GetTargetProgressUseCase
	clock          adapter.Clock
}

// NewDashboardController creates a new DashboardController instance.
func NewDashboardController(
	statsUseCase *dashboard.GetDashboardStatsUseCase,
	kpisUseCase *dashboard.GetDashboardKPIsUseCase,
	targetsUseCase *dashboard.GetTargetProgressUseCase,
	clock adapter.Clock,
) *DashboardController {
	return &DashboardController{
		statsUseCase:   statsUseCase,
		kpisUseCase:    kpisUseCase,
		targetsUseCase: targetsUseCase,
		clock:          clock,
	}
}

// GetStats handles GET /dashboard/stats requests.
// Query parameters:
//   - date: reference date (YYYY-MM-DD), defaults to today
func (c *DashboardController) GetStats(ctx *gin.Context) {
	referenceDate, ok := c.referenceDate(ctx)
	if !ok {
		return
	}

	output, err := c.statsUseCase.Execute(ctx.Request.Context(), dashboard.GetDashboardStatsInput{
		ReferenceDate: referenceDate,
	})
	if err != nil {
		c.handleDashboardError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToDashboardStatsResponse(output))
}

// GetKPIs handles GET /dashboard/kpis requests.
func (c *DashboardController) GetKPIs(ctx *gin.Context) {
	referenceDate, ok := c.referenceDate(ctx)
	if !ok {
		return
	}

	output, err := c.kpisUseCase.Execute(ctx.Request.Context(), dashboard.GetDashboardKPIsInput{
		ReferenceDate: referenceDate,
	})
	if err != nil {
		c.handleDashboardError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToDashboardKPIsResponse(output))
}

// GetTargets handles GET /dashboard/targets requests.
func (c *DashboardController) GetTargets(ctx *gin.Context) {
	referenceDate, ok := c.referenceDate(ctx)
	if !ok {
		return
	}

	output, err := c.targetsUseCase.Execute(ctx.Request.Context(), dashboard.GetTargetProgressInput{
		ReferenceDate: referenceDate,
	})
	if err != nil {
		c.handleDashboardError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToDashboardTargetsResponse(output))
}

// referenceDate reads the date query parameter, writing a 400 response when it is malformed.
func (c *DashboardController) referenceDate(ctx *gin.Context) (time.Time, bool) {
	raw := ctx.Query("date")
	if raw == "" {
		return c.clock.Now(), true
	}

	date, err := time.Parse(dto.DateLayout, raw)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: domainerror.ErrInvalidDateFormat.Error(),
			Code:  string(domainerror.ErrCodeInvalidDateFormat),
		})
		return time.Time{}, false
	}
	return date, true
}

// handleDashboardError handles dashboard errors and returns appropriate HTTP responses.
func (c *DashboardController) handleDashboardError(ctx *gin.Context, err error) {
	var dashErr *domainerror.DashboardError
	if errors.As(err, &dashErr) {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: dashErr.Message,
			Code:  string(dashErr.Code),
		})
		return
	}

	internalError(ctx, err)
}
