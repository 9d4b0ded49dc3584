package controller

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	domainerror "github.com/backoffice/backend/internal/domain/error"
	"github.com/backoffice/backend/internal/integration/entrypoint/dto"
)

// internalError logs err and answers with a generic 500.
func internalError(ctx *gin.Context, err error) {
	slog.ErrorContext(ctx.Request.Context(), "Request failed",
		"method", ctx.Request.Method,
		"path", ctx.FullPath(),
		"error", err,
	)
	ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{
		Error: "An internal error occurred",
	})
}

// handleQuarterError maps quarter errors to HTTP responses. It reports whether
// err was a quarter error.
func handleQuarterError(ctx *gin.Context, err error) bool {
	var qErr *domainerror.QuarterError
	if !errors.As(err, &qErr) {
		return false
	}

	ctx.JSON(statusCodeForQuarterError(qErr.Code), dto.ErrorResponse{
		Error: qErr.Message,
		Code:  string(qErr.Code),
	})
	return true
}

// statusCodeForQuarterError maps quarter error codes to HTTP status codes.
func statusCodeForQuarterError(code domainerror.QuarterErrorCode) int {
	switch code {
	case domainerror.ErrCodeWithdrawalExceedsCash:
		return http.StatusUnprocessableEntity
	case domainerror.ErrCodeInvalidQuarterID,
		domainerror.ErrCodeNegativeWithdrawal,
		domainerror.ErrCodeInvalidTargetMetric,
		domainerror.ErrCodeInvalidTargetValue,
		domainerror.ErrCodeMissingQuarterFields:
		return http.StatusBadRequest
	case domainerror.ErrCodeQuarterNotActive,
		domainerror.ErrCodeQuarterNotClosed,
		domainerror.ErrCodePeriodClosed:
		return http.StatusConflict
	case domainerror.ErrCodeQuarterNotFound:
		return http.StatusNotFound
	case domainerror.ErrCodeOwnerRequired:
		return http.StatusForbidden
	case domainerror.ErrCodeCloseRateLimited:
		return http.StatusTooManyRequests
	default:
		return http.StatusInternalServerError
	}
}
