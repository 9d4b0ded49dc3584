// Package error defines domain-specific errors for the back-office application.
package error

import "errors"

// Dashboard domain errors.
var (
	// ErrInvalidDateFormat is returned when a reference date cannot be parsed.
	ErrInvalidDateFormat = errors.New("invalid date format, expected YYYY-MM-DD")

	// ErrMissingReferenceDate is returned when a report is requested without a reference date.
	ErrMissingReferenceDate = errors.New("reference date is required")
)

// DashboardErrorCode defines error codes for dashboard errors.
// Format: DSH-XXYYYY where XX is category and YYYY is specific error.
type DashboardErrorCode string

const (
	// Validation errors (01XXXX)
	ErrCodeInvalidDateFormat    DashboardErrorCode = "DSH-010006"
	ErrCodeMissingReferenceDate DashboardErrorCode = "DSH-010007"
)

// DashboardError is a coded dashboard error.
type DashboardError = CodedError[DashboardErrorCode]

// NewDashboardError creates a new DashboardError with the given code and message.
func NewDashboardError(code DashboardErrorCode, message string, err error) *DashboardError {
	return newCodedError(code, message, err)
}
