// Package error defines domain-specific errors for the back-office application.
package error

import "errors"

// Quarter domain errors.
var (
	// ErrInvalidQuarterID is returned when a quarter identifier is malformed.
	ErrInvalidQuarterID = errors.New("invalid quarter id")

	// ErrQuarterNotFound is returned when no quarter exists for an identifier.
	ErrQuarterNotFound = errors.New("quarter not found")

	// ErrNegativeWithdrawal is returned when a withdrawal amount is below zero.
	ErrNegativeWithdrawal = errors.New("withdrawal amount must not be negative")

	// ErrWithdrawalExceedsCash is returned when a withdrawal is larger than the cash on hand.
	ErrWithdrawalExceedsCash = errors.New("withdrawal amount exceeds cash on hand")

	// ErrInvalidTargetMetric is returned when a target metric is unknown.
	ErrInvalidTargetMetric = errors.New("invalid target metric")

	// ErrInvalidTargetValue is returned when a target value is negative.
	ErrInvalidTargetValue = errors.New("target value must not be negative")

	// ErrQuarterNotActive is returned when closing a quarter that is already closed or archived.
	ErrQuarterNotActive = errors.New("quarter is not active")

	// ErrQuarterNotClosed is returned when archiving a quarter that has not been closed.
	ErrQuarterNotClosed = errors.New("quarter is not closed")

	// ErrPeriodClosed is returned when writing a record dated inside a closed quarter.
	ErrPeriodClosed = errors.New("period belongs to a closed quarter")
)

// QuarterErrorCode defines error codes for quarter errors.
// Format: QTR-XXYYYY where XX is category and YYYY is specific error.
type QuarterErrorCode string

const (
	// Validation errors (01XXXX)
	ErrCodeInvalidQuarterID      QuarterErrorCode = "QTR-010001"
	ErrCodeNegativeWithdrawal    QuarterErrorCode = "QTR-010002"
	ErrCodeWithdrawalExceedsCash QuarterErrorCode = "QTR-010003"
	ErrCodeInvalidTargetMetric   QuarterErrorCode = "QTR-010004"
	ErrCodeInvalidTargetValue    QuarterErrorCode = "QTR-010005"
	ErrCodeMissingQuarterFields  QuarterErrorCode = "QTR-010006"

	// State errors (02XXXX)
	ErrCodeQuarterNotActive QuarterErrorCode = "QTR-020001"
	ErrCodeQuarterNotClosed QuarterErrorCode = "QTR-020002"
	ErrCodePeriodClosed     QuarterErrorCode = "QTR-020003"

	// Lookup errors (03XXXX)
	ErrCodeQuarterNotFound QuarterErrorCode = "QTR-030001"

	// Permission errors (04XXXX)
	ErrCodeOwnerRequired    QuarterErrorCode = "QTR-040001"
	ErrCodeCloseRateLimited QuarterErrorCode = "QTR-040002"

	// Internal errors (99XXXX)
	ErrCodeQuarterInternalError QuarterErrorCode = "QTR-990001"
)

// QuarterError is a coded quarter error.
type QuarterError = CodedError[QuarterErrorCode]

// NewQuarterError creates a new QuarterError with the given code and message.
func NewQuarterError(code QuarterErrorCode, message string, err error) *QuarterError {
	return newCodedError(code, message, err)
}
