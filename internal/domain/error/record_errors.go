// Package error defines domain-specific errors for the back-office application.
package error

import "errors"

// Record (invoice / expense) domain errors.
var (
	// ErrInvoiceNotFound is returned when an invoice is not found.
	ErrInvoiceNotFound = errors.New("invoice not found")

	// ErrExpenseNotFound is returned when an expense is not found.
	ErrExpenseNotFound = errors.New("expense not found")

	// ErrInvalidAmount is returned when an amount is not a non-negative number.
	ErrInvalidAmount = errors.New("amount must be a non-negative number")

	// ErrMissingRecordDate is returned when a record is missing its date.
	ErrMissingRecordDate = errors.New("record date is required")
)

// RecordErrorCode defines error codes for record errors.
// Format: REC-XXYYYY where XX is category and YYYY is specific error.
type RecordErrorCode string

const (
	// Validation errors (01XXXX)
	ErrCodeInvalidAmount       RecordErrorCode = "REC-010001"
	ErrCodeMissingRecordDate   RecordErrorCode = "REC-010002"
	ErrCodeMissingRecordFields RecordErrorCode = "REC-010003"
	ErrCodeInvalidRecordDate   RecordErrorCode = "REC-010004"

	// Lookup errors (02XXXX)
	ErrCodeInvoiceNotFound RecordErrorCode = "REC-020001"
	ErrCodeExpenseNotFound RecordErrorCode = "REC-020002"
)

// RecordError is a coded record error.
type RecordError = CodedError[RecordErrorCode]

// NewRecordError creates a new RecordError with the given code and message.
func NewRecordError(code RecordErrorCode, message string, err error) *RecordError {
	return newCodedError(code, message, err)
}
