// Package error defines domain-specific errors for the back-office application.
package error

import "errors"

// Email domain errors.
var (
	// ErrNoRecipients is returned when a notification has nobody to go to.
	ErrNoRecipients = errors.New("no email recipients configured")
)

// EmailErrorCode defines error codes for email errors.
// Format: EMAIL-XXYYYY where XX is category and YYYY is specific error.
type EmailErrorCode string

const (
	// Configuration errors (01XXXX)
	ErrCodeNoRecipients EmailErrorCode = "EMAIL-010001"

	// Send errors (02XXXX)
	ErrCodePermanentEmailFailure EmailErrorCode = "EMAIL-020002"
	ErrCodeTemporaryEmailFailure EmailErrorCode = "EMAIL-020003"

	// Template errors (03XXXX)
	ErrCodeTemplateRenderFailed EmailErrorCode = "EMAIL-030002"
)

// EmailError is a coded email error.
type EmailError = CodedError[EmailErrorCode]

// NewEmailError creates a new EmailError with the given code and message.
func NewEmailError(code EmailErrorCode, message string, err error) *EmailError {
	return newCodedError(code, message, err)
}

// IsPermanentEmailFailure reports whether err is an email failure that retrying cannot fix.
func IsPermanentEmailFailure(err error) bool {
	var emailErr *EmailError
	return errors.As(err, &emailErr) && emailErr.Code == ErrCodePermanentEmailFailure
}
