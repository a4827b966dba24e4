package errs

import (
	"fmt"
	"net/http"

	"roomchat/internal/pkg/logx"
)

// CustomError is the error structure returned by HTTP handlers.
// It carries a business code, a client-facing message and the HTTP status to respond with.
type CustomError struct {
	// Code is the business error code (see constants definition).
	Code int

	// Message is the user-friendly error description.
	Message string

	// Status is the HTTP status code corresponding to this error.
	Status int
}

// Error implements the error interface.
func (e CustomError) Error() string {
	return fmt.Sprintf("Error Code %d (HTTP %d): %s", e.Code, e.Status, e.Message)
}

// NewError returns a copy of the template registered for code.
// Unknown codes fall back to ErrUnknown. When code is ErrUnknown and the first detail is an
// error, that error is logged so the cause is not lost behind the generic client message.
func NewError(code int, details ...any) *CustomError {
	tmpl, ok := errorMap[code]
	if !ok {
		logx.Error(
			fmt.Errorf("error code %d is not registered", code),
			"Unknown error code requested",
			"requested_code", code,
		)
		tmpl = errorMap[ErrUnknown]
	}

	customErr := tmpl
	if customErr.Status == 0 {
		customErr.Status = http.StatusOK
	}

	if customErr.Code == ErrUnknown && len(details) > 0 {
		if cause, ok := details[0].(error); ok {
			logx.Error(cause, "Handling ErrUnknown with underlying error")
		}
	}

	return &customErr
}
