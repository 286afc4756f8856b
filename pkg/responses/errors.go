package responses

import "fmt"

// Business error codes
const (
	CodeSuccess         = 2000000
	CodeBadRequest      = 4000000
	CodeUnauthorized    = 4010000
	CodeForbidden       = 4030000
	CodeNotFound        = 4040000
	CodeConflict        = 4009000
	CodeInternalError   = 5000000
	CodeDatabaseError   = 5001000
	CodeFetchError      = 5002000
	CodeValidationError = 5003000
)

// AppError carries a business code alongside the wrapped cause.
type AppError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Err     error  `json:"-"`
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%d] %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("[%d] %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// New creates an AppError without a cause.
func New(code int, message string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
	}
}

// Wrap attaches a business code and message to an underlying error.
func Wrap(code int, message string, err error) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// Predefined errors
var (
	ErrBadRequest     = New(CodeBadRequest, "invalid request parameters")
	ErrUnauthorized   = New(CodeUnauthorized, "unauthorized")
	ErrForbidden      = New(CodeForbidden, "forbidden")
	ErrNotFound       = New(CodeNotFound, "resource not found")
	ErrInternalError  = New(CodeInternalError, "internal server error")
	ErrDatabaseError  = New(CodeDatabaseError, "database error")
	ErrRecordNotFound = New(CodeNotFound, "record not found")
	ErrInvalidToken   = New(CodeUnauthorized, "invalid token")

	ErrSyncAlreadyRunning = New(CodeConflict, "a sync run is already in progress")
	ErrSyncNotRunning     = New(CodeConflict, "no sync run is in progress")
)
