package apperrors

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrConflict indicates the request conflicts with the current state of the resource.
var ErrConflict = errors.New("resource state conflict")

// ErrForbidden indicates the actor may not perform the operation.
var ErrForbidden = errors.New("forbidden")

// Ledger errors.
var (
	// ErrUnbalancedEntry means the debit and credit totals of an entry differ. It signals a
	// construction bug and must never reach persistence.
	ErrUnbalancedEntry = errors.New("journal entry does not balance")

	ErrPeriodClosed    = errors.New("fiscal period is closed or does not contain the date")
	ErrNoOpenPeriod    = errors.New("no open fiscal period contains the date")
	ErrAmbiguousPeriod = errors.New("more than one open fiscal period contains the date")

	// ErrFxRateUnavailable is retryable once rate data has been supplied.
	ErrFxRateUnavailable = errors.New("exchange rate unavailable")

	ErrAlreadyReversed = errors.New("journal entry already reversed")
	ErrAlreadyPosted   = errors.New("document already posted")

	ErrNotApproved = errors.New("posting not approved")
)

// IsBenign reports whether err only says there was nothing left to do.
func IsBenign(err error) bool {
	return errors.Is(err, ErrAlreadyPosted) || errors.Is(err, ErrAlreadyReversed)
}

// AppError carries an HTTP status code and a client-safe message alongside the cause.
type AppError struct {
	Code    int
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err == nil {
		return e.Message
	}
	return fmt.Sprintf("%s: %v", e.Message, e.Err)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// NewAppError builds an AppError.
func NewAppError(code int, message string, err error) *AppError {
	return &AppError{Code: code, Message: message, Err: err}
}

// NewNotFoundError wraps ErrNotFound for the named resource.
func NewNotFoundError(resource string) *AppError {
	return NewAppError(http.StatusNotFound, resource+" not found", ErrNotFound)
}

// NewValidationError wraps ErrValidation with a client-facing message.
func NewValidationError(message string) *AppError {
	return NewAppError(http.StatusBadRequest, message, ErrValidation)
}

// HTTPStatus maps an error from the ledger to the status code returned to API clients.
func HTTPStatus(err error) int {
	var appErr *AppError
	if errors.As(err, &appErr) && appErr.Code != 0 {
		return appErr.Code
	}
	switch {
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrValidation), errors.Is(err, ErrUnbalancedEntry):
		return http.StatusBadRequest
	case errors.Is(err, ErrForbidden), errors.Is(err, ErrNotApproved):
		return http.StatusForbidden
	case errors.Is(err, ErrAlreadyPosted), errors.Is(err, ErrAlreadyReversed),
		errors.Is(err, ErrConflict), errors.Is(err, ErrDuplicate):
		return http.StatusConflict
	case errors.Is(err, ErrPeriodClosed), errors.Is(err, ErrNoOpenPeriod), errors.Is(err, ErrAmbiguousPeriod):
		return http.StatusUnprocessableEntity
	case errors.Is(err, ErrFxRateUnavailable):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
