package apperrors

import (
	"errors"
	"fmt"
)

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrConflict indicates that the request conflicts with the current state of the resource.
var ErrConflict = errors.New("conflict with current resource state")

// ErrForbidden indicates that the caller is not allowed to perform the operation.
var ErrForbidden = errors.New("operation not permitted")

// ErrAuthentication indicates an invalid or expired credential.
var ErrAuthentication = errors.New("authentication failed")

// ErrInternal indicates an unexpected internal failure.
var ErrInternal = errors.New("internal error")

// Ledger-specific errors.
var (
	// ErrUnknownAccount indicates a code that is not present in the chart of accounts.
	ErrUnknownAccount = errors.New("unknown account code")

	// ErrUnbalanced indicates a journal entry whose debits do not equal its credits.
	ErrUnbalanced = errors.New("journal entry debits do not equal credits")

	// ErrInvalidAccount indicates a line item referencing an unregistered account.
	ErrInvalidAccount = errors.New("line references an invalid account")

	// ErrMalformedLine indicates a line that is not exactly one of debit or credit.
	ErrMalformedLine = errors.New("line must carry exactly one of debit or credit")

	// ErrInsufficientLines indicates a journal entry with fewer than two lines.
	ErrInsufficientLines = errors.New("journal entry requires at least two lines")

	// ErrEntryNotFound indicates a journal entry ID that is not in the ledger.
	ErrEntryNotFound = errors.New("journal entry not found")

	// ErrLedgerIntegrity indicates that a derived statement failed an internal
	// consistency check. It should never trigger if posting validation holds;
	// statement generation halts rather than returning a wrong number.
	ErrLedgerIntegrity = errors.New("ledger integrity violation")

	// ErrStorageUnavailable indicates a transient storage failure. Only the
	// append path may be retried, and only with the same idempotency key.
	ErrStorageUnavailable = errors.New("storage unavailable")
)

// AppError wraps an underlying error with an HTTP-ish status code and message.
type AppError struct {
	Code    int
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// NewAppError creates a new AppError wrapping err.
func NewAppError(code int, message string, err error) *AppError {
	return &AppError{Code: code, Message: message, Err: err}
}
