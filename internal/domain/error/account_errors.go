package error

import "errors"

// Account domain errors.
var (
	// ErrAccountNotFound is returned when an account does not exist or belongs to another user.
	ErrAccountNotFound = errors.New("account not found")

	// ErrAccountNameRequired is returned when an account name is empty.
	ErrAccountNameRequired = errors.New("account name is required")

	// ErrAccountNameTooLong is returned when the account name exceeds the maximum length.
	ErrAccountNameTooLong = errors.New("account name too long")

	// ErrNoAccountIDs is returned when a bulk operation receives no ids.
	ErrNoAccountIDs = errors.New("at least one account id is required")
)

// AccountErrorCode defines error codes for account errors.
// Format: ACC-XXYYYY where XX is category and YYYY is specific error.
type AccountErrorCode string

const (
	// Validation errors (01XXXX)
	ErrCodeAccountNameRequired AccountErrorCode = "ACC-010001"
	ErrCodeAccountNameTooLong  AccountErrorCode = "ACC-010002"
	ErrCodeNoAccountIDs        AccountErrorCode = "ACC-010003"
	ErrCodeInvalidAccountID    AccountErrorCode = "ACC-010004"

	// Lookup errors (02XXXX)
	ErrCodeAccountNotFound AccountErrorCode = "ACC-020001"
)

// AccountError represents an account error with code and message.
type AccountError struct {
	Code    AccountErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *AccountError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *AccountError) Unwrap() error {
	return e.Err
}

// NewAccountError creates a new AccountError with the given code and message.
func NewAccountError(code AccountErrorCode, message string, err error) *AccountError {
	return &AccountError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}
