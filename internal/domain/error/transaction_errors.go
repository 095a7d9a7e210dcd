package error

import "errors"

// Transaction domain errors.
var (
	// ErrTransactionNotFound is returned when a transaction is not found in the system.
	ErrTransactionNotFound = errors.New("transaction not found")

	// ErrInvalidTransactionDate is returned when the transaction date is invalid.
	ErrInvalidTransactionDate = errors.New("invalid transaction date")

	// ErrInvalidTransactionAmount is returned when the transaction amount is missing or invalid.
	ErrInvalidTransactionAmount = errors.New("invalid transaction amount")

	// ErrPayeeRequired is returned when the payee is empty.
	ErrPayeeRequired = errors.New("payee is required")

	// ErrPayeeTooLong is returned when the payee exceeds the maximum length.
	ErrPayeeTooLong = errors.New("payee too long")

	// ErrNotesTooLong is returned when the transaction notes exceed the maximum length.
	ErrNotesTooLong = errors.New("notes too long")

	// ErrAccountNotOwnedByUser is returned when a transaction references an account of another user.
	ErrAccountNotOwnedByUser = errors.New("account does not belong to user")

	// ErrCategoryNotOwnedByUser is returned when the category does not belong to the user.
	ErrCategoryNotOwnedByUser = errors.New("category does not belong to user")

	// ErrEmptyTransactionIDs is returned when an empty list of transaction IDs is provided.
	ErrEmptyTransactionIDs = errors.New("transaction IDs list cannot be empty")

	// ErrEmptyTransactionBatch is returned when a bulk create receives no transactions.
	ErrEmptyTransactionBatch = errors.New("transaction list cannot be empty")
)

// TransactionErrorCode defines error codes for transaction errors.
// Format: TXN-XXYYYY where XX is category and YYYY is specific error.
type TransactionErrorCode string

const (
	// Validation errors (01XXXX)
	ErrCodeInvalidTransactionDate   TransactionErrorCode = "TXN-010001"
	ErrCodeInvalidTransactionAmount TransactionErrorCode = "TXN-010002"
	ErrCodePayeeRequired            TransactionErrorCode = "TXN-010003"
	ErrCodePayeeTooLong             TransactionErrorCode = "TXN-010004"
	ErrCodeNotesTooLong             TransactionErrorCode = "TXN-010005"
	ErrCodeEmptyTransactionIDs      TransactionErrorCode = "TXN-010006"
	ErrCodeEmptyTransactionBatch    TransactionErrorCode = "TXN-010007"
	ErrCodeInvalidTransactionID     TransactionErrorCode = "TXN-010008"
	ErrCodeMissingTransactionFields TransactionErrorCode = "TXN-010009"

	// Ownership errors (02XXXX)
	ErrCodeTransactionNotFound TransactionErrorCode = "TXN-020001"
	ErrCodeTxnAccountNotOwned  TransactionErrorCode = "TXN-020002"
	ErrCodeTxnCategoryNotOwned TransactionErrorCode = "TXN-020003"
)

// TransactionError represents a transaction error with code and message.
type TransactionError struct {
	Code    TransactionErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *TransactionError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *TransactionError) Unwrap() error {
	return e.Err
}

// NewTransactionError creates a new TransactionError with the given code and message.
func NewTransactionError(code TransactionErrorCode, message string, err error) *TransactionError {
	return &TransactionError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}
