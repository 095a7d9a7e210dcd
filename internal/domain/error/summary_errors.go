package error

import "errors"

// Summary domain errors.
var (
	// ErrInvalidDateFormat is returned when a date parameter is not in yyyy-MM-dd format.
	ErrInvalidDateFormat = errors.New("invalid date format, expected yyyy-MM-dd")

	// ErrInvalidRange is returned when the range start is after its end.
	ErrInvalidRange = errors.New("start date must not be after end date")

	// ErrInvalidAccountID is returned when the account filter is not a valid UUID.
	ErrInvalidAccountID = errors.New("invalid account id")

	// ErrStorageUnavailable is returned when the ledger store could not be read.
	ErrStorageUnavailable = errors.New("ledger storage unavailable")
)

// SummaryErrorCode defines error codes for summary errors.
// Format: SUM-XXYYYY where XX is category and YYYY is specific error.
type SummaryErrorCode string

const (
	// Validation errors (01XXXX)
	ErrCodeInvalidDateFormat       SummaryErrorCode = "SUM-010001"
	ErrCodeInvalidRange            SummaryErrorCode = "SUM-010002"
	ErrCodeSummaryInvalidAccountID SummaryErrorCode = "SUM-010003"

	// Infrastructure errors (99XXXX)
	ErrCodeStorageUnavailable SummaryErrorCode = "SUM-990001"
)

// SummaryError represents a summary error with code and message.
type SummaryError struct {
	Code    SummaryErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *SummaryError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *SummaryError) Unwrap() error {
	return e.Err
}

// NewSummaryError creates a new SummaryError with the given code and message.
func NewSummaryError(code SummaryErrorCode, message string, err error) *SummaryError {
	return &SummaryError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}
