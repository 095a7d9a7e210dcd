package dto

import (
	"time"

	"github.com/google/uuid"

	"github.com/finance-tracker/ledger-api/internal/application/usecase/transaction"
	"github.com/finance-tracker/ledger-api/internal/domain/entity"
	domainerror "github.com/finance-tracker/ledger-api/internal/domain/error"
	"github.com/finance-tracker/ledger-api/internal/domain/valueobject"
)

// CreateTransactionRequest represents the request body for transaction creation.
// Exactly one of Amount (miliunits) or DisplayAmount ("12.34") is expected.
type CreateTransactionRequest struct {
	Date          string  `json:"date" binding:"required"`
	AccountID     string  `json:"accountId" binding:"required,uuid"`
	CategoryID    *string `json:"categoryId,omitempty" binding:"omitempty,uuid"`
	Amount        *int64  `json:"amount,omitempty"`
	DisplayAmount *string `json:"displayAmount,omitempty"`
	Payee         string  `json:"payee" binding:"required"`
	Notes         *string `json:"notes,omitempty"`
}

// ToDraft converts the request into a transaction draft.
func (r CreateTransactionRequest) ToDraft() (transaction.TransactionDraft, error) {
	date, err := ParseTransactionDate(r.Date)
	if err != nil {
		return transaction.TransactionDraft{}, err
	}

	accountID, err := parseTransactionUUID(r.AccountID)
	if err != nil {
		return transaction.TransactionDraft{}, err
	}

	categoryID, err := parseOptionalTransactionUUID(r.CategoryID)
	if err != nil {
		return transaction.TransactionDraft{}, err
	}

	return transaction.TransactionDraft{
		AccountID:     accountID,
		CategoryID:    categoryID,
		Date:          date,
		Amount:        r.Amount,
		DisplayAmount: r.DisplayAmount,
		Payee:         r.Payee,
		Notes:         r.Notes,
	}, nil
}

// UpdateTransactionRequest represents the request body for transaction update.
type UpdateTransactionRequest struct {
	Date          *string `json:"date,omitempty"`
	AccountID     *string `json:"accountId,omitempty" binding:"omitempty,uuid"`
	CategoryID    *string `json:"categoryId,omitempty" binding:"omitempty,uuid"`
	ClearCategory bool    `json:"clearCategory,omitempty"`
	Amount        *int64  `json:"amount,omitempty"`
	DisplayAmount *string `json:"displayAmount,omitempty"`
	Payee         *string `json:"payee,omitempty"`
	Notes         *string `json:"notes,omitempty"`
}

// ToInput converts the request into the update use case input.
func (r UpdateTransactionRequest) ToInput(transactionID, userID uuid.UUID) (transaction.UpdateTransactionInput, error) {
	input := transaction.UpdateTransactionInput{
		TransactionID: transactionID,
		UserID:        userID,
		ClearCategory: r.ClearCategory,
		Amount:        r.Amount,
		DisplayAmount: r.DisplayAmount,
		Payee:         r.Payee,
		Notes:         r.Notes,
	}

	if r.Date != nil {
		date, err := ParseTransactionDate(*r.Date)
		if err != nil {
			return input, err
		}
		input.Date = &date
	}

	accountID, err := parseOptionalTransactionUUID(r.AccountID)
	if err != nil {
		return input, err
	}
	input.AccountID = accountID

	categoryID, err := parseOptionalTransactionUUID(r.CategoryID)
	if err != nil {
		return input, err
	}
	input.CategoryID = categoryID

	return input, nil
}

// TransactionResponse represents a single transaction in API responses.
type TransactionResponse struct {
	ID         string  `json:"id"`
	Date       string  `json:"date"`
	Amount     int64   `json:"amount"`
	Payee      string  `json:"payee"`
	Notes      *string `json:"notes"`
	AccountID  string  `json:"accountId"`
	CategoryID *string `json:"categoryId"`
}

// TransactionListItemResponse is a transaction joined with its account and category names.
type TransactionListItemResponse struct {
	TransactionResponse
	Account  string  `json:"account"`
	Category *string `json:"category"`
}

// ToTransactionResponse converts a domain Transaction entity to a TransactionResponse DTO.
func ToTransactionResponse(txn *entity.Transaction) TransactionResponse {
	resp := TransactionResponse{
		ID:        txn.ID.String(),
		Date:      txn.Date.Format(valueobject.DateLayout),
		Amount:    txn.Amount,
		Payee:     txn.Payee,
		Notes:     txn.Notes,
		AccountID: txn.AccountID.String(),
	}
	if txn.CategoryID != nil {
		categoryID := txn.CategoryID.String()
		resp.CategoryID = &categoryID
	}
	return resp
}

// ToTransactionListResponse converts detailed transactions to their list form.
func ToTransactionListResponse(items []*entity.TransactionWithDetails) []TransactionListItemResponse {
	responses := make([]TransactionListItemResponse, len(items))
	for i, item := range items {
		responses[i] = TransactionListItemResponse{
			TransactionResponse: ToTransactionResponse(item.Transaction),
			Account:             item.AccountName,
			Category:            item.CategoryName,
		}
	}
	return responses
}

// ToTransactionResponses converts a slice of transactions.
func ToTransactionResponses(txns []*entity.Transaction) []TransactionResponse {
	responses := make([]TransactionResponse, len(txns))
	for i, txn := range txns {
		responses[i] = ToTransactionResponse(txn)
	}
	return responses
}

// ParseTransactionDate accepts a calendar date or an RFC 3339 timestamp.
func ParseTransactionDate(raw string) (time.Time, error) {
	if date, err := valueobject.ParseDate(raw); err == nil {
		return date, nil
	}
	ts, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return time.Time{}, domainerror.NewTransactionError(
			domainerror.ErrCodeInvalidTransactionDate,
			"date must be yyyy-MM-dd or an RFC 3339 timestamp",
			domainerror.ErrInvalidTransactionDate,
		)
	}
	return valueobject.TruncateToDay(ts), nil
}

func parseTransactionUUID(raw string) (uuid.UUID, error) {
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, domainerror.NewTransactionError(
			domainerror.ErrCodeInvalidTransactionID,
			"invalid id format",
			err,
		)
	}
	return id, nil
}

func parseOptionalTransactionUUID(raw *string) (*uuid.UUID, error) {
	if raw == nil || *raw == "" {
		return nil, nil
	}
	id, err := parseTransactionUUID(*raw)
	if err != nil {
		return nil, err
	}
	return &id, nil
}
