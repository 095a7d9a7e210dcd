package entity

import (
	"time"

	"github.com/google/uuid"

	"github.com/finance-tracker/ledger-api/internal/domain/valueobject"
)

// Transaction is a single ledger entry. Amount is stored in miliunits
// (1 currency unit = 1000 miliunits); positive is income, negative is an expense.
type Transaction struct {
	ID         uuid.UUID
	AccountID  uuid.UUID
	CategoryID *uuid.UUID
	Date       time.Time
	Amount     int64
	Payee      string
	Notes      *string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// NewTransaction creates a new Transaction entity. The date is truncated to the UTC calendar day it falls on.
func NewTransaction(
	accountID uuid.UUID,
	categoryID *uuid.UUID,
	date time.Time,
	amount int64,
	payee string,
	notes *string,
) *Transaction {
	now := time.Now().UTC()

	return &Transaction{
		ID:         uuid.New(),
		AccountID:  accountID,
		CategoryID: categoryID,
		Date:       valueobject.TruncateToDay(date),
		Amount:     amount,
		Payee:      payee,
		Notes:      notes,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
}

// IsIncome reports whether the transaction adds money.
func (t *Transaction) IsIncome() bool {
	return t.Amount > 0
}

// IsExpense reports whether the transaction removes money.
func (t *Transaction) IsExpense() bool {
	return t.Amount < 0
}

// TransactionWithDetails is a transaction joined with its account and category names.
type TransactionWithDetails struct {
	Transaction  *Transaction
	AccountName  string
	CategoryName *string
}
