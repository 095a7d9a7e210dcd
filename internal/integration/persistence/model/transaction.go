package model

import (
	"time"

	"github.com/google/uuid"

	"github.com/finance-tracker/ledger-api/internal/domain/entity"
	"github.com/finance-tracker/ledger-api/internal/domain/valueobject"
)

// TransactionModel represents the transactions table in the database.
// Amount is stored in miliunits.
type TransactionModel struct {
	ID         uuid.UUID  `gorm:"type:uuid;primaryKey"`
	AccountID  uuid.UUID  `gorm:"type:uuid;not null;index"`
	CategoryID *uuid.UUID `gorm:"type:uuid;index"`
	Date       time.Time  `gorm:"type:date;not null;index"`
	Amount     int64      `gorm:"type:bigint;not null"`
	Payee      string     `gorm:"type:varchar(255);not null"`
	Notes      *string    `gorm:"type:text"`
	CreatedAt  time.Time  `gorm:"not null"`
	UpdatedAt  time.Time  `gorm:"not null"`

	// Relationships
	Account  *AccountModel  `gorm:"foreignKey:AccountID;references:ID"`
	Category *CategoryModel `gorm:"foreignKey:CategoryID;references:ID"`
}

// TableName returns the table name for the TransactionModel.
func (TransactionModel) TableName() string {
	return "transactions"
}

// ToEntity converts a TransactionModel to a domain Transaction entity.
func (m *TransactionModel) ToEntity() *entity.Transaction {
	return &entity.Transaction{
		ID:         m.ID,
		AccountID:  m.AccountID,
		CategoryID: m.CategoryID,
		Date:       valueobject.TruncateToDay(m.Date),
		Amount:     m.Amount,
		Payee:      m.Payee,
		Notes:      m.Notes,
		CreatedAt:  m.CreatedAt,
		UpdatedAt:  m.UpdatedAt,
	}
}

// ToEntityWithDetails converts a TransactionModel with preloaded relations.
func (m *TransactionModel) ToEntityWithDetails() *entity.TransactionWithDetails {
	details := &entity.TransactionWithDetails{
		Transaction: m.ToEntity(),
	}
	if m.Account != nil {
		details.AccountName = m.Account.Name
	}
	if m.Category != nil {
		name := m.Category.Name
		details.CategoryName = &name
	}
	return details
}

// TransactionFromEntity creates a TransactionModel from a domain Transaction entity.
func TransactionFromEntity(transaction *entity.Transaction) *TransactionModel {
	return &TransactionModel{
		ID:         transaction.ID,
		AccountID:  transaction.AccountID,
		CategoryID: transaction.CategoryID,
		Date:       transaction.Date,
		Amount:     transaction.Amount,
		Payee:      transaction.Payee,
		Notes:      transaction.Notes,
		CreatedAt:  transaction.CreatedAt,
		UpdatedAt:  transaction.UpdatedAt,
	}
}

// AllModels lists every model for auto-migration, parents first.
func AllModels() []interface{} {
	return []interface{}{
		&AccountModel{},
		&CategoryModel{},
		&TransactionModel{},
	}
}
