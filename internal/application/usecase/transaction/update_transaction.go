package transaction

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/finance-tracker/ledger-api/internal/application/adapter"
	"github.com/finance-tracker/ledger-api/internal/domain/entity"
	"github.com/finance-tracker/ledger-api/internal/domain/valueobject"
)

// UpdateTransactionInput represents the input for transaction update.
// Nil fields are left unchanged.
type UpdateTransactionInput struct {
	TransactionID uuid.UUID
	UserID        uuid.UUID
	AccountID     *uuid.UUID
	CategoryID    *uuid.UUID
	ClearCategory bool // Set to true to remove category
	Date          *time.Time
	Amount        *int64
	DisplayAmount *string
	Payee         *string
	Notes         *string
}

// UpdateTransactionOutput represents the output of transaction update.
type UpdateTransactionOutput struct {
	Transaction *entity.Transaction
}

// UpdateTransactionUseCase handles transaction update logic.
type UpdateTransactionUseCase struct {
	transactionRepo adapter.TransactionRepository
	owners          ownershipChecker
}

// NewUpdateTransactionUseCase creates a new UpdateTransactionUseCase instance.
func NewUpdateTransactionUseCase(
	transactionRepo adapter.TransactionRepository,
	accountRepo adapter.AccountRepository,
	categoryRepo adapter.CategoryRepository,
) *UpdateTransactionUseCase {
	return &UpdateTransactionUseCase{
		transactionRepo: transactionRepo,
		owners:          ownershipChecker{accountRepo: accountRepo, categoryRepo: categoryRepo},
	}
}

// Execute performs the transaction update.
func (uc *UpdateTransactionUseCase) Execute(ctx context.Context, input UpdateTransactionInput) (*UpdateTransactionOutput, error) {
	// Find the existing transaction
	transaction, err := findOwned(ctx, uc.transactionRepo, input.TransactionID, input.UserID)
	if err != nil {
		return nil, err
	}

	// Update fields if provided
	if input.AccountID != nil {
		if err := uc.owners.checkAccounts(ctx, []uuid.UUID{*input.AccountID}, input.UserID); err != nil {
			return nil, err
		}
		transaction.AccountID = *input.AccountID
	}

	if input.ClearCategory {
		transaction.CategoryID = nil
	} else if input.CategoryID != nil {
		if err := uc.owners.checkCategory(ctx, input.CategoryID, input.UserID); err != nil {
			return nil, err
		}
		transaction.CategoryID = input.CategoryID
	}

	if input.Date != nil {
		if err := validateDate(*input.Date); err != nil {
			return nil, err
		}
		transaction.Date = valueobject.TruncateToDay(*input.Date)
	}

	if input.Amount != nil || input.DisplayAmount != nil {
		amount, err := resolveAmount(input.Amount, input.DisplayAmount)
		if err != nil {
			return nil, err
		}
		transaction.Amount = amount
	}

	if input.Payee != nil {
		payee, err := validatePayee(*input.Payee)
		if err != nil {
			return nil, err
		}
		transaction.Payee = payee
	}

	if input.Notes != nil {
		if err := validateNotes(input.Notes); err != nil {
			return nil, err
		}
		transaction.Notes = input.Notes
	}

	transaction.UpdatedAt = time.Now().UTC()

	if err := uc.transactionRepo.Update(ctx, transaction); err != nil {
		return nil, fmt.Errorf("failed to update transaction: %w", err)
	}

	return &UpdateTransactionOutput{
		Transaction: transaction,
	}, nil
}
