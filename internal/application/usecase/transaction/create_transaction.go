package transaction

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/finance-tracker/ledger-api/internal/application/adapter"
	"github.com/finance-tracker/ledger-api/internal/domain/entity"
	"github.com/finance-tracker/ledger-api/internal/domain/valueobject"
)

// CreateTransactionInput represents the input for transaction creation.
type CreateTransactionInput struct {
	UserID uuid.UUID
	TransactionDraft
}

// CreateTransactionOutput represents the output of transaction creation.
type CreateTransactionOutput struct {
	Transaction *entity.Transaction
}

// CreateTransactionUseCase handles transaction creation logic.
type CreateTransactionUseCase struct {
	transactionRepo adapter.TransactionRepository
	owners          ownershipChecker
}

// NewCreateTransactionUseCase creates a new CreateTransactionUseCase instance.
func NewCreateTransactionUseCase(
	transactionRepo adapter.TransactionRepository,
	accountRepo adapter.AccountRepository,
	categoryRepo adapter.CategoryRepository,
) *CreateTransactionUseCase {
	return &CreateTransactionUseCase{
		transactionRepo: transactionRepo,
		owners:          ownershipChecker{accountRepo: accountRepo, categoryRepo: categoryRepo},
	}
}

// Execute performs the transaction creation.
func (uc *CreateTransactionUseCase) Execute(ctx context.Context, input CreateTransactionInput) (*CreateTransactionOutput, error) {
	// 1. Validate fields
	transaction, err := buildTransaction(input.TransactionDraft)
	if err != nil {
		return nil, err
	}

	// 2. Verify the account and category belong to the caller
	if err := uc.owners.checkAccounts(ctx, []uuid.UUID{input.AccountID}, input.UserID); err != nil {
		return nil, err
	}
	if err := uc.owners.checkCategory(ctx, input.CategoryID, input.UserID); err != nil {
		return nil, err
	}

	// 3. Persist
	if err := uc.transactionRepo.Create(ctx, transaction); err != nil {
		return nil, fmt.Errorf("failed to create transaction: %w", err)
	}

	slog.Debug("Transaction created",
		"user_id", input.UserID,
		"transaction_id", transaction.ID,
		"amount", valueobject.FormatMiliunits(transaction.Amount),
	)

	return &CreateTransactionOutput{
		Transaction: transaction,
	}, nil
}

// buildTransaction validates a draft and turns it into an entity.
func buildTransaction(draft TransactionDraft) (*entity.Transaction, error) {
	payee, err := validatePayee(draft.Payee)
	if err != nil {
		return nil, err
	}
	if err := validateNotes(draft.Notes); err != nil {
		return nil, err
	}
	if err := validateDate(draft.Date); err != nil {
		return nil, err
	}
	amount, err := resolveAmount(draft.Amount, draft.DisplayAmount)
	if err != nil {
		return nil, err
	}

	return entity.NewTransaction(
		draft.AccountID,
		draft.CategoryID,
		draft.Date,
		amount,
		payee,
		draft.Notes,
	), nil
}
