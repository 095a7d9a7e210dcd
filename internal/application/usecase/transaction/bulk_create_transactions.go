package transaction

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/finance-tracker/ledger-api/internal/application/adapter"
	"github.com/finance-tracker/ledger-api/internal/domain/entity"
	domainerror "github.com/finance-tracker/ledger-api/internal/domain/error"
)

// BulkCreateTransactionsInput represents the input for bulk transaction creation.
type BulkCreateTransactionsInput struct {
	UserID uuid.UUID
	Drafts []TransactionDraft
}

// BulkCreateTransactionsOutput represents the output of bulk transaction creation.
type BulkCreateTransactionsOutput struct {
	Transactions []*entity.Transaction
}

// BulkCreateTransactionsUseCase imports many transactions at once, all or nothing.
type BulkCreateTransactionsUseCase struct {
	transactionRepo adapter.TransactionRepository
	owners          ownershipChecker
}

// NewBulkCreateTransactionsUseCase creates a new BulkCreateTransactionsUseCase instance.
func NewBulkCreateTransactionsUseCase(
	transactionRepo adapter.TransactionRepository,
	accountRepo adapter.AccountRepository,
	categoryRepo adapter.CategoryRepository,
) *BulkCreateTransactionsUseCase {
	return &BulkCreateTransactionsUseCase{
		transactionRepo: transactionRepo,
		owners:          ownershipChecker{accountRepo: accountRepo, categoryRepo: categoryRepo},
	}
}

// Execute performs the bulk creation.
func (uc *BulkCreateTransactionsUseCase) Execute(ctx context.Context, input BulkCreateTransactionsInput) (*BulkCreateTransactionsOutput, error) {
	if len(input.Drafts) == 0 {
		return nil, domainerror.NewTransactionError(
			domainerror.ErrCodeEmptyTransactionBatch,
			"transaction list cannot be empty",
			domainerror.ErrEmptyTransactionBatch,
		)
	}

	// 1. Validate every draft before touching storage
	transactions := make([]*entity.Transaction, 0, len(input.Drafts))
	accountIDs := make([]uuid.UUID, 0, len(input.Drafts))
	categoryIDs := make(map[uuid.UUID]struct{})
	for i, draft := range input.Drafts {
		transaction, err := buildTransaction(draft)
		if err != nil {
			return nil, fmt.Errorf("transaction %d: %w", i, err)
		}
		transactions = append(transactions, transaction)
		accountIDs = append(accountIDs, draft.AccountID)
		if draft.CategoryID != nil {
			categoryIDs[*draft.CategoryID] = struct{}{}
		}
	}

	// 2. Verify ownership of every referenced account and category
	if err := uc.owners.checkAccounts(ctx, accountIDs, input.UserID); err != nil {
		return nil, err
	}
	for id := range categoryIDs {
		if err := uc.owners.checkCategory(ctx, &id, input.UserID); err != nil {
			return nil, err
		}
	}

	// 3. Persist atomically
	if err := uc.transactionRepo.BulkCreate(ctx, transactions); err != nil {
		return nil, fmt.Errorf("failed to bulk create transactions: %w", err)
	}

	return &BulkCreateTransactionsOutput{
		Transactions: transactions,
	}, nil
}
