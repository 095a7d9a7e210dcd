package transaction

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/finance-tracker/ledger-api/internal/application/adapter"
	domainerror "github.com/finance-tracker/ledger-api/internal/domain/error"
)

// DeleteTransactionsInput represents the input for transaction deletion.
type DeleteTransactionsInput struct {
	TransactionIDs []uuid.UUID
	UserID         uuid.UUID
}

// DeleteTransactionsOutput represents the output of transaction deletion.
type DeleteTransactionsOutput struct {
	DeletedIDs []uuid.UUID
}

// DeleteTransactionsUseCase handles single and bulk transaction deletion.
type DeleteTransactionsUseCase struct {
	transactionRepo adapter.TransactionRepository
}

// NewDeleteTransactionsUseCase creates a new DeleteTransactionsUseCase instance.
func NewDeleteTransactionsUseCase(transactionRepo adapter.TransactionRepository) *DeleteTransactionsUseCase {
	return &DeleteTransactionsUseCase{
		transactionRepo: transactionRepo,
	}
}

// Execute performs the deletion. Ids that do not belong to the user are skipped;
// a single-id request that deletes nothing reports not found.
func (uc *DeleteTransactionsUseCase) Execute(ctx context.Context, input DeleteTransactionsInput) (*DeleteTransactionsOutput, error) {
	// Validate that IDs list is not empty
	if len(input.TransactionIDs) == 0 {
		return nil, domainerror.NewTransactionError(
			domainerror.ErrCodeEmptyTransactionIDs,
			"transaction IDs list cannot be empty",
			domainerror.ErrEmptyTransactionIDs,
		)
	}

	deleted, err := uc.transactionRepo.Delete(ctx, input.TransactionIDs, input.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to delete transactions: %w", err)
	}

	if len(input.TransactionIDs) == 1 && len(deleted) == 0 {
		return nil, domainerror.NewTransactionError(
			domainerror.ErrCodeTransactionNotFound,
			"transaction not found",
			domainerror.ErrTransactionNotFound,
		)
	}

	return &DeleteTransactionsOutput{
		DeletedIDs: deleted,
	}, nil
}
