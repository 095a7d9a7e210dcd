package account

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/finance-tracker/ledger-api/internal/application/adapter"
	domainerror "github.com/finance-tracker/ledger-api/internal/domain/error"
)

// DeleteAccountsInput represents the input for account deletion.
// A single-account delete is a one-element list.
type DeleteAccountsInput struct {
	AccountIDs []uuid.UUID
	UserID     uuid.UUID
}

// DeleteAccountsOutput represents the output of account deletion.
type DeleteAccountsOutput struct {
	DeletedIDs []uuid.UUID
}

// DeleteAccountsUseCase deletes accounts together with their transactions.
type DeleteAccountsUseCase struct {
	accountRepo adapter.AccountRepository
}

// NewDeleteAccountsUseCase creates a new DeleteAccountsUseCase instance.
func NewDeleteAccountsUseCase(accountRepo adapter.AccountRepository) *DeleteAccountsUseCase {
	return &DeleteAccountsUseCase{
		accountRepo: accountRepo,
	}
}

// Execute performs the deletion. When a single id is given and nothing was deleted, it reports not found.
func (uc *DeleteAccountsUseCase) Execute(ctx context.Context, input DeleteAccountsInput) (*DeleteAccountsOutput, error) {
	if len(input.AccountIDs) == 0 {
		return nil, domainerror.NewAccountError(
			domainerror.ErrCodeNoAccountIDs,
			"at least one account id is required",
			domainerror.ErrNoAccountIDs,
		)
	}

	deleted, err := uc.accountRepo.Delete(ctx, input.AccountIDs, input.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to delete accounts: %w", err)
	}

	if len(input.AccountIDs) == 1 && len(deleted) == 0 {
		return nil, domainerror.NewAccountError(
			domainerror.ErrCodeAccountNotFound,
			"account not found",
			domainerror.ErrAccountNotFound,
		)
	}

	slog.Debug("Accounts deleted",
		"user_id", input.UserID,
		"requested", len(input.AccountIDs),
		"deleted", len(deleted),
	)

	return &DeleteAccountsOutput{
		DeletedIDs: deleted,
	}, nil
}
