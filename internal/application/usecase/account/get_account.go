package account

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/finance-tracker/ledger-api/internal/application/adapter"
	"github.com/finance-tracker/ledger-api/internal/domain/entity"
	domainerror "github.com/finance-tracker/ledger-api/internal/domain/error"
)

// GetAccountInput represents the input for fetching an account.
type GetAccountInput struct {
	AccountID uuid.UUID
	UserID    uuid.UUID
}

// GetAccountOutput represents the output of fetching an account.
type GetAccountOutput struct {
	Account *entity.Account
}

// GetAccountUseCase handles single account lookup.
type GetAccountUseCase struct {
	accountRepo adapter.AccountRepository
}

// NewGetAccountUseCase creates a new GetAccountUseCase instance.
func NewGetAccountUseCase(accountRepo adapter.AccountRepository) *GetAccountUseCase {
	return &GetAccountUseCase{
		accountRepo: accountRepo,
	}
}

// Execute fetches the account if it belongs to the user.
func (uc *GetAccountUseCase) Execute(ctx context.Context, input GetAccountInput) (*GetAccountOutput, error) {
	account, err := findOwned(ctx, uc.accountRepo, input.AccountID, input.UserID)
	if err != nil {
		return nil, err
	}

	return &GetAccountOutput{
		Account: account,
	}, nil
}

func findOwned(ctx context.Context, repo adapter.AccountRepository, id, userID uuid.UUID) (*entity.Account, error) {
	account, err := repo.FindByIDAndUser(ctx, id, userID)
	if err != nil {
		if errors.Is(err, domainerror.ErrAccountNotFound) {
			return nil, domainerror.NewAccountError(
				domainerror.ErrCodeAccountNotFound,
				"account not found",
				domainerror.ErrAccountNotFound,
			)
		}
		return nil, fmt.Errorf("failed to find account: %w", err)
	}
	return account, nil
}
