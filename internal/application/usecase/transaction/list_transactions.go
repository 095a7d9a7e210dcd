package transaction

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/finance-tracker/ledger-api/internal/application/adapter"
	"github.com/finance-tracker/ledger-api/internal/application/usecase/summary"
	"github.com/finance-tracker/ledger-api/internal/domain/entity"
	domainerror "github.com/finance-tracker/ledger-api/internal/domain/error"
	"github.com/finance-tracker/ledger-api/internal/domain/valueobject"
)

// ListTransactionsInput represents the input for listing transactions.
// From and To follow the same defaults as the summary.
type ListTransactionsInput struct {
	UserID    uuid.UUID
	From      string
	To        string
	AccountID *uuid.UUID
}

// ListTransactionsOutput represents the output of listing transactions.
type ListTransactionsOutput struct {
	Period       valueobject.DateRange
	Transactions []*entity.TransactionWithDetails
}

// ListTransactionsUseCase lists the ledger of a period, newest first.
type ListTransactionsUseCase struct {
	transactionRepo  adapter.TransactionRepository
	defaultRangeDays int
	now              func() time.Time
}

// NewListTransactionsUseCase creates a new ListTransactionsUseCase instance.
func NewListTransactionsUseCase(transactionRepo adapter.TransactionRepository, defaultRangeDays int) *ListTransactionsUseCase {
	return &ListTransactionsUseCase{
		transactionRepo:  transactionRepo,
		defaultRangeDays: defaultRangeDays,
		now:              time.Now,
	}
}

// WithClock replaces the clock that resolves "today" for the default window.
func (uc *ListTransactionsUseCase) WithClock(now func() time.Time) *ListTransactionsUseCase {
	if now != nil {
		uc.now = now
	}
	return uc
}

// Execute performs the listing.
func (uc *ListTransactionsUseCase) Execute(ctx context.Context, input ListTransactionsInput) (*ListTransactionsOutput, error) {
	period, err := summary.ResolveRange(input.From, input.To, uc.now(), uc.defaultRangeDays)
	if err != nil {
		return nil, err
	}

	transactions, err := uc.transactionRepo.FindDetailedByLedgerQuery(ctx, adapter.LedgerQuery{
		UserID:    input.UserID,
		AccountID: input.AccountID,
		Range:     period.Current,
	})
	if err != nil {
		return nil, domainerror.NewSummaryError(
			domainerror.ErrCodeStorageUnavailable,
			"failed to load transactions",
			errors.Join(domainerror.ErrStorageUnavailable, err),
		)
	}

	return &ListTransactionsOutput{
		Period:       period.Current,
		Transactions: transactions,
	}, nil
}
