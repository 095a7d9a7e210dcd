package summary

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/finance-tracker/ledger-api/internal/application/adapter"
	"github.com/finance-tracker/ledger-api/internal/domain/entity"
	domainerror "github.com/finance-tracker/ledger-api/internal/domain/error"
)

// Settings configures the summary use case. Zero values fall back to the package defaults.
type Settings struct {
	DefaultRangeDays int
	TopCategories    int
	Now              func() time.Time
}

// GetSummaryInput represents the input for a summary request.
type GetSummaryInput struct {
	UserID    uuid.UUID
	From      string // yyyy-MM-dd, optional
	To        string // yyyy-MM-dd, optional
	AccountID *uuid.UUID
}

// GetSummaryOutput represents the output of a summary request.
type GetSummaryOutput struct {
	Period  ResolvedRange
	Summary *Summary
}

// GetSummaryUseCase computes period summaries from the ledger.
type GetSummaryUseCase struct {
	transactionRepo adapter.TransactionRepository
	categoryRepo    adapter.CategoryRepository
	settings        Settings
}

// NewGetSummaryUseCase creates a new GetSummaryUseCase instance.
func NewGetSummaryUseCase(
	transactionRepo adapter.TransactionRepository,
	categoryRepo adapter.CategoryRepository,
	settings Settings,
) *GetSummaryUseCase {
	if settings.Now == nil {
		settings.Now = time.Now
	}
	return &GetSummaryUseCase{
		transactionRepo: transactionRepo,
		categoryRepo:    categoryRepo,
		settings:        settings,
	}
}

// Execute resolves the range, loads both periods and the category names, and aggregates them.
func (uc *GetSummaryUseCase) Execute(ctx context.Context, input GetSummaryInput) (*GetSummaryOutput, error) {
	// 1. Resolve the current and comparison periods
	period, err := ResolveRange(input.From, input.To, uc.settings.Now(), uc.settings.DefaultRangeDays)
	if err != nil {
		return nil, err
	}

	// 2. Load both periods and the category lookup concurrently
	var (
		current    []*entity.Transaction
		previous   []*entity.Transaction
		categories []*entity.Category
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		current, err = uc.transactionRepo.FindByLedgerQuery(gctx, adapter.LedgerQuery{
			UserID:    input.UserID,
			AccountID: input.AccountID,
			Range:     period.Current,
		})
		return err
	})
	g.Go(func() error {
		var err error
		previous, err = uc.transactionRepo.FindByLedgerQuery(gctx, adapter.LedgerQuery{
			UserID:    input.UserID,
			AccountID: input.AccountID,
			Range:     period.Previous,
		})
		return err
	})
	g.Go(func() error {
		var err error
		categories, err = uc.categoryRepo.FindByUser(gctx, input.UserID)
		return err
	})

	if err := g.Wait(); err != nil {
		slog.Error("Failed to load ledger for summary",
			"user_id", input.UserID,
			"error", err,
		)
		return nil, domainerror.NewSummaryError(
			domainerror.ErrCodeStorageUnavailable,
			"failed to load ledger data",
			errors.Join(domainerror.ErrStorageUnavailable, err),
		)
	}

	// 3. Aggregate
	summary, err := Aggregate(period.Current, current, previous, categories, Options{
		TopCategories: uc.settings.TopCategories,
	})
	if err != nil {
		return nil, err
	}

	slog.Debug("Summary computed",
		"user_id", input.UserID,
		"from", period.Current.Start,
		"to", period.Current.End,
		"transactions", len(current),
	)

	return &GetSummaryOutput{
		Period:  *period,
		Summary: summary,
	}, nil
}
