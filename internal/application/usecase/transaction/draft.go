// Package transaction contains transaction-related use cases.
package transaction

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/finance-tracker/ledger-api/internal/application/adapter"
	domainerror "github.com/finance-tracker/ledger-api/internal/domain/error"
	"github.com/finance-tracker/ledger-api/internal/domain/valueobject"
)

const (
	// MaxPayeeLength is the maximum allowed length for payees.
	MaxPayeeLength = 255
	// MaxNotesLength is the maximum allowed length for transaction notes.
	MaxNotesLength = 1000
)

// TransactionDraft carries the fields of a transaction to be created.
// Either Amount (miliunits) or DisplayAmount (e.g. "-12.34") must be set; Amount wins when both are.
type TransactionDraft struct {
	AccountID     uuid.UUID
	CategoryID    *uuid.UUID
	Date          time.Time
	Amount        *int64
	DisplayAmount *string
	Payee         string
	Notes         *string
}

// resolveAmount picks the miliunit amount from the raw or the display value.
func resolveAmount(amount *int64, displayAmount *string) (int64, error) {
	if amount != nil {
		return *amount, nil
	}
	if displayAmount == nil {
		return 0, domainerror.NewTransactionError(
			domainerror.ErrCodeInvalidTransactionAmount,
			"amount or displayAmount is required",
			domainerror.ErrInvalidTransactionAmount,
		)
	}

	miliunits, err := valueobject.ParseDisplayAmount(*displayAmount)
	if err != nil {
		return 0, domainerror.NewTransactionError(
			domainerror.ErrCodeInvalidTransactionAmount,
			"displayAmount must be a decimal number",
			err,
		)
	}
	return miliunits, nil
}

func validatePayee(payee string) (string, error) {
	payee = strings.TrimSpace(payee)
	if payee == "" {
		return "", domainerror.NewTransactionError(
			domainerror.ErrCodePayeeRequired,
			"payee is required",
			domainerror.ErrPayeeRequired,
		)
	}
	if utf8.RuneCountInString(payee) > MaxPayeeLength {
		return "", domainerror.NewTransactionError(
			domainerror.ErrCodePayeeTooLong,
			fmt.Sprintf("payee must not exceed %d characters", MaxPayeeLength),
			domainerror.ErrPayeeTooLong,
		)
	}
	return payee, nil
}

func validateNotes(notes *string) error {
	if notes != nil && utf8.RuneCountInString(*notes) > MaxNotesLength {
		return domainerror.NewTransactionError(
			domainerror.ErrCodeNotesTooLong,
			fmt.Sprintf("notes must not exceed %d characters", MaxNotesLength),
			domainerror.ErrNotesTooLong,
		)
	}
	return nil
}

func validateDate(date time.Time) error {
	if date.IsZero() {
		return domainerror.NewTransactionError(
			domainerror.ErrCodeInvalidTransactionDate,
			"date is required",
			domainerror.ErrInvalidTransactionDate,
		)
	}
	return nil
}

// ownershipChecker verifies that referenced accounts and categories belong to the caller.
type ownershipChecker struct {
	accountRepo  adapter.AccountRepository
	categoryRepo adapter.CategoryRepository
}

func (c ownershipChecker) checkAccounts(ctx context.Context, ids []uuid.UUID, userID uuid.UUID) error {
	unique := make(map[uuid.UUID]struct{}, len(ids))
	distinct := make([]uuid.UUID, 0, len(ids))
	for _, id := range ids {
		if _, seen := unique[id]; seen {
			continue
		}
		unique[id] = struct{}{}
		distinct = append(distinct, id)
	}

	owned, err := c.accountRepo.CountOwned(ctx, distinct, userID)
	if err != nil {
		return fmt.Errorf("failed to verify account ownership: %w", err)
	}
	if owned != int64(len(distinct)) {
		return domainerror.NewTransactionError(
			domainerror.ErrCodeTxnAccountNotOwned,
			"account does not belong to user",
			domainerror.ErrAccountNotOwnedByUser,
		)
	}
	return nil
}

func (c ownershipChecker) checkCategory(ctx context.Context, id *uuid.UUID, userID uuid.UUID) error {
	if id == nil {
		return nil
	}
	_, err := c.categoryRepo.FindByIDAndUser(ctx, *id, userID)
	if err == nil {
		return nil
	}
	if errors.Is(err, domainerror.ErrCategoryNotFound) {
		return domainerror.NewTransactionError(
			domainerror.ErrCodeTxnCategoryNotOwned,
			"category does not belong to user",
			domainerror.ErrCategoryNotOwnedByUser,
		)
	}
	return fmt.Errorf("failed to verify category ownership: %w", err)
}
