package persistence

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/finance-tracker/ledger-api/internal/application/adapter"
	"github.com/finance-tracker/ledger-api/internal/domain/entity"
	domainerror "github.com/finance-tracker/ledger-api/internal/domain/error"
	"github.com/finance-tracker/ledger-api/internal/domain/valueobject"
	"github.com/finance-tracker/ledger-api/internal/integration/persistence/model"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open database: %v", err)
	}
	if err := db.AutoMigrate(model.AllModels()...); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}
	sqlDB, _ := db.DB()
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })
	return db
}

type ledgerFixture struct {
	accounts     adapter.AccountRepository
	categories   adapter.CategoryRepository
	transactions adapter.TransactionRepository

	owner    uuid.UUID
	checking *entity.Account
	savings  *entity.Account
	food     *entity.Category
	stranger *entity.Account
}

func date(t *testing.T, s string) time.Time {
	t.Helper()
	d, err := valueobject.ParseDate(s)
	if err != nil {
		t.Fatalf("failed to parse %s: %v", s, err)
	}
	return d
}

func newLedgerFixture(t *testing.T) *ledgerFixture {
	t.Helper()
	db := newTestDB(t)
	ctx := context.Background()
	owner := uuid.New()

	f := &ledgerFixture{
		accounts:     NewAccountRepository(db),
		categories:   NewCategoryRepository(db),
		transactions: NewTransactionRepository(db),
		owner:        owner,
		checking:     entity.NewAccount(owner, "Checking"),
		savings:      entity.NewAccount(owner, "Savings"),
		food:         entity.NewCategory(owner, "Food"),
		stranger:     entity.NewAccount(uuid.New(), "Stranger"),
	}
	for _, a := range []*entity.Account{f.checking, f.savings, f.stranger} {
		if err := f.accounts.Create(ctx, a); err != nil {
			t.Fatalf("failed to create account: %v", err)
		}
	}
	if err := f.categories.Create(ctx, f.food); err != nil {
		t.Fatalf("failed to create category: %v", err)
	}
	return f
}

func (f *ledgerFixture) add(t *testing.T, account *entity.Account, categoryID *uuid.UUID, day string, amount int64) *entity.Transaction {
	t.Helper()
	tx := entity.NewTransaction(account.ID, categoryID, date(t, day), amount, "payee", nil)
	if err := f.transactions.Create(context.Background(), tx); err != nil {
		t.Fatalf("failed to create transaction: %v", err)
	}
	return tx
}

func TestTransactionRepository_FindByLedgerQuery(t *testing.T) {
	f := newLedgerFixture(t)
	ctx := context.Background()

	f.add(t, f.checking, &f.food.ID, "2024-01-01", -5000)
	f.add(t, f.checking, nil, "2024-01-31", 10000)
	f.add(t, f.savings, nil, "2024-01-15", 2000)
	f.add(t, f.checking, nil, "2024-02-01", 99999)
	f.add(t, f.checking, nil, "2023-12-31", 77777)
	f.add(t, f.stranger, nil, "2024-01-10", 123)

	january := valueobject.DateRange{Start: date(t, "2024-01-01"), End: date(t, "2024-01-31")}

	t.Run("all owned accounts with inclusive end", func(t *testing.T) {
		got, err := f.transactions.FindByLedgerQuery(ctx, adapter.LedgerQuery{UserID: f.owner, Range: january})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(got) != 3 {
			t.Fatalf("expected 3 transactions, got %d", len(got))
		}
		expectedOrder := []string{"2024-01-31", "2024-01-15", "2024-01-01"}
		for i, d := range expectedOrder {
			if got[i].Date.Format(valueobject.DateLayout) != d {
				t.Errorf("position %d: expected %s, got %s", i, d, got[i].Date.Format(valueobject.DateLayout))
			}
		}
	})

	t.Run("single account", func(t *testing.T) {
		got, err := f.transactions.FindByLedgerQuery(ctx, adapter.LedgerQuery{UserID: f.owner, AccountID: &f.savings.ID, Range: january})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(got) != 1 || got[0].Amount != 2000 {
			t.Errorf("expected the savings transaction only, got %+v", got)
		}
	})

	t.Run("another user's account yields nothing", func(t *testing.T) {
		got, err := f.transactions.FindByLedgerQuery(ctx, adapter.LedgerQuery{UserID: f.owner, AccountID: &f.stranger.ID, Range: january})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(got) != 0 {
			t.Errorf("expected no transactions, got %d", len(got))
		}
	})

	t.Run("detailed rows carry names", func(t *testing.T) {
		got, err := f.transactions.FindDetailedByLedgerQuery(ctx, adapter.LedgerQuery{UserID: f.owner, AccountID: &f.checking.ID, Range: january})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(got) != 2 {
			t.Fatalf("expected 2 transactions, got %d", len(got))
		}
		last := got[1]
		if last.AccountName != "Checking" || last.CategoryName == nil || *last.CategoryName != "Food" {
			t.Errorf("unexpected details: account=%q category=%v", last.AccountName, last.CategoryName)
		}
		if got[0].CategoryName != nil {
			t.Errorf("expected no category name for an uncategorized transaction")
		}
	})
}

func TestTransactionRepository_FindByIDAndUser(t *testing.T) {
	f := newLedgerFixture(t)
	tx := f.add(t, f.checking, nil, "2024-01-01", -100)

	got, err := f.transactions.FindByIDAndUser(context.Background(), tx.ID, f.owner)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.ID != tx.ID || got.Amount != -100 {
		t.Errorf("unexpected transaction: %+v", got)
	}

	_, err = f.transactions.FindByIDAndUser(context.Background(), tx.ID, uuid.New())
	if !errors.Is(err, domainerror.ErrTransactionNotFound) {
		t.Errorf("expected ErrTransactionNotFound, got %v", err)
	}
}

func TestTransactionRepository_BulkCreateAndDelete(t *testing.T) {
	f := newLedgerFixture(t)
	ctx := context.Background()

	batch := []*entity.Transaction{
		entity.NewTransaction(f.checking.ID, nil, date(t, "2024-01-02"), 1, "a", nil),
		entity.NewTransaction(f.savings.ID, nil, date(t, "2024-01-03"), 2, "b", nil),
	}
	if err := f.transactions.BulkCreate(ctx, batch); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	foreign := f.add(t, f.stranger, nil, "2024-01-03", 3)

	deleted, err := f.transactions.Delete(ctx, []uuid.UUID{batch[0].ID, batch[1].ID, foreign.ID}, f.owner)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(deleted) != 2 {
		t.Errorf("expected 2 deleted, got %d", len(deleted))
	}
	if _, err := f.transactions.FindByIDAndUser(ctx, foreign.ID, f.stranger.UserID); err != nil {
		t.Errorf("expected the foreign transaction to survive, got %v", err)
	}
}

func TestAccountRepository_DeleteCascadesToTransactions(t *testing.T) {
	f := newLedgerFixture(t)
	ctx := context.Background()
	tx := f.add(t, f.checking, nil, "2024-01-01", -100)
	kept := f.add(t, f.savings, nil, "2024-01-01", -200)

	deleted, err := f.accounts.Delete(ctx, []uuid.UUID{f.checking.ID, f.stranger.ID}, f.owner)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(deleted) != 1 || deleted[0] != f.checking.ID {
		t.Errorf("expected only checking deleted, got %v", deleted)
	}
	if _, err := f.transactions.FindByIDAndUser(ctx, tx.ID, f.owner); !errors.Is(err, domainerror.ErrTransactionNotFound) {
		t.Errorf("expected the account's transaction to be gone, got %v", err)
	}
	if _, err := f.transactions.FindByIDAndUser(ctx, kept.ID, f.owner); err != nil {
		t.Errorf("expected other account's transaction to survive, got %v", err)
	}
	if _, err := f.accounts.FindByIDAndUser(ctx, f.stranger.ID, f.stranger.UserID); err != nil {
		t.Errorf("expected the stranger's account to survive, got %v", err)
	}
}

func TestAccountRepository_FindAndCount(t *testing.T) {
	f := newLedgerFixture(t)
	ctx := context.Background()

	accounts, err := f.accounts.FindByUser(ctx, f.owner)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(accounts) != 2 || accounts[0].Name != "Checking" || accounts[1].Name != "Savings" {
		t.Errorf("expected Checking and Savings ordered by name, got %+v", accounts)
	}

	count, err := f.accounts.CountOwned(ctx, []uuid.UUID{f.checking.ID, f.stranger.ID, uuid.New()}, f.owner)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if count != 1 {
		t.Errorf("expected 1 owned, got %d", count)
	}

	f.checking.Name = "Main"
	if err := f.accounts.Update(ctx, f.checking); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	got, err := f.accounts.FindByIDAndUser(ctx, f.checking.ID, f.owner)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Name != "Main" {
		t.Errorf("expected Main, got %s", got.Name)
	}

	if _, err := f.accounts.FindByIDAndUser(ctx, f.checking.ID, uuid.New()); !errors.Is(err, domainerror.ErrAccountNotFound) {
		t.Errorf("expected ErrAccountNotFound, got %v", err)
	}
}

func TestCategoryRepository_DeleteUncategorizesTransactions(t *testing.T) {
	f := newLedgerFixture(t)
	ctx := context.Background()
	tx := f.add(t, f.checking, &f.food.ID, "2024-01-01", -100)

	deleted, err := f.categories.Delete(ctx, []uuid.UUID{f.food.ID}, f.owner)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(deleted) != 1 {
		t.Fatalf("expected 1 deleted, got %d", len(deleted))
	}

	got, err := f.transactions.FindByIDAndUser(ctx, tx.ID, f.owner)
	if err != nil {
		t.Fatalf("expected the transaction to survive, got %v", err)
	}
	if got.CategoryID != nil {
		t.Errorf("expected category to be cleared, got %v", got.CategoryID)
	}

	categories, err := f.categories.FindByUser(ctx, f.owner)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(categories) != 0 {
		t.Errorf("expected no categories left, got %d", len(categories))
	}
}
