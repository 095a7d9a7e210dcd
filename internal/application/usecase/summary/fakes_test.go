package summary

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/finance-tracker/ledger-api/internal/application/adapter"
	"github.com/finance-tracker/ledger-api/internal/domain/entity"
)

// fakeTransactionRepository serves FindByLedgerQuery from memory.
type fakeTransactionRepository struct {
	mu           sync.Mutex
	transactions []*entity.Transaction
	err          error
	queries      []adapter.LedgerQuery
}

func (r *fakeTransactionRepository) FindByLedgerQuery(_ context.Context, q adapter.LedgerQuery) ([]*entity.Transaction, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.queries = append(r.queries, q)
	if r.err != nil {
		return nil, r.err
	}

	var result []*entity.Transaction
	for _, tx := range r.transactions {
		if q.AccountID != nil && tx.AccountID != *q.AccountID {
			continue
		}
		if q.Range.Contains(tx.Date) {
			result = append(result, tx)
		}
	}
	return result, nil
}

func (r *fakeTransactionRepository) FindDetailedByLedgerQuery(context.Context, adapter.LedgerQuery) ([]*entity.TransactionWithDetails, error) {
	return nil, nil
}

func (r *fakeTransactionRepository) FindByIDAndUser(context.Context, uuid.UUID, uuid.UUID) (*entity.Transaction, error) {
	return nil, nil
}

func (r *fakeTransactionRepository) Create(context.Context, *entity.Transaction) error {
	return nil
}

func (r *fakeTransactionRepository) BulkCreate(context.Context, []*entity.Transaction) error {
	return nil
}

func (r *fakeTransactionRepository) Update(context.Context, *entity.Transaction) error {
	return nil
}

func (r *fakeTransactionRepository) Delete(context.Context, []uuid.UUID, uuid.UUID) ([]uuid.UUID, error) {
	return nil, nil
}

type fakeCategoryRepository struct {
	categories []*entity.Category
	err        error
}

func (r *fakeCategoryRepository) Create(context.Context, *entity.Category) error {
	return nil
}

func (r *fakeCategoryRepository) FindByIDAndUser(context.Context, uuid.UUID, uuid.UUID) (*entity.Category, error) {
	return nil, nil
}

func (r *fakeCategoryRepository) FindByUser(context.Context, uuid.UUID) ([]*entity.Category, error) {
	return r.categories, r.err
}

func (r *fakeCategoryRepository) Update(context.Context, *entity.Category) error {
	return nil
}

func (r *fakeCategoryRepository) Delete(context.Context, []uuid.UUID, uuid.UUID) ([]uuid.UUID, error) {
	return nil, nil
}
