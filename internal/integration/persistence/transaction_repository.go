package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/finance-tracker/ledger-api/internal/application/adapter"
	"github.com/finance-tracker/ledger-api/internal/domain/entity"
	domainerror "github.com/finance-tracker/ledger-api/internal/domain/error"
	"github.com/finance-tracker/ledger-api/internal/integration/persistence/model"
)

// transactionRepository implements the adapter.TransactionRepository interface.
type transactionRepository struct {
	db *gorm.DB
}

// NewTransactionRepository creates a new transaction repository instance.
func NewTransactionRepository(db *gorm.DB) adapter.TransactionRepository {
	return &transactionRepository{
		db: db,
	}
}

// ownedBy restricts a transactions query to the accounts of userID.
func ownedBy(db *gorm.DB, userID uuid.UUID) *gorm.DB {
	return db.Model(&model.TransactionModel{}).
		Joins("JOIN accounts ON accounts.id = transactions.account_id").
		Where("accounts.user_id = ?", userID)
}

// ledgerScope applies the filters of a LedgerQuery.
func ledgerScope(db *gorm.DB, q adapter.LedgerQuery) *gorm.DB {
	query := ownedBy(db, q.UserID).
		Where("transactions.date >= ? AND transactions.date < ?", q.Range.Start, q.Range.EndExclusive())
	if q.AccountID != nil {
		query = query.Where("transactions.account_id = ?", *q.AccountID)
	}
	return query.
		Select("transactions.*").
		Order("transactions.date DESC").
		Order("transactions.created_at DESC")
}

// FindByLedgerQuery returns the transactions matching q, newest first.
func (r *transactionRepository) FindByLedgerQuery(ctx context.Context, q adapter.LedgerQuery) ([]*entity.Transaction, error) {
	var transactionModels []model.TransactionModel
	if err := ledgerScope(r.db.WithContext(ctx), q).Find(&transactionModels).Error; err != nil {
		return nil, err
	}

	transactions := make([]*entity.Transaction, len(transactionModels))
	for i := range transactionModels {
		transactions[i] = transactionModels[i].ToEntity()
	}
	return transactions, nil
}

// FindDetailedByLedgerQuery is FindByLedgerQuery with account and category names.
func (r *transactionRepository) FindDetailedByLedgerQuery(ctx context.Context, q adapter.LedgerQuery) ([]*entity.TransactionWithDetails, error) {
	var transactionModels []model.TransactionModel
	result := ledgerScope(r.db.WithContext(ctx), q).
		Preload("Account").
		Preload("Category").
		Find(&transactionModels)
	if result.Error != nil {
		return nil, result.Error
	}

	transactions := make([]*entity.TransactionWithDetails, len(transactionModels))
	for i := range transactionModels {
		transactions[i] = transactionModels[i].ToEntityWithDetails()
	}
	return transactions, nil
}

// FindByIDAndUser retrieves a transaction whose account belongs to userID.
func (r *transactionRepository) FindByIDAndUser(ctx context.Context, id, userID uuid.UUID) (*entity.Transaction, error) {
	var transactionModel model.TransactionModel
	result := ownedBy(r.db.WithContext(ctx), userID).
		Select("transactions.*").
		Where("transactions.id = ?", id).
		Take(&transactionModel)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, domainerror.ErrTransactionNotFound
		}
		return nil, result.Error
	}
	return transactionModel.ToEntity(), nil
}

// Create creates a new transaction in the database.
func (r *transactionRepository) Create(ctx context.Context, transaction *entity.Transaction) error {
	transactionModel := model.TransactionFromEntity(transaction)
	result := r.db.WithContext(ctx).Create(transactionModel)
	if result.Error != nil {
		return result.Error
	}
	return nil
}

// BulkCreate inserts all transactions in a single database transaction.
func (r *transactionRepository) BulkCreate(ctx context.Context, transactions []*entity.Transaction) error {
	if len(transactions) == 0 {
		return nil
	}

	transactionModels := make([]*model.TransactionModel, len(transactions))
	for i, t := range transactions {
		transactionModels[i] = model.TransactionFromEntity(t)
	}

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.CreateInBatches(transactionModels, 100).Error
	})
}

// Update updates an existing transaction in the database.
func (r *transactionRepository) Update(ctx context.Context, transaction *entity.Transaction) error {
	transactionModel := model.TransactionFromEntity(transaction)
	result := r.db.WithContext(ctx).Save(transactionModel)
	if result.Error != nil {
		return result.Error
	}
	return nil
}

// Delete removes the given transactions of userID and returns the ids actually deleted.
func (r *transactionRepository) Delete(ctx context.Context, ids []uuid.UUID, userID uuid.UUID) ([]uuid.UUID, error) {
	deleted := make([]uuid.UUID, 0, len(ids))
	if len(ids) == 0 {
		return deleted, nil
	}

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := ownedBy(tx, userID).
			Where("transactions.id IN ?", ids).
			Pluck("transactions.id", &deleted).Error; err != nil {
			return err
		}
		if len(deleted) == 0 {
			return nil
		}
		return tx.Where("id IN ?", deleted).Delete(&model.TransactionModel{}).Error
	})
	if err != nil {
		return nil, err
	}
	return deleted, nil
}
