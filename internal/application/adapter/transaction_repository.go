package adapter

import (
	"context"

	"github.com/google/uuid"

	"github.com/finance-tracker/ledger-api/internal/domain/entity"
	"github.com/finance-tracker/ledger-api/internal/domain/valueobject"
)

// LedgerQuery selects the transactions of one user inside a date range,
// optionally narrowed to a single account.
type LedgerQuery struct {
	UserID    uuid.UUID
	AccountID *uuid.UUID
	Range     valueobject.DateRange
}

// TransactionRepository defines the interface for transaction persistence operations.
// Ownership is derived from the account a transaction belongs to.
type TransactionRepository interface {
	// FindByLedgerQuery returns the transactions matching q, newest first.
	// Start is inclusive and End covers its whole day.
	FindByLedgerQuery(ctx context.Context, q LedgerQuery) ([]*entity.Transaction, error)

	// FindDetailedByLedgerQuery is FindByLedgerQuery with account and category names joined.
	FindDetailedByLedgerQuery(ctx context.Context, q LedgerQuery) ([]*entity.TransactionWithDetails, error)

	// FindByIDAndUser retrieves a transaction whose account belongs to userID.
	FindByIDAndUser(ctx context.Context, id, userID uuid.UUID) (*entity.Transaction, error)

	// Create creates a new transaction in the database.
	Create(ctx context.Context, transaction *entity.Transaction) error

	// BulkCreate inserts all transactions in a single database transaction.
	BulkCreate(ctx context.Context, transactions []*entity.Transaction) error

	// Update updates an existing transaction in the database.
	Update(ctx context.Context, transaction *entity.Transaction) error

	// Delete removes the given transactions of userID.
	// Returns the ids that were actually deleted.
	Delete(ctx context.Context, ids []uuid.UUID, userID uuid.UUID) ([]uuid.UUID, error)
}
