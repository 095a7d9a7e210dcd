package adapter

import (
	"context"

	"github.com/google/uuid"

	"github.com/finance-tracker/ledger-api/internal/domain/entity"
)

// AccountRepository defines the interface for account persistence operations.
// Every lookup is scoped to the owning user.
type AccountRepository interface {
	// Create creates a new account in the database.
	Create(ctx context.Context, account *entity.Account) error

	// FindByIDAndUser retrieves an account owned by userID.
	FindByIDAndUser(ctx context.Context, id, userID uuid.UUID) (*entity.Account, error)

	// FindByUser retrieves all accounts of a user ordered by name.
	FindByUser(ctx context.Context, userID uuid.UUID) ([]*entity.Account, error)

	// CountOwned returns how many of the given ids belong to userID.
	CountOwned(ctx context.Context, ids []uuid.UUID, userID uuid.UUID) (int64, error)

	// Update updates an existing account in the database.
	Update(ctx context.Context, account *entity.Account) error

	// Delete removes the given accounts of userID together with their transactions.
	// Returns the ids that were actually deleted.
	Delete(ctx context.Context, ids []uuid.UUID, userID uuid.UUID) ([]uuid.UUID, error)
}
