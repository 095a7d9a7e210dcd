package adapter

import (
	"context"

	"github.com/google/uuid"

	"github.com/finance-tracker/ledger-api/internal/domain/entity"
)

// CategoryRepository defines the interface for category persistence operations.
type CategoryRepository interface {
	// Create creates a new category in the database.
	Create(ctx context.Context, category *entity.Category) error

	// FindByIDAndUser retrieves a category owned by userID.
	FindByIDAndUser(ctx context.Context, id, userID uuid.UUID) (*entity.Category, error)

	// FindByUser retrieves all categories of a user ordered by name.
	FindByUser(ctx context.Context, userID uuid.UUID) ([]*entity.Category, error)

	// Update updates an existing category in the database.
	Update(ctx context.Context, category *entity.Category) error

	// Delete removes the given categories of userID and clears them from transactions.
	// Returns the ids that were actually deleted.
	Delete(ctx context.Context, ids []uuid.UUID, userID uuid.UUID) ([]uuid.UUID, error)
}
