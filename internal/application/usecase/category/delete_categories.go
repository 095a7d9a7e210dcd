package category

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/finance-tracker/ledger-api/internal/application/adapter"
	domainerror "github.com/finance-tracker/ledger-api/internal/domain/error"
)

// DeleteCategoriesInput represents the input for category deletion.
type DeleteCategoriesInput struct {
	CategoryIDs []uuid.UUID
	UserID      uuid.UUID
}

// DeleteCategoriesOutput represents the output of category deletion.
type DeleteCategoriesOutput struct {
	DeletedIDs []uuid.UUID
}

// DeleteCategoriesUseCase deletes categories; their transactions become uncategorized.
type DeleteCategoriesUseCase struct {
	categoryRepo adapter.CategoryRepository
}

// NewDeleteCategoriesUseCase creates a new DeleteCategoriesUseCase instance.
func NewDeleteCategoriesUseCase(categoryRepo adapter.CategoryRepository) *DeleteCategoriesUseCase {
	return &DeleteCategoriesUseCase{
		categoryRepo: categoryRepo,
	}
}

// Execute performs the deletion. When a single id is given and nothing was deleted, it reports not found.
func (uc *DeleteCategoriesUseCase) Execute(ctx context.Context, input DeleteCategoriesInput) (*DeleteCategoriesOutput, error) {
	if len(input.CategoryIDs) == 0 {
		return nil, domainerror.NewCategoryError(
			domainerror.ErrCodeNoCategoryIDs,
			"at least one category id is required",
			domainerror.ErrNoCategoryIDs,
		)
	}

	deleted, err := uc.categoryRepo.Delete(ctx, input.CategoryIDs, input.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to delete categories: %w", err)
	}

	if len(input.CategoryIDs) == 1 && len(deleted) == 0 {
		return nil, domainerror.NewCategoryError(
			domainerror.ErrCodeCategoryNotFound,
			"category not found",
			domainerror.ErrCategoryNotFound,
		)
	}

	return &DeleteCategoriesOutput{
		DeletedIDs: deleted,
	}, nil
}
