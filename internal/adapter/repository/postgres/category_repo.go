package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/iho/moneybook/internal/domain"
	"github.com/iho/moneybook/internal/infrastructure/postgres/generated"
	"github.com/iho/moneybook/internal/usecase"
)

// CategoryRepository implements usecase.CategoryRepository. Only user
// categories are stored.
type CategoryRepository struct {
	queries *generated.Queries
}

// NewCategoryRepository creates a new CategoryRepository.
func NewCategoryRepository(pool *pgxpool.Pool) *CategoryRepository {
	return newCategoryRepository(pool)
}

func newCategoryRepository(db generated.DBTX) *CategoryRepository {
	return &CategoryRepository{queries: generated.New(db)}
}

// List returns user categories in sort order.
func (r *CategoryRepository) List(ctx context.Context) ([]*domain.Category, error) {
	rows, err := r.queries.ListCategories(ctx)
	if err != nil {
		return nil, err
	}

	categories := make([]*domain.Category, 0, len(rows))
	for _, row := range rows {
		categories = append(categories, rowToCategory(row))
	}

	return categories, nil
}

// GetByName retrieves a user category.
func (r *CategoryRepository) GetByName(ctx context.Context, name string) (*domain.Category, error) {
	row, err := r.queries.GetCategoryByName(ctx, name)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrCategoryNotFound
		}

		return nil, err
	}

	return rowToCategory(row), nil
}

// Upsert inserts or replaces a category.
func (r *CategoryRepository) Upsert(ctx context.Context, tx usecase.Transaction, category *domain.Category) error {
	return txQueries(tx).UpsertCategory(ctx, categoryParams(category))
}

// UpsertMany inserts or replaces categories within tx.
func (r *CategoryRepository) UpsertMany(ctx context.Context, tx usecase.Transaction, categories []*domain.Category) error {
	queries := txQueries(tx)
	for _, category := range categories {
		if err := queries.UpsertCategory(ctx, categoryParams(category)); err != nil {
			return err
		}
	}

	return nil
}

// Delete removes a category.
func (r *CategoryRepository) Delete(ctx context.Context, tx usecase.Transaction, name string) error {
	return txQueries(tx).DeleteCategory(ctx, name)
}

func categoryParams(category *domain.Category) generated.UpsertCategoryParams {
	return generated.UpsertCategoryParams{
		Name:      category.Name,
		Color:     category.Color,
		Icon:      category.Icon,
		SortOrder: int32(category.SortOrder),
	}
}

func rowToCategory(row generated.Category) *domain.Category {
	return &domain.Category{
		Name:      row.Name,
		Color:     row.Color,
		Icon:      row.Icon,
		SortOrder: int(row.SortOrder),
	}
}
