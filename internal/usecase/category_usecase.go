package usecase

import (
	"context"
	"errors"
	"sort"
	"strings"

	"github.com/rs/zerolog"

	"github.com/iho/moneybook/internal/domain"
	"github.com/iho/moneybook/internal/ledger"
)

// CategoryUseCase handles user categories. Transactions reference categories
// by name, so renames rewrite every referencing record.
type CategoryUseCase struct {
	repos    Repositories
	runner   txRunner
	notifier ChangeNotifier
	logger   zerolog.Logger
}

// NewCategoryUseCase creates a new CategoryUseCase.
func NewCategoryUseCase(
	repos Repositories,
	txManager TransactionManager,
	retrier Retrier,
	notifier ChangeNotifier,
	logger zerolog.Logger,
) *CategoryUseCase {
	return &CategoryUseCase{
		repos:    repos,
		runner:   txRunner{txManager: txManager, retrier: retrier},
		notifier: notifier,
		logger:   logger.With().Str("component", "categories").Logger(),
	}
}

// ListCategories returns system categories followed by user ones, each group
// in sort order.
func (uc *CategoryUseCase) ListCategories(ctx context.Context) ([]*domain.Category, error) {
	stored, err := uc.repos.Categories.List(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]*domain.Category, 0, len(domain.SystemCategories)+len(stored))
	for i := range domain.SystemCategories {
		c := domain.SystemCategories[i]
		out = append(out, &c)
	}

	sort.SliceStable(stored, func(i, j int) bool {
		if stored[i].SortOrder != stored[j].SortOrder {
			return stored[i].SortOrder < stored[j].SortOrder
		}
		return stored[i].Name < stored[j].Name
	})
	return append(out, stored...), nil
}

// CreateCategoryInput represents input for creating a category.
type CreateCategoryInput struct {
	Name      string
	Color     string
	Icon      string
	SortOrder int
}

// CreateCategory adds a user category.
func (uc *CategoryUseCase) CreateCategory(ctx context.Context, input CreateCategoryInput) (*domain.Category, error) {
	name := strings.TrimSpace(input.Name)
	if err := domain.ValidateCategoryName(name); err != nil {
		return nil, err
	}
	if err := uc.ensureFree(ctx, name); err != nil {
		return nil, err
	}

	category := &domain.Category{
		Name:      name,
		Color:     input.Color,
		Icon:      input.Icon,
		SortOrder: input.SortOrder,
	}

	err := uc.runner.run(ctx, func(ctx context.Context, tx Transaction) error {
		return uc.repos.Categories.Upsert(ctx, tx, category)
	})
	if err != nil {
		return nil, err
	}

	notify(ctx, uc.notifier, domain.EntityCategory, domain.ChangeUpserted, category.Name)
	return category, nil
}

// UpdateCategoryInput represents input for editing a category. A non-nil
// NewName renames it.
type UpdateCategoryInput struct {
	Name      string
	NewName   *string
	Color     *string
	Icon      *string
	SortOrder *int
}

// UpdateCategory edits a user category. A rename rewrites every transaction,
// budget and recurring rule carrying the old name in the same storage
// transaction. System categories are immutable. A missing category yields
// (nil, nil).
func (uc *CategoryUseCase) UpdateCategory(ctx context.Context, input UpdateCategoryInput) (*domain.Category, error) {
	if domain.IsSystemCategory(input.Name) {
		return nil, domain.ErrSystemCategory
	}

	existing, err := uc.repos.Categories.GetByName(ctx, input.Name)
	if err != nil {
		if missing(err) {
			return nil, nil
		}
		return nil, err
	}

	updated := *existing
	if input.Color != nil {
		updated.Color = *input.Color
	}
	if input.Icon != nil {
		updated.Icon = *input.Icon
	}
	if input.SortOrder != nil {
		updated.SortOrder = *input.SortOrder
	}

	var plan ledger.RenamePlan
	renaming := false
	if input.NewName != nil {
		newName := strings.TrimSpace(*input.NewName)
		if newName != existing.Name {
			if err := domain.ValidateCategoryName(newName); err != nil {
				return nil, err
			}
			if err := uc.ensureFree(ctx, newName); err != nil {
				return nil, err
			}

			snap, err := uc.repos.Snapshot(ctx)
			if err != nil {
				return nil, err
			}
			plan = ledger.PlanRename(existing.Name, newName, snap)
			updated.Name = newName
			renaming = true
		}
	}

	err = uc.runner.run(ctx, func(ctx context.Context, tx Transaction) error {
		if err := uc.repos.Categories.Upsert(ctx, tx, &updated); err != nil {
			return err
		}
		if !renaming {
			return nil
		}
		if err := uc.repos.Categories.Delete(ctx, tx, existing.Name); err != nil {
			return err
		}
		if len(plan.Transactions) > 0 {
			if err := uc.repos.Transactions.UpsertMany(ctx, tx, plan.Transactions); err != nil {
				return err
			}
		}
		if len(plan.Rules) > 0 {
			if err := uc.repos.Rules.UpsertMany(ctx, tx, plan.Rules); err != nil {
				return err
			}
		}
		if plan.DeletedBudget != "" {
			if err := uc.repos.Budgets.Delete(ctx, tx, plan.DeletedBudget); err != nil {
				return err
			}
		}
		if len(plan.Budgets) > 0 {
			return uc.repos.Budgets.UpsertMany(ctx, tx, plan.Budgets)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if renaming {
		uc.logger.Info().
			Str("from", existing.Name).
			Str("to", updated.Name).
			Int("transactions", len(plan.Transactions)).
			Int("rules", len(plan.Rules)).
			Msg("category renamed")
		notify(ctx, uc.notifier, domain.EntityCategory, domain.ChangeDeleted, existing.Name)
		notify(ctx, uc.notifier, domain.EntityTransaction, domain.ChangeUpserted)
	}
	notify(ctx, uc.notifier, domain.EntityCategory, domain.ChangeUpserted, updated.Name)
	return &updated, nil
}

// DeleteCategory removes an unused user category together with its budget.
// It fails with domain.ErrCategoryInUse while any transaction or recurring
// rule references it. Deleting a missing category is a no-op.
func (uc *CategoryUseCase) DeleteCategory(ctx context.Context, name string) error {
	if domain.IsSystemCategory(name) {
		return domain.ErrSystemCategory
	}

	if _, err := uc.repos.Categories.GetByName(ctx, name); err != nil {
		if missing(err) {
			return nil
		}
		return err
	}

	snap, err := uc.repos.Snapshot(ctx)
	if err != nil {
		return err
	}
	if ledger.UsageOf(name, snap).InUse() {
		return domain.ErrCategoryInUse
	}

	err = uc.runner.run(ctx, func(ctx context.Context, tx Transaction) error {
		if err := uc.repos.Budgets.Delete(ctx, tx, name); err != nil {
			return err
		}
		return uc.repos.Categories.Delete(ctx, tx, name)
	})
	if err != nil {
		return err
	}

	notify(ctx, uc.notifier, domain.EntityCategory, domain.ChangeDeleted, name)
	return nil
}

// GetUsage reports how many records reference a category.
func (uc *CategoryUseCase) GetUsage(ctx context.Context, name string) (ledger.CategoryUsage, error) {
	snap, err := uc.repos.Snapshot(ctx)
	if err != nil {
		return ledger.CategoryUsage{}, err
	}
	return ledger.UsageOf(name, snap), nil
}

func (uc *CategoryUseCase) ensureFree(ctx context.Context, name string) error {
	if domain.IsSystemCategory(name) {
		return domain.ErrCategoryExists
	}
	_, err := uc.repos.Categories.GetByName(ctx, name)
	switch {
	case err == nil:
		return domain.ErrCategoryExists
	case errors.Is(err, domain.ErrCategoryNotFound):
		return nil
	default:
		return err
	}
}
