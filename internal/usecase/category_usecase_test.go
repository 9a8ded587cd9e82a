package usecase_test

import (
	"context"
	"errors"
	"testing"

	"github.com/iho/moneybook/internal/domain"
	"github.com/iho/moneybook/internal/usecase"
)

func TestCategoryUseCase_CreateCategory(t *testing.T) {
	tests := []struct {
		name        string
		input       string
		expectedErr error
	}{
		{name: "new category", input: "Pets"},
		{name: "trims whitespace", input: "  Garden "},
		{name: "existing user category", input: "Hobby", expectedErr: domain.ErrCategoryExists},
		{name: "system category", input: domain.CategoryOthers, expectedErr: domain.ErrCategoryExists},
		{name: "empty", input: " ", expectedErr: domain.ErrInvalidCategoryName},
		{name: "reserved fee bucket", input: domain.TransactionFeeBucket, expectedErr: domain.ErrInvalidCategoryName},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			f.store.Categories.Seed(&domain.Category{Name: "Hobby"})

			got, err := f.categories().CreateCategory(context.Background(), usecase.CreateCategoryInput{Name: tt.input, Color: "#ff0000"})

			if tt.expectedErr != nil {
				if !errors.Is(err, tt.expectedErr) {
					t.Errorf("expected error %v, got %v", tt.expectedErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if _, err := f.store.Categories.GetByName(context.Background(), got.Name); err != nil {
				t.Errorf("expected %q stored: %v", got.Name, err)
			}
		})
	}
}

func TestCategoryUseCase_ListCategories(t *testing.T) {
	f := newFixture(t)
	f.store.Categories.Seed(
		&domain.Category{Name: "Zoo", SortOrder: 1},
		&domain.Category{Name: "Art", SortOrder: 2},
	)

	got, err := f.categories().ListCategories(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	n := len(domain.SystemCategories)
	if len(got) != n+2 {
		t.Fatalf("expected %d categories, got %d", n+2, len(got))
	}
	if got[0].Name != domain.SystemCategories[0].Name {
		t.Errorf("expected system categories first, got %q", got[0].Name)
	}
	if got[n].Name != "Zoo" || got[n+1].Name != "Art" {
		t.Errorf("expected user categories by sort order, got %q, %q", got[n].Name, got[n+1].Name)
	}
}

func TestCategoryUseCase_Rename(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.store.Categories.Seed(&domain.Category{Name: "Hobby", Color: "#00ff00"})
	f.store.Budgets.Seed(&domain.Budget{Category: "Hobby", LimitAmount: dec("80")})
	f.addTx(&domain.Transaction{ID: "t1", Amount: dec("10"), Type: domain.TransactionTypeExpense, Category: "Hobby"})
	f.addTx(&domain.Transaction{ID: "t2", Amount: dec("10"), Type: domain.TransactionTypeExpense, Category: "Food"})
	f.store.Rules.Seed(&domain.RecurringRule{ID: "r1", Category: "Hobby", Frequency: domain.FrequencyWeekly, NextDueDate: domain.MustParseDate("2024-03-01"), Type: domain.TransactionTypeExpense})

	newName := "Crafts"
	got, err := f.categories().UpdateCategory(ctx, usecase.UpdateCategoryInput{Name: "Hobby", NewName: &newName})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Name != "Crafts" || got.Color != "#00ff00" {
		t.Errorf("unexpected category %+v", got)
	}

	if _, err := f.store.Categories.GetByName(ctx, "Hobby"); !errors.Is(err, domain.ErrCategoryNotFound) {
		t.Error("expected old category removed")
	}
	t1, _ := f.store.Transactions.GetByID(ctx, "t1")
	if t1.Category != "Crafts" {
		t.Errorf("expected transaction rewritten, got %q", t1.Category)
	}
	t2, _ := f.store.Transactions.GetByID(ctx, "t2")
	if t2.Category != "Food" {
		t.Error("expected unrelated transaction untouched")
	}
	r1, _ := f.store.Rules.GetByID(ctx, "r1")
	if r1.Category != "Crafts" {
		t.Errorf("expected rule rewritten, got %q", r1.Category)
	}
	budget, err := f.store.Budgets.GetByCategory(ctx, "Crafts")
	if err != nil {
		t.Fatalf("expected budget re-keyed: %v", err)
	}
	assertDecimal(t, "80", budget.LimitAmount)
	if _, err := f.store.Budgets.GetByCategory(ctx, "Hobby"); !errors.Is(err, domain.ErrBudgetNotFound) {
		t.Error("expected old budget removed")
	}
	if begun, committed, _ := f.txm.Counts(); begun != 1 || committed != 1 {
		t.Errorf("expected one commit, got %d/%d", begun, committed)
	}
}

func TestCategoryUseCase_UpdateCategory_Errors(t *testing.T) {
	f := newFixture(t)
	f.store.Categories.Seed(&domain.Category{Name: "Hobby"}, &domain.Category{Name: "Pets"})
	uc := f.categories()

	taken := "Pets"
	if _, err := uc.UpdateCategory(context.Background(), usecase.UpdateCategoryInput{Name: "Hobby", NewName: &taken}); !errors.Is(err, domain.ErrCategoryExists) {
		t.Errorf("expected ErrCategoryExists, got %v", err)
	}

	color := "#fff"
	if _, err := uc.UpdateCategory(context.Background(), usecase.UpdateCategoryInput{Name: domain.CategoryOthers, Color: &color}); !errors.Is(err, domain.ErrSystemCategory) {
		t.Errorf("expected ErrSystemCategory, got %v", err)
	}

	got, err := uc.UpdateCategory(context.Background(), usecase.UpdateCategoryInput{Name: "Gone", Color: &color})
	if got != nil || err != nil {
		t.Errorf("expected (nil, nil), got (%v, %v)", got, err)
	}
}

func TestCategoryUseCase_DeleteCategory(t *testing.T) {
	tests := []struct {
		name        string
		category    string
		setup       func(*fixture)
		expectedErr error
		wantGone    bool
	}{
		{
			name:     "unused category and its budget",
			category: "Hobby",
			setup: func(f *fixture) {
				f.store.Budgets.Seed(&domain.Budget{Category: "Hobby", LimitAmount: dec("10")})
			},
			wantGone: true,
		},
		{
			name:     "referenced by a transaction",
			category: "Hobby",
			setup: func(f *fixture) {
				f.addTx(&domain.Transaction{ID: "t1", Amount: dec("1"), Type: domain.TransactionTypeExpense, Category: "Hobby"})
			},
			expectedErr: domain.ErrCategoryInUse,
		},
		{
			name:     "referenced by a rule",
			category: "Hobby",
			setup: func(f *fixture) {
				f.store.Rules.Seed(&domain.RecurringRule{ID: "r1", Category: "Hobby"})
			},
			expectedErr: domain.ErrCategoryInUse,
		},
		{
			name:        "system category",
			category:    domain.CategoryLoan,
			setup:       func(*fixture) {},
			expectedErr: domain.ErrSystemCategory,
		},
		{
			name:     "missing category",
			category: "Nope",
			setup:    func(*fixture) {},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			f.store.Categories.Seed(&domain.Category{Name: "Hobby"})
			tt.setup(f)

			err := f.categories().DeleteCategory(context.Background(), tt.category)

			if tt.expectedErr != nil {
				if !errors.Is(err, tt.expectedErr) {
					t.Errorf("expected error %v, got %v", tt.expectedErr, err)
				}
				if f.store.Categories.Len() != 1 {
					t.Error("expected category kept")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if tt.wantGone && (f.store.Categories.Len() != 0 || f.store.Budgets.Len() != 0) {
				t.Error("expected category and budget removed")
			}
		})
	}
}

func TestCategoryUseCase_GetUsage(t *testing.T) {
	f := newFixture(t)
	f.addTx(&domain.Transaction{ID: "t1", Amount: dec("1"), Type: domain.TransactionTypeExpense, Category: "Hobby"})
	f.addTx(&domain.Transaction{ID: "t2", Amount: dec("1"), Type: domain.TransactionTypeExpense, Category: "Hobby"})
	f.store.Rules.Seed(&domain.RecurringRule{ID: "r1", Category: "Hobby"})

	got, err := f.categories().GetUsage(context.Background(), "Hobby")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Transactions != 2 || got.Rules != 1 {
		t.Errorf("unexpected usage %+v", got)
	}
}
