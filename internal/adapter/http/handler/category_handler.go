package handler

import (
	"context"
	"net/http"

	"github.com/iho/moneybook/internal/adapter/http/dto"
	"github.com/iho/moneybook/internal/domain"
	"github.com/iho/moneybook/internal/ledger"
	"github.com/iho/moneybook/internal/usecase"
)

// CategoryService defines the behavior needed by CategoryHandler.
type CategoryService interface {
	ListCategories(ctx context.Context) ([]*domain.Category, error)
	CreateCategory(ctx context.Context, input usecase.CreateCategoryInput) (*domain.Category, error)
	UpdateCategory(ctx context.Context, input usecase.UpdateCategoryInput) (*domain.Category, error)
	DeleteCategory(ctx context.Context, name string) error
	GetUsage(ctx context.Context, name string) (ledger.CategoryUsage, error)
}

// CategoryHandler handles category-related HTTP requests. Categories are
// addressed by name.
type CategoryHandler struct {
	categoryUC CategoryService
}

// NewCategoryHandler creates a new CategoryHandler.
func NewCategoryHandler(categoryUC CategoryService) *CategoryHandler {
	return &CategoryHandler{categoryUC: categoryUC}
}

// List returns system and user categories.
func (h *CategoryHandler) List(w http.ResponseWriter, r *http.Request) {
	categories, err := h.categoryUC.ListCategories(r.Context())
	if err != nil {
		writeDomainError(w, "failed to list categories", err)
		return
	}

	writeJSON(w, http.StatusOK, dto.NewList(categories))
}

// Create adds a user category.
func (h *CategoryHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateCategoryRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	category, err := h.categoryUC.CreateCategory(r.Context(), req.ToUseCaseInput())
	if err != nil {
		writeDomainError(w, "failed to create category", err)
		return
	}

	writeJSON(w, http.StatusCreated, category)
}

// Update edits a category; a new name renames it everywhere it is used.
func (h *CategoryHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req dto.UpdateCategoryRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	category, err := h.categoryUC.UpdateCategory(r.Context(), req.ToUseCaseInput(pathParam(r, "name")))
	if err != nil {
		writeDomainError(w, "failed to update category", err)
		return
	}
	if category == nil {
		w.WriteHeader(http.StatusNoContent)
		return
	}

	writeJSON(w, http.StatusOK, category)
}

// Delete removes an unused category and its budget.
func (h *CategoryHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.categoryUC.DeleteCategory(r.Context(), pathParam(r, "name")); err != nil {
		writeDomainError(w, "failed to delete category", err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// Usage counts the records referencing a category.
func (h *CategoryHandler) Usage(w http.ResponseWriter, r *http.Request) {
	name := pathParam(r, "name")
	usage, err := h.categoryUC.GetUsage(r.Context(), name)
	if err != nil {
		writeDomainError(w, "failed to get category usage", err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"name":         name,
		"transactions": usage.Transactions,
		"rules":        usage.Rules,
		"inUse":        usage.InUse(),
	})
}
