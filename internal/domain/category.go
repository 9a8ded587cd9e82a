package domain

import (
	"fmt"
	"strings"
)

// Names with fixed meaning in the engine.
const (
	CategoryOthers            = "Others"
	CategoryLoan              = "Loan"
	CategoryTransfer          = "Transfer"
	CategoryBalanceAdjustment = "Balance Adjustment"

	// TransactionFeeBucket labels the synthetic aggregate of all fees in a
	// breakdown. It is never stored as a category.
	TransactionFeeBucket = "Transaction Fee"

	MaxCategoryNameLength = 64
)

// Category groups transactions. Transactions reference categories by name.
type Category struct {
	Name      string `json:"name"`
	Color     string `json:"color"`
	Icon      string `json:"icon"`
	SortOrder int    `json:"sortOrder"`
	IsSystem  bool   `json:"isSystem"`
}

// SystemCategories are always present and can be neither renamed nor deleted.
var SystemCategories = []Category{
	{Name: "Food", Color: "#E57373", Icon: "restaurant", SortOrder: 0, IsSystem: true},
	{Name: "Transport", Color: "#64B5F6", Icon: "directions_car", SortOrder: 1, IsSystem: true},
	{Name: "Shopping", Color: "#BA68C8", Icon: "shopping_bag", SortOrder: 2, IsSystem: true},
	{Name: "Entertainment", Color: "#FFB74D", Icon: "movie", SortOrder: 3, IsSystem: true},
	{Name: "Bills", Color: "#4DB6AC", Icon: "receipt", SortOrder: 4, IsSystem: true},
	{Name: "Health", Color: "#F06292", Icon: "favorite", SortOrder: 5, IsSystem: true},
	{Name: "Education", Color: "#7986CB", Icon: "school", SortOrder: 6, IsSystem: true},
	{Name: "Salary", Color: "#81C784", Icon: "payments", SortOrder: 7, IsSystem: true},
	{Name: "Investment", Color: "#AED581", Icon: "trending_up", SortOrder: 8, IsSystem: true},
	{Name: "Gift", Color: "#FF8A65", Icon: "card_giftcard", SortOrder: 9, IsSystem: true},
	{Name: CategoryLoan, Color: "#A1887F", Icon: "handshake", SortOrder: 10, IsSystem: true},
	{Name: CategoryTransfer, Color: "#90A4AE", Icon: "swap_horiz", SortOrder: 11, IsSystem: true},
	{Name: CategoryBalanceAdjustment, Color: "#B0BEC5", Icon: "tune", SortOrder: 12, IsSystem: true},
	{Name: CategoryOthers, Color: "#9E9E9E", Icon: "category", SortOrder: 13, IsSystem: true},
}

// IsSystemCategory reports whether name is one of the fixed categories.
func IsSystemCategory(name string) bool {
	for _, c := range SystemCategories {
		if c.Name == name {
			return true
		}
	}
	return false
}

// ValidateCategoryName validates a user supplied category name.
func ValidateCategoryName(name string) error {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return fmt.Errorf("%w: name cannot be empty", ErrInvalidCategoryName)
	}
	if len(trimmed) > MaxCategoryNameLength {
		return fmt.Errorf("%w: name exceeds %d characters", ErrInvalidCategoryName, MaxCategoryNameLength)
	}
	if trimmed == TransactionFeeBucket {
		return fmt.Errorf("%w: %q is reserved", ErrInvalidCategoryName, TransactionFeeBucket)
	}
	return nil
}
