package domain

import "github.com/shopspring/decimal"

// Budget caps spending in one category. A category without a budget is unlimited.
type Budget struct {
	Category    string          `json:"category"`
	LimitAmount decimal.Decimal `json:"limitAmount"`
}

// Validate checks the budget invariants.
func (b *Budget) Validate() error {
	if b.Category == "" {
		return ErrInvalidCategoryName
	}
	if b.LimitAmount.IsNegative() {
		return ErrNegativeAmount
	}
	return nil
}
