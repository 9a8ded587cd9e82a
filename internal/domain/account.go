package domain

import (
	"github.com/shopspring/decimal"
)

// FeeKind says how a fee rule derives its value.
type FeeKind string

const (
	FeeKindPercentage FeeKind = "PERCENTAGE"
	FeeKindFixed      FeeKind = "FIXED"
)

// FeeConfig is a named fee rule attached to an account.
type FeeConfig struct {
	Name  string          `json:"name"`
	Kind  FeeKind         `json:"kind"`
	Value decimal.Decimal `json:"value"`
}

// Validate checks the fee rule.
func (f FeeConfig) Validate() error {
	if f.Name == "" || f.Value.IsNegative() {
		return ErrInvalidFeeConfig
	}
	switch f.Kind {
	case FeeKindPercentage, FeeKindFixed:
		return nil
	}
	return ErrInvalidFeeConfig
}

// Apply returns the fee charged on amount. Percentages round half-up to cents.
func (f FeeConfig) Apply(amount decimal.Decimal) decimal.Decimal {
	if f.Kind == FeeKindFixed {
		return f.Value
	}
	return amount.Mul(f.Value).Div(decimal.NewFromInt(100)).Round(2)
}

// Account is a place money is held.
type Account struct {
	ID             string          `json:"id"`
	Name           string          `json:"name"`
	InitialBalance decimal.Decimal `json:"initialBalance"`
	FeeConfigs     []FeeConfig     `json:"feeConfigs"`
	SortOrder      int             `json:"sortOrder"`
}

// Validate checks the account invariants.
func (a *Account) Validate() error {
	if err := ValidateAccountName(a.Name); err != nil {
		return err
	}

	seen := make(map[string]bool, len(a.FeeConfigs))
	for _, fc := range a.FeeConfigs {
		if err := fc.Validate(); err != nil {
			return err
		}
		if seen[fc.Name] {
			return ErrInvalidFeeConfig
		}
		seen[fc.Name] = true
	}

	return nil
}

// FeeConfig looks up a fee rule by name.
func (a *Account) FeeConfig(name string) (FeeConfig, bool) {
	for _, fc := range a.FeeConfigs {
		if fc.Name == name {
			return fc, true
		}
	}
	return FeeConfig{}, false
}

// FeeFor returns the fee for amount under the named rule, or zero when the
// account has no such rule.
func (a *Account) FeeFor(name string, amount decimal.Decimal) decimal.Decimal {
	fc, ok := a.FeeConfig(name)
	if !ok {
		return decimal.Zero
	}
	return fc.Apply(amount)
}
