package domain

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
)

func TestFeeConfig_Apply(t *testing.T) {
	tests := []struct {
		name   string
		config FeeConfig
		amount decimal.Decimal
		want   decimal.Decimal
	}{
		{
			name:   "percentage rounds to cents",
			config: FeeConfig{Name: "card", Kind: FeeKindPercentage, Value: decimal.RequireFromString("1.5")},
			amount: decimal.RequireFromString("33.33"),
			want:   decimal.RequireFromString("0.50"),
		},
		{
			name:   "fixed ignores amount",
			config: FeeConfig{Name: "atm", Kind: FeeKindFixed, Value: decimal.NewFromInt(2)},
			amount: decimal.NewFromInt(500),
			want:   decimal.NewFromInt(2),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.config.Apply(tt.amount)
			if !got.Equal(tt.want) {
				t.Errorf("expected fee %s, got %s", tt.want, got)
			}
		})
	}
}

func TestAccount_FeeFor(t *testing.T) {
	acc := &Account{
		Name: "Wallet",
		FeeConfigs: []FeeConfig{
			{Name: "wire", Kind: FeeKindFixed, Value: decimal.NewFromInt(3)},
		},
	}

	if got := acc.FeeFor("wire", decimal.NewFromInt(100)); !got.Equal(decimal.NewFromInt(3)) {
		t.Errorf("expected fee 3, got %s", got)
	}
	if got := acc.FeeFor("missing", decimal.NewFromInt(100)); !got.IsZero() {
		t.Errorf("expected zero fee for unknown rule, got %s", got)
	}
}

func TestAccount_Validate(t *testing.T) {
	dup := &Account{
		Name: "Bank",
		FeeConfigs: []FeeConfig{
			{Name: "wire", Kind: FeeKindFixed, Value: decimal.NewFromInt(1)},
			{Name: "wire", Kind: FeeKindPercentage, Value: decimal.NewFromInt(1)},
		},
	}
	if err := dup.Validate(); !errors.Is(err, ErrInvalidFeeConfig) {
		t.Fatalf("expected ErrInvalidFeeConfig for duplicate names, got %v", err)
	}

	unnamed := &Account{Name: "  "}
	if err := unnamed.Validate(); !errors.Is(err, ErrInvalidAccountName) {
		t.Fatalf("expected ErrInvalidAccountName, got %v", err)
	}
}
