package domain

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Validation errors
var (
	ErrInvalidAccountName = errors.New("invalid account name")
	ErrAmountTooLarge     = errors.New("amount exceeds maximum allowed")
	ErrInvalidPeriod      = errors.New("invalid period")
)

// Validation constants
const (
	MaxAccountNameLength = 255
	MinAccountNameLength = 1
	MaxAmount            = "1000000000000" // 1 trillion
	MaxDescriptionLength = 1024
	MaxPeriodDays        = 3660 // about ten years
)

// ValidateAccountName validates an account or loan name.
func ValidateAccountName(name string) error {
	name = strings.TrimSpace(name)

	if len(name) < MinAccountNameLength {
		return fmt.Errorf("%w: name cannot be empty", ErrInvalidAccountName)
	}

	if len(name) > MaxAccountNameLength {
		return fmt.Errorf("%w: name exceeds %d characters", ErrInvalidAccountName, MaxAccountNameLength)
	}

	return nil
}

// ValidateAmount validates a user entered amount.
func ValidateAmount(amount decimal.Decimal) error {
	if amount.IsNegative() {
		return ErrNegativeAmount
	}

	maxAmount := decimal.RequireFromString(MaxAmount)
	if amount.GreaterThan(maxAmount) {
		return fmt.Errorf("%w: maximum amount is %s", ErrAmountTooLarge, MaxAmount)
	}

	return nil
}

// ValidateEntry validates a transaction on the user entry path. It adds the
// size limits to the structural invariants of Transaction.Validate.
func ValidateEntry(t *Transaction) error {
	if err := t.Validate(); err != nil {
		return err
	}

	if err := ValidateAmount(t.Amount); err != nil {
		return err
	}

	if err := ValidateAmount(t.FeeAmount); err != nil {
		return err
	}

	if t.Date.IsZero() {
		return ErrInvalidDate
	}

	if len(t.Description) > MaxDescriptionLength || len(t.Note) > MaxDescriptionLength {
		return fmt.Errorf("description exceeds %d characters", MaxDescriptionLength)
	}

	return nil
}

// ValidatePeriod checks that both bounds are set, start is not after end and
// the inclusive span is at most MaxPeriodDays.
func ValidatePeriod(start, end Date) error {
	if start.IsZero() || end.IsZero() {
		return fmt.Errorf("%w: start and end are required", ErrInvalidPeriod)
	}
	if end.Before(start) {
		return fmt.Errorf("%w: end is before start", ErrInvalidPeriod)
	}
	if end.DaysSince(start)+1 > MaxPeriodDays {
		return fmt.Errorf("%w: longer than %d days", ErrInvalidPeriod, MaxPeriodDays)
	}
	return nil
}
