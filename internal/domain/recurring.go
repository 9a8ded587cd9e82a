package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Frequency is how often a recurring rule fires.
type Frequency string

const (
	FrequencyWeekly  Frequency = "WEEKLY"
	FrequencyMonthly Frequency = "MONTHLY"
)

// IsValid reports whether f is a known frequency.
func (f Frequency) IsValid() bool {
	return f == FrequencyWeekly || f == FrequencyMonthly
}

// RecurringRule is a template that stamps out transactions on a schedule.
type RecurringRule struct {
	ID                      string          `json:"id"`
	Amount                  decimal.Decimal `json:"amount"`
	Category                string          `json:"category"`
	Description             string          `json:"description"`
	Frequency               Frequency       `json:"frequency"`
	NextDueDate             Date            `json:"nextDueDate"`
	Type                    TransactionType `json:"transactionType"`
	AccountID               *string         `json:"accountId"`
	TransferTargetAccountID *string         `json:"transferTargetAccountId"`
	FeeAmount               decimal.Decimal `json:"feeAmount"`
	FeeConfigName           *string         `json:"feeConfigName"`
	// AnchorDay is the day of month a MONTHLY rule returns to after a short
	// month clamped it. Zero means the day of NextDueDate.
	AnchorDay int `json:"anchorDay,omitempty"`
}

// Validate checks the rule invariants.
func (r *RecurringRule) Validate() error {
	if !r.Frequency.IsValid() {
		return ErrInvalidFrequency
	}
	if r.NextDueDate.IsZero() {
		return ErrInvalidDate
	}
	if r.AnchorDay < 0 || r.AnchorDay > 31 {
		return ErrInvalidDate
	}
	return r.Stamp("", time.Time{}).Validate()
}

// Advance returns the due date following d under the rule's frequency.
func (r *RecurringRule) Advance(d Date) Date {
	if r.Frequency == FrequencyWeekly {
		return d.AddDays(7)
	}
	return d.AddMonthsClamped(1, r.anchorDay())
}

// Stamp builds the concrete transaction for the current due date.
func (r *RecurringRule) Stamp(id string, now time.Time) *Transaction {
	return &Transaction{
		ID:                      id,
		Amount:                  r.Amount,
		FeeAmount:               r.FeeAmount,
		Category:                r.Category,
		Type:                    r.Type,
		Date:                    r.NextDueDate,
		Timestamp:               now,
		AccountID:               cloneString(r.AccountID),
		TransferTargetAccountID: cloneString(r.TransferTargetAccountID),
		IsRecurring:             true,
		FeeConfigName:           cloneString(r.FeeConfigName),
		Description:             r.Description,
	}
}

// Clone returns a deep copy of the rule.
func (r *RecurringRule) Clone() *RecurringRule {
	c := *r
	c.AccountID = cloneString(r.AccountID)
	c.TransferTargetAccountID = cloneString(r.TransferTargetAccountID)
	c.FeeConfigName = cloneString(r.FeeConfigName)
	return &c
}

func (r *RecurringRule) anchorDay() int {
	if r.AnchorDay > 0 {
		return r.AnchorDay
	}
	return r.NextDueDate.Day()
}
