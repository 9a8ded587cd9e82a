package ledger

import (
	"time"

	"github.com/iho/moneybook/internal/domain"
)

// Materialization is the outcome of one catch-up pass.
type Materialization struct {
	Transactions []*domain.Transaction
	// UpdatedRules holds only the rules that advanced at least once.
	UpdatedRules []*domain.RecurringRule
}

// Materialize stamps out one transaction per due date up to and including asOf
// and advances each rule past asOf. A rule that fell several periods behind
// emits one transaction per missed period. Input rules are not modified.
func Materialize(rules []*domain.RecurringRule, asOf domain.Date, now time.Time, newID func() string) Materialization {
	var m Materialization

	for _, rule := range rules {
		if !rule.Frequency.IsValid() || rule.NextDueDate.IsZero() {
			continue
		}

		r := rule.Clone()
		if r.Frequency == domain.FrequencyMonthly && r.AnchorDay == 0 {
			r.AnchorDay = r.NextDueDate.Day()
		}

		advanced := false
		for !r.NextDueDate.After(asOf) {
			m.Transactions = append(m.Transactions, r.Stamp(newID(), now))
			r.NextDueDate = r.Advance(r.NextDueDate)
			advanced = true
		}

		if advanced {
			m.UpdatedRules = append(m.UpdatedRules, r)
		}
	}

	return m
}

// DueCount reports how many transactions Materialize would emit for rule.
func DueCount(rule *domain.RecurringRule, asOf domain.Date) int {
	if !rule.Frequency.IsValid() || rule.NextDueDate.IsZero() {
		return 0
	}
	r := rule.Clone()
	if r.Frequency == domain.FrequencyMonthly && r.AnchorDay == 0 {
		r.AnchorDay = r.NextDueDate.Day()
	}
	n := 0
	for !r.NextDueDate.After(asOf) {
		r.NextDueDate = r.Advance(r.NextDueDate)
		n++
	}
	return n
}
