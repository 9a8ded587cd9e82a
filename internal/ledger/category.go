package ledger

import (
	"github.com/iho/moneybook/internal/domain"
)

// RenamePlan carries every record a category rename rewrites.
type RenamePlan struct {
	Transactions []*domain.Transaction
	Budgets      []*domain.Budget
	Rules        []*domain.RecurringRule
	// DeletedBudget is the budget key that disappears when the budget is re-keyed.
	DeletedBudget string
}

// IsEmpty reports whether no record references the old name.
func (p RenamePlan) IsEmpty() bool {
	return len(p.Transactions) == 0 && len(p.Budgets) == 0 && len(p.Rules) == 0
}

// PlanRename rewrites every transaction, budget and recurring rule carrying
// from so that it carries to instead. A budget already keyed by to is kept and
// the one keyed by from is dropped.
func PlanRename(from, to string, snap *Snapshot) RenamePlan {
	var plan RenamePlan
	if from == to {
		return plan
	}

	for _, t := range snap.Transactions {
		if t.Category == from {
			c := t.Clone()
			c.Category = to
			plan.Transactions = append(plan.Transactions, c)
		}
	}

	for _, r := range snap.Rules {
		if r.Category == from {
			c := r.Clone()
			c.Category = to
			plan.Rules = append(plan.Rules, c)
		}
	}

	var old *domain.Budget
	hasTarget := false
	for _, b := range snap.Budgets {
		switch b.Category {
		case from:
			old = b
		case to:
			hasTarget = true
		}
	}
	if old != nil {
		plan.DeletedBudget = from
		if !hasTarget {
			plan.Budgets = append(plan.Budgets, &domain.Budget{Category: to, LimitAmount: old.LimitAmount})
		}
	}

	return plan
}

// CategoryUsage counts the records that reference name.
type CategoryUsage struct {
	Transactions int `json:"transactions"`
	Rules        int `json:"rules"`
}

// InUse reports whether any record still references the category.
func (u CategoryUsage) InUse() bool {
	return u.Transactions > 0 || u.Rules > 0
}

// UsageOf counts transactions and recurring rules referencing name.
func UsageOf(name string, snap *Snapshot) CategoryUsage {
	var u CategoryUsage
	for _, t := range snap.Transactions {
		if t.Category == name {
			u.Transactions++
		}
	}
	for _, r := range snap.Rules {
		if r.Category == name {
			u.Rules++
		}
	}
	return u
}
