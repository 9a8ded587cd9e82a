package ledger

import (
	"github.com/iho/moneybook/internal/domain"
)

// Trigger names the deletion that starts a cascade.
type Trigger string

const (
	TriggerAccountDeleted Trigger = "account_deleted"
	// TriggerLoanDeleted keeps the loan's history and unlinks it.
	TriggerLoanDeleted Trigger = "loan_deleted"
	// TriggerLoanPurged deletes the loan's transactions along with the loan.
	TriggerLoanPurged Trigger = "loan_purged"
)

// DeletedLoanSuffix is appended to descriptions of unlinked loan history.
const DeletedLoanSuffix = " (loan deleted)"

// Action is what a cascade rule does to a matching record.
type Action string

const (
	ActionDelete            Action = "delete"
	ActionClearAccount      Action = "clear_account"
	ActionClearTarget       Action = "clear_target"
	ActionReclassifyExpense Action = "reclassify_expense"
	ActionClearLoan         Action = "clear_loan"
	ActionMarkLoanDeleted   Action = "mark_loan_deleted"
)

// CascadeRule is one row of the integrity table: when Trigger fires for an
// entity id, every transaction for which Match holds gets Action applied.
type CascadeRule struct {
	Trigger Trigger
	Field   string
	Match   func(t *domain.Transaction, id string) bool
	Action  Action
}

// CascadeRules is evaluated top to bottom. A delete stops evaluation for that
// transaction; other actions accumulate.
var CascadeRules = []CascadeRule{
	{
		Trigger: TriggerAccountDeleted,
		Field:   "accountId",
		Match: func(t *domain.Transaction, id string) bool {
			return domain.SameRef(t.AccountID, id) && t.Type == domain.TransactionTypeIncome
		},
		Action: ActionDelete,
	},
	{
		Trigger: TriggerAccountDeleted,
		Field:   "accountId",
		Match: func(t *domain.Transaction, id string) bool {
			return domain.SameRef(t.AccountID, id)
		},
		Action: ActionClearAccount,
	},
	{
		Trigger: TriggerAccountDeleted,
		Field:   "transferTargetAccountId",
		Match: func(t *domain.Transaction, id string) bool {
			return domain.SameRef(t.TransferTargetAccountID, id) && t.Type == domain.TransactionTypeTransfer
		},
		Action: ActionReclassifyExpense,
	},
	{
		Trigger: TriggerAccountDeleted,
		Field:   "transferTargetAccountId",
		Match: func(t *domain.Transaction, id string) bool {
			return domain.SameRef(t.TransferTargetAccountID, id)
		},
		Action: ActionClearTarget,
	},
	{
		Trigger: TriggerLoanDeleted,
		Field:   "description",
		Match: func(t *domain.Transaction, id string) bool {
			return domain.SameRef(t.LoanID, id)
		},
		Action: ActionMarkLoanDeleted,
	},
	{
		Trigger: TriggerLoanDeleted,
		Field:   "loanId",
		Match: func(t *domain.Transaction, id string) bool {
			return domain.SameRef(t.LoanID, id)
		},
		Action: ActionClearLoan,
	},
	{
		Trigger: TriggerLoanPurged,
		Field:   "loanId",
		Match: func(t *domain.Transaction, id string) bool {
			return domain.SameRef(t.LoanID, id)
		},
		Action: ActionDelete,
	},
}

// CascadePlan lists the rewrites a deletion requires.
type CascadePlan struct {
	Updated []*domain.Transaction
	Deleted []string
}

// IsEmpty reports whether nothing needs to change.
func (p CascadePlan) IsEmpty() bool {
	return len(p.Updated) == 0 && len(p.Deleted) == 0
}

// Cascade evaluates the rule table against txs for the deleted entity id.
// Updated transactions are copies; txs is left untouched.
func Cascade(trigger Trigger, id string, txs []*domain.Transaction) CascadePlan {
	return cascadeWith(CascadeRules, trigger, id, txs)
}

func cascadeWith(rules []CascadeRule, trigger Trigger, id string, txs []*domain.Transaction) CascadePlan {
	var plan CascadePlan

	for _, t := range txs {
		var updated *domain.Transaction
		deleted := false

		for _, rule := range rules {
			if rule.Trigger != trigger || !rule.Match(t, id) {
				continue
			}
			if rule.Action == ActionDelete {
				deleted = true
				break
			}
			if updated == nil {
				updated = t.Clone()
			}
			apply(rule.Action, updated)
		}

		switch {
		case deleted:
			plan.Deleted = append(plan.Deleted, t.ID)
		case updated != nil:
			plan.Updated = append(plan.Updated, updated)
		}
	}

	return plan
}

func apply(action Action, t *domain.Transaction) {
	switch action {
	case ActionClearAccount:
		t.AccountID = nil
	case ActionClearTarget:
		t.TransferTargetAccountID = nil
	case ActionReclassifyExpense:
		t.TransferTargetAccountID = nil
		t.Type = domain.TransactionTypeExpense
	case ActionClearLoan:
		t.LoanID = nil
	case ActionMarkLoanDeleted:
		t.Description += DeletedLoanSuffix
	}
}

// CascadeRulesForAccount unlinks recurring rules from a deleted account. Rules
// are never deleted; a TRANSFER rule that loses its target becomes an EXPENSE.
func CascadeRulesForAccount(accountID string, rules []*domain.RecurringRule) []*domain.RecurringRule {
	var updated []*domain.RecurringRule

	for _, r := range rules {
		src := domain.SameRef(r.AccountID, accountID)
		dst := domain.SameRef(r.TransferTargetAccountID, accountID)
		if !src && !dst {
			continue
		}

		c := r.Clone()
		if src {
			c.AccountID = nil
		}
		if dst {
			c.TransferTargetAccountID = nil
			if c.Type == domain.TransactionTypeTransfer {
				c.Type = domain.TransactionTypeExpense
			}
		}
		updated = append(updated, c)
	}

	return updated
}
