// Package ledger derives balances, summaries and integrity rewrites from the
// flat record set. Every function here is pure: it reads the records it is
// given, never mutates them, and performs no I/O.
package ledger

import (
	"sort"

	"github.com/iho/moneybook/internal/domain"
)

// Snapshot is the full record set at one point in time.
type Snapshot struct {
	Transactions []*domain.Transaction
	Accounts     []*domain.Account
	Loans        []*domain.Loan
	Categories   []*domain.Category
	Budgets      []*domain.Budget
	Rules        []*domain.RecurringRule
}

// Account finds an account by id.
func (s *Snapshot) Account(id string) (*domain.Account, bool) {
	for _, a := range s.Accounts {
		if a.ID == id {
			return a, true
		}
	}
	return nil, false
}

// Loan finds a loan by id.
func (s *Snapshot) Loan(id string) (*domain.Loan, bool) {
	for _, l := range s.Loans {
		if l.ID == id {
			return l, true
		}
	}
	return nil, false
}

// CategoryNames returns the names of system and user categories.
func (s *Snapshot) CategoryNames() map[string]bool {
	names := make(map[string]bool, len(domain.SystemCategories)+len(s.Categories))
	for _, c := range domain.SystemCategories {
		names[c.Name] = true
	}
	for _, c := range s.Categories {
		names[c.Name] = true
	}
	return names
}

// SortedTransactions returns a copy of txs ordered by date, then timestamp.
func SortedTransactions(txs []*domain.Transaction) []*domain.Transaction {
	out := make([]*domain.Transaction, len(txs))
	copy(out, txs)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Before(out[j])
	})
	return out
}
