package ledger

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/iho/moneybook/internal/domain"
)

func TestCheck_Consistent(t *testing.T) {
	snap := &Snapshot{
		Accounts: []*domain.Account{account("A", "100"), account("B", "0")},
		Transactions: []*domain.Transaction{
			transfer("1", "A", "B", "50", "2", "2024-03-01"),
			income("2", "B", "10", "1", "2024-03-02"),
			expense("3", "A", "5", "0.5", "2024-03-03"),
		},
	}

	r := Check(snap)

	assert.True(t, r.OK, "%+v", r.Issues)
	assertDecimal(t, "2", r.Destroyed)
	assertDecimal(t, "100", r.InitialTotal)
	assertDecimal(t, "101.5", r.BalanceTotal)
}

func TestCheck_OrphanTransferCountsAsDestroyed(t *testing.T) {
	orphan := transfer("1", "A", "gone", "40", "1", "2024-03-01")
	snap := &Snapshot{
		Accounts:     []*domain.Account{account("A", "100")},
		Transactions: []*domain.Transaction{orphan},
	}

	r := Check(snap)

	assertDecimal(t, "41", r.Destroyed)
	kinds := make([]string, len(r.Issues))
	for i, is := range r.Issues {
		kinds[i] = is.Kind
	}
	assert.Equal(t, []string{IssueDanglingTarget}, kinds)
}

func TestCheck_DanglingReferences(t *testing.T) {
	tx := expense("1", "missing", "10", "0", "2024-03-01")
	tx.LoanID = ref("nope")
	tx.Category = "Nowhere"

	r := Check(&Snapshot{Transactions: []*domain.Transaction{tx}})

	assert.False(t, r.OK)
	kinds := make(map[string]bool)
	for _, is := range r.Issues {
		kinds[is.Kind] = true
		assert.Equal(t, "1", is.TransactionID)
	}
	assert.True(t, kinds[IssueDanglingAccount])
	assert.True(t, kinds[IssueDanglingLoan])
	assert.True(t, kinds[IssueUnknownCategory])
}
