package usecase_test

import (
	"context"
	"errors"
	"testing"

	"github.com/iho/moneybook/internal/domain"
	"github.com/iho/moneybook/internal/ledger"
	"github.com/iho/moneybook/internal/usecase"
)

func TestLedgerUseCase_CheckConsistency(t *testing.T) {
	tests := []struct {
		name       string
		setup      func(*fixture)
		wantOK     bool
		wantIssue  string
		wantErr    bool
		wantTotal  string
		wantBurned string
	}{
		{
			name: "balanced ledger",
			setup: func(f *fixture) {
				f.addAccount("a", 100)
				f.addAccount("b", 0)
				f.addTx(&domain.Transaction{ID: "t1", Amount: dec("30"), FeeAmount: dec("1"), Type: domain.TransactionTypeTransfer, Category: domain.CategoryTransfer, AccountID: ref("a"), TransferTargetAccountID: ref("b")})
			},
			wantOK:     true,
			wantTotal:  "99",
			wantBurned: "1",
		},
		{
			name: "dangling account",
			setup: func(f *fixture) {
				f.addAccount("a", 0)
				f.addTx(&domain.Transaction{ID: "t1", Amount: dec("5"), Type: domain.TransactionTypeExpense, AccountID: ref("ghost")})
			},
			wantIssue: ledger.IssueDanglingAccount,
		},
		{
			name: "repo error surfaces",
			setup: func(f *fixture) {
				f.store.Accounts.ListFunc = func(ctx context.Context) ([]*domain.Account, error) {
					return nil, errors.New("db down")
				}
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			tt.setup(f)

			report, err := usecase.NewLedgerUseCase(f.repos, f.logger).CheckConsistency(context.Background())
			if tt.wantErr {
				if err == nil {
					t.Error("expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if report.OK != tt.wantOK {
				t.Errorf("expected ok=%v, got %+v", tt.wantOK, report.Issues)
			}
			if tt.wantTotal != "" {
				assertDecimal(t, tt.wantTotal, report.BalanceTotal)
				assertDecimal(t, tt.wantBurned, report.Destroyed)
			}
			if tt.wantIssue != "" {
				found := false
				for _, issue := range report.Issues {
					if issue.Kind == tt.wantIssue {
						found = true
					}
				}
				if !found {
					t.Errorf("expected issue %s, got %+v", tt.wantIssue, report.Issues)
				}
			}
		})
	}
}
