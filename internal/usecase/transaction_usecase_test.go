package usecase_test

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/iho/moneybook/internal/domain"
	"github.com/iho/moneybook/internal/ledger"
	"github.com/iho/moneybook/internal/usecase"
)

func TestTransactionUseCase_AddTransaction(t *testing.T) {
	tests := []struct {
		name        string
		input       usecase.TransactionInput
		expectedErr error
		wantType    domain.TransactionType
		wantCat     string
		wantFee     string
	}{
		{
			name: "defaults type and category",
			input: usecase.TransactionInput{
				Amount: dec("12.50"),
				Date:   domain.MustParseDate("2024-03-02"),
			},
			wantType: domain.TransactionTypeExpense,
			wantCat:  domain.CategoryOthers,
			wantFee:  "0",
		},
		{
			name: "fee from account config",
			input: usecase.TransactionInput{
				Amount:        dec("200"),
				Date:          domain.MustParseDate("2024-03-02"),
				AccountID:     ref("card"),
				FeeConfigName: ref("intl"),
				Category:      "Food",
			},
			wantType: domain.TransactionTypeExpense,
			wantCat:  "Food",
			wantFee:  "3",
		},
		{
			name: "explicit fee wins over config",
			input: usecase.TransactionInput{
				Amount:        dec("200"),
				FeeAmount:     decPtr("1"),
				Date:          domain.MustParseDate("2024-03-02"),
				AccountID:     ref("card"),
				FeeConfigName: ref("intl"),
			},
			wantType: domain.TransactionTypeExpense,
			wantCat:  domain.CategoryOthers,
			wantFee:  "1",
		},
		{
			name: "unknown account",
			input: usecase.TransactionInput{
				Amount:    dec("5"),
				Date:      domain.MustParseDate("2024-03-02"),
				AccountID: ref("ghost"),
			},
			expectedErr: domain.ErrAccountNotFound,
		},
		{
			name: "unknown category",
			input: usecase.TransactionInput{
				Amount:   dec("5"),
				Date:     domain.MustParseDate("2024-03-02"),
				Category: "Yachts",
			},
			expectedErr: domain.ErrCategoryNotFound,
		},
		{
			name: "transfer to same account",
			input: usecase.TransactionInput{
				Amount:                  dec("5"),
				Type:                    domain.TransactionTypeTransfer,
				Category:                domain.CategoryTransfer,
				Date:                    domain.MustParseDate("2024-03-02"),
				AccountID:               ref("card"),
				TransferTargetAccountID: ref("card"),
			},
			expectedErr: domain.ErrSameAccount,
		},
		{
			name: "target on expense",
			input: usecase.TransactionInput{
				Amount:                  dec("5"),
				Date:                    domain.MustParseDate("2024-03-02"),
				TransferTargetAccountID: ref("card"),
			},
			expectedErr: domain.ErrTargetOnNonTransfer,
		},
		{
			name: "negative amount",
			input: usecase.TransactionInput{
				Amount: dec("-1"),
				Date:   domain.MustParseDate("2024-03-02"),
			},
			expectedErr: domain.ErrNegativeAmount,
		},
		{
			name:        "missing date",
			input:       usecase.TransactionInput{Amount: dec("1")},
			expectedErr: domain.ErrInvalidDate,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			f.store.Accounts.Seed(&domain.Account{
				ID:   "card",
				Name: "Card",
				FeeConfigs: []domain.FeeConfig{
					{Name: "intl", Kind: domain.FeeKindPercentage, Value: dec("1.5")},
				},
			})
			f.store.Categories.Seed(&domain.Category{Name: "Food"})

			got, err := f.transactions().AddTransaction(context.Background(), tt.input)

			if tt.expectedErr != nil {
				if !errors.Is(err, tt.expectedErr) {
					t.Fatalf("expected error %v, got %v", tt.expectedErr, err)
				}
				if f.store.Transactions.Len() != 0 {
					t.Error("expected nothing stored")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got.Type != tt.wantType {
				t.Errorf("expected type %s, got %s", tt.wantType, got.Type)
			}
			if got.Category != tt.wantCat {
				t.Errorf("expected category %q, got %q", tt.wantCat, got.Category)
			}
			assertDecimal(t, tt.wantFee, got.FeeAmount)
			if got.ID == "" || got.Timestamp.IsZero() {
				t.Error("expected id and timestamp to be assigned")
			}
			if f.store.Transactions.Len() != 1 {
				t.Errorf("expected 1 stored transaction, got %d", f.store.Transactions.Len())
			}
			if entities := f.recorder.Entities(); len(entities) != 1 || entities[0] != domain.EntityTransaction {
				t.Errorf("expected one transaction event, got %v", entities)
			}
		})
	}
}

func TestTransactionUseCase_UpdateTransaction(t *testing.T) {
	f := newFixture(t)
	f.addTx(&domain.Transaction{ID: "t1", Amount: dec("10"), Type: domain.TransactionTypeExpense})

	got, err := f.transactions().UpdateTransaction(context.Background(), usecase.UpdateTransactionInput{
		ID: "t1",
		TransactionInput: usecase.TransactionInput{
			Amount:      dec("15"),
			Type:        domain.TransactionTypeIncome,
			Date:        domain.MustParseDate("2024-03-05"),
			Description: "refund",
		},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.ID != "t1" || got.Type != domain.TransactionTypeIncome || got.Description != "refund" {
		t.Errorf("unexpected transaction: %+v", got)
	}

	stored, _ := f.store.Transactions.GetByID(context.Background(), "t1")
	assertDecimal(t, "15", stored.Amount)
}

func TestTransactionUseCase_MissingIsNoOp(t *testing.T) {
	f := newFixture(t)
	uc := f.transactions()

	got, err := uc.UpdateTransaction(context.Background(), usecase.UpdateTransactionInput{
		ID:               "gone",
		TransactionInput: usecase.TransactionInput{Amount: dec("1"), Date: domain.MustParseDate("2024-03-01")},
	})
	if err != nil || got != nil {
		t.Errorf("expected (nil, nil), got (%v, %v)", got, err)
	}

	if err := uc.DeleteTransaction(context.Background(), "gone"); err != nil {
		t.Errorf("unexpected error: %v", err)
	}

	if begun, _, _ := f.txm.Counts(); begun != 0 {
		t.Errorf("expected no storage transaction, got %d", begun)
	}
	if len(f.recorder.Events()) != 0 {
		t.Error("expected no events")
	}
}

func TestTransactionUseCase_DeleteTransaction(t *testing.T) {
	f := newFixture(t)
	f.addTx(&domain.Transaction{ID: "t1", Amount: dec("10"), Type: domain.TransactionTypeExpense})

	if err := f.transactions().DeleteTransaction(context.Background(), "t1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if f.store.Transactions.Len() != 0 {
		t.Error("expected transaction to be deleted")
	}
	if _, committed, _ := f.txm.Counts(); committed != 1 {
		t.Errorf("expected 1 commit, got %d", committed)
	}
}

func TestTransactionUseCase_ListTransactions(t *testing.T) {
	f := newFixture(t)
	f.addAccount("a", 0)
	f.addAccount("b", 0)
	f.addTx(&domain.Transaction{ID: "t1", Amount: dec("1"), Type: domain.TransactionTypeExpense, AccountID: ref("a"), Date: domain.MustParseDate("2024-03-01")})
	f.addTx(&domain.Transaction{ID: "t2", Amount: dec("2"), Type: domain.TransactionTypeTransfer, AccountID: ref("b"), TransferTargetAccountID: ref("a"), Date: domain.MustParseDate("2024-03-03")})
	f.addTx(&domain.Transaction{ID: "t3", Amount: dec("3"), Type: domain.TransactionTypeExpense, AccountID: ref("b"), Date: domain.MustParseDate("2024-03-02")})
	f.addTx(&domain.Transaction{ID: "t4", Amount: dec("4"), Type: domain.TransactionTypeExpense, AccountID: ref("a"), Date: domain.MustParseDate("2024-04-01")})

	march := ledger.MonthPeriod(2024, 3)
	got, err := f.transactions().ListTransactions(context.Background(), usecase.ListTransactionsInput{
		Period:    &march,
		AccountID: "a",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := []string{"t2", "t1"}
	if len(got) != len(want) {
		t.Fatalf("expected %d transactions, got %d", len(want), len(got))
	}
	for i, id := range want {
		if got[i].ID != id {
			t.Errorf("position %d: expected %s, got %s", i, id, got[i].ID)
		}
	}
}

func TestTransactionUseCase_AdjustBalance(t *testing.T) {
	tests := []struct {
		name     string
		target   string
		wantType domain.TransactionType
		wantAmt  string
		wantNil  bool
	}{
		{name: "raise", target: "100", wantType: domain.TransactionTypeIncome, wantAmt: "30"},
		{name: "lower", target: "50", wantType: domain.TransactionTypeExpense, wantAmt: "20"},
		{name: "already matches", target: "70", wantNil: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			account := f.addAccount("a", 100)
			f.addTx(&domain.Transaction{ID: "t1", Amount: dec("30"), Type: domain.TransactionTypeExpense, AccountID: ref("a")})

			got, err := f.transactions().AdjustBalance(context.Background(), usecase.AdjustBalanceInput{
				AccountID: "a",
				Target:    dec(tt.target),
			})
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if tt.wantNil {
				if got != nil {
					t.Errorf("expected no adjustment, got %+v", got)
				}
				return
			}

			if got.Type != tt.wantType || got.Category != domain.CategoryBalanceAdjustment {
				t.Errorf("unexpected adjustment %s/%s", got.Type, got.Category)
			}
			assertDecimal(t, tt.wantAmt, got.Amount)

			txs, _ := f.store.Transactions.List(context.Background())
			assertDecimal(t, tt.target, ledger.AccountBalance(account, txs))
		})
	}
}

func TestTransactionUseCase_RollsBackOnStorageError(t *testing.T) {
	f := newFixture(t)
	f.store.Transactions.UpsertFunc = func(ctx context.Context, tx usecase.Transaction, _ *domain.Transaction) error {
		return errors.New("disk full")
	}

	_, err := f.transactions().AddTransaction(context.Background(), usecase.TransactionInput{
		Amount: decimal.NewFromInt(1),
		Date:   domain.MustParseDate("2024-03-01"),
	})
	if err == nil {
		t.Fatal("expected error")
	}

	begun, committed, rolledBack := f.txm.Counts()
	if begun != 1 || committed != 0 || rolledBack != 1 {
		t.Errorf("expected begin/rollback without commit, got %d/%d/%d", begun, committed, rolledBack)
	}
	if len(f.recorder.Events()) != 0 {
		t.Error("expected no events after a failed write")
	}
}
