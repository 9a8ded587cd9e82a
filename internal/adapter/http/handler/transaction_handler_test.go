package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iho/moneybook/internal/adapter/http/dto"
	"github.com/iho/moneybook/internal/domain"
	"github.com/iho/moneybook/internal/usecase"
)

func TestTransactionHandler_Create(t *testing.T) {
	var captured usecase.TransactionInput
	handler := NewTransactionHandler(&transactionServiceStub{
		addFn: func(ctx context.Context, input usecase.TransactionInput) (*domain.Transaction, error) {
			captured = input
			return &domain.Transaction{ID: "tx-1", Amount: input.Amount, Type: input.Type, Date: input.Date}, nil
		},
	}, nil)

	body := `{"amount":"50","transactionType":"TRANSFER","date":"2024-05-01","accountId":"a","transferTargetAccountId":"b","feeAmount":"1.5"}`
	req := httptest.NewRequest(http.MethodPost, "/transactions", bytes.NewBufferString(body))
	rec := httptest.NewRecorder()

	handler.Create(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	assert.Equal(t, domain.TransactionTypeTransfer, captured.Type)
	require.NotNil(t, captured.FeeAmount)
	assert.True(t, captured.FeeAmount.Equal(decimal.RequireFromString("1.5")))
	assert.Equal(t, "b", domain.StringValue(captured.TransferTargetAccountID))
}

func TestTransactionHandler_Create_SameAccount(t *testing.T) {
	handler := NewTransactionHandler(&transactionServiceStub{
		addFn: func(ctx context.Context, input usecase.TransactionInput) (*domain.Transaction, error) {
			return nil, domain.ErrSameAccount
		},
	}, nil)

	req := httptest.NewRequest(http.MethodPost, "/transactions", bytes.NewBufferString(`{"amount":"1"}`))
	rec := httptest.NewRecorder()

	handler.Create(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestTransactionHandler_List_Filters(t *testing.T) {
	var captured usecase.ListTransactionsInput
	handler := NewTransactionHandler(&transactionServiceStub{
		listFn: func(ctx context.Context, input usecase.ListTransactionsInput) ([]*domain.Transaction, error) {
			captured = input
			return []*domain.Transaction{{ID: "tx-2"}, {ID: "tx-1"}}, nil
		},
	}, nil)

	req := httptest.NewRequest(http.MethodGet, "/transactions?accountId=a&type=EXPENSE&start=2024-01-01&end=2024-01-31", nil)
	rec := httptest.NewRecorder()

	handler.List(rec, req)

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, "a", captured.AccountID)
	assert.Equal(t, domain.TransactionTypeExpense, captured.Type)
	require.NotNil(t, captured.Period)
	assert.Equal(t, domain.NewDate(2024, 1, 31), captured.Period.End)

	var resp dto.ListResponse[domain.Transaction]
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, 2, resp.Count)
	assert.Equal(t, "tx-2", resp.Data[0].ID)
}

func TestTransactionHandler_List_NoPeriodMeansAllTime(t *testing.T) {
	var captured usecase.ListTransactionsInput
	handler := NewTransactionHandler(&transactionServiceStub{
		listFn: func(ctx context.Context, input usecase.ListTransactionsInput) ([]*domain.Transaction, error) {
			captured = input
			return nil, nil
		},
	}, nil)

	req := httptest.NewRequest(http.MethodGet, "/transactions", nil)
	rec := httptest.NewRecorder()

	handler.List(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Nil(t, captured.Period)
	assert.JSONEq(t, `{"data":[],"count":0}`, rec.Body.String())
}

func TestTransactionHandler_List_InvalidType(t *testing.T) {
	handler := NewTransactionHandler(&transactionServiceStub{}, nil)

	req := httptest.NewRequest(http.MethodGet, "/transactions?type=REFUND", nil)
	rec := httptest.NewRecorder()

	handler.List(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestTransactionHandler_Update_MissingIsNoContent(t *testing.T) {
	handler := NewTransactionHandler(&transactionServiceStub{
		updateFn: func(ctx context.Context, input usecase.UpdateTransactionInput) (*domain.Transaction, error) {
			assert.Equal(t, "tx-9", input.ID)
			return nil, nil
		},
	}, nil)

	req := httptest.NewRequest(http.MethodPut, "/transactions/tx-9", bytes.NewBufferString(`{"amount":"3"}`))
	req = setChiURLParam(req, "id", "tx-9")
	rec := httptest.NewRecorder()

	handler.Update(rec, req)

	assert.Equal(t, http.StatusNoContent, rec.Code)
}

func TestTransactionHandler_Adjust(t *testing.T) {
	tests := []struct {
		name     string
		result   *domain.Transaction
		expected int
	}{
		{"adjustment recorded", &domain.Transaction{ID: "adj-1", Category: domain.CategoryBalanceAdjustment}, http.StatusCreated},
		{"already at target", nil, http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			proposer := &proposerStub{}
			handler := NewTransactionHandler(&transactionServiceStub{
				adjustFn: func(ctx context.Context, input usecase.AdjustBalanceInput) (*domain.Transaction, error) {
					assert.Equal(t, "acc-1", input.AccountID)
					assert.True(t, input.Target.Equal(decimal.NewFromInt(250)))
					return tt.result, nil
				},
			}, proposer)

			req := httptest.NewRequest(http.MethodPost, "/accounts/acc-1/adjust", bytes.NewBufferString(`{"target":"250"}`))
			req = setChiURLParam(req, "id", "acc-1")
			rec := httptest.NewRecorder()

			handler.Adjust(rec, req)

			require.Equal(t, tt.expected, rec.Code, rec.Body.String())
			assert.Equal(t, 1, proposer.calls)
			assert.Equal(t, "acc-1", proposer.accountID)
			assert.True(t, proposer.balance.Equal(decimal.NewFromInt(250)))
		})
	}
}

func TestTransactionHandler_Adjust_FailureDoesNotPropose(t *testing.T) {
	proposer := &proposerStub{}
	handler := NewTransactionHandler(&transactionServiceStub{
		adjustFn: func(ctx context.Context, input usecase.AdjustBalanceInput) (*domain.Transaction, error) {
			return nil, domain.ErrAccountNotFound
		},
	}, proposer)

	req := httptest.NewRequest(http.MethodPost, "/accounts/gone/adjust", bytes.NewBufferString(`{"target":"1"}`))
	req = setChiURLParam(req, "id", "gone")
	rec := httptest.NewRecorder()

	handler.Adjust(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Zero(t, proposer.calls)
}
