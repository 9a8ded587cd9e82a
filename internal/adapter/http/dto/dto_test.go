package dto

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iho/moneybook/internal/domain"
	"github.com/iho/moneybook/internal/usecase"
)

func TestTransactionRequest_DecodesClientShape(t *testing.T) {
	body := `{
		"amount": "12.50",
		"category": "Food",
		"transactionType": "EXPENSE",
		"date": "2024-03-05",
		"accountId": "acc-1",
		"feeConfigName": "card",
		"description": "lunch"
	}`

	var req TransactionRequest
	require.NoError(t, json.Unmarshal([]byte(body), &req))

	input := req.ToUseCaseInput()
	assert.True(t, input.Amount.Equal(decimal.RequireFromString("12.50")))
	assert.Equal(t, domain.TransactionTypeExpense, input.Type)
	assert.Equal(t, domain.NewDate(2024, 3, 5), input.Date)
	assert.Equal(t, "acc-1", domain.StringValue(input.AccountID))
	assert.Equal(t, "card", domain.StringValue(input.FeeConfigName))
	assert.Nil(t, input.FeeAmount)
	assert.Nil(t, input.TransferTargetAccountID)
}

func TestUpdateCategoryRequest_RenameCarriesBothNames(t *testing.T) {
	var req UpdateCategoryRequest
	require.NoError(t, json.Unmarshal([]byte(`{"name":"Groceries"}`), &req))

	input := req.ToUseCaseInput("Food")
	assert.Equal(t, "Food", input.Name)
	require.NotNil(t, input.NewName)
	assert.Equal(t, "Groceries", *input.NewName)
	assert.Nil(t, input.Color)
}

func TestNewList_EncodesEmptyArray(t *testing.T) {
	data, err := json.Marshal(NewList[*domain.Transaction](nil))
	require.NoError(t, err)
	assert.JSONEq(t, `{"data":[],"count":0}`, string(data))
}

func TestBalancesFromResult_FlattensAccount(t *testing.T) {
	res := &usecase.BalancesResult{
		Accounts: []usecase.AccountBalance{{
			Account: &domain.Account{ID: "acc-1", Name: "Wallet", InitialBalance: decimal.NewFromInt(10)},
			Balance: decimal.NewFromInt(25),
		}},
		Total: decimal.NewFromInt(25),
	}

	data, err := json.Marshal(BalancesFromResult(res))
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(data, &decoded))
	accounts := decoded["accounts"].([]any)
	require.Len(t, accounts, 1)
	first := accounts[0].(map[string]any)
	assert.Equal(t, "acc-1", first["id"])
	assert.Equal(t, "25", first["balance"])
	assert.NotContains(t, decoded, "asOf")
}

func TestMaterializeFromResult_NeverNil(t *testing.T) {
	resp := MaterializeFromResult(&usecase.MaterializeResult{})
	assert.NotNil(t, resp.Created)
	assert.Zero(t, resp.RulesUpdated)
}
