package dto

import (
	"github.com/shopspring/decimal"

	"github.com/iho/moneybook/internal/domain"
	"github.com/iho/moneybook/internal/usecase"
)

// TransactionRequest represents a request to record or edit a transaction.
type TransactionRequest struct {
	Amount                  decimal.Decimal        `json:"amount"`
	FeeAmount               *decimal.Decimal       `json:"feeAmount,omitempty"`
	Category                string                 `json:"category"`
	Type                    domain.TransactionType `json:"transactionType"`
	Date                    domain.Date            `json:"date"`
	AccountID               *string                `json:"accountId,omitempty"`
	TransferTargetAccountID *string                `json:"transferTargetAccountId,omitempty"`
	LoanID                  *string                `json:"loanId,omitempty"`
	FeeConfigName           *string                `json:"feeConfigName,omitempty"`
	Description             string                 `json:"description"`
	Note                    string                 `json:"note"`
}

// ToUseCaseInput converts to use case input.
func (r *TransactionRequest) ToUseCaseInput() usecase.TransactionInput {
	return usecase.TransactionInput{
		Amount:                  r.Amount,
		FeeAmount:               r.FeeAmount,
		Category:                r.Category,
		Type:                    r.Type,
		Date:                    r.Date,
		AccountID:               r.AccountID,
		TransferTargetAccountID: r.TransferTargetAccountID,
		LoanID:                  r.LoanID,
		FeeConfigName:           r.FeeConfigName,
		Description:             r.Description,
		Note:                    r.Note,
	}
}

// AdjustBalanceRequest represents a request to move an account to a target balance.
type AdjustBalanceRequest struct {
	Target decimal.Decimal `json:"target"`
	Date   domain.Date     `json:"date"`
	Note   string          `json:"note"`
}

// ToUseCaseInput converts to use case input.
func (r *AdjustBalanceRequest) ToUseCaseInput(accountID string) usecase.AdjustBalanceInput {
	return usecase.AdjustBalanceInput{
		AccountID: accountID,
		Target:    r.Target,
		Date:      r.Date,
		Note:      r.Note,
	}
}

// CreateAccountRequest represents a request to create an account.
type CreateAccountRequest struct {
	Name           string             `json:"name"`
	InitialBalance decimal.Decimal    `json:"initialBalance"`
	FeeConfigs     []domain.FeeConfig `json:"feeConfigs"`
	SortOrder      int                `json:"sortOrder"`
}

// ToUseCaseInput converts to use case input.
func (r *CreateAccountRequest) ToUseCaseInput() usecase.CreateAccountInput {
	return usecase.CreateAccountInput{
		Name:           r.Name,
		InitialBalance: r.InitialBalance,
		FeeConfigs:     r.FeeConfigs,
		SortOrder:      r.SortOrder,
	}
}

// UpdateAccountRequest represents a partial account edit. Absent fields are
// left unchanged.
type UpdateAccountRequest struct {
	Name           *string            `json:"name,omitempty"`
	InitialBalance *decimal.Decimal   `json:"initialBalance,omitempty"`
	FeeConfigs     []domain.FeeConfig `json:"feeConfigs,omitempty"`
	SortOrder      *int               `json:"sortOrder,omitempty"`
}

// ToUseCaseInput converts to use case input.
func (r *UpdateAccountRequest) ToUseCaseInput(id string) usecase.UpdateAccountInput {
	return usecase.UpdateAccountInput{
		ID:             id,
		Name:           r.Name,
		InitialBalance: r.InitialBalance,
		FeeConfigs:     r.FeeConfigs,
		SortOrder:      r.SortOrder,
	}
}

// CreateLoanRequest represents a request to open a loan.
type CreateLoanRequest struct {
	Name        string          `json:"name"`
	Type        domain.LoanType `json:"type"`
	Amount      decimal.Decimal `json:"amount"`
	Description string          `json:"description"`
	AccountID   *string         `json:"accountId,omitempty"`
	Date        domain.Date     `json:"date"`
	FeeAmount   decimal.Decimal `json:"feeAmount"`
}

// ToUseCaseInput converts to use case input.
func (r *CreateLoanRequest) ToUseCaseInput() usecase.CreateLoanInput {
	return usecase.CreateLoanInput{
		Name:        r.Name,
		Type:        r.Type,
		Amount:      r.Amount,
		Description: r.Description,
		AccountID:   r.AccountID,
		Date:        r.Date,
		FeeAmount:   r.FeeAmount,
	}
}

// UpdateLoanRequest represents a loan metadata edit.
type UpdateLoanRequest struct {
	Name        *string `json:"name,omitempty"`
	Description *string `json:"description,omitempty"`
}

// ToUseCaseInput converts to use case input.
func (r *UpdateLoanRequest) ToUseCaseInput(id string) usecase.UpdateLoanInput {
	return usecase.UpdateLoanInput{ID: id, Name: r.Name, Description: r.Description}
}

// LoanTransactionRequest represents a repayment or further advance.
type LoanTransactionRequest struct {
	Type        domain.TransactionType `json:"transactionType,omitempty"`
	Amount      decimal.Decimal        `json:"amount"`
	FeeAmount   decimal.Decimal        `json:"feeAmount"`
	AccountID   *string                `json:"accountId,omitempty"`
	Date        domain.Date            `json:"date"`
	Description string                 `json:"description"`
	Note        string                 `json:"note"`
}

// ToUseCaseInput converts to use case input.
func (r *LoanTransactionRequest) ToUseCaseInput(loanID string) usecase.AddLoanTransactionInput {
	return usecase.AddLoanTransactionInput{
		LoanID:      loanID,
		Type:        r.Type,
		Amount:      r.Amount,
		FeeAmount:   r.FeeAmount,
		AccountID:   r.AccountID,
		Date:        r.Date,
		Description: r.Description,
		Note:        r.Note,
	}
}

// CreateCategoryRequest represents a request to create a category.
type CreateCategoryRequest struct {
	Name      string `json:"name"`
	Color     string `json:"color"`
	Icon      string `json:"icon"`
	SortOrder int    `json:"sortOrder"`
}

// ToUseCaseInput converts to use case input.
func (r *CreateCategoryRequest) ToUseCaseInput() usecase.CreateCategoryInput {
	return usecase.CreateCategoryInput{
		Name:      r.Name,
		Color:     r.Color,
		Icon:      r.Icon,
		SortOrder: r.SortOrder,
	}
}

// UpdateCategoryRequest edits or renames a category.
type UpdateCategoryRequest struct {
	Name      *string `json:"name,omitempty"`
	Color     *string `json:"color,omitempty"`
	Icon      *string `json:"icon,omitempty"`
	SortOrder *int    `json:"sortOrder,omitempty"`
}

// ToUseCaseInput converts to use case input.
func (r *UpdateCategoryRequest) ToUseCaseInput(name string) usecase.UpdateCategoryInput {
	return usecase.UpdateCategoryInput{
		Name:      name,
		NewName:   r.Name,
		Color:     r.Color,
		Icon:      r.Icon,
		SortOrder: r.SortOrder,
	}
}

// SetBudgetRequest sets the limit of a category.
type SetBudgetRequest struct {
	LimitAmount decimal.Decimal `json:"limitAmount"`
}

// ToUseCaseInput converts to use case input.
func (r *SetBudgetRequest) ToUseCaseInput(category string) usecase.SetBudgetInput {
	return usecase.SetBudgetInput{Category: category, LimitAmount: r.LimitAmount}
}

// RuleRequest represents a recurring rule.
type RuleRequest struct {
	Amount                  decimal.Decimal        `json:"amount"`
	Category                string                 `json:"category"`
	Description             string                 `json:"description"`
	Frequency               domain.Frequency       `json:"frequency"`
	NextDueDate             domain.Date            `json:"nextDueDate"`
	Type                    domain.TransactionType `json:"transactionType"`
	AccountID               *string                `json:"accountId,omitempty"`
	TransferTargetAccountID *string                `json:"transferTargetAccountId,omitempty"`
	FeeAmount               decimal.Decimal        `json:"feeAmount"`
	FeeConfigName           *string                `json:"feeConfigName,omitempty"`
}

// ToUseCaseInput converts to use case input.
func (r *RuleRequest) ToUseCaseInput() usecase.RuleInput {
	return usecase.RuleInput{
		Amount:                  r.Amount,
		Category:                r.Category,
		Description:             r.Description,
		Frequency:               r.Frequency,
		NextDueDate:             r.NextDueDate,
		Type:                    r.Type,
		AccountID:               r.AccountID,
		TransferTargetAccountID: r.TransferTargetAccountID,
		FeeAmount:               r.FeeAmount,
		FeeConfigName:           r.FeeConfigName,
	}
}
