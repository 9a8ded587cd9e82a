package domain

import "errors"

var (
	// Transaction errors
	ErrTransactionNotFound    = errors.New("transaction not found")
	ErrInvalidTransactionType = errors.New("invalid transaction type")
	ErrNegativeAmount         = errors.New("amount must not be negative")
	ErrNegativeFee            = errors.New("fee must not be negative")
	ErrSameAccount            = errors.New("cannot transfer to same account")
	ErrTargetOnNonTransfer    = errors.New("only transfers may have a target account")
	ErrInvalidDate            = errors.New("invalid date")

	// Account errors
	ErrAccountNotFound      = errors.New("account not found")
	ErrInitialBalanceLocked = errors.New("initial balance cannot change once transactions exist")
	ErrInvalidFeeConfig     = errors.New("invalid fee config")

	// Loan errors
	ErrLoanNotFound    = errors.New("loan not found")
	ErrInvalidLoanType = errors.New("invalid loan type")

	// Category errors
	ErrCategoryNotFound    = errors.New("category not found")
	ErrCategoryExists      = errors.New("category already exists")
	ErrCategoryInUse       = errors.New("category is referenced by transactions")
	ErrSystemCategory      = errors.New("system categories cannot be changed")
	ErrInvalidCategoryName = errors.New("invalid category name")

	// Budget errors
	ErrBudgetNotFound = errors.New("budget not found")

	// Recurring rule errors
	ErrRuleNotFound              = errors.New("recurring rule not found")
	ErrInvalidFrequency          = errors.New("invalid frequency")
	ErrMaterializationInProgress = errors.New("recurring materialization already in progress")

	// Import errors
	ErrInvalidFormat = errors.New("invalid import format")
)
