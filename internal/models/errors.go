package models

import (
	"errors"
)

var (
	ErrGeneral          = errors.New("an error occurred on the server during your request")
	ErrResourceNotFound = errors.New("there is no")

	ErrBudgetCategoryNotUnique = errors.New("there is already a budget for this category")

	// Validation errors. These are checked before any statement reaches the
	// database.
	ErrBudgetCategoryRequired         = errors.New("the budget category must be set")
	ErrBudgetLimitNotPositive         = errors.New("the budget limit must be a positive number")
	ErrBudgetPeriodInvalid            = errors.New("the budget period must be one of: monthly, yearly")
	ErrTransactionAmountNotPositive   = errors.New("the transaction amount must be a positive number")
	ErrTransactionDescriptionRequired = errors.New("the transaction description must be set")
	ErrTransactionCategoryRequired    = errors.New("the transaction category must be set")
	ErrPaymentMethodInvalid           = errors.New("the payment method must be one of: cash, credit, debit, transfer")
)
