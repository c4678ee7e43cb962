package model

import "github.com/shopspring/decimal"

// Totals holds the ledger-wide sums.
type Totals struct {
	Income   decimal.Decimal
	Expenses decimal.Decimal
	Net      decimal.Decimal
}

// GoalStatus compares a category's budget goal with what was actually spent.
type GoalStatus struct {
	Goal       decimal.Decimal
	Spent      decimal.Decimal
	Remaining  decimal.Decimal
	OverBudget bool
}

// CategoryAmount is an amount aggregated under a category name.
type CategoryAmount struct {
	Category string
	Amount   decimal.Decimal
}
