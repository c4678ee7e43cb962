// Package aggregate derives read-only summaries from the ledger state.
package aggregate

import (
	"maps"
	"slices"

	"github.com/shopspring/decimal"

	"github.com/Veraticus/pennywise/internal/model"
)

// StateSource provides a point-in-time copy of the ledger state.
type StateSource interface {
	Snapshot() model.LedgerState
}

// Aggregator computes totals and budget status. It never mutates or
// persists anything.
type Aggregator struct {
	source StateSource
}

// New creates an Aggregator reading from source.
func New(source StateSource) *Aggregator {
	return &Aggregator{source: source}
}

// CalculateTotals sums income and expenses and returns their difference.
func (a *Aggregator) CalculateTotals() model.Totals {
	return CalculateTotals(a.source.Snapshot())
}

// ExpensesByCategory sums expenses per category.
func (a *Aggregator) ExpensesByCategory() map[string]decimal.Decimal {
	return ExpensesByCategory(a.source.Snapshot())
}

// IncomeByCategory sums income per category.
func (a *Aggregator) IncomeByCategory() map[string]decimal.Decimal {
	return IncomeByCategory(a.source.Snapshot())
}

// CheckBudgetGoals reports goal status for every category with a goal.
func (a *Aggregator) CheckBudgetGoals() map[string]model.GoalStatus {
	return CheckBudgetGoals(a.source.Snapshot())
}

// Summary builds the combined view used for display and export.
func (a *Aggregator) Summary() Summary {
	return BuildSummary(a.source.Snapshot())
}

// CalculateTotals sums the income and expense sequences of state.
func CalculateTotals(state model.LedgerState) model.Totals {
	income := sum(state.Income)
	expenses := sum(state.Expenses)

	return model.Totals{
		Income:   income,
		Expenses: expenses,
		Net:      income.Sub(expenses),
	}
}

// ExpensesByCategory groups expenses by category. Categories without
// expenses do not appear.
func ExpensesByCategory(state model.LedgerState) map[string]decimal.Decimal {
	return byCategory(state.Expenses)
}

// IncomeByCategory groups income by category.
func IncomeByCategory(state model.LedgerState) map[string]decimal.Decimal {
	return byCategory(state.Income)
}

// CheckBudgetGoals compares each goal with the category's spending. A goal
// for a category with no expenses reports zero spent.
func CheckBudgetGoals(state model.LedgerState) map[string]model.GoalStatus {
	spentByCategory := ExpensesByCategory(state)

	statuses := make(map[string]model.GoalStatus, len(state.BudgetGoals))
	for category, goal := range state.BudgetGoals {
		spent, ok := spentByCategory[category]
		if !ok {
			spent = decimal.Zero
		}

		remaining := goal.Sub(spent)
		statuses[category] = model.GoalStatus{
			Goal:       goal,
			Spent:      spent,
			Remaining:  remaining,
			OverBudget: remaining.IsNegative(),
		}
	}
	return statuses
}

func sum(entries []model.Entry) decimal.Decimal {
	total := decimal.Zero
	for _, entry := range entries {
		total = total.Add(entry.Amount)
	}
	return total
}

func byCategory(entries []model.Entry) map[string]decimal.Decimal {
	totals := make(map[string]decimal.Decimal)
	for _, entry := range entries {
		current, ok := totals[entry.Category]
		if !ok {
			current = decimal.Zero
		}
		totals[entry.Category] = current.Add(entry.Amount)
	}
	return totals
}

// sortedAmounts flattens a category map into rows ordered by category name.
func sortedAmounts(totals map[string]decimal.Decimal) []model.CategoryAmount {
	rows := make([]model.CategoryAmount, 0, len(totals))
	for _, category := range slices.Sorted(maps.Keys(totals)) {
		rows = append(rows, model.CategoryAmount{Category: category, Amount: totals[category]})
	}
	return rows
}
