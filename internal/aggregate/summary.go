package aggregate

import (
	"maps"
	"slices"

	"github.com/Veraticus/pennywise/internal/model"
)

// GoalRow is a goal status tagged with its category.
type GoalRow struct {
	Category string
	model.GoalStatus
}

// Summary is everything the budget summary screen shows, in display order.
type Summary struct {
	IncomeByCategory   []model.CategoryAmount
	ExpensesByCategory []model.CategoryAmount
	Goals              []GoalRow
	Totals             model.Totals
	IncomeEntries      int
	ExpenseEntries     int
	WithinBudget       bool
}

// BuildSummary computes all aggregates of state in one pass over a single
// snapshot, so the figures are mutually consistent.
func BuildSummary(state model.LedgerState) Summary {
	totals := CalculateTotals(state)
	statuses := CheckBudgetGoals(state)

	goals := make([]GoalRow, 0, len(statuses))
	for _, category := range slices.Sorted(maps.Keys(statuses)) {
		goals = append(goals, GoalRow{Category: category, GoalStatus: statuses[category]})
	}

	return Summary{
		Totals:             totals,
		WithinBudget:       !totals.Net.IsNegative(),
		IncomeByCategory:   sortedAmounts(IncomeByCategory(state)),
		ExpensesByCategory: sortedAmounts(ExpensesByCategory(state)),
		Goals:              goals,
		IncomeEntries:      len(state.Income),
		ExpenseEntries:     len(state.Expenses),
	}
}

// OverBudgetGoals returns the goal rows whose spending exceeds the goal.
func (s Summary) OverBudgetGoals() []GoalRow {
	var over []GoalRow
	for _, row := range s.Goals {
		if row.OverBudget {
			over = append(over, row)
		}
	}
	return over
}
