package storage

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Veraticus/pennywise/internal/model"
)

// sampleState builds a state with entries in both sequences and two goals.
func sampleState() *model.LedgerState {
	base := time.Date(2024, 3, 1, 9, 30, 0, 123456000, time.UTC)

	state := model.NewLedgerState()
	state.Income = append(state.Income,
		model.Entry{Amount: decimal.RequireFromString("3000"), Description: "Monthly salary", Category: "salary", Date: base},
		model.Entry{Amount: decimal.RequireFromString("120.5"), Description: "", Category: "freelance", Date: base.Add(time.Hour)},
	)
	state.Expenses = append(state.Expenses,
		model.Entry{Amount: decimal.RequireFromString("50.25"), Description: "Groceries", Category: "food", Date: base.Add(2 * time.Hour)},
		model.Entry{Amount: decimal.RequireFromString("0.1"), Description: "Gum, \"mint\"", Category: "food", Date: base.Add(3 * time.Hour)},
	)
	state.BudgetGoals["food"] = decimal.RequireFromString("400")
	state.BudgetGoals["fun"] = decimal.Zero
	return state
}

// requireSameState compares two states field by field, using decimal and
// time equality rather than struct identity.
func requireSameState(t *testing.T, want, got *model.LedgerState) {
	t.Helper()
	require.NotNil(t, got)

	requireSameEntries(t, want.Income, got.Income)
	requireSameEntries(t, want.Expenses, got.Expenses)

	require.Len(t, got.BudgetGoals, len(want.BudgetGoals))
	for category, goal := range want.BudgetGoals {
		gotGoal, ok := got.BudgetGoals[category]
		require.True(t, ok, "missing goal %q", category)
		assert.True(t, goal.Equal(gotGoal), "goal %q: want %s, got %s", category, goal, gotGoal)
	}
}

func requireSameEntries(t *testing.T, want, got []model.Entry) {
	t.Helper()
	require.NotNil(t, got)
	require.Len(t, got, len(want))

	for i := range want {
		assert.True(t, want[i].Amount.Equal(got[i].Amount), "entry %d amount: want %s, got %s", i, want[i].Amount, got[i].Amount)
		assert.Equal(t, want[i].Description, got[i].Description)
		assert.Equal(t, want[i].Category, got[i].Category)
		assert.True(t, want[i].Date.Equal(got[i].Date), "entry %d date: want %s, got %s", i, want[i].Date, got[i].Date)
	}
}
