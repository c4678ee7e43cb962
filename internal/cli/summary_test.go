package cli

import (
	"bytes"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Veraticus/pennywise/internal/aggregate"
	"github.com/Veraticus/pennywise/internal/model"
)

func TestRenderSummary(t *testing.T) {
	state := model.NewLedgerState()
	state.Income = []model.Entry{{Amount: decimal.RequireFromString("3000"), Category: "salary"}}
	state.Expenses = []model.Entry{
		{Amount: decimal.RequireFromString("50.25"), Category: "food"},
		{Amount: decimal.RequireFromString("80"), Category: "fuel"},
	}
	state.BudgetGoals["food"] = decimal.RequireFromString("400")
	state.BudgetGoals["fuel"] = decimal.RequireFromString("30")

	var out bytes.Buffer
	require.NoError(t, RenderSummary(&out, aggregate.BuildSummary(*state)))
	text := out.String()

	assert.Contains(t, text, "PERSONAL BUDGET SUMMARY")
	assert.Contains(t, text, "Total Income:")
	assert.Contains(t, text, "$3000.00")
	assert.Contains(t, text, "$130.25")
	assert.Contains(t, text, "$2869.75")
	assert.Contains(t, text, "You're within budget!")
	assert.Contains(t, text, "Expenses by Category:")
	assert.Contains(t, text, "Food           :     $50.25")
	assert.Contains(t, text, "Fuel           :     $80.00")
	assert.Contains(t, text, "Budget Goal Status:")
	assert.Contains(t, text, "$349.75 remaining")
	assert.Contains(t, text, "Over by $50.00")

	assert.Less(t, bytes.Index(out.Bytes(), []byte("Food")), bytes.Index(out.Bytes(), []byte("Fuel")))
}

func TestRenderSummary_EmptyLedger(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, RenderSummary(&out, aggregate.BuildSummary(*model.NewLedgerState())))
	text := out.String()

	assert.Contains(t, text, "$0.00")
	assert.Contains(t, text, "You're within budget!")
	assert.NotContains(t, text, "Expenses by Category:")
	assert.NotContains(t, text, "Budget Goal Status:")
}

func TestRenderSummary_OverBudget(t *testing.T) {
	state := model.NewLedgerState()
	state.Expenses = []model.Entry{{Amount: decimal.RequireFromString("10"), Category: "general"}}

	var out bytes.Buffer
	require.NoError(t, RenderSummary(&out, aggregate.BuildSummary(*state)))

	assert.Contains(t, out.String(), "You're over budget!")
	assert.Contains(t, out.String(), "-$10.00")
}
