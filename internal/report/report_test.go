package report

import (
	"bytes"
	"encoding/json"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/Veraticus/pennywise/internal/aggregate"
	"github.com/Veraticus/pennywise/internal/model"
)

var generatedAt = time.Date(2024, 4, 1, 8, 0, 0, 0, time.UTC)

func sampleSummary() aggregate.Summary {
	state := model.NewLedgerState()
	state.Income = []model.Entry{{Amount: decimal.RequireFromString("3000"), Category: "salary"}}
	state.Expenses = []model.Entry{{Amount: decimal.RequireFromString("50.25"), Category: "food"}}
	state.BudgetGoals["food"] = decimal.RequireFromString("30")
	return aggregate.BuildSummary(*state)
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		input   string
		want    Format
		wantErr bool
	}{
		{input: "json", want: FormatJSON},
		{input: "YAML", want: FormatYAML},
		{input: "yml", want: FormatYAML},
		{input: "csv", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseFormat(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestWrite_JSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, FormatJSON, sampleSummary(), generatedAt))

	assert.Contains(t, buf.String(), `"net": 2949.75`)

	var decoded struct {
		GeneratedAt string `json:"generated_at"`
		Totals      struct {
			Income       float64 `json:"income"`
			Net          float64 `json:"net"`
			WithinBudget bool    `json:"within_budget"`
		} `json:"totals"`
		BudgetGoals []struct {
			Category   string  `json:"category"`
			Remaining  float64 `json:"remaining"`
			OverBudget bool    `json:"over_budget"`
		} `json:"budget_goals"`
	}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))

	assert.Equal(t, "2024-04-01T08:00:00Z", decoded.GeneratedAt)
	assert.InDelta(t, 3000, decoded.Totals.Income, 1e-9)
	assert.InDelta(t, 2949.75, decoded.Totals.Net, 1e-9)
	assert.True(t, decoded.Totals.WithinBudget)
	require.Len(t, decoded.BudgetGoals, 1)
	assert.Equal(t, "food", decoded.BudgetGoals[0].Category)
	assert.InDelta(t, -20.25, decoded.BudgetGoals[0].Remaining, 1e-9)
	assert.True(t, decoded.BudgetGoals[0].OverBudget)
}

func TestWrite_YAML(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, FormatYAML, sampleSummary(), generatedAt))

	assert.Contains(t, buf.String(), "net: 2949.75")
	assert.Contains(t, buf.String(), "over_budget: true")

	var decoded map[string]any
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &decoded))

	totals, ok := decoded["totals"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, 50.25, totals["expenses"])

	categories, ok := decoded["expenses_by_category"].([]any)
	require.True(t, ok)
	require.Len(t, categories, 1)
}

func TestWrite_EmptySummary(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, FormatJSON, aggregate.BuildSummary(*model.NewLedgerState()), generatedAt))

	assert.Contains(t, buf.String(), `"budget_goals": []`)
	assert.Contains(t, buf.String(), `"income": 0`)
}

func TestWrite_UnknownFormat(t *testing.T) {
	var buf bytes.Buffer
	assert.Error(t, Write(&buf, Format("xml"), sampleSummary(), generatedAt))
}
