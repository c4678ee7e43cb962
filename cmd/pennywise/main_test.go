package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Veraticus/pennywise/internal/common"
)

// runCommand executes the root command against the ledger at dataPath.
func runCommand(t *testing.T, dataPath, stdin string, args ...string) (string, error) {
	t.Helper()

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetIn(strings.NewReader(stdin))
	rootCmd.SetArgs(append([]string{"--data", dataPath, "--backend", "json", "--log-level", "error"}, args...))

	err := rootCmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestCommands_EndToEnd(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	dataPath := filepath.Join(t.TempDir(), "budget_data.json")

	out, err := runCommand(t, dataPath, "", "income", "3000", "Monthly salary")
	require.NoError(t, err)
	assert.Contains(t, out, "Added income: $3000.00 - Monthly salary")

	_, err = runCommand(t, dataPath, "", "expense", "50.25", "Groceries", "food")
	require.NoError(t, err)

	_, err = runCommand(t, dataPath, "", "goal", "food", "40")
	require.NoError(t, err)

	out, err = runCommand(t, dataPath, "", "summary")
	require.NoError(t, err)
	assert.Contains(t, out, "$2949.75")
	assert.Contains(t, out, "Over by $10.25")

	out, err = runCommand(t, dataPath, "", "export", "--format", "json")
	require.NoError(t, err)

	var doc struct {
		Totals struct {
			Net json.Number `json:"net"`
		} `json:"totals"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &doc))
	assert.Equal(t, "2949.75", doc.Totals.Net.String())

	data, err := os.ReadFile(dataPath)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"budget_goals"`)
	assert.Contains(t, string(data), `"food": 40`)
}

func TestCommands_InvalidAmount(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	dataPath := filepath.Join(t.TempDir(), "budget_data.json")

	_, err := runCommand(t, dataPath, "", "expense", "0", "nothing")
	require.Error(t, err)
	assert.ErrorIs(t, err, common.ErrInvalidAmount)
	assert.Equal(t, "Expense amount must be positive", common.UserMessage(err))

	_, statErr := os.Stat(dataPath)
	assert.True(t, os.IsNotExist(statErr), "rejected entry must not be saved")
}

func TestCommands_Clear(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	dataPath := filepath.Join(t.TempDir(), "budget_data.json")

	_, err := runCommand(t, dataPath, "", "income", "100")
	require.NoError(t, err)

	out, err := runCommand(t, dataPath, "no\n", "clear")
	require.NoError(t, err)
	assert.Contains(t, out, "Clear canceled.")

	out, err = runCommand(t, dataPath, "yes\n", "clear")
	require.NoError(t, err)
	assert.Contains(t, out, "All data cleared.")

	data, err := os.ReadFile(dataPath)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"income": []`)
}

func TestCommands_InvalidBackend(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	_, err := runCommand(t, filepath.Join(t.TempDir(), "x.json"), "", "--backend", "postgres", "summary")
	require.Error(t, err)
	assert.ErrorIs(t, err, common.ErrInvalidConfig)
}

func TestVersionCommand(t *testing.T) {
	out, err := runCommand(t, filepath.Join(t.TempDir(), "x.json"), "", "version")
	require.NoError(t, err)
	assert.Contains(t, out, "pennywise dev")
}

func TestCommands_NegativeAmounts(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	dataPath := filepath.Join(t.TempDir(), "budget_data.json")

	tests := []struct {
		name    string
		message string
		args    []string
	}{
		{name: "expense", args: []string{"expense", "-5", "x"}, message: "Expense amount must be positive"},
		{name: "income with decimals", args: []string{"income", "-12.50"}, message: "Income amount must be positive"},
		{name: "goal", args: []string{"goal", "food", "-1"}, message: "Budget goal must be non-negative"},
		{name: "expense after separator", args: []string{"expense", "--", "-5", "x"}, message: "Expense amount must be positive"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := runCommand(t, dataPath, "", tt.args...)
			require.Error(t, err)
			assert.ErrorIs(t, err, common.ErrInvalidAmount)
			assert.Equal(t, tt.message, common.UserMessage(err))
		})
	}

	_, statErr := os.Stat(dataPath)
	assert.True(t, os.IsNotExist(statErr), "rejected amounts must not be saved")
}

func TestNegativeAmountError_PassesOtherErrors(t *testing.T) {
	handler := negativeAmountError("Expense amount must be positive")

	for _, text := range []string{
		"unknown shorthand flag: 'x' in -x",
		"unknown flag: --bogus",
		"unknown shorthand flag: '5' in -5abc",
	} {
		err := errors.New(text)
		assert.Same(t, err, handler(nil, err), text)
	}
}
