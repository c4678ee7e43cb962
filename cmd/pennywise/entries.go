package main

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/Veraticus/pennywise/internal/common"
)

func incomeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "income <amount> [description] [category]",
		Short: "Record income",
		Long: `Record an income entry. The category defaults to "salary".

Arguments starting with "-" are read as flags; put them after "--".

Example:
  pennywise income 3000 "Monthly salary" salary`,
		Args: cobra.RangeArgs(1, 3),
		RunE: dispatch("income"),
	}
	cmd.SetFlagErrorFunc(negativeAmountError("Income amount must be positive"))
	return cmd
}

func expenseCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "expense <amount> [description] [category]",
		Short: "Record an expense",
		Long: `Record an expense entry. The category defaults to "general".

Arguments starting with "-" are read as flags; put them after "--".

Example:
  pennywise expense 50.25 "Groceries" food`,
		Args: cobra.RangeArgs(1, 3),
		RunE: dispatch("expense"),
	}
	cmd.SetFlagErrorFunc(negativeAmountError("Expense amount must be positive"))
	return cmd
}

func goalCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "goal <category> <amount>",
		Short: "Set the budget goal for a category",
		Long: `Set or replace the spending goal for a category. A goal of 0 is allowed.

Example:
  pennywise goal food 400`,
		Args: cobra.ExactArgs(2),
		RunE: dispatch("goal"),
	}
	cmd.SetFlagErrorFunc(negativeAmountError("Budget goal must be non-negative"))
	return cmd
}

func summaryCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "summary",
		Short: "Show totals, spending by category and goal status",
		Args:  cobra.NoArgs,
		RunE:  dispatch("summary"),
	}
}

// negativeAmountError reports a negative number that pflag took for a
// shorthand flag ("unknown shorthand flag: '5' in -5") as an invalid amount.
// Other flag errors pass through unchanged.
func negativeAmountError(message string) func(*cobra.Command, error) error {
	return func(_ *cobra.Command, err error) error {
		text := err.Error()
		idx := strings.LastIndex(text, " in -")
		if !strings.HasPrefix(text, "unknown shorthand flag") || idx < 0 {
			return err
		}

		raw := text[idx+len(" in "):]
		amount, parseErr := decimal.NewFromString(raw)
		if parseErr != nil || !amount.IsNegative() {
			return err
		}
		return common.NewUserError(message, fmt.Errorf("%w: %s", common.ErrInvalidAmount, raw))
	}
}
