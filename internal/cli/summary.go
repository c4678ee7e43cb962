package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/Veraticus/pennywise/internal/aggregate"
)

const (
	summaryWidth  = 50
	sectionWidth  = 30
	categoryWidth = 15
)

// RenderSummary writes the budget summary screen to w.
func RenderSummary(w io.Writer, summary aggregate.Summary) error {
	var b strings.Builder

	banner := strings.Repeat("=", summaryWidth)
	rule := SubtleStyle.Render(strings.Repeat("-", sectionWidth))

	b.WriteString("\n" + banner + "\n")
	b.WriteString(FormatTitle("         PERSONAL BUDGET SUMMARY") + "\n")
	b.WriteString(banner + "\n\n")

	fmt.Fprintf(&b, "Total Income:   %12s\n", FormatMoney(summary.Totals.Income))
	fmt.Fprintf(&b, "Total Expenses: %12s\n", FormatMoney(summary.Totals.Expenses))
	b.WriteString(rule + "\n")
	fmt.Fprintf(&b, "Net Amount:     %12s\n", FormatMoney(summary.Totals.Net))

	if summary.WithinBudget {
		b.WriteString(SuccessStyle.Render(CheckIcon+" You're within budget!") + "\n")
	} else {
		b.WriteString(WarningStyle.Render(WarningIcon+"  You're over budget!") + "\n")
	}

	if len(summary.ExpensesByCategory) > 0 {
		b.WriteString("\n" + HeadingStyle.Render("Expenses by Category:") + "\n")
		b.WriteString(rule + "\n")
		for _, row := range summary.ExpensesByCategory {
			fmt.Fprintf(&b, "%-*s: %10s\n", categoryWidth, Capitalize(row.Category), FormatMoney(row.Amount))
		}
	}

	if len(summary.Goals) > 0 {
		b.WriteString("\n" + HeadingStyle.Render("Budget Goal Status:") + "\n")
		b.WriteString(rule + "\n")
		for _, row := range summary.Goals {
			line := fmt.Sprintf("%-*s: %10s / %s", categoryWidth, Capitalize(row.Category), FormatMoney(row.Spent), FormatMoney(row.Goal))
			if row.OverBudget {
				line += " " + WarningStyle.Render(fmt.Sprintf("(%s  Over by %s)", WarningIcon, FormatMoney(row.Remaining.Abs())))
			} else {
				line += " " + SuccessStyle.Render(fmt.Sprintf("(%s %s remaining)", CheckIcon, FormatMoney(row.Remaining)))
			}
			b.WriteString(line + "\n")
		}
	}

	b.WriteString(banner + "\n")

	if _, err := io.WriteString(w, b.String()); err != nil {
		return fmt.Errorf("failed to write summary: %w", err)
	}
	return nil
}
