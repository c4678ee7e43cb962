// Package report renders a budget summary as a structured document for
// export to other tools.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	"github.com/Veraticus/pennywise/internal/aggregate"
	"github.com/Veraticus/pennywise/internal/model"
)

// Format is an export encoding.
type Format string

// Supported formats.
const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// ParseFormat validates a format name.
func ParseFormat(name string) (Format, error) {
	switch Format(strings.ToLower(strings.TrimSpace(name))) {
	case FormatJSON:
		return FormatJSON, nil
	case FormatYAML, "yml":
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("unsupported export format %q (use json or yaml)", name)
	}
}

// Amount is a decimal that encodes as a bare number in JSON and YAML.
type Amount decimal.Decimal

// MarshalJSON implements json.Marshaler.
func (a Amount) MarshalJSON() ([]byte, error) {
	return []byte(decimal.Decimal(a).String()), nil
}

// MarshalYAML implements yaml.Marshaler.
func (a Amount) MarshalYAML() (any, error) {
	return &yaml.Node{
		Kind:  yaml.ScalarNode,
		Value: decimal.Decimal(a).String(),
	}, nil
}

// Document is the exported shape of a summary.
type Document struct {
	GeneratedAt        time.Time      `json:"generated_at" yaml:"generated_at"`
	Totals             Totals         `json:"totals" yaml:"totals"`
	IncomeByCategory   []CategoryLine `json:"income_by_category" yaml:"income_by_category"`
	ExpensesByCategory []CategoryLine `json:"expenses_by_category" yaml:"expenses_by_category"`
	BudgetGoals        []GoalLine     `json:"budget_goals" yaml:"budget_goals"`
}

// Totals mirrors model.Totals.
type Totals struct {
	Income       Amount `json:"income" yaml:"income"`
	Expenses     Amount `json:"expenses" yaml:"expenses"`
	Net          Amount `json:"net" yaml:"net"`
	WithinBudget bool   `json:"within_budget" yaml:"within_budget"`
}

// CategoryLine is one category total.
type CategoryLine struct {
	Category string `json:"category" yaml:"category"`
	Amount   Amount `json:"amount" yaml:"amount"`
}

// GoalLine is one goal status.
type GoalLine struct {
	Category   string `json:"category" yaml:"category"`
	Goal       Amount `json:"goal" yaml:"goal"`
	Spent      Amount `json:"spent" yaml:"spent"`
	Remaining  Amount `json:"remaining" yaml:"remaining"`
	OverBudget bool   `json:"over_budget" yaml:"over_budget"`
}

// NewDocument converts a summary into its export shape.
func NewDocument(summary aggregate.Summary, generatedAt time.Time) Document {
	doc := Document{
		GeneratedAt: generatedAt.UTC(),
		Totals: Totals{
			Income:       Amount(summary.Totals.Income),
			Expenses:     Amount(summary.Totals.Expenses),
			Net:          Amount(summary.Totals.Net),
			WithinBudget: summary.WithinBudget,
		},
		IncomeByCategory:   categoryLines(summary.IncomeByCategory),
		ExpensesByCategory: categoryLines(summary.ExpensesByCategory),
		BudgetGoals:        make([]GoalLine, 0, len(summary.Goals)),
	}

	for _, row := range summary.Goals {
		doc.BudgetGoals = append(doc.BudgetGoals, GoalLine{
			Category:   row.Category,
			Goal:       Amount(row.Goal),
			Spent:      Amount(row.Spent),
			Remaining:  Amount(row.Remaining),
			OverBudget: row.OverBudget,
		})
	}
	return doc
}

// Write encodes the summary to w in the given format.
func Write(w io.Writer, format Format, summary aggregate.Summary, generatedAt time.Time) error {
	doc := NewDocument(summary, generatedAt)

	switch format {
	case FormatJSON:
		encoder := json.NewEncoder(w)
		encoder.SetIndent("", "  ")
		if err := encoder.Encode(doc); err != nil {
			return fmt.Errorf("failed to encode JSON report: %w", err)
		}
	case FormatYAML:
		encoder := yaml.NewEncoder(w)
		encoder.SetIndent(2)
		if err := encoder.Encode(doc); err != nil {
			return fmt.Errorf("failed to encode YAML report: %w", err)
		}
		if err := encoder.Close(); err != nil {
			return fmt.Errorf("failed to flush YAML report: %w", err)
		}
	default:
		return fmt.Errorf("unsupported export format %q", format)
	}
	return nil
}

func categoryLines(rows []model.CategoryAmount) []CategoryLine {
	lines := make([]CategoryLine, 0, len(rows))
	for _, row := range rows {
		lines = append(lines, CategoryLine{Category: row.Category, Amount: Amount(row.Amount)})
	}
	return lines
}
