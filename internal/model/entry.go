// Package model defines the ledger's domain types.
package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// EntryKind distinguishes income entries from expense entries.
type EntryKind string

const (
	// KindIncome marks money coming in.
	KindIncome EntryKind = "income"
	// KindExpense marks money going out.
	KindExpense EntryKind = "expense"
)

// Default categories applied when the caller leaves the category empty.
const (
	DefaultIncomeCategory  = "salary"
	DefaultExpenseCategory = "general"
)

// DefaultCategory returns the category used for an entry of the given kind
// when none is supplied.
func DefaultCategory(kind EntryKind) string {
	if kind == KindIncome {
		return DefaultIncomeCategory
	}
	return DefaultExpenseCategory
}

// Entry is a single income or expense record.
type Entry struct {
	Date        time.Time
	Amount      decimal.Decimal
	Description string
	Category    string
}
