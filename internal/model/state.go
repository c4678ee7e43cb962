package model

import (
	"maps"
	"slices"

	"github.com/shopspring/decimal"
)

// LedgerState is the complete set of entries and budget goals.
// It is the unit of persistence: stores always read and write it whole.
type LedgerState struct {
	BudgetGoals map[string]decimal.Decimal
	Income      []Entry
	Expenses    []Entry
}

// NewLedgerState returns an empty state with non-nil collections.
func NewLedgerState() *LedgerState {
	return &LedgerState{
		Income:      []Entry{},
		Expenses:    []Entry{},
		BudgetGoals: map[string]decimal.Decimal{},
	}
}

// Clone returns a deep copy of the state.
func (s *LedgerState) Clone() *LedgerState {
	if s == nil {
		return NewLedgerState()
	}

	clone := &LedgerState{
		Income:      slices.Clone(s.Income),
		Expenses:    slices.Clone(s.Expenses),
		BudgetGoals: maps.Clone(s.BudgetGoals),
	}
	if clone.Income == nil {
		clone.Income = []Entry{}
	}
	if clone.Expenses == nil {
		clone.Expenses = []Entry{}
	}
	if clone.BudgetGoals == nil {
		clone.BudgetGoals = map[string]decimal.Decimal{}
	}
	return clone
}

// IsEmpty reports whether the state holds no entries and no goals.
func (s LedgerState) IsEmpty() bool {
	return len(s.Income) == 0 && len(s.Expenses) == 0 && len(s.BudgetGoals) == 0
}
