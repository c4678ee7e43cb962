// Package ledger owns the live ledger state and is the only code path that
// mutates it. Every successful mutation is persisted through a storage.Store
// before the call returns.
package ledger

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/Veraticus/pennywise/internal/common"
	"github.com/Veraticus/pennywise/internal/model"
	"github.com/Veraticus/pennywise/internal/storage"
)

// Ledger records income, expenses and budget goals.
// It is not safe for concurrent use; the application drives it from a
// single command loop.
type Ledger struct {
	store storage.Store
	state *model.LedgerState
	now   func() time.Time
}

// Option configures a Ledger.
type Option func(*Ledger)

// WithClock overrides the clock used to timestamp new entries.
func WithClock(now func() time.Time) Option {
	return func(l *Ledger) {
		l.now = now
	}
}

// New creates a ledger over an already loaded state.
func New(store storage.Store, state *model.LedgerState, opts ...Option) *Ledger {
	if state == nil {
		state = model.NewLedgerState()
	}

	l := &Ledger{
		store: store,
		state: state.Clone(),
		now:   time.Now,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Open loads the persisted state from store, falling back to an empty ledger
// when the snapshot is missing or unreadable.
func Open(ctx context.Context, store storage.Store, opts ...Option) *Ledger {
	return New(store, storage.LoadOrEmpty(ctx, store), opts...)
}

// AddIncome records an income entry. An empty category defaults to "salary".
//
// A non-positive amount fails with common.ErrInvalidAmount and leaves the
// ledger untouched. If the entry was recorded but could not be saved, the
// entry is returned together with an error wrapping common.ErrStoreWrite.
func (l *Ledger) AddIncome(ctx context.Context, amount decimal.Decimal, description, category string) (model.Entry, error) {
	return l.addEntry(ctx, model.KindIncome, amount, description, category)
}

// AddExpense records an expense entry. An empty category defaults to "general".
// Errors follow the same rules as AddIncome.
func (l *Ledger) AddExpense(ctx context.Context, amount decimal.Decimal, description, category string) (model.Entry, error) {
	return l.addEntry(ctx, model.KindExpense, amount, description, category)
}

func (l *Ledger) addEntry(ctx context.Context, kind model.EntryKind, amount decimal.Decimal, description, category string) (model.Entry, error) {
	if !amount.IsPositive() {
		return model.Entry{}, common.NewUserError(
			fmt.Sprintf("%s amount must be positive", entryLabel(kind)),
			fmt.Errorf("%w: %s", common.ErrInvalidAmount, amount),
		)
	}

	category = strings.TrimSpace(category)
	if category == "" {
		category = model.DefaultCategory(kind)
	}

	entry := model.Entry{
		Amount:      amount,
		Description: description,
		Category:    category,
		Date:        l.now().UTC().Round(0),
	}

	if kind == model.KindIncome {
		l.state.Income = append(l.state.Income, entry)
	} else {
		l.state.Expenses = append(l.state.Expenses, entry)
	}

	return entry, l.persist(ctx, fmt.Sprintf("add %s", kind))
}

// SetBudgetGoal sets or replaces the spending goal for category.
// Negative amounts fail with common.ErrInvalidAmount; zero is allowed.
func (l *Ledger) SetBudgetGoal(ctx context.Context, category string, amount decimal.Decimal) error {
	category = strings.TrimSpace(category)
	if category == "" {
		return common.NewUserError("Budget goal needs a category", common.ErrInvalidCategory)
	}
	if amount.IsNegative() {
		return common.NewUserError(
			"Budget goal must be non-negative",
			fmt.Errorf("%w: %s", common.ErrInvalidAmount, amount),
		)
	}

	l.state.BudgetGoals[category] = amount
	return l.persist(ctx, "set budget goal")
}

// Reset discards all entries and goals and persists the empty ledger.
func (l *Ledger) Reset(ctx context.Context) error {
	l.state = model.NewLedgerState()
	return l.persist(ctx, "reset")
}

// Snapshot returns a copy of the current state for read-only use.
func (l *Ledger) Snapshot() model.LedgerState {
	return *l.state.Clone()
}

// Location describes where the ledger is persisted.
func (l *Ledger) Location() string {
	return l.store.Location()
}

// persist saves the whole state. A failure is logged and returned, but the
// in-memory state stays as it is.
func (l *Ledger) persist(ctx context.Context, operation string) error {
	if err := l.store.Save(ctx, l.state); err != nil {
		common.LogError(err, "Failed to save ledger, change kept in memory only", common.Fields{
			"operation": operation,
			"location":  l.store.Location(),
		})
		return common.NewUserError(
			fmt.Sprintf("Change recorded but could not be saved to %s", l.store.Location()),
			err,
		)
	}
	return nil
}

func entryLabel(kind model.EntryKind) string {
	if kind == model.KindIncome {
		return "Income"
	}
	return "Expense"
}
