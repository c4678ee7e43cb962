package storage

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Veraticus/pennywise/internal/common"
	"github.com/Veraticus/pennywise/internal/model"
)

// Validation errors.
var (
	ErrNilContext   = errors.New("context cannot be nil")
	ErrEmptyString  = errors.New("string parameter cannot be empty")
	ErrNilParameter = errors.New("parameter cannot be nil")
)

// validateContext ensures the context is usable.
func validateContext(ctx context.Context) error {
	if ctx == nil {
		return ErrNilContext
	}
	return ctx.Err()
}

// validateString ensures a string parameter is not empty.
func validateString(s string, paramName string) error {
	if strings.TrimSpace(s) == "" {
		return fmt.Errorf("%w: %s", ErrEmptyString, paramName)
	}
	return nil
}

// validateState checks the amount invariants of a ledger state.
func validateState(state *model.LedgerState) error {
	if state == nil {
		return fmt.Errorf("%w: state", ErrNilParameter)
	}

	for i, entry := range state.Income {
		if !entry.Amount.IsPositive() {
			return fmt.Errorf("%w: income[%d] amount %s must be positive", common.ErrInvalidAmount, i, entry.Amount)
		}
	}
	for i, entry := range state.Expenses {
		if !entry.Amount.IsPositive() {
			return fmt.Errorf("%w: expenses[%d] amount %s must be positive", common.ErrInvalidAmount, i, entry.Amount)
		}
	}
	for category, goal := range state.BudgetGoals {
		if goal.IsNegative() {
			return fmt.Errorf("%w: budget goal %q of %s must not be negative", common.ErrInvalidAmount, category, goal)
		}
	}
	return nil
}
