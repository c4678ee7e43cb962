package storage

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/Veraticus/pennywise/internal/common"
	"github.com/Veraticus/pennywise/internal/model"
)

// localDateLayout matches ISO-8601 timestamps written without a UTC offset.
const localDateLayout = "2006-01-02T15:04:05"

type snapshotDocument struct {
	BudgetGoals map[string]json.Number `json:"budget_goals"`
	Income      []entryRecord          `json:"income"`
	Expenses    []entryRecord          `json:"expenses"`
}

type entryRecord struct {
	Amount      json.Number `json:"amount"`
	Description string      `json:"description"`
	Category    string      `json:"category"`
	Date        string      `json:"date"`
}

// encodeSnapshot renders state as an indented JSON document.
func encodeSnapshot(state *model.LedgerState) ([]byte, error) {
	if err := validateState(state); err != nil {
		return nil, err
	}

	doc := snapshotDocument{
		Income:      encodeEntries(state.Income),
		Expenses:    encodeEntries(state.Expenses),
		BudgetGoals: make(map[string]json.Number, len(state.BudgetGoals)),
	}
	for category, goal := range state.BudgetGoals {
		doc.BudgetGoals[category] = json.Number(goal.String())
	}

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to encode snapshot: %w", err)
	}
	return append(data, '\n'), nil
}

func encodeEntries(entries []model.Entry) []entryRecord {
	records := make([]entryRecord, 0, len(entries))
	for _, entry := range entries {
		records = append(records, entryRecord{
			Amount:      json.Number(entry.Amount.String()),
			Description: entry.Description,
			Category:    entry.Category,
			Date:        entry.Date.Format(time.RFC3339Nano),
		})
	}
	return records
}

// decodeSnapshot parses a snapshot document. Any structural or invariant
// violation is reported as ErrCorruptSnapshot. Entries with a missing or
// unparseable date keep the zero time.
func decodeSnapshot(data []byte) (*model.LedgerState, error) {
	var doc snapshotDocument

	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCorruptSnapshot, err)
	}

	state := model.NewLedgerState()

	var err error
	if state.Income, err = decodeEntries(doc.Income, "income"); err != nil {
		return nil, err
	}
	if state.Expenses, err = decodeEntries(doc.Expenses, "expenses"); err != nil {
		return nil, err
	}

	for category, raw := range doc.BudgetGoals {
		amount, err := decimal.NewFromString(raw.String())
		if err != nil {
			return nil, fmt.Errorf("%w: budget goal %q: %w", ErrCorruptSnapshot, category, err)
		}
		state.BudgetGoals[category] = amount
	}

	if err := validateState(state); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCorruptSnapshot, err)
	}
	return state, nil
}

func decodeEntries(records []entryRecord, field string) ([]model.Entry, error) {
	entries := make([]model.Entry, 0, len(records))
	for i, record := range records {
		amount, err := decimal.NewFromString(record.Amount.String())
		if err != nil {
			return nil, fmt.Errorf("%w: %s[%d].amount: %w", ErrCorruptSnapshot, field, i, err)
		}

		date, err := parseDate(record.Date)
		if err != nil {
			// Dates are informational; the entry is kept without one.
			common.LogWarn(err, "Entry has an unreadable date", common.Fields{
				"entry": fmt.Sprintf("%s[%d]", field, i),
				"date":  record.Date,
			})
			date = time.Time{}
		}

		entries = append(entries, model.Entry{
			Amount:      amount,
			Description: record.Description,
			Category:    record.Category,
			Date:        date,
		})
	}
	return entries, nil
}

// parseDate accepts RFC 3339 timestamps and offset-less ISO-8601 timestamps,
// which are read as local time.
func parseDate(value string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339Nano, value); err == nil {
		return t, nil
	}
	return time.ParseInLocation(localDateLayout, value, time.Local)
}
