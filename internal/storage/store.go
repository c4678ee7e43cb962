// Package storage provides snapshot persistence for the ledger.
package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/Veraticus/pennywise/internal/common"
	"github.com/Veraticus/pennywise/internal/config"
	"github.com/Veraticus/pennywise/internal/model"
)

// Load errors. Both wrap common.ErrStoreRead.
var (
	ErrSnapshotNotFound = fmt.Errorf("%w: snapshot not found", common.ErrStoreRead)
	ErrCorruptSnapshot  = fmt.Errorf("%w: snapshot is corrupt", common.ErrStoreRead)
)

// Store reads and writes the whole ledger state as a single snapshot.
type Store interface {
	// Load returns the persisted state, ErrSnapshotNotFound when nothing has
	// been saved yet, or an error wrapping common.ErrStoreRead.
	Load(ctx context.Context) (*model.LedgerState, error)
	// Save overwrites the snapshot. Errors wrap common.ErrStoreWrite.
	Save(ctx context.Context, state *model.LedgerState) error
	// Location describes where the snapshot lives, for messages and logs.
	Location() string
}

// New creates the store selected by cfg.
func New(cfg config.StorageConfig) (Store, error) {
	switch cfg.Backend {
	case config.BackendJSON, "":
		return NewJSONFileStore(cfg.Path)
	case config.BackendSQLite:
		return NewSQLiteStore(cfg.Path)
	default:
		return nil, fmt.Errorf("%w: unsupported storage backend %q", common.ErrInvalidConfig, cfg.Backend)
	}
}

// LoadOrEmpty loads the state from store, substituting an empty state when
// the snapshot is missing or unreadable. It never fails.
func LoadOrEmpty(ctx context.Context, store Store) *model.LedgerState {
	state, err := store.Load(ctx)
	if err == nil {
		return state
	}

	fields := common.Fields{"location": store.Location()}
	if errors.Is(err, ErrSnapshotNotFound) {
		common.LogDebug("No ledger snapshot found, starting with an empty ledger", fields)
	} else {
		common.LogWarn(err, "Ledger snapshot could not be loaded, starting with an empty ledger", fields)
	}
	return model.NewLedgerState()
}
