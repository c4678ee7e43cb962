package storage

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/Veraticus/pennywise/internal/common"
	"github.com/Veraticus/pennywise/internal/model"
)

// JSONFileStore keeps the ledger snapshot in a single JSON document on disk.
type JSONFileStore struct {
	path string
}

// NewJSONFileStore creates a store backed by the file at path.
func NewJSONFileStore(path string) (*JSONFileStore, error) {
	if err := validateString(path, "path"); err != nil {
		return nil, err
	}
	return &JSONFileStore{path: path}, nil
}

// Location returns the snapshot file path.
func (s *JSONFileStore) Location() string {
	return s.path
}

// Load reads and decodes the snapshot file.
func (s *JSONFileStore) Load(ctx context.Context) (*model.LedgerState, error) {
	if err := validateContext(ctx); err != nil {
		return nil, fmt.Errorf("%w: %w", common.ErrStoreRead, err)
	}

	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrSnapshotNotFound, s.path)
		}
		return nil, fmt.Errorf("%w: %w", common.ErrStoreRead, err)
	}

	state, err := decodeSnapshot(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", s.path, err)
	}
	return state, nil
}

// Save writes the snapshot to a temporary file in the same directory and
// renames it over the previous snapshot.
func (s *JSONFileStore) Save(ctx context.Context, state *model.LedgerState) error {
	if err := validateContext(ctx); err != nil {
		return fmt.Errorf("%w: %w", common.ErrStoreWrite, err)
	}

	data, err := encodeSnapshot(state)
	if err != nil {
		return fmt.Errorf("%w: %w", common.ErrStoreWrite, err)
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return fmt.Errorf("%w: failed to create directory: %w", common.ErrStoreWrite, err)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(s.path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("%w: %w", common.ErrStoreWrite, err)
	}
	tmpName := tmp.Name()
	defer func() {
		// No-op once the rename succeeded.
		_ = os.Remove(tmpName)
	}()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("%w: %w", common.ErrStoreWrite, err)
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("%w: %w", common.ErrStoreWrite, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("%w: %w", common.ErrStoreWrite, err)
	}

	if err := os.Rename(tmpName, s.path); err != nil {
		return fmt.Errorf("%w: %w", common.ErrStoreWrite, err)
	}

	common.LogDebug("Saved ledger snapshot", common.Fields{
		"path":     s.path,
		"income":   len(state.Income),
		"expenses": len(state.Expenses),
		"goals":    len(state.BudgetGoals),
	})
	return nil
}

var _ Store = (*JSONFileStore)(nil)
