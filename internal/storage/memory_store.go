package storage

import (
	"context"
	"fmt"
	"sync"

	"github.com/Veraticus/pennywise/internal/common"
	"github.com/Veraticus/pennywise/internal/model"
)

// MemoryStore keeps the encoded snapshot in memory. It goes through the same
// codec as the file-backed stores, so a state that survives a MemoryStore
// round trip survives a file round trip too.
type MemoryStore struct {
	saveErr  error
	document []byte
	saves    int
	mu       sync.Mutex
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

// Location identifies the store in logs.
func (m *MemoryStore) Location() string {
	return "memory"
}

// Load decodes the last saved snapshot.
func (m *MemoryStore) Load(ctx context.Context) (*model.LedgerState, error) {
	if err := validateContext(ctx); err != nil {
		return nil, fmt.Errorf("%w: %w", common.ErrStoreRead, err)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if m.document == nil {
		return nil, ErrSnapshotNotFound
	}
	return decodeSnapshot(m.document)
}

// Save encodes and keeps the snapshot, or fails with the error set by FailSaves.
func (m *MemoryStore) Save(ctx context.Context, state *model.LedgerState) error {
	if err := validateContext(ctx); err != nil {
		return fmt.Errorf("%w: %w", common.ErrStoreWrite, err)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if m.saveErr != nil {
		return fmt.Errorf("%w: %w", common.ErrStoreWrite, m.saveErr)
	}

	data, err := encodeSnapshot(state)
	if err != nil {
		return fmt.Errorf("%w: %w", common.ErrStoreWrite, err)
	}
	m.document = data
	m.saves++
	return nil
}

// FailSaves makes every following Save fail with err. A nil err restores
// normal behavior.
func (m *MemoryStore) FailSaves(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.saveErr = err
}

// SetDocument replaces the stored snapshot bytes.
func (m *MemoryStore) SetDocument(data []byte) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.document = data
}

// Document returns the last saved snapshot bytes.
func (m *MemoryStore) Document() []byte {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.document
}

// Saves returns the number of successful saves.
func (m *MemoryStore) Saves() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.saves
}

var _ Store = (*MemoryStore)(nil)
