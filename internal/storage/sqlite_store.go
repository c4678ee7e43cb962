package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/mattn/go-sqlite3"

	"github.com/Veraticus/pennywise/internal/common"
	"github.com/Veraticus/pennywise/internal/model"
)

// SQLiteStore keeps the ledger snapshot as a single row in a SQLite database.
// The database is opened for each Load or Save and closed afterwards.
type SQLiteStore struct {
	dbPath string
}

// NewSQLiteStore creates a store backed by the database file at dbPath.
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	if err := validateString(dbPath, "dbPath"); err != nil {
		return nil, err
	}
	if dbPath == ":memory:" {
		return nil, fmt.Errorf("%w: in-memory databases do not persist between calls", common.ErrInvalidConfig)
	}
	return &SQLiteStore{dbPath: dbPath}, nil
}

// Location returns the database file path.
func (s *SQLiteStore) Location() string {
	return s.dbPath
}

// Load reads the snapshot row.
func (s *SQLiteStore) Load(ctx context.Context) (*model.LedgerState, error) {
	if err := validateContext(ctx); err != nil {
		return nil, fmt.Errorf("%w: %w", common.ErrStoreRead, err)
	}

	if _, err := os.Stat(s.dbPath); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrSnapshotNotFound, s.dbPath)
		}
		return nil, fmt.Errorf("%w: %w", common.ErrStoreRead, err)
	}

	var document string
	err := s.withDB(ctx, func(db *sql.DB) error {
		return db.QueryRowContext(ctx, `SELECT document FROM snapshots WHERE id = 1`).Scan(&document)
	})
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", ErrSnapshotNotFound, s.dbPath)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %w", common.ErrStoreRead, err)
	}

	state, err := decodeSnapshot([]byte(document))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", s.dbPath, err)
	}
	return state, nil
}

// Save replaces the snapshot row.
func (s *SQLiteStore) Save(ctx context.Context, state *model.LedgerState) error {
	if err := validateContext(ctx); err != nil {
		return fmt.Errorf("%w: %w", common.ErrStoreWrite, err)
	}

	data, err := encodeSnapshot(state)
	if err != nil {
		return fmt.Errorf("%w: %w", common.ErrStoreWrite, err)
	}

	if err := os.MkdirAll(filepath.Dir(s.dbPath), 0o750); err != nil {
		return fmt.Errorf("%w: failed to create database directory: %w", common.ErrStoreWrite, err)
	}

	upsert := func(db *sql.DB) error {
		_, execErr := db.ExecContext(ctx,
			`INSERT INTO snapshots (id, document, saved_at) VALUES (1, ?, ?)
			ON CONFLICT(id) DO UPDATE SET document = excluded.document, saved_at = excluded.saved_at`,
			string(data), time.Now().UTC().Format(time.RFC3339Nano))
		return execErr
	}

	err = s.withDB(ctx, upsert)
	if isUnreadableDatabase(err) {
		backup, moveErr := s.moveAside()
		if moveErr != nil {
			return fmt.Errorf("%w: %w", common.ErrStoreWrite, errors.Join(err, moveErr))
		}
		common.LogWarn(err, "Unreadable ledger database moved aside", common.Fields{
			"db_path": s.dbPath,
			"backup":  backup,
		})
		err = s.withDB(ctx, upsert)
	}
	if err != nil {
		return fmt.Errorf("%w: %w", common.ErrStoreWrite, err)
	}

	common.LogDebug("Saved ledger snapshot", common.Fields{
		"db_path":  s.dbPath,
		"income":   len(state.Income),
		"expenses": len(state.Expenses),
		"goals":    len(state.BudgetGoals),
	})
	return nil
}

// withDB opens the database, migrates it, runs fn and closes it again.
func (s *SQLiteStore) withDB(ctx context.Context, fn func(*sql.DB) error) (err error) {
	db, err := sql.Open("sqlite3", s.dbPath+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer func() {
		if closeErr := db.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("failed to close database: %w", closeErr)
		}
	}()

	db.SetMaxOpenConns(1)

	if err := db.PingContext(ctx); err != nil {
		return fmt.Errorf("failed to ping database: %w", err)
	}
	if err := migrate(ctx, db); err != nil {
		return err
	}

	return fn(db)
}

// moveAside renames the database file so a fresh one can be created in its
// place. The renamed file is left for the user to inspect.
func (s *SQLiteStore) moveAside() (string, error) {
	backup := fmt.Sprintf("%s.corrupt-%s", s.dbPath, time.Now().UTC().Format("20060102T150405.000000000"))
	if err := os.Rename(s.dbPath, backup); err != nil {
		return "", fmt.Errorf("failed to move unreadable database aside: %w", err)
	}
	for _, suffix := range []string{"-wal", "-shm"} {
		_ = os.Remove(s.dbPath + suffix)
	}
	return backup, nil
}

// isUnreadableDatabase reports whether err means the file is not a usable
// SQLite database.
func isUnreadableDatabase(err error) bool {
	var sqliteErr sqlite3.Error
	if !errors.As(err, &sqliteErr) {
		return false
	}
	return sqliteErr.Code == sqlite3.ErrNotADB || sqliteErr.Code == sqlite3.ErrCorrupt
}

var _ Store = (*SQLiteStore)(nil)
