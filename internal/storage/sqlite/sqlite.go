// Package sqlite provides a SQLite-backed implementation of the storage.Store interface.
//
// Saved invoices live in one row of the slots table, serialized as a single
// JSON array. That keeps the persisted shape identical to the documented
// wire schema (one array of Invoice+id+savedAt objects) and makes every
// mutation an atomic read-modify-write of the whole list.
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver (no CGO)

	"github.com/inkvoice/inkvoice/internal/models"
	"github.com/inkvoice/inkvoice/internal/storage"
)

// savedInvoicesSlot is the single named slot holding the archive.
const savedInvoicesSlot = "saved_invoices"

// Ensure SQLiteStore implements storage.Store
var _ storage.Store = (*SQLiteStore)(nil)

// SQLiteStore implements storage.Store using SQLite.
type SQLiteStore struct {
	db *sql.DB
}

// New creates a new SQLiteStore with the given database path.
// It creates the parent directories and runs migrations automatically.
func New(dbPath string) (*SQLiteStore, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := runMigrations(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// List returns all saved invoices in insertion order, oldest first.
func (s *SQLiteStore) List(ctx context.Context) ([]models.SavedInvoice, error) {
	payload, err := s.readSlot(ctx, s.db)
	if err != nil {
		return nil, fmt.Errorf("failed to read saved invoices: %w", err)
	}
	return decodeRecords(payload), nil
}

// Append adds a record to the end of the stored list.
func (s *SQLiteStore) Append(ctx context.Context, rec models.SavedInvoice) error {
	return s.modify(ctx, func(records []models.SavedInvoice) ([]models.SavedInvoice, bool) {
		return append(records, rec), true
	})
}

// Delete removes the record with the given id; unknown ids are a no-op.
func (s *SQLiteStore) Delete(ctx context.Context, id string) error {
	return s.modify(ctx, func(records []models.SavedInvoice) ([]models.SavedInvoice, bool) {
		kept := slices.DeleteFunc(records, func(r models.SavedInvoice) bool {
			return r.ID == id
		})
		return kept, len(kept) != len(records)
	})
}

// modify runs one read-modify-write cycle on the slot inside a transaction.
// The update function returns the new list and whether anything changed;
// an unchanged list skips the write. On any failure the transaction rolls
// back, so the persisted list never diverges from what was last committed.
func (s *SQLiteStore) modify(ctx context.Context, update func([]models.SavedInvoice) ([]models.SavedInvoice, bool)) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	payload, err := s.readSlot(ctx, tx)
	if err != nil {
		return fmt.Errorf("failed to read saved invoices: %w", err)
	}

	records, changed := update(decodeRecords(payload))
	if !changed {
		return nil
	}

	data, err := json.Marshal(records)
	if err != nil {
		return fmt.Errorf("failed to serialize saved invoices: %w", err)
	}

	_, err = tx.ExecContext(ctx,
		`INSERT INTO slots (name, payload, updated_at) VALUES (?, ?, ?)
		 ON CONFLICT(name) DO UPDATE SET payload = excluded.payload, updated_at = excluded.updated_at`,
		savedInvoicesSlot, string(data), time.Now().Unix(),
	)
	if err != nil {
		return fmt.Errorf("failed to write saved invoices: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// querier is satisfied by both *sql.DB and *sql.Tx.
type querier interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// readSlot returns the raw slot payload, or "" if the slot does not exist.
func (s *SQLiteStore) readSlot(ctx context.Context, q querier) (string, error) {
	var payload string
	err := q.QueryRowContext(ctx,
		"SELECT payload FROM slots WHERE name = ?", savedInvoicesSlot,
	).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return payload, nil
}

// decodeRecords deserializes the stored list. An absent or corrupt payload
// is treated as "no data", not as a fatal error, so a damaged slot degrades
// to an empty archive instead of wedging the whole app.
func decodeRecords(payload string) []models.SavedInvoice {
	if payload == "" {
		return nil
	}
	var records []models.SavedInvoice
	if err := json.Unmarshal([]byte(payload), &records); err != nil {
		slog.Warn("Discarding corrupt saved-invoice payload", "error", err)
		return nil
	}
	return records
}
