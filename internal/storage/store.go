// Package storage provides abstractions for persistent data storage.
package storage

import (
	"context"

	"github.com/inkvoice/inkvoice/internal/models"
)

// Store defines the interface for the saved-invoice archive.
// This abstraction allows swapping storage backends without changing the
// service layer.
//
// The archive behaves as one named slot holding the full ordered list of
// SavedInvoice records as a single atomic value: every mutation is a
// read-modify-write of the whole list. A single active writer is assumed;
// there is no optimistic concurrency control.
type Store interface {
	// List returns all saved records in insertion order, oldest first.
	// An absent or corrupt stored payload reads as an empty list, never
	// as an error.
	List(ctx context.Context) ([]models.SavedInvoice, error)

	// Append adds a record to the end of the list and persists the full
	// list. It never mutates an existing record. A failed write leaves
	// the persisted list exactly as it was.
	Append(ctx context.Context, rec models.SavedInvoice) error

	// Delete removes the record with the given id and persists the
	// updated list. An unknown id is a no-op, not an error.
	Delete(ctx context.Context, id string) error

	// Close releases any resources held by the store.
	Close() error
}
