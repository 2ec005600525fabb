// Package service implements the application operations on top of the
// storage layer.
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/inkvoice/inkvoice/internal/models"
	"github.com/inkvoice/inkvoice/internal/storage"
)

// ErrNotFound is returned when no saved invoice matches the requested id.
var ErrNotFound = errors.New("saved invoice not found")

// InvoiceService owns the saved-invoice archive. Records in the archive are
// immutable snapshots; the service only ever appends, deletes, or hands out
// independent copies.
type InvoiceService struct {
	store storage.Store
}

// NewInvoiceService creates a new InvoiceService with the given storage backend.
func NewInvoiceService(store storage.Store) *InvoiceService {
	return &InvoiceService{store: store}
}

// Save snapshots the invoice into the archive and returns the new record.
// The id is a ULID derived from the save time, so ids sort by creation;
// collisions are negligible for a single writer.
func (s *InvoiceService) Save(ctx context.Context, inv models.Invoice) (models.SavedInvoice, error) {
	now := time.Now()
	rec := models.SavedInvoice{
		Invoice: inv.Clone(),
		ID:      ulid.MustNew(ulid.Timestamp(now), ulid.DefaultEntropy()).String(),
		SavedAt: now.Unix(),
	}

	if err := s.store.Append(ctx, rec); err != nil {
		return models.SavedInvoice{}, fmt.Errorf("failed to save invoice: %w", err)
	}

	slog.Info("Invoice saved", "id", rec.ID, "number", rec.Info.Number)
	return rec, nil
}

// List returns all saved records in insertion order, oldest first.
func (s *InvoiceService) List(ctx context.Context) ([]models.SavedInvoice, error) {
	records, err := s.store.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list invoices: %w", err)
	}
	return records, nil
}

// Load returns an independent editable copy of the record's invoice fields.
// The stored snapshot is never handed out by reference and is not locked.
func (s *InvoiceService) Load(ctx context.Context, id string) (models.Invoice, error) {
	records, err := s.store.List(ctx)
	if err != nil {
		return models.Invoice{}, fmt.Errorf("failed to load invoice: %w", err)
	}
	for _, rec := range records {
		if rec.ID == id {
			return rec.Invoice.Clone(), nil
		}
	}
	return models.Invoice{}, fmt.Errorf("%w: %s", ErrNotFound, id)
}

// Delete removes the record with the given id. An unknown id is a no-op.
func (s *InvoiceService) Delete(ctx context.Context, id string) error {
	if err := s.store.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete invoice: %w", err)
	}
	slog.Info("Invoice deleted", "id", id)
	return nil
}
