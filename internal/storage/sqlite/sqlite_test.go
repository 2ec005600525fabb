package sqlite

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/inkvoice/inkvoice/internal/models"
)

func newTestStore(t *testing.T) (*SQLiteStore, string) {
	t.Helper()

	tempDir, err := os.MkdirTemp("", "inkvoice-test-*")
	if err != nil {
		t.Fatalf("Failed to create temp dir: %v", err)
	}
	t.Cleanup(func() { os.RemoveAll(tempDir) })

	dbPath := filepath.Join(tempDir, "test.db")
	store, err := New(dbPath)
	if err != nil {
		t.Fatalf("Failed to create store: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	return store, dbPath
}

func testRecord(id, number string) models.SavedInvoice {
	inv := models.Default("$", 5)
	inv.Sender.Name = "Acme Co"
	inv.Info.Number = number
	inv.Items = []models.LineItem{{Name: "Widget", Quantity: 2, Price: 10}}
	return models.SavedInvoice{Invoice: inv, ID: id, SavedAt: time.Now().Unix()}
}

func TestSQLiteStore(t *testing.T) {
	store, dbPath := newTestStore(t)
	ctx := context.Background()

	t.Run("List on fresh store is empty", func(t *testing.T) {
		records, err := store.List(ctx)
		if err != nil {
			t.Fatalf("List failed: %v", err)
		}
		if len(records) != 0 {
			t.Errorf("expected empty archive, got %d records", len(records))
		}
	})

	t.Run("Append then List round-trips fields", func(t *testing.T) {
		rec := testRecord("01A", "INV-001")
		if err := store.Append(ctx, rec); err != nil {
			t.Fatalf("Append failed: %v", err)
		}

		records, err := store.List(ctx)
		if err != nil {
			t.Fatalf("List failed: %v", err)
		}
		if len(records) != 1 {
			t.Fatalf("expected 1 record, got %d", len(records))
		}

		got := records[0]
		if got.ID != rec.ID || got.SavedAt != rec.SavedAt {
			t.Errorf("identity mismatch: got %s/%d, want %s/%d", got.ID, got.SavedAt, rec.ID, rec.SavedAt)
		}
		if got.Sender.Name != "Acme Co" || got.Info.Number != "INV-001" {
			t.Errorf("fields did not round-trip: %+v", got)
		}
		if len(got.Items) != 1 || got.Items[0].Quantity != 2 || got.Items[0].Price != 10 {
			t.Errorf("items did not round-trip: %+v", got.Items)
		}
	})

	t.Run("List preserves insertion order", func(t *testing.T) {
		if err := store.Append(ctx, testRecord("01B", "INV-002")); err != nil {
			t.Fatalf("Append failed: %v", err)
		}
		if err := store.Append(ctx, testRecord("01C", "INV-003")); err != nil {
			t.Fatalf("Append failed: %v", err)
		}

		records, err := store.List(ctx)
		if err != nil {
			t.Fatalf("List failed: %v", err)
		}
		ids := []string{}
		for _, r := range records {
			ids = append(ids, r.ID)
		}
		want := []string{"01A", "01B", "01C"}
		for i, id := range want {
			if ids[i] != id {
				t.Fatalf("order mismatch: got %v, want %v", ids, want)
			}
		}
	})

	t.Run("Delete removes only the matching record", func(t *testing.T) {
		if err := store.Delete(ctx, "01B"); err != nil {
			t.Fatalf("Delete failed: %v", err)
		}

		records, _ := store.List(ctx)
		if len(records) != 2 {
			t.Fatalf("expected 2 records after delete, got %d", len(records))
		}
		for _, r := range records {
			if r.ID == "01B" {
				t.Error("deleted record still present")
			}
		}
	})

	t.Run("Delete of unknown id is a no-op", func(t *testing.T) {
		before, _ := store.List(ctx)
		if err := store.Delete(ctx, "does-not-exist"); err != nil {
			t.Fatalf("Delete of unknown id returned error: %v", err)
		}
		after, _ := store.List(ctx)
		if len(after) != len(before) {
			t.Errorf("list changed from %d to %d records", len(before), len(after))
		}
	})

	t.Run("Archive survives reopen", func(t *testing.T) {
		reopened, err := New(dbPath)
		if err != nil {
			t.Fatalf("reopen failed: %v", err)
		}
		defer reopened.Close()

		records, err := reopened.List(ctx)
		if err != nil {
			t.Fatalf("List after reopen failed: %v", err)
		}
		if len(records) != 2 {
			t.Errorf("expected 2 records after reopen, got %d", len(records))
		}
	})
}

func TestCorruptPayloadReadsAsEmpty(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	_, err := store.db.ExecContext(ctx,
		"INSERT INTO slots (name, payload, updated_at) VALUES (?, ?, ?)",
		savedInvoicesSlot, "{not valid json", time.Now().Unix(),
	)
	if err != nil {
		t.Fatalf("failed to plant corrupt payload: %v", err)
	}

	records, err := store.List(ctx)
	if err != nil {
		t.Fatalf("List over corrupt payload returned error: %v", err)
	}
	if len(records) != 0 {
		t.Errorf("corrupt payload should read as empty, got %d records", len(records))
	}

	// A mutation over a corrupt slot starts from the empty list.
	if err := store.Append(ctx, testRecord("01D", "INV-004")); err != nil {
		t.Fatalf("Append over corrupt payload failed: %v", err)
	}
	records, _ = store.List(ctx)
	if len(records) != 1 || records[0].ID != "01D" {
		t.Errorf("expected archive rebuilt from empty, got %+v", records)
	}
}

func TestDecodeRecords(t *testing.T) {
	tests := []struct {
		name    string
		payload string
		want    int
	}{
		{"empty payload", "", 0},
		{"corrupt payload", "garbage", 0},
		{"empty array", "[]", 0},
		{"one record", `[{"id":"01A","savedAt":1,"items":[]}]`, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := decodeRecords(tt.payload); len(got) != tt.want {
				t.Errorf("decodeRecords(%q) returned %d records, want %d", tt.payload, len(got), tt.want)
			}
		})
	}
}
