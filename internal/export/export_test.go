package export

import (
	"errors"
	"math"
	"slices"
	"strings"
	"testing"

	"github.com/inkvoice/inkvoice/internal/models"
)

func readyInvoice() models.Invoice {
	return models.Invoice{
		Sender: models.Party{
			Name: "Acme Co", Address: "1 Main St", Phone: "555-0100", Email: "billing@acme.test",
		},
		Receiver: models.Party{
			Name: "Bob Buyer", Address: "2 Side St", Phone: "555-0200", Email: "bob@buyer.test",
		},
		Info:     models.InvoiceInfo{Number: "INV-001", Date: "2025-01-15", Due: "2025-02-15"},
		Items:    []models.LineItem{{Name: "Widget", Quantity: 2, Price: 10}},
		Currency: "$",
		TaxRate:  5,
	}
}

func TestPrepareReady(t *testing.T) {
	ri, err := Prepare(readyInvoice())
	if err != nil {
		t.Fatalf("Prepare failed: %v", err)
	}

	if math.Abs(ri.Totals.Subtotal-20) > 1e-9 ||
		math.Abs(ri.Totals.TaxAmount-1) > 1e-9 ||
		math.Abs(ri.Totals.Total-21) > 1e-9 {
		t.Errorf("unexpected totals: %+v", ri.Totals)
	}
	if ri.Invoice.Info.Number != "INV-001" {
		t.Errorf("invoice not carried through: %+v", ri.Invoice.Info)
	}
}

func TestPrepareBlocked(t *testing.T) {
	inv := readyInvoice()
	inv.Sender.Name = ""
	inv.Items[0].Name = " "

	ri, err := Prepare(inv)
	if ri != nil {
		t.Fatal("blocked export must not yield a renderable invoice")
	}

	var vf *ValidationFailure
	if !errors.As(err, &vf) {
		t.Fatalf("expected *ValidationFailure, got %T: %v", err, err)
	}
	want := []string{"Sender Name", "Item 1 Name"}
	if !slices.Equal(vf.Missing, want) {
		t.Errorf("Missing = %v, want %v", vf.Missing, want)
	}
	if !strings.Contains(vf.Error(), "Sender Name") {
		t.Errorf("error text should carry the labels: %q", vf.Error())
	}
}

func TestPrepareIsStateless(t *testing.T) {
	inv := readyInvoice()
	inv.Sender.Name = ""

	if _, err := Prepare(inv); err == nil {
		t.Fatal("expected blocked attempt")
	}

	// Fixing the field and retrying revalidates from scratch.
	inv.Sender.Name = "Acme Co"
	if _, err := Prepare(inv); err != nil {
		t.Fatalf("retry after fix should succeed, got %v", err)
	}
}

func TestFilename(t *testing.T) {
	tests := []struct {
		name   string
		number string
		want   string
	}{
		{"with number", "INV-001", "Invoice-INV-001.pdf"},
		{"empty number", "", "Invoice-Generated.pdf"},
		{"whitespace number", "  ", "Invoice-Generated.pdf"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			inv := readyInvoice()
			inv.Info.Number = tt.number
			if got := Filename(inv); got != tt.want {
				t.Errorf("Filename = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestShareMessage(t *testing.T) {
	ri, err := Prepare(readyInvoice())
	if err != nil {
		t.Fatalf("Prepare failed: %v", err)
	}

	want := "Invoice from Acme Co to Bob Buyer for $21.00."
	if got := ShareMessage(*ri); got != want {
		t.Errorf("ShareMessage = %q, want %q", got, want)
	}
}

func TestShareLink(t *testing.T) {
	ri, _ := Prepare(readyInvoice())

	link := ShareLink(*ri)
	if !strings.HasPrefix(link, "https://wa.me/?text=") {
		t.Fatalf("unexpected link prefix: %q", link)
	}
	if strings.ContainsAny(strings.TrimPrefix(link, "https://wa.me/?text="), " $") {
		t.Errorf("message must be URL-encoded: %q", link)
	}
}
