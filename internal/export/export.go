// Package export gates invoice export on validation and packages the model
// with its derived totals for rendering.
//
// Each export attempt revalidates from scratch against current model state;
// nothing is retained between attempts. The coordinator performs no layout,
// file generation or share action itself.
package export

import (
	"strings"

	"github.com/inkvoice/inkvoice/internal/calculator"
	"github.com/inkvoice/inkvoice/internal/models"
	"github.com/inkvoice/inkvoice/internal/validation"
)

// RenderableInvoice pairs an invoice with its computed totals. Renderers
// consume this as-is and never recompute totals independently, so there is
// exactly one source of truth for the numbers on the page.
type RenderableInvoice struct {
	Invoice models.Invoice    `json:"invoice"`
	Totals  calculator.Totals `json:"totals"`
}

// ValidationFailure blocks an export attempt. Missing carries the full
// ordered list of missing-field labels; callers present all of them at
// once, not one at a time.
type ValidationFailure struct {
	Missing []string
}

func (e *ValidationFailure) Error() string {
	return "missing required fields: " + strings.Join(e.Missing, ", ")
}

// Prepare validates the invoice and, on success, returns it paired with its
// computed totals. On failure it returns a *ValidationFailure; the model is
// untouched either way.
func Prepare(inv models.Invoice) (*RenderableInvoice, error) {
	if missing := validation.MissingFields(inv); len(missing) > 0 {
		return nil, &ValidationFailure{Missing: missing}
	}
	return &RenderableInvoice{
		Invoice: inv,
		Totals:  calculator.Compute(inv),
	}, nil
}

// Filename derives the export document name: Invoice-<number>.pdf, falling
// back to "Generated" when the invoice has no number yet.
func Filename(inv models.Invoice) string {
	number := strings.TrimSpace(inv.Info.Number)
	if number == "" {
		number = "Generated"
	}
	return "Invoice-" + number + ".pdf"
}
