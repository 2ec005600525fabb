// Package calculator derives invoice totals from model state.
//
// Compute is a pure function: it is re-evaluated on demand, keeps no state,
// and is safe to invoke repeatedly. Results are unrounded; rounding to two
// decimals happens only at display and export boundaries (pkg/money).
package calculator

import "github.com/inkvoice/inkvoice/internal/models"

// Totals holds the derived monetary values of an invoice.
type Totals struct {
	Subtotal  float64 `json:"subtotal"`
	TaxAmount float64 `json:"taxAmount"`
	Total     float64 `json:"total"`
}

// Compute derives subtotal, tax and total:
//
//	subtotal  = Σ quantity × price
//	taxAmount = subtotal × taxRate/100
//	total     = subtotal + taxAmount + fees − discount
//
// Negative quantities or prices are not rejected here; live editing needs a
// mathematically consistent (possibly negative) result even on transiently
// invalid input. Validation gates export, not arithmetic.
func Compute(inv models.Invoice) Totals {
	var subtotal float64
	for _, item := range inv.Items {
		subtotal += item.Amount()
	}

	taxAmount := subtotal * (float64(inv.TaxRate) / 100)

	return Totals{
		Subtotal:  subtotal,
		TaxAmount: taxAmount,
		Total:     subtotal + taxAmount + float64(inv.Fees) - float64(inv.Discount),
	}
}
