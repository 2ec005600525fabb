package models

import "slices"

// Currencies is the fixed set of supported display symbols.
var Currencies = []string{"$", "₹", "€", "£", "¥"}

// Party holds the contact details of the billing or billed party.
// All fields are optional while editing and required at export time.
type Party struct {
	Name    string `json:"name"`
	Address string `json:"address"`
	Phone   string `json:"phone"`
	Email   string `json:"email"`
}

// LineItem is a single billable row on an invoice.
// Its amount is derived, never stored.
type LineItem struct {
	Name     string `json:"name"`
	Quantity Number `json:"quantity"`
	Price    Number `json:"price"`
}

// Amount returns quantity × unit price, unrounded.
func (li LineItem) Amount() float64 {
	return float64(li.Quantity) * float64(li.Price)
}

// InvoiceInfo identifies an invoice and its calendar dates.
// Dates are ISO-8601 date strings (YYYY-MM-DD).
type InvoiceInfo struct {
	Number string `json:"number"`
	Date   string `json:"date"`
	Due    string `json:"due"`
}

// Invoice is the root aggregate describing one billable document.
//
// Items are in display order and are never reordered automatically.
// Logo is an optional self-contained data-URI image reference; the raw
// file is never held here.
type Invoice struct {
	Sender   Party       `json:"sender"`
	Receiver Party       `json:"receiver"`
	Info     InvoiceInfo `json:"invoiceInfo"`
	Items    []LineItem  `json:"items"`
	Terms    string      `json:"terms"`
	Currency string      `json:"currency"`
	Logo     string      `json:"logo,omitempty"`
	TaxRate  Number      `json:"taxRate"`
	Fees     Number      `json:"fees"`
	Discount Number      `json:"discount"`
}

// Default constructs the editing seed: one placeholder line item, empty
// parties and info, and the configured default currency and tax rate.
func Default(currency string, taxRate float64) Invoice {
	return Invoice{
		Items:    []LineItem{{Name: "Item 1", Quantity: 1, Price: 0}},
		Currency: NormalizeCurrency(currency, "$"),
		TaxRate:  Number(taxRate),
	}
}

// NormalizeCurrency returns symbol if it is one of the supported
// Currencies, otherwise fallback.
func NormalizeCurrency(symbol, fallback string) string {
	if slices.Contains(Currencies, symbol) {
		return symbol
	}
	return fallback
}

// EnsureItems re-seeds the placeholder row after the last item is removed.
// The item list may only be empty transiently: a blank row keeps live totals
// meaningful and makes export validation fail on the blank item name rather
// than silently passing an itemless invoice.
func (inv *Invoice) EnsureItems() {
	if len(inv.Items) == 0 {
		inv.Items = []LineItem{{Name: "", Quantity: 1, Price: 0}}
	}
}

// Clone returns a deep copy. Callers that hand invoices across ownership
// boundaries (loading a saved record into an editor) must clone so the
// stored snapshot stays untouched.
func (inv Invoice) Clone() Invoice {
	out := inv
	out.Items = slices.Clone(inv.Items)
	return out
}

// SavedInvoice is an immutable point-in-time snapshot of an Invoice.
// The embedded Invoice marshals flat, so the persisted record is one
// Invoice+id+savedAt JSON object.
type SavedInvoice struct {
	Invoice
	// ID is a ULID derived from the save time, so records sort by creation.
	ID string `json:"id"`
	// SavedAt is the Unix timestamp of the save.
	SavedAt int64 `json:"savedAt"`
}
