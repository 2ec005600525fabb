// Package models defines the core domain models for Inkvoice.
//
// # Models
//
//   - Invoice: the root aggregate describing one billable document
//   - Party: sender or receiver contact details
//   - LineItem: one billable row (name × quantity × unit price)
//   - InvoiceInfo: invoice number and dates
//   - SavedInvoice: an immutable, identified, timestamped snapshot of an
//     Invoice held in durable storage
//
// # Design Principles
//
//  1. **Whole-field replacement**: all mutation replaces whole fields, which
//     keeps the model trivially diffable and serializable.
//  2. **Derived values are never stored**: a line item's amount and the
//     invoice totals are always recomputed (see internal/calculator) so
//     stored data can never drift from its inputs.
//  3. **No NaN**: numeric fields use the Number type, which coerces any
//     unparseable input to zero at the JSON boundary. Calculations never
//     need defensive parsing.
//  4. **Frozen wire schema**: JSON field names match the persisted
//     SavedInvoice array schema and must not change meaning. New optional
//     fields may be added, existing names and types must not.
package models
