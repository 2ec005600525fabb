// Package metrics defines the Prometheus instruments for the invoice engine.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// InvoicesSaved counts successful archive appends.
	InvoicesSaved = promauto.NewCounter(prometheus.CounterOpts{
		Name: "inkvoice_invoices_saved_total",
		Help: "Number of invoices saved to the archive.",
	})

	// InvoicesDeleted counts archive deletions, including no-ops.
	InvoicesDeleted = promauto.NewCounter(prometheus.CounterOpts{
		Name: "inkvoice_invoices_deleted_total",
		Help: "Number of invoice delete requests.",
	})

	// Exports counts export attempts by outcome: ready, blocked or failed.
	Exports = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "inkvoice_exports_total",
		Help: "Number of export attempts by outcome.",
	}, []string{"result"})
)
