package server

import (
	"bytes"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/samber/lo"

	"github.com/inkvoice/inkvoice/internal/calculator"
	"github.com/inkvoice/inkvoice/internal/export"
	"github.com/inkvoice/inkvoice/internal/imageio"
	"github.com/inkvoice/inkvoice/internal/metrics"
	"github.com/inkvoice/inkvoice/internal/models"
	"github.com/inkvoice/inkvoice/internal/render"
	"github.com/inkvoice/inkvoice/internal/service"
	"github.com/inkvoice/inkvoice/internal/validation"
	"github.com/inkvoice/inkvoice/pkg/money"
)

// bindInvoice decodes the request body into an invoice and applies the
// editing-surface invariants: currency normalized to the supported set and
// the placeholder row restored if the item list arrived empty. Numeric
// coercion already happened inside models.Number during decoding.
func (s *Server) bindInvoice(c *gin.Context) (models.Invoice, bool) {
	var inv models.Invoice
	if err := c.ShouldBindJSON(&inv); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid invoice payload"})
		return models.Invoice{}, false
	}
	inv.Currency = models.NormalizeCurrency(inv.Currency, s.cfg.DefaultCurrency)
	inv.EnsureItems()
	return inv, true
}

func (s *Server) handleNewInvoice(c *gin.Context) {
	c.JSON(http.StatusOK, models.Default(s.cfg.DefaultCurrency, s.cfg.DefaultTaxRate))
}

// handleTotals is the live-editing path: totals are re-derived on every
// call, never cached.
func (s *Server) handleTotals(c *gin.Context) {
	inv, ok := s.bindInvoice(c)
	if !ok {
		return
	}

	totals := calculator.Compute(inv)
	c.JSON(http.StatusOK, gin.H{
		"totals": totals,
		"display": gin.H{
			"subtotal":  money.Display(inv.Currency, totals.Subtotal),
			"taxAmount": money.Display(inv.Currency, totals.TaxAmount),
			"total":     money.Display(inv.Currency, totals.Total),
			"amounts": lo.Map(inv.Items, func(item models.LineItem, _ int) string {
				return money.Display(inv.Currency, item.Amount())
			}),
		},
	})
}

func (s *Server) handleValidate(c *gin.Context) {
	inv, ok := s.bindInvoice(c)
	if !ok {
		return
	}

	missing := validation.MissingFields(inv)
	c.JSON(http.StatusOK, gin.H{
		"valid":   len(missing) == 0,
		"missing": missing,
	})
}

func (s *Server) handleExport(c *gin.Context) {
	inv, ok := s.bindInvoice(c)
	if !ok {
		return
	}

	ri, err := export.Prepare(inv)
	if err != nil {
		var vf *export.ValidationFailure
		if errors.As(err, &vf) {
			metrics.Exports.WithLabelValues("blocked").Inc()
			c.JSON(http.StatusUnprocessableEntity, gin.H{
				"error":   "export blocked by validation",
				"missing": vf.Missing,
			})
			return
		}
		metrics.Exports.WithLabelValues("failed").Inc()
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	var buf bytes.Buffer
	if err := render.PDF(*ri, &buf); err != nil {
		metrics.Exports.WithLabelValues("failed").Inc()
		slog.Error("Invoice render failed", "error", err, "number", inv.Info.Number)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to render invoice"})
		return
	}

	metrics.Exports.WithLabelValues("ready").Inc()
	c.Header("Content-Disposition", `attachment; filename="`+export.Filename(inv)+`"`)
	c.Data(http.StatusOK, "application/pdf", buf.Bytes())
}

func (s *Server) handleShare(c *gin.Context) {
	inv, ok := s.bindInvoice(c)
	if !ok {
		return
	}

	ri, err := export.Prepare(inv)
	if err != nil {
		var vf *export.ValidationFailure
		if errors.As(err, &vf) {
			c.JSON(http.StatusUnprocessableEntity, gin.H{
				"error":   "share blocked by validation",
				"missing": vf.Missing,
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": export.ShareMessage(*ri),
		"url":     export.ShareLink(*ri),
	})
}

func (s *Server) handleSave(c *gin.Context) {
	inv, ok := s.bindInvoice(c)
	if !ok {
		return
	}

	rec, err := s.invoices.Save(c.Request.Context(), inv)
	if err != nil {
		// A failed write must never be papered over: the caller is told,
		// and nothing diverges from what is actually persisted.
		slog.Error("Invoice save failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to save invoice"})
		return
	}

	metrics.InvoicesSaved.Inc()
	c.JSON(http.StatusCreated, rec)
}

// savedSummary is the history-list projection of a saved record.
type savedSummary struct {
	ID       string `json:"id"`
	SavedAt  int64  `json:"savedAt"`
	Number   string `json:"number"`
	Receiver string `json:"receiver"`
	Total    string `json:"total"`
}

func (s *Server) handleList(c *gin.Context) {
	records, err := s.invoices.List(c.Request.Context())
	if err != nil {
		slog.Error("Invoice list failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list invoices"})
		return
	}

	summaries := lo.Map(records, func(rec models.SavedInvoice, _ int) savedSummary {
		return savedSummary{
			ID:       rec.ID,
			SavedAt:  rec.SavedAt,
			Number:   rec.Info.Number,
			Receiver: rec.Receiver.Name,
			Total:    money.Display(rec.Currency, calculator.Compute(rec.Invoice).Total),
		}
	})
	c.JSON(http.StatusOK, gin.H{"invoices": summaries})
}

func (s *Server) handleLoad(c *gin.Context) {
	inv, err := s.invoices.Load(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "saved invoice not found"})
			return
		}
		slog.Error("Invoice load failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load invoice"})
		return
	}
	c.JSON(http.StatusOK, inv)
}

func (s *Server) handleDelete(c *gin.Context) {
	if err := s.invoices.Delete(c.Request.Context(), c.Param("id")); err != nil {
		slog.Error("Invoice delete failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete invoice"})
		return
	}
	metrics.InvoicesDeleted.Inc()
	c.Status(http.StatusNoContent)
}

func (s *Server) handleLogoUpload(c *gin.Context) {
	file, _, err := c.Request.FormFile("logo")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing logo file"})
		return
	}
	defer file.Close()

	uri, err := imageio.EncodeDataURI(file)
	if err != nil {
		status := http.StatusBadRequest
		if errors.Is(err, imageio.ErrTooLarge) {
			status = http.StatusRequestEntityTooLarge
		}
		c.JSON(status, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"logo": uri})
}
