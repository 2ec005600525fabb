// Package render produces the printable PDF document for an invoice.
//
// The renderer consumes a RenderableInvoice and only ever prints the totals
// it was handed; it never recomputes them. A render failure is reported to
// the caller and leaves the invoice untouched.
package render

import (
	"bytes"
	"fmt"
	"io"
	"strconv"

	"github.com/jung-kurt/gofpdf"

	"github.com/inkvoice/inkvoice/internal/export"
	"github.com/inkvoice/inkvoice/internal/imageio"
	"github.com/inkvoice/inkvoice/internal/models"
	"github.com/inkvoice/inkvoice/pkg/money"
)

// imageTypes maps sniffed content types to gofpdf image type tags.
var imageTypes = map[string]string{
	"image/png":  "PNG",
	"image/jpeg": "JPG",
	"image/gif":  "GIF",
}

// PDF writes the invoice document to w.
func PDF(ri export.RenderableInvoice, w io.Writer) error {
	inv := ri.Invoice

	pdf := gofpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.SetMargins(12, 12, 12)
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 22)
	pdf.CellFormat(0, 10, "INVOICE", "", 1, "L", false, 0, "")

	drawLogo(pdf, inv.Logo)

	partyBlock(pdf, tr, "Bill From:", inv.Sender)
	pdf.Ln(4)

	// Receiver on the left, invoice identity on the right. The table below
	// starts after whichever column runs longer.
	top := pdf.GetY()
	partyBlock(pdf, tr, "Bill To:", inv.Receiver)
	bottom := pdf.GetY()
	pdf.SetXY(110, top)
	infoLines(pdf, tr, inv.Info)
	if bottom > pdf.GetY() {
		pdf.SetY(bottom)
	}
	pdf.Ln(8)

	itemsTable(pdf, tr, inv)
	totalsBlock(pdf, tr, ri)

	if inv.Terms != "" {
		pdf.Ln(6)
		pdf.SetFont("Arial", "B", 11)
		pdf.CellFormat(0, 6, "Terms:", "", 1, "L", false, 0, "")
		pdf.SetFont("Arial", "", 10)
		pdf.MultiCell(0, 5, tr(inv.Terms), "", "L", false)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return fmt.Errorf("failed to render invoice pdf: %w", err)
	}
	if _, err := w.Write(buf.Bytes()); err != nil {
		return fmt.Errorf("failed to write invoice pdf: %w", err)
	}
	return nil
}

// drawLogo embeds the data-URI logo at the top right. An absent or
// undecodable logo is simply skipped; the document renders without it.
func drawLogo(pdf *gofpdf.Fpdf, logo string) {
	if logo == "" {
		return
	}
	mime, data, err := imageio.DecodeDataURI(logo)
	if err != nil {
		return
	}
	typ, ok := imageTypes[mime]
	if !ok {
		return
	}
	opts := gofpdf.ImageOptions{ImageType: typ, ReadDpi: true}
	if pdf.RegisterImageOptionsReader("logo", opts, bytes.NewReader(data)) == nil {
		pdf.ClearError()
		return
	}
	pdf.ImageOptions("logo", 160, 14, 36, 0, false, opts, 0, "")
}

func partyBlock(pdf *gofpdf.Fpdf, tr func(string) string, heading string, p models.Party) {
	pdf.SetFont("Arial", "B", 11)
	pdf.CellFormat(0, 6, heading, "", 1, "L", false, 0, "")
	pdf.SetFont("Arial", "", 10)
	for _, line := range []string{p.Name, p.Address, p.Phone, p.Email} {
		if line != "" {
			pdf.CellFormat(0, 5, tr(line), "", 1, "L", false, 0, "")
		}
	}
}

func infoLines(pdf *gofpdf.Fpdf, tr func(string) string, info models.InvoiceInfo) {
	pdf.SetFont("Arial", "", 10)
	x := pdf.GetX()
	for _, line := range []string{
		"Invoice Number: " + info.Number,
		"Invoice Date: " + info.Date,
		"Due Date: " + info.Due,
	} {
		pdf.SetX(x)
		pdf.CellFormat(0, 5, tr(line), "", 1, "L", false, 0, "")
	}
}

func itemsTable(pdf *gofpdf.Fpdf, tr func(string) string, inv models.Invoice) {
	const (
		nameW = 86
		qtyW  = 24
		colW  = 38
	)

	pdf.SetFont("Arial", "B", 10)
	pdf.SetFillColor(249, 115, 22)
	pdf.SetTextColor(255, 255, 255)
	pdf.CellFormat(nameW, 7, "Item", "1", 0, "L", true, 0, "")
	pdf.CellFormat(qtyW, 7, "Qty", "1", 0, "L", true, 0, "")
	pdf.CellFormat(colW, 7, "Price", "1", 0, "L", true, 0, "")
	pdf.CellFormat(colW, 7, "Amount", "1", 1, "L", true, 0, "")

	pdf.SetFont("Arial", "", 10)
	pdf.SetTextColor(0, 0, 0)
	for _, item := range inv.Items {
		pdf.CellFormat(nameW, 6, tr(item.Name), "1", 0, "L", false, 0, "")
		pdf.CellFormat(qtyW, 6, formatQuantity(float64(item.Quantity)), "1", 0, "L", false, 0, "")
		pdf.CellFormat(colW, 6, tr(money.Display(inv.Currency, float64(item.Price))), "1", 0, "L", false, 0, "")
		pdf.CellFormat(colW, 6, tr(money.Display(inv.Currency, item.Amount())), "1", 1, "L", false, 0, "")
	}
}

func totalsBlock(pdf *gofpdf.Fpdf, tr func(string) string, ri export.RenderableInvoice) {
	inv := ri.Invoice

	pdf.Ln(3)
	row := func(label, value string, bold bool) {
		if bold {
			pdf.SetFont("Arial", "B", 11)
		} else {
			pdf.SetFont("Arial", "", 10)
		}
		pdf.CellFormat(110, 6, "", "", 0, "L", false, 0, "")
		pdf.CellFormat(38, 6, tr(label), "", 0, "L", false, 0, "")
		pdf.CellFormat(38, 6, tr(value), "", 1, "R", false, 0, "")
	}

	row("Subtotal:", money.Display(inv.Currency, ri.Totals.Subtotal), false)
	row(fmt.Sprintf("Tax (%s%%):", formatQuantity(float64(inv.TaxRate))), money.Display(inv.Currency, ri.Totals.TaxAmount), false)
	row("Fees:", money.Display(inv.Currency, float64(inv.Fees)), false)
	row("Discount:", "-"+money.Display(inv.Currency, float64(inv.Discount)), false)
	row("TOTAL:", money.Display(inv.Currency, ri.Totals.Total), true)
}

// formatQuantity prints quantities and rates without trailing zeros.
func formatQuantity(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
