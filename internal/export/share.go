package export

import (
	"fmt"
	"net/url"

	"github.com/inkvoice/inkvoice/pkg/money"
)

// ShareMessage builds the pre-filled share text for a finished invoice.
func ShareMessage(ri RenderableInvoice) string {
	return fmt.Sprintf("Invoice from %s to %s for %s.",
		ri.Invoice.Sender.Name,
		ri.Invoice.Receiver.Name,
		money.Display(ri.Invoice.Currency, ri.Totals.Total),
	)
}

// ShareLink wraps the share message into a WhatsApp deep link. Purely a
// formatting function, no state.
func ShareLink(ri RenderableInvoice) string {
	return "https://wa.me/?text=" + url.QueryEscape(ShareMessage(ri))
}
