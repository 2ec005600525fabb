// Package validation implements the pre-export completeness check.
package validation

import (
	"fmt"
	"strings"

	"github.com/inkvoice/inkvoice/internal/models"
)

// MissingFields returns the human-readable labels of every required field
// that is empty after trimming whitespace, in a fixed order: sender block,
// receiver block, invoice info, then each line item's name in list order.
// An empty result means export may proceed.
//
// The function has no side effects; the export coordinator surfaces the
// result as one aggregated message.
func MissingFields(inv models.Invoice) []string {
	var missing []string
	require := func(label, value string) {
		if strings.TrimSpace(value) == "" {
			missing = append(missing, label)
		}
	}

	require("Sender Name", inv.Sender.Name)
	require("Sender Address", inv.Sender.Address)
	require("Sender Phone", inv.Sender.Phone)
	require("Sender Email", inv.Sender.Email)

	require("Receiver Name", inv.Receiver.Name)
	require("Receiver Address", inv.Receiver.Address)
	require("Receiver Phone", inv.Receiver.Phone)
	require("Receiver Email", inv.Receiver.Email)

	require("Invoice Number", inv.Info.Number)
	require("Invoice Date", inv.Info.Date)
	require("Due Date", inv.Info.Due)

	for i, item := range inv.Items {
		require(fmt.Sprintf("Item %d Name", i+1), item.Name)
	}

	return missing
}
