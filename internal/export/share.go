package export

import (
	"fmt"
	"net/url"
	"strings"

	"prodexa/internal/model"
)

const whatsAppBase = "https://wa.me/"

// ShareMessage renders a plain-text invoice summary.
func ShareMessage(inv Invoice) string {
	totals := inv.Totals()

	var b strings.Builder
	fmt.Fprintf(&b, "Invoice %s from %s\n", inv.Number, inv.Shop.Name)
	fmt.Fprintf(&b, "Customer: %s\n", inv.customerLabel())
	fmt.Fprintf(&b, "Date: %s\n\n", inv.Date.Format("02-01-2006"))
	for _, item := range inv.Items {
		fmt.Fprintf(&b, "%s x %d = %s\n", item.ProductName, item.Quantity, rupees(item.LineTotal))
	}
	fmt.Fprintf(&b, "\nSubtotal: %s\n", rupees(totals.Subtotal))
	fmt.Fprintf(&b, "GST (%s): %s\n", percentLabel(inv.GSTPercent), rupees(totals.GSTAmount))
	fmt.Fprintf(&b, "Discount (%s): %s\n", percentLabel(inv.DiscountPercent), rupees(totals.DiscountAmount))
	fmt.Fprintf(&b, "Grand Total: %s", rupees(totals.FinalAmount))
	return b.String()
}

// ShareLink builds a WhatsApp click-to-chat link carrying the invoice summary
// for the customer's phone number.
func ShareLink(inv Invoice) (string, error) {
	if len(inv.Items) == 0 {
		return "", model.ErrEmptyBill
	}

	phone := digitsOnly(inv.CustomerContact)
	if phone == "" {
		return "", model.Validation("customer contact has no phone number")
	}

	text := strings.ReplaceAll(url.QueryEscape(ShareMessage(inv)), "+", "%20")
	return whatsAppBase + phone + "?text=" + text, nil
}

func digitsOnly(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
