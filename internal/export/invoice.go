// Package export renders bills and the product catalogue into documents:
// PDF invoices, share links, spreadsheets, CSV files and HTML charts.
package export

import (
	"strings"
	"time"
	"unicode"

	"prodexa/internal/billing"
	"prodexa/internal/model"

	"github.com/shopspring/decimal"
)

// Shop identifies the seller printed on invoices.
type Shop struct {
	Name    string
	Address string
	Phone   string
}

// Invoice is the printable form of a bill.
type Invoice struct {
	Number          string
	Shop            Shop
	CustomerName    string
	CustomerContact string
	Date            time.Time
	Items           []model.LineItem
	GSTPercent      decimal.Decimal
	DiscountPercent decimal.Decimal
}

// InvoiceFromBill copies the bill contents into an invoice dated at.
func InvoiceFromBill(b *billing.Bill, shop Shop, at time.Time) Invoice {
	return Invoice{
		Number:          strings.ToUpper(b.ID.String()[:8]),
		Shop:            shop,
		CustomerName:    b.CustomerName,
		CustomerContact: b.CustomerContact,
		Date:            at,
		Items:           b.Items(),
		GSTPercent:      b.GSTPercent,
		DiscountPercent: b.DiscountPercent,
	}
}

// Totals returns the rounded invoice totals.
func (inv Invoice) Totals() model.Totals {
	return billing.ComputeTotals(inv.Items, inv.GSTPercent, inv.DiscountPercent).Rounded()
}

func (inv Invoice) customerLabel() string {
	if name := strings.TrimSpace(inv.CustomerName); name != "" {
		return name
	}
	return "Customer"
}

// InvoiceFileName returns <customer>_<YYYYmmdd_HHMMSS>_invoice.pdf with the
// customer name reduced to a safe file name.
func InvoiceFileName(customer string, at time.Time) string {
	var b strings.Builder
	for _, r := range strings.TrimSpace(customer) {
		switch {
		case unicode.IsLetter(r), unicode.IsDigit(r), r == '-':
			b.WriteRune(r)
		default:
			b.WriteRune('_')
		}
	}
	name := strings.Trim(b.String(), "_")
	if name == "" {
		name = "Customer"
	}
	return name + "_" + at.Format("20060102_150405") + "_invoice.pdf"
}

func percentLabel(d decimal.Decimal) string {
	return d.String() + "%"
}

func rupees(d decimal.Decimal) string {
	return "Rs. " + model.Money(d)
}
