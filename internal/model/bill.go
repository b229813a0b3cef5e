package model

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// LineItem is one product and quantity entry on a bill. The unit price is
// frozen at the moment the item is added.
type LineItem struct {
	ProductName string          `json:"productName"`
	Quantity    int             `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unitPrice"`
	LineTotal   decimal.Decimal `json:"lineTotal"`
}

// Totals holds the computed bill amounts. Values are kept at full precision;
// call Rounded before displaying or exporting them.
type Totals struct {
	Subtotal       decimal.Decimal `json:"subtotal"`
	GSTAmount      decimal.Decimal `json:"gstAmount"`
	DiscountAmount decimal.Decimal `json:"discountAmount"`
	FinalAmount    decimal.Decimal `json:"finalAmount"`
}

// Rounded returns a copy with every amount rounded to two decimal places.
func (t Totals) Rounded() Totals {
	return Totals{
		Subtotal:       t.Subtotal.Round(2),
		GSTAmount:      t.GSTAmount.Round(2),
		DiscountAmount: t.DiscountAmount.Round(2),
		FinalAmount:    t.FinalAmount.Round(2),
	}
}

// Money formats an amount with exactly two decimal places.
func Money(d decimal.Decimal) string {
	return d.StringFixed(2)
}

// NumberText is request input that may arrive as a JSON string or number.
// It keeps the raw text so parsing rules stay in one place.
type NumberText string

// UnmarshalJSON accepts "2", 2 and null.
func (n *NumberText) UnmarshalJSON(data []byte) error {
	s := strings.TrimSpace(string(data))
	switch {
	case s == "null":
		*n = ""
	case strings.HasPrefix(s, `"`):
		var str string
		if err := json.Unmarshal(data, &str); err != nil {
			return err
		}
		*n = NumberText(str)
	default:
		var num json.Number
		if err := json.Unmarshal(data, &num); err != nil {
			return fmt.Errorf("expected a number or string, got %s", s)
		}
		*n = NumberText(num.String())
	}
	return nil
}

// OpenBillRequest starts a new bill.
type OpenBillRequest struct {
	CustomerName    string `json:"customerName"`
	CustomerContact string `json:"customerContact"`
}

// AddItemRequest adds a product to a bill.
type AddItemRequest struct {
	ProductName string     `json:"productName"`
	Quantity    NumberText `json:"quantity"`
}

// RatesRequest sets the GST and discount percentages of a bill.
type RatesRequest struct {
	GSTPercent      NumberText `json:"gstPercent"`
	DiscountPercent NumberText `json:"discountPercent"`
}

// InvoiceResult describes a generated invoice.
type InvoiceResult struct {
	BillID    string `json:"billId"`
	Number    string `json:"invoiceNumber"`
	Path      string `json:"path"`
	Location  string `json:"location"`
	Totals    Totals `json:"totals"`
	ShareLink string `json:"shareLink,omitempty"`
}

// ShareResponse carries a click-to-chat link.
type ShareResponse struct {
	Link string `json:"link"`
}
