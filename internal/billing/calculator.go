// Package billing turns catalogue selections into line items and computes
// bill totals.
//
// Discount policy: the discount percentage is taken from the subtotal, not
// from the GST-inclusive amount.
//
//	final = subtotal + subtotal*gst/100 - subtotal*discount/100
//
// Every consumer (API responses, PDF invoices, share links) obtains totals
// from ComputeTotals so the figures never disagree.
package billing

import (
	"strconv"
	"strings"

	"prodexa/internal/model"

	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// Percentage input limits.
const (
	maxPercentDigits = 6
	maxPercentScale  = 4
)

// Catalog resolves products by name.
type Catalog interface {
	Lookup(name string) (model.Product, bool)
}

// NewLineItem builds a line item for qty units of p, freezing the current price.
func NewLineItem(p model.Product, qty int) model.LineItem {
	return model.LineItem{
		ProductName: p.Name,
		Quantity:    qty,
		UnitPrice:   p.Price,
		LineTotal:   p.Price.Mul(decimal.NewFromInt(int64(qty))).Round(2),
	}
}

// ComputeTotals sums the line items and applies GST and discount. Amounts are
// not rounded; percentages are used as given, without range checks.
func ComputeTotals(items []model.LineItem, gstPercent, discountPercent decimal.Decimal) model.Totals {
	subtotal := decimal.Zero
	for _, item := range items {
		subtotal = subtotal.Add(item.LineTotal)
	}

	gst := subtotal.Mul(gstPercent).Div(hundred)
	discount := subtotal.Mul(discountPercent).Div(hundred)

	return model.Totals{
		Subtotal:       subtotal,
		GSTAmount:      gst,
		DiscountAmount: discount,
		FinalAmount:    subtotal.Add(gst).Sub(discount),
	}
}

// ParseQuantity parses user input as a positive whole number.
func ParseQuantity(s string) (int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, model.ErrInvalidQuantity
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return 0, model.ErrInvalidQuantity
		}
	}

	qty, err := strconv.Atoi(s)
	if err != nil || qty <= 0 {
		return 0, model.ErrInvalidQuantity
	}
	return qty, nil
}

// ParsePercent parses a GST or discount percentage. Blank input means zero.
// Negative or non-numeric input is rejected; values above 100 are allowed.
func ParsePercent(s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(s), "%"))
	if s == "" {
		return decimal.Zero, nil
	}

	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, model.Validation("percentage %q is not a number", s)
	}
	if d.IsNegative() {
		return decimal.Zero, model.Validation("percentage must not be negative")
	}
	if !model.WithinDigits(d, maxPercentDigits, maxPercentScale) {
		return decimal.Zero, model.Validation("percentage %q is out of range", s)
	}
	return d, nil
}
