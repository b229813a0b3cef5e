package billing

import (
	"time"

	"prodexa/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// State is the bill lifecycle state. Finalized is informational only: a
// finalized bill still accepts new items.
type State string

const (
	StateOpen      State = "OPEN"
	StateFinalized State = "FINALIZED"
)

// Bill accumulates line items for one invoice. A Bill is not safe for
// concurrent use.
type Bill struct {
	ID              uuid.UUID
	CustomerName    string
	CustomerContact string
	GSTPercent      decimal.Decimal
	DiscountPercent decimal.Decimal
	State           State
	CreatedAt       time.Time

	items []model.LineItem
}

// View is a read-only copy of a bill with its rounded totals.
type View struct {
	ID              uuid.UUID        `json:"id"`
	CustomerName    string           `json:"customerName"`
	CustomerContact string           `json:"customerContact"`
	Items           []model.LineItem `json:"items"`
	GSTPercent      decimal.Decimal  `json:"gstPercent"`
	DiscountPercent decimal.Decimal  `json:"discountPercent"`
	State           State            `json:"state"`
	CreatedAt       time.Time        `json:"createdAt"`
	Totals          model.Totals     `json:"totals"`
}

// NewBill creates an empty open bill.
func NewBill(customerName, customerContact string) *Bill {
	return &Bill{
		ID:              uuid.New(),
		CustomerName:    customerName,
		CustomerContact: customerContact,
		GSTPercent:      decimal.Zero,
		DiscountPercent: decimal.Zero,
		State:           StateOpen,
		CreatedAt:       time.Now(),
	}
}

// AddLineItem resolves productName in cat and appends a line item for the
// parsed quantity. On error the bill is left unchanged.
func (b *Bill) AddLineItem(cat Catalog, productName, quantity string) (model.LineItem, error) {
	qty, err := ParseQuantity(quantity)
	if err != nil {
		return model.LineItem{}, err
	}

	product, ok := cat.Lookup(productName)
	if !ok {
		return model.LineItem{}, model.NotFound("product %q not found", productName)
	}

	item := NewLineItem(product, qty)
	b.items = append(b.items, item)
	return item, nil
}

// Items returns a copy of the line items in insertion order.
func (b *Bill) Items() []model.LineItem {
	out := make([]model.LineItem, len(b.items))
	copy(out, b.items)
	return out
}

// SetRates sets the GST and discount percentages.
func (b *Bill) SetRates(gstPercent, discountPercent decimal.Decimal) {
	b.GSTPercent = gstPercent
	b.DiscountPercent = discountPercent
}

// Totals computes the bill totals at full precision.
func (b *Bill) Totals() model.Totals {
	return ComputeTotals(b.items, b.GSTPercent, b.DiscountPercent)
}

// Clear removes every line item.
func (b *Bill) Clear() {
	b.items = nil
}

// Finalize marks the bill finalized and returns its totals. An empty bill
// cannot be finalized.
func (b *Bill) Finalize() (model.Totals, error) {
	if len(b.items) == 0 {
		return model.Totals{}, model.ErrEmptyBill
	}
	b.State = StateFinalized
	return b.Totals(), nil
}

// View returns a snapshot of the bill suitable for display.
func (b *Bill) View() View {
	return View{
		ID:              b.ID,
		CustomerName:    b.CustomerName,
		CustomerContact: b.CustomerContact,
		Items:           b.Items(),
		GSTPercent:      b.GSTPercent,
		DiscountPercent: b.DiscountPercent,
		State:           b.State,
		CreatedAt:       b.CreatedAt,
		Totals:          b.Totals().Rounded(),
	}
}
