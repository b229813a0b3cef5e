package service

import (
	"context"
	"io"

	"prodexa/internal/billing"
	"prodexa/internal/catalog"
	"prodexa/internal/model"

	"github.com/google/uuid"
)

// Catalog is the catalogue state the services read and mutate.
type Catalog interface {
	Current() *catalog.Snapshot
	Refresh(ctx context.Context) (*catalog.Snapshot, error)
	Create(ctx context.Context, p model.Product) (*catalog.Snapshot, error)
	Update(ctx context.Context, name string, p model.Product) (*catalog.Snapshot, error)
	Delete(ctx context.Context, name string) (*catalog.Snapshot, error)
}

// ProductService defines operations for product management.
type ProductService interface {
	// List returns every product in catalogue order.
	List(ctx context.Context) (*model.ProductList, error)

	// Get retrieves a single product by name.
	Get(ctx context.Context, name string) (*model.Product, error)

	// Create adds a product. Names must be unique.
	Create(ctx context.Context, p model.Product) (*model.Product, error)

	// Update replaces the product called name.
	Update(ctx context.Context, name string, p model.Product) (*model.Product, error)

	// Delete removes the product called name.
	Delete(ctx context.Context, name string) error

	// Refresh reloads the catalogue from its store.
	Refresh(ctx context.Context) (*model.ProductList, error)
}

// BillingService defines operations on in-progress bills.
type BillingService interface {
	// Open starts an empty bill for a customer.
	Open(ctx context.Context, req model.OpenBillRequest) (*billing.View, error)

	// Get returns the bill with its current totals.
	Get(ctx context.Context, id uuid.UUID) (*billing.View, error)

	// AddItem appends a product to the bill at the current catalogue price.
	AddItem(ctx context.Context, id uuid.UUID, req model.AddItemRequest) (*billing.View, error)

	// SetRates sets the GST and discount percentages.
	SetRates(ctx context.Context, id uuid.UUID, req model.RatesRequest) (*billing.View, error)

	// Totals returns the rounded bill totals.
	Totals(ctx context.Context, id uuid.UUID) (*model.Totals, error)

	// Clear removes every item from the bill.
	Clear(ctx context.Context, id uuid.UUID) (*billing.View, error)

	// Finalize writes the PDF invoice, archives it and returns its details.
	Finalize(ctx context.Context, id uuid.UUID) (*model.InvoiceResult, error)

	// Share returns a WhatsApp link with the bill summary.
	Share(ctx context.Context, id uuid.UUID) (string, error)

	// Discard drops the bill.
	Discard(ctx context.Context, id uuid.UUID) error
}

// ReportService defines the catalogue summary and chart exports.
type ReportService interface {
	// Summary returns the product table.
	Summary(ctx context.Context) (*model.ProductList, error)

	// WriteExcel writes the product table as an xlsx workbook.
	WriteExcel(ctx context.Context, w io.Writer) error

	// WriteCSV writes the product table as CSV.
	WriteCSV(ctx context.Context, w io.Writer) error

	// WriteChart renders one of the catalogue charts as HTML.
	WriteChart(ctx context.Context, w io.Writer, kind string) error
}
