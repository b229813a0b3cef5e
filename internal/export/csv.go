package export

import (
	"io"

	"prodexa/internal/model"

	"github.com/gocarina/gocsv"
)

type productRow struct {
	Name     string `csv:"name"`
	Category string `csv:"category"`
	Brand    string `csv:"brand"`
	Unit     string `csv:"unit"`
	SKU      string `csv:"sku"`
	Price    string `csv:"price"`
	Stock    int    `csv:"stock"`
	Customer string `csv:"customer"`
	Date     string `csv:"date"`
	Expiry   string `csv:"expiry"`
	Discount string `csv:"discount"`
	Notes    string `csv:"notes"`
}

// WriteProductsCSV writes the product summary as CSV with a header row.
func WriteProductsCSV(w io.Writer, products []model.Product) error {
	rows := make([]productRow, 0, len(products))
	for _, p := range products {
		rows = append(rows, productRow{
			Name:     p.Name,
			Category: p.Category,
			Brand:    p.Brand,
			Unit:     p.Unit,
			SKU:      p.SKU,
			Price:    model.Money(p.Price),
			Stock:    p.Stock,
			Customer: p.Customer,
			Date:     p.Date,
			Expiry:   p.Expiry,
			Discount: p.Discount,
			Notes:    p.Notes,
		})
	}

	if err := gocsv.Marshal(rows, w); err != nil {
		return model.IO("failed to write summary csv: %v", err)
	}
	return nil
}
