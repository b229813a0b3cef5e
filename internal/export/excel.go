package export

import (
	"io"
	"strconv"

	"prodexa/internal/model"

	"github.com/360EntSecGroup-Skylar/excelize"
)

// SummarySheet is the sheet name used by the product summary workbook.
const SummarySheet = "Products"

var summaryHeader = []string{"Name", "Category", "Brand", "Unit", "SKU", "Price", "Stock", "Customer", "Date", "Expiry", "Discount", "Notes"}

// WriteProductsExcel writes the product summary as an xlsx workbook.
func WriteProductsExcel(w io.Writer, products []model.Product) error {
	f := excelize.NewFile()
	f.SetSheetName("Sheet1", SummarySheet)

	for col, title := range summaryHeader {
		f.SetCellValue(SummarySheet, cellName(col, 1), title)
	}

	for i, p := range products {
		row := i + 2
		values := []interface{}{
			p.Name,
			p.Category,
			p.Brand,
			p.Unit,
			p.SKU,
			p.Price.InexactFloat64(),
			p.Stock,
			p.Customer,
			p.Date,
			p.Expiry,
			p.Discount,
			p.Notes,
		}
		for col, v := range values {
			f.SetCellValue(SummarySheet, cellName(col, row), v)
		}
	}

	style, err := f.NewStyle(`{"font":{"bold":true},"fill":{"type":"pattern","color":["#E0E0E0"],"pattern":1}}`)
	if err != nil {
		return model.IO("failed to style summary sheet: %v", err)
	}
	last := excelize.ToAlphaString(len(summaryHeader) - 1)
	f.SetCellStyle(SummarySheet, "A1", last+"1", style)
	f.SetColWidth(SummarySheet, "A", "A", 28)
	f.SetColWidth(SummarySheet, "B", last, 14)

	if err := f.Write(w); err != nil {
		return model.IO("failed to write summary workbook: %v", err)
	}
	return nil
}

func cellName(col, row int) string {
	return excelize.ToAlphaString(col) + strconv.Itoa(row)
}
