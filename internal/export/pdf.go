package export

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"

	"prodexa/internal/model"

	"github.com/go-pdf/fpdf"
)

const (
	pdfMargin    = 15.0
	pdfRowHeight = 8.0
)

var invoiceColumns = []struct {
	title string
	width float64
	align string
}{
	{"Product", 80, "L"},
	{"Qty", 25, "R"},
	{"Price", 37.5, "R"},
	{"Total", 37.5, "R"},
}

// WriteInvoicePDF renders inv as an A4 PDF document to w.
func WriteInvoicePDF(w io.Writer, inv Invoice) error {
	pdf, err := buildInvoicePDF(inv)
	if err != nil {
		return err
	}
	if err := pdf.Output(w); err != nil {
		return model.IO("failed to write invoice: %v", err)
	}
	return nil
}

// WriteInvoiceFile renders inv into dir and returns the file path.
func WriteInvoiceFile(dir string, inv Invoice) (string, error) {
	pdf, err := buildInvoicePDF(inv)
	if err != nil {
		return "", err
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", model.IO("failed to create invoice directory: %v", err)
	}

	path := filepath.Join(dir, InvoiceFileName(inv.CustomerName, inv.Date))
	if err := pdf.OutputFileAndClose(path); err != nil {
		return "", model.IO("failed to write invoice %s: %v", path, err)
	}
	return path, nil
}

func buildInvoicePDF(inv Invoice) (*fpdf.Fpdf, error) {
	if len(inv.Items) == 0 {
		return nil, model.ErrEmptyBill
	}
	totals := inv.Totals()

	pdf := fpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.SetMargins(pdfMargin, pdfMargin, pdfMargin)
	pdf.SetAutoPageBreak(true, 25)
	pdf.SetTitle(tr(inv.Shop.Name+" invoice "+inv.Number), false)
	pdf.SetFooterFunc(func() {
		pdf.SetY(-18)
		pdf.SetFont("Helvetica", "I", 9)
		pdf.CellFormat(0, 5, "Thank you for shopping with us!", "", 1, "C", false, 0, "")
		pdf.CellFormat(0, 5, "Page "+strconv.Itoa(pdf.PageNo()), "", 0, "C", false, 0, "")
	})
	pdf.AddPage()

	// Shop header
	pdf.SetFont("Helvetica", "B", 18)
	pdf.CellFormat(0, 10, tr(inv.Shop.Name), "", 1, "C", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)
	for _, line := range []string{inv.Shop.Address, inv.Shop.Phone} {
		if line != "" {
			pdf.CellFormat(0, 5, tr(line), "", 1, "C", false, 0, "")
		}
	}
	pdf.Ln(4)

	pdf.SetFont("Helvetica", "", 10)
	pdf.CellFormat(95, 6, "Invoice No: "+inv.Number, "", 0, "L", false, 0, "")
	pdf.CellFormat(0, 6, "Date: "+inv.Date.Format("02-01-2006"), "", 1, "R", false, 0, "")
	pdf.CellFormat(0, 6, tr("Customer: "+inv.customerLabel()), "", 1, "L", false, 0, "")
	if inv.CustomerContact != "" {
		pdf.CellFormat(0, 6, tr("Contact: "+inv.CustomerContact), "", 1, "L", false, 0, "")
	}
	pdf.Ln(4)

	header := func() {
		pdf.SetFont("Helvetica", "B", 11)
		pdf.SetFillColor(230, 230, 230)
		for _, col := range invoiceColumns {
			pdf.CellFormat(col.width, pdfRowHeight, col.title, "1", 0, col.align, true, 0, "")
		}
		pdf.Ln(-1)
		pdf.SetFont("Helvetica", "", 10)
	}
	header()

	_, pageHeight := pdf.GetPageSize()
	_, _, _, bottom := pdf.GetMargins()
	for _, item := range inv.Items {
		if pdf.GetY()+pdfRowHeight > pageHeight-bottom {
			pdf.AddPage()
			header()
		}
		cells := []string{
			tr(item.ProductName),
			strconv.Itoa(item.Quantity),
			rupees(item.UnitPrice),
			rupees(item.LineTotal),
		}
		for i, col := range invoiceColumns {
			pdf.CellFormat(col.width, pdfRowHeight, cells[i], "1", 0, col.align, false, 0, "")
		}
		pdf.Ln(-1)
	}
	pdf.Ln(4)

	summary := []struct{ label, value string }{
		{"Subtotal", rupees(totals.Subtotal)},
		{"GST (" + percentLabel(inv.GSTPercent) + ")", rupees(totals.GSTAmount)},
		{"Discount (" + percentLabel(inv.DiscountPercent) + ")", "- " + rupees(totals.DiscountAmount)},
	}
	for _, row := range summary {
		pdf.CellFormat(142.5, 6, row.label, "", 0, "R", false, 0, "")
		pdf.CellFormat(37.5, 6, row.value, "", 1, "R", false, 0, "")
	}
	pdf.SetFont("Helvetica", "B", 12)
	pdf.CellFormat(142.5, 8, "Grand Total", "", 0, "R", false, 0, "")
	pdf.CellFormat(37.5, 8, rupees(totals.FinalAmount), "", 1, "R", false, 0, "")

	if err := pdf.Error(); err != nil {
		return nil, fmt.Errorf("failed to render invoice: %w", err)
	}
	return pdf, nil
}
