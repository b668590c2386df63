package report

import (
	"fmt"
	"io"

	"github.com/jung-kurt/gofpdf"
)

func newDocument(title string) (*gofpdf.Fpdf, func(string) string) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.AddPage()
	pdf.SetFont("Arial", "B", 16)
	pdf.CellFormat(0, 10, title, "", 1, "C", false, 0, "")
	pdf.Ln(5)
	return pdf, tr
}

func (r SalesReport) WritePDF(w io.Writer) error {
	pdf, tr := newDocument("Sales Report")

	pdf.SetFont("Arial", "", 12)
	pdf.CellFormat(0, 10, fmt.Sprintf("Date Range: %s to %s", r.Since.Format("2006-01-02"), r.Until.Format("2006-01-02")), "", 1, "L", false, 0, "")
	if r.Count == 0 {
		pdf.CellFormat(0, 10, NoSales, "", 1, "L", false, 0, "")
		return pdf.Output(w)
	}
	pdf.CellFormat(0, 10, fmt.Sprintf("Total Sales: %d", r.Count), "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 10, fmt.Sprintf("Revenue: %s", r.Revenue.StringFixed(2)), "", 1, "L", false, 0, "")
	pdf.Ln(5)

	pdf.SetFont("Arial", "B", 12)
	pdf.CellFormat(45, 10, "Date", "1", 0, "C", false, 0, "")
	pdf.CellFormat(75, 10, "Product", "1", 0, "C", false, 0, "")
	pdf.CellFormat(30, 10, "Quantity", "1", 0, "C", false, 0, "")
	pdf.CellFormat(40, 10, "Total", "1", 1, "C", false, 0, "")

	pdf.SetFont("Arial", "", 12)
	for _, l := range r.Lines {
		pdf.CellFormat(45, 10, l.Date.Format("2006-01-02 15:04"), "1", 0, "C", false, 0, "")
		pdf.CellFormat(75, 10, tr(l.Product), "1", 0, "L", false, 0, "")
		pdf.CellFormat(30, 10, fmt.Sprintf("%d", l.Quantity), "1", 0, "C", false, 0, "")
		pdf.CellFormat(40, 10, l.Total.StringFixed(2), "1", 1, "R", false, 0, "")
	}
	return pdf.Output(w)
}

func (r InventoryReport) WritePDF(w io.Writer) error {
	pdf, tr := newDocument("Inventory Report")

	pdf.SetFont("Arial", "", 12)
	pdf.CellFormat(0, 10, fmt.Sprintf("Generated: %s", r.GeneratedAt.Format("2006-01-02 15:04")), "", 1, "L", false, 0, "")
	pdf.Ln(5)

	pdf.SetFont("Arial", "B", 12)
	pdf.CellFormat(25, 10, "Status", "1", 0, "C", false, 0, "")
	pdf.CellFormat(70, 10, "Product", "1", 0, "C", false, 0, "")
	pdf.CellFormat(35, 10, "Category", "1", 0, "C", false, 0, "")
	pdf.CellFormat(25, 10, "Stock", "1", 0, "C", false, 0, "")
	pdf.CellFormat(35, 10, "Price", "1", 1, "C", false, 0, "")

	pdf.SetFont("Arial", "", 12)
	for _, l := range r.Lines {
		pdf.CellFormat(25, 10, l.Status, "1", 0, "C", false, 0, "")
		pdf.CellFormat(70, 10, tr(l.Name), "1", 0, "L", false, 0, "")
		pdf.CellFormat(35, 10, l.Category.String(), "1", 0, "C", false, 0, "")
		pdf.CellFormat(25, 10, fmt.Sprintf("%d", l.Quantity), "1", 0, "C", false, 0, "")
		pdf.CellFormat(35, 10, l.Price.StringFixed(2), "1", 1, "R", false, 0, "")
	}
	return pdf.Output(w)
}
