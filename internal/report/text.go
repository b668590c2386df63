package report

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// NoSales is the whole sales report when the window holds no sales.
const NoSales = "No sales in this period."

const (
	dayFormat  = "02.01.2006"
	lineFormat = "02.01 15:04"
)

var (
	rule      = strings.Repeat("=", 40)
	separator = strings.Repeat("-", 20)
)

func (r SalesReport) WriteText(w io.Writer) error {
	bw := bufio.NewWriter(w)
	if r.Count == 0 {
		fmt.Fprintln(bw, NoSales)
		return bw.Flush()
	}

	fmt.Fprintln(bw, "SALES REPORT")
	fmt.Fprintf(bw, "%s - %s\n", r.Since.Format(dayFormat), r.Until.Format(dayFormat))
	fmt.Fprintln(bw, rule)
	fmt.Fprintf(bw, "Total sales: %d\n", r.Count)
	fmt.Fprintf(bw, "Revenue: %s\n\n", r.Revenue.StringFixed(2))
	fmt.Fprintln(bw, "Details:")
	for _, l := range r.Lines {
		fmt.Fprintf(bw, "- %s | %s x%d = %s\n", l.Date.Format(lineFormat), l.Product, l.Quantity, l.Total.StringFixed(2))
	}
	return bw.Flush()
}

func (r InventoryReport) WriteText(w io.Writer) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintln(bw, "INVENTORY REPORT")
	fmt.Fprintln(bw, rule)
	for _, l := range r.Lines {
		fmt.Fprintf(bw, "[%s] %s (%s)\n", l.Status, l.Name, l.Category)
		fmt.Fprintf(bw, "   Stock: %d pcs | Price: %s\n", l.Quantity, l.Price.StringFixed(2))
		fmt.Fprintln(bw, separator)
	}
	return bw.Flush()
}
