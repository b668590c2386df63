package handlers

import (
	"bytes"
	"io"
	"log"
	"net/http"
)

// renderer is implemented by every report.
type renderer interface {
	WriteText(w io.Writer) error
	WritePDF(w io.Writer) error
}

func writeReport(w http.ResponseWriter, r *http.Request, name string, rep renderer) {
	format := r.URL.Query().Get("format")
	if format == "" {
		format = "text"
	}

	var buf bytes.Buffer
	switch format {
	case "text":
		if err := rep.WriteText(&buf); err != nil {
			log.Printf("could not render %s report: %v", name, err)
			http.Error(w, "could not render report", http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	case "pdf":
		if err := rep.WritePDF(&buf); err != nil {
			log.Printf("could not render %s report: %v", name, err)
			http.Error(w, "could not render report", http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/pdf")
		w.Header().Set("Content-Disposition", `attachment; filename="`+name+`_report.pdf"`)
	default:
		http.Error(w, "format must be 'text' or 'pdf'", http.StatusBadRequest)
		return
	}

	if _, err := buf.WriteTo(w); err != nil {
		log.Printf("failed to write %s report: %v", name, err)
	}
}

// GetSalesReportHandler godoc
// @Summary Sales report
// @Description Sales within the window, with count and revenue. Defaults to the configured number of days up to now.
// @Tags reports
// @Produce plain,application/pdf
// @Param since query string false "From (RFC3339 or YYYY-MM-DD)"
// @Param until query string false "Until (RFC3339 or YYYY-MM-DD, whole day)"
// @Param format query string false "text (default) or pdf"
// @Success 200 {file} file
// @Failure 400 {string} string "Invalid input"
// @Failure 500 {string} string "Internal error"
// @Router /reports/sales [get]
func (s *Server) GetSalesReportHandler(w http.ResponseWriter, r *http.Request) {
	since, until, ok := parseWindow(w, r)
	if !ok {
		return
	}

	rep, err := s.reports.Sales(r.Context(), since, until)
	if err != nil {
		writeServiceError(w, "build sales report", err)
		return
	}
	writeReport(w, r, "sales", rep)
}

// GetInventoryReportHandler godoc
// @Summary Inventory report
// @Description Every product with its stock status (OK, LOW or EMPTY).
// @Tags reports
// @Produce plain,application/pdf
// @Param format query string false "text (default) or pdf"
// @Success 200 {file} file
// @Failure 400 {string} string "Invalid format"
// @Failure 500 {string} string "Internal error"
// @Router /reports/inventory [get]
func (s *Server) GetInventoryReportHandler(w http.ResponseWriter, r *http.Request) {
	rep, err := s.reports.Inventory(r.Context())
	if err != nil {
		writeServiceError(w, "build inventory report", err)
		return
	}
	writeReport(w, r, "inventory", rep)
}
