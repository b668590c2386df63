package handlers

import (
	"bytes"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rogerio-castellano/store-inventory/internal/export"
)

// ExportHandler godoc
// @Summary Export an entity as CSV
// @Tags export
// @Produce text/csv
// @Param entity path string true "products, sales, customers or supplies"
// @Success 200 {file} file
// @Failure 400 {string} string "Unknown entity"
// @Failure 500 {string} string "Internal error"
// @Router /export/{entity} [get]
func (s *Server) ExportHandler(w http.ResponseWriter, r *http.Request) {
	entity, err := export.ParseEntity(chi.URLParam(r, "entity"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	var buf bytes.Buffer
	if err := export.WriteCSV(r.Context(), s.svc, entity, &buf); err != nil {
		writeServiceError(w, "export "+string(entity), err)
		return
	}

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", `attachment; filename="`+string(entity)+`.csv"`)
	if _, err := buf.WriteTo(w); err != nil {
		log.Printf("failed to write %s export: %v", entity, err)
	}
}

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// ExportWorkbookHandler godoc
// @Summary Export every entity as one xlsx workbook
// @Tags export
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param format query string false "xlsx (default)"
// @Success 200 {file} file
// @Failure 400 {string} string "Unsupported format"
// @Failure 500 {string} string "Internal error"
// @Router /export [get]
func (s *Server) ExportWorkbookHandler(w http.ResponseWriter, r *http.Request) {
	if format := r.URL.Query().Get("format"); format != "" && format != "xlsx" {
		http.Error(w, "unsupported format "+format, http.StatusBadRequest)
		return
	}

	var buf bytes.Buffer
	if err := export.WriteWorkbook(r.Context(), s.svc, &buf); err != nil {
		writeServiceError(w, "export workbook", err)
		return
	}

	w.Header().Set("Content-Type", xlsxContentType)
	w.Header().Set("Content-Disposition", `attachment; filename="store_export.xlsx"`)
	if _, err := buf.WriteTo(w); err != nil {
		log.Printf("failed to write workbook export: %v", err)
	}
}
