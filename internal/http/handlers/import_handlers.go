package handlers

import (
	"encoding/csv"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"

	"github.com/rogerio-castellano/store-inventory/internal/inventory"
	"github.com/shopspring/decimal"
)

type csvRow struct {
	Name     string
	Category string
	Price    string
	Quantity string
	MinStock string
	Barcode  string
}

func parseCSV(file multipart.File) ([]csvRow, error) {
	reader := csv.NewReader(file)
	reader.TrimLeadingSpace = true
	headers, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("invalid CSV header")
	}

	index := map[string]int{}
	for i, h := range headers {
		index[strings.ToLower(strings.TrimSpace(h))] = i
	}
	for _, required := range []string{"name", "price", "quantity"} {
		if _, ok := index[required]; !ok {
			return nil, fmt.Errorf("CSV header is missing %q", required)
		}
	}

	column := func(record []string, name string) string {
		i, ok := index[name]
		if !ok || i >= len(record) {
			return ""
		}
		return strings.TrimSpace(record[i])
	}

	var rows []csvRow
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("CSV read error: %v", err)
		}

		rows = append(rows, csvRow{
			Name:     column(record, "name"),
			Category: column(record, "category"),
			Price:    column(record, "price"),
			Quantity: column(record, "quantity"),
			MinStock: column(record, "min_stock"),
			Barcode:  column(record, "barcode"),
		})
	}
	return rows, nil
}

func (row csvRow) toRequest() (ProductRequest, error) {
	req := ProductRequest{Name: row.Name, Category: row.Category}

	price, err := decimal.NewFromString(row.Price)
	if err != nil {
		return req, fmt.Errorf("invalid price %q", row.Price)
	}
	req.Price = price

	if req.Quantity, err = strconv.Atoi(row.Quantity); err != nil {
		return req, fmt.Errorf("invalid quantity %q", row.Quantity)
	}

	if row.MinStock != "" {
		minStock, err := strconv.Atoi(row.MinStock)
		if err != nil {
			return req, fmt.Errorf("invalid min_stock %q", row.MinStock)
		}
		req.MinStock = &minStock
	}

	if row.Barcode != "" {
		barcode := row.Barcode
		req.Barcode = &barcode
	}
	return req, nil
}

func rowError(rowNum int, format string, args ...any) inventory.ValidationError {
	return inventory.ValidationError{
		Field:       fmt.Sprintf("row %d", rowNum),
		Description: fmt.Sprintf(format, args...),
	}
}

// ImportProductsHandler godoc
// @Summary Import products via CSV
// @Description Columns: name, price, quantity and optionally category, min_stock, barcode. Rows naming an existing product are skipped.
// @Tags import
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "CSV file"
// @Success 200 {object} ImportProductsResult
// @Failure 400 {string} string "Invalid file"
// @Failure 500 {string} string "Internal error"
// @Router /products/import [post]
func (s *Server) ImportProductsHandler(w http.ResponseWriter, r *http.Request) {
	file, _, err := r.FormFile("file")
	if err != nil {
		http.Error(w, "missing file", http.StatusBadRequest)
		return
	}
	defer file.Close()

	records, err := parseCSV(file)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	existing, err := s.svc.Products(r.Context())
	if err != nil {
		writeServiceError(w, "import products", err)
		return
	}
	known := make(map[string]bool, len(existing))
	for _, p := range existing {
		known[strings.ToLower(p.Name)] = true
	}

	var imported int
	errorsList := []inventory.ValidationError{}

	for i, rec := range records {
		rowNum := i + 2 // header is row 1

		req, err := rec.toRequest()
		if err != nil {
			errorsList = append(errorsList, rowError(rowNum, "%v", err))
			continue
		}

		np, validationErrors := newProduct(req)
		if len(validationErrors) > 0 {
			for _, ve := range validationErrors {
				errorsList = append(errorsList, rowError(rowNum, "%s: %s", ve.Field, ve.Description))
			}
			continue
		}

		if known[strings.ToLower(np.Name)] {
			errorsList = append(errorsList, rowError(rowNum, "product '%s' already exists", np.Name))
			continue
		}

		if _, err := s.svc.AddProduct(r.Context(), np); err != nil {
			fieldErrors := inventory.FieldErrors(err)
			if len(fieldErrors) == 0 {
				writeServiceError(w, "import products", err)
				return
			}
			for _, ve := range fieldErrors {
				errorsList = append(errorsList, rowError(rowNum, "%s: %s", ve.Field, ve.Description))
			}
			continue
		}
		known[strings.ToLower(np.Name)] = true
		imported++
	}

	respond(w, http.StatusOK, ImportProductsResult{
		ImportedProductsCount: imported,
		Errors:                errorsList,
	})
}

