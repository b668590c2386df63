package handlers

import (
	"context"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/rogerio-castellano/store-inventory/internal/alerts"
	"github.com/rogerio-castellano/store-inventory/internal/inventory"
	models "github.com/rogerio-castellano/store-inventory/internal/models"
)

func toSaleResponse(s models.Sale) SaleResponse {
	return SaleResponse{
		Id:         s.ID,
		ProductId:  s.ProductID,
		CustomerId: s.CustomerID,
		Quantity:   s.Quantity,
		Price:      s.Price,
		Total:      s.Total,
		Date:       formatTime(s.Date),
	}
}

// CreateSaleHandler godoc
// @Summary Sell a product
// @Description Records a sale, takes it out of stock and credits the customer. A missing or unknown customer_id is a guest sale.
// @Tags sales
// @Accept json
// @Produce json
// @Param sale body SaleRequest true "Sale line"
// @Success 201 {object} SaleResponse
// @Failure 400 {array} inventory.ValidationError
// @Failure 404 {string} string "Product not found"
// @Failure 409 {string} string "Insufficient stock"
// @Failure 500 {string} string "Internal error"
// @Router /sales [post]
func (s *Server) CreateSaleHandler(w http.ResponseWriter, r *http.Request) {
	var req SaleRequest
	if err := readJSON(w, r, &req); err != nil {
		http.Error(w, "invalid input", http.StatusBadRequest)
		return
	}

	sale, err := s.svc.Sell(r.Context(), inventory.SellRequest{
		ProductID:  req.ProductId,
		Quantity:   req.Quantity,
		CustomerID: req.CustomerId,
	})
	if err != nil {
		writeServiceError(w, "record sale", err)
		return
	}

	s.checkLowStock(r.Context(), sale.ProductID)
	respond(w, http.StatusCreated, toSaleResponse(sale))
}

// checkLowStock raises an alert when the product fell below its minimum.
// Alert failures are logged and never fail the sale.
func (s *Server) checkLowStock(ctx context.Context, productID int) {
	product, err := s.svc.Product(ctx, productID)
	if err != nil {
		log.Printf("could not reload product %d for low stock check: %v", productID, err)
		return
	}
	if !product.IsLowStock() {
		return
	}
	if err := s.alerts.Notify(ctx, alerts.NewAlert(product, time.Now())); err != nil {
		log.Printf("could not publish low stock alert for product %d: %v", productID, err)
	}
}

// GetSalesHandler godoc
// @Summary List sales
// @Tags sales
// @Produce json
// @Param since query string false "Sales from this timestamp (RFC3339 or YYYY-MM-DD)"
// @Param until query string false "Sales until this timestamp (RFC3339 or YYYY-MM-DD, whole day)"
// @Param offset query int false "Offset for pagination"
// @Param limit query int false "Limit for pagination"
// @Success 200 {object} SalesSearchResult
// @Failure 400 {string} string "Invalid input"
// @Failure 500 {string} string "Internal error"
// @Router /sales [get]
func (s *Server) GetSalesHandler(w http.ResponseWriter, r *http.Request) {
	since, until, ok := parseWindow(w, r)
	if !ok {
		return
	}

	var limit, offset *int

	limitStr := r.URL.Query().Get("limit")
	if limitStr != "" {
		if v, err := strconv.Atoi(limitStr); err == nil {
			limit = &v
		} else {
			log.Printf("could not parse limit %s: %v", limitStr, err)
			http.Error(w, "invalid limit format", http.StatusBadRequest)
			return
		}
	}

	if limit != nil && *limit <= 0 {
		http.Error(w, "limit must be greater than zero", http.StatusBadRequest)
		return
	}

	offsetStr := r.URL.Query().Get("offset")
	if offsetStr != "" {
		if v, err := strconv.Atoi(offsetStr); err == nil {
			offset = &v
		} else {
			log.Printf("could not parse offset %s: %v", offsetStr, err)
			http.Error(w, "invalid offset format", http.StatusBadRequest)
			return
		}
	}

	if offset != nil && *offset < 0 {
		http.Error(w, "offset must be zero or positive", http.StatusBadRequest)
		return
	}

	sales, err := s.svc.Sales(r.Context(), since, until)
	if err != nil {
		writeServiceError(w, "retrieve sales", err)
		return
	}

	total := len(sales)
	start, end := 0, total
	if offset != nil {
		start = min(*offset, total)
	}
	if limit != nil {
		end = start + min(*limit, total-start)
	}

	response := SalesSearchResult{
		Data: make([]SaleResponse, 0, end-start),
		Meta: Meta{TotalCount: total},
	}
	for _, sale := range sales[start:end] {
		response.Data = append(response.Data, toSaleResponse(sale))
	}
	respond(w, http.StatusOK, response)
}

// GetSaleByIDHandler godoc
// @Summary Get sale by ID
// @Tags sales
// @Produce json
// @Param id path int true "Sale ID"
// @Success 200 {object} SaleResponse
// @Failure 400 {string} string "Invalid ID"
// @Failure 404 {string} string "Not found"
// @Router /sales/{id} [get]
func (s *Server) GetSaleByIDHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "sale")
	if !ok {
		return
	}

	sale, err := s.svc.Sale(r.Context(), id)
	if err != nil {
		writeServiceError(w, "fetch sale", err)
		return
	}
	respond(w, http.StatusOK, toSaleResponse(sale))
}

// GetSalesTotalHandler godoc
// @Summary Total sales amount
// @Description Sums sale totals dated within the window. Both bounds are optional and inclusive.
// @Tags sales
// @Produce json
// @Param since query string false "From (RFC3339 or YYYY-MM-DD)"
// @Param until query string false "Until (RFC3339 or YYYY-MM-DD, whole day)"
// @Success 200 {object} SalesTotalResponse
// @Failure 400 {string} string "Invalid input"
// @Router /sales/total [get]
func (s *Server) GetSalesTotalHandler(w http.ResponseWriter, r *http.Request) {
	since, until, ok := parseWindow(w, r)
	if !ok {
		return
	}

	total, err := s.svc.TotalSalesAmount(r.Context(), since, until)
	if err != nil {
		writeServiceError(w, "total sales", err)
		return
	}

	resp := SalesTotalResponse{Total: total}
	if since != nil {
		v := formatTime(*since)
		resp.Since = &v
	}
	if until != nil {
		v := formatTime(*until)
		resp.Until = &v
	}
	respond(w, http.StatusOK, resp)
}
