package handlers

import (
	"net/http"

	"github.com/rogerio-castellano/store-inventory/internal/inventory"
	models "github.com/rogerio-castellano/store-inventory/internal/models"
)

func toSupplyResponse(s models.Supply) SupplyResponse {
	return SupplyResponse{
		Id:        s.ID,
		Supplier:  s.Supplier,
		ProductId: s.ProductID,
		Quantity:  s.Quantity,
		Cost:      s.Cost,
		Date:      formatTime(s.Date),
	}
}

// CreateSupplyHandler godoc
// @Summary Record a supplier delivery
// @Description Adds the delivered quantity to the product's stock. Deliveries for unknown products are recorded without touching stock.
// @Tags supplies
// @Accept json
// @Produce json
// @Param supply body SupplyRequest true "Delivery"
// @Success 201 {object} SupplyResponse
// @Failure 400 {array} inventory.ValidationError
// @Failure 500 {string} string "Internal error"
// @Router /supplies [post]
func (s *Server) CreateSupplyHandler(w http.ResponseWriter, r *http.Request) {
	var req SupplyRequest
	if err := readJSON(w, r, &req); err != nil {
		http.Error(w, "invalid input", http.StatusBadRequest)
		return
	}

	if validationErrors := validateSupply(req); len(validationErrors) > 0 {
		respond(w, http.StatusBadRequest, validationErrors)
		return
	}

	supply, err := s.svc.Restock(r.Context(), inventory.SupplyRequest{
		Supplier:  req.Supplier,
		ProductID: req.ProductId,
		Quantity:  req.Quantity,
		Cost:      req.Cost,
	})
	if err != nil {
		writeServiceError(w, "record supply", err)
		return
	}
	respond(w, http.StatusCreated, toSupplyResponse(supply))
}

// GetSuppliesHandler godoc
// @Summary List supplier deliveries
// @Tags supplies
// @Produce json
// @Success 200 {array} SupplyResponse
// @Failure 500 {string} string "Internal error"
// @Router /supplies [get]
func (s *Server) GetSuppliesHandler(w http.ResponseWriter, r *http.Request) {
	supplies, err := s.svc.Supplies(r.Context())
	if err != nil {
		writeServiceError(w, "fetch supplies", err)
		return
	}
	resp := make([]SupplyResponse, len(supplies))
	for i, sp := range supplies {
		resp[i] = toSupplyResponse(sp)
	}
	respond(w, http.StatusOK, resp)
}

// GetSupplyByIDHandler godoc
// @Summary Get supplier delivery by ID
// @Tags supplies
// @Produce json
// @Param id path int true "Supply ID"
// @Success 200 {object} SupplyResponse
// @Failure 400 {string} string "Invalid ID"
// @Failure 404 {string} string "Not found"
// @Router /supplies/{id} [get]
func (s *Server) GetSupplyByIDHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "supply")
	if !ok {
		return
	}

	supply, err := s.svc.Supply(r.Context(), id)
	if err != nil {
		writeServiceError(w, "fetch supply", err)
		return
	}
	respond(w, http.StatusOK, toSupplyResponse(supply))
}
