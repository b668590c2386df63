package handlers

import (
	"net/http"

	"github.com/rogerio-castellano/store-inventory/internal/inventory"
	models "github.com/rogerio-castellano/store-inventory/internal/models"
)

func toCustomerResponse(c models.Customer) CustomerResponse {
	return CustomerResponse{
		Id:             c.ID,
		Name:           c.Name,
		Phone:          c.Phone,
		Email:          c.Email,
		Discount:       c.Discount,
		TotalPurchases: c.TotalPurchases,
		CreatedAt:      formatTime(c.CreatedAt),
	}
}

// CreateCustomerHandler godoc
// @Summary Register a customer
// @Tags customers
// @Accept json
// @Produce json
// @Param customer body CustomerRequest true "Customer to register"
// @Success 201 {object} CustomerResponse
// @Failure 400 {array} inventory.ValidationError
// @Failure 500 {string} string "Internal error"
// @Router /customers [post]
func (s *Server) CreateCustomerHandler(w http.ResponseWriter, r *http.Request) {
	var req CustomerRequest
	if err := readJSON(w, r, &req); err != nil {
		http.Error(w, "invalid input", http.StatusBadRequest)
		return
	}

	if validationErrors := validateCustomer(req); len(validationErrors) > 0 {
		respond(w, http.StatusBadRequest, validationErrors)
		return
	}

	created, err := s.svc.AddCustomer(r.Context(), inventory.NewCustomer{
		Name:     req.Name,
		Phone:    req.Phone,
		Email:    req.Email,
		Discount: req.Discount,
	})
	if err != nil {
		writeServiceError(w, "create customer", err)
		return
	}
	respond(w, http.StatusCreated, toCustomerResponse(created))
}

// GetCustomersHandler godoc
// @Summary List all customers
// @Tags customers
// @Produce json
// @Success 200 {array} CustomerResponse
// @Failure 500 {string} string "Internal error"
// @Router /customers [get]
func (s *Server) GetCustomersHandler(w http.ResponseWriter, r *http.Request) {
	customers, err := s.svc.Customers(r.Context())
	if err != nil {
		writeServiceError(w, "fetch customers", err)
		return
	}
	resp := make([]CustomerResponse, len(customers))
	for i, c := range customers {
		resp[i] = toCustomerResponse(c)
	}
	respond(w, http.StatusOK, resp)
}

// GetCustomerByIDHandler godoc
// @Summary Get customer by ID
// @Tags customers
// @Produce json
// @Param id path int true "Customer ID"
// @Success 200 {object} CustomerResponse
// @Failure 400 {string} string "Invalid ID"
// @Failure 404 {string} string "Not found"
// @Router /customers/{id} [get]
func (s *Server) GetCustomerByIDHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "customer")
	if !ok {
		return
	}

	customer, err := s.svc.Customer(r.Context(), id)
	if err != nil {
		writeServiceError(w, "fetch customer", err)
		return
	}
	respond(w, http.StatusOK, toCustomerResponse(customer))
}
