package handlers

import (
	"net/http"

	"github.com/rogerio-castellano/store-inventory/internal/inventory"
	models "github.com/rogerio-castellano/store-inventory/internal/models"
)

func toProductResponse(p models.Product) ProductResponse {
	return ProductResponse{
		Id:          p.ID,
		Name:        p.Name,
		Category:    p.Category.String(),
		Price:       p.Price,
		Quantity:    p.Quantity,
		MinStock:    p.MinStock,
		Barcode:     p.Barcode,
		Description: p.Description,
		StockStatus: p.StockStatus(),
		StockValue:  p.StockValue(),
		LowStock:    p.IsLowStock(),
		CreatedAt:   formatTime(p.CreatedAt),
		UpdatedAt:   formatTime(p.UpdatedAt),
	}
}

func toProductResponses(products []models.Product) []ProductResponse {
	resp := make([]ProductResponse, len(products))
	for i, p := range products {
		resp[i] = toProductResponse(p)
	}
	return resp
}

// newProduct turns a request into service input. An empty category is left
// for the service to default.
func newProduct(req ProductRequest) (inventory.NewProduct, []inventory.ValidationError) {
	errs := validateProduct(req)

	var category models.Category
	if req.Category != "" {
		c, err := models.ParseCategory(req.Category)
		if err != nil {
			errs = append(errs, inventory.ValidationError{Field: "category", Description: err.Error()})
		}
		category = c
	}

	minStock := models.DefaultMinStock
	if req.MinStock != nil {
		minStock = *req.MinStock
	}

	return inventory.NewProduct{
		Name:        req.Name,
		Category:    category,
		Price:       req.Price,
		Quantity:    req.Quantity,
		MinStock:    minStock,
		Barcode:     req.Barcode,
		Description: req.Description,
	}, errs
}

// CreateProductHandler godoc
// @Summary Create a new product
// @Description Adds a product to the inventory
// @Tags products
// @Accept json
// @Produce json
// @Param product body ProductRequest true "Product to add"
// @Success 201 {object} ProductResponse
// @Failure 400 {array} inventory.ValidationError
// @Failure 500 {string} string "Internal error"
// @Router /products [post]
func (s *Server) CreateProductHandler(w http.ResponseWriter, r *http.Request) {
	var req ProductRequest
	if err := readJSON(w, r, &req); err != nil {
		http.Error(w, "invalid input", http.StatusBadRequest)
		return
	}

	np, validationErrors := newProduct(req)
	if len(validationErrors) > 0 {
		respond(w, http.StatusBadRequest, validationErrors)
		return
	}

	created, err := s.svc.AddProduct(r.Context(), np)
	if err != nil {
		writeServiceError(w, "create product", err)
		return
	}
	respond(w, http.StatusCreated, toProductResponse(created))
}

// GetProductsHandler godoc
// @Summary List all products
// @Tags products
// @Produce json
// @Success 200 {array} ProductResponse
// @Failure 500 {string} string "Internal error"
// @Router /products [get]
func (s *Server) GetProductsHandler(w http.ResponseWriter, r *http.Request) {
	products, err := s.svc.Products(r.Context())
	if err != nil {
		writeServiceError(w, "fetch products", err)
		return
	}
	respond(w, http.StatusOK, toProductResponses(products))
}

// GetProductByIDHandler godoc
// @Summary Get product by ID
// @Tags products
// @Produce json
// @Param id path int true "Product ID"
// @Success 200 {object} ProductResponse
// @Failure 400 {string} string "Invalid ID"
// @Failure 404 {string} string "Not found"
// @Failure 500 {string} string "Internal error"
// @Router /products/{id} [get]
func (s *Server) GetProductByIDHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "product")
	if !ok {
		return
	}

	product, err := s.svc.Product(r.Context(), id)
	if err != nil {
		writeServiceError(w, "fetch product", err)
		return
	}
	respond(w, http.StatusOK, toProductResponse(product))
}

// GetLowStockProductsHandler godoc
// @Summary List products below their minimum stock
// @Tags products
// @Produce json
// @Success 200 {array} ProductResponse
// @Failure 500 {string} string "Internal error"
// @Router /products/low-stock [get]
func (s *Server) GetLowStockProductsHandler(w http.ResponseWriter, r *http.Request) {
	products, err := s.svc.LowStockProducts(r.Context())
	if err != nil {
		writeServiceError(w, "fetch low stock products", err)
		return
	}
	respond(w, http.StatusOK, toProductResponses(products))
}
