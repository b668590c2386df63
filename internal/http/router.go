package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rogerio-castellano/store-inventory/internal/http/handlers"
	rl "github.com/rogerio-castellano/store-inventory/internal/http/rate_limiter"
	httpSwagger "github.com/swaggo/http-swagger/v2"

	_ "github.com/rogerio-castellano/store-inventory/docs"
)

func NewRouter(s *handlers.Server, limiter *rl.Limiter) http.Handler {
	r := chi.NewRouter()
	r.Use(RequestLogger)
	r.Use(RateLimit(limiter))

	r.Route("/products", func(r chi.Router) {
		r.Post("/", s.CreateProductHandler)
		r.Get("/", s.GetProductsHandler)
		r.Get("/low-stock", s.GetLowStockProductsHandler)
		r.Post("/import", s.ImportProductsHandler)
		r.Get("/{id}", s.GetProductByIDHandler)
	})

	r.Route("/customers", func(r chi.Router) {
		r.Post("/", s.CreateCustomerHandler)
		r.Get("/", s.GetCustomersHandler)
		r.Get("/{id}", s.GetCustomerByIDHandler)
	})

	r.Route("/sales", func(r chi.Router) {
		r.Post("/", s.CreateSaleHandler)
		r.Get("/", s.GetSalesHandler)
		r.Get("/total", s.GetSalesTotalHandler)
		r.Get("/{id}", s.GetSaleByIDHandler)
	})

	r.Route("/supplies", func(r chi.Router) {
		r.Post("/", s.CreateSupplyHandler)
		r.Get("/", s.GetSuppliesHandler)
		r.Get("/{id}", s.GetSupplyByIDHandler)
	})

	r.Get("/metrics/dashboard", s.GetDashboardMetricsHandler)
	r.Get("/reports/sales", s.GetSalesReportHandler)
	r.Get("/reports/inventory", s.GetInventoryReportHandler)
	r.Get("/export", s.ExportWorkbookHandler)
	r.Get("/export/{entity}", s.ExportHandler)
	r.Get("/alerts/low-stock", s.GetLowStockAlertsHandler)

	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
	))
	return r
}
