package inventory

import (
	"context"
	"errors"
	"time"

	"github.com/rogerio-castellano/store-inventory/internal/models"
	"github.com/rogerio-castellano/store-inventory/internal/repo"
	"github.com/shopspring/decimal"
)

func (s *Service) Product(ctx context.Context, id int) (models.Product, error) {
	p, err := s.store.GetProduct(ctx, id)
	if errors.Is(err, repo.ErrProductNotFound) {
		return models.Product{}, &NotFoundError{Entity: "product", ID: id}
	}
	if err != nil {
		return models.Product{}, &StorageError{Op: "get product", Err: err}
	}
	return p, nil
}

func (s *Service) Customer(ctx context.Context, id int) (models.Customer, error) {
	c, err := s.store.GetCustomer(ctx, id)
	if errors.Is(err, repo.ErrCustomerNotFound) {
		return models.Customer{}, &NotFoundError{Entity: "customer", ID: id}
	}
	if err != nil {
		return models.Customer{}, &StorageError{Op: "get customer", Err: err}
	}
	return c, nil
}

func (s *Service) Sale(ctx context.Context, id int) (models.Sale, error) {
	sale, err := s.store.GetSale(ctx, id)
	if errors.Is(err, repo.ErrSaleNotFound) {
		return models.Sale{}, &NotFoundError{Entity: "sale", ID: id}
	}
	if err != nil {
		return models.Sale{}, &StorageError{Op: "get sale", Err: err}
	}
	return sale, nil
}

func (s *Service) Supply(ctx context.Context, id int) (models.Supply, error) {
	supply, err := s.store.GetSupply(ctx, id)
	if errors.Is(err, repo.ErrSupplyNotFound) {
		return models.Supply{}, &NotFoundError{Entity: "supply", ID: id}
	}
	if err != nil {
		return models.Supply{}, &StorageError{Op: "get supply", Err: err}
	}
	return supply, nil
}

func (s *Service) Products(ctx context.Context) ([]models.Product, error) {
	products, err := s.store.ListProducts(ctx)
	if err != nil {
		return nil, &StorageError{Op: "list products", Err: err}
	}
	return products, nil
}

func (s *Service) Customers(ctx context.Context) ([]models.Customer, error) {
	customers, err := s.store.ListCustomers(ctx)
	if err != nil {
		return nil, &StorageError{Op: "list customers", Err: err}
	}
	return customers, nil
}

// Sales lists sales dated within [since, until]; nil bounds are open.
func (s *Service) Sales(ctx context.Context, since, until *time.Time) ([]models.Sale, error) {
	if err := validateWindow(since, until); err != nil {
		return nil, err
	}
	sales, err := s.store.ListSales(ctx, repo.SaleFilter{Since: since, Until: until})
	if err != nil {
		return nil, &StorageError{Op: "list sales", Err: err}
	}
	return sales, nil
}

func (s *Service) Supplies(ctx context.Context) ([]models.Supply, error) {
	supplies, err := s.store.ListSupplies(ctx)
	if err != nil {
		return nil, &StorageError{Op: "list supplies", Err: err}
	}
	return supplies, nil
}

// LowStockProducts returns products whose quantity is below their min stock, in listing order.
func (s *Service) LowStockProducts(ctx context.Context) ([]models.Product, error) {
	products, err := s.store.LowStockProducts(ctx)
	if err != nil {
		return nil, &StorageError{Op: "list low stock products", Err: err}
	}
	return products, nil
}

// TotalSalesAmount sums sale totals dated within [since, until]. It is zero when nothing matches.
func (s *Service) TotalSalesAmount(ctx context.Context, since, until *time.Time) (decimal.Decimal, error) {
	if err := validateWindow(since, until); err != nil {
		return decimal.Zero, err
	}
	total, err := s.store.TotalSalesAmount(ctx, repo.SaleFilter{Since: since, Until: until})
	if err != nil {
		return decimal.Zero, &StorageError{Op: "total sales amount", Err: err}
	}
	return total, nil
}

func (s *Service) Dashboard(ctx context.Context) (repo.Metrics, error) {
	m, err := s.store.DashboardMetrics(ctx)
	if err != nil {
		return repo.Metrics{}, &StorageError{Op: "dashboard metrics", Err: err}
	}
	return m, nil
}

// Snapshot runs fn against a consistent view that no concurrent operation can
// partially change.
func (s *Service) Snapshot(ctx context.Context, fn func(q repo.Queries) error) error {
	err := s.store.Snapshot(ctx, fn)
	if err == nil {
		return nil
	}
	return asDomainError("snapshot", err)
}
