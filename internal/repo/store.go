package repo

import (
	"context"
	"errors"
	"time"

	"github.com/rogerio-castellano/store-inventory/internal/models"
	"github.com/shopspring/decimal"
)

var (
	ErrProductNotFound  = errors.New("product not found")
	ErrCustomerNotFound = errors.New("customer not found")
	ErrSaleNotFound     = errors.New("sale not found")
	ErrSupplyNotFound   = errors.New("supply not found")

	// ErrInvalidQuantityChange is returned when an adjustment would take stock below zero.
	ErrInvalidQuantityChange = errors.New("invalid quantity change")

	// ErrConstraintViolation wraps unique, foreign key and check violations reported by the database.
	ErrConstraintViolation = errors.New("constraint violation")
)

// SaleFilter restricts sales to a date window. Both bounds are inclusive and optional.
type SaleFilter struct {
	Since *time.Time
	Until *time.Time
}

func (f SaleFilter) matches(t time.Time) bool {
	if f.Since != nil && t.Before(*f.Since) {
		return false
	}
	if f.Until != nil && t.After(*f.Until) {
		return false
	}
	return true
}

type TopProduct struct {
	ProductID int    `json:"product_id"`
	Name      string `json:"name"`
	UnitsSold int    `json:"units_sold"`
}

type Metrics struct {
	TotalProducts  int             `json:"total_products"`
	TotalCustomers int             `json:"total_customers"`
	TotalSales     int             `json:"total_sales"`
	LowStockCount  int             `json:"low_stock_count"`
	Revenue        decimal.Decimal `json:"revenue"`
	TopProduct     *TopProduct     `json:"top_product,omitempty"`
}

// Queries is the read side of the store. Listings are returned in insertion order.
type Queries interface {
	GetProduct(ctx context.Context, id int) (models.Product, error)
	GetCustomer(ctx context.Context, id int) (models.Customer, error)
	GetSale(ctx context.Context, id int) (models.Sale, error)
	GetSupply(ctx context.Context, id int) (models.Supply, error)

	ListProducts(ctx context.Context) ([]models.Product, error)
	ListCustomers(ctx context.Context) ([]models.Customer, error)
	ListSales(ctx context.Context, f SaleFilter) ([]models.Sale, error)
	ListSupplies(ctx context.Context) ([]models.Supply, error)

	LowStockProducts(ctx context.Context) ([]models.Product, error)
	TotalSalesAmount(ctx context.Context, f SaleFilter) (decimal.Decimal, error)
	DashboardMetrics(ctx context.Context) (Metrics, error)
}

// Tx is a unit of work. Its writes become visible to other readers only when
// the enclosing InTx call commits.
type Tx interface {
	Queries

	// LockProduct loads a product and holds it against concurrent writers until the transaction ends.
	LockProduct(ctx context.Context, id int) (models.Product, error)

	InsertProduct(ctx context.Context, p models.Product) (models.Product, error)
	InsertCustomer(ctx context.Context, c models.Customer) (models.Customer, error)
	InsertSale(ctx context.Context, s models.Sale) (models.Sale, error)
	InsertSupply(ctx context.Context, s models.Supply) (models.Supply, error)

	AdjustQuantity(ctx context.Context, productID, delta int) (models.Product, error)
	AddPurchases(ctx context.Context, customerID int, amount decimal.Decimal) (models.Customer, error)
}

// Store is the persistent store handle passed explicitly to its consumers.
type Store interface {
	Queries

	// InTx runs fn inside a single transaction. The transaction commits when fn
	// returns nil and rolls back on any error, leaving no partial writes.
	InTx(ctx context.Context, fn func(tx Tx) error) error

	// Snapshot runs fn against a consistent read-only view of the store.
	Snapshot(ctx context.Context, fn func(q Queries) error) error

	Close() error
}
