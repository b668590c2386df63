package repo

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/rogerio-castellano/store-inventory/internal/models"
	"github.com/shopspring/decimal"
)

const (
	productColumns  = `id, name, category, price, quantity, min_stock, barcode, description, created_at, updated_at`
	customerColumns = `id, name, phone, email, discount, total_purchases, created_at`
	saleColumns     = `id, product_id, customer_id, quantity, price, total, date`
	supplyColumns   = `id, supplier, product_id, quantity, cost, date`

	selectProducts  = `SELECT ` + productColumns + ` FROM products`
	selectCustomers = `SELECT ` + customerColumns + ` FROM customers`
	selectSales     = `SELECT ` + saleColumns + ` FROM sales`
	selectSupplies  = `SELECT ` + supplyColumns + ` FROM supplies`
)

type rowScanner interface {
	Scan(dest ...any) error
}

type postgresQueries struct {
	q       querier
	timeout time.Duration
}

func scanProduct(row rowScanner) (models.Product, error) {
	var p models.Product
	var category string
	err := row.Scan(&p.ID, &p.Name, &category, &p.Price, &p.Quantity, &p.MinStock, &p.Barcode, &p.Description, &p.CreatedAt, &p.UpdatedAt)
	p.Category = models.Category(category)
	return p, err
}

func scanCustomer(row rowScanner) (models.Customer, error) {
	var c models.Customer
	err := row.Scan(&c.ID, &c.Name, &c.Phone, &c.Email, &c.Discount, &c.TotalPurchases, &c.CreatedAt)
	return c, err
}

func scanSale(row rowScanner) (models.Sale, error) {
	var s models.Sale
	err := row.Scan(&s.ID, &s.ProductID, &s.CustomerID, &s.Quantity, &s.Price, &s.Total, &s.Date)
	return s, err
}

func scanSupply(row rowScanner) (models.Supply, error) {
	var s models.Supply
	err := row.Scan(&s.ID, &s.Supplier, &s.ProductID, &s.Quantity, &s.Cost, &s.Date)
	return s, err
}

// queryAll runs query and scans every row with scan.
func queryAll[T any](ctx context.Context, r postgresQueries, scan func(rowScanner) (T, error), query string, args ...any) ([]T, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	rows, err := r.q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []T{}
	for rows.Next() {
		v, err := scan(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func queryOne[T any](ctx context.Context, r postgresQueries, scan func(rowScanner) (T, error), notFound error, query string, args ...any) (T, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	v, err := scan(r.q.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		var zero T
		return zero, notFound
	}
	return v, err
}

func (r postgresQueries) GetProduct(ctx context.Context, id int) (models.Product, error) {
	return queryOne(ctx, r, scanProduct, ErrProductNotFound, selectProducts+` WHERE id = $1`, id)
}

func (r postgresQueries) GetCustomer(ctx context.Context, id int) (models.Customer, error) {
	return queryOne(ctx, r, scanCustomer, ErrCustomerNotFound, selectCustomers+` WHERE id = $1`, id)
}

func (r postgresQueries) GetSale(ctx context.Context, id int) (models.Sale, error) {
	return queryOne(ctx, r, scanSale, ErrSaleNotFound, selectSales+` WHERE id = $1`, id)
}

func (r postgresQueries) GetSupply(ctx context.Context, id int) (models.Supply, error) {
	return queryOne(ctx, r, scanSupply, ErrSupplyNotFound, selectSupplies+` WHERE id = $1`, id)
}

func (r postgresQueries) ListProducts(ctx context.Context) ([]models.Product, error) {
	return queryAll(ctx, r, scanProduct, selectProducts+` ORDER BY id`)
}

func (r postgresQueries) ListCustomers(ctx context.Context) ([]models.Customer, error) {
	return queryAll(ctx, r, scanCustomer, selectCustomers+` ORDER BY id`)
}

func (r postgresQueries) ListSales(ctx context.Context, f SaleFilter) ([]models.Sale, error) {
	where, args := saleWhereClause(f)
	return queryAll(ctx, r, scanSale, selectSales+where+` ORDER BY id`, args...)
}

func (r postgresQueries) ListSupplies(ctx context.Context) ([]models.Supply, error) {
	return queryAll(ctx, r, scanSupply, selectSupplies+` ORDER BY id`)
}

func (r postgresQueries) LowStockProducts(ctx context.Context) ([]models.Product, error) {
	return queryAll(ctx, r, scanProduct, selectProducts+` WHERE quantity < min_stock ORDER BY id`)
}

func (r postgresQueries) TotalSalesAmount(ctx context.Context, f SaleFilter) (decimal.Decimal, error) {
	where, args := saleWhereClause(f)
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	var total decimal.Decimal
	err := r.q.QueryRowContext(ctx, `SELECT COALESCE(SUM(total), 0) FROM sales`+where, args...).Scan(&total)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to sum sales: %w", err)
	}
	return total, nil
}

func (r postgresQueries) DashboardMetrics(ctx context.Context) (Metrics, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	var m Metrics
	err := r.q.QueryRowContext(ctx, `
		SELECT
			(SELECT COUNT(*) FROM products),
			(SELECT COUNT(*) FROM customers),
			(SELECT COUNT(*) FROM sales),
			(SELECT COUNT(*) FROM products WHERE quantity < min_stock),
			(SELECT COALESCE(SUM(total), 0) FROM sales)
	`).Scan(&m.TotalProducts, &m.TotalCustomers, &m.TotalSales, &m.LowStockCount, &m.Revenue)
	if err != nil {
		return Metrics{}, fmt.Errorf("failed to count dashboard totals: %w", err)
	}

	var top TopProduct
	err = r.q.QueryRowContext(ctx, `
		SELECT p.id, p.name, SUM(s.quantity) AS units
		FROM sales s
		JOIN products p ON s.product_id = p.id
		GROUP BY p.id, p.name
		ORDER BY units DESC, p.id
		LIMIT 1
	`).Scan(&top.ProductID, &top.Name, &top.UnitsSold)
	switch {
	case errors.Is(err, sql.ErrNoRows):
	case err != nil:
		return Metrics{}, fmt.Errorf("failed to find top product: %w", err)
	default:
		m.TopProduct = &top
	}

	return m, nil
}

// saleWhereClause builds the WHERE clause for a sale date window.
func saleWhereClause(f SaleFilter) (string, []any) {
	where := ""
	args := []any{}
	argIndex := 1

	if f.Since != nil {
		where += fmt.Sprintf(" AND date >= $%d", argIndex)
		args = append(args, *f.Since)
		argIndex++
	}
	if f.Until != nil {
		where += fmt.Sprintf(" AND date <= $%d", argIndex)
		args = append(args, *f.Until)
	}

	if where == "" {
		return "", args
	}
	return " WHERE" + where[len(" AND"):], args
}
