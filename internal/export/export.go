// Package export writes store data as CSV, one entity per file, or as a
// single xlsx workbook with one sheet per entity.
package export

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"sort"
	"strconv"

	"github.com/rogerio-castellano/store-inventory/internal/repo"
)

type Entity string

const (
	Products  Entity = "products"
	Sales     Entity = "sales"
	Customers Entity = "customers"
	Supplies  Entity = "supplies"
)

const (
	dateFormat = "2006-01-02 15:04"
	guest      = "Guest"
	deleted    = "Deleted"
)

// ErrUnknownEntity is returned for an entity name that cannot be exported.
var ErrUnknownEntity = errors.New("unknown export entity")

func ParseEntity(s string) (Entity, error) {
	switch e := Entity(s); e {
	case Products, Sales, Customers, Supplies:
		return e, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownEntity, s)
	}
}

// Source gives read access to a consistent view of the store.
type Source interface {
	Snapshot(ctx context.Context, fn func(q repo.Queries) error) error
}

// WriteCSV writes every record of entity to w, header first.
func WriteCSV(ctx context.Context, src Source, entity Entity, w io.Writer) error {
	var rows [][]string
	err := src.Snapshot(ctx, func(q repo.Queries) error {
		var err error
		rows, err = entityRows(ctx, q, entity)
		return err
	})
	if err != nil {
		return err
	}

	cw := csv.NewWriter(w)
	if err := cw.WriteAll(rows); err != nil {
		return fmt.Errorf("failed to write %s csv: %w", entity, err)
	}
	return nil
}

func entityRows(ctx context.Context, q repo.Queries, entity Entity) ([][]string, error) {
	switch entity {
	case Products:
		return productRows(ctx, q)
	case Sales:
		return saleRows(ctx, q)
	case Customers:
		return customerRows(ctx, q)
	case Supplies:
		return supplyRows(ctx, q)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownEntity, entity)
	}
}

func productRows(ctx context.Context, q repo.Queries) ([][]string, error) {
	products, err := q.ListProducts(ctx)
	if err != nil {
		return nil, err
	}
	rows := [][]string{{"id", "name", "category", "price", "quantity", "min_stock", "stock_value"}}
	for _, p := range products {
		rows = append(rows, []string{
			strconv.Itoa(p.ID),
			p.Name,
			p.Category.String(),
			p.Price.StringFixed(2),
			strconv.Itoa(p.Quantity),
			strconv.Itoa(p.MinStock),
			p.StockValue().StringFixed(2),
		})
	}
	return rows, nil
}

func saleRows(ctx context.Context, q repo.Queries) ([][]string, error) {
	sales, err := q.ListSales(ctx, repo.SaleFilter{})
	if err != nil {
		return nil, err
	}
	products, err := productNames(ctx, q)
	if err != nil {
		return nil, err
	}
	customers, err := q.ListCustomers(ctx)
	if err != nil {
		return nil, err
	}
	customerNames := make(map[int]string, len(customers))
	for _, c := range customers {
		customerNames[c.ID] = c.Name
	}

	// Newest first; equal dates keep the later id first.
	sort.SliceStable(sales, func(i, j int) bool {
		if sales[i].Date.Equal(sales[j].Date) {
			return sales[i].ID > sales[j].ID
		}
		return sales[i].Date.After(sales[j].Date)
	})

	rows := [][]string{{"id", "date", "product", "customer", "quantity", "total"}}
	for _, s := range sales {
		customer := guest
		if s.CustomerID != nil {
			customer = customerNames[*s.CustomerID]
		}
		rows = append(rows, []string{
			strconv.Itoa(s.ID),
			s.Date.Format(dateFormat),
			nameOr(products, s.ProductID),
			customer,
			strconv.Itoa(s.Quantity),
			s.Total.StringFixed(2),
		})
	}
	return rows, nil
}

func customerRows(ctx context.Context, q repo.Queries) ([][]string, error) {
	customers, err := q.ListCustomers(ctx)
	if err != nil {
		return nil, err
	}
	rows := [][]string{{"id", "name", "phone", "email", "discount", "total_purchases"}}
	for _, c := range customers {
		rows = append(rows, []string{
			strconv.Itoa(c.ID),
			c.Name,
			c.Phone,
			c.Email,
			c.Discount.String(),
			c.TotalPurchases.StringFixed(2),
		})
	}
	return rows, nil
}

func supplyRows(ctx context.Context, q repo.Queries) ([][]string, error) {
	supplies, err := q.ListSupplies(ctx)
	if err != nil {
		return nil, err
	}
	products, err := productNames(ctx, q)
	if err != nil {
		return nil, err
	}
	rows := [][]string{{"id", "date", "supplier", "product", "quantity", "cost"}}
	for _, s := range supplies {
		rows = append(rows, []string{
			strconv.Itoa(s.ID),
			s.Date.Format(dateFormat),
			s.Supplier,
			nameOr(products, s.ProductID),
			strconv.Itoa(s.Quantity),
			s.Cost.StringFixed(2),
		})
	}
	return rows, nil
}

func productNames(ctx context.Context, q repo.Queries) (map[int]string, error) {
	products, err := q.ListProducts(ctx)
	if err != nil {
		return nil, err
	}
	names := make(map[int]string, len(products))
	for _, p := range products {
		names[p.ID] = p.Name
	}
	return names, nil
}

func nameOr(names map[int]string, id int) string {
	if name, ok := names[id]; ok {
		return name
	}
	return deleted
}
