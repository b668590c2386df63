// Package report builds the sales and inventory reports shown to store staff.
// Each report is read from one consistent snapshot of the store and can be
// rendered as plain text or PDF.
package report

import (
	"context"
	"time"

	"github.com/rogerio-castellano/store-inventory/internal/inventory"
	"github.com/rogerio-castellano/store-inventory/internal/models"
	"github.com/rogerio-castellano/store-inventory/internal/repo"
	"github.com/shopspring/decimal"
)

// DeletedProduct stands in for the name of a product that no longer exists.
const DeletedProduct = "deleted"

// Source gives read access to a consistent view of the store.
type Source interface {
	Snapshot(ctx context.Context, fn func(q repo.Queries) error) error
}

type SaleLine struct {
	Date     time.Time
	Product  string
	Quantity int
	Total    decimal.Decimal
}

type SalesReport struct {
	Since   time.Time
	Until   time.Time
	Count   int
	Revenue decimal.Decimal
	Lines   []SaleLine
}

type InventoryLine struct {
	Status   string
	Name     string
	Category models.Category
	Quantity int
	Price    decimal.Decimal
}

type InventoryReport struct {
	GeneratedAt time.Time
	Lines       []InventoryLine
}

type Generator struct {
	src    Source
	window time.Duration
	now    func() time.Time
}

// NewGenerator returns a Generator whose sales report defaults to the last windowDays days.
func NewGenerator(src Source, windowDays int) *Generator {
	return &Generator{
		src:    src,
		window: time.Duration(windowDays) * 24 * time.Hour,
		now:    time.Now,
	}
}

// Sales reports every sale dated within [since, until]. A nil until means now
// and a nil since means the configured window before until.
func (g *Generator) Sales(ctx context.Context, since, until *time.Time) (SalesReport, error) {
	end := g.now().UTC()
	if until != nil {
		end = *until
	}
	start := end.Add(-g.window)
	if since != nil {
		start = *since
	}
	if start.After(end) {
		return SalesReport{}, &inventory.ValidationError{Field: "since", Description: "start of the window is after its end"}
	}

	r := SalesReport{Since: start, Until: end, Revenue: decimal.Zero, Lines: []SaleLine{}}
	err := g.src.Snapshot(ctx, func(q repo.Queries) error {
		sales, err := q.ListSales(ctx, repo.SaleFilter{Since: &start, Until: &end})
		if err != nil {
			return err
		}
		names, err := productNames(ctx, q)
		if err != nil {
			return err
		}

		for _, s := range sales {
			name, ok := names[s.ProductID]
			if !ok {
				name = DeletedProduct
			}
			r.Lines = append(r.Lines, SaleLine{Date: s.Date, Product: name, Quantity: s.Quantity, Total: s.Total})
			r.Revenue = r.Revenue.Add(s.Total)
		}
		r.Count = len(sales)
		return nil
	})
	if err != nil {
		return SalesReport{}, err
	}
	return r, nil
}

// Inventory reports every product with its stock status.
func (g *Generator) Inventory(ctx context.Context) (InventoryReport, error) {
	r := InventoryReport{GeneratedAt: g.now().UTC(), Lines: []InventoryLine{}}
	err := g.src.Snapshot(ctx, func(q repo.Queries) error {
		products, err := q.ListProducts(ctx)
		if err != nil {
			return err
		}
		for _, p := range products {
			r.Lines = append(r.Lines, InventoryLine{
				Status:   statusLabel(p),
				Name:     p.Name,
				Category: p.Category,
				Quantity: p.Quantity,
				Price:    p.Price,
			})
		}
		return nil
	})
	if err != nil {
		return InventoryReport{}, err
	}
	return r, nil
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

func statusLabel(p models.Product) string {
	switch p.StockStatus() {
	case models.StockOut:
		return "EMPTY"
	case models.StockLow:
		return "LOW"
	default:
		return "OK"
	}
}
