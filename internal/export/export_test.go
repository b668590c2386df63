package export

import (
	"bytes"
	"context"
	"encoding/csv"
	"testing"
	"time"

	"github.com/rogerio-castellano/store-inventory/internal/inventory"
	"github.com/rogerio-castellano/store-inventory/internal/models"
	"github.com/rogerio-castellano/store-inventory/internal/repo"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seeded(t *testing.T) *inventory.Service {
	t.Helper()
	ctx := context.Background()
	clock := time.Date(2025, 5, 1, 9, 0, 0, 0, time.UTC)
	svc := inventory.NewService(repo.NewInMemoryStore(), inventory.WithClock(func() time.Time {
		clock = clock.Add(time.Minute)
		return clock
	}))

	p, err := svc.AddProduct(ctx, inventory.NewProduct{Name: "Lamp", Category: models.CategoryElectronics, Price: decimal.RequireFromString("12.50"), Quantity: 4, MinStock: 1})
	require.NoError(t, err)
	c, err := svc.AddCustomer(ctx, inventory.NewCustomer{Name: "Ann", Phone: "555", Email: "ann@example.com", Discount: decimal.NewFromInt(10)})
	require.NoError(t, err)

	_, err = svc.Sell(ctx, inventory.SellRequest{ProductID: p.ID, Quantity: 1, CustomerID: &c.ID})
	require.NoError(t, err)
	_, err = svc.Sell(ctx, inventory.SellRequest{ProductID: p.ID, Quantity: 1})
	require.NoError(t, err)
	_, err = svc.Restock(ctx, inventory.SupplyRequest{Supplier: "Acme", ProductID: 99, Quantity: 3, Cost: decimal.NewFromInt(20)})
	require.NoError(t, err)
	return svc
}

func readCSV(t *testing.T, svc *inventory.Service, e Entity) [][]string {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, WriteCSV(context.Background(), svc, e, &buf))
	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	return records
}

func TestWriteCSV(t *testing.T) {
	svc := seeded(t)

	t.Run("products", func(t *testing.T) {
		assert.Equal(t, [][]string{
			{"id", "name", "category", "price", "quantity", "min_stock", "stock_value"},
			{"1", "Lamp", "ELECTRONICS", "12.50", "2", "1", "25.00"},
		}, readCSV(t, svc, Products))
	})

	t.Run("sales newest first", func(t *testing.T) {
		assert.Equal(t, [][]string{
			{"id", "date", "product", "customer", "quantity", "total"},
			{"2", "2025-05-01 09:02", "Lamp", "Guest", "1", "12.50"},
			{"1", "2025-05-01 09:01", "Lamp", "Ann", "1", "11.25"},
		}, readCSV(t, svc, Sales))
	})

	t.Run("customers", func(t *testing.T) {
		assert.Equal(t, [][]string{
			{"id", "name", "phone", "email", "discount", "total_purchases"},
			{"1", "Ann", "555", "ann@example.com", "10", "11.25"},
		}, readCSV(t, svc, Customers))
	})

	t.Run("supplies with missing product", func(t *testing.T) {
		assert.Equal(t, [][]string{
			{"id", "date", "supplier", "product", "quantity", "cost"},
			{"1", "2025-05-01 09:03", "Acme", "Deleted", "3", "20.00"},
		}, readCSV(t, svc, Supplies))
	})
}

func TestParseEntity(t *testing.T) {
	e, err := ParseEntity("sales")
	require.NoError(t, err)
	assert.Equal(t, Sales, e)

	_, err = ParseEntity("users")
	assert.ErrorIs(t, err, ErrUnknownEntity)
}
