package inventory_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rogerio-castellano/store-inventory/internal/inventory"
	"github.com/rogerio-castellano/store-inventory/internal/models"
	"github.com/rogerio-castellano/store-inventory/internal/repo"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errBoom = errors.New("boom")

type fakeClock struct {
	t time.Time
}

func (c *fakeClock) Now() time.Time {
	return c.t
}

func (c *fakeClock) Advance(d time.Duration) {
	c.t = c.t.Add(d)
}

// failingTx fails the named write instead of delegating it.
type failingTx struct {
	repo.Tx
	failOn string
}

func (t failingTx) AdjustQuantity(ctx context.Context, productID, delta int) (models.Product, error) {
	if t.failOn == "AdjustQuantity" {
		return models.Product{}, errBoom
	}
	return t.Tx.AdjustQuantity(ctx, productID, delta)
}

func (t failingTx) AddPurchases(ctx context.Context, customerID int, amount decimal.Decimal) (models.Customer, error) {
	if t.failOn == "AddPurchases" {
		return models.Customer{}, errBoom
	}
	return t.Tx.AddPurchases(ctx, customerID, amount)
}

type failingStore struct {
	*repo.InMemoryStore
	failOn string
}

func (s *failingStore) InTx(ctx context.Context, fn func(tx repo.Tx) error) error {
	return s.InMemoryStore.InTx(ctx, func(tx repo.Tx) error {
		return fn(failingTx{Tx: tx, failOn: s.failOn})
	})
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func newService(t *testing.T) (*inventory.Service, *repo.InMemoryStore, *fakeClock) {
	t.Helper()
	store := repo.NewInMemoryStore()
	clock := &fakeClock{t: time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)}
	return inventory.NewService(store, inventory.WithClock(clock.Now)), store, clock
}

func addProduct(t *testing.T, svc *inventory.Service, price string, qty, minStock int) models.Product {
	t.Helper()
	p, err := svc.AddProduct(context.Background(), inventory.NewProduct{
		Name:     "Widget",
		Category: models.CategoryElectronics,
		Price:    dec(price),
		Quantity: qty,
		MinStock: minStock,
	})
	require.NoError(t, err)
	return p
}

func addCustomer(t *testing.T, svc *inventory.Service, discount string) models.Customer {
	t.Helper()
	c, err := svc.AddCustomer(context.Background(), inventory.NewCustomer{
		Name:     "Ann",
		Phone:    "555-0100",
		Email:    "ann@example.com",
		Discount: dec(discount),
	})
	require.NoError(t, err)
	return c
}

func TestSell_DecrementsStock(t *testing.T) {
	ctx := context.Background()
	svc, _, clock := newService(t)
	p := addProduct(t, svc, "100", 5, 10)

	sale, err := svc.Sell(ctx, inventory.SellRequest{ProductID: p.ID, Quantity: 3})
	require.NoError(t, err)

	assert.NotZero(t, sale.ID)
	assert.True(t, sale.Total.Equal(dec("300")), "total = %s", sale.Total)
	assert.True(t, sale.Price.Equal(dec("100")))
	assert.True(t, sale.IsGuest())
	assert.Equal(t, clock.Now(), sale.Date)

	got, err := svc.Product(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, got.Quantity)
	assert.Equal(t, models.StockLow, got.StockStatus())

	low, err := svc.LowStockProducts(ctx)
	require.NoError(t, err)
	require.Len(t, low, 1)
	assert.Equal(t, p.ID, low[0].ID)
}

func TestSell_DateHasMicrosecondPrecision(t *testing.T) {
	ctx := context.Background()
	svc, _, clock := newService(t)
	p := addProduct(t, svc, "1", 5, 0)
	clock.Advance(1234567 * time.Nanosecond)

	sale, err := svc.Sell(ctx, inventory.SellRequest{ProductID: p.ID, Quantity: 1})
	require.NoError(t, err)
	assert.Equal(t, clock.Now().Truncate(time.Microsecond), sale.Date)
	assert.Zero(t, sale.Date.Nanosecond()%1000)

	supply, err := svc.Restock(ctx, inventory.SupplyRequest{Supplier: "Acme", ProductID: p.ID, Quantity: 1, Cost: dec("1")})
	require.NoError(t, err)
	assert.Zero(t, supply.Date.Nanosecond()%1000)

	got, err := svc.Sale(ctx, sale.ID)
	require.NoError(t, err)
	assert.Equal(t, sale.Date, got.Date)
}

func TestSell_InsufficientStock(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newService(t)
	p := addProduct(t, svc, "100", 5, 10)

	_, err := svc.Sell(ctx, inventory.SellRequest{ProductID: p.ID, Quantity: 10})
	require.Error(t, err)

	var stockErr *inventory.InsufficientStockError
	require.ErrorAs(t, err, &stockErr)
	assert.Equal(t, 5, stockErr.Available)
	assert.Contains(t, err.Error(), "5")

	got, err := svc.Product(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, 5, got.Quantity)

	sales, err := svc.Sales(ctx, nil, nil)
	require.NoError(t, err)
	assert.Empty(t, sales)
}

func TestSell_AppliesCustomerDiscount(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newService(t)
	p := addProduct(t, svc, "50", 10, 0)
	c := addCustomer(t, svc, "10")

	sale, err := svc.Sell(ctx, inventory.SellRequest{ProductID: p.ID, Quantity: 2, CustomerID: &c.ID})
	require.NoError(t, err)

	assert.True(t, sale.Total.Equal(dec("90")), "total = %s", sale.Total)
	require.NotNil(t, sale.CustomerID)
	assert.Equal(t, c.ID, *sale.CustomerID)

	got, err := svc.Customer(ctx, c.ID)
	require.NoError(t, err)
	assert.True(t, got.TotalPurchases.Equal(dec("90")), "total purchases = %s", got.TotalPurchases)

	_, err = svc.Sell(ctx, inventory.SellRequest{ProductID: p.ID, Quantity: 1, CustomerID: &c.ID})
	require.NoError(t, err)
	got, err = svc.Customer(ctx, c.ID)
	require.NoError(t, err)
	assert.True(t, got.TotalPurchases.Equal(dec("135")), "total purchases = %s", got.TotalPurchases)
}

func TestSell_CustomerWithoutDiscountPaysFullPrice(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newService(t)
	p := addProduct(t, svc, "19.99", 10, 0)
	c := addCustomer(t, svc, "0")

	sale, err := svc.Sell(ctx, inventory.SellRequest{ProductID: p.ID, Quantity: 3, CustomerID: &c.ID})
	require.NoError(t, err)
	assert.True(t, sale.Total.Equal(dec("59.97")), "total = %s", sale.Total)

	got, err := svc.Customer(ctx, c.ID)
	require.NoError(t, err)
	assert.True(t, got.TotalPurchases.Equal(dec("59.97")))
}

func TestSell_UnknownCustomerIsGuestSale(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newService(t)
	p := addProduct(t, svc, "50", 10, 0)
	missing := 999

	sale, err := svc.Sell(ctx, inventory.SellRequest{ProductID: p.ID, Quantity: 2, CustomerID: &missing})
	require.NoError(t, err)

	assert.True(t, sale.IsGuest())
	assert.True(t, sale.Total.Equal(dec("100")))

	got, err := svc.Product(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, 8, got.Quantity)
}

func TestSell_ProductNotFound(t *testing.T) {
	svc, _, _ := newService(t)

	_, err := svc.Sell(context.Background(), inventory.SellRequest{ProductID: 42, Quantity: 1})

	var nf *inventory.NotFoundError
	require.ErrorAs(t, err, &nf)
	assert.Equal(t, "product", nf.Entity)
	assert.Equal(t, 42, nf.ID)
}

func TestSell_RejectsNonPositiveQuantity(t *testing.T) {
	svc, _, _ := newService(t)
	p := addProduct(t, svc, "10", 5, 0)

	for _, qty := range []int{0, -3} {
		_, err := svc.Sell(context.Background(), inventory.SellRequest{ProductID: p.ID, Quantity: qty})
		var ve *inventory.ValidationError
		require.ErrorAs(t, err, &ve)
		assert.Equal(t, "quantity", ve.Field)
	}
}

func TestSell_RollsBackOnStorageFailure(t *testing.T) {
	ctx := context.Background()
	base := repo.NewInMemoryStore()
	seed := inventory.NewService(base)

	p, err := seed.AddProduct(ctx, inventory.NewProduct{Name: "Lamp", Price: dec("40"), Quantity: 6, MinStock: 1})
	require.NoError(t, err)
	c, err := seed.AddCustomer(ctx, inventory.NewCustomer{Name: "Bob", Discount: dec("5")})
	require.NoError(t, err)

	svc := inventory.NewService(&failingStore{InMemoryStore: base, failOn: "AddPurchases"})

	_, err = svc.Sell(ctx, inventory.SellRequest{ProductID: p.ID, Quantity: 2, CustomerID: &c.ID})
	require.Error(t, err)

	var se *inventory.StorageError
	require.ErrorAs(t, err, &se)
	assert.ErrorIs(t, err, errBoom)

	gotProduct, err := seed.Product(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, 6, gotProduct.Quantity)

	gotCustomer, err := seed.Customer(ctx, c.ID)
	require.NoError(t, err)
	assert.True(t, gotCustomer.TotalPurchases.IsZero())

	sales, err := seed.Sales(ctx, nil, nil)
	require.NoError(t, err)
	assert.Empty(t, sales)
}

func TestSell_StockNeverNegative(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newService(t)
	p := addProduct(t, svc, "1", 7, 0)

	var sold int
	for _, qty := range []int{3, 5, 2, 1, 4, 1} {
		_, err := svc.Sell(ctx, inventory.SellRequest{ProductID: p.ID, Quantity: qty})
		if err == nil {
			sold += qty
		}

		got, getErr := svc.Product(ctx, p.ID)
		require.NoError(t, getErr)
		assert.GreaterOrEqual(t, got.Quantity, 0)
		assert.Equal(t, 7-sold, got.Quantity)
	}
	assert.Equal(t, 7, sold)
}

func TestRestock_AddsToStock(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newService(t)
	p := addProduct(t, svc, "30", 5, 10)

	supply, err := svc.Restock(ctx, inventory.SupplyRequest{Supplier: "Acme", ProductID: p.ID, Quantity: 20, Cost: dec("500")})
	require.NoError(t, err)
	assert.NotZero(t, supply.ID)

	got, err := svc.Product(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, 25, got.Quantity)

	stored, err := svc.Supply(ctx, supply.ID)
	require.NoError(t, err)
	assert.Equal(t, "Acme", stored.Supplier)
	assert.True(t, stored.Cost.Equal(dec("500")))
	assert.Equal(t, 20, stored.Quantity)
}

func TestRestock_MissingProductStillRecordsSupply(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newService(t)
	p := addProduct(t, svc, "30", 5, 10)

	supply, err := svc.Restock(ctx, inventory.SupplyRequest{Supplier: "Acme", ProductID: 404, Quantity: 20, Cost: dec("500")})
	require.NoError(t, err)
	assert.Equal(t, 404, supply.ProductID)

	supplies, err := svc.Supplies(ctx)
	require.NoError(t, err)
	require.Len(t, supplies, 1)

	got, err := svc.Product(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, 5, got.Quantity)
}

func TestRestock_RollsBackOnStorageFailure(t *testing.T) {
	ctx := context.Background()
	base := repo.NewInMemoryStore()
	seed := inventory.NewService(base)
	p, err := seed.AddProduct(ctx, inventory.NewProduct{Name: "Lamp", Price: dec("40"), Quantity: 6})
	require.NoError(t, err)

	svc := inventory.NewService(&failingStore{InMemoryStore: base, failOn: "AdjustQuantity"})
	_, err = svc.Restock(ctx, inventory.SupplyRequest{Supplier: "Acme", ProductID: p.ID, Quantity: 3, Cost: dec("10")})
	require.ErrorIs(t, err, errBoom)

	supplies, err := seed.Supplies(ctx)
	require.NoError(t, err)
	assert.Empty(t, supplies)
}

func TestRestock_Validation(t *testing.T) {
	svc, _, _ := newService(t)

	_, err := svc.Restock(context.Background(), inventory.SupplyRequest{Supplier: "Acme", ProductID: 1, Quantity: 0, Cost: dec("-1")})
	require.Error(t, err)

	fields := map[string]bool{}
	for _, fe := range inventory.FieldErrors(err) {
		fields[fe.Field] = true
	}
	assert.Equal(t, map[string]bool{"quantity": true, "cost": true}, fields)
}

func TestAddProduct(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newService(t)
	barcode := "4006381333931"

	p, err := svc.AddProduct(ctx, inventory.NewProduct{Name: "Novel", Price: dec("12.5"), Quantity: 3, MinStock: 2, Barcode: &barcode})
	require.NoError(t, err)

	assert.Equal(t, 1, p.ID)
	assert.Equal(t, models.CategoryOther, p.Category)
	require.NotNil(t, p.Barcode)
	assert.Equal(t, barcode, *p.Barcode)
	assert.Nil(t, p.Description)
}

func TestAddProduct_Validation(t *testing.T) {
	svc, _, _ := newService(t)

	_, err := svc.AddProduct(context.Background(), inventory.NewProduct{
		Name:     "Broken",
		Category: "TOYS",
		Price:    dec("-1"),
		Quantity: -1,
		MinStock: -1,
	})
	require.Error(t, err)

	var ve *inventory.ValidationError
	require.ErrorAs(t, err, &ve)

	var fields []string
	for _, fe := range inventory.FieldErrors(err) {
		fields = append(fields, fe.Field)
	}
	assert.ElementsMatch(t, []string{"category", "price", "quantity", "min_stock"}, fields)

	products, err := svc.Products(context.Background())
	require.NoError(t, err)
	assert.Empty(t, products)
}

func TestMoneyPrecision(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newService(t)

	_, err := svc.AddProduct(ctx, inventory.NewProduct{Name: "Gum", Price: dec("9.999"), Quantity: 1})
	var ve *inventory.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "price", ve.Field)

	_, err = svc.AddCustomer(ctx, inventory.NewCustomer{Name: "X", Discount: dec("12.345")})
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "discount", ve.Field)

	_, err = svc.Restock(ctx, inventory.SupplyRequest{Supplier: "Acme", ProductID: 1, Quantity: 1, Cost: dec("0.001")})
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "cost", ve.Field)

	p, err := svc.AddProduct(ctx, inventory.NewProduct{Name: "Gum", Price: dec("9.990"), Quantity: 1})
	require.NoError(t, err)
	got, err := svc.Product(ctx, p.ID)
	require.NoError(t, err)
	assert.True(t, got.Price.Equal(p.Price))
}

func TestAddCustomer_DiscountRange(t *testing.T) {
	svc, _, _ := newService(t)

	for _, d := range []string{"-0.01", "100.5"} {
		_, err := svc.AddCustomer(context.Background(), inventory.NewCustomer{Name: "X", Discount: dec(d)})
		var ve *inventory.ValidationError
		require.ErrorAs(t, err, &ve, "discount %s", d)
		assert.Equal(t, "discount", ve.Field)
	}

	for _, d := range []string{"0", "100"} {
		c, err := svc.AddCustomer(context.Background(), inventory.NewCustomer{Name: "X", Discount: dec(d)})
		require.NoError(t, err)
		assert.True(t, c.TotalPurchases.IsZero())
	}
}

func TestTotalSalesAmount(t *testing.T) {
	ctx := context.Background()
	svc, _, clock := newService(t)

	total, err := svc.TotalSalesAmount(ctx, nil, nil)
	require.NoError(t, err)
	assert.True(t, total.IsZero())

	p := addProduct(t, svc, "10", 100, 0)
	day1 := clock.Now()
	_, err = svc.Sell(ctx, inventory.SellRequest{ProductID: p.ID, Quantity: 1})
	require.NoError(t, err)

	clock.Advance(24 * time.Hour)
	day2 := clock.Now()
	_, err = svc.Sell(ctx, inventory.SellRequest{ProductID: p.ID, Quantity: 2})
	require.NoError(t, err)

	clock.Advance(24 * time.Hour)
	day3 := clock.Now()
	_, err = svc.Sell(ctx, inventory.SellRequest{ProductID: p.ID, Quantity: 4})
	require.NoError(t, err)

	tests := []struct {
		name         string
		since, until *time.Time
		want         string
	}{
		{name: "unbounded", want: "70"},
		{name: "inclusive window", since: &day1, until: &day2, want: "30"},
		{name: "single instant", since: &day2, until: &day2, want: "20"},
		{name: "open start", until: &day1, want: "10"},
		{name: "open end", since: &day3, want: "40"},
		{name: "empty window", since: ptr(day3.Add(time.Hour)), want: "0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := svc.TotalSalesAmount(ctx, tt.since, tt.until)
			require.NoError(t, err)
			assert.True(t, got.Equal(dec(tt.want)), "got %s want %s", got, tt.want)
		})
	}

	_, err = svc.TotalSalesAmount(ctx, &day3, &day1)
	var ve *inventory.ValidationError
	require.ErrorAs(t, err, &ve)
}

func TestListings_AreStableWithoutMutation(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newService(t)
	addProduct(t, svc, "1", 1, 5)
	addProduct(t, svc, "2", 9, 5)
	addProduct(t, svc, "3", 0, 5)

	first, err := svc.Products(ctx)
	require.NoError(t, err)
	second, err := svc.Products(ctx)
	require.NoError(t, err)
	assert.Equal(t, first, second)

	low, err := svc.LowStockProducts(ctx)
	require.NoError(t, err)
	require.Len(t, low, 2)
	assert.Less(t, low[0].ID, low[1].ID)
}

func TestGetters_NotFound(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newService(t)

	_, err := svc.Product(ctx, 1)
	var nf *inventory.NotFoundError
	require.ErrorAs(t, err, &nf)

	_, err = svc.Customer(ctx, 1)
	require.ErrorAs(t, err, &nf)
	assert.Equal(t, "customer", nf.Entity)

	_, err = svc.Sale(ctx, 1)
	require.ErrorAs(t, err, &nf)
	assert.Equal(t, "sale", nf.Entity)

	_, err = svc.Supply(ctx, 1)
	require.ErrorAs(t, err, &nf)
	assert.Equal(t, "supply", nf.Entity)
}

func TestLineTotal(t *testing.T) {
	tests := []struct {
		price    string
		qty      int
		discount string
		want     string
	}{
		{"100", 3, "0", "300"},
		{"50", 2, "10", "90"},
		{"9.99", 3, "15", "25.47"},
		{"10", 1, "100", "0"},
	}
	for _, tt := range tests {
		got := inventory.LineTotal(dec(tt.price), tt.qty, dec(tt.discount))
		assert.True(t, got.Equal(dec(tt.want)), "%s x %d - %s%%: got %s want %s", tt.price, tt.qty, tt.discount, got, tt.want)
	}
}

func ptr[T any](v T) *T {
	return &v
}
