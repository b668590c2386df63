package repo

import (
	"context"
	"sync"
	"time"

	"github.com/rogerio-castellano/store-inventory/internal/models"
	"github.com/shopspring/decimal"
)

type memoryState struct {
	products  []models.Product
	customers []models.Customer
	sales     []models.Sale
	supplies  []models.Supply

	nextProductID  int
	nextCustomerID int
	nextSaleID     int
	nextSupplyID   int
}

func newMemoryState() *memoryState {
	return &memoryState{
		products:       []models.Product{},
		customers:      []models.Customer{},
		sales:          []models.Sale{},
		supplies:       []models.Supply{},
		nextProductID:  1,
		nextCustomerID: 1,
		nextSaleID:     1,
		nextSupplyID:   1,
	}
}

func (s *memoryState) clone() *memoryState {
	c := *s
	c.products = append([]models.Product(nil), s.products...)
	c.customers = append([]models.Customer(nil), s.customers...)
	c.sales = append([]models.Sale(nil), s.sales...)
	c.supplies = append([]models.Supply(nil), s.supplies...)
	return &c
}

// InMemoryStore is an in-memory implementation of Store. Transactions work on
// a private copy of the state which replaces the shared state on commit.
type InMemoryStore struct {
	mu    sync.RWMutex
	state *memoryState
	now   func() time.Time
}

// NewInMemoryStore creates a new, empty InMemoryStore.
func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{
		state: newMemoryState(),
		now:   time.Now,
	}
}

func (r *InMemoryStore) InTx(ctx context.Context, fn func(tx Tx) error) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return err
	}

	work := r.state.clone()
	if err := fn(&memoryTx{memoryView{s: work}, r.now}); err != nil {
		return err
	}
	r.state = work
	return nil
}

func (r *InMemoryStore) Snapshot(ctx context.Context, fn func(q Queries) error) error {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return fn(memoryView{s: r.state})
}

func (r *InMemoryStore) Close() error {
	return nil
}

// Clear drops every record and resets id sequences.
func (r *InMemoryStore) Clear() {
	r.mu.Lock()
	r.state = newMemoryState()
	r.mu.Unlock()
}

func (r *InMemoryStore) view() memoryView {
	return memoryView{s: r.state}
}

func (r *InMemoryStore) GetProduct(ctx context.Context, id int) (models.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.view().GetProduct(ctx, id)
}

func (r *InMemoryStore) GetCustomer(ctx context.Context, id int) (models.Customer, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.view().GetCustomer(ctx, id)
}

func (r *InMemoryStore) GetSale(ctx context.Context, id int) (models.Sale, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.view().GetSale(ctx, id)
}

func (r *InMemoryStore) GetSupply(ctx context.Context, id int) (models.Supply, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.view().GetSupply(ctx, id)
}

func (r *InMemoryStore) ListProducts(ctx context.Context) ([]models.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.view().ListProducts(ctx)
}

func (r *InMemoryStore) ListCustomers(ctx context.Context) ([]models.Customer, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.view().ListCustomers(ctx)
}

func (r *InMemoryStore) ListSales(ctx context.Context, f SaleFilter) ([]models.Sale, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.view().ListSales(ctx, f)
}

func (r *InMemoryStore) ListSupplies(ctx context.Context) ([]models.Supply, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.view().ListSupplies(ctx)
}

func (r *InMemoryStore) LowStockProducts(ctx context.Context) ([]models.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.view().LowStockProducts(ctx)
}

func (r *InMemoryStore) TotalSalesAmount(ctx context.Context, f SaleFilter) (decimal.Decimal, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.view().TotalSalesAmount(ctx, f)
}

func (r *InMemoryStore) DashboardMetrics(ctx context.Context) (Metrics, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.view().DashboardMetrics(ctx)
}

// memoryView answers queries against one state value. Returned slices are copies.
type memoryView struct {
	s *memoryState
}

func (v memoryView) GetProduct(_ context.Context, id int) (models.Product, error) {
	for _, p := range v.s.products {
		if p.ID == id {
			return p, nil
		}
	}
	return models.Product{}, ErrProductNotFound
}

func (v memoryView) GetCustomer(_ context.Context, id int) (models.Customer, error) {
	for _, c := range v.s.customers {
		if c.ID == id {
			return c, nil
		}
	}
	return models.Customer{}, ErrCustomerNotFound
}

func (v memoryView) GetSale(_ context.Context, id int) (models.Sale, error) {
	for _, s := range v.s.sales {
		if s.ID == id {
			return s, nil
		}
	}
	return models.Sale{}, ErrSaleNotFound
}

func (v memoryView) GetSupply(_ context.Context, id int) (models.Supply, error) {
	for _, s := range v.s.supplies {
		if s.ID == id {
			return s, nil
		}
	}
	return models.Supply{}, ErrSupplyNotFound
}

func (v memoryView) ListProducts(context.Context) ([]models.Product, error) {
	return append([]models.Product{}, v.s.products...), nil
}

func (v memoryView) ListCustomers(context.Context) ([]models.Customer, error) {
	return append([]models.Customer{}, v.s.customers...), nil
}

func (v memoryView) ListSales(_ context.Context, f SaleFilter) ([]models.Sale, error) {
	sales := []models.Sale{}
	for _, s := range v.s.sales {
		if f.matches(s.Date) {
			sales = append(sales, s)
		}
	}
	return sales, nil
}

func (v memoryView) ListSupplies(context.Context) ([]models.Supply, error) {
	return append([]models.Supply{}, v.s.supplies...), nil
}

func (v memoryView) LowStockProducts(context.Context) ([]models.Product, error) {
	low := []models.Product{}
	for _, p := range v.s.products {
		if p.IsLowStock() {
			low = append(low, p)
		}
	}
	return low, nil
}

func (v memoryView) TotalSalesAmount(_ context.Context, f SaleFilter) (decimal.Decimal, error) {
	total := decimal.Zero
	for _, s := range v.s.sales {
		if f.matches(s.Date) {
			total = total.Add(s.Total)
		}
	}
	return total, nil
}

func (v memoryView) DashboardMetrics(context.Context) (Metrics, error) {
	m := Metrics{
		TotalProducts:  len(v.s.products),
		TotalCustomers: len(v.s.customers),
		TotalSales:     len(v.s.sales),
		Revenue:        decimal.Zero,
	}

	for _, p := range v.s.products {
		if p.IsLowStock() {
			m.LowStockCount++
		}
	}

	units := map[int]int{}
	for _, s := range v.s.sales {
		m.Revenue = m.Revenue.Add(s.Total)
		units[s.ProductID] += s.Quantity
	}

	// Ties go to the lower product id, matching the postgres ordering.
	for _, p := range v.s.products {
		sold, ok := units[p.ID]
		if !ok {
			continue
		}
		if m.TopProduct == nil || sold > m.TopProduct.UnitsSold {
			m.TopProduct = &TopProduct{ProductID: p.ID, Name: p.Name, UnitsSold: sold}
		}
	}

	return m, nil
}

type memoryTx struct {
	memoryView
	now func() time.Time
}

func (t *memoryTx) LockProduct(ctx context.Context, id int) (models.Product, error) {
	return t.GetProduct(ctx, id)
}

func (t *memoryTx) InsertProduct(_ context.Context, p models.Product) (models.Product, error) {
	p.ID = t.s.nextProductID
	t.s.nextProductID++
	if p.CreatedAt.IsZero() {
		p.CreatedAt = t.now().UTC()
	}
	p.UpdatedAt = p.CreatedAt
	t.s.products = append(t.s.products, p)
	return p, nil
}

func (t *memoryTx) InsertCustomer(_ context.Context, c models.Customer) (models.Customer, error) {
	c.ID = t.s.nextCustomerID
	t.s.nextCustomerID++
	if c.CreatedAt.IsZero() {
		c.CreatedAt = t.now().UTC()
	}
	t.s.customers = append(t.s.customers, c)
	return c, nil
}

func (t *memoryTx) InsertSale(_ context.Context, s models.Sale) (models.Sale, error) {
	if _, err := t.GetProduct(context.Background(), s.ProductID); err != nil {
		return models.Sale{}, ErrConstraintViolation
	}
	if s.CustomerID != nil {
		if _, err := t.GetCustomer(context.Background(), *s.CustomerID); err != nil {
			return models.Sale{}, ErrConstraintViolation
		}
	}
	s.ID = t.s.nextSaleID
	t.s.nextSaleID++
	t.s.sales = append(t.s.sales, s)
	return s, nil
}

func (t *memoryTx) InsertSupply(_ context.Context, s models.Supply) (models.Supply, error) {
	s.ID = t.s.nextSupplyID
	t.s.nextSupplyID++
	t.s.supplies = append(t.s.supplies, s)
	return s, nil
}

func (t *memoryTx) AdjustQuantity(_ context.Context, productID, delta int) (models.Product, error) {
	for i, p := range t.s.products {
		if p.ID != productID {
			continue
		}
		if p.Quantity+delta < 0 {
			return models.Product{}, ErrInvalidQuantityChange
		}
		p.Quantity += delta
		p.UpdatedAt = t.now().UTC()
		t.s.products[i] = p
		return p, nil
	}
	return models.Product{}, ErrProductNotFound
}

func (t *memoryTx) AddPurchases(_ context.Context, customerID int, amount decimal.Decimal) (models.Customer, error) {
	for i, c := range t.s.customers {
		if c.ID == customerID {
			c.TotalPurchases = c.TotalPurchases.Add(amount)
			t.s.customers[i] = c
			return c, nil
		}
	}
	return models.Customer{}, ErrCustomerNotFound
}
