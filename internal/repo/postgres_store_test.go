package repo_test

import (
	"context"
	"database/sql"
	"errors"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/rogerio-castellano/store-inventory/internal/db"
	"github.com/rogerio-castellano/store-inventory/internal/models"
	"github.com/rogerio-castellano/store-inventory/internal/repo"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// openPostgresStore connects to DATABASE_URL, applies the schema and empties
// every table. The test is skipped when no database is configured.
func openPostgresStore(t *testing.T) (*repo.PostgresStore, *sql.DB) {
	t.Helper()
	url := os.Getenv("DATABASE_URL")
	if url == "" {
		t.Skip("DATABASE_URL not set")
	}

	database, err := db.Connect(url)
	require.NoError(t, err)
	t.Cleanup(func() { database.Close() })

	ctx := context.Background()
	require.NoError(t, db.Migrate(ctx, database))
	_, err = database.ExecContext(ctx, "TRUNCATE sales, supplies, customers, products RESTART IDENTITY CASCADE")
	require.NoError(t, err)

	return repo.NewPostgresStore(database, 3*time.Second), database
}

func insertProduct(t *testing.T, s repo.Store, qty int) models.Product {
	t.Helper()
	var p models.Product
	require.NoError(t, s.InTx(context.Background(), func(tx repo.Tx) error {
		var err error
		p, err = tx.InsertProduct(context.Background(), models.Product{
			Name:     "Widget",
			Category: models.CategoryElectronics,
			Price:    decimal.RequireFromString("19.99"),
			Quantity: qty,
			MinStock: 5,
		})
		return err
	}))
	return p
}

func TestPostgresStore_RoundTrip(t *testing.T) {
	s, _ := openPostgresStore(t)
	ctx := context.Background()

	p := insertProduct(t, s, 10)
	got, err := s.GetProduct(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, "Widget", got.Name)
	assert.True(t, got.Price.Equal(decimal.RequireFromString("19.99")))
	assert.Nil(t, got.Barcode)

	_, err = s.GetProduct(ctx, p.ID+100)
	assert.ErrorIs(t, err, repo.ErrProductNotFound)
}

func TestPostgresStore_RollbackOnError(t *testing.T) {
	s, _ := openPostgresStore(t)
	ctx := context.Background()
	p := insertProduct(t, s, 10)

	boom := errors.New("boom")
	err := s.InTx(ctx, func(tx repo.Tx) error {
		if _, err := tx.AdjustQuantity(ctx, p.ID, -4); err != nil {
			return err
		}
		return boom
	})
	require.ErrorIs(t, err, boom)

	got, err := s.GetProduct(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, 10, got.Quantity)
}

func TestPostgresStore_AdjustQuantityGuard(t *testing.T) {
	s, _ := openPostgresStore(t)
	ctx := context.Background()
	p := insertProduct(t, s, 2)

	err := s.InTx(ctx, func(tx repo.Tx) error {
		_, err := tx.AdjustQuantity(ctx, p.ID, -3)
		return err
	})
	assert.ErrorIs(t, err, repo.ErrInvalidQuantityChange)

	err = s.InTx(ctx, func(tx repo.Tx) error {
		_, err := tx.AdjustQuantity(ctx, p.ID+100, 1)
		return err
	})
	assert.ErrorIs(t, err, repo.ErrProductNotFound)
}

func TestPostgresStore_ForeignKeyViolation(t *testing.T) {
	s, _ := openPostgresStore(t)
	ctx := context.Background()

	err := s.InTx(ctx, func(tx repo.Tx) error {
		_, err := tx.InsertSale(ctx, models.Sale{ProductID: 999, Quantity: 1, Date: time.Now()})
		return err
	})
	assert.ErrorIs(t, err, repo.ErrConstraintViolation)
}

func TestPostgresStore_ConcurrentDecrementsNeverOversell(t *testing.T) {
	s, _ := openPostgresStore(t)
	ctx := context.Background()
	p := insertProduct(t, s, 10)

	var (
		wg   sync.WaitGroup
		mu   sync.Mutex
		sold int
	)
	for i := 0; i < 15; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			err := s.InTx(ctx, func(tx repo.Tx) error {
				locked, err := tx.LockProduct(ctx, p.ID)
				if err != nil {
					return err
				}
				if locked.Quantity < 1 {
					return repo.ErrInvalidQuantityChange
				}
				_, err = tx.AdjustQuantity(ctx, p.ID, -1)
				return err
			})
			if err == nil {
				mu.Lock()
				sold++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	got, err := s.GetProduct(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, 10, sold)
	assert.Equal(t, 0, got.Quantity)
}

func TestPostgresStore_DashboardMetricsEmpty(t *testing.T) {
	s, _ := openPostgresStore(t)

	m, err := s.DashboardMetrics(context.Background())
	require.NoError(t, err)
	assert.Zero(t, m.TotalProducts)
	assert.Nil(t, m.TopProduct)
	assert.True(t, m.Revenue.IsZero())
}
