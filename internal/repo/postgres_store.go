package repo

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/rogerio-castellano/store-inventory/internal/models"
	"github.com/shopspring/decimal"
)

const defaultQueryTimeout = 3 * time.Second

// querier is satisfied by both *sql.DB and *sql.Tx.
type querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// PostgresStore is the Store backed by PostgreSQL through the pgx stdlib driver.
type PostgresStore struct {
	postgresQueries
	db *sql.DB
}

func NewPostgresStore(db *sql.DB, timeout time.Duration) *PostgresStore {
	if timeout <= 0 {
		timeout = defaultQueryTimeout
	}
	return &PostgresStore{
		postgresQueries: postgresQueries{q: db, timeout: timeout},
		db:              db,
	}
}

func (r *PostgresStore) InTx(ctx context.Context, fn func(tx Tx) error) error {
	sqlTx, err := r.db.BeginTx(ctx, &sql.TxOptions{Isolation: sql.LevelReadCommitted})
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = sqlTx.Rollback() }()

	if err := fn(&postgresTx{postgresQueries{q: sqlTx, timeout: r.timeout}}); err != nil {
		return err
	}

	if err := sqlTx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", classify(err))
	}
	return nil
}

func (r *PostgresStore) Snapshot(ctx context.Context, fn func(q Queries) error) error {
	sqlTx, err := r.db.BeginTx(ctx, &sql.TxOptions{Isolation: sql.LevelRepeatableRead, ReadOnly: true})
	if err != nil {
		return fmt.Errorf("failed to begin snapshot: %w", err)
	}
	defer func() { _ = sqlTx.Rollback() }()

	if err := fn(postgresQueries{q: sqlTx, timeout: r.timeout}); err != nil {
		return err
	}
	return sqlTx.Commit()
}

func (r *PostgresStore) Close() error {
	return r.db.Close()
}

type postgresTx struct {
	postgresQueries
}

func (t *postgresTx) LockProduct(ctx context.Context, id int) (models.Product, error) {
	ctx, cancel := context.WithTimeout(ctx, t.timeout)
	defer cancel()

	p, err := scanProduct(t.q.QueryRowContext(ctx, selectProducts+` WHERE id = $1 FOR UPDATE`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return models.Product{}, ErrProductNotFound
	}
	return p, err
}

func (t *postgresTx) InsertProduct(ctx context.Context, p models.Product) (models.Product, error) {
	query := `
		INSERT INTO products (name, category, price, quantity, min_stock, barcode, description)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at, updated_at
	`
	ctx, cancel := context.WithTimeout(ctx, t.timeout)
	defer cancel()

	err := t.q.QueryRowContext(ctx, query, p.Name, string(p.Category), p.Price, p.Quantity, p.MinStock, p.Barcode, p.Description).
		Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return models.Product{}, fmt.Errorf("failed to insert product: %w", classify(err))
	}
	return p, nil
}

func (t *postgresTx) InsertCustomer(ctx context.Context, c models.Customer) (models.Customer, error) {
	query := `
		INSERT INTO customers (name, phone, email, discount, total_purchases)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at
	`
	ctx, cancel := context.WithTimeout(ctx, t.timeout)
	defer cancel()

	err := t.q.QueryRowContext(ctx, query, c.Name, c.Phone, c.Email, c.Discount, c.TotalPurchases).
		Scan(&c.ID, &c.CreatedAt)
	if err != nil {
		return models.Customer{}, fmt.Errorf("failed to insert customer: %w", classify(err))
	}
	return c, nil
}

func (t *postgresTx) InsertSale(ctx context.Context, s models.Sale) (models.Sale, error) {
	query := `
		INSERT INTO sales (product_id, customer_id, quantity, price, total, date)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`
	ctx, cancel := context.WithTimeout(ctx, t.timeout)
	defer cancel()

	err := t.q.QueryRowContext(ctx, query, s.ProductID, s.CustomerID, s.Quantity, s.Price, s.Total, s.Date).Scan(&s.ID)
	if err != nil {
		return models.Sale{}, fmt.Errorf("failed to insert sale: %w", classify(err))
	}
	return s, nil
}

func (t *postgresTx) InsertSupply(ctx context.Context, s models.Supply) (models.Supply, error) {
	query := `
		INSERT INTO supplies (supplier, product_id, quantity, cost, date)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`
	ctx, cancel := context.WithTimeout(ctx, t.timeout)
	defer cancel()

	err := t.q.QueryRowContext(ctx, query, s.Supplier, s.ProductID, s.Quantity, s.Cost, s.Date).Scan(&s.ID)
	if err != nil {
		return models.Supply{}, fmt.Errorf("failed to insert supply: %w", classify(err))
	}
	return s, nil
}

func (t *postgresTx) AdjustQuantity(ctx context.Context, productID int, delta int) (models.Product, error) {
	query := `
		UPDATE products
		SET quantity = quantity + $1, updated_at = $2
		WHERE id = $3 AND quantity + $1 >= 0
		RETURNING ` + productColumns
	ctx, cancel := context.WithTimeout(ctx, t.timeout)
	defer cancel()

	p, err := scanProduct(t.q.QueryRowContext(ctx, query, delta, time.Now().UTC(), productID))
	if errors.Is(err, sql.ErrNoRows) {
		// Either the row is missing or the guard refused the change.
		if _, getErr := t.GetProduct(ctx, productID); errors.Is(getErr, ErrProductNotFound) {
			return models.Product{}, ErrProductNotFound
		}
		return models.Product{}, ErrInvalidQuantityChange
	}
	if err != nil {
		return models.Product{}, fmt.Errorf("failed to adjust quantity: %w", classify(err))
	}
	return p, nil
}

func (t *postgresTx) AddPurchases(ctx context.Context, customerID int, amount decimal.Decimal) (models.Customer, error) {
	query := `
		UPDATE customers
		SET total_purchases = total_purchases + $1
		WHERE id = $2
		RETURNING ` + customerColumns
	ctx, cancel := context.WithTimeout(ctx, t.timeout)
	defer cancel()

	c, err := scanCustomer(t.q.QueryRowContext(ctx, query, amount, customerID))
	if errors.Is(err, sql.ErrNoRows) {
		return models.Customer{}, ErrCustomerNotFound
	}
	if err != nil {
		return models.Customer{}, fmt.Errorf("failed to update customer purchases: %w", classify(err))
	}
	return c, nil
}

// classify tags integrity constraint violations (SQLSTATE class 23) with ErrConstraintViolation.
func classify(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && len(pgErr.Code) == 5 && pgErr.Code[:2] == "23" {
		return fmt.Errorf("%w: %w", ErrConstraintViolation, err)
	}
	return err
}
