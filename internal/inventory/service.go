// Package inventory implements the store's transactional operations: selling,
// restocking and registering products and customers, plus the read-only
// queries that reports and the API consume.
//
// Every mutating operation runs in exactly one repo.Store transaction. Any
// failure rolls the whole operation back and is returned to the caller as one
// of NotFoundError, InsufficientStockError, ValidationError or StorageError.
package inventory

import (
	"context"
	"errors"
	"time"

	"github.com/rogerio-castellano/store-inventory/internal/models"
	"github.com/rogerio-castellano/store-inventory/internal/repo"
	"github.com/shopspring/decimal"
)

type Service struct {
	store repo.Store
	now   func() time.Time
}

type Option func(*Service)

// WithClock overrides the time source used to stamp sales and supplies.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		s.now = now
	}
}

func NewService(store repo.Store, opts ...Option) *Service {
	s := &Service{store: store, now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

type NewProduct struct {
	Name        string
	Category    models.Category
	Price       decimal.Decimal
	Quantity    int
	MinStock    int
	Barcode     *string
	Description *string
}

type NewCustomer struct {
	Name     string
	Phone    string
	Email    string
	Discount decimal.Decimal
}

// SellRequest describes one sale line. A nil CustomerID is a guest sale.
type SellRequest struct {
	ProductID  int
	Quantity   int
	CustomerID *int
}

type SupplyRequest struct {
	Supplier  string
	ProductID int
	Quantity  int
	Cost      decimal.Decimal
}

// LineTotal is price × quantity, less discount percent when positive, rounded to cents.
func LineTotal(price decimal.Decimal, quantity int, discount decimal.Decimal) decimal.Decimal {
	total := price.Mul(decimal.NewFromInt(int64(quantity)))
	if discount.IsPositive() {
		total = total.Mul(decimal.NewFromInt(1).Sub(discount.Div(hundred)))
	}
	return total.Round(2)
}

// AddProduct registers a product. An empty category defaults to OTHER.
func (s *Service) AddProduct(ctx context.Context, np NewProduct) (models.Product, error) {
	if np.Category == "" {
		np.Category = models.CategoryOther
	}
	if err := validateNewProduct(np); err != nil {
		return models.Product{}, err
	}

	var created models.Product
	err := s.inTx(ctx, "add product", func(tx repo.Tx) error {
		var err error
		created, err = tx.InsertProduct(ctx, models.Product{
			Name:        np.Name,
			Category:    np.Category,
			Price:       np.Price,
			Quantity:    np.Quantity,
			MinStock:    np.MinStock,
			Barcode:     np.Barcode,
			Description: np.Description,
		})
		return err
	})
	if err != nil {
		return models.Product{}, err
	}
	return created, nil
}

func (s *Service) AddCustomer(ctx context.Context, nc NewCustomer) (models.Customer, error) {
	if err := validateNewCustomer(nc); err != nil {
		return models.Customer{}, err
	}

	var created models.Customer
	err := s.inTx(ctx, "add customer", func(tx repo.Tx) error {
		var err error
		created, err = tx.InsertCustomer(ctx, models.Customer{
			Name:           nc.Name,
			Phone:          nc.Phone,
			Email:          nc.Email,
			Discount:       nc.Discount,
			TotalPurchases: decimal.Zero,
		})
		return err
	})
	if err != nil {
		return models.Customer{}, err
	}
	return created, nil
}

// Sell records a sale, takes the quantity out of stock and credits the
// customer's running purchase total, all in one transaction.
//
// A customer id that does not resolve is treated as a guest sale: no discount
// is applied and the sale is stored without a customer.
func (s *Service) Sell(ctx context.Context, req SellRequest) (models.Sale, error) {
	if err := validateSell(req); err != nil {
		return models.Sale{}, err
	}

	var sale models.Sale
	err := s.inTx(ctx, "sell", func(tx repo.Tx) error {
		product, err := tx.LockProduct(ctx, req.ProductID)
		if errors.Is(err, repo.ErrProductNotFound) {
			return &NotFoundError{Entity: "product", ID: req.ProductID}
		}
		if err != nil {
			return err
		}

		if req.Quantity > product.Quantity {
			return &InsufficientStockError{ProductID: product.ID, Available: product.Quantity, Requested: req.Quantity}
		}

		var customer *models.Customer
		if req.CustomerID != nil {
			c, err := tx.GetCustomer(ctx, *req.CustomerID)
			switch {
			case err == nil:
				customer = &c
			case errors.Is(err, repo.ErrCustomerNotFound):
			default:
				return err
			}
		}

		discount := decimal.Zero
		if customer != nil {
			discount = customer.Discount
		}

		sale = models.Sale{
			ProductID: product.ID,
			Quantity:  req.Quantity,
			Price:     product.Price,
			Total:     LineTotal(product.Price, req.Quantity, discount),
			Date:      s.timestamp(),
		}
		if customer != nil {
			id := customer.ID
			sale.CustomerID = &id
		}

		sale, err = tx.InsertSale(ctx, sale)
		if err != nil {
			return err
		}

		_, err = tx.AdjustQuantity(ctx, product.ID, -req.Quantity)
		if errors.Is(err, repo.ErrInvalidQuantityChange) {
			return &InsufficientStockError{ProductID: product.ID, Available: product.Quantity, Requested: req.Quantity}
		}
		if err != nil {
			return err
		}

		if customer != nil {
			if _, err := tx.AddPurchases(ctx, customer.ID, sale.Total); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return models.Sale{}, err
	}
	return sale, nil
}

// Restock records a supplier delivery and adds its quantity to the product's
// stock. The delivery is recorded even when the product does not exist; stock
// is then left untouched.
func (s *Service) Restock(ctx context.Context, req SupplyRequest) (models.Supply, error) {
	if err := validateSupply(req); err != nil {
		return models.Supply{}, err
	}

	var supply models.Supply
	err := s.inTx(ctx, "restock", func(tx repo.Tx) error {
		var err error
		supply, err = tx.InsertSupply(ctx, models.Supply{
			Supplier:  req.Supplier,
			ProductID: req.ProductID,
			Quantity:  req.Quantity,
			Cost:      req.Cost,
			Date:      s.timestamp(),
		})
		if err != nil {
			return err
		}

		_, err = tx.AdjustQuantity(ctx, req.ProductID, req.Quantity)
		if errors.Is(err, repo.ErrProductNotFound) {
			return nil
		}
		return err
	})
	if err != nil {
		return models.Supply{}, err
	}
	return supply, nil
}

// timestamp is the current UTC time at the microsecond precision Postgres stores.
func (s *Service) timestamp() time.Time {
	return s.now().UTC().Truncate(time.Microsecond)
}

// inTx runs fn in one store transaction and wraps anything that is not
// already a domain error in a StorageError.
func (s *Service) inTx(ctx context.Context, op string, fn func(tx repo.Tx) error) error {
	err := s.store.InTx(ctx, fn)
	if err == nil {
		return nil
	}
	return asDomainError(op, err)
}

func asDomainError(op string, err error) error {
	var (
		notFound *NotFoundError
		stock    *InsufficientStockError
		invalid  *ValidationError
		storage  *StorageError
	)
	switch {
	case errors.As(err, &notFound), errors.As(err, &stock), errors.As(err, &invalid), errors.As(err, &storage):
		return err
	default:
		return &StorageError{Op: op, Err: err}
	}
}
