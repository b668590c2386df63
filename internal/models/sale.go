package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Sale is an immutable record of a sold line. Price is the unit price at the
// time of sale, not the product's current price. A nil CustomerID is a guest sale.
type Sale struct {
	ID         int             `json:"id"`
	ProductID  int             `json:"product_id"`
	CustomerID *int            `json:"customer_id,omitempty"`
	Quantity   int             `json:"quantity"`
	Price      decimal.Decimal `json:"price"`
	Total      decimal.Decimal `json:"total"`
	Date       time.Time       `json:"date"`
}

func (s Sale) IsGuest() bool {
	return s.CustomerID == nil
}
