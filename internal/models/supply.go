package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Supply is an immutable supplier delivery record. ProductID may reference a
// product that no longer exists.
type Supply struct {
	ID        int             `json:"id"`
	Supplier  string          `json:"supplier"`
	ProductID int             `json:"product_id"`
	Quantity  int             `json:"quantity"`
	Cost      decimal.Decimal `json:"cost"`
	Date      time.Time       `json:"date"`
}
