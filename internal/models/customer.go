package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Customer is a registered buyer. Discount is a percentage in [0, 100].
type Customer struct {
	ID             int             `json:"id"`
	Name           string          `json:"name"`
	Phone          string          `json:"phone"`
	Email          string          `json:"email"`
	Discount       decimal.Decimal `json:"discount"`
	TotalPurchases decimal.Decimal `json:"total_purchases"`
	CreatedAt      time.Time       `json:"created_at"`
}
