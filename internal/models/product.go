package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Stock statuses reported by Product.StockStatus.
const (
	StockOut = "out"
	StockLow = "low"
	StockOK  = "ok"
)

// DefaultMinStock is the reorder threshold given to products registered without one.
const DefaultMinStock = 10

// Product represents a product entity in the inventory system.
type Product struct {
	ID          int             `json:"id"`
	Name        string          `json:"name"`
	Category    Category        `json:"category"`
	Price       decimal.Decimal `json:"price"`
	Quantity    int             `json:"quantity"`
	MinStock    int             `json:"min_stock"`
	Barcode     *string         `json:"barcode,omitempty"`
	Description *string         `json:"description,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// IsLowStock reports whether the quantity on hand is below the reorder threshold.
func (p Product) IsLowStock() bool {
	return p.Quantity < p.MinStock
}

func (p Product) StockStatus() string {
	switch {
	case p.Quantity == 0:
		return StockOut
	case p.IsLowStock():
		return StockLow
	default:
		return StockOK
	}
}

// StockValue is price times quantity on hand.
func (p Product) StockValue() decimal.Decimal {
	return p.Price.Mul(decimal.NewFromInt(int64(p.Quantity)))
}
