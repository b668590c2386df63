package handlers

import (
	"github.com/rogerio-castellano/store-inventory/internal/inventory"
	"github.com/shopspring/decimal"
)

type ProductRequest struct {
	Name        string          `json:"name"`
	Category    string          `json:"category"`
	Price       decimal.Decimal `json:"price"`
	Quantity    int             `json:"quantity"`
	MinStock    *int            `json:"min_stock,omitempty"`
	Barcode     *string         `json:"barcode,omitempty"`
	Description *string         `json:"description,omitempty"`
}

type ProductResponse struct {
	Id          int             `json:"id"`
	Name        string          `json:"name"`
	Category    string          `json:"category"`
	Price       decimal.Decimal `json:"price"`
	Quantity    int             `json:"quantity"`
	MinStock    int             `json:"min_stock"`
	Barcode     *string         `json:"barcode,omitempty"`
	Description *string         `json:"description,omitempty"`
	StockStatus string          `json:"stock_status"`
	StockValue  decimal.Decimal `json:"stock_value"`
	LowStock    bool            `json:"low_stock,omitempty"`
	CreatedAt   string          `json:"created_at"`
	UpdatedAt   string          `json:"updated_at"`
}

type CustomerRequest struct {
	Name     string          `json:"name"`
	Phone    string          `json:"phone"`
	Email    string          `json:"email"`
	Discount decimal.Decimal `json:"discount"`
}

type CustomerResponse struct {
	Id             int             `json:"id"`
	Name           string          `json:"name"`
	Phone          string          `json:"phone"`
	Email          string          `json:"email"`
	Discount       decimal.Decimal `json:"discount"`
	TotalPurchases decimal.Decimal `json:"total_purchases"`
	CreatedAt      string          `json:"created_at"`
}

type SaleRequest struct {
	ProductId  int  `json:"product_id"`
	Quantity   int  `json:"quantity"`
	CustomerId *int `json:"customer_id,omitempty"` // omitted for guest sales
}

type SaleResponse struct {
	Id         int             `json:"id"`
	ProductId  int             `json:"product_id"`
	CustomerId *int            `json:"customer_id,omitempty"`
	Quantity   int             `json:"quantity"`
	Price      decimal.Decimal `json:"price"`
	Total      decimal.Decimal `json:"total"`
	Date       string          `json:"date"`
}

type SupplyRequest struct {
	Supplier  string          `json:"supplier"`
	ProductId int             `json:"product_id"`
	Quantity  int             `json:"quantity"`
	Cost      decimal.Decimal `json:"cost"`
}

type SupplyResponse struct {
	Id        int             `json:"id"`
	Supplier  string          `json:"supplier"`
	ProductId int             `json:"product_id"`
	Quantity  int             `json:"quantity"`
	Cost      decimal.Decimal `json:"cost"`
	Date      string          `json:"date"`
}

type Meta struct {
	TotalCount int `json:"total_count"`
}

type SalesSearchResult struct {
	Data []SaleResponse `json:"data"`
	Meta Meta           `json:"meta,omitempty"`
}

type SalesTotalResponse struct {
	Since *string         `json:"since,omitempty"`
	Until *string         `json:"until,omitempty"`
	Total decimal.Decimal `json:"total"`
}

type ImportProductsResult struct {
	ImportedProductsCount int                         `json:"imported"`
	Errors                []inventory.ValidationError `json:"errors"`
}
