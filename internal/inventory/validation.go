package inventory

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// moneyPlaces is the precision stored for prices, costs and discounts.
const moneyPlaces = 2

func tooPrecise(d decimal.Decimal) bool {
	return !d.Equal(d.Round(moneyPlaces))
}

// joinValidation folds field errors into one error, or nil when there are none.
func joinValidation(errs []*ValidationError) error {
	if len(errs) == 0 {
		return nil
	}
	joined := make([]error, len(errs))
	for i, e := range errs {
		joined[i] = e
	}
	return errors.Join(joined...)
}

// FieldErrors returns every ValidationError carried by err.
func FieldErrors(err error) []ValidationError {
	if err == nil {
		return nil
	}

	var out []ValidationError
	if multi, ok := err.(interface{ Unwrap() []error }); ok {
		for _, e := range multi.Unwrap() {
			out = append(out, FieldErrors(e)...)
		}
		return out
	}

	var ve *ValidationError
	if errors.As(err, &ve) {
		out = append(out, *ve)
	}
	return out
}

func validateNewProduct(p NewProduct) error {
	var errs []*ValidationError
	if !p.Category.Valid() {
		errs = append(errs, &ValidationError{Field: "category", Description: "unknown category"})
	}
	if p.Price.IsNegative() {
		errs = append(errs, &ValidationError{Field: "price", Description: "price cannot be negative"})
	} else if tooPrecise(p.Price) {
		errs = append(errs, &ValidationError{Field: "price", Description: "price cannot have more than 2 decimal places"})
	}
	if p.Quantity < 0 {
		errs = append(errs, &ValidationError{Field: "quantity", Description: "quantity cannot be negative"})
	}
	if p.MinStock < 0 {
		errs = append(errs, &ValidationError{Field: "min_stock", Description: "min stock cannot be negative"})
	}
	return joinValidation(errs)
}

func validateNewCustomer(c NewCustomer) error {
	if c.Discount.IsNegative() || c.Discount.GreaterThan(hundred) {
		return &ValidationError{Field: "discount", Description: "discount must be between 0 and 100"}
	}
	if tooPrecise(c.Discount) {
		return &ValidationError{Field: "discount", Description: "discount cannot have more than 2 decimal places"}
	}
	return nil
}

func validateSell(req SellRequest) error {
	if req.Quantity <= 0 {
		return &ValidationError{Field: "quantity", Description: "quantity must be greater than zero"}
	}
	return nil
}

func validateSupply(req SupplyRequest) error {
	var errs []*ValidationError
	if req.Quantity <= 0 {
		errs = append(errs, &ValidationError{Field: "quantity", Description: "quantity must be greater than zero"})
	}
	if req.Cost.IsNegative() {
		errs = append(errs, &ValidationError{Field: "cost", Description: "cost cannot be negative"})
	} else if tooPrecise(req.Cost) {
		errs = append(errs, &ValidationError{Field: "cost", Description: "cost cannot have more than 2 decimal places"})
	}
	return joinValidation(errs)
}

func validateWindow(since, until *time.Time) error {
	if since != nil && until != nil && since.After(*until) {
		return &ValidationError{Field: "since", Description: "start of the window is after its end"}
	}
	return nil
}
