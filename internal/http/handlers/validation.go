package handlers

import (
	"net/mail"
	"strings"

	"github.com/rogerio-castellano/store-inventory/internal/inventory"
)

// These checks are the form-level rules of the store front. Range checks
// belong to the inventory service.

func validateProduct(p ProductRequest) []inventory.ValidationError {
	errs := []inventory.ValidationError{}
	if strings.TrimSpace(p.Name) == "" {
		errs = append(errs, inventory.ValidationError{Field: "name", Description: "name is required"})
	}
	return errs
}

func validateCustomer(c CustomerRequest) []inventory.ValidationError {
	errs := []inventory.ValidationError{}
	if strings.TrimSpace(c.Name) == "" {
		errs = append(errs, inventory.ValidationError{Field: "name", Description: "name is required"})
	}
	if strings.TrimSpace(c.Email) == "" {
		errs = append(errs, inventory.ValidationError{Field: "email", Description: "email is required"})
	} else if _, err := mail.ParseAddress(c.Email); err != nil {
		errs = append(errs, inventory.ValidationError{Field: "email", Description: "email is not a valid address"})
	}
	return errs
}

func validateSupply(s SupplyRequest) []inventory.ValidationError {
	errs := []inventory.ValidationError{}
	if strings.TrimSpace(s.Supplier) == "" {
		errs = append(errs, inventory.ValidationError{Field: "supplier", Description: "supplier is required"})
	}
	return errs
}
