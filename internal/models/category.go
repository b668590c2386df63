package models

import (
	"fmt"
	"strings"
)

// Category is the closed set of product categories.
type Category string

const (
	CategoryElectronics Category = "ELECTRONICS"
	CategoryClothing    Category = "CLOTHING"
	CategoryGrocery     Category = "GROCERY"
	CategoryBooks       Category = "BOOKS"
	CategoryOther       Category = "OTHER"
)

var categories = []Category{
	CategoryElectronics,
	CategoryClothing,
	CategoryGrocery,
	CategoryBooks,
	CategoryOther,
}

// Categories returns every category in declaration order.
func Categories() []Category {
	out := make([]Category, len(categories))
	copy(out, categories)
	return out
}

func (c Category) Valid() bool {
	for _, known := range categories {
		if c == known {
			return true
		}
	}
	return false
}

func (c Category) String() string {
	return string(c)
}

// ParseCategory matches s against the known categories, ignoring case and surrounding spaces.
func ParseCategory(s string) (Category, error) {
	c := Category(strings.ToUpper(strings.TrimSpace(s)))
	if !c.Valid() {
		return "", fmt.Errorf("unknown category %q", s)
	}
	return c, nil
}
