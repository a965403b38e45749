package models

import (
	"errors"
	"fmt"
	"strings"
)

var ErrUnknownCategory = errors.New("unknown category")

// Category is the closed set of FAQ topics.
type Category string

const (
	CategoryPricing      Category = "pricing"
	CategoryBooking      Category = "booking"
	CategoryPayment      Category = "payment"
	CategoryTechnical    Category = "technical"
	CategoryDelivery     Category = "delivery"
	CategoryDriver       Category = "driver"
	CategoryCancellation Category = "cancellation"
	CategoryComplaint    Category = "complaint"
	CategoryGeneral      Category = "general"
)

// AllCategories lists every category in display order.
var AllCategories = []Category{
	CategoryPricing,
	CategoryBooking,
	CategoryPayment,
	CategoryTechnical,
	CategoryDelivery,
	CategoryDriver,
	CategoryCancellation,
	CategoryComplaint,
	CategoryGeneral,
}

// Valid reports whether c belongs to the closed category set.
func (c Category) Valid() bool {
	for _, known := range AllCategories {
		if c == known {
			return true
		}
	}
	return false
}

// ParseCategory converts a raw tag into a Category.
func ParseCategory(raw string) (Category, error) {
	c := Category(strings.ToLower(strings.TrimSpace(raw)))
	if !c.Valid() {
		return "", fmt.Errorf("%w: %q", ErrUnknownCategory, raw)
	}
	return c, nil
}
