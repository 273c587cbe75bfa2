// Package query composes the optional product listing filters into gorm
// conditions. Every filter narrows a read-only listing; nothing here writes.
package query

import (
	"net/url"
	"strconv"
	"strings"

	"gorm.io/gorm"
)

type StockStatus string

const (
	StockAny        StockStatus = ""
	StockInStock    StockStatus = "in_stock"
	StockOutOfStock StockStatus = "out_of_stock"
)

// Predicate narrows a product query. Predicates are collected conditionally
// and applied in one pass so composition is order-independent.
type Predicate func(*gorm.DB) *gorm.DB

// ListFilters are the general listing filters. They AND together, each one
// independently optional.
type ListFilters struct {
	MinPrice *float64
	MaxPrice *float64
	Stock    StockStatus
}

// ParseListFilters reads min_price, max_price and stock_status from the URL
// query. Malformed values are treated as absent, never as errors.
func ParseListFilters(values url.Values) ListFilters {
	var f ListFilters

	if v := values.Get("min_price"); v != "" {
		if p, err := strconv.ParseFloat(v, 64); err == nil {
			f.MinPrice = &p
		}
	}
	if v := values.Get("max_price"); v != "" {
		if p, err := strconv.ParseFloat(v, 64); err == nil {
			f.MaxPrice = &p
		}
	}
	switch StockStatus(strings.ToLower(values.Get("stock_status"))) {
	case StockInStock:
		f.Stock = StockInStock
	case StockOutOfStock:
		f.Stock = StockOutOfStock
	}

	return f
}

func (f ListFilters) predicates() []Predicate {
	var preds []Predicate

	if f.MinPrice != nil {
		min := *f.MinPrice
		preds = append(preds, func(db *gorm.DB) *gorm.DB {
			return db.Where("price >= ?", min)
		})
	}
	if f.MaxPrice != nil {
		max := *f.MaxPrice
		preds = append(preds, func(db *gorm.DB) *gorm.DB {
			return db.Where("price <= ?", max)
		})
	}
	switch f.Stock {
	case StockInStock:
		preds = append(preds, func(db *gorm.DB) *gorm.DB {
			return db.Where("stock_quantity > 0")
		})
	case StockOutOfStock:
		preds = append(preds, func(db *gorm.DB) *gorm.DB {
			return db.Where("stock_quantity = 0")
		})
	}

	return preds
}

// Apply narrows db with the AND chain of the present filters.
func (f ListFilters) Apply(db *gorm.DB) *gorm.DB {
	for _, p := range f.predicates() {
		db = p(db)
	}
	return db
}

// SearchFilters are the dedicated search endpoint's filters. When both are
// present they OR together; when neither is present the search is a no-op
// and the full listing comes back.
type SearchFilters struct {
	Name     string
	Category string
}

func ParseSearchFilters(values url.Values) SearchFilters {
	return SearchFilters{
		Name:     values.Get("name"),
		Category: values.Get("category"),
	}
}

// Apply narrows db with the OR composition of the present match predicates.
// The result set is de-duplicated by row identity since OR-composed matches
// can otherwise repeat rows.
func (f SearchFilters) Apply(db *gorm.DB) *gorm.DB {
	nameCond := "lower(name) LIKE ?"
	namePattern := "%" + strings.ToLower(f.Name) + "%"
	categoryCond := "lower(category) = ?"
	categoryVal := strings.ToLower(f.Category)

	switch {
	case f.Name != "" && f.Category != "":
		db = db.Where(nameCond+" OR "+categoryCond, namePattern, categoryVal)
	case f.Name != "":
		db = db.Where(nameCond, namePattern)
	case f.Category != "":
		db = db.Where(categoryCond, categoryVal)
	default:
		return db
	}

	return db.Distinct()
}

// Order applies the stable listing order: by name, ties broken by id.
func Order(db *gorm.DB) *gorm.DB {
	return db.Order("name ASC, id ASC")
}
