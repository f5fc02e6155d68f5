package catalog

import (
	"sort"
	"strings"
)

// SortOption enumerates the supported sort keys.
type SortOption string

const (
	SortNewest       SortOption = "Newest"
	SortPriceHighLow SortOption = "Price: High to Low"
	SortPriceLowHigh SortOption = "Price: Low to High"
	SortBestRated    SortOption = "Best Rated"
)

// Filters narrows and orders the catalog view. Zero values mean
// "unconstrained": a zero price bound is unset, an empty brand/category
// matches everything.
type Filters struct {
	MinPrice float64    `json:"minPrice"`
	MaxPrice float64    `json:"maxPrice"`
	Brand    string     `json:"brand"`
	Category string     `json:"category"`
	SortBy   SortOption `json:"sortby"`
}

// DefaultFilters is the unconstrained filter set used at startup and after
// a clear.
func DefaultFilters() Filters {
	return Filters{SortBy: SortNewest}
}

// Apply returns a fresh slice of products narrowed and ordered by f.
// The input slice is never mutated and relative input order is kept for
// equal sort keys, so applying the same filters twice yields the same
// result.
func Apply(products []Product, f Filters) []Product {
	out := make([]Product, 0, len(products))
	for _, p := range products {
		if !matches(p, f) {
			continue
		}
		out = append(out, p)
	}
	sortProducts(out, f.SortBy)
	return out
}

func matches(p Product, f Filters) bool {
	// price bounds are inclusive; an unset bound means 0 / +inf
	if f.MinPrice > 0 && p.Price < f.MinPrice {
		return false
	}
	if f.MaxPrice > 0 && p.Price > f.MaxPrice {
		return false
	}
	if f.Brand != "" && !strings.EqualFold(p.Brand, f.Brand) {
		return false
	}
	if f.Category != "" && !strings.EqualFold(p.CategoryOrType(), f.Category) {
		return false
	}
	return true
}

// sortProducts orders ps in place. Price keys use the listed price, not the
// discounted one, matching how the storefront has always ranked products.
func sortProducts(ps []Product, by SortOption) {
	switch by {
	case SortPriceHighLow:
		sort.SliceStable(ps, func(i, j int) bool { return ps[i].Price > ps[j].Price })
	case SortPriceLowHigh:
		sort.SliceStable(ps, func(i, j int) bool { return ps[i].Price < ps[j].Price })
	case SortBestRated:
		sort.SliceStable(ps, func(i, j int) bool { return ps[i].Rating > ps[j].Rating })
	default:
		// Newest: createdAt is RFC3339, so string comparison orders by time.
		// Ties keep the original catalog order.
		sort.SliceStable(ps, func(i, j int) bool { return ps[i].CreatedAt > ps[j].CreatedAt })
	}
}
