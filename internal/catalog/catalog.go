// Package catalog serves the product catalog. Products come from the remote
// catalog API when it is reachable and from a generated demo catalog when it
// is not; browsing never fails because the collaborator is down.
package catalog

import (
	"context"

	"github.com/NaumanGems/Nauman-gems/internal/domain"
)

// Provider supplies catalog products.
type Provider interface {
	FetchProducts(ctx context.Context, category string, limit int) ([]domain.Product, error)
	FetchProductByID(ctx context.Context, id string) (domain.Product, error)
}

// Sort orders accepted by Query.
const (
	SortFeatured  = "featured"
	SortPriceLow  = "price-low"
	SortPriceHigh = "price-high"
	SortName      = "name"
)

// Query filters and orders a product listing.
type Query struct {
	Search   string
	Category string
	PriceMin int64
	PriceMax int64
	Sort     string
	Limit    int
}
