package catalog

import (
	"context"
	"fmt"
	"math/rand"
	"strings"

	"github.com/NaumanGems/Nauman-gems/internal/domain"
	apperrors "github.com/NaumanGems/Nauman-gems/pkg/errors"
)

// Demo catalog shape: gem names cycled across the four categories, prices
// drawn around a per-category base. Generation is seeded so every boot (and
// every test) sees the same catalog.
const fallbackCatalogSize = 110

const featuredCount = 10

var gemNames = []string{
	"Solitaire", "Halo", "Eternity", "Vintage", "Teardrop",
	"Princess", "Cushion", "Marquise", "Emerald Cut", "Oval",
	"Radiant", "Asscher", "Pear", "Trillion", "Baguette",
	"Cluster", "Three Stone", "Infinity", "Twist", "Cathedral",
}

type priceBand struct {
	base  int64
	swing int64
}

var categoryPrices = map[string]priceBand{
	domain.CategoryPearl:      {base: 4500, swing: 3000},
	domain.CategoryGlassFill:  {base: 2500, swing: 1500},
	domain.CategoryZircon:     {base: 3500, swing: 2000},
	domain.CategoryMoissanite: {base: 8500, swing: 5000},
}

// FallbackProvider serves the generated demo catalog from memory.
type FallbackProvider struct {
	products []domain.Product
	byID     map[string]domain.Product
}

// NewFallbackProvider generates the demo catalog with the given seed.
func NewFallbackProvider(seed int64) *FallbackProvider {
	rng := rand.New(rand.NewSource(seed))
	categories := domain.Categories()

	products := make([]domain.Product, 0, fallbackCatalogSize)
	byID := make(map[string]domain.Product, fallbackCatalogSize)

	for i := 0; i < fallbackCatalogSize; i++ {
		category := categories[i%len(categories)]
		gem := gemNames[(i/len(categories))%len(gemNames)]
		band := categoryPrices[category]

		// base price plus a variation within the category's band
		price := band.base + rng.Int63n(2*band.swing+1) - band.swing

		p := domain.Product{
			ID:       fmt.Sprintf("demo-%03d", i+1),
			Title:    fmt.Sprintf("%s %s Ring", titleCase(category), gem),
			Price:    price,
			Image:    fmt.Sprintf("/images/products/demo-%03d.jpg", i+1),
			Category: category,
			Description: fmt.Sprintf("Handcrafted %s ring with a %s setting.",
				category, strings.ToLower(gem)),
			Featured: i < featuredCount,
			Tags:     []string{category, strings.ToLower(gem), "ring"},
		}

		products = append(products, p)
		byID[p.ID] = p
	}

	return &FallbackProvider{products: products, byID: byID}
}

// FetchProducts returns demo products, optionally filtered by category and
// capped at limit.
func (f *FallbackProvider) FetchProducts(_ context.Context, category string, limit int) ([]domain.Product, error) {
	out := make([]domain.Product, 0, len(f.products))
	for _, p := range f.products {
		if category != "" && p.Category != category {
			continue
		}
		out = append(out, p)
		if limit > 0 && len(out) == limit {
			break
		}
	}
	return out, nil
}

// FetchProductByID looks up one demo product.
func (f *FallbackProvider) FetchProductByID(_ context.Context, id string) (domain.Product, error) {
	p, ok := f.byID[id]
	if !ok {
		return domain.Product{}, apperrors.NotFound("product", id)
	}
	return p, nil
}

func titleCase(s string) string {
	words := strings.Fields(s)
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}
