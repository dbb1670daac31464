package catalog

import (
	"context"
	"errors"
	"log/slog"
	"sort"
	"strings"

	"github.com/NaumanGems/Nauman-gems/internal/domain"
	apperrors "github.com/NaumanGems/Nauman-gems/pkg/errors"
)

// Service fronts the remote provider with the demo fallback. Remote may be
// nil, in which case the fallback serves everything.
type Service struct {
	remote   Provider
	fallback Provider
	log      *slog.Logger
}

// NewService creates a catalog service.
func NewService(remote Provider, fallback Provider, log *slog.Logger) *Service {
	return &Service{remote: remote, fallback: fallback, log: log}
}

// Products lists products for a category. Any remote failure is logged and
// answered from the fallback catalog.
func (s *Service) Products(ctx context.Context, category string, limit int) ([]domain.Product, error) {
	if s.remote != nil {
		products, err := s.remote.FetchProducts(ctx, category, limit)
		if err == nil {
			return products, nil
		}
		s.log.Warn("remote catalog unavailable, serving fallback", slog.Any("error", err))
	}
	return s.fallback.FetchProducts(ctx, category, limit)
}

// ProductByID resolves one product, preferring the remote catalog.
func (s *Service) ProductByID(ctx context.Context, id string) (domain.Product, error) {
	if s.remote != nil {
		p, err := s.remote.FetchProductByID(ctx, id)
		if err == nil {
			return p, nil
		}
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.log.Warn("remote catalog unavailable, serving fallback", slog.Any("error", err))
		}
	}
	return s.fallback.FetchProductByID(ctx, id)
}

// Search filters, orders and caps the product listing. Returns the page and
// the total match count before the limit was applied.
func (s *Service) Search(ctx context.Context, q Query) ([]domain.Product, int, error) {
	products, err := s.Products(ctx, q.Category, 0)
	if err != nil {
		return nil, 0, err
	}

	matched := make([]domain.Product, 0, len(products))
	for _, p := range products {
		if matches(p, q) {
			matched = append(matched, p)
		}
	}

	sortProducts(matched, q.Sort)

	total := len(matched)
	if q.Limit > 0 && len(matched) > q.Limit {
		matched = matched[:q.Limit]
	}
	return matched, total, nil
}

func matches(p domain.Product, q Query) bool {
	if q.PriceMin > 0 && p.Price < q.PriceMin {
		return false
	}
	if q.PriceMax > 0 && p.Price > q.PriceMax {
		return false
	}

	if q.Search == "" {
		return true
	}

	needle := strings.ToLower(q.Search)
	if strings.Contains(strings.ToLower(p.Title), needle) {
		return true
	}
	if strings.Contains(strings.ToLower(p.Description), needle) {
		return true
	}
	for _, tag := range p.Tags {
		if strings.Contains(strings.ToLower(tag), needle) {
			return true
		}
	}
	return false
}

func sortProducts(products []domain.Product, order string) {
	switch order {
	case SortPriceLow:
		sort.SliceStable(products, func(i, j int) bool {
			return products[i].Price < products[j].Price
		})
	case SortPriceHigh:
		sort.SliceStable(products, func(i, j int) bool {
			return products[i].Price > products[j].Price
		})
	case SortName:
		sort.SliceStable(products, func(i, j int) bool {
			return products[i].Title < products[j].Title
		})
	default:
		// featured first, original order otherwise
		sort.SliceStable(products, func(i, j int) bool {
			return products[i].Featured && !products[j].Featured
		})
	}
}
