// Package view keeps the rendered UI fragments in sync with the store.
// Each type is a store observer: it rebuilds its view model synchronously
// inside the mutating call, so a fragment read immediately after a mutation
// already reflects it.
package view

import (
	"context"
	"sync"

	"github.com/NaumanGems/Nauman-gems/internal/domain"
	"github.com/NaumanGems/Nauman-gems/internal/store"
)

// BadgeModel is the header badge fragment.
type BadgeModel struct {
	CartCount     int `json:"cart_count"`
	WishlistCount int `json:"wishlist_count"`
}

// Badge tracks per-session badge counts.
type Badge struct {
	mu     sync.RWMutex
	badges map[string]BadgeModel
}

// NewBadge creates a badge observer.
func NewBadge() *Badge {
	return &Badge{badges: make(map[string]BadgeModel)}
}

// CartUpdated implements store.Observer.
func (b *Badge) CartUpdated(sessionID string, snap store.CartSnapshot) {
	b.mu.Lock()
	defer b.mu.Unlock()

	model := b.badges[sessionID]
	model.CartCount = snap.Count
	b.badges[sessionID] = model
}

// WishlistUpdated implements store.Observer.
func (b *Badge) WishlistUpdated(sessionID string, snap store.WishlistSnapshot) {
	b.mu.Lock()
	defer b.mu.Unlock()

	model := b.badges[sessionID]
	model.WishlistCount = len(snap.ProductIDs)
	b.badges[sessionID] = model
}

// Render returns the session's badge.
func (b *Badge) Render(sessionID string) BadgeModel {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.badges[sessionID]
}

// CartLine is one rendered cart row.
type CartLine struct {
	domain.CartItem
	LineTotal int64 `json:"line_total"`
}

// CartPanelModel is the cart drawer fragment.
type CartPanelModel struct {
	Lines       []CartLine `json:"lines"`
	Subtotal    int64      `json:"subtotal"`
	Empty       bool       `json:"empty"`
	SizeOptions []int      `json:"size_options"`
}

// CartPanel tracks the rendered cart per session.
type CartPanel struct {
	mu     sync.RWMutex
	panels map[string]CartPanelModel
}

// NewCartPanel creates a cart panel observer.
func NewCartPanel() *CartPanel {
	return &CartPanel{panels: make(map[string]CartPanelModel)}
}

// CartUpdated implements store.Observer.
func (p *CartPanel) CartUpdated(sessionID string, snap store.CartSnapshot) {
	lines := make([]CartLine, 0, len(snap.Items))
	for _, item := range snap.Items {
		lines = append(lines, CartLine{CartItem: item, LineTotal: item.LineTotal()})
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	p.panels[sessionID] = CartPanelModel{
		Lines:       lines,
		Subtotal:    snap.Subtotal,
		Empty:       len(lines) == 0,
		SizeOptions: sizeOptions(),
	}
}

// WishlistUpdated implements store.Observer.
func (p *CartPanel) WishlistUpdated(string, store.WishlistSnapshot) {}

// Render returns the session's cart panel.
func (p *CartPanel) Render(sessionID string) CartPanelModel {
	p.mu.RLock()
	defer p.mu.RUnlock()

	model, ok := p.panels[sessionID]
	if !ok {
		return CartPanelModel{Empty: true, SizeOptions: sizeOptions()}
	}
	return model
}

func sizeOptions() []int {
	opts := make([]int, 0, domain.SizeMax-domain.SizeMin+1)
	for s := domain.SizeMin; s <= domain.SizeMax; s++ {
		opts = append(opts, s)
	}
	return opts
}

// ProductResolver resolves wishlist ids to products, served by the catalog.
type ProductResolver interface {
	ProductByID(ctx context.Context, id string) (domain.Product, error)
}

// WishlistPanelModel is the wishlist fragment.
type WishlistPanelModel struct {
	Items []domain.Product `json:"items"`
	Count int              `json:"count"`
}

// WishlistPanel tracks wishlist ids per session and resolves product
// details at render time, so a catalog outage never blocks a mutation.
type WishlistPanel struct {
	mu       sync.RWMutex
	ids      map[string][]string
	resolver ProductResolver
}

// NewWishlistPanel creates a wishlist panel observer.
func NewWishlistPanel(resolver ProductResolver) *WishlistPanel {
	return &WishlistPanel{
		ids:      make(map[string][]string),
		resolver: resolver,
	}
}

// CartUpdated implements store.Observer.
func (p *WishlistPanel) CartUpdated(string, store.CartSnapshot) {}

// WishlistUpdated implements store.Observer.
func (p *WishlistPanel) WishlistUpdated(sessionID string, snap store.WishlistSnapshot) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.ids[sessionID] = snap.ProductIDs
}

// Render resolves and returns the session's wishlist. Ids the catalog no
// longer knows are skipped.
func (p *WishlistPanel) Render(ctx context.Context, sessionID string) WishlistPanelModel {
	p.mu.RLock()
	ids := p.ids[sessionID]
	p.mu.RUnlock()

	items := make([]domain.Product, 0, len(ids))
	for _, id := range ids {
		product, err := p.resolver.ProductByID(ctx, id)
		if err != nil {
			continue
		}
		items = append(items, product)
	}

	return WishlistPanelModel{Items: items, Count: len(ids)}
}
