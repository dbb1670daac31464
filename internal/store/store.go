// Package store holds the session-scoped cart and wishlist state and its
// persistence and view-synchronization contract. Every mutation persists
// before returning and notifies observers synchronously, so no caller ever
// observes a badge count that disagrees with the collection behind it.
package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/NaumanGems/Nauman-gems/internal/domain"
	"github.com/NaumanGems/Nauman-gems/internal/storage"
	apperrors "github.com/NaumanGems/Nauman-gems/pkg/errors"
)

// Storage record keys. The session ID is appended so sessions never share
// state.
const (
	cartKey     = "lamour_cart"
	wishlistKey = "lamour_wishlist"
)

// CartSnapshot is the immutable cart view handed to observers.
type CartSnapshot struct {
	Items    []domain.CartItem
	Subtotal int64
	Count    int
}

// WishlistSnapshot is the immutable wishlist view handed to observers.
type WishlistSnapshot struct {
	ProductIDs []string
}

// Observer is notified synchronously after every committed mutation.
// Callbacks run while the store holds its lock; observers must not call
// back into the store.
type Observer interface {
	CartUpdated(sessionID string, snap CartSnapshot)
	WishlistUpdated(sessionID string, snap WishlistSnapshot)
}

// Notifier receives the user-facing toast messages mutations emit.
type Notifier interface {
	Push(sessionID, level, message string)
}

// Store owns the cart and wishlist for one session. All access serializes
// through its mutex.
type Store struct {
	mu        sync.Mutex
	sessionID string
	kv        storage.KV
	notifier  Notifier
	observers []Observer
	log       *slog.Logger

	cart     []domain.CartItem
	wishlist []string

	// degraded is set after a storage write fails; from then on the session
	// runs in-memory only and writes are skipped.
	degraded bool
}

// New loads the session's records from durable storage and returns a ready
// store. Absent or corrupt records start empty; loading never fails.
func New(ctx context.Context, sessionID string, kv storage.KV, notifier Notifier, log *slog.Logger, observers ...Observer) *Store {
	s := &Store{
		sessionID: sessionID,
		kv:        kv,
		notifier:  notifier,
		observers: observers,
		log:       log.With(slog.String("session_id", sessionID)),
	}

	s.cart = loadRecord[[]domain.CartItem](ctx, s, cartKey)
	s.wishlist = loadRecord[[]string](ctx, s, wishlistKey)

	// A reloaded session should show its persisted state immediately.
	s.mu.Lock()
	s.notifyCart()
	s.notifyWishlist()
	s.mu.Unlock()

	return s
}

func loadRecord[T any](ctx context.Context, s *Store, key string) T {
	var out T

	data, err := s.kv.Get(ctx, s.storageKey(key))
	if err != nil {
		if !errors.Is(err, storage.ErrNotFound) {
			s.log.Warn("load record failed, starting empty",
				slog.String("key", key), slog.Any("error", err))
		}
		return out
	}

	if err := json.Unmarshal(data, &out); err != nil {
		s.log.Warn("corrupt record, starting empty",
			slog.String("key", key), slog.Any("error", err))
		var zero T
		return zero
	}
	return out
}

func (s *Store) storageKey(key string) string {
	return key + ":" + s.sessionID
}

// SessionID returns the session this store belongs to.
func (s *Store) SessionID() string {
	return s.sessionID
}

// Degraded reports whether a storage write has failed for this session.
func (s *Store) Degraded() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.degraded
}

// AddToCart merges the product into the cart: an existing line gets its
// quantity bumped, otherwise a quantity-1 default-size line is appended.
func (s *Store) AddToCart(ctx context.Context, p domain.Product) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if i := s.cartIndex(p.ID); i >= 0 {
		s.cart[i].Quantity++
	} else {
		s.cart = append(s.cart, domain.NewCartItem(p))
	}

	s.persistCart(ctx)
	s.notifyCart()
	s.toast("success", fmt.Sprintf("%s added to cart!", p.Title))
}

// RemoveFromCart deletes the line for id. Removing an absent id is a no-op.
func (s *Store) RemoveFromCart(ctx context.Context, id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.cartIndex(id)
	if i < 0 {
		return
	}

	s.cart = append(s.cart[:i], s.cart[i+1:]...)
	s.persistCart(ctx)
	s.notifyCart()
	s.toast("info", "Item removed from cart")
}

// UpdateQuantity sets the quantity for id. A quantity of zero or less
// removes the line, identical to RemoveFromCart. Absent id is a no-op.
func (s *Store) UpdateQuantity(ctx context.Context, id string, quantity int) {
	if quantity <= 0 {
		s.RemoveFromCart(ctx, id)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.cartIndex(id)
	if i < 0 {
		return
	}

	s.cart[i].Quantity = quantity
	s.persistCart(ctx)
	s.notifyCart()
}

// UpdateItemSize sets the ring size for id. Absent id is a no-op.
func (s *Store) UpdateItemSize(ctx context.Context, id string, size int) error {
	if !domain.ValidSize(size) {
		return apperrors.InvalidInput(fmt.Sprintf("size must be between %d and %d", domain.SizeMin, domain.SizeMax))
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.cartIndex(id)
	if i < 0 {
		return nil
	}

	s.cart[i].Size = size
	s.persistCart(ctx)
	s.notifyCart()
	return nil
}

// Clear empties the cart.
func (s *Store) Clear(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.cart = nil
	s.persistCart(ctx)
	s.notifyCart()
}

// CartTotal returns the sum of price * quantity over all lines. Zero for an
// empty cart. Pure read.
func (s *Store) CartTotal() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return cartSubtotal(s.cart)
}

// CartItemCount returns the sum of line quantities.
func (s *Store) CartItemCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return cartCount(s.cart)
}

// Items returns a snapshot copy of the cart lines in insertion order.
func (s *Store) Items() []domain.CartItem {
	s.mu.Lock()
	defer s.mu.Unlock()
	return copyCart(s.cart)
}

// ToggleWishlist adds id to the wishlist, or removes it if already present.
// Returns true when the product ended up on the list.
func (s *Store) ToggleWishlist(ctx context.Context, id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	added := true
	if i := s.wishlistIndex(id); i >= 0 {
		s.wishlist = append(s.wishlist[:i], s.wishlist[i+1:]...)
		added = false
	} else {
		s.wishlist = append(s.wishlist, id)
	}

	s.persistWishlist(ctx)
	s.notifyWishlist()

	if added {
		s.toast("success", "Added to wishlist!")
	} else {
		s.toast("info", "Removed from wishlist")
	}
	return added
}

// InWishlist reports whether id is on the wishlist.
func (s *Store) InWishlist(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.wishlistIndex(id) >= 0
}

// WishlistIDs returns a snapshot copy of the wishlist in insertion order.
func (s *Store) WishlistIDs() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return copyIDs(s.wishlist)
}

func (s *Store) cartIndex(id string) int {
	for i, item := range s.cart {
		if item.ID == id {
			return i
		}
	}
	return -1
}

func (s *Store) wishlistIndex(id string) int {
	for i, wid := range s.wishlist {
		if wid == id {
			return i
		}
	}
	return -1
}

func (s *Store) persistCart(ctx context.Context) {
	s.persist(ctx, cartKey, copyCart(s.cart))
}

func (s *Store) persistWishlist(ctx context.Context) {
	s.persist(ctx, wishlistKey, copyIDs(s.wishlist))
}

func (s *Store) persist(ctx context.Context, key string, record any) {
	if s.degraded {
		return
	}

	data, err := json.Marshal(record)
	if err != nil {
		s.log.Error("marshal record", slog.String("key", key), slog.Any("error", err))
		return
	}

	if err := s.kv.Set(ctx, s.storageKey(key), data); err != nil {
		s.degraded = true
		s.log.Error("storage write failed, session degraded to in-memory",
			slog.String("key", key), slog.Any("error", err))
	}
}

func (s *Store) notifyCart() {
	snap := CartSnapshot{
		Items:    copyCart(s.cart),
		Subtotal: cartSubtotal(s.cart),
		Count:    cartCount(s.cart),
	}
	for _, o := range s.observers {
		o.CartUpdated(s.sessionID, snap)
	}
}

func (s *Store) notifyWishlist() {
	snap := WishlistSnapshot{ProductIDs: copyIDs(s.wishlist)}
	for _, o := range s.observers {
		o.WishlistUpdated(s.sessionID, snap)
	}
}

func (s *Store) toast(level, message string) {
	if s.notifier != nil {
		s.notifier.Push(s.sessionID, level, message)
	}
}

func cartSubtotal(items []domain.CartItem) int64 {
	var total int64
	for _, item := range items {
		total += item.LineTotal()
	}
	return total
}

func cartCount(items []domain.CartItem) int {
	count := 0
	for _, item := range items {
		count += item.Quantity
	}
	return count
}

func copyCart(items []domain.CartItem) []domain.CartItem {
	out := make([]domain.CartItem, len(items))
	copy(out, items)
	return out
}

func copyIDs(ids []string) []string {
	out := make([]string, len(ids))
	copy(out, ids)
	return out
}
