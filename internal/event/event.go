// Package event publishes storefront domain events to Kafka. Publishing is
// strictly best-effort: a broker outage is logged and never fails or delays
// the user action that raised the event.
package event

import (
	"context"
	"log/slog"

	"github.com/NaumanGems/Nauman-gems/internal/domain"
	"github.com/NaumanGems/Nauman-gems/internal/store"
	"github.com/NaumanGems/Nauman-gems/pkg/kafka"
)

// Event types.
const (
	TypeCartUpdated       = "storefront.cart.updated"
	TypeWishlistUpdated   = "storefront.wishlist.updated"
	TypeCheckoutSubmitted = "storefront.checkout.submitted"
)

// Producer publishes envelope events, satisfied by kafka.Producer.
type Producer interface {
	Publish(ctx context.Context, event kafka.Event) error
}

// Publisher turns store changes and checkouts into Kafka events. It
// implements store.Observer. The producer may be nil, which disables
// publishing entirely.
type Publisher struct {
	producer Producer
	log      *slog.Logger
}

// NewPublisher creates a Publisher.
func NewPublisher(producer Producer, log *slog.Logger) *Publisher {
	return &Publisher{producer: producer, log: log}
}

type cartUpdatedPayload struct {
	SessionID string            `json:"session_id"`
	Items     []domain.CartItem `json:"items"`
	Subtotal  int64             `json:"subtotal"`
	Count     int               `json:"count"`
}

type wishlistUpdatedPayload struct {
	SessionID  string   `json:"session_id"`
	ProductIDs []string `json:"product_ids"`
}

// CartUpdated implements store.Observer.
func (p *Publisher) CartUpdated(sessionID string, snap store.CartSnapshot) {
	p.publish(TypeCartUpdated, sessionID, cartUpdatedPayload{
		SessionID: sessionID,
		Items:     snap.Items,
		Subtotal:  snap.Subtotal,
		Count:     snap.Count,
	})
}

// WishlistUpdated implements store.Observer.
func (p *Publisher) WishlistUpdated(sessionID string, snap store.WishlistSnapshot) {
	p.publish(TypeWishlistUpdated, sessionID, wishlistUpdatedPayload{
		SessionID:  sessionID,
		ProductIDs: snap.ProductIDs,
	})
}

// CheckoutSubmitted publishes the order handoff event.
func (p *Publisher) CheckoutSubmitted(ctx context.Context, order domain.CheckoutDetails) {
	p.publishCtx(ctx, TypeCheckoutSubmitted, order.SessionID, order)
}

func (p *Publisher) publish(eventType, aggregateID string, payload any) {
	p.publishCtx(context.Background(), eventType, aggregateID, payload)
}

func (p *Publisher) publishCtx(ctx context.Context, eventType, aggregateID string, payload any) {
	if p.producer == nil {
		return
	}

	evt, err := kafka.NewEvent(eventType, aggregateID, "", payload)
	if err != nil {
		p.log.Error("build event", slog.String("event_type", eventType), slog.Any("error", err))
		return
	}

	if err := p.producer.Publish(ctx, evt); err != nil {
		p.log.Warn("event publish failed",
			slog.String("event_type", eventType), slog.Any("error", err))
	}
}
