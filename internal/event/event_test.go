package event

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/NaumanGems/Nauman-gems/internal/domain"
	"github.com/NaumanGems/Nauman-gems/internal/storage/memory"
	"github.com/NaumanGems/Nauman-gems/internal/store"
	"github.com/NaumanGems/Nauman-gems/pkg/kafka"
)

type capturingProducer struct {
	events []kafka.Event
	err    error
}

func (p *capturingProducer) Publish(_ context.Context, evt kafka.Event) error {
	if p.err != nil {
		return p.err
	}
	p.events = append(p.events, evt)
	return nil
}

func testLogger() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

func TestPublisher_CartUpdated(t *testing.T) {
	producer := &capturingProducer{}
	pub := NewPublisher(producer, testLogger())

	s := store.New(context.Background(), "s1", memory.New(), nil, testLogger(), pub)
	s.AddToCart(context.Background(), domain.Product{ID: "p1", Title: "Ring", Price: 4999})

	require.NotEmpty(t, producer.events)
	evt := producer.events[len(producer.events)-1]
	assert.Equal(t, TypeCartUpdated, evt.EventType)
	assert.Equal(t, "s1", evt.AggregateID)

	var payload cartUpdatedPayload
	require.NoError(t, json.Unmarshal(evt.Payload, &payload))
	assert.Equal(t, 1, payload.Count)
	assert.Equal(t, int64(4999), payload.Subtotal)
}

func TestPublisher_WishlistUpdated(t *testing.T) {
	producer := &capturingProducer{}
	pub := NewPublisher(producer, testLogger())

	s := store.New(context.Background(), "s1", memory.New(), nil, testLogger(), pub)
	s.ToggleWishlist(context.Background(), "p1")

	require.NotEmpty(t, producer.events)
	evt := producer.events[len(producer.events)-1]
	assert.Equal(t, TypeWishlistUpdated, evt.EventType)

	var payload wishlistUpdatedPayload
	require.NoError(t, json.Unmarshal(evt.Payload, &payload))
	assert.Equal(t, []string{"p1"}, payload.ProductIDs)
}

func TestPublisher_BrokerFailureDoesNotBlockMutation(t *testing.T) {
	producer := &capturingProducer{err: errors.New("broker down")}
	pub := NewPublisher(producer, testLogger())

	s := store.New(context.Background(), "s1", memory.New(), nil, testLogger(), pub)
	s.AddToCart(context.Background(), domain.Product{ID: "p1", Price: 100})

	assert.Equal(t, 1, s.CartItemCount())
}

func TestPublisher_NilProducerIsDisabled(t *testing.T) {
	pub := NewPublisher(nil, testLogger())

	assert.NotPanics(t, func() {
		pub.CartUpdated("s1", store.CartSnapshot{})
		pub.CheckoutSubmitted(context.Background(), domain.CheckoutDetails{})
	})
}
