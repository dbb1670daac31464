package submit

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/NaumanGems/Nauman-gems/internal/domain"
	"github.com/NaumanGems/Nauman-gems/internal/storage"
)

// FallbackOrdersKey is the durable-KV record fallback checkouts append to.
const FallbackOrdersKey = "fallback_orders"

// Service fronts the sink. Contact and newsletter errors propagate to the
// caller; checkout errors divert the order to the fallback log and still
// succeed.
type Service struct {
	sink Sink
	kv   storage.KV
	log  *slog.Logger
}

// NewService creates a submission service. The sink may be nil when the
// backing database is unreachable at boot; every checkout then goes to the
// fallback log.
func NewService(sink Sink, kv storage.KV, log *slog.Logger) *Service {
	return &Service{sink: sink, kv: kv, log: log}
}

// Contact delivers a contact message.
func (s *Service) Contact(ctx context.Context, c domain.Contact) (string, error) {
	if s.sink == nil {
		return "", errors.New("submission sink unavailable")
	}
	return s.sink.SubmitContact(ctx, c)
}

// Newsletter delivers a newsletter signup.
func (s *Service) Newsletter(ctx context.Context, n domain.NewsletterSignup) (string, error) {
	if s.sink == nil {
		return "", errors.New("submission sink unavailable")
	}
	return s.sink.SubmitNewsletter(ctx, n)
}

// Checkout delivers the order snapshot. A sink failure appends the order to
// the fallback log under a locally generated fallback_<uuid> id; the caller
// still gets an id and no error.
func (s *Service) Checkout(ctx context.Context, d domain.CheckoutDetails) (string, error) {
	d.Status = domain.CheckoutStatusPending
	d.CreatedAt = time.Now().UTC()

	if s.sink != nil {
		id, err := s.sink.SubmitCheckout(ctx, d)
		if err == nil {
			return id, nil
		}
		s.log.Error("checkout sink write failed, diverting to fallback log",
			slog.String("session_id", d.SessionID), slog.Any("error", err))
	}

	return s.writeFallback(ctx, d)
}

func (s *Service) writeFallback(ctx context.Context, d domain.CheckoutDetails) (string, error) {
	d.ID = "fallback_" + uuid.NewString()

	var orders []domain.CheckoutDetails
	data, err := s.kv.Get(ctx, FallbackOrdersKey)
	if err == nil {
		if err := json.Unmarshal(data, &orders); err != nil {
			s.log.Warn("corrupt fallback order log, starting fresh", slog.Any("error", err))
			orders = nil
		}
	} else if !errors.Is(err, storage.ErrNotFound) {
		return "", fmt.Errorf("read fallback order log: %w", err)
	}

	orders = append(orders, d)

	data, err = json.Marshal(orders)
	if err != nil {
		return "", fmt.Errorf("marshal fallback order log: %w", err)
	}
	if err := s.kv.Set(ctx, FallbackOrdersKey, data); err != nil {
		return "", fmt.Errorf("write fallback order log: %w", err)
	}

	s.log.Info("checkout stored in fallback log", slog.String("order_id", d.ID))
	return d.ID, nil
}

// FallbackOrders lists the orders captured while the sink was down.
func (s *Service) FallbackOrders(ctx context.Context) ([]domain.CheckoutDetails, error) {
	data, err := s.kv.Get(ctx, FallbackOrdersKey)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read fallback order log: %w", err)
	}

	var orders []domain.CheckoutDetails
	if err := json.Unmarshal(data, &orders); err != nil {
		return nil, fmt.Errorf("decode fallback order log: %w", err)
	}
	return orders, nil
}
