package submit

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/NaumanGems/Nauman-gems/internal/domain"
	"github.com/NaumanGems/Nauman-gems/internal/storage/memory"
	apperrors "github.com/NaumanGems/Nauman-gems/pkg/errors"
)

func testLogger() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

type mockSink struct {
	mock.Mock
}

func (m *mockSink) SubmitContact(ctx context.Context, c domain.Contact) (string, error) {
	args := m.Called(ctx, c)
	return args.String(0), args.Error(1)
}

func (m *mockSink) SubmitNewsletter(ctx context.Context, n domain.NewsletterSignup) (string, error) {
	args := m.Called(ctx, n)
	return args.String(0), args.Error(1)
}

func (m *mockSink) SubmitCheckout(ctx context.Context, d domain.CheckoutDetails) (string, error) {
	args := m.Called(ctx, d)
	return args.String(0), args.Error(1)
}

func checkout(sessionID string) domain.CheckoutDetails {
	return domain.CheckoutDetails{
		SessionID: sessionID,
		Customer:  domain.CheckoutCustomer{Email: "a@example.com"},
		Items: []domain.CartItem{
			{ID: "p1", Title: "Pearl Halo Ring", Price: 4999, Quantity: 2, Size: 1},
		},
		Subtotal: 9998,
	}
}

func TestService_Checkout_SinkSuccess(t *testing.T) {
	sink := &mockSink{}
	sink.On("SubmitCheckout", mock.Anything, mock.MatchedBy(func(d domain.CheckoutDetails) bool {
		return d.Status == domain.CheckoutStatusPending && d.SessionID == "s1"
	})).Return("order-1", nil)

	kv := memory.New()
	svc := NewService(sink, kv, testLogger())

	id, err := svc.Checkout(context.Background(), checkout("s1"))
	require.NoError(t, err)
	assert.Equal(t, "order-1", id)

	orders, err := svc.FallbackOrders(context.Background())
	require.NoError(t, err)
	assert.Empty(t, orders)
}

func TestService_Checkout_SinkFailureDivertsToFallback(t *testing.T) {
	sink := &mockSink{}
	sink.On("SubmitCheckout", mock.Anything, mock.Anything).
		Return("", errors.New("connection refused"))

	kv := memory.New()
	svc := NewService(sink, kv, testLogger())

	id, err := svc.Checkout(context.Background(), checkout("s1"))
	require.NoError(t, err, "a sink failure must not fail the checkout")
	assert.True(t, strings.HasPrefix(id, "fallback_"))

	orders, err := svc.FallbackOrders(context.Background())
	require.NoError(t, err)
	require.Len(t, orders, 1)
	assert.Equal(t, id, orders[0].ID)
	assert.Equal(t, domain.CheckoutStatusPending, orders[0].Status)
	assert.Equal(t, int64(9998), orders[0].Subtotal)
}

func TestService_Checkout_FallbackAppends(t *testing.T) {
	svc := NewService(nil, memory.New(), testLogger())
	ctx := context.Background()

	id1, err := svc.Checkout(ctx, checkout("s1"))
	require.NoError(t, err)
	id2, err := svc.Checkout(ctx, checkout("s2"))
	require.NoError(t, err)
	assert.NotEqual(t, id1, id2)

	orders, err := svc.FallbackOrders(ctx)
	require.NoError(t, err)
	require.Len(t, orders, 2)
	assert.Equal(t, "s1", orders[0].SessionID)
	assert.Equal(t, "s2", orders[1].SessionID)
}

func TestService_ContactErrorPropagates(t *testing.T) {
	sink := &mockSink{}
	sink.On("SubmitContact", mock.Anything, mock.Anything).
		Return("", errors.New("connection refused"))

	svc := NewService(sink, memory.New(), testLogger())

	_, err := svc.Contact(context.Background(), domain.Contact{
		Name: "A", Email: "a@example.com", Message: "hi",
	})
	assert.Error(t, err)
}

func TestPostgresSink_SubmitCheckout(t *testing.T) {
	mockDB, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mockDB.Close)

	mockDB.ExpectQuery("INSERT INTO orders").
		WithArgs("s1", "a@example.com", "", "", pgxmock.AnyArg(), int64(9998), domain.CheckoutStatusPending).
		WillReturnRows(pgxmock.NewRows([]string{"id"}).AddRow("order-9"))

	sink := NewPostgresSink(mockDB)

	d := checkout("s1")
	d.Status = domain.CheckoutStatusPending
	id, err := sink.SubmitCheckout(context.Background(), d)
	require.NoError(t, err)
	assert.Equal(t, "order-9", id)
	assert.NoError(t, mockDB.ExpectationsWereMet())
}

func TestPostgresSink_SubmitNewsletter_Duplicate(t *testing.T) {
	mockDB, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mockDB.Close)

	mockDB.ExpectQuery("INSERT INTO newsletter_signups").
		WithArgs("a@example.com").
		WillReturnError(&pgconn.PgError{Code: "23505"})

	sink := NewPostgresSink(mockDB)

	_, err = sink.SubmitNewsletter(context.Background(), domain.NewsletterSignup{Email: "a@example.com"})
	assert.ErrorIs(t, err, apperrors.ErrAlreadyExists)
}
