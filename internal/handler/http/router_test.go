package http

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/NaumanGems/Nauman-gems/internal/auth"
	"github.com/NaumanGems/Nauman-gems/internal/catalog"
	"github.com/NaumanGems/Nauman-gems/internal/domain"
	"github.com/NaumanGems/Nauman-gems/internal/event"
	"github.com/NaumanGems/Nauman-gems/internal/notify"
	"github.com/NaumanGems/Nauman-gems/internal/storage/memory"
	"github.com/NaumanGems/Nauman-gems/internal/store"
	"github.com/NaumanGems/Nauman-gems/internal/submit"
	"github.com/NaumanGems/Nauman-gems/internal/view"
	apperrors "github.com/NaumanGems/Nauman-gems/pkg/errors"
	"github.com/NaumanGems/Nauman-gems/pkg/health"
)

type memUserRepo struct {
	mu    sync.Mutex
	users map[string]domain.User
	seq   int
}

func newMemUserRepo() *memUserRepo {
	return &memUserRepo{users: make(map[string]domain.User)}
}

func (r *memUserRepo) Create(_ context.Context, user domain.User) (domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.users[user.Email]; exists {
		return domain.User{}, apperrors.AlreadyExists("user", "email", user.Email)
	}
	r.seq++
	user.ID = fmt.Sprintf("u%d", r.seq)
	user.CreatedAt = time.Now()
	r.users[user.Email] = user
	return user, nil
}

func (r *memUserRepo) GetByEmail(_ context.Context, email string) (domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	user, ok := r.users[email]
	if !ok {
		return domain.User{}, apperrors.NotFound("user", email)
	}
	return user, nil
}

func (r *memUserRepo) GetByID(_ context.Context, id string) (domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, user := range r.users {
		if user.ID == id {
			return user, nil
		}
	}
	return domain.User{}, apperrors.NotFound("user", id)
}

type testEnv struct {
	server      *httptest.Server
	kv          *memory.KV
	submissions *submit.Service
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	log := slog.New(slog.DiscardHandler)
	kv := memory.New()
	toasts := notify.NewBuffer()

	catalogSvc := catalog.NewService(nil, catalog.NewFallbackProvider(1), log)

	badge := view.NewBadge()
	cartPanel := view.NewCartPanel()
	wishlistPanel := view.NewWishlistPanel(catalogSvc)
	events := event.NewPublisher(nil, log)

	stores := store.NewManager(kv, toasts, log, badge, cartPanel, wishlistPanel, events)

	tokens := auth.NewTokenManager("test-secret-test-secret", 15*time.Minute, time.Hour)
	authSvc := auth.NewService(newMemUserRepo(), tokens, log)

	submissions := submit.NewService(nil, kv, log)

	h := NewHandler(Deps{
		Stores:        stores,
		Catalog:       catalogSvc,
		Auth:          authSvc,
		Submissions:   submissions,
		Toasts:        toasts,
		Badge:         badge,
		CartPanel:     cartPanel,
		WishlistPanel: wishlistPanel,
		Events:        events,
		CheckoutURL:   "https://pay.example.com/checkout",
		Log:           log,
	})

	router := NewRouter(h, health.NewHandler(time.Second), prometheus.NewRegistry(), RouterConfig{
		RequestTimeout: 5 * time.Second,
		ServiceName:    "storefront-test",
	}, log)

	server := httptest.NewServer(router)
	t.Cleanup(server.Close)

	return &testEnv{server: server, kv: kv, submissions: submissions}
}

func (e *testEnv) do(t *testing.T, method, path, sessionID string, body any) (*http.Response, map[string]any) {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequest(method, e.server.URL+path, reader)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	if sessionID != "" {
		req.Header.Set(SessionHeader, sessionID)
	}

	resp, err := e.server.Client().Do(req)
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })

	var envelope map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&envelope))
	return resp, envelope
}

func data(t *testing.T, envelope map[string]any) map[string]any {
	t.Helper()
	d, ok := envelope["data"].(map[string]any)
	require.True(t, ok, "expected data object, got %v", envelope)
	return d
}

func TestCartFlow(t *testing.T) {
	env := newTestEnv(t)

	// add the same product twice: one line, quantity 2
	resp, body := env.do(t, http.MethodPost, "/api/v1/cart/items", "s1",
		map[string]string{"product_id": "demo-001"})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp, body = env.do(t, http.MethodPost, "/api/v1/cart/items", "s1",
		map[string]string{"product_id": "demo-001"})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	cart := data(t, body)
	assert.Equal(t, float64(2), cart["count"])
	items := cart["items"].([]any)
	require.Len(t, items, 1)
	assert.Equal(t, float64(2), items[0].(map[string]any)["quantity"])

	// badge view synchronized with the mutation
	resp, body = env.do(t, http.MethodGet, "/api/v1/views/badge", "s1", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, float64(2), data(t, body)["cart_count"])

	// quantity zero removes the line
	resp, body = env.do(t, http.MethodPatch, "/api/v1/cart/items/demo-001/quantity", "s1",
		map[string]int{"quantity": 0})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, float64(0), data(t, body)["count"])
}

func TestCart_UnknownProduct(t *testing.T) {
	env := newTestEnv(t)

	resp, body := env.do(t, http.MethodPost, "/api/v1/cart/items", "s1",
		map[string]string{"product_id": "no-such-product"})
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "NOT_FOUND", body["error"].(map[string]any)["code"])
}

func TestCart_InvalidSize(t *testing.T) {
	env := newTestEnv(t)

	env.do(t, http.MethodPost, "/api/v1/cart/items", "s1",
		map[string]string{"product_id": "demo-001"})

	resp, _ := env.do(t, http.MethodPatch, "/api/v1/cart/items/demo-001/size", "s1",
		map[string]int{"size": 9})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp, body := env.do(t, http.MethodPatch, "/api/v1/cart/items/demo-001/size", "s1",
		map[string]int{"size": 4})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	items := data(t, body)["items"].([]any)
	assert.Equal(t, float64(4), items[0].(map[string]any)["size"])
}

func TestSessionIsolation(t *testing.T) {
	env := newTestEnv(t)

	env.do(t, http.MethodPost, "/api/v1/cart/items", "alice",
		map[string]string{"product_id": "demo-001"})

	resp, body := env.do(t, http.MethodGet, "/api/v1/cart", "bob", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, float64(0), data(t, body)["count"])
}

func TestSessionAssignedWhenMissing(t *testing.T) {
	env := newTestEnv(t)

	req, err := http.NewRequest(http.MethodGet, env.server.URL+"/api/v1/cart", nil)
	require.NoError(t, err)

	resp, err := env.server.Client().Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.NotEmpty(t, resp.Header.Get(SessionHeader))
}

func TestWishlistToggle(t *testing.T) {
	env := newTestEnv(t)

	resp, body := env.do(t, http.MethodPost, "/api/v1/wishlist/demo-002/toggle", "s1", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, true, data(t, body)["in_wishlist"])

	resp, body = env.do(t, http.MethodPost, "/api/v1/wishlist/demo-002/toggle", "s1", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, false, data(t, body)["in_wishlist"])
	assert.Empty(t, data(t, body)["product_ids"])
}

func TestWishlistPanelResolvesProducts(t *testing.T) {
	env := newTestEnv(t)

	env.do(t, http.MethodPost, "/api/v1/wishlist/demo-003/toggle", "s1", nil)

	resp, body := env.do(t, http.MethodGet, "/api/v1/views/wishlist-panel", "s1", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	panel := data(t, body)
	assert.Equal(t, float64(1), panel["count"])
	items := panel["items"].([]any)
	require.Len(t, items, 1)
	assert.Equal(t, "demo-003", items[0].(map[string]any)["id"])
}

func TestProducts(t *testing.T) {
	env := newTestEnv(t)

	resp, body := env.do(t, http.MethodGet, "/api/v1/products?category=pearl&limit=5", "s1", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	products := data(t, body)["products"].([]any)
	require.Len(t, products, 5)
	for _, p := range products {
		assert.Equal(t, "pearl", p.(map[string]any)["category"])
	}

	resp, body = env.do(t, http.MethodGet, "/api/v1/products/demo-001", "s1", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "demo-001", data(t, body)["id"])
}

func TestCheckout(t *testing.T) {
	env := newTestEnv(t)

	// empty cart rejected
	resp, body := env.do(t, http.MethodPost, "/api/v1/checkout", "s1",
		map[string]string{"email": "a@example.com"})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "INVALID_INPUT", body["error"].(map[string]any)["code"])

	env.do(t, http.MethodPost, "/api/v1/cart/items", "s1",
		map[string]string{"product_id": "demo-001"})

	resp, body = env.do(t, http.MethodPost, "/api/v1/checkout", "s1",
		map[string]string{"email": "a@example.com", "name": "Amira"})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	order := data(t, body)
	assert.NotEmpty(t, order["order_id"])
	assert.Equal(t, "https://pay.example.com/checkout", order["checkout_url"])

	// the sink is down in this env, so the order landed in the fallback log
	orders, err := env.submissions.FallbackOrders(context.Background())
	require.NoError(t, err)
	require.Len(t, orders, 1)
	assert.Equal(t, "pending", orders[0].Status)

	// cart cleared after handoff
	resp, body = env.do(t, http.MethodGet, "/api/v1/cart", "s1", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, float64(0), data(t, body)["count"])
}

func TestRegisterValidation(t *testing.T) {
	env := newTestEnv(t)

	resp, body := env.do(t, http.MethodPost, "/api/v1/auth/register", "s1", map[string]string{
		"email":            "not-an-email",
		"password":         "secret1",
		"confirm_password": "different",
		"display_name":     "Amira",
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	errBody := body["error"].(map[string]any)
	assert.Equal(t, "VALIDATION_FAILED", errBody["code"])
	assert.NotEmpty(t, errBody["fields"])
}

func TestAuthFlow(t *testing.T) {
	env := newTestEnv(t)

	resp, body := env.do(t, http.MethodPost, "/api/v1/auth/register", "s1", map[string]string{
		"email":            "a@example.com",
		"password":         "secret1",
		"confirm_password": "secret1",
		"display_name":     "Amira",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	tokens := data(t, body)["tokens"].(map[string]any)
	access := tokens["access_token"].(string)
	require.NotEmpty(t, access)

	req, err := http.NewRequest(http.MethodGet, env.server.URL+"/api/v1/auth/me", nil)
	require.NoError(t, err)
	req.Header.Set("Authorization", "Bearer "+access)

	meResp, err := env.server.Client().Do(req)
	require.NoError(t, err)
	defer meResp.Body.Close()
	require.Equal(t, http.StatusOK, meResp.StatusCode)

	var me map[string]any
	require.NoError(t, json.NewDecoder(meResp.Body).Decode(&me))
	assert.Equal(t, "a@example.com", me["data"].(map[string]any)["email"])

	// duplicate registration conflicts
	resp, _ = env.do(t, http.MethodPost, "/api/v1/auth/register", "s1", map[string]string{
		"email":            "a@example.com",
		"password":         "secret1",
		"confirm_password": "secret1",
		"display_name":     "Amira",
	})
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
}

func TestNotificationsDrain(t *testing.T) {
	env := newTestEnv(t)

	env.do(t, http.MethodPost, "/api/v1/cart/items", "s1",
		map[string]string{"product_id": "demo-001"})
	env.do(t, http.MethodPost, "/api/v1/wishlist/demo-002/toggle", "s1", nil)

	resp, body := env.do(t, http.MethodGet, "/api/v1/notifications", "s1", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	toasts := data(t, body)["toasts"].([]any)
	require.Len(t, toasts, 2)
	assert.Contains(t, toasts[0].(map[string]any)["message"], "added to cart")

	// drained
	resp, body = env.do(t, http.MethodGet, "/api/v1/notifications", "s1", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Empty(t, data(t, body)["toasts"])
}

func TestHealthEndpoints(t *testing.T) {
	env := newTestEnv(t)

	resp, err := env.server.Client().Get(env.server.URL + "/health/live")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}
