package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/NaumanGems/Nauman-gems/internal/domain"
	apperrors "github.com/NaumanGems/Nauman-gems/pkg/errors"
)

// Doer executes HTTP requests. Satisfied by httpclient.CircuitBreakerClient.
type Doer interface {
	Do(req *http.Request) (*http.Response, error)
}

// RemoteProvider fetches products from the catalog document API.
type RemoteProvider struct {
	baseURL string
	client  Doer
}

// NewRemoteProvider creates a provider for the API at baseURL.
func NewRemoteProvider(baseURL string, client Doer) *RemoteProvider {
	return &RemoteProvider{baseURL: baseURL, client: client}
}

type productListResponse struct {
	Data []domain.Product `json:"data"`
}

type productResponse struct {
	Data domain.Product `json:"data"`
}

// FetchProducts lists products, optionally filtered by category.
func (r *RemoteProvider) FetchProducts(ctx context.Context, category string, limit int) ([]domain.Product, error) {
	q := url.Values{}
	if category != "" {
		q.Set("category", category)
	}
	if limit > 0 {
		q.Set("limit", strconv.Itoa(limit))
	}

	endpoint := r.baseURL + "/products"
	if len(q) > 0 {
		endpoint += "?" + q.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("build catalog request: %w", err)
	}

	resp, err := r.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch products: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("catalog api returned %d", resp.StatusCode)
	}

	var body productListResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("decode products: %w", err)
	}
	return body.Data, nil
}

// FetchProductByID fetches a single product.
func (r *RemoteProvider) FetchProductByID(ctx context.Context, id string) (domain.Product, error) {
	endpoint := r.baseURL + "/products/" + url.PathEscape(id)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return domain.Product{}, fmt.Errorf("build catalog request: %w", err)
	}

	resp, err := r.client.Do(req)
	if err != nil {
		return domain.Product{}, fmt.Errorf("fetch product %s: %w", id, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return domain.Product{}, apperrors.NotFound("product", id)
	}
	if resp.StatusCode != http.StatusOK {
		return domain.Product{}, fmt.Errorf("catalog api returned %d", resp.StatusCode)
	}

	var body productResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return domain.Product{}, fmt.Errorf("decode product: %w", err)
	}
	return body.Data, nil
}
