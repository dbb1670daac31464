package http

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/NaumanGems/Nauman-gems/internal/catalog"
	"github.com/NaumanGems/Nauman-gems/pkg/httputil"
)

type productListData struct {
	Products any `json:"products"`
	Total    int `json:"total"`
}

func (h *Handler) listProducts(w http.ResponseWriter, r *http.Request) {
	q := catalog.Query{
		Search:   r.URL.Query().Get("q"),
		Category: r.URL.Query().Get("category"),
		Sort:     r.URL.Query().Get("sort"),
	}
	q.PriceMin = parseInt64(r.URL.Query().Get("price_min"))
	q.PriceMax = parseInt64(r.URL.Query().Get("price_max"))
	q.Limit = int(parseInt64(r.URL.Query().Get("limit")))

	products, total, err := h.catalog.Search(r.Context(), q)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, productListData{Products: products, Total: total})
}

func (h *Handler) getProduct(w http.ResponseWriter, r *http.Request) {
	product, err := h.catalog.ProductByID(r.Context(), chi.URLParam(r, "productID"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, product)
}

func parseInt64(s string) int64 {
	if s == "" {
		return 0
	}
	v, err := strconv.ParseInt(s, 10, 64)
	if err != nil || v < 0 {
		return 0
	}
	return v
}
