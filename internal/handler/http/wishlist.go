package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/NaumanGems/Nauman-gems/pkg/httputil"
)

type wishlistResponse struct {
	ProductIDs []string `json:"product_ids"`
	Count      int      `json:"count"`
}

func (h *Handler) getWishlist(w http.ResponseWriter, r *http.Request) {
	s := h.sessionStore(r)
	ids := s.WishlistIDs()
	httputil.WriteJSON(w, http.StatusOK, wishlistResponse{ProductIDs: ids, Count: len(ids)})
}

type toggleResponse struct {
	ProductID  string   `json:"product_id"`
	InWishlist bool     `json:"in_wishlist"`
	ProductIDs []string `json:"product_ids"`
}

func (h *Handler) toggleWishlist(w http.ResponseWriter, r *http.Request) {
	productID := chi.URLParam(r, "productID")

	s := h.sessionStore(r)
	added := s.ToggleWishlist(r.Context(), productID)

	httputil.WriteJSON(w, http.StatusOK, toggleResponse{
		ProductID:  productID,
		InWishlist: added,
		ProductIDs: s.WishlistIDs(),
	})
}
