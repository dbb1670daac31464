package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/NaumanGems/Nauman-gems/pkg/httputil"
)

type cartResponse struct {
	Items    any   `json:"items"`
	Subtotal int64 `json:"subtotal"`
	Count    int   `json:"count"`
	Degraded bool  `json:"degraded"`
}

func (h *Handler) getCart(w http.ResponseWriter, r *http.Request) {
	s := h.sessionStore(r)
	httputil.WriteJSON(w, http.StatusOK, cartResponse{
		Items:    s.Items(),
		Subtotal: s.CartTotal(),
		Count:    s.CartItemCount(),
		Degraded: s.Degraded(),
	})
}

type addToCartRequest struct {
	ProductID string `json:"product_id" validate:"required"`
}

func (h *Handler) addToCart(w http.ResponseWriter, r *http.Request) {
	var req addToCartRequest
	if err := httputil.DecodeJSON(r, &req); err != nil {
		httputil.WriteError(w, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		httputil.WriteError(w, err)
		return
	}

	product, err := h.catalog.ProductByID(r.Context(), req.ProductID)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	s := h.sessionStore(r)
	s.AddToCart(r.Context(), product)

	httputil.WriteJSON(w, http.StatusOK, cartResponse{
		Items:    s.Items(),
		Subtotal: s.CartTotal(),
		Count:    s.CartItemCount(),
		Degraded: s.Degraded(),
	})
}

func (h *Handler) removeFromCart(w http.ResponseWriter, r *http.Request) {
	s := h.sessionStore(r)
	s.RemoveFromCart(r.Context(), chi.URLParam(r, "productID"))

	httputil.WriteJSON(w, http.StatusOK, cartResponse{
		Items:    s.Items(),
		Subtotal: s.CartTotal(),
		Count:    s.CartItemCount(),
		Degraded: s.Degraded(),
	})
}

type updateQuantityRequest struct {
	Quantity *int `json:"quantity" validate:"required"`
}

func (h *Handler) updateQuantity(w http.ResponseWriter, r *http.Request) {
	var req updateQuantityRequest
	if err := httputil.DecodeJSON(r, &req); err != nil {
		httputil.WriteError(w, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		httputil.WriteError(w, err)
		return
	}

	s := h.sessionStore(r)
	s.UpdateQuantity(r.Context(), chi.URLParam(r, "productID"), *req.Quantity)

	httputil.WriteJSON(w, http.StatusOK, cartResponse{
		Items:    s.Items(),
		Subtotal: s.CartTotal(),
		Count:    s.CartItemCount(),
		Degraded: s.Degraded(),
	})
}

type updateSizeRequest struct {
	Size int `json:"size" validate:"required,gte=1,lte=5"`
}

func (h *Handler) updateSize(w http.ResponseWriter, r *http.Request) {
	var req updateSizeRequest
	if err := httputil.DecodeJSON(r, &req); err != nil {
		httputil.WriteError(w, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		httputil.WriteError(w, err)
		return
	}

	s := h.sessionStore(r)
	if err := s.UpdateItemSize(r.Context(), chi.URLParam(r, "productID"), req.Size); err != nil {
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, cartResponse{
		Items:    s.Items(),
		Subtotal: s.CartTotal(),
		Count:    s.CartItemCount(),
		Degraded: s.Degraded(),
	})
}

func (h *Handler) clearCart(w http.ResponseWriter, r *http.Request) {
	s := h.sessionStore(r)
	s.Clear(r.Context())

	httputil.WriteJSON(w, http.StatusOK, cartResponse{
		Items:    s.Items(),
		Subtotal: 0,
		Count:    0,
		Degraded: s.Degraded(),
	})
}
