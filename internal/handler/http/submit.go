package http

import (
	"net/http"

	"github.com/NaumanGems/Nauman-gems/internal/domain"
	"github.com/NaumanGems/Nauman-gems/internal/notify"
	"github.com/NaumanGems/Nauman-gems/pkg/httputil"

	apperrors "github.com/NaumanGems/Nauman-gems/pkg/errors"
)

type contactRequest struct {
	Name    string `json:"name" validate:"required,max=100"`
	Email   string `json:"email" validate:"required,email"`
	Message string `json:"message" validate:"required,max=5000"`
}

func (h *Handler) contact(w http.ResponseWriter, r *http.Request) {
	var req contactRequest
	if err := httputil.DecodeJSON(r, &req); err != nil {
		httputil.WriteError(w, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		httputil.WriteError(w, err)
		return
	}

	id, err := h.submissions.Contact(r.Context(), domain.Contact{
		Name:    req.Name,
		Email:   req.Email,
		Message: req.Message,
	})
	if err != nil {
		h.toasts.Push(SessionID(r), notify.LevelError, "Message could not be sent. Please try again.")
		httputil.WriteError(w, apperrors.ServiceUnavailable("contact form is temporarily unavailable"))
		return
	}

	h.toasts.Push(SessionID(r), notify.LevelSuccess, "Message sent. We'll get back to you soon!")
	httputil.WriteJSON(w, http.StatusCreated, map[string]string{"id": id})
}

type newsletterRequest struct {
	Email string `json:"email" validate:"required,email"`
}

func (h *Handler) newsletter(w http.ResponseWriter, r *http.Request) {
	var req newsletterRequest
	if err := httputil.DecodeJSON(r, &req); err != nil {
		httputil.WriteError(w, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		httputil.WriteError(w, err)
		return
	}

	id, err := h.submissions.Newsletter(r.Context(), domain.NewsletterSignup{Email: req.Email})
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	h.toasts.Push(SessionID(r), notify.LevelSuccess, "Subscribed to the newsletter!")
	httputil.WriteJSON(w, http.StatusCreated, map[string]string{"id": id})
}

type checkoutRequest struct {
	Email string `json:"email" validate:"required,email"`
	Name  string `json:"name" validate:"max=100"`
}

type checkoutData struct {
	OrderID     string `json:"order_id"`
	CheckoutURL string `json:"checkout_url"`
	Subtotal    int64  `json:"subtotal"`
}

func (h *Handler) checkout(w http.ResponseWriter, r *http.Request) {
	var req checkoutRequest
	if err := httputil.DecodeJSON(r, &req); err != nil {
		httputil.WriteError(w, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		httputil.WriteError(w, err)
		return
	}

	s := h.sessionStore(r)
	items := s.Items()
	if len(items) == 0 {
		httputil.WriteError(w, apperrors.InvalidInput("cart is empty"))
		return
	}

	customer := domain.CheckoutCustomer{Email: req.Email, Name: req.Name}
	if token := bearerToken(r); token != "" {
		if user, err := h.auth.CurrentUser(r.Context(), token); err == nil {
			customer.UserID = user.ID
		}
	}

	order := domain.CheckoutDetails{
		SessionID: SessionID(r),
		Customer:  customer,
		Items:     items,
		Subtotal:  s.CartTotal(),
	}

	id, err := h.submissions.Checkout(r.Context(), order)
	if err != nil {
		httputil.WriteError(w, apperrors.Internal(err))
		return
	}

	order.ID = id
	h.events.CheckoutSubmitted(r.Context(), order)

	s.Clear(r.Context())
	h.toasts.Push(SessionID(r), notify.LevelSuccess, "Order placed! Redirecting to checkout...")

	httputil.WriteJSON(w, http.StatusCreated, checkoutData{
		OrderID:     id,
		CheckoutURL: h.checkoutURL,
		Subtotal:    order.Subtotal,
	})
}
