package domain

import "time"

// Contact is a contact-form submission.
type Contact struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"created_at"`
}

// NewsletterSignup is a newsletter subscription request.
type NewsletterSignup struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}

// Checkout statuses.
const (
	CheckoutStatusPending = "pending"
)

// CheckoutCustomer identifies who is checking out. UserID is empty for
// guest checkouts.
type CheckoutCustomer struct {
	UserID string `json:"user_id,omitempty"`
	Email  string `json:"email"`
	Name   string `json:"name,omitempty"`
}

// CheckoutDetails is the order snapshot handed to the submission sink at
// checkout. Items is a copy of the cart at submission time.
type CheckoutDetails struct {
	ID        string           `json:"id"`
	SessionID string           `json:"session_id"`
	Customer  CheckoutCustomer `json:"customer"`
	Items     []CartItem       `json:"items"`
	Subtotal  int64            `json:"subtotal"`
	Status    string           `json:"status"`
	CreatedAt time.Time        `json:"created_at"`
}
