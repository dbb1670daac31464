// Package submit delivers form submissions (contact, newsletter, checkout)
// to the durable sink. Checkout submissions are never lost: a failed sink
// write lands in the fallback order log instead.
package submit

import (
	"context"

	"github.com/NaumanGems/Nauman-gems/internal/domain"
)

// Sink persists submissions and returns the generated record id.
type Sink interface {
	SubmitContact(ctx context.Context, c domain.Contact) (string, error)
	SubmitNewsletter(ctx context.Context, n domain.NewsletterSignup) (string, error)
	SubmitCheckout(ctx context.Context, d domain.CheckoutDetails) (string, error)
}
