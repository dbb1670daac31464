package submit

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/NaumanGems/Nauman-gems/internal/domain"
	apperrors "github.com/NaumanGems/Nauman-gems/pkg/errors"
)

const uniqueViolationCode = "23505"

// DB is the subset of pgxpool.Pool the sink needs, satisfied by pgxmock in
// tests.
type DB interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

// PostgresSink writes submissions to Postgres.
type PostgresSink struct {
	db DB
}

// NewPostgresSink creates a sink on the given pool.
func NewPostgresSink(db DB) *PostgresSink {
	return &PostgresSink{db: db}
}

// SubmitContact inserts a contact message.
func (s *PostgresSink) SubmitContact(ctx context.Context, c domain.Contact) (string, error) {
	const query = `
		INSERT INTO contact_messages (name, email, message)
		VALUES ($1, $2, $3)
		RETURNING id`

	var id string
	if err := s.db.QueryRow(ctx, query, c.Name, c.Email, c.Message).Scan(&id); err != nil {
		return "", fmt.Errorf("insert contact message: %w", err)
	}
	return id, nil
}

// SubmitNewsletter inserts a newsletter signup. Duplicate emails conflict.
func (s *PostgresSink) SubmitNewsletter(ctx context.Context, n domain.NewsletterSignup) (string, error) {
	const query = `
		INSERT INTO newsletter_signups (email)
		VALUES ($1)
		RETURNING id`

	var id string
	err := s.db.QueryRow(ctx, query, n.Email).Scan(&id)

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode {
		return "", apperrors.AlreadyExists("newsletter signup", "email", n.Email)
	}
	if err != nil {
		return "", fmt.Errorf("insert newsletter signup: %w", err)
	}
	return id, nil
}

// SubmitCheckout inserts an order with the cart snapshot as jsonb.
func (s *PostgresSink) SubmitCheckout(ctx context.Context, d domain.CheckoutDetails) (string, error) {
	items, err := json.Marshal(d.Items)
	if err != nil {
		return "", fmt.Errorf("marshal order items: %w", err)
	}

	const query = `
		INSERT INTO orders (session_id, customer_email, customer_name, user_id, items, subtotal, status)
		VALUES ($1, $2, $3, NULLIF($4, ''), $5, $6, $7)
		RETURNING id`

	var id string
	err = s.db.QueryRow(ctx, query,
		d.SessionID, d.Customer.Email, d.Customer.Name, d.Customer.UserID,
		items, d.Subtotal, d.Status,
	).Scan(&id)
	if err != nil {
		return "", fmt.Errorf("insert order: %w", err)
	}
	return id, nil
}
