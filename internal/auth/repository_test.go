package auth

import (
	"context"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/NaumanGems/Nauman-gems/internal/domain"
	apperrors "github.com/NaumanGems/Nauman-gems/pkg/errors"
)

func setupRepo(t *testing.T) (*Repository, pgxmock.PgxPoolIface) {
	t.Helper()

	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mock.Close)

	return NewRepository(mock), mock
}

func TestRepository_Create(t *testing.T) {
	repo, mock := setupRepo(t)
	now := time.Now()

	mock.ExpectQuery("INSERT INTO users").
		WithArgs("a@example.com", "Amira", domain.ProviderEmail, "hash").
		WillReturnRows(pgxmock.NewRows([]string{"id", "created_at"}).AddRow("u1", now))

	user, err := repo.Create(context.Background(), domain.User{
		Email:        "a@example.com",
		DisplayName:  "Amira",
		Provider:     domain.ProviderEmail,
		PasswordHash: "hash",
	})
	require.NoError(t, err)
	assert.Equal(t, "u1", user.ID)
	assert.Equal(t, now, user.CreatedAt)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_Create_DuplicateEmail(t *testing.T) {
	repo, mock := setupRepo(t)

	mock.ExpectQuery("INSERT INTO users").
		WithArgs("a@example.com", "Amira", domain.ProviderEmail, "hash").
		WillReturnError(&pgconn.PgError{Code: "23505"})

	_, err := repo.Create(context.Background(), domain.User{
		Email:        "a@example.com",
		DisplayName:  "Amira",
		Provider:     domain.ProviderEmail,
		PasswordHash: "hash",
	})
	assert.ErrorIs(t, err, apperrors.ErrAlreadyExists)
}

func TestRepository_GetByEmail(t *testing.T) {
	repo, mock := setupRepo(t)
	now := time.Now()

	mock.ExpectQuery("SELECT (.+) FROM users").
		WithArgs("a@example.com").
		WillReturnRows(pgxmock.NewRows(
			[]string{"id", "email", "display_name", "provider", "password_hash", "created_at"}).
			AddRow("u1", "a@example.com", "Amira", domain.ProviderEmail, "hash", now))

	user, err := repo.GetByEmail(context.Background(), "a@example.com")
	require.NoError(t, err)
	assert.Equal(t, "u1", user.ID)
	assert.Equal(t, "hash", user.PasswordHash)
}

func TestRepository_GetByEmail_NotFound(t *testing.T) {
	repo, mock := setupRepo(t)

	mock.ExpectQuery("SELECT (.+) FROM users").
		WithArgs("nobody@example.com").
		WillReturnError(pgx.ErrNoRows)

	_, err := repo.GetByEmail(context.Background(), "nobody@example.com")
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}
