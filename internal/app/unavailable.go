package app

import (
	"context"

	"github.com/NaumanGems/Nauman-gems/internal/domain"
	apperrors "github.com/NaumanGems/Nauman-gems/pkg/errors"
)

// unavailableUserRepo stands in for the user repository when Postgres is
// down at boot. Account operations answer 503 instead of crashing.
type unavailableUserRepo struct{}

func (unavailableUserRepo) Create(context.Context, domain.User) (domain.User, error) {
	return domain.User{}, apperrors.ServiceUnavailable("accounts are temporarily unavailable")
}

func (unavailableUserRepo) GetByEmail(context.Context, string) (domain.User, error) {
	return domain.User{}, apperrors.ServiceUnavailable("accounts are temporarily unavailable")
}

func (unavailableUserRepo) GetByID(context.Context, string) (domain.User, error) {
	return domain.User{}, apperrors.ServiceUnavailable("accounts are temporarily unavailable")
}
