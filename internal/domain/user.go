package domain

import "time"

// Auth providers.
const (
	ProviderEmail  = "email"
	ProviderGoogle = "google"
)

// User is an account in the identity store. PasswordHash is empty for
// federated accounts.
type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	DisplayName  string    `json:"display_name"`
	Provider     string    `json:"provider"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}

// TokenPair is the signed access/refresh token pair handed to clients.
type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresIn    int64  `json:"expires_in"`
}
