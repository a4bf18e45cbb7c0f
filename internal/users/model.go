package users

import "time"

// Sign-in providers.
const (
	ProviderPassword = "password"
	ProviderGoogle   = "google"
)

// User is an account. PasswordHash is empty for accounts created through an
// external provider, which makes password login impossible for them.
type User struct {
	ID           string    `json:"_id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Provider     string    `json:"provider"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// Session is an authenticated user plus the bearer token issued for it.
type Session struct {
	User  User
	Token string
}

// Identity is a user asserted by an external provider such as Google.
type Identity struct {
	Provider string
	Email    string
	Name     string
}
