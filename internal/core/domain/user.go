package domain

import "time"

// AuthProvider identifies the external identity provider of a user.
type AuthProvider string

const (
	ProviderGoogle   AuthProvider = "google"
	ProviderFirebase AuthProvider = "firebase"
)

// User is an authenticated principal. UserID is the provider's subject and
// is the owner key on every invoice.
type User struct {
	UserID       string       `json:"userID"`
	Email        string       `json:"email"`
	Name         string       `json:"name"`
	AuthProvider AuthProvider `json:"authProvider"`
	CreatedAt    time.Time    `json:"createdAt"`
	LastLoginAt  time.Time    `json:"lastLoginAt"`
}
