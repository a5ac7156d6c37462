package models

import "time"

// User is the storage shape of an authenticated principal.
type User struct {
	UserID       string    `db:"user_id"`
	Email        string    `db:"email"`
	Name         string    `db:"name"`
	AuthProvider string    `db:"auth_provider"`
	CreatedAt    time.Time `db:"created_at"`
	LastLoginAt  time.Time `db:"last_login_at"`
}

// AuditFields holds the stored timestamps shared by records.
type AuditFields struct {
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}
