package domain

import "time"

// AuthProvider identifies which verification path created a user record.
type AuthProvider string

const (
	ProviderEmail  AuthProvider = "email"
	ProviderGoogle AuthProvider = "google"
	ProviderGitHub AuthProvider = "github"
)

// User represents an identity record in the domain.
// Exactly one row may exist per (email, provider) pair; a Google user and an
// email user sharing the same address are deliberately distinct accounts.
type User struct {
	UserID       string       `json:"id"`
	Name         string       `json:"name"`
	Email        string       `json:"email"`
	PasswordHash string       `json:"-"` // set only when Provider == ProviderEmail
	Provider     AuthProvider `json:"provider"`
	CreatedAt    time.Time    `json:"createdAt"`
	UpdatedAt    *time.Time   `json:"updatedAt,omitempty"`
}
