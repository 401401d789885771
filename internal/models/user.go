package models

import (
	"database/sql"
	"time"
)

// User is the database representation of an identity record.
// PasswordHash is nullable; it is populated only for email-provider rows.
type User struct {
	UserID       string         `db:"user_id"`
	Name         string         `db:"name"`
	Email        string         `db:"email"`
	PasswordHash sql.NullString `db:"password"`
	Provider     string         `db:"provider"`
	CreatedAt    time.Time      `db:"created_at"`
	UpdatedAt    sql.NullTime   `db:"updated_at"`
}
