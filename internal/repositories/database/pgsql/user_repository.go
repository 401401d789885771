package pgsql

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/authgrid/auth_backend/internal/apperrors"
	"github.com/authgrid/auth_backend/internal/core/domain"
	portsrepo "github.com/authgrid/auth_backend/internal/core/ports/repositories"
	"github.com/authgrid/auth_backend/internal/models"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxUserRepository struct {
	db *pgxpool.Pool
}

func NewUserRepository(db *pgxpool.Pool) portsrepo.UserRepository {
	return &PgxUserRepository{db: db}
}

// Ensure PgxUserRepository implements portsrepo.UserRepository
var _ portsrepo.UserRepository = (*PgxUserRepository)(nil)

// Helper to convert domain.User to models.User
func toModelUser(d domain.User) models.User {
	m := models.User{
		UserID:    d.UserID,
		Name:      d.Name,
		Email:     d.Email,
		Provider:  string(d.Provider),
		CreatedAt: d.CreatedAt,
	}
	if d.PasswordHash != "" {
		m.PasswordHash = sql.NullString{String: d.PasswordHash, Valid: true}
	}
	if d.UpdatedAt != nil {
		m.UpdatedAt = sql.NullTime{Time: *d.UpdatedAt, Valid: true}
	}
	return m
}

// Helper to convert models.User to domain.User
func toDomainUser(m models.User) domain.User {
	d := domain.User{
		UserID:    m.UserID,
		Name:      m.Name,
		Email:     m.Email,
		Provider:  domain.AuthProvider(m.Provider),
		CreatedAt: m.CreatedAt,
	}
	if m.PasswordHash.Valid {
		d.PasswordHash = m.PasswordHash.String
	}
	if m.UpdatedAt.Valid {
		t := m.UpdatedAt.Time
		d.UpdatedAt = &t
	}
	return d
}

// CreateUserIfAbsent inserts the user, silently no-oping when a row with the
// same (email, provider) already exists. The ON CONFLICT clause is what makes
// concurrent first logins safe; no application-level locking is involved.
func (r *PgxUserRepository) CreateUserIfAbsent(ctx context.Context, user domain.User) (bool, error) {
	modelUser := toModelUser(user)
	query := `
        INSERT INTO users (user_id, name, email, password, provider, created_at)
        VALUES ($1, $2, $3, $4, $5, $6)
        ON CONFLICT (email, provider) DO NOTHING;
    `
	cmdTag, err := r.db.Exec(ctx, query,
		modelUser.UserID,
		modelUser.Name,
		modelUser.Email,
		modelUser.PasswordHash,
		modelUser.Provider,
		modelUser.CreatedAt,
	)
	if err != nil {
		return false, fmt.Errorf("failed to insert user: %w", err)
	}
	return cmdTag.RowsAffected() == 1, nil
}

func (r *PgxUserRepository) FindUserByEmailAndProvider(ctx context.Context, email string, provider domain.AuthProvider) (*domain.User, error) {
	query := `
		SELECT user_id, name, email, password, provider, created_at, updated_at
		FROM users
		WHERE email = $1 AND provider = $2;
	`
	var modelUser models.User
	err := r.db.QueryRow(ctx, query, email, string(provider)).Scan(
		&modelUser.UserID,
		&modelUser.Name,
		&modelUser.Email,
		&modelUser.PasswordHash,
		&modelUser.Provider,
		&modelUser.CreatedAt,
		&modelUser.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find user by email and provider: %w", err)
	}

	domainUser := toDomainUser(modelUser)
	return &domainUser, nil
}

func (r *PgxUserRepository) FindUserByID(ctx context.Context, userID string) (*domain.User, error) {
	query := `
		SELECT user_id, name, email, password, provider, created_at, updated_at
		FROM users
		WHERE user_id = $1;
	`
	var modelUser models.User
	err := r.db.QueryRow(ctx, query, userID).Scan(
		&modelUser.UserID,
		&modelUser.Name,
		&modelUser.Email,
		&modelUser.PasswordHash,
		&modelUser.Provider,
		&modelUser.CreatedAt,
		&modelUser.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find user by ID %s: %w", userID, err)
	}

	domainUser := toDomainUser(modelUser)
	return &domainUser, nil
}
