package repository

import (
	"context"
	"database/sql"

	"ceylontours/internal/database"
	"ceylontours/internal/models"
)

type UserRepository struct {
	db *database.DB
}

func NewUserRepository(db *database.DB) *UserRepository {
	return &UserRepository{db: db}
}

// Upsert mirrors the identity provider's record into the local users
// table on first sight, refreshing mutable fields after that.
func (r *UserRepository) Upsert(ctx context.Context, user *models.User) error {
	query := `
		INSERT INTO users (uid, email, name, role)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (uid) DO UPDATE SET email = $2, name = $3
		RETURNING created_at`

	role := user.Role
	if role == "" {
		role = "customer"
	}

	return r.db.QueryRowContext(ctx, query,
		user.UID,
		user.Email,
		user.Name,
		role,
	).Scan(&user.CreatedAt)
}

func (r *UserRepository) GetByUID(ctx context.Context, uid string) (*models.User, error) {
	user := &models.User{}
	query := `SELECT uid, email, name, role, created_at FROM users WHERE uid = $1`

	err := r.db.QueryRowContext(ctx, query, uid).Scan(
		&user.UID,
		&user.Email,
		&user.Name,
		&user.Role,
		&user.CreatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return user, nil
}
