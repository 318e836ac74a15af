package repository

import (
	"context"

	"ceylontours/internal/database"
	"ceylontours/internal/models"
)

type ReviewRepository struct {
	db *database.DB
}

func NewReviewRepository(db *database.DB) *ReviewRepository {
	return &ReviewRepository{db: db}
}

func (r *ReviewRepository) Create(ctx context.Context, review *models.Review) error {
	query := `
		INSERT INTO reviews (package_id, user_id, user_name, rating, comment)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at`

	return r.db.QueryRowContext(ctx, query,
		review.PackageID,
		review.UserID,
		review.UserName,
		review.Rating,
		review.Comment,
	).Scan(&review.ID, &review.CreatedAt)
}

func (r *ReviewRepository) ListByPackageID(ctx context.Context, packageID int64) ([]models.Review, error) {
	query := `
		SELECT id, package_id, user_id, user_name, rating, comment, created_at
		FROM reviews
		WHERE package_id = $1
		ORDER BY created_at DESC`

	rows, err := r.db.QueryContext(ctx, query, packageID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var reviews []models.Review
	for rows.Next() {
		var review models.Review
		err := rows.Scan(
			&review.ID,
			&review.PackageID,
			&review.UserID,
			&review.UserName,
			&review.Rating,
			&review.Comment,
			&review.CreatedAt,
		)
		if err != nil {
			return nil, err
		}
		reviews = append(reviews, review)
	}

	return reviews, rows.Err()
}
