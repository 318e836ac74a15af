package repository

import (
	"context"
	"database/sql"

	"github.com/lib/pq"

	"ceylontours/internal/database"
	"ceylontours/internal/models"
)

type GuideRepository struct {
	db *database.DB
}

func NewGuideRepository(db *database.DB) *GuideRepository {
	return &GuideRepository{db: db}
}

const guideColumns = `id, uid, name, role, location, languages, experience, rating, status, created_at`

func (r *GuideRepository) Create(ctx context.Context, guide *models.Guide) error {
	query := `
		INSERT INTO guides (uid, name, role, location, languages, experience, rating, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, created_at`

	return r.db.QueryRowContext(ctx, query,
		guide.UID,
		guide.Name,
		guide.Role,
		guide.Location,
		pq.Array(guide.Languages),
		guide.Experience,
		guide.Rating,
		guide.Status,
	).Scan(&guide.ID, &guide.CreatedAt)
}

func (r *GuideRepository) GetByID(ctx context.Context, id int64) (*models.Guide, error) {
	query := `SELECT ` + guideColumns + ` FROM guides WHERE id = $1`
	guide, err := scanGuide(r.db.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	return guide, err
}

func (r *GuideRepository) GetByUID(ctx context.Context, uid string) (*models.Guide, error) {
	query := `SELECT ` + guideColumns + ` FROM guides WHERE uid = $1`
	guide, err := scanGuide(r.db.QueryRowContext(ctx, query, uid))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	return guide, err
}

// ListByStatus returns guides in the given status, newest first.
func (r *GuideRepository) ListByStatus(ctx context.Context, status models.GuideStatus) ([]models.Guide, error) {
	query := `SELECT ` + guideColumns + ` FROM guides WHERE status = $1 ORDER BY created_at DESC`
	return r.list(ctx, query, status)
}

func (r *GuideRepository) ListAll(ctx context.Context) ([]models.Guide, error) {
	query := `SELECT ` + guideColumns + ` FROM guides ORDER BY created_at DESC`
	return r.list(ctx, query)
}

func (r *GuideRepository) UpdateStatus(ctx context.Context, id int64, status models.GuideStatus) error {
	_, err := r.db.ExecContext(ctx, `UPDATE guides SET status = $1 WHERE id = $2`, status, id)
	return err
}

func (r *GuideRepository) Delete(ctx context.Context, id int64) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM guides WHERE id = $1`, id)
	return err
}

func (r *GuideRepository) list(ctx context.Context, query string, args ...interface{}) ([]models.Guide, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var guides []models.Guide
	for rows.Next() {
		guide, err := scanGuide(rows)
		if err != nil {
			return nil, err
		}
		guides = append(guides, *guide)
	}

	return guides, rows.Err()
}

func scanGuide(row rowScanner) (*models.Guide, error) {
	guide := &models.Guide{}
	err := row.Scan(
		&guide.ID,
		&guide.UID,
		&guide.Name,
		&guide.Role,
		&guide.Location,
		pq.Array(&guide.Languages),
		&guide.Experience,
		&guide.Rating,
		&guide.Status,
		&guide.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return guide, nil
}
