package repository

import (
	"context"
	"time"

	"ceylontours/internal/database"
	"ceylontours/internal/models"
)

type BlockedDateRepository struct {
	db *database.DB
}

func NewBlockedDateRepository(db *database.DB) *BlockedDateRepository {
	return &BlockedDateRepository{db: db}
}

func (r *BlockedDateRepository) Create(ctx context.Context, block *models.BlockedDate) error {
	query := `
		INSERT INTO blocked_dates (guide_id, date, reason)
		VALUES ($1, $2, $3)
		RETURNING id, created_at`

	return r.db.QueryRowContext(ctx, query,
		block.GuideID,
		block.Date.Format("2006-01-02"),
		block.Reason,
	).Scan(&block.ID, &block.CreatedAt)
}

// ListByDate returns every guide block on an exact calendar date.
func (r *BlockedDateRepository) ListByDate(ctx context.Context, date time.Time) ([]models.BlockedDate, error) {
	query := `
		SELECT id, guide_id, date, reason, created_at
		FROM blocked_dates
		WHERE date = $1`
	return r.list(ctx, query, date.Format("2006-01-02"))
}

func (r *BlockedDateRepository) ListByGuideID(ctx context.Context, guideID int64) ([]models.BlockedDate, error) {
	query := `
		SELECT id, guide_id, date, reason, created_at
		FROM blocked_dates
		WHERE guide_id = $1
		ORDER BY date`
	return r.list(ctx, query, guideID)
}

// Delete removes a block, but only when it belongs to the given guide.
func (r *BlockedDateRepository) Delete(ctx context.Context, id, guideID int64) error {
	_, err := r.db.ExecContext(ctx,
		`DELETE FROM blocked_dates WHERE id = $1 AND guide_id = $2`, id, guideID)
	return err
}

func (r *BlockedDateRepository) list(ctx context.Context, query string, args ...interface{}) ([]models.BlockedDate, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var blocks []models.BlockedDate
	for rows.Next() {
		var block models.BlockedDate
		err := rows.Scan(
			&block.ID,
			&block.GuideID,
			&block.Date,
			&block.Reason,
			&block.CreatedAt,
		)
		if err != nil {
			return nil, err
		}
		blocks = append(blocks, block)
	}

	return blocks, rows.Err()
}
