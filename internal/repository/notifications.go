package repository

import (
	"context"

	"ceylontours/internal/database"
	"ceylontours/internal/models"
)

type NotificationRepository struct {
	db *database.DB
}

func NewNotificationRepository(db *database.DB) *NotificationRepository {
	return &NotificationRepository{db: db}
}

func (r *NotificationRepository) Create(ctx context.Context, n *models.Notification) error {
	query := `
		INSERT INTO notifications (guide_id, title, message, type, booking_code)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at`

	return r.db.QueryRowContext(ctx, query,
		n.GuideID,
		n.Title,
		n.Message,
		n.Type,
		n.BookingCode,
	).Scan(&n.ID, &n.CreatedAt)
}

// ListByGuideID returns a guide's notifications, newest first.
func (r *NotificationRepository) ListByGuideID(ctx context.Context, guideID int64) ([]models.Notification, error) {
	query := `
		SELECT id, guide_id, title, message, type, booking_code, read, created_at
		FROM notifications
		WHERE guide_id = $1
		ORDER BY created_at DESC`

	rows, err := r.db.QueryContext(ctx, query, guideID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var notifications []models.Notification
	for rows.Next() {
		var n models.Notification
		err := rows.Scan(
			&n.ID,
			&n.GuideID,
			&n.Title,
			&n.Message,
			&n.Type,
			&n.BookingCode,
			&n.Read,
			&n.CreatedAt,
		)
		if err != nil {
			return nil, err
		}
		notifications = append(notifications, n)
	}

	return notifications, rows.Err()
}

// MarkRead flips the read flag. Scoped to the guide so one guide cannot
// touch another's feed.
func (r *NotificationRepository) MarkRead(ctx context.Context, id, guideID int64) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE notifications SET read = TRUE WHERE id = $1 AND guide_id = $2`, id, guideID)
	return err
}
