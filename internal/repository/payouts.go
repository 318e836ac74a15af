package repository

import (
	"context"
	"database/sql"

	"ceylontours/internal/database"
	"ceylontours/internal/models"
)

type PayoutRepository struct {
	db *database.DB
}

func NewPayoutRepository(db *database.DB) *PayoutRepository {
	return &PayoutRepository{db: db}
}

const payoutColumns = `id, booking_code, booking_doc_id, guide_id, guide_name,
	package_title, amount, notes, payout_date, status`

func (r *PayoutRepository) Create(ctx context.Context, payout *models.Payout) error {
	query := `
		INSERT INTO payouts (booking_code, booking_doc_id, guide_id, guide_name,
			package_title, amount, notes, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, payout_date`

	return r.db.QueryRowContext(ctx, query,
		payout.BookingCode,
		payout.BookingDocID,
		payout.GuideID,
		payout.GuideName,
		payout.PackageTitle,
		payout.Amount,
		payout.Notes,
		payout.Status,
	).Scan(&payout.ID, &payout.PayoutDate)
}

// GetByBookingDocID is the dedup lookup: a non-nil result means the
// booking is already settled.
func (r *PayoutRepository) GetByBookingDocID(ctx context.Context, bookingDocID int64) (*models.Payout, error) {
	query := `SELECT ` + payoutColumns + ` FROM payouts WHERE booking_doc_id = $1`
	payout, err := scanPayout(r.db.QueryRowContext(ctx, query, bookingDocID))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	return payout, err
}

func (r *PayoutRepository) ListByGuideID(ctx context.Context, guideID int64) ([]models.Payout, error) {
	query := `SELECT ` + payoutColumns + ` FROM payouts WHERE guide_id = $1 ORDER BY payout_date DESC`
	return r.list(ctx, query, guideID)
}

func (r *PayoutRepository) ListAll(ctx context.Context) ([]models.Payout, error) {
	query := `SELECT ` + payoutColumns + ` FROM payouts ORDER BY payout_date DESC`
	return r.list(ctx, query)
}

func (r *PayoutRepository) list(ctx context.Context, query string, args ...interface{}) ([]models.Payout, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var payouts []models.Payout
	for rows.Next() {
		payout, err := scanPayout(rows)
		if err != nil {
			return nil, err
		}
		payouts = append(payouts, *payout)
	}

	return payouts, rows.Err()
}

func scanPayout(row rowScanner) (*models.Payout, error) {
	payout := &models.Payout{}
	err := row.Scan(
		&payout.ID,
		&payout.BookingCode,
		&payout.BookingDocID,
		&payout.GuideID,
		&payout.GuideName,
		&payout.PackageTitle,
		&payout.Amount,
		&payout.Notes,
		&payout.PayoutDate,
		&payout.Status,
	)
	if err != nil {
		return nil, err
	}
	return payout, nil
}
