package repository

import (
	"context"
	"database/sql"

	"ceylontours/internal/database"
	"ceylontours/internal/models"
)

type OfferRepository struct {
	db *database.DB
}

func NewOfferRepository(db *database.DB) *OfferRepository {
	return &OfferRepository{db: db}
}

const offerColumns = `id, title, description, discount_type, discount_value, code, valid_until, status, created_at`

func (r *OfferRepository) Create(ctx context.Context, offer *models.Offer) error {
	query := `
		INSERT INTO offers (title, description, discount_type, discount_value, code, valid_until, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at`

	var code *string
	if offer.Code != "" {
		code = &offer.Code
	}

	return r.db.QueryRowContext(ctx, query,
		offer.Title,
		offer.Description,
		offer.DiscountType,
		offer.DiscountValue,
		code,
		offer.ValidUntil,
		offer.Status,
	).Scan(&offer.ID, &offer.CreatedAt)
}

func (r *OfferRepository) GetByID(ctx context.Context, id int64) (*models.Offer, error) {
	query := `SELECT ` + offerColumns + ` FROM offers WHERE id = $1`
	offer, err := scanOffer(r.db.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	return offer, err
}

// GetByCode looks up an offer by exact redemption code.
func (r *OfferRepository) GetByCode(ctx context.Context, code string) (*models.Offer, error) {
	query := `SELECT ` + offerColumns + ` FROM offers WHERE code = $1`
	offer, err := scanOffer(r.db.QueryRowContext(ctx, query, code))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	return offer, err
}

func (r *OfferRepository) ListAll(ctx context.Context) ([]models.Offer, error) {
	query := `SELECT ` + offerColumns + ` FROM offers ORDER BY created_at DESC`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var offers []models.Offer
	for rows.Next() {
		offer, err := scanOffer(rows)
		if err != nil {
			return nil, err
		}
		offers = append(offers, *offer)
	}

	return offers, rows.Err()
}

func (r *OfferRepository) Update(ctx context.Context, offer *models.Offer) error {
	query := `
		UPDATE offers
		SET title = $1, description = $2, discount_type = $3, discount_value = $4,
		    code = $5, valid_until = $6, status = $7
		WHERE id = $8`

	var code *string
	if offer.Code != "" {
		code = &offer.Code
	}

	_, err := r.db.ExecContext(ctx, query,
		offer.Title,
		offer.Description,
		offer.DiscountType,
		offer.DiscountValue,
		code,
		offer.ValidUntil,
		offer.Status,
		offer.ID,
	)
	return err
}

func (r *OfferRepository) Delete(ctx context.Context, id int64) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM offers WHERE id = $1`, id)
	return err
}

func scanOffer(row rowScanner) (*models.Offer, error) {
	offer := &models.Offer{}
	var code sql.NullString

	err := row.Scan(
		&offer.ID,
		&offer.Title,
		&offer.Description,
		&offer.DiscountType,
		&offer.DiscountValue,
		&code,
		&offer.ValidUntil,
		&offer.Status,
		&offer.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	offer.Code = code.String

	return offer, nil
}
