package repository

import (
	"context"

	"ceylontours/internal/database"
	"ceylontours/internal/models"
)

type ContactRepository struct {
	db *database.DB
}

func NewContactRepository(db *database.DB) *ContactRepository {
	return &ContactRepository{db: db}
}

func (r *ContactRepository) Create(ctx context.Context, contact *models.Contact) error {
	query := `
		INSERT INTO contacts (name, email, subject, message)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at`

	return r.db.QueryRowContext(ctx, query,
		contact.Name,
		contact.Email,
		contact.Subject,
		contact.Message,
	).Scan(&contact.ID, &contact.CreatedAt)
}

func (r *ContactRepository) ListAll(ctx context.Context) ([]models.Contact, error) {
	query := `SELECT id, name, email, subject, message, created_at FROM contacts ORDER BY created_at DESC`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var contacts []models.Contact
	for rows.Next() {
		var contact models.Contact
		err := rows.Scan(
			&contact.ID,
			&contact.Name,
			&contact.Email,
			&contact.Subject,
			&contact.Message,
			&contact.CreatedAt,
		)
		if err != nil {
			return nil, err
		}
		contacts = append(contacts, contact)
	}

	return contacts, rows.Err()
}
