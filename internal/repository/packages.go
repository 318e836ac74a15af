package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/lib/pq"

	"ceylontours/internal/database"
	"ceylontours/internal/models"
)

type PackageRepository struct {
	db *database.DB
}

func NewPackageRepository(db *database.DB) *PackageRepository {
	return &PackageRepository{db: db}
}

const packageColumns = `id, title, location, price, duration, rating, description,
	included, transport, food, gallery, hotels, created_at, updated_at`

func (r *PackageRepository) Create(ctx context.Context, pkg *models.Package) error {
	hotels, err := json.Marshal(pkg.Hotels)
	if err != nil {
		return fmt.Errorf("failed to marshal hotels: %w", err)
	}

	query := `
		INSERT INTO packages (title, location, price, duration, rating, description,
		                      included, transport, food, gallery, hotels)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING id, created_at, updated_at`

	return r.db.QueryRowContext(ctx, query,
		pkg.Title,
		pkg.Location,
		pkg.Price,
		pkg.Duration,
		pkg.Rating,
		pkg.Description,
		pq.Array(pkg.Included),
		pkg.Transport,
		pkg.Food,
		pq.Array(pkg.Gallery),
		hotels,
	).Scan(&pkg.ID, &pkg.CreatedAt, &pkg.UpdatedAt)
}

func (r *PackageRepository) GetByID(ctx context.Context, id int64) (*models.Package, error) {
	query := `SELECT ` + packageColumns + ` FROM packages WHERE id = $1`

	pkg, err := scanPackage(r.db.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	return pkg, err
}

func (r *PackageRepository) List(ctx context.Context, page, pageSize int) ([]models.Package, error) {
	offset := 0
	if page > 1 {
		offset = (page - 1) * pageSize
	}

	query := `SELECT ` + packageColumns + ` FROM packages ORDER BY id LIMIT $1 OFFSET $2`

	rows, err := r.db.QueryContext(ctx, query, pageSize, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var packages []models.Package
	for rows.Next() {
		pkg, err := scanPackage(rows)
		if err != nil {
			return nil, err
		}
		packages = append(packages, *pkg)
	}

	return packages, rows.Err()
}

func (r *PackageRepository) ListAll(ctx context.Context) ([]models.Package, error) {
	query := `SELECT ` + packageColumns + ` FROM packages ORDER BY id`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var packages []models.Package
	for rows.Next() {
		pkg, err := scanPackage(rows)
		if err != nil {
			return nil, err
		}
		packages = append(packages, *pkg)
	}

	return packages, rows.Err()
}

func (r *PackageRepository) Update(ctx context.Context, pkg *models.Package) error {
	hotels, err := json.Marshal(pkg.Hotels)
	if err != nil {
		return fmt.Errorf("failed to marshal hotels: %w", err)
	}

	query := `
		UPDATE packages
		SET title = $1, location = $2, price = $3, duration = $4, rating = $5,
		    description = $6, included = $7, transport = $8, food = $9,
		    gallery = $10, hotels = $11, updated_at = NOW()
		WHERE id = $12`

	_, err = r.db.ExecContext(ctx, query,
		pkg.Title,
		pkg.Location,
		pkg.Price,
		pkg.Duration,
		pkg.Rating,
		pkg.Description,
		pq.Array(pkg.Included),
		pkg.Transport,
		pkg.Food,
		pq.Array(pkg.Gallery),
		hotels,
		pkg.ID,
	)
	return err
}

func (r *PackageRepository) Delete(ctx context.Context, id int64) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM packages WHERE id = $1`, id)
	return err
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanPackage(row rowScanner) (*models.Package, error) {
	pkg := &models.Package{}
	var hotels []byte

	err := row.Scan(
		&pkg.ID,
		&pkg.Title,
		&pkg.Location,
		&pkg.Price,
		&pkg.Duration,
		&pkg.Rating,
		&pkg.Description,
		pq.Array(&pkg.Included),
		&pkg.Transport,
		&pkg.Food,
		pq.Array(&pkg.Gallery),
		&hotels,
		&pkg.CreatedAt,
		&pkg.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if len(hotels) > 0 {
		if err := json.Unmarshal(hotels, &pkg.Hotels); err != nil {
			return nil, fmt.Errorf("failed to unmarshal hotels: %w", err)
		}
	}

	return pkg, nil
}
