package repository

import (
	"context"
	"database/sql"
	"time"

	"ceylontours/internal/database"
	"ceylontours/internal/models"
)

type BookingRepository struct {
	db *database.DB
}

func NewBookingRepository(db *database.DB) *BookingRepository {
	return &BookingRepository{db: db}
}

const bookingColumns = `id, code, user_id, package_id, package_title, package_image,
	package_location, travel_date, adults, children, customer_name, customer_email,
	customer_phone, guide_id, guide_name, guide_role, hotel_name, hotel_type,
	special_requests, payment_method, total_amount, offer_id, offer_title, offer_code,
	offer_discount_type, offer_discount_value, status, payment_status, created_at`

func (r *BookingRepository) Create(ctx context.Context, booking *models.Booking) error {
	query := `
		INSERT INTO bookings (code, user_id, package_id, package_title, package_image,
			package_location, travel_date, adults, children, customer_name,
			customer_email, customer_phone, guide_id, guide_name, guide_role,
			hotel_name, hotel_type, special_requests, payment_method, total_amount,
			offer_id, offer_title, offer_code, offer_discount_type, offer_discount_value,
			status, payment_status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15,
			$16, $17, $18, $19, $20, $21, $22, $23, $24, $25, $26, $27)
		RETURNING id, created_at`

	var guideID, offerID *int64
	var guideName, guideRole, hotelName, hotelType *string
	if booking.Guide != nil {
		guideID = &booking.Guide.ID
		guideName = &booking.Guide.Name
		guideRole = &booking.Guide.Role
	}
	if booking.Hotel != nil {
		hotelName = &booking.Hotel.Name
		hotelType = &booking.Hotel.Type
	}
	var offerTitle, offerCode, offerDiscountType *string
	var offerDiscountValue *float64
	if booking.AppliedOffer != nil {
		offerID = &booking.AppliedOffer.ID
		offerTitle = &booking.AppliedOffer.Title
		offerCode = &booking.AppliedOffer.Code
		offerDiscountType = &booking.AppliedOffer.DiscountType
		offerDiscountValue = &booking.AppliedOffer.DiscountValue
	}

	return r.db.QueryRowContext(ctx, query,
		booking.Code,
		booking.UserID,
		booking.Package.ID,
		booking.Package.Title,
		booking.Package.Image,
		booking.Package.Location,
		booking.TravelDate,
		booking.Adults,
		booking.Children,
		booking.CustomerName,
		booking.CustomerEmail,
		booking.CustomerPhone,
		guideID,
		guideName,
		guideRole,
		hotelName,
		hotelType,
		booking.SpecialRequests,
		booking.PaymentMethod,
		booking.TotalAmount,
		offerID,
		offerTitle,
		offerCode,
		offerDiscountType,
		offerDiscountValue,
		booking.Status,
		booking.PaymentStatus,
	).Scan(&booking.ID, &booking.CreatedAt)
}

func (r *BookingRepository) GetByID(ctx context.Context, id int64) (*models.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE id = $1`
	booking, err := scanBooking(r.db.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	return booking, err
}

func (r *BookingRepository) GetByUserID(ctx context.Context, userID string) ([]models.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE user_id = $1 ORDER BY created_at DESC`
	return r.list(ctx, query, userID)
}

// ListByTravelDate returns non-cancelled bookings on an exact calendar
// date. Feeds the availability resolver.
func (r *BookingRepository) ListByTravelDate(ctx context.Context, date time.Time) ([]models.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings
		WHERE travel_date = $1 AND status != 'cancelled'
		ORDER BY created_at`
	return r.list(ctx, query, date.Format("2006-01-02"))
}

func (r *BookingRepository) ListByGuideID(ctx context.Context, guideID int64) ([]models.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE guide_id = $1 ORDER BY created_at DESC`
	return r.list(ctx, query, guideID)
}

// ListCompletedByGuideID returns completed bookings for one guide,
// the candidate set for payout reconciliation.
func (r *BookingRepository) ListCompletedByGuideID(ctx context.Context, guideID int64) ([]models.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings
		WHERE guide_id = $1 AND status = 'completed'
		ORDER BY created_at DESC`
	return r.list(ctx, query, guideID)
}

func (r *BookingRepository) ListCompleted(ctx context.Context) ([]models.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings
		WHERE status = 'completed' AND guide_id IS NOT NULL
		ORDER BY created_at DESC`
	return r.list(ctx, query)
}

func (r *BookingRepository) ListAll(ctx context.Context) ([]models.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings ORDER BY created_at DESC`
	return r.list(ctx, query)
}

func (r *BookingRepository) UpdateStatus(ctx context.Context, id int64, status models.BookingStatus) error {
	_, err := r.db.ExecContext(ctx, `UPDATE bookings SET status = $1 WHERE id = $2`, status, id)
	return err
}

func (r *BookingRepository) UpdatePaymentStatus(ctx context.Context, id int64, status models.PaymentStatus) error {
	_, err := r.db.ExecContext(ctx, `UPDATE bookings SET payment_status = $1 WHERE id = $2`, status, id)
	return err
}

func (r *BookingRepository) list(ctx context.Context, query string, args ...interface{}) ([]models.Booking, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var bookings []models.Booking
	for rows.Next() {
		booking, err := scanBooking(rows)
		if err != nil {
			return nil, err
		}
		bookings = append(bookings, *booking)
	}

	return bookings, rows.Err()
}

func scanBooking(row rowScanner) (*models.Booking, error) {
	booking := &models.Booking{}
	var guideID, offerID sql.NullInt64
	var guideName, guideRole, hotelName, hotelType sql.NullString
	var offerTitle, offerCode, offerDiscountType sql.NullString
	var offerDiscountValue sql.NullFloat64

	err := row.Scan(
		&booking.ID,
		&booking.Code,
		&booking.UserID,
		&booking.Package.ID,
		&booking.Package.Title,
		&booking.Package.Image,
		&booking.Package.Location,
		&booking.TravelDate,
		&booking.Adults,
		&booking.Children,
		&booking.CustomerName,
		&booking.CustomerEmail,
		&booking.CustomerPhone,
		&guideID,
		&guideName,
		&guideRole,
		&hotelName,
		&hotelType,
		&booking.SpecialRequests,
		&booking.PaymentMethod,
		&booking.TotalAmount,
		&offerID,
		&offerTitle,
		&offerCode,
		&offerDiscountType,
		&offerDiscountValue,
		&booking.Status,
		&booking.PaymentStatus,
		&booking.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	if guideID.Valid {
		booking.Guide = &models.GuideRef{
			ID:   guideID.Int64,
			Name: guideName.String,
			Role: guideRole.String,
		}
	}
	if hotelName.Valid {
		booking.Hotel = &models.HotelRef{
			Name: hotelName.String,
			Type: hotelType.String,
		}
	}
	if offerID.Valid {
		booking.AppliedOffer = &models.AppliedOffer{
			ID:            offerID.Int64,
			Title:         offerTitle.String,
			Code:          offerCode.String,
			DiscountType:  offerDiscountType.String,
			DiscountValue: offerDiscountValue.Float64,
		}
	}

	return booking, nil
}
