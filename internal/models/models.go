package models

import (
	"fmt"
	"strings"
	"time"
)

// DateOnly is a calendar date with no time component. It marshals as
// "2006-01-02" and normalizes any parsed value to midnight UTC.
type DateOnly time.Time

const dateOnlyLayout = "2006-01-02"

func (d *DateOnly) UnmarshalJSON(data []byte) error {
	str := strings.Trim(string(data), `"`)
	if str == "" || str == "null" {
		*d = DateOnly(time.Time{})
		return nil
	}
	t, err := time.Parse(dateOnlyLayout, str)
	if err != nil {
		return fmt.Errorf("invalid date %q, expected YYYY-MM-DD", str)
	}
	*d = DateOnly(t)
	return nil
}

func (d DateOnly) MarshalJSON() ([]byte, error) {
	t := time.Time(d)
	if t.IsZero() {
		return []byte("null"), nil
	}
	return []byte(`"` + t.Format(dateOnlyLayout) + `"`), nil
}

// Time returns the underlying midnight-UTC timestamp.
func (d DateOnly) Time() time.Time {
	return time.Time(d)
}

// IsZero reports whether the date is unset.
func (d DateOnly) IsZero() bool {
	return time.Time(d).IsZero()
}

// StartCheckoutRequest opens a checkout session for a package.
type StartCheckoutRequest struct {
	PackageID int64 `json:"package_id" binding:"required"`
}

// StartCheckoutResponse returns the new session handle.
type StartCheckoutResponse struct {
	SessionID string `json:"session_id"`
	Step      int    `json:"step"`
}

// CheckoutDetailsRequest carries the step-1 traveller details.
type CheckoutDetailsRequest struct {
	Name            string   `json:"name" binding:"required"`
	Email           string   `json:"email" binding:"required,email"`
	Phone           string   `json:"phone" binding:"required"`
	TravelDate      DateOnly `json:"travel_date" binding:"required,future_date"`
	Adults          int      `json:"adults" binding:"required,min=1"`
	Children        int      `json:"children" binding:"min=0"`
	SpecialRequests string   `json:"special_requests"`
}

// CheckoutDetailsResponse returns the guides free on the chosen date.
type CheckoutDetailsResponse struct {
	Step            int     `json:"step"`
	AvailableGuides []Guide `json:"available_guides"`
}

// CheckoutStateResponse is the full view of an open checkout session,
// enough for a client to restore the flow mid-way.
type CheckoutStateResponse struct {
	SessionID       string     `json:"session_id"`
	Step            int        `json:"step"`
	Package         PackageRef `json:"package"`
	UnitPrice       float64    `json:"unit_price"`
	TravelDate      string     `json:"travel_date,omitempty"`
	Adults          int        `json:"adults,omitempty"`
	Children        int        `json:"children,omitempty"`
	Guide           *GuideRef  `json:"guide,omitempty"`
	Hotel           *HotelRef  `json:"hotel,omitempty"`
	OfferCode       string     `json:"offer_code,omitempty"`
	AvailableGuides []Guide    `json:"available_guides"`
}

// CheckoutSelectionRequest carries the step-2 guide and hotel choice.
type CheckoutSelectionRequest struct {
	GuideID   int64  `json:"guide_id" binding:"required"`
	HotelName string `json:"hotel_name" binding:"required"`
}

// ApplyOfferRequest attaches a promo code to a checkout session.
type ApplyOfferRequest struct {
	Code string `json:"code" binding:"required"`
}

// CompleteCheckoutRequest carries the step-3 payment method.
type CompleteCheckoutRequest struct {
	PaymentMethod string `json:"payment_method" binding:"required"`
}

// VerifyOfferResponse is the outcome of a promo-code check.
type VerifyOfferResponse struct {
	Valid  bool   `json:"valid"`
	Reason string `json:"reason,omitempty"`
	Offer  *Offer `json:"offer,omitempty"`
}

// CreateOfferRequest is the admin input for a new offer. Discount accepts
// either the structured pair or the legacy free-text form via Discount.
type CreateOfferRequest struct {
	Title         string   `json:"title" binding:"required"`
	Description   string   `json:"description"`
	Discount      string   `json:"discount"`
	DiscountType  string   `json:"discount_type" binding:"omitempty,oneof=percentage amount"`
	DiscountValue float64  `json:"discount_value" binding:"omitempty,gt=0"`
	Code          string   `json:"code"`
	ValidUntil    DateOnly `json:"valid_until"`
	Status        string   `json:"status" binding:"omitempty,oneof=active inactive"`
}

// CreatePackageRequest is the admin input for a new tour package.
type CreatePackageRequest struct {
	Title       string   `json:"title" binding:"required"`
	Location    string   `json:"location" binding:"required"`
	Price       float64  `json:"price" binding:"required,gt=0"`
	Duration    string   `json:"duration"`
	Description string   `json:"description"`
	Included    []string `json:"included"`
	Transport   string   `json:"transport"`
	Food        string   `json:"food"`
	Gallery     []string `json:"gallery"`
	Hotels      []Hotel  `json:"hotels" binding:"dive"`
}

// RegisterGuideRequest is the guide self-registration input. The profile
// starts in status pending until an admin moderates it.
type RegisterGuideRequest struct {
	Name       string   `json:"name" binding:"required"`
	Role       string   `json:"role"`
	Location   string   `json:"location"`
	Languages  []string `json:"languages"`
	Experience string   `json:"experience"`
}

// BlockDateRequest marks a calendar date as unavailable for the guide.
type BlockDateRequest struct {
	Date   DateOnly `json:"date" binding:"required,future_date"`
	Reason string   `json:"reason"`
}

// RecordPayoutRequest records a payout for one completed booking.
type RecordPayoutRequest struct {
	BookingDocID int64   `json:"booking_doc_id" binding:"required"`
	Amount       float64 `json:"amount" binding:"required,gt=0"`
	Notes        string  `json:"notes"`
}

// PayoutSummaryResponse aggregates payouts for one guide.
type PayoutSummaryResponse struct {
	GuideID     int64     `json:"guide_id"`
	TotalPaid   float64   `json:"total_paid"`
	MonthPaid   float64   `json:"month_paid"`
	PendingJobs []Booking `json:"pending_jobs"`
}

// PayoutDashboardResponse aggregates payout state system-wide.
type PayoutDashboardResponse struct {
	PendingCount     int     `json:"pending_count"`
	ProcessedTotal   float64 `json:"processed_total"`
	TransactionCount int     `json:"transaction_count"`
}

// ContactRequest is a customer enquiry submission.
type ContactRequest struct {
	Name    string `json:"name" binding:"required"`
	Email   string `json:"email" binding:"required,email"`
	Subject string `json:"subject"`
	Message string `json:"message" binding:"required"`
}

// CreateReviewRequest is a customer review submission.
type CreateReviewRequest struct {
	PackageID int64  `json:"package_id" binding:"required"`
	Rating    int    `json:"rating" binding:"required,min=1,max=5"`
	Comment   string `json:"comment"`
}

// SaveTripRequest toggles a package in the caller's saved-trips set.
type SaveTripRequest struct {
	PackageID int64 `json:"package_id" binding:"required"`
}
