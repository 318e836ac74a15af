package models

import (
	"time"
)

// GuideStatus is the admin-moderated lifecycle state of a guide profile.
type GuideStatus string

const (
	GuideStatusPending  GuideStatus = "pending"
	GuideStatusApproved GuideStatus = "approved"
	GuideStatusRejected GuideStatus = "rejected"
)

// BookingStatus tracks a booking through its lifecycle.
type BookingStatus string

const (
	BookingStatusPending   BookingStatus = "pending"
	BookingStatusConfirmed BookingStatus = "confirmed"
	BookingStatusCompleted BookingStatus = "completed"
	BookingStatusCancelled BookingStatus = "cancelled"
)

// PaymentStatus tracks whether a booking has been paid.
type PaymentStatus string

const (
	PaymentStatusPending PaymentStatus = "pending"
	PaymentStatusPaid    PaymentStatus = "paid"
)

// OfferStatus is the admin-controlled activation state of a promotional offer.
type OfferStatus string

const (
	OfferStatusActive   OfferStatus = "active"
	OfferStatusInactive OfferStatus = "inactive"
)

// Hotel is a selectable accommodation option attached to a package.
type Hotel struct {
	Name        string `json:"name" binding:"required"`
	Type        string `json:"type" binding:"required,hotel_type"`
	Description string `json:"description,omitempty"`
	Image       string `json:"image,omitempty"`
}

// Package represents a sellable tour product.
type Package struct {
	ID          int64     `json:"id" db:"id"`
	Title       string    `json:"title" db:"title"`
	Location    string    `json:"location" db:"location"`
	Price       float64   `json:"price" db:"price"`
	Duration    string    `json:"duration" db:"duration"`
	Rating      float64   `json:"rating" db:"rating"`
	Description string    `json:"description" db:"description"`
	Included    []string  `json:"included" db:"included"`
	Transport   string    `json:"transport" db:"transport"`
	Food        string    `json:"food" db:"food"`
	Gallery     []string  `json:"gallery" db:"gallery"`
	Hotels      []Hotel   `json:"hotels" db:"hotels"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" db:"updated_at"`
}

// Guide represents a bookable tour-guide professional.
type Guide struct {
	ID         int64       `json:"id" db:"id"`
	UID        *string     `json:"uid,omitempty" db:"uid"`
	Name       string      `json:"name" db:"name"`
	Role       string      `json:"role" db:"role"`
	Location   string      `json:"location" db:"location"`
	Languages  []string    `json:"languages" db:"languages"`
	Experience string      `json:"experience" db:"experience"`
	Rating     float64     `json:"rating" db:"rating"`
	Status     GuideStatus `json:"status" db:"status"`
	CreatedAt  time.Time   `json:"created_at" db:"created_at"`
}

// PackageRef is the package snapshot captured on a booking.
type PackageRef struct {
	ID       int64  `json:"id"`
	Title    string `json:"title"`
	Image    string `json:"image,omitempty"`
	Location string `json:"location,omitempty"`
}

// GuideRef is the guide snapshot captured on a booking.
type GuideRef struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
	Role string `json:"role,omitempty"`
}

// HotelRef is the hotel snapshot captured on a booking.
type HotelRef struct {
	Name string `json:"name"`
	Type string `json:"type,omitempty"`
}

// AppliedOffer is the offer snapshot captured on a booking at checkout time.
type AppliedOffer struct {
	ID            int64   `json:"id"`
	Title         string  `json:"title"`
	Code          string  `json:"code"`
	DiscountType  string  `json:"discount_type"`
	DiscountValue float64 `json:"discount_value"`
}

// Booking represents a reservation of a package for a travel date.
// TotalAmount is captured at creation time and never recomputed on read.
type Booking struct {
	ID              int64         `json:"id" db:"id"`
	Code            string        `json:"code" db:"code"`
	UserID          *string       `json:"user_id,omitempty" db:"user_id"`
	Package         PackageRef    `json:"package"`
	TravelDate      time.Time     `json:"travel_date" db:"travel_date"`
	Adults          int           `json:"adults" db:"adults"`
	Children        int           `json:"children" db:"children"`
	CustomerName    string        `json:"customer_name" db:"customer_name"`
	CustomerEmail   string        `json:"customer_email" db:"customer_email"`
	CustomerPhone   string        `json:"customer_phone" db:"customer_phone"`
	Guide           *GuideRef     `json:"guide,omitempty"`
	Hotel           *HotelRef     `json:"hotel,omitempty"`
	SpecialRequests string        `json:"special_requests,omitempty" db:"special_requests"`
	PaymentMethod   string        `json:"payment_method" db:"payment_method"`
	TotalAmount     float64       `json:"total_amount" db:"total_amount"`
	AppliedOffer    *AppliedOffer `json:"applied_offer,omitempty"`
	Status          BookingStatus `json:"status" db:"status"`
	PaymentStatus   PaymentStatus `json:"payment_status" db:"payment_status"`
	CreatedAt       time.Time     `json:"created_at" db:"created_at"`
}

// Offer represents a promotional discount with an activation window.
// Discount is stored structured; the legacy free-text form ("20% OFF",
// "LKR 5000 OFF") is parsed once at the admin input boundary.
type Offer struct {
	ID            int64       `json:"id" db:"id"`
	Title         string      `json:"title" db:"title"`
	Description   string      `json:"description" db:"description"`
	DiscountType  string      `json:"discount_type" db:"discount_type"`
	DiscountValue float64     `json:"discount_value" db:"discount_value"`
	Code          string      `json:"code" db:"code"`
	ValidUntil    *time.Time  `json:"valid_until,omitempty" db:"valid_until"`
	Status        OfferStatus `json:"status" db:"status"`
	CreatedAt     time.Time   `json:"created_at" db:"created_at"`
}

// BlockedDate is a guide-declared unavailability on a calendar date,
// independent of bookings.
type BlockedDate struct {
	ID        int64     `json:"id" db:"id"`
	GuideID   int64     `json:"guide_id" db:"guide_id"`
	Date      time.Time `json:"date" db:"date"`
	Reason    string    `json:"reason" db:"reason"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// Payout is a recorded payment from the platform to a guide for one
// completed booking. BookingDocID is the dedup key: at most one payout
// per booking.
type Payout struct {
	ID           int64     `json:"id" db:"id"`
	BookingCode  string    `json:"booking_code" db:"booking_code"`
	BookingDocID int64     `json:"booking_doc_id" db:"booking_doc_id"`
	GuideID      int64     `json:"guide_id" db:"guide_id"`
	GuideName    string    `json:"guide_name" db:"guide_name"`
	PackageTitle string    `json:"package_title" db:"package_title"`
	Amount       float64   `json:"amount" db:"amount"`
	Notes        string    `json:"notes" db:"notes"`
	PayoutDate   time.Time `json:"payout_date" db:"payout_date"`
	Status       string    `json:"status" db:"status"`
}

// Notification is a message for a guide, created as a side effect of
// booking creation. Only the read flag is ever mutated.
type Notification struct {
	ID          int64     `json:"id" db:"id"`
	GuideID     int64     `json:"guide_id" db:"guide_id"`
	Title       string    `json:"title" db:"title"`
	Message     string    `json:"message" db:"message"`
	Type        string    `json:"type" db:"type"`
	BookingCode string    `json:"booking_code" db:"booking_code"`
	Read        bool      `json:"read" db:"read"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
}

// User mirrors the identity provider's view of an account.
type User struct {
	UID       string    `json:"uid" db:"uid"`
	Email     string    `json:"email" db:"email"`
	Name      string    `json:"name" db:"name"`
	Role      string    `json:"role" db:"role"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// Contact is a customer enquiry submitted through the contact form.
type Contact struct {
	ID        int64     `json:"id" db:"id"`
	Name      string    `json:"name" db:"name"`
	Email     string    `json:"email" db:"email"`
	Subject   string    `json:"subject" db:"subject"`
	Message   string    `json:"message" db:"message"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// Review is a customer review of a package.
type Review struct {
	ID        int64     `json:"id" db:"id"`
	PackageID int64     `json:"package_id" db:"package_id"`
	UserID    string    `json:"user_id" db:"user_id"`
	UserName  string    `json:"user_name" db:"user_name"`
	Rating    int       `json:"rating" db:"rating"`
	Comment   string    `json:"comment" db:"comment"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}
