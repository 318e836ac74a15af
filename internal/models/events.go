package models

import (
	"strconv"
	"time"
)

// Stream subjects. Guide notifications are delivered on a per-guide
// subject so portal sessions subscribe only to their own feed.
const (
	EventBookingCreated   = "booking.created"
	EventBookingConfirmed = "booking.confirmed"
	EventBookingCompleted = "booking.completed"
	EventBookingCancelled = "booking.cancelled"
	EventPayoutRecorded   = "payout.recorded"
)

// GuideNotificationSubject returns the per-guide notification subject.
func GuideNotificationSubject(guideID int64) string {
	return "notifications.guide." + strconv.FormatInt(guideID, 10)
}

// BookingCreatedEvent is published after a booking row is written.
type BookingCreatedEvent struct {
	BookingID   int64     `json:"booking_id"`
	BookingCode string    `json:"booking_code"`
	PackageID   int64     `json:"package_id"`
	GuideID     *int64    `json:"guide_id,omitempty"`
	TravelDate  time.Time `json:"travel_date"`
	TotalAmount float64   `json:"total_amount"`
	Timestamp   time.Time `json:"timestamp"`
}

// BookingStatusEvent is published when an admin or guide transitions a
// persisted booking.
type BookingStatusEvent struct {
	BookingID   int64     `json:"booking_id"`
	BookingCode string    `json:"booking_code"`
	Status      string    `json:"status"`
	Timestamp   time.Time `json:"timestamp"`
}

// PayoutRecordedEvent is published after a payout row is written.
type PayoutRecordedEvent struct {
	PayoutID     int64     `json:"payout_id"`
	BookingDocID int64     `json:"booking_doc_id"`
	GuideID      int64     `json:"guide_id"`
	Amount       float64   `json:"amount"`
	Timestamp    time.Time `json:"timestamp"`
}

// NotificationEvent is the payload pushed on the per-guide subject for
// live portal delivery.
type NotificationEvent struct {
	NotificationID int64     `json:"notification_id"`
	GuideID        int64     `json:"guide_id"`
	Title          string    `json:"title"`
	Message        string    `json:"message"`
	Type           string    `json:"type"`
	BookingCode    string    `json:"booking_code"`
	CreatedAt      time.Time `json:"created_at"`
}
