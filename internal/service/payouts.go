package service

import (
	"context"
	"fmt"
	"time"

	"github.com/lib/pq"

	apperrors "ceylontours/internal/errors"
	"ceylontours/internal/logger"
	"ceylontours/internal/models"
)

type completedBookings interface {
	GetByID(ctx context.Context, id int64) (*models.Booking, error)
	ListCompletedByGuideID(ctx context.Context, guideID int64) ([]models.Booking, error)
	ListCompleted(ctx context.Context) ([]models.Booking, error)
}

type payoutStore interface {
	Create(ctx context.Context, payout *models.Payout) error
	GetByBookingDocID(ctx context.Context, bookingDocID int64) (*models.Payout, error)
	ListByGuideID(ctx context.Context, guideID int64) ([]models.Payout, error)
	ListAll(ctx context.Context) ([]models.Payout, error)
}

type eventPublisher interface {
	Publish(subject string, data interface{}) error
}

// PayoutService reconciles completed bookings against recorded payouts.
type PayoutService struct {
	bookings completedBookings
	payouts  payoutStore
	events   eventPublisher

	// injected in tests to pin the clock
	now func() time.Time
}

func NewPayoutService(bookings completedBookings, payouts payoutStore, events eventPublisher) *PayoutService {
	return &PayoutService{
		bookings: bookings,
		payouts:  payouts,
		events:   events,
		now:      time.Now,
	}
}

// PendingPayouts returns the guide's completed bookings that have no
// payout recorded against them yet.
func (s *PayoutService) PendingPayouts(ctx context.Context, guideID int64) ([]models.Booking, error) {
	completed, err := s.bookings.ListCompletedByGuideID(ctx, guideID)
	if err != nil {
		return nil, fmt.Errorf("failed to list completed bookings: %w", err)
	}
	payouts, err := s.payouts.ListByGuideID(ctx, guideID)
	if err != nil {
		return nil, fmt.Errorf("failed to list payouts: %w", err)
	}
	return unpaid(completed, payouts), nil
}

// Record writes a payout for one completed booking. A booking can be
// paid out at most once: the prior-payout lookup catches the common
// case, and the unique index on booking_doc_id catches two admins
// racing on the same booking.
func (s *PayoutService) Record(ctx context.Context, req *models.RecordPayoutRequest) (*models.Payout, error) {
	existing, err := s.payouts.GetByBookingDocID(ctx, req.BookingDocID)
	if err != nil {
		return nil, fmt.Errorf("failed to check for prior payout: %w", err)
	}
	if existing != nil {
		return nil, apperrors.ErrAlreadyPaidOut
	}

	booking, err := s.bookings.GetByID(ctx, req.BookingDocID)
	if err != nil {
		return nil, fmt.Errorf("failed to get booking: %w", err)
	}
	if booking == nil {
		return nil, apperrors.ErrBookingNotFound
	}
	if booking.Status != models.BookingStatusCompleted {
		return nil, fmt.Errorf("booking %s is %s, only completed bookings can be paid out", booking.Code, booking.Status)
	}
	if booking.Guide == nil {
		return nil, fmt.Errorf("booking %s has no assigned guide", booking.Code)
	}

	payout := &models.Payout{
		BookingCode:  booking.Code,
		BookingDocID: booking.ID,
		GuideID:      booking.Guide.ID,
		GuideName:    booking.Guide.Name,
		PackageTitle: booking.Package.Title,
		Amount:       req.Amount,
		Notes:        req.Notes,
		PayoutDate:   s.now().UTC(),
		Status:       "paid",
	}

	if err := s.payouts.Create(ctx, payout); err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23505" {
			return nil, apperrors.ErrAlreadyPaidOut
		}
		return nil, fmt.Errorf("failed to record payout: %w", err)
	}

	if err := s.events.Publish(models.EventPayoutRecorded, models.PayoutRecordedEvent{
		PayoutID:     payout.ID,
		BookingDocID: payout.BookingDocID,
		GuideID:      payout.GuideID,
		Amount:       payout.Amount,
		Timestamp:    s.now(),
	}); err != nil {
		logger.WithContext(ctx).Error("Failed to publish payout recorded event",
			"error", err,
			"payout_id", payout.ID)
	}

	return payout, nil
}

// GuideSummary aggregates payout state for the guide portal earnings
// page: lifetime total, current-month total, and the completed bookings
// still awaiting payout.
func (s *PayoutService) GuideSummary(ctx context.Context, guideID int64) (*models.PayoutSummaryResponse, error) {
	payouts, err := s.payouts.ListByGuideID(ctx, guideID)
	if err != nil {
		return nil, fmt.Errorf("failed to list payouts: %w", err)
	}
	completed, err := s.bookings.ListCompletedByGuideID(ctx, guideID)
	if err != nil {
		return nil, fmt.Errorf("failed to list completed bookings: %w", err)
	}

	now := s.now().UTC()
	summary := &models.PayoutSummaryResponse{
		GuideID:     guideID,
		PendingJobs: unpaid(completed, payouts),
	}
	for _, p := range payouts {
		summary.TotalPaid += p.Amount
		if p.PayoutDate.UTC().Year() == now.Year() && p.PayoutDate.UTC().Month() == now.Month() {
			summary.MonthPaid += p.Amount
		}
	}
	return summary, nil
}

// Dashboard aggregates payout state across all guides for the admin.
func (s *PayoutService) Dashboard(ctx context.Context) (*models.PayoutDashboardResponse, error) {
	completed, err := s.bookings.ListCompleted(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list completed bookings: %w", err)
	}
	payouts, err := s.payouts.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list payouts: %w", err)
	}

	dashboard := &models.PayoutDashboardResponse{
		PendingCount:     len(unpaid(completed, payouts)),
		TransactionCount: len(payouts),
	}
	for _, p := range payouts {
		dashboard.ProcessedTotal += p.Amount
	}
	return dashboard, nil
}

// ListAll returns every recorded payout, newest first, for the admin
// transaction history.
func (s *PayoutService) ListAll(ctx context.Context) ([]models.Payout, error) {
	payouts, err := s.payouts.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list payouts: %w", err)
	}
	return payouts, nil
}

func unpaid(completed []models.Booking, payouts []models.Payout) []models.Booking {
	paid := make(map[int64]struct{}, len(payouts))
	for _, p := range payouts {
		paid[p.BookingDocID] = struct{}{}
	}
	pending := make([]models.Booking, 0, len(completed))
	for _, b := range completed {
		if _, ok := paid[b.ID]; !ok {
			pending = append(pending, b)
		}
	}
	return pending
}
