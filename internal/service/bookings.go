package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"ceylontours/internal/checkout"
	apperrors "ceylontours/internal/errors"
	"ceylontours/internal/logger"
	"ceylontours/internal/models"
	"ceylontours/internal/pricing"
	"ceylontours/internal/repository"
)

// BookingService drives the checkout flow and the lifecycle of
// persisted bookings.
type BookingService struct {
	sessions      *checkout.Manager
	packageRepo   *repository.PackageRepository
	guideRepo     *repository.GuideRepository
	bookingRepo   *repository.BookingRepository
	notifRepo     *repository.NotificationRepository
	availability  *AvailabilityService
	offers        *OfferService
	events        eventPublisher
}

func NewBookingService(sessions *checkout.Manager, packageRepo *repository.PackageRepository, guideRepo *repository.GuideRepository, bookingRepo *repository.BookingRepository, notifRepo *repository.NotificationRepository, availability *AvailabilityService, offers *OfferService, events eventPublisher) *BookingService {
	return &BookingService{
		sessions:     sessions,
		packageRepo:  packageRepo,
		guideRepo:    guideRepo,
		bookingRepo:  bookingRepo,
		notifRepo:    notifRepo,
		availability: availability,
		offers:       offers,
		events:       events,
	}
}

// StartCheckout opens a checkout session for a package.
func (s *BookingService) StartCheckout(ctx context.Context, req *models.StartCheckoutRequest, userID *string) (*models.StartCheckoutResponse, error) {
	pkg, err := s.packageRepo.GetByID(ctx, req.PackageID)
	if err != nil {
		return nil, fmt.Errorf("failed to get package: %w", err)
	}
	if pkg == nil {
		return nil, apperrors.ErrPackageNotFound
	}

	session := s.sessions.Open(userID, pkg)
	return &models.StartCheckoutResponse{
		SessionID: session.ID,
		Step:      int(session.Step()),
	}, nil
}

// SubmitDetails records the traveller details and resolves which guides
// are free on the chosen date.
func (s *BookingService) SubmitDetails(ctx context.Context, sessionID string, req *models.CheckoutDetailsRequest) (*models.CheckoutDetailsResponse, error) {
	session, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, err
	}

	if err := session.SubmitDetails(checkout.Details{
		Name:            req.Name,
		Email:           req.Email,
		Phone:           req.Phone,
		TravelDate:      req.TravelDate.Time(),
		Adults:          req.Adults,
		Children:        req.Children,
		SpecialRequests: req.SpecialRequests,
	}); err != nil {
		return nil, err
	}

	available, err := s.resolveAvailability(ctx, session)
	if err != nil {
		return nil, err
	}
	return &models.CheckoutDetailsResponse{
		Step:            int(session.Step()),
		AvailableGuides: available,
	}, nil
}

// SelectGuideAndHotel records the step-2 choice. Availability is
// resolved again first: another customer may have taken the guide since
// the list was shown, and a stale pick must be rejected, not silently
// double-booked.
func (s *BookingService) SelectGuideAndHotel(ctx context.Context, sessionID string, req *models.CheckoutSelectionRequest) error {
	session, err := s.sessions.Get(sessionID)
	if err != nil {
		return err
	}
	if _, err := s.resolveAvailability(ctx, session); err != nil {
		return err
	}
	return session.SelectGuideAndHotel(req.GuideID, req.HotelName)
}

// ApplyOffer verifies a promo code and attaches it to the session. Only
// codes that verify are stored; the code is verified again at
// completion since its state can change in between.
func (s *BookingService) ApplyOffer(ctx context.Context, sessionID, code string) (*models.Offer, error) {
	session, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, err
	}
	offer, err := s.offers.Verify(ctx, code)
	if err != nil {
		return nil, err
	}
	if err := session.ApplyOffer(offer.Code); err != nil {
		return nil, err
	}
	return offer, nil
}

// RemoveOffer clears any applied promo code from the session.
func (s *BookingService) RemoveOffer(sessionID string) error {
	session, err := s.sessions.Get(sessionID)
	if err != nil {
		return err
	}
	return session.ApplyOffer("")
}

// Complete materializes the session into a persisted booking. The total
// is computed here, once, and stored on the row; it is never recomputed
// on read. If the write fails the session stays on the payment step so
// the customer can retry, and no notification is created.
func (s *BookingService) Complete(ctx context.Context, sessionID string, req *models.CompleteCheckoutRequest) (*models.Booking, error) {
	session, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, err
	}
	snap, err := session.PrepareCompletion(req.PaymentMethod)
	if err != nil {
		return nil, err
	}

	var applied *models.AppliedOffer
	var discount *pricing.Discount
	if snap.OfferCode != "" {
		offer, err := s.offers.Verify(ctx, snap.OfferCode)
		if err != nil {
			// The offer went invalid between apply and pay. Complete
			// without the discount rather than failing the booking.
			logger.WithContext(ctx).Warn("Applied offer no longer valid, completing without discount",
				"error", err,
				"code", snap.OfferCode)
		} else {
			applied = &models.AppliedOffer{
				ID:            offer.ID,
				Title:         offer.Title,
				Code:          offer.Code,
				DiscountType:  offer.DiscountType,
				DiscountValue: offer.DiscountValue,
			}
			discount = discountOf(offer)
		}
	}

	booking := &models.Booking{
		Code:            newBookingCode(),
		UserID:          snap.UserID,
		Package:         snap.Package,
		TravelDate:      snap.Details.TravelDate,
		Adults:          snap.Details.Adults,
		Children:        snap.Details.Children,
		CustomerName:    snap.Details.Name,
		CustomerEmail:   snap.Details.Email,
		CustomerPhone:   snap.Details.Phone,
		Guide:           snap.Guide,
		Hotel:           snap.Hotel,
		SpecialRequests: snap.Details.SpecialRequests,
		PaymentMethod:   req.PaymentMethod,
		TotalAmount:     pricing.ComputeTotal(snap.UnitPrice, snap.Details.Adults, snap.Details.Children, discount),
		AppliedOffer:    applied,
		Status:          models.BookingStatusPending,
		PaymentStatus:   models.PaymentStatusPending,
	}

	if err := s.bookingRepo.Create(ctx, booking); err != nil {
		return nil, fmt.Errorf("failed to create booking: %w", err)
	}

	session.MarkCompleted()
	s.sessions.Discard(sessionID)

	s.notifyGuide(ctx, booking)

	var guideID *int64
	if booking.Guide != nil {
		guideID = &booking.Guide.ID
	}
	if err := s.events.Publish(models.EventBookingCreated, models.BookingCreatedEvent{
		BookingID:   booking.ID,
		BookingCode: booking.Code,
		PackageID:   booking.Package.ID,
		GuideID:     guideID,
		TravelDate:  booking.TravelDate,
		TotalAmount: booking.TotalAmount,
		Timestamp:   time.Now(),
	}); err != nil {
		logger.WithContext(ctx).Error("Failed to publish booking created event",
			"error", err,
			"booking_id", booking.ID)
	}

	return booking, nil
}

// CheckoutState returns the session's current position for clients
// restoring the flow.
func (s *BookingService) CheckoutState(sessionID string) (*models.CheckoutStateResponse, error) {
	session, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, err
	}

	snap := session.State()
	state := &models.CheckoutStateResponse{
		SessionID:       snap.ID,
		Step:            int(snap.Step),
		Package:         snap.Package,
		UnitPrice:       snap.UnitPrice,
		Adults:          snap.Details.Adults,
		Children:        snap.Details.Children,
		Guide:           snap.Guide,
		Hotel:           snap.Hotel,
		OfferCode:       snap.OfferCode,
		AvailableGuides: session.AvailableGuides(),
	}
	if !snap.Details.TravelDate.IsZero() {
		state.TravelDate = snap.Details.TravelDate.Format("2006-01-02")
	}
	return state, nil
}

// CancelCheckout discards a session and everything entered into it.
// Reports whether a session existed.
func (s *BookingService) CancelCheckout(sessionID string) bool {
	return s.sessions.Discard(sessionID)
}

// notifyGuide writes the new-booking notification and pushes it on the
// guide's live subject. Both are best effort: the booking already
// exists, a missed notification must not roll it back.
func (s *BookingService) notifyGuide(ctx context.Context, booking *models.Booking) {
	if booking.Guide == nil {
		return
	}

	notification := &models.Notification{
		GuideID:     booking.Guide.ID,
		Title:       "New booking",
		Message:     fmt.Sprintf("%s booked %s for %s", booking.CustomerName, booking.Package.Title, booking.TravelDate.Format("2006-01-02")),
		Type:        "new_booking",
		BookingCode: booking.Code,
	}
	if err := s.notifRepo.Create(ctx, notification); err != nil {
		logger.WithContext(ctx).Error("Failed to create guide notification",
			"error", err,
			"guide_id", booking.Guide.ID,
			"booking_code", booking.Code)
		return
	}

	if err := s.events.Publish(models.GuideNotificationSubject(booking.Guide.ID), models.NotificationEvent{
		NotificationID: notification.ID,
		GuideID:        notification.GuideID,
		Title:          notification.Title,
		Message:        notification.Message,
		Type:           notification.Type,
		BookingCode:    notification.BookingCode,
		CreatedAt:      notification.CreatedAt,
	}); err != nil {
		logger.WithContext(ctx).Error("Failed to publish guide notification",
			"error", err,
			"guide_id", booking.Guide.ID)
	}
}

func (s *BookingService) resolveAvailability(ctx context.Context, session *checkout.Session) ([]models.Guide, error) {
	candidates, err := s.guideRepo.ListByStatus(ctx, models.GuideStatusApproved)
	if err != nil {
		return nil, fmt.Errorf("failed to list guides: %w", err)
	}
	available := s.availability.AvailableGuides(ctx, candidates, session.TravelDate())
	session.SetAvailableGuides(available)
	return available, nil
}

// GetByID returns one persisted booking.
func (s *BookingService) GetByID(ctx context.Context, id int64) (*models.Booking, error) {
	booking, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get booking: %w", err)
	}
	if booking == nil {
		return nil, apperrors.ErrBookingNotFound
	}
	return booking, nil
}

// ListForUser returns the caller's bookings.
func (s *BookingService) ListForUser(ctx context.Context, userID string) ([]models.Booking, error) {
	bookings, err := s.bookingRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list bookings: %w", err)
	}
	return bookings, nil
}

// ListForGuide returns the bookings assigned to a guide.
func (s *BookingService) ListForGuide(ctx context.Context, guideID int64) ([]models.Booking, error) {
	bookings, err := s.bookingRepo.ListByGuideID(ctx, guideID)
	if err != nil {
		return nil, fmt.Errorf("failed to list bookings: %w", err)
	}
	return bookings, nil
}

// ListAll returns every booking for the admin.
func (s *BookingService) ListAll(ctx context.Context) ([]models.Booking, error) {
	bookings, err := s.bookingRepo.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list bookings: %w", err)
	}
	return bookings, nil
}

// Confirm moves a pending booking to confirmed. Admin operation.
func (s *BookingService) Confirm(ctx context.Context, id int64) (*models.Booking, error) {
	return s.transition(ctx, id, models.BookingStatusConfirmed, models.EventBookingConfirmed, func(b *models.Booking) error {
		if b.Status != models.BookingStatusPending {
			return apperrors.ErrInvalidTransition
		}
		return nil
	})
}

// MarkCompleted moves a confirmed booking to completed once the tour has
// run. Guide operation, restricted to the assigned guide.
func (s *BookingService) MarkCompleted(ctx context.Context, id, guideID int64) (*models.Booking, error) {
	return s.transition(ctx, id, models.BookingStatusCompleted, models.EventBookingCompleted, func(b *models.Booking) error {
		if b.Guide == nil || b.Guide.ID != guideID {
			return apperrors.ErrForbidden
		}
		if b.Status != models.BookingStatusConfirmed {
			return apperrors.ErrInvalidTransition
		}
		return nil
	})
}

// Cancel cancels a persisted booking from any non-cancelled state.
func (s *BookingService) Cancel(ctx context.Context, id int64) (*models.Booking, error) {
	return s.transition(ctx, id, models.BookingStatusCancelled, models.EventBookingCancelled, func(b *models.Booking) error {
		if b.Status == models.BookingStatusCancelled {
			return apperrors.ErrInvalidTransition
		}
		return nil
	})
}

func (s *BookingService) transition(ctx context.Context, id int64, to models.BookingStatus, subject string, check func(*models.Booking) error) (*models.Booking, error) {
	booking, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get booking: %w", err)
	}
	if booking == nil {
		return nil, apperrors.ErrBookingNotFound
	}
	if err := check(booking); err != nil {
		return nil, err
	}

	if err := s.bookingRepo.UpdateStatus(ctx, id, to); err != nil {
		return nil, fmt.Errorf("failed to update booking status: %w", err)
	}
	booking.Status = to

	if err := s.events.Publish(subject, models.BookingStatusEvent{
		BookingID:   booking.ID,
		BookingCode: booking.Code,
		Status:      string(to),
		Timestamp:   time.Now(),
	}); err != nil {
		logger.WithContext(ctx).Error("Failed to publish booking status event",
			"error", err,
			"booking_id", booking.ID,
			"status", string(to))
	}

	return booking, nil
}

func newBookingCode() string {
	return "CT-" + strings.ToUpper(uuid.New().String()[:8])
}
