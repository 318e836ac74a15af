// Package checkout drives the multi-step reservation flow: traveller
// details, guide and hotel selection, then payment. Sessions live in
// process memory; nothing is persisted until the final step succeeds,
// and cancelling at any point discards all form state.
package checkout

import (
	"sort"
	"strings"
	"sync"
	"time"

	apperrors "ceylontours/internal/errors"
	"ceylontours/internal/models"
)

// Step is the customer's position in the reservation flow.
type Step int

const (
	StepDetails Step = iota + 1
	StepSelection
	StepPayment
	StepCompleted
)

// Details are the step-1 traveller inputs.
type Details struct {
	Name            string
	Email           string
	Phone           string
	TravelDate      time.Time
	Adults          int
	Children        int
	SpecialRequests string
}

// Session is one in-progress reservation. It captures a snapshot of the
// package at open time so a concurrent admin edit cannot shift the price
// mid-checkout.
type Session struct {
	mu sync.Mutex

	ID        string
	UserID    *string
	Package   models.PackageRef
	UnitPrice float64
	Hotels    []models.Hotel

	step            Step
	details         Details
	availableGuides map[int64]models.Guide
	guide           *models.GuideRef
	hotel           *models.HotelRef
	offerCode       string

	CreatedAt time.Time
	updatedAt time.Time
}

func newSession(id string, userID *string, pkg *models.Package) *Session {
	image := ""
	if len(pkg.Gallery) > 0 {
		image = pkg.Gallery[0]
	}
	now := time.Now().UTC()
	return &Session{
		ID:     id,
		UserID: userID,
		Package: models.PackageRef{
			ID:       pkg.ID,
			Title:    pkg.Title,
			Image:    image,
			Location: pkg.Location,
		},
		UnitPrice: pkg.Price,
		Hotels:    pkg.Hotels,
		step:      StepDetails,
		CreatedAt: now,
		updatedAt: now,
	}
}

// SubmitDetails records the traveller details and advances to guide and
// hotel selection. Resubmitting is allowed while the flow is open, since
// a customer may go back to change the date; doing so clears any earlier
// guide selection.
func (s *Session) SubmitDetails(d Details) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.step == StepCompleted {
		return ErrSessionClosed
	}
	if strings.TrimSpace(d.Name) == "" ||
		strings.TrimSpace(d.Email) == "" ||
		strings.TrimSpace(d.Phone) == "" ||
		d.TravelDate.IsZero() {
		return ErrDetailsIncomplete
	}
	if d.Adults < 1 {
		return ErrAdultsRequired
	}
	if d.Children < 0 {
		return ErrDetailsIncomplete
	}

	d.TravelDate = truncateToDay(d.TravelDate)
	s.details = d
	s.guide = nil
	s.hotel = nil
	s.availableGuides = nil
	s.step = StepSelection
	s.updatedAt = time.Now().UTC()
	return nil
}

// SetAvailableGuides stores the resolver result for the chosen date.
func (s *Session) SetAvailableGuides(guides []models.Guide) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.availableGuides = make(map[int64]models.Guide, len(guides))
	for _, g := range guides {
		s.availableGuides[g.ID] = g
	}
}

// SelectGuideAndHotel advances to the payment step. The guide must be in
// the available set recorded for this session; a stale choice is
// rejected and deselected so the customer picks again. The hotel must be
// one of the package's options.
func (s *Session) SelectGuideAndHotel(guideID int64, hotelName string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.step == StepCompleted {
		return ErrSessionClosed
	}
	if s.step < StepSelection {
		return ErrDetailsIncomplete
	}

	guide, ok := s.availableGuides[guideID]
	if !ok {
		s.guide = nil
		return apperrors.ErrGuideUnavailable
	}

	var hotel *models.HotelRef
	for _, h := range s.Hotels {
		if h.Name == hotelName {
			hotel = &models.HotelRef{Name: h.Name, Type: h.Type}
			break
		}
	}
	if hotel == nil {
		return apperrors.ErrUnknownHotel
	}

	s.guide = &models.GuideRef{ID: guide.ID, Name: guide.Name, Role: guide.Role}
	s.hotel = hotel
	s.step = StepPayment
	s.updatedAt = time.Now().UTC()
	return nil
}

// ApplyOffer attaches a promo code. An empty code clears it. The code is
// re-verified when the booking is materialized, not here.
func (s *Session) ApplyOffer(code string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.step == StepCompleted {
		return ErrSessionClosed
	}
	s.offerCode = strings.TrimSpace(code)
	return nil
}

// PrepareCompletion validates the final step and returns a snapshot for
// the booking write. The session stays in the payment step: the caller
// marks it completed only after persistence succeeds, so a failed write
// leaves the flow retryable.
func (s *Session) PrepareCompletion(paymentMethod string) (Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.step == StepCompleted {
		return Snapshot{}, ErrSessionClosed
	}
	if s.step < StepPayment {
		return Snapshot{}, ErrSelectionIncomplete
	}
	if strings.TrimSpace(paymentMethod) == "" {
		return Snapshot{}, ErrPaymentMethodRequired
	}

	return s.snapshotLocked(), nil
}

// MarkCompleted closes the session after a successful booking write.
func (s *Session) MarkCompleted() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.step = StepCompleted
	s.updatedAt = time.Now().UTC()
}

// Step returns the current step.
func (s *Session) Step() Step {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.step
}

// Snapshot is a read-only copy of the session state.
type Snapshot struct {
	ID        string
	UserID    *string
	Package   models.PackageRef
	UnitPrice float64
	Details   Details
	Guide     *models.GuideRef
	Hotel     *models.HotelRef
	OfferCode string
	Step      Step
}

// State returns a snapshot of the current session.
func (s *Session) State() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

func (s *Session) snapshotLocked() Snapshot {
	snap := Snapshot{
		ID:        s.ID,
		UserID:    s.UserID,
		Package:   s.Package,
		UnitPrice: s.UnitPrice,
		Details:   s.details,
		OfferCode: s.offerCode,
		Step:      s.step,
	}
	if s.guide != nil {
		g := *s.guide
		snap.Guide = &g
	}
	if s.hotel != nil {
		h := *s.hotel
		snap.Hotel = &h
	}
	return snap
}

// AvailableGuides returns the resolver result recorded for this
// session, ordered by guide id.
func (s *Session) AvailableGuides() []models.Guide {
	s.mu.Lock()
	defer s.mu.Unlock()

	guides := make([]models.Guide, 0, len(s.availableGuides))
	for _, g := range s.availableGuides {
		guides = append(guides, g)
	}
	sort.Slice(guides, func(i, j int) bool { return guides[i].ID < guides[j].ID })
	return guides
}

// TravelDate returns the chosen calendar date, zero before step 1 is
// done.
func (s *Session) TravelDate() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.details.TravelDate
}

func truncateToDay(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
