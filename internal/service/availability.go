package service

import (
	"context"
	"time"

	"ceylontours/internal/logger"
	"ceylontours/internal/models"
)

// travelDateBookings lists non-cancelled bookings for a calendar date.
type travelDateBookings interface {
	ListByTravelDate(ctx context.Context, date time.Time) ([]models.Booking, error)
}

// blockedDatesByDate lists guide-declared blocks for a calendar date.
type blockedDatesByDate interface {
	ListByDate(ctx context.Context, date time.Time) ([]models.BlockedDate, error)
}

// AvailabilityService decides which guides are free on a given date.
type AvailabilityService struct {
	bookings travelDateBookings
	blocked  blockedDatesByDate
}

func NewAvailabilityService(bookings travelDateBookings, blocked blockedDatesByDate) *AvailabilityService {
	return &AvailabilityService{
		bookings: bookings,
		blocked:  blocked,
	}
}

// AvailableGuides returns the subset of candidates free on date. A guide
// is taken on a date when any non-cancelled booking is assigned to them
// for that exact date, or when they have blocked the date themselves.
//
// An empty result is a normal outcome the customer resolves by picking
// another date. A failed lookup is different: blocking every checkout on
// a transient read error would be worse than an occasional double
// booking, so on error all candidates are treated as available and the
// failure is logged.
func (s *AvailabilityService) AvailableGuides(ctx context.Context, candidates []models.Guide, date time.Time) []models.Guide {
	taken := make(map[int64]struct{})

	bookings, err := s.bookings.ListByTravelDate(ctx, date)
	if err != nil {
		logger.WithContext(ctx).Error("Availability lookup failed, treating all guides as available",
			"error", err,
			"date", date.Format("2006-01-02"))
		return candidates
	}
	for _, b := range bookings {
		if b.Guide != nil {
			taken[b.Guide.ID] = struct{}{}
		}
	}

	blocks, err := s.blocked.ListByDate(ctx, date)
	if err != nil {
		logger.WithContext(ctx).Error("Blocked-date lookup failed, treating all guides as available",
			"error", err,
			"date", date.Format("2006-01-02"))
		return candidates
	}
	for _, block := range blocks {
		taken[block.GuideID] = struct{}{}
	}

	available := make([]models.Guide, 0, len(candidates))
	for _, g := range candidates {
		if _, busy := taken[g.ID]; !busy {
			available = append(available, g)
		}
	}
	return available
}
