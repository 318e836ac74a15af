package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"ceylontours/internal/models"
)

type fakeBookingsByDate struct {
	bookings []models.Booking
	err      error
}

func (f *fakeBookingsByDate) ListByTravelDate(_ context.Context, _ time.Time) ([]models.Booking, error) {
	return f.bookings, f.err
}

type fakeBlockedByDate struct {
	blocks []models.BlockedDate
	err    error
}

func (f *fakeBlockedByDate) ListByDate(_ context.Context, _ time.Time) ([]models.BlockedDate, error) {
	return f.blocks, f.err
}

func guides(ids ...int64) []models.Guide {
	out := make([]models.Guide, len(ids))
	for i, id := range ids {
		out[i] = models.Guide{ID: id}
	}
	return out
}

func guideIDs(gs []models.Guide) []int64 {
	out := make([]int64, len(gs))
	for i, g := range gs {
		out[i] = g.ID
	}
	return out
}

func TestAvailableGuides(t *testing.T) {
	date := time.Date(2026, 10, 12, 0, 0, 0, 0, time.UTC)

	t.Run("booked and blocked guides are excluded", func(t *testing.T) {
		svc := NewAvailabilityService(
			&fakeBookingsByDate{bookings: []models.Booking{
				{Guide: &models.GuideRef{ID: 1}},
				{Guide: nil}, // booking without an assigned guide takes nobody
			}},
			&fakeBlockedByDate{blocks: []models.BlockedDate{{GuideID: 3}}},
		)

		got := svc.AvailableGuides(context.Background(), guides(1, 2, 3, 4), date)
		assert.Equal(t, []int64{2, 4}, guideIDs(got))
	})

	t.Run("empty result is a valid outcome", func(t *testing.T) {
		svc := NewAvailabilityService(
			&fakeBookingsByDate{bookings: []models.Booking{{Guide: &models.GuideRef{ID: 1}}}},
			&fakeBlockedByDate{blocks: []models.BlockedDate{{GuideID: 2}}},
		)

		got := svc.AvailableGuides(context.Background(), guides(1, 2), date)
		assert.Empty(t, got)
	})

	t.Run("booking lookup failure falls back to all candidates", func(t *testing.T) {
		svc := NewAvailabilityService(
			&fakeBookingsByDate{err: errors.New("connection reset")},
			&fakeBlockedByDate{},
		)

		got := svc.AvailableGuides(context.Background(), guides(1, 2, 3), date)
		assert.Equal(t, []int64{1, 2, 3}, guideIDs(got))
	})

	t.Run("blocked-date lookup failure falls back to all candidates", func(t *testing.T) {
		svc := NewAvailabilityService(
			&fakeBookingsByDate{bookings: []models.Booking{{Guide: &models.GuideRef{ID: 1}}}},
			&fakeBlockedByDate{err: errors.New("connection reset")},
		)

		got := svc.AvailableGuides(context.Background(), guides(1, 2), date)
		assert.Equal(t, []int64{1, 2}, guideIDs(got))
	})
}
