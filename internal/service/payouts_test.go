package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "ceylontours/internal/errors"
	"ceylontours/internal/models"
)

type fakeBookingStore struct {
	byID      map[int64]*models.Booking
	completed []models.Booking
}

func (f *fakeBookingStore) GetByID(_ context.Context, id int64) (*models.Booking, error) {
	return f.byID[id], nil
}

func (f *fakeBookingStore) ListCompletedByGuideID(_ context.Context, guideID int64) ([]models.Booking, error) {
	var out []models.Booking
	for _, b := range f.completed {
		if b.Guide != nil && b.Guide.ID == guideID {
			out = append(out, b)
		}
	}
	return out, nil
}

func (f *fakeBookingStore) ListCompleted(_ context.Context) ([]models.Booking, error) {
	return f.completed, nil
}

type fakePayoutStore struct {
	payouts []models.Payout
}

func (f *fakePayoutStore) Create(_ context.Context, payout *models.Payout) error {
	payout.ID = int64(len(f.payouts) + 1)
	f.payouts = append(f.payouts, *payout)
	return nil
}

func (f *fakePayoutStore) GetByBookingDocID(_ context.Context, bookingDocID int64) (*models.Payout, error) {
	for i := range f.payouts {
		if f.payouts[i].BookingDocID == bookingDocID {
			return &f.payouts[i], nil
		}
	}
	return nil, nil
}

func (f *fakePayoutStore) ListByGuideID(_ context.Context, guideID int64) ([]models.Payout, error) {
	var out []models.Payout
	for _, p := range f.payouts {
		if p.GuideID == guideID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (f *fakePayoutStore) ListAll(_ context.Context) ([]models.Payout, error) {
	return f.payouts, nil
}

type fakePublisher struct {
	subjects []string
}

func (f *fakePublisher) Publish(subject string, _ interface{}) error {
	f.subjects = append(f.subjects, subject)
	return nil
}

func completedBooking(id, guideID int64, code string) models.Booking {
	return models.Booking{
		ID:      id,
		Code:    code,
		Status:  models.BookingStatusCompleted,
		Guide:   &models.GuideRef{ID: guideID, Name: "Nimal"},
		Package: models.PackageRef{ID: 7, Title: "Kandy Highlands"},
	}
}

func TestPendingPayouts(t *testing.T) {
	b1 := completedBooking(1, 3, "CT-A")
	b2 := completedBooking(2, 3, "CT-B")
	b3 := completedBooking(3, 5, "CT-C")

	bookings := &fakeBookingStore{completed: []models.Booking{b1, b2, b3}}
	payouts := &fakePayoutStore{payouts: []models.Payout{
		{ID: 1, BookingDocID: 1, GuideID: 3, Amount: 5000},
	}}
	svc := NewPayoutService(bookings, payouts, &fakePublisher{})

	pending, err := svc.PendingPayouts(context.Background(), 3)
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, "CT-B", pending[0].Code)
}

func TestRecord(t *testing.T) {
	booking := completedBooking(1, 3, "CT-A")
	pendingBooking := completedBooking(2, 3, "CT-B")
	pendingBooking.Status = models.BookingStatusPending

	bookings := &fakeBookingStore{byID: map[int64]*models.Booking{
		1: &booking,
		2: &pendingBooking,
	}}
	payouts := &fakePayoutStore{}
	publisher := &fakePublisher{}
	svc := NewPayoutService(bookings, payouts, publisher)
	svc.now = func() time.Time { return time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC) }

	t.Run("records and publishes", func(t *testing.T) {
		payout, err := svc.Record(context.Background(), &models.RecordPayoutRequest{
			BookingDocID: 1,
			Amount:       12500,
			Notes:        "September batch",
		})
		require.NoError(t, err)
		assert.Equal(t, "CT-A", payout.BookingCode)
		assert.Equal(t, int64(3), payout.GuideID)
		assert.Equal(t, "Kandy Highlands", payout.PackageTitle)
		assert.Equal(t, "paid", payout.Status)
		assert.Contains(t, publisher.subjects, models.EventPayoutRecorded)
	})

	t.Run("second payout for the same booking is rejected", func(t *testing.T) {
		_, err := svc.Record(context.Background(), &models.RecordPayoutRequest{
			BookingDocID: 1,
			Amount:       12500,
		})
		assert.ErrorIs(t, err, apperrors.ErrAlreadyPaidOut)
	})

	t.Run("unknown booking", func(t *testing.T) {
		_, err := svc.Record(context.Background(), &models.RecordPayoutRequest{
			BookingDocID: 99,
			Amount:       100,
		})
		assert.ErrorIs(t, err, apperrors.ErrBookingNotFound)
	})

	t.Run("only completed bookings can be paid out", func(t *testing.T) {
		_, err := svc.Record(context.Background(), &models.RecordPayoutRequest{
			BookingDocID: 2,
			Amount:       100,
		})
		assert.ErrorContains(t, err, "only completed bookings")
	})
}

func TestGuideSummary(t *testing.T) {
	b1 := completedBooking(1, 3, "CT-A")
	b2 := completedBooking(2, 3, "CT-B")

	bookings := &fakeBookingStore{completed: []models.Booking{b1, b2}}
	payouts := &fakePayoutStore{payouts: []models.Payout{
		{ID: 1, BookingDocID: 1, GuideID: 3, Amount: 5000,
			PayoutDate: time.Date(2026, 9, 2, 0, 0, 0, 0, time.UTC)},
		{ID: 2, BookingDocID: 10, GuideID: 3, Amount: 7000,
			PayoutDate: time.Date(2026, 6, 15, 0, 0, 0, 0, time.UTC)},
		{ID: 3, BookingDocID: 11, GuideID: 5, Amount: 900,
			PayoutDate: time.Date(2026, 9, 3, 0, 0, 0, 0, time.UTC)},
	}}
	svc := NewPayoutService(bookings, payouts, &fakePublisher{})
	svc.now = func() time.Time { return time.Date(2026, 9, 20, 0, 0, 0, 0, time.UTC) }

	summary, err := svc.GuideSummary(context.Background(), 3)
	require.NoError(t, err)
	assert.Equal(t, float64(12000), summary.TotalPaid)
	assert.Equal(t, float64(5000), summary.MonthPaid)
	require.Len(t, summary.PendingJobs, 1)
	assert.Equal(t, "CT-B", summary.PendingJobs[0].Code)
}

func TestDashboard(t *testing.T) {
	bookings := &fakeBookingStore{completed: []models.Booking{
		completedBooking(1, 3, "CT-A"),
		completedBooking(2, 5, "CT-B"),
		completedBooking(3, 5, "CT-C"),
	}}
	payouts := &fakePayoutStore{payouts: []models.Payout{
		{ID: 1, BookingDocID: 1, GuideID: 3, Amount: 5000},
		{ID: 2, BookingDocID: 2, GuideID: 5, Amount: 8000},
	}}
	svc := NewPayoutService(bookings, payouts, &fakePublisher{})

	dashboard, err := svc.Dashboard(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, dashboard.PendingCount)
	assert.Equal(t, float64(13000), dashboard.ProcessedTotal)
	assert.Equal(t, 2, dashboard.TransactionCount)
}
