package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "ceylontours/internal/errors"
	"ceylontours/internal/models"
)

type fakeOfferStore struct {
	byCode  map[string]*models.Offer
	byID    map[int64]*models.Offer
	created []*models.Offer
	err     error
}

func (f *fakeOfferStore) Create(_ context.Context, offer *models.Offer) error {
	offer.ID = int64(len(f.created) + 1)
	f.created = append(f.created, offer)
	return f.err
}

func (f *fakeOfferStore) GetByID(_ context.Context, id int64) (*models.Offer, error) {
	return f.byID[id], f.err
}

func (f *fakeOfferStore) GetByCode(_ context.Context, code string) (*models.Offer, error) {
	return f.byCode[code], f.err
}

func (f *fakeOfferStore) ListAll(_ context.Context) ([]models.Offer, error) { return nil, f.err }

func (f *fakeOfferStore) Update(_ context.Context, _ *models.Offer) error { return f.err }

func (f *fakeOfferStore) Delete(_ context.Context, _ int64) error { return f.err }

func dateP(y int, m time.Month, d int) *time.Time {
	t := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	return &t
}

func TestVerify(t *testing.T) {
	store := &fakeOfferStore{byCode: map[string]*models.Offer{
		"SUMMER20": {
			ID:            1,
			Code:          "SUMMER20",
			DiscountType:  "percentage",
			DiscountValue: 20,
			Status:        models.OfferStatusActive,
			ValidUntil:    dateP(2026, 10, 31),
		},
		"PAUSED": {ID: 2, Code: "PAUSED", Status: models.OfferStatusInactive},
		"OPENENDED": {
			ID:     3,
			Code:   "OPENENDED",
			Status: models.OfferStatusActive,
		},
	}}

	svc := NewOfferService(store)
	svc.now = func() time.Time {
		return time.Date(2026, 10, 15, 12, 0, 0, 0, time.UTC)
	}

	t.Run("valid offer is returned", func(t *testing.T) {
		offer, err := svc.Verify(context.Background(), "SUMMER20")
		require.NoError(t, err)
		assert.Equal(t, int64(1), offer.ID)
	})

	t.Run("unknown code", func(t *testing.T) {
		_, err := svc.Verify(context.Background(), "NOPE")
		assert.ErrorIs(t, err, apperrors.ErrOfferNotFound)
	})

	t.Run("empty code", func(t *testing.T) {
		_, err := svc.Verify(context.Background(), "   ")
		assert.ErrorIs(t, err, apperrors.ErrOfferNotFound)
	})

	t.Run("inactive offer", func(t *testing.T) {
		_, err := svc.Verify(context.Background(), "PAUSED")
		assert.ErrorIs(t, err, apperrors.ErrOfferInactive)
	})

	t.Run("no expiry means always redeemable while active", func(t *testing.T) {
		svc.now = func() time.Time { return time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC) }
		_, err := svc.Verify(context.Background(), "OPENENDED")
		assert.NoError(t, err)
	})

	t.Run("valid through the whole expiry day", func(t *testing.T) {
		svc.now = func() time.Time {
			return time.Date(2026, 10, 31, 23, 59, 59, 0, time.UTC)
		}
		_, err := svc.Verify(context.Background(), "SUMMER20")
		assert.NoError(t, err)
	})

	t.Run("expired the next midnight", func(t *testing.T) {
		svc.now = func() time.Time {
			return time.Date(2026, 11, 1, 0, 0, 0, 0, time.UTC)
		}
		_, err := svc.Verify(context.Background(), "SUMMER20")
		assert.ErrorIs(t, err, apperrors.ErrOfferExpired)
	})

	t.Run("lookup failure propagates", func(t *testing.T) {
		broken := &fakeOfferStore{err: errors.New("connection reset")}
		_, err := NewOfferService(broken).Verify(context.Background(), "SUMMER20")
		assert.Error(t, err)
		assert.NotErrorIs(t, err, apperrors.ErrOfferNotFound)
	})
}

func TestCreateParsesLegacyDiscount(t *testing.T) {
	cases := []struct {
		name      string
		discount  string
		wantType  string
		wantValue float64
	}{
		{"percentage form", "20% OFF", "percentage", 20},
		{"currency form", "LKR 5000 OFF", "amount", 5000},
		{"unparseable becomes zero discount", "FREE HUGS", "amount", 0},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			store := &fakeOfferStore{}
			svc := NewOfferService(store)

			offer, err := svc.Create(context.Background(), &models.CreateOfferRequest{
				Title:    "Season Promo",
				Discount: tc.discount,
				Code:     "X1",
			})
			require.NoError(t, err)
			assert.Equal(t, tc.wantType, offer.DiscountType)
			assert.Equal(t, tc.wantValue, offer.DiscountValue)
			assert.Equal(t, models.OfferStatusActive, offer.Status)
		})
	}
}

func TestCreatePrefersStructuredDiscount(t *testing.T) {
	store := &fakeOfferStore{}
	svc := NewOfferService(store)

	offer, err := svc.Create(context.Background(), &models.CreateOfferRequest{
		Title:         "Flat Promo",
		Discount:      "20% OFF", // ignored when the structured pair is set
		DiscountType:  "amount",
		DiscountValue: 2500,
	})
	require.NoError(t, err)
	assert.Equal(t, "amount", offer.DiscountType)
	assert.Equal(t, float64(2500), offer.DiscountValue)
}
