package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	apperrors "ceylontours/internal/errors"
	"ceylontours/internal/models"
	"ceylontours/internal/pricing"
)

type offerStore interface {
	Create(ctx context.Context, offer *models.Offer) error
	GetByID(ctx context.Context, id int64) (*models.Offer, error)
	GetByCode(ctx context.Context, code string) (*models.Offer, error)
	ListAll(ctx context.Context) ([]models.Offer, error)
	Update(ctx context.Context, offer *models.Offer) error
	Delete(ctx context.Context, id int64) error
}

// OfferService owns promotional offers and their verification.
type OfferService struct {
	offers offerStore

	// injected in tests to pin the clock
	now func() time.Time
}

func NewOfferService(offers offerStore) *OfferService {
	return &OfferService{
		offers: offers,
		now:    time.Now,
	}
}

// Verify checks a promo code and returns the offer when redeemable.
// Verification runs against live data on every call: the result is
// never cached, since an admin can deactivate an offer between browse
// and checkout. An offer with a validUntil date stays redeemable
// through that entire calendar day.
func (s *OfferService) Verify(ctx context.Context, code string) (*models.Offer, error) {
	code = strings.TrimSpace(code)
	if code == "" {
		return nil, apperrors.ErrOfferNotFound
	}

	offer, err := s.offers.GetByCode(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("failed to look up offer: %w", err)
	}
	if offer == nil {
		return nil, apperrors.ErrOfferNotFound
	}
	if offer.Status != models.OfferStatusActive {
		return nil, apperrors.ErrOfferInactive
	}
	if offer.ValidUntil != nil {
		y, m, d := offer.ValidUntil.UTC().Date()
		expiry := time.Date(y, m, d, 0, 0, 0, 0, time.UTC).AddDate(0, 0, 1)
		if !s.now().UTC().Before(expiry) {
			return nil, apperrors.ErrOfferExpired
		}
	}
	return offer, nil
}

// Create stores a new offer. The legacy free-text discount form ("20%
// OFF", "LKR 5000 OFF") is parsed here, once, at the boundary; an
// unparseable string becomes a zero discount rather than an error.
func (s *OfferService) Create(ctx context.Context, req *models.CreateOfferRequest) (*models.Offer, error) {
	discountType, discountValue := resolveDiscount(req)

	status := models.OfferStatusActive
	if req.Status != "" {
		status = models.OfferStatus(req.Status)
	}

	offer := &models.Offer{
		Title:         req.Title,
		Description:   req.Description,
		DiscountType:  discountType,
		DiscountValue: discountValue,
		Code:          strings.TrimSpace(req.Code),
		Status:        status,
	}
	if !req.ValidUntil.IsZero() {
		t := req.ValidUntil.Time()
		offer.ValidUntil = &t
	}

	if err := s.offers.Create(ctx, offer); err != nil {
		return nil, fmt.Errorf("failed to create offer: %w", err)
	}
	return offer, nil
}

func (s *OfferService) List(ctx context.Context) ([]models.Offer, error) {
	offers, err := s.offers.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list offers: %w", err)
	}
	return offers, nil
}

func (s *OfferService) Update(ctx context.Context, id int64, req *models.CreateOfferRequest) (*models.Offer, error) {
	offer, err := s.offers.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get offer: %w", err)
	}
	if offer == nil {
		return nil, apperrors.ErrOfferNotFound
	}

	offer.Title = req.Title
	offer.Description = req.Description
	offer.DiscountType, offer.DiscountValue = resolveDiscount(req)
	offer.Code = strings.TrimSpace(req.Code)
	if req.Status != "" {
		offer.Status = models.OfferStatus(req.Status)
	}
	offer.ValidUntil = nil
	if !req.ValidUntil.IsZero() {
		t := req.ValidUntil.Time()
		offer.ValidUntil = &t
	}

	if err := s.offers.Update(ctx, offer); err != nil {
		return nil, fmt.Errorf("failed to update offer: %w", err)
	}
	return offer, nil
}

func (s *OfferService) Delete(ctx context.Context, id int64) error {
	if err := s.offers.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete offer: %w", err)
	}
	return nil
}

func resolveDiscount(req *models.CreateOfferRequest) (string, float64) {
	if req.DiscountType != "" {
		return req.DiscountType, req.DiscountValue
	}
	d, ok := pricing.ParseDiscount(req.Discount)
	if !ok {
		return string(pricing.Amount), 0
	}
	return string(d.Type), d.Value
}

// discountOf converts the stored offer discount for the pricing engine.
func discountOf(offer *models.Offer) *pricing.Discount {
	if offer == nil {
		return nil
	}
	return &pricing.Discount{
		Type:  pricing.DiscountType(offer.DiscountType),
		Value: offer.DiscountValue,
	}
}
