package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	apperrors "ceylontours/internal/errors"
	"ceylontours/internal/models"
)

// Offers handlers

// verifyOutcome converts an offer verification error into the response
// body the storefront renders, or nil when the error is not a
// verification outcome.
func verifyOutcome(err error) *models.VerifyOfferResponse {
	switch {
	case errors.Is(err, apperrors.ErrOfferNotFound),
		errors.Is(err, apperrors.ErrOfferInactive),
		errors.Is(err, apperrors.ErrOfferExpired):
		return &models.VerifyOfferResponse{Valid: false, Reason: err.Error()}
	default:
		return nil
	}
}

// VerifyOffer - GET /api/offers/verify
// Checks a promo code. Always 200 with a valid/invalid body; invalid
// codes are an expected outcome, not an HTTP error.
func (h *Handlers) VerifyOffer(c *gin.Context) {
	code := c.Query("code")

	offer, err := h.services.Offers.Verify(c.Request.Context(), code)
	if err != nil {
		if verification := verifyOutcome(err); verification != nil {
			c.JSON(http.StatusOK, verification)
			return
		}
		h.respondError(c, err, "Failed to verify offer")
		return
	}

	c.JSON(http.StatusOK, models.VerifyOfferResponse{Valid: true, Offer: offer})
}

// ListOffers - GET /api/offers
func (h *Handlers) ListOffers(c *gin.Context) {
	offers, err := h.services.Offers.List(c.Request.Context())
	if err != nil {
		h.respondError(c, err, "Failed to list offers")
		return
	}
	c.JSON(http.StatusOK, offers)
}

// CreateOffer - POST /api/admin/offers
func (h *Handlers) CreateOffer(c *gin.Context) {
	var req models.CreateOfferRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	offer, err := h.services.Offers.Create(c.Request.Context(), &req)
	if err != nil {
		h.respondError(c, err, "Failed to create offer")
		return
	}

	c.JSON(http.StatusCreated, offer)
}

// UpdateOffer - PUT /api/admin/offers/:id
func (h *Handlers) UpdateOffer(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid offer id"})
		return
	}

	var req models.CreateOfferRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	offer, err := h.services.Offers.Update(c.Request.Context(), id, &req)
	if err != nil {
		if errors.Is(err, apperrors.ErrOfferNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		h.respondError(c, err, "Failed to update offer")
		return
	}

	c.JSON(http.StatusOK, offer)
}

// DeleteOffer - DELETE /api/admin/offers/:id
func (h *Handlers) DeleteOffer(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid offer id"})
		return
	}

	if err := h.services.Offers.Delete(c.Request.Context(), id); err != nil {
		h.respondError(c, err, "Failed to delete offer")
		return
	}

	c.Status(http.StatusNoContent)
}
