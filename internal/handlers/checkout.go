package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"ceylontours/internal/metrics"
	"ceylontours/internal/middleware"
	"ceylontours/internal/models"
)

// Checkout handlers. The flow is session-based: the client opens a
// session for a package and walks it through details, selection and
// payment. Nothing touches the bookings table until the final step.

// StartCheckout - POST /api/checkout
func (h *Handlers) StartCheckout(c *gin.Context) {
	var req models.StartCheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var userID *string
	if identity, ok := middleware.IdentityFromContext(c.Request.Context()); ok {
		userID = &identity.UID
	}

	response, err := h.services.Bookings.StartCheckout(c.Request.Context(), &req, userID)
	if err != nil {
		h.respondError(c, err, "Failed to start checkout")
		return
	}

	metrics.CheckoutSessions.Inc()
	c.JSON(http.StatusCreated, response)
}

// SubmitCheckoutDetails - PUT /api/checkout/:id/details
// Records traveller details and returns the guides free on the chosen
// date. An empty guide list is a normal response, not an error: the
// client prompts for a different date.
func (h *Handlers) SubmitCheckoutDetails(c *gin.Context) {
	var req models.CheckoutDetailsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	response, err := h.services.Bookings.SubmitDetails(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		h.respondError(c, err, "Failed to submit details")
		return
	}

	c.JSON(http.StatusOK, response)
}

// SelectGuideAndHotel - PUT /api/checkout/:id/selection
func (h *Handlers) SelectGuideAndHotel(c *gin.Context) {
	var req models.CheckoutSelectionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.services.Bookings.SelectGuideAndHotel(c.Request.Context(), c.Param("id"), &req); err != nil {
		h.respondError(c, err, "Failed to select guide and hotel")
		return
	}

	c.JSON(http.StatusOK, gin.H{"step": 3})
}

// ApplyCheckoutOffer - PUT /api/checkout/:id/offer
func (h *Handlers) ApplyCheckoutOffer(c *gin.Context) {
	var req models.ApplyOfferRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	offer, err := h.services.Bookings.ApplyOffer(c.Request.Context(), c.Param("id"), req.Code)
	if err != nil {
		if verification := verifyOutcome(err); verification != nil {
			c.JSON(http.StatusOK, verification)
			return
		}
		h.respondError(c, err, "Failed to apply offer")
		return
	}

	c.JSON(http.StatusOK, models.VerifyOfferResponse{Valid: true, Offer: offer})
}

// RemoveCheckoutOffer - DELETE /api/checkout/:id/offer
func (h *Handlers) RemoveCheckoutOffer(c *gin.Context) {
	if err := h.services.Bookings.RemoveOffer(c.Param("id")); err != nil {
		h.respondError(c, err, "Failed to remove offer")
		return
	}
	c.Status(http.StatusNoContent)
}

// CompleteCheckout - POST /api/checkout/:id/complete
func (h *Handlers) CompleteCheckout(c *gin.Context) {
	var req models.CompleteCheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	booking, err := h.services.Bookings.Complete(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		h.respondError(c, err, "Failed to complete booking")
		return
	}

	metrics.BookingsCreated.Inc()
	metrics.CheckoutSessions.Dec()
	c.JSON(http.StatusCreated, booking)
}

// GetCheckout - GET /api/checkout/:id
// Returns the session state so a client can restore the flow.
func (h *Handlers) GetCheckout(c *gin.Context) {
	state, err := h.services.Bookings.CheckoutState(c.Param("id"))
	if err != nil {
		h.respondError(c, err, "Failed to load checkout session")
		return
	}
	c.JSON(http.StatusOK, state)
}

// CancelCheckout - DELETE /api/checkout/:id
// Discards the session and all in-progress form state.
func (h *Handlers) CancelCheckout(c *gin.Context) {
	if h.services.Bookings.CancelCheckout(c.Param("id")) {
		metrics.CheckoutSessions.Dec()
	}
	c.Status(http.StatusNoContent)
}
