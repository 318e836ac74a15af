package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"ceylontours/internal/models"
)

// Guides handlers

// ListGuides - GET /api/guides
// Public roster of approved guides.
func (h *Handlers) ListGuides(c *gin.Context) {
	guides, err := h.services.Guides.ListApproved(c.Request.Context())
	if err != nil {
		h.respondError(c, err, "Failed to list guides")
		return
	}
	c.JSON(http.StatusOK, guides)
}

// RegisterGuide - POST /api/guide/register
// Creates a pending profile for the signed-in account.
func (h *Handlers) RegisterGuide(c *gin.Context) {
	identity, ok := h.identity(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var req models.RegisterGuideRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	guide, err := h.services.Guides.Register(c.Request.Context(), identity.UID, &req)
	if err != nil {
		h.respondError(c, err, "Failed to register guide")
		return
	}

	c.JSON(http.StatusCreated, guide)
}

// GetGuideProfile - GET /api/guide/profile
func (h *Handlers) GetGuideProfile(c *gin.Context) {
	guide, ok := h.currentGuide(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, guide)
}

// BlockDate - POST /api/guide/blocked-dates
func (h *Handlers) BlockDate(c *gin.Context) {
	guide, ok := h.currentGuide(c)
	if !ok {
		return
	}

	var req models.BlockDateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	block, err := h.services.Guides.BlockDate(c.Request.Context(), guide.ID, &req)
	if err != nil {
		h.respondError(c, err, "Failed to block date")
		return
	}

	c.JSON(http.StatusCreated, block)
}

// ListBlockedDates - GET /api/guide/blocked-dates
func (h *Handlers) ListBlockedDates(c *gin.Context) {
	guide, ok := h.currentGuide(c)
	if !ok {
		return
	}

	blocks, err := h.services.Guides.BlockedDates(c.Request.Context(), guide.ID)
	if err != nil {
		h.respondError(c, err, "Failed to list blocked dates")
		return
	}

	c.JSON(http.StatusOK, blocks)
}

// UnblockDate - DELETE /api/guide/blocked-dates/:id
func (h *Handlers) UnblockDate(c *gin.Context) {
	guide, ok := h.currentGuide(c)
	if !ok {
		return
	}

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid blocked date id"})
		return
	}

	if err := h.services.Guides.UnblockDate(c.Request.Context(), id, guide.ID); err != nil {
		h.respondError(c, err, "Failed to unblock date")
		return
	}

	c.Status(http.StatusNoContent)
}

// GetGuideEarnings - GET /api/guide/payouts
func (h *Handlers) GetGuideEarnings(c *gin.Context) {
	guide, ok := h.currentGuide(c)
	if !ok {
		return
	}

	summary, err := h.services.Payouts.GuideSummary(c.Request.Context(), guide.ID)
	if err != nil {
		h.respondError(c, err, "Failed to load earnings")
		return
	}

	c.JSON(http.StatusOK, summary)
}
