package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"ceylontours/internal/metrics"
	"ceylontours/internal/models"
)

// Admin handlers

// ListAllGuides - GET /api/admin/guides
// The moderation queue: every profile regardless of status.
func (h *Handlers) ListAllGuides(c *gin.Context) {
	guides, err := h.services.Guides.ListAll(c.Request.Context())
	if err != nil {
		h.respondError(c, err, "Failed to list guides")
		return
	}
	c.JSON(http.StatusOK, guides)
}

type moderateGuideRequest struct {
	Status string `json:"status" binding:"required,oneof=pending approved rejected"`
}

// ModerateGuide - PATCH /api/admin/guides/:id/status
func (h *Handlers) ModerateGuide(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid guide id"})
		return
	}

	var req moderateGuideRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	guide, err := h.services.Guides.SetStatus(c.Request.Context(), id, models.GuideStatus(req.Status))
	if err != nil {
		h.respondError(c, err, "Failed to update guide status")
		return
	}

	c.JSON(http.StatusOK, guide)
}

// DeleteGuide - DELETE /api/admin/guides/:id
func (h *Handlers) DeleteGuide(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid guide id"})
		return
	}

	if err := h.services.Guides.Delete(c.Request.Context(), id); err != nil {
		h.respondError(c, err, "Failed to delete guide")
		return
	}

	c.Status(http.StatusNoContent)
}

// GetPayoutDashboard - GET /api/admin/payouts/dashboard
func (h *Handlers) GetPayoutDashboard(c *gin.Context) {
	dashboard, err := h.services.Payouts.Dashboard(c.Request.Context())
	if err != nil {
		h.respondError(c, err, "Failed to load payout dashboard")
		return
	}
	c.JSON(http.StatusOK, dashboard)
}

// ListPendingPayouts - GET /api/admin/payouts/pending/:guideId
func (h *Handlers) ListPendingPayouts(c *gin.Context) {
	guideID, err := strconv.ParseInt(c.Param("guideId"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid guide id"})
		return
	}

	pending, err := h.services.Payouts.PendingPayouts(c.Request.Context(), guideID)
	if err != nil {
		h.respondError(c, err, "Failed to list pending payouts")
		return
	}

	c.JSON(http.StatusOK, pending)
}

// RecordPayout - POST /api/admin/payouts
func (h *Handlers) RecordPayout(c *gin.Context) {
	var req models.RecordPayoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	payout, err := h.services.Payouts.Record(c.Request.Context(), &req)
	if err != nil {
		h.respondError(c, err, "Failed to record payout")
		return
	}

	metrics.PayoutsRecorded.Inc()
	c.JSON(http.StatusCreated, payout)
}

// ListPayouts - GET /api/admin/payouts
func (h *Handlers) ListPayouts(c *gin.Context) {
	payouts, err := h.services.Payouts.ListAll(c.Request.Context())
	if err != nil {
		h.respondError(c, err, "Failed to list payouts")
		return
	}
	c.JSON(http.StatusOK, payouts)
}

// ListContacts - GET /api/admin/contacts
func (h *Handlers) ListContacts(c *gin.Context) {
	contacts, err := h.services.Content.ListContacts(c.Request.Context())
	if err != nil {
		h.respondError(c, err, "Failed to list contacts")
		return
	}
	c.JSON(http.StatusOK, contacts)
}
