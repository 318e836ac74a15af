package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

// Bookings handlers operate on persisted bookings. Creation happens
// only through checkout completion.

// ListMyBookings - GET /api/bookings
func (h *Handlers) ListMyBookings(c *gin.Context) {
	identity, ok := h.identity(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	bookings, err := h.services.Bookings.ListForUser(c.Request.Context(), identity.UID)
	if err != nil {
		h.respondError(c, err, "Failed to list bookings")
		return
	}

	c.JSON(http.StatusOK, bookings)
}

// GetBooking - GET /api/bookings/:id
func (h *Handlers) GetBooking(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid booking id"})
		return
	}

	booking, err := h.services.Bookings.GetByID(c.Request.Context(), id)
	if err != nil {
		h.respondError(c, err, "Failed to get booking")
		return
	}

	// Owners, the assigned guide and admins may read a booking.
	identity, _ := h.identity(c)
	allowed := identity.Role == "admin"
	if !allowed && booking.UserID != nil && *booking.UserID == identity.UID {
		allowed = true
	}
	if !allowed && booking.Guide != nil {
		if guide, err := h.services.Guides.GetByUID(c.Request.Context(), identity.UID); err == nil && guide != nil && guide.ID == booking.Guide.ID {
			allowed = true
		}
	}
	if !allowed {
		c.JSON(http.StatusForbidden, gin.H{"error": "Forbidden"})
		return
	}

	c.JSON(http.StatusOK, booking)
}

// ListAllBookings - GET /api/admin/bookings
func (h *Handlers) ListAllBookings(c *gin.Context) {
	bookings, err := h.services.Bookings.ListAll(c.Request.Context())
	if err != nil {
		h.respondError(c, err, "Failed to list bookings")
		return
	}
	c.JSON(http.StatusOK, bookings)
}

// ConfirmBooking - PATCH /api/admin/bookings/:id/confirm
func (h *Handlers) ConfirmBooking(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid booking id"})
		return
	}

	booking, err := h.services.Bookings.Confirm(c.Request.Context(), id)
	if err != nil {
		h.respondError(c, err, "Failed to confirm booking")
		return
	}

	c.JSON(http.StatusOK, booking)
}

// CancelBooking - PATCH /api/admin/bookings/:id/cancel
func (h *Handlers) CancelBooking(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid booking id"})
		return
	}

	booking, err := h.services.Bookings.Cancel(c.Request.Context(), id)
	if err != nil {
		h.respondError(c, err, "Failed to cancel booking")
		return
	}

	c.JSON(http.StatusOK, booking)
}

// CompleteBooking - PATCH /api/guide/bookings/:id/complete
// The assigned guide marks a confirmed tour as run.
func (h *Handlers) CompleteBooking(c *gin.Context) {
	guide, ok := h.currentGuide(c)
	if !ok {
		return
	}

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid booking id"})
		return
	}

	booking, err := h.services.Bookings.MarkCompleted(c.Request.Context(), id, guide.ID)
	if err != nil {
		h.respondError(c, err, "Failed to complete booking")
		return
	}

	c.JSON(http.StatusOK, booking)
}

// ListGuideBookings - GET /api/guide/bookings
func (h *Handlers) ListGuideBookings(c *gin.Context) {
	guide, ok := h.currentGuide(c)
	if !ok {
		return
	}

	bookings, err := h.services.Bookings.ListForGuide(c.Request.Context(), guide.ID)
	if err != nil {
		h.respondError(c, err, "Failed to list bookings")
		return
	}

	c.JSON(http.StatusOK, bookings)
}
