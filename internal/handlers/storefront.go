package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"ceylontours/internal/models"
)

// Storefront handlers: contact form, reviews, saved trips and account
// sync.

// SubmitContact - POST /api/contacts
func (h *Handlers) SubmitContact(c *gin.Context) {
	var req models.ContactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	contact, err := h.services.Content.SubmitContact(c.Request.Context(), &req)
	if err != nil {
		h.respondError(c, err, "Failed to submit contact")
		return
	}

	c.JSON(http.StatusCreated, contact)
}

// SubmitReview - POST /api/reviews
func (h *Handlers) SubmitReview(c *gin.Context) {
	identity, ok := h.identity(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var req models.CreateReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	review, err := h.services.Content.SubmitReview(c.Request.Context(), identity.UID, identity.Name, &req)
	if err != nil {
		h.respondError(c, err, "Failed to submit review")
		return
	}

	c.JSON(http.StatusCreated, review)
}

// SyncAccount - POST /api/auth/sync
// Mirrors the verified token identity into the users table. The
// frontend calls this once after sign-in; repeating it is harmless.
func (h *Handlers) SyncAccount(c *gin.Context) {
	identity, ok := h.identity(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	user, err := h.services.Users.Sync(c.Request.Context(), identity.UID, identity.Email, identity.Name)
	if err != nil {
		h.respondError(c, err, "Failed to sync account")
		return
	}

	c.JSON(http.StatusOK, user)
}

// ListSavedTrips - GET /api/trips
func (h *Handlers) ListSavedTrips(c *gin.Context) {
	identity, ok := h.identity(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"saved_trip_ids": h.trips.List(identity.UID)})
}

// SaveTrip - POST /api/trips
func (h *Handlers) SaveTrip(c *gin.Context) {
	identity, ok := h.identity(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var req models.SaveTripRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	h.trips.Save(identity.UID, req.PackageID)
	c.JSON(http.StatusOK, gin.H{"saved_trip_ids": h.trips.List(identity.UID)})
}

// RemoveTrip - DELETE /api/trips/:packageId
func (h *Handlers) RemoveTrip(c *gin.Context) {
	identity, ok := h.identity(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	packageID, err := strconv.ParseInt(c.Param("packageId"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid package id"})
		return
	}

	h.trips.Remove(identity.UID, packageID)
	c.JSON(http.StatusOK, gin.H{"saved_trip_ids": h.trips.List(identity.UID)})
}
