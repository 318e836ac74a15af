package handlers

import (
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/nats-io/stan.go"

	"ceylontours/internal/logger"
	"ceylontours/internal/models"
)

// Notifications handlers

// ListNotifications - GET /api/guide/notifications
func (h *Handlers) ListNotifications(c *gin.Context) {
	guide, ok := h.currentGuide(c)
	if !ok {
		return
	}

	notifications, err := h.services.Notifications.ListForGuide(c.Request.Context(), guide.ID)
	if err != nil {
		h.respondError(c, err, "Failed to list notifications")
		return
	}

	c.JSON(http.StatusOK, notifications)
}

// MarkNotificationRead - PATCH /api/guide/notifications/:id/read
func (h *Handlers) MarkNotificationRead(c *gin.Context) {
	guide, ok := h.currentGuide(c)
	if !ok {
		return
	}

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid notification id"})
		return
	}

	if err := h.services.Notifications.MarkRead(c.Request.Context(), id, guide.ID); err != nil {
		h.respondError(c, err, "Failed to mark notification read")
		return
	}

	c.Status(http.StatusNoContent)
}

// StreamNotifications - GET /api/guide/notifications/stream
// Server-sent events feed of the guide's live notifications, bridged
// from the per-guide NATS subject. The subscription lives for the life
// of the request.
func (h *Handlers) StreamNotifications(c *gin.Context) {
	guide, ok := h.currentGuide(c)
	if !ok {
		return
	}
	if h.natsClient == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Live notifications unavailable"})
		return
	}

	messages := make(chan []byte, 16)
	subscription, err := h.natsClient.Subscribe(models.GuideNotificationSubject(guide.ID), func(m *stan.Msg) {
		select {
		case messages <- m.Data:
		default:
			// Slow consumer. Drop rather than block the NATS callback;
			// the notification is still in the database list.
		}
	})
	if err != nil {
		h.respondError(c, err, "Failed to subscribe to notifications")
		return
	}
	defer func() {
		if err := subscription.Unsubscribe(); err != nil {
			logger.WithContext(c.Request.Context()).Error("Failed to unsubscribe notification stream",
				"error", err,
				"guide_id", guide.ID)
		}
	}()

	c.Header("Content-Type", "text/event-stream")
	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")

	c.Stream(func(w io.Writer) bool {
		select {
		case data := <-messages:
			c.SSEvent("notification", string(data))
			return true
		case <-c.Request.Context().Done():
			return false
		}
	})
}
