package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"ceylontours/internal/cache"
	"ceylontours/internal/checkout"
	apperrors "ceylontours/internal/errors"
	"ceylontours/internal/logger"
	"ceylontours/internal/messaging"
	"ceylontours/internal/middleware"
	"ceylontours/internal/models"
	"ceylontours/internal/service"
	"ceylontours/internal/session"
)

type Handlers struct {
	services     *service.Services
	valkeyClient *cache.ValkeyClient
	natsClient   *messaging.NATSClient
	trips        *session.TripStore
}

func NewHandlers(services *service.Services, valkeyClient *cache.ValkeyClient, natsClient *messaging.NATSClient, trips *session.TripStore) *Handlers {
	return &Handlers{
		services:     services,
		valkeyClient: valkeyClient,
		natsClient:   natsClient,
		trips:        trips,
	}
}

// respondError maps domain errors to HTTP statuses. Anything unmapped
// is logged and hidden behind a generic 500.
func (h *Handlers) respondError(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, apperrors.ErrPackageNotFound),
		errors.Is(err, apperrors.ErrBookingNotFound),
		errors.Is(err, apperrors.ErrGuideNotFound),
		errors.Is(err, checkout.ErrSessionNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrUnauthorized):
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrForbidden):
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrGuideUnavailable),
		errors.Is(err, apperrors.ErrUnknownHotel),
		errors.Is(err, apperrors.ErrInvalidTransition),
		errors.Is(err, apperrors.ErrAlreadyPaidOut),
		errors.Is(err, checkout.ErrSessionClosed):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, checkout.ErrDetailsIncomplete),
		errors.Is(err, checkout.ErrAdultsRequired),
		errors.Is(err, checkout.ErrSelectionIncomplete),
		errors.Is(err, checkout.ErrPaymentMethodRequired):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		logger.WithContext(c.Request.Context()).Error(fallback, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": fallback})
	}
}

// identity returns the authenticated caller. Routes behind RequireAuth
// always have one.
func (h *Handlers) identity(c *gin.Context) (middleware.Identity, bool) {
	return middleware.IdentityFromContext(c.Request.Context())
}

// currentGuide resolves the caller's guide profile for portal routes.
func (h *Handlers) currentGuide(c *gin.Context) (*models.Guide, bool) {
	identity, ok := h.identity(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return nil, false
	}
	guide, err := h.services.Guides.GetByUID(c.Request.Context(), identity.UID)
	if err != nil {
		h.respondError(c, err, "Failed to load guide profile")
		return nil, false
	}
	if guide == nil {
		c.JSON(http.StatusForbidden, gin.H{"error": "No guide profile for this account"})
		return nil, false
	}
	return guide, true
}
