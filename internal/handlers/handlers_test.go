package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ceylontours/internal/checkout"
	"ceylontours/internal/middleware"
	"ceylontours/internal/repository"
	"ceylontours/internal/service"
	"ceylontours/internal/session"
	"ceylontours/internal/validation"
)

const testSecret = "test-secret"

func setupRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	require.NoError(t, validation.Register())

	services := service.NewServices(repository.NewRepositories(nil), checkout.NewManager(), nil, nil, nil)
	h := NewHandlers(services, nil, nil, session.NewTripStore())

	r := gin.New()
	api := r.Group("/api")
	{
		checkoutRoutes := api.Group("/checkout")
		checkoutRoutes.Use(middleware.OptionalAuth(testSecret))
		{
			checkoutRoutes.POST("", h.StartCheckout)
			checkoutRoutes.PUT("/:id/details", h.SubmitCheckoutDetails)
			checkoutRoutes.PUT("/:id/selection", h.SelectGuideAndHotel)
			checkoutRoutes.POST("/:id/complete", h.CompleteCheckout)
			checkoutRoutes.DELETE("/:id", h.CancelCheckout)
		}

		authed := api.Group("")
		authed.Use(middleware.RequireAuth(testSecret))
		{
			authed.GET("/trips", h.ListSavedTrips)
			authed.POST("/trips", h.SaveTrip)
			authed.DELETE("/trips/:packageId", h.RemoveTrip)
		}
	}
	return r
}

func doJSON(t *testing.T, r *gin.Engine, method, path string, body interface{}, token string) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req, err := http.NewRequest(method, path, &buf)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func signToken(t *testing.T, uid, role string) string {
	t.Helper()
	claims := middleware.Claims{
		Email: uid + "@example.com",
		Name:  "Test User",
		Role:  role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   uid,
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	require.NoError(t, err)
	return token
}

func TestStartCheckoutRejectsBadPayload(t *testing.T) {
	r := setupRouter(t)

	w := doJSON(t, r, "POST", "/api/checkout", map[string]interface{}{}, "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCheckoutUnknownSession(t *testing.T) {
	r := setupRouter(t)

	details := map[string]interface{}{
		"name":        "Amal Perera",
		"email":       "amal@example.com",
		"phone":       "+94771234567",
		"travel_date": time.Now().UTC().AddDate(0, 1, 0).Format("2006-01-02"),
		"adults":      2,
	}
	w := doJSON(t, r, "PUT", "/api/checkout/nope/details", details, "")
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = doJSON(t, r, "PUT", "/api/checkout/nope/selection", map[string]interface{}{
		"guide_id":   1,
		"hotel_name": "Queens",
	}, "")
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = doJSON(t, r, "POST", "/api/checkout/nope/complete", map[string]interface{}{
		"payment_method": "card",
	}, "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestSubmitDetailsRejectsPastDate(t *testing.T) {
	r := setupRouter(t)

	details := map[string]interface{}{
		"name":        "Amal Perera",
		"email":       "amal@example.com",
		"phone":       "+94771234567",
		"travel_date": "2020-01-01",
		"adults":      2,
	}
	w := doJSON(t, r, "PUT", "/api/checkout/nope/details", details, "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCancelCheckoutIsIdempotent(t *testing.T) {
	r := setupRouter(t)

	w := doJSON(t, r, "DELETE", "/api/checkout/nope", nil, "")
	assert.Equal(t, http.StatusNoContent, w.Code)
}

func TestSavedTripsRequireAuth(t *testing.T) {
	r := setupRouter(t)

	w := doJSON(t, r, "GET", "/api/trips", nil, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestSavedTripsRoundTrip(t *testing.T) {
	r := setupRouter(t)
	token := signToken(t, "uid-1", "customer")

	w := doJSON(t, r, "POST", "/api/trips", map[string]interface{}{"package_id": 7}, token)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		SavedTripIDs []int64 `json:"saved_trip_ids"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, []int64{7}, resp.SavedTripIDs)

	// Another user's list stays empty.
	w = doJSON(t, r, "GET", "/api/trips", nil, signToken(t, "uid-2", "customer"))
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Empty(t, resp.SavedTripIDs)

	w = doJSON(t, r, "DELETE", "/api/trips/7", nil, token)
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Empty(t, resp.SavedTripIDs)
}

func TestSavedTripsRejectExpiredToken(t *testing.T) {
	r := setupRouter(t)

	claims := middleware.Claims{
		Role: "customer",
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "uid-1",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Hour)),
		},
	}
	expired, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	require.NoError(t, err)

	w := doJSON(t, r, "GET", "/api/trips", nil, expired)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
