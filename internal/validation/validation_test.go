package validation

import (
	"testing"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ceylontours/internal/models"
)

type bookingForm struct {
	TravelDate models.DateOnly `validate:"future_date"`
}

type hotelForm struct {
	Type string `validate:"hotel_type"`
}

func newValidator(t *testing.T) *validator.Validate {
	t.Helper()
	v := validator.New()
	require.NoError(t, v.RegisterValidation("future_date", validateFutureDate))
	require.NoError(t, v.RegisterValidation("hotel_type", validateHotelType))
	return v
}

func TestFutureDate(t *testing.T) {
	v := newValidator(t)
	now := time.Now().UTC()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)

	assert.NoError(t, v.Struct(bookingForm{TravelDate: models.DateOnly(today)}))
	assert.NoError(t, v.Struct(bookingForm{TravelDate: models.DateOnly(today.AddDate(0, 1, 0))}))
	assert.Error(t, v.Struct(bookingForm{TravelDate: models.DateOnly(today.AddDate(0, 0, -1))}))
}

func TestHotelType(t *testing.T) {
	v := newValidator(t)

	for _, valid := range []string{"3-star", "4-star", "5-star", "boutique", "eco-lodge"} {
		assert.NoError(t, v.Struct(hotelForm{Type: valid}), valid)
	}
	assert.Error(t, v.Struct(hotelForm{Type: "7-star"}))
	assert.Error(t, v.Struct(hotelForm{Type: ""}))
}
