// Package validation registers domain validation rules on gin's binding
// engine.
package validation

import (
	"time"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"ceylontours/internal/models"
)

// Register installs the custom rules. Call once at startup, before the
// router binds any request.
func Register() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return nil
	}
	if err := v.RegisterValidation("future_date", validateFutureDate); err != nil {
		return err
	}
	return v.RegisterValidation("hotel_type", validateHotelType)
}

// validateFutureDate accepts today and any later calendar date.
// Same-day bookings are allowed; yesterday is not.
func validateFutureDate(fl validator.FieldLevel) bool {
	var date time.Time
	switch field := fl.Field().Interface().(type) {
	case models.DateOnly:
		date = field.Time()
	case time.Time:
		date = field
	default:
		return false
	}

	now := time.Now().UTC()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	return !date.Before(today)
}

func validateHotelType(fl validator.FieldLevel) bool {
	supportedTypes := map[string]bool{
		"3-star":    true,
		"4-star":    true,
		"5-star":    true,
		"boutique":  true,
		"eco-lodge": true,
	}
	return supportedTypes[fl.Field().String()]
}
