package checkout

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "ceylontours/internal/errors"
	"ceylontours/internal/models"
)

func testPackage() *models.Package {
	return &models.Package{
		ID:       7,
		Title:    "Kandy Highlands",
		Location: "Kandy",
		Price:    10000,
		Gallery:  []string{"kandy.jpg"},
		Hotels: []models.Hotel{
			{Name: "Hill Crest", Type: "3-star"},
			{Name: "Queens", Type: "5-star"},
		},
	}
}

func validDetails() Details {
	return Details{
		Name:       "Amal Perera",
		Email:      "amal@example.com",
		Phone:      "+94771234567",
		TravelDate: time.Date(2026, 10, 12, 15, 30, 0, 0, time.UTC),
		Adults:     2,
		Children:   1,
	}
}

func TestManagerOpenAndGet(t *testing.T) {
	m := NewManager()

	session := m.Open(nil, testPackage())
	require.NotEmpty(t, session.ID)
	assert.Equal(t, StepDetails, session.Step())
	assert.Equal(t, float64(10000), session.UnitPrice)
	assert.Equal(t, "kandy.jpg", session.Package.Image)

	got, err := m.Get(session.ID)
	require.NoError(t, err)
	assert.Same(t, session, got)

	_, err = m.Get("missing")
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestManagerDiscard(t *testing.T) {
	m := NewManager()
	session := m.Open(nil, testPackage())
	require.Equal(t, 1, m.Len())

	m.Discard(session.ID)
	assert.Equal(t, 0, m.Len())

	_, err := m.Get(session.ID)
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestSubmitDetails(t *testing.T) {
	m := NewManager()
	session := m.Open(nil, testPackage())

	require.NoError(t, session.SubmitDetails(validDetails()))
	assert.Equal(t, StepSelection, session.Step())

	// Time of day is dropped; availability works on calendar dates.
	assert.Equal(t, time.Date(2026, 10, 12, 0, 0, 0, 0, time.UTC), session.TravelDate())
}

func TestSubmitDetailsValidation(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Details)
		want   error
	}{
		{"missing name", func(d *Details) { d.Name = "  " }, ErrDetailsIncomplete},
		{"missing email", func(d *Details) { d.Email = "" }, ErrDetailsIncomplete},
		{"missing phone", func(d *Details) { d.Phone = "" }, ErrDetailsIncomplete},
		{"zero date", func(d *Details) { d.TravelDate = time.Time{} }, ErrDetailsIncomplete},
		{"no adults", func(d *Details) { d.Adults = 0 }, ErrAdultsRequired},
		{"negative children", func(d *Details) { d.Children = -1 }, ErrDetailsIncomplete},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			session := NewManager().Open(nil, testPackage())
			d := validDetails()
			tc.mutate(&d)
			assert.ErrorIs(t, session.SubmitDetails(d), tc.want)
			assert.Equal(t, StepDetails, session.Step())
		})
	}
}

func TestResubmitDetailsClearsSelection(t *testing.T) {
	session := NewManager().Open(nil, testPackage())
	require.NoError(t, session.SubmitDetails(validDetails()))
	session.SetAvailableGuides([]models.Guide{{ID: 3, Name: "Nimal"}})
	require.NoError(t, session.SelectGuideAndHotel(3, "Queens"))
	require.Equal(t, StepPayment, session.Step())

	// Going back to change the travel date invalidates the guide choice.
	d := validDetails()
	d.TravelDate = d.TravelDate.AddDate(0, 0, 2)
	require.NoError(t, session.SubmitDetails(d))

	snap := session.State()
	assert.Equal(t, StepSelection, snap.Step)
	assert.Nil(t, snap.Guide)
	assert.Nil(t, snap.Hotel)
}

func TestSelectGuideAndHotel(t *testing.T) {
	session := NewManager().Open(nil, testPackage())
	require.NoError(t, session.SubmitDetails(validDetails()))
	session.SetAvailableGuides([]models.Guide{
		{ID: 3, Name: "Nimal", Role: "Senior Guide"},
	})

	t.Run("guide not in available set", func(t *testing.T) {
		err := session.SelectGuideAndHotel(99, "Queens")
		assert.ErrorIs(t, err, apperrors.ErrGuideUnavailable)
		assert.Equal(t, StepSelection, session.Step())
	})

	t.Run("hotel not offered by package", func(t *testing.T) {
		err := session.SelectGuideAndHotel(3, "Grand Oriental")
		assert.ErrorIs(t, err, apperrors.ErrUnknownHotel)
	})

	t.Run("valid selection advances to payment", func(t *testing.T) {
		require.NoError(t, session.SelectGuideAndHotel(3, "Hill Crest"))
		snap := session.State()
		assert.Equal(t, StepPayment, snap.Step)
		assert.Equal(t, "Nimal", snap.Guide.Name)
		assert.Equal(t, "3-star", snap.Hotel.Type)
	})
}

func TestSelectBeforeDetails(t *testing.T) {
	session := NewManager().Open(nil, testPackage())
	err := session.SelectGuideAndHotel(3, "Queens")
	assert.ErrorIs(t, err, ErrDetailsIncomplete)
}

func TestPrepareCompletion(t *testing.T) {
	session := NewManager().Open(nil, testPackage())
	require.NoError(t, session.SubmitDetails(validDetails()))
	session.SetAvailableGuides([]models.Guide{{ID: 3, Name: "Nimal"}})

	_, err := session.PrepareCompletion("card")
	assert.ErrorIs(t, err, ErrSelectionIncomplete)

	require.NoError(t, session.SelectGuideAndHotel(3, "Queens"))
	require.NoError(t, session.ApplyOffer("SUMMER20"))

	_, err = session.PrepareCompletion("  ")
	assert.ErrorIs(t, err, ErrPaymentMethodRequired)

	snap, err := session.PrepareCompletion("card")
	require.NoError(t, err)
	assert.Equal(t, "SUMMER20", snap.OfferCode)
	assert.Equal(t, int64(3), snap.Guide.ID)

	// A failed booking write leaves the flow retryable.
	assert.Equal(t, StepPayment, session.Step())

	session.MarkCompleted()
	assert.Equal(t, StepCompleted, session.Step())

	_, err = session.PrepareCompletion("card")
	assert.ErrorIs(t, err, ErrSessionClosed)
	assert.ErrorIs(t, session.SubmitDetails(validDetails()), ErrSessionClosed)
	assert.ErrorIs(t, session.ApplyOffer("X"), ErrSessionClosed)
}
