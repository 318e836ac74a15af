package errors

import "errors"

var ErrUnauthorized = errors.New("user is not authorized")
var ErrForbidden = errors.New("operation is forbidden for user")

var ErrPackageNotFound = errors.New("package not found")
var ErrBookingNotFound = errors.New("booking not found")
var ErrGuideNotFound = errors.New("guide not found")

// Offer verification outcomes. The string messages surface verbatim in
// the verify response.
var ErrOfferNotFound = errors.New("Invalid offer code")
var ErrOfferInactive = errors.New("inactive")
var ErrOfferExpired = errors.New("expired")

var ErrGuideUnavailable = errors.New("selected guide is not available on this date")
var ErrUnknownHotel = errors.New("hotel is not offered by this package")
var ErrInvalidTransition = errors.New("invalid booking status transition")
var ErrAlreadyPaidOut = errors.New("booking already has a recorded payout")
