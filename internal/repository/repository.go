package repository

import (
	"ceylontours/internal/database"
)

type Repositories struct {
	Packages      *PackageRepository
	Guides        *GuideRepository
	Bookings      *BookingRepository
	Offers        *OfferRepository
	BlockedDates  *BlockedDateRepository
	Payouts       *PayoutRepository
	Notifications *NotificationRepository
	Users         *UserRepository
	Contacts      *ContactRepository
	Reviews       *ReviewRepository
}

func NewRepositories(db *database.DB) *Repositories {
	return &Repositories{
		Packages:      NewPackageRepository(db),
		Guides:        NewGuideRepository(db),
		Bookings:      NewBookingRepository(db),
		Offers:        NewOfferRepository(db),
		BlockedDates:  NewBlockedDateRepository(db),
		Payouts:       NewPayoutRepository(db),
		Notifications: NewNotificationRepository(db),
		Users:         NewUserRepository(db),
		Contacts:      NewContactRepository(db),
		Reviews:       NewReviewRepository(db),
	}
}
