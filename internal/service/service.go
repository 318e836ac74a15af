package service

import (
	"ceylontours/internal/cache"
	"ceylontours/internal/checkout"
	"ceylontours/internal/messaging"
	"ceylontours/internal/repository"
	"ceylontours/internal/search"
)

type Services struct {
	Packages      *PackageService
	Guides        *GuideService
	Offers        *OfferService
	Bookings      *BookingService
	Payouts       *PayoutService
	Notifications *NotificationService
	Users         *UserService
	Content       *ContentService
	Availability  *AvailabilityService
}

func NewServices(repos *repository.Repositories, sessions *checkout.Manager, natsClient *messaging.NATSClient, searchClient *search.ElasticsearchClient, cacheClient *cache.ValkeyClient) *Services {
	availabilityService := NewAvailabilityService(repos.Bookings, repos.BlockedDates)
	offerService := NewOfferService(repos.Offers)
	packageService := NewPackageService(repos.Packages, searchClient, cacheClient)
	guideService := NewGuideService(repos.Guides, repos.BlockedDates)
	bookingService := NewBookingService(sessions, repos.Packages, repos.Guides, repos.Bookings, repos.Notifications, availabilityService, offerService, natsClient)
	payoutService := NewPayoutService(repos.Bookings, repos.Payouts, natsClient)
	notificationService := NewNotificationService(repos.Notifications)
	userService := NewUserService(repos.Users)
	contentService := NewContentService(repos.Contacts, repos.Reviews)

	return &Services{
		Packages:      packageService,
		Guides:        guideService,
		Offers:        offerService,
		Bookings:      bookingService,
		Payouts:       payoutService,
		Notifications: notificationService,
		Users:         userService,
		Content:       contentService,
		Availability:  availabilityService,
	}
}
