package service

import (
	"context"
	"fmt"

	apperrors "ceylontours/internal/errors"
	"ceylontours/internal/models"
	"ceylontours/internal/repository"
)

// UserService mirrors identity-provider accounts into the local users
// table so bookings and guide profiles can reference them.
type UserService struct {
	userRepo *repository.UserRepository
}

func NewUserService(userRepo *repository.UserRepository) *UserService {
	return &UserService{userRepo: userRepo}
}

// Sync upserts the account row from a verified token. Called by the
// frontend after sign-in; safe to repeat.
func (s *UserService) Sync(ctx context.Context, uid, email, name string) (*models.User, error) {
	user := &models.User{UID: uid, Email: email, Name: name}
	if err := s.userRepo.Upsert(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to sync user: %w", err)
	}
	return user, nil
}

func (s *UserService) GetByUID(ctx context.Context, uid string) (*models.User, error) {
	user, err := s.userRepo.GetByUID(ctx, uid)
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	if user == nil {
		return nil, apperrors.ErrUnauthorized
	}
	return user, nil
}

// ContentService handles the storefront's contact form and reviews.
type ContentService struct {
	contactRepo *repository.ContactRepository
	reviewRepo  *repository.ReviewRepository
}

func NewContentService(contactRepo *repository.ContactRepository, reviewRepo *repository.ReviewRepository) *ContentService {
	return &ContentService{
		contactRepo: contactRepo,
		reviewRepo:  reviewRepo,
	}
}

func (s *ContentService) SubmitContact(ctx context.Context, req *models.ContactRequest) (*models.Contact, error) {
	contact := &models.Contact{
		Name:    req.Name,
		Email:   req.Email,
		Subject: req.Subject,
		Message: req.Message,
	}
	if err := s.contactRepo.Create(ctx, contact); err != nil {
		return nil, fmt.Errorf("failed to save contact: %w", err)
	}
	return contact, nil
}

func (s *ContentService) ListContacts(ctx context.Context) ([]models.Contact, error) {
	contacts, err := s.contactRepo.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list contacts: %w", err)
	}
	return contacts, nil
}

func (s *ContentService) SubmitReview(ctx context.Context, uid, name string, req *models.CreateReviewRequest) (*models.Review, error) {
	review := &models.Review{
		PackageID: req.PackageID,
		UserID:    uid,
		UserName:  name,
		Rating:    req.Rating,
		Comment:   req.Comment,
	}
	if err := s.reviewRepo.Create(ctx, review); err != nil {
		return nil, fmt.Errorf("failed to save review: %w", err)
	}
	return review, nil
}

func (s *ContentService) ListReviews(ctx context.Context, packageID int64) ([]models.Review, error) {
	reviews, err := s.reviewRepo.ListByPackageID(ctx, packageID)
	if err != nil {
		return nil, fmt.Errorf("failed to list reviews: %w", err)
	}
	return reviews, nil
}
