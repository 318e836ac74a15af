package service

import (
	"context"
	"fmt"

	apperrors "ceylontours/internal/errors"
	"ceylontours/internal/models"
	"ceylontours/internal/repository"
)

// GuideService owns guide profiles, moderation, and blocked dates.
type GuideService struct {
	guideRepo   *repository.GuideRepository
	blockedRepo *repository.BlockedDateRepository
}

func NewGuideService(guideRepo *repository.GuideRepository, blockedRepo *repository.BlockedDateRepository) *GuideService {
	return &GuideService{
		guideRepo:   guideRepo,
		blockedRepo: blockedRepo,
	}
}

// Register creates a guide profile for the authenticated account. New
// profiles start pending and stay out of checkout until an admin
// approves them.
func (s *GuideService) Register(ctx context.Context, uid string, req *models.RegisterGuideRequest) (*models.Guide, error) {
	existing, err := s.guideRepo.GetByUID(ctx, uid)
	if err != nil {
		return nil, fmt.Errorf("failed to look up guide: %w", err)
	}
	if existing != nil {
		return nil, fmt.Errorf("account already has a guide profile")
	}

	guide := &models.Guide{
		UID:        &uid,
		Name:       req.Name,
		Role:       req.Role,
		Location:   req.Location,
		Languages:  req.Languages,
		Experience: req.Experience,
		Status:     models.GuideStatusPending,
	}
	if err := s.guideRepo.Create(ctx, guide); err != nil {
		return nil, fmt.Errorf("failed to create guide: %w", err)
	}
	return guide, nil
}

// GetByUID returns the guide profile for an account, nil when the
// account has none.
func (s *GuideService) GetByUID(ctx context.Context, uid string) (*models.Guide, error) {
	guide, err := s.guideRepo.GetByUID(ctx, uid)
	if err != nil {
		return nil, fmt.Errorf("failed to get guide: %w", err)
	}
	return guide, nil
}

func (s *GuideService) GetByID(ctx context.Context, id int64) (*models.Guide, error) {
	guide, err := s.guideRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get guide: %w", err)
	}
	if guide == nil {
		return nil, apperrors.ErrGuideNotFound
	}
	return guide, nil
}

// ListApproved returns the public roster.
func (s *GuideService) ListApproved(ctx context.Context) ([]models.Guide, error) {
	guides, err := s.guideRepo.ListByStatus(ctx, models.GuideStatusApproved)
	if err != nil {
		return nil, fmt.Errorf("failed to list guides: %w", err)
	}
	return guides, nil
}

// ListAll returns every profile for the admin moderation queue.
func (s *GuideService) ListAll(ctx context.Context) ([]models.Guide, error) {
	guides, err := s.guideRepo.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list guides: %w", err)
	}
	return guides, nil
}

// SetStatus moderates a profile. Only the canonical states are
// accepted; the handler has already validated the value.
func (s *GuideService) SetStatus(ctx context.Context, id int64, status models.GuideStatus) (*models.Guide, error) {
	guide, err := s.guideRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get guide: %w", err)
	}
	if guide == nil {
		return nil, apperrors.ErrGuideNotFound
	}

	if err := s.guideRepo.UpdateStatus(ctx, id, status); err != nil {
		return nil, fmt.Errorf("failed to update guide status: %w", err)
	}
	guide.Status = status
	return guide, nil
}

func (s *GuideService) Delete(ctx context.Context, id int64) error {
	if err := s.guideRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete guide: %w", err)
	}
	return nil
}

// BlockDate marks a date as unavailable for the guide.
func (s *GuideService) BlockDate(ctx context.Context, guideID int64, req *models.BlockDateRequest) (*models.BlockedDate, error) {
	block := &models.BlockedDate{
		GuideID: guideID,
		Date:    req.Date.Time(),
		Reason:  req.Reason,
	}
	if err := s.blockedRepo.Create(ctx, block); err != nil {
		return nil, fmt.Errorf("failed to block date: %w", err)
	}
	return block, nil
}

// UnblockDate removes a block. Scoped to the owning guide so one guide
// cannot unblock another's calendar.
func (s *GuideService) UnblockDate(ctx context.Context, id, guideID int64) error {
	if err := s.blockedRepo.Delete(ctx, id, guideID); err != nil {
		return fmt.Errorf("failed to unblock date: %w", err)
	}
	return nil
}

// BlockedDates lists the guide's blocked calendar.
func (s *GuideService) BlockedDates(ctx context.Context, guideID int64) ([]models.BlockedDate, error) {
	blocks, err := s.blockedRepo.ListByGuideID(ctx, guideID)
	if err != nil {
		return nil, fmt.Errorf("failed to list blocked dates: %w", err)
	}
	return blocks, nil
}
