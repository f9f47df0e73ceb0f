package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/pageza/nutripal/backend/internal/models"
	"github.com/pageza/nutripal/backend/internal/nutrition"
	"gorm.io/gorm"
)

// ProfileService handles user profile operations
type ProfileService struct {
	db *gorm.DB
}

// Ensure ProfileService implements IProfileService
var _ IProfileService = (*ProfileService)(nil)

// NewProfileService creates a new ProfileService instance
func NewProfileService(db *gorm.DB) *ProfileService {
	return &ProfileService{
		db: db,
	}
}

// CreateProfile stores the profile captured during onboarding
func (s *ProfileService) CreateProfile(ctx context.Context, profile *models.UserProfile) (*models.UserProfile, error) {
	if profile.ID == uuid.Nil {
		profile.ID = uuid.New()
	}
	if profile.ActivityLevel == "" {
		profile.ActivityLevel = models.ActivitySedentary
	}
	if profile.DietaryPreferences == nil {
		profile.DietaryPreferences = models.StringList{}
	}
	if profile.Allergies == nil {
		profile.Allergies = models.StringList{}
	}
	profile.HealthGoals = models.UniqueGoals(profile.HealthGoals)
	if err := s.db.WithContext(ctx).Create(profile).Error; err != nil {
		return nil, fmt.Errorf("failed to create profile: %w", err)
	}
	return profile, nil
}

// GetProfile retrieves a profile by id
func (s *ProfileService) GetProfile(ctx context.Context, id uuid.UUID) (*models.UserProfile, error) {
	var profile models.UserProfile
	if err := s.db.WithContext(ctx).First(&profile, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get profile: %w", err)
	}
	return &profile, nil
}

// UpdateProfile applies an explicit edit. Nil fields are left unchanged.
func (s *ProfileService) UpdateProfile(ctx context.Context, id uuid.UUID, req *models.UpdateProfileRequest) (*models.UserProfile, error) {
	profile, err := s.GetProfile(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		profile.Name = *req.Name
	}
	if req.Age != nil {
		profile.Age = *req.Age
	}
	if req.Weight != nil {
		profile.Weight = *req.Weight
	}
	if req.Height != nil {
		profile.Height = *req.Height
	}
	if req.ActivityLevel != nil {
		profile.ActivityLevel = *req.ActivityLevel
	}
	if req.DietaryPreferences != nil {
		profile.DietaryPreferences = req.DietaryPreferences
	}
	if req.HealthGoals != nil {
		profile.HealthGoals = models.UniqueGoals(req.HealthGoals)
	}
	if req.Allergies != nil {
		profile.Allergies = req.Allergies
	}
	profile.UpdatedAt = time.Now()

	if err := s.db.WithContext(ctx).Save(profile).Error; err != nil {
		return nil, fmt.Errorf("failed to update profile: %w", err)
	}

	return profile, nil
}

// Metrics derives the dashboard targets for a profile
func (s *ProfileService) Metrics(profile *models.UserProfile) nutrition.Targets {
	return nutrition.TargetsFor(profile)
}
