package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/pageza/nutripal/backend/internal/models"
	"gorm.io/gorm"
)

// MealPlanService stores generated meal plans. The newest plan is current.
type MealPlanService struct {
	db *gorm.DB
}

var _ IMealPlanService = (*MealPlanService)(nil)

// NewMealPlanService creates a new MealPlanService instance
func NewMealPlanService(db *gorm.DB) *MealPlanService {
	return &MealPlanService{db: db}
}

// SavePlan stores a plan, superseding any earlier plan for the profile
func (s *MealPlanService) SavePlan(ctx context.Context, plan *models.MealPlan) (*models.MealPlan, error) {
	if plan.ID == uuid.Nil {
		plan.ID = uuid.New()
	}
	if plan.Meals == nil {
		plan.Meals = []models.DailyMeals{}
	}
	if err := s.db.WithContext(ctx).Create(plan).Error; err != nil {
		return nil, fmt.Errorf("failed to save meal plan: %w", err)
	}
	return plan, nil
}

// GetPlan retrieves one of the profile's plans
func (s *MealPlanService) GetPlan(ctx context.Context, profileID, planID uuid.UUID) (*models.MealPlan, error) {
	var plan models.MealPlan
	err := s.db.WithContext(ctx).First(&plan, "id = ? AND profile_id = ?", planID, profileID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get meal plan: %w", err)
	}
	return &plan, nil
}

// CurrentPlan returns the most recently created plan
func (s *MealPlanService) CurrentPlan(ctx context.Context, profileID uuid.UUID) (*models.MealPlan, error) {
	var plan models.MealPlan
	err := s.db.WithContext(ctx).
		Where("profile_id = ?", profileID).
		Order("created_at DESC").
		First(&plan).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get current meal plan: %w", err)
	}
	return &plan, nil
}
