package service

import (
	"context"
	"fmt"
	"regexp"
	"time"

	"github.com/google/uuid"
	"github.com/pageza/nutripal/backend/internal/models"
	"github.com/pageza/nutripal/backend/internal/nutrition"
	"gorm.io/gorm"
)

var beveragePattern = regexp.MustCompile(`(?i)water|tea|coffee|juice|soda|bev|drink|milk|smoothie`)

// AnalyzedServingWeightG is the nominal serving weight recorded for analyzed foods
const AnalyzedServingWeightG = 100

// FoodLogService stores immutable food log entries
type FoodLogService struct {
	db  *gorm.DB
	now func() time.Time
}

var _ IFoodLogService = (*FoodLogService)(nil)

// NewFoodLogService creates a new FoodLogService instance
func NewFoodLogService(db *gorm.DB) *FoodLogService {
	return &FoodLogService{db: db, now: utcNow}
}

func utcNow() time.Time {
	return time.Now().UTC()
}

// StartOfDay returns midnight of t's calendar day in t's location
func StartOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// LogFood records an entry. LoggedAt defaults to now and ForDate to the
// calendar day of LoggedAt.
func (s *FoodLogService) LogFood(ctx context.Context, profileID uuid.UUID, entry *models.FoodLog) (*models.FoodLog, error) {
	entry.ID = uuid.New()
	entry.ProfileID = profileID
	if entry.LoggedAt.IsZero() {
		entry.LoggedAt = s.now()
	}
	if entry.ForDate.IsZero() {
		entry.ForDate = entry.LoggedAt
	}
	entry.ForDate = StartOfDay(entry.ForDate)
	if entry.Quantity <= 0 {
		entry.Quantity = 1
	}
	if entry.Food.Category == "" {
		entry.Food.Category = models.CategoryOther
	}
	if entry.MealType == "" {
		entry.MealType = models.MealSnack
	}

	if err := s.db.WithContext(ctx).Create(entry).Error; err != nil {
		return nil, fmt.Errorf("failed to log food: %w", err)
	}
	return entry, nil
}

// FoodFromAnalysis converts an analysis into a per-serving Food. Names that
// look like drinks are filed as beverages.
func FoodFromAnalysis(analysis *models.FoodAnalysis) models.Food {
	category := models.CategoryOther
	if beveragePattern.MatchString(analysis.FoodName) {
		category = models.CategoryBeverages
	}
	return models.Food{
		Name: analysis.FoodName,
		Nutrition: models.NutritionInfo{
			Calories: analysis.EstimatedCalories,
			Protein:  analysis.Nutrition.Protein,
			Carbs:    analysis.Nutrition.Carbs,
			Fat:      analysis.Nutrition.Fat,
			Fiber:    analysis.Nutrition.Fiber,
		},
		ServingSize:    analysis.ServingSize,
		ServingWeightG: AnalyzedServingWeightG,
		Category:       category,
	}
}

// LogAnalyzedFood records an entry built from a food analysis
func (s *FoodLogService) LogAnalyzedFood(ctx context.Context, profileID uuid.UUID, analysis *models.FoodAnalysis, mealType models.MealType, quantity float64, forDate time.Time) (*models.FoodLog, error) {
	return s.LogFood(ctx, profileID, &models.FoodLog{
		Food:     FoodFromAnalysis(analysis),
		Quantity: quantity,
		MealType: mealType,
		ForDate:  forDate,
	})
}

// ListForDay returns the entries attributed to day's calendar date
func (s *FoodLogService) ListForDay(ctx context.Context, profileID uuid.UUID, day time.Time) ([]models.FoodLog, error) {
	start := StartOfDay(day)
	var logs []models.FoodLog
	err := s.db.WithContext(ctx).
		Where("profile_id = ? AND for_date >= ? AND for_date < ?", profileID, start, start.AddDate(0, 0, 1)).
		Order("logged_at ASC").
		Find(&logs).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list food logs: %w", err)
	}
	return logs, nil
}

// ListHistory returns entries attributed to since's day or later
func (s *FoodLogService) ListHistory(ctx context.Context, profileID uuid.UUID, since time.Time) ([]models.FoodLog, error) {
	var logs []models.FoodLog
	err := s.db.WithContext(ctx).
		Where("profile_id = ? AND for_date >= ?", profileID, StartOfDay(since)).
		Order("for_date ASC, logged_at ASC").
		Find(&logs).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list food history: %w", err)
	}
	return logs, nil
}

// DailySummary aggregates a day of entries against the profile's targets
func (s *FoodLogService) DailySummary(ctx context.Context, profile *models.UserProfile, day time.Time) (*nutrition.DailySummary, error) {
	logs, err := s.ListForDay(ctx, profile.ID, day)
	if err != nil {
		return nil, err
	}
	summary := nutrition.Summarize(logs, day, nutrition.TargetsFor(profile))
	return &summary, nil
}
