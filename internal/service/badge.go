package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/pageza/nutripal/backend/internal/badge"
	"github.com/pageza/nutripal/backend/internal/models"
	"github.com/pageza/nutripal/backend/internal/nutrition"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// BadgeHistoryDays bounds how much food-log history feeds badge evaluation
const BadgeHistoryDays = 60

// ErrUnknownBadge is returned when awarding a badge missing from the catalog
var ErrUnknownBadge = errors.New("unknown badge")

// BadgeService derives badge progress from logging history on every read
type BadgeService struct {
	db      *gorm.DB
	foods   IFoodLogService
	recipes IRecipeService
	catalog []models.Badge
}

var _ IBadgeService = (*BadgeService)(nil)

// NewBadgeService creates a new BadgeService over the default catalog
func NewBadgeService(db *gorm.DB, foods IFoodLogService, recipes IRecipeService) *BadgeService {
	return &BadgeService{
		db:      db,
		foods:   foods,
		recipes: recipes,
		catalog: badge.DefaultCatalog(),
	}
}

// Catalog returns the badge definitions
func (s *BadgeService) Catalog() []models.Badge {
	return s.catalog
}

func (s *BadgeService) earned(ctx context.Context, profileID uuid.UUID) ([]models.UserBadge, error) {
	var records []models.UserBadge
	if err := s.db.WithContext(ctx).Where("profile_id = ?", profileID).Find(&records).Error; err != nil {
		return nil, fmt.Errorf("failed to load earned badges: %w", err)
	}
	return records, nil
}

// Progress evaluates the catalog for a profile. Badges that reached 100
// are awarded before the result is returned.
func (s *BadgeService) Progress(ctx context.Context, profile *models.UserProfile, today time.Time, category models.BadgeCategory) ([]badge.Progress, error) {
	logs, err := s.foods.ListHistory(ctx, profile.ID, today.AddDate(0, 0, -BadgeHistoryDays))
	if err != nil {
		return nil, err
	}
	tried, err := s.recipes.CountRecipes(ctx, profile.ID)
	if err != nil {
		return nil, err
	}
	records, err := s.earned(ctx, profile.ID)
	if err != nil {
		return nil, err
	}

	activity := badge.BuildActivity(logs, today, nutrition.TargetsFor(profile), int(tried))
	progress := badge.Evaluate(s.catalog, records, activity)

	completed := badge.Completed(progress)
	if len(completed) > 0 {
		for _, b := range completed {
			record, err := s.Award(ctx, profile.ID, b.ID)
			if err != nil {
				return nil, err
			}
			log.Printf("[BadgeService] awarded %s to %s", b.ID, profile.ID)
			records = append(records, *record)
		}
		progress = badge.Evaluate(s.catalog, records, activity)
	}

	return badge.FilterByCategory(progress, category), nil
}

// Award records that the profile earned a badge. Awarding twice keeps the
// first record.
func (s *BadgeService) Award(ctx context.Context, profileID uuid.UUID, badgeID string) (*models.UserBadge, error) {
	if _, ok := badge.Find(s.catalog, badgeID); !ok {
		return nil, ErrUnknownBadge
	}

	record := &models.UserBadge{
		ID:        uuid.New(),
		ProfileID: profileID,
		BadgeID:   badgeID,
		EarnedAt:  time.Now(),
	}
	err := s.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(record).Error
	if err != nil {
		return nil, fmt.Errorf("failed to award badge: %w", err)
	}

	var stored models.UserBadge
	if err := s.db.WithContext(ctx).First(&stored, "profile_id = ? AND badge_id = ?", profileID, badgeID).Error; err != nil {
		return nil, fmt.Errorf("failed to load awarded badge: %w", err)
	}
	return &stored, nil
}
