package service

import (
	"time"

	"github.com/google/uuid"
	"github.com/pageza/nutripal/backend/internal/models"
)

// FallbackPlanName marks a degraded plan produced without the model
const FallbackPlanName = "Basic Healthy Plan (Fallback)"

// fallbackTargets are generic 2000 kcal reference values. They do not
// depend on the profile, which may not have been validated on this path.
var fallbackTargets = models.NutritionInfo{
	Calories: 2000,
	Protein:  125,
	Carbs:    225,
	Fat:      67,
	Fiber:    25,
	Sugar:    50,
	Sodium:   2300,
}

// DefaultMealPlan returns a schema-valid week-long plan with no meals
func DefaultMealPlan(profile *models.UserProfile, now time.Time) *models.MealPlan {
	plan := &models.MealPlan{
		ID:              uuid.New(),
		Name:            FallbackPlanName,
		StartDate:       now,
		EndDate:         now.AddDate(0, 0, 6),
		Meals:           []models.DailyMeals{},
		TargetNutrition: fallbackTargets,
		Fallback:        true,
		CreatedAt:       now,
	}
	if profile != nil {
		plan.ProfileID = profile.ID
	}
	return plan
}
