// Package badge evaluates gamification badges against a profile's logging history.
package badge

import "github.com/pageza/nutripal/backend/internal/models"

// Metric keys referenced by badge criteria
const (
	MetricWaterGoal       = "water_goal"
	MetricCompleteLogging = "complete_logging"
	MetricProteinGoal     = "protein_goal"
	MetricCalorieAccuracy = "calorie_accuracy"
	MetricVegetableMeals  = "vegetable_meals"
	MetricDailyLogging    = "daily_logging"
	MetricEarlyBreakfast  = "early_breakfast"
	MetricMacroBalance    = "macro_balance"
	MetricRecipesTried    = "recipes_tried"
	MetricWeeklyGoal      = "weekly_goal"
)

var catalog = []models.Badge{
	{
		ID:          "hydration_hero",
		Name:        "Hydration Hero",
		Description: "Drink your daily water goal for 7 days straight",
		Icon:        "💧",
		Category:    models.BadgeHydration,
		Criteria:    models.BadgeCriteria{Kind: models.CriteriaStreak, Target: 7, Metric: MetricWaterGoal},
	},
	{
		ID:          "meal_planner",
		Name:        "Meal Planner",
		Description: "Log all meals for 5 consecutive days",
		Icon:        "📋",
		Category:    models.BadgeConsistency,
		Criteria:    models.BadgeCriteria{Kind: models.CriteriaStreak, Target: 5, Metric: MetricCompleteLogging},
	},
	{
		ID:          "protein_power",
		Name:        "Protein Power",
		Description: "Meet your protein goals for 10 days",
		Icon:        "💪",
		Category:    models.BadgeNutrition,
		Criteria:    models.BadgeCriteria{Kind: models.CriteriaTotal, Target: 10, Metric: MetricProteinGoal},
	},
	{
		ID:          "calorie_conscious",
		Name:        "Calorie Conscious",
		Description: "Stay within 100 calories of your target for 7 days",
		Icon:        "🎯",
		Category:    models.BadgeNutrition,
		Criteria:    models.BadgeCriteria{Kind: models.CriteriaStreak, Target: 7, Metric: MetricCalorieAccuracy},
	},
	{
		ID:          "veggie_lover",
		Name:        "Veggie Lover",
		Description: "Log vegetables in 15 different meals",
		Icon:        "🥗",
		Category:    models.BadgeNutrition,
		Criteria:    models.BadgeCriteria{Kind: models.CriteriaTotal, Target: 15, Metric: MetricVegetableMeals},
	},
	{
		ID:          "streak_master",
		Name:        "Streak Master",
		Description: "Log meals for 30 consecutive days",
		Icon:        "🔥",
		Category:    models.BadgeConsistency,
		Criteria:    models.BadgeCriteria{Kind: models.CriteriaStreak, Target: 30, Metric: MetricDailyLogging},
	},
	{
		ID:          "early_bird",
		Name:        "Early Bird",
		Description: "Log breakfast before 9 AM for 7 days",
		Icon:        "🌅",
		Category:    models.BadgeConsistency,
		Criteria:    models.BadgeCriteria{Kind: models.CriteriaStreak, Target: 7, Metric: MetricEarlyBreakfast},
	},
	{
		ID:          "balanced_diet",
		Name:        "Balanced Diet",
		Description: "Hit all macro targets in a single day",
		Icon:        "⚖️",
		Category:    models.BadgeNutrition,
		Criteria:    models.BadgeCriteria{Kind: models.CriteriaAchievement, Target: 1, Metric: MetricMacroBalance},
	},
	{
		ID:          "recipe_explorer",
		Name:        "Recipe Explorer",
		Description: "Try 10 different AI-generated recipes",
		Icon:        "👨‍🍳",
		Category:    models.BadgeGoals,
		Criteria:    models.BadgeCriteria{Kind: models.CriteriaTotal, Target: 10, Metric: MetricRecipesTried},
	},
	{
		ID:          "goal_crusher",
		Name:        "Goal Crusher",
		Description: "Achieve your weekly nutrition goal",
		Icon:        "🏆",
		Category:    models.BadgeGoals,
		Criteria:    models.BadgeCriteria{Kind: models.CriteriaAchievement, Target: 1, Metric: MetricWeeklyGoal},
	},
}

// DefaultCatalog returns a copy of the built-in badge catalog in display order
func DefaultCatalog() []models.Badge {
	out := make([]models.Badge, len(catalog))
	copy(out, catalog)
	return out
}

// Find looks a badge up by id
func Find(badges []models.Badge, id string) (models.Badge, bool) {
	for _, b := range badges {
		if b.ID == id {
			return b, true
		}
	}
	return models.Badge{}, false
}
