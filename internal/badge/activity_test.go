package badge

import (
	"testing"
	"time"

	"github.com/pageza/nutripal/backend/internal/models"
	"github.com/pageza/nutripal/backend/internal/nutrition"
	"github.com/stretchr/testify/assert"
)

func meal(mealType models.MealType, cat models.FoodCategory, n models.NutritionInfo, at time.Time) models.FoodLog {
	return models.FoodLog{
		Food:     models.Food{Name: string(mealType), Category: cat, Nutrition: n},
		Quantity: 1,
		MealType: mealType,
		LoggedAt: at,
		ForDate:  at,
	}
}

func fullDay(day time.Time) []models.FoodLog {
	return []models.FoodLog{
		meal(models.MealBreakfast, models.CategoryGrains, models.NutritionInfo{Calories: 400, Protein: 20}, day.Add(8*time.Hour)),
		meal(models.MealLunch, models.CategoryVegetables, models.NutritionInfo{Calories: 600, Protein: 40}, day.Add(13*time.Hour)),
		meal(models.MealDinner, models.CategoryProtein, models.NutritionInfo{Calories: 800, Protein: 60}, day.Add(19*time.Hour)),
	}
}

func TestBuildActivityCompleteLogging(t *testing.T) {
	today := time.Date(2024, 5, 20, 0, 0, 0, 0, time.UTC)
	var logs []models.FoodLog
	for i := 0; i < 3; i++ {
		logs = append(logs, fullDay(today.AddDate(0, 0, -i))...)
	}
	// a partial day outside the streak
	logs = append(logs, meal(models.MealLunch, models.CategoryOther, models.NutritionInfo{Calories: 300}, today.AddDate(0, 0, -5).Add(12*time.Hour)))

	targets := nutrition.Targets{Calories: 1800, Macros: models.MacroTargets{Protein: 110, Carbs: 200, Fat: 60}, WaterMl: 2000}
	activity := BuildActivity(logs, today.Add(20*time.Hour), targets, 2)

	assert.Equal(t, 3.0, activity.Totals[MetricCompleteLogging])
	assert.Equal(t, 3, activity.Streaks[MetricCompleteLogging])
	assert.Equal(t, 4.0, activity.Totals[MetricDailyLogging])
	assert.Equal(t, 3, activity.Streaks[MetricDailyLogging])
	assert.Equal(t, 3, activity.Streaks[MetricEarlyBreakfast])
	assert.Equal(t, 3, activity.Streaks[MetricCalorieAccuracy])
	assert.Equal(t, 3.0, activity.Totals[MetricProteinGoal])
	assert.Equal(t, 3.0, activity.Totals[MetricVegetableMeals])
	assert.Equal(t, 2.0, activity.Totals[MetricRecipesTried])
	assert.Equal(t, 0, activity.Streaks[MetricWaterGoal])

	b := models.Badge{ID: "logger", Criteria: models.BadgeCriteria{Kind: models.CriteriaTotal, Target: 5, Metric: MetricCompleteLogging}}
	assert.InDelta(t, 60, Evaluate([]models.Badge{b}, nil, activity)[0].Progress, 1e-9)
}

func TestBuildActivityStreakBreaks(t *testing.T) {
	today := time.Date(2024, 5, 20, 0, 0, 0, 0, time.UTC)
	logs := append(fullDay(today), fullDay(today.AddDate(0, 0, -2))...)

	activity := BuildActivity(logs, today, nutrition.Targets{}, 0)
	assert.Equal(t, 1, activity.Streaks[MetricDailyLogging])
	assert.Equal(t, 2.0, activity.Totals[MetricDailyLogging])
}

func TestBuildActivityMacroBalance(t *testing.T) {
	today := time.Date(2024, 5, 20, 0, 0, 0, 0, time.UTC)
	targets := nutrition.Targets{Macros: models.MacroTargets{Protein: 100, Carbs: 200, Fat: 60}}
	logs := []models.FoodLog{
		meal(models.MealLunch, models.CategoryOther, models.NutritionInfo{Protein: 102, Carbs: 190, Fat: 63}, today.Add(12*time.Hour)),
	}

	assert.True(t, BuildActivity(logs, today, targets, 0).Achievements[MetricMacroBalance])
	assert.False(t, BuildActivity(nil, today, targets, 0).Achievements[MetricMacroBalance])
}

func TestBuildActivityUsesCallerLocation(t *testing.T) {
	newYork := time.FixedZone("UTC-5", -5*60*60)
	day := time.Date(2024, 5, 20, 0, 0, 0, 0, time.UTC)
	breakfast := models.FoodLog{
		Food:     models.Food{Name: "oats", Category: models.CategoryGrains},
		Quantity: 1,
		MealType: models.MealBreakfast,
		// 08:00 in UTC-5
		LoggedAt: time.Date(2024, 5, 20, 13, 0, 0, 0, time.UTC),
		ForDate:  day,
	}

	// late evening in UTC-5 is already the next day in UTC
	local := BuildActivity([]models.FoodLog{breakfast}, time.Date(2024, 5, 20, 23, 0, 0, 0, newYork), nutrition.Targets{}, 0)
	assert.Equal(t, 1, local.Streaks[MetricDailyLogging])
	assert.Equal(t, 1, local.Streaks[MetricEarlyBreakfast])

	utc := BuildActivity([]models.FoodLog{breakfast}, day.Add(23*time.Hour), nutrition.Targets{}, 0)
	assert.Equal(t, 1, utc.Streaks[MetricDailyLogging])
	assert.Equal(t, 0, utc.Streaks[MetricEarlyBreakfast])
}
