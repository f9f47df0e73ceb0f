package service

import (
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/pageza/nutripal/backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var parseNow = time.Date(2024, 3, 10, 8, 0, 0, 0, time.UTC)

func testProfile() *models.UserProfile {
	return &models.UserProfile{
		ID:            uuid.New(),
		Name:          "Sam",
		Age:           30,
		Weight:        70,
		Height:        175,
		ActivityLevel: models.ActivityModerate,
		HealthGoals:   []models.HealthGoal{models.GoalMaintenance},
	}
}

const twoDayPlan = `{
  "name": "Balanced Week",
  "targetNutrition": {"calories": 2100, "protein": 130, "carbs": 230, "fat": 70, "fiber": 30},
  "meals": [
    {
      "breakfast": {"name": "Oats", "type": "breakfast", "preparationTime": 10, "instructions": ["cook oats"], "totalNutrition": {"calories": 400, "protein": 15, "carbs": 60, "fat": 10, "fiber": 8}},
      "lunch": {"name": "Salad", "preparationTime": "20 minutes", "totalNutrition": {"calories": 600, "protein": 35, "carbs": 50, "fat": 25, "fiber": 10}},
      "dinner": {"name": "Salmon", "type": "dinner", "totalNutrition": {"calories": 700, "protein": 45, "carbs": 60, "fat": 25, "fiber": 6}},
      "snacks": [{"name": "Apple", "type": "snack", "totalNutrition": {"calories": 95, "protein": 0.5, "carbs": 25, "fat": 0.3, "fiber": 4}}]
    },
    {
      "breakfast": {"name": "Eggs", "totalNutrition": {"calories": 350, "protein": 25, "carbs": 5, "fat": 22}}
    }
  ]
}`

func TestParseMealPlan(t *testing.T) {
	profile := testProfile()

	plan, err := ParseMealPlan(twoDayPlan, profile, parseNow)
	require.NoError(t, err)

	assert.Equal(t, "Balanced Week", plan.Name)
	assert.Equal(t, profile.ID, plan.ProfileID)
	assert.Equal(t, parseNow, plan.StartDate)
	assert.Equal(t, parseNow.AddDate(0, 0, 1), plan.EndDate)
	assert.False(t, plan.Fallback)
	assert.Equal(t, 2100.0, plan.TargetNutrition.Calories)
	require.Len(t, plan.Meals, 2)

	day1 := plan.Meals[0]
	assert.Equal(t, 1, day1.Day)
	require.NotNil(t, day1.Breakfast)
	assert.Equal(t, "Oats", day1.Breakfast.Name)
	assert.Equal(t, 10, day1.Breakfast.PreparationTime)
	assert.Equal(t, 20, day1.Lunch.PreparationTime)
	assert.Equal(t, models.MealLunch, day1.Lunch.Type)
	assert.Equal(t, "meal_1710057600000_b_0", day1.Breakfast.ID)
	require.Len(t, day1.Snacks, 1)
	assert.Equal(t, "meal_1710057600000_s_0_0", day1.Snacks[0].ID)
	assert.InDelta(t, 1795, day1.TotalNutrition().Calories, 0.001)

	day2 := plan.Meals[1]
	assert.Equal(t, parseNow.AddDate(0, 0, 1), day2.Date)
	assert.Nil(t, day2.Lunch)
	assert.Nil(t, day2.Dinner)
	assert.Empty(t, day2.Snacks)
	assert.Equal(t, 0.0, day2.Breakfast.TotalNutrition.Fiber)
}

func TestParseMealPlanRejectsMissingMeals(t *testing.T) {
	cases := map[string]string{
		"missing": `{"name": "No meals"}`,
		"null":    `{"name": "Null meals", "meals": null}`,
		"wrong":   `{"meals": "monday"}`,
		"garbage": `this is not json`,
	}
	for name, raw := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := ParseMealPlan(raw, testProfile(), parseNow)
			var pe *ParseError
			require.True(t, errors.As(err, &pe), "expected ParseError, got %v", err)
			assert.Equal(t, "meal plan", pe.Target)
			assert.True(t, IsRecoverable(err))
		})
	}
}

func TestParseMealPlanToleratesFencesAndProse(t *testing.T) {
	fenced := "```json\n" + twoDayPlan + "\n```"
	plan, err := ParseMealPlan(fenced, testProfile(), parseNow)
	require.NoError(t, err)
	assert.Len(t, plan.Meals, 2)

	prose := "Here is your plan:\n" + twoDayPlan + "\nEnjoy!"
	plan, err = ParseMealPlan(prose, testProfile(), parseNow)
	require.NoError(t, err)
	assert.Len(t, plan.Meals, 2)
}

func TestParseMealPlanDefaults(t *testing.T) {
	profile := testProfile()
	plan, err := ParseMealPlan(`{"meals": []}`, profile, parseNow)
	require.NoError(t, err)

	assert.Equal(t, DefaultPlanName, plan.Name)
	assert.Empty(t, plan.Meals)
	assert.Equal(t, parseNow, plan.EndDate)
	// targets derived from the profile: 2556 kcal for the reference profile
	assert.Equal(t, 2556.0, plan.TargetNutrition.Calories)
	assert.Equal(t, 25.0, plan.TargetNutrition.Fiber)
}

func TestParseRecipe(t *testing.T) {
	raw := `{
	  "name": "Veggie Stir Fry",
	  "description": "Quick and colourful",
	  "ingredients": [{"name": "broccoli", "amount": "2", "unit": "cups"}, "soy sauce"],
	  "instructions": ["chop", "fry"],
	  "preparationTime": "10 minutes",
	  "cookingTime": 12,
	  "servings": {"Value": 3},
	  "difficulty": "Easy",
	  "nutrition": {"calories": 320, "protein": 12, "carbs": 40, "fat": 11},
	  "tags": ["vegan", "quick"]
	}`

	recipe, err := ParseRecipe(raw)
	require.NoError(t, err)
	assert.Equal(t, "Veggie Stir Fry", recipe.Name)
	require.Len(t, recipe.Ingredients, 2)
	assert.Equal(t, 2.0, recipe.Ingredients[0].Amount)
	assert.Equal(t, "soy sauce", recipe.Ingredients[1].Name)
	assert.Equal(t, 10, recipe.PreparationTime)
	assert.Equal(t, 12, recipe.CookingTime)
	assert.Equal(t, 3, recipe.Servings)
	assert.Equal(t, models.DifficultyEasy, recipe.Difficulty)
	assert.Equal(t, 320.0, recipe.Nutrition.Calories)
	assert.Equal(t, models.StringList{"vegan", "quick"}, recipe.Tags)
}

func TestParseRecipeDefaults(t *testing.T) {
	recipe, err := ParseRecipe(`{}`)
	require.NoError(t, err)

	assert.Equal(t, DefaultRecipeName, recipe.Name)
	assert.Equal(t, DefaultRecipeDescription, recipe.Description)
	assert.Equal(t, DefaultPrepMinutes, recipe.PreparationTime)
	assert.Equal(t, DefaultCookMinutes, recipe.CookingTime)
	assert.Equal(t, DefaultServings, recipe.Servings)
	assert.Equal(t, models.DifficultyMedium, recipe.Difficulty)
	assert.NotNil(t, recipe.Tags)
	assert.Empty(t, recipe.Tags)
	assert.NotNil(t, recipe.Instructions)
	assert.Empty(t, recipe.Ingredients)
}

func TestParseRecipeInvalidJSON(t *testing.T) {
	_, err := ParseRecipe("I could not think of a recipe")
	var pe *ParseError
	assert.True(t, errors.As(err, &pe))
}

func TestParseRecipeNull(t *testing.T) {
	for _, raw := range []string{"null", "```json\nnull\n```", `["pasta"]`, `"pasta"`} {
		recipe, err := ParseRecipe(raw)
		assert.Nil(t, recipe, raw)
		var pe *ParseError
		assert.True(t, errors.As(err, &pe), raw)
	}
}

func TestParseFoodAnalysis(t *testing.T) {
	raw := "```json\n{\"foodName\": \"Banana\", \"estimatedCalories\": 105, \"nutrition\": {\"protein\": 1.3, \"carbs\": 27, \"fat\": 0.4, \"fiber\": 3.1}, \"servingSize\": \"1 medium\"}\n```"
	analysis := ParseFoodAnalysis(raw, "banana")
	assert.Equal(t, "Banana", analysis.FoodName)
	assert.Equal(t, 105.0, analysis.EstimatedCalories)
	assert.Equal(t, 27.0, analysis.Nutrition.Carbs)
	assert.Equal(t, "1 medium", analysis.ServingSize)
}

func TestParseFoodAnalysisFallback(t *testing.T) {
	analysis := ParseFoodAnalysis("no idea", "mystery stew")
	assert.Equal(t, "mystery stew", analysis.FoodName)
	assert.Zero(t, analysis.EstimatedCalories)
	assert.Equal(t, models.AnalysisNutrition{}, analysis.Nutrition)
	assert.Equal(t, DefaultServingSize, analysis.ServingSize)

	partial := ParseFoodAnalysis(`{"estimatedCalories": 50}`, "tea")
	assert.Equal(t, "tea", partial.FoodName)
	assert.Equal(t, 50.0, partial.EstimatedCalories)
}

func TestDefaultMealPlan(t *testing.T) {
	profile := testProfile()
	plan := DefaultMealPlan(profile, parseNow)

	assert.Equal(t, FallbackPlanName, plan.Name)
	assert.True(t, plan.Fallback)
	assert.Empty(t, plan.Meals)
	assert.Equal(t, profile.ID, plan.ProfileID)
	assert.Equal(t, parseNow.AddDate(0, 0, 6), plan.EndDate)
	assert.Equal(t, 2000.0, plan.TargetNutrition.Calories)

	assert.Equal(t, uuid.Nil, DefaultMealPlan(nil, parseNow).ProfileID)
}
