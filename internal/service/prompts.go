package service

import (
	"fmt"
	"strings"

	"github.com/pageza/nutripal/backend/internal/models"
	"github.com/pageza/nutripal/backend/internal/nutrition"
)

// System messages sent ahead of each prompt
const (
	MealPlanSystemPrompt     = "You are a professional nutritionist and meal planning expert. Generate detailed, healthy meal plans with accurate nutritional information. You MUST return valid JSON only, no markdown formatting."
	RecipeSystemPrompt       = "You are a creative chef and nutritionist. Create healthy, delicious recipes using available ingredients with accurate nutritional information and clear instructions. You MUST return valid JSON only, no markdown formatting."
	FoodAnalysisSystemPrompt = "You are a nutrition expert. Analyze food items and provide accurate nutritional information. Return data in JSON format."
	coachBasePrompt          = "You are a friendly, knowledgeable AI nutrition coach. Provide helpful, evidence-based advice about healthy eating, nutrition, and wellness. Keep responses concise but informative. Always be encouraging and supportive."
)

const mealPlanSchema = `{
  "name": "Plan Name",
  "targetNutrition": { "calories": 0, "protein": 0, "carbs": 0, "fat": 0, "fiber": 0, "sugar": 0, "sodium": 0 },
  "meals": [
    {
      "day": 1,
      "breakfast": { "name": "Meal Name", "type": "breakfast", "preparationTime": 15, "instructions": ["step 1"], "totalNutrition": { "calories": 0, "protein": 0, "carbs": 0, "fat": 0, "fiber": 0 } },
      "lunch": { ... },
      "dinner": { ... },
      "snacks": [ { ... } ]
    }
  ]
}`

const foodAnalysisSchema = `{ "foodName": "", "estimatedCalories": 0, "nutrition": {"protein": 0, "carbs": 0, "fat": 0, "fiber": 0}, "servingSize": "" }`

func joinOr(values []string, empty string) string {
	if len(values) == 0 {
		return empty
	}
	return strings.Join(values, ", ")
}

func goalStrings(goals []models.HealthGoal) []string {
	out := make([]string, len(goals))
	for i, g := range goals {
		out[i] = string(g)
	}
	return out
}

// BuildMealPlanPrompt describes the profile, the day count and the JSON
// schema the reply must follow.
func BuildMealPlanPrompt(profile *models.UserProfile, days int, extraPreferences []string) string {
	var prompt strings.Builder

	if profile == nil {
		prompt.WriteString(fmt.Sprintf("Create a %d-day balanced meal plan for an adult with no stored profile:\n", days))
	} else {
		prompt.WriteString(fmt.Sprintf("Create a %d-day meal plan for a user with the following profile:\n", days))
		prompt.WriteString(fmt.Sprintf("- Age: %d, Weight: %gkg, Height: %gcm\n", profile.Age, profile.Weight, profile.Height))
		prompt.WriteString(fmt.Sprintf("- Activity Level: %s\n", profile.ActivityLevel))
		prompt.WriteString(fmt.Sprintf("- Dietary Preferences: %s\n", joinOr(profile.DietaryPreferences, "None specified")))
		prompt.WriteString(fmt.Sprintf("- Health Goals: %s\n", joinOr(goalStrings(profile.HealthGoals), "None specified")))
		prompt.WriteString(fmt.Sprintf("- Allergies: %s\n", joinOr(profile.Allergies, "None")))
	}
	prompt.WriteString(fmt.Sprintf("- Daily Calorie Target: %d kcal\n", nutrition.DailyCalorieTarget(profile)))
	if len(extraPreferences) > 0 {
		prompt.WriteString(fmt.Sprintf("- Additional Preferences: %s\n", strings.Join(extraPreferences, ", ")))
	}

	prompt.WriteString("\nInclude breakfast, lunch, dinner, and 1-2 snacks per day.\n")
	prompt.WriteString(fmt.Sprintf("The \"meals\" array MUST contain exactly %d entries, one per day.\n\n", days))
	prompt.WriteString("The output MUST be a valid JSON object with the following structure:\n")
	prompt.WriteString(mealPlanSchema)
	prompt.WriteString("\n\nEnsure all nutrition values are calculated numbers (no units). Do not wrap the JSON in prose or markdown.")

	return prompt.String()
}

// BuildRecipePrompt asks for a single recipe using the given ingredients
func BuildRecipePrompt(ingredients, dietaryPreferences []string, servings int) string {
	var prompt strings.Builder

	prompt.WriteString(fmt.Sprintf("Create a healthy recipe using these ingredients: %s\n\n", strings.Join(ingredients, ", ")))
	prompt.WriteString("Requirements:\n")
	prompt.WriteString(fmt.Sprintf("- Serves %d people\n", servings))
	prompt.WriteString(fmt.Sprintf("- Dietary preferences: %s\n\n", joinOr(dietaryPreferences, "None specified")))
	prompt.WriteString("The output MUST be a valid JSON object with the following structure:\n")
	prompt.WriteString(`{
  "name": "Recipe Name",
  "description": "Short description",
  "ingredients": [ { "name": "", "amount": 0, "unit": "", "optional": false } ],
  "instructions": [ "Step 1", "Step 2" ],
  "preparationTime": 0,
  "cookingTime": 0,
  `)
	prompt.WriteString(fmt.Sprintf("\"servings\": %d,\n", servings))
	prompt.WriteString(`  "difficulty": "easy | medium | hard",
  "nutrition": { "calories": 0, "protein": 0, "carbs": 0, "fat": 0, "fiber": 0, "sugar": 0, "sodium": 0 },
  "tags": [ "healthy", "dinner", "quick" ]
}`)
	prompt.WriteString("\n\nNutrition values are per serving. Do not wrap the JSON in prose or markdown.")

	return prompt.String()
}

// BuildFoodAnalysisPrompt asks for a nutrition estimate of a text or photo description
func BuildFoodAnalysisPrompt(description string, imageDerived bool) string {
	var prompt string
	if imageDerived {
		prompt = fmt.Sprintf("Analyze this food image description and provide nutritional information: %q", description)
	} else {
		prompt = fmt.Sprintf("Analyze this food item and provide nutritional information: %q", description)
	}
	return prompt + "\n\nReturn as JSON: " + foodAnalysisSchema
}

// BuildCoachSystemPrompt returns the coach persona, personalised when a profile is given
func BuildCoachSystemPrompt(profile *models.UserProfile) string {
	if profile == nil {
		return coachBasePrompt
	}

	var prompt strings.Builder
	prompt.WriteString(coachBasePrompt)
	prompt.WriteString("\n\nUser context:\n")
	prompt.WriteString(fmt.Sprintf("- Dietary preferences: %s\n", joinOr(profile.DietaryPreferences, "None specified")))
	prompt.WriteString(fmt.Sprintf("- Health goals: %s\n", joinOr(goalStrings(profile.HealthGoals), "None specified")))
	prompt.WriteString(fmt.Sprintf("- Allergies: %s\n", joinOr(profile.Allergies, "None")))
	prompt.WriteString("\nTailor your advice to their specific needs and restrictions.")
	return prompt.String()
}
