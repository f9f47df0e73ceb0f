package service

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/pageza/nutripal/backend/internal/models"
	"github.com/pageza/nutripal/backend/internal/nutrition"
)

// Defaults applied to fields a recipe reply leaves out
const (
	DefaultRecipeName        = "Unknown Recipe"
	DefaultRecipeDescription = "No description provided."
	DefaultPrepMinutes       = 15
	DefaultCookMinutes       = 15
	DefaultServings          = 4
	DefaultPlanName          = "AI Generated Plan"
	DefaultServingSize       = "1 serving"
)

var (
	errMissingMeals = errors.New(`required field "meals" is missing`)
	errNotAnObject  = errors.New("reply is not a JSON object")
)

// flexNumber accepts numbers, numeric strings such as "15 minutes", and
// objects with a Value field. Anything else reads as 0.
type flexNumber float64

func (f *flexNumber) UnmarshalJSON(data []byte) error {
	var num float64
	if err := json.Unmarshal(data, &num); err == nil {
		*f = flexNumber(num)
		return nil
	}

	var str string
	if err := json.Unmarshal(data, &str); err == nil {
		*f = flexNumber(leadingNumber(str))
		return nil
	}

	var obj struct {
		Value json.RawMessage `json:"Value"`
	}
	if err := json.Unmarshal(data, &obj); err == nil && len(obj.Value) > 0 {
		return f.UnmarshalJSON(obj.Value)
	}

	*f = 0
	return nil
}

func leadingNumber(s string) float64 {
	s = strings.TrimSpace(s)
	end := 0
	for end < len(s) && (s[end] == '.' || s[end] == '-' || (s[end] >= '0' && s[end] <= '9')) {
		end++
	}
	v, err := strconv.ParseFloat(s[:end], 64)
	if err != nil {
		return 0
	}
	return v
}

type rawNutrition struct {
	Calories flexNumber `json:"calories"`
	Protein  flexNumber `json:"protein"`
	Carbs    flexNumber `json:"carbs"`
	Fat      flexNumber `json:"fat"`
	Fiber    flexNumber `json:"fiber"`
	Sugar    flexNumber `json:"sugar"`
	Sodium   flexNumber `json:"sodium"`
}

func (n *rawNutrition) toModel() models.NutritionInfo {
	if n == nil {
		return models.NutritionInfo{}
	}
	return models.NutritionInfo{
		Calories: nonNegative(n.Calories),
		Protein:  nonNegative(n.Protein),
		Carbs:    nonNegative(n.Carbs),
		Fat:      nonNegative(n.Fat),
		Fiber:    nonNegative(n.Fiber),
		Sugar:    nonNegative(n.Sugar),
		Sodium:   nonNegative(n.Sodium),
	}
}

func nonNegative(f flexNumber) float64 {
	if f < 0 {
		return 0
	}
	return float64(f)
}

type rawMeal struct {
	Name            string        `json:"name"`
	Type            string        `json:"type"`
	PreparationTime flexNumber    `json:"preparationTime"`
	Instructions    []string      `json:"instructions"`
	TotalNutrition  *rawNutrition `json:"totalNutrition"`
	Nutrition       *rawNutrition `json:"nutrition"`
}

type rawDay struct {
	Breakfast *rawMeal  `json:"breakfast"`
	Lunch     *rawMeal  `json:"lunch"`
	Dinner    *rawMeal  `json:"dinner"`
	Snacks    []rawMeal `json:"snacks"`
}

type rawPlan struct {
	Name            string          `json:"name"`
	TargetNutrition *rawNutrition   `json:"targetNutrition"`
	Meals           json.RawMessage `json:"meals"`
}

// extractJSON strips markdown fences and surrounding prose from a reply
func extractJSON(raw string) string {
	s := strings.TrimSpace(raw)
	if strings.HasPrefix(s, "```") {
		s = strings.TrimPrefix(s, "```json")
		s = strings.TrimPrefix(s, "```")
		s = strings.TrimSuffix(strings.TrimSpace(s), "```")
		s = strings.TrimSpace(s)
	}
	if strings.HasPrefix(s, "{") {
		return s
	}
	start := strings.Index(s, "{")
	end := strings.LastIndex(s, "}")
	if start == -1 || end <= start {
		return s
	}
	return s[start : end+1]
}

// ParseMealPlan turns a meal plan reply into a MealPlan starting at now.
// It fails with a ParseError when the reply is not JSON or has no meals field.
// Missing meals in a day are left empty and missing nutrition reads as zero.
func ParseMealPlan(raw string, profile *models.UserProfile, now time.Time) (*models.MealPlan, error) {
	var parsed rawPlan
	if err := json.Unmarshal([]byte(extractJSON(raw)), &parsed); err != nil {
		return nil, &ParseError{Target: "meal plan", Err: err}
	}

	meals := strings.TrimSpace(string(parsed.Meals))
	if meals == "" || meals == "null" {
		return nil, &ParseError{Target: "meal plan", Err: errMissingMeals}
	}

	var days []*rawDay
	if err := json.Unmarshal(parsed.Meals, &days); err != nil {
		return nil, &ParseError{Target: "meal plan", Err: fmt.Errorf("invalid meals field: %w", err)}
	}

	stamp := now.UnixMilli()
	dailyMeals := make([]models.DailyMeals, len(days))
	for i, day := range days {
		dm := models.DailyMeals{
			Day:    i + 1,
			Date:   now.AddDate(0, 0, i),
			Snacks: []models.Meal{},
		}
		if day != nil {
			dm.Breakfast = convertMeal(day.Breakfast, models.MealBreakfast, fmt.Sprintf("meal_%d_b_%d", stamp, i))
			dm.Lunch = convertMeal(day.Lunch, models.MealLunch, fmt.Sprintf("meal_%d_l_%d", stamp, i))
			dm.Dinner = convertMeal(day.Dinner, models.MealDinner, fmt.Sprintf("meal_%d_d_%d", stamp, i))
			for j := range day.Snacks {
				snack := convertMeal(&day.Snacks[j], models.MealSnack, fmt.Sprintf("meal_%d_s_%d_%d", stamp, i, j))
				dm.Snacks = append(dm.Snacks, *snack)
			}
		}
		dailyMeals[i] = dm
	}

	plan := &models.MealPlan{
		ID:        uuid.New(),
		Name:      parsed.Name,
		StartDate: now,
		EndDate:   now,
		Meals:     dailyMeals,
		CreatedAt: now,
	}
	if len(dailyMeals) > 0 {
		plan.EndDate = now.AddDate(0, 0, len(dailyMeals)-1)
	}
	if plan.Name == "" {
		plan.Name = DefaultPlanName
	}
	if profile != nil {
		plan.ProfileID = profile.ID
	}
	if parsed.TargetNutrition != nil {
		plan.TargetNutrition = parsed.TargetNutrition.toModel()
	} else if profile != nil {
		plan.TargetNutrition = nutrition.TargetNutrition(profile)
	}

	return plan, nil
}

func convertMeal(m *rawMeal, slot models.MealType, id string) *models.Meal {
	if m == nil {
		return nil
	}
	mealType := models.MealType(strings.ToLower(m.Type))
	if mealType == "" {
		mealType = slot
	}
	totals := m.TotalNutrition
	if totals == nil {
		totals = m.Nutrition
	}
	instructions := m.Instructions
	if instructions == nil {
		instructions = []string{}
	}
	return &models.Meal{
		ID:              id,
		Name:            m.Name,
		Type:            mealType,
		Foods:           []models.Food{},
		TotalNutrition:  totals.toModel(),
		PreparationTime: int(m.PreparationTime),
		Instructions:    instructions,
	}
}

// rawIngredient accepts either a structured ingredient or a plain string
type rawIngredient struct {
	Name     string     `json:"name"`
	Amount   flexNumber `json:"amount"`
	Unit     string     `json:"unit"`
	Optional bool       `json:"optional"`
}

func (r *rawIngredient) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err == nil {
		r.Name = str
		return nil
	}
	type plain rawIngredient
	var p plain
	if err := json.Unmarshal(data, &p); err != nil {
		return err
	}
	*r = rawIngredient(p)
	return nil
}

type rawRecipe struct {
	Name            string          `json:"name"`
	Description     string          `json:"description"`
	Ingredients     []rawIngredient `json:"ingredients"`
	Instructions    []string        `json:"instructions"`
	PreparationTime flexNumber      `json:"preparationTime"`
	CookingTime     flexNumber      `json:"cookingTime"`
	Servings        flexNumber      `json:"servings"`
	Difficulty      string          `json:"difficulty"`
	Nutrition       *rawNutrition   `json:"nutrition"`
	Tags            []string        `json:"tags"`
}

// ParseRecipe turns a recipe reply into a Recipe, filling omitted fields
// with defaults. It fails with a ParseError when the reply is not a JSON object.
func ParseRecipe(raw string) (*models.Recipe, error) {
	var decoded *rawRecipe
	if err := json.Unmarshal([]byte(extractJSON(raw)), &decoded); err != nil {
		return nil, &ParseError{Target: "recipe", Err: err}
	}
	if decoded == nil {
		return nil, &ParseError{Target: "recipe", Err: errNotAnObject}
	}
	parsed := *decoded

	recipe := &models.Recipe{
		ID:              uuid.New(),
		Name:            parsed.Name,
		Description:     parsed.Description,
		Ingredients:     make([]models.Ingredient, 0, len(parsed.Ingredients)),
		Instructions:    models.StringList{},
		PreparationTime: int(parsed.PreparationTime),
		CookingTime:     int(parsed.CookingTime),
		Servings:        int(parsed.Servings),
		Difficulty:      normalizeDifficulty(parsed.Difficulty),
		Nutrition:       parsed.Nutrition.toModel(),
		Tags:            models.StringList{},
	}

	for _, ing := range parsed.Ingredients {
		recipe.Ingredients = append(recipe.Ingredients, models.Ingredient{
			Name:     ing.Name,
			Amount:   float64(ing.Amount),
			Unit:     ing.Unit,
			Optional: ing.Optional,
		})
	}
	if parsed.Instructions != nil {
		recipe.Instructions = parsed.Instructions
	}
	if parsed.Tags != nil {
		recipe.Tags = parsed.Tags
	}

	if recipe.Name == "" {
		recipe.Name = DefaultRecipeName
	}
	if recipe.Description == "" {
		recipe.Description = DefaultRecipeDescription
	}
	if recipe.PreparationTime <= 0 {
		recipe.PreparationTime = DefaultPrepMinutes
	}
	if recipe.CookingTime <= 0 {
		recipe.CookingTime = DefaultCookMinutes
	}
	if recipe.Servings <= 0 {
		recipe.Servings = DefaultServings
	}

	return recipe, nil
}

func normalizeDifficulty(d string) models.Difficulty {
	switch models.Difficulty(strings.ToLower(strings.TrimSpace(d))) {
	case models.DifficultyEasy:
		return models.DifficultyEasy
	case models.DifficultyHard:
		return models.DifficultyHard
	default:
		return models.DifficultyMedium
	}
}

type rawFoodAnalysis struct {
	FoodName          string        `json:"foodName"`
	EstimatedCalories flexNumber    `json:"estimatedCalories"`
	Nutrition         *rawNutrition `json:"nutrition"`
	ServingSize       string        `json:"servingSize"`
}

// FallbackFoodAnalysis is the zero-nutrition record used when analysis fails
func FallbackFoodAnalysis(name string) *models.FoodAnalysis {
	return &models.FoodAnalysis{
		FoodName:    name,
		ServingSize: DefaultServingSize,
	}
}

// ParseFoodAnalysis reads a food analysis reply. It never fails: an
// unreadable reply yields a zero-nutrition record named fallbackName.
func ParseFoodAnalysis(raw, fallbackName string) *models.FoodAnalysis {
	var parsed rawFoodAnalysis
	if err := json.Unmarshal([]byte(extractJSON(raw)), &parsed); err != nil {
		log.Printf("[AIService] %v; using zero-nutrition record", &ParseError{Target: "food analysis", Err: err})
		return FallbackFoodAnalysis(fallbackName)
	}

	n := parsed.Nutrition.toModel()
	analysis := &models.FoodAnalysis{
		FoodName:          parsed.FoodName,
		EstimatedCalories: nonNegative(parsed.EstimatedCalories),
		Nutrition: models.AnalysisNutrition{
			Protein: n.Protein,
			Carbs:   n.Carbs,
			Fat:     n.Fat,
			Fiber:   n.Fiber,
		},
		ServingSize: parsed.ServingSize,
	}
	if analysis.FoodName == "" {
		analysis.FoodName = fallbackName
	}
	if analysis.ServingSize == "" {
		analysis.ServingSize = DefaultServingSize
	}
	return analysis
}
