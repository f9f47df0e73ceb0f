package models

import (
	"time"

	"github.com/google/uuid"
)

// MealType tags where a food or meal belongs in the day
type MealType string

const (
	MealBreakfast MealType = "breakfast"
	MealLunch     MealType = "lunch"
	MealDinner    MealType = "dinner"
	MealSnack     MealType = "snack"
)

// FoodCategory groups foods; beverages count toward water intake
type FoodCategory string

const (
	CategoryFruits     FoodCategory = "fruits"
	CategoryVegetables FoodCategory = "vegetables"
	CategoryGrains     FoodCategory = "grains"
	CategoryProtein    FoodCategory = "protein"
	CategoryDairy      FoodCategory = "dairy"
	CategoryFats       FoodCategory = "fats"
	CategoryBeverages  FoodCategory = "beverages"
	CategorySnacks     FoodCategory = "snacks"
	CategoryOther      FoodCategory = "other"
)

// Food is a food item with per-serving nutrition
type Food struct {
	Name           string        `gorm:"size:255;not null" json:"name"`
	Nutrition      NutritionInfo `gorm:"embedded" json:"nutrition"`
	ServingSize    string        `gorm:"size:100" json:"serving_size"`
	ServingWeightG float64       `json:"serving_weight_g,omitempty"`
	VolumeMl       float64       `json:"volume_ml,omitempty"`
	Category       FoodCategory  `gorm:"size:30;not null;default:'other'" json:"category"`
}

// FoodLog is an immutable record of eating a quantity of a food.
// ForDate is the calendar day the entry counts toward, independent of LoggedAt.
type FoodLog struct {
	ID        uuid.UUID `gorm:"type:varchar(36);primarykey" json:"id"`
	ProfileID uuid.UUID `gorm:"type:varchar(36);not null;index" json:"profile_id"`
	Food      Food      `gorm:"embedded;embeddedPrefix:food_" json:"food"`
	Quantity  float64   `gorm:"not null;default:1" json:"quantity"`
	MealType  MealType  `gorm:"size:20;not null" json:"meal_type"`
	LoggedAt  time.Time `gorm:"not null" json:"logged_at"`
	ForDate   time.Time `gorm:"not null;index" json:"for_date"`
	CreatedAt time.Time `json:"created_at"`
}

// EffectiveNutrition is the per-serving nutrition times the quantity
func (l FoodLog) EffectiveNutrition() NutritionInfo {
	return l.Food.Nutrition.Scale(l.Quantity)
}

// AnalysisNutrition is the macro breakdown returned by food analysis
type AnalysisNutrition struct {
	Protein float64 `json:"protein"`
	Carbs   float64 `json:"carbs"`
	Fat     float64 `json:"fat"`
	Fiber   float64 `json:"fiber"`
}

// FoodAnalysis is the estimate produced for a free-text or photo description
type FoodAnalysis struct {
	FoodName          string            `json:"food_name"`
	EstimatedCalories float64           `json:"estimated_calories"`
	Nutrition         AnalysisNutrition `json:"nutrition"`
	ServingSize       string            `json:"serving_size"`
}
