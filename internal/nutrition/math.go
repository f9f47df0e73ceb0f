// Package nutrition holds the pure nutrition math: BMI, calorie and macro
// targets, hydration and daily aggregation of food logs.
package nutrition

import (
	"math"

	"github.com/pageza/nutripal/backend/internal/models"
)

// MinDailyCalories is the floor applied to every calorie target
const MinDailyCalories = 1200

// WaterMlPerKg is the hydration target per kilogram of body weight
const WaterMlPerKg = 35

// BMICategory is the WHO band a BMI falls into
type BMICategory string

const (
	Underweight BMICategory = "Underweight"
	Normal      BMICategory = "Normal"
	Overweight  BMICategory = "Overweight"
	Obese       BMICategory = "Obese"
)

var activityMultipliers = map[models.ActivityLevel]float64{
	models.ActivitySedentary:  1.2,
	models.ActivityLight:      1.375,
	models.ActivityModerate:   1.55,
	models.ActivityActive:     1.725,
	models.ActivityVeryActive: 1.9,
}

var goalAdjustments = map[models.HealthGoal]float64{
	models.GoalWeightLoss: -500,
	models.GoalWeightGain: 500,
	models.GoalMuscleGain: 300,
}

// MacroSplit is the share of calories from protein, carbs and fat
type MacroSplit struct {
	Protein float64
	Carbs   float64
	Fat     float64
}

var (
	defaultSplit    = MacroSplit{Protein: 0.25, Carbs: 0.45, Fat: 0.30}
	muscleGainSplit = MacroSplit{Protein: 0.30, Carbs: 0.40, Fat: 0.30}
	weightLossSplit = MacroSplit{Protein: 0.30, Carbs: 0.35, Fat: 0.35}
)

// BMI returns weight / height² with height in metres. No clamping is applied.
func BMI(weightKg, heightCm float64) float64 {
	heightM := heightCm / 100
	return weightKg / (heightM * heightM)
}

// BMICategoryFor buckets a BMI at 18.5, 25 and 30
func BMICategoryFor(bmi float64) BMICategory {
	switch {
	case bmi < 18.5:
		return Underweight
	case bmi < 25:
		return Normal
	case bmi < 30:
		return Overweight
	default:
		return Obese
	}
}

// BMR is the Mifflin-St Jeor basal estimate
func BMR(weightKg, heightCm float64, age int) float64 {
	return 10*weightKg + 6.25*heightCm - 5*float64(age) + 5
}

// ActivityMultiplier returns the coefficient for a tier; unknown tiers count as sedentary
func ActivityMultiplier(level models.ActivityLevel) float64 {
	if m, ok := activityMultipliers[level]; ok {
		return m
	}
	return activityMultipliers[models.ActivitySedentary]
}

// DailyCalorieTarget computes the rounded daily calorie need for a profile.
// Each distinct goal adjusts the figure once, in the order listed. The
// result is never below MinDailyCalories.
func DailyCalorieTarget(p *models.UserProfile) int {
	if p == nil {
		return MinDailyCalories
	}
	calories := BMR(p.Weight, p.Height, p.Age) * ActivityMultiplier(p.ActivityLevel)
	for _, goal := range models.UniqueGoals(p.HealthGoals) {
		calories += goalAdjustments[goal]
	}

	if math.IsNaN(calories) || math.IsInf(calories, 0) {
		return MinDailyCalories
	}
	rounded := math.Round(calories)
	if rounded < MinDailyCalories {
		return MinDailyCalories
	}
	if rounded > math.MaxInt32 {
		return math.MaxInt32
	}
	return int(rounded)
}

// SplitFor returns the macro split for a goal list. The first goal that
// has its own split wins; goals do not stack here.
func SplitFor(goals []models.HealthGoal) MacroSplit {
	for _, g := range goals {
		switch g {
		case models.GoalMuscleGain:
			return muscleGainSplit
		case models.GoalWeightLoss:
			return weightLossSplit
		}
	}
	return defaultSplit
}

// MacroTargets converts a calorie figure into gram targets
func MacroTargets(calories int, goals []models.HealthGoal) models.MacroTargets {
	split := SplitFor(goals)
	c := float64(calories)
	return models.MacroTargets{
		Protein: int(math.Round(c * split.Protein / 4)),
		Carbs:   int(math.Round(c * split.Carbs / 4)),
		Fat:     int(math.Round(c * split.Fat / 9)),
	}
}

// DailyWaterTargetMl is 35 ml per kilogram, rounded
func DailyWaterTargetMl(weightKg float64) int {
	return int(math.Round(WaterMlPerKg * weightKg))
}

// Targets bundles every derived figure for a profile
type Targets struct {
	BMI         float64             `json:"bmi"`
	BMICategory BMICategory         `json:"bmi_category"`
	Calories    int                 `json:"calories"`
	Macros      models.MacroTargets `json:"macros"`
	WaterMl     int                 `json:"water_ml"`
}

// TargetsFor computes every derived metric for a profile
func TargetsFor(p *models.UserProfile) Targets {
	bmi := BMI(p.Weight, p.Height)
	calories := DailyCalorieTarget(p)
	return Targets{
		BMI:         bmi,
		BMICategory: BMICategoryFor(bmi),
		Calories:    calories,
		Macros:      MacroTargets(calories, p.HealthGoals),
		WaterMl:     DailyWaterTargetMl(p.Weight),
	}
}

// TargetNutrition expresses the profile's daily targets as NutritionInfo.
// Fiber, sugar and sodium use general guideline values.
func TargetNutrition(p *models.UserProfile) models.NutritionInfo {
	calories := DailyCalorieTarget(p)
	macros := MacroTargets(calories, p.HealthGoals)
	return models.NutritionInfo{
		Calories: float64(calories),
		Protein:  float64(macros.Protein),
		Carbs:    float64(macros.Carbs),
		Fat:      float64(macros.Fat),
		Fiber:    25,
		Sugar:    50,
		Sodium:   2300,
	}
}
