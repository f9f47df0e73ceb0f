package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// Meal is a named dish in a plan. Foods may be empty when the meal came from the model.
type Meal struct {
	ID              string        `json:"id"`
	Name            string        `json:"name"`
	Type            MealType      `json:"type"`
	Foods           []Food        `json:"foods"`
	TotalNutrition  NutritionInfo `json:"total_nutrition"`
	PreparationTime int           `json:"preparation_time"`
	Instructions    []string      `json:"instructions"`
}

// DailyMeals holds the meals for one day of a plan
type DailyMeals struct {
	Day       int       `json:"day"`
	Date      time.Time `json:"date"`
	Breakfast *Meal     `json:"breakfast,omitempty"`
	Lunch     *Meal     `json:"lunch,omitempty"`
	Dinner    *Meal     `json:"dinner,omitempty"`
	Snacks    []Meal    `json:"snacks"`
}

// TotalNutrition sums the nutrition of every meal present that day
func (d DailyMeals) TotalNutrition() NutritionInfo {
	var total NutritionInfo
	for _, m := range []*Meal{d.Breakfast, d.Lunch, d.Dinner} {
		if m != nil {
			total = total.Add(m.TotalNutrition)
		}
	}
	for _, s := range d.Snacks {
		total = total.Add(s.TotalNutrition)
	}
	return total
}

// MealPlan is a generated multi-day plan. A newer plan supersedes older ones.
// Meals may be empty when the plan is the degraded fallback.
type MealPlan struct {
	ID              uuid.UUID                       `gorm:"type:varchar(36);primarykey" json:"id"`
	ProfileID       uuid.UUID                       `gorm:"type:varchar(36);not null;index" json:"user_id"`
	Name            string                          `gorm:"size:255;not null" json:"name"`
	StartDate       time.Time                       `json:"start_date"`
	EndDate         time.Time                       `json:"end_date"`
	Meals           datatypes.JSONSlice[DailyMeals] `json:"meals"`
	TargetNutrition NutritionInfo                   `gorm:"embedded;embeddedPrefix:target_" json:"target_nutrition"`
	Fallback        bool                            `gorm:"not null;default:false" json:"fallback"`
	CreatedAt       time.Time                       `json:"created_at"`
}
