package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// ActivityLevel is one of five ordered activity tiers
type ActivityLevel string

const (
	ActivitySedentary  ActivityLevel = "sedentary"
	ActivityLight      ActivityLevel = "light"
	ActivityModerate   ActivityLevel = "moderate"
	ActivityActive     ActivityLevel = "active"
	ActivityVeryActive ActivityLevel = "very_active"
)

// ValidActivityLevels lists the tiers from least to most active
var ValidActivityLevels = []ActivityLevel{
	ActivitySedentary,
	ActivityLight,
	ActivityModerate,
	ActivityActive,
	ActivityVeryActive,
}

// HealthGoal is a user goal that shifts calorie and macro targets
type HealthGoal string

const (
	GoalWeightLoss    HealthGoal = "weight_loss"
	GoalWeightGain    HealthGoal = "weight_gain"
	GoalMuscleGain    HealthGoal = "muscle_gain"
	GoalMaintenance   HealthGoal = "maintenance"
	GoalBetterHealth  HealthGoal = "better_health"
	GoalMoreEnergy    HealthGoal = "more_energy"
	GoalHeartHealth   HealthGoal = "heart_health"
	GoalDigestiveCare HealthGoal = "digestive_health"
)

// UserProfile is the single profile maintained by the app
type UserProfile struct {
	ID                 uuid.UUID                       `gorm:"type:varchar(36);primarykey" json:"id"`
	Name               string                          `gorm:"size:100" json:"name"`
	Age                int                             `gorm:"not null" json:"age"`
	Weight             float64                         `gorm:"not null" json:"weight"`
	Height             float64                         `gorm:"not null" json:"height"`
	ActivityLevel      ActivityLevel                   `gorm:"size:20;not null;default:'sedentary'" json:"activity_level"`
	DietaryPreferences StringList                      `json:"dietary_preferences"`
	HealthGoals        datatypes.JSONSlice[HealthGoal] `json:"health_goals"`
	Allergies          StringList                      `json:"allergies"`
	CreatedAt          time.Time                       `json:"created_at"`
	UpdatedAt          time.Time                       `json:"updated_at"`
}

// UniqueGoals drops repeated goals, keeping the first occurrence of each
func UniqueGoals(goals []HealthGoal) []HealthGoal {
	out := make([]HealthGoal, 0, len(goals))
	seen := make(map[HealthGoal]bool, len(goals))
	for _, g := range goals {
		if seen[g] {
			continue
		}
		seen[g] = true
		out = append(out, g)
	}
	return out
}

// HasGoal reports whether the profile lists the goal
func (p *UserProfile) HasGoal(goal HealthGoal) bool {
	for _, g := range p.HealthGoals {
		if g == goal {
			return true
		}
	}
	return false
}

// UpdateProfileRequest carries an explicit profile edit; nil fields are left alone
type UpdateProfileRequest struct {
	Name               *string        `json:"name"`
	Age                *int           `json:"age"`
	Weight             *float64       `json:"weight"`
	Height             *float64       `json:"height"`
	ActivityLevel      *ActivityLevel `json:"activity_level"`
	DietaryPreferences []string       `json:"dietary_preferences"`
	HealthGoals        []HealthGoal   `json:"health_goals"`
	Allergies          []string       `json:"allergies"`
}
