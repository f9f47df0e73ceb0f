package models

import (
	"time"

	"github.com/google/uuid"
)

// BadgeCategory groups badges in the catalog
type BadgeCategory string

const (
	BadgeNutrition   BadgeCategory = "nutrition"
	BadgeHydration   BadgeCategory = "hydration"
	BadgeConsistency BadgeCategory = "consistency"
	BadgeGoals       BadgeCategory = "goals"
)

// CriteriaKind says how a badge's progress is measured
type CriteriaKind string

const (
	CriteriaStreak      CriteriaKind = "streak"
	CriteriaTotal       CriteriaKind = "total"
	CriteriaAchievement CriteriaKind = "achievement"
)

// BadgeCriteria is the rule a badge is earned by
type BadgeCriteria struct {
	Kind   CriteriaKind `json:"type"`
	Target float64      `json:"value"`
	Metric string       `json:"metric"`
}

// Badge is a static catalog entry. It is never mutated.
type Badge struct {
	ID          string        `json:"id"`
	Name        string        `json:"name"`
	Description string        `json:"description"`
	Icon        string        `json:"icon"`
	Category    BadgeCategory `json:"category"`
	Criteria    BadgeCriteria `json:"criteria"`
}

// UserBadge records that a profile earned a badge
type UserBadge struct {
	ID        uuid.UUID `gorm:"type:varchar(36);primarykey" json:"id"`
	ProfileID uuid.UUID `gorm:"type:varchar(36);not null;uniqueIndex:idx_profile_badge" json:"profile_id"`
	BadgeID   string    `gorm:"size:50;not null;uniqueIndex:idx_profile_badge" json:"badge_id"`
	EarnedAt  time.Time `gorm:"not null" json:"earned_at"`
}

// TableName returns the table name for the UserBadge model
func (UserBadge) TableName() string {
	return "user_badges"
}
