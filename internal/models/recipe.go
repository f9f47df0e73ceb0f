package models

import (
	"time"

	"github.com/google/uuid"
	pgvector "github.com/pgvector/pgvector-go"
	"gorm.io/datatypes"
)

// Difficulty is the effort tier of a recipe
type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

// Ingredient is one line of a recipe's ingredient list
type Ingredient struct {
	Name     string  `json:"name"`
	Amount   float64 `json:"amount"`
	Unit     string  `json:"unit"`
	Optional bool    `json:"optional"`
}

// Recipe is a generated or saved recipe. Nutrition is per serving.
type Recipe struct {
	ID              uuid.UUID                       `gorm:"type:varchar(36);primarykey" json:"id"`
	ProfileID       uuid.UUID                       `gorm:"type:varchar(36);index" json:"profile_id"`
	Name            string                          `gorm:"size:255;not null" json:"name"`
	Description     string                          `gorm:"type:text" json:"description"`
	Ingredients     datatypes.JSONSlice[Ingredient] `json:"ingredients"`
	Instructions    StringList                      `json:"instructions"`
	PreparationTime int                             `json:"preparation_time"`
	CookingTime     int                             `json:"cooking_time"`
	Servings        int                             `json:"servings"`
	Difficulty      Difficulty                      `gorm:"size:10;not null;default:'medium'" json:"difficulty"`
	Nutrition       NutritionInfo                   `gorm:"embedded;embeddedPrefix:nutrition_" json:"nutrition"`
	Tags            StringList                      `json:"tags"`
	Embedding       pgvector.Vector                 `gorm:"type:vector(3)" json:"-"`
	CreatedAt       time.Time                       `json:"created_at"`
	UpdatedAt       time.Time                       `json:"updated_at"`
}
