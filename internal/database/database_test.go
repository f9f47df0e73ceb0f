package database

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
	"github.com/pageza/nutripal/backend/config"
	"github.com/pageza/nutripal/backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpenAndMigrateSQLite(t *testing.T) {
	cfg := &config.Config{
		DBDriver:   "sqlite",
		SQLitePath: filepath.Join(t.TempDir(), "nutripal.db"),
	}

	db, err := Open(cfg)
	require.NoError(t, err)
	require.NoError(t, Migrate(db))
	require.NoError(t, HealthCheck(context.Background(), db))

	profile := models.UserProfile{
		ID:                 uuid.New(),
		Name:               "Test User",
		Age:                30,
		Weight:             70,
		Height:             175,
		ActivityLevel:      models.ActivityModerate,
		DietaryPreferences: models.StringList{"vegetarian"},
		HealthGoals:        []models.HealthGoal{models.GoalWeightLoss},
		Allergies:          models.StringList{},
	}
	require.NoError(t, db.Create(&profile).Error)

	var loaded models.UserProfile
	require.NoError(t, db.First(&loaded, "id = ?", profile.ID).Error)
	assert.Equal(t, models.StringList{"vegetarian"}, loaded.DietaryPreferences)
	assert.True(t, loaded.HasGoal(models.GoalWeightLoss))
}

func TestOpenRejectsUnknownDriver(t *testing.T) {
	_, err := Open(&config.Config{DBDriver: "oracle"})
	assert.Error(t, err)
}

func TestNewRedisClientRequiresConfig(t *testing.T) {
	_, err := NewRedisClient(context.Background(), &config.Config{})
	assert.Error(t, err)
}
