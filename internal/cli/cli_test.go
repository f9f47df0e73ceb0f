package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pageza/nutripal/backend/config"
	"github.com/pageza/nutripal/backend/internal/badge"
	"github.com/pageza/nutripal/backend/internal/models"
	"github.com/pageza/nutripal/backend/internal/nutrition"
	"github.com/pageza/nutripal/backend/internal/testhelpers"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	// flag values persist on the package-level command between runs
	formatFlag = "text"
	targetGoals = nil
	badgeCategory = ""

	var out bytes.Buffer
	RootCmd.SetOut(&out)
	RootCmd.SetErr(&out)
	RootCmd.SetArgs(args)
	err := RootCmd.Execute()
	return out.String(), err
}

func TestTargetsText(t *testing.T) {
	out, err := run(t, "targets", "--weight", "70", "--height", "175", "--age", "30", "--activity", "moderate", "--goal", "maintenance")
	require.NoError(t, err)
	assert.Contains(t, out, "BMI:      22.9 (Normal)")
	assert.Contains(t, out, "Calories: 2556 kcal")
	assert.Contains(t, out, "Water:    2450 ml")
}

func TestTargetsJSON(t *testing.T) {
	out, err := run(t, "targets", "--weight", "70", "--height", "175", "--age", "30", "--activity", "moderate", "--goal", "weight_loss", "--format", "json")
	require.NoError(t, err)

	var targets nutrition.Targets
	require.NoError(t, json.Unmarshal([]byte(out), &targets))
	assert.Equal(t, 2056, targets.Calories)
}

func TestTargetsRejectsNonPositive(t *testing.T) {
	_, err := run(t, "targets", "--weight", "0", "--height", "175", "--age", "30")
	assert.Error(t, err)
}

func TestBadges(t *testing.T) {
	out, err := run(t, "badges")
	require.NoError(t, err)
	for _, b := range badge.DefaultCatalog() {
		assert.Contains(t, out, b.ID)
	}

	out, err = run(t, "badges", "--category", "hydration", "--format", "json")
	require.NoError(t, err)
	var badges []models.Badge
	require.NoError(t, json.Unmarshal([]byte(out), &badges))
	require.Len(t, badges, 1)
	assert.Equal(t, models.BadgeHydration, badges[0].Category)
}

func TestBuildServicesWithoutOptionalBackends(t *testing.T) {
	db := testhelpers.SetupSQLite(t)
	cfg := &config.Config{AIProvider: "openai", JWTSecret: "secret"}

	svc := buildServices(context.Background(), cfg, db, nil)
	assert.NotNil(t, svc.AI)
	assert.NotNil(t, svc.Badges)
	assert.Nil(t, svc.Drafts)
	assert.Nil(t, svc.Export)
	assert.Nil(t, svc.RateLimiter)
}
