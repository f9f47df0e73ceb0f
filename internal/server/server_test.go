package server

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pageza/nutripal/backend/config"
	"github.com/pageza/nutripal/backend/internal/api"
	"github.com/pageza/nutripal/backend/internal/service"
	"github.com/pageza/nutripal/backend/internal/testhelpers"
)

func testServer(t *testing.T, port string) *Server {
	db := testhelpers.SetupSQLite(t)
	cfg := &config.Config{
		ServerHost:  "127.0.0.1",
		ServerPort:  port,
		CORSOrigins: []string{"http://localhost:3000"},
	}
	foodLogs := service.NewFoodLogService(db)
	recipes := service.NewRecipeService(db, service.MacroEmbeddingService{})
	ai := service.NewAIService(service.NewHTTPCompleter("", "", ""), time.Second)
	return New(cfg, api.Services{
		AI:        ai,
		Sessions:  service.NewSessionService("test-secret"),
		Profiles:  service.NewProfileService(db),
		FoodLogs:  foodLogs,
		MealPlans: service.NewMealPlanService(db),
		Recipes:   recipes,
		Chat:      service.NewChatService(db, ai),
		Badges:    service.NewBadgeService(db, foodLogs, recipes),
	})
}

func TestNew(t *testing.T) {
	server := testServer(t, "8080")
	assert.Equal(t, "127.0.0.1:8080", server.Addr())

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	server.Handler().ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "healthy")

	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/api/v1/profile", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	server.Handler().ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "http://localhost:3000", w.Header().Get("Access-Control-Allow-Origin"))
}

func TestRunStopsOnContextCancel(t *testing.T) {
	server := testServer(t, "0")

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- server.Run(ctx)
	}()

	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(2 * ShutdownTimeout):
		t.Fatal("server did not shut down")
	}
}
