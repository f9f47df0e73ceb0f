package api

import (
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/pageza/nutripal/backend/internal/middleware"
	"github.com/pageza/nutripal/backend/internal/models"
	"github.com/pageza/nutripal/backend/internal/service"
)

// DateLayout is the format of date query parameters
const DateLayout = "2006-01-02"

// Services bundles everything the HTTP handlers depend on.
// Drafts, Export and RateLimiter are optional.
type Services struct {
	AI          service.AIServiceInterface
	Sessions    service.ISessionService
	Profiles    service.IProfileService
	FoodLogs    service.IFoodLogService
	MealPlans   service.IMealPlanService
	Recipes     service.IRecipeService
	Drafts      service.IDraftService
	Chat        service.IChatService
	Badges      service.IBadgeService
	Export      service.IExportService
	RateLimiter *middleware.RateLimiter
}

// HealthCheck returns the health status of the API
func HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"message": "NutriPal API is running",
		"version": "v1.0.0",
	})
}

// RegisterRoutes registers all API routes
func RegisterRoutes(router *gin.Engine, svc Services) {
	// Health check endpoint (no auth required)
	router.GET("/health", HealthCheck)

	v1 := router.Group("/api/v1")
	auth := middleware.AuthMiddleware(svc.Sessions)

	aiLimit := []gin.HandlerFunc{auth}
	if svc.RateLimiter != nil {
		aiLimit = append(aiLimit, svc.RateLimiter.RateLimitMiddleware())
		v1.GET("/limits", auth, svc.RateLimiter.StatusHandler)
	} else {
		log.Printf("[API] rate limiting disabled: no redis configured")
	}

	NewProfileHandler(svc.Profiles, svc.Sessions).RegisterRoutes(v1, auth)
	NewFoodLogHandler(svc.Profiles, svc.FoodLogs, svc.AI).RegisterRoutes(v1, auth, aiLimit)
	NewMealPlanHandler(svc.Profiles, svc.MealPlans, svc.AI, svc.Export).RegisterRoutes(v1, auth, aiLimit)
	NewRecipeHandler(svc.Recipes, svc.Drafts, svc.AI).RegisterRoutes(v1, auth, aiLimit)
	NewCoachHandler(svc.Profiles, svc.Chat).RegisterRoutes(v1, auth, aiLimit)
	NewBadgeHandler(svc.Profiles, svc.Badges).RegisterRoutes(v1, auth)
}

// profileID reads the authenticated profile id, writing 401 when it is absent
func profileID(c *gin.Context) (uuid.UUID, bool) {
	id, ok := middleware.ProfileID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return uuid.Nil, false
	}
	return id, true
}

// currentProfile loads the authenticated profile
func currentProfile(c *gin.Context, profiles service.IProfileService) (*models.UserProfile, bool) {
	id, ok := profileID(c)
	if !ok {
		return nil, false
	}
	profile, err := profiles.GetProfile(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return nil, false
	}
	return profile, true
}

// queryDate parses ?date=YYYY-MM-DD, defaulting to today
func queryDate(c *gin.Context) (time.Time, bool) {
	raw := c.Query("date")
	if raw == "" {
		return time.Now().UTC(), true
	}
	day, err := time.ParseInLocation(DateLayout, raw, time.UTC)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "date must be formatted YYYY-MM-DD"})
		return time.Time{}, false
	}
	return day, true
}

// respondError maps domain errors onto HTTP statuses
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
	case errors.Is(err, service.ErrMissingCredential):
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrEmptyMessage):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case service.IsRecoverable(err):
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
	default:
		log.Printf("[API] %s %s failed: %v", c.Request.Method, c.Request.URL.Path, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}

// withMiddleware returns mw followed by handler without sharing mw's backing array
func withMiddleware(mw []gin.HandlerFunc, handler gin.HandlerFunc) []gin.HandlerFunc {
	out := make([]gin.HandlerFunc, 0, len(mw)+1)
	out = append(out, mw...)
	return append(out, handler)
}
