package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pageza/nutripal/backend/internal/models"
	"github.com/pageza/nutripal/backend/internal/service"
)

// CreateProfileRequest is the onboarding form
type CreateProfileRequest struct {
	Name               string               `json:"name"`
	Age                int                  `json:"age" binding:"required,gt=0,lt=130"`
	Weight             float64              `json:"weight" binding:"required,gt=0"`
	Height             float64              `json:"height" binding:"required,gt=0"`
	ActivityLevel      models.ActivityLevel `json:"activity_level"`
	DietaryPreferences []string             `json:"dietary_preferences"`
	HealthGoals        []models.HealthGoal  `json:"health_goals"`
	Allergies          []string             `json:"allergies"`
}

// ProfileHandler serves onboarding, profile edits and dashboard metrics
type ProfileHandler struct {
	profiles service.IProfileService
	sessions service.ISessionService
}

// NewProfileHandler creates a new ProfileHandler
func NewProfileHandler(profiles service.IProfileService, sessions service.ISessionService) *ProfileHandler {
	return &ProfileHandler{
		profiles: profiles,
		sessions: sessions,
	}
}

// RegisterRoutes registers the profile routes
func (h *ProfileHandler) RegisterRoutes(router *gin.RouterGroup, auth gin.HandlerFunc) {
	router.POST("/profile", h.CreateProfile)
	profile := router.Group("/profile")
	profile.Use(auth)
	{
		profile.GET("", h.GetProfile)
		profile.PUT("", h.UpdateProfile)
		profile.GET("/metrics", h.GetMetrics)
	}
}

func validActivity(level models.ActivityLevel) bool {
	for _, l := range models.ValidActivityLevels {
		if l == level {
			return true
		}
	}
	return false
}

// CreateProfile stores the onboarding profile and returns a session token
func (h *ProfileHandler) CreateProfile(c *gin.Context) {
	var req CreateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.ActivityLevel == "" {
		req.ActivityLevel = models.ActivitySedentary
	}
	if !validActivity(req.ActivityLevel) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid activity level"})
		return
	}

	profile, err := h.profiles.CreateProfile(c.Request.Context(), &models.UserProfile{
		Name:               req.Name,
		Age:                req.Age,
		Weight:             req.Weight,
		Height:             req.Height,
		ActivityLevel:      req.ActivityLevel,
		DietaryPreferences: req.DietaryPreferences,
		HealthGoals:        req.HealthGoals,
		Allergies:          req.Allergies,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	token, err := h.sessions.GenerateToken(profile.ID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"profile": profile,
		"token":   token,
	})
}

// GetProfile returns the authenticated profile
func (h *ProfileHandler) GetProfile(c *gin.Context) {
	profile, ok := currentProfile(c, h.profiles)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, profile)
}

// UpdateProfile applies an explicit profile edit
func (h *ProfileHandler) UpdateProfile(c *gin.Context) {
	id, ok := profileID(c)
	if !ok {
		return
	}

	var req models.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.ActivityLevel != nil && !validActivity(*req.ActivityLevel) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid activity level"})
		return
	}
	if (req.Age != nil && *req.Age <= 0) || (req.Weight != nil && *req.Weight <= 0) || (req.Height != nil && *req.Height <= 0) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "age, weight and height must be positive"})
		return
	}

	profile, err := h.profiles.UpdateProfile(c.Request.Context(), id, &req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, profile)
}

// GetMetrics returns BMI and daily targets for the dashboard
func (h *ProfileHandler) GetMetrics(c *gin.Context) {
	profile, ok := currentProfile(c, h.profiles)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, h.profiles.Metrics(profile))
}
