package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/pageza/nutripal/backend/internal/service"
)

// GenerateMealPlanRequest asks for a new plan
type GenerateMealPlanRequest struct {
	Days        int      `json:"days"`
	Preferences []string `json:"preferences"`
}

// MealPlanHandler serves meal plan generation and exports
type MealPlanHandler struct {
	profiles  service.IProfileService
	mealPlans service.IMealPlanService
	ai        service.AIServiceInterface
	export    service.IExportService
}

// NewMealPlanHandler creates a new MealPlanHandler. export may be nil.
func NewMealPlanHandler(profiles service.IProfileService, mealPlans service.IMealPlanService, ai service.AIServiceInterface, export service.IExportService) *MealPlanHandler {
	return &MealPlanHandler{
		profiles:  profiles,
		mealPlans: mealPlans,
		ai:        ai,
		export:    export,
	}
}

// RegisterRoutes registers the meal plan routes
func (h *MealPlanHandler) RegisterRoutes(router *gin.RouterGroup, auth gin.HandlerFunc, aiLimit []gin.HandlerFunc) {
	plans := router.Group("/meal-plans")
	{
		plans.POST("/generate", withMiddleware(aiLimit, h.GeneratePlan)...)
		plans.GET("/current", auth, h.CurrentPlan)
		plans.POST("/:id/export", auth, h.ExportPlan)
	}
}

// GeneratePlan creates and stores a plan. Model failures produce the
// fallback plan; only a missing credential is an error.
func (h *MealPlanHandler) GeneratePlan(c *gin.Context) {
	profile, ok := currentProfile(c, h.profiles)
	if !ok {
		return
	}

	var req GenerateMealPlanRequest
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
	}

	plan, err := h.ai.GenerateMealPlan(c.Request.Context(), profile, req.Days, req.Preferences)
	if err != nil {
		respondError(c, err)
		return
	}
	plan.ProfileID = profile.ID

	saved, err := h.mealPlans.SavePlan(c.Request.Context(), plan)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, saved)
}

// CurrentPlan returns the newest plan
func (h *MealPlanHandler) CurrentPlan(c *gin.Context) {
	id, ok := profileID(c)
	if !ok {
		return
	}
	plan, err := h.mealPlans.CurrentPlan(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, plan)
}

// ExportPlan uploads a plan to object storage and returns a download link
func (h *MealPlanHandler) ExportPlan(c *gin.Context) {
	id, ok := profileID(c)
	if !ok {
		return
	}
	if h.export == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "export storage is not configured"})
		return
	}
	planID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid meal plan id"})
		return
	}

	plan, err := h.mealPlans.GetPlan(c.Request.Context(), id, planID)
	if err != nil {
		respondError(c, err)
		return
	}
	url, err := h.export.ExportMealPlan(c.Request.Context(), plan)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"url":        url,
		"expires_in": int(service.ExportURLTTL.Seconds()),
	})
}
