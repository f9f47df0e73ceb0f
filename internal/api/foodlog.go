package api

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/pageza/nutripal/backend/internal/models"
	"github.com/pageza/nutripal/backend/internal/service"
)

// LogFoodRequest records a food eaten
type LogFoodRequest struct {
	Food     models.Food     `json:"food"`
	Quantity float64         `json:"quantity"`
	MealType models.MealType `json:"meal_type"`
	LoggedAt *time.Time      `json:"logged_at"`
	Date     string          `json:"date"`
}

// AnalyzeFoodRequest asks for a nutrition estimate and optionally logs it
type AnalyzeFoodRequest struct {
	Description  string          `json:"description" binding:"required"`
	ImageDerived bool            `json:"image_derived"`
	Log          bool            `json:"log"`
	MealType     models.MealType `json:"meal_type"`
	Quantity     float64         `json:"quantity"`
	Date         string          `json:"date"`
}

// FoodLogHandler serves food logging and daily summaries
type FoodLogHandler struct {
	profiles service.IProfileService
	foodLogs service.IFoodLogService
	ai       service.AIServiceInterface
}

// NewFoodLogHandler creates a new FoodLogHandler
func NewFoodLogHandler(profiles service.IProfileService, foodLogs service.IFoodLogService, ai service.AIServiceInterface) *FoodLogHandler {
	return &FoodLogHandler{
		profiles: profiles,
		foodLogs: foodLogs,
		ai:       ai,
	}
}

// RegisterRoutes registers the food log routes
func (h *FoodLogHandler) RegisterRoutes(router *gin.RouterGroup, auth gin.HandlerFunc, aiLimit []gin.HandlerFunc) {
	logs := router.Group("/food-logs")
	{
		logs.POST("", auth, h.LogFood)
		logs.GET("", auth, h.ListForDay)
		logs.GET("/summary", auth, h.DailySummary)
		logs.POST("/analyze", withMiddleware(aiLimit, h.AnalyzeFood)...)
	}
}

func parseBodyDate(c *gin.Context, raw string) (time.Time, bool) {
	if raw == "" {
		return time.Time{}, true
	}
	day, err := time.ParseInLocation(DateLayout, raw, time.UTC)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "date must be formatted YYYY-MM-DD"})
		return time.Time{}, false
	}
	return day, true
}

// LogFood records a food log entry
func (h *FoodLogHandler) LogFood(c *gin.Context) {
	id, ok := profileID(c)
	if !ok {
		return
	}

	var req LogFoodRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if strings.TrimSpace(req.Food.Name) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "food name is required"})
		return
	}
	forDate, ok := parseBodyDate(c, req.Date)
	if !ok {
		return
	}

	entry := &models.FoodLog{
		Food:     req.Food,
		Quantity: req.Quantity,
		MealType: req.MealType,
		ForDate:  forDate,
	}
	if req.LoggedAt != nil {
		entry.LoggedAt = req.LoggedAt.UTC()
	}

	logged, err := h.foodLogs.LogFood(c.Request.Context(), id, entry)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, logged)
}

// ListForDay returns the entries for ?date=
func (h *FoodLogHandler) ListForDay(c *gin.Context) {
	id, ok := profileID(c)
	if !ok {
		return
	}
	day, ok := queryDate(c)
	if !ok {
		return
	}

	logs, err := h.foodLogs.ListForDay(c.Request.Context(), id, day)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"food_logs": logs})
}

// DailySummary aggregates ?date= against the profile's targets
func (h *FoodLogHandler) DailySummary(c *gin.Context) {
	profile, ok := currentProfile(c, h.profiles)
	if !ok {
		return
	}
	day, ok := queryDate(c)
	if !ok {
		return
	}

	summary, err := h.foodLogs.DailySummary(c.Request.Context(), profile, day)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, summary)
}

// AnalyzeFood estimates nutrition for a description. It only fails when no
// completion credential is configured.
func (h *FoodLogHandler) AnalyzeFood(c *gin.Context) {
	id, ok := profileID(c)
	if !ok {
		return
	}

	var req AnalyzeFoodRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	forDate, ok := parseBodyDate(c, req.Date)
	if !ok {
		return
	}

	analysis, err := h.ai.AnalyzeFood(c.Request.Context(), req.Description, req.ImageDerived)
	if err != nil {
		respondError(c, err)
		return
	}

	resp := gin.H{"analysis": analysis}
	if req.Log {
		entry, err := h.foodLogs.LogAnalyzedFood(c.Request.Context(), id, analysis, req.MealType, req.Quantity, forDate)
		if err != nil {
			respondError(c, err)
			return
		}
		resp["food_log"] = entry
	}
	c.JSON(http.StatusOK, resp)
}
