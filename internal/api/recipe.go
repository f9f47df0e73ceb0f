package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/pageza/nutripal/backend/internal/models"
	"github.com/pageza/nutripal/backend/internal/service"
)

// GenerateRecipeRequest asks for a recipe from available ingredients
type GenerateRecipeRequest struct {
	Ingredients        []string `json:"ingredients" binding:"required,min=1"`
	DietaryPreferences []string `json:"dietary_preferences"`
	Servings           int      `json:"servings"`
}

// RecipeHandler serves recipe generation, drafts and saved recipes
type RecipeHandler struct {
	recipes service.IRecipeService
	drafts  service.IDraftService
	ai      service.AIServiceInterface
}

// NewRecipeHandler creates a new RecipeHandler. drafts may be nil.
func NewRecipeHandler(recipes service.IRecipeService, drafts service.IDraftService, ai service.AIServiceInterface) *RecipeHandler {
	return &RecipeHandler{
		recipes: recipes,
		drafts:  drafts,
		ai:      ai,
	}
}

// RegisterRoutes registers the recipe routes
func (h *RecipeHandler) RegisterRoutes(router *gin.RouterGroup, auth gin.HandlerFunc, aiLimit []gin.HandlerFunc) {
	recipes := router.Group("/recipes")
	{
		recipes.POST("/generate", withMiddleware(aiLimit, h.GenerateRecipe)...)
		recipes.POST("/drafts/:id/save", auth, h.SaveDraft)
		recipes.GET("", auth, h.ListRecipes)
		recipes.GET("/:id/similar", auth, h.FindSimilar)
	}
}

// GenerateRecipe asks the model for a recipe. Failures are returned as 502.
// When drafts are available the recipe is cached until saved, otherwise it
// goes straight into the recipe store.
func (h *RecipeHandler) GenerateRecipe(c *gin.Context) {
	id, ok := profileID(c)
	if !ok {
		return
	}

	var req GenerateRecipeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	recipe, err := h.ai.GenerateRecipe(c.Request.Context(), req.Ingredients, req.DietaryPreferences, req.Servings)
	if err != nil {
		respondError(c, err)
		return
	}
	recipe.ProfileID = id

	if h.drafts == nil {
		saved, err := h.recipes.SaveRecipe(c.Request.Context(), recipe)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusCreated, gin.H{"recipe": saved, "recipe_id": saved.ID})
		return
	}

	draft := &service.RecipeDraft{ProfileID: id, Recipe: recipe}
	if err := h.drafts.SaveDraft(c.Request.Context(), draft); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"recipe": recipe, "draft_id": draft.ID})
}

// SaveDraft moves a cached draft into the recipe store
func (h *RecipeHandler) SaveDraft(c *gin.Context) {
	id, ok := profileID(c)
	if !ok {
		return
	}
	if h.drafts == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "recipe drafts are not available"})
		return
	}

	draft, err := h.drafts.GetDraft(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	if draft.ProfileID != id || draft.Recipe == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
		return
	}

	recipe := draft.Recipe
	recipe.ProfileID = id
	saved, err := h.recipes.SaveRecipe(c.Request.Context(), recipe)
	if err != nil {
		respondError(c, err)
		return
	}
	if err := h.drafts.DeleteDraft(c.Request.Context(), draft.ID); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, saved)
}

// ListRecipes returns the saved recipes
func (h *RecipeHandler) ListRecipes(c *gin.Context) {
	id, ok := profileID(c)
	if !ok {
		return
	}
	recipes, err := h.recipes.ListRecipes(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"recipes": recipes})
}

// FindSimilar returns saved recipes with the closest macro profile
func (h *RecipeHandler) FindSimilar(c *gin.Context) {
	id, ok := profileID(c)
	if !ok {
		return
	}
	recipeID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid recipe id"})
		return
	}
	limit, err := strconv.Atoi(c.DefaultQuery("limit", "5"))
	if err != nil || limit <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "limit must be a positive integer"})
		return
	}

	recipe, err := h.recipes.GetRecipe(c.Request.Context(), recipeID)
	if err != nil {
		respondError(c, err)
		return
	}
	if recipe.ProfileID != id {
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
		return
	}

	similar, err := h.recipes.FindSimilar(c.Request.Context(), recipe, limit)
	if err != nil {
		respondError(c, err)
		return
	}
	if similar == nil {
		similar = []*models.Recipe{}
	}
	c.JSON(http.StatusOK, gin.H{"recipes": similar})
}
