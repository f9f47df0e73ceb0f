package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/pageza/nutripal/backend/internal/badge"
	"github.com/pageza/nutripal/backend/internal/models"
	"github.com/pageza/nutripal/backend/internal/nutrition"
	pgvector "github.com/pgvector/pgvector-go"
)

// AIServiceInterface is the model-backed surface used by handlers
type AIServiceInterface interface {
	GenerateMealPlan(ctx context.Context, profile *models.UserProfile, days int, extraPreferences []string) (*models.MealPlan, error)
	GenerateRecipe(ctx context.Context, ingredients, dietaryPreferences []string, servings int) (*models.Recipe, error)
	GetCoachReply(ctx context.Context, message string, profile *models.UserProfile, recentAssistantTurns []string) string
	AnalyzeFood(ctx context.Context, description string, imageDerived bool) (*models.FoodAnalysis, error)
}

// IProfileService defines the interface for profile operations
type IProfileService interface {
	CreateProfile(ctx context.Context, profile *models.UserProfile) (*models.UserProfile, error)
	GetProfile(ctx context.Context, id uuid.UUID) (*models.UserProfile, error)
	UpdateProfile(ctx context.Context, id uuid.UUID, req *models.UpdateProfileRequest) (*models.UserProfile, error)
	Metrics(profile *models.UserProfile) nutrition.Targets
}

// IFoodLogService defines the interface for food log operations
type IFoodLogService interface {
	LogFood(ctx context.Context, profileID uuid.UUID, entry *models.FoodLog) (*models.FoodLog, error)
	LogAnalyzedFood(ctx context.Context, profileID uuid.UUID, analysis *models.FoodAnalysis, mealType models.MealType, quantity float64, forDate time.Time) (*models.FoodLog, error)
	ListForDay(ctx context.Context, profileID uuid.UUID, day time.Time) ([]models.FoodLog, error)
	ListHistory(ctx context.Context, profileID uuid.UUID, since time.Time) ([]models.FoodLog, error)
	DailySummary(ctx context.Context, profile *models.UserProfile, day time.Time) (*nutrition.DailySummary, error)
}

// IMealPlanService defines the interface for meal plan storage
type IMealPlanService interface {
	SavePlan(ctx context.Context, plan *models.MealPlan) (*models.MealPlan, error)
	GetPlan(ctx context.Context, profileID, planID uuid.UUID) (*models.MealPlan, error)
	CurrentPlan(ctx context.Context, profileID uuid.UUID) (*models.MealPlan, error)
}

// IRecipeService defines the interface for recipe operations
type IRecipeService interface {
	SaveRecipe(ctx context.Context, recipe *models.Recipe) (*models.Recipe, error)
	GetRecipe(ctx context.Context, id uuid.UUID) (*models.Recipe, error)
	ListRecipes(ctx context.Context, profileID uuid.UUID) ([]*models.Recipe, error)
	CountRecipes(ctx context.Context, profileID uuid.UUID) (int64, error)
	FindSimilar(ctx context.Context, recipe *models.Recipe, limit int) ([]*models.Recipe, error)
}

// IDraftService caches generated recipes until the user saves them
type IDraftService interface {
	SaveDraft(ctx context.Context, draft *RecipeDraft) error
	GetDraft(ctx context.Context, id string) (*RecipeDraft, error)
	DeleteDraft(ctx context.Context, id string) error
}

// IChatService defines the interface for coach conversations
type IChatService interface {
	StartSession(ctx context.Context, profileID uuid.UUID) (*models.ChatSession, error)
	ListSessions(ctx context.Context, profileID uuid.UUID) ([]*models.ChatSession, error)
	Ask(ctx context.Context, profile *models.UserProfile, sessionID uuid.UUID, text string) (*models.ChatSession, error)
}

// IBadgeService defines the interface for badge progress
type IBadgeService interface {
	Progress(ctx context.Context, profile *models.UserProfile, today time.Time, category models.BadgeCategory) ([]badge.Progress, error)
	Award(ctx context.Context, profileID uuid.UUID, badgeID string) (*models.UserBadge, error)
}

// ISessionService issues and validates session tokens
type ISessionService interface {
	GenerateToken(profileID uuid.UUID) (string, error)
	ValidateToken(token string) (*SessionClaims, error)
}

// IExportService publishes meal plans to object storage
type IExportService interface {
	ExportMealPlan(ctx context.Context, plan *models.MealPlan) (string, error)
}

// EmbeddingServiceInterface produces vectors for similarity search
type EmbeddingServiceInterface interface {
	GenerateEmbedding(recipe *models.Recipe) (pgvector.Vector, error)
}
