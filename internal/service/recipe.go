package service

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/google/uuid"
	"github.com/pageza/nutripal/backend/internal/models"
	"github.com/pgvector/pgvector-go"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// RecipeService handles recipe operations
type RecipeService struct {
	db               *gorm.DB
	embeddingService EmbeddingServiceInterface
}

var _ IRecipeService = (*RecipeService)(nil)

// NewRecipeService creates a new RecipeService instance
func NewRecipeService(db *gorm.DB, embeddingService EmbeddingServiceInterface) *RecipeService {
	return &RecipeService{
		db:               db,
		embeddingService: embeddingService,
	}
}

// SaveRecipe stores a recipe with its macro embedding
func (s *RecipeService) SaveRecipe(ctx context.Context, recipe *models.Recipe) (*models.Recipe, error) {
	if recipe.ID == uuid.Nil {
		recipe.ID = uuid.New()
	}
	if len(recipe.Embedding.Slice()) == 0 {
		vec, err := s.embeddingService.GenerateEmbedding(recipe)
		if err != nil {
			return nil, fmt.Errorf("failed to generate embedding: %w", err)
		}
		recipe.Embedding = vec
	}
	if err := s.db.WithContext(ctx).Create(recipe).Error; err != nil {
		return nil, fmt.Errorf("failed to save recipe: %w", err)
	}
	return recipe, nil
}

// GetRecipe retrieves a recipe by ID
func (s *RecipeService) GetRecipe(ctx context.Context, id uuid.UUID) (*models.Recipe, error) {
	var recipe models.Recipe
	if err := s.db.WithContext(ctx).First(&recipe, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get recipe: %w", err)
	}
	return &recipe, nil
}

// ListRecipes lists a profile's saved recipes, newest first
func (s *RecipeService) ListRecipes(ctx context.Context, profileID uuid.UUID) ([]*models.Recipe, error) {
	var recipes []models.Recipe
	if err := s.db.WithContext(ctx).Where("profile_id = ?", profileID).Order("created_at DESC").Find(&recipes).Error; err != nil {
		return nil, fmt.Errorf("failed to list recipes: %w", err)
	}
	// Convert to []*models.Recipe
	result := make([]*models.Recipe, len(recipes))
	for i := range recipes {
		result[i] = &recipes[i]
	}
	return result, nil
}

// CountRecipes counts the recipes a profile has saved
func (s *RecipeService) CountRecipes(ctx context.Context, profileID uuid.UUID) (int64, error) {
	var n int64
	if err := s.db.WithContext(ctx).Model(&models.Recipe{}).Where("profile_id = ?", profileID).Count(&n).Error; err != nil {
		return 0, fmt.Errorf("failed to count recipes: %w", err)
	}
	return n, nil
}

// FindSimilar returns the saved recipes whose macro profile is closest to recipe.
// Postgres ranks with pgvector's L2 operator; other databases rank in process.
func (s *RecipeService) FindSimilar(ctx context.Context, recipe *models.Recipe, limit int) ([]*models.Recipe, error) {
	if limit <= 0 {
		limit = 5
	}
	vec := recipe.Embedding
	if len(vec.Slice()) == 0 {
		var err error
		if vec, err = s.embeddingService.GenerateEmbedding(recipe); err != nil {
			return nil, fmt.Errorf("failed to generate embedding: %w", err)
		}
	}

	var recipes []models.Recipe
	if s.db.Dialector.Name() == "postgres" {
		err := s.db.WithContext(ctx).
			Where("id <> ?", recipe.ID).
			Clauses(clause.OrderBy{Expression: clause.Expr{SQL: "embedding <-> ?", Vars: []interface{}{vec}}}).
			Limit(limit).
			Find(&recipes).Error
		if err != nil {
			return nil, fmt.Errorf("failed to find similar recipes: %w", err)
		}
	} else {
		if err := s.db.WithContext(ctx).Where("id <> ?", recipe.ID).Find(&recipes).Error; err != nil {
			return nil, fmt.Errorf("failed to find similar recipes: %w", err)
		}
		rankByDistance(recipes, vec)
		if len(recipes) > limit {
			recipes = recipes[:limit]
		}
	}

	result := make([]*models.Recipe, len(recipes))
	for i := range recipes {
		result[i] = &recipes[i]
	}
	return result, nil
}

func rankByDistance(recipes []models.Recipe, target pgvector.Vector) {
	want := target.Slice()
	sort.SliceStable(recipes, func(i, j int) bool {
		return l2Distance(recipes[i].Embedding.Slice(), want) < l2Distance(recipes[j].Embedding.Slice(), want)
	})
}
