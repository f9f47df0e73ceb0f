package service

import (
	"errors"
	"math"

	"github.com/pageza/nutripal/backend/internal/models"
	pgvector "github.com/pgvector/pgvector-go"
)

// EmbeddingDimensions is the length of a recipe macro embedding
const EmbeddingDimensions = 3

// MacroEmbeddingService embeds a recipe as the share of its calories that
// come from protein, carbs and fat, so similar macro profiles sit close together.
type MacroEmbeddingService struct{}

var _ EmbeddingServiceInterface = MacroEmbeddingService{}

// GenerateEmbedding returns the macro calorie shares of a recipe
func (MacroEmbeddingService) GenerateEmbedding(recipe *models.Recipe) (pgvector.Vector, error) {
	if recipe == nil {
		return pgvector.Vector{}, errors.New("recipe is required")
	}
	return pgvector.NewVector(macroShares(recipe.Nutrition)), nil
}

func macroShares(n models.NutritionInfo) []float32 {
	protein := n.Protein * 4
	carbs := n.Carbs * 4
	fat := n.Fat * 9
	total := protein + carbs + fat
	if total <= 0 {
		return []float32{0, 0, 0}
	}
	return []float32{float32(protein / total), float32(carbs / total), float32(fat / total)}
}

func l2Distance(a, b []float32) float64 {
	if len(a) != len(b) {
		return math.Inf(1)
	}
	var sum float64
	for i := range a {
		d := float64(a[i] - b[i])
		sum += d * d
	}
	return math.Sqrt(sum)
}
