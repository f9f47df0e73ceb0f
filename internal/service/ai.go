package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/pageza/nutripal/backend/internal/models"
)

// Request tuning per operation
const (
	mealPlanTemperature     = 0.7
	recipeTemperature       = 0.8
	coachTemperature        = 0.7
	coachMaxTokens          = 800
	foodAnalysisTemperature = 0.3
	foodAnalysisMaxTokens   = 300

	// DefaultPlanDays is used when a caller asks for a non-positive day count
	DefaultPlanDays = 7
	// DefaultAITimeout bounds a single completion call
	DefaultAITimeout = 60 * time.Second
)

// CoachApology is shown in the conversation when the coach cannot answer
const CoachApology = "I'm sorry, I'm having trouble connecting right now. Please check your internet connection and try again."

// AIService builds prompts, calls the completion provider and validates
// replies, substituting fallbacks according to each operation's policy.
type AIService struct {
	completer ChatCompleter
	timeout   time.Duration
	now       func() time.Time
}

var _ AIServiceInterface = (*AIService)(nil)

// NewAIService creates an AIService. A non-positive timeout uses DefaultAITimeout.
func NewAIService(completer ChatCompleter, timeout time.Duration) *AIService {
	if timeout <= 0 {
		timeout = DefaultAITimeout
	}
	return &AIService{
		completer: completer,
		timeout:   timeout,
		now:       utcNow,
	}
}

// complete runs one completion under the per-call deadline
func (s *AIService) complete(ctx context.Context, req CompletionRequest) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	content, err := s.completer.Complete(ctx, req)
	if err != nil {
		if errors.Is(err, ErrMissingCredential) || IsRecoverable(err) {
			return "", err
		}
		// context expiry and any other provider failure count as transport errors
		return "", &TransportError{Err: err}
	}
	return content, nil
}

// GenerateMealPlan returns a plan of exactly days days, or the fallback plan
// when the provider or the reply fails. Only a missing credential is returned
// as an error. A nil profile gets the fallback plan without a model call.
func (s *AIService) GenerateMealPlan(ctx context.Context, profile *models.UserProfile, days int, extraPreferences []string) (*models.MealPlan, error) {
	if days <= 0 {
		days = DefaultPlanDays
	}
	if profile == nil {
		log.Printf("[AIService] meal plan requested without a profile, using fallback")
		return DefaultMealPlan(nil, s.now()), nil
	}

	content, err := s.complete(ctx, CompletionRequest{
		Messages: []Message{
			{Role: "system", Content: MealPlanSystemPrompt},
			{Role: "user", Content: BuildMealPlanPrompt(profile, days, extraPreferences)},
		},
		Temperature: mealPlanTemperature,
		JSONMode:    true,
	})
	if err != nil {
		if errors.Is(err, ErrMissingCredential) {
			return nil, err
		}
		log.Printf("[AIService] meal plan generation failed, using fallback: %v", err)
		return DefaultMealPlan(profile, s.now()), nil
	}

	plan, err := ParseMealPlan(content, profile, s.now())
	if err != nil {
		log.Printf("[AIService] meal plan reply rejected, using fallback: %v", err)
		return DefaultMealPlan(profile, s.now()), nil
	}

	if len(plan.Meals) > days {
		plan.Meals = plan.Meals[:days]
		plan.EndDate = plan.StartDate.AddDate(0, 0, days-1)
	}
	if len(plan.Meals) != days {
		log.Printf("[AIService] meal plan has %d days, %d requested", len(plan.Meals), days)
	}
	return plan, nil
}

// GenerateRecipe asks for a recipe from the given ingredients. Every failure
// is returned to the caller.
func (s *AIService) GenerateRecipe(ctx context.Context, ingredients, dietaryPreferences []string, servings int) (*models.Recipe, error) {
	if servings <= 0 {
		servings = DefaultServings
	}

	content, err := s.complete(ctx, CompletionRequest{
		Messages: []Message{
			{Role: "system", Content: RecipeSystemPrompt},
			{Role: "user", Content: BuildRecipePrompt(ingredients, dietaryPreferences, servings)},
		},
		Temperature: recipeTemperature,
		JSONMode:    true,
	})
	if err != nil {
		log.Printf("[AIService] recipe generation failed: %v", err)
		return nil, fmt.Errorf("failed to generate recipe: %w", err)
	}

	recipe, err := ParseRecipe(content)
	if err != nil {
		log.Printf("[AIService] recipe reply rejected: %v", err)
		return nil, fmt.Errorf("failed to generate recipe: %w", err)
	}
	return recipe, nil
}

// GetCoachReply answers a coaching message. recentAssistantTurns are replayed
// as assistant context. Any failure yields CoachApology.
func (s *AIService) GetCoachReply(ctx context.Context, message string, profile *models.UserProfile, recentAssistantTurns []string) string {
	messages := make([]Message, 0, len(recentAssistantTurns)+2)
	messages = append(messages, Message{Role: "system", Content: BuildCoachSystemPrompt(profile)})
	for _, turn := range recentAssistantTurns {
		messages = append(messages, Message{Role: "assistant", Content: turn})
	}
	messages = append(messages, Message{Role: "user", Content: message})

	content, err := s.complete(ctx, CompletionRequest{
		Messages:    messages,
		Temperature: coachTemperature,
		MaxTokens:   coachMaxTokens,
	})
	if err != nil {
		log.Printf("[AIService] coach reply failed: %v", err)
		return CoachApology
	}
	if content == "" {
		log.Printf("[AIService] coach reply was empty")
		return CoachApology
	}
	return content
}

// AnalyzeFood estimates nutrition for a food description. Provider and parse
// failures yield a zero-nutrition record; only a missing credential is an error.
func (s *AIService) AnalyzeFood(ctx context.Context, description string, imageDerived bool) (*models.FoodAnalysis, error) {
	content, err := s.complete(ctx, CompletionRequest{
		Messages: []Message{
			{Role: "system", Content: FoodAnalysisSystemPrompt},
			{Role: "user", Content: BuildFoodAnalysisPrompt(description, imageDerived)},
		},
		Temperature: foodAnalysisTemperature,
		MaxTokens:   foodAnalysisMaxTokens,
		JSONMode:    true,
	})
	if err != nil {
		if errors.Is(err, ErrMissingCredential) {
			return nil, err
		}
		log.Printf("[AIService] food analysis failed, using zero-nutrition record: %v", err)
		return FallbackFoodAnalysis(description), nil
	}
	return ParseFoodAnalysis(content, description), nil
}
