package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockCompleter is a mock implementation of ChatCompleter
type MockCompleter struct {
	mock.Mock
}

func (m *MockCompleter) Complete(ctx context.Context, req CompletionRequest) (string, error) {
	args := m.Called(ctx, req)
	return args.String(0), args.Error(1)
}

// blockingCompleter waits for the context to expire
type blockingCompleter struct{}

func (blockingCompleter) Complete(ctx context.Context, _ CompletionRequest) (string, error) {
	<-ctx.Done()
	return "", ctx.Err()
}

func newTestAIService(c ChatCompleter) *AIService {
	s := NewAIService(c, time.Second)
	s.now = func() time.Time { return parseNow }
	return s
}

func planJSON(days int) string {
	var sb strings.Builder
	sb.WriteString(`{"name": "Generated", "meals": [`)
	for i := 0; i < days; i++ {
		if i > 0 {
			sb.WriteString(",")
		}
		sb.WriteString(fmt.Sprintf(`{"breakfast": {"name": "Breakfast %d", "totalNutrition": {"calories": 400}}}`, i+1))
	}
	sb.WriteString("]}")
	return sb.String()
}

func TestGenerateMealPlanSuccess(t *testing.T) {
	completer := new(MockCompleter)
	completer.On("Complete", mock.Anything, mock.MatchedBy(func(req CompletionRequest) bool {
		return req.JSONMode && req.Temperature == mealPlanTemperature &&
			len(req.Messages) == 2 && req.Messages[0].Content == MealPlanSystemPrompt
	})).Return(planJSON(3), nil)

	plan, err := newTestAIService(completer).GenerateMealPlan(context.Background(), testProfile(), 3, nil)
	require.NoError(t, err)
	assert.False(t, plan.Fallback)
	assert.Len(t, plan.Meals, 3)
	completer.AssertExpectations(t)
}

func TestGenerateMealPlanTruncatesExtraDays(t *testing.T) {
	completer := new(MockCompleter)
	completer.On("Complete", mock.Anything, mock.Anything).Return(planJSON(9), nil)

	plan, err := newTestAIService(completer).GenerateMealPlan(context.Background(), testProfile(), 0, nil)
	require.NoError(t, err)
	assert.Len(t, plan.Meals, DefaultPlanDays)
	assert.Equal(t, parseNow.AddDate(0, 0, DefaultPlanDays-1), plan.EndDate)
}

func TestGenerateMealPlanFallsBack(t *testing.T) {
	cases := map[string]struct {
		reply string
		err   error
	}{
		"server error":  {err: &TransportError{StatusCode: 500, Err: errors.New("boom")}},
		"invalid json":  {reply: "Sorry, I can't help with that."},
		"missing meals": {reply: `{"name": "Empty"}`},
		"plain error":   {err: errors.New("connection reset")},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			completer := new(MockCompleter)
			completer.On("Complete", mock.Anything, mock.Anything).Return(tc.reply, tc.err)

			profile := testProfile()
			plan, err := newTestAIService(completer).GenerateMealPlan(context.Background(), profile, 7, nil)
			require.NoError(t, err)
			assert.True(t, plan.Fallback)
			assert.Equal(t, FallbackPlanName, plan.Name)
			assert.Empty(t, plan.Meals)
			assert.Equal(t, profile.ID, plan.ProfileID)
		})
	}
}

func TestGenerateMealPlanNilProfile(t *testing.T) {
	completer := new(MockCompleter)

	plan, err := newTestAIService(completer).GenerateMealPlan(context.Background(), nil, 7, nil)
	require.NoError(t, err)
	assert.True(t, plan.Fallback)
	assert.Equal(t, parseNow, plan.StartDate)
	completer.AssertNotCalled(t, "Complete", mock.Anything, mock.Anything)
}

func TestGenerateMealPlanMissingCredential(t *testing.T) {
	s := newTestAIService(NewHTTPCompleter("", "", ""))
	plan, err := s.GenerateMealPlan(context.Background(), testProfile(), 7, nil)
	assert.Nil(t, plan)
	assert.ErrorIs(t, err, ErrMissingCredential)
}

func TestGenerateMealPlanTimeout(t *testing.T) {
	s := NewAIService(blockingCompleter{}, 20*time.Millisecond)
	plan, err := s.GenerateMealPlan(context.Background(), testProfile(), 7, nil)
	require.NoError(t, err)
	assert.True(t, plan.Fallback)
}

func TestGenerateRecipe(t *testing.T) {
	completer := new(MockCompleter)
	completer.On("Complete", mock.Anything, mock.MatchedBy(func(req CompletionRequest) bool {
		return req.Temperature == recipeTemperature && strings.Contains(req.Messages[1].Content, "Serves 4 people")
	})).Return(`{"name": "Tofu Bowl", "servings": 4}`, nil)

	recipe, err := newTestAIService(completer).GenerateRecipe(context.Background(), []string{"tofu"}, nil, 0)
	require.NoError(t, err)
	assert.Equal(t, "Tofu Bowl", recipe.Name)
	completer.AssertExpectations(t)
}

func TestGenerateRecipePropagatesFailures(t *testing.T) {
	completer := new(MockCompleter)
	completer.On("Complete", mock.Anything, mock.Anything).Return("", &TransportError{StatusCode: 502, Err: errors.New("bad gateway")}).Once()
	completer.On("Complete", mock.Anything, mock.Anything).Return("not json at all", nil).Once()
	completer.On("Complete", mock.Anything, mock.Anything).Return("null", nil).Once()
	s := newTestAIService(completer)

	_, err := s.GenerateRecipe(context.Background(), []string{"rice"}, nil, 2)
	var te *TransportError
	assert.True(t, errors.As(err, &te))

	_, err = s.GenerateRecipe(context.Background(), []string{"rice"}, nil, 2)
	var pe *ParseError
	assert.True(t, errors.As(err, &pe))

	recipe, err := s.GenerateRecipe(context.Background(), []string{"rice"}, nil, 2)
	assert.Nil(t, recipe)
	assert.True(t, errors.As(err, &pe))
}

func TestGetCoachReply(t *testing.T) {
	completer := new(MockCompleter)
	completer.On("Complete", mock.Anything, mock.MatchedBy(func(req CompletionRequest) bool {
		return req.MaxTokens == coachMaxTokens &&
			len(req.Messages) == 4 &&
			req.Messages[1].Role == "assistant" &&
			req.Messages[3].Role == "user" && req.Messages[3].Content == "How much water?"
	})).Return("About 2.5 litres a day.", nil)

	reply := newTestAIService(completer).GetCoachReply(context.Background(), "How much water?", testProfile(), []string{"Hi!", "Ask away."})
	assert.Equal(t, "About 2.5 litres a day.", reply)
	completer.AssertExpectations(t)
}

func TestGetCoachReplyApologises(t *testing.T) {
	failing := new(MockCompleter)
	failing.On("Complete", mock.Anything, mock.Anything).Return("", errors.New("offline"))
	assert.Equal(t, CoachApology, newTestAIService(failing).GetCoachReply(context.Background(), "hi", nil, nil))

	empty := new(MockCompleter)
	empty.On("Complete", mock.Anything, mock.Anything).Return("", nil)
	assert.Equal(t, CoachApology, newTestAIService(empty).GetCoachReply(context.Background(), "hi", nil, nil))

	missing := newTestAIService(NewHTTPCompleter("", "", ""))
	assert.Equal(t, CoachApology, missing.GetCoachReply(context.Background(), "hi", nil, nil))
}

func TestAnalyzeFood(t *testing.T) {
	completer := new(MockCompleter)
	completer.On("Complete", mock.Anything, mock.MatchedBy(func(req CompletionRequest) bool {
		return req.Temperature == foodAnalysisTemperature && req.MaxTokens == foodAnalysisMaxTokens
	})).Return(`{"foodName": "Latte", "estimatedCalories": 190, "nutrition": {"protein": 10, "carbs": 18, "fat": 7}}`, nil)

	analysis, err := newTestAIService(completer).AnalyzeFood(context.Background(), "a latte", false)
	require.NoError(t, err)
	assert.Equal(t, "Latte", analysis.FoodName)
	assert.Equal(t, 190.0, analysis.EstimatedCalories)
}

func TestAnalyzeFoodFallsBack(t *testing.T) {
	completer := new(MockCompleter)
	completer.On("Complete", mock.Anything, mock.Anything).Return("", &TransportError{StatusCode: 500, Err: errors.New("down")})

	analysis, err := newTestAIService(completer).AnalyzeFood(context.Background(), "pad thai", true)
	require.NoError(t, err)
	assert.Equal(t, "pad thai", analysis.FoodName)
	assert.Zero(t, analysis.EstimatedCalories)

	_, err = newTestAIService(NewHTTPCompleter("", "", "")).AnalyzeFood(context.Background(), "pad thai", false)
	assert.ErrorIs(t, err, ErrMissingCredential)
}
