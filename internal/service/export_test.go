package service

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/pageza/nutripal/backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockObjectStore is a mock implementation of ObjectStore
type MockObjectStore struct {
	mock.Mock
}

func (m *MockObjectStore) Upload(ctx context.Context, key, contentType string, body []byte) error {
	args := m.Called(ctx, key, contentType, body)
	return args.Error(0)
}

func (m *MockObjectStore) GeneratePresignedURL(ctx context.Context, objectKey string, expiration time.Duration) (string, error) {
	args := m.Called(ctx, objectKey, expiration)
	return args.String(0), args.Error(1)
}

func TestExportMealPlan(t *testing.T) {
	plan := DefaultMealPlan(testProfile(), parseNow)
	key := ExportKey(plan)
	assert.Equal(t, "meal-plans/"+plan.ProfileID.String()+"/"+plan.ID.String()+".json", key)

	store := new(MockObjectStore)
	store.On("Upload", mock.Anything, key, "application/json", mock.MatchedBy(func(body []byte) bool {
		var decoded models.MealPlan
		return json.Unmarshal(body, &decoded) == nil && decoded.ID == plan.ID && decoded.Fallback
	})).Return(nil)
	store.On("GeneratePresignedURL", mock.Anything, key, ExportURLTTL).Return("https://example.com/signed", nil)

	url, err := NewExportService(store).ExportMealPlan(context.Background(), plan)
	require.NoError(t, err)
	assert.Equal(t, "https://example.com/signed", url)
	store.AssertExpectations(t)
}

func TestExportMealPlanUploadFails(t *testing.T) {
	store := new(MockObjectStore)
	store.On("Upload", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(errors.New("access denied"))

	_, err := NewExportService(store).ExportMealPlan(context.Background(), DefaultMealPlan(nil, parseNow))
	assert.Error(t, err)
	store.AssertNotCalled(t, "GeneratePresignedURL", mock.Anything, mock.Anything, mock.Anything)
}
