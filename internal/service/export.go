package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/pageza/nutripal/backend/internal/models"
)

// ExportURLTTL is how long a presigned export link stays valid
const ExportURLTTL = 15 * time.Minute

// ObjectStore uploads objects and signs download links
type ObjectStore interface {
	Upload(ctx context.Context, key, contentType string, body []byte) error
	GeneratePresignedURL(ctx context.Context, objectKey string, expiration time.Duration) (string, error)
}

// ExportService writes meal plans to object storage as JSON documents
type ExportService struct {
	store ObjectStore
}

var _ IExportService = (*ExportService)(nil)

// NewExportService creates a new ExportService instance
func NewExportService(store ObjectStore) *ExportService {
	return &ExportService{store: store}
}

// ExportKey is the object key for a plan export
func ExportKey(plan *models.MealPlan) string {
	return fmt.Sprintf("meal-plans/%s/%s.json", plan.ProfileID, plan.ID)
}

// ExportMealPlan uploads the plan and returns a presigned download URL
func (s *ExportService) ExportMealPlan(ctx context.Context, plan *models.MealPlan) (string, error) {
	data, err := json.MarshalIndent(plan, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal meal plan: %w", err)
	}

	key := ExportKey(plan)
	if err := s.store.Upload(ctx, key, "application/json", data); err != nil {
		return "", fmt.Errorf("failed to upload meal plan: %w", err)
	}
	log.Printf("[ExportService] uploaded %s", key)

	url, err := s.store.GeneratePresignedURL(ctx, key, ExportURLTTL)
	if err != nil {
		return "", fmt.Errorf("failed to presign export: %w", err)
	}
	return url, nil
}
