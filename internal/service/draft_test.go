package service

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/pageza/nutripal/backend/internal/models"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupRedis(t *testing.T) *redis.Client {
	t.Helper()
	host := os.Getenv("REDIS_HOST")
	if host == "" {
		t.Skip("REDIS_HOST not set, skipping redis test")
	}
	port := os.Getenv("REDIS_PORT")
	if port == "" {
		port = "6379"
	}
	client := redis.NewClient(&redis.Options{Addr: host + ":" + port})
	if err := client.Ping(context.Background()).Err(); err != nil {
		t.Skipf("redis unavailable: %v", err)
	}
	t.Cleanup(func() { client.Close() })
	return client
}

func TestDraftServiceLifecycle(t *testing.T) {
	ctx := context.Background()
	client := setupRedis(t)
	s := NewDraftService(client)

	draft := &RecipeDraft{
		ProfileID: uuid.New(),
		Recipe:    &models.Recipe{ID: uuid.New(), Name: "Lentil Soup", Servings: 4},
	}
	require.NoError(t, s.SaveDraft(ctx, draft))
	require.NotEmpty(t, draft.ID)

	ttl, err := client.TTL(ctx, draftKey(draft.ID)).Result()
	require.NoError(t, err)
	assert.Greater(t, ttl, DraftTTL-time.Minute)

	loaded, err := s.GetDraft(ctx, draft.ID)
	require.NoError(t, err)
	assert.Equal(t, "Lentil Soup", loaded.Recipe.Name)
	assert.Equal(t, draft.ProfileID, loaded.ProfileID)

	require.NoError(t, s.DeleteDraft(ctx, draft.ID))
	_, err = s.GetDraft(ctx, draft.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDraftKey(t *testing.T) {
	assert.Equal(t, "recipe:draft:abc", draftKey("abc"))
}
