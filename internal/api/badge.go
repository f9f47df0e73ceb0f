package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/pageza/nutripal/backend/internal/badge"
	"github.com/pageza/nutripal/backend/internal/models"
	"github.com/pageza/nutripal/backend/internal/service"
)

// BadgeHandler serves badge progress
type BadgeHandler struct {
	profiles service.IProfileService
	badges   service.IBadgeService
}

// NewBadgeHandler creates a new BadgeHandler
func NewBadgeHandler(profiles service.IProfileService, badges service.IBadgeService) *BadgeHandler {
	return &BadgeHandler{profiles: profiles, badges: badges}
}

// RegisterRoutes registers the badge routes
func (h *BadgeHandler) RegisterRoutes(router *gin.RouterGroup, auth gin.HandlerFunc) {
	router.GET("/badges", auth, h.ListBadges)
}

// ListBadges returns progress for every badge, optionally filtered by
// ?category=. ?tz= names the IANA zone used for "today" and breakfast times;
// it defaults to UTC.
func (h *BadgeHandler) ListBadges(c *gin.Context) {
	loc := time.UTC
	if tz := c.Query("tz"); tz != "" {
		var err error
		if loc, err = time.LoadLocation(tz); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "unknown time zone: " + tz})
			return
		}
	}

	profile, ok := currentProfile(c, h.profiles)
	if !ok {
		return
	}

	progress, err := h.badges.Progress(c.Request.Context(), profile, time.Now().In(loc), models.BadgeCategory(c.Query("category")))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"badges":       progress,
		"total_points": badge.TotalPoints(progress),
	})
}
