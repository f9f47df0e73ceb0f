package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/pageza/nutripal/backend/internal/service"
)

// AskCoachRequest is a message to the nutrition coach
type AskCoachRequest struct {
	Message string `json:"message" binding:"required"`
}

// CoachHandler serves coach conversations
type CoachHandler struct {
	profiles service.IProfileService
	chat     service.IChatService
}

// NewCoachHandler creates a new CoachHandler
func NewCoachHandler(profiles service.IProfileService, chat service.IChatService) *CoachHandler {
	return &CoachHandler{profiles: profiles, chat: chat}
}

// RegisterRoutes registers the coach routes
func (h *CoachHandler) RegisterRoutes(router *gin.RouterGroup, auth gin.HandlerFunc, aiLimit []gin.HandlerFunc) {
	coach := router.Group("/coach/sessions")
	{
		coach.POST("", auth, h.StartSession)
		coach.GET("", auth, h.ListSessions)
		coach.POST("/:id/messages", withMiddleware(aiLimit, h.Ask)...)
	}
}

// StartSession opens a new conversation
func (h *CoachHandler) StartSession(c *gin.Context) {
	id, ok := profileID(c)
	if !ok {
		return
	}
	session, err := h.chat.StartSession(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, session)
}

// ListSessions returns the conversations, most recent first
func (h *CoachHandler) ListSessions(c *gin.Context) {
	id, ok := profileID(c)
	if !ok {
		return
	}
	sessions, err := h.chat.ListSessions(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"sessions": sessions})
}

// Ask appends a question and the coach's answer. The coach always answers,
// so model failures still return 200 with the apology message.
func (h *CoachHandler) Ask(c *gin.Context) {
	profile, ok := currentProfile(c, h.profiles)
	if !ok {
		return
	}
	sessionID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid session id"})
		return
	}

	var req AskCoachRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	session, err := h.chat.Ask(c.Request.Context(), profile, sessionID, req.Message)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, session)
}
