package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// ChatRole is the author of a coach message
type ChatRole string

const (
	RoleUser      ChatRole = "user"
	RoleAssistant ChatRole = "assistant"
)

// ChatMessage is one turn of a coach conversation
type ChatMessage struct {
	ID        string    `json:"id"`
	Role      ChatRole  `json:"role"`
	Content   string    `json:"content"`
	Timestamp time.Time `json:"timestamp"`
}

// ChatSession groups an ordered conversation for a profile
type ChatSession struct {
	ID        uuid.UUID                        `gorm:"type:varchar(36);primarykey" json:"id"`
	ProfileID uuid.UUID                        `gorm:"type:varchar(36);not null;index" json:"user_id"`
	Messages  datatypes.JSONSlice[ChatMessage] `json:"messages"`
	CreatedAt time.Time                        `json:"created_at"`
	UpdatedAt time.Time                        `json:"updated_at"`
}
