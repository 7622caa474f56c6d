package entity

import (
	"time"

	"github.com/google/uuid"
)

type ChatMessage struct {
	Id            uuid.UUID
	ChatSessionId uuid.UUID
	Role          string
	Content       string
	StepKey       *string
	Chips         []string
	CreatedAt     time.Time
	Seq           int64
}
