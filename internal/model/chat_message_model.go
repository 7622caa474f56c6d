package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// ChatMessage is append-only: no update timestamp, no soft delete.
type ChatMessage struct {
	Id            uuid.UUID                   `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	ChatSessionId uuid.UUID                   `gorm:"type:uuid;not null;index:idx_chat_messages_session_created,priority:1"`
	Role          string                      `gorm:"type:varchar(20);not null"`
	Content       string                      `gorm:"type:text;not null"`
	StepKey       *string                     `gorm:"type:varchar(32)"`
	Chips         datatypes.JSONSlice[string] `gorm:"type:jsonb"`
	CreatedAt     time.Time                   `gorm:"autoCreateTime;index:idx_chat_messages_session_created,priority:2"`
	// tie-break for turns written in the same instant; assigned by the database
	Seq           int64                       `gorm:"autoIncrement;not null;index:idx_chat_messages_session_created,priority:3"`
}

func (ChatMessage) TableName() string {
	return "chat_messages"
}
