package dto

import (
	"time"

	"scent-advisor-be/pkg/advisor/conversation"
	"scent-advisor-be/pkg/advisor/recommendation"

	"github.com/google/uuid"
)

type CreateSessionRequest struct {
	Locale      string  `json:"locale" validate:"omitempty,max=16"`
	Mode        string  `json:"mode" validate:"omitempty,oneof=FULL CONTEXTUAL"`
	ProductSlug *string `json:"product_slug" validate:"omitempty,max=120"`
}

type CreateSessionResponse struct {
	Id               uuid.UUID         `json:"id"`
	Mode             string            `json:"mode"`
	Step             conversation.Step `json:"step"`
	AssistantMessage string            `json:"assistant_message"`
	Chips            []string          `json:"chips"`
}

type SendMessageRequest struct {
	ChatSessionId uuid.UUID `json:"session_id" validate:"required"`
	Message       string    `json:"message" validate:"max=500"`
	Step          string    `json:"step" validate:"required,oneof=init vibe family notes_liked notes_avoid intensity occasion done"`
}

type SendMessageResponse struct {
	Step             conversation.Step                `json:"step"`
	AssistantMessage string                           `json:"assistant_message"`
	Chips            []string                         `json:"chips"`
	Recommendations  []recommendation.ScoredCandidate `json:"recommendations"`
}

type ChatHistoryResponse struct {
	Id        uuid.UUID `json:"id"`
	Role      string    `json:"role"`
	Content   string    `json:"content"`
	Step      *string   `json:"step"`
	Chips     []string  `json:"chips"`
	CreatedAt time.Time `json:"created_at"`
}

// PublishRecommendationLogMessage travels on the in-process recommendation log topic.
type PublishRecommendationLogMessage struct {
	ChatSessionId uuid.UUID                  `json:"session_id"`
	Profile       recommendation.UserProfile `json:"profile"`
	Items         []RecommendationLogItem    `json:"items"`
}

type RecommendationLogItem struct {
	Slug    string   `json:"slug"`
	Score   int      `json:"score"`
	Reasons []string `json:"reasons"`
}
