package mapper

import (
	"time"

	"scent-advisor-be/internal/entity"
	"scent-advisor-be/internal/model"
	"scent-advisor-be/pkg/advisor/conversation"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type ChatMapper struct{}

func NewChatMapper() *ChatMapper {
	return &ChatMapper{}
}

// Session Mappers

func (m *ChatMapper) ChatSessionToEntity(s *model.ChatSession) *entity.ChatSession {
	if s == nil {
		return nil
	}

	var deletedAt *time.Time
	if s.DeletedAt.Valid {
		t := s.DeletedAt.Time
		deletedAt = &t
	}

	var updatedAt *time.Time
	if !s.UpdatedAt.IsZero() {
		t := s.UpdatedAt
		updatedAt = &t
	}

	return &entity.ChatSession{
		Id:          s.Id,
		Locale:      s.Locale,
		Mode:        s.Mode,
		ProductSlug: s.ProductSlug,
		CreatedAt:   s.CreatedAt,
		UpdatedAt:   updatedAt,
		DeletedAt:   deletedAt,
		IsDeleted:   s.DeletedAt.Valid,
	}
}

func (m *ChatMapper) ChatSessionToModel(s *entity.ChatSession) *model.ChatSession {
	if s == nil {
		return nil
	}

	var deletedAt gorm.DeletedAt
	if s.DeletedAt != nil {
		deletedAt = gorm.DeletedAt{Time: *s.DeletedAt, Valid: true}
	} else if s.IsDeleted {
		deletedAt = gorm.DeletedAt{Time: time.Now(), Valid: true}
	}

	var updatedAt time.Time
	if s.UpdatedAt != nil {
		updatedAt = *s.UpdatedAt
	}

	return &model.ChatSession{
		Id:          s.Id,
		Locale:      s.Locale,
		Mode:        s.Mode,
		ProductSlug: s.ProductSlug,
		CreatedAt:   s.CreatedAt,
		UpdatedAt:   updatedAt,
		DeletedAt:   deletedAt,
	}
}

// Message Mappers

func (m *ChatMapper) ChatMessageToEntity(msg *model.ChatMessage) *entity.ChatMessage {
	if msg == nil {
		return nil
	}

	chips := []string(msg.Chips)
	if chips == nil {
		chips = []string{}
	}

	return &entity.ChatMessage{
		Id:            msg.Id,
		ChatSessionId: msg.ChatSessionId,
		Role:          msg.Role,
		Content:       msg.Content,
		StepKey:       msg.StepKey,
		Chips:         chips,
		CreatedAt:     msg.CreatedAt,
		Seq:           msg.Seq,
	}
}

func (m *ChatMapper) ChatMessageToModel(msg *entity.ChatMessage) *model.ChatMessage {
	if msg == nil {
		return nil
	}

	return &model.ChatMessage{
		Id:            msg.Id,
		ChatSessionId: msg.ChatSessionId,
		Role:          msg.Role,
		Content:       msg.Content,
		StepKey:       msg.StepKey,
		Chips:         datatypes.JSONSlice[string](msg.Chips),
		CreatedAt:     msg.CreatedAt,
		Seq:           msg.Seq,
	}
}

// ChatMessagesToTurns converts ordered history into the turns the profile builder folds.
func (m *ChatMapper) ChatMessagesToTurns(messages []*entity.ChatMessage) []conversation.Turn {
	turns := make([]conversation.Turn, 0, len(messages))
	for _, msg := range messages {
		if msg == nil {
			continue
		}
		var stepKey string
		if msg.StepKey != nil {
			stepKey = *msg.StepKey
		}
		turns = append(turns, conversation.Turn{
			Role:    conversation.Role(msg.Role),
			Content: msg.Content,
			StepKey: stepKey,
		})
	}
	return turns
}

// Recommendation Log Mappers

func (m *ChatMapper) RecommendationLogToModel(l *entity.RecommendationLog) *model.RecommendationLog {
	if l == nil {
		return nil
	}
	return &model.RecommendationLog{
		Id:                      l.Id,
		ChatSessionId:           l.ChatSessionId,
		ProfileJson:             datatypes.JSON(l.ProfileJson),
		RecommendedProductsJson: datatypes.JSON(l.RecommendedProductsJson),
		CreatedAt:               l.CreatedAt,
	}
}

func (m *ChatMapper) RecommendationLogToEntity(l *model.RecommendationLog) *entity.RecommendationLog {
	if l == nil {
		return nil
	}
	return &entity.RecommendationLog{
		Id:                      l.Id,
		ChatSessionId:           l.ChatSessionId,
		ProfileJson:             []byte(l.ProfileJson),
		RecommendedProductsJson: []byte(l.RecommendedProductsJson),
		CreatedAt:               l.CreatedAt,
	}
}
