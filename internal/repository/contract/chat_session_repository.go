package contract

import (
	"context"

	"scent-advisor-be/internal/entity"
	"scent-advisor-be/internal/repository/specification"
)

type ChatSessionRepository interface {
	Create(ctx context.Context, session *entity.ChatSession) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.ChatSession, error)
}
