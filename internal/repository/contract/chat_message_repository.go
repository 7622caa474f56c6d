package contract

import (
	"context"

	"scent-advisor-be/internal/entity"
	"scent-advisor-be/internal/repository/specification"
)

// ChatMessageRepository is append-only: turns are never edited once written.
type ChatMessageRepository interface {
	Create(ctx context.Context, message *entity.ChatMessage) error
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.ChatMessage, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
}
