package unitofwork

import (
	"context"

	"scent-advisor-be/internal/repository/contract"
)

type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit() error
	Rollback() error

	ChatSessionRepository() contract.ChatSessionRepository
	ChatMessageRepository() contract.ChatMessageRepository
	ProductRepository() contract.ProductRepository
	RecommendationLogRepository() contract.RecommendationLogRepository
}
