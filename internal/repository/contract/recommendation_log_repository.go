package contract

import (
	"context"

	"scent-advisor-be/internal/entity"
)

// RecommendationLogRepository is write-only; the log is read by analytics, not by the service.
type RecommendationLogRepository interface {
	Create(ctx context.Context, log *entity.RecommendationLog) error
}
