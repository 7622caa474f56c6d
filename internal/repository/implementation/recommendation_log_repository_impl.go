package implementation

import (
	"context"

	"scent-advisor-be/internal/entity"
	"scent-advisor-be/internal/mapper"
	"scent-advisor-be/internal/repository/contract"

	"gorm.io/gorm"
)

type RecommendationLogRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.ChatMapper
}

func NewRecommendationLogRepository(db *gorm.DB) contract.RecommendationLogRepository {
	return &RecommendationLogRepositoryImpl{
		db:     db,
		mapper: mapper.NewChatMapper(),
	}
}

func (r *RecommendationLogRepositoryImpl) Create(ctx context.Context, log *entity.RecommendationLog) error {
	m := r.mapper.RecommendationLogToModel(log)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*log = *r.mapper.RecommendationLogToEntity(m)
	return nil
}

