package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type RecommendationLog struct {
	Id                      uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	ChatSessionId           uuid.UUID      `gorm:"type:uuid;not null;index"`
	ProfileJson             datatypes.JSON `gorm:"type:jsonb;not null"`
	RecommendedProductsJson datatypes.JSON `gorm:"type:jsonb;not null"`
	CreatedAt               time.Time      `gorm:"autoCreateTime"`
}

func (RecommendationLog) TableName() string {
	return "recommendation_logs"
}
