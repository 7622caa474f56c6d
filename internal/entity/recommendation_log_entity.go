package entity

import (
	"time"

	"github.com/google/uuid"
)

type RecommendationLog struct {
	Id                      uuid.UUID
	ChatSessionId           uuid.UUID
	ProfileJson             []byte
	RecommendedProductsJson []byte
	CreatedAt               time.Time
}
