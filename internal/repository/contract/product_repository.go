package contract

import (
	"context"

	"scent-advisor-be/internal/entity"
	"scent-advisor-be/internal/model"
	"scent-advisor-be/internal/repository/specification"
)

type ProductRepository interface {
	// Create inserts a product with its notes and vibes.
	Create(ctx context.Context, product *model.Product) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Product, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Product, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
}
