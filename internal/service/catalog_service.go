package service

import (
	"context"
	"fmt"

	"scent-advisor-be/internal/constant"
	"scent-advisor-be/internal/dto"
	"scent-advisor-be/internal/entity"
	"scent-advisor-be/internal/mapper"
	"scent-advisor-be/internal/pkg/logger"
	"scent-advisor-be/internal/repository/memory"
	"scent-advisor-be/internal/repository/specification"
	"scent-advisor-be/internal/repository/unitofwork"
	"scent-advisor-be/pkg/advisor/recommendation"
)

type ICatalogService interface {
	GetAll(ctx context.Context) ([]*dto.ProductResponse, error)
	GetBySlug(ctx context.Context, slug string) (*dto.ProductResponse, error)
	// Candidates is the catalog as the recommender sees it, in catalog order.
	Candidates(ctx context.Context) ([]recommendation.ProductCandidate, error)
}

type catalogService struct {
	uowFactory unitofwork.RepositoryFactory
	cache      *memory.CatalogCache
	mapper     *mapper.ProductMapper
	logger     logger.ILogger
}

func NewCatalogService(
	uowFactory unitofwork.RepositoryFactory,
	cache *memory.CatalogCache,
	log logger.ILogger,
) ICatalogService {
	return &catalogService{
		uowFactory: uowFactory,
		cache:      cache,
		mapper:     mapper.NewProductMapper(),
		logger:     log,
	}
}

func catalogOrder() []specification.Specification {
	return []specification.Specification{
		specification.IsActive{},
		specification.WithComposition{},
		specification.OrderBy{Field: "sort_order"},
		specification.OrderBy{Field: "slug"},
	}
}

func (s *catalogService) GetAll(ctx context.Context) ([]*dto.ProductResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	products, err := uow.ProductRepository().FindAll(ctx, catalogOrder()...)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}

	result := make([]*dto.ProductResponse, 0, len(products))
	for _, p := range products {
		result = append(result, toProductResponse(p))
	}
	return result, nil
}

func (s *catalogService) GetBySlug(ctx context.Context, slug string) (*dto.ProductResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	product, err := uow.ProductRepository().FindOne(ctx,
		specification.BySlug{Slug: slug},
		specification.IsActive{},
		specification.WithComposition{},
	)
	if err != nil {
		return nil, fmt.Errorf("find product %s: %w", slug, err)
	}
	if product == nil {
		return nil, ErrProductNotFound
	}
	return toProductResponse(product), nil
}

func (s *catalogService) Candidates(ctx context.Context) ([]recommendation.ProductCandidate, error) {
	if s.cache != nil {
		if cached, ok := s.cache.Candidates(); ok {
			return cached, nil
		}
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	products, err := uow.ProductRepository().FindAll(ctx, catalogOrder()...)
	if err != nil {
		return nil, fmt.Errorf("load catalog candidates: %w", err)
	}

	candidates := s.mapper.ToCandidates(products)
	if s.cache != nil {
		s.cache.SaveCandidates(candidates)
	}

	s.logger.Debug(constant.LogModuleCatalog, "Catalog snapshot refreshed", map[string]interface{}{
		"products": len(candidates),
	})
	return candidates, nil
}

func toProductResponse(p *entity.Product) *dto.ProductResponse {
	notes := make([]dto.ProductNoteResponse, 0, len(p.Notes))
	for _, n := range p.Notes {
		notes = append(notes, dto.ProductNoteResponse{Name: n.Name, Type: n.Type, Weight: n.Weight})
	}
	vibes := make([]dto.ProductVibeResponse, 0, len(p.Vibes))
	for _, v := range p.Vibes {
		vibes = append(vibes, dto.ProductVibeResponse{Label: v.Label, Weight: v.Weight})
	}

	return &dto.ProductResponse{
		Id:             p.Id,
		Slug:           p.Slug,
		Name:           p.Name,
		Concentration:  p.Concentration,
		PriceFromCents: p.PriceFromCents,
		Family:         p.Family,
		Intensity:      p.Intensity,
		Tenue:          p.Tenue,
		Sillage:        p.Sillage,
		Seasons:        p.Seasons,
		Moments:        p.Moments,
		Notes:          notes,
		Vibes:          vibes,
	}
}
