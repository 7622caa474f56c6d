package main

import (
	"context"
	"fmt"
	"log"

	"scent-advisor-be/internal/mapper"
	"scent-advisor-be/internal/repository/specification"
	"scent-advisor-be/internal/repository/unitofwork"
	"scent-advisor-be/pkg/advisor/recommendation"
)

type CatalogSeeder struct {
	uowFactory unitofwork.RepositoryFactory
	mapper     *mapper.ProductMapper
}

func NewCatalogSeeder(uowFactory unitofwork.RepositoryFactory) *CatalogSeeder {
	return &CatalogSeeder{
		uowFactory: uowFactory,
		mapper:     mapper.NewProductMapper(),
	}
}

// Seed inserts every candidate whose slug is not yet in the catalog, all in
// one transaction. Existing products are left untouched.
func (s *CatalogSeeder) Seed(ctx context.Context, candidates []recommendation.ProductCandidate) (created, skipped int, err error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.Begin(ctx); err != nil {
		return 0, 0, err
	}
	defer uow.Rollback()

	for i, c := range candidates {
		existing, err := uow.ProductRepository().FindOne(ctx, specification.BySlug{Slug: c.Slug})
		if err != nil {
			return 0, 0, fmt.Errorf("lookup %s: %w", c.Slug, err)
		}
		if existing != nil {
			log.Printf("Product '%s' already exists, skipping...", c.Slug)
			skipped++
			continue
		}

		if err := uow.ProductRepository().Create(ctx, s.mapper.CandidateToModel(c, i)); err != nil {
			return 0, 0, fmt.Errorf("create %s: %w", c.Slug, err)
		}
		log.Printf("Created product: %s (%s)", c.Name, c.Slug)
		created++
	}

	if err := uow.Commit(); err != nil {
		return 0, 0, err
	}
	return created, skipped, nil
}
