package mapper

import (
	"time"

	"scent-advisor-be/internal/entity"
	"scent-advisor-be/internal/model"
	"scent-advisor-be/pkg/advisor/recommendation"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type ProductMapper struct{}

func NewProductMapper() *ProductMapper {
	return &ProductMapper{}
}

func (m *ProductMapper) ToEntity(p *model.Product) *entity.Product {
	if p == nil {
		return nil
	}

	var updatedAt *time.Time
	if !p.UpdatedAt.IsZero() {
		t := p.UpdatedAt
		updatedAt = &t
	}

	notes := make([]entity.ProductNote, 0, len(p.Notes))
	for _, n := range p.Notes {
		notes = append(notes, entity.ProductNote{
			Id:        n.Id,
			ProductId: n.ProductId,
			Name:      n.Name,
			Type:      n.Type,
			Weight:    n.Weight,
		})
	}

	vibes := make([]entity.ProductVibe, 0, len(p.Vibes))
	for _, v := range p.Vibes {
		vibes = append(vibes, entity.ProductVibe{
			Id:        v.Id,
			ProductId: v.ProductId,
			Label:     v.Label,
			Weight:    v.Weight,
		})
	}

	return &entity.Product{
		Id:             p.Id,
		Slug:           p.Slug,
		Name:           p.Name,
		Concentration:  p.Concentration,
		PriceFromCents: p.PriceFromCents,
		Family:         p.Family,
		Intensity:      p.Intensity,
		Tenue:          p.Tenue,
		Sillage:        p.Sillage,
		Seasons:        nonNil(p.Seasons),
		Moments:        nonNil(p.Moments),
		IsActive:       p.IsActive,
		Notes:          notes,
		Vibes:          vibes,
		CreatedAt:      p.CreatedAt,
		UpdatedAt:      updatedAt,
	}
}

func (m *ProductMapper) ToEntities(products []*model.Product) []*entity.Product {
	out := make([]*entity.Product, 0, len(products))
	for _, p := range products {
		out = append(out, m.ToEntity(p))
	}
	return out
}

// ToCandidate projects a catalog product onto what the scorer needs.
func (m *ProductMapper) ToCandidate(p *entity.Product) recommendation.ProductCandidate {
	notes := make([]recommendation.Note, 0, len(p.Notes))
	for _, n := range p.Notes {
		notes = append(notes, recommendation.Note{
			Name:   n.Name,
			Type:   recommendation.NoteType(n.Type),
			Weight: n.Weight,
		})
	}

	vibes := make([]recommendation.Vibe, 0, len(p.Vibes))
	for _, v := range p.Vibes {
		vibes = append(vibes, recommendation.Vibe{Label: v.Label, Weight: v.Weight})
	}

	return recommendation.ProductCandidate{
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
		Vibes:          vibes,
		Notes:          notes,
	}
}

func (m *ProductMapper) ToCandidates(products []*entity.Product) []recommendation.ProductCandidate {
	out := make([]recommendation.ProductCandidate, 0, len(products))
	for _, p := range products {
		out = append(out, m.ToCandidate(p))
	}
	return out
}

// CandidateToModel builds a catalog row from a candidate. Used by the seeder.
func (m *ProductMapper) CandidateToModel(c recommendation.ProductCandidate, sortOrder int) *model.Product {
	id := uuid.New()

	notes := make([]model.ProductNote, 0, len(c.Notes))
	for i, n := range c.Notes {
		notes = append(notes, model.ProductNote{
			Id:        uuid.New(),
			ProductId: id,
			Name:      n.Name,
			Type:      string(n.Type),
			Weight:    n.Weight,
			Position:  i,
		})
	}

	vibes := make([]model.ProductVibe, 0, len(c.Vibes))
	for i, v := range c.Vibes {
		vibes = append(vibes, model.ProductVibe{
			Id:        uuid.New(),
			ProductId: id,
			Label:     v.Label,
			Weight:    v.Weight,
			Position:  i,
		})
	}

	return &model.Product{
		Id:             id,
		Slug:           c.Slug,
		Name:           c.Name,
		Concentration:  c.Concentration,
		PriceFromCents: c.PriceFromCents,
		Family:         c.Family,
		Intensity:      c.Intensity,
		Tenue:          c.Tenue,
		Sillage:        c.Sillage,
		Seasons:        datatypes.JSONSlice[string](c.Seasons),
		Moments:        datatypes.JSONSlice[string](c.Moments),
		IsActive:       true,
		SortOrder:      sortOrder,
		Notes:          notes,
		Vibes:          vibes,
	}
}

func nonNil(values []string) []string {
	if values == nil {
		return []string{}
	}
	return values
}
