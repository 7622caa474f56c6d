package specification

import "gorm.io/gorm"

type BySlug struct {
	Slug string
}

func (s BySlug) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("slug = ?", s.Slug)
}

// IsActive keeps only products listed on the storefront.
type IsActive struct{}

func (s IsActive) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("is_active = ?", true)
}

// WithComposition preloads notes and vibes in their authored order.
type WithComposition struct{}

func (s WithComposition) Apply(db *gorm.DB) *gorm.DB {
	return db.
		Preload("Notes", func(tx *gorm.DB) *gorm.DB { return tx.Order("position ASC") }).
		Preload("Vibes", func(tx *gorm.DB) *gorm.DB { return tx.Order("position ASC") })
}
