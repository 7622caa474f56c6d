package entity

import (
	"time"

	"github.com/google/uuid"
)

type Product struct {
	Id             uuid.UUID
	Slug           string
	Name           string
	Concentration  string
	PriceFromCents int64
	Family         string
	Intensity      int
	Tenue          int
	Sillage        int
	Seasons        []string
	Moments        []string
	IsActive       bool
	Notes          []ProductNote
	Vibes          []ProductVibe
	CreatedAt      time.Time
	UpdatedAt      *time.Time
}

type ProductNote struct {
	Id        uuid.UUID
	ProductId uuid.UUID
	Name      string
	Type      string // TOP | HEART | BASE
	Weight    int
}

type ProductVibe struct {
	Id        uuid.UUID
	ProductId uuid.UUID
	Label     string
	Weight    int
}
