package dto

import "github.com/google/uuid"

type ProductResponse struct {
	Id             uuid.UUID             `json:"id"`
	Slug           string                `json:"slug"`
	Name           string                `json:"name"`
	Concentration  string                `json:"concentration"`
	PriceFromCents int64                 `json:"price_from_cents"`
	Family         string                `json:"family"`
	Intensity      int                   `json:"intensity"`
	Tenue          int                   `json:"tenue"`
	Sillage        int                   `json:"sillage"`
	Seasons        []string              `json:"seasons"`
	Moments        []string              `json:"moments"`
	Notes          []ProductNoteResponse `json:"notes"`
	Vibes          []ProductVibeResponse `json:"vibes"`
}

type ProductNoteResponse struct {
	Name   string `json:"name"`
	Type   string `json:"type"`
	Weight int    `json:"weight"`
}

type ProductVibeResponse struct {
	Label  string `json:"label"`
	Weight int    `json:"weight"`
}
