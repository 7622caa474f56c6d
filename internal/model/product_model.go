package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Product struct {
	Id             uuid.UUID                   `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Slug           string                      `gorm:"type:varchar(120);not null;uniqueIndex"`
	Name           string                      `gorm:"type:varchar(255);not null"`
	Concentration  string                      `gorm:"type:varchar(50);not null"`
	PriceFromCents int64                       `gorm:"not null;check:price_from_cents >= 0"`
	Family         string                      `gorm:"type:varchar(50);not null"`
	Intensity      int                         `gorm:"type:smallint;not null;default:3"`
	Tenue          int                         `gorm:"type:smallint;not null;default:3"`
	Sillage        int                         `gorm:"type:smallint;not null;default:3"`
	Seasons        datatypes.JSONSlice[string] `gorm:"type:jsonb"`
	Moments        datatypes.JSONSlice[string] `gorm:"type:jsonb"`
	IsActive       bool                        `gorm:"not null;default:true"`
	SortOrder      int                         `gorm:"not null;default:0"`
	Notes          []ProductNote               `gorm:"foreignKey:ProductId;constraint:OnDelete:CASCADE"`
	Vibes          []ProductVibe               `gorm:"foreignKey:ProductId;constraint:OnDelete:CASCADE"`
	CreatedAt      time.Time                   `gorm:"autoCreateTime"`
	UpdatedAt      time.Time                   `gorm:"autoUpdateTime"`
	DeletedAt      gorm.DeletedAt              `gorm:"index"`
}

func (Product) TableName() string {
	return "products"
}

type ProductNote struct {
	Id        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	ProductId uuid.UUID `gorm:"type:uuid;not null;index"`
	Name      string    `gorm:"type:varchar(120);not null"`
	Type      string    `gorm:"type:varchar(10);not null"`
	Weight    int       `gorm:"type:smallint;not null"`
	Position  int       `gorm:"not null;default:0"`
}

func (ProductNote) TableName() string {
	return "product_notes"
}

type ProductVibe struct {
	Id        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	ProductId uuid.UUID `gorm:"type:uuid;not null;index"`
	Label     string    `gorm:"type:varchar(120);not null"`
	Weight    int       `gorm:"type:smallint;not null"`
	Position  int       `gorm:"not null;default:0"`
}

func (ProductVibe) TableName() string {
	return "product_vibes"
}
