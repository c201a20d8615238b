package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Product is a catalogue entry. PricePerUnit is always the price of one Unit and
// keeps sub-cent precision so per-gram and per-millilitre prices cost correctly.
type Product struct {
	ID           uuid.UUID       `gorm:"type:uuid;primaryKey"`
	Name         string          `gorm:"index;not null"`
	Unit         string          `gorm:"not null;default:'kpl'"`
	PricePerUnit decimal.Decimal `gorm:"type:decimal(12,6);not null"`
	Category     string          `gorm:"index"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (p *Product) BeforeCreate(_ *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}
