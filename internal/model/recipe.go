package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Recipe owns an ordered list of ingredients.
type Recipe struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name         string    `gorm:"index;not null"`
	Instructions string
	// Tags is stored comma separated.
	Tags      string
	CreatedAt time.Time
	UpdatedAt time.Time

	Ingredients []RecipeIngredient `gorm:"foreignKey:RecipeID"`
}

func (r *Recipe) BeforeCreate(_ *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}

type RecipeIngredient struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	RecipeID  uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_recipe_product"`
	ProductID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_recipe_product"`
	Position  int       `gorm:"not null;default:0"`
	Quantity  float64   `gorm:"not null"`
	Unit      string    `gorm:"not null;default:'kpl'"`
	CreatedAt time.Time
	UpdatedAt time.Time

	Product *Product `gorm:"foreignKey:ProductID"`
}

func (i *RecipeIngredient) BeforeCreate(_ *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}
