package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// ShoppingList caches TotalSum (base currency, unpurchased items only) and
// PurchasedCount; both are recomputed from Items after every change.
type ShoppingList struct {
	ID             uuid.UUID       `gorm:"type:uuid;primaryKey"`
	Title          string          `gorm:"not null"`
	TotalSum       decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	PurchasedCount int             `gorm:"not null;default:0"`
	CreatedAt      time.Time
	UpdatedAt      time.Time

	Items []ShoppingListItem `gorm:"foreignKey:ShoppingListID"`
}

func (l *ShoppingList) BeforeCreate(_ *gorm.DB) error {
	if l.ID == uuid.Nil {
		l.ID = uuid.New()
	}
	return nil
}

// ShoppingListItem is one product on a list. At most one row exists per
// (ShoppingListID, ProductID); Quantity is expressed in Unit, which may differ
// from the product's own unit.
type ShoppingListItem struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey"`
	ShoppingListID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_list_product"`
	ProductID      uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_list_product"`
	Quantity       float64   `gorm:"not null"`
	Unit           string    `gorm:"not null;default:'kpl'"`
	IsPurchased    bool      `gorm:"not null;default:false"`
	CreatedAt      time.Time
	UpdatedAt      time.Time

	Product *Product `gorm:"foreignKey:ProductID"`
}

func (i *ShoppingListItem) BeforeCreate(_ *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}
