package repository

import (
	"context"

	"cookncart/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ShoppingListRepository is the persistence collaborator of the shopping-list
// service. The *Tx methods run on a caller-owned transaction so the
// reconciliation apply phase commits or rolls back as one unit.
type ShoppingListRepository interface {
	Create(ctx context.Context, l *model.ShoppingList) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.ShoppingList, error)
	List(ctx context.Context) ([]model.ShoppingList, error)
	UpdateTitle(ctx context.Context, id uuid.UUID, title string) error
	UpdateTotals(ctx context.Context, id uuid.UUID, total decimal.Decimal, purchased int) error
	DeleteTx(tx *gorm.DB, id uuid.UUID) error

	GetItems(ctx context.Context, listID uuid.UUID) ([]model.ShoppingListItem, error)
	GetItemsTx(tx *gorm.DB, listID uuid.UUID) ([]model.ShoppingListItem, error)
	FindItemByID(ctx context.Context, id uuid.UUID) (*model.ShoppingListItem, error)
	SetPurchased(ctx context.Context, itemID uuid.UUID, purchased bool) error
	InsertItemsTx(tx *gorm.DB, listID uuid.UUID, items []model.ShoppingListItem) error
	UpdateItemsTx(tx *gorm.DB, items []model.ShoppingListItem) error
	DeleteItemTx(tx *gorm.DB, itemID uuid.UUID) error

	// CountItemsByProduct reports how many list rows reference a product.
	CountItemsByProduct(ctx context.Context, productID uuid.UUID) (int64, error)

	// DB exposes the underlying *gorm.DB so services can open transactions.
	DB() *gorm.DB
}

type shoppingListRepo struct{ db *gorm.DB }

func NewShoppingListRepository(db *gorm.DB) ShoppingListRepository {
	return &shoppingListRepo{db: db}
}

func (r *shoppingListRepo) DB() *gorm.DB { return r.db }

func (r *shoppingListRepo) Create(ctx context.Context, l *model.ShoppingList) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(l).Error
}

func (r *shoppingListRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.ShoppingList, error) {
	var l model.ShoppingList
	err := r.db.WithContext(ctx).
		Preload("Items", func(db *gorm.DB) *gorm.DB { return db.Order("created_at ASC") }).
		First(&l, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &l, nil
}

func (r *shoppingListRepo) List(ctx context.Context) ([]model.ShoppingList, error) {
	var lists []model.ShoppingList
	err := r.db.WithContext(ctx).Preload("Items").Order("updated_at DESC").Find(&lists).Error
	return lists, err
}

func (r *shoppingListRepo) UpdateTitle(ctx context.Context, id uuid.UUID, title string) error {
	return r.db.WithContext(ctx).Model(&model.ShoppingList{}).Where("id = ?", id).Update("title", title).Error
}

func (r *shoppingListRepo) UpdateTotals(ctx context.Context, id uuid.UUID, total decimal.Decimal, purchased int) error {
	return r.db.WithContext(ctx).Model(&model.ShoppingList{}).Where("id = ?", id).Updates(map[string]interface{}{
		"total_sum":       total,
		"purchased_count": purchased,
	}).Error
}

func (r *shoppingListRepo) DeleteTx(tx *gorm.DB, id uuid.UUID) error {
	if err := tx.Where("shopping_list_id = ?", id).Delete(&model.ShoppingListItem{}).Error; err != nil {
		return err
	}
	return tx.Delete(&model.ShoppingList{}, "id = ?", id).Error
}

func (r *shoppingListRepo) GetItems(ctx context.Context, listID uuid.UUID) ([]model.ShoppingListItem, error) {
	return r.GetItemsTx(r.db.WithContext(ctx), listID)
}

func (r *shoppingListRepo) GetItemsTx(tx *gorm.DB, listID uuid.UUID) ([]model.ShoppingListItem, error) {
	var items []model.ShoppingListItem
	err := tx.Where("shopping_list_id = ?", listID).Order("created_at ASC").Find(&items).Error
	return items, err
}

func (r *shoppingListRepo) FindItemByID(ctx context.Context, id uuid.UUID) (*model.ShoppingListItem, error) {
	var item model.ShoppingListItem
	err := r.db.WithContext(ctx).First(&item, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *shoppingListRepo) SetPurchased(ctx context.Context, itemID uuid.UUID, purchased bool) error {
	return r.db.WithContext(ctx).Model(&model.ShoppingListItem{}).Where("id = ?", itemID).
		Update("is_purchased", purchased).Error
}

func (r *shoppingListRepo) InsertItemsTx(tx *gorm.DB, listID uuid.UUID, items []model.ShoppingListItem) error {
	if len(items) == 0 {
		return nil
	}
	for i := range items {
		items[i].ShoppingListID = listID
	}
	return tx.Omit(clause.Associations).Create(&items).Error
}

func (r *shoppingListRepo) UpdateItemsTx(tx *gorm.DB, items []model.ShoppingListItem) error {
	for _, item := range items {
		res := tx.Model(&model.ShoppingListItem{}).Where("id = ?", item.ID).Updates(map[string]interface{}{
			"quantity":     item.Quantity,
			"unit":         item.Unit,
			"is_purchased": item.IsPurchased,
		})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
	}
	return nil
}

func (r *shoppingListRepo) DeleteItemTx(tx *gorm.DB, itemID uuid.UUID) error {
	return tx.Delete(&model.ShoppingListItem{}, "id = ?", itemID).Error
}

func (r *shoppingListRepo) CountItemsByProduct(ctx context.Context, productID uuid.UUID) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&model.ShoppingListItem{}).Where("product_id = ?", productID).Count(&n).Error
	return n, err
}
