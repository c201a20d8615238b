package repository

import (
	"context"

	"cookncart/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type RecipeRepository interface {
	Create(ctx context.Context, r *model.Recipe) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Recipe, error)
	List(ctx context.Context) ([]model.Recipe, error)
	// Update saves the recipe columns and replaces its ingredients.
	Update(ctx context.Context, r *model.Recipe) error
	Delete(ctx context.Context, id uuid.UUID) error
	CountIngredientsByProduct(ctx context.Context, productID uuid.UUID) (int64, error)
}

type recipeRepo struct{ db *gorm.DB }

func NewRecipeRepository(db *gorm.DB) RecipeRepository { return &recipeRepo{db: db} }

func orderedIngredients(db *gorm.DB) *gorm.DB { return db.Order("position ASC") }

func (r *recipeRepo) Create(ctx context.Context, rec *model.Recipe) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Create(rec).Error; err != nil {
			return err
		}
		return insertIngredients(tx, rec)
	})
}

func insertIngredients(tx *gorm.DB, rec *model.Recipe) error {
	if len(rec.Ingredients) == 0 {
		return nil
	}
	for i := range rec.Ingredients {
		rec.Ingredients[i].RecipeID = rec.ID
		rec.Ingredients[i].Position = i
	}
	return tx.Omit(clause.Associations).Create(&rec.Ingredients).Error
}

func (r *recipeRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Recipe, error) {
	var rec model.Recipe
	err := r.db.WithContext(ctx).
		Preload("Ingredients", orderedIngredients).
		Preload("Ingredients.Product").
		First(&rec, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

func (r *recipeRepo) List(ctx context.Context) ([]model.Recipe, error) {
	var recs []model.Recipe
	err := r.db.WithContext(ctx).
		Preload("Ingredients", orderedIngredients).
		Preload("Ingredients.Product").
		Order("name ASC").Find(&recs).Error
	return recs, err
}

func (r *recipeRepo) Update(ctx context.Context, rec *model.Recipe) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&model.Recipe{}).Where("id = ?", rec.ID).Updates(map[string]interface{}{
			"name":         rec.Name,
			"instructions": rec.Instructions,
			"tags":         rec.Tags,
		}).Error; err != nil {
			return err
		}
		if err := tx.Where("recipe_id = ?", rec.ID).Delete(&model.RecipeIngredient{}).Error; err != nil {
			return err
		}
		for i := range rec.Ingredients {
			rec.Ingredients[i].ID = uuid.Nil
		}
		return insertIngredients(tx, rec)
	})
}

func (r *recipeRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("recipe_id = ?", id).Delete(&model.RecipeIngredient{}).Error; err != nil {
			return err
		}
		return tx.Delete(&model.Recipe{}, "id = ?", id).Error
	})
}

func (r *recipeRepo) CountIngredientsByProduct(ctx context.Context, productID uuid.UUID) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&model.RecipeIngredient{}).Where("product_id = ?", productID).Count(&n).Error
	return n, err
}
