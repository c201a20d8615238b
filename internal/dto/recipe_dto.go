package dto

type IngredientRequest struct {
	ProductID string  `json:"product_id" validate:"required,uuid"`
	Quantity  float64 `json:"quantity"   validate:"gt=0"`
	Unit      string  `json:"unit"       validate:"omitempty,max=10"`
}

type CreateRecipeRequest struct {
	Name         string              `json:"name"         validate:"required,min=1,max=120"`
	Instructions string              `json:"instructions"`
	Tags         []string            `json:"tags"         validate:"dive,min=1,max=40"`
	Ingredients  []IngredientRequest `json:"ingredients"  validate:"dive"`
}

type UpdateRecipeRequest struct {
	Name         *string              `json:"name"         validate:"omitempty,min=1,max=120"`
	Instructions *string              `json:"instructions"`
	Tags         *[]string            `json:"tags"         validate:"omitempty,dive,min=1,max=40"`
	Ingredients  *[]IngredientRequest `json:"ingredients"  validate:"omitempty,dive"`
}

type IngredientResponse struct {
	ProductID   string  `json:"product_id"`
	ProductName string  `json:"product_name"`
	Quantity    float64 `json:"quantity"`
	Unit        string  `json:"unit"`
}

type RecipeResponse struct {
	ID           string               `json:"id"`
	Name         string               `json:"name"`
	Instructions string               `json:"instructions"`
	Tags         []string             `json:"tags"`
	Ingredients  []IngredientResponse `json:"ingredients"`
	CreatedAt    string               `json:"created_at"`
	UpdatedAt    string               `json:"updated_at"`
}
