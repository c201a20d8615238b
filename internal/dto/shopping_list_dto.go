package dto

import "github.com/shopspring/decimal"

// ─── Request DTOs ────────────────────────────────────────────────────────────

type CreateShoppingListRequest struct {
	Title string `json:"title" validate:"required,min=1,max=100"`
}

// SelectedProduct is one row of the product picker. Entries are checked
// individually so a bad row can be named back to the user.
type SelectedProduct struct {
	ProductID string  `json:"product_id"`
	Quantity  float64 `json:"quantity"`
	Unit      string  `json:"unit"`
}

type SetItemsRequest struct {
	Items []SelectedProduct `json:"items"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type ShoppingListItemResponse struct {
	ID          string          `json:"id"`
	ProductID   string          `json:"product_id"`
	ProductName string          `json:"product_name"`
	Quantity    float64         `json:"quantity"`
	Unit        string          `json:"unit"`
	IsPurchased bool            `json:"is_purchased"`
	LineCost    decimal.Decimal `json:"line_cost"`
	// Missing is set when the referenced product no longer exists.
	Missing bool `json:"missing"`
}

type ShoppingListResponse struct {
	ID             string                     `json:"id"`
	Title          string                     `json:"title"`
	TotalSum       decimal.Decimal            `json:"total_sum"`
	PurchasedCount int                        `json:"purchased_count"`
	Items          []ShoppingListItemResponse `json:"items"`
	CreatedAt      string                     `json:"created_at"`
	UpdatedAt      string                     `json:"updated_at"`
}

// ShoppingListSummary is what the list overview page shows per list.
type ShoppingListSummary struct {
	ID             string          `json:"id"`
	Title          string          `json:"title"`
	ItemCount      int             `json:"item_count"`
	PurchasedCount int             `json:"purchased_count"`
	TotalBase      decimal.Decimal `json:"total_base"`
	TotalDisplay   decimal.Decimal `json:"total_display"`
	Currency       string          `json:"currency"`
	Display        string          `json:"display"`
}

type ImportRecipeResponse struct {
	List ShoppingListResponse `json:"list"`
	// Skipped names ingredients whose unit could not be merged into the listed item.
	Skipped []string `json:"skipped"`
}
