package dto

import "github.com/shopspring/decimal"

// ─── Request DTOs ────────────────────────────────────────────────────────────

type CreateProductRequest struct {
	Name         string          `json:"name"           validate:"required,min=1,max=120"`
	Unit         string          `json:"unit"           validate:"omitempty,max=10"`
	PricePerUnit decimal.Decimal `json:"price_per_unit" validate:"gte=0"`
	Category     string          `json:"category"       validate:"max=60"`
}

type UpdateProductRequest struct {
	Name         *string          `json:"name"           validate:"omitempty,min=1,max=120"`
	Unit         *string          `json:"unit"           validate:"omitempty,max=10"`
	PricePerUnit *decimal.Decimal `json:"price_per_unit"`
	Category     *string          `json:"category"       validate:"omitempty,max=60"`
}

// ─── Filter / Pagination ─────────────────────────────────────────────────────

type ProductFilter struct {
	Name     string
	Category string
	Page     int
	Limit    int
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type ProductResponse struct {
	ID           string          `json:"id"`
	Name         string          `json:"name"`
	Unit         string          `json:"unit"`
	PricePerUnit decimal.Decimal `json:"price_per_unit"`
	Category     string          `json:"category"`
	CreatedAt    string          `json:"created_at"`
	UpdatedAt    string          `json:"updated_at"`
}

type ProductListResponse struct {
	Data       []ProductResponse `json:"data"`
	Total      int64             `json:"total"`
	Page       int               `json:"page"`
	Limit      int               `json:"limit"`
	TotalPages int               `json:"total_pages"`
}
