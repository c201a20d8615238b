package infra

import (
	"os"
	"path/filepath"
	"testing"

	"cookncart/internal/dto"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateShoppingListPDF(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "exports")
	list := &dto.ShoppingListResponse{
		ID:             "8c4f5a0e-0000-4000-8000-000000000001",
		Title:          "Viikon ostokset",
		PurchasedCount: 1,
		Items: []dto.ShoppingListItemResponse{
			{ProductName: "Maito", Quantity: 2, Unit: "l", LineCost: decimal.RequireFromString("2.30")},
			{ProductName: "Sipuli", Quantity: 3, Unit: "kpl", IsPurchased: true, LineCost: decimal.RequireFromString("1.05")},
			{Missing: true, Quantity: 1, Unit: "kpl"},
		},
	}

	path, err := GenerateShoppingListPDF(list, "2.30 €", dir)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "shopping_list_8c4f5a0e-0000-4000-8000-000000000001.pdf"), path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "%PDF", string(data[:4]))
}

func TestFormatQuantity(t *testing.T) {
	assert.Equal(t, "2 kg", formatQuantity(2, "kg"))
	assert.Equal(t, "0.5 l", formatQuantity(0.5, "l"))
	assert.Equal(t, "1.25 kpl", formatQuantity(1.25, "kpl"))
}
