package app

import (
	"context"
	"path/filepath"
	"testing"

	"cookncart/internal/config"
	"cookncart/internal/dto"
	"cookncart/internal/infra"
	"cookncart/internal/settings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_WiresServices(t *testing.T) {
	db, err := infra.NewDatabase("sqlite", ":memory:")
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "settings.json")
	require.NoError(t, settings.Save(path, settings.Settings{Currency: "$", WeightUnit: "g", VolumeUnit: "l"}))

	a := New(&config.Config{}, db, nil, settings.Load(path))
	ctx := context.Background()

	p, err := a.Products.Create(ctx, dto.CreateProductRequest{Name: "Jauheliha", Unit: "kg", PricePerUnit: decimal.RequireFromString("10.00")})
	require.NoError(t, err)
	l, err := a.ShoppingLists.Create(ctx, dto.CreateShoppingListRequest{Title: "Viikko"})
	require.NoError(t, err)

	// No unit on the entry: the quantity is read in the preferred weight unit.
	_, err = a.ShoppingLists.SetItems(ctx, uuid.MustParse(l.ID), dto.SetItemsRequest{Items: []dto.SelectedProduct{
		{ProductID: p.ID, Quantity: 250},
	}})
	require.NoError(t, err)

	sum, err := a.ShoppingLists.Summary(ctx, uuid.MustParse(l.ID))
	require.NoError(t, err)
	assert.Equal(t, "2.50", sum.TotalBase.StringFixed(2))
	assert.Equal(t, "2.70 $", sum.Display)
}

func TestNewCurrencyConverter_StaticWithoutURL(t *testing.T) {
	c := newCurrencyConverter(&config.Config{}, nil)
	assert.Equal(t, 1.08, c.Rate(context.Background(), "USD"))
}
