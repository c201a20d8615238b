package shopping

import (
	"testing"

	"cookncart/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

var defaultPrefs = Preferences{WeightUnit: "kg", VolumeUnit: "l"}

func product(unit, price string) model.Product {
	return model.Product{ID: uuid.New(), Name: "p", Unit: unit, PricePerUnit: decimal.RequireFromString(price)}
}

func assertDecimal(t *testing.T, want string, got decimal.Decimal) {
	t.Helper()
	assert.True(t, decimal.RequireFromString(want).Equal(got), "want %s, got %s", want, got)
}

func TestLineCost_VolumeInPreferredUnit(t *testing.T) {
	milk := product("l", "2.00")
	it := model.ShoppingListItem{ProductID: milk.ID, Quantity: 500, Unit: "ml"}
	prefs := Preferences{WeightUnit: "kg", VolumeUnit: "ml"}

	assert.InDelta(t, 0.5, PricedQuantity(it, milk, prefs), 1e-12)
	assertDecimal(t, "1.00", LineCost(it, milk, prefs).Round(2))
}

func TestPricedQuantity_PieceProductIgnoresUnits(t *testing.T) {
	onion := product("kpl", "0.35")
	it := model.ShoppingListItem{Quantity: 3, Unit: "g"}
	assert.Equal(t, 3.0, PricedQuantity(it, onion, defaultPrefs))
}

func TestPricedQuantity_ItemUnitOfOtherClassUsesPreference(t *testing.T) {
	mince := product("kg", "9.00")
	it := model.ShoppingListItem{Quantity: 400, Unit: "kpl"}
	prefs := Preferences{WeightUnit: "g", VolumeUnit: "l"}
	assert.InDelta(t, 0.4, PricedQuantity(it, mince, prefs), 1e-12)
}

func TestPricedQuantity_NativeUnitSmallerThanEntryUnit(t *testing.T) {
	pasta := product("g", "0.01")
	it := model.ShoppingListItem{Quantity: 0.5, Unit: "kg"}
	assert.InDelta(t, 500, PricedQuantity(it, pasta, defaultPrefs), 1e-9)
}

func TestTotalCost_ExcludesPurchased(t *testing.T) {
	a := product("kpl", "1.50")
	b := product("kpl", "2.25")
	products := map[uuid.UUID]model.Product{a.ID: a, b.ID: b}
	items := []model.ShoppingListItem{
		{ProductID: a.ID, Quantity: 2, Unit: "kpl"},
		{ProductID: b.ID, Quantity: 1, Unit: "kpl", IsPurchased: true},
	}

	total, missing := TotalCost(items, products, defaultPrefs)
	assertDecimal(t, "3.00", total)
	assert.Empty(t, missing)

	items[1].IsPurchased = false
	total, _ = TotalCost(items, products, defaultPrefs)
	assertDecimal(t, "5.25", total)
}

func TestTotalCost_SkipsMissingProducts(t *testing.T) {
	a := product("kpl", "1.00")
	gone := uuid.New()
	items := []model.ShoppingListItem{
		{ProductID: a.ID, Quantity: 2},
		{ProductID: gone, Quantity: 5},
	}

	total, missing := TotalCost(items, map[uuid.UUID]model.Product{a.ID: a}, defaultPrefs)
	assertDecimal(t, "2.00", total)
	assert.Equal(t, []uuid.UUID{gone}, missing)
}

func TestTotalCost_RoundsOnce(t *testing.T) {
	// Each line is 0.333; rounding per line would give 0.99, rounding the sum gives 1.00.
	p := product("kg", "0.333")
	products := map[uuid.UUID]model.Product{p.ID: p}
	items := []model.ShoppingListItem{
		{ProductID: p.ID, Quantity: 1, Unit: "kg"},
		{ProductID: p.ID, Quantity: 1000, Unit: "g"},
		{ProductID: p.ID, Quantity: 1, Unit: "kg"},
	}
	total, _ := TotalCost(items, products, defaultPrefs)
	assertDecimal(t, "1.00", total)
}

func TestTotalCost_Empty(t *testing.T) {
	total, missing := TotalCost(nil, nil, defaultPrefs)
	assert.True(t, total.IsZero())
	assert.Empty(t, missing)
}

func TestPurchasedCount(t *testing.T) {
	items := []model.ShoppingListItem{{IsPurchased: true}, {}, {IsPurchased: true}}
	assert.Equal(t, 2, PurchasedCount(items))
}
