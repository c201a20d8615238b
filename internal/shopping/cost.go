package shopping

import (
	"cookncart/internal/conversion"
	"cookncart/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Preferences are the user's entry/display units.
type Preferences struct {
	WeightUnit string
	VolumeUnit string
}

func (p Preferences) unitFor(class conversion.Class) string {
	switch class {
	case conversion.ClassWeight:
		return p.WeightUnit
	case conversion.ClassVolume:
		return p.VolumeUnit
	}
	return ""
}

// PricedQuantity returns item's quantity expressed in product's native unit.
// Piece products use the quantity as is. For weight and volume products the
// item's own unit is used when it belongs to the product's class; otherwise the
// quantity is taken to be in the preferred unit of that class.
func PricedQuantity(item model.ShoppingListItem, product model.Product, prefs Preferences) float64 {
	var units conversion.UnitConverter
	class := units.ClassOf(product.Unit)
	if class == conversion.ClassPiece {
		return item.Quantity
	}
	nativeFactor, _ := units.Factor(product.Unit)

	entryUnit := item.Unit
	if units.ClassOf(entryUnit) != class {
		entryUnit = prefs.unitFor(class)
	}
	entryFactor, ok := units.Factor(entryUnit)
	if !ok || units.ClassOf(entryUnit) != class {
		return item.Quantity
	}
	return item.Quantity * entryFactor / nativeFactor
}

// LineCost is price × priced quantity, unrounded.
func LineCost(item model.ShoppingListItem, product model.Product, prefs Preferences) decimal.Decimal {
	qty := PricedQuantity(item, product, prefs)
	return product.PricePerUnit.Mul(decimal.NewFromFloat(qty))
}

// TotalCost sums the line cost of every unpurchased item and rounds the sum to
// two decimals once. Items whose product is absent from products are skipped
// and their product ids returned.
func TotalCost(items []model.ShoppingListItem, products map[uuid.UUID]model.Product, prefs Preferences) (decimal.Decimal, []uuid.UUID) {
	total := decimal.Zero
	var missing []uuid.UUID
	for _, item := range items {
		if item.IsPurchased {
			continue
		}
		product, ok := products[item.ProductID]
		if !ok {
			missing = append(missing, item.ProductID)
			continue
		}
		total = total.Add(LineCost(item, product, prefs))
	}
	return total.Round(2), missing
}

// PurchasedCount counts purchased items.
func PurchasedCount(items []model.ShoppingListItem) int {
	n := 0
	for _, item := range items {
		if item.IsPurchased {
			n++
		}
	}
	return n
}
