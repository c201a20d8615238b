// Package shopping holds the pure shopping-list rules: diffing a submitted
// product selection against persisted items, and costing a list.
package shopping

import (
	"math"
	"strings"

	"cookncart/internal/apperror"
	"cookncart/internal/model"

	"github.com/google/uuid"
)

// DefaultUnit is used when a selection entry carries no unit.
const DefaultUnit = "kpl"

const quantityEpsilon = 1e-9

// DesiredItem is one entry of a submitted selection.
type DesiredItem struct {
	ProductID uuid.UUID
	Quantity  float64
	Unit      string
	// ClearPurchased unmarks an existing purchased item when it changes.
	ClearPurchased bool
}

// Plan is the outcome of Reconcile. It must be applied deletes first, then
// updates, then inserts.
type Plan struct {
	ToInsert []model.ShoppingListItem
	ToUpdate []model.ShoppingListItem
	ToDelete []uuid.UUID
}

// Empty reports whether applying the plan would change nothing.
func (p Plan) Empty() bool {
	return len(p.ToInsert) == 0 && len(p.ToUpdate) == 0 && len(p.ToDelete) == 0
}

// ValidateSelection rejects entries without a product, with a non-positive
// quantity, or naming a product twice.
func ValidateSelection(desired []DesiredItem) error {
	seen := make(map[uuid.UUID]struct{}, len(desired))
	for i, d := range desired {
		if d.ProductID == uuid.Nil {
			return apperror.NewInvalidSelection(i, "", "missing product id")
		}
		if math.IsNaN(d.Quantity) || math.IsInf(d.Quantity, 0) || d.Quantity <= 0 {
			return apperror.NewInvalidSelection(i, d.ProductID.String(), "quantity must be greater than zero")
		}
		if _, dup := seen[d.ProductID]; dup {
			return apperror.NewInvalidSelection(i, d.ProductID.String(), "product selected more than once")
		}
		seen[d.ProductID] = struct{}{}
	}
	return nil
}

// Reconcile diffs existing items of listID against desired, keyed by product id.
// Items present in both with the same quantity and unit produce no change, so
// reconciling the result again with the same selection yields an empty plan.
// Extra rows sharing a product id with an earlier row are scheduled for deletion.
func Reconcile(listID uuid.UUID, existing []model.ShoppingListItem, desired []DesiredItem) (Plan, error) {
	if err := ValidateSelection(desired); err != nil {
		return Plan{}, err
	}

	var plan Plan
	byProduct := make(map[uuid.UUID]model.ShoppingListItem, len(existing))
	for _, item := range existing {
		if _, dup := byProduct[item.ProductID]; dup {
			plan.ToDelete = append(plan.ToDelete, item.ID)
			continue
		}
		byProduct[item.ProductID] = item
	}

	wanted := make(map[uuid.UUID]struct{}, len(desired))
	for _, d := range desired {
		wanted[d.ProductID] = struct{}{}
		unit := strings.TrimSpace(d.Unit)
		if unit == "" {
			unit = DefaultUnit
		}

		cur, ok := byProduct[d.ProductID]
		if !ok {
			plan.ToInsert = append(plan.ToInsert, model.ShoppingListItem{
				ShoppingListID: listID,
				ProductID:      d.ProductID,
				Quantity:       d.Quantity,
				Unit:           unit,
			})
			continue
		}
		if sameQuantity(cur.Quantity, d.Quantity) && strings.EqualFold(strings.TrimSpace(cur.Unit), unit) {
			continue
		}
		cur.Quantity = d.Quantity
		cur.Unit = unit
		if d.ClearPurchased {
			cur.IsPurchased = false
		}
		plan.ToUpdate = append(plan.ToUpdate, cur)
	}

	// Walk existing in order so the delete list is deterministic.
	for _, item := range existing {
		kept, ok := byProduct[item.ProductID]
		if !ok || kept.ID != item.ID {
			continue
		}
		if _, keep := wanted[item.ProductID]; !keep {
			plan.ToDelete = append(plan.ToDelete, item.ID)
		}
	}
	return plan, nil
}

func sameQuantity(a, b float64) bool {
	return math.Abs(a-b) <= quantityEpsilon
}
