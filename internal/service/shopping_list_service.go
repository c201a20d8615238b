package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"cookncart/internal/apperror"
	"cookncart/internal/conversion"
	"cookncart/internal/dto"
	"cookncart/internal/infra"
	"cookncart/internal/metrics"
	"cookncart/internal/model"
	"cookncart/internal/repository"
	"cookncart/internal/settings"
	"cookncart/internal/shopping"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// SettingsProvider supplies the current user preferences; *settings.Store satisfies it.
type SettingsProvider interface {
	Current() settings.Settings
}

type ShoppingListService interface {
	Create(ctx context.Context, req dto.CreateShoppingListRequest) (*dto.ShoppingListResponse, error)
	// Get recomputes the cached totals from the persisted items before returning.
	Get(ctx context.Context, id uuid.UUID) (*dto.ShoppingListResponse, error)
	List(ctx context.Context) ([]dto.ShoppingListSummary, error)
	Rename(ctx context.Context, id uuid.UUID, title string) (*dto.ShoppingListResponse, error)
	Delete(ctx context.Context, id uuid.UUID) error

	// SetItems brings the list in line with the submitted selection in one transaction.
	SetItems(ctx context.Context, id uuid.UUID, req dto.SetItemsRequest) (*dto.ShoppingListResponse, error)
	TogglePurchased(ctx context.Context, itemID uuid.UUID, purchased bool) (*dto.ShoppingListResponse, error)
	RemoveItem(ctx context.Context, itemID uuid.UUID) (*dto.ShoppingListResponse, error)
	ImportRecipe(ctx context.Context, listID, recipeID uuid.UUID) (*dto.ImportRecipeResponse, error)

	Summary(ctx context.Context, id uuid.UUID) (*dto.ShoppingListSummary, error)
	ExportPDF(ctx context.Context, id uuid.UUID, dir string) (string, error)
}

type shoppingListService struct {
	repo        repository.ShoppingListRepository
	productRepo repository.ProductRepository
	recipeRepo  repository.RecipeRepository
	conv        *conversion.Service
	settings    SettingsProvider
}

func NewShoppingListService(
	repo repository.ShoppingListRepository,
	productRepo repository.ProductRepository,
	recipeRepo repository.RecipeRepository,
	conv *conversion.Service,
	prefs SettingsProvider,
) ShoppingListService {
	if conv == nil {
		conv = conversion.NewService(nil)
	}
	return &shoppingListService{
		repo:        repo,
		productRepo: productRepo,
		recipeRepo:  recipeRepo,
		conv:        conv,
		settings:    prefs,
	}
}

func (s *shoppingListService) currentSettings() settings.Settings {
	if s.settings == nil {
		return settings.Defaults()
	}
	return s.settings.Current()
}

func (s *shoppingListService) preferences() shopping.Preferences {
	cur := s.currentSettings()
	return shopping.Preferences{WeightUnit: cur.WeightUnit, VolumeUnit: cur.VolumeUnit}
}

// ── Create / read ────────────────────────────────────────────────────────────

func (s *shoppingListService) Create(ctx context.Context, req dto.CreateShoppingListRequest) (*dto.ShoppingListResponse, error) {
	req.Title = strings.TrimSpace(req.Title)
	if err := dto.Validate(req); err != nil {
		return nil, err
	}
	l := &model.ShoppingList{Title: req.Title}
	if err := s.repo.Create(ctx, l); err != nil {
		return nil, fmt.Errorf("create shopping list: %w", err)
	}
	return s.refresh(ctx, l)
}

func (s *shoppingListService) load(ctx context.Context, id uuid.UUID) (*model.ShoppingList, error) {
	l, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, notFound(err, "shopping list "+id.String())
	}
	return l, nil
}

func (s *shoppingListService) Get(ctx context.Context, id uuid.UUID) (*dto.ShoppingListResponse, error) {
	l, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.refresh(ctx, l)
}

func (s *shoppingListService) List(ctx context.Context) ([]dto.ShoppingListSummary, error) {
	lists, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list shopping lists: %w", err)
	}
	out := make([]dto.ShoppingListSummary, 0, len(lists))
	for i := range lists {
		resp, err := s.refresh(ctx, &lists[i])
		if err != nil {
			return nil, err
		}
		out = append(out, s.summarize(ctx, resp))
	}
	return out, nil
}

func (s *shoppingListService) Rename(ctx context.Context, id uuid.UUID, title string) (*dto.ShoppingListResponse, error) {
	req := dto.CreateShoppingListRequest{Title: strings.TrimSpace(title)}
	if err := dto.Validate(req); err != nil {
		return nil, err
	}
	if _, err := s.load(ctx, id); err != nil {
		return nil, err
	}
	if err := s.repo.UpdateTitle(ctx, id, req.Title); err != nil {
		return nil, fmt.Errorf("rename shopping list: %w", err)
	}
	return s.Get(ctx, id)
}

func (s *shoppingListService) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.load(ctx, id); err != nil {
		return err
	}
	return runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		return s.repo.DeleteTx(tx, id)
	})
}

// ── Totals ───────────────────────────────────────────────────────────────────

func (s *shoppingListService) productsFor(ctx context.Context, items []model.ShoppingListItem) (map[uuid.UUID]model.Product, error) {
	ids := make([]uuid.UUID, 0, len(items))
	seen := make(map[uuid.UUID]struct{}, len(items))
	for _, it := range items {
		if _, ok := seen[it.ProductID]; ok {
			continue
		}
		seen[it.ProductID] = struct{}{}
		ids = append(ids, it.ProductID)
	}
	products, err := s.productRepo.FindByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("load products: %w", err)
	}
	byID := make(map[uuid.UUID]model.Product, len(products))
	for _, p := range products {
		byID[p.ID] = p
	}
	return byID, nil
}

// refresh recomputes total and purchased count from l.Items, persists them when
// they drifted, and builds the response.
func (s *shoppingListService) refresh(ctx context.Context, l *model.ShoppingList) (*dto.ShoppingListResponse, error) {
	products, err := s.productsFor(ctx, l.Items)
	if err != nil {
		return nil, err
	}
	prefs := s.preferences()

	total, missing := shopping.TotalCost(l.Items, products, prefs)
	for _, id := range missing {
		metrics.MissingProducts.Inc()
		log.Warn().
			Err(&apperror.ProductNotFound{ID: id}).
			Str("shopping_list_id", l.ID.String()).
			Msg("skipping line item in cost total")
	}
	purchased := shopping.PurchasedCount(l.Items)

	if !total.Equal(l.TotalSum) || purchased != l.PurchasedCount {
		if err := s.repo.UpdateTotals(ctx, l.ID, total, purchased); err != nil {
			return nil, fmt.Errorf("store shopping list totals: %w", err)
		}
		l.TotalSum = total
		l.PurchasedCount = purchased
	}

	items := make([]dto.ShoppingListItemResponse, 0, len(l.Items))
	for _, it := range l.Items {
		row := dto.ShoppingListItemResponse{
			ID:          it.ID.String(),
			ProductID:   it.ProductID.String(),
			Quantity:    it.Quantity,
			Unit:        it.Unit,
			IsPurchased: it.IsPurchased,
		}
		if p, ok := products[it.ProductID]; ok {
			row.ProductName = p.Name
			row.LineCost = shopping.LineCost(it, p, prefs).Round(2)
		} else {
			row.Missing = true
		}
		items = append(items, row)
	}

	return &dto.ShoppingListResponse{
		ID:             l.ID.String(),
		Title:          l.Title,
		TotalSum:       l.TotalSum,
		PurchasedCount: l.PurchasedCount,
		Items:          items,
		CreatedAt:      formatTime(l.CreatedAt),
		UpdatedAt:      formatTime(l.UpdatedAt),
	}, nil
}

func (s *shoppingListService) summarize(ctx context.Context, resp *dto.ShoppingListResponse) dto.ShoppingListSummary {
	currency := s.currentSettings().Currency
	display := s.conv.ConvertCurrency(ctx, resp.TotalSum, currency).Round(2)
	return dto.ShoppingListSummary{
		ID:             resp.ID,
		Title:          resp.Title,
		ItemCount:      len(resp.Items),
		PurchasedCount: resp.PurchasedCount,
		TotalBase:      resp.TotalSum,
		TotalDisplay:   display,
		Currency:       currency,
		Display:        conversion.FormatAmount(display, currency),
	}
}

func (s *shoppingListService) Summary(ctx context.Context, id uuid.UUID) (*dto.ShoppingListSummary, error) {
	resp, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	sum := s.summarize(ctx, resp)
	return &sum, nil
}

// ── Reconciliation ───────────────────────────────────────────────────────────

// parseSelection turns picker rows into typed entries and checks each product exists.
func (s *shoppingListService) parseSelection(ctx context.Context, rows []dto.SelectedProduct) ([]shopping.DesiredItem, error) {
	desired := make([]shopping.DesiredItem, 0, len(rows))
	for i, row := range rows {
		raw := strings.TrimSpace(row.ProductID)
		if raw == "" {
			return nil, apperror.NewInvalidSelection(i, "", "missing product id")
		}
		id, err := uuid.Parse(raw)
		if err != nil {
			return nil, apperror.NewInvalidSelection(i, raw, "malformed product id")
		}
		desired = append(desired, shopping.DesiredItem{ProductID: id, Quantity: row.Quantity, Unit: row.Unit})
	}
	if err := shopping.ValidateSelection(desired); err != nil {
		return nil, err
	}

	ids := make([]uuid.UUID, 0, len(desired))
	for _, d := range desired {
		ids = append(ids, d.ProductID)
	}
	products, err := s.productRepo.FindByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("load selected products: %w", err)
	}
	known := make(map[uuid.UUID]struct{}, len(products))
	for _, p := range products {
		known[p.ID] = struct{}{}
	}
	for i, d := range desired {
		if _, ok := known[d.ProductID]; !ok {
			return nil, apperror.NewInvalidSelection(i, d.ProductID.String(), "unknown product")
		}
	}
	return desired, nil
}

// apply reconciles the persisted items of listID against desired inside one
// transaction: deletes, then updates, then inserts. Nothing is visible unless
// every step succeeds.
func (s *shoppingListService) apply(ctx context.Context, listID uuid.UUID, desired []shopping.DesiredItem) error {
	start := time.Now()
	var plan shopping.Plan
	err := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		existing, err := s.repo.GetItemsTx(tx, listID)
		if err != nil {
			return fmt.Errorf("read items: %w", err)
		}
		plan, err = shopping.Reconcile(listID, existing, desired)
		if err != nil {
			return err
		}
		if plan.Empty() {
			return nil
		}
		for _, id := range plan.ToDelete {
			if err := s.repo.DeleteItemTx(tx, id); err != nil {
				return fmt.Errorf("delete item %s: %w", id, err)
			}
		}
		if err := s.repo.UpdateItemsTx(tx, plan.ToUpdate); err != nil {
			return fmt.Errorf("update items: %w", err)
		}
		if err := s.repo.InsertItemsTx(tx, listID, plan.ToInsert); err != nil {
			return fmt.Errorf("insert items: %w", err)
		}
		return nil
	})
	metrics.ApplyDuration.Observe(time.Since(start).Seconds())

	if err != nil {
		if apperror.IsInvalidSelection(err) {
			metrics.Reconciliations.WithLabelValues("rejected").Inc()
			return err
		}
		metrics.Reconciliations.WithLabelValues("rolled_back").Inc()
		log.Error().Err(err).Str("shopping_list_id", listID.String()).Msg("shopping list reconciliation rolled back")
		return fmt.Errorf("apply shopping list changes: %w", err)
	}

	if plan.Empty() {
		metrics.Reconciliations.WithLabelValues("noop").Inc()
		return nil
	}
	metrics.Reconciliations.WithLabelValues("applied").Inc()
	metrics.ReconcileChanges.WithLabelValues("insert").Add(float64(len(plan.ToInsert)))
	metrics.ReconcileChanges.WithLabelValues("update").Add(float64(len(plan.ToUpdate)))
	metrics.ReconcileChanges.WithLabelValues("delete").Add(float64(len(plan.ToDelete)))
	log.Debug().
		Str("shopping_list_id", listID.String()).
		Int("inserted", len(plan.ToInsert)).
		Int("updated", len(plan.ToUpdate)).
		Int("deleted", len(plan.ToDelete)).
		Msg("shopping list reconciled")
	return nil
}

func (s *shoppingListService) SetItems(ctx context.Context, id uuid.UUID, req dto.SetItemsRequest) (*dto.ShoppingListResponse, error) {
	if _, err := s.load(ctx, id); err != nil {
		return nil, err
	}
	desired, err := s.parseSelection(ctx, req.Items)
	if err != nil {
		metrics.Reconciliations.WithLabelValues("rejected").Inc()
		return nil, err
	}
	if err := s.apply(ctx, id, desired); err != nil {
		return nil, err
	}
	return s.Get(ctx, id)
}

func (s *shoppingListService) TogglePurchased(ctx context.Context, itemID uuid.UUID, purchased bool) (*dto.ShoppingListResponse, error) {
	item, err := s.repo.FindItemByID(ctx, itemID)
	if err != nil {
		return nil, notFound(err, "shopping list item "+itemID.String())
	}
	if item.IsPurchased != purchased {
		if err := s.repo.SetPurchased(ctx, itemID, purchased); err != nil {
			return nil, fmt.Errorf("mark item purchased: %w", err)
		}
	}
	return s.Get(ctx, item.ShoppingListID)
}

func (s *shoppingListService) RemoveItem(ctx context.Context, itemID uuid.UUID) (*dto.ShoppingListResponse, error) {
	item, err := s.repo.FindItemByID(ctx, itemID)
	if err != nil {
		return nil, notFound(err, "shopping list item "+itemID.String())
	}
	if err := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		return s.repo.DeleteItemTx(tx, itemID)
	}); err != nil {
		return nil, fmt.Errorf("remove item: %w", err)
	}
	return s.Get(ctx, item.ShoppingListID)
}

// ImportRecipe adds a recipe's ingredients to a list. A product already on the
// list gets the ingredient quantity added when the units can be converted into
// each other, and is unmarked as purchased; otherwise the ingredient is skipped
// and reported.
func (s *shoppingListService) ImportRecipe(ctx context.Context, listID, recipeID uuid.UUID) (*dto.ImportRecipeResponse, error) {
	l, err := s.load(ctx, listID)
	if err != nil {
		return nil, err
	}
	rec, err := s.recipeRepo.FindByID(ctx, recipeID)
	if err != nil {
		return nil, notFound(err, "recipe "+recipeID.String())
	}

	desired := make([]shopping.DesiredItem, 0, len(l.Items)+len(rec.Ingredients))
	index := make(map[uuid.UUID]int, len(l.Items))
	for _, it := range l.Items {
		if _, dup := index[it.ProductID]; dup {
			continue
		}
		index[it.ProductID] = len(desired)
		desired = append(desired, shopping.DesiredItem{ProductID: it.ProductID, Quantity: it.Quantity, Unit: it.Unit})
	}

	skipped := []string{}
	units := s.conv.Units()
	for _, ing := range rec.Ingredients {
		idx, listed := index[ing.ProductID]
		if !listed {
			index[ing.ProductID] = len(desired)
			desired = append(desired, shopping.DesiredItem{ProductID: ing.ProductID, Quantity: ing.Quantity, Unit: ing.Unit})
			continue
		}
		merged, ok := mergeQuantity(units, desired[idx], ing)
		if !ok {
			name := ing.ProductID.String()
			if ing.Product != nil {
				name = ing.Product.Name
			}
			skipped = append(skipped, name)
			continue
		}
		desired[idx].Quantity = merged
		// More is needed than was bought; the item goes back on the to-buy side.
		desired[idx].ClearPurchased = true
	}

	if err := s.apply(ctx, listID, desired); err != nil {
		return nil, err
	}
	resp, err := s.Get(ctx, listID)
	if err != nil {
		return nil, err
	}
	return &dto.ImportRecipeResponse{List: *resp, Skipped: skipped}, nil
}

// mergeQuantity adds ing to cur, expressed in cur's unit.
func mergeQuantity(units conversion.UnitConverter, cur shopping.DesiredItem, ing model.RecipeIngredient) (float64, bool) {
	curUnit := strings.TrimSpace(cur.Unit)
	ingUnit := strings.TrimSpace(ing.Unit)
	if strings.EqualFold(curUnit, ingUnit) {
		return cur.Quantity + ing.Quantity, true
	}
	class := units.ClassOf(curUnit)
	if class == conversion.ClassPiece || units.ClassOf(ingUnit) != class {
		return 0, false
	}
	curFactor, _ := units.Factor(curUnit)
	return cur.Quantity + units.Convert(ingUnit, ing.Quantity)/curFactor, true
}

func (s *shoppingListService) ExportPDF(ctx context.Context, id uuid.UUID, dir string) (string, error) {
	resp, err := s.Get(ctx, id)
	if err != nil {
		return "", err
	}
	sum := s.summarize(ctx, resp)
	path, err := infra.GenerateShoppingListPDF(resp, sum.Display, dir)
	if err != nil {
		return "", fmt.Errorf("export shopping list: %w", err)
	}
	return path, nil
}
