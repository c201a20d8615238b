// Package app wires repositories, conversion and services into one object the
// desktop shell (or a command) drives.
package app

import (
	"cookncart/internal/config"
	"cookncart/internal/conversion"
	"cookncart/internal/infra"
	"cookncart/internal/repository"
	"cookncart/internal/service"
	"cookncart/internal/settings"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

type App struct {
	Settings   *settings.Store
	Conversion *conversion.Service

	Products      service.ProductService
	Recipes       service.RecipeService
	ShoppingLists service.ShoppingListService
}

// New wires all dependencies.
// Dependency graph: Service ← Repository ← DB, Service ← Conversion ← Rates/Redis
// rdb may be nil, in which case rates are cached in memory.
func New(cfg *config.Config, db *gorm.DB, rdb *redis.Client, store *settings.Store) *App {
	// ── Conversion ───────────────────────────────────────────────────────────
	conv := conversion.NewService(newCurrencyConverter(cfg, rdb))

	// ── Repositories ─────────────────────────────────────────────────────────
	productRepo := repository.NewProductRepository(db)
	listRepo := repository.NewShoppingListRepository(db)
	recipeRepo := repository.NewRecipeRepository(db)

	// ── Services ─────────────────────────────────────────────────────────────
	return &App{
		Settings:      store,
		Conversion:    conv,
		Products:      service.NewProductService(productRepo, listRepo, recipeRepo),
		Recipes:       service.NewRecipeService(recipeRepo, productRepo),
		ShoppingLists: service.NewShoppingListService(listRepo, productRepo, recipeRepo, conv, store),
	}
}

func newCurrencyConverter(cfg *config.Config, rdb *redis.Client) *conversion.CurrencyConverter {
	if cfg.RatesURL == "" {
		log.Info().Msg("no RATES_URL configured, using static exchange rates")
		return conversion.NewStaticCurrencyConverter()
	}

	var cache conversion.RateCache = conversion.NewMemoryRateCache()
	if rdb != nil {
		cache = infra.NewRedisRateCache(rdb)
	}
	client := infra.NewRatesClient(cfg.RatesURL, conversion.BaseCurrency, infra.NewCircuitBreaker(infra.DefaultCBConfig()))
	return conversion.NewCurrencyConverter(client, cache, cfg.RatesTTL)
}
