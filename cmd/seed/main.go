// cmd/seed/main.go seeds a demo catalogue: products, one recipe and one
// shopping list built from it. Run against an empty database.
// Usage: go run ./cmd/seed
package main

import (
	"context"
	"os"
	"time"

	"cookncart/internal/app"
	"cookncart/internal/config"
	"cookncart/internal/dto"
	"cookncart/internal/infra"
	"cookncart/internal/settings"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

var demoProducts = []dto.CreateProductRequest{
	{Name: "Jauheliha", Unit: "kg", PricePerUnit: decimal.RequireFromString("8.90"), Category: "Liha"},
	{Name: "Maito", Unit: "l", PricePerUnit: decimal.RequireFromString("1.15"), Category: "Maitotuotteet"},
	{Name: "Sipuli", Unit: "kpl", PricePerUnit: decimal.RequireFromString("0.35"), Category: "Vihannekset"},
	{Name: "Spagetti", Unit: "kg", PricePerUnit: decimal.RequireFromString("3.20"), Category: "Kuivatuotteet"},
	{Name: "Tomaattimurska", Unit: "kpl", PricePerUnit: decimal.RequireFromString("1.29"), Category: "Säilykkeet"},
}

func main() {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}
	db, err := infra.NewDatabase(cfg.DBDriver, cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to open database")
	}
	a := app.New(cfg, db, nil, settings.Load(cfg.SettingsPath))

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	ids := make(map[string]string, len(demoProducts))
	for _, req := range demoProducts {
		p, err := a.Products.Create(ctx, req)
		if err != nil {
			log.Fatal().Err(err).Str("product", req.Name).Msg("seed product")
		}
		ids[p.Name] = p.ID
	}

	recipe, err := a.Recipes.Create(ctx, dto.CreateRecipeRequest{
		Name:         "Spagetti bolognese",
		Instructions: "Ruskista jauheliha ja sipuli, lisää tomaattimurska. Keitä spagetti.",
		Tags:         []string{"arki", "pasta"},
		Ingredients: []dto.IngredientRequest{
			{ProductID: ids["Jauheliha"], Quantity: 400, Unit: "g"},
			{ProductID: ids["Sipuli"], Quantity: 1},
			{ProductID: ids["Tomaattimurska"], Quantity: 2},
			{ProductID: ids["Spagetti"], Quantity: 500, Unit: "g"},
		},
	})
	if err != nil {
		log.Fatal().Err(err).Msg("seed recipe")
	}

	list, err := a.ShoppingLists.Create(ctx, dto.CreateShoppingListRequest{Title: "Viikon ostokset"})
	if err != nil {
		log.Fatal().Err(err).Msg("seed shopping list")
	}
	listID := uuid.MustParse(list.ID)
	if _, err := a.ShoppingLists.SetItems(ctx, listID, dto.SetItemsRequest{Items: []dto.SelectedProduct{
		{ProductID: ids["Maito"], Quantity: 2, Unit: "l"},
		{ProductID: ids["Sipuli"], Quantity: 2},
	}}); err != nil {
		log.Fatal().Err(err).Msg("seed shopping list items")
	}
	imported, err := a.ShoppingLists.ImportRecipe(ctx, listID, uuid.MustParse(recipe.ID))
	if err != nil {
		log.Fatal().Err(err).Msg("import recipe")
	}

	sum, err := a.ShoppingLists.Summary(ctx, listID)
	if err != nil {
		log.Fatal().Err(err).Msg("summarize shopping list")
	}
	log.Info().
		Str("list", sum.Title).
		Int("items", len(imported.List.Items)).
		Strs("skipped", imported.Skipped).
		Str("total", sum.Display).
		Msg("demo data seeded")
}
