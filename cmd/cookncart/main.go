package main

import (
	"context"
	"os"
	"strings"
	"time"

	"cookncart/internal/app"
	"cookncart/internal/config"
	"cookncart/internal/infra"
	"cookncart/internal/metrics"
	"cookncart/internal/settings"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}
	setupLogger(cfg)

	db, err := infra.NewDatabase(cfg.DBDriver, cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Str("driver", cfg.DBDriver).Msg("failed to open database")
	}

	var rdb *redis.Client
	if cfg.RedisURL != "" {
		rdb, err = infra.NewRedis(cfg.RedisURL)
		if err != nil {
			// The rate cache falls back to memory; redis is never required.
			log.Warn().Err(err).Msg("redis unavailable, caching rates in memory")
			rdb = nil
		}
	}

	store := settings.Load(cfg.SettingsPath)
	a := app.New(cfg, db, rdb, store)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	// Headless refresh: recompute every list and report what the UI would show.
	lists, err := a.ShoppingLists.List(ctx)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load shopping lists")
	}
	cur := store.Current()
	log.Info().
		Str("currency", cur.Currency).
		Str("weight_unit", cur.WeightUnit).
		Str("volume_unit", cur.VolumeUnit).
		Int("lists", len(lists)).
		Msg("Cook'n'Cart core ready")

	for _, l := range lists {
		log.Info().
			Str("id", l.ID).
			Str("title", l.Title).
			Int("items", l.ItemCount).
			Int("purchased", l.PurchasedCount).
			Str("total", l.Display).
			Msg("shopping list")

		// Keep the printable copies in sync with the stored lists.
		path, err := a.ShoppingLists.ExportPDF(ctx, uuid.MustParse(l.ID), cfg.PDFOutputPath)
		if err != nil {
			log.Error().Err(err).Str("id", l.ID).Msg("failed to export shopping list")
			continue
		}
		log.Debug().Str("path", path).Msg("shopping list exported")
	}

	snap, err := metrics.Snapshot()
	if err != nil {
		log.Warn().Err(err).Msg("failed to gather metrics")
		return
	}
	ev := log.Info()
	for name, v := range snap {
		ev = ev.Float64(name, v)
	}
	ev.Msg("metrics")
}

func setupLogger(cfg *config.Config) {
	// dev: pretty, prod: JSON
	if cfg.Env != "production" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
	}
	level, err := zerolog.ParseLevel(strings.ToLower(cfg.LogLevel))
	if err != nil || level == zerolog.NoLevel {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)
}
