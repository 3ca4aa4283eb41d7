package main

import (
	"context"
	"flag"
	"time"

	"hijabstore/internal/catalog"
	"hijabstore/internal/config"
	"hijabstore/internal/db"
	"hijabstore/internal/logger"
	"hijabstore/internal/model"
	"hijabstore/internal/repository"
	"hijabstore/internal/service"
)

func main() {
	source := flag.String("source", "", "catalog JSON file or http(s) URL; empty uses the bundled catalog")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		bootLog := logger.Init(logger.Options{})
		bootLog.Fatal().Err(err).Msg("load config")
	}
	log := logger.Init(logger.Options{Level: cfg.Log.Level, Pretty: true})

	log.Info().Msg("starting seed script")

	gormDB, err := db.NewMySQL(cfg.DB.DSN(), db.Options{MaxOpenConns: 2})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}
	if err := gormDB.AutoMigrate(&model.Product{}); err != nil {
		log.Fatal().Err(err).Msg("failed to run migrations")
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	var res *catalog.Result
	if *source == "" {
		res, err = catalog.Default()
	} else {
		log.Info().Str("source", *source).Msg("loading catalog")
		res, err = catalog.Load(ctx, *source)
	}
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load catalog")
	}
	for _, reason := range res.Skipped {
		log.Warn().Str("reason", reason).Msg("skipping catalog entry")
	}

	repo := repository.NewProductRepository(gormDB)
	before, err := repo.Count(ctx)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to count products")
	}

	seeded, err := service.NewProductService(repo, nil, 0).Seed(ctx, res.Products)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to seed products")
	}

	after, err := repo.Count(ctx)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to count products")
	}

	log.Info().
		Int("processed", seeded).
		Int64("created", after-before).
		Int("skipped", len(res.Skipped)).
		Msg("seed completed")
}
