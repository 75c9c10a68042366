package main

import (
	"context"
	"flag"
	"net/http"
	"os"
	"time"

	"advising/internal/cache"
	"advising/internal/catalog"
	"advising/internal/config"
	"advising/internal/db"
	"advising/internal/logger"
	"advising/internal/repository"
	"advising/internal/service"
)

func main() {
	source := flag.String("catalog", os.Getenv("COURSE_CATALOG"), "course catalog JSON or YAML, as a file path or http(s) URL")
	timeout := flag.Duration("timeout", 30*time.Second, "overall time limit")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal().Err(err).Msg("load config")
	}
	logger.Configure(logger.Config{Level: cfg.LogLevel, Pretty: cfg.LogPretty})

	if *source == "" {
		logger.Fatal().Msg("no catalog given; pass -catalog or set COURSE_CATALOG")
	}

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		logger.Fatal().Err(err).Msg("connect database")
	}
	if err := db.Migrate(gormDB); err != nil {
		logger.Fatal().Err(err).Msg("migrate")
	}

	logger.Info().Str("source", *source).Msg("loading course catalog")
	courses, err := catalog.Load(ctx, &http.Client{Timeout: 15 * time.Second}, *source)
	if err != nil {
		logger.Fatal().Err(err).Msg("load catalog")
	}

	// Importing through the service validates entries and drops the cached catalog.
	cacheClient := cache.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
	defer cacheClient.Close()
	courseService := service.NewCourseService(repository.NewCourseRepository(gormDB), cacheClient)

	count, err := courseService.Import(ctx, courses)
	if err != nil {
		logger.Fatal().Err(err).Msg("import catalog")
	}
	logger.Info().Int("courses", count).Msg("seed completed")
}
