package main

import (
	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/bricksdeal/catalog-api/internal/config"
	"github.com/bricksdeal/catalog-api/internal/database"
	"github.com/bricksdeal/catalog-api/internal/handler"
	"github.com/bricksdeal/catalog-api/internal/queue"
	"github.com/bricksdeal/catalog-api/internal/repository"
	"github.com/bricksdeal/catalog-api/internal/router"
	"github.com/bricksdeal/catalog-api/pkg/logger"
)

func main() {
	_ = godotenv.Load() // .env is optional; real deployments set the environment directly

	log := logger.New()
	defer func() { _ = log.Sync() }()

	cfg := config.Load()
	report := cfg.Validate()
	for _, w := range report.Warnings {
		log.Warn("config: " + w)
	}
	if !report.OK() {
		log.Fatal("missing required configuration", zap.Strings("missing", report.Missing))
	}

	db, err := database.Open(cfg)
	if err != nil {
		log.Fatal("database open failed", zap.Error(err))
	}
	defer db.Close()
	if cfg.DBDriver == "sqlite" {
		if err := database.InitSchema(db); err != nil {
			log.Fatal("schema init failed", zap.Error(err))
		}
	}

	rdb := config.NewRedisClient()
	if rdb == nil {
		log.Warn("redis unavailable, response cache and login rate limit disabled")
	}

	sets := repository.NewSetRepo(db)
	minifigs := repository.NewMinifigRepo(db)
	themes := repository.NewThemeRepo(db)
	stats := repository.NewStatsRepo(db)

	e := echo.New()
	e.HideBanner = true
	router.Register(e, cfg, log, rdb, router.Handlers{
		Auth:     handler.NewAuthHandler(cfg, log),
		Sets:     handler.NewSetHandler(sets, log),
		Minifigs: handler.NewMinifigHandler(minifigs, log),
		Themes:   handler.NewThemeHandler(themes, log),
		Admin:    handler.NewAdminHandler(stats, sets, minifigs, queue.NewPublisher(log), log),
	})

	addr := ":" + cfg.Port
	log.Info("listening", zap.String("addr", addr), zap.String("env", cfg.Env), zap.String("driver", cfg.DBDriver))
	if err := e.Start(addr); err != nil {
		log.Fatal("server stopped", zap.Error(err))
	}
}
