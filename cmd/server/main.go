package main

import (
	"database/sql"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/mallkiprint/calc3d/internal/config"
	"github.com/mallkiprint/calc3d/internal/db"
	"github.com/mallkiprint/calc3d/internal/migrations"
	"github.com/mallkiprint/calc3d/internal/quotes"
	"github.com/mallkiprint/calc3d/internal/seed"
)

type server struct {
	cfg    config.Config
	db     *sql.DB
	quotes *quotes.Store
	logger *zap.Logger
}

func main() {
	logger, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("failed to load config", zap.Error(err))
	}

	database, err := db.Open(cfg.DBPath)
	if err != nil {
		logger.Fatal("failed to open database", zap.Error(err))
	}
	defer database.Close()

	if cfg.IsDev() {
		if err := migrations.Up(database, "migrations"); err != nil {
			logger.Fatal("failed to run database migrations", zap.Error(err))
		}
		stats, err := seed.Run(database)
		if err != nil {
			logger.Fatal("failed to run startup seed", zap.Error(err))
		}
		logger.Info("startup seed finished", zap.Int("inserts", stats.Inserts), zap.Int("updates", stats.Updates))
	}

	srv := &server{
		cfg:    cfg,
		db:     database,
		quotes: quotes.NewStore(database),
		logger: logger,
	}

	r := chi.NewRouter()
	r.Route("/api", func(r chi.Router) {
		r.Post("/calculate", srv.handleCalculate)
		r.Post("/summary", srv.handleSummary)
		r.Get("/quotes", srv.handleQuotesList)
		r.Post("/quotes", srv.handleQuotesCreate)
		r.Get("/quotes/{id}", srv.handleQuoteDetail)
		r.Get("/quotes/{id}/export", srv.handleQuoteExport)
		r.Get("/defaults", srv.handleDefaultsGet)
		r.Put("/defaults", srv.handleDefaultsUpdate)
		r.Get("/materials", srv.handleMaterialsList)
		r.Post("/materials", srv.handleMaterialsCreate)
		r.Post("/materials/{id}", srv.handleMaterialsUpdate)
	})

	addr := ":" + cfg.Port
	logger.Info("listening", zap.String("addr", addr))
	if err := http.ListenAndServe(addr, r); err != nil {
		logger.Fatal("server stopped", zap.Error(err))
	}
}
