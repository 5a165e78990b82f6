package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/yegors/flightqa/internal/api"
	"github.com/yegors/flightqa/internal/bot"
	"github.com/yegors/flightqa/internal/config"
	"github.com/yegors/flightqa/internal/flightdata"
	"github.com/yegors/flightqa/internal/refdata"
	"github.com/yegors/flightqa/internal/storage/sqlite"
	"github.com/yegors/flightqa/pkg/logger"
)

func main() {
	configPath := flag.String("config", "config.toml", "path to the configuration file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.New(logger.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	tables, err := loadReferenceTables(cfg, log)
	if err != nil {
		log.Fatal("Failed to load reference tables", logger.Error(err))
	}
	log.Info("Reference tables loaded",
		logger.Int("airports", tables.AirportCount()),
		logger.Int("carriers", tables.CarrierCount()),
	)

	token := cfg.ResolveAPIToken()
	if token == "" {
		log.Warn("No provider API token configured; live queries will fail",
			logger.String("env", cfg.Provider.APITokenEnv),
		)
	}

	client := flightdata.NewClient(cfg.Provider.BaseURL, token, cfg.RequestTimeout(), log)
	service := bot.NewService(client, tables, log)
	router := api.NewRouter(service, cfg, log)

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	server := &http.Server{
		Addr:    addr,
		Handler: router.Routes(),
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		log.Info("Starting HTTP server", logger.String("addr", addr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("HTTP server failed", logger.Error(err))
		}
	}()

	<-ctx.Done()
	log.Info("Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(),
		time.Duration(cfg.Server.ShutdownTimeoutSec)*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("Graceful shutdown failed", logger.Error(err))
	}
}

// loadReferenceTables builds the in-memory reference tables, merging
// any overrides from the optional reference database over the built-in
// defaults.
func loadReferenceTables(cfg *config.Config, log *logger.Logger) (*refdata.Tables, error) {
	if cfg.RefData.SQLitePath == "" {
		return refdata.Defaults(), nil
	}

	db, err := sqlite.Open(cfg.RefData.SQLitePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open reference database: %w", err)
	}
	defer db.Close()

	store, err := sqlite.NewReferenceStore(db, log)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize reference store: %w", err)
	}
	zones, err := store.LoadAirportZones()
	if err != nil {
		return nil, fmt.Errorf("failed to load airport zones: %w", err)
	}
	carriers, err := store.LoadCarrierCodes()
	if err != nil {
		return nil, fmt.Errorf("failed to load carrier codes: %w", err)
	}
	return refdata.New(zones, carriers), nil
}
