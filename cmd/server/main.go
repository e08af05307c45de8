/*
main.go - Application entry point

PURPOSE:
  Initializes and starts the inventory analytics server. Handles
  configuration, dependency injection, and graceful shutdown.

STARTUP SEQUENCE:
  1. Load configuration (env vars + .env)
  2. Initialize the store (memory or sqlite)
  3. Build the analytics engine
  4. Configure HTTP router
  5. Start server with graceful shutdown

CONFIGURATION:
  Via environment variables or .env, see config package. Key ones:

  SERVER_PORT=8080
  STORE_DRIVER=sqlite STORE_PATH=./data/inventory.db
  LOG_LEVEL=debug
  ENGINE_HOLIDAY_CALENDAR=us

GRACEFUL SHUTDOWN:
  On SIGINT/SIGTERM:
  1. Stop accepting new connections
  2. Wait for active requests to complete (30s timeout)
  3. Close store
  4. Exit

EXAMPLES:
  # Run with durable sqlite store
  STORE_DRIVER=sqlite STORE_PATH=./data/inventory.db ./server

  # Run fully in memory (demo scenarios only)
  ./server

SEE ALSO:
  - api/server.go: Router configuration
  - api/handlers.go: HTTP handlers
  - store/sqlite/sqlite.go: Database implementation
*/
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/warp/inventory-engine/api"
	"github.com/warp/inventory-engine/config"
	"github.com/warp/inventory-engine/engine"
	"github.com/warp/inventory-engine/holiday"
	"github.com/warp/inventory-engine/ledger"
	"github.com/warp/inventory-engine/ledger/store"
	"github.com/warp/inventory-engine/pkg/logger"
	"github.com/warp/inventory-engine/store/sqlite"
)

func main() {
	cfg := config.Load()
	logger.SetLevel(cfg.Log.Level)
	log := logger.Log

	// Initialize store
	var (
		st  ledger.Store
		err error
	)
	switch cfg.Store.Driver {
	case "sqlite":
		st, err = sqlite.New(cfg.Store.Path)
		if err != nil {
			log.Fatal().Err(err).Str("path", cfg.Store.Path).Msg("failed to open sqlite store")
		}
		log.Info().Str("path", cfg.Store.Path).Msg("using sqlite store")
	case "memory":
		st = store.NewMemory()
		log.Info().Msg("using in-memory store")
	default:
		log.Fatal().Str("driver", cfg.Store.Driver).Msg("unknown store driver")
	}
	defer st.Close()

	// Build the engine
	engCfg := engine.DefaultConfig()
	engCfg.Parallelism = cfg.Engine.Parallelism
	engCfg.DefaultMinStock = cfg.Engine.DefaultMinStock
	engCfg.DefaultMaxStock = cfg.Engine.DefaultMaxStock
	engCfg.ReorderHorizonDays = cfg.Engine.ReorderHorizonDays
	engCfg.ReorderBufferDays = cfg.Engine.ReorderBufferDays
	engCfg.HolidayFactor = cfg.Engine.HolidayFactor

	var cal holiday.Calendar = holiday.Default{}
	if cfg.Engine.HolidayCalendar == "us" {
		cal = holiday.NewUS()
	}

	eng := engine.New(engCfg, nil, nil, cal, log)

	// Create router
	handler := api.NewHandler(st, eng, log)
	router := api.NewRouter(handler)

	// Create server
	server := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	// Start server in goroutine
	go func() {
		log.Info().Str("addr", "http://localhost:"+cfg.Server.Port).Msg("server starting")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Fatal().Err(err).Msg("server forced to shutdown")
	}

	log.Info().Msg("server stopped")
}
