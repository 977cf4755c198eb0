// Command chesskeep runs the catalog HTTP service: ingestion endpoints,
// catalog reads, Prometheus metrics, and the WebSocket event stream.
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/chesskeep/chesskeep/internal/api"
	"github.com/chesskeep/chesskeep/internal/config"
	"github.com/chesskeep/chesskeep/internal/db"
	"github.com/chesskeep/chesskeep/internal/db/migrations"
	"github.com/chesskeep/chesskeep/internal/dbpool"
	"github.com/chesskeep/chesskeep/internal/rules"
	"github.com/chesskeep/chesskeep/internal/service"
	"github.com/chesskeep/chesskeep/internal/store"
	"github.com/chesskeep/chesskeep/internal/ws"
)

// version is set at build time via -ldflags.
var version = "dev"

const (
	readHeaderTimeout = 10 * time.Second
	shutdownTimeout   = 10 * time.Second
)

func main() {
	log := logrus.New()
	log.SetFormatter(&logrus.JSONFormatter{})

	cfg, err := config.Load()
	if err != nil {
		log.WithError(err).Fatal("loading configuration")
	}

	level, err := logrus.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = logrus.InfoLevel
	}
	log.SetLevel(level)

	if err := run(cfg, log); err != nil {
		log.WithError(err).Fatal("chesskeep exited")
	}
}

func run(cfg *config.Config, log *logrus.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	pool, err := dbpool.NewPool(ctx, cfg.DatabaseURL.Value())
	if err != nil {
		return fmt.Errorf("connecting to database: %w", err)
	}
	defer pool.Close()

	if err := db.RunMigrations(ctx, pool, log, migrations.FS); err != nil {
		return fmt.Errorf("running migrations: %w", err)
	}

	hub := ws.NewHub(log)

	bridge := db.NewNotifyBridge(log, pool, hub)
	if err := bridge.Start(ctx); err != nil {
		return fmt.Errorf("starting notify bridge: %w", err)
	}

	base := store.Base{Pool: pool, Log: log}
	positions := store.NewPositionStore(base)
	games := store.NewGameStore(base)

	importSvc := service.NewImportService(positions, games, rules.NewProvider(), hub, log)
	catalogSvc := service.NewCatalogService(positions, games)

	router := api.NewRouter(ctx, &api.RouterDeps{
		Log:         log,
		Pool:        pool,
		Hub:         hub,
		Imports:     importSvc,
		Catalog:     catalogSvc,
		CORSOrigins: cfg.CORSOrigins,
		Version:     version,
		MaxBodySize: int64(cfg.MaxUploadMB) << 20,
	})

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           router,
		ReadHeaderTimeout: readHeaderTimeout,
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		hub.Run(gctx)

		return nil
	})

	g.Go(func() error {
		log.WithFields(logrus.Fields{
			"addr":    cfg.Addr(),
			"version": version,
		}).Info("http server listening")

		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}

		return nil
	})

	g.Go(func() error {
		<-gctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		log.Info("shutting down")

		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}

	return nil
}
