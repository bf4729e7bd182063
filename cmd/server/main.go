package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/urfave/cli/v2"
	"go.uber.org/zap"

	"make10/internal/api"
	"make10/internal/bridge"
	"make10/internal/config"
	"make10/internal/logging"
	"make10/internal/table"
)

const shutdownTimeout = 10 * time.Second

func main() {
	app := &cli.App{
		Name:  "make10-server",
		Usage: "Serve precomputed make-10 solutions over HTTP",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to TOML config file",
				Value:   "make10.toml",
			},
			&cli.StringFlag{
				Name:  "addr",
				Usage: "Listen address (overrides config)",
			},
			&cli.StringFlag{
				Name:  "strategy",
				Usage: "Representation strategy: cached or transient (overrides config)",
			},
		},
		Action: run,
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}

func run(c *cli.Context) error {
	cfg, err := config.Load(c.String("config"))
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if v := c.String("addr"); v != "" {
		cfg.Server.Addr = v
	}
	if v := c.String("strategy"); v != "" {
		cfg.Cache.Strategy = v
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	logger, err := logging.New(cfg.Log.Level, cfg.Log.Development)
	if err != nil {
		return err
	}
	defer logger.Sync()

	src := table.Default()
	logger.Info("Loaded solution table", zap.Int("populated", src.Len()))

	strategy, err := bridge.NewStrategy(cfg.Cache.Strategy, src, bridge.JSONEncoder)
	if err != nil {
		return err
	}

	var db *sql.DB
	if !cfg.Database.Disable {
		logger.Info("Connecting to database", zap.String("path", cfg.Database.Path))
		db, err = api.InitDB(cfg.Database.Path)
		if err != nil {
			return fmt.Errorf("failed to initialize database: %w", err)
		}
		defer db.Close()

		if err := api.CreateSchema(db); err != nil {
			return err
		}
	}

	server := api.NewServer(bridge.NewSolver(strategy), db, logger)

	mux := chi.NewMux()
	h := api.HandlerFromMux(server, mux)

	s := &http.Server{
		Addr:              cfg.Server.Addr,
		Handler:           h,
		ReadHeaderTimeout: 5 * time.Second,
	}

	ctx, stop := signal.NotifyContext(c.Context, os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		logger.Info("Starting server",
			zap.String("addr", cfg.Server.Addr),
			zap.String("strategy", strategy.Name()))
		if err := s.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("Shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := s.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("failed to shut down: %w", err)
	}
	return nil
}
