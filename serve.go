package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/yumyai/panres/logger"
	"github.com/yumyai/panres/pkg/db"
	"github.com/yumyai/panres/pkg/handler"
	"github.com/yumyai/panres/pkg/metric"
	"github.com/yumyai/panres/pkg/middle"
)

var serveAddr string

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "listen address (overrides config)")
	rootCmd.AddCommand(serveCmd)
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the web site and JSON API",
	Args:  cobra.NoArgs,
	RunE:  runServe,
}

func runServe(cmd *cobra.Command, args []string) error {
	addr := orDefault(serveAddr, cfg.Addr)

	store, err := db.Open(cfg.DBPath)
	if err != nil {
		return err
	}
	defer store.Close()

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	stats, err := store.Stats(ctx)
	if err != nil {
		return err
	}
	if stats.Classes == 0 {
		logger.Warn("Store is empty, run `panres import` first", zap.String("DB_LOC", cfg.DBPath))
	}

	m := metric.New()
	m.SetStoreStats(stats)
	dbctx := handler.NewDBContext(store, m, cfg.AutocompleteLimit)

	level, _ := logger.ParseLevel(cfg.LogLevel)
	router := NewRouter(dbctx, m, cfg, middle.CreateMiddlewareLogger(level))

	logger.Info("Start:", zap.String("Version", Version))
	logger.Info("Open database on", zap.String("DB_LOC", cfg.DBPath),
		zap.Int("classes", stats.Classes), zap.Int("individuals", stats.Individuals))

	srv := &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("Server starting on " + addr + "...")
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			logger.Error("Error starting server:", zap.String("error message", err.Error()))
			return err
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("Shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
