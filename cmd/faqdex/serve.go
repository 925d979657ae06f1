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

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/kailas-cloud/faqdex/internal/metrics"
	chitransport "github.com/kailas-cloud/faqdex/internal/transport/chi"
	healthuc "github.com/kailas-cloud/faqdex/internal/usecase/health"
	"github.com/kailas-cloud/faqdex/internal/version"
)

func newServeCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := a.load(); err != nil {
				return err
			}
			defer a.sync()

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return a.serve(ctx)
		},
	}
}

func (a *app) serve(ctx context.Context) error {
	cfg, logger := a.cfg, a.logger

	logger.Info("Starting faqdex API server",
		zap.String("version", version.Version),
		zap.String("commit", version.Commit),
		zap.String("env", a.env),
		zap.Int("http_port", cfg.HTTP.Port),
		zap.String("documents_source", cfg.Documents.Source),
		zap.String("documents_reload", cfg.Documents.Reload),
		zap.String("match_mode", cfg.Retrieval.MatchMode),
	)

	// Register metrics explicitly (no init())
	metrics.RegisterHTTPMetrics()
	metrics.RegisterRetrievalMetrics()

	src, store, err := buildSource(ctx, cfg, logger)
	if err != nil {
		return err
	}
	var pinger healthuc.DBPinger
	if store != nil {
		defer store.Close()
		pinger = store
	}

	answers, err := buildAnswerService(cfg, src)
	if err != nil {
		return err
	}
	healthSvc := healthuc.New(src, pinger)

	// Warm the document set so misconfiguration shows up at startup.
	if set, err := src.Load(ctx); err != nil {
		logger.Warn("Initial document load failed", zap.Error(err))
	} else {
		logger.Info("Documents loaded", zap.Int("documents", set.Len()))
	}

	server := chitransport.NewServer(answers, src, healthSvc, logger)
	router := chitransport.NewRouter(server, chitransport.RouterConfig{
		APIKeys:         cfg.Auth.APIKeys,
		ClientPerMinute: cfg.HTTP.RateLimit.PerClientPerMinute,
		GlobalPerMinute: cfg.HTTP.RateLimit.GlobalPerMinute,
	}, logger)

	addr := fmt.Sprintf(":%d", cfg.HTTP.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  time.Duration(cfg.HTTP.ReadTimeoutSec) * time.Second,
		WriteTimeout: time.Duration(cfg.HTTP.WriteTimeoutSec) * time.Second,
	}

	hup := make(chan os.Signal, 1)
	signal.Notify(hup, syscall.SIGHUP)
	defer signal.Stop(hup)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		reloadOnHangup(gctx, src, hup, logger)
		return nil
	})
	g.Go(func() error {
		logger.Info("Starting HTTP server", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		logger.Info("Received shutdown signal")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.HTTP.ShutdownSec)*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("server forced to shutdown: %w", err)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		logger.Error("Server stopped with error", zap.Error(err))
		return err
	}
	logger.Info("Server stopped gracefully")
	return nil
}
