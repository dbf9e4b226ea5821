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

	"github.com/Strum355/log"
	"github.com/spf13/cobra"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/ewilliams-labs/moodtune/internal/adapters/rest"
	"github.com/ewilliams-labs/moodtune/internal/core/services"
	"github.com/ewilliams-labs/moodtune/internal/player"
	"github.com/ewilliams-labs/moodtune/internal/worker"
)

const shutdownTimeout = 10 * time.Second

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API",
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().String("addr", "", "listen address, overrides http.addr")
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if addr, _ := cmd.Flags().GetString("addr"); addr != "" {
		cfg.HTTP.Addr = addr
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, err := openStore(ctx, cfg.Storage)
	if err != nil {
		log.WithError(err).Error("failed to initialize storage")
		return err
	}
	defer store.Close()

	catalog, files, err := openCatalog(ctx, cfg.Catalog)
	if err != nil {
		return err
	}

	sessions, cache, cleanup, err := sessionBackends(ctx, cfg.Redis)
	if err != nil {
		log.WithError(err).Error("failed to connect to redis")
		return err
	}
	defer cleanup()

	pool := worker.NewPool(store, cfg.Worker.Queue)
	pool.Start(ctx, cfg.Worker.Count)
	defer pool.Stop()

	opts := []services.Option{
		services.WithJobs(pool),
		services.WithSessionTTL(cfg.Session.TTL),
	}
	if cache != nil {
		opts = append(opts, services.WithCache(cache, cfg.Catalog.CacheTTL))
	}
	svc := services.NewOrchestrator(store, catalog, sessions, opts...)
	players := player.NewManager(svc)

	handlerOpts := []rest.Option{rest.WithCORSOrigin(cfg.HTTP.CORSOrigin)}
	if files != nil {
		handlerOpts = append(handlerOpts, rest.WithSongFiles(files))
	}
	handler := rest.NewHandler(svc, players, handlerOpts...)

	srv := &http.Server{
		Addr:              cfg.HTTP.Addr,
		Handler:           otelhttp.NewHandler(handler, "moodtune"),
		ReadHeaderTimeout: 15 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		err := srv.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
			return
		}
		serverErr <- nil
	}()
	log.Info(fmt.Sprintf("🎶 Moodtune API is running on %s", cfg.HTTP.Addr))

	select {
	case err := <-serverErr:
		if err != nil {
			log.WithError(err).Error("server failed")
		}
		return err
	case <-ctx.Done():
		log.Info("Shutting down server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.WithError(err).Warn("shutdown error")
		}
	}
	return nil
}
