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

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	"github.com/sajidahmed21/LearnR/api"
	"github.com/sajidahmed21/LearnR/internal/analytics"
	"github.com/sajidahmed21/LearnR/internal/logger"
	"github.com/sajidahmed21/LearnR/internal/metrics"
	"github.com/sajidahmed21/LearnR/internal/search"
)

const shutdownTimeout = 10 * time.Second

func newServeCmd(c *cli) *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP search server",
		Example: `  user_search serve
  user_search serve --addr :9000 --config config.yaml`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if addr != "" {
				c.settings.Addr = addr
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return c.serve(ctx)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "Listen address (overrides addr from config)")

	return cmd
}

// newRouter wires the HTTP stack for the given settings
func (c *cli) newRouter(ctx context.Context) (*gin.Engine, func(), error) {
	log := logger.Named("server")

	userStore, err := c.openStore()
	if err != nil {
		return nil, nil, err
	}
	cleanup := func() { _ = userStore.Close() }

	if err := c.seedIfEmpty(ctx, userStore, log); err != nil {
		cleanup()
		return nil, nil, fmt.Errorf("failed to seed user store: %w", err)
	}

	m := metrics.NewManager(metrics.WithProcessCollectors())

	svc, err := search.NewService(userStore, search.Options{
		MaxLimit:          c.settings.MaxLimit,
		DeterministicTies: c.settings.DeterministicTies,
		Logger:            logger.Get(),
		Metrics:           m,
	})
	if err != nil {
		cleanup()
		return nil, nil, err
	}

	analyticsSvc, err := analytics.NewService(analytics.Options{
		MaxEvents:  c.settings.AnalyticsMaxEvents,
		TopQueries: c.settings.AnalyticsTopQueries,
		Logger:     logger.Get(),
	})
	if err != nil {
		cleanup()
		return nil, nil, err
	}

	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(
		gin.Recovery(),
		api.RequestIDMiddleware(),
		api.LoggingMiddleware(logger.Get()),
		api.MetricsMiddleware(m),
		api.CORSMiddleware(c.settings.CORSAllowedOrigin),
	)
	api.SetupRoutes(router, svc, api.Options{
		Analytics: analyticsSvc,
		Health:    userStore,
		Metrics:   m,
		Logger:    logger.Get(),
	})

	return router, cleanup, nil
}

// serve runs the HTTP server until ctx is cancelled, then drains it.
func (c *cli) serve(ctx context.Context) error {
	log := logger.Named("server")

	router, cleanup, err := c.newRouter(ctx)
	if err != nil {
		return err
	}
	defer cleanup()

	srv := &http.Server{
		Addr:              c.settings.Addr,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info(ctx, "starting server", logger.String("addr", c.settings.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
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

	log.Info(context.Background(), "shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("failed to shut down server: %w", err)
	}
	return nil
}
