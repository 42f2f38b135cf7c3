package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/sync/errgroup"

	"storefront/internal/pkg/logger"
	"storefront/internal/pkg/tracing"
)

// AppInfo carries everything a deployable needs to come up: identity,
// listen port, tracing endpoint, its routes, and any teardown hooks.
type AppInfo struct {
	ServiceName    string
	Port           int
	JaegerEndpoint string
	RegisterRoutes func(r chi.Router)
	OnShutdown     func(ctx context.Context)
}

// StartService runs the shared service lifecycle: tracer, router with the
// standard middleware and operational endpoints, HTTP server, and graceful
// shutdown on SIGINT/SIGTERM. It blocks until the service has stopped.
func StartService(info AppInfo) {
	tp, err := tracing.InitTracerProvider(info.ServiceName, info.JaegerEndpoint)
	if err != nil {
		logger.Logger.Fatal().Err(err).Msg("failed to initialize tracer provider")
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusOK) })
	r.Handle("/metrics", promhttp.Handler())
	if info.RegisterRoutes != nil {
		info.RegisterRoutes(r)
	}

	server := &http.Server{Addr: fmt.Sprintf(":%d", info.Port), Handler: r}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Logger.Info().Int("port", info.Port).Msgf("%s listening", info.ServiceName)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		logger.Logger.Info().Msgf("shutting down %s", info.ServiceName)

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Logger.Error().Err(err).Msg("error shutting down http server")
		}
		// Flush buffered spans before the process exits.
		if err := tp.Shutdown(shutdownCtx); err != nil {
			logger.Logger.Error().Err(err).Msg("error shutting down tracer provider")
		}
		if info.OnShutdown != nil {
			info.OnShutdown(shutdownCtx)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		logger.Logger.Fatal().Err(err).Msgf("%s terminated", info.ServiceName)
	}
	logger.Logger.Info().Msgf("%s gracefully shut down", info.ServiceName)
}
