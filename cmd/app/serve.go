package app

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/vietanh2810/eventdesk/internal/api"
	"github.com/vietanh2810/eventdesk/internal/domain"
	"github.com/vietanh2810/eventdesk/internal/metrics"
	"github.com/vietanh2810/eventdesk/internal/reconcile"
	"github.com/vietanh2810/eventdesk/internal/tracing"
)

const shutdownTimeout = 5 * time.Second

func newServeCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve the local HTTP API and watch the data directory",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return serve(cmd.Context(), *configPath)
		},
	}
}

func serve(parent context.Context, configPath string) error {
	ctx, stop := signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
	defer stop()

	rt, err := bootstrap(configPath)
	if err != nil {
		return err
	}
	defer rt.close()

	if err := rt.conf.API.Validate(); err != nil {
		return fmt.Errorf("invalid api config -> %w", err)
	}
	if err := rt.checkLayout(); err != nil {
		return err
	}

	metrics.Register()
	if err := tracing.Init(ctx, rt.conf.Tracing.Endpoint, rt.conf.Tracing.ServiceName); err != nil {
		return fmt.Errorf("failed to initialize tracing -> %w", err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		tracing.Shutdown(shutdownCtx)
	}()

	if err := rt.rebuild(ctx, "startup"); err != nil {
		zap.L().Warn("initial projection rebuild failed", zap.Error(err))
	}

	watcher := reconcile.NewWatcher(rt.store.Dir, reconcile.DefaultDebounce, func(changes []domain.Change) {
		zap.L().Debug("data files changed", zap.Int("changes", len(changes)))
		rt.queue.Submit("watcher rebuild", func(ctx context.Context) error {
			return rt.projector.Rebuild(ctx, "watcher")
		})
	})
	watchErr := make(chan error, 1)
	go func() { watchErr <- watcher.Run(ctx) }()

	s := api.NewServer(rt.conf, rt.facade, watcher)
	srv := &http.Server{
		Addr:              net.JoinHostPort(rt.conf.API.Host, rt.conf.API.Port),
		Handler:           s.Router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	serveErr := make(chan error, 1)
	go func() {
		zap.L().Info(fmt.Sprintf("starting server at %v", srv.Addr))
		serveErr <- srv.ListenAndServe()
	}()

	var runErr error
	select {
	case err := <-serveErr:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("failed to start the server -> %w", err)
	case err := <-watchErr:
		if err != nil {
			runErr = fmt.Errorf("watcher stopped -> %w", err)
		}
	case <-ctx.Done():
	}

	zap.L().Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("srv.Shutdown -> %w", err)
	}

	return runErr
}
