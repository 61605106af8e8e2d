package commands

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sbilibin2017/finance-planner/internal/logger"
)

const shutdownTimeout = 10 * time.Second

// serve runs srv until ctx is cancelled or a shutdown signal arrives, then shuts it down gracefully.
func serve(ctx context.Context, srv *http.Server, name string) error {
	errChan := make(chan error, 1)
	ctxShutdown, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM, syscall.SIGQUIT)
	defer stop()

	go func() {
		logger.Log.Infof("%s listening on %s", name, srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errChan <- fmt.Errorf("%s failed: %w", name, err)
		}
	}()

	select {
	case <-ctxShutdown.Done():
		logger.Log.Infof("Shutdown signal received, stopping %s...", name)
	case serveErr := <-errChan:
		return serveErr
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Log.Errorw("HTTP server shutdown error", "server", name, "error", err)
		return err
	}

	logger.Log.Infof("%s stopped gracefully", name)
	return nil
}
