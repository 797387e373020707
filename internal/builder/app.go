package builder

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/futig/proposal-backend/internal/telegram"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

// App is the assembled proposal backend
type App struct {
	server *http.Server
	db     *pgxpool.Pool
	// notifications is nil when admin events are only logged
	notifications *telegram.Dispatcher
	// shutdownTimeout covers the longest request, a full generation included
	shutdownTimeout time.Duration
	logger          *zap.Logger
}

// Run serves HTTP until a signal arrives or the listener fails, then releases everything
func (a *App) Run() error {
	errChan := make(chan error, 1)
	go func() {
		a.logger.Info("Starting HTTP server", zap.String("addr", a.server.Addr))
		if err := a.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errChan <- err
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigChan)

	var serveErr error
	select {
	case serveErr = <-errChan:
		a.logger.Error("Server error", zap.Error(serveErr))
	case sig := <-sigChan:
		a.logger.Info("Received shutdown signal", zap.String("signal", sig.String()))
	}

	return errors.Join(serveErr, a.shutdown())
}

// shutdown lets in-flight generations finish, drains queued admin notifications
// and closes the pool whatever happened before.
func (a *App) shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), a.shutdownTimeout)
	defer cancel()

	a.logger.Info("Shutting down server gracefully", zap.Duration("timeout", a.shutdownTimeout))

	var errs []error
	if err := a.server.Shutdown(ctx); err != nil {
		a.logger.Error("Server shutdown error", zap.Error(err))
		errs = append(errs, fmt.Errorf("shutdown server: %w", err))
	}

	if a.notifications != nil {
		if err := a.notifications.Close(ctx); err != nil {
			errs = append(errs, fmt.Errorf("drain notifications: %w", err))
		}
	}

	if a.db != nil {
		a.logger.Info("Closing database connections")
		a.db.Close()
	}

	if len(errs) == 0 {
		a.logger.Info("Application stopped gracefully")
	}
	// stdout/stderr sinks may reject fsync
	_ = a.logger.Sync()

	return errors.Join(errs...)
}
