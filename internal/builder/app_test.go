package builder

import (
	"context"
	"io"
	"net"
	"net/http"
	"testing"
	"time"

	"github.com/futig/proposal-backend/internal/telegram"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

// startSlowApp serves a handler that takes delay to answer and reports when a request arrived
func startSlowApp(t *testing.T, delay, shutdownTimeout time.Duration) (*App, string, <-chan struct{}, *observer.ObservedLogs) {
	t.Helper()

	started := make(chan struct{}, 1)
	server := &http.Server{Handler: http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		started <- struct{}{}
		time.Sleep(delay)
		io.WriteString(w, "generated")
	})}

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	go server.Serve(ln)
	t.Cleanup(func() { server.Close() })

	core, logs := observer.New(zap.InfoLevel)
	logger := zap.New(core)

	return &App{
		server:          server,
		notifications:   telegram.NewDispatcher(telegram.NewLogNotifier(logger), 1, time.Second, logger),
		shutdownTimeout: shutdownTimeout,
		logger:          logger,
	}, "http://" + ln.Addr().String(), started, logs
}

func TestAppShutdownWaitsForInFlightRequest(t *testing.T) {
	app, url, started, logs := startSlowApp(t, 200*time.Millisecond, 5*time.Second)

	type result struct {
		status int
		body   string
		err    error
	}
	done := make(chan result, 1)
	go func() {
		resp, err := http.Get(url)
		if err != nil {
			done <- result{err: err}
			return
		}
		defer resp.Body.Close()
		body, _ := io.ReadAll(resp.Body)
		done <- result{status: resp.StatusCode, body: string(body)}
	}()

	<-started
	require.NoError(t, app.shutdown())

	res := <-done
	require.NoError(t, res.err)
	assert.Equal(t, http.StatusOK, res.status)
	assert.Equal(t, "generated", res.body)

	assert.ErrorIs(t, app.notifications.Notify(context.Background(), "late"), telegram.ErrDispatcherClosed)
	assert.Equal(t, 1, logs.FilterMessage("Application stopped gracefully").Len())
}

func TestAppShutdownReleasesResourcesOnTimeout(t *testing.T) {
	app, url, started, logs := startSlowApp(t, 2*time.Second, 50*time.Millisecond)

	go func() {
		if resp, err := http.Get(url); err == nil {
			resp.Body.Close()
		}
	}()

	<-started
	err := app.shutdown()
	require.ErrorIs(t, err, context.DeadlineExceeded)

	// the notification queue is closed even though the server did not stop in time
	assert.ErrorIs(t, app.notifications.Notify(context.Background(), "late"), telegram.ErrDispatcherClosed)
	assert.Equal(t, 0, logs.FilterMessage("Application stopped gracefully").Len())
}
