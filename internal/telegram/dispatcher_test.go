package telegram

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type blockingNotifier struct {
	release   chan struct{}
	delivered chan string
}

func newBlockingNotifier() *blockingNotifier {
	return &blockingNotifier{
		release:   make(chan struct{}),
		delivered: make(chan string, 10),
	}
}

func (b *blockingNotifier) Notify(ctx context.Context, text string) error {
	select {
	case <-b.release:
	case <-ctx.Done():
		return ctx.Err()
	}
	b.delivered <- text
	return nil
}

func closeWithin(t *testing.T, d *Dispatcher, timeout time.Duration) error {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	return d.Close(ctx)
}

func TestDispatcherDoesNotBlockCaller(t *testing.T) {
	inner := newBlockingNotifier()
	d := NewDispatcher(inner, 4, time.Minute, zap.NewNop())

	start := time.Now()
	require.NoError(t, d.Notify(context.Background(), "proposal generated"))
	assert.Less(t, time.Since(start), 100*time.Millisecond)

	close(inner.release)

	select {
	case text := <-inner.delivered:
		assert.Equal(t, "proposal generated", text)
	case <-time.After(time.Second):
		t.Fatal("notification was not delivered")
	}

	require.NoError(t, closeWithin(t, d, time.Second))
}

func TestDispatcherIgnoresCallerCancellation(t *testing.T) {
	inner := newBlockingNotifier()
	close(inner.release)
	d := NewDispatcher(inner, 4, time.Minute, zap.NewNop())

	ctx, cancel := context.WithCancel(context.Background())
	require.NoError(t, d.Notify(ctx, "after the response"))
	cancel()

	require.NoError(t, closeWithin(t, d, time.Second))
	assert.Equal(t, "after the response", <-inner.delivered)
}

func TestDispatcherBoundsHungDelivery(t *testing.T) {
	inner := newBlockingNotifier()
	d := NewDispatcher(inner, 4, 50*time.Millisecond, zap.NewNop())

	require.NoError(t, d.Notify(context.Background(), "never answered"))

	// the delivery gives up after its own timeout, so draining finishes
	require.NoError(t, closeWithin(t, d, time.Second))
	assert.Empty(t, inner.delivered)
}

func TestDispatcherQueueFull(t *testing.T) {
	inner := newBlockingNotifier()
	d := NewDispatcher(inner, 1, time.Minute, zap.NewNop())

	full := 0
	for _, text := range []string{"a", "b", "c"} {
		if err := d.Notify(context.Background(), text); errors.Is(err, ErrQueueFull) {
			full++
		}
	}
	assert.GreaterOrEqual(t, full, 1)

	close(inner.release)
	require.NoError(t, closeWithin(t, d, time.Second))
}

func TestDispatcherClosed(t *testing.T) {
	d := NewDispatcher(NewLogNotifier(zap.NewNop()), 1, time.Second, zap.NewNop())
	require.NoError(t, closeWithin(t, d, time.Second))
	require.NoError(t, closeWithin(t, d, time.Second))

	assert.ErrorIs(t, d.Notify(context.Background(), "late"), ErrDispatcherClosed)
}
