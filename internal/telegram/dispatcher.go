package telegram

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"
)

var (
	ErrQueueFull        = errors.New("notification queue is full")
	ErrDispatcherClosed = errors.New("notification dispatcher is closed")
)

type notification struct {
	logger *zap.Logger
	text   string
}

// Dispatcher queues notifications and hands them to the wrapped Notifier from a
// background goroutine, so callers never wait on Telegram.
type Dispatcher struct {
	next    Notifier
	queue   chan notification
	timeout time.Duration
	logger  *zap.Logger

	mu     sync.RWMutex
	closed bool
	done   chan struct{}
}

var _ Notifier = &Dispatcher{}

// NewDispatcher starts the delivery goroutine. timeout bounds each delivery, retries included.
func NewDispatcher(next Notifier, queueSize int, timeout time.Duration, logger *zap.Logger) *Dispatcher {
	if queueSize < 1 {
		queueSize = 1
	}

	d := &Dispatcher{
		next:    next,
		queue:   make(chan notification, queueSize),
		timeout: timeout,
		logger:  logger,
		done:    make(chan struct{}),
	}
	go d.run()

	return d
}

// Notify enqueues text and returns immediately. A full queue drops the message.
func (d *Dispatcher) Notify(ctx context.Context, text string) error {
	d.mu.RLock()
	defer d.mu.RUnlock()

	if d.closed {
		return ErrDispatcherClosed
	}

	select {
	case d.queue <- notification{logger: ctxzap.Extract(ctx), text: text}:
		return nil
	default:
		return ErrQueueFull
	}
}

func (d *Dispatcher) run() {
	defer close(d.done)
	for n := range d.queue {
		d.deliver(n)
	}
}

func (d *Dispatcher) deliver(n notification) {
	// request scoped fields survive, the request deadline does not
	ctx := ctxzap.ToContext(context.Background(), n.logger)
	if d.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, d.timeout)
		defer cancel()
	}

	if err := d.next.Notify(ctx, n.text); err != nil {
		n.logger.Warn("admin notification not delivered", zap.Error(err))
	}
}

// Close stops accepting notifications and waits for the queued ones until ctx is done
func (d *Dispatcher) Close(ctx context.Context) error {
	d.mu.Lock()
	if !d.closed {
		d.closed = true
		close(d.queue)
	}
	d.mu.Unlock()

	select {
	case <-d.done:
		d.logger.Info("notification queue drained")
		return nil
	case <-ctx.Done():
		d.logger.Warn("notification queue not drained before shutdown", zap.Int("pending", len(d.queue)))
		return ctx.Err()
	}
}
