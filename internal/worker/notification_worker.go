package worker

import (
	"context"
	"errors"
	"sync"

	"go.uber.org/zap"

	"github.com/ArigalaPunithKumar/Alumnus-Backend/internal/events"
)

var (
	// ErrQueueFull is returned when the outbox cannot accept more events.
	ErrQueueFull = errors.New("notification queue full")
	// ErrStopped is returned by Publish after Stop.
	ErrStopped = errors.New("notification worker stopped")
)

// NotificationWorker is an in-process outbox: Publish enqueues and returns
// immediately, a background goroutine hands events to subscribers.
type NotificationWorker struct {
	inner  events.Dispatcher
	queue  chan queued
	logger *zap.Logger

	mu        sync.RWMutex
	started   bool
	stopped   bool
	startOnce sync.Once
	done      chan struct{}
}

type queued struct {
	ctx   context.Context
	event events.Event
}

// NewNotificationWorker creates a worker with a queue of the given size.
func NewNotificationWorker(size int, logger *zap.Logger) *NotificationWorker {
	if size <= 0 {
		size = 128
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &NotificationWorker{
		inner:  events.NewInMemoryDispatcher(),
		queue:  make(chan queued, size),
		logger: logger,
		done:   make(chan struct{}),
	}
}

// Subscribe registers a handler for eventType.
func (w *NotificationWorker) Subscribe(eventType events.EventType, handler events.EventHandler) {
	w.inner.Subscribe(eventType, handler)
}

// Publish enqueues event without blocking. The request context is detached
// so delivery outlives the request.
func (w *NotificationWorker) Publish(ctx context.Context, event events.Event) error {
	w.mu.RLock()
	defer w.mu.RUnlock()
	if w.stopped {
		return ErrStopped
	}
	select {
	case w.queue <- queued{ctx: context.WithoutCancel(ctx), event: event}:
		return nil
	default:
		w.logger.Warn("notification dropped", zap.String("event_type", string(event.Type)), zap.String("event_id", event.ID))
		return ErrQueueFull
	}
}

// Start runs the delivery loop until ctx is cancelled or Stop is called.
func (w *NotificationWorker) Start(ctx context.Context) {
	w.startOnce.Do(func() {
		w.mu.Lock()
		w.started = true
		w.mu.Unlock()
		go w.run(ctx)
	})
}

// Stop closes the queue and waits for pending events to be delivered.
// Events queued on a worker that was never started are discarded.
func (w *NotificationWorker) Stop() {
	w.mu.Lock()
	if !w.stopped {
		w.stopped = true
		close(w.queue)
	}
	started := w.started
	w.mu.Unlock()
	if !started {
		if n := len(w.queue); n > 0 {
			w.logger.Warn("notification worker stopped before start", zap.Int("discarded", n))
		}
		return
	}
	<-w.done
}

func (w *NotificationWorker) run(ctx context.Context) {
	defer close(w.done)
	for {
		select {
		case item, ok := <-w.queue:
			if !ok {
				return
			}
			w.deliver(item)
		case <-ctx.Done():
			w.drain()
			return
		}
	}
}

func (w *NotificationWorker) drain() {
	for {
		select {
		case item, ok := <-w.queue:
			if !ok {
				return
			}
			w.deliver(item)
		default:
			return
		}
	}
}

func (w *NotificationWorker) deliver(item queued) {
	defer func() {
		if r := recover(); r != nil {
			w.logger.Error("notification handler panicked", zap.Any("panic", r), zap.String("event_type", string(item.event.Type)))
		}
	}()
	if err := w.inner.Publish(item.ctx, item.event); err != nil {
		w.logger.Error("notification delivery failed",
			zap.String("event_type", string(item.event.Type)),
			zap.String("event_id", item.event.ID),
			zap.Error(err))
	}
}
