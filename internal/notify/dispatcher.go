package notify

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	ModeAsync = "async"
	ModeSync  = "sync"
)

// Notifier is what the services depend on. Delivery is best-effort: failures are logged, never returned.
type Notifier interface {
	Notify(ctx context.Context, eventType EventType, payload any)
}

type Dispatcher struct {
	sender  Sender
	source  string
	async   bool
	timeout time.Duration
	now     func() time.Time
	wg      sync.WaitGroup
	Log     *zap.Logger
}

func NewDispatcher(sender Sender, source, mode string, timeout time.Duration, log *zap.Logger) *Dispatcher {
	return &Dispatcher{
		sender:  sender,
		source:  source,
		async:   mode != ModeSync,
		timeout: timeout,
		now:     time.Now,
		Log:     log.With(zap.String("dispatcher", source)),
	}
}

func (d *Dispatcher) Notify(ctx context.Context, eventType EventType, payload any) {
	event := Event{
		NotificationID: uuid.New(),
		SourceName:     d.source,
		EventType:      eventType,
		Context:        payload,
		CreatedAt:      Timestamp(d.now()),
	}

	if !d.async {
		d.send(ctx, event)
		return
	}

	// The request may finish before delivery does.
	ctx = context.WithoutCancel(ctx)
	d.wg.Add(1)
	go func() {
		defer d.wg.Done()
		d.send(ctx, event)
	}()
}

func (d *Dispatcher) send(ctx context.Context, event Event) {
	if d.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, d.timeout)
		defer cancel()
	}

	if err := d.sender.Send(ctx, event); err != nil {
		d.Log.Warn("Failed to send notification",
			zap.String("notification_id", event.NotificationID.String()),
			zap.String("event_type", string(event.EventType)),
			zap.Error(err))
		return
	}

	d.Log.Debug("Notification dispatched",
		zap.String("notification_id", event.NotificationID.String()),
		zap.String("event_type", string(event.EventType)))
}

// Close waits for in-flight asynchronous sends. The sender is owned by the caller.
func (d *Dispatcher) Close() {
	d.wg.Wait()
}
