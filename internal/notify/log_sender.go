package notify

import (
	"context"

	"go.uber.org/zap"
)

type logSender struct {
	Log *zap.Logger
}

// NewLogSender only logs envelopes. Used for local runs without a notification service.
func NewLogSender(log *zap.Logger) Sender {
	return &logSender{Log: log.With(zap.String("sender", "log"))}
}

func (s *logSender) Send(_ context.Context, event Event) error {
	s.Log.Info("Notification",
		zap.String("notification_id", event.NotificationID.String()),
		zap.String("source_name", event.SourceName),
		zap.String("event_type", string(event.EventType)),
		zap.Any("context", event.Context),
	)
	return nil
}

func (s *logSender) Close() error { return nil }
