package notify

import (
	"context"
	"fmt"

	"booking-service/pkg/utils"

	"go.uber.org/zap"
)

// Sender delivers a single envelope over some transport.
type Sender interface {
	Send(ctx context.Context, event Event) error
	Close() error
}

// NewSender builds the transport selected by NOTIFY_TRANSPORT.
func NewSender(config utils.NotifyConfig, secret string, log *zap.Logger) (Sender, error) {
	switch config.Transport {
	case "http":
		return NewHTTPSender(config.URL, secret, config.Timeout, log), nil
	case "amqp":
		return NewAMQPSender(config.AMQPURL, config.Queue, log)
	case "kafka":
		return NewKafkaSender(config.Brokers, config.Topic, log), nil
	case "log":
		return NewLogSender(log), nil
	default:
		return nil, fmt.Errorf("unknown notify transport %q", config.Transport)
	}
}
