package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

type kafkaSender struct {
	writer *kafka.Writer
	Log    *zap.Logger
}

// NewKafkaSender writes envelopes to topic, keyed by event type.
func NewKafkaSender(brokers []string, topic string, log *zap.Logger) Sender {
	writer := &kafka.Writer{
		Addr:                   kafka.TCP(brokers...),
		Topic:                  topic,
		Balancer:               &kafka.LeastBytes{},
		BatchTimeout:           10 * time.Millisecond,
		RequiredAcks:           kafka.RequireOne,
		AllowAutoTopicCreation: true,
	}

	return &kafkaSender{
		writer: writer,
		Log:    log.With(zap.String("sender", "kafka"), zap.String("topic", topic)),
	}
}

func (s *kafkaSender) Send(ctx context.Context, event Event) error {
	value, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("encode event: %w", err)
	}

	msg := kafka.Message{
		Key:   []byte(event.EventType),
		Value: value,
		Time:  time.Now(),
	}

	if err := s.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("write message: %w", err)
	}

	s.Log.Debug("Notification written", zap.String("event_type", string(event.EventType)))
	return nil
}

func (s *kafkaSender) Close() error {
	return s.writer.Close()
}
