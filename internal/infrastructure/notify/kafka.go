// Package notify publishes order notifications for farmers. Delivery is
// best-effort: a failed publish is logged by the caller and never fails the
// order.
package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/segmentio/kafka-go"
)

// MessageWriter is the slice of kafka.Writer the producer needs. It exists
// so unit tests can swap in a fake.
type MessageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// OrderEvent is the payload published when an order is placed.
type OrderEvent struct {
	OrderID   string    `json:"orderId"`
	FarmID    string    `json:"farmId"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"createdAt"`
}

// KafkaPublisher writes order events to a Kafka topic, keyed by farm so one
// farm's notifications stay ordered.
type KafkaPublisher struct {
	writer MessageWriter
}

// NewKafkaPublisher creates a publisher for the given brokers and topic.
func NewKafkaPublisher(brokers []string, topic string) *KafkaPublisher {
	writer := &kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Topic:        topic,
		Balancer:     &kafka.Hash{},
		RequiredAcks: kafka.RequireOne,
	}
	return &KafkaPublisher{writer: writer}
}

// PublishOrderNotification publishes one order event.
func (p *KafkaPublisher) PublishOrderNotification(ctx context.Context, farmID, orderID, message string) error {
	event := OrderEvent{
		OrderID:   orderID,
		FarmID:    farmID,
		Message:   message,
		CreatedAt: time.Now().UTC(),
	}

	value, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("notify: encode event: %w", err)
	}

	err = p.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(farmID),
		Value: value,
	})
	if err != nil {
		return fmt.Errorf("notify: publish order %s: %w", orderID, err)
	}
	return nil
}

// Close flushes and closes the underlying writer.
func (p *KafkaPublisher) Close() error {
	return p.writer.Close()
}

// NoopPublisher is used when no broker is configured.
type NoopPublisher struct{}

func (NoopPublisher) PublishOrderNotification(ctx context.Context, farmID, orderID, message string) error {
	return nil
}
