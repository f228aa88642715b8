// Package kafka provides the kafka-backed events publisher.
package kafka

import (
	"context"
	"encoding/json"

	"github.com/go-fintrack/fintrack/internal/events"
	"github.com/segmentio/kafka-go"
)

// Topic receives all committed ledger events.
const Topic = "transaction.completed"

// Publisher publishes ledger events to kafka.
type Publisher struct {
	writer *kafka.Writer
}

// NewPublisher returns a Publisher writing to the given brokers.
func NewPublisher(brokers []string) *Publisher {
	return &Publisher{
		writer: &kafka.Writer{
			Addr:     kafka.TCP(brokers...),
			Topic:    Topic,
			Balancer: &kafka.LeastBytes{},
		},
	}
}

// Publish implements events.Publisher.
func (p *Publisher) Publish(ctx context.Context, event events.TransactionCompleted) error {
	data, err := json.Marshal(event)
	if err != nil {
		return err
	}

	return p.writer.WriteMessages(ctx, kafka.Message{Value: data})
}

// Close closes the underlying writer.
func (p *Publisher) Close() error {
	return p.writer.Close()
}
