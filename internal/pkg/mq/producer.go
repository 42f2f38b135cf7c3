// Package mq wraps the Kafka client used as the message bus. Topic names
// carry the exchange names from the bus contract; the message key carries
// the routing key so consumers can filter without decoding payloads.
package mq

import (
	"context"

	"github.com/segmentio/kafka-go"
)

// NewWriter builds the shared writer for a service. RequireAll plus topic
// auto-creation gives the durable, broker-acknowledged delivery the
// publishers rely on: a nil return from Produce means the broker accepted
// the message, nothing more.
func NewWriter(brokers []string) *kafka.Writer {
	return &kafka.Writer{
		Addr:                   kafka.TCP(brokers...),
		Balancer:               &kafka.Hash{},
		RequiredAcks:           kafka.RequireAll,
		AllowAutoTopicCreation: true,
	}
}

// Produce sends one message to topic with the given key and value.
func Produce(ctx context.Context, writer *kafka.Writer, topic string, key, value []byte) error {
	return writer.WriteMessages(ctx, kafka.Message{
		Topic: topic,
		Key:   key,
		Value: value,
	})
}
