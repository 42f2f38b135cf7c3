package adapter

import (
	"context"
	"encoding/json"

	pkgerrors "github.com/pkg/errors"
	"github.com/segmentio/kafka-go"

	"storefront/internal/pkg/mq"
)

// KafkaEventPublisher implements port.EventPublisher over the shared
// writer; topic and routing key come from the bus contract.
type KafkaEventPublisher struct {
	writer *kafka.Writer
}

func NewKafkaEventPublisher(writer *kafka.Writer) *KafkaEventPublisher {
	return &KafkaEventPublisher{writer: writer}
}

func (p *KafkaEventPublisher) Publish(ctx context.Context, topic, routingKey string, payload any) error {
	value, err := json.Marshal(payload)
	if err != nil {
		return pkgerrors.Wrap(err, "marshalling event payload")
	}
	if err := mq.Produce(ctx, p.writer, topic, []byte(routingKey), value); err != nil {
		return pkgerrors.Wrapf(err, "publishing to %s", topic)
	}
	return nil
}
