package port

import "context"

// EventPublisher is the outbound port to the message bus. A nil return
// means the broker accepted the message, not that any consumer saw it.
type EventPublisher interface {
	Publish(ctx context.Context, topic, routingKey string, payload any) error
}
