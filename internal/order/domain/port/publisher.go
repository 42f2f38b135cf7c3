package port

import "context"

// EventPublisher is the outbound port to the message bus. Best effort and
// at-least-once: a nil return means the broker accepted the message.
type EventPublisher interface {
	Publish(ctx context.Context, topic, routingKey string, payload any) error
}
