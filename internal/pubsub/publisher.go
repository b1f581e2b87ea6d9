package pubsub

import "context"

// Publisher defines a minimal fire-and-forget message channel.
// It is intentionally small so different components can depend on it without
// importing concrete implementations (e.g. Redis).
type Publisher interface {
	// Publish reports whether the payload was handed to the transport.
	// Delivery is best effort; implementations log failures and never
	// propagate them to the caller.
	Publish(ctx context.Context, topic string, payload map[string]any) bool
}

// Noop discards every message. Used when no broker is configured.
type Noop struct{}

func (Noop) Publish(context.Context, string, map[string]any) bool { return false }
