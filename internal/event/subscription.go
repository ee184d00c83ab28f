package event

import (
	"context"
	"sync/atomic"

	"github.com/google/uuid"
)

// HandlerFunc handles one event payload.
type HandlerFunc func(ctx context.Context, payload any) error

// Cancelable is implemented by payloads whose default action listeners may
// prevent, such as *mouse.WheelEvent.
type Cancelable interface {
	SetCancelable(cancelable bool)
}

// SubscriptionConfig contains configuration for a subscription.
type SubscriptionConfig struct {
	// Passive listeners cannot prevent the event's default action.
	Passive bool

	// Once removes the subscription after its first delivery.
	Once bool
}

// SubscriptionOption is a function that configures a subscription.
type SubscriptionOption func(*SubscriptionConfig)

// WithPassive marks the listener passive.
func WithPassive() SubscriptionOption {
	return func(c *SubscriptionConfig) {
		c.Passive = true
	}
}

// WithOnce removes the listener after the first event it receives.
func WithOnce() SubscriptionOption {
	return func(c *SubscriptionConfig) {
		c.Once = true
	}
}

// Subscription is the handle returned by On. It is the only way to remove
// the listener it names.
type Subscription struct {
	id        string
	topic     Topic
	handler   HandlerFunc
	config    SubscriptionConfig
	cancelled atomic.Bool
}

func newSubscription(t Topic, h HandlerFunc, opts ...SubscriptionOption) *Subscription {
	var config SubscriptionConfig
	for _, opt := range opts {
		opt(&config)
	}
	return &Subscription{
		id:      uuid.NewString(),
		topic:   t,
		handler: h,
		config:  config,
	}
}

// ID returns the unique subscription identifier.
func (s *Subscription) ID() string {
	if s == nil {
		return ""
	}
	return s.id
}

// Topic returns the subscribed topic.
func (s *Subscription) Topic() Topic {
	if s == nil {
		return ""
	}
	return s.topic
}

// Config returns the subscription configuration.
func (s *Subscription) Config() SubscriptionConfig {
	return s.config
}

// IsActive returns false once the subscription has been removed.
func (s *Subscription) IsActive() bool {
	return s != nil && !s.cancelled.Load()
}
