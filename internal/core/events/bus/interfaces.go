package bus

import "time"

// EventBus is a thread-safe, in-process pub/sub bus for simulation events
// such as contact begin/end notifications.
//
// Handlers subscribe by Event.Type() or to every type with SubscribeAll.
// Delivery is synchronous, in subscription order, on the publisher's
// goroutine. Handler errors are joined and returned from Publish.
type EventBus interface {
	// Publish delivers the event to every active subscriber of event.Type()
	// and then to the wildcard subscribers.
	Publish(event Event) error
	// PublishWithFilters drops the event silently when any filter rejects it.
	PublishWithFilters(event Event, filters ...EventFilter) error
	// PublishAsync publishes on a new goroutine. The returned channel yields
	// the joined error (or nil) once and is then closed.
	PublishAsync(event Event) <-chan error
	// PublishBatch publishes events in order and joins all errors.
	PublishBatch(events ...Event) error

	Subscribe(eventType string, handler EventHandler) (Subscription, error)
	SubscribeAll(handler EventHandler) (Subscription, error)
	// Unsubscribe is safe to call with nil.
	Unsubscribe(Subscription) error

	AddObserver(obs EventBusObserver)
	RemoveObserver(obs EventBusObserver)
	// GetMetrics is only updated while at least one observer is registered.
	GetMetrics() EventBusMetrics
}

// Event is an immutable message transported by the EventBus.
type Event interface {
	Type() string
	Source() string
	Timestamp() time.Time
	Data() any
}

type (
	EventHandler func(event Event) error
	EventFilter  func(event Event) bool
)

// Subscription is a registered handler. Cancel is idempotent.
type Subscription interface {
	ID() string
	EventType() string
	IsActive() bool
	Cancel() error
}

// EventBusObserver receives delivery callbacks and should return quickly.
type EventBusObserver interface {
	OnPublish(eventType string, event Event)
	OnDelivered(eventType string, handlers int, err error, duration time.Duration)
}

type EventBusMetrics struct {
	Published         uint64
	DeliveredHandlers uint64
	Errors            uint64
	DroppedByFilters  uint64
	SubscribersActive uint64
}
