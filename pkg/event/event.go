// pkg/event/event.go
package event

import (
	"sync"

	"github.com/opd-ai/go-magnus/pkg/physics"
)

// Type represents the type of event
type Type string

// Simulation event types
const (
	BodySpawned         Type = "body_spawned"
	BodyDespawned       Type = "body_despawned"
	BodyReset           Type = "body_reset"
	FollowTargetChanged Type = "follow_target_changed"
	SimulationStarted   Type = "simulation_started"
	SimulationStopped   Type = "simulation_stopped"
)

// Event is the base interface for all events
type Event interface {
	GetType() Type
	GetSource() interface{}
}

// BaseEvent provides common functionality for all events
type BaseEvent struct {
	EventType Type
	Source    interface{}
}

// GetType returns the event type
func (e *BaseEvent) GetType() Type {
	return e.EventType
}

// GetSource returns the event source
func (e *BaseEvent) GetSource() interface{} {
	return e.Source
}

// Handler is a function that handles events
type Handler func(Event)

// SubscriptionID identifies a registered handler
type SubscriptionID uint64

// Subscription is returned by Subscribe; Cancel removes the handler
type Subscription struct {
	ID     SubscriptionID
	Cancel func()
}

type subscriber struct {
	id      SubscriptionID
	handler Handler
}

// Bus manages event subscriptions and dispatching
type Bus struct {
	handlers map[Type][]subscriber
	nextID   SubscriptionID
	mu       sync.RWMutex
}

// NewEventBus creates a new event bus
func NewEventBus() *Bus {
	return &Bus{
		handlers: make(map[Type][]subscriber),
		nextID:   1,
	}
}

// Subscribe registers a handler for a specific event type
func (b *Bus) Subscribe(eventType Type, handler Handler) *Subscription {
	b.mu.Lock()
	defer b.mu.Unlock()

	id := b.nextID
	b.nextID++
	b.handlers[eventType] = append(b.handlers[eventType], subscriber{id: id, handler: handler})

	return &Subscription{
		ID:     id,
		Cancel: func() { b.Unsubscribe(eventType, id) },
	}
}

// Unsubscribe removes a handler for a specific event type
func (b *Bus) Unsubscribe(eventType Type, id SubscriptionID) {
	b.mu.Lock()
	defer b.mu.Unlock()

	subs := b.handlers[eventType]
	for i, s := range subs {
		if s.id == id {
			b.handlers[eventType] = append(subs[:i:i], subs[i+1:]...)
			break
		}
	}
	if len(b.handlers[eventType]) == 0 {
		delete(b.handlers, eventType)
	}
}

// Publish sends an event to all subscribed handlers
func (b *Bus) Publish(event Event) {
	b.mu.RLock()
	subs := append([]subscriber(nil), b.handlers[event.GetType()]...)
	b.mu.RUnlock()

	// Handlers run outside the lock so they may subscribe or publish
	for _, s := range subs {
		s.handler(event)
	}
}

// Specific event implementations

// BodyEvent contains information about a body lifecycle change
type BodyEvent struct {
	BaseEvent
	Handle physics.Handle
	Name   string
}

// NewBodyEvent creates a new body event
func NewBodyEvent(eventType Type, source interface{}, h physics.Handle, name string) *BodyEvent {
	return &BodyEvent{
		BaseEvent: BaseEvent{
			EventType: eventType,
			Source:    source,
		},
		Handle: h,
		Name:   name,
	}
}

// FollowEvent is published when the follow target registry changes
type FollowEvent struct {
	BaseEvent
	Handle physics.Handle
	// Set is false when the registry was cleared
	Set       bool
	Previous  physics.Handle
	HadTarget bool
}

// NewFollowEvent creates a new follow target event
func NewFollowEvent(source interface{}, h physics.Handle, set bool, previous physics.Handle, hadTarget bool) *FollowEvent {
	return &FollowEvent{
		BaseEvent: BaseEvent{
			EventType: FollowTargetChanged,
			Source:    source,
		},
		Handle:    h,
		Set:       set,
		Previous:  previous,
		HadTarget: hadTarget,
	}
}

// SimulationEvent marks simulation start and stop
type SimulationEvent struct {
	BaseEvent
	RunID string
	Ticks uint64
}

// NewSimulationEvent creates a new simulation lifecycle event
func NewSimulationEvent(eventType Type, source interface{}, runID string, ticks uint64) *SimulationEvent {
	return &SimulationEvent{
		BaseEvent: BaseEvent{
			EventType: eventType,
			Source:    source,
		},
		RunID: runID,
		Ticks: ticks,
	}
}
