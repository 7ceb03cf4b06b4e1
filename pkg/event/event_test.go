// pkg/event/event_test.go
package event

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewEventBus_Creation_ReturnsInitializedBus(t *testing.T) {
	bus := NewEventBus()

	require.NotNil(t, bus)
	assert.NotNil(t, bus.handlers)
	assert.Equal(t, SubscriptionID(1), bus.nextID)
}

func TestBaseEvent_GetType_ReturnsCorrectType(t *testing.T) {
	tests := []struct {
		name      string
		eventType Type
		source    interface{}
	}{
		{"BodySpawned event", BodySpawned, "test_source"},
		{"FollowTargetChanged event", FollowTargetChanged, 123},
		{"Empty source", SimulationStarted, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			event := &BaseEvent{EventType: tt.eventType, Source: tt.source}

			assert.Equal(t, tt.eventType, event.GetType())
			assert.Equal(t, tt.source, event.GetSource())
		})
	}
}

func TestBusSubscribe_MultipleHandlers_UniqueIDs(t *testing.T) {
	bus := NewEventBus()

	sub1 := bus.Subscribe(BodyReset, func(Event) {})
	sub2 := bus.Subscribe(BodyReset, func(Event) {})
	_ = bus.Subscribe(FollowTargetChanged, func(Event) {})

	assert.NotZero(t, sub1.ID)
	assert.NotEqual(t, sub1.ID, sub2.ID)
	assert.Len(t, bus.handlers[BodyReset], 2)
	assert.Len(t, bus.handlers[FollowTargetChanged], 1)
}

func TestBusPublish_WithSubscribers_CallsMatchingHandlers(t *testing.T) {
	bus := NewEventBus()
	var received []Event

	bus.Subscribe(BodyReset, func(e Event) { received = append(received, e) })
	bus.Subscribe(BodyReset, func(e Event) { received = append(received, e) })
	bus.Subscribe(BodySpawned, func(e Event) { t.Error("handler for other type called") })

	bus.Publish(NewBodyEvent(BodyReset, "test", 4, "ball"))

	require.Len(t, received, 2)
	for _, e := range received {
		body, ok := e.(*BodyEvent)
		require.True(t, ok)
		assert.Equal(t, "ball", body.Name)
	}
}

func TestBusPublish_NoSubscribers_NoPanic(t *testing.T) {
	bus := NewEventBus()
	assert.NotPanics(t, func() {
		bus.Publish(&BaseEvent{EventType: SimulationStopped})
	})
}

func TestSubscriptionCancel_RemovesOnlyThatHandler(t *testing.T) {
	bus := NewEventBus()
	var first, second int

	sub := bus.Subscribe(FollowTargetChanged, func(Event) { first++ })
	bus.Subscribe(FollowTargetChanged, func(Event) { second++ })

	sub.Cancel()
	bus.Publish(NewFollowEvent("test", 2, true, 1, true))

	assert.Equal(t, 0, first)
	assert.Equal(t, 1, second)

	// Cancelling twice is harmless
	sub.Cancel()
	assert.Len(t, bus.handlers[FollowTargetChanged], 1)
}

func TestBusPublish_HandlerMaySubscribe(t *testing.T) {
	bus := NewEventBus()
	bus.Subscribe(SimulationStarted, func(Event) {
		bus.Subscribe(SimulationStopped, func(Event) {})
	})

	assert.NotPanics(t, func() {
		bus.Publish(NewSimulationEvent(SimulationStarted, nil, "run", 0))
	})
	assert.Len(t, bus.handlers[SimulationStopped], 1)
}

func TestBusSubscribe_ConcurrentAccess_ThreadSafe(t *testing.T) {
	bus := NewEventBus()
	var wg sync.WaitGroup
	var mu sync.Mutex
	calls := 0

	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			sub := bus.Subscribe(BodySpawned, func(Event) {
				mu.Lock()
				calls++
				mu.Unlock()
			})
			bus.Publish(&BaseEvent{EventType: BodySpawned})
			sub.Cancel()
		}()
	}
	wg.Wait()

	assert.Empty(t, bus.handlers[BodySpawned])
	assert.GreaterOrEqual(t, calls, 10)
}

func TestEventConstructors(t *testing.T) {
	follow := NewFollowEvent("registry", 9, true, 0, false)
	assert.Equal(t, FollowTargetChanged, follow.GetType())
	assert.EqualValues(t, 9, follow.Handle)
	assert.False(t, follow.HadTarget)

	sim := NewSimulationEvent(SimulationStopped, "sim", "abc", 42)
	assert.Equal(t, SimulationStopped, sim.GetType())
	assert.Equal(t, uint64(42), sim.Ticks)
}
