package game

import (
	"slices"
	"time"
)

// EventType represents a table event type with type safety
type EventType string

const (
	EventTypeRoundStart EventType = "round_start"
	EventTypeAction     EventType = "action"
	EventTypeRoundEnd   EventType = "round_end"
	EventTypeReset      EventType = "reset"
)

// String returns the string representation of the event type
func (et EventType) String() string {
	return string(et)
}

// Event is anything the table publishes to subscribers
type Event interface {
	EventType() EventType
	Timestamp() time.Time
}

// RoundStartEvent is published once boots are posted and hands are dealt
type RoundStartEvent struct {
	RoundID    string
	Generation uint64
	DealerSeat int
	ActiveSeat int
	Boot       int
	Pot        int
	timestamp  time.Time
}

func (e RoundStartEvent) EventType() EventType { return EventTypeRoundStart }
func (e RoundStartEvent) Timestamp() time.Time { return e.timestamp }

// ActionEvent is published after every applied action
type ActionEvent struct {
	RoundID   string
	Seat      int
	Name      string
	Action    Action
	Amount    int // chips actually paid, 0 for see/fold/show
	Stake     int // stake after the action
	PotAfter  int
	NextSeat  int // -1 when the action ended the round
	timestamp time.Time
}

func (e ActionEvent) EventType() EventType { return EventTypeAction }
func (e ActionEvent) Timestamp() time.Time { return e.timestamp }

// RoundEndEvent is published when the round reaches Finished
type RoundEndEvent struct {
	RoundID   string
	Outcome   Outcome
	timestamp time.Time
}

func (e RoundEndEvent) EventType() EventType { return EventTypeRoundEnd }
func (e RoundEndEvent) Timestamp() time.Time { return e.timestamp }

// ResetEvent is published on a hard reset or when a finished round is
// cleared back to Idle.
type ResetEvent struct {
	Generation uint64
	Hard       bool
	timestamp  time.Time
}

func (e ResetEvent) EventType() EventType { return EventTypeReset }
func (e ResetEvent) Timestamp() time.Time { return e.timestamp }

// EventSubscriber can subscribe to table events
type EventSubscriber interface {
	OnEvent(event Event)
}

// SubscriberFunc adapts a function to EventSubscriber.
type SubscriberFunc func(Event)

func (f SubscriberFunc) OnEvent(event Event) { f(event) }

// EventBus manages event publishing and subscription
type EventBus interface {
	Subscribe(subscriber EventSubscriber)
	Unsubscribe(subscriber EventSubscriber)
	Publish(event Event)
}

// SimpleEventBus is a synchronous in-memory event bus. Subscribers run on
// the publishing goroutine, so they must not call back into the table.
type SimpleEventBus struct {
	subscribers []EventSubscriber
}

// NewEventBus creates a new event bus
func NewEventBus() EventBus {
	return &SimpleEventBus{}
}

// Subscribe adds a subscriber to receive events
func (bus *SimpleEventBus) Subscribe(subscriber EventSubscriber) {
	bus.subscribers = append(bus.subscribers, subscriber)
}

// Unsubscribe removes a subscriber. SubscriberFunc values cannot be compared
// and are never removed.
func (bus *SimpleEventBus) Unsubscribe(subscriber EventSubscriber) {
	if _, ok := subscriber.(SubscriberFunc); ok {
		return
	}
	bus.subscribers = slices.DeleteFunc(bus.subscribers, func(s EventSubscriber) bool {
		if _, ok := s.(SubscriberFunc); ok {
			return false
		}
		return s == subscriber
	})
}

// Publish sends an event to all subscribers
func (bus *SimpleEventBus) Publish(event Event) {
	for _, subscriber := range bus.subscribers {
		subscriber.OnEvent(event)
	}
}
