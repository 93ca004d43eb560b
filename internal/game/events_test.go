package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type recordingSubscriber struct {
	events []Event
}

func (r *recordingSubscriber) OnEvent(e Event) {
	r.events = append(r.events, e)
}

func TestEventBusSubscribeUnsubscribe(t *testing.T) {
	bus := NewEventBus()
	first, second := &recordingSubscriber{}, &recordingSubscriber{}
	bus.Subscribe(first)
	bus.Subscribe(second)

	bus.Publish(ResetEvent{Generation: 1})
	bus.Unsubscribe(first)
	bus.Publish(ResetEvent{Generation: 2})

	assert.Len(t, first.events, 1)
	assert.Len(t, second.events, 2)
	assert.Equal(t, EventTypeReset, second.events[1].EventType())
}

func TestEventBusFuncSubscribersStay(t *testing.T) {
	bus := NewEventBus()
	calls := 0
	fn := SubscriberFunc(func(Event) { calls++ })
	bus.Subscribe(fn)

	assert.NotPanics(t, func() { bus.Unsubscribe(fn) })
	bus.Publish(ResetEvent{})
	assert.Equal(t, 1, calls)
}

func TestActionLogOrder(t *testing.T) {
	var l ActionLog
	for i := range 8 {
		l.Addf("entry %d", i)
	}
	assert.Equal(t, ActionLogSize, l.Len())
	assert.Equal(t, "entry 7", l.Entries()[0])
	assert.Equal(t, "entry 2", l.Entries()[ActionLogSize-1])
}

func TestParseAction(t *testing.T) {
	for _, a := range Actions {
		parsed, err := ParseAction(a.String())
		assert.NoError(t, err)
		assert.Equal(t, a, parsed)
	}
	parsed, err := ParseAction("Chaal")
	assert.NoError(t, err)
	assert.Equal(t, Call, parsed)

	_, err = ParseAction("check")
	assert.Error(t, err)
}
