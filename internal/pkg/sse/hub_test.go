package sse

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHub_PublishToTopic(t *testing.T) {
	hub := NewHub()
	events, cleanup := hub.Subscribe("leaderboard", "employee:1")
	defer cleanup()

	hub.Publish(Event{Name: "metrics_updated", Data: 1}, "employee:1")
	hub.Publish(Event{Name: "metrics_updated", Data: 2}, "employee:2")
	hub.Publish(Event{Name: "metrics_updated", Data: 3}, "leaderboard")

	first := <-events
	assert.Equal(t, "employee:1", first.Topic)
	assert.Equal(t, 1, first.Data)

	second := <-events
	assert.Equal(t, "leaderboard", second.Topic)
	assert.Equal(t, 3, second.Data)

	assert.Empty(t, events)
}

func TestHub_PublishOncePerSubscriber(t *testing.T) {
	hub := NewHub()
	both, cleanupBoth := hub.Subscribe("leaderboard", "employee:1")
	defer cleanupBoth()
	other, cleanupOther := hub.Subscribe("employee:2")
	defer cleanupOther()

	hub.Publish(Event{Name: "metrics_updated"}, "employee:1", "leaderboard")

	assert.Len(t, both, 1)
	assert.Empty(t, other)
}

func TestHub_CleanupUnsubscribes(t *testing.T) {
	hub := NewHub()
	events, cleanup := hub.Subscribe("leaderboard", "employee:1")
	assert.Equal(t, 1, hub.SubscriberCount("leaderboard"))

	cleanup()
	cleanup()

	assert.Equal(t, 0, hub.SubscriberCount("leaderboard"))
	assert.Equal(t, 0, hub.SubscriberCount("employee:1"))
	_, open := <-events
	assert.False(t, open)

	assert.NotPanics(t, func() { hub.Publish(Event{Name: "metrics_updated"}, "leaderboard") })
}

func TestHub_FullBufferDropsEvents(t *testing.T) {
	hub := NewHub()
	events, cleanup := hub.Subscribe("leaderboard")
	defer cleanup()

	for i := 0; i < hub.bufferSize+5; i++ {
		hub.Publish(Event{Name: "metrics_updated", Data: i}, "leaderboard")
	}
	require.Len(t, events, hub.bufferSize)
	first := <-events
	assert.Equal(t, 0, first.Data)
}
