package sse

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHub_PublishReachesTopicAndAll(t *testing.T) {
	hub := NewHub()

	frontOffice, cleanupFO := hub.Subscribe("Front Office")
	defer cleanupFO()
	housekeeping, cleanupHK := hub.Subscribe("Housekeeping")
	defer cleanupHK()
	all, cleanupAll := hub.Subscribe(TopicAll)
	defer cleanupAll()

	hub.Publish(Event{Topic: "Front Office", Name: "attendance.check_in", Data: "E101"})

	require.Len(t, frontOffice, 1)
	require.Len(t, all, 1)
	assert.Empty(t, housekeeping)

	got := <-frontOffice
	assert.Equal(t, "attendance.check_in", got.Name)
	assert.Equal(t, "E101", got.Data)
}

func TestHub_CleanupRemovesSubscriber(t *testing.T) {
	hub := NewHub()

	ch, cleanup := hub.Subscribe("Front Office")
	assert.Equal(t, 1, hub.SubscriberCount("Front Office"))

	cleanup()

	assert.Zero(t, hub.SubscriberCount("Front Office"))
	_, open := <-ch
	assert.False(t, open)

	hub.Publish(Event{Topic: "Front Office", Name: "attendance.check_out"})
}

func TestHub_FullBufferDropsEvents(t *testing.T) {
	hub := NewHub()

	ch, cleanup := hub.Subscribe("Housekeeping")
	defer cleanup()

	for i := 0; i < cap(ch)+5; i++ {
		hub.Publish(Event{Topic: "Housekeeping", Name: "attendance.check_in"})
	}

	assert.Len(t, ch, cap(ch))
}
