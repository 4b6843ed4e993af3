package sse

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHub_Publish_DeliversToTopicSubscribers(t *testing.T) {
	// Arrange
	hub := NewHub()
	ch, cleanup := hub.Subscribe("dashboard", "client-a")
	defer cleanup()
	other, cleanupOther := hub.Subscribe("other", "client-b")
	defer cleanupOther()

	// Act
	delivered := hub.Publish("dashboard", Event{Event: "render", Data: map[string]int{"revision": 1}})

	// Assert
	assert.Equal(t, 1, delivered)
	select {
	case ev := <-ch:
		assert.Equal(t, "render", ev.Event)
		assert.Equal(t, "dashboard", ev.Topic)
		assert.NotEmpty(t, ev.ID)
	default:
		t.Fatal("expected an event on the dashboard topic")
	}
	assert.Len(t, other, 0)
}

func TestHub_Publish_DropsWhenBufferFull(t *testing.T) {
	hub := NewHub()
	ch, cleanup := hub.Subscribe("dashboard", "slow-client")
	defer cleanup()

	for i := 0; i < hub.bufferSize+5; i++ {
		hub.Publish("dashboard", Event{Event: "tick"})
	}

	assert.Len(t, ch, hub.bufferSize)
}

func TestHub_Cleanup_RemovesSubscriber(t *testing.T) {
	hub := NewHub()
	_, cleanupA := hub.Subscribe("dashboard", "a")
	_, cleanupB := hub.Subscribe("dashboard", "b")
	assert.Equal(t, 2, hub.SubscriberCount("dashboard"))

	cleanupA()
	cleanupA()
	assert.Equal(t, 1, hub.SubscriberCount("dashboard"))

	cleanupB()
	assert.Equal(t, 0, hub.SubscriberCount("dashboard"))
}

func TestHub_Cleanup_ClosesChannel(t *testing.T) {
	hub := NewHub()
	ch, cleanup := hub.Subscribe("dashboard", "a")

	cleanup()

	_, open := <-ch
	assert.False(t, open)
	assert.Equal(t, 0, hub.Publish("dashboard", Event{Event: "render"}))
}

func TestWrite_FormatsFrame(t *testing.T) {
	var buf bytes.Buffer

	err := Write(&buf, Event{ID: "42", Event: "notice", Data: map[string]string{"message": "ok"}})

	require.NoError(t, err)
	assert.Equal(t, "id: 42\nevent: notice\ndata: {\"message\":\"ok\"}\n\n", buf.String())
}
