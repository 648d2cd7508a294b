package service

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func receive(t *testing.T, ch <-chan []byte) Message {
	t.Helper()
	select {
	case raw, ok := <-ch:
		require.True(t, ok, "channel closed")
		var msg Message
		require.NoError(t, json.Unmarshal(raw, &msg))
		return msg
	case <-time.After(time.Second):
		t.Fatal("no message received")
		return Message{}
	}
}

func TestMemoryFeedFansOut(t *testing.T) {
	feed := NewFeedService(nil)
	ctx := context.Background()

	a, stopA, err := feed.Subscribe(ctx)
	require.NoError(t, err)
	defer stopA()
	b, stopB, err := feed.Subscribe(ctx)
	require.NoError(t, err)
	defer stopB()

	feed.Publish(ctx, EventCreated, map[string]string{"title": "Chashak Final"})

	for _, ch := range []<-chan []byte{a, b} {
		msg := receive(t, ch)
		assert.Equal(t, EventCreated, msg.Type)
		assert.Equal(t, map[string]any{"title": "Chashak Final"}, msg.Data)
		assert.False(t, msg.At.IsZero())
	}
}

func TestMemoryFeedStopsOnCancel(t *testing.T) {
	feed := NewMemoryFeed().(*memoryFeed)
	ctx, cancel := context.WithCancel(context.Background())

	ch, stop, err := feed.Subscribe(ctx)
	require.NoError(t, err)
	cancel()

	select {
	case _, ok := <-ch:
		assert.False(t, ok)
	case <-time.After(time.Second):
		t.Fatal("subscription not closed")
	}
	stop()

	feed.mu.Lock()
	assert.Empty(t, feed.subs)
	feed.mu.Unlock()

	// publishing with no subscribers must not block
	feed.Publish(context.Background(), PhotoCreated, nil)
}
