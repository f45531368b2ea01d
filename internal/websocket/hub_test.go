package websocket

import (
	"context"
	"encoding/json"
	"net/http/httptest"
	"runtime"
	"testing"
	"time"

	"brainmode-be/internal/pkg/logger"
	"brainmode-be/pkg/events"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newRunningHub(t *testing.T) *Hub {
	t.Helper()
	hub := NewHub(nil, logger.NewFromZap(zap.NewNop(), ""))
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	go hub.Run(ctx)
	return hub
}

func watch(t *testing.T, hub *Hub, contextID string) *Client {
	t.Helper()
	client := &Client{Hub: hub, ContextID: contextID, Send: make(chan []byte, 4)}
	before := hub.Watchers(contextID)
	hub.register <- client
	require.Eventually(t, func() bool { return hub.Watchers(contextID) == before+1 }, time.Second, 5*time.Millisecond)
	return client
}

func TestPublishReachesOnlyWatchersOfTheView(t *testing.T) {
	hub := newRunningHub(t)
	a := watch(t, hub, "view-a")
	b := watch(t, hub, "view-b")

	err := hub.Publish(context.Background(), events.NewContextEvent(events.ContextUpdated, "view-a", map[string]interface{}{
		"fields": []string{"title"},
	}))
	require.NoError(t, err)

	select {
	case raw := <-a.Send:
		var msg struct {
			Type string                 `json:"type"`
			Data map[string]interface{} `json:"data"`
		}
		require.NoError(t, json.Unmarshal(raw, &msg))
		assert.Equal(t, events.ContextUpdated, msg.Type)
		assert.Equal(t, "view-a", msg.Data["context_id"])
	case <-time.After(time.Second):
		t.Fatal("watcher of view-a got nothing")
	}
	assert.Empty(t, b.Send)
}

func TestPublishIgnoresEventsWithoutView(t *testing.T) {
	hub := newRunningHub(t)
	c := watch(t, hub, "view-a")

	require.NoError(t, hub.Publish(context.Background(), events.BaseEvent{Type: "OTHER", Data: map[string]interface{}{}}))
	assert.Empty(t, c.Send)
}

func TestUnregisterClosesSend(t *testing.T) {
	hub := newRunningHub(t)
	c := watch(t, hub, "view-a")

	hub.unregister <- c
	require.Eventually(t, func() bool { return hub.Watchers("view-a") == 0 }, time.Second, 5*time.Millisecond)
	_, open := <-c.Send
	assert.False(t, open)
}

func TestSlowClientIsDroppedOnce(t *testing.T) {
	hub := newRunningHub(t)
	c := &Client{Hub: hub, ContextID: "view-a", Send: make(chan []byte)}
	hub.register <- c
	require.Eventually(t, func() bool { return hub.Watchers("view-a") == 1 }, time.Second, 5*time.Millisecond)

	for i := 0; i < 5; i++ {
		require.NoError(t, hub.Publish(context.Background(), events.NewContextEvent(events.ContextUpdated, "view-a", nil)))
	}

	require.Eventually(t, func() bool { return hub.Watchers("view-a") == 0 }, time.Second, 5*time.Millisecond)
	_, open := <-c.Send
	assert.False(t, open)
}

func TestDropAfterStopDoesNotLeakGoroutines(t *testing.T) {
	hub := NewHub(nil, logger.NewFromZap(zap.NewNop(), ""))
	ctx, cancel := context.WithCancel(context.Background())
	go hub.Run(ctx)

	c := &Client{Hub: hub, ContextID: "view-a", Send: make(chan []byte)}
	hub.register <- c
	require.Eventually(t, func() bool { return hub.Watchers("view-a") == 1 }, time.Second, 5*time.Millisecond)

	cancel()
	<-hub.done
	baseline := runtime.NumGoroutine()

	for i := 0; i < 20; i++ {
		require.NoError(t, hub.Publish(context.Background(), events.NewContextEvent(events.ContextUpdated, "view-a", nil)))
	}

	require.Eventually(t, func() bool { return runtime.NumGoroutine() <= baseline }, time.Second, 5*time.Millisecond)
	assert.Equal(t, 1, hub.Watchers("view-a"), "a stopped hub unregisters nobody")
}

func TestHandlerRequiresUpgrade(t *testing.T) {
	app := fiber.New()
	app.Get("/context/v1/:id/events", Handler(newRunningHub(t)))

	resp, err := app.Test(httptest.NewRequest("GET", "/context/v1/view-a/events", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUpgradeRequired, resp.StatusCode)
}
