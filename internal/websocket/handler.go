package websocket

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
)

// ServeWs streams the events of one view to the peer until it disconnects.
func ServeWs(hub *Hub, c *websocket.Conn, contextID string) {
	client := &Client{Hub: hub, Conn: c, ContextID: contextID, Send: make(chan []byte, 256)}
	select {
	case hub.register <- client:
	case <-hub.done:
		c.Close()
		return
	}

	go client.writePump()
	client.readPump()
}

// Handler upgrades GET /context/v1/:id/events. Plain HTTP requests get 426.
func Handler(hub *Hub) fiber.Handler {
	upgrade := websocket.New(func(c *websocket.Conn) {
		contextID := c.Params("id")
		hub.logger.Info(hubModule, "Starting event stream", map[string]interface{}{"context_id": contextID})
		ServeWs(hub, c, contextID)
		hub.logger.Info(hubModule, "Event stream ended", map[string]interface{}{"context_id": contextID})
	})

	return func(ctx *fiber.Ctx) error {
		if !websocket.IsWebSocketUpgrade(ctx) {
			return fiber.ErrUpgradeRequired
		}
		return upgrade(ctx)
	}
}
