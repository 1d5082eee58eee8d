package handlers

import (
	"github.com/gofiber/contrib/websocket"
	ws "github.com/ictcert/cert_portal/websocket"
)

// ServeEvents upgrades an admin connection onto the live event feed. The
// read loop only exists to notice the disconnect.
var ServeEvents = websocket.New(func(c *websocket.Conn) {
	client := &ws.Client{Conn: c}
	ws.Register <- client
	defer func() {
		ws.Unregister <- client
	}()

	for {
		if _, _, err := c.ReadMessage(); err != nil {
			break
		}
	}
})
