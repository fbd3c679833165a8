package relay

import (
	"log/slog"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

// ServeWS upgrades the request to a websocket connection and attaches
// it to the hub. The pumps own the connection from here on.
func ServeWS(hub *Hub, upgrader websocket.Upgrader, log *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
		if err != nil {
			log.Warn("Websocket upgrade failed", "remote", c.Request.RemoteAddr, "error", err)
			return
		}

		client := NewClient(hub, conn, log)
		hub.Register(client)

		go client.writePump()
		go client.readPump()
	}
}
