package api

import (
	"log/slog"
	"net/http"

	"chat-relay/relay"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

// NewRouter wires the HTTP surface: public credential endpoints, the
// token-protected room operations, and the websocket upgrade.
func NewRouter(handler *Handler, hub *relay.Hub, allowedOrigin string, log *slog.Logger) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(CORS(allowedOrigin))

	group := router.Group("/api")
	group.POST("/register", handler.Register)
	group.POST("/login", handler.Login)

	protected := group.Group("")
	protected.Use(BearerAuth(handler.authService))
	protected.GET("/verify-token", handler.VerifyToken)
	protected.POST("/create-room", handler.CreateRoom)
	protected.GET("/rooms", handler.ListRooms)

	upgrader := websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin: func(r *http.Request) bool {
			// Non-browser clients send no Origin header.
			origin := r.Header.Get("Origin")
			return origin == "" || origin == allowedOrigin
		},
	}
	router.GET("/ws", relay.ServeWS(hub, upgrader, log))

	return router
}
