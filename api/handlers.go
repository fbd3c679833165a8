// Package api exposes the request/response surface of the relay: the
// credential and session endpoints plus the room registry operations.
package api

import (
	"errors"
	"log/slog"
	"net/http"

	apperrors "chat-relay/errors"
	"chat-relay/services"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	authService services.IAuthService
	registry    services.IRoomRegistry
	log         *slog.Logger
}

func NewHandler(authService services.IAuthService, registry services.IRoomRegistry, log *slog.Logger) *Handler {
	return &Handler{authService: authService, registry: registry, log: log}
}

type registerRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type loginRequest struct {
	Username   string `json:"username"`
	Password   string `json:"password"`
	RememberMe bool   `json:"rememberMe"`
}

type createRoomRequest struct {
	RoomName string `json:"roomName"`
}

func (h *Handler) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request body"})
		return
	}

	if err := h.authService.Register(req.Username, req.Password); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	h.log.Info("User registered", "username", req.Username)
	c.JSON(http.StatusOK, gin.H{"message": "Registration successful"})
}

func (h *Handler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request body"})
		return
	}

	token, err := h.authService.Login(req.Username, req.Password, req.RememberMe)
	if err != nil {
		// One generic rejection whatever the cause.
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid credentials"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Login successful", "token": string(token)})
}

// VerifyToken reports the username bound to the presented token. The
// token itself was already checked by the bearer middleware.
func (h *Handler) VerifyToken(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"username": c.GetString(identityKey)})
}

func (h *Handler) CreateRoom(c *gin.Context) {
	var req createRoomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request body"})
		return
	}

	identity := c.GetString(identityKey)
	name, err := h.registry.CreateRoom(identity, req.RoomName)
	if err != nil {
		c.JSON(statusForRoomError(err), gin.H{"message": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Room created", "roomName": name})
}

func (h *Handler) ListRooms(c *gin.Context) {
	c.JSON(http.StatusOK, h.registry.ListRooms())
}

func statusForRoomError(err error) int {
	if errors.Is(err, apperrors.ErrRateLimited) {
		return http.StatusTooManyRequests
	}
	return http.StatusBadRequest
}
