package handlers

import (
	"net/http"

	"github.com/Rutujpatil0403/InterviewX-sub000/internal/services"
	"github.com/Rutujpatil0403/InterviewX-sub000/internal/ws"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

type WSHandler struct {
	hub              *ws.Hub
	authService      *services.AuthService
	interviewService *services.InterviewService
	log              *zap.Logger
}

func NewWSHandler(hub *ws.Hub, authService *services.AuthService, interviewService *services.InterviewService, log *zap.Logger) *WSHandler {
	return &WSHandler{hub: hub, authService: authService, interviewService: interviewService, log: log}
}

// HandleWebSocket attaches an authorized observer to an interview's
// event stream. The token rides in the query string because browser
// WebSocket clients cannot set headers.
func (h *WSHandler) HandleWebSocket(c *gin.Context) {
	id, ok := interviewID(c)
	if !ok {
		return
	}

	userID, role, err := h.authService.ValidateToken(c.Query("token"))
	if err != nil {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "invalid or expired token"})
		return
	}

	c.Set("user_id", userID)
	c.Set("role", role)
	if _, err := h.interviewService.Get(actorFrom(c), id); err != nil {
		respondError(c, err)
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.log.Warn("ws upgrade failed", zap.Error(err))
		return
	}

	h.hub.AddConnection(id, conn)

	go func() {
		defer h.hub.RemoveConnection(id, conn)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()
}
