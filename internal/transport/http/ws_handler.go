package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"party-trivia-service/internal/app"
	"party-trivia-service/internal/domain"
	"party-trivia-service/internal/logger"
)

// WSHandler streams live scoreboard snapshots for a session.
type WSHandler struct {
	service  *app.Service
	log      *logger.Logger
	upgrader websocket.Upgrader
}

func NewWSHandler(service *app.Service, log *logger.Logger) *WSHandler {
	return &WSHandler{
		service: service,
		log:     log,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
	}
}

type outboundMessage struct {
	Type    string `json:"type"`
	Payload any    `json:"payload"`
}

// Serve subscribes before upgrading so an unknown session still gets a
// plain 404. After the upgrade the connection only ever receives
// "scoreboard" messages; the read loop exists to notice the client leaving.
func (h *WSHandler) Serve(c *gin.Context) {
	sessionID := c.Param("id")

	updates, cancel, err := h.service.Subscribe(c.Request.Context(), sessionID)
	if errors.Is(err, domain.ErrSessionNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Session not found"})
		return
	}
	if err != nil {
		h.log.WithError(err).Error("scoreboard subscribe failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to subscribe"})
		return
	}
	defer cancel()

	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.log.WithError(err).Error("ws upgrade failed")
		return
	}
	defer conn.Close()

	closed := make(chan struct{})
	go func() {
		defer close(closed)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	for {
		select {
		case board, ok := <-updates:
			if !ok {
				return
			}
			if err := conn.WriteJSON(outboundMessage{Type: "scoreboard", Payload: board}); err != nil {
				return
			}
		case <-closed:
			return
		}
	}
}
