package v1

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/chahin-fh/laboissimlocal/internal/domain"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true // Adjust this for production!
	},
}

type wsClient struct {
	conn   *websocket.Conn
	send   chan []byte
	userID uint
}

// ChatHub keeps one websocket per signed-in user and routes internal
// messages to the receiver's connection when it is open.
type ChatHub struct {
	svc          MessageService
	uSvc         UserService
	clients      map[uint]*wsClient
	clientsMutex sync.RWMutex
	register     chan *wsClient
	unregister   chan *wsClient
}

func NewChatHub(svc MessageService, uSvc UserService) *ChatHub {
	return &ChatHub{
		svc:        svc,
		uSvc:       uSvc,
		clients:    make(map[uint]*wsClient),
		register:   make(chan *wsClient),
		unregister: make(chan *wsClient),
	}
}

func (h *ChatHub) Run() {
	for {
		select {
		case client := <-h.register:
			h.clientsMutex.Lock()
			// A reconnect displaces the previous connection; close its
			// send channel so the old writePump exits.
			if old, ok := h.clients[client.userID]; ok {
				close(old.send)
			}
			h.clients[client.userID] = client
			h.clientsMutex.Unlock()
		case client := <-h.unregister:
			h.clientsMutex.Lock()
			// A displaced client unregisters after its replacement is
			// in the map; only the current entry gets torn down.
			if current, ok := h.clients[client.userID]; ok && current == client {
				delete(h.clients, client.userID)
				close(client.send)
			}
			h.clientsMutex.Unlock()
		}
	}
}

// Notify pushes a stored message to the receiver's connection. Offline
// receivers pick it up from the REST inbox instead.
func (h *ChatHub) Notify(msg domain.InternalMessage) {
	payload, err := json.Marshal(map[string]interface{}{
		"type":    "message",
		"message": msg,
	})
	if err != nil {
		zap.L().Warn("marshal websocket payload", zap.Error(err))
		return
	}

	h.clientsMutex.RLock()
	defer h.clientsMutex.RUnlock()

	if client, ok := h.clients[msg.Receiver]; ok {
		select {
		case client.send <- payload:
		default:
		}
	}
}

// HandleWebSocket godoc
// @Summary      Open the messaging websocket
// @Tags         messages
// @Success      101 {string} string "Switching Protocols to WebSocket"
// @Failure      401 {object} response.Err
// @Router       /messages/ws [get]
// @Security     BearerAuth
func (h *ChatHub) HandleWebSocket(ctx *gin.Context) {
	user, respErr := getUserFromContext(ctx, h.uSvc)
	if respErr != nil {
		ctx.AbortWithStatus(http.StatusUnauthorized)
		return
	}

	conn, err := upgrader.Upgrade(ctx.Writer, ctx.Request, nil)
	if err != nil {
		zap.L().Warn("websocket upgrade failed", zap.Error(err))
		return
	}

	client := &wsClient{
		conn:   conn,
		send:   make(chan []byte, 256),
		userID: user.ID,
	}
	h.register <- client

	go client.writePump()
	go client.readPump(h)
}

func (c *wsClient) writePump() {
	defer c.conn.Close()

	for message := range c.send {
		w, err := c.conn.NextWriter(websocket.TextMessage)
		if err != nil {
			return
		}
		w.Write(message)
		if err := w.Close(); err != nil {
			return
		}
	}

	c.conn.WriteMessage(websocket.CloseMessage, []byte{})
}

func (c *wsClient) readPump(h *ChatHub) {
	defer func() {
		h.unregister <- c
		c.conn.Close()
	}()

	for {
		_, raw, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				zap.L().Warn("websocket read error", zap.Error(err))
			}
			break
		}

		var incoming domain.InternalMessage
		if err := json.Unmarshal(raw, &incoming); err != nil {
			zap.L().Warn("malformed websocket message", zap.Error(err))
			continue
		}

		if incoming.Receiver == 0 || incoming.Message == "" {
			c.sendError("receiver and message are required")
			continue
		}

		saved, err := h.svc.SendMessage(context.Background(), c.userID, incoming)
		if err != nil {
			zap.L().Error("store websocket message", zap.Error(err))
			c.sendError("message could not be delivered")
			continue
		}

		h.Notify(saved)

		confirmation, _ := json.Marshal(map[string]interface{}{
			"type":    "confirmation",
			"message": "Message sent successfully",
			"id":      saved.ID,
		})
		select {
		case c.send <- confirmation:
		default:
		}
	}
}

func (c *wsClient) sendError(msg string) {
	payload, _ := json.Marshal(map[string]interface{}{
		"type":    "error",
		"message": msg,
	})

	select {
	case c.send <- payload:
	default:
	}
}
