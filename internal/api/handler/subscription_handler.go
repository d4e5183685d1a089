package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"

	"github.com/inkwell/blog-platform/internal/core/ports"
	"github.com/inkwell/blog-platform/pkg/logger"
)

const writeWait = 10 * time.Second

var subscribableTopics = map[string]bool{
	ports.TopicPostCreated:        true,
	ports.TopicUserRegistered:     true,
	ports.TopicProfilePicUploaded: true,
}

// SubscriptionHandler pushes broker events to WebSocket listeners. One
// connection carries one topic; the client reconnects to switch.
type SubscriptionHandler struct {
	broker   ports.Broker
	upgrader websocket.Upgrader
}

func NewSubscriptionHandler(broker ports.Broker) *SubscriptionHandler {
	return &SubscriptionHandler{
		broker: broker,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(*http.Request) bool { return true },
		},
	}
}

// Subscribe upgrades the connection and forwards every payload published
// on the requested topic until the client goes away.
func (h *SubscriptionHandler) Subscribe(c echo.Context) error {
	topic := c.Param("topic")
	if !subscribableTopics[topic] {
		return echo.NewHTTPError(http.StatusNotFound, "unknown topic")
	}

	// the subscription outlives the HTTP request: its lifetime is bound to
	// the socket through cancel, not to the request context
	messages, cancel, err := h.broker.Subscribe(context.Background(), topic)
	if err != nil {
		return err
	}

	conn, err := h.upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		cancel()
		return err
	}

	go h.pump(conn, topic, messages, cancel)

	// reader goroutine: client frames are discarded, but reading is what
	// surfaces the close handshake
	go func() {
		defer cancel()
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	return nil
}

func (h *SubscriptionHandler) pump(conn *websocket.Conn, topic string, messages <-chan []byte, cancel func()) {
	defer func() {
		cancel()
		conn.Close()
	}()

	for payload := range messages {
		conn.SetWriteDeadline(time.Now().Add(writeWait))
		if err := conn.WriteMessage(websocket.TextMessage, payload); err != nil {
			log := logger.Get()
			log.Debug().Err(err).Str("topic", topic).Msg("subscription write failed")
			return
		}
	}

	conn.SetWriteDeadline(time.Now().Add(writeWait))
	conn.WriteMessage(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseGoingAway, ""))
}
