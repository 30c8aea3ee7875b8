package chat

import (
	"log/slog"
	"time"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
)

const (
	writeWait  = 10 * time.Second
	pingPeriod = 30 * time.Second
)

// Upgrade rejects non-websocket requests before the handler runs.
func Upgrade(c *fiber.Ctx) error {
	if websocket.IsWebSocketUpgrade(c) {
		return c.Next()
	}
	return fiber.ErrUpgradeRequired
}

// Handler serves the push channel for one conversation. The socket is
// subscribe-only: clients send messages through the HTTP API and receive
// chat_message events here. The connection's username is resolved by the
// auth middleware before the upgrade.
func Handler(hub *Hub) fiber.Handler {
	return websocket.New(func(conn *websocket.Conn) {
		username, _ := conn.Locals("username").(string)
		peer := conn.Params("username")
		if username == "" || peer == "" {
			conn.Close()
			return
		}

		room := RoomKey(username, peer)
		sub := hub.Join(room)
		defer hub.Leave(sub)

		slog.Info("chat socket opened", "room", room, "user", username)

		// Reader: discard client frames, notice disconnects.
		done := make(chan struct{})
		go func() {
			defer close(done)
			for {
				if _, _, err := conn.ReadMessage(); err != nil {
					return
				}
			}
		}()

		ticker := time.NewTicker(pingPeriod)
		defer ticker.Stop()

		for {
			select {
			case data, ok := <-sub.C:
				if !ok {
					return
				}
				conn.SetWriteDeadline(time.Now().Add(writeWait))
				if err := conn.WriteMessage(websocket.TextMessage, data); err != nil {
					return
				}
			case <-ticker.C:
				conn.SetWriteDeadline(time.Now().Add(writeWait))
				if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
					return
				}
			case <-done:
				return
			}
		}
	})
}
