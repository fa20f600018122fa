package realtime

import (
	"sync"
	"time"

	"medisecure/internal/metrics"
	"medisecure/internal/session"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 512
)

// 預設 CheckOrigin 只允許同源
var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
}

// Handler upgrades GET /ws. A caller with a session joins its own room; an
// anonymous connection stays open but receives nothing.
func Handler(hub *Hub, logger logrus.FieldLogger) echo.HandlerFunc {
	return func(c echo.Context) error {
		conn, err := upgrader.Upgrade(c.Response(), c.Request(), nil)
		if err != nil {
			// Upgrade 已回應 HTTP 錯誤
			logger.WithError(err).Debug("websocket upgrade failed")
			return nil
		}

		p := newPeer()
		room := ""
		if id, ok := session.FromContext(c); ok {
			room = id.Room()
			hub.Join(room, p)
			logger.WithField("room", room).Debug("websocket peer joined")
		}
		metrics.PeerConnected()

		var wg sync.WaitGroup
		done := make(chan struct{})
		wg.Add(1)
		go func() {
			defer wg.Done()
			writePump(conn, p, done)
		}()

		readPump(conn)

		close(done)
		wg.Wait()
		if room != "" {
			hub.Leave(room, p)
		}
		metrics.PeerDisconnected()
		_ = conn.Close()
		return nil
	}
}

// readPump 只處理 pong 與關閉；瀏覽器端送來的訊息一律忽略
func readPump(conn *websocket.Conn) {
	conn.SetReadLimit(maxMessageSize)
	_ = conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(pongWait))
	})
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}

func writePump(conn *websocket.Conn, p *peer, done <-chan struct{}) {
	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()
	for {
		select {
		case msg := <-p.send:
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				_ = conn.Close()
				return
			}
		case <-ticker.C:
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				_ = conn.Close()
				return
			}
		case <-done:
			_ = conn.WriteControl(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
				time.Now().Add(writeWait))
			return
		}
	}
}
