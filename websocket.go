package pitchtrack

import (
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

const (
	writeWait  = 5 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = pongWait * 9 / 10
)

// WebConn streams one subscription to one websocket client.
type WebConn struct {
	conn *websocket.Conn
	log  *slog.Logger
	sub  *Subscription
	quit <-chan struct{}
	wg   sync.WaitGroup
}

func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	upgrader := websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 4096,
		CheckOrigin: func(r *http.Request) bool {
			return true
		},
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.log.Warn("websocket upgrade failed", "error", err)
		return
	}

	s.conns.Add(1)
	defer s.conns.Done()

	sub := s.broadcaster.Subscribe()
	defer s.broadcaster.Unsubscribe(sub)

	webConn := &WebConn{
		conn: conn,
		log:  s.log.With("remote", r.RemoteAddr),
		sub:  sub,
		quit: s.quit,
	}
	webConn.log.Debug("websocket client connected")
	webConn.Start()
	webConn.log.Debug("websocket client disconnected")
}

// Start runs the connection until the client leaves, the subscription
// closes or the server stops.
func (wc *WebConn) Start() {
	defer wc.conn.Close()

	done := make(chan struct{})
	wc.wg.Add(1)
	go func() {
		defer wc.wg.Done()
		defer close(done)
		wc.reader()
	}()

	wc.writer(done)
	// Unblocks the reader if the writer finished first.
	wc.conn.Close()
	wc.wg.Wait()
}

// reader drains client frames so pings, pongs and close are processed.
// Clients are not expected to send data.
func (wc *WebConn) reader() {
	wc.conn.SetReadLimit(512)
	_ = wc.conn.SetReadDeadline(time.Now().Add(pongWait))
	wc.conn.SetPongHandler(func(string) error {
		return wc.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		if _, _, err := wc.conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				wc.log.Debug("websocket read error", "error", err)
			}
			return
		}
	}
}

func (wc *WebConn) writer(done <-chan struct{}) {
	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()

	for {
		select {
		case msg, ok := <-wc.sub.C:
			if !ok {
				wc.closeWith(websocket.CloseGoingAway, "results stream closed")
				return
			}
			_ = wc.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := wc.conn.WriteJSON(msg); err != nil {
				wc.log.Debug("websocket write error", "error", err)
				return
			}
		case <-ticker.C:
			_ = wc.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := wc.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		case <-wc.quit:
			wc.closeWith(websocket.CloseGoingAway, "server shutting down")
			return
		case <-done:
			return
		}
	}
}

func (wc *WebConn) closeWith(code int, text string) {
	msg := websocket.FormatCloseMessage(code, text)
	_ = wc.conn.WriteControl(websocket.CloseMessage, msg, time.Now().Add(writeWait))
}
