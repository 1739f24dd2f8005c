// internal/httpserver/events.go
//
// Websocket fan-out of round snapshots.
// Each open page holds one connection; the controller's notifier calls
// Hub.Publish after every transition and the hub forwards the snapshot as
//   {"type":"round","data":<snapshot>}
//
// Slow clients drop frames rather than block the controller.

package httpserver

import (
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"

	"github.com/youpv/whosthatpokemon/internal/game"
)

const (
	sendQueue  = 16
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = pongWait * 9 / 10
)

// envelope is the frame written to websocket clients.
type envelope struct {
	Type string          `json:"type"`
	Data json.RawMessage `json:"data"`
}

type wsClient struct {
	conn *websocket.Conn
	send chan []byte
}

// Hub tracks connected websocket clients.
type Hub struct {
	mu       sync.Mutex
	clients  map[*wsClient]struct{}
	closed   bool
	upgrader websocket.Upgrader
}

// NewHub constructs an empty Hub. Upgrades are accepted from origin
// (or any origin when empty).
func NewHub(origin string) *Hub {
	return &Hub{
		clients: make(map[*wsClient]struct{}),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 2048,
			CheckOrigin: func(r *http.Request) bool {
				o := r.Header.Get("Origin")
				return origin == "" || o == "" || o == origin || o == "http://"+r.Host
			},
		},
	}
}

// Publish queues a snapshot for every connected client.
func (h *Hub) Publish(s game.Snapshot) {
	frame, err := encodeFrame("round", s)
	if err != nil {
		log.Error().Err(err).Msg("encode snapshot")
		return
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	for c := range h.clients {
		select {
		case c.send <- frame:
		default:
		}
	}
}

// Clients reports how many connections are registered.
func (h *Hub) Clients() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}

// Close disconnects every client and refuses new ones.
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.closed = true
	for c := range h.clients {
		delete(h.clients, c)
		close(c.send)
	}
}

// register adds c and queues the current snapshot as its first frame.
// Both happen under mu, so every later Publish reaches c after it.
func (h *Hub) register(c *wsClient, current func() game.Snapshot) bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return false
	}
	h.clients[c] = struct{}{}
	if frame, err := encodeFrame("round", current()); err == nil {
		c.send <- frame
	}
	return true
}

func (h *Hub) unregister(c *wsClient) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.clients[c]; ok {
		delete(h.clients, c)
		close(c.send)
	}
}

// handleWS upgrades the request and streams snapshots until the client leaves.
func (s *Server) handleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := s.hub.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Warn().Err(err).Msg("websocket upgrade")
		return
	}
	c := &wsClient{conn: conn, send: make(chan []byte, sendQueue)}

	// Current state first so the page can render without polling.
	if !s.hub.register(c, s.ctrl.Snapshot) {
		_ = conn.Close()
		return
	}

	go c.writer()
	c.reader()
	s.hub.unregister(c)
}

// reader consumes (and discards) client frames so pongs and close
// messages are processed.
func (c *wsClient) reader() {
	c.conn.SetReadLimit(512)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})
	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			return
		}
	}
}

func (c *wsClient) writer() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = c.conn.Close()
	}()
	for {
		select {
		case msg, ok := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				return
			}
		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

func encodeFrame(typ string, v any) ([]byte, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	return json.Marshal(envelope{Type: typ, Data: b})
}
