package live

import (
	"net/http"
	"sync"

	json "github.com/goccy/go-json"
	"github.com/gorilla/websocket"
)

// client serializes writes to one connection. Until the reset has been
// written, broadcasts are held in pending.
type client struct {
	conn    *websocket.Conn
	mu      sync.Mutex
	ready   bool
	pending []queued
}

type queued struct {
	seq  uint64
	data []byte
}

func (c *client) send(seq uint64, data []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.ready {
		c.pending = append(c.pending, queued{seq: seq, data: data})
		return nil
	}
	return c.conn.WriteMessage(websocket.TextMessage, data)
}

// start writes the reset, then whatever was broadcast after the reset's
// snapshot was taken.
func (c *client) start(reset Message) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.ready = true
	pending := c.pending
	c.pending = nil

	data, err := json.Marshal(reset)
	if err != nil {
		return err
	}
	if err := c.conn.WriteMessage(websocket.TextMessage, data); err != nil {
		return err
	}
	for _, q := range pending {
		if q.seq != 0 && q.seq <= reset.Seq {
			continue
		}
		if err := c.conn.WriteMessage(websocket.TextMessage, q.data); err != nil {
			return err
		}
	}
	return nil
}

// Hub manages the WebSocket connections of preview pages.
type Hub struct {
	clients  map[*client]bool
	mu       sync.RWMutex
	upgrader websocket.Upgrader

	// onConnect returns the message a new client starts from.
	onConnect func() Message
}

// NewHub creates a hub. onConnect may be nil.
func NewHub(onConnect func() Message) *Hub {
	return &Hub{
		clients:   make(map[*client]bool),
		onConnect: onConnect,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				return true // preview is a local tool
			},
		},
	}
}

// HandleWebSocket upgrades the connection and keeps it registered until the
// browser disconnects.
func (h *Hub) HandleWebSocket(w http.ResponseWriter, req *http.Request) {
	conn, err := h.upgrader.Upgrade(w, req, nil)
	if err != nil {
		return
	}
	c := &client{conn: conn, ready: h.onConnect == nil}

	// Registered before the snapshot is taken, so every later broadcast is
	// queued and replayed after the reset.
	h.mu.Lock()
	h.clients[c] = true
	h.mu.Unlock()

	if h.onConnect != nil {
		if err := c.start(h.onConnect()); err != nil {
			h.drop(c)
			return
		}
	}

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			break
		}
	}

	h.drop(c)
}

func (h *Hub) drop(c *client) {
	h.mu.Lock()
	delete(h.clients, c)
	h.mu.Unlock()
	c.conn.Close()
}

// Broadcast sends a message to all clients. Clients that fail to receive
// it are dropped.
func (h *Hub) Broadcast(msg Message) error {
	data, err := json.Marshal(msg)
	if err != nil {
		return err
	}

	h.mu.RLock()
	clients := make([]*client, 0, len(h.clients))
	for c := range h.clients {
		clients = append(clients, c)
	}
	h.mu.RUnlock()

	for _, c := range clients {
		if err := c.send(msg.Seq, data); err != nil {
			h.drop(c)
		}
	}
	return nil
}

// ClientCount returns the number of connected clients.
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// Close closes all client connections.
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for c := range h.clients {
		c.conn.Close()
		delete(h.clients, c)
	}
}
