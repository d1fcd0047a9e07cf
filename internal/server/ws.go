package server

import (
	"encoding/json"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/ayusman/glimmer/internal/gesture"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true // Allow local connections
	},
}

const (
	writeWait  = 2 * time.Second
	sendBuffer = 8
)

// Hub pushes every gesture state to connected websocket clients. It implements
// the App's Notifier; Notify never blocks and slow clients drop messages.
type Hub struct {
	mu      sync.RWMutex
	clients map[string]*client
}

type client struct {
	id   string
	conn *websocket.Conn
	send chan []byte
}

// HandMessage is the JSON pushed on every detection tick.
type HandMessage struct {
	Type      string        `json:"type"`
	State     gesture.State `json:"state"`
	Mode      gesture.Mode  `json:"mode"`
	Timestamp int64         `json:"timestamp"`
}

type helloMessage struct {
	Type     string `json:"type"`
	ClientID string `json:"clientId"`
}

// NewHub returns an empty hub.
func NewHub() *Hub {
	return &Hub{clients: make(map[string]*client)}
}

// Notify broadcasts s to every client.
func (h *Hub) Notify(s gesture.State) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	if len(h.clients) == 0 {
		return
	}

	msg, err := json.Marshal(HandMessage{
		Type:      "hand",
		State:     s,
		Mode:      s.Mode(),
		Timestamp: time.Now().UnixMilli(),
	})
	if err != nil {
		log.Printf("websocket marshal error: %v", err)
		return
	}

	for _, c := range h.clients {
		select {
		case c.send <- msg:
		default:
		}
	}
}

// Clients returns the number of connected clients.
func (h *Hub) Clients() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// ServeHTTP upgrades the request and streams hand messages until the client leaves.
func (h *Hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("websocket upgrade error: %v", err)
		return
	}

	c := &client{
		id:   uuid.NewString(),
		conn: conn,
		send: make(chan []byte, sendBuffer),
	}

	hello, _ := json.Marshal(helloMessage{Type: "hello", ClientID: c.id})
	c.send <- hello

	h.mu.Lock()
	h.clients[c.id] = c
	h.mu.Unlock()
	log.Printf("websocket client %s connected", c.id)

	done := make(chan struct{})
	go c.writeLoop(done)

	// Reads only detect the close; clients have nothing to say.
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			break
		}
	}

	h.mu.Lock()
	delete(h.clients, c.id)
	h.mu.Unlock()

	close(done)
	conn.Close()
	log.Printf("websocket client %s disconnected", c.id)
}

func (c *client) writeLoop(done <-chan struct{}) {
	for {
		select {
		case <-done:
			return
		case msg := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				c.conn.Close()
				return
			}
		}
	}
}
