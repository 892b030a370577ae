// Package ws pushes store change events to connected clients so they can
// recompute their projections instead of polling.
package ws

import (
	"net/http"
	"time"

	"github.com/goccy/go-json"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/sirtis/backoffice/pkg/logger"
)

// Event describes one store mutation.
type Event struct {
	Entity string `json:"entity"` // node, resource, document, case, risk, leave, appraisal, user
	Action string `json:"action"` // created, updated, deleted
	ID     string `json:"id"`
	At     time.Time `json:"at"`
}

const (
	writeWait      = 10 * time.Second
	clientBacklog  = 16
	broadcastQueue = 64
)

// Hub fans events out to subscribers. Slow clients are dropped rather than
// allowed to stall the broadcast loop.
type Hub struct {
	register   chan *client
	unregister chan *client
	broadcast  chan Event
}

type client struct {
	conn *websocket.Conn
	send chan Event
}

// NewHub starts the fan-out loop.
func NewHub() *Hub {
	h := &Hub{
		register:   make(chan *client),
		unregister: make(chan *client),
		broadcast:  make(chan Event, broadcastQueue),
	}
	go h.run()
	return h
}

func (h *Hub) run() {
	clients := map[*client]bool{}
	for {
		select {
		case c := <-h.register:
			clients[c] = true
		case c := <-h.unregister:
			if clients[c] {
				delete(clients, c)
				close(c.send)
			}
		case ev := <-h.broadcast:
			for c := range clients {
				select {
				case c.send <- ev:
				default:
					delete(clients, c)
					close(c.send)
				}
			}
		}
	}
}

// Publish queues an event for every subscriber. Never blocks the caller; if
// the hub itself is saturated the event is dropped and logged.
func (h *Hub) Publish(entity, action, id string) {
	ev := Event{Entity: entity, Action: action, ID: id, At: time.Now()}
	select {
	case h.broadcast <- ev:
	default:
		logger.L().Warn("event dropped, broadcast queue full",
			zap.String("entity", entity), zap.String("action", action))
	}
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// Browser origin policy is enforced by the CORS layer; the feed itself
	// carries no sensitive payloads beyond ids.
	CheckOrigin: func(r *http.Request) bool { return true },
}

// ServeHTTP upgrades the connection and streams events until the client
// goes away.
func (h *Hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		logger.L().Warn("websocket upgrade failed", zap.Error(err))
		return
	}
	c := &client{conn: conn, send: make(chan Event, clientBacklog)}
	h.register <- c

	go c.writePump()
	c.readPump(h)
}

func (c *client) writePump() {
	defer c.conn.Close()
	for ev := range c.send {
		payload, err := json.Marshal(ev)
		if err != nil {
			continue
		}
		c.conn.SetWriteDeadline(time.Now().Add(writeWait))
		if err := c.conn.WriteMessage(websocket.TextMessage, payload); err != nil {
			return
		}
	}
	c.conn.SetWriteDeadline(time.Now().Add(writeWait))
	_ = c.conn.WriteMessage(websocket.CloseMessage, nil)
}

// readPump discards inbound frames; the feed is one-way. Its real job is
// noticing the close.
func (c *client) readPump(h *Hub) {
	defer func() {
		h.unregister <- c
		c.conn.Close()
	}()
	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			return
		}
	}
}
