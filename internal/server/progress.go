package server

import (
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

// progressHub fans out generation progress events (each sink emission,
// re-marshaled as JSON) to every connected websocket client. It keeps
// the same hub shape as the original chat/lobby hub — register/
// unregister channels, a mutex-guarded client set, non-blocking sends
// — without any of the room/player bookkeeping a single-grid generator
// has no use for.
type progressHub struct {
	clients    map[*progressClient]bool
	register   chan *progressClient
	unregister chan *progressClient
	broadcast  chan []byte
	mutex      sync.RWMutex
}

type progressClient struct {
	conn *websocket.Conn
	send chan []byte
}

func newProgressHub() *progressHub {
	return &progressHub{
		clients:    make(map[*progressClient]bool),
		register:   make(chan *progressClient),
		unregister: make(chan *progressClient),
		broadcast:  make(chan []byte, 16),
	}
}

func (h *progressHub) run() {
	for {
		select {
		case c := <-h.register:
			h.mutex.Lock()
			h.clients[c] = true
			h.mutex.Unlock()

		case c := <-h.unregister:
			h.mutex.Lock()
			if _, ok := h.clients[c]; ok {
				delete(h.clients, c)
				close(c.send)
			}
			h.mutex.Unlock()

		case payload := <-h.broadcast:
			h.mutex.RLock()
			for c := range h.clients {
				select {
				case c.send <- payload:
				default:
					// slow client, drop this event rather than block the hub
				}
			}
			h.mutex.RUnlock()
		}
	}
}

// publish is the gridstate.Sink-shaped hook called by the HTTP
// generate handler's redisSink-equivalent in-process broadcast: it
// never blocks and never errors.
func (h *progressHub) publish(payload []byte) {
	select {
	case h.broadcast <- payload:
	default:
	}
}

var progressUpgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// serveProgressWs upgrades the request and pumps broadcast events to
// the client until it disconnects.
func serveProgressWs(hub *progressHub, w http.ResponseWriter, r *http.Request) {
	conn, err := progressUpgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("server: websocket upgrade failed: %v", err)
		return
	}

	client := &progressClient{conn: conn, send: make(chan []byte, 16)}
	hub.register <- client

	go client.writePump(hub)
	go client.readPump(hub)
}

func (c *progressClient) writePump(hub *progressHub) {
	ticker := time.NewTicker(30 * time.Second)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case payload, ok := <-c.send:
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, payload); err != nil {
				return
			}
		case <-ticker.C:
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// readPump only drains and discards client frames (crossgen's
// progress stream is server-to-client only) so the connection's close
// and pong frames still reach gorilla/websocket's control-frame
// handling.
func (c *progressClient) readPump(hub *progressHub) {
	defer func() {
		hub.unregister <- c
		c.conn.Close()
	}()

	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			return
		}
	}
}
