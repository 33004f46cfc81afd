package ws

import (
	"encoding/json"
	"log"
	"sync"
	"time"

	"github.com/gofiber/contrib/websocket"
)

// Event names pushed to back-office screens.
const (
	EventSaleRecorded  = "sale_recorded"
	EventCatalogUpdate = "catalog_update"
)

// Envelope is the JSON frame every client receives.
type Envelope struct {
	Type   string      `json:"type"`
	Data   interface{} `json:"data"`
	SentAt time.Time   `json:"sent_at"`
}

type Hub struct {
	Clients    map[*websocket.Conn]bool
	Register   chan *websocket.Conn
	Unregister chan *websocket.Conn
	Broadcast  chan []byte
	mutex      sync.Mutex
}

func NewHub() *Hub {
	return &Hub{
		Clients:    make(map[*websocket.Conn]bool),
		Register:   make(chan *websocket.Conn),
		Unregister: make(chan *websocket.Conn),
		Broadcast:  make(chan []byte, 64),
	}
}

func (h *Hub) Run() {
	for {
		select {
		case conn := <-h.Register:
			h.mutex.Lock()
			h.Clients[conn] = true
			h.mutex.Unlock()
			log.Println("New WS Client Connected")

		case conn := <-h.Unregister:
			h.mutex.Lock()
			if _, ok := h.Clients[conn]; ok {
				delete(h.Clients, conn)
				conn.Close()
			}
			h.mutex.Unlock()

		case message := <-h.Broadcast:
			h.mutex.Lock()
			for conn := range h.Clients {
				if err := conn.WriteMessage(websocket.TextMessage, message); err != nil {
					conn.Close()
					delete(h.Clients, conn)
				}
			}
			h.mutex.Unlock()
		}
	}
}

// ClientCount is the number of currently connected sockets.
func (h *Hub) ClientCount() int {
	h.mutex.Lock()
	defer h.mutex.Unlock()
	return len(h.Clients)
}

// Publish wraps data in an Envelope and queues it for broadcast.
// It never blocks the caller; frames are dropped when the queue is full.
func (h *Hub) Publish(event string, data interface{}) {
	msg, err := json.Marshal(Envelope{Type: event, Data: data, SentAt: time.Now()})
	if err != nil {
		log.Printf("ws: marshal %s event: %v", event, err)
		return
	}
	select {
	case h.Broadcast <- msg:
	default:
		log.Printf("ws: broadcast queue full, dropping %s event", event)
	}
}

// Serve pumps one client connection until it closes. Incoming frames are ignored.
func (h *Hub) Serve(c *websocket.Conn) {
	h.Register <- c
	defer func() {
		h.Unregister <- c
	}()

	for {
		if _, _, err := c.ReadMessage(); err != nil {
			break
		}
	}
}
