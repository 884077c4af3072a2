package websocket

import (
	"log"
	"sync"

	"github.com/gofiber/contrib/websocket"
	"github.com/google/uuid"
)

// LedgerEvent is pushed to every connected dashboard session when the
// payment ledger changes.
type LedgerEvent struct {
	Type      string `json:"type"`
	PaymentID uint   `json:"payment_id"`
	Status    string `json:"status"`
	Subject   string `json:"subject"`
	Student   string `json:"student"`
	Price     int    `json:"price"`
	CreatedAt string `json:"created_at"`
}

type Client struct {
	SessionID uuid.UUID
	Conn      *websocket.Conn
}

type Hub struct {
	clients    map[uuid.UUID]*websocket.Conn
	clientsMu  sync.RWMutex
	register   chan *Client
	unregister chan *Client
	broadcast  chan LedgerEvent
}

func NewHub() *Hub {
	return &Hub{
		clients:    make(map[uuid.UUID]*websocket.Conn),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		broadcast:  make(chan LedgerEvent, 16),
	}
}

func (h *Hub) Register(c *Client) { h.register <- c }

func (h *Hub) Unregister(c *Client) { h.unregister <- c }

// Publish is best-effort: when the queue is full the event is dropped,
// the dashboard reloads the full table on next visit anyway.
func (h *Hub) Publish(ev LedgerEvent) {
	select {
	case h.broadcast <- ev:
	default:
		log.Println("Dropping ledger event: broadcast queue full")
	}
}

func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			log.Printf("Dashboard session connected: %s", client.SessionID)
			h.clientsMu.Lock()
			h.clients[client.SessionID] = client.Conn
			h.clientsMu.Unlock()
		case client := <-h.unregister:
			log.Printf("Dashboard session disconnected: %s", client.SessionID)
			h.clientsMu.Lock()
			if conn, ok := h.clients[client.SessionID]; ok && conn == client.Conn {
				delete(h.clients, client.SessionID)
			}
			h.clientsMu.Unlock()
		case ev := <-h.broadcast:
			var dead []uuid.UUID
			h.clientsMu.RLock()
			for id, conn := range h.clients {
				if err := conn.WriteJSON(ev); err != nil {
					log.Printf("Error pushing ledger event to session %s: %v", id, err)
					conn.Close()
					dead = append(dead, id)
				}
			}
			h.clientsMu.RUnlock()
			if len(dead) > 0 {
				h.clientsMu.Lock()
				for _, id := range dead {
					delete(h.clients, id)
				}
				h.clientsMu.Unlock()
			}
		}
	}
}
