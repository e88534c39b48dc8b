package ws

import (
	"log"
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/priyathamsetti1/aditya-foods/utils"
)

// OrderFeedHub streams new-order events to connected admin consoles. Each
// admin gets their own channel of events; a console that is open when an
// order lands sees it without polling /orders.
type OrderFeedHub struct {
	clients    map[uint]map[*websocket.Conn]bool // adminID -> set of consoles
	broadcast  chan feedEvent
	register   chan subscription
	unregister chan subscription
	mu         sync.Mutex
}

type subscription struct {
	Conn    *websocket.Conn
	AdminID uint
}

type feedEvent struct {
	AdminID uint
	Payload any
}

func NewOrderFeedHub() *OrderFeedHub {
	return &OrderFeedHub{
		clients:    make(map[uint]map[*websocket.Conn]bool),
		broadcast:  make(chan feedEvent, 16),
		register:   make(chan subscription),
		unregister: make(chan subscription),
	}
}

func (h *OrderFeedHub) Run() {
	for {
		select {
		case sub := <-h.register:
			h.mu.Lock()
			if h.clients[sub.AdminID] == nil {
				h.clients[sub.AdminID] = make(map[*websocket.Conn]bool)
			}
			h.clients[sub.AdminID][sub.Conn] = true
			h.mu.Unlock()

		case sub := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.clients[sub.AdminID][sub.Conn]; ok {
				delete(h.clients[sub.AdminID], sub.Conn)
				sub.Conn.Close()
			}
			h.mu.Unlock()

		case ev := <-h.broadcast:
			h.mu.Lock()
			for conn := range h.clients[ev.AdminID] {
				if err := conn.WriteJSON(ev.Payload); err != nil {
					log.Printf("ws write error: %v", err)
					conn.Close()
					delete(h.clients[ev.AdminID], conn)
				}
			}
			h.mu.Unlock()
		}
	}
}

// Publish queues an event for every console of one admin. Never blocks the
// caller: if the hub is saturated the event is dropped, the console still
// has /orders.
func (h *OrderFeedHub) Publish(adminID uint, payload any) {
	select {
	case h.broadcast <- feedEvent{AdminID: adminID, Payload: payload}:
	default:
		log.Printf("ws feed full, dropping event for admin %d", adminID)
	}
}

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// WS route: /ws/orders (admin JWT required by the route group).
func (h *OrderFeedHub) HandleWebSocket(c *gin.Context) {
	adminID := utils.CurrentUserID(c)
	if adminID == 0 {
		c.JSON(http.StatusUnauthorized, gin.H{"ok": false, "error": "unauthorized"})
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Printf("ws upgrade error: %v", err)
		return
	}

	sub := subscription{Conn: conn, AdminID: adminID}
	h.register <- sub

	// Reader loop exists only to notice the console going away.
	go func() {
		defer func() { h.unregister <- sub }()
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()
}
