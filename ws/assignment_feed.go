package ws

import (
	"net/http"
	"sync"

	"github.com/Deji-py/eco-rider/entity"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

// Event is one change-feed notification for a rider's assignments.
// Mirrors the row-change events of the hosted backend: the payload carries
// enough for a client to decide which cached queries to invalidate.
type Event struct {
	Type         string                  `json:"type"` // insert | update | delete
	AssignmentID uint                    `json:"assignmentId"`
	RiderID      uint                    `json:"riderId"`
	Status       entity.AssignmentStatus `json:"status"`
}

// RiderLookup resolves the rider row for an authenticated user.
type RiderLookup interface {
	GetByUserID(userID uint) (*entity.Rider, error)
}

// FeedHub fans assignment change events out to the owning rider's
// connections. One subscription per connection, scoped by riderID.
type FeedHub struct {
	clients    map[uint]map[*websocket.Conn]bool // riderID -> connections
	broadcast  chan Event
	register   chan subscription
	unregister chan subscription
	mu         sync.Mutex
	riders     RiderLookup
}

type subscription struct {
	Conn    *websocket.Conn
	RiderID uint
}

func NewFeedHub(riders RiderLookup) *FeedHub {
	return &FeedHub{
		clients:    make(map[uint]map[*websocket.Conn]bool),
		broadcast:  make(chan Event, 16),
		register:   make(chan subscription),
		unregister: make(chan subscription),
		riders:     riders,
	}
}

func (h *FeedHub) Run() {
	for {
		select {
		case sub := <-h.register:
			h.mu.Lock()
			if h.clients[sub.RiderID] == nil {
				h.clients[sub.RiderID] = make(map[*websocket.Conn]bool)
			}
			h.clients[sub.RiderID][sub.Conn] = true
			h.mu.Unlock()

		case sub := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.clients[sub.RiderID][sub.Conn]; ok {
				delete(h.clients[sub.RiderID], sub.Conn)
				sub.Conn.Close()
			}
			h.mu.Unlock()

		case ev := <-h.broadcast:
			h.mu.Lock()
			for conn := range h.clients[ev.RiderID] {
				if err := conn.WriteJSON(ev); err != nil {
					zap.L().Warn("feed write failed", zap.Error(err))
					conn.Close()
					delete(h.clients[ev.RiderID], conn)
				}
			}
			h.mu.Unlock()
		}
	}
}

// Publish queues an event for fan-out. Non-blocking: a full queue drops the
// event, which is acceptable because clients also poll (the realtime path is
// a latency optimization, not the consistency mechanism).
func (h *FeedHub) Publish(ev Event) {
	select {
	case h.broadcast <- ev:
	default:
		zap.L().Warn("feed queue full, dropping event",
			zap.Uint("assignmentId", ev.AssignmentID))
	}
}

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// WS route: /ws/orders
func (h *FeedHub) HandleWebSocket(c *gin.Context) {
	userIDVal, _ := c.Get("userId")
	userID, _ := userIDVal.(uint)

	rider, err := h.riders.GetByUserID(userID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "rider profile not found"})
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		zap.L().Warn("ws upgrade failed", zap.Error(err))
		return
	}

	sub := subscription{Conn: conn, RiderID: rider.ID}
	h.register <- sub

	go h.drain(sub)
}

// drain keeps the read side alive so we notice the close frame. The feed is
// one-directional; inbound frames are ignored.
func (h *FeedHub) drain(sub subscription) {
	defer func() { h.unregister <- sub }()
	for {
		if _, _, err := sub.Conn.ReadMessage(); err != nil {
			return
		}
	}
}
