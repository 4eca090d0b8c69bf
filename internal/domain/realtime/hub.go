// Package realtime pushes refresh signals to connected dashboards. Events
// are hints: clients re-query the REST API after receiving one.
package realtime

import (
	"encoding/json"
	"log/slog"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"handyhub/internal/domain"
	"handyhub/internal/domain/booking"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = (pongWait * 9) / 10
	maxMsgSize = 4 * 1024
	sendBuffer = 64
)

const EventBookingChanged = "booking_changed"

// Event is what clients receive.
type Event struct {
	Type            string          `json:"type"`
	Booking         booking.Booking `json:"booking"`
	PendingBookings int64           `json:"pending_bookings"`
}

// client is one socket. A user may hold several (one per tab).
type client struct {
	actor domain.Actor
	conn  *websocket.Conn
	send  chan []byte
}

// Hub tracks live sockets by user id.
type Hub struct {
	mu      sync.RWMutex
	clients map[int64]map[*client]struct{}
	log     *slog.Logger
}

func NewHub(log *slog.Logger) *Hub {
	if log == nil {
		log = slog.Default()
	}
	return &Hub{
		clients: make(map[int64]map[*client]struct{}),
		log:     log,
	}
}

func (h *Hub) register(c *client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	set, ok := h.clients[c.actor.ID]
	if !ok {
		set = make(map[*client]struct{})
		h.clients[c.actor.ID] = set
	}
	set[c] = struct{}{}
}

func (h *Hub) unregister(c *client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	set, ok := h.clients[c.actor.ID]
	if !ok {
		return
	}
	if _, ok := set[c]; !ok {
		return
	}
	delete(set, c)
	close(c.send)
	if len(set) == 0 {
		delete(h.clients, c.actor.ID)
	}
}

// Connected returns how many sockets userID has open.
func (h *Hub) Connected(userID int64) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients[userID])
}

// BookingChanged fans the event out to every socket whose owner can see b:
// the customer, the assigned handyman and all admins. Slow clients miss
// the event rather than stall the writer.
func (h *Hub) BookingChanged(b booking.Booking, pending int64) {
	data, err := json.Marshal(Event{Type: EventBookingChanged, Booking: b, PendingBookings: pending})
	if err != nil {
		h.log.Error("marshal realtime event", "booking_id", b.ID, "error", err)
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()
	for _, set := range h.clients {
		for c := range set {
			if !b.VisibleTo(c.actor) {
				continue
			}
			select {
			case c.send <- data:
			default:
				h.log.Warn("realtime client too slow, event dropped", "user_id", c.actor.ID, "booking_id", b.ID)
			}
		}
	}
}

// ServeWS registers conn for actor and blocks until it disconnects.
func (h *Hub) ServeWS(conn *websocket.Conn, actor domain.Actor) {
	c := &client{
		actor: actor,
		conn:  conn,
		send:  make(chan []byte, sendBuffer),
	}
	h.register(c)

	go h.writePump(c)
	h.readPump(c)
}

// readPump only services control frames; clients have nothing to say.
func (h *Hub) readPump(c *client) {
	defer func() {
		h.unregister(c)
		c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMsgSize)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				h.log.Debug("realtime read failed", "user_id", c.actor.ID, "error", err)
			}
			return
		}
	}
}

func (h *Hub) writePump(c *client) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
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
