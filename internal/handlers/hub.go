// internal/handlers/hub.go
package handlers

import (
	"sync"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/dmgarza/brawldeck/internal/game"
)

// Conn is one client's presence on the server: its player identity, its
// outbound queue, and the room it is currently seated in (one at most).
type Conn struct {
	PlayerID uuid.UUID
	OutChan  chan game.Event
	Cancel   func()

	room string // guarded by the owning Hub's mutex
}

// send pushes an event onto the connection's queue non-blockingly. A full or
// closed queue drops the event; the write pump owns actual socket I/O.
func (c *Conn) send(ev game.Event, log *logrus.Logger) {
	select {
	case c.OutChan <- ev:
	default:
		log.Warnf("hub: outbound queue full for player %s, dropped %s", c.PlayerID, ev.Type)
	}
}

// Hub tracks every live connection and fans events out to three audiences:
// one connection, one room's connections, or everyone. Broadcast calls are
// safe while a room's lock is held because they only push to buffered
// channels.
type Hub struct {
	mu    sync.Mutex
	conns map[*Conn]struct{}
	log   *logrus.Logger
}

// NewHub initializes an empty hub.
func NewHub(logger *logrus.Logger) *Hub {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &Hub{
		conns: make(map[*Conn]struct{}),
		log:   logger,
	}
}

// Add registers a connection.
func (h *Hub) Add(c *Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.conns[c] = struct{}{}
}

// Remove unregisters a connection and closes its outbound queue, stopping
// the write pump.
func (h *Hub) Remove(c *Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.conns[c]; !ok {
		return
	}
	delete(h.conns, c)
	close(c.OutChan)
}

// SetRoom records which room the connection is seated in ("" = none).
func (h *Hub) SetRoom(c *Conn, room string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	c.room = room
}

// RoomOf returns the room the connection is seated in.
func (h *Hub) RoomOf(c *Conn) string {
	h.mu.Lock()
	defer h.mu.Unlock()
	return c.room
}

// EmitAll sends an event to every live connection.
func (h *Hub) EmitAll(ev game.Event) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for c := range h.conns {
		c.send(ev, h.log)
	}
}

// EmitRoom sends an event to every connection seated in the named room.
func (h *Hub) EmitRoom(room string, ev game.Event) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for c := range h.conns {
		if c.room == room {
			c.send(ev, h.log)
		}
	}
}

// EmitPlayer sends an event to every connection owned by the given player.
func (h *Hub) EmitPlayer(playerID uuid.UUID, ev game.Event) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for c := range h.conns {
		if c.PlayerID == playerID {
			c.send(ev, h.log)
		}
	}
}
