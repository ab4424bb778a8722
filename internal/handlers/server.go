// internal/handlers/server.go
package handlers

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/dmgarza/brawldeck/internal/database"
	"github.com/dmgarza/brawldeck/internal/game"
	"github.com/dmgarza/brawldeck/internal/history"
	"github.com/dmgarza/brawldeck/internal/models"
)

// Server is the event dispatcher: it routes inbound events to the room
// registry and turn engine, and owns the hub that scopes outbound
// broadcasts. All failures come back as errors for the caller's reply;
// nothing here panics on unknown rooms or players.
type Server struct {
	Rooms *game.RoomStore
	Hub   *Hub

	TurnTimeout time.Duration
	History     *history.Recorder
	Results     *database.Results

	log *logrus.Logger
}

// NewServer wires an empty registry and hub.
func NewServer(logger *logrus.Logger) *Server {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &Server{
		Rooms: game.NewRoomStore(logger),
		Hub:   NewHub(logger),
		log:   logger,
	}
}

// CreateRoom registers a new room and seats the creator in it (creating
// implies joining). The global room list refreshes for everyone on success.
func (s *Server) CreateRoom(c *Conn, name string) error {
	if name == "" {
		return game.ErrRoomNotFound
	}
	if s.Hub.RoomOf(c) != "" {
		return game.ErrAlreadyInRoom
	}

	room, err := s.Rooms.Create(name)
	if err != nil {
		return err
	}
	s.wireRoom(room)

	// Seat the creator before the room's first broadcast so they receive it.
	s.Hub.SetRoom(c, name)
	if err := room.AddPlayer(c.PlayerID); err != nil {
		s.Hub.SetRoom(c, "")
		s.Rooms.Delete(name)
		return err
	}

	s.broadcastRoomList()
	return nil
}

// JoinRoom seats the connection in an existing room. Single room per
// connection is enforced here.
func (s *Server) JoinRoom(c *Conn, name string) error {
	if s.Hub.RoomOf(c) != "" {
		return game.ErrAlreadyInRoom
	}
	room, ok := s.Rooms.Get(name)
	if !ok {
		return game.ErrRoomNotFound
	}

	s.Hub.SetRoom(c, name)
	if err := room.AddPlayer(c.PlayerID); err != nil {
		s.Hub.SetRoom(c, "")
		return err
	}
	return nil
}

// LeaveRoom unseats the connection from its current room. The room cleans
// itself up when it empties, in which case the lobby list refreshes.
func (s *Server) LeaveRoom(c *Conn) error {
	name := s.Hub.RoomOf(c)
	if name == "" {
		return game.ErrNotInRoom
	}
	s.Hub.SetRoom(c, "")

	if room, ok := s.Rooms.Get(name); ok {
		room.RemovePlayer(c.PlayerID)
	}
	if _, stillThere := s.Rooms.Get(name); !stillThere {
		s.broadcastRoomList()
	}
	return nil
}

// StartGame starts the game in the named room.
func (s *Server) StartGame(c *Conn, name string) error {
	room, ok := s.Rooms.Get(name)
	if !ok {
		return game.ErrRoomNotFound
	}
	if !room.HasPlayer(c.PlayerID) {
		return game.ErrNotInRoom
	}
	return room.Start()
}

// PlayTurn applies one card play for the connection's player.
func (s *Server) PlayTurn(c *Conn, name string, card models.Card) error {
	room, ok := s.Rooms.Get(name)
	if !ok {
		return game.ErrRoomNotFound
	}
	return room.PlayTurn(c.PlayerID, card)
}

// Disconnect runs full cleanup for a dropped connection: the player leaves
// every room they appear in (defensively swept, not just the tracked one),
// empty rooms are deleted, and everyone gets a fresh room list.
func (s *Server) Disconnect(c *Conn) {
	s.Hub.SetRoom(c, "")
	for _, room := range s.Rooms.Rooms() {
		room.RemovePlayer(c.PlayerID)
	}
	s.broadcastRoomList()
}

// RoomNames snapshots the lobby listing.
func (s *Server) RoomNames() []string {
	return s.Rooms.Names()
}

// wireRoom injects broadcast scoping and the optional observers into a
// freshly created room.
func (s *Server) wireRoom(room *game.Room) {
	name := room.Name
	room.TurnTimeout = s.TurnTimeout
	room.BroadcastFn = func(ev game.Event) {
		s.Hub.EmitRoom(name, ev)
	}
	room.BroadcastToPlayerFn = func(playerID uuid.UUID, ev game.Event) {
		s.Hub.EmitPlayer(playerID, ev)
	}
	room.OnAction = func(roomName string, playerID uuid.UUID, action string, payload map[string]interface{}) {
		s.History.Record(roomName, playerID, action, payload)
	}
	room.OnFinished = func(r *game.Room, end game.EndInfo) {
		if s.Results == nil {
			return
		}
		go func() {
			ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			s.Results.RecordGame(ctx, r.Name, end.Reason, end.Scores)
		}()
	}
}

func (s *Server) broadcastRoomList() {
	s.Hub.EmitAll(game.Event{Type: game.EventRoomList, Rooms: s.Rooms.Names()})
}
