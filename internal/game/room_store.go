// internal/game/room_store.go
package game

import (
	"sort"
	"sync"

	"github.com/sirupsen/logrus"
)

// RoomStore is the process-wide registry mapping room names to live rooms.
// It provides thread-safe create, lookup, and delete; rooms remove themselves
// via their OnEmpty callback when the last player leaves.
type RoomStore struct {
	mu    sync.Mutex
	rooms map[string]*Room
	log   *logrus.Logger
}

// NewRoomStore initializes an empty registry.
func NewRoomStore(logger *logrus.Logger) *RoomStore {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &RoomStore{
		rooms: make(map[string]*Room),
		log:   logger,
	}
}

// Create inserts a fresh room under the given name. Fails with ErrRoomExists
// on a duplicate name. The new room's OnEmpty is wired to Delete.
func (s *RoomStore) Create(name string) (*Room, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.rooms[name]; exists {
		return nil, ErrRoomExists
	}
	room := NewRoom(name, s.log)
	room.OnEmpty = func(n string) { s.Delete(n) }
	s.rooms[name] = room
	s.log.WithField("room", name).Info("room created")
	return room, nil
}

// Get retrieves a room by name.
func (s *RoomStore) Get(name string) (*Room, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	r, ok := s.rooms[name]
	return r, ok
}

// Delete removes a room from the registry. Deleting an absent name is a
// no-op (OnEmpty and explicit cleanup may race benignly).
func (s *RoomStore) Delete(name string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.rooms[name]; exists {
		delete(s.rooms, name)
		s.log.WithField("room", name).Info("room deleted")
	}
}

// Names returns a sorted snapshot of the registered room names for lobby
// display.
func (s *RoomStore) Names() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	names := make([]string, 0, len(s.rooms))
	for name := range s.rooms {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Rooms returns a snapshot of the live rooms. Used by disconnect cleanup,
// which must sweep every room a connection may appear in.
func (s *RoomStore) Rooms() []*Room {
	s.mu.Lock()
	defer s.mu.Unlock()
	rooms := make([]*Room, 0, len(s.rooms))
	for _, r := range s.rooms {
		rooms = append(rooms, r)
	}
	return rooms
}
