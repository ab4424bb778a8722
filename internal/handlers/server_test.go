// internal/handlers/server_test.go
package handlers

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmgarza/brawldeck/internal/game"
)

func newTestServer() *Server {
	return NewServer(testLogger())
}

// attach registers a fresh connection with the server's hub.
func attach(s *Server) *Conn {
	c := newTestConn(uuid.New())
	s.Hub.Add(c)
	return c
}

func TestCreateRoomSeatsCreator(t *testing.T) {
	s := newTestServer()
	c := attach(s)

	require.NoError(t, s.CreateRoom(c, "alpha"))

	assert.Equal(t, "alpha", s.Hub.RoomOf(c))
	room, ok := s.Rooms.Get("alpha")
	require.True(t, ok)
	assert.True(t, room.HasPlayer(c.PlayerID))

	// The creator was seated before the first broadcast and should hold both
	// the membership update and the refreshed lobby list.
	events := drain(c)
	var types []game.EventType
	for _, ev := range events {
		types = append(types, ev.Type)
	}
	assert.Contains(t, types, game.EventRoomUpdate)
	assert.Contains(t, types, game.EventRoomList)
}

func TestCreateRoomEmptyNameRejected(t *testing.T) {
	s := newTestServer()
	c := attach(s)
	assert.Error(t, s.CreateRoom(c, ""))
}

func TestCreateDuplicateRoomRejected(t *testing.T) {
	s := newTestServer()
	c1, c2 := attach(s), attach(s)

	require.NoError(t, s.CreateRoom(c1, "alpha"))
	err := s.CreateRoom(c2, "alpha")
	assert.ErrorIs(t, err, game.ErrRoomExists)
	assert.Equal(t, "", s.Hub.RoomOf(c2))
}

func TestSecondRoomPerConnectionRejected(t *testing.T) {
	s := newTestServer()
	c := attach(s)

	require.NoError(t, s.CreateRoom(c, "alpha"))
	assert.ErrorIs(t, s.CreateRoom(c, "bravo"), game.ErrAlreadyInRoom)
	assert.ErrorIs(t, s.JoinRoom(c, "bravo"), game.ErrAlreadyInRoom)
	assert.Equal(t, []string{"alpha"}, s.RoomNames())
}

func TestJoinRoomFlow(t *testing.T) {
	s := newTestServer()
	host, guest := attach(s), attach(s)
	require.NoError(t, s.CreateRoom(host, "alpha"))

	require.NoError(t, s.JoinRoom(guest, "alpha"))
	assert.Equal(t, "alpha", s.Hub.RoomOf(guest))

	room, _ := s.Rooms.Get("alpha")
	assert.Len(t, room.PlayerIDs(), 2)
}

func TestJoinUnknownRoom(t *testing.T) {
	s := newTestServer()
	c := attach(s)
	assert.ErrorIs(t, s.JoinRoom(c, "nope"), game.ErrRoomNotFound)
	assert.Equal(t, "", s.Hub.RoomOf(c))
}

func TestJoinRollsBackSeatOnFullRoom(t *testing.T) {
	s := newTestServer()
	host := attach(s)
	require.NoError(t, s.CreateRoom(host, "alpha"))
	for i := 1; i < game.MaxPlayers; i++ {
		require.NoError(t, s.JoinRoom(attach(s), "alpha"))
	}

	extra := attach(s)
	assert.ErrorIs(t, s.JoinRoom(extra, "alpha"), game.ErrRoomFull)
	assert.Equal(t, "", s.Hub.RoomOf(extra), "a failed join must not leave the conn seated")
}

func TestLeaveRoomReapsEmptyRoom(t *testing.T) {
	s := newTestServer()
	c := attach(s)
	require.NoError(t, s.CreateRoom(c, "alpha"))

	require.NoError(t, s.LeaveRoom(c))
	assert.Equal(t, "", s.Hub.RoomOf(c))
	assert.Empty(t, s.RoomNames())
}

func TestLeaveWithoutRoom(t *testing.T) {
	s := newTestServer()
	c := attach(s)
	assert.ErrorIs(t, s.LeaveRoom(c), game.ErrNotInRoom)
}

func TestStartGameRequiresMembership(t *testing.T) {
	s := newTestServer()
	host, outsider := attach(s), attach(s)
	require.NoError(t, s.CreateRoom(host, "alpha"))
	require.NoError(t, s.JoinRoom(attach(s), "alpha"))

	assert.ErrorIs(t, s.StartGame(outsider, "alpha"), game.ErrNotInRoom)
	require.NoError(t, s.StartGame(host, "alpha"))
}

func TestPlayTurnRoutedThroughRoom(t *testing.T) {
	s := newTestServer()
	host, guest := attach(s), attach(s)
	require.NoError(t, s.CreateRoom(host, "alpha"))
	require.NoError(t, s.JoinRoom(guest, "alpha"))
	require.NoError(t, s.StartGame(host, "alpha"))

	room, _ := s.Rooms.Get("alpha")
	room.Mu.Lock()
	firstCard := room.Players[0].Hand[0]
	room.Mu.Unlock()

	assert.ErrorIs(t, s.PlayTurn(guest, "alpha", firstCard), game.ErrNotYourTurn)
	require.NoError(t, s.PlayTurn(host, "alpha", firstCard))
}

func TestDisconnectSweepsRoomsAndRefreshesLobby(t *testing.T) {
	s := newTestServer()
	host, guest, lobby := attach(s), attach(s), attach(s)
	require.NoError(t, s.CreateRoom(host, "alpha"))
	require.NoError(t, s.JoinRoom(guest, "alpha"))
	drain(lobby)

	s.Disconnect(guest)

	room, ok := s.Rooms.Get("alpha")
	require.True(t, ok)
	assert.False(t, room.HasPlayer(guest.PlayerID))
	assert.Equal(t, "", s.Hub.RoomOf(guest))

	events := drain(lobby)
	require.NotEmpty(t, events)
	assert.Equal(t, game.EventRoomList, events[len(events)-1].Type)
}

func TestDisconnectLastPlayerDeletesRoom(t *testing.T) {
	s := newTestServer()
	c := attach(s)
	require.NoError(t, s.CreateRoom(c, "alpha"))

	s.Disconnect(c)
	assert.Empty(t, s.RoomNames())
}

func TestRoomGameEventsScopedToRoom(t *testing.T) {
	s := newTestServer()
	host, guest, lobby := attach(s), attach(s), attach(s)
	require.NoError(t, s.CreateRoom(host, "alpha"))
	require.NoError(t, s.JoinRoom(guest, "alpha"))
	drain(host)
	drain(guest)
	drain(lobby)

	require.NoError(t, s.StartGame(host, "alpha"))

	assert.NotEmpty(t, drain(host))
	assert.NotEmpty(t, drain(guest))
	assert.Empty(t, drain(lobby), "game events must not leak outside the room")
}

func TestHandUpdateOnlyReachesOwner(t *testing.T) {
	s := newTestServer()
	host, guest := attach(s), attach(s)
	require.NoError(t, s.CreateRoom(host, "alpha"))
	require.NoError(t, s.JoinRoom(guest, "alpha"))
	drain(host)
	drain(guest)
	require.NoError(t, s.StartGame(host, "alpha"))

	handUpdates := func(c *Conn) int {
		n := 0
		for _, ev := range drain(c) {
			if ev.Type == game.EventHandUpdate {
				n++
			}
		}
		return n
	}
	assert.Equal(t, 1, handUpdates(host), "each player sees exactly their own deal")
	assert.Equal(t, 1, handUpdates(guest))
}
