// internal/handlers/ws.go
package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/coder/websocket"
	"github.com/sirupsen/logrus"

	"github.com/dmgarza/brawldeck/internal/game"
	"github.com/dmgarza/brawldeck/internal/identity"
	"github.com/dmgarza/brawldeck/internal/models"
)

// ClientMessage is the inbound envelope. Card is raw so both the structured
// object and the token string forms parse.
type ClientMessage struct {
	Type string          `json:"type"`
	Room string          `json:"room,omitempty"`
	Card json.RawMessage `json:"card,omitempty"`
}

// WSHandler upgrades the connection, resolves the caller's player identity,
// registers the connection with the hub, and runs the read loop until the
// socket closes. Cleanup (room removal, lobby refresh) always runs on exit.
func WSHandler(logger *logrus.Logger, s *Server, allowedOrigins []string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !originAllowed(r, allowedOrigins) {
			logger.Warnf("rejected WebSocket handshake from origin %q", r.Header.Get("Origin"))
			http.Error(w, "origin not allowed", http.StatusForbidden)
			return
		}

		// Identity cookie must be set before the 101 response is written.
		playerID, err := identity.EnsurePlayer(w, r)
		if err != nil {
			logger.Warnf("identity resolution failed: %v", err)
			http.Error(w, "identity error", http.StatusInternalServerError)
			return
		}

		c, err := websocket.Accept(w, r, &websocket.AcceptOptions{
			Subprotocols: []string{"brawl"},
			// Origin was checked above against the exact-match allow list.
			InsecureSkipVerify: true,
		})
		if err != nil {
			logger.Warnf("websocket accept error: %v", err)
			return
		}
		defer c.Close(websocket.StatusInternalError, "handler finished")

		if c.Subprotocol() != "brawl" {
			c.Close(websocket.StatusPolicyViolation, "client must speak the brawl subprotocol")
			return
		}
		logger.Infof("player %s connected from %s", playerID, r.RemoteAddr)

		ctx, cancel := context.WithCancel(r.Context())
		defer cancel()

		conn := &Conn{
			PlayerID: playerID,
			OutChan:  make(chan game.Event, 32),
			Cancel:   cancel,
		}
		s.Hub.Add(conn)

		go writePump(ctx, c, conn, logger)

		readLoop(ctx, c, s, conn, logger)

		// The socket is gone; sweep the player out of any room they were in.
		s.Hub.Remove(conn)
		s.Disconnect(conn)
		logger.Infof("player %s disconnected", playerID)
	}
}

// originAllowed implements the exact-match origin allow list. Requests
// without an Origin header (non-browser clients) are allowed.
func originAllowed(r *http.Request, allowed []string) bool {
	origin := r.Header.Get("Origin")
	if origin == "" || len(allowed) == 0 {
		return true
	}
	for _, o := range allowed {
		if o == origin {
			return true
		}
	}
	return false
}

// readLoop reads, decodes, and dispatches client messages until the
// connection errors or the context cancels. Every failure becomes a reply;
// a malformed message never takes the process down.
func readLoop(ctx context.Context, c *websocket.Conn, s *Server, conn *Conn, logger *logrus.Logger) {
	for {
		typ, data, err := c.Read(ctx)
		if err != nil {
			status := websocket.CloseStatus(err)
			if status == websocket.StatusNormalClosure || status == websocket.StatusGoingAway {
				logger.Infof("websocket closed normally for player %s", conn.PlayerID)
			} else if strings.Contains(err.Error(), "context canceled") {
				// Shutdown path, nothing to report.
			} else {
				logger.Warnf("read error for player %s: %v", conn.PlayerID, err)
			}
			return
		}
		if typ != websocket.MessageText {
			continue
		}

		var msg ClientMessage
		if err := json.Unmarshal(data, &msg); err != nil {
			logger.Warnf("invalid JSON from player %s: %v", conn.PlayerID, err)
			conn.send(game.Event{Type: game.EventError, Message: "invalid JSON"}, logger)
			continue
		}

		dispatch(s, conn, msg, logger)

		select {
		case <-ctx.Done():
			return
		default:
		}
	}
}

// dispatch routes one inbound event and replies to the caller. Broadcasts to
// wider audiences happen inside the room/turn engine.
func dispatch(s *Server, conn *Conn, msg ClientMessage, logger *logrus.Logger) {
	switch msg.Type {
	case "create_room":
		if err := s.CreateRoom(conn, msg.Room); err != nil {
			conn.send(failReply(game.EventRoomCreated, err), logger)
			return
		}
		conn.send(okReply(game.EventRoomCreated, "room "+msg.Room+" created"), logger)

	case "get_rooms":
		conn.send(game.Event{Type: game.EventRoomList, Rooms: s.RoomNames()}, logger)

	case "join_room":
		if err := s.JoinRoom(conn, msg.Room); err != nil {
			conn.send(failReply(game.EventRoomJoined, err), logger)
			return
		}
		ev := okReply(game.EventRoomJoined, "joined "+msg.Room)
		ev.Room = msg.Room
		ev.PlayerID = conn.PlayerID
		conn.send(ev, logger)

	case "leave_room":
		if err := s.LeaveRoom(conn); err != nil {
			conn.send(failReply(game.EventRoomLeft, err), logger)
			return
		}
		conn.send(okReply(game.EventRoomLeft, "left room"), logger)

	case "start_game":
		if err := s.StartGame(conn, msg.Room); err != nil {
			conn.send(game.Event{Type: game.EventError, Message: err.Error()}, logger)
		}

	case "play_turn":
		card, err := models.ParseCard(msg.Card)
		if err != nil {
			conn.send(game.Event{Type: game.EventError, Message: err.Error()}, logger)
			return
		}
		if err := s.PlayTurn(conn, msg.Room, card); err != nil {
			conn.send(game.Event{Type: game.EventError, Message: err.Error()}, logger)
		}

	case "ping":
		conn.send(game.Event{Type: "pong"}, logger)

	default:
		logger.Warnf("unknown message type %q from player %s", msg.Type, conn.PlayerID)
		conn.send(game.Event{Type: game.EventError, Message: "unknown message type: " + msg.Type}, logger)
	}
}

func okReply(t game.EventType, msg string) game.Event {
	v := true
	return game.Event{Type: t, Success: &v, Message: msg}
}

func failReply(t game.EventType, err error) game.Event {
	v := false
	return game.Event{Type: t, Success: &v, Message: err.Error()}
}

// writePump owns all socket writes for one connection: queued events plus a
// periodic ping so half-dead connections surface.
func writePump(ctx context.Context, c *websocket.Conn, conn *Conn, logger *logrus.Logger) {
	ticker := time.NewTicker(30 * time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case ev, ok := <-conn.OutChan:
			if !ok {
				return
			}
			data, err := json.Marshal(ev)
			if err != nil {
				logger.Warnf("failed to marshal outgoing event for player %s: %v", conn.PlayerID, err)
				continue
			}
			writeCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
			err = c.Write(writeCtx, websocket.MessageText, data)
			cancel()
			if err != nil {
				logger.Warnf("write failed for player %s: %v", conn.PlayerID, err)
				return
			}
		case <-ticker.C:
			pingCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
			err := c.Ping(pingCtx)
			cancel()
			if err != nil {
				logger.Warnf("ping failed for player %s, assuming disconnect: %v", conn.PlayerID, err)
				return
			}
		}
	}
}
