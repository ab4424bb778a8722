// internal/game/events.go
package game

import (
	"github.com/google/uuid"

	"github.com/dmgarza/brawldeck/internal/models"
)

// EventType tags every outbound message so clients can route on "type".
type EventType string

const (
	EventRoomCreated EventType = "room_created" // reply: create_room outcome
	EventRoomJoined  EventType = "room_joined"  // reply: join_room outcome
	EventRoomLeft    EventType = "room_left"    // reply: leave_room outcome
	EventRoomList    EventType = "room_list"    // all clients: lobby room names
	EventRoomUpdate  EventType = "room_update"  // room: membership snapshot
	EventGameStarted EventType = "game_started" // room: deal done, first turn holder
	EventHandUpdate  EventType = "hand_update"  // private: owner's full hand
	EventCardPlayed  EventType = "card_played"  // room: effect outcome + counters
	EventPlayerTurn  EventType = "player_turn"  // room: whose turn it is now
	EventTurnSkipped EventType = "turn_skipped" // room: liveness guard fired
	EventGameEnd     EventType = "game_end"     // room: end reason + hand scores
	EventError       EventType = "error"        // reply: recoverable failure
)

// Event is the single outbound envelope. Exactly one payload pointer is set
// depending on Type; the zero fields are omitted on the wire.
type Event struct {
	Type    EventType `json:"type"`
	Success *bool     `json:"success,omitempty"`
	Message string    `json:"message,omitempty"`

	Rooms    []string      `json:"rooms,omitempty"`
	Room     string        `json:"room,omitempty"`
	Players  []uuid.UUID   `json:"players,omitempty"`
	PlayerID uuid.UUID     `json:"playerId,omitempty"`
	Hand     []models.Card `json:"hand,omitempty"`
	Card     *models.Card  `json:"card,omitempty"`
	Effect   *EffectResult `json:"effect,omitempty"`
	Turn     *TurnInfo     `json:"turn,omitempty"`
	End      *EndInfo      `json:"end,omitempty"`
	Health   *int          `json:"enemyHealth,omitempty"`
}

// TurnInfo identifies the player whose action is currently valid.
type TurnInfo struct {
	PlayerID uuid.UUID `json:"playerId"`
	Index    int       `json:"index"`
	TurnID   int       `json:"turnId"`
}

// EndInfo summarizes a finished game.
type EndInfo struct {
	Reason string         `json:"reason"` // "enemy_defeated" or "deck_exhausted"
	Scores map[string]int `json:"scores"` // blackjack value of each remaining hand
}

const (
	EndReasonEnemyDefeated = "enemy_defeated"
	EndReasonDeckExhausted = "deck_exhausted"
)

// shortID renders the first UUID group for log/message readability.
func shortID(id uuid.UUID) string {
	s := id.String()
	if len(s) > 8 {
		return s[:8]
	}
	return s
}
