// internal/game/room.go
package game

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/dmgarza/brawldeck/internal/deck"
	"github.com/dmgarza/brawldeck/internal/models"
)

const (
	// MaxPlayers caps room membership.
	MaxPlayers = 6
	// MinPlayers is the minimum seat count required to start.
	MinPlayers = 2
	// HandSize is the number of cards dealt to each seat at game start.
	HandSize = 5
	// StartingEnemyHealth is the shared counter the party whittles down.
	StartingEnemyHealth = 100
)

// BroadcastFunc sends an event to every connection in the room.
type BroadcastFunc func(ev Event)

// BroadcastToPlayerFunc sends an event to a single player's connection.
type BroadcastToPlayerFunc func(playerID uuid.UUID, ev Event)

// ActionFunc observes accepted game actions (history/audit hook).
type ActionFunc func(room string, playerID uuid.UUID, action string, payload map[string]interface{})

// Room holds the entire state of one game session. All mutation happens under
// Mu and runs to completion before any broadcast is flushed; the broadcast
// functions must therefore never block (the hub pushes to buffered channels).
type Room struct {
	Name    string
	Players []*models.Player
	Deck    deck.Deck

	TurnIndex   int
	TurnID      int // increments each turn; guards stale timer callbacks
	Started     bool
	Finished    bool
	EnemyHealth int

	TurnTimeout time.Duration // 0 disables the liveness guard
	turnTimer   *time.Timer

	Mu  sync.Mutex
	log *logrus.Logger

	// Injected by the dispatcher so game logic never touches sockets.
	BroadcastFn         BroadcastFunc
	BroadcastToPlayerFn BroadcastToPlayerFunc

	// OnEmpty fires after the last player leaves, typically wired to the
	// store's delete.
	OnEmpty func(name string)

	// OnAction observes accepted actions for the history queue. Optional.
	OnAction ActionFunc

	// OnFinished fires once when the game ends. Optional (results recorder).
	OnFinished func(r *Room, end EndInfo)
}

// NewRoom builds an empty, not-yet-started room.
func NewRoom(name string, logger *logrus.Logger) *Room {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &Room{
		Name: name,
		log:  logger,
	}
}

// AddPlayer seats a new player. Fails once the game has started or the room
// is full.
func (r *Room) AddPlayer(playerID uuid.UUID) error {
	r.Mu.Lock()
	defer r.Mu.Unlock()

	if r.Started {
		return ErrGameAlreadyStarted
	}
	if len(r.Players) >= MaxPlayers {
		return ErrRoomFull
	}
	for _, p := range r.Players {
		if p.ID == playerID {
			return ErrAlreadyInRoom
		}
	}

	r.Players = append(r.Players, &models.Player{ID: playerID, Connected: true})
	r.log.WithFields(logrus.Fields{"room": r.Name, "player": shortID(playerID)}).Info("player joined")
	r.logAction(playerID, "join_room", nil)

	r.fireEvent(Event{Type: EventRoomUpdate, Room: r.Name, Players: r.playerIDsLocked()})
	return nil
}

// RemovePlayer unseats a player (leave or disconnect). Turn state is repaired
// so the room never points at a vacated seat, and OnEmpty fires when the last
// player is gone. Unknown players are ignored.
func (r *Room) RemovePlayer(playerID uuid.UUID) {
	r.Mu.Lock()

	idx := -1
	for i, p := range r.Players {
		if p.ID == playerID {
			idx = i
			break
		}
	}
	if idx == -1 {
		r.Mu.Unlock()
		return
	}

	wasCurrent := r.Started && !r.Finished && idx == r.TurnIndex
	r.Players = append(r.Players[:idx], r.Players[idx+1:]...)
	r.log.WithFields(logrus.Fields{"room": r.Name, "player": shortID(playerID)}).Info("player left")
	r.logAction(playerID, "leave_room", nil)

	empty := len(r.Players) == 0
	if empty {
		r.stopTurnTimerLocked()
		onEmpty := r.OnEmpty
		name := r.Name
		r.Mu.Unlock()
		if onEmpty != nil {
			onEmpty(name)
		}
		return
	}

	if r.Started && !r.Finished {
		// Keep TurnIndex pointing at the same seat where possible.
		if idx < r.TurnIndex {
			r.TurnIndex--
		}
		if r.TurnIndex >= len(r.Players) {
			r.TurnIndex = 0
		}
		if r.noCardsLeftLocked() {
			r.endGameLocked(EndReasonDeckExhausted)
		} else if wasCurrent {
			// The departed player's turn passes to whoever now occupies the
			// seat; skip empty hands, announce, and re-arm the timer.
			r.TurnID++
			for len(r.Players[r.TurnIndex].Hand) == 0 {
				r.TurnIndex = (r.TurnIndex + 1) % len(r.Players)
			}
			r.scheduleTurnTimerLocked()
			r.broadcastTurnLocked()
		}
	}

	r.fireEvent(Event{Type: EventRoomUpdate, Room: r.Name, Players: r.playerIDsLocked()})
	r.Mu.Unlock()
}

// Start builds and shuffles the deck, deals every seat HandSize cards, and
// opens turn rotation at seat 0. Hands are dealt before anything is
// announced so the room state is complete from the first broadcast.
func (r *Room) Start() error {
	r.Mu.Lock()
	defer r.Mu.Unlock()

	if r.Started {
		return ErrGameAlreadyStarted
	}
	if len(r.Players) < MinPlayers {
		return ErrTooFewPlayers
	}

	r.Deck = deck.New()
	for _, p := range r.Players {
		hand, err := r.Deck.Draw(HandSize)
		if err != nil {
			// 6 players * 5 cards fits a 52-card deck; unreachable, but a
			// short deal must not leave a half-started room.
			return err
		}
		p.Hand = hand
	}

	r.Started = true
	r.EnemyHealth = StartingEnemyHealth
	r.TurnIndex = 0
	r.TurnID = 1

	r.log.WithFields(logrus.Fields{"room": r.Name, "players": len(r.Players)}).Info("game started")
	r.logAction(uuid.Nil, "start_game", map[string]interface{}{"players": len(r.Players)})

	health := r.EnemyHealth
	r.fireEvent(Event{
		Type:   EventGameStarted,
		Room:   r.Name,
		Health: &health,
		Turn:   r.turnInfoLocked(),
	})
	for _, p := range r.Players {
		r.sendHandLocked(p.ID)
	}

	r.scheduleTurnTimerLocked()
	return nil
}

// PlayTurn validates and applies one card play: the card leaves the acting
// hand, its suit effect resolves, damage lands on the enemy counter (floored
// at zero), and the turn rotates. End conditions are checked last.
func (r *Room) PlayTurn(playerID uuid.UUID, card models.Card) error {
	r.Mu.Lock()
	defer r.Mu.Unlock()

	if !r.Started {
		return ErrGameNotStarted
	}
	if r.Finished {
		return ErrGameFinished
	}

	player := r.playerByIDLocked(playerID)
	if player == nil {
		return ErrNotInRoom
	}
	if r.Players[r.TurnIndex].ID != playerID {
		return ErrNotYourTurn
	}
	if !player.RemoveCard(card) {
		return ErrCardNotInHand
	}

	result := r.resolveEffect(player, card)
	if result.Damage > 0 {
		r.EnemyHealth -= result.Damage
		if r.EnemyHealth < 0 {
			r.EnemyHealth = 0
		}
	}

	r.log.WithFields(logrus.Fields{
		"room":   r.Name,
		"player": shortID(playerID),
		"card":   card.String(),
		"damage": result.Damage,
		"enemy":  r.EnemyHealth,
	}).Info("card played")
	r.logAction(playerID, "play_turn", map[string]interface{}{
		"card":   card.String(),
		"damage": result.Damage,
	})

	// The owner is the only audience for the updated hand.
	r.sendHandLocked(playerID)
	r.announcePlayLocked(playerID, card, result)

	if r.EnemyHealth <= 0 {
		r.endGameLocked(EndReasonEnemyDefeated)
		return nil
	}
	if r.noCardsLeftLocked() {
		r.endGameLocked(EndReasonDeckExhausted)
		return nil
	}

	// Rotates and announces the next turn holder.
	r.advanceTurnLocked()
	return nil
}

// announcePlayLocked broadcasts the play outcome and shared counters to the
// room. Hands never appear here.
func (r *Room) announcePlayLocked(playerID uuid.UUID, card models.Card, result EffectResult) {
	health := r.EnemyHealth
	r.fireEvent(Event{
		Type:     EventCardPlayed,
		Room:     r.Name,
		PlayerID: playerID,
		Card:     &card,
		Effect:   &result,
		Health:   &health,
	})
}

// advanceTurnLocked rotates to the next seat that can still act, skipping
// empty hands and disconnected seats. Ends the game when no seat can play.
func (r *Room) advanceTurnLocked() {
	if r.Finished || len(r.Players) == 0 {
		return
	}

	r.TurnID++
	next := (r.TurnIndex + 1) % len(r.Players)
	for skipped := 0; len(r.Players[next].Hand) == 0 || !r.Players[next].Connected; skipped++ {
		if skipped >= len(r.Players) {
			r.endGameLocked(EndReasonDeckExhausted)
			return
		}
		next = (next + 1) % len(r.Players)
	}
	r.TurnIndex = next

	r.scheduleTurnTimerLocked()
	r.broadcastTurnLocked()
}

// noCardsLeftLocked reports whether every remaining hand is empty.
func (r *Room) noCardsLeftLocked() bool {
	for _, p := range r.Players {
		if len(p.Hand) > 0 {
			return false
		}
	}
	return true
}

// endGameLocked finishes the room exactly once: stops the timer, scores the
// remaining hands with the blackjack policy, and broadcasts the summary.
func (r *Room) endGameLocked(reason string) {
	if r.Finished {
		return
	}
	r.Finished = true
	r.stopTurnTimerLocked()

	scores := make(map[string]int, len(r.Players))
	for _, p := range r.Players {
		scores[p.ID.String()] = Score(p.Hand)
	}
	end := EndInfo{Reason: reason, Scores: scores}

	r.log.WithFields(logrus.Fields{"room": r.Name, "reason": reason}).Info("game over")
	r.logAction(uuid.Nil, "game_end", map[string]interface{}{"reason": reason})

	health := r.EnemyHealth
	r.fireEvent(Event{Type: EventGameEnd, Room: r.Name, Health: &health, End: &end})

	if r.OnFinished != nil {
		r.OnFinished(r, end)
	}
}

// scheduleTurnTimerLocked arms the liveness guard for the current seat. The
// callback re-acquires the lock and verifies the TurnID so a late fire after
// a normal play is a no-op.
func (r *Room) scheduleTurnTimerLocked() {
	if r.TurnTimeout <= 0 {
		return
	}
	r.stopTurnTimerLocked()

	turnID := r.TurnID
	r.turnTimer = time.AfterFunc(r.TurnTimeout, func() {
		r.Mu.Lock()
		defer r.Mu.Unlock()
		if r.Finished || !r.Started || r.TurnID != turnID || len(r.Players) == 0 {
			return
		}
		idle := r.Players[r.TurnIndex].ID
		r.log.WithFields(logrus.Fields{"room": r.Name, "player": shortID(idle)}).Warn("turn skipped after timeout")
		r.logAction(idle, "turn_skipped", nil)
		r.fireEvent(Event{Type: EventTurnSkipped, Room: r.Name, PlayerID: idle})
		r.advanceTurnLocked()
	})
}

func (r *Room) stopTurnTimerLocked() {
	if r.turnTimer != nil {
		r.turnTimer.Stop()
		r.turnTimer = nil
	}
}

func (r *Room) broadcastTurnLocked() {
	r.fireEvent(Event{Type: EventPlayerTurn, Room: r.Name, Turn: r.turnInfoLocked()})
}

func (r *Room) turnInfoLocked() *TurnInfo {
	if len(r.Players) == 0 {
		return nil
	}
	return &TurnInfo{
		PlayerID: r.Players[r.TurnIndex].ID,
		Index:    r.TurnIndex,
		TurnID:   r.TurnID,
	}
}

// sendHandLocked pushes the owner's full hand to them privately.
func (r *Room) sendHandLocked(playerID uuid.UUID) {
	p := r.playerByIDLocked(playerID)
	if p == nil {
		return
	}
	hand := make([]models.Card, len(p.Hand))
	copy(hand, p.Hand)
	r.fireEventToPlayer(playerID, Event{Type: EventHandUpdate, Room: r.Name, Hand: hand})
}

func (r *Room) playerByIDLocked(playerID uuid.UUID) *models.Player {
	for _, p := range r.Players {
		if p.ID == playerID {
			return p
		}
	}
	return nil
}

func (r *Room) playerIDsLocked() []uuid.UUID {
	ids := make([]uuid.UUID, len(r.Players))
	for i, p := range r.Players {
		ids[i] = p.ID
	}
	return ids
}

// PlayerIDs returns a membership snapshot.
func (r *Room) PlayerIDs() []uuid.UUID {
	r.Mu.Lock()
	defer r.Mu.Unlock()
	return r.playerIDsLocked()
}

// HasPlayer reports whether the given player is seated here.
func (r *Room) HasPlayer(playerID uuid.UUID) bool {
	r.Mu.Lock()
	defer r.Mu.Unlock()
	return r.playerByIDLocked(playerID) != nil
}

func (r *Room) fireEvent(ev Event) {
	if r.BroadcastFn != nil {
		r.BroadcastFn(ev)
	}
}

func (r *Room) fireEventToPlayer(playerID uuid.UUID, ev Event) {
	if r.BroadcastToPlayerFn != nil {
		r.BroadcastToPlayerFn(playerID, ev)
	}
}

func (r *Room) logAction(playerID uuid.UUID, action string, payload map[string]interface{}) {
	if r.OnAction != nil {
		r.OnAction(r.Name, playerID, action, payload)
	}
}
