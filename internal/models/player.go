// internal/models/player.go
package models

import (
	"github.com/google/uuid"
)

// Player is one seat in a room, keyed by the owning connection's player ID.
type Player struct {
	ID        uuid.UUID `json:"id"`
	Hand      []Card    `json:"hand"`
	Connected bool      `json:"connected"`
}

// HasCard reports whether the player's hand contains a card of equal value.
// Duplicate-valued cards are fungible; the first match wins.
func (p *Player) HasCard(c Card) bool {
	for _, h := range p.Hand {
		if h == c {
			return true
		}
	}
	return false
}

// RemoveCard removes exactly one card of equal value from the hand.
// Returns false if no match exists.
func (p *Player) RemoveCard(c Card) bool {
	for i, h := range p.Hand {
		if h == c {
			p.Hand = append(p.Hand[:i], p.Hand[i+1:]...)
			return true
		}
	}
	return false
}
