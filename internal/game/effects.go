// internal/game/effects.go
package game

import (
	"fmt"

	"github.com/dmgarza/brawldeck/internal/models"
)

// EffectResult describes what playing a card did: the damage actually dealt
// to the enemy, how many cards the actor drew, and a human-readable message
// broadcast to the room.
type EffectResult struct {
	Effect  string `json:"effect"`
	Damage  int    `json:"damage"`
	Drawn   int    `json:"drawn"`
	Message string `json:"message"`
}

const (
	EffectBlock  = "block"
	EffectHeal   = "heal"
	EffectDraw   = "draw"
	EffectDouble = "double"
)

// resolveEffect applies the suit effect of the played card to the acting
// player and the room, and returns the outcome. Assumes the room lock is
// held: diamonds mutate the deck and the actor's hand.
func (r *Room) resolveEffect(p *models.Player, c models.Card) EffectResult {
	switch c.Suit {
	case models.Spades:
		// Block is flavor only; it does not change the damage dealt.
		return EffectResult{
			Effect:  EffectBlock,
			Damage:  DamageValue(c),
			Message: fmt.Sprintf("%s blocks with %s", shortID(p.ID), c),
		}
	case models.Hearts:
		// Hearts carry no numeric effect in this variant; the enemy counter
		// is the only shared pool.
		return EffectResult{
			Effect:  EffectHeal,
			Damage:  DamageValue(c),
			Message: fmt.Sprintf("%s heals the party with %s", shortID(p.ID), c),
		}
	case models.Diamonds:
		drawn := r.Deck.DrawUpTo(2)
		p.Hand = append(p.Hand, drawn...)
		return EffectResult{
			Effect:  EffectDraw,
			Damage:  DamageValue(c),
			Drawn:   len(drawn),
			Message: fmt.Sprintf("%s plays %s and draws %d extra card(s)", shortID(p.ID), c, len(drawn)),
		}
	case models.Clubs:
		return EffectResult{
			Effect:  EffectDouble,
			Damage:  DamageValue(c) * 2,
			Message: fmt.Sprintf("%s plays %s for double damage", shortID(p.ID), c),
		}
	default:
		return EffectResult{
			Damage:  DamageValue(c),
			Message: fmt.Sprintf("%s plays %s", shortID(p.ID), c),
		}
	}
}
