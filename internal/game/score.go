// internal/game/score.go
package game

import (
	"strconv"

	"github.com/dmgarza/brawldeck/internal/models"
)

// Score computes the blackjack value of a hand: number cards count face
// value, J/Q/K count 10, and each ace counts 11 until the total busts, at
// which point aces demote to 1 one at a time.
func Score(hand []models.Card) int {
	total := 0
	aces := 0
	for _, c := range hand {
		switch c.Rank {
		case "J", "Q", "K":
			total += 10
		case "A":
			aces++
			total += 11
		default:
			n, _ := strconv.Atoi(c.Rank)
			total += n
		}
	}
	for total > 21 && aces > 0 {
		total -= 10
		aces--
	}
	return total
}

// DamageValue is the attack value of a card in the battle variant: number
// cards hit for face value, J=11, Q=12, K=13, A=14. Clubs double this when
// the suit effect resolves.
func DamageValue(c models.Card) int {
	switch c.Rank {
	case "J":
		return 11
	case "Q":
		return 12
	case "K":
		return 13
	case "A":
		return 14
	default:
		n, _ := strconv.Atoi(c.Rank)
		return n
	}
}
