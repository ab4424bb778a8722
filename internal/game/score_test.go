// internal/game/score_test.go
package game

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dmgarza/brawldeck/internal/models"
)

func card(rank string, suit models.Suit) models.Card {
	return models.Card{Rank: rank, Suit: suit}
}

func TestScore(t *testing.T) {
	cases := []struct {
		name string
		hand []models.Card
		want int
	}{
		{"empty hand", nil, 0},
		{"face cards", []models.Card{card("K", models.Spades), card("Q", models.Hearts)}, 20},
		{"blackjack", []models.Card{card("A", models.Spades), card("K", models.Hearts)}, 21},
		{"two aces demote once", []models.Card{card("A", models.Spades), card("A", models.Hearts), card("9", models.Clubs)}, 21},
		{"both aces demote", []models.Card{card("A", models.Spades), card("A", models.Hearts), card("K", models.Clubs), card("Q", models.Diamonds)}, 22},
		{"numbers", []models.Card{card("2", models.Spades), card("10", models.Hearts), card("5", models.Clubs)}, 17},
		{"soft then hard", []models.Card{card("A", models.Spades), card("7", models.Hearts), card("9", models.Clubs)}, 17},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, Score(tc.hand))
		})
	}
}

func TestDamageValue(t *testing.T) {
	cases := map[models.Card]int{
		card("2", models.Spades):    2,
		card("10", models.Hearts):   10,
		card("J", models.Diamonds):  11,
		card("Q", models.Clubs):     12,
		card("K", models.Spades):    13,
		card("A", models.Hearts):    14,
	}
	for c, want := range cases {
		assert.Equal(t, want, DamageValue(c), "damage of %s", c)
	}
}
