// internal/deck/deck.go
package deck

import (
	"errors"
	"math/rand"

	"github.com/dmgarza/brawldeck/internal/models"
)

// ErrInsufficientCards signals a draw of more cards than the deck holds.
var ErrInsufficientCards = errors.New("not enough cards left in the deck")

// Deck is an ordered stack of cards. Cards are drawn from the back.
type Deck []models.Card

// New builds the full 52-card set (4 suits x 13 ranks) and shuffles it with
// an unbiased in-place Fisher-Yates permutation.
func New() Deck {
	d := make(Deck, 0, len(models.Suits)*len(models.Ranks))
	for _, suit := range models.Suits {
		for _, rank := range models.Ranks {
			d = append(d, models.Card{Rank: rank, Suit: suit})
		}
	}
	d.Shuffle()
	return d
}

// Shuffle permutes the deck in place.
func (d Deck) Shuffle() {
	rand.Shuffle(len(d), func(i, j int) {
		d[i], d[j] = d[j], d[i]
	})
}

// Draw removes n cards from the back of the deck and returns them.
// The deck is left untouched when n exceeds the remaining count.
func (d *Deck) Draw(n int) ([]models.Card, error) {
	if n < 0 || n > len(*d) {
		return nil, ErrInsufficientCards
	}
	cut := len(*d) - n
	drawn := make([]models.Card, n)
	copy(drawn, (*d)[cut:])
	*d = (*d)[:cut]
	return drawn, nil
}

// DrawUpTo removes at most n cards, returning fewer when the deck runs short.
// Used by effects that draw "extra" cards near the end of the game.
func (d *Deck) DrawUpTo(n int) []models.Card {
	if n > len(*d) {
		n = len(*d)
	}
	drawn, _ := d.Draw(n)
	return drawn
}
