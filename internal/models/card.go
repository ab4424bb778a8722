// internal/models/card.go
package models

import (
	"encoding/json"
	"fmt"
	"regexp"
)

// Suit is one of the four suit glyphs.
type Suit string

const (
	Spades   Suit = "♠"
	Hearts   Suit = "♥"
	Diamonds Suit = "♦"
	Clubs    Suit = "♣"
)

// Suits lists every suit in deck-construction order.
var Suits = []Suit{Spades, Hearts, Diamonds, Clubs}

// Ranks lists every rank in deck-construction order.
var Ranks = []string{"2", "3", "4", "5", "6", "7", "8", "9", "10", "J", "Q", "K", "A"}

// Card is an immutable rank/suit pair. Cards are compared by value; a card is
// never mutated after construction, only moved between the deck and hands.
type Card struct {
	Rank string `json:"rank"`
	Suit Suit   `json:"suit"`
}

// String renders the compact token form, e.g. "Q♥" or "10♦".
func (c Card) String() string {
	return c.Rank + string(c.Suit)
}

var cardToken = regexp.MustCompile(`^(\d+|[JQKA])([♠♥♦♣])$`)

var validRanks = func() map[string]struct{} {
	m := make(map[string]struct{}, len(Ranks))
	for _, r := range Ranks {
		m[r] = struct{}{}
	}
	return m
}()

// ParseCard accepts either the structured JSON object {"rank":"Q","suit":"♥"}
// or the token string "Q♥" and returns the card value.
func ParseCard(raw json.RawMessage) (Card, error) {
	if len(raw) == 0 {
		return Card{}, fmt.Errorf("missing card")
	}

	// Token form arrives as a JSON string.
	var token string
	if err := json.Unmarshal(raw, &token); err == nil {
		return parseToken(token)
	}

	var c Card
	if err := json.Unmarshal(raw, &c); err != nil {
		return Card{}, fmt.Errorf("invalid card payload: %w", err)
	}
	return validate(c)
}

func parseToken(token string) (Card, error) {
	m := cardToken.FindStringSubmatch(token)
	if m == nil {
		return Card{}, fmt.Errorf("invalid card token %q", token)
	}
	return validate(Card{Rank: m[1], Suit: Suit(m[2])})
}

func validate(c Card) (Card, error) {
	if _, ok := validRanks[c.Rank]; !ok {
		return Card{}, fmt.Errorf("invalid rank %q", c.Rank)
	}
	switch c.Suit {
	case Spades, Hearts, Diamonds, Clubs:
	default:
		return Card{}, fmt.Errorf("invalid suit %q", c.Suit)
	}
	return c, nil
}
