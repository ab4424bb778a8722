// internal/models/card_test.go
package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCardStructured(t *testing.T) {
	c, err := ParseCard(json.RawMessage(`{"rank":"Q","suit":"♥"}`))
	require.NoError(t, err)
	assert.Equal(t, Card{Rank: "Q", Suit: Hearts}, c)
}

func TestParseCardToken(t *testing.T) {
	cases := map[string]Card{
		`"10♦"`: {Rank: "10", Suit: Diamonds},
		`"A♠"`:  {Rank: "A", Suit: Spades},
		`"2♣"`:  {Rank: "2", Suit: Clubs},
	}
	for raw, want := range cases {
		c, err := ParseCard(json.RawMessage(raw))
		require.NoError(t, err, "parsing %s", raw)
		assert.Equal(t, want, c)
	}
}

func TestParseCardRejectsGarbage(t *testing.T) {
	for _, raw := range []string{
		`"11♦"`, // no such rank
		`"Q"`,   // missing suit
		`"QH"`,  // letter suit, not a glyph
		`{"rank":"Q","suit":"x"}`,
		`{"rank":"1","suit":"♥"}`,
		`null`,
		``,
	} {
		_, err := ParseCard(json.RawMessage(raw))
		assert.Error(t, err, "expected %q to be rejected", raw)
	}
}

func TestCardString(t *testing.T) {
	assert.Equal(t, "10♦", Card{Rank: "10", Suit: Diamonds}.String())
	assert.Equal(t, "A♠", Card{Rank: "A", Suit: Spades}.String())
}

func TestRemoveCardTakesExactlyOne(t *testing.T) {
	p := &Player{Hand: []Card{
		{Rank: "7", Suit: Hearts},
		{Rank: "7", Suit: Hearts},
		{Rank: "K", Suit: Clubs},
	}}

	require.True(t, p.RemoveCard(Card{Rank: "7", Suit: Hearts}))
	assert.Len(t, p.Hand, 2)
	assert.True(t, p.HasCard(Card{Rank: "7", Suit: Hearts}), "the duplicate must remain")

	assert.False(t, p.RemoveCard(Card{Rank: "2", Suit: Spades}))
	assert.Len(t, p.Hand, 2)
}
