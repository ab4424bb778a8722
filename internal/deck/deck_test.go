// internal/deck/deck_test.go
package deck

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmgarza/brawldeck/internal/models"
)

func TestNewDeckHas52UniqueCards(t *testing.T) {
	d := New()
	require.Len(t, d, 52)

	seen := make(map[models.Card]bool, 52)
	for _, c := range d {
		assert.False(t, seen[c], "duplicate card %s", c)
		seen[c] = true
	}
}

func TestDraw(t *testing.T) {
	d := New()

	drawn, err := d.Draw(5)
	require.NoError(t, err)
	assert.Len(t, drawn, 5)
	assert.Len(t, d, 47)

	_, err = d.Draw(48)
	assert.ErrorIs(t, err, ErrInsufficientCards)
	assert.Len(t, d, 47, "a failed draw must not consume cards")

	_, err = d.Draw(-1)
	assert.ErrorIs(t, err, ErrInsufficientCards)
}

func TestDrawUpToShortDeck(t *testing.T) {
	d := New()
	d = d[:1]

	drawn := d.DrawUpTo(2)
	assert.Len(t, drawn, 1)
	assert.Empty(t, d)
	assert.Empty(t, d.DrawUpTo(2))
}

// TestShufflePositionUniformity checks that shuffling does not bias any card
// toward any region of the deck. Over many shuffles the mean position of a
// fixed card should approach the middle (25.5 for 52 slots); a biased
// comparator-sort shuffle fails this badly.
func TestShufflePositionUniformity(t *testing.T) {
	const trials = 5000
	target := models.Card{Rank: "A", Suit: models.Spades}

	var sum float64
	counts := make([]int, 52)
	for i := 0; i < trials; i++ {
		d := New()
		for pos, c := range d {
			if c == target {
				sum += float64(pos)
				counts[pos]++
				break
			}
		}
	}

	mean := sum / trials
	assert.InDelta(t, 25.5, mean, 1.5, "mean position drifted from uniform")

	// Each slot expects trials/52 ≈ 96 hits; allow a generous band so the
	// test stays deterministic in practice while still catching gross bias.
	expected := float64(trials) / 52
	for pos, n := range counts {
		assert.InDelta(t, expected, float64(n), expected*0.75, "slot %d is biased", pos)
	}
}
