package deck

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/lox/blackjack/internal/randutil"
)

func TestNewDeckIsFullCrossProduct(t *testing.T) {
	d := New()
	require.Equal(t, 52, d.Remaining())

	seen := make(map[Card]bool)
	for _, c := range d.Cards() {
		seen[c] = true
	}
	for _, suit := range Suits {
		for _, rank := range Ranks {
			assert.True(t, seen[NewCard(rank, suit)], "missing %s", NewCard(rank, suit))
		}
	}
}

func TestPropertyShuffledDeckHas52UniqueCards(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		seed := rapid.Int64().Draw(t, "seed")
		d := NewShuffled(randutil.New(seed))
		if d.Remaining() != Size {
			t.Fatalf("deck has %d cards", d.Remaining())
		}
		seen := make(map[Card]bool, Size)
		for !d.IsEmpty() {
			c, _ := d.Draw()
			if c.Rank < Ace || c.Rank > King || c.Suit < Spades || c.Suit > Clubs {
				t.Fatalf("card outside universe: %+v", c)
			}
			if seen[c] {
				t.Fatalf("duplicate card %s", c)
			}
			seen[c] = true
		}
	})
}

func TestShuffleIsReproducible(t *testing.T) {
	a := NewShuffled(randutil.New(99))
	b := NewShuffled(randutil.New(99))
	assert.Equal(t, a.Cards(), b.Cards())

	c := NewShuffled(randutil.New(100))
	assert.NotEqual(t, a.Cards(), c.Cards())
}

func TestDrawTakesFromTop(t *testing.T) {
	d := FromCards(MustParseCards("2s3s4s"))

	top, ok := d.Peek()
	require.True(t, ok)
	assert.Equal(t, NewCard(Four, Spades), top)

	c, ok := d.Draw()
	require.True(t, ok)
	assert.Equal(t, NewCard(Four, Spades), c)
	assert.Equal(t, 2, d.Remaining())

	d.Draw()
	d.Draw()
	_, ok = d.Draw()
	assert.False(t, ok)
	assert.True(t, d.IsEmpty())
}
