package deck

import (
	rand "math/rand/v2"
)

// Size is the number of cards in a standard deck
const Size = len(Suits) * len(Ranks)

// Deck is a stack of cards. The top of the deck is the end of the slice.
type Deck struct {
	cards []Card
}

// New creates an ordered 52-card deck: every suit crossed with every rank.
func New() *Deck {
	d := &Deck{cards: make([]Card, 0, Size)}
	for _, suit := range Suits {
		for _, rank := range Ranks {
			d.cards = append(d.cards, NewCard(rank, suit))
		}
	}
	return d
}

// NewShuffled creates a full deck and shuffles it with rng
func NewShuffled(rng *rand.Rand) *Deck {
	d := New()
	d.Shuffle(rng)
	return d
}

// FromCards builds a deck whose top card is the last element of cards.
func FromCards(cards []Card) *Deck {
	return &Deck{cards: append([]Card(nil), cards...)}
}

// Shuffle randomizes the order of cards in the deck (Fisher-Yates)
func (d *Deck) Shuffle(rng *rand.Rand) {
	for i := len(d.cards) - 1; i > 0; i-- {
		j := rng.IntN(i + 1)
		d.cards[i], d.cards[j] = d.cards[j], d.cards[i]
	}
}

// Draw pops the top card from the deck
func (d *Deck) Draw() (Card, bool) {
	if len(d.cards) == 0 {
		return Card{}, false
	}

	top := len(d.cards) - 1
	card := d.cards[top]
	d.cards = d.cards[:top]
	return card, true
}

// Peek returns the top card without removing it from the deck
func (d *Deck) Peek() (Card, bool) {
	if len(d.cards) == 0 {
		return Card{}, false
	}
	return d.cards[len(d.cards)-1], true
}

// Remaining returns the number of cards left in the deck
func (d *Deck) Remaining() int {
	return len(d.cards)
}

// IsEmpty returns true if the deck has no cards left
func (d *Deck) IsEmpty() bool {
	return len(d.cards) == 0
}

// Cards returns a copy of the remaining cards, bottom first
func (d *Deck) Cards() []Card {
	return append([]Card(nil), d.cards...)
}
