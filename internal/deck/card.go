package deck

import (
	"encoding/json"
	"fmt"
)

// Suit represents a card suit
type Suit int

const (
	Spades Suit = iota
	Hearts
	Diamonds
	Clubs
)

// Suits lists every suit in deck construction order
var Suits = [...]Suit{Spades, Hearts, Diamonds, Clubs}

// String returns the string representation of a suit
func (s Suit) String() string {
	switch s {
	case Spades:
		return "♠"
	case Hearts:
		return "♥"
	case Diamonds:
		return "♦"
	case Clubs:
		return "♣"
	default:
		return "?"
	}
}

// IsRed returns true if the suit is red (Hearts or Diamonds)
func (s Suit) IsRed() bool {
	return s == Hearts || s == Diamonds
}

// MarshalText encodes the suit as its symbol
func (s Suit) MarshalText() ([]byte, error) {
	if s < Spades || s > Clubs {
		return nil, fmt.Errorf("invalid suit: %d", int(s))
	}
	return []byte(s.String()), nil
}

// UnmarshalText decodes a suit symbol
func (s *Suit) UnmarshalText(text []byte) error {
	for _, suit := range Suits {
		if suit.String() == string(text) {
			*s = suit
			return nil
		}
	}
	return fmt.Errorf("invalid suit: %q", text)
}

// Rank represents a card rank
type Rank int

const (
	Ace Rank = iota + 1
	Two
	Three
	Four
	Five
	Six
	Seven
	Eight
	Nine
	Ten
	Jack
	Queen
	King
)

// Ranks lists every rank in deck construction order
var Ranks = [...]Rank{Ace, Two, Three, Four, Five, Six, Seven, Eight, Nine, Ten, Jack, Queen, King}

// String returns the string representation of a rank
func (r Rank) String() string {
	switch {
	case r == Ace:
		return "A"
	case r >= Two && r <= Ten:
		return fmt.Sprintf("%d", int(r))
	case r == Jack:
		return "J"
	case r == Queen:
		return "Q"
	case r == King:
		return "K"
	default:
		return "?"
	}
}

// MarshalText encodes the rank as A, 2..10, J, Q or K
func (r Rank) MarshalText() ([]byte, error) {
	if r < Ace || r > King {
		return nil, fmt.Errorf("invalid rank: %d", int(r))
	}
	return []byte(r.String()), nil
}

// UnmarshalText decodes a rank string
func (r *Rank) UnmarshalText(text []byte) error {
	for _, rank := range Ranks {
		if rank.String() == string(text) {
			*r = rank
			return nil
		}
	}
	return fmt.Errorf("invalid rank: %q", text)
}

// Card represents a playing card
type Card struct {
	Rank Rank `json:"rank"`
	Suit Suit `json:"suit"`
}

// NewCard creates a new card
func NewCard(rank Rank, suit Suit) Card {
	return Card{Rank: rank, Suit: suit}
}

// String returns the string representation of a card (e.g., "A♠", "10♥")
func (c Card) String() string {
	return c.Rank.String() + c.Suit.String()
}

// IsRed returns true if the card is red
func (c Card) IsRed() bool {
	return c.Suit.IsRed()
}

// IsAce returns true if the card is an Ace
func (c Card) IsAce() bool {
	return c.Rank == Ace
}

// IsFaceCard returns true if the card is a face card (J, Q, K)
func (c Card) IsFaceCard() bool {
	return c.Rank >= Jack && c.Rank <= King
}

// Points is the blackjack value of the card with aces counted high (11).
func (c Card) Points() int {
	switch {
	case c.IsAce():
		return 11
	case c.IsFaceCard():
		return 10
	default:
		return int(c.Rank)
	}
}

var _ json.Marshaler = Hand(nil)

// Hand is an ordered sequence of cards. A nil hand encodes as an empty array.
type Hand []Card

// MarshalJSON always emits an array so clients never see null hands
func (h Hand) MarshalJSON() ([]byte, error) {
	if h == nil {
		return []byte("[]"), nil
	}
	return json.Marshal([]Card(h))
}

// String joins the cards with spaces
func (h Hand) String() string {
	s := ""
	for i, c := range h {
		if i > 0 {
			s += " "
		}
		s += c.String()
	}
	return s
}
