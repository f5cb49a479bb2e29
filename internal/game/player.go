package game

import "github.com/lox/blackjack/internal/deck"

// Player represents a seat at a room
type Player struct {
	Name    string
	Credits int
	Bet     int // Only meaningful while the round is active
	Hand    deck.Hand
	Done    bool // Monotonic within a round
}

// Value returns the blackjack value of the player's hand
func (p *Player) Value() int {
	return HandValue(p.Hand)
}

// IsBust returns true if the player's hand exceeds 21
func (p *Player) IsBust() bool {
	return p.Value() > Blackjack
}

func (p *Player) resetForRound() {
	p.Hand = deck.Hand{}
	p.Bet = 0
	p.Done = false
}
