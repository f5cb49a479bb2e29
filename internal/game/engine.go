package game

import (
	"fmt"
	rand "math/rand/v2"

	"github.com/lox/blackjack/internal/deck"
)

// Outcome describes how a player's bet settled
type Outcome string

const (
	OutcomeWin   Outcome = "win"
	OutcomeLose  Outcome = "lose"
	OutcomeBust  Outcome = "bust"
	OutcomePush  Outcome = "push"
	OutcomeNoBet Outcome = "no_bet"
)

// Settlement is the result of EndRound for one player
type Settlement struct {
	PlayerID string
	Outcome  Outcome
	Delta    int
	Value    int
}

// Engine runs rounds against rooms. It holds only the random source used
// for shuffling; all game state lives in the Room.
type Engine struct {
	rng *rand.Rand
}

// NewEngine creates an engine drawing shuffles from rng
func NewEngine(rng *rand.Rand) *Engine {
	return &Engine{rng: rng}
}

// StartRound shuffles a fresh deck, resets every player and deals two passes
// of one card to each player (in PlayerIDs order) followed by the dealer.
// Starting a round while one is active restarts it.
//
// ErrDeckExhausted is returned if the table is too large to deal from one
// deck; the round is left active so the caller can settle it.
func (e *Engine) StartRound(room *Room) error {
	room.Deck = deck.NewShuffled(e.rng)
	room.DealerHand = deck.Hand{}
	room.RoundActive = true

	ids := room.PlayerIDs()
	for _, id := range ids {
		room.Players[id].resetForRound()
	}

	for pass := 0; pass < 2; pass++ {
		for _, id := range ids {
			p := room.Players[id]
			card, ok := room.Deck.Draw()
			if !ok {
				return fmt.Errorf("dealing to %s: %w", id, ErrDeckExhausted)
			}
			p.Hand = append(p.Hand, card)
		}
		card, ok := room.Deck.Draw()
		if !ok {
			return fmt.Errorf("dealing to dealer: %w", ErrDeckExhausted)
		}
		room.DealerHand = append(room.DealerHand, card)
	}

	return nil
}

func (e *Engine) activePlayer(room *Room, playerID string) (*Player, error) {
	if !room.RoundActive {
		return nil, ErrRoundNotActive
	}
	p, ok := room.Players[playerID]
	if !ok {
		return nil, fmt.Errorf("%s: %w", playerID, ErrUnknownPlayer)
	}
	return p, nil
}

// PlaceBet sets the player's bet, clamped to [0, credits]. It returns the
// amount actually applied.
func (e *Engine) PlaceBet(room *Room, playerID string, amount int) (int, error) {
	p, err := e.activePlayer(room, playerID)
	if err != nil {
		return 0, err
	}
	p.Bet = max(0, min(amount, p.Credits))
	return p.Bet, nil
}

// Hit draws one card for the player. A hand over 21 marks the player done.
func (e *Engine) Hit(room *Room, playerID string) (deck.Card, error) {
	p, err := e.activePlayer(room, playerID)
	if err != nil {
		return deck.Card{}, err
	}
	if p.Done {
		return deck.Card{}, fmt.Errorf("%s: %w", playerID, ErrPlayerDone)
	}

	card, ok := room.Deck.Draw()
	if !ok {
		return deck.Card{}, ErrDeckExhausted
	}
	p.Hand = append(p.Hand, card)
	if p.IsBust() {
		p.Done = true
	}
	return card, nil
}

// Stand marks the player done regardless of hand value
func (e *Engine) Stand(room *Room, playerID string) error {
	p, err := e.activePlayer(room, playerID)
	if err != nil {
		return err
	}
	p.Done = true
	return nil
}

// StandAll marks every remaining player done and returns their ids
func (e *Engine) StandAll(room *Room) []string {
	if !room.RoundActive {
		return nil
	}
	var stood []string
	for _, id := range room.PlayerIDs() {
		if p := room.Players[id]; !p.Done {
			p.Done = true
			stood = append(stood, id)
		}
	}
	return stood
}

// IsRoundComplete reports whether the room has players and all of them are done
func (e *Engine) IsRoundComplete(room *Room) bool {
	if len(room.Players) == 0 {
		return false
	}
	for _, p := range room.Players {
		if !p.Done {
			return false
		}
	}
	return true
}

// EndRound plays the dealer out, settles every bet and returns the room to idle.
// The dealer draws below 17 and stops early if the deck runs out.
func (e *Engine) EndRound(room *Room) ([]Settlement, error) {
	if !room.RoundActive {
		return nil, ErrRoundNotActive
	}

	for room.DealerValue() < DealerStandsOn {
		card, ok := room.Deck.Draw()
		if !ok {
			break
		}
		room.DealerHand = append(room.DealerHand, card)
	}

	dealer := room.DealerValue()
	ids := room.PlayerIDs()
	results := make([]Settlement, 0, len(ids))
	for _, id := range ids {
		p := room.Players[id]
		s := Settlement{PlayerID: id, Value: p.Value()}

		switch {
		case p.Bet <= 0:
			s.Outcome = OutcomeNoBet
		case s.Value > Blackjack:
			s.Outcome, s.Delta = OutcomeBust, -p.Bet
		case dealer > Blackjack || s.Value > dealer:
			s.Outcome, s.Delta = OutcomeWin, p.Bet
		case s.Value < dealer:
			s.Outcome, s.Delta = OutcomeLose, -p.Bet
		default:
			s.Outcome = OutcomePush
		}

		p.Credits += s.Delta
		results = append(results, s)
	}

	room.RoundActive = false
	return results, nil
}
