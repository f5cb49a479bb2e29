package game

import "github.com/lox/blackjack/internal/deck"

const (
	// Blackjack is the best possible hand value
	Blackjack = 21

	// DealerStandsOn is the total at or above which the dealer stops drawing.
	// Soft totals are not special-cased.
	DealerStandsOn = 17
)

// HandValue sums a hand with J/Q/K as 10 and aces as 11, demoting aces to 1
// one at a time while the total exceeds 21. The result may still exceed 21
// when no ace is left to demote.
func HandValue(hand []deck.Card) int {
	total, soft := 0, 0
	for _, c := range hand {
		total += c.Points()
		if c.IsAce() {
			soft++
		}
	}

	for total > Blackjack && soft > 0 {
		total -= 10
		soft--
	}

	return total
}
