package deck

import (
	"fmt"
	"strings"
)

// ParseCards parses a compact card string such as "AsKhTd2c".
// Each card is a rank character (A,2-9,T,J,Q,K) followed by a suit character (s,h,d,c).
// Spaces are ignored and parsing is case-insensitive.
func ParseCards(s string) ([]Card, error) {
	s = strings.ReplaceAll(s, " ", "")
	if len(s)%2 != 0 {
		return nil, fmt.Errorf("invalid card string length: %d (must be even)", len(s))
	}

	cards := make([]Card, 0, len(s)/2)
	for i := 0; i < len(s); i += 2 {
		rank, err := parseRank(s[i])
		if err != nil {
			return nil, fmt.Errorf("invalid rank '%c' at position %d: %w", s[i], i, err)
		}

		suit, err := parseSuit(s[i+1])
		if err != nil {
			return nil, fmt.Errorf("invalid suit '%c' at position %d: %w", s[i+1], i+1, err)
		}

		cards = append(cards, Card{Rank: rank, Suit: suit})
	}

	return cards, nil
}

// MustParseCards is like ParseCards but panics on error. Intended for tests.
func MustParseCards(s string) []Card {
	cards, err := ParseCards(s)
	if err != nil {
		panic(err)
	}
	return cards
}

func parseRank(c byte) (Rank, error) {
	switch c {
	case 'A', 'a':
		return Ace, nil
	case 'T', 't':
		return Ten, nil
	case 'J', 'j':
		return Jack, nil
	case 'Q', 'q':
		return Queen, nil
	case 'K', 'k':
		return King, nil
	}
	if c >= '2' && c <= '9' {
		return Rank(c - '0'), nil
	}
	return 0, fmt.Errorf("unknown rank")
}

func parseSuit(c byte) (Suit, error) {
	switch c {
	case 's', 'S':
		return Spades, nil
	case 'h', 'H':
		return Hearts, nil
	case 'd', 'D':
		return Diamonds, nil
	case 'c', 'C':
		return Clubs, nil
	}
	return 0, fmt.Errorf("unknown suit")
}
