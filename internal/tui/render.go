package tui

import (
	"fmt"
	"sort"
	"strings"

	"github.com/lox/blackjack/internal/deck"
	"github.com/lox/blackjack/internal/game"
)

// formatCards formats cards with colors
func formatCards(cards deck.Hand) string {
	if len(cards) == 0 {
		return "[]"
	}

	formatted := make([]string, 0, len(cards))
	for _, card := range cards {
		if card.IsRed() {
			formatted = append(formatted, RedCardStyle.Render(card.String()))
		} else {
			formatted = append(formatted, BlackCardStyle.Render(card.String()))
		}
	}

	return "[" + strings.Join(formatted, " ") + "]"
}

func handLabel(cards deck.Hand) string {
	if len(cards) == 0 {
		return formatCards(cards)
	}
	value := game.HandValue(cards)
	label := fmt.Sprintf("%s %d", formatCards(cards), value)
	if value > game.Blackjack {
		label += " " + ErrorStyle.Render("BUST")
	}
	return label
}

// RenderRoom draws the dealer and every seat. The viewer's own seat is
// highlighted and listed first.
func RenderRoom(view *game.RoomView, self string) string {
	if view == nil {
		return InfoStyle.Render("Waiting for room state...")
	}

	var b strings.Builder

	status := "idle"
	if view.RoundActive {
		status = "round in progress"
	}
	b.WriteString(HeaderStyle.Render(view.Name))
	b.WriteString(" ")
	b.WriteString(InfoStyle.Render(status))
	b.WriteString("\n\n")

	b.WriteString(DealerStyle.Render("Dealer"))
	b.WriteString("  ")
	b.WriteString(handLabel(view.DealerHand))
	b.WriteString("\n\n")

	ids := make([]string, 0, len(view.Players))
	for id := range view.Players {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool {
		if (ids[i] == self) != (ids[j] == self) {
			return ids[i] == self
		}
		return ids[i] < ids[j]
	})

	for _, id := range ids {
		p := view.Players[id]
		name := p.Name
		if id == self {
			name = SelfStyle.Render(name + " (you)")
		} else {
			name = PlayerInfoStyle.Render(name)
		}

		fmt.Fprintf(&b, "%s  credits %d  bet %d  %s", name, p.Credits, p.Bet, handLabel(p.Hand))
		if view.RoundActive && p.Done {
			b.WriteString("  ")
			b.WriteString(InfoStyle.Render("done"))
		}
		b.WriteString("\n")
	}

	if len(ids) == 0 {
		b.WriteString(InfoStyle.Render("No players seated"))
		b.WriteString("\n")
	}

	return b.String()
}

// describeResult summarises a settled round from the viewer's seat
func describeResult(view *game.RoomView, self string, creditsBefore int) string {
	p, ok := view.Players[self]
	if !ok {
		return fmt.Sprintf("Round over. Dealer %d", game.HandValue(view.DealerHand))
	}

	delta := p.Credits - creditsBefore
	outcome := WarningStyle.Render("push")
	switch {
	case delta > 0:
		outcome = SuccessStyle.Render(fmt.Sprintf("won %d", delta))
	case delta < 0:
		outcome = ErrorStyle.Render(fmt.Sprintf("lost %d", -delta))
	case p.Bet == 0:
		outcome = InfoStyle.Render("no bet")
	}

	return fmt.Sprintf("Round over. Dealer %d, you %d: %s (credits %d)",
		game.HandValue(view.DealerHand), game.HandValue(p.Hand), outcome, p.Credits)
}
