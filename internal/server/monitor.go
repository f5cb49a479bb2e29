package server

import "github.com/lox/blackjack/internal/game"

// RoundMonitor receives notifications about round progress and outcomes.
// Calls are made on the hub goroutine.
type RoundMonitor interface {
	// OnRoundStart is called after the opening deal.
	OnRoundStart(room string, players int)

	// OnRoundComplete is called after every bet in a round has settled.
	OnRoundComplete(outcome RoundOutcome)
}

// RoundOutcome captures the result of a single round
type RoundOutcome struct {
	Room        string
	DealerValue int
	TimedOut    bool
	Settlements []game.Settlement
}

// DealerBust reports whether the dealer finished over 21
func (o RoundOutcome) DealerBust() bool {
	return o.DealerValue > game.Blackjack
}

// NullRoundMonitor is a no-op implementation.
type NullRoundMonitor struct{}

func (NullRoundMonitor) OnRoundStart(string, int)     {}
func (NullRoundMonitor) OnRoundComplete(RoundOutcome) {}

// MultiRoundMonitor fans events out to multiple monitors.
type MultiRoundMonitor struct {
	monitors []RoundMonitor
}

// NewMultiRoundMonitor builds a composite monitor, pruning nil entries and
// returning a NullRoundMonitor when no monitors are provided.
func NewMultiRoundMonitor(monitors ...RoundMonitor) RoundMonitor {
	filtered := make([]RoundMonitor, 0, len(monitors))
	for _, monitor := range monitors {
		if monitor != nil {
			filtered = append(filtered, monitor)
		}
	}

	switch len(filtered) {
	case 0:
		return NullRoundMonitor{}
	case 1:
		return filtered[0]
	default:
		return MultiRoundMonitor{monitors: filtered}
	}
}

func (m MultiRoundMonitor) OnRoundStart(room string, players int) {
	for _, monitor := range m.monitors {
		monitor.OnRoundStart(room, players)
	}
}

func (m MultiRoundMonitor) OnRoundComplete(outcome RoundOutcome) {
	for _, monitor := range m.monitors {
		monitor.OnRoundComplete(outcome)
	}
}
