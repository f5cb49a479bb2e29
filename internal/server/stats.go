package server

import (
	"sync"

	"github.com/lox/blackjack/internal/game"
)

// RoomStats aggregates settled rounds for one room
type RoomStats struct {
	RoundsStarted   int                  `json:"roundsStarted"`
	RoundsCompleted int                  `json:"roundsCompleted"`
	TimedOut        int                  `json:"timedOut"`
	DealerBusts     int                  `json:"dealerBusts"`
	Outcomes        map[game.Outcome]int `json:"outcomes"`
	HouseNet        int                  `json:"houseNet"` // credits won by the house, negative when players are ahead
}

// StatsCollector is a RoundMonitor that keeps per-room totals. It is safe
// to read from HTTP handlers while the hub records.
type StatsCollector struct {
	mu    sync.RWMutex
	rooms map[string]*RoomStats
}

// NewStatsCollector creates an empty collector
func NewStatsCollector() *StatsCollector {
	return &StatsCollector{rooms: make(map[string]*RoomStats)}
}

func (c *StatsCollector) room(name string) *RoomStats {
	stats, ok := c.rooms[name]
	if !ok {
		stats = &RoomStats{Outcomes: make(map[game.Outcome]int)}
		c.rooms[name] = stats
	}
	return stats
}

// OnRoundStart implements RoundMonitor
func (c *StatsCollector) OnRoundStart(room string, _ int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.room(room).RoundsStarted++
}

// OnRoundComplete implements RoundMonitor
func (c *StatsCollector) OnRoundComplete(outcome RoundOutcome) {
	c.mu.Lock()
	defer c.mu.Unlock()

	stats := c.room(outcome.Room)
	stats.RoundsCompleted++
	if outcome.TimedOut {
		stats.TimedOut++
	}
	if outcome.DealerBust() {
		stats.DealerBusts++
	}
	for _, s := range outcome.Settlements {
		stats.Outcomes[s.Outcome]++
		stats.HouseNet -= s.Delta
	}
}

// Snapshot returns a copy of every room's totals
func (c *StatsCollector) Snapshot() map[string]RoomStats {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make(map[string]RoomStats, len(c.rooms))
	for name, stats := range c.rooms {
		cp := *stats
		cp.Outcomes = make(map[game.Outcome]int, len(stats.Outcomes))
		for k, v := range stats.Outcomes {
			cp.Outcomes[k] = v
		}
		out[name] = cp
	}
	return out
}
