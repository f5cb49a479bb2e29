package server

import (
	"errors"

	"github.com/charmbracelet/log"

	"github.com/lox/blackjack/internal/game"
)

// Router applies inbound messages to the room store and returns the events
// to broadcast. It never touches the transport, so every effect of a
// message is visible in the returned slice.
type Router struct {
	store     *game.Store
	engine    *game.Engine
	registry  *Registry
	broadcast *Broadcaster
	timer     *RoundTimer
	monitor   RoundMonitor
	logger    *log.Logger
}

// NewRouter wires a router to its collaborators
func NewRouter(store *game.Store, engine *game.Engine, registry *Registry, broadcast *Broadcaster, logger *log.Logger) *Router {
	return &Router{
		store:     store,
		engine:    engine,
		registry:  registry,
		broadcast: broadcast,
		monitor:   NullRoundMonitor{},
		logger:    logger.WithPrefix("router"),
	}
}

// SetRoundTimer enables the round timeout policy
func (r *Router) SetRoundTimer(timer *RoundTimer) {
	r.timer = timer
}

// SetMonitor replaces the round monitor
func (r *Router) SetMonitor(monitor RoundMonitor) {
	r.monitor = NewMultiRoundMonitor(monitor)
}

// Handle dispatches one decoded message from conn
func (r *Router) Handle(conn ConnID, msg Inbound) []Event {
	r.logger.Debug("Received message", "type", msg.Type, "room", msg.RoomName, "player", msg.PlayerID)

	switch msg.Type {
	case MessageTypeJoin:
		return r.handleJoin(conn, msg)
	case MessageTypeStartRound:
		return r.handleStartRound(msg)
	case MessageTypeBet:
		return r.handleBet(msg)
	case MessageTypeHit:
		return r.handleHit(msg)
	case MessageTypeStand:
		return r.handleStand(msg)
	default:
		r.logger.Warn("Dropping message of unknown type", "type", msg.Type)
		return nil
	}
}

func (r *Router) handleJoin(conn ConnID, msg Inbound) []Event {
	room := r.store.GetOrCreate(msg.RoomName)
	seat := Session{Room: room.Name, PlayerID: msg.PlayerID}

	var events []Event
	if prev, had := r.registry.Subscribe(conn, seat.Room, seat.PlayerID); had && prev != seat {
		events = append(events, r.vacate(prev)...)
	}

	if room.Join(msg.PlayerID, msg.Name, r.store.StartingCredits()) {
		r.logger.Info("Player joined", "room", room.Name, "player", msg.PlayerID, "name", msg.Name)
	} else {
		r.logger.Info("Player rejoined", "room", room.Name, "player", msg.PlayerID)
	}

	return append(events, r.broadcast.RoomState(room))
}

func (r *Router) handleStartRound(msg Inbound) []Event {
	room := r.store.GetOrCreate(msg.RoomName)
	err := r.engine.StartRound(room)
	r.logger.Info("Round started", "room", room.Name, "players", len(room.Players))
	r.monitor.OnRoundStart(room.Name, len(room.Players))

	events := []Event{
		r.broadcast.RoundStart(room.Name),
		r.broadcast.RoomState(room),
	}

	if errors.Is(err, game.ErrDeckExhausted) {
		r.logger.Warn("Deck exhausted while dealing, settling early", "room", room.Name, "players", len(room.Players))
		return append(events, r.settle(room, false)...)
	}

	r.timer.Arm(room.Name)
	return events
}

func (r *Router) handleBet(msg Inbound) []Event {
	room := r.store.GetOrCreate(msg.RoomName)
	applied, err := r.engine.PlaceBet(room, msg.PlayerID, msg.BetAmount)
	switch {
	case err != nil:
		r.logger.Debug("Ignoring bet", "room", room.Name, "player", msg.PlayerID, "error", err)
	case applied != msg.BetAmount:
		r.logger.Warn("Clamped bet", "room", room.Name, "player", msg.PlayerID, "requested", msg.BetAmount, "applied", applied)
	default:
		r.logger.Info("Bet placed", "room", room.Name, "player", msg.PlayerID, "amount", applied)
	}
	return []Event{r.broadcast.RoomState(room)}
}

func (r *Router) handleHit(msg Inbound) []Event {
	room := r.store.GetOrCreate(msg.RoomName)
	card, err := r.engine.Hit(room, msg.PlayerID)
	switch {
	case errors.Is(err, game.ErrDeckExhausted):
		r.logger.Warn("Deck exhausted on hit, settling early", "room", room.Name, "player", msg.PlayerID)
		return append([]Event{r.broadcast.RoomState(room)}, r.settle(room, false)...)
	case err != nil:
		r.logger.Debug("Ignoring hit", "room", room.Name, "player", msg.PlayerID, "error", err)
	default:
		r.logger.Info("Player hit", "room", room.Name, "player", msg.PlayerID, "card", card, "value", room.Players[msg.PlayerID].Value())
	}
	return append([]Event{r.broadcast.RoomState(room)}, r.completeIfDone(room)...)
}

func (r *Router) handleStand(msg Inbound) []Event {
	room := r.store.GetOrCreate(msg.RoomName)
	if err := r.engine.Stand(room, msg.PlayerID); err != nil {
		r.logger.Debug("Ignoring stand", "room", room.Name, "player", msg.PlayerID, "error", err)
	} else {
		r.logger.Info("Player stood", "room", room.Name, "player", msg.PlayerID, "value", room.Players[msg.PlayerID].Value())
	}
	return append([]Event{r.broadcast.RoomState(room)}, r.completeIfDone(room)...)
}

// Disconnect releases conn's seat. Removing the last undecided player can
// complete the round.
func (r *Router) Disconnect(conn ConnID) []Event {
	seat, ok := r.registry.Unsubscribe(conn)
	if !ok {
		return nil
	}
	return r.vacate(seat)
}

// Expire handles a round timeout: every undecided player stands and the
// round settles. Stale generations are ignored.
func (r *Router) Expire(roomName string, generation uint64) []Event {
	if !r.timer.Current(roomName, generation) {
		return nil
	}
	room, ok := r.store.Lookup(roomName)
	if !ok || !room.RoundActive {
		return nil
	}

	stood := r.engine.StandAll(room)
	r.logger.Warn("Round timed out", "room", room.Name, "autoStood", stood)
	return r.settle(room, true)
}

// vacate removes a seat's player from its room unless another connection
// still holds the same seat.
func (r *Router) vacate(seat Session) []Event {
	room, ok := r.store.Lookup(seat.Room)
	if !ok || r.registry.Holds(seat) {
		return nil
	}
	if !room.Leave(seat.PlayerID) {
		return nil
	}
	r.logger.Info("Player left", "room", room.Name, "player", seat.PlayerID)

	return append([]Event{r.broadcast.RoomState(room)}, r.completeIfDone(room)...)
}

func (r *Router) completeIfDone(room *game.Room) []Event {
	if !room.RoundActive || !r.engine.IsRoundComplete(room) {
		return nil
	}
	return r.settle(room, false)
}

func (r *Router) settle(room *game.Room, timedOut bool) []Event {
	r.timer.Disarm(room.Name)

	results, err := r.engine.EndRound(room)
	if err != nil {
		r.logger.Debug("Nothing to settle", "room", room.Name, "error", err)
		return nil
	}

	for _, s := range results {
		r.logger.Info("Settled", "room", room.Name, "player", s.PlayerID, "outcome", s.Outcome, "delta", s.Delta, "value", s.Value)
	}
	r.logger.Info("Round ended", "room", room.Name, "dealer", room.DealerHand, "dealerValue", room.DealerValue())
	r.monitor.OnRoundComplete(RoundOutcome{
		Room:        room.Name,
		DealerValue: room.DealerValue(),
		TimedOut:    timedOut,
		Settlements: results,
	})

	return []Event{
		r.broadcast.RoundEnd(room.Name),
		r.broadcast.RoomState(room),
	}
}

// RoomSummary describes a room for the HTTP index
type RoomSummary struct {
	Name        string `json:"name"`
	Players     int    `json:"players"`
	Watchers    int    `json:"watchers"`
	RoundActive bool   `json:"roundActive"`
}

// Rooms lists every room without creating any
func (r *Router) Rooms() []RoomSummary {
	names := r.store.Names()
	summaries := make([]RoomSummary, 0, len(names))
	for _, name := range names {
		room, _ := r.store.Lookup(name)
		summaries = append(summaries, RoomSummary{
			Name:        name,
			Players:     len(room.Players),
			Watchers:    len(r.registry.MembersOf(name)),
			RoundActive: room.RoundActive,
		})
	}
	return summaries
}
