package server

import (
	"encoding/json"

	"github.com/charmbracelet/log"

	"github.com/lox/blackjack/internal/game"
)

// Event is an encoded outbound message addressed to everyone in a room.
// The payload is captured when the event is built, so it always reflects
// the room as it was right after the mutation that produced it.
type Event struct {
	Type     MessageType
	RoomName string
	Payload  []byte
}

// Outbox delivers an encoded frame to one connection
type Outbox interface {
	Deliver(conn ConnID, payload []byte)
}

// Broadcaster builds room events and fans them out to subscribers
type Broadcaster struct {
	registry *Registry
	outbox   Outbox
	logger   *log.Logger
}

// NewBroadcaster creates a broadcaster delivering through outbox
func NewBroadcaster(registry *Registry, outbox Outbox, logger *log.Logger) *Broadcaster {
	return &Broadcaster{
		registry: registry,
		outbox:   outbox,
		logger:   logger.WithPrefix("broadcast"),
	}
}

// RoomState snapshots the full room, every hand included
func (b *Broadcaster) RoomState(room *game.Room) Event {
	view := room.Snapshot()
	return b.event(Outbound{Type: MessageTypeRoomUpdate, RoomName: room.Name, Room: &view})
}

// RoundStart announces a new round
func (b *Broadcaster) RoundStart(roomName string) Event {
	return b.event(Outbound{Type: MessageTypeRoundStart, RoomName: roomName})
}

// RoundEnd announces a settled round
func (b *Broadcaster) RoundEnd(roomName string) Event {
	return b.event(Outbound{Type: MessageTypeRoundEnd, RoomName: roomName})
}

func (b *Broadcaster) event(msg Outbound) Event {
	payload, err := json.Marshal(msg)
	if err != nil {
		b.logger.Error("Failed to encode message", "type", msg.Type, "room", msg.RoomName, "error", err)
	}
	return Event{Type: msg.Type, RoomName: msg.RoomName, Payload: payload}
}

// Publish sends each event, in order, to every connection in its room
func (b *Broadcaster) Publish(events ...Event) {
	for _, ev := range events {
		if ev.Payload == nil {
			continue
		}

		members := b.registry.MembersOf(ev.RoomName)
		for _, conn := range members {
			b.outbox.Deliver(conn, ev.Payload)
		}

		b.logger.Debug("Broadcasted message to room", "room", ev.RoomName, "type", ev.Type, "recipients", len(members))
	}
}
