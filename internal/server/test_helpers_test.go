package server

import (
	"encoding/json"
	"io"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/require"

	"github.com/lox/blackjack/internal/deck"
	"github.com/lox/blackjack/internal/game"
	"github.com/lox/blackjack/internal/randutil"
)

// testLogger creates a logger that discards output for tests
func testLogger() *log.Logger {
	return log.NewWithOptions(io.Discard, log.Options{Level: log.ErrorLevel})
}

type delivery struct {
	conn ConnID
	msg  Outbound
}

// recordingOutbox captures every frame in delivery order
type recordingOutbox struct {
	t          *testing.T
	deliveries []delivery
}

func (o *recordingOutbox) Deliver(conn ConnID, payload []byte) {
	o.t.Helper()
	var msg Outbound
	require.NoError(o.t, json.Unmarshal(payload, &msg))
	o.deliveries = append(o.deliveries, delivery{conn: conn, msg: msg})
}

func (o *recordingOutbox) to(conn ConnID) []Outbound {
	var msgs []Outbound
	for _, d := range o.deliveries {
		if d.conn == conn {
			msgs = append(msgs, d.msg)
		}
	}
	return msgs
}

type fixture struct {
	store       *game.Store
	registry    *Registry
	outbox      *recordingOutbox
	broadcaster *Broadcaster
	router      *Router
}

func newFixture(t *testing.T, seed int64) *fixture {
	t.Helper()
	f := &fixture{
		store:    game.NewStore(1000, game.DefaultRooms...),
		registry: NewRegistry(),
		outbox:   &recordingOutbox{t: t},
	}
	f.broadcaster = NewBroadcaster(f.registry, f.outbox, testLogger())
	f.router = NewRouter(f.store, game.NewEngine(randutil.New(seed)), f.registry, f.broadcaster, testLogger())
	return f
}

// send routes msg and publishes the resulting events
func (f *fixture) send(conn ConnID, msg Inbound) []Event {
	events := f.router.Handle(conn, msg)
	f.broadcaster.Publish(events...)
	return events
}

func (f *fixture) join(conn ConnID, room, playerID string) []Event {
	return f.send(conn, Inbound{Type: MessageTypeJoin, RoomName: room, PlayerID: playerID, Name: "player " + playerID})
}

func (f *fixture) room(name string) *game.Room {
	room, ok := f.store.Lookup(name)
	if !ok {
		panic("no room " + name)
	}
	return room
}

// stage replaces the dealt cards of an active round
func (f *fixture) stage(roomName, dealer string, hands map[string]string, remaining string) {
	room := f.room(roomName)
	room.DealerHand = deck.MustParseCards(dealer)
	room.Deck = deck.FromCards(deck.MustParseCards(remaining))
	for id, h := range hands {
		room.Players[id].Hand = deck.MustParseCards(h)
	}
}

func eventTypes(events []Event) []MessageType {
	types := make([]MessageType, len(events))
	for i, ev := range events {
		types[i] = ev.Type
	}
	return types
}

func decodeEvent(t *testing.T, ev Event) Outbound {
	t.Helper()
	var msg Outbound
	require.NoError(t, json.Unmarshal(ev.Payload, &msg))
	return msg
}

func lastRoomState(t *testing.T, events []Event) *game.RoomView {
	t.Helper()
	for i := len(events) - 1; i >= 0; i-- {
		if events[i].Type == MessageTypeRoomUpdate {
			return decodeEvent(t, events[i]).Room
		}
	}
	t.Fatalf("no room_update in %v", eventTypes(events))
	return nil
}
