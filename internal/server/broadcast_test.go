package server

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/blackjack/internal/deck"
)

func TestPublishReachesOnlyRoomMembers(t *testing.T) {
	f := newFixture(t, 1)
	f.registry.Subscribe("a", "Room 1", "pa")
	f.registry.Subscribe("b", "Room 1", "pb")
	f.registry.Subscribe("c", "Room 2", "pc")

	f.broadcaster.Publish(
		f.broadcaster.RoundStart("Room 1"),
		f.broadcaster.RoundEnd("Room 2"),
	)

	assert.Equal(t, []Outbound{{Type: MessageTypeRoundStart, RoomName: "Room 1"}}, f.outbox.to("a"))
	assert.Equal(t, []Outbound{{Type: MessageTypeRoundStart, RoomName: "Room 1"}}, f.outbox.to("b"))
	assert.Equal(t, []Outbound{{Type: MessageTypeRoundEnd, RoomName: "Room 2"}}, f.outbox.to("c"))
}

func TestRoomStateIsCapturedAtCreation(t *testing.T) {
	f := newFixture(t, 1)
	room := f.store.GetOrCreate("Room 1")
	room.Join("p1", "Alice", 1000)
	room.Players["p1"].Hand = deck.MustParseCards("AsKd")

	ev := f.broadcaster.RoomState(room)
	room.Players["p1"].Credits = 0
	room.RoundActive = true

	msg := decodeEvent(t, ev)
	require.NotNil(t, msg.Room)
	assert.Equal(t, MessageTypeRoomUpdate, msg.Type)
	assert.Equal(t, "Room 1", msg.RoomName)
	assert.Equal(t, "Room 1", msg.Room.Name)
	assert.False(t, msg.Room.RoundActive)
	assert.Equal(t, 1000, msg.Room.Players["p1"].Credits)
	assert.Equal(t, deck.Hand(deck.MustParseCards("AsKd")), msg.Room.Players["p1"].Hand)
}

func TestRoomStateWireFormat(t *testing.T) {
	f := newFixture(t, 1)
	room := f.store.GetOrCreate("Room 1")
	room.Join("p1", "Alice", 1000)

	ev := f.broadcaster.RoomState(room)
	assert.JSONEq(t, `{
		"type": "room_update",
		"roomName": "Room 1",
		"room": {
			"name": "Room 1",
			"players": {"p1": {"name": "Alice", "credits": 1000, "bet": 0, "hand": [], "done": false}},
			"dealerHand": [],
			"roundActive": false
		}
	}`, string(ev.Payload))

	assert.JSONEq(t, `{"type":"round_start","roomName":"Room 1"}`, string(f.broadcaster.RoundStart("Room 1").Payload))
}
