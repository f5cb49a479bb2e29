package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStoreSeedsRooms(t *testing.T) {
	s := NewStore(500, DefaultRooms...)
	assert.Equal(t, []string{"Room 1", "Room 2", "Room 3"}, s.Names())
	assert.Equal(t, 500, s.StartingCredits())
}

func TestStoreGetOrCreate(t *testing.T) {
	s := NewStore(0)
	assert.Equal(t, DefaultStartingCredits, s.StartingCredits())

	_, ok := s.Lookup("lounge")
	assert.False(t, ok)

	room := s.GetOrCreate("lounge")
	require.NotNil(t, room)
	assert.Equal(t, "lounge", room.Name)
	assert.Empty(t, room.Players)
	assert.Empty(t, room.DealerHand)
	assert.True(t, room.Deck.IsEmpty())
	assert.False(t, room.RoundActive)

	assert.Same(t, room, s.GetOrCreate("lounge"))
	found, ok := s.Lookup("lounge")
	assert.True(t, ok)
	assert.Same(t, room, found)
}

func TestRoomJoinIsIdempotent(t *testing.T) {
	room := NewRoom("Room 1")
	assert.True(t, room.Join("p1", "Alice", 1000))

	p, _ := room.Player("p1")
	p.Credits = 750
	p.Bet = 50

	assert.False(t, room.Join("p1", "Someone Else", 1000))
	p, _ = room.Player("p1")
	assert.Equal(t, "Alice", p.Name)
	assert.Equal(t, 750, p.Credits)
	assert.Equal(t, 50, p.Bet)
}

func TestRoomLeave(t *testing.T) {
	room := NewRoom("Room 1")
	room.Join("p1", "Alice", 1000)
	assert.True(t, room.Leave("p1"))
	assert.False(t, room.Leave("p1"))
	assert.Empty(t, room.Players)
}

func TestSnapshotIsDetached(t *testing.T) {
	room := NewRoom("Room 1")
	room.Join("p2", "Bob", 1000)
	room.Join("p1", "Alice", 1000)
	assert.Equal(t, []string{"p1", "p2"}, room.PlayerIDs())

	view := room.Snapshot()
	room.Players["p1"].Credits = 1
	room.Leave("p2")

	assert.Equal(t, 1000, view.Players["p1"].Credits)
	assert.Contains(t, view.Players, "p2")
	assert.NotNil(t, view.Players["p1"].Hand)
}
