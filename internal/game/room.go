package game

import (
	"sort"

	"github.com/lox/blackjack/internal/deck"
)

// Room is an isolated table with its own deck, dealer hand and players
type Room struct {
	Name        string
	Players     map[string]*Player // playerId -> Player
	DealerHand  deck.Hand
	Deck        *deck.Deck
	RoundActive bool
}

// NewRoom creates a blank, idle room
func NewRoom(name string) *Room {
	return &Room{
		Name:       name,
		Players:    make(map[string]*Player),
		DealerHand: deck.Hand{},
		Deck:       deck.FromCards(nil),
	}
}

// Join seats a player if they are not already present. Re-joining with a
// known playerId leaves the existing player untouched. Reports whether a new
// player was created.
func (r *Room) Join(playerID, name string, credits int) bool {
	if _, ok := r.Players[playerID]; ok {
		return false
	}
	r.Players[playerID] = &Player{
		Name:    name,
		Credits: credits,
		Hand:    deck.Hand{},
	}
	return true
}

// Leave removes a player from the room. Reports whether they were present.
func (r *Room) Leave(playerID string) bool {
	if _, ok := r.Players[playerID]; !ok {
		return false
	}
	delete(r.Players, playerID)
	return true
}

// Player returns the player with the given id
func (r *Room) Player(playerID string) (*Player, bool) {
	p, ok := r.Players[playerID]
	return p, ok
}

// PlayerIDs returns the player ids in dealing order
func (r *Room) PlayerIDs() []string {
	ids := make([]string, 0, len(r.Players))
	for id := range r.Players {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// DealerValue returns the blackjack value of the dealer's hand
func (r *Room) DealerValue() int {
	return HandValue(r.DealerHand)
}

// PlayerView is the wire representation of a player
type PlayerView struct {
	Name    string    `json:"name"`
	Credits int       `json:"credits"`
	Bet     int       `json:"bet"`
	Hand    deck.Hand `json:"hand"`
	Done    bool      `json:"done"`
}

// RoomView is the wire representation of a room. Every hand is visible.
type RoomView struct {
	Name        string                `json:"name"`
	Players     map[string]PlayerView `json:"players"`
	DealerHand  deck.Hand             `json:"dealerHand"`
	RoundActive bool                  `json:"roundActive"`
}

// Snapshot copies the room's visible state. The result shares nothing with
// the room, so later mutations do not leak into it.
func (r *Room) Snapshot() RoomView {
	view := RoomView{
		Name:        r.Name,
		Players:     make(map[string]PlayerView, len(r.Players)),
		DealerHand:  append(deck.Hand{}, r.DealerHand...),
		RoundActive: r.RoundActive,
	}
	for id, p := range r.Players {
		view.Players[id] = PlayerView{
			Name:    p.Name,
			Credits: p.Credits,
			Bet:     p.Bet,
			Hand:    append(deck.Hand{}, p.Hand...),
			Done:    p.Done,
		}
	}
	return view
}
