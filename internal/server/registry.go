package server

import (
	"sort"

	"github.com/google/uuid"
)

// ConnID identifies one live connection
type ConnID string

// NewConnID returns a fresh random connection identity
func NewConnID() ConnID {
	return ConnID(uuid.NewString())
}

// Session is the seat a connection occupies
type Session struct {
	Room     string
	PlayerID string
}

// Registry maps each live connection to the room and player it joined as.
// Transport objects carry no game state; this is the only association.
type Registry struct {
	sessions map[ConnID]Session
}

// NewRegistry creates an empty registry
func NewRegistry() *Registry {
	return &Registry{sessions: make(map[ConnID]Session)}
}

// Subscribe records the connection's seat, returning the one it replaces
func (r *Registry) Subscribe(conn ConnID, room, playerID string) (Session, bool) {
	prev, had := r.sessions[conn]
	r.sessions[conn] = Session{Room: room, PlayerID: playerID}
	return prev, had
}

// Unsubscribe forgets the connection and returns the seat it held
func (r *Registry) Unsubscribe(conn ConnID) (Session, bool) {
	s, ok := r.sessions[conn]
	if ok {
		delete(r.sessions, conn)
	}
	return s, ok
}

// Lookup returns the connection's seat
func (r *Registry) Lookup(conn ConnID) (Session, bool) {
	s, ok := r.sessions[conn]
	return s, ok
}

// Holds reports whether any connection occupies the seat
func (r *Registry) Holds(s Session) bool {
	for _, held := range r.sessions {
		if held == s {
			return true
		}
	}
	return false
}

// MembersOf returns the connections subscribed to a room, in stable order
func (r *Registry) MembersOf(room string) []ConnID {
	var members []ConnID
	for conn, s := range r.sessions {
		if s.Room == room {
			members = append(members, conn)
		}
	}
	sort.Slice(members, func(i, j int) bool { return members[i] < members[j] })
	return members
}

// Len returns the number of subscribed connections
func (r *Registry) Len() int {
	return len(r.sessions)
}
