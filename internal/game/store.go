package game

import "sort"

// DefaultRooms are the rooms seeded when no others are configured
var DefaultRooms = []string{"Room 1", "Room 2", "Room 3"}

// DefaultStartingCredits is the balance a new player receives
const DefaultStartingCredits = 1000

// Store owns the mapping from room name to room state. Rooms are never removed.
type Store struct {
	rooms           map[string]*Room
	startingCredits int
}

// NewStore creates a store seeded with the given rooms
func NewStore(startingCredits int, seed ...string) *Store {
	if startingCredits <= 0 {
		startingCredits = DefaultStartingCredits
	}
	s := &Store{
		rooms:           make(map[string]*Room),
		startingCredits: startingCredits,
	}
	for _, name := range seed {
		s.GetOrCreate(name)
	}
	return s
}

// GetOrCreate returns the named room, creating a blank one on first reference
func (s *Store) GetOrCreate(name string) *Room {
	if room, ok := s.rooms[name]; ok {
		return room
	}
	room := NewRoom(name)
	s.rooms[name] = room
	return room
}

// Lookup returns the named room without creating it
func (s *Store) Lookup(name string) (*Room, bool) {
	room, ok := s.rooms[name]
	return room, ok
}

// Names returns every room name in sorted order
func (s *Store) Names() []string {
	names := make([]string, 0, len(s.rooms))
	for name := range s.rooms {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// StartingCredits is the balance given to newly joined players
func (s *Store) StartingCredits() int {
	return s.startingCredits
}
