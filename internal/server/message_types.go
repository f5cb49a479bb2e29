package server

// MessageType is the "type" discriminator carried by every frame
type MessageType string

const (
	// Client to server messages
	MessageTypeJoin       MessageType = "join"
	MessageTypeStartRound MessageType = "start_round"
	MessageTypeBet        MessageType = "bet"
	MessageTypeHit        MessageType = "hit"
	MessageTypeStand      MessageType = "stand"

	// Server to client messages
	MessageTypeRoomUpdate MessageType = "room_update"
	MessageTypeRoundStart MessageType = "round_start"
	MessageTypeRoundEnd   MessageType = "round_end"
)

// String returns the string representation of the message type
func (mt MessageType) String() string {
	return string(mt)
}

// needsPlayer reports whether the message must identify a player
func (mt MessageType) needsPlayer() bool {
	switch mt {
	case MessageTypeJoin, MessageTypeBet, MessageTypeHit, MessageTypeStand:
		return true
	}
	return false
}

func (mt MessageType) inbound() bool {
	switch mt {
	case MessageTypeJoin, MessageTypeStartRound, MessageTypeBet, MessageTypeHit, MessageTypeStand:
		return true
	}
	return false
}
