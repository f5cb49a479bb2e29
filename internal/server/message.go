package server

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/lox/blackjack/internal/game"
)

// ErrMalformedMessage is returned for frames that cannot be routed
var ErrMalformedMessage = errors.New("malformed message")

// DefaultPlayerName is used when a join carries no name
const DefaultPlayerName = "Anonymous"

// Inbound is a client to server message. Fields unused by a type are ignored.
type Inbound struct {
	Type      MessageType `json:"type"`
	RoomName  string      `json:"roomName"`
	PlayerID  string      `json:"playerId,omitempty"`
	Name      string      `json:"name,omitempty"`
	BetAmount int         `json:"betAmount,omitempty"`
}

// Outbound is a server to client message
type Outbound struct {
	Type     MessageType    `json:"type"`
	RoomName string         `json:"roomName"`
	Room     *game.RoomView `json:"room,omitempty"`
}

// DecodeInbound parses and validates one frame
func DecodeInbound(data []byte) (Inbound, error) {
	var msg Inbound
	if err := json.Unmarshal(data, &msg); err != nil {
		return Inbound{}, fmt.Errorf("%w: %v", ErrMalformedMessage, err)
	}

	if !msg.Type.inbound() {
		return Inbound{}, fmt.Errorf("%w: unknown type %q", ErrMalformedMessage, msg.Type)
	}
	if msg.RoomName == "" {
		return Inbound{}, fmt.Errorf("%w: %s without roomName", ErrMalformedMessage, msg.Type)
	}
	if msg.Type.needsPlayer() && msg.PlayerID == "" {
		return Inbound{}, fmt.Errorf("%w: %s without playerId", ErrMalformedMessage, msg.Type)
	}
	if msg.Type == MessageTypeJoin && msg.Name == "" {
		msg.Name = DefaultPlayerName
	}

	return msg, nil
}

// Encode marshals an inbound message, used by clients
func (m Inbound) Encode() ([]byte, error) {
	return json.Marshal(m)
}
