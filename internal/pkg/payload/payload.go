// Package payload defines the per-message-type payload schemas.
//
// Payloads are JSON to stay wire compatible with existing clients.
// The packet header framing lives in the packet package; nothing here
// knows about tags or sequence numbers.
package payload

import (
	"encoding/json"

	"github.com/pkg/errors"
)

// Position is a point on the board. It is owned by exactly one session
// at a time and copied, never aliased, into outgoing payloads.
type Position struct {
	X int `json:"x"`
	Y int `json:"y"`
	Z int `json:"z"`
}

// Marshal serializes the position.
func (p Position) Marshal() ([]byte, error) {
	b, err := json.Marshal(p)
	return b, errors.Wrap(err, "marshal position failed")
}

// UnmarshalPosition parses a PositionUpdate payload sent by a client.
func UnmarshalPosition(data []byte) (Position, error) {
	var p Position
	if err := json.Unmarshal(data, &p); err != nil {
		return Position{}, errors.Wrap(err, "unmarshal position failed")
	}
	return p, nil
}

// Chat is the ChatMessage payload.
type Chat struct {
	Text string `json:"text"`
}

// Marshal serializes the chat message.
func (c Chat) Marshal() ([]byte, error) {
	b, err := json.Marshal(c)
	return b, errors.Wrap(err, "marshal chat failed")
}

// UnmarshalChat parses a ChatMessage payload.
func UnmarshalChat(data []byte) (Chat, error) {
	var c Chat
	if err := json.Unmarshal(data, &c); err != nil {
		return Chat{}, errors.Wrap(err, "unmarshal chat failed")
	}
	return c, nil
}

// PlayerUpdate is the server broadcast form of an accepted move:
// which player moved and where they now are.
type PlayerUpdate struct {
	Player   string   `json:"player"`
	Position Position `json:"position"`
}

// Marshal serializes the player update.
func (u PlayerUpdate) Marshal() ([]byte, error) {
	b, err := json.Marshal(u)
	return b, errors.Wrap(err, "marshal player update failed")
}

// UnmarshalPlayerUpdate parses a broadcast PositionUpdate payload.
func UnmarshalPlayerUpdate(data []byte) (PlayerUpdate, error) {
	var u PlayerUpdate
	if err := json.Unmarshal(data, &u); err != nil {
		return PlayerUpdate{}, errors.Wrap(err, "unmarshal player update failed")
	}
	return u, nil
}

// PlayerState is one player's entry in a state snapshot.
type PlayerState struct {
	Position     Position `json:"position"`
	PlayerNumber uint32   `json:"player_number"`
}

// Snapshot is the full world state sent in reply to a ConnectionInit.
type Snapshot struct {
	Players   map[string]PlayerState `json:"players"`
	BoardSize [2]uint32              `json:"board_size"`
}

// Marshal serializes the snapshot.
func (s Snapshot) Marshal() ([]byte, error) {
	b, err := json.Marshal(s)
	return b, errors.Wrap(err, "marshal snapshot failed")
}

// UnmarshalSnapshot parses a ConnectionInit reply payload.
func UnmarshalSnapshot(data []byte) (Snapshot, error) {
	var s Snapshot
	if err := json.Unmarshal(data, &s); err != nil {
		return Snapshot{}, errors.Wrap(err, "unmarshal snapshot failed")
	}
	return s, nil
}
