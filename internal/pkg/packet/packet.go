// Package packet implements the binary framing shared by the client and server.
//
// Every datagram carries exactly one packet: a 1-byte message type tag,
// a 1-byte protocol version, a 4-byte big-endian sequence number, and the
// payload as the remainder of the datagram. There is no payload length
// prefix; payload interpretation is message-type specific and left to the
// caller.
package packet

import (
	"encoding/binary"

	"github.com/pkg/errors"
)

// MessageType is the tag byte identifying how a packet's payload is interpreted.
type MessageType byte

// The authoritative tag table. Codec and dispatch both key off these values.
const (
	PositionUpdate        MessageType = 0x01
	ChatMessage           MessageType = 0x02
	Heartbeat             MessageType = 0x03
	ConnectionInit        MessageType = 0x04
	PlayerJoin            MessageType = 0x05
	ConfirmPlayerMovement MessageType = 0x06
	PlayerLeft            MessageType = 0x07
)

var messageTypeNames = map[MessageType]string{
	PositionUpdate:        "PositionUpdate",
	ChatMessage:           "ChatMessage",
	Heartbeat:             "Heartbeat",
	ConnectionInit:        "ConnectionInit",
	PlayerJoin:            "PlayerJoin",
	ConfirmPlayerMovement: "ConfirmPlayerMovement",
	PlayerLeft:            "PlayerLeft",
}

// Valid reports whether t is a known message type.
func (t MessageType) Valid() bool {
	_, ok := messageTypeNames[t]
	return ok
}

func (t MessageType) String() string {
	if name, ok := messageTypeNames[t]; ok {
		return name
	}
	return "Unknown"
}

// HeaderSize is the fixed size of the packet header in bytes.
const HeaderSize = 6

// Version is the protocol version written into every outgoing packet.
const Version byte = 1

// Packet is one protocol message. It is immutable once constructed and
// lives only for the duration of a single send or receive.
type Packet struct {
	Type    MessageType
	Version byte
	Seq     uint32
	Payload []byte
}

// New creates a packet at the current protocol version.
func New(t MessageType, seq uint32, payload []byte) Packet {
	return Packet{
		Type:    t,
		Version: Version,
		Seq:     seq,
		Payload: payload,
	}
}

// Encode serializes the packet into wire format.
func (p Packet) Encode() []byte {
	buf := make([]byte, HeaderSize+len(p.Payload))
	buf[0] = byte(p.Type)
	buf[1] = p.Version
	binary.BigEndian.PutUint32(buf[2:HeaderSize], p.Seq)
	copy(buf[HeaderSize:], p.Payload)
	return buf
}

// Decode parses a datagram into a packet. The payload is copied, so the
// caller may reuse data (typically the shared receive buffer) immediately.
// Payload contents are not validated here.
func Decode(data []byte) (Packet, error) {
	if len(data) < HeaderSize {
		return Packet{}, errors.Wrapf(ErrMalformed, "datagram too short (%d bytes)", len(data))
	}
	t := MessageType(data[0])
	if !t.Valid() {
		return Packet{}, errors.Wrapf(ErrMalformed, "unknown message type 0x%02x", data[0])
	}
	payload := make([]byte, len(data)-HeaderSize)
	copy(payload, data[HeaderSize:])
	return Packet{
		Type:    t,
		Version: data[1],
		Seq:     binary.BigEndian.Uint32(data[2:HeaderSize]),
		Payload: payload,
	}, nil
}
