package fusion

import (
	"encoding/binary"
	"fmt"
)

// Sync bytes marking the start of every control message: ".1" in ASCII.
const (
	Sync0 = 0x2E
	Sync1 = 0x31
)

// HeaderSize is the fixed size of the control message header in bytes.
const HeaderSize = 24

// protocolVersion is the control protocol version this package speaks.
const protocolVersion = 2

// Message types used by the upgrade tool.
const (
	// TypeCommandResponse acknowledges a command, carrying a status code
	TypeCommandResponse = 13000

	// TypeResetRequest asks the device to reset selected components
	TypeResetRequest = 13002
)

// Reset request masks.
const (
	// ResetNone is a no-op reset. The device still acknowledges it, which
	// makes it useful as a liveness probe after an upgrade.
	ResetNone = 0

	// ResetRebootProcessor requests a full navigation processor reboot
	ResetRebootProcessor = 0x00400000
)

// ResponseOK is the CommandResponse code for an accepted command.
const ResponseOK = 0

// Header is the fixed-layout header preceding every control message payload.
// All multi-byte fields are little-endian on the wire.
type Header struct {
	// CRC is a CRC-32 over the header bytes after the CRC field itself,
	// plus the entire payload
	CRC uint32

	// ProtocolVersion is the control protocol version
	ProtocolVersion byte

	// MessageVersion is the payload layout version
	MessageVersion byte

	// MessageType identifies the payload
	MessageType uint16

	// SequenceNumber increments per transmitted message
	SequenceNumber uint32

	// PayloadSize is the payload length in bytes
	PayloadSize uint32

	// SourceID identifies the sender
	SourceID uint32
}

// Message is one decoded control message.
type Message struct {
	Header  Header
	Payload []byte
}

// CommandResponse is the payload of a TypeCommandResponse message.
type CommandResponse struct {
	// SourceSequence echoes the sequence number of the command being acked
	SourceSequence uint32

	// Response is the status code; ResponseOK means the command was accepted
	Response byte
}

// commandResponseSize is the wire size of a CommandResponse payload:
// SOURCE_SEQ(4) + RESPONSE(1) + RSVD(3).
const commandResponseSize = 8

// ParseCommandResponse decodes a CommandResponse payload.
func ParseCommandResponse(payload []byte) (*CommandResponse, error) {
	if len(payload) < commandResponseSize {
		return nil, fmt.Errorf("command response truncated: got %d bytes, expected %d",
			len(payload), commandResponseSize)
	}

	return &CommandResponse{
		SourceSequence: binary.LittleEndian.Uint32(payload[0:4]),
		Response:       payload[4],
	}, nil
}
