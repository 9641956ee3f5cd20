package fusion

import (
	"encoding/binary"
	"hash/crc32"
)

// maxPayloadSize bounds the payload size field so corrupt headers cannot
// stall the decoder waiting for bytes that will never arrive.
const maxPayloadSize = 4096

// Decoder reassembles control messages from a raw byte stream. Bytes may
// arrive in arbitrary fragments and with interleaved noise; anything that
// does not frame-align with a valid CRC is discarded one byte at a time.
//
// The zero value is ready to use.
type Decoder struct {
	buf []byte
}

// Decode appends data to the internal buffer and returns all complete,
// CRC-valid messages found. Payload slices are copies and remain valid after
// subsequent calls.
func (d *Decoder) Decode(data []byte) []Message {
	d.buf = append(d.buf, data...)

	var msgs []Message
	for {
		// Frame-align on the sync bytes.
		for len(d.buf) >= 2 && !(d.buf[0] == Sync0 && d.buf[1] == Sync1) {
			d.buf = d.buf[1:]
		}
		if len(d.buf) < HeaderSize {
			break
		}

		payloadSize := binary.LittleEndian.Uint32(d.buf[16:20])
		if payloadSize > maxPayloadSize {
			d.buf = d.buf[1:]
			continue
		}

		total := HeaderSize + int(payloadSize)
		if len(d.buf) < total {
			break
		}

		if crc32.ChecksumIEEE(d.buf[8:total]) != binary.LittleEndian.Uint32(d.buf[4:8]) {
			d.buf = d.buf[1:]
			continue
		}

		hdr := Header{
			CRC:             binary.LittleEndian.Uint32(d.buf[4:8]),
			ProtocolVersion: d.buf[8],
			MessageVersion:  d.buf[9],
			MessageType:     binary.LittleEndian.Uint16(d.buf[10:12]),
			SequenceNumber:  binary.LittleEndian.Uint32(d.buf[12:16]),
			PayloadSize:     payloadSize,
			SourceID:        binary.LittleEndian.Uint32(d.buf[20:24]),
		}
		payload := make([]byte, payloadSize)
		copy(payload, d.buf[HeaderSize:total])

		msgs = append(msgs, Message{Header: hdr, Payload: payload})
		d.buf = d.buf[total:]
	}

	// Drop consumed prefix storage once the buffer drains.
	if len(d.buf) == 0 {
		d.buf = nil
	}

	return msgs
}
