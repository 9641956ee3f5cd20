package fusion

import (
	"encoding/binary"
	"hash/crc32"
)

// EncodeMessage wraps a payload in the control message envelope.
//
// Wire structure (little-endian):
//
//	[0x2E][0x31][RSVD(2)][CRC(4)][PROTO_VER][MSG_VER][TYPE(2)][SEQ(4)][PAYLOAD_SIZE(4)][SOURCE(4)][PAYLOAD...]
//
// The CRC-32 covers everything after the CRC field, through the end of the
// payload.
func EncodeMessage(msgType uint16, seq uint32, payload []byte) []byte {
	buf := make([]byte, HeaderSize+len(payload))

	buf[0] = Sync0
	buf[1] = Sync1
	buf[8] = protocolVersion
	binary.LittleEndian.PutUint16(buf[10:12], msgType)
	binary.LittleEndian.PutUint32(buf[12:16], seq)
	binary.LittleEndian.PutUint32(buf[16:20], uint32(len(payload)))
	copy(buf[HeaderSize:], payload)

	binary.LittleEndian.PutUint32(buf[4:8], crc32.ChecksumIEEE(buf[8:]))

	return buf
}

// EncodeResetRequest builds a reset command with the given component mask.
func EncodeResetRequest(mask uint32) []byte {
	payload := make([]byte, 4)
	binary.LittleEndian.PutUint32(payload, mask)
	return EncodeMessage(TypeResetRequest, 0, payload)
}
