package protocol

import (
	"encoding/binary"
	"fmt"
	"hash/crc32"
)

// EncodeMessage wraps a payload in the bootloader frame envelope.
//
// Frame structure:
//
//	[HEADER][CLASS][MSG][LEN_H][LEN_L][PAYLOAD...][CRC(4)][TAIL]
//
// LEN is a big-endian uint16 and CRC is a big-endian CRC-32 (IEEE) computed
// over CLASS through PAYLOAD. Encoding cannot fail.
func EncodeMessage(classID, msgID byte, payload []byte) []byte {
	frame := make([]byte, 0, FrameOverhead+len(payload))

	frame = append(frame, FrameHeader)
	frame = append(frame, classID, msgID)

	lenBytes := make([]byte, 2)
	binary.BigEndian.PutUint16(lenBytes, uint16(len(payload)))
	frame = append(frame, lenBytes...)

	frame = append(frame, payload...)

	crcBytes := make([]byte, 4)
	binary.BigEndian.PutUint32(crcBytes, crc32.ChecksumIEEE(frame[1:]))
	frame = append(frame, crcBytes...)

	frame = append(frame, FrameTail)

	return frame
}

// BuildFirmwareAddressCmd constructs a Firmware Address command frame.
// The payload is a fixed all-zero 4-byte address selector.
func BuildFirmwareAddressCmd(target Target) []byte {
	return EncodeMessage(target.ClassID(), MsgFirmwareAddress, make([]byte, 4))
}

// BuildStartUpgradeCmd constructs a Start Upgrade command frame.
// The command carries no payload. On receipt the device erases its firmware
// flash region, which can take tens of seconds before it responds.
func BuildStartUpgradeCmd(target Target) []byte {
	return EncodeMessage(target.ClassID(), MsgStartUpgrade, nil)
}

// BuildSendFirmwareCmd constructs a Send Firmware command frame carrying one
// image chunk. The payload is a big-endian 4-byte sequence number followed by
// the chunk bytes. The sequence number counts chunks, not bytes.
func BuildSendFirmwareCmd(target Target, seq uint32, chunk []byte) ([]byte, error) {
	if len(chunk) == 0 {
		return nil, fmt.Errorf("chunk cannot be empty")
	}
	if len(chunk) > MaxChunkSize {
		return nil, fmt.Errorf("chunk length %d exceeds maximum %d bytes", len(chunk), MaxChunkSize)
	}

	payload := make([]byte, 4+len(chunk))
	binary.BigEndian.PutUint32(payload[:4], seq)
	copy(payload[4:], chunk)

	return EncodeMessage(target.ClassID(), MsgSendFirmware, payload), nil
}

// BuildFirmwareInfoCmd constructs a Firmware Info command frame for the
// target, describing the image about to be transferred.
func BuildFirmwareInfoCmd(target Target, image []byte) []byte {
	if target == TargetGNSS {
		return BuildGNSSInfoCmd(image)
	}
	return BuildAppInfoCmd(image)
}

// BuildAppInfoCmd constructs the application Firmware Info command frame.
//
// Payload structure (AppInfoSize bytes, big-endian):
//
//	[LENGTH(4)][CRC(4)][FLASH_OFFSET(4)][FLAGS(1)][PAD(3)]
func BuildAppInfoCmd(image []byte) []byte {
	payload := make([]byte, AppInfoSize)
	binary.BigEndian.PutUint32(payload[0:4], uint32(len(image)))
	binary.BigEndian.PutUint32(payload[4:8], FirmwareCRC(image))
	binary.BigEndian.PutUint32(payload[8:12], AppFlashOffset)
	payload[12] = UpgradeFlag

	return EncodeMessage(ClassApp, MsgFirmwareInfo, payload)
}

// BuildGNSSInfoCmd constructs the GNSS Firmware Info command frame.
//
// Payload structure (GNSSInfoSize bytes, big-endian):
//
//	[LENGTH(4)][CRC(4)][FLASH_BASE(4)][ERASE_BLOCK(4)][REGION_ADDR(4)][REGION_SIZE(4)][FLAGS(1)][RSVD(2)][PAD(5)]
func BuildGNSSInfoCmd(image []byte) []byte {
	payload := make([]byte, GNSSInfoSize)
	binary.BigEndian.PutUint32(payload[0:4], uint32(len(image)))
	binary.BigEndian.PutUint32(payload[4:8], FirmwareCRC(image))
	binary.BigEndian.PutUint32(payload[8:12], GNSSFlashBase)
	binary.BigEndian.PutUint32(payload[12:16], GNSSEraseBlockSize)
	binary.BigEndian.PutUint32(payload[16:20], GNSSRegionAddr)
	binary.BigEndian.PutUint32(payload[20:24], GNSSRegionSize)
	payload[24] = UpgradeFlag

	return EncodeMessage(ClassGNSS, MsgFirmwareInfo, payload)
}
