package protocol

import (
	"encoding/binary"
	"hash/crc32"
)

// FirmwareCRC computes the image checksum carried in Firmware Info payloads.
//
// The device does not checksum the raw image. It checksums a little-endian
// 4-byte length prefix concatenated with the image bytes, using CRC-32 (IEEE).
func FirmwareCRC(image []byte) uint32 {
	var prefix [4]byte
	binary.LittleEndian.PutUint32(prefix[:], uint32(len(image)))

	crc := crc32.NewIEEE()
	crc.Write(prefix[:])
	crc.Write(image)
	return crc.Sum32()
}
