package protocol

// Frame markers for the bootloader message envelope.
const (
	// FrameHeader is the frame start marker (0xAA)
	FrameHeader = 0xAA

	// FrameTail is the frame end marker (0x55)
	FrameTail = 0x55

	// FrameOverhead is the number of envelope bytes around a payload:
	// HEADER(1) + CLASS(1) + MSG(1) + LEN(2) + CRC(4) + TAIL(1)
	FrameOverhead = 10
)

// Synchronization handshake patterns. Each is transmitted and matched as a
// 32-bit little-endian word on the wire.
const (
	// SyncWord1 is sent repeatedly to trigger the bootloader handshake
	SyncWord1 = 0x514C1309

	// SyncResponse1 is the expected reply to SyncWord1
	SyncResponse1 = 0xAAFC3A4D

	// SyncWord2 is sent immediately after SyncResponse1 is observed
	SyncWord2 = 0x1203A504

	// SyncResponse2 completes the handshake
	SyncResponse2 = 0x55FD5BA0
)

// Class ids identify the device subsystem a frame targets.
const (
	// ClassGNSS addresses the GNSS (Teseo) receiver
	ClassGNSS = 0x01

	// ClassApp addresses the application processor
	ClassApp = 0x02
)

// Message ids for the bootloader command set.
const (
	// MsgFirmwareAddress selects the firmware destination
	MsgFirmwareAddress = 0x01

	// MsgFirmwareInfo carries the image length, CRC, and flash geometry
	MsgFirmwareInfo = 0x02

	// MsgStartUpgrade triggers the device-side flash erase
	MsgStartUpgrade = 0x03

	// MsgSendFirmware carries one sequenced chunk of image data
	MsgSendFirmware = 0x04
)

// Response frame constants.
const (
	// ResponseSize is the fixed size of a bootloader response frame in bytes
	ResponseSize = 14

	// ResponsePayloadSize is the only value the response size field may carry
	ResponsePayloadSize = 4

	// StatusSuccess is the response code indicating the command was accepted
	StatusSuccess = 0
)

// MaxChunkSize is the maximum firmware data carried by one Send Firmware
// frame, excluding the 4-byte sequence number prefix.
const MaxChunkSize = 5 * 1024

// Flash geometry constants. These are hardware-specific values the device
// expects verbatim in firmware info payloads.
const (
	// AppFlashOffset is where the application image is written. The manual
	// says 0, but the first 128 KiB hold the bootloader itself.
	AppFlashOffset = 0x20000

	// GNSSFlashBase is the base address of the GNSS receiver flash
	GNSSFlashBase = 0x10000000

	// GNSSEraseBlockSize is the GNSS flash erase block size
	GNSSEraseBlockSize = 0x00000400

	// GNSSRegionAddr is the GNSS firmware region offset
	GNSSRegionAddr = 0x00180000

	// GNSSRegionSize is the GNSS firmware region size
	GNSSRegionSize = 0x00080000

	// UpgradeFlag is the flag byte carried by both info payloads
	UpgradeFlag = 0x01
)

// Info payload sizes.
const (
	// AppInfoSize is the size of the application firmware info payload
	AppInfoSize = 16

	// GNSSInfoSize is the size of the GNSS firmware info payload
	GNSSInfoSize = 32
)
