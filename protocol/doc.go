// Package protocol implements the LG69T bootloader communication protocol.
//
// This package provides functions to build command frames and decode response
// frames for the vendor bootloader that runs on both LG69T subsystems: the
// application processor and the GNSS (Teseo) receiver.
//
// # Protocol Overview
//
// Commands use a framed envelope with a CRC-32 integrity check:
//
//	Command:  [0xAA][CLASS][MSG][LEN(2,BE)][PAYLOAD...][CRC32(4,BE)][0x55]
//	Response: [RSVD(3)][SIZE(2,BE)][CLASS][MSG][CODE(2,BE)][CRC32(4,BE)][TAIL]
//
// Responses are always 14 bytes and their size field always carries 4.
// Before any framed exchange the bootloader must be brought into handshake
// mode with a two-step sync word exchange; see the bootloader package.
//
// # Command Builders
//
// Use the Build* functions to create command frames:
//
//	frame := protocol.BuildFirmwareAddressCmd(protocol.TargetApp)
//	frame := protocol.BuildFirmwareInfoCmd(protocol.TargetGNSS, image)
//	frame, err := protocol.BuildSendFirmwareCmd(protocol.TargetApp, seq, chunk)
//
// # Response Validation
//
// Decode the 14 bytes read from the transport, then validate against the
// (class, message) pair of the command that was just sent:
//
//	resp, err := protocol.DecodeResponse(buf)
//	if err != nil {
//	    return err
//	}
//	if err := resp.Validate(protocol.ClassApp, protocol.MsgSendFirmware); err != nil {
//	    return err
//	}
//
// Validation failures are reported as *ResponseError (field mismatch) or
// *DeviceError (non-zero response code), each carrying expected and actual
// values.
package protocol
