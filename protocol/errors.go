package protocol

import "fmt"

// MalformedResponseError indicates the transport returned fewer bytes than a
// complete response frame, typically because the read timed out.
type MalformedResponseError struct {
	// Got is the number of bytes actually received
	Got int
}

func (e *MalformedResponseError) Error() string {
	return fmt.Sprintf("response truncated: got %d bytes, expected %d", e.Got, ResponseSize)
}

// ResponseError indicates a response frame field did not match expectations.
// Field names the offending field; Expected and Got carry the values so a
// protocol mismatch can be diagnosed from the message alone.
type ResponseError struct {
	Field    string
	Expected uint32
	Got      uint32
}

func (e *ResponseError) Error() string {
	return fmt.Sprintf("response had unexpected %s field [expected=0x%X, got=0x%X]",
		e.Field, e.Expected, e.Got)
}

// DeviceError indicates the device bootloader rejected a command with a
// non-zero response code.
type DeviceError struct {
	ClassID   byte
	MessageID byte
	Code      uint16
}

func (e *DeviceError) Error() string {
	return fmt.Sprintf("device rejected command [class=0x%02X, msg=0x%02X, code=0x%04X]",
		e.ClassID, e.MessageID, e.Code)
}
