package protocol

import (
	"encoding/binary"
	"hash/crc32"
)

// DecodeResponse decodes a 14-byte bootloader response frame.
//
// Response frame structure (big-endian):
//
//	[RSVD(3)][SIZE(2)][CLASS(1)][MSG(1)][CODE(2)][CRC(4)][TAIL(1)]
//
// The transmitted CRC-32 covers bytes 1 through 8, the two trailing reserved
// bytes plus the size, class, message, and code fields. DecodeResponse only
// checks that enough bytes were received; field validation is done by
// Response.Validate so each mismatch is reported with full context.
func DecodeResponse(data []byte) (*Response, error) {
	if len(data) < ResponseSize {
		return nil, &MalformedResponseError{Got: len(data)}
	}

	return &Response{
		PayloadSize: binary.BigEndian.Uint16(data[3:5]),
		ClassID:     data[5],
		MessageID:   data[6],
		Code:        binary.BigEndian.Uint16(data[7:9]),
		CRC:         binary.BigEndian.Uint32(data[9:13]),
		calculated:  crc32.ChecksumIEEE(data[1:9]),
	}, nil
}

// Validate checks the response against the expected (class, message) pair of
// the most recently sent command.
//
// Checks run in a fixed order: size field, class id, message id, CRC, and
// finally the response code. The CRC is always verified before the code is
// inspected. The first failing check is returned; there is no partial credit.
func (r *Response) Validate(classID, msgID byte) error {
	if r.PayloadSize != ResponsePayloadSize {
		return &ResponseError{Field: "size", Expected: ResponsePayloadSize, Got: uint32(r.PayloadSize)}
	}
	if r.ClassID != classID {
		return &ResponseError{Field: "class id", Expected: uint32(classID), Got: uint32(r.ClassID)}
	}
	if r.MessageID != msgID {
		return &ResponseError{Field: "message id", Expected: uint32(msgID), Got: uint32(r.MessageID)}
	}
	if r.CRC != r.calculated {
		return &ResponseError{Field: "crc", Expected: r.calculated, Got: r.CRC}
	}
	if r.Code != StatusSuccess {
		return &DeviceError{ClassID: r.ClassID, MessageID: r.MessageID, Code: r.Code}
	}
	return nil
}
