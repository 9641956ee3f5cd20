package bootloader

import (
	"fmt"
	"io"
	"time"
)

// Device is the serial channel used to talk to the device. Reads must be
// bounded by the timeout set with SetReadTimeout: a Read that produces no
// bytes within the timeout returns (0, nil), matching go.bug.st/serial
// semantics. serial.Port satisfies this interface directly.
type Device interface {
	io.ReadWriter
	SetReadTimeout(t time.Duration) error
}

// readFull reads exactly len(buf) bytes from the device, treating a
// zero-byte read as a timeout. The device read timeout applies per Read
// call, so it bounds the wait for each burst of bytes rather than the total.
func readFull(d Device, buf []byte) error {
	n := 0
	for n < len(buf) {
		c, err := d.Read(buf[n:])
		if err != nil {
			return fmt.Errorf("read: %w", err)
		}
		if c == 0 {
			return &TimeoutError{Op: "read", Got: n, Want: len(buf)}
		}
		n += c
	}
	return nil
}
