package bootloader

import (
	"context"
	"encoding/binary"
	"time"

	"github.com/moffa90/go-lg69t/protocol"
)

// syncReadInterval is the device read timeout used while polling for
// handshake bytes. Short so the first sync word keeps being retransmitted
// while the device is still rebooting.
const syncReadInterval = 50 * time.Millisecond

// syncPattern returns the little-endian wire encoding of a sync word.
func syncPattern(word uint32) [4]byte {
	var b [4]byte
	binary.LittleEndian.PutUint32(b[:], word)
	return b
}

// Synchronize brings the device bootloader into framed command mode.
//
// It repeatedly transmits sync word 1 while scanning the inbound stream one
// byte at a time through a 4-byte sliding window, so the expected response
// is found at any offset and with arbitrary leading noise. When the window
// matches, sync word 2 is sent and exactly 4 bytes are read back; if they do
// not match the second response, the handshake restarts from sync word 1.
//
// Returns ErrSyncTimeout if the handshake does not complete within the
// configured sync timeout. No handshake state survives across calls.
func (u *Upgrader) Synchronize(ctx context.Context) error {
	word1 := syncPattern(protocol.SyncWord1)
	word2 := syncPattern(protocol.SyncWord2)
	rsp1 := syncPattern(protocol.SyncResponse1)
	rsp2 := syncPattern(protocol.SyncResponse2)

	if err := u.device.SetReadTimeout(syncReadInterval); err != nil {
		return err
	}

	deadline := time.Now().Add(u.config.SyncTimeout)
	var window [4]byte
	one := make([]byte, 1)

	for time.Now().Before(deadline) {
		if err := ctx.Err(); err != nil {
			return err
		}

		if _, err := u.device.Write(word1[:]); err != nil {
			return err
		}

		for {
			n, err := u.device.Read(one)
			if err != nil {
				return err
			}
			if n == 0 {
				// Nothing buffered; resend sync word 1.
				break
			}

			copy(window[:3], window[1:])
			window[3] = one[0]
			if window != rsp1 {
				continue
			}

			if _, err := u.device.Write(word2[:]); err != nil {
				return err
			}

			var second [4]byte
			if err := readFull(u.device, second[:]); err == nil && second == rsp2 {
				u.logDebug("synchronized with bootloader")
				return nil
			}

			// Wrong or missing second response; restart the handshake.
			window = [4]byte{}
			break
		}
	}

	return ErrSyncTimeout
}
