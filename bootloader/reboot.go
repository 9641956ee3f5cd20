package bootloader

import (
	"context"
	"fmt"
	"time"

	"github.com/moffa90/go-lg69t/fusion"
)

// rebootReadBufSize is the inbound buffer size while waiting for a reset
// acknowledgment. The device may be streaming navigation output at the same
// time, so reads arrive in bursts.
const rebootReadBufSize = 1024

// Reboot sends a reset request with the given component mask and waits for
// the device to acknowledge it.
//
// The request travels in the general control envelope, not the bootloader
// frame format, because the device is still running application firmware at
// this point. The request is retransmitted at the configured resend interval
// until acknowledged; the transport may silently drop attempts while the
// device is busy. Returns nil once an OK acknowledgment arrives, a
// *RebootRejectedError if the device refuses, or a *TimeoutError if the
// overall reboot timeout elapses.
func (u *Upgrader) Reboot(ctx context.Context, mask uint32) error {
	frame := fusion.EncodeResetRequest(mask)

	if err := u.device.SetReadTimeout(syncReadInterval); err != nil {
		return err
	}

	var (
		decoder  fusion.Decoder
		lastSend time.Time
	)
	buf := make([]byte, rebootReadBufSize)
	deadline := time.Now().Add(u.config.RebootTimeout)

	for time.Now().Before(deadline) {
		if err := ctx.Err(); err != nil {
			return err
		}

		if time.Since(lastSend) >= u.config.RebootResendInterval {
			if _, err := u.device.Write(frame); err != nil {
				return fmt.Errorf("write reset request: %w", err)
			}
			lastSend = time.Now()
		}

		n, err := u.device.Read(buf)
		if err != nil {
			return fmt.Errorf("read: %w", err)
		}

		for _, msg := range decoder.Decode(buf[:n]) {
			if msg.Header.MessageType != fusion.TypeCommandResponse {
				continue
			}
			resp, err := fusion.ParseCommandResponse(msg.Payload)
			if err != nil {
				u.logDebug("discarding malformed command response", "err", err)
				continue
			}
			if resp.Response != fusion.ResponseOK {
				return &RebootRejectedError{Code: resp.Response}
			}
			return nil
		}
	}

	return &TimeoutError{Op: "reset acknowledgment"}
}

// AwaitRestart probes for the device having come back up after an upgrade.
// It sends a no-op reset request and reports whether any acknowledgment
// arrived in time. A false return is advisory: the transfer has already
// succeeded, the device may simply need a manual reboot.
func (u *Upgrader) AwaitRestart(ctx context.Context) bool {
	return u.Reboot(ctx, fusion.ResetNone) == nil
}
