package bootloader

import (
	"context"
	"fmt"
	"time"

	"github.com/moffa90/go-lg69t/fusion"
	"github.com/moffa90/go-lg69t/protocol"
)

// Upgrader drives one firmware upgrade session for one target subsystem.
// It owns the serial channel for the duration of the session; the device
// bootloader has no pipelining, so every exchange is strictly sequential.
//
// Upgrading both subsystems means two independent sessions over the same
// open port, GNSS first, so the application session's own reboot-and-wait
// naturally follows GNSS completion.
type Upgrader struct {
	device Device
	config Config
}

// New creates a new Upgrader for the given device and options.
//
// Example:
//
//	port, _ := serial.Open("/dev/ttyUSB0", &serial.Mode{BaudRate: 460800})
//	upg := bootloader.New(port,
//	    bootloader.WithLogger(myLogger),
//	    bootloader.WithProgressCallback(progressFunc),
//	)
func New(device Device, opts ...Option) *Upgrader {
	if device == nil {
		panic("device cannot be nil")
	}

	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	return &Upgrader{
		device: device,
		config: cfg,
	}
}

// Upgrade runs the complete upgrade sequence for one target:
//
//	reboot (optional) -> sync -> address -> info -> start -> transfer
//
// With autoReboot set, the session first sends a software reset to drop the
// device into its bootloader, and after a successful transfer probes for the
// device coming back up. Without it, the caller must reset the board by hand
// before the sync timeout expires.
//
// A failure at any step aborts the session; the returned error is a
// *StepError naming the step. A timeout during the final restart probe is
// advisory only and never fails an upgrade whose transfer completed.
func (u *Upgrader) Upgrade(ctx context.Context, target protocol.Target, image []byte, autoReboot bool) error {
	if len(image) == 0 {
		return fmt.Errorf("firmware image cannot be empty")
	}

	start := time.Now()
	u.logInfo("starting upgrade",
		"target", target.String(),
		"bytes", len(image),
		"crc", fmt.Sprintf("0x%08X", protocol.FirmwareCRC(image)),
	)

	if autoReboot {
		u.reportProgress(Progress{Phase: PhaseRebooting, Target: target, TotalBytes: len(image)})
		if err := u.Reboot(ctx, fusion.ResetRebootProcessor); err != nil {
			return &StepError{Step: StepReboot, Err: err}
		}
		u.logInfo("reboot command acknowledged")
	}

	u.reportProgress(Progress{Phase: PhaseSynchronizing, Target: target, TotalBytes: len(image)})
	if err := u.Synchronize(ctx); err != nil {
		return &StepError{Step: StepSync, Err: err}
	}
	u.logInfo("sync complete")

	u.reportProgress(Progress{Phase: PhasePreparing, Target: target, TotalBytes: len(image)})

	u.logDebug("sending firmware address")
	if err := u.command(StepAddress, protocol.BuildFirmwareAddressCmd(target),
		target.ClassID(), protocol.MsgFirmwareAddress, u.config.ResponseTimeout); err != nil {
		return err
	}

	u.logDebug("sending firmware info")
	if err := u.command(StepInfo, protocol.BuildFirmwareInfoCmd(target, image),
		target.ClassID(), protocol.MsgFirmwareInfo, u.config.ResponseTimeout); err != nil {
		return err
	}

	// The device erases its flash region before answering this one.
	u.reportProgress(Progress{Phase: PhaseErasing, Target: target, TotalBytes: len(image)})
	u.logInfo("starting upgrade and flash erase")
	if err := u.command(StepStart, protocol.BuildStartUpgradeCmd(target),
		target.ClassID(), protocol.MsgStartUpgrade, u.config.StartUpgradeTimeout); err != nil {
		return err
	}

	if err := u.sendFirmware(ctx, target, image, start); err != nil {
		return &StepError{Step: StepTransfer, Err: err}
	}

	u.reportProgress(Progress{
		Phase:       PhaseComplete,
		Target:      target,
		Percentage:  100,
		BytesSent:   len(image),
		TotalBytes:  len(image),
		ElapsedTime: time.Since(start),
	})
	u.logInfo("upgrade complete",
		"target", target.String(),
		"bytes", len(image),
		"elapsed", time.Since(start).String(),
	)

	if autoReboot {
		u.logInfo("waiting for software to start")
		if u.AwaitRestart(ctx) {
			u.logInfo("device restarted")
		} else {
			u.logError("timed out waiting for device; please reboot it manually")
		}
	}

	return nil
}

// command sends one framed command and validates its response, wrapping any
// failure with the step it belongs to.
func (u *Upgrader) command(step Step, frame []byte, classID, msgID byte, timeout time.Duration) error {
	if _, err := u.device.Write(frame); err != nil {
		return &StepError{Step: step, Err: fmt.Errorf("write command: %w", err)}
	}
	if err := u.awaitResponse(classID, msgID, timeout); err != nil {
		return &StepError{Step: step, Err: err}
	}
	return nil
}

// awaitResponse reads one 14-byte response frame and validates it against
// the (class, message) pair of the command that was just sent.
func (u *Upgrader) awaitResponse(classID, msgID byte, timeout time.Duration) error {
	if err := u.device.SetReadTimeout(timeout); err != nil {
		return err
	}

	buf := make([]byte, protocol.ResponseSize)
	if err := readFull(u.device, buf); err != nil {
		return err
	}

	resp, err := protocol.DecodeResponse(buf)
	if err != nil {
		return err
	}
	return resp.Validate(classID, msgID)
}

// reportProgress calls the progress callback if configured.
func (u *Upgrader) reportProgress(progress Progress) {
	if u.config.ProgressCallback != nil {
		u.config.ProgressCallback(progress)
	}
}

// logDebug logs a debug message if a logger is configured.
func (u *Upgrader) logDebug(msg string, keysAndValues ...interface{}) {
	if u.config.Logger != nil {
		u.config.Logger.Debug(msg, keysAndValues...)
	}
}

// logInfo logs an info message if a logger is configured.
func (u *Upgrader) logInfo(msg string, keysAndValues ...interface{}) {
	if u.config.Logger != nil {
		u.config.Logger.Info(msg, keysAndValues...)
	}
}

// logError logs an error message if a logger is configured.
func (u *Upgrader) logError(msg string, keysAndValues ...interface{}) {
	if u.config.Logger != nil {
		u.config.Logger.Error(msg, keysAndValues...)
	}
}
