package bootloader

import (
	"errors"
	"fmt"
)

// ErrSyncTimeout indicates the bootloader handshake never completed within
// the configured sync timeout.
var ErrSyncTimeout = errors.New("synchronization timed out")

// Step identifies a stage of the upgrade sequence. It is carried by
// StepError so callers can tell which stage a failed session died in.
type Step int

const (
	// StepReboot is the software reset that drops the device into its bootloader
	StepReboot Step = iota

	// StepSync is the two-word synchronization handshake
	StepSync

	// StepAddress is the Firmware Address command
	StepAddress

	// StepInfo is the Firmware Info command
	StepInfo

	// StepStart is the Start Upgrade command and its flash erase
	StepStart

	// StepTransfer is the chunked firmware transfer
	StepTransfer
)

func (s Step) String() string {
	switch s {
	case StepReboot:
		return "reboot"
	case StepSync:
		return "sync"
	case StepAddress:
		return "firmware address"
	case StepInfo:
		return "firmware info"
	case StepStart:
		return "start upgrade"
	case StepTransfer:
		return "firmware transfer"
	default:
		return "unknown"
	}
}

// StepError wraps an upgrade failure with the step it occurred in. Every
// error returned by Upgrader.Upgrade is a *StepError.
type StepError struct {
	Step Step
	Err  error
}

func (e *StepError) Error() string {
	return fmt.Sprintf("%s failed: %v", e.Step, e.Err)
}

func (e *StepError) Unwrap() error {
	return e.Err
}

// TimeoutError indicates the device did not produce a complete response in
// the allotted time.
type TimeoutError struct {
	// Op is the operation that timed out
	Op string

	// Got and Want are the byte counts received and expected, when known
	Got  int
	Want int
}

func (e *TimeoutError) Error() string {
	if e.Want > 0 {
		return fmt.Sprintf("timeout during %s: got %d of %d bytes", e.Op, e.Got, e.Want)
	}
	return fmt.Sprintf("timeout during %s", e.Op)
}

// TransferError indicates the firmware transfer failed partway through.
// Chunks beyond the failed one are never sent.
type TransferError struct {
	// Chunk is the 1-based index of the chunk that failed
	Chunk int

	// Chunks is the total number of chunks in the image
	Chunks int

	// Err is the underlying failure
	Err error
}

func (e *TransferError) Error() string {
	return fmt.Sprintf("transfer aborted at chunk %d/%d: %v", e.Chunk, e.Chunks, e.Err)
}

func (e *TransferError) Unwrap() error {
	return e.Err
}

// RebootRejectedError indicates the device acknowledged a reset request with
// a non-OK status.
type RebootRejectedError struct {
	Code byte
}

func (e *RebootRejectedError) Error() string {
	return fmt.Sprintf("reboot command rejected [code=%d]", e.Code)
}
