package bootloader

import (
	"time"

	"github.com/moffa90/go-lg69t/protocol"
)

// Upgrade phases reported through ProgressCallback.
const (
	// PhaseRebooting - sending the reset request and waiting for its ack
	PhaseRebooting = "rebooting"

	// PhaseSynchronizing - running the bootloader sync handshake
	PhaseSynchronizing = "synchronizing"

	// PhasePreparing - sending the address and info commands
	PhasePreparing = "preparing"

	// PhaseErasing - waiting for the device-side flash erase
	PhaseErasing = "erasing"

	// PhaseTransferring - sending firmware chunks
	PhaseTransferring = "transferring"

	// PhaseComplete - all chunks acknowledged
	PhaseComplete = "complete"
)

// Progress describes the state of an upgrade session. Passed to
// ProgressCallback as the session advances.
type Progress struct {
	// Phase is the current phase, one of the Phase* constants
	Phase string

	// Target is the subsystem being upgraded
	Target protocol.Target

	// CurrentChunk is the number of chunks acknowledged so far
	CurrentChunk int

	// TotalChunks is the total number of chunks in the image
	TotalChunks int

	// Percentage is bytes sent over total bytes, rounded down
	Percentage int

	// BytesSent is the number of image bytes acknowledged so far
	BytesSent int

	// TotalBytes is the image size
	TotalBytes int

	// ElapsedTime is the time since the session started
	ElapsedTime time.Duration
}

// ProgressCallback is called as the upgrade advances. Implementations should
// return quickly to avoid stalling the transfer.
type ProgressCallback func(Progress)

// Logger is an optional logging interface accepted by the upgrader. It keeps
// the library free of any particular logging framework; adapt your logger of
// choice to it.
type Logger interface {
	// Debug logs a debug message with optional key-value pairs
	Debug(msg string, keysAndValues ...interface{})

	// Info logs an info message with optional key-value pairs
	Info(msg string, keysAndValues ...interface{})

	// Error logs an error message with optional key-value pairs
	Error(msg string, keysAndValues ...interface{})
}
