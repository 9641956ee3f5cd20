package bootloader

import (
	"time"

	"github.com/moffa90/go-lg69t/protocol"
)

// Config holds the upgrader configuration.
type Config struct {
	// ProgressCallback is called as the upgrade advances (optional)
	ProgressCallback ProgressCallback

	// Logger is used for logging operations (optional)
	Logger Logger

	// SyncTimeout bounds the whole synchronization handshake. The reboot
	// can take over five seconds to kick in, so this must cover a long
	// pre-handshake silence.
	SyncTimeout time.Duration

	// ResponseTimeout bounds the wait for each command response
	ResponseTimeout time.Duration

	// StartUpgradeTimeout bounds the Start Upgrade response. The device
	// erases its flash before answering, which takes around 30 seconds.
	StartUpgradeTimeout time.Duration

	// RebootTimeout bounds the wait for a reset request acknowledgment
	RebootTimeout time.Duration

	// RebootResendInterval is how often the reset request is retransmitted
	// while unacknowledged. The transport may silently drop the first
	// attempt while the device is busy.
	RebootResendInterval time.Duration

	// ChunkSize is the firmware bytes per Send Firmware frame.
	// Defaults to protocol.MaxChunkSize.
	ChunkSize int
}

// defaultConfig returns the default configuration.
func defaultConfig() Config {
	return Config{
		SyncTimeout:          10 * time.Second,
		ResponseTimeout:      60 * time.Second,
		StartUpgradeTimeout:  90 * time.Second,
		RebootTimeout:        10 * time.Second,
		RebootResendInterval: 500 * time.Millisecond,
		ChunkSize:            protocol.MaxChunkSize,
	}
}

// Option is a functional option for configuring the Upgrader.
type Option func(*Config)

// WithProgressCallback sets a callback to track upgrade progress.
func WithProgressCallback(callback ProgressCallback) Option {
	return func(c *Config) {
		c.ProgressCallback = callback
	}
}

// WithLogger sets a logger for upgrader operations.
func WithLogger(logger Logger) Option {
	return func(c *Config) {
		c.Logger = logger
	}
}

// WithSyncTimeout sets the overall synchronization handshake timeout.
func WithSyncTimeout(timeout time.Duration) Option {
	return func(c *Config) {
		c.SyncTimeout = timeout
	}
}

// WithResponseTimeout sets the per-command response timeout.
func WithResponseTimeout(timeout time.Duration) Option {
	return func(c *Config) {
		c.ResponseTimeout = timeout
	}
}

// WithStartUpgradeTimeout sets the Start Upgrade response timeout, which
// must cover the device-side flash erase.
func WithStartUpgradeTimeout(timeout time.Duration) Option {
	return func(c *Config) {
		c.StartUpgradeTimeout = timeout
	}
}

// WithRebootTimeout sets the reset request acknowledgment timeout.
func WithRebootTimeout(timeout time.Duration) Option {
	return func(c *Config) {
		c.RebootTimeout = timeout
	}
}

// WithRebootResendInterval sets the reset request retransmission cadence.
func WithRebootResendInterval(interval time.Duration) Option {
	return func(c *Config) {
		if interval > 0 {
			c.RebootResendInterval = interval
		}
	}
}

// WithChunkSize sets the firmware bytes per Send Firmware frame.
// Values outside (0, protocol.MaxChunkSize] are ignored.
func WithChunkSize(size int) Option {
	return func(c *Config) {
		if size > 0 && size <= protocol.MaxChunkSize {
			c.ChunkSize = size
		}
	}
}
