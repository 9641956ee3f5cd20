// Package bootloader provides a high-level API for flashing firmware onto
// LG69T devices over a serial connection.
//
// # Overview
//
// The LG69T carries two independently upgradable subsystems, an application
// processor and a GNSS receiver, both served by the same vendor bootloader
// protocol. This package orchestrates one upgrade session per subsystem:
//
//   - Optionally rebooting the device into its bootloader with a software
//     reset (retransmitted until acknowledged)
//   - Running the two-word synchronization handshake
//   - Negotiating the firmware address and per-target metadata
//   - Triggering the device-side flash erase
//   - Transferring the image in acknowledged 5 KiB chunks
//
// # Basic Usage
//
//	port, err := serial.Open("/dev/ttyUSB0", &serial.Mode{BaudRate: 460800})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer port.Close()
//
//	image, err := os.ReadFile("firmware.bin")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	upg := bootloader.New(port)
//	err = upg.Upgrade(context.Background(), protocol.TargetApp, image, true)
//
// # Progress Tracking
//
//	upg := bootloader.New(port,
//	    bootloader.WithProgressCallback(func(p bootloader.Progress) {
//	        fmt.Printf("[%s] %d%%\n", p.Phase, p.Percentage)
//	    }),
//	)
//
// # Error Handling
//
// Upgrade failures are *StepError values naming the step the session died
// in. Underlying causes include *TimeoutError, ErrSyncTimeout,
// *protocol.ResponseError, *protocol.DeviceError, and *TransferError.
// All of them are terminal for the session; nothing is retried except the
// reset request's own bounded retransmission.
//
// # Hardware Independence
//
// The package talks to any Device: an io.ReadWriter with host-side read
// timeouts. go.bug.st/serial ports satisfy it directly, and a scripted mock
// works for testing.
package bootloader
